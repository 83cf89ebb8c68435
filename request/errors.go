package request

import "errors"

var (
	// ErrInvalidURI indicates the content URI is empty or too long.
	ErrInvalidURI = errors.New("request: invalid content URI")

	// ErrPriceTooHigh indicates the price exceeds the configured maximum.
	ErrPriceTooHigh = errors.New("request: price exceeds maximum")

	// ErrSplitMismatch indicates recipients and percentages differ in length or are empty.
	ErrSplitMismatch = errors.New("request: recipients and percentages mismatch")

	// ErrZeroRecipient indicates a recipient address is empty.
	ErrZeroRecipient = errors.New("request: zero recipient address")

	// ErrBadSplitSum indicates the percentages do not sum to exactly 10000.
	ErrBadSplitSum = errors.New("request: percentages must sum to 10000 basis points")

	// ErrDeadlineExpired indicates the deadline is not strictly in the future.
	ErrDeadlineExpired = errors.New("request: deadline expired")

	// ErrDeadlineTooSoon indicates the deadline is inside the minimum lead window.
	ErrDeadlineTooSoon = errors.New("request: deadline too soon")

	// ErrDeadlineTooFar indicates the deadline is beyond the maximum window.
	ErrDeadlineTooFar = errors.New("request: deadline too far in the future")

	// ErrInvalidSignature indicates a malformed, malleable, or unrecoverable signature.
	ErrInvalidSignature = errors.New("request: invalid signature")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("request: nil parameter")
)
