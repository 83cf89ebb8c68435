package factory

import "errors"

var (
	// ErrNilParam is returned when a required construction input is missing.
	ErrNilParam = errors.New("factory: nil parameter")

	// ErrUnauthorized is returned when the caller is neither a verifier
	// nor an admin.
	ErrUnauthorized = errors.New("factory: caller not authorized")

	// ErrNonceMismatch is returned when the request nonce does not match
	// the creator's current nonce.
	ErrNonceMismatch = errors.New("factory: nonce mismatch")

	// ErrNoCreativeCode is returned when the recovered creator has no
	// registered creative code.
	ErrNoCreativeCode = errors.New("factory: creator has no creative code")

	// ErrSequenceExhausted is returned when the creator's yearly work
	// sequence has reached its cap.
	ErrSequenceExhausted = errors.New("factory: yearly sequence exhausted")

	// ErrWorkExists is returned when the derived work ID is already
	// registered on the target chain.
	ErrWorkExists = errors.New("factory: work already exists")

	// ErrUnknownWork is returned by lookups for an unregistered work ID.
	ErrUnknownWork = errors.New("factory: unknown work")
)
