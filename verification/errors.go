package verification

import "errors"

var (
	// ErrUnauthorized indicates the caller is not an administrator.
	ErrUnauthorized = errors.New("verification: unauthorized")

	// ErrInvalidAddress indicates a zero actor address.
	ErrInvalidAddress = errors.New("verification: invalid address")

	// ErrNoProfile indicates the actor holds no identity profile.
	ErrNoProfile = errors.New("verification: actor has no profile")

	// ErrStatusUnchanged indicates the flag already has the requested value.
	ErrStatusUnchanged = errors.New("verification: status unchanged")

	// ErrBatchTooLarge indicates the batch exceeds the configured cap.
	ErrBatchTooLarge = errors.New("verification: batch too large")

	// ErrZeroSuccess indicates no entry in the batch changed any state.
	ErrZeroSuccess = errors.New("verification: no batch entries applied")
)
