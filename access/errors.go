package access

import "errors"

var (
	// ErrUnauthorized indicates the caller lacks the required privilege.
	ErrUnauthorized = errors.New("access: unauthorized")

	// ErrInvalidAddress indicates a zero actor address or unknown role tag.
	ErrInvalidAddress = errors.New("access: invalid address or role")

	// ErrAlreadyAdmin indicates the actor already holds the admin role.
	ErrAlreadyAdmin = errors.New("access: already an admin")

	// ErrNotAdmin indicates the actor does not hold the admin role.
	ErrNotAdmin = errors.New("access: not an admin")

	// ErrAlreadyVerifier indicates the actor already holds the verifier role.
	ErrAlreadyVerifier = errors.New("access: already a verifier")

	// ErrNotVerifier indicates the actor does not hold the verifier role.
	ErrNotVerifier = errors.New("access: not a verifier")

	// ErrOwnerLockout indicates the owner tried to revoke their own admin role.
	ErrOwnerLockout = errors.New("access: owner cannot revoke own admin role")

	// ErrBatchTooLarge indicates the batch exceeds the configured cap.
	ErrBatchTooLarge = errors.New("access: batch too large")

	// ErrZeroSuccess indicates no entry in the batch changed any state.
	ErrZeroSuccess = errors.New("access: no batch entries applied")

	// ErrPaused indicates the protocol-wide emergency halt is active.
	ErrPaused = errors.New("access: protocol is paused")
)
