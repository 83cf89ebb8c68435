package identity

import "errors"

var (
	// ErrInvalidAddress indicates a zero actor address.
	ErrInvalidAddress = errors.New("identity: invalid address")

	// ErrNameLength indicates the name is shorter than 3 or longer than 30 bytes.
	ErrNameLength = errors.New("identity: name must be 3-30 characters")

	// ErrInvalidName indicates the name contains characters outside [a-z0-9].
	ErrInvalidName = errors.New("identity: name must be lowercase alphanumeric")

	// ErrProfileExists indicates the actor already registered a profile.
	ErrProfileExists = errors.New("identity: actor already has a profile")

	// ErrNameTaken indicates another actor already holds the name.
	ErrNameTaken = errors.New("identity: name already taken")

	// ErrNoProfile indicates the actor has no registered profile.
	ErrNoProfile = errors.New("identity: no profile for actor")

	// ErrSoulbound indicates a profile can never change hands.
	ErrSoulbound = errors.New("identity: profile is soulbound")
)
