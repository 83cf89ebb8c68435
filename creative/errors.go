package creative

import "errors"

var (
	// ErrInvalidAddress indicates a zero actor address.
	ErrInvalidAddress = errors.New("creative: invalid address")

	// ErrNotVerified indicates the actor lacks the verified flag.
	ErrNotVerified = errors.New("creative: actor is not verified")

	// ErrCodeExists indicates the actor already holds a creative code.
	ErrCodeExists = errors.New("creative: actor already has a creative code")

	// ErrInvalidCountryCode indicates the country segment is not 2 uppercase letters.
	ErrInvalidCountryCode = errors.New("creative: country code must be 2 uppercase letters")

	// ErrInvalidRegistryCode indicates the registry segment is not 5 uppercase alphanumerics.
	ErrInvalidRegistryCode = errors.New("creative: registry code must be 5 uppercase alphanumerics")

	// ErrCodeTaken indicates another actor already holds the combined code.
	ErrCodeTaken = errors.New("creative: code already taken")

	// ErrNoCode indicates the actor holds no creative code.
	ErrNoCode = errors.New("creative: no code for actor")
)
