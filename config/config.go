package config

import "time"

// Domain identifies the signing domain for work-creation requests.
// All four fields are folded into the domain separator, so two registries
// deployed with different values can never accept each other's signatures.
type Domain struct {
	Name     string // protocol name, e.g. "opus"
	Version  string // protocol version, e.g. "1"
	Registry string // address of the work factory the signature targets
	Salt     string // fixed protocol salt
}

// Config carries every protocol parameter. Components receive a *Config at
// construction and treat it as immutable; nothing is compiled in.
type Config struct {
	// FeeBps is the platform fee in basis points (10000 = 100%) taken
	// from every paid purchase and forwarded to Treasury.
	FeeBps uint64

	// Treasury receives the platform fee.
	Treasury string

	// BatchLimit caps the entry count of batch role operations.
	BatchLimit int

	// MinDeadlineLead and MaxDeadlineWindow bound the validity window of a
	// signed work-creation request relative to submission time. A deadline
	// closer than the lead or further out than the window is rejected.
	MinDeadlineLead   time.Duration
	MaxDeadlineWindow time.Duration

	// MaxSequence caps the per-creator yearly work sequence.
	MaxSequence uint64

	// MaxPrice caps the price field of a work-creation request.
	MaxPrice uint64

	// MaxContentURILen caps the content URI length in bytes.
	MaxContentURILen int

	// PrimaryChain is the chain tag on which purchase and royalty logic
	// is active. Works configured for any other chain are read-only.
	PrimaryChain string

	// SigningDomain seeds request-hash domain separation.
	SigningDomain Domain
}

// DefaultConfig returns the production parameter set.
func DefaultConfig() Config {
	return Config{
		FeeBps:            1000,
		Treasury:          "opus-treasury",
		BatchLimit:        100,
		MinDeadlineLead:   time.Minute,
		MaxDeadlineWindow: 365 * 24 * time.Hour,
		MaxSequence:       99999,
		MaxPrice:          1 << 62,
		MaxContentURILen:  512,
		PrimaryChain:      "mainnet",
		SigningDomain: Domain{
			Name:    "opus",
			Version: "1",
			Salt:    "opus-protocol-v1",
		},
	}
}
