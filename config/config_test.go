package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"FeeBps", cfg.FeeBps, uint64(1000)},
		{"BatchLimit", cfg.BatchLimit, 100},
		{"MaxSequence", cfg.MaxSequence, uint64(99999)},
		{"PrimaryChain", cfg.PrimaryChain, "mainnet"},
		{"DomainName", cfg.SigningDomain.Name, "opus"},
		{"DomainVersion", cfg.SigningDomain.Version, "1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"fee over 100%", func(c *Config) { c.FeeBps = 10001 }, ErrInvalidFee},
		{"empty treasury", func(c *Config) { c.Treasury = "" }, ErrEmptyTreasury},
		{"zero batch limit", func(c *Config) { c.BatchLimit = 0 }, ErrInvalidBatchLimit},
		{"negative batch limit", func(c *Config) { c.BatchLimit = -1 }, ErrInvalidBatchLimit},
		{"zero deadline lead", func(c *Config) { c.MinDeadlineLead = 0 }, ErrInvalidDeadlineBounds},
		{"inverted deadline bounds", func(c *Config) { c.MaxDeadlineWindow = time.Second }, ErrInvalidDeadlineBounds},
		{"zero sequence cap", func(c *Config) { c.MaxSequence = 0 }, ErrInvalidSequenceCap},
		{"six-digit sequence cap", func(c *Config) { c.MaxSequence = 100000 }, ErrInvalidSequenceCap},
		{"empty chain", func(c *Config) { c.PrimaryChain = "" }, ErrEmptyChain},
		{"empty domain name", func(c *Config) { c.SigningDomain.Name = "" }, ErrEmptyDomain},
		{"empty domain salt", func(c *Config) { c.SigningDomain.Salt = "" }, ErrEmptyDomain},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}
