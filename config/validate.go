package config

// Validate checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func (c *Config) Validate() error {
	if c.FeeBps > 10000 {
		return ErrInvalidFee
	}
	if c.Treasury == "" {
		return ErrEmptyTreasury
	}
	if c.BatchLimit <= 0 {
		return ErrInvalidBatchLimit
	}
	if c.MinDeadlineLead <= 0 || c.MaxDeadlineWindow <= c.MinDeadlineLead {
		return ErrInvalidDeadlineBounds
	}
	if c.MaxSequence == 0 || c.MaxSequence > 99999 {
		return ErrInvalidSequenceCap
	}
	if c.PrimaryChain == "" {
		return ErrEmptyChain
	}
	d := c.SigningDomain
	if d.Name == "" || d.Version == "" || d.Salt == "" {
		return ErrEmptyDomain
	}
	return nil
}
