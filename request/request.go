// Package request validates and authenticates off-chain signed
// work-creation requests. It is pure: no state, no side effects. The
// factory trusts a request only after Validate accepts its fields and
// RecoverSigner ties the signature to the creator.
package request

import (
	"fmt"
	"time"

	"github.com/opusorg/libopus-go/config"
)

// The split table denominates shares in basis points.
const totalBps = 10000

// WorkRequest is the structured payload a creator signs off-chain to
// authorize registration of one work.
type WorkRequest struct {
	ContentURI  string
	Price       uint64
	Recipients  []string
	Percentages []uint16
	Nonce       uint64
	Deadline    time.Time
	TargetChain string
}

// Validate checks every request field against the configured bounds.
// It runs before any signature work so malformed requests are rejected
// without touching the curve.
func Validate(req *WorkRequest, cfg *config.Config, now time.Time) error {
	if req == nil {
		return fmt.Errorf("%w: request", ErrNilParam)
	}
	if req.ContentURI == "" || len(req.ContentURI) > cfg.MaxContentURILen {
		return fmt.Errorf("%w: %d bytes", ErrInvalidURI, len(req.ContentURI))
	}
	if req.Price > cfg.MaxPrice {
		return fmt.Errorf("%w: %d", ErrPriceTooHigh, req.Price)
	}
	if len(req.Recipients) == 0 || len(req.Recipients) != len(req.Percentages) {
		return fmt.Errorf("%w: %d recipients, %d percentages",
			ErrSplitMismatch, len(req.Recipients), len(req.Percentages))
	}
	var sum uint64
	for i, rcpt := range req.Recipients {
		if rcpt == "" {
			return fmt.Errorf("%w: index %d", ErrZeroRecipient, i)
		}
		sum += uint64(req.Percentages[i])
	}
	if sum != totalBps {
		return fmt.Errorf("%w: got %d", ErrBadSplitSum, sum)
	}

	// The deadline must sit inside (now+lead, now+window].
	if !req.Deadline.After(now) {
		return fmt.Errorf("%w: deadline %s", ErrDeadlineExpired, req.Deadline.Format(time.RFC3339))
	}
	if req.Deadline.Before(now.Add(cfg.MinDeadlineLead)) {
		return fmt.Errorf("%w: deadline %s", ErrDeadlineTooSoon, req.Deadline.Format(time.RFC3339))
	}
	if req.Deadline.After(now.Add(cfg.MaxDeadlineWindow)) {
		return fmt.Errorf("%w: deadline %s", ErrDeadlineTooFar, req.Deadline.Format(time.RFC3339))
	}
	return nil
}
