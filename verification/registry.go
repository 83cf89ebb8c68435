// Package verification tracks the admin-granted verified flag that gates
// creative-code issuance. A flag can only be set for actors that already
// hold an identity profile.
package verification

import (
	"sync"

	"go.uber.org/zap"

	"github.com/opusorg/libopus-go/access"
	"github.com/opusorg/libopus-go/config"
	"github.com/opusorg/libopus-go/events"
)

// ProfileSource answers whether an actor holds an identity profile.
// *identity.Registry satisfies it.
type ProfileSource interface {
	HasProfile(actor string) bool
}

// Registry holds the per-actor verified flag.
type Registry struct {
	mu       sync.Mutex
	cfg      *config.Config
	acl      *access.Registry
	profiles ProfileSource
	emit     events.Emitter
	verified map[string]bool
}

// NewRegistry creates an empty verification registry.
func NewRegistry(cfg *config.Config, acl *access.Registry, profiles ProfileSource, emit events.Emitter) *Registry {
	if emit == nil {
		emit = events.Nop()
	}
	return &Registry{
		cfg:      cfg,
		acl:      acl,
		profiles: profiles,
		emit:     emit,
		verified: make(map[string]bool),
	}
}

// SetVerification sets actor's verified flag. Admin-only; the actor must
// hold a profile; setting the current value is an explicit error.
func (r *Registry) SetVerification(caller, actor string, grant bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.acl.Paused() {
		return access.ErrPaused
	}
	if !r.acl.IsAdmin(caller) {
		return ErrUnauthorized
	}
	if actor == "" {
		return ErrInvalidAddress
	}
	if !r.profiles.HasProfile(actor) {
		return ErrNoProfile
	}
	if r.verified[actor] == grant {
		return ErrStatusUnchanged
	}

	if grant {
		r.verified[actor] = true
	} else {
		delete(r.verified, actor)
	}

	r.emit.Emit("verification", "status_changed",
		zap.String("actor", actor),
		zap.Bool("verified", grant),
	)
	return nil
}

// BatchSetVerification applies grant across a bounded batch, skipping
// empty addresses, actors without profiles, and entries already in the
// requested state. Fails ErrZeroSuccess if nothing changed.
func (r *Registry) BatchSetVerification(caller string, actors []string, grant bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.acl.Paused() {
		return 0, access.ErrPaused
	}
	if !r.acl.IsAdmin(caller) {
		return 0, ErrUnauthorized
	}
	if len(actors) > r.cfg.BatchLimit {
		return 0, ErrBatchTooLarge
	}

	applied := 0
	for _, actor := range actors {
		if actor == "" || !r.profiles.HasProfile(actor) {
			continue
		}
		if r.verified[actor] == grant {
			continue
		}
		if grant {
			r.verified[actor] = true
		} else {
			delete(r.verified, actor)
		}
		applied++
	}
	if applied == 0 {
		return 0, ErrZeroSuccess
	}

	r.emit.Emit("verification", "status_batch_changed",
		zap.Bool("verified", grant),
		zap.Int("applied", applied),
		zap.Int("submitted", len(actors)),
	)
	return applied, nil
}

// IsVerified reports whether actor is currently verified.
func (r *Registry) IsVerified(actor string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verified[actor]
}
