// Package access holds the protocol's trust root: the administrator and
// verifier role sets, the super-admin owner, and the emergency-halt flag.
// Every other component consults this registry for authorization and halt
// checks; none of them may mutate it.
package access

import (
	"sync"

	"go.uber.org/zap"

	"github.com/opusorg/libopus-go/config"
	"github.com/opusorg/libopus-go/events"
)

// Role tags a privilege class in the registry.
type Role int

const (
	// RoleAdmin may verify identities and submit work registrations.
	RoleAdmin Role = iota + 1

	// RoleVerifier may submit work registrations on creators' behalf.
	RoleVerifier
)

// String returns the string representation of a Role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleVerifier:
		return "VERIFIER"
	default:
		return "UNKNOWN"
	}
}

// Registry is the role and emergency-halt authority. The owner is a
// permanent admin; role counts track the maps incrementally.
type Registry struct {
	mu            sync.Mutex
	cfg           *config.Config
	emit          events.Emitter
	owner         string
	admins        map[string]bool
	verifiers     map[string]bool
	adminCount    uint64
	verifierCount uint64
	paused        bool
}

// NewRegistry creates the trust root with the given owner, who starts as
// the sole administrator.
func NewRegistry(cfg *config.Config, owner string, emit events.Emitter) (*Registry, error) {
	if owner == "" {
		return nil, ErrInvalidAddress
	}
	if emit == nil {
		emit = events.Nop()
	}
	return &Registry{
		cfg:        cfg,
		emit:       emit,
		owner:      owner,
		admins:     map[string]bool{owner: true},
		verifiers:  make(map[string]bool),
		adminCount: 1,
	}, nil
}

// SetRole grants or revokes a role on actor. Only the owner may change
// roles. Toggling a role to its current state is an explicit error so
// audits can distinguish no-ops from changes.
func (r *Registry) SetRole(caller, actor string, role Role, grant bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.owner {
		return ErrUnauthorized
	}
	if actor == "" {
		return ErrInvalidAddress
	}

	switch role {
	case RoleAdmin:
		if grant {
			if r.admins[actor] {
				return ErrAlreadyAdmin
			}
			r.admins[actor] = true
			r.adminCount++
		} else {
			if actor == r.owner {
				return ErrOwnerLockout
			}
			if !r.admins[actor] {
				return ErrNotAdmin
			}
			delete(r.admins, actor)
			r.adminCount--
		}
	case RoleVerifier:
		if grant {
			if r.verifiers[actor] {
				return ErrAlreadyVerifier
			}
			r.verifiers[actor] = true
			r.verifierCount++
		} else {
			if !r.verifiers[actor] {
				return ErrNotVerifier
			}
			delete(r.verifiers, actor)
			r.verifierCount--
		}
	default:
		return ErrInvalidAddress
	}

	r.emit.Emit("access", "role_changed",
		zap.String("actor", actor),
		zap.String("role", role.String()),
		zap.Bool("granted", grant),
	)
	return nil
}

// BatchSetVerifiers grants or revokes the verifier role across a bounded
// batch. Empty addresses and entries already in the requested state are
// skipped without failing the batch; a batch in which nothing changed
// fails ErrZeroSuccess. One aggregate event carries the applied count.
func (r *Registry) BatchSetVerifiers(caller string, actors []string, grant bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.owner && !r.admins[caller] {
		return 0, ErrUnauthorized
	}
	if len(actors) > r.cfg.BatchLimit {
		return 0, ErrBatchTooLarge
	}

	applied := 0
	for _, actor := range actors {
		if actor == "" {
			continue
		}
		if r.verifiers[actor] == grant {
			continue
		}
		if grant {
			r.verifiers[actor] = true
			r.verifierCount++
		} else {
			delete(r.verifiers, actor)
			r.verifierCount--
		}
		applied++
	}
	if applied == 0 {
		return 0, ErrZeroSuccess
	}

	r.emit.Emit("access", "verifiers_batch_changed",
		zap.Bool("granted", grant),
		zap.Int("applied", applied),
		zap.Int("submitted", len(actors)),
	)
	return applied, nil
}

// ToggleEmergencyPause flips the protocol-wide halt flag. Owner or admin
// only. The toggle itself works while paused, otherwise the halt could
// never be lifted.
func (r *Registry) ToggleEmergencyPause(caller string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.owner && !r.admins[caller] {
		return false, ErrUnauthorized
	}
	r.paused = !r.paused

	r.emit.Emit("access", "pause_toggled",
		zap.String("by", caller),
		zap.Bool("paused", r.paused),
	)
	return r.paused, nil
}

// Paused reports whether the emergency halt is active.
func (r *Registry) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// IsAdmin reports whether actor holds the admin role.
func (r *Registry) IsAdmin(actor string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.admins[actor]
}

// IsVerifier reports whether actor holds the verifier role.
func (r *Registry) IsVerifier(actor string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verifiers[actor]
}

// Owner returns the super-admin address.
func (r *Registry) Owner() string {
	return r.owner
}

// AdminCount returns the number of administrators.
func (r *Registry) AdminCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.adminCount
}

// VerifierCount returns the number of verifiers.
func (r *Registry) VerifierCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verifierCount
}
