// Package creative issues the globally unique country+registry codes that
// seed all work-ID derivation. A verified actor claims at most one code;
// codes are permanent and never reassigned.
package creative

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/opusorg/libopus-go/access"
	"github.com/opusorg/libopus-go/events"
)

const (
	countryCodeLen  = 2
	registryCodeLen = 5
)

// VerificationSource answers whether an actor is verified.
// *verification.Registry satisfies it.
type VerificationSource interface {
	IsVerified(actor string) bool
}

// Entry is one issued creative code.
type Entry struct {
	Code      string
	CreatedAt time.Time
}

// Registry holds the actor-code mapping and enforces global code
// uniqueness.
type Registry struct {
	mu       sync.Mutex
	acl      *access.Registry
	verified VerificationSource
	emit     events.Emitter
	byActor  map[string]*Entry
	taken    map[string]bool
	count    uint64
	now      func() time.Time
}

// NewRegistry creates an empty creative-code registry.
func NewRegistry(acl *access.Registry, verified VerificationSource, emit events.Emitter) *Registry {
	if emit == nil {
		emit = events.Nop()
	}
	return &Registry{
		acl:      acl,
		verified: verified,
		emit:     emit,
		byActor:  make(map[string]*Entry),
		taken:    make(map[string]bool),
		now:      time.Now,
	}
}

func validCountryCode(s string) bool {
	if len(s) != countryCodeLen {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

func validRegistryCode(s string) bool {
	if len(s) != registryCodeLen {
		return false
	}
	for _, c := range s {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Register issues the code countryCode+registryCode to actor. The actor
// must be verified, must not already hold a code, and the combined code
// must be globally unique.
func (r *Registry) Register(actor, countryCode, registryCode string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.acl.Paused() {
		return Entry{}, access.ErrPaused
	}
	if actor == "" {
		return Entry{}, ErrInvalidAddress
	}
	if !r.verified.IsVerified(actor) {
		return Entry{}, ErrNotVerified
	}
	if _, ok := r.byActor[actor]; ok {
		return Entry{}, ErrCodeExists
	}
	if !validCountryCode(countryCode) {
		return Entry{}, ErrInvalidCountryCode
	}
	if !validRegistryCode(registryCode) {
		return Entry{}, ErrInvalidRegistryCode
	}

	code := countryCode + registryCode
	if r.taken[code] {
		return Entry{}, ErrCodeTaken
	}

	e := &Entry{Code: code, CreatedAt: r.now()}
	r.byActor[actor] = e
	r.taken[code] = true
	r.count++

	r.emit.Emit("creative", "code_registered",
		zap.String("actor", actor),
		zap.String("code", code),
	)
	return *e, nil
}

// CodeByActor returns the creative code held by actor.
func (r *Registry) CodeByActor(actor string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byActor[actor]
	if !ok {
		return Entry{}, ErrNoCode
	}
	return *e, nil
}

// IsCodeTaken reports whether the combined code has been issued.
func (r *Registry) IsCodeTaken(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.taken[code]
}

// Count returns the number of issued codes.
func (r *Registry) Count() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
