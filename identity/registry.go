// Package identity maps each external actor to at most one permanent
// human-readable name. The binding is bijective and soulbound: a name is
// never renamed, reassigned, or transferred.
package identity

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/opusorg/libopus-go/access"
	"github.com/opusorg/libopus-go/events"
)

const (
	minNameLen = 3
	maxNameLen = 30
)

// Profile is one registered identity.
type Profile struct {
	ID        uint64
	Actor     string
	Name      string
	CreatedAt time.Time
}

// Registry holds the actor-name bijection.
type Registry struct {
	mu      sync.Mutex
	acl     *access.Registry
	emit    events.Emitter
	byActor map[string]*Profile
	byName  map[string]string // name -> actor
	nextID  uint64
	now     func() time.Time
}

// NewRegistry creates an empty identity registry consulting acl for the
// emergency halt.
func NewRegistry(acl *access.Registry, emit events.Emitter) *Registry {
	if emit == nil {
		emit = events.Nop()
	}
	return &Registry{
		acl:     acl,
		emit:    emit,
		byActor: make(map[string]*Profile),
		byName:  make(map[string]string),
		nextID:  1,
		now:     time.Now,
	}
}

// validName reports whether s is lowercase alphanumeric.
func validName(s string) bool {
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Register binds name to actor. Each actor registers at most once and each
// name belongs to at most one actor, permanently.
func (r *Registry) Register(actor, name string) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.acl.Paused() {
		return Profile{}, access.ErrPaused
	}
	if actor == "" {
		return Profile{}, ErrInvalidAddress
	}
	if len(name) < minNameLen || len(name) > maxNameLen {
		return Profile{}, ErrNameLength
	}
	if !validName(name) {
		return Profile{}, ErrInvalidName
	}
	if _, ok := r.byActor[actor]; ok {
		return Profile{}, ErrProfileExists
	}
	if _, ok := r.byName[name]; ok {
		return Profile{}, ErrNameTaken
	}

	p := &Profile{
		ID:        r.nextID,
		Actor:     actor,
		Name:      name,
		CreatedAt: r.now(),
	}
	r.nextID++
	r.byActor[actor] = p
	r.byName[name] = actor

	r.emit.Emit("identity", "profile_created",
		zap.Uint64("profile_id", p.ID),
		zap.String("actor", actor),
		zap.String("name", name),
	)
	return *p, nil
}

// Transfer always fails: identities cannot change hands.
func (r *Registry) Transfer(actor, to string) error {
	return ErrSoulbound
}

// ProfileByActor returns the profile registered by actor.
func (r *Registry) ProfileByActor(actor string) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byActor[actor]
	if !ok {
		return Profile{}, ErrNoProfile
	}
	return *p, nil
}

// ActorByName returns the actor holding name.
func (r *Registry) ActorByName(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	actor, ok := r.byName[name]
	return actor, ok
}

// HasProfile reports whether actor registered a profile.
func (r *Registry) HasProfile(actor string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byActor[actor]
	return ok
}

// ProfileCount returns the number of registered profiles.
func (r *Registry) ProfileCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextID - 1
}
