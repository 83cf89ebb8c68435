package token

import (
	"sync"
	"time"
)

// Ownership is one soulbound ownership token: proof that an owner bought a
// work. It never changes hands after mint.
type Ownership struct {
	WorkID   string
	Owner    string
	MintedAt time.Time
	Locker   string // exclusive lock holder; empty when unlocked
}

// OwnershipLedger tracks soulbound ownership tokens across all works.
// Transfer-style operations fail unconditionally: ownership of a purchased
// work is bound to the buyer for the token's lifetime.
//
// The lock extension supports cross-chain custody: a token minted with a
// locker is exclusively held by that locker address until the locker
// releases it. Locking never enables transfers; it only adds a second
// gate for variants that need it.
type OwnershipLedger struct {
	mu     sync.Mutex
	tokens map[string]map[string]*Ownership // workID -> owner
	now    func() time.Time
}

// NewOwnershipLedger returns an empty ledger.
func NewOwnershipLedger() *OwnershipLedger {
	return &OwnershipLedger{
		tokens: make(map[string]map[string]*Ownership),
		now:    time.Now,
	}
}

// Mint creates the ownership token for (workID, owner). At most one token
// exists per pair.
func (l *OwnershipLedger) Mint(workID, owner string) error {
	return l.mint(workID, owner, "")
}

// MintLocked creates the ownership token with an active lock held by locker.
func (l *OwnershipLedger) MintLocked(workID, owner, locker string) error {
	if locker == "" {
		return ErrZeroAddress
	}
	return l.mint(workID, owner, locker)
}

func (l *OwnershipLedger) mint(workID, owner, locker string) error {
	if workID == "" || owner == "" {
		return ErrZeroAddress
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	m := l.tokens[workID]
	if m == nil {
		m = make(map[string]*Ownership)
		l.tokens[workID] = m
	}
	if _, ok := m[owner]; ok {
		return ErrAlreadyMinted
	}
	m[owner] = &Ownership{WorkID: workID, Owner: owner, MintedAt: l.now(), Locker: locker}
	return nil
}

// Holds reports whether owner has the ownership token for workID.
func (l *OwnershipLedger) Holds(workID, owner string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.tokens[workID][owner]
	return ok
}

// Get returns a copy of the ownership token for (workID, owner).
func (l *OwnershipLedger) Get(workID, owner string) (Ownership, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.tokens[workID][owner]
	if !ok {
		return Ownership{}, ErrNotMinted
	}
	return *o, nil
}

// Transfer always fails: ownership tokens are soulbound.
func (l *OwnershipLedger) Transfer(workID, from, to string) error {
	return ErrSoulbound
}

// Approve always fails: ownership tokens are soulbound.
func (l *OwnershipLedger) Approve(workID, owner, spender string) error {
	return ErrSoulbound
}

// Lock places an exclusive lock on the (workID, owner) token. Only one
// lock may be active at a time.
func (l *OwnershipLedger) Lock(workID, owner, locker string) error {
	if locker == "" {
		return ErrZeroAddress
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.tokens[workID][owner]
	if !ok {
		return ErrNotMinted
	}
	if o.Locker != "" {
		return ErrAlreadyLocked
	}
	o.Locker = locker
	return nil
}

// Unlock releases the lock. Only the current locker may release it.
func (l *OwnershipLedger) Unlock(workID, owner, caller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.tokens[workID][owner]
	if !ok {
		return ErrNotMinted
	}
	if o.Locker == "" {
		return ErrNotLocked
	}
	if o.Locker != caller {
		return ErrNotLocker
	}
	o.Locker = ""
	return nil
}

// IsLocked reports whether the (workID, owner) token has an active lock.
func (l *OwnershipLedger) IsLocked(workID, owner string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.tokens[workID][owner]
	return ok && o.Locker != ""
}
