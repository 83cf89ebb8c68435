// Package indexer is the cross-cutting purchase ledger. Every work
// instance reports purchases here; the indexer's sole defense against
// spoofed reports is that it only accepts them from addresses the
// configured factory registered as genuine works.
package indexer

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/opusorg/libopus-go/events"
)

// Purchase is one indexed purchase record.
type Purchase struct {
	Buyer    string
	WorkAddr string
	WorkID   string
	Time     time.Time
	Price    uint64
}

// BuyerStats aggregates one buyer's purchase history.
type BuyerStats struct {
	TotalPurchases uint64
	TotalSpent     uint64
	FirstPurchase  time.Time
	LastPurchase   time.Time
}

// GlobalStats aggregates across all buyers.
type GlobalStats struct {
	TotalPurchases uint64
	ActiveBuyers   uint64
}

// Indexer records purchase history and maintains per-buyer and global
// aggregates. Optionally backed by a BoltStore for durability.
type Indexer struct {
	mu      sync.Mutex
	emit    events.Emitter
	admin   string
	factory string

	works   map[string]string          // work address -> work ID
	indexed map[string]map[string]bool // work address -> buyer
	history map[string][]Purchase      // buyer -> records
	stats   map[string]*BuyerStats
	global  GlobalStats

	store *BoltStore // nil when running in-memory only
}

// NewIndexer creates an in-memory indexer. The factory address is the only
// caller allowed to register works; the admin may repoint it later.
func NewIndexer(admin, factory string, emit events.Emitter) (*Indexer, error) {
	if admin == "" || factory == "" {
		return nil, ErrInvalidAddress
	}
	if emit == nil {
		emit = events.Nop()
	}
	return &Indexer{
		emit:    emit,
		admin:   admin,
		factory: factory,
		works:   make(map[string]string),
		indexed: make(map[string]map[string]bool),
		history: make(map[string][]Purchase),
		stats:   make(map[string]*BuyerStats),
	}, nil
}

// NewIndexerWithStore creates an indexer over a BoltStore, replaying any
// persisted state before accepting new reports.
func NewIndexerWithStore(admin, factory string, emit events.Emitter, store *BoltStore) (*Indexer, error) {
	ix, err := NewIndexer(admin, factory, emit)
	if err != nil {
		return nil, err
	}
	ix.store = store
	if err := ix.load(); err != nil {
		return nil, err
	}
	return ix, nil
}

// load replays persisted works and purchases into memory.
func (ix *Indexer) load() error {
	works, err := ix.store.Works()
	if err != nil {
		return err
	}
	for addr, id := range works {
		ix.works[addr] = id
	}

	purchases, err := ix.store.Purchases()
	if err != nil {
		return err
	}
	for _, p := range purchases {
		ix.apply(p)
	}
	return nil
}

// RegisterWork marks a work address as a genuine factory deployment.
// Only the configured factory may call it.
func (ix *Indexer) RegisterWork(caller, workAddr, workID string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if caller != ix.factory {
		return ErrUnauthorized
	}
	if workAddr == "" || workID == "" {
		return ErrInvalidAddress
	}
	if _, ok := ix.works[workAddr]; ok {
		return ErrAlreadyRegistered
	}

	if ix.store != nil {
		if err := ix.store.PutWork(workAddr, workID); err != nil {
			return fmt.Errorf("%w: %w", ErrStore, err)
		}
	}
	ix.works[workAddr] = workID

	ix.emit.Emit("indexer", "work_registered",
		zap.String("work_addr", workAddr),
		zap.String("work_id", workID),
	)
	return nil
}

// CanIndex reports whether a purchase by buyer on the reporting work
// would be accepted. Works call this before moving any money so a doomed
// report aborts the purchase before any effect.
func (ix *Indexer) CanIndex(reporter, buyer string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.checkIndexable(reporter, buyer)
}

func (ix *Indexer) checkIndexable(reporter, buyer string) error {
	if buyer == "" {
		return ErrInvalidAddress
	}
	if _, ok := ix.works[reporter]; !ok {
		return ErrUnknownWork
	}
	if ix.indexed[reporter][buyer] {
		return ErrAlreadyIndexed
	}
	return nil
}

// IndexPurchase records a purchase reported by a registered work. A given
// (buyer, work) pair is indexed at most once.
func (ix *Indexer) IndexPurchase(reporter, buyer, workID string, price uint64, ts time.Time) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if err := ix.checkIndexable(reporter, buyer); err != nil {
		return err
	}
	if ix.works[reporter] != workID {
		return fmt.Errorf("%w: reporter holds %q, reported %q", ErrWorkMismatch, ix.works[reporter], workID)
	}

	p := Purchase{Buyer: buyer, WorkAddr: reporter, WorkID: workID, Time: ts, Price: price}
	if ix.store != nil {
		if err := ix.store.AppendPurchase(p); err != nil {
			return fmt.Errorf("%w: %w", ErrStore, err)
		}
	}
	ix.apply(p)

	ix.emit.Emit("indexer", "purchase_indexed",
		zap.String("buyer", buyer),
		zap.String("work_id", workID),
		zap.Uint64("price", price),
	)
	return nil
}

// apply mutates in-memory state for one purchase record.
func (ix *Indexer) apply(p Purchase) {
	m := ix.indexed[p.WorkAddr]
	if m == nil {
		m = make(map[string]bool)
		ix.indexed[p.WorkAddr] = m
	}
	m[p.Buyer] = true
	ix.history[p.Buyer] = append(ix.history[p.Buyer], p)

	s := ix.stats[p.Buyer]
	if s == nil {
		s = &BuyerStats{FirstPurchase: p.Time}
		ix.stats[p.Buyer] = s
		ix.global.ActiveBuyers++
	}
	s.TotalPurchases++
	if p.Price > 0 {
		s.TotalSpent += p.Price
	}
	s.LastPurchase = p.Time
	ix.global.TotalPurchases++
}

// History returns buyer's purchase records from offset, at most limit
// entries. A non-positive limit returns everything from offset.
func (ix *Indexer) History(buyer string, offset, limit int) []Purchase {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	records := ix.history[buyer]
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return nil
	}
	end := len(records)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]Purchase, end-offset)
	copy(out, records[offset:end])
	return out
}

// Stats returns buyer's aggregates; ok is false for buyers with no history.
func (ix *Indexer) Stats(buyer string) (BuyerStats, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	s, ok := ix.stats[buyer]
	if !ok {
		return BuyerStats{}, false
	}
	return *s, true
}

// Global returns the global aggregates.
func (ix *Indexer) Global() GlobalStats {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.global
}

// IsValidWork reports whether addr is a registered work address.
func (ix *Indexer) IsValidWork(addr string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	_, ok := ix.works[addr]
	return ok
}

// WorkID returns the work ID registered for addr.
func (ix *Indexer) WorkID(addr string) (string, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	id, ok := ix.works[addr]
	return id, ok
}

// SetFactory repoints the factory reference. Admin-only operational hook.
func (ix *Indexer) SetFactory(caller, factory string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if caller != ix.admin {
		return ErrUnauthorized
	}
	if factory == "" {
		return ErrInvalidAddress
	}
	ix.factory = factory
	ix.emit.Emit("indexer", "factory_changed", zap.String("factory", factory))
	return nil
}

// SetAdmin hands the admin identity to a new address. Admin-only.
func (ix *Indexer) SetAdmin(caller, admin string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if caller != ix.admin {
		return ErrUnauthorized
	}
	if admin == "" {
		return ErrInvalidAddress
	}
	ix.admin = admin
	ix.emit.Emit("indexer", "admin_changed", zap.String("admin", admin))
	return nil
}
