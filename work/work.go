// Package work implements the per-item purchase and royalty engine. One
// Work instance exists per registered item; it holds the edition table,
// the royalty split, and the earnings ledger, and reports every purchase
// to the protocol-wide indexer.
package work

import (
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"go.uber.org/zap"

	"github.com/opusorg/libopus-go/access"
	"github.com/opusorg/libopus-go/config"
	"github.com/opusorg/libopus-go/events"
	"github.com/opusorg/libopus-go/token"
)

const totalBps = 10000

// EditionKind selects one of the fixed edition slots.
type EditionKind int

const (
	// EditionStreaming is always created, enabled, and permanently free.
	EditionStreaming EditionKind = iota

	// EditionDigital is the standard paid edition.
	EditionDigital

	// EditionCollectors is the premium paid edition.
	EditionCollectors

	editionCount
)

// String returns the string representation of an EditionKind.
func (k EditionKind) String() string {
	switch k {
	case EditionStreaming:
		return "STREAMING"
	case EditionDigital:
		return "DIGITAL"
	case EditionCollectors:
		return "COLLECTORS"
	default:
		return "UNKNOWN"
	}
}

// Edition is one priced purchase tier.
type Edition struct {
	Price   uint64
	Created bool
	Enabled bool
}

// Share is one royalty recipient with its basis-point share.
type Share struct {
	Recipient string
	Bps       uint16
}

// DistributionMode selects which pending bucket a distribution call pays out.
type DistributionMode int

const (
	// DistributePurchases pays out pending purchase earnings.
	DistributePurchases DistributionMode = iota

	// DistributeRoyalties pays out pending external royalty earnings.
	DistributeRoyalties

	// DistributeAll pays out both buckets.
	DistributeAll
)

// Earnings is the cumulative and pending revenue ledger of one work.
type Earnings struct {
	PurchaseTotal   uint64
	RoyaltyTotal    uint64
	PendingPurchase uint64
	PendingRoyalty  uint64
}

// Pending returns the total undistributed amount.
func (e Earnings) Pending() uint64 { return e.PendingPurchase + e.PendingRoyalty }

// PurchaseSink receives purchase reports. *indexer.Indexer satisfies it.
type PurchaseSink interface {
	// CanIndex reports whether a purchase by buyer would be accepted.
	CanIndex(reporter, buyer string) error

	// IndexPurchase records an accepted purchase.
	IndexPurchase(reporter, buyer, workID string, price uint64, ts time.Time) error
}

// Params collects the immutable construction inputs of a Work.
type Params struct {
	ID      string
	Creator string
	Chain   string  // chain this instance is deployed on
	Price   uint64  // initial digital-edition price
	Split   []Share // royalty table; shares must sum to 10000
	Asset   token.PaymentAsset
	ACL     *access.Registry
	Sink    PurchaseSink
	Owners  *token.OwnershipLedger
}

// Work is one registered item. Creator, split, asset, and chain are fixed
// at construction; purchases and distributions mutate only the earnings
// ledger, the edition table, and the per-buyer purchase flags.
type Work struct {
	cfg     *config.Config
	emit    events.Emitter
	id      string
	addr    string
	creator string
	chain   string
	asset   token.PaymentAsset
	acl     *access.Registry
	sink    PurchaseSink
	owners  *token.OwnershipLedger
	split   []Share

	mu        sync.Mutex
	busy      bool
	editions  [editionCount]Edition
	purchased [editionCount]map[string]bool
	earnings  Earnings
	now       func() time.Time
}

// New constructs a Work. The streaming edition starts created, enabled,
// and free; the digital edition starts created and enabled at the given
// price; the collectors edition starts uncreated.
func New(cfg *config.Config, p Params, emit events.Emitter) (*Work, error) {
	if p.Asset == nil || p.ACL == nil || p.Sink == nil || p.Owners == nil {
		return nil, ErrNilParam
	}
	if p.ID == "" || p.Creator == "" || p.Chain == "" {
		return nil, fmt.Errorf("%w: id, creator, and chain are required", ErrNilParam)
	}
	if err := validateSplit(p.Split); err != nil {
		return nil, err
	}
	if p.Price > cfg.MaxPrice {
		return nil, fmt.Errorf("%w: %d", ErrPriceTooHigh, p.Price)
	}
	if emit == nil {
		emit = events.Nop()
	}

	w := &Work{
		cfg:     cfg,
		emit:    emit,
		id:      p.ID,
		addr:    deriveAddr(p.ID, p.Chain),
		creator: p.Creator,
		chain:   p.Chain,
		asset:   p.Asset,
		acl:     p.ACL,
		sink:    p.Sink,
		owners:  p.Owners,
		split:   append([]Share(nil), p.Split...),
		now:     time.Now,
	}
	w.editions[EditionStreaming] = Edition{Price: 0, Created: true, Enabled: true}
	w.editions[EditionDigital] = Edition{Price: p.Price, Created: true, Enabled: true}
	for i := range w.purchased {
		w.purchased[i] = make(map[string]bool)
	}
	return w, nil
}

// deriveAddr computes the work's protocol address from its identity.
func deriveAddr(id, chain string) string {
	return hex.EncodeToString(bsvhash.Hash160([]byte(id + ":" + chain)))
}

// begin takes the reentrancy latch for a mutating entry point.
func (w *Work) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return ErrReentrancy
	}
	w.busy = true
	return nil
}

// end releases the reentrancy latch.
func (w *Work) end() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

// Purchase buys one edition for buyer. At most one purchase per buyer per
// edition, and the indexer additionally enforces one indexed purchase per
// (buyer, work) pair. That check runs before any money moves, so a
// doomed purchase aborts with no effects at all.
func (w *Work) Purchase(buyer string, kind EditionKind) error {
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	if w.acl.Paused() {
		return access.ErrPaused
	}
	if w.chain != w.cfg.PrimaryChain {
		return ErrNotPrimaryChain
	}
	if buyer == "" {
		return fmt.Errorf("%w: buyer", ErrNilParam)
	}
	if kind < 0 || kind >= editionCount {
		return ErrInvalidEdition
	}

	w.mu.Lock()
	ed := w.editions[kind]
	already := w.purchased[kind][buyer]
	w.mu.Unlock()

	if !ed.Created {
		return ErrEditionNotCreated
	}
	if !ed.Enabled {
		return ErrEditionDisabled
	}
	if already {
		return ErrAlreadyPurchased
	}
	if err := w.sink.CanIndex(w.addr, buyer); err != nil {
		return err
	}

	fee := mulDivBps(ed.Price, w.cfg.FeeBps)
	net := ed.Price - fee

	if ed.Price > 0 {
		if err := w.asset.TransferFrom(w.addr, buyer, w.addr, ed.Price); err != nil {
			return fmt.Errorf("%w: pulling payment: %w", ErrTransferFailed, err)
		}
		if err := w.asset.Transfer(w.addr, w.cfg.Treasury, fee); err != nil {
			// Unwind the pull so the failed purchase has no effect.
			if rerr := w.asset.Transfer(w.addr, buyer, ed.Price); rerr != nil {
				return fmt.Errorf("%w: fee forward failed and refund failed: %w", ErrTransferFailed, rerr)
			}
			return fmt.Errorf("%w: forwarding fee: %w", ErrTransferFailed, err)
		}
	}

	ts := w.now()

	// Index before committing any local state. On failure both payment
	// legs are unwound, so a rejected report leaves no trace of the
	// purchase anywhere.
	if err := w.sink.IndexPurchase(w.addr, buyer, w.id, ed.Price, ts); err != nil {
		if ed.Price > 0 {
			if rerr := w.asset.Transfer(w.addr, buyer, net); rerr != nil {
				return fmt.Errorf("%w: index failed and refund failed: %w", ErrTransferFailed, rerr)
			}
			if fee > 0 {
				if rerr := w.asset.Transfer(w.cfg.Treasury, buyer, fee); rerr != nil {
					return fmt.Errorf("%w: index failed and fee reversal failed: %w", ErrTransferFailed, rerr)
				}
			}
		}
		return err
	}

	w.mu.Lock()
	w.purchased[kind][buyer] = true
	if ed.Price > 0 {
		w.earnings.PurchaseTotal += net
		w.earnings.PendingPurchase += net
	}
	w.mu.Unlock()

	if !w.owners.Holds(w.id, buyer) {
		if err := w.owners.Mint(w.id, buyer); err != nil {
			return err
		}
	}

	w.emit.Emit("work", "purchase",
		zap.String("work_id", w.id),
		zap.String("buyer", buyer),
		zap.String("edition", kind.String()),
		zap.Uint64("price", ed.Price),
		zap.Uint64("fee", fee),
	)
	return nil
}

// DistributeRoyaltiesNow pays out the selected pending bucket to the
// royalty recipients. The pending amount is zeroed before any transfer;
// a failed transfer restores the undisbursed remainder and aborts.
func (w *Work) DistributeRoyaltiesNow(mode DistributionMode) error {
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	if w.acl.Paused() {
		return access.ErrPaused
	}
	if w.chain != w.cfg.PrimaryChain {
		return ErrNotPrimaryChain
	}

	w.mu.Lock()
	var amount uint64
	switch mode {
	case DistributePurchases:
		amount = w.earnings.PendingPurchase
		w.earnings.PendingPurchase = 0
	case DistributeRoyalties:
		amount = w.earnings.PendingRoyalty
		w.earnings.PendingRoyalty = 0
	default:
		amount = w.earnings.PendingPurchase + w.earnings.PendingRoyalty
		w.earnings.PendingPurchase = 0
		w.earnings.PendingRoyalty = 0
	}
	w.mu.Unlock()

	if amount == 0 {
		return ErrNothingPending
	}

	if err := w.payout(amount, mode); err != nil {
		return err
	}

	w.emit.Emit("work", "distribution",
		zap.String("work_id", w.id),
		zap.Uint64("amount", amount),
		zap.Int("recipients", len(w.split)),
	)
	return nil
}

// payout transfers amount across the split table, remainder-exact. On a
// failed transfer the undisbursed tail is restored to the pending bucket
// the caller drew from.
func (w *Work) payout(amount uint64, mode DistributionMode) error {
	shares := splitShares(amount, w.split)
	for i, s := range w.split {
		if shares[i] == 0 {
			continue
		}
		if err := w.asset.Transfer(w.addr, s.Recipient, shares[i]); err != nil {
			var undisbursed uint64
			for _, rest := range shares[i:] {
				undisbursed += rest
			}
			w.restorePending(undisbursed, mode)
			return fmt.Errorf("%w: paying %s: %w", ErrTransferFailed, s.Recipient, err)
		}
	}
	return nil
}

func (w *Work) restorePending(amount uint64, mode DistributionMode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if mode == DistributeRoyalties {
		w.earnings.PendingRoyalty += amount
	} else {
		w.earnings.PendingPurchase += amount
	}
}

// OnRoyaltyReceived notices externally arrived royalty revenue (work
// balance above the tracked pending amount), credits it, and distributes
// it immediately with the same remainder-exact split.
func (w *Work) OnRoyaltyReceived() (uint64, error) {
	if err := w.begin(); err != nil {
		return 0, err
	}
	defer w.end()

	if w.acl.Paused() {
		return 0, access.ErrPaused
	}
	if w.chain != w.cfg.PrimaryChain {
		return 0, ErrNotPrimaryChain
	}

	w.mu.Lock()
	tracked := w.earnings.Pending()
	w.mu.Unlock()

	balance := w.asset.BalanceOf(w.addr)
	if balance <= tracked {
		return 0, ErrNothingPending
	}
	arrived := balance - tracked

	w.mu.Lock()
	w.earnings.RoyaltyTotal += arrived
	w.mu.Unlock()

	if err := w.payout(arrived, DistributeRoyalties); err != nil {
		return 0, err
	}

	w.emit.Emit("work", "royalty_received",
		zap.String("work_id", w.id),
		zap.Uint64("amount", arrived),
	)
	return arrived, nil
}

// CreateEdition creates a paid edition slot. Creator-only, primary-chain
// only; the streaming edition is fixed at construction.
func (w *Work) CreateEdition(caller string, kind EditionKind, price uint64, enabled bool) error {
	return w.mutateEdition(caller, kind, func(ed *Edition) error {
		if ed.Created {
			return ErrEditionExists
		}
		if price > w.cfg.MaxPrice {
			return fmt.Errorf("%w: %d", ErrPriceTooHigh, price)
		}
		ed.Price = price
		ed.Created = true
		ed.Enabled = enabled
		return nil
	}, "edition_created")
}

// UpdateEditionPrice changes the price of a created edition.
func (w *Work) UpdateEditionPrice(caller string, kind EditionKind, price uint64) error {
	return w.mutateEdition(caller, kind, func(ed *Edition) error {
		if !ed.Created {
			return ErrEditionNotCreated
		}
		if price > w.cfg.MaxPrice {
			return fmt.Errorf("%w: %d", ErrPriceTooHigh, price)
		}
		ed.Price = price
		return nil
	}, "price_updated")
}

// SetEditionStatus enables or disables a created edition.
func (w *Work) SetEditionStatus(caller string, kind EditionKind, enabled bool) error {
	return w.mutateEdition(caller, kind, func(ed *Edition) error {
		if !ed.Created {
			return ErrEditionNotCreated
		}
		ed.Enabled = enabled
		return nil
	}, "status_updated")
}

func (w *Work) mutateEdition(caller string, kind EditionKind, f func(*Edition) error, action string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.acl.Paused() {
		return access.ErrPaused
	}
	if w.chain != w.cfg.PrimaryChain {
		return ErrNotPrimaryChain
	}
	if caller != w.creator {
		return ErrNotCreator
	}
	if kind <= EditionStreaming || kind >= editionCount {
		if kind == EditionStreaming {
			return ErrStreamingFixed
		}
		return ErrInvalidEdition
	}

	if err := f(&w.editions[kind]); err != nil {
		return err
	}

	w.emit.Emit("work", action,
		zap.String("work_id", w.id),
		zap.String("edition", kind.String()),
		zap.Uint64("price", w.editions[kind].Price),
		zap.Bool("enabled", w.editions[kind].Enabled),
	)
	return nil
}

// ID returns the work's globally unique identifier.
func (w *Work) ID() string { return w.id }

// Addr returns the work's protocol address.
func (w *Work) Addr() string { return w.addr }

// Creator returns the creator address.
func (w *Work) Creator() string { return w.creator }

// Chain returns the chain tag this instance is deployed on.
func (w *Work) Chain() string { return w.chain }

// Split returns a copy of the royalty table.
func (w *Work) Split() []Share {
	return append([]Share(nil), w.split...)
}

// EarningsLedger returns a snapshot of the earnings ledger.
func (w *Work) EarningsLedger() Earnings {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.earnings
}

// HasPurchased reports whether buyer bought the given edition.
func (w *Work) HasPurchased(buyer string, kind EditionKind) bool {
	if kind < 0 || kind >= editionCount {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.purchased[kind][buyer]
}

// EditionInfo returns the edition slot for kind.
func (w *Work) EditionInfo(kind EditionKind) (Edition, error) {
	if kind < 0 || kind >= editionCount {
		return Edition{}, ErrInvalidEdition
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editions[kind], nil
}
