// Package factory registers works from verifier-submitted, creator-signed
// requests. Every accepted request derives a deterministic work ID from
// the creator's creative code, the current two-digit year, and a
// per-creator yearly sequence, then instantiates the work and registers
// it with the purchase indexer. A request either fully registers or
// leaves no trace: nonce, sequence, and registry state commit together.
package factory

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/opusorg/libopus-go/access"
	"github.com/opusorg/libopus-go/config"
	"github.com/opusorg/libopus-go/creative"
	"github.com/opusorg/libopus-go/events"
	"github.com/opusorg/libopus-go/request"
	"github.com/opusorg/libopus-go/token"
	"github.com/opusorg/libopus-go/work"
)

// CreativeSource resolves a creator to their registered creative code.
// *creative.Registry satisfies it.
type CreativeSource interface {
	CodeByActor(actor string) (creative.Entry, error)
}

// WorkRegistrar receives the address and ID of each created work.
// *indexer.Indexer satisfies it.
type WorkRegistrar interface {
	RegisterWork(caller, workAddr, workID string) error
}

// Params collects the construction inputs of a Factory.
type Params struct {
	Name      string // factory identity; bound into the signing domain
	ACL       *access.Registry
	Codes     CreativeSource
	Registrar WorkRegistrar
	Asset     token.PaymentAsset
	Owners    *token.OwnershipLedger
	Sink      work.PurchaseSink
}

type seqKey struct {
	creator string
	year    int
}

// Factory derives work IDs and instantiates works from signed requests.
type Factory struct {
	cfg       *config.Config
	emit      events.Emitter
	name      string
	dom       config.Domain
	acl       *access.Registry
	codes     CreativeSource
	registrar WorkRegistrar
	asset     token.PaymentAsset
	owners    *token.OwnershipLedger
	sink      work.PurchaseSink

	mu      sync.Mutex
	nonces  map[string]uint64
	seqs    map[seqKey]uint64
	byID    map[string]*work.Work
	byChain map[string]map[string]*work.Work
	now     func() time.Time
}

// New constructs a Factory. The signing domain is the configured one with
// the Registry field bound to the factory's own name, so signatures made
// for one factory deployment are invalid at every other.
func New(cfg *config.Config, p Params, emit events.Emitter) (*Factory, error) {
	if p.ACL == nil || p.Codes == nil || p.Registrar == nil || p.Asset == nil || p.Owners == nil || p.Sink == nil {
		return nil, ErrNilParam
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrNilParam)
	}
	if emit == nil {
		emit = events.Nop()
	}

	dom := cfg.SigningDomain
	dom.Registry = p.Name

	return &Factory{
		cfg:       cfg,
		emit:      emit,
		name:      p.Name,
		dom:       dom,
		acl:       p.ACL,
		codes:     p.Codes,
		registrar: p.Registrar,
		asset:     p.Asset,
		owners:    p.Owners,
		sink:      p.Sink,
		nonces:    make(map[string]uint64),
		seqs:      make(map[seqKey]uint64),
		byID:      make(map[string]*work.Work),
		byChain:   make(map[string]map[string]*work.Work),
		now:       time.Now,
	}, nil
}

// CreateWork validates and authenticates a signed work-creation request,
// derives the work ID, instantiates the work, and registers it with the
// indexer. The caller must be a verifier or an admin; the creator is the
// recovered signer, not the caller. On any failure no state changes.
func (f *Factory) CreateWork(caller string, req *request.WorkRequest, sig []byte) (*work.Work, error) {
	if f.acl.Paused() {
		return nil, access.ErrPaused
	}
	if !f.acl.IsVerifier(caller) && !f.acl.IsAdmin(caller) {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, caller)
	}

	submitted := f.now()
	if err := request.Validate(req, f.cfg, submitted); err != nil {
		return nil, err
	}
	creator, err := request.RecoverSigner(req, f.dom, sig)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if req.Nonce != f.nonces[creator] {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrNonceMismatch, req.Nonce, f.nonces[creator])
	}
	entry, err := f.codes.CodeByActor(creator)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCreativeCode, creator)
	}

	year := submitted.Year() % 100
	key := seqKey{creator: creator, year: year}
	seq := f.seqs[key] + 1
	if seq > f.cfg.MaxSequence {
		return nil, fmt.Errorf("%w: creator %s, year %02d", ErrSequenceExhausted, creator, year)
	}

	id := fmt.Sprintf("%s%02d%05d", entry.Code, year, seq)
	if _, taken := f.byChain[req.TargetChain][id]; taken {
		return nil, fmt.Errorf("%w: %s on %s", ErrWorkExists, id, req.TargetChain)
	}
	if _, taken := f.byID[id]; taken {
		return nil, fmt.Errorf("%w: %s", ErrWorkExists, id)
	}

	split := make([]work.Share, len(req.Recipients))
	for i, rcpt := range req.Recipients {
		split[i] = work.Share{Recipient: rcpt, Bps: req.Percentages[i]}
	}

	w, err := work.New(f.cfg, work.Params{
		ID:      id,
		Creator: creator,
		Chain:   req.TargetChain,
		Price:   req.Price,
		Split:   split,
		Asset:   f.asset,
		ACL:     f.acl,
		Sink:    f.sink,
		Owners:  f.owners,
	}, f.emit)
	if err != nil {
		return nil, err
	}
	if err := f.registrar.RegisterWork(f.name, w.Addr(), id); err != nil {
		return nil, err
	}

	// Commit point: nonce, sequence, and registry advance together.
	f.nonces[creator]++
	f.seqs[key] = seq
	if f.byChain[req.TargetChain] == nil {
		f.byChain[req.TargetChain] = make(map[string]*work.Work)
	}
	f.byChain[req.TargetChain][id] = w
	f.byID[id] = w

	f.emit.Emit("factory", "work_created",
		zap.String("work_id", id),
		zap.String("creator", creator),
		zap.String("chain", req.TargetChain),
		zap.String("addr", w.Addr()),
		zap.Uint64("price", req.Price),
		zap.Uint64("sequence", seq),
	)
	return w, nil
}

// NextWorkID previews the ID the creator's next accepted request would
// receive, without changing any state.
func (f *Factory) NextWorkID(creator string) (string, error) {
	entry, err := f.codes.CodeByActor(creator)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoCreativeCode, creator)
	}
	year := f.now().Year() % 100

	f.mu.Lock()
	defer f.mu.Unlock()
	seq := f.seqs[seqKey{creator: creator, year: year}] + 1
	if seq > f.cfg.MaxSequence {
		return "", fmt.Errorf("%w: creator %s, year %02d", ErrSequenceExhausted, creator, year)
	}
	return fmt.Sprintf("%s%02d%05d", entry.Code, year, seq), nil
}

// Name returns the factory identity bound into the signing domain.
func (f *Factory) Name() string { return f.name }

// Domain returns the signing domain requests must be signed against.
func (f *Factory) Domain() config.Domain { return f.dom }

// Nonce returns the creator's current request nonce.
func (f *Factory) Nonce(creator string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nonces[creator]
}

// SequenceFor returns the creator's consumed sequence count for a
// two-digit year.
func (f *Factory) SequenceFor(creator string, year int) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seqs[seqKey{creator: creator, year: year % 100}]
}

// WorkByID returns the work registered under id. IDs are globally
// unique across chains.
func (f *Factory) WorkByID(id string) (*work.Work, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWork, id)
	}
	return w, nil
}

// WorkByChainID returns the work registered under id on a specific chain.
func (f *Factory) WorkByChainID(chain, id string) (*work.Work, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.byChain[chain][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnknownWork, id, chain)
	}
	return w, nil
}

// WorkCount returns the number of created works across all chains.
func (f *Factory) WorkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.byChain {
		n += len(m)
	}
	return n
}
