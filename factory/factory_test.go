package factory

import (
	"testing"
	"time"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opusorg/libopus-go/access"
	"github.com/opusorg/libopus-go/config"
	"github.com/opusorg/libopus-go/creative"
	"github.com/opusorg/libopus-go/events"
	"github.com/opusorg/libopus-go/identity"
	"github.com/opusorg/libopus-go/indexer"
	"github.com/opusorg/libopus-go/request"
	"github.com/opusorg/libopus-go/token"
	"github.com/opusorg/libopus-go/verification"
	"github.com/opusorg/libopus-go/work"
)

const factoryName = "opus-factory-main"

// submitTime pins the factory clock so derived IDs are predictable.
var submitTime = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	cfg     config.Config
	acl     *access.Registry
	ids     *identity.Registry
	ver     *verification.Registry
	codes   *creative.Registry
	ix      *indexer.Indexer
	asset   *token.Asset
	owners  *token.OwnershipLedger
	rec     *events.Recorder
	fac     *Factory
	priv    *ec.PrivateKey
	creator string
}

// newFixture wires the full registry stack, grants "verifier" the
// verifier role, and onboards one creator holding code US12345.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.DefaultConfig()
	rec := &events.Recorder{}

	acl, err := access.NewRegistry(&cfg, "owner", rec)
	require.NoError(t, err)
	require.NoError(t, acl.SetRole("owner", "verifier", access.RoleVerifier, true))

	ids := identity.NewRegistry(acl, rec)
	ver := verification.NewRegistry(&cfg, acl, ids, rec)
	codes := creative.NewRegistry(acl, ver, rec)
	asset := token.NewAsset()
	owners := token.NewOwnershipLedger()

	ix, err := indexer.NewIndexer("admin", factoryName, rec)
	require.NoError(t, err)

	fac, err := New(&cfg, Params{
		Name:      factoryName,
		ACL:       acl,
		Codes:     codes,
		Registrar: ix,
		Asset:     asset,
		Owners:    owners,
		Sink:      ix,
	}, rec)
	require.NoError(t, err)
	fac.now = func() time.Time { return submitTime }

	f := &fixture{
		cfg: cfg, acl: acl, ids: ids, ver: ver, codes: codes,
		ix: ix, asset: asset, owners: owners, rec: rec, fac: fac,
	}
	f.priv, f.creator = f.onboard(t, "creatorone", "US", "12345")
	return f
}

// onboard registers a profile, verifies it, and issues a creative code
// for a fresh keypair, returning the key and its protocol address.
func (f *fixture) onboard(t *testing.T, name, country, registry string) (*ec.PrivateKey, string) {
	t.Helper()
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	addr, err := request.AddressOf(priv.PubKey())
	require.NoError(t, err)

	_, err = f.ids.Register(addr, name)
	require.NoError(t, err)
	require.NoError(t, f.ver.SetVerification("owner", addr, true))
	_, err = f.codes.Register(addr, country, registry)
	require.NoError(t, err)
	return priv, addr
}

func (f *fixture) newRequest(nonce uint64) *request.WorkRequest {
	return &request.WorkRequest{
		ContentURI:  "ipfs://QmWorkContent",
		Price:       1_000_000,
		Recipients:  []string{"r1", "r2"},
		Percentages: []uint16{6000, 4000},
		Nonce:       nonce,
		Deadline:    submitTime.Add(time.Hour),
		TargetChain: f.cfg.PrimaryChain,
	}
}

func (f *fixture) sign(t *testing.T, req *request.WorkRequest, priv *ec.PrivateKey) []byte {
	t.Helper()
	sig, err := request.Sign(req, f.fac.Domain(), priv)
	require.NoError(t, err)
	return sig
}

func TestCreateWork(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(0)
	sig := f.sign(t, req, f.priv)

	w, err := f.fac.CreateWork("verifier", req, sig)
	require.NoError(t, err)

	assert.Equal(t, "US123452500001", w.ID())
	assert.Equal(t, f.creator, w.Creator())
	assert.Equal(t, uint64(1), f.fac.Nonce(f.creator))
	assert.Equal(t, uint64(1), f.fac.SequenceFor(f.creator, 25))
	assert.Equal(t, 1, f.fac.WorkCount())
	assert.True(t, f.ix.IsValidWork(w.Addr()))

	got, err := f.fac.WorkByID("US123452500001")
	require.NoError(t, err)
	assert.Same(t, w, got)

	got, err = f.fac.WorkByChainID(f.cfg.PrimaryChain, "US123452500001")
	require.NoError(t, err)
	assert.Same(t, w, got)

	assert.Equal(t, 1, f.rec.Count("factory", "work_created"))
}

func TestCreateWork_SequenceIncrements(t *testing.T) {
	f := newFixture(t)

	for i, want := range []string{"US123452500001", "US123452500002", "US123452500003"} {
		req := f.newRequest(uint64(i))
		w, err := f.fac.CreateWork("verifier", req, f.sign(t, req, f.priv))
		require.NoError(t, err)
		assert.Equal(t, want, w.ID())
	}
	assert.Equal(t, uint64(3), f.fac.SequenceFor(f.creator, 25))
}

func TestCreateWork_YearResetsSequence(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(0)
	_, err := f.fac.CreateWork("verifier", req, f.sign(t, req, f.priv))
	require.NoError(t, err)

	f.fac.now = func() time.Time { return submitTime.AddDate(1, 0, 0) }
	req = f.newRequest(1)
	req.Deadline = submitTime.AddDate(1, 0, 0).Add(time.Hour)
	w, err := f.fac.CreateWork("verifier", req, f.sign(t, req, f.priv))
	require.NoError(t, err)

	assert.Equal(t, "US123452600001", w.ID())
	assert.Equal(t, uint64(1), f.fac.SequenceFor(f.creator, 26))
}

func TestCreateWork_AdminMaySubmit(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(0)

	_, err := f.fac.CreateWork("owner", req, f.sign(t, req, f.priv))
	assert.NoError(t, err)
}

func TestCreateWork_Unauthorized(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(0)

	_, err := f.fac.CreateWork("stranger", req, f.sign(t, req, f.priv))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, uint64(0), f.fac.Nonce(f.creator))
}

func TestCreateWork_Paused(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(0)
	sig := f.sign(t, req, f.priv)

	_, err := f.acl.ToggleEmergencyPause("owner")
	require.NoError(t, err)

	_, err = f.fac.CreateWork("verifier", req, sig)
	assert.ErrorIs(t, err, access.ErrPaused)
}

func TestCreateWork_NonceMismatch(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(5)

	_, err := f.fac.CreateWork("verifier", req, f.sign(t, req, f.priv))
	assert.ErrorIs(t, err, ErrNonceMismatch)
}

func TestCreateWork_ReplayRejected(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(0)
	sig := f.sign(t, req, f.priv)

	_, err := f.fac.CreateWork("verifier", req, sig)
	require.NoError(t, err)

	// The nonce advanced, so the identical request and signature are dead.
	_, err = f.fac.CreateWork("verifier", req, sig)
	assert.ErrorIs(t, err, ErrNonceMismatch)
}

func TestCreateWork_NoCreativeCode(t *testing.T) {
	f := newFixture(t)

	// A valid signature from a key with no creative code on file.
	stray, err := ec.NewPrivateKey()
	require.NoError(t, err)
	req := f.newRequest(0)

	_, err = f.fac.CreateWork("verifier", req, f.sign(t, req, stray))
	assert.ErrorIs(t, err, ErrNoCreativeCode)
}

func TestCreateWork_TamperedRequest(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(0)
	sig := f.sign(t, req, f.priv)

	// Recovery over the altered digest yields some other address, which
	// holds no creative code.
	req.Price = 2_000_000
	_, err := f.fac.CreateWork("verifier", req, sig)
	assert.Error(t, err)
	assert.Equal(t, uint64(0), f.fac.Nonce(f.creator))
}

func TestCreateWork_MalformedSignature(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(0)

	_, err := f.fac.CreateWork("verifier", req, []byte("short"))
	assert.ErrorIs(t, err, request.ErrInvalidSignature)
}

func TestCreateWork_ExpiredDeadline(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(0)
	req.Deadline = submitTime.Add(-time.Minute)

	_, err := f.fac.CreateWork("verifier", req, f.sign(t, req, f.priv))
	assert.ErrorIs(t, err, request.ErrDeadlineExpired)
}

func TestCreateWork_SequenceExhausted(t *testing.T) {
	f := newFixture(t)
	f.fac.seqs[seqKey{creator: f.creator, year: 25}] = f.cfg.MaxSequence

	req := f.newRequest(0)
	_, err := f.fac.CreateWork("verifier", req, f.sign(t, req, f.priv))
	assert.ErrorIs(t, err, ErrSequenceExhausted)
	assert.Equal(t, uint64(0), f.fac.Nonce(f.creator))
}

func TestCreateWork_DuplicateIDAcrossChains(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(0)
	_, err := f.fac.CreateWork("verifier", req, f.sign(t, req, f.priv))
	require.NoError(t, err)

	// Force the sequence to re-derive the same ID for another chain; the
	// global uniqueness check must still reject it.
	f.fac.seqs[seqKey{creator: f.creator, year: 25}] = 0
	req = f.newRequest(1)
	req.TargetChain = "sidechain"
	_, err = f.fac.CreateWork("verifier", req, f.sign(t, req, f.priv))
	assert.ErrorIs(t, err, ErrWorkExists)
}

func TestNextWorkID(t *testing.T) {
	f := newFixture(t)

	id, err := f.fac.NextWorkID(f.creator)
	require.NoError(t, err)
	assert.Equal(t, "US123452500001", id)

	req := f.newRequest(0)
	w, err := f.fac.CreateWork("verifier", req, f.sign(t, req, f.priv))
	require.NoError(t, err)
	assert.Equal(t, id, w.ID())

	id, err = f.fac.NextWorkID(f.creator)
	require.NoError(t, err)
	assert.Equal(t, "US123452500002", id)

	_, err = f.fac.NextWorkID("nobody")
	assert.ErrorIs(t, err, ErrNoCreativeCode)
}

func TestCreateWork_SecondCreator(t *testing.T) {
	f := newFixture(t)
	priv2, creator2 := f.onboard(t, "creatortwo", "DE", "ABC99")

	req := f.newRequest(0)
	w, err := f.fac.CreateWork("verifier", req, f.sign(t, req, priv2))
	require.NoError(t, err)

	// Sequences are per creator; the second creator starts at 00001.
	assert.Equal(t, "DEABC992500001", w.ID())
	assert.Equal(t, creator2, w.Creator())
	assert.Equal(t, 1, f.fac.WorkCount())
}

// TestPurchaseLifecycle drives a work from signed request through purchase
// and distribution, checking the fee and split amounts end to end.
func TestPurchaseLifecycle(t *testing.T) {
	f := newFixture(t)
	req := f.newRequest(0)
	w, err := f.fac.CreateWork("verifier", req, f.sign(t, req, f.priv))
	require.NoError(t, err)

	f.asset.Mint("buyer", 1_000_000)
	require.NoError(t, f.asset.Approve("buyer", w.Addr(), 1_000_000))
	require.NoError(t, w.Purchase("buyer", work.EditionDigital))

	assert.Equal(t, uint64(100_000), f.asset.BalanceOf(f.cfg.Treasury))
	assert.Equal(t, uint64(900_000), w.EarningsLedger().PendingPurchase)
	assert.Equal(t, uint64(0), f.asset.BalanceOf("buyer"))
	assert.True(t, f.owners.Holds(w.ID(), "buyer"))

	require.NoError(t, w.DistributeRoyaltiesNow(work.DistributeAll))
	assert.Equal(t, uint64(540_000), f.asset.BalanceOf("r1"))
	assert.Equal(t, uint64(360_000), f.asset.BalanceOf("r2"))
	assert.Equal(t, uint64(0), w.EarningsLedger().Pending())

	stats, ok := f.ix.Stats("buyer")
	require.True(t, ok)
	assert.Equal(t, uint64(1), stats.TotalPurchases)
	assert.Equal(t, uint64(1_000_000), stats.TotalSpent)
	assert.Equal(t, uint64(1), f.ix.Global().TotalPurchases)
}
