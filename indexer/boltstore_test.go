package indexer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *BoltStore {
	t.Helper()
	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBoltStore_WorksRoundTrip(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "ix.db"))

	require.NoError(t, s.PutWork("addr-1", "ID1"))
	require.NoError(t, s.PutWork("addr-2", "ID2"))

	works, err := s.Works()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"addr-1": "ID1", "addr-2": "ID2"}, works)
}

func TestBoltStore_PurchaseOrder(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "ix.db"))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.AppendPurchase(Purchase{
			Buyer:    "buyer-a",
			WorkAddr: "addr-1",
			WorkID:   "ID1",
			Time:     base.Add(time.Duration(i) * time.Minute),
			Price:    uint64(i + 1),
		}))
	}

	purchases, err := s.Purchases()
	require.NoError(t, err)
	require.Len(t, purchases, 3)
	for i, p := range purchases {
		assert.Equal(t, uint64(i+1), p.Price)
	}
}

func TestNewIndexerWithStore_Replay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ix.db")
	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	func() {
		s, err := OpenBoltStore(path)
		require.NoError(t, err)
		defer func() { _ = s.Close() }()

		ix, err := NewIndexerWithStore("admin", "factory", nil, s)
		require.NoError(t, err)
		require.NoError(t, ix.RegisterWork("factory", "addr-1", "ID1"))
		require.NoError(t, ix.IndexPurchase("addr-1", "buyer-a", "ID1", 500, t1))
	}()

	// Reopen: registered works, history, and aggregates survive.
	s := openStore(t, path)
	ix, err := NewIndexerWithStore("admin", "factory", nil, s)
	require.NoError(t, err)

	assert.True(t, ix.IsValidWork("addr-1"))
	assert.ErrorIs(t, ix.IndexPurchase("addr-1", "buyer-a", "ID1", 500, t1), ErrAlreadyIndexed)

	recs := ix.History("buyer-a", 0, 0)
	require.Len(t, recs, 1)
	assert.Equal(t, uint64(500), recs[0].Price)

	stats, ok := ix.Stats("buyer-a")
	require.True(t, ok)
	assert.Equal(t, uint64(1), stats.TotalPurchases)
	assert.Equal(t, uint64(500), stats.TotalSpent)
	assert.Equal(t, uint64(1), ix.Global().ActiveBuyers)
}
