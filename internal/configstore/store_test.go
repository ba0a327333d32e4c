package configstore

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Edge-Works/EdgeNodeObserver/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "config.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ConfigEntry{}))
	return New(db, "https://index.test.network")
}

func TestGetMissingKeyReturnsUnset(t *testing.T) {
	store := newTestStore(t)

	v, err := store.Get(KeyNodeAddress)
	require.NoError(t, err)
	require.Equal(t, SentinelUnset, v)
}

func TestSetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(KeyNodeAddress, "xe_7a65d81dC21E87d593aC30DFe0AcbC2622bbdAE8"))
	v, err := store.Get(KeyNodeAddress)
	require.NoError(t, err)
	require.Equal(t, "xe_7a65d81dC21E87d593aC30DFe0AcbC2622bbdAE8", v)

	// Overwrite updates in place.
	require.NoError(t, store.Set(KeyNodeAddress, "xe_other"))
	v, err = store.Get(KeyNodeAddress)
	require.NoError(t, err)
	require.Equal(t, "xe_other", v)
}

func TestPresent(t *testing.T) {
	require.False(t, Present(""))
	require.False(t, Present(SentinelUnset))
	require.False(t, Present(SentinelWalletLoadFailed))
	require.True(t, Present("xe_7a65d81dC21E87d593aC30DFe0AcbC2622bbdAE8"))
}

func TestWalletAddressSentinelsAreAbsent(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.WalletAddress()
	require.False(t, ok)

	require.NoError(t, store.SetWalletAddress(SentinelWalletLoadFailed))
	v, ok := store.WalletAddress()
	require.False(t, ok)
	require.Equal(t, SentinelWalletLoadFailed, v)

	require.NoError(t, store.SetWalletAddress("xe_wallet"))
	v, ok = store.WalletAddress()
	require.True(t, ok)
	require.Equal(t, "xe_wallet", v)
}

func TestLastNodePaymentDefaultsToZero(t *testing.T) {
	store := newTestStore(t)

	require.Zero(t, store.LastNodePayment())

	require.NoError(t, store.SetLastNodePayment(1673534284000))
	require.Equal(t, int64(1673534284000), store.LastNodePayment())
}

func TestDeviceInitializedFlag(t *testing.T) {
	store := newTestStore(t)

	require.False(t, store.DeviceInitialized())
	require.NoError(t, store.SetDeviceInitialized())
	require.True(t, store.DeviceInitialized())
}

func TestIndexURLFallsBackToDefault(t *testing.T) {
	store := newTestStore(t)

	require.Equal(t, "https://index.test.network", store.IndexURL())

	require.NoError(t, store.Set(KeyIndexURL, "https://index.xe.network"))
	require.Equal(t, "https://index.xe.network", store.IndexURL())
}
