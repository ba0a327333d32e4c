package configstore

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/Edge-Works/EdgeNodeObserver/internal/models"
)

// Persisted configuration keys.
const (
	KeyDeviceInitialized = "device_initialized"
	KeyNodeAddress       = "node_address"
	KeyWalletAddress     = "wallet_address"
	KeyLastNodePayment   = "last_node_payment"
	KeyIndexURL          = "index_url"
)

// In-band sentinels carried over from the original config file format.
// Both stand for "absent" and are never valid addresses.
const (
	SentinelUnset            = "Unset"
	SentinelWalletLoadFailed = "CouldNotLoadWalletAddressFromConfig"
)

// Present reports whether a stored value is a real value rather than a
// sentinel standing in for "not configured".
func Present(v string) bool {
	return v != "" && v != SentinelUnset && v != SentinelWalletLoadFailed
}

// Store is the durable key/value configuration of the managed device.
// Every read goes to the database; values are never cached, so callers
// always act on the current persisted state.
type Store struct {
	db              *gorm.DB
	defaultIndexURL string
}

func New(db *gorm.DB, defaultIndexURL string) *Store {
	return &Store{db: db, defaultIndexURL: defaultIndexURL}
}

// Get returns the raw stored value for key, or SentinelUnset when the key
// has never been written.
func (s *Store) Get(key string) (string, error) {
	var entry models.ConfigEntry
	result := s.db.First(&entry, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SentinelUnset, nil
		}
		return SentinelUnset, result.Error
	}
	return entry.Value, nil
}

// Set writes the value for key, inserting or updating as needed.
func (s *Store) Set(key, value string) error {
	var entry models.ConfigEntry
	result := s.db.First(&entry, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			entry = models.ConfigEntry{Key: key, Value: value}
			return s.db.Create(&entry).Error
		}
		return result.Error
	}
	entry.Value = value
	return s.db.Save(&entry).Error
}

// NodeAddress returns the device's node address and whether one is set.
// The raw value is returned even when absent so callers can log it.
func (s *Store) NodeAddress() (string, bool) {
	v, err := s.Get(KeyNodeAddress)
	if err != nil {
		return SentinelUnset, false
	}
	return v, Present(v)
}

// WalletAddress returns the persisted payout wallet and whether one is set.
func (s *Store) WalletAddress() (string, bool) {
	v, err := s.Get(KeyWalletAddress)
	if err != nil {
		return SentinelWalletLoadFailed, false
	}
	return v, Present(v)
}

func (s *Store) SetWalletAddress(addr string) error {
	return s.Set(KeyWalletAddress, addr)
}

// DeviceInitialized reports whether the device has completed first-time
// initialization. Once persisted true it is never reverted here.
func (s *Store) DeviceInitialized() bool {
	v, err := s.Get(KeyDeviceInitialized)
	if err != nil {
		return false
	}
	return v == "true"
}

func (s *Store) SetDeviceInitialized() error {
	return s.Set(KeyDeviceInitialized, "true")
}

// LastNodePayment returns the payout watermark: the timestamp (ms) of the
// most recently accepted payout, or 0 when none has been recorded.
func (s *Store) LastNodePayment() int64 {
	v, err := s.Get(KeyLastNodePayment)
	if err != nil || !Present(v) {
		return 0
	}
	ts, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return ts
}

func (s *Store) SetLastNodePayment(ts int64) error {
	return s.Set(KeyLastNodePayment, strconv.FormatInt(ts, 10))
}

// IndexURL returns the configured index service base URL, falling back to
// the compiled-in default when unset.
func (s *Store) IndexURL() string {
	v, err := s.Get(KeyIndexURL)
	if err != nil || !Present(v) {
		return s.defaultIndexURL
	}
	return v
}
