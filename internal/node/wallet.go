// Package node drives the device lifecycle: wallet derivation, the online
// status poller and the first-start orchestration.
package node

import (
	"fmt"

	"github.com/Edge-Works/EdgeNodeObserver/internal/configstore"
	"github.com/Edge-Works/EdgeNodeObserver/internal/events"
	"github.com/Edge-Works/EdgeNodeObserver/internal/index"
)

// ConfigStore is the slice of the persisted device configuration the
// lifecycle components read and write. Every call hits the store; nothing
// is cached between calls.
type ConfigStore interface {
	NodeAddress() (string, bool)
	WalletAddress() (string, bool)
	SetWalletAddress(addr string) error
	DeviceInitialized() bool
	SetDeviceInitialized() error
	IndexURL() string
}

// IndexQuerier is the read-only slice of the index service the lifecycle
// components use.
type IndexQuerier interface {
	Session(baseURL, nodeAddress string) (*index.Session, error)
	Stake(baseURL, stakeID string) (*index.Stake, error)
	DeviceStake(baseURL, nodeAddress string) (*index.DeviceStake, error)
}

// WalletResolver derives the operator payout wallet for a node address via
// the index service and persists it to the config store.
type WalletResolver struct {
	Store ConfigStore
	Index IndexQuerier
	Log   *events.Log
}

// ResolveAndPersist resolves nodeAddress to its stake's wallet and writes
// it to the store, then reads the value back rather than trusting the
// write. Exactly one log line is emitted per outcome; at most one write is
// performed. Failures are non-fatal, the caller owns retry policy.
func (r *WalletResolver) ResolveAndPersist(nodeAddress string) bool {
	indexURL := r.Store.IndexURL()

	sess, err := r.Index.Session(indexURL, nodeAddress)
	if err != nil {
		r.Log.Append("Could not fetch session while deriving wallet: " + err.Error())
		return false
	}
	stake, err := r.Index.Stake(indexURL, sess.Node.Stake)
	if err != nil {
		r.Log.Append("Could not fetch stake while deriving wallet: " + err.Error())
		return false
	}

	derived := stake.Wallet
	if !configstore.Present(derived) {
		r.Log.Append("Derived wallet address is not set, cannot persist it.")
		return false
	}

	if err := r.Store.SetWalletAddress(derived); err != nil {
		r.Log.Append("Could not persist wallet address: " + err.Error())
		return false
	}

	// Read back what was actually stored; a silent divergence here means
	// the store is corrupting values.
	stored, _ := r.Store.WalletAddress()
	if stored != derived {
		r.Log.Append(fmt.Sprintf("Config wallet different from derived wallet after setting. Config: %s Derived: %s", stored, derived))
		return false
	}

	r.Log.Append("Wallet address derived based on node address: " + stored)
	return true
}
