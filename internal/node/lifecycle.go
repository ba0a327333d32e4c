package node

import (
	"sync"

	"github.com/Edge-Works/EdgeNodeObserver/internal/backend"
	"github.com/Edge-Works/EdgeNodeObserver/internal/events"
)

// Orchestrator sequences the first-time device start: stake derivation,
// stake persistence, device launch, then the online-status poller. It owns
// the poller and the caller-visible initialized flag.
type Orchestrator struct {
	Store   ConfigStore
	Index   IndexQuerier
	Backend backend.Backend
	Poller  *Poller
	Log     *events.Log

	mu          sync.Mutex
	initialized bool
}

// StartDeviceForFirstTime runs the activation sequence. Any failing step
// logs its reason and aborts the remainder; the poller only starts after a
// successful device launch.
func (o *Orchestrator) StartDeviceForFirstTime() bool {
	stakeID, ok := o.deriveStakeID()
	if !ok {
		o.Log.Append("Could not derive stake via Index. Has your assign device transaction been confirmed? Please try again. If the error persists, contact support.")
		return false
	}
	if !o.Backend.SetStakeID(stakeID) {
		o.Log.Append("Error while persisting the stake id.")
		return false
	}
	if !o.Backend.StartDevice(false) {
		o.Log.Append("The device could not be started.")
		return false
	}
	o.completeInitialization()
	return true
}

// deriveStakeID resolves the stake currently assigned to this device. A
// not-found or network error is caught here and reported as false.
func (o *Orchestrator) deriveStakeID() (string, bool) {
	addr, ok := o.Store.NodeAddress()
	if !ok {
		o.Log.Append("Node address is not set. Please complete the other setup steps.")
		return "", false
	}
	ds, err := o.Index.DeviceStake(o.Store.IndexURL(), addr)
	if err != nil {
		o.Log.Append("Stake not found, http error: " + err.Error())
		return "", false
	}
	return ds.Stake, true
}

func (o *Orchestrator) completeInitialization() {
	if _, ok := o.Store.NodeAddress(); !ok {
		o.Log.Append("Node address is not set. Please complete the other setup steps.")
		return
	}
	o.Log.Append("Your node was started successfully! Sit back and relax. The observer will automatically keep checking if your node is online.")
	o.Poller.Start()
}

// SyncInitializationStatus reloads the persisted initialized flag into the
// orchestrator-visible state.
func (o *Orchestrator) SyncInitializationStatus() {
	initialized := o.Store.DeviceInitialized()
	o.mu.Lock()
	o.initialized = initialized
	o.mu.Unlock()
}

// Initialized reports the last synced initialization state.
func (o *Orchestrator) Initialized() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.initialized
}
