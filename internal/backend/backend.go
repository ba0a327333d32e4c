// Package backend defines the contract with the process that actually runs
// the device binary and owns device-level persistence.
package backend

// Backend starts the device and persists its stake assignment. Both
// operations report success as a plain boolean; failures are logged by the
// implementation, never propagated as faults.
type Backend interface {
	// StartDevice launches the device, optionally updating to the latest
	// binary first.
	StartDevice(checkLatestBinary bool) bool

	// SetStakeID durably records the stake id assigned to this device.
	SetStakeID(stakeID string) bool
}
