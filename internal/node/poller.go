package node

import (
	"fmt"
	"sync"
	"time"

	"github.com/Edge-Works/EdgeNodeObserver/internal/events"
	"github.com/Edge-Works/EdgeNodeObserver/internal/notify"
)

// State is the poller's lifecycle position.
type State int

const (
	StateIdle State = iota
	StatePolling
	StateSucceeded
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Resolver is satisfied by WalletResolver.
type Resolver interface {
	ResolveAndPersist(nodeAddress string) bool
}

// Poller rechecks the device's online status at a fixed spacing until the
// device is confirmed online and its wallet derived, or the attempt budget
// runs out. One Poller value exists per process; Start while active is a
// silent no-op. After exhaustion there are no automatic retries, a new
// device start has to re-trigger it.
type Poller struct {
	Interval time.Duration
	Limit    int

	Store    ConfigStore
	Index    IndexQuerier
	Resolver Resolver
	Notifier notify.Notifier
	Log      *events.Log

	// OnInitialized runs after the initialized flag is persisted, before
	// the success notification; the orchestrator re-syncs its view here.
	OnInitialized func()

	// newTicker is swapped in tests to feed ticks without real time.
	newTicker func(time.Duration) (<-chan time.Time, func())

	mu       sync.Mutex
	state    State
	active   bool
	attempts int
	stop     chan struct{}
}

func NewPoller(interval time.Duration, limit int) *Poller {
	return &Poller{
		Interval: interval,
		Limit:    limit,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
}

// Start begins polling. It returns false without side effects when a poll
// session is already active.
func (p *Poller) Start() bool {
	p.mu.Lock()
	if p.active {
		p.mu.Unlock()
		return false
	}
	p.active = true
	p.state = StatePolling
	p.attempts = 0
	p.stop = make(chan struct{})
	stop := p.stop
	p.mu.Unlock()

	go p.run(stop)
	return true
}

// Stop cancels an active poll session. Used on daemon shutdown only; the
// state machine itself ends sessions by succeeding or exhausting.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	p.active = false
	p.state = StateIdle
	close(p.stop)
}

// Snapshot returns the current state, attempt count and active flag.
func (p *Poller) Snapshot() (State, int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.attempts, p.active
}

func (p *Poller) run(stop <-chan struct{}) {
	ticks, cancel := p.newTicker(p.Interval)
	defer cancel()
	for {
		select {
		case <-stop:
			return
		case <-ticks:
			if done := p.tick(); done {
				return
			}
		}
	}
}

// tick is one poll attempt. It returns true when the session is over.
func (p *Poller) tick() bool {
	p.mu.Lock()
	p.attempts++
	count := p.attempts
	p.mu.Unlock()

	p.Log.Append(fmt.Sprintf("Rechecking node online status. Count: %d", count))

	// Re-read the address every tick; it may have been assigned since the
	// session started.
	addr, ok := p.Store.NodeAddress()
	if !ok {
		// Not a network failure, but the attempt still counts.
		p.Log.Append(fmt.Sprintf("Your node address %s is invalid", addr))
	} else if p.checkOnline(addr) {
		if p.Resolver.ResolveAndPersist(addr) {
			return p.succeed()
		}
		p.Log.Append("Node is viewed as online, but unable to derive wallet address. Wallet address is needed for node earning notifications.")
	}

	p.mu.Lock()
	exhausted := p.attempts >= p.Limit
	p.mu.Unlock()
	if exhausted {
		p.Log.Append("Could not find your node online after several retries. Please double check if your device code was correctly assigned. Try starting the node again. If the error keeps persisting, contact support.")
		p.finish(StateExhausted)
		return true
	}
	return false
}

func (p *Poller) checkOnline(nodeAddress string) bool {
	sess, err := p.Index.Session(p.Store.IndexURL(), nodeAddress)
	if err != nil {
		p.Log.Append("Node not found, http error: " + err.Error())
		return false
	}
	if !sess.Online {
		p.Log.Append("Node session exists. However, node is not online.")
		return false
	}
	p.Log.Append("Node is online.")
	return true
}

func (p *Poller) succeed() bool {
	if err := p.Store.SetDeviceInitialized(); err != nil {
		// Keep polling; a later tick can persist the flag.
		p.Log.Append("Could not persist the device initialized flag: " + err.Error())
		return false
	}
	if p.OnInitialized != nil {
		p.OnInitialized()
	}
	p.Notifier.Notify("Node Setup Completed", "Your Edge node setup has completed!")
	p.finish(StateSucceeded)
	return true
}

func (p *Poller) finish(s State) {
	p.mu.Lock()
	p.state = s
	p.active = false
	p.mu.Unlock()
}
