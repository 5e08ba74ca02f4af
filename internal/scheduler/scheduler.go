// Package scheduler implements the flood/drain scheduling variants and the
// factory that selects one from configuration.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tmcfarlane/floodpilot/internal/devices"
	"github.com/tmcfarlane/floodpilot/internal/environment"
	"github.com/tmcfarlane/floodpilot/internal/schedule"
)

// State is the externally visible phase of a scheduler worker.
type State string

const (
	StateIdle    State = "idle"
	StateFlood   State = "flood"
	StateDrain   State = "drain"
	StateWaiting State = "waiting"
)

// Scheduler is the contract every variant fulfils. Start is idempotent;
// Stop blocks up to timeout and must leave the device off.
type Scheduler interface {
	Start()
	Stop(timeout time.Duration) bool
	State() State
	Running() bool
	NextEventTime() *time.Time
	Status() map[string]interface{}
}

// pollInterval is the shutdown-flag check granularity inside timed waits.
const pollInterval = time.Second

// runner holds the lifecycle plumbing shared by every scheduler variant:
// the state mutex, the stop channel the worker polls, and the done channel
// Stop joins on.
type runner struct {
	mu      sync.Mutex
	state   State
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	logger  *zap.SugaredLogger

	// poll is overridable so tests run in milliseconds.
	poll time.Duration
	now  func() time.Time
}

func newRunner(logger *zap.SugaredLogger) runner {
	return runner{
		state:  StateIdle,
		logger: logger,
		poll:   pollInterval,
		now:    time.Now,
	}
}

// begin transitions to running and returns false when already started.
func (r *runner) begin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		r.logger.Warn("scheduler already running, ignoring start")
		return false
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	return true
}

// end marks the worker finished. Called from the worker goroutine.
func (r *runner) end() {
	r.mu.Lock()
	r.running = false
	r.state = StateIdle
	r.mu.Unlock()
	close(r.doneCh)
}

// halt signals the worker and joins it up to timeout. Returns false when
// the worker had to be abandoned.
func (r *runner) halt(timeout time.Duration) bool {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return true
	}
	select {
	case <-r.stopCh:
	default:
		close(r.stopCh)
	}
	done := r.doneCh
	r.mu.Unlock()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		r.logger.Warnw("worker did not stop in time, abandoning", "timeout", timeout)
		return false
	}
}

func (r *runner) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// State returns the current phase.
func (r *runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Running reports whether the worker is alive.
func (r *runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// sleep waits for d, waking at poll granularity to check the stop flag.
// Returns false when stopped.
func (r *runner) sleep(d time.Duration) bool {
	deadline := r.now().Add(d)
	for {
		remaining := deadline.Sub(r.now())
		if remaining <= 0 {
			return true
		}
		step := r.poll
		if remaining < step {
			step = remaining
		}
		select {
		case <-r.stopCh:
			return false
		case <-time.After(step):
		}
	}
}

// stopped reports whether shutdown has been requested.
func (r *runner) stopped() bool {
	select {
	case <-r.stopCh:
		return true
	default:
		return false
	}
}

// Config carries everything the factory needs to build a scheduler.
type Config struct {
	SystemType   string // growing_system.type
	ScheduleType string // "interval" or "time_based"
	Adaptive     bool   // adaptation.enabled && adaptation.adaptive.enabled

	Device      devices.PowerSwitch
	Environment *environment.Service
	Logger      *zap.SugaredLogger

	FloodDuration time.Duration
	DrainDuration time.Duration

	// Interval variant.
	Interval    time.Duration
	ActiveHours *ActiveHours

	// Time-based variant.
	Cycles []schedule.CycleSpec

	// Adaptive variant.
	BaseWaits      map[schedule.Period]float64
	Constraints    schedule.Constraints
	UpdateInterval time.Duration
}

// New dispatches on (system type, schedule type, adaptation) and returns the
// matching scheduler variant.
func New(cfg Config) (Scheduler, error) {
	switch cfg.SystemType {
	case "flood_drain", "":
	case "nft":
		return NewNFT(cfg.Device, cfg.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported growing system type %q", cfg.SystemType)
	}

	switch cfg.ScheduleType {
	case "interval":
		return NewInterval(cfg), nil
	case "time_based":
		if cfg.Adaptive {
			return NewAdaptive(cfg)
		}
		return NewTimeOfDay(cfg)
	default:
		return nil, fmt.Errorf("unsupported schedule type %q", cfg.ScheduleType)
	}
}
