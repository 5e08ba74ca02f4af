package scheduler

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tmcfarlane/floodpilot/internal/environment"
	"github.com/tmcfarlane/floodpilot/internal/schedule"
	"github.com/tmcfarlane/floodpilot/internal/timeutil"
)

// Default per-period base waits in minutes.
var defaultBaseWaits = map[schedule.Period]float64{
	schedule.Morning: 18,
	schedule.Day:     28,
	schedule.Evening: 18,
	schedule.Night:   118,
}

// carryOverWindow is how close the previous period's projected completion
// must be to the next period's start for generation to carry over into it.
const carryOverWindow = 10 // minutes

const defaultUpdateInterval = 60 * time.Minute

// panicRetryDelay is how long the refresh worker sleeps after recovering
// from a panic before retrying its loop.
const panicRetryDelay = 60 * time.Second

// Adaptive generates a full day of cycles from environmental state and runs
// them through an embedded time-of-day scheduler. A refresh worker
// periodically re-fetches observations and regenerates; the new list takes
// effect without interrupting an in-flight flood or drain.
type Adaptive struct {
	inner   *TimeOfDay
	env     *environment.Service
	logger  *zap.SugaredLogger
	enabled bool

	baseWaits      map[schedule.Period]float64
	constraints    schedule.Constraints
	floodMinutes   float64
	updateInterval time.Duration
	retryDelay     time.Duration

	mu        sync.Mutex
	lastGen   []schedule.Cycle
	refreshes int
	stopCh    chan struct{}
	doneCh    chan struct{}
	started   bool

	now func() time.Time
}

// NewAdaptive builds the generator and its embedded scheduler. With
// adaptation disabled the embedded scheduler runs a single placeholder
// cycle and no refresh worker is started.
func NewAdaptive(cfg Config) (*Adaptive, error) {
	logger := cfg.Logger.Named("scheduler").With("variant", "adaptive")

	baseWaits := cfg.BaseWaits
	if baseWaits == nil {
		baseWaits = defaultBaseWaits
	}
	constraints := cfg.Constraints
	if constraints == (schedule.Constraints{}) {
		constraints = schedule.DefaultConstraints()
	}
	updateInterval := cfg.UpdateInterval
	if updateInterval <= 0 {
		updateInterval = defaultUpdateInterval
	}

	a := &Adaptive{
		env:            cfg.Environment,
		logger:         logger,
		enabled:        cfg.Adaptive,
		baseWaits:      baseWaits,
		constraints:    constraints,
		floodMinutes:   cfg.FloodDuration.Minutes(),
		updateInterval: updateInterval,
		retryDelay:     panicRetryDelay,
		now:            time.Now,
	}

	var specs []schedule.CycleSpec
	if a.enabled {
		a.env.Observations.Fetch()
		cycles := a.generate()
		a.lastGen = cycles
		specs = schedule.Specs(cycles)
	} else {
		// Placeholder satisfies the embedded scheduler's non-empty
		// cycle invariant.
		specs = []schedule.CycleSpec{{OnTime: "00:00", OffDurationMinutes: 60}}
	}

	innerCfg := cfg
	innerCfg.Cycles = specs
	inner, err := NewTimeOfDay(innerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build embedded scheduler: %w", err)
	}
	a.inner = inner
	return a, nil
}

// generate produces one day of cycles from the current period windows and
// environmental estimates.
func (a *Adaptive) generate() []schedule.Cycle {
	sunrise, sunset := a.env.SunriseSunset()
	bounds := schedule.BoundsFor(sunrise, sunset)

	var all []schedule.Cycle
	var prevCompletion *timeutil.TimeOfDay

	for _, period := range schedule.Periods {
		start, end := bounds.Window(period)
		base := a.baseWaits[period]

		startMin := float64(start.Minutes())
		endMin := float64(end.Minutes())
		if endMin <= startMin {
			endMin += timeutil.MinutesPerDay // night wraps midnight
		}

		// Carry over: the previous period's projected completion becomes
		// this period's first event when it lands inside the window or
		// within a few minutes either side of its start.
		eventMin := startMin
		if prevCompletion != nil {
			offset := float64(start.MinutesUntil(*prevCompletion))
			backGap := timeutil.MinutesPerDay - offset
			switch {
			case offset < endMin-startMin:
				eventMin = startMin + offset
			case backGap <= carryOverWindow:
				eventMin = startMin - backGap
			}
		}

		for eventMin < endMin {
			on := timeutil.New(0, int(eventMin))
			t := a.env.Observations.TemperatureAt(on)
			h := a.env.Observations.HumidityAt(on)
			tf := a.env.TemperatureFactor(t)
			hf := a.env.HumidityFactor(h)
			wait := base * tf * hf

			all = append(all, schedule.Cycle{
				On:             on,
				OffDuration:    a.constraints.ClampWait(wait),
				Period:         period,
				Temperature:    t,
				Humidity:       h,
				TempFactor:     tf,
				HumidityFactor: hf,
			})
			eventMin += wait + a.floodMinutes
		}

		completion := timeutil.New(0, int(eventMin))
		prevCompletion = &completion
	}

	schedule.Sort(all)
	schedule.ApplyConstraints(all, a.constraints)
	a.logger.Infow("generated adaptive schedule", "cycles", len(all))
	return all
}

// Start launches the embedded scheduler and, when adaptation is enabled,
// the refresh worker.
func (a *Adaptive) Start() {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		a.logger.Warn("scheduler already running, ignoring start")
		return
	}
	a.started = true
	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	a.mu.Unlock()

	a.inner.Start()
	if a.enabled {
		go a.refreshLoop()
	} else {
		close(a.doneCh)
	}
}

// Stop halts the refresh worker, then the embedded scheduler.
func (a *Adaptive) Stop(timeout time.Duration) bool {
	a.mu.Lock()
	if !a.started {
		a.mu.Unlock()
		return a.inner.Stop(timeout)
	}
	a.started = false
	select {
	case <-a.stopCh:
	default:
		close(a.stopCh)
	}
	done := a.doneCh
	a.mu.Unlock()

	select {
	case <-done:
	case <-time.After(timeout):
		a.logger.Warn("refresh worker did not stop in time, abandoning")
	}
	return a.inner.Stop(timeout)
}

func (a *Adaptive) refreshLoop() {
	defer close(a.doneCh)
	for {
		select {
		case <-a.stopCh:
			return
		case <-time.After(a.updateInterval):
		}
		if !a.refreshOnce() {
			select {
			case <-a.stopCh:
				return
			case <-time.After(a.retryDelay):
			}
		}
	}
}

// refreshOnce fetches fresh observations and regenerates. Panics are caught
// so a misbehaving estimate can never kill the worker; the caller backs off
// and retries.
func (a *Adaptive) refreshOnce() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Errorw("refresh worker panicked, will retry", "panic", r)
			ok = false
		}
	}()

	a.env.Observations.Fetch()
	cycles := a.generate()

	a.mu.Lock()
	a.lastGen = cycles
	a.refreshes++
	a.mu.Unlock()

	if err := a.inner.UpdateCycles(schedule.Specs(cycles)); err != nil {
		a.logger.Errorw("regenerated cycle list rejected", "error", err)
		return false
	}
	return true
}

// UpdateCycles forwards a manual cycle replacement to the embedded
// scheduler. The next refresh overwrites it.
func (a *Adaptive) UpdateCycles(specs []schedule.CycleSpec) error {
	return a.inner.UpdateCycles(specs)
}

// Cycles returns a copy of the cycle list the embedded scheduler is running.
func (a *Adaptive) Cycles() []schedule.Cycle {
	return a.inner.Cycles()
}

// GeneratedCycles returns a copy of the most recently generated list.
func (a *Adaptive) GeneratedCycles() []schedule.Cycle {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]schedule.Cycle, len(a.lastGen))
	copy(out, a.lastGen)
	return out
}

// State reports the embedded scheduler's phase.
func (a *Adaptive) State() State { return a.inner.State() }

// Running reports whether the embedded scheduler's worker is alive.
func (a *Adaptive) Running() bool { return a.inner.Running() }

// NextEventTime delegates to the embedded scheduler.
func (a *Adaptive) NextEventTime() *time.Time { return a.inner.NextEventTime() }

// Status merges the generator's view into the embedded scheduler's.
func (a *Adaptive) Status() map[string]interface{} {
	status := a.inner.Status()
	status["type"] = "adaptive"
	status["adaptation_enabled"] = a.enabled

	a.mu.Lock()
	status["generated_cycles"] = len(a.lastGen)
	status["refresh_count"] = a.refreshes
	a.mu.Unlock()
	return status
}
