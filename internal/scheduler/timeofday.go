package scheduler

import (
	"fmt"
	"time"

	"github.com/tmcfarlane/floodpilot/internal/devices"
	"github.com/tmcfarlane/floodpilot/internal/schedule"
	"github.com/tmcfarlane/floodpilot/internal/timeutil"
)

// TimeOfDay runs an explicit daily cycle list with cascading: a cycle's
// declared on-time anchors the first run of a sequence, and later cycles
// flow directly off the previous cycle's off-duration instead of waiting
// for their own anchor.
type TimeOfDay struct {
	runner
	device devices.PowerSwitch
	flood  time.Duration

	// Guarded by runner.mu together with the lifecycle fields.
	cycles        []schedule.Cycle
	currentIndex  int
	justCompleted bool

	// minute is the unit off-durations are expressed in. Production uses
	// time.Minute; tests shrink it.
	minute time.Duration
}

// NewTimeOfDay parses and sorts the configured cycles and positions the
// index at the first cycle still ahead of the clock.
func NewTimeOfDay(cfg Config) (*TimeOfDay, error) {
	logger := cfg.Logger.Named("scheduler").With("variant", "time_based")

	cycles, dropped, err := schedule.ParseCycles(cfg.Cycles)
	if err != nil {
		return nil, fmt.Errorf("invalid cycle configuration: %w", err)
	}
	for _, bad := range dropped {
		logger.Warnw("dropping unparseable cycle", "on_time", bad)
	}

	s := &TimeOfDay{
		runner: newRunner(logger),
		device: cfg.Device,
		flood:  cfg.FloodDuration,
		cycles: cycles,
		minute: time.Minute,
	}
	s.currentIndex = initialIndex(cycles, timeutil.FromTime(s.now()))
	return s, nil
}

// initialIndex returns the first cycle whose on-time is strictly later than
// now, or 0 when every cycle is already past (the first cycle fires
// tomorrow).
func initialIndex(cycles []schedule.Cycle, now timeutil.TimeOfDay) int {
	for i, c := range cycles {
		if c.On > now {
			return i
		}
	}
	return 0
}

// Start launches the worker. A second call is a no-op with a warning.
func (s *TimeOfDay) Start() {
	if !s.begin() {
		return
	}
	s.logger.Infow("starting time-based scheduler",
		"cycles", len(s.cycles), "flood", s.flood)
	go s.run()
}

// Stop signals the worker, waits up to timeout, and turns the device off.
func (s *TimeOfDay) Stop(timeout time.Duration) bool {
	joined := s.halt(timeout)
	if !s.device.EnsureOff() {
		s.logger.Error("could not confirm device off during stop")
	}
	return joined
}

func (s *TimeOfDay) run() {
	defer s.end()
	for {
		if s.stopped() {
			return
		}

		s.mu.Lock()
		cycle := s.cycles[s.currentIndex]
		cascade := s.justCompleted
		s.mu.Unlock()

		untilOn := s.untilAnchor(cycle.On)
		if cascade && untilOn > 0 {
			s.logger.Infow("cascading past anchor",
				"anchor", cycle.On.String(), "early_by", untilOn)
		} else if untilOn > 0 {
			s.setState(StateWaiting)
			if !s.sleep(untilOn) {
				return
			}
		}

		s.setState(StateFlood)
		if !s.device.TurnOn(true) {
			s.logger.Error("flood command failed, continuing")
		}
		if !s.sleep(s.flood) {
			s.turnOffBestEffort()
			return
		}

		s.setState(StateDrain)
		if !s.device.TurnOff(true) {
			s.logger.Error("drain command failed, continuing")
		}
		if !s.sleep(time.Duration(cycle.OffDuration * float64(s.minute))) {
			return
		}

		s.setState(StateWaiting)
		s.mu.Lock()
		s.currentIndex = (s.currentIndex + 1) % len(s.cycles)
		s.justCompleted = true
		s.mu.Unlock()
	}
}

func (s *TimeOfDay) turnOffBestEffort() {
	if !s.device.TurnOff(true) {
		s.logger.Error("could not turn device off on shutdown")
	}
}

// untilAnchor returns the wall-clock wait to an on-time. A cycle whose
// on-time equals the current minute fires immediately.
func (s *TimeOfDay) untilAnchor(on timeutil.TimeOfDay) time.Duration {
	now := s.now()
	if timeutil.FromTime(now) == on {
		return 0
	}
	return on.NextAfter(now).Sub(now)
}

// UpdateCycles replaces the cycle list without interrupting an in-flight
// flood or drain. The index is recomputed from the clock so the next anchor
// is the first upcoming cycle of the new list.
func (s *TimeOfDay) UpdateCycles(specs []schedule.CycleSpec) error {
	cycles, dropped, err := schedule.ParseCycles(specs)
	if err != nil {
		return fmt.Errorf("rejecting cycle update: %w", err)
	}
	for _, bad := range dropped {
		s.logger.Warnw("dropping unparseable cycle in update", "on_time", bad)
	}

	s.mu.Lock()
	s.cycles = cycles
	s.currentIndex = initialIndex(cycles, timeutil.FromTime(s.now()))
	s.justCompleted = false
	s.mu.Unlock()

	s.logger.Infow("cycle list replaced", "cycles", len(cycles))
	return nil
}

// Cycles returns a copy of the current cycle list.
func (s *TimeOfDay) Cycles() []schedule.Cycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]schedule.Cycle, len(s.cycles))
	copy(out, s.cycles)
	return out
}

// NextEventTime returns the wall-clock time of the current cycle's anchor,
// rolled to tomorrow when already past.
func (s *TimeOfDay) NextEventTime() *time.Time {
	s.mu.Lock()
	on := s.cycles[s.currentIndex].On
	s.mu.Unlock()
	next := on.NextAfter(s.now())
	return &next
}

// Status reports the worker's view for the control surface.
func (s *TimeOfDay) Status() map[string]interface{} {
	s.mu.Lock()
	count := len(s.cycles)
	index := s.currentIndex
	s.mu.Unlock()

	status := map[string]interface{}{
		"type":          "time_based",
		"state":         string(s.State()),
		"running":       s.Running(),
		"cycle_count":   count,
		"current_index": index,
		"flood_minutes": s.flood.Minutes(),
	}
	if next := s.NextEventTime(); next != nil {
		status["next_event"] = next.Format(time.RFC3339)
	}
	return status
}
