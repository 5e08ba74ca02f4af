package scheduler

import (
	"time"

	"github.com/tmcfarlane/floodpilot/internal/devices"
	"github.com/tmcfarlane/floodpilot/internal/timeutil"
)

// ActiveHours restricts the interval scheduler to a daily window. The
// window may wrap midnight: with Start > End, a time is inside when it is
// at or after Start or at or before End.
type ActiveHours struct {
	Start timeutil.TimeOfDay
	End   timeutil.TimeOfDay
}

// Contains reports whether t falls inside the window.
func (a ActiveHours) Contains(t timeutil.TimeOfDay) bool {
	if a.Start > a.End {
		return t >= a.Start || t <= a.End
	}
	return t >= a.Start && t <= a.End
}

// inactiveRecheck is how long the worker sleeps while outside active hours.
const inactiveRecheck = 60 * time.Second

// Interval runs a fixed flood/drain/wait cadence, optionally restricted to
// an active-hours window. Command failures are logged and the loop advances
// regardless.
type Interval struct {
	runner
	device      devices.PowerSwitch
	flood       time.Duration
	drain       time.Duration
	interval    time.Duration
	activeHours *ActiveHours

	recheck time.Duration
}

// NewInterval builds the interval variant from the factory config.
func NewInterval(cfg Config) *Interval {
	return &Interval{
		runner:      newRunner(cfg.Logger.Named("scheduler").With("variant", "interval")),
		device:      cfg.Device,
		flood:       cfg.FloodDuration,
		drain:       cfg.DrainDuration,
		interval:    cfg.Interval,
		activeHours: cfg.ActiveHours,
		recheck:     inactiveRecheck,
	}
}

// Start launches the worker. A second call is a no-op with a warning.
func (s *Interval) Start() {
	if !s.begin() {
		return
	}
	s.logger.Infow("starting interval scheduler",
		"flood", s.flood, "drain", s.drain, "interval", s.interval)
	go s.run()
}

// Stop signals the worker, waits up to timeout, and turns the device off.
func (s *Interval) Stop(timeout time.Duration) bool {
	joined := s.halt(timeout)
	if !s.device.EnsureOff() {
		s.logger.Error("could not confirm device off during stop")
	}
	return joined
}

func (s *Interval) run() {
	defer s.end()
	for {
		if s.stopped() {
			return
		}

		if s.activeHours != nil && !s.activeHours.Contains(timeutil.FromTime(s.now())) {
			s.setState(StateIdle)
			if !s.sleep(s.recheck) {
				return
			}
			continue
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
		if !s.sleep(s.drain) {
			return
		}

		s.setState(StateWaiting)
		if !s.sleep(s.interval) {
			return
		}
	}
}

func (s *Interval) turnOffBestEffort() {
	if !s.device.TurnOff(true) {
		s.logger.Error("could not turn device off on shutdown")
	}
}

// NextEventTime returns the start of the next flood, when computable. With
// no active-hours window the cadence is relative and the next event is not
// predicted.
func (s *Interval) NextEventTime() *time.Time {
	if s.activeHours == nil {
		return nil
	}
	now := s.now()
	if s.activeHours.Contains(timeutil.FromTime(now)) {
		return &now
	}
	next := s.activeHours.Start.NextAfter(now)
	return &next
}

// Status reports the worker's view for the control surface.
func (s *Interval) Status() map[string]interface{} {
	status := map[string]interface{}{
		"type":             "interval",
		"state":            string(s.State()),
		"running":          s.Running(),
		"flood_minutes":    s.flood.Minutes(),
		"drain_minutes":    s.drain.Minutes(),
		"interval_minutes": s.interval.Minutes(),
	}
	if s.activeHours != nil {
		status["active_hours"] = s.activeHours.Start.String() + "-" + s.activeHours.End.String()
	}
	return status
}
