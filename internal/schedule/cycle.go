// Package schedule defines cycles, day-periodic schedules, and the
// time-period model the adaptive generator works in.
package schedule

import (
	"fmt"
	"sort"

	"github.com/tmcfarlane/floodpilot/internal/timeutil"
)

// Cycle is one planned energisation: turn the device on at On, hold it for
// the scheduler's flood duration, then stay off for OffDuration minutes.
type Cycle struct {
	On          timeutil.TimeOfDay
	OffDuration float64 // minutes

	// Diagnostic annotations populated by the adaptive generator.
	Period         Period
	Temperature    *float64
	Humidity       *float64
	TempFactor     float64
	HumidityFactor float64
}

// CycleSpec is the external (configuration / API) form of a cycle.
type CycleSpec struct {
	OnTime             string  `json:"on_time" yaml:"on_time"`
	OffDurationMinutes float64 `json:"off_duration_minutes" yaml:"off_duration_minutes"`
}

// ParseCycles converts cycle specs into sorted cycles. Entries whose on-time
// does not parse are dropped; an error is returned only when nothing valid
// remains, since a schedule must hold at least one cycle.
func ParseCycles(specs []CycleSpec) ([]Cycle, []string, error) {
	var cycles []Cycle
	var dropped []string
	for _, spec := range specs {
		on, err := timeutil.Parse(spec.OnTime)
		if err != nil {
			dropped = append(dropped, spec.OnTime)
			continue
		}
		cycles = append(cycles, Cycle{On: on, OffDuration: spec.OffDurationMinutes})
	}
	if len(cycles) == 0 {
		return nil, dropped, fmt.Errorf("at least one valid cycle must be provided")
	}
	Sort(cycles)
	return cycles, dropped, nil
}

// Sort orders cycles ascending by on-time. The order is stable so duplicate
// minutes keep their declared order.
func Sort(cycles []Cycle) {
	sort.SliceStable(cycles, func(i, j int) bool {
		return cycles[i].On < cycles[j].On
	})
}

// Specs converts cycles back to their external form.
func Specs(cycles []Cycle) []CycleSpec {
	specs := make([]CycleSpec, len(cycles))
	for i, c := range cycles {
		specs[i] = CycleSpec{OnTime: c.On.String(), OffDurationMinutes: c.OffDuration}
	}
	return specs
}

// Constraints bound generated wait and flood durations, in minutes.
type Constraints struct {
	MinWait  float64
	MaxWait  float64
	MinFlood float64
	MaxFlood float64
}

// DefaultConstraints returns the standard constraint box.
func DefaultConstraints() Constraints {
	return Constraints{MinWait: 5, MaxWait: 180, MinFlood: 2, MaxFlood: 15}
}

// ClampWait bounds a wait duration to [MinWait, MaxWait].
func (c Constraints) ClampWait(wait float64) float64 {
	if wait < c.MinWait {
		return c.MinWait
	}
	if wait > c.MaxWait {
		return c.MaxWait
	}
	return wait
}

// ClampFlood bounds a flood duration to [MinFlood, MaxFlood].
func (c Constraints) ClampFlood(flood float64) float64 {
	if flood < c.MinFlood {
		return c.MinFlood
	}
	if flood > c.MaxFlood {
		return c.MaxFlood
	}
	return flood
}

// ApplyConstraints clamps every cycle's off-duration in place.
func ApplyConstraints(cycles []Cycle, c Constraints) {
	for i := range cycles {
		cycles[i].OffDuration = c.ClampWait(cycles[i].OffDuration)
	}
}
