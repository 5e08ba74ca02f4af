// Package validation compares a generated schedule against a declared
// baseline. It is an analytical tool only; nothing in the scheduling path
// consults it.
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/tmcfarlane/floodpilot/internal/schedule"
	"github.com/tmcfarlane/floodpilot/internal/timeutil"
)

// DefaultDeviationThreshold flags wait deviations above 50 %.
const DefaultDeviationThreshold = 0.5

// countWarnPercent is the event-count delta beyond which the report warns.
const countWarnPercent = 30.0

// Match pairs one active event with its closest baseline event.
type Match struct {
	Active         schedule.Cycle
	Base           schedule.Cycle
	Period         schedule.Period
	BasePeriod     schedule.Period
	Deviation      float64 // |active.wait - base.wait| / base.wait
	PeriodMismatch bool
}

// Report is the outcome of comparing an active schedule to its baseline.
type Report struct {
	ActiveCount      int
	BaseCount        int
	CountDelta       int
	CountDeltaPct    float64
	CountWarning     bool
	Deviations       []Match
	PeriodMismatches []Match
	Matches          []Match
}

// Compare builds a report for an active schedule against a baseline.
// Sunrise and sunset, when present, pin the period boundaries the same way
// the generator pins them. A non-positive threshold uses the default.
func Compare(active, base []schedule.Cycle, sunrise, sunset *timeutil.TimeOfDay, threshold float64) Report {
	if threshold <= 0 {
		threshold = DefaultDeviationThreshold
	}
	bounds := schedule.BoundsFor(sunrise, sunset)

	report := Report{
		ActiveCount: len(active),
		BaseCount:   len(base),
		CountDelta:  len(active) - len(base),
	}
	if len(base) > 0 {
		report.CountDeltaPct = float64(report.CountDelta) / float64(len(base)) * 100
	}
	report.CountWarning = math.Abs(report.CountDeltaPct) > countWarnPercent

	for _, a := range active {
		period := bounds.PeriodOf(a.On)

		best, ok := closest(a.On, base, func(b schedule.Cycle) bool {
			return bounds.PeriodOf(b.On) == period
		})
		if !ok {
			best, ok = closest(a.On, base, func(schedule.Cycle) bool { return true })
			if !ok {
				continue // empty baseline
			}
			report.PeriodMismatches = append(report.PeriodMismatches, Match{
				Active:         a,
				Base:           best,
				Period:         period,
				BasePeriod:     bounds.PeriodOf(best.On),
				PeriodMismatch: true,
			})
			continue
		}

		m := Match{Active: a, Base: best, Period: period, BasePeriod: period}
		if best.OffDuration > 0 {
			m.Deviation = math.Abs(a.OffDuration-best.OffDuration) / best.OffDuration
		}
		if m.Deviation > threshold {
			report.Deviations = append(report.Deviations, m)
		} else {
			report.Matches = append(report.Matches, m)
		}
	}
	return report
}

// closest returns the base event nearest to on by wrap-aware circular
// distance, restricted to events accepted by keep.
func closest(on timeutil.TimeOfDay, base []schedule.Cycle, keep func(schedule.Cycle) bool) (schedule.Cycle, bool) {
	var best schedule.Cycle
	bestDist := -1
	for _, b := range base {
		if !keep(b) {
			continue
		}
		d := timeutil.WrapDistance(on, b.On)
		if bestDist < 0 || d < bestDist {
			best = b
			bestDist = d
		}
	}
	return best, bestDist >= 0
}

// Text renders the report deterministically, bucket by bucket.
func (r Report) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Schedule validation: %d active vs %d baseline events (delta %+d, %+.1f%%)\n",
		r.ActiveCount, r.BaseCount, r.CountDelta, r.CountDeltaPct)
	if r.CountWarning {
		fmt.Fprintf(&b, "WARNING: event count differs by more than %.0f%%\n", countWarnPercent)
	}

	fmt.Fprintf(&b, "\nDeviations (%d):\n", len(r.Deviations))
	for _, m := range r.Deviations {
		fmt.Fprintf(&b, "  %s [%s]: wait %.1f vs baseline %.1f at %s (%.0f%% off)\n",
			m.Active.On, m.Period, m.Active.OffDuration, m.Base.OffDuration, m.Base.On, m.Deviation*100)
	}

	fmt.Fprintf(&b, "\nPeriod mismatches (%d):\n", len(r.PeriodMismatches))
	for _, m := range r.PeriodMismatches {
		fmt.Fprintf(&b, "  %s [%s]: closest baseline event %s is in %s\n",
			m.Active.On, m.Period, m.Base.On, m.BasePeriod)
	}

	fmt.Fprintf(&b, "\nMatches (%d):\n", len(r.Matches))
	for _, m := range r.Matches {
		fmt.Fprintf(&b, "  %s [%s]: wait %.1f vs baseline %.1f at %s\n",
			m.Active.On, m.Period, m.Active.OffDuration, m.Base.OffDuration, m.Base.On)
	}

	return b.String()
}
