package schedule

import "github.com/tmcfarlane/floodpilot/internal/timeutil"

// Period is one of the four day segments the adaptive generator plans in.
type Period string

const (
	Morning Period = "morning"
	Day     Period = "day"
	Evening Period = "evening"
	Night   Period = "night"
)

// Periods lists the segments in generation order.
var Periods = []Period{Morning, Day, Evening, Night}

// Default period boundaries.
var (
	defaultMorningStart = timeutil.New(6, 0)
	defaultDayStart     = timeutil.New(9, 0)
	defaultEveningStart = timeutil.New(18, 0)
	defaultNightStart   = timeutil.New(20, 0)

	sunriseWindowStart = timeutil.New(5, 0)
	sunriseWindowEnd   = timeutil.New(7, 0)
	sunsetWindowStart  = timeutil.New(17, 0)
	sunsetWindowEnd    = timeutil.New(19, 0)
)

// Bounds holds the four period start times for one day. Night wraps
// midnight: it runs from NightStart to MorningStart.
type Bounds struct {
	MorningStart timeutil.TimeOfDay
	DayStart     timeutil.TimeOfDay
	EveningStart timeutil.TimeOfDay
	NightStart   timeutil.TimeOfDay
}

// BoundsFor returns the period boundaries for a day, pinning the morning
// start to sunrise when sunrise lies within [05:00, 07:00] and the evening
// start to sunset when sunset lies within [17:00, 19:00].
func BoundsFor(sunrise, sunset *timeutil.TimeOfDay) Bounds {
	b := Bounds{
		MorningStart: defaultMorningStart,
		DayStart:     defaultDayStart,
		EveningStart: defaultEveningStart,
		NightStart:   defaultNightStart,
	}
	if sunrise != nil && *sunrise >= sunriseWindowStart && *sunrise <= sunriseWindowEnd {
		b.MorningStart = *sunrise
	}
	if sunset != nil && *sunset >= sunsetWindowStart && *sunset <= sunsetWindowEnd {
		b.EveningStart = *sunset
	}
	return b
}

// PeriodOf classifies a time-of-day into exactly one period.
func (b Bounds) PeriodOf(t timeutil.TimeOfDay) Period {
	switch {
	case t >= b.NightStart || t < b.MorningStart:
		return Night
	case t < b.DayStart:
		return Morning
	case t < b.EveningStart:
		return Day
	default:
		return Evening
	}
}

// Window returns the start and end of the given period. Night's end is the
// next morning's start.
func (b Bounds) Window(p Period) (start, end timeutil.TimeOfDay) {
	switch p {
	case Morning:
		return b.MorningStart, b.DayStart
	case Day:
		return b.DayStart, b.EveningStart
	case Evening:
		return b.EveningStart, b.NightStart
	default:
		return b.NightStart, b.MorningStart
	}
}
