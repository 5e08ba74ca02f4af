// Package solar computes sunrise and sunset times for schedule adaptation.
package solar

import (
	"math"
	"time"

	"github.com/tmcfarlane/floodpilot/internal/timeutil"
)

const degToRad = math.Pi / 180.0

// SunriseSunset returns sunrise and sunset as minutes from midnight UTC for
// the given day-of-year at the specified latitude and longitude. ok is false
// for polar day (sun never sets) or polar night (sun never rises).
func SunriseSunset(dayOfYear int, latitude, longitude float64) (sunriseMinutes, sunsetMinutes int, ok bool) {
	doy := float64(dayOfYear)

	// Solar declination: angle between the Sun and the celestial equator.
	inner := (356.6 + 0.9856*doy) * degToRad
	outer := (278.97 + 0.9856*doy + 1.9165*math.Sin(inner)) * degToRad
	declination := math.Asin(0.39785 * math.Sin(outer))

	// Hour angle at the horizon: cos(H) = -tan(lat) * tan(declination).
	cosH := -math.Tan(latitude*degToRad) * math.Tan(declination)
	if cosH < -1.0 || cosH > 1.0 {
		// Midnight sun or polar night.
		return 0, 0, false
	}
	hourAngleMinutes := math.Acos(cosH) / degToRad * 4.0 // 4 minutes per degree

	// Solar noon in UTC, shifted by longitude (4 min/degree, east is earlier)
	// and the equation of time.
	solarNoon := 720.0 - longitude*4.0 - equationOfTime(dayOfYear)

	sunrise := math.Mod(solarNoon-hourAngleMinutes+timeutil.MinutesPerDay, timeutil.MinutesPerDay)
	sunset := math.Mod(solarNoon+hourAngleMinutes+timeutil.MinutesPerDay, timeutil.MinutesPerDay)

	return int(math.Round(sunrise)), int(math.Round(sunset)), true
}

// equationOfTime approximates the difference between apparent and mean solar
// time in minutes using the standard Fourier form. Accurate to roughly a
// minute, which is ample for irrigation scheduling.
func equationOfTime(dayOfYear int) float64 {
	b := 2 * math.Pi * float64(dayOfYear-81) / 365.0
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}

// LocalTimes returns sunrise and sunset for the given date as local
// times-of-day in loc. ok is false under polar conditions.
func LocalTimes(date time.Time, latitude, longitude float64, loc *time.Location) (sunrise, sunset timeutil.TimeOfDay, ok bool) {
	riseUTC, setUTC, ok := SunriseSunset(date.YearDay(), latitude, longitude)
	if !ok {
		return 0, 0, false
	}
	return toLocal(date, riseUTC, loc), toLocal(date, setUTC, loc), true
}

func toLocal(date time.Time, utcMinutes int, loc *time.Location) timeutil.TimeOfDay {
	t := time.Date(date.Year(), date.Month(), date.Day(), utcMinutes/60, utcMinutes%60, 0, 0, time.UTC)
	return timeutil.FromTime(t.In(loc))
}
