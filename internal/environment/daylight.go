package environment

import (
	"time"

	"go.uber.org/zap"

	"github.com/tmcfarlane/floodpilot/internal/geocode"
	"github.com/tmcfarlane/floodpilot/internal/timeutil"
	"github.com/tmcfarlane/floodpilot/pkg/solar"
)

// Daylight resolves a postal code to coordinates and computes local sunrise
// and sunset. Every failure degrades silently to "no daylight data": the
// schedulers fall back to their default period boundaries.
type Daylight struct {
	postcode string
	location *time.Location
	logger   *zap.SugaredLogger

	resolved  bool
	latitude  float64
	longitude float64
	placeName string

	now func() time.Time
}

// NewDaylight builds a daylight service for a postal code. The geocode
// database is read once here; db may be nil when no database is configured.
func NewDaylight(postcode string, db *geocode.DB, loc *time.Location, logger *zap.SugaredLogger) *Daylight {
	d := &Daylight{
		postcode: postcode,
		location: loc,
		logger:   logger.Named("daylight"),
		now:      time.Now,
	}
	if postcode == "" || db == nil {
		return d
	}

	entry, found, err := db.Lookup(postcode)
	if err != nil {
		d.logger.Warnw("postcode lookup failed", "postcode", postcode, "error", err)
		return d
	}
	if !found {
		d.logger.Warnw("postcode not in database", "postcode", postcode)
		return d
	}

	d.resolved = true
	d.latitude = entry.Latitude
	d.longitude = entry.Longitude
	d.placeName = entry.PlaceName
	d.logger.Infow("resolved postcode",
		"postcode", postcode, "place", entry.PlaceName,
		"latitude", entry.Latitude, "longitude", entry.Longitude)
	return d
}

// Resolved reports whether the postal code was found.
func (d *Daylight) Resolved() bool { return d.resolved }

// Location returns the resolved coordinates. ok is false when the postal
// code could not be resolved.
func (d *Daylight) Location() (lat, lon float64, ok bool) {
	return d.latitude, d.longitude, d.resolved
}

// PlaceName returns the locality name for the resolved postal code, or "".
func (d *Daylight) PlaceName() string { return d.placeName }

// SunriseSunset returns today's local sunrise and sunset. ok is false when
// the postal code is unresolved or the date falls under polar conditions.
func (d *Daylight) SunriseSunset() (sunrise, sunset timeutil.TimeOfDay, ok bool) {
	if !d.resolved {
		return 0, 0, false
	}
	today := d.now().In(d.location)
	sunrise, sunset, ok = solar.LocalTimes(today, d.latitude, d.longitude, d.location)
	if !ok {
		d.logger.Warnw("sun does not rise or set today", "latitude", d.latitude)
	}
	return sunrise, sunset, ok
}
