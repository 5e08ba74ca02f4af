// Package environment combines weather observations and daylight data into
// the inputs the adaptive scheduler plans with.
package environment

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tmcfarlane/floodpilot/internal/geocode"
	"github.com/tmcfarlane/floodpilot/internal/stations"
	"github.com/tmcfarlane/floodpilot/internal/timeutil"
)

// DefaultStationID is used when no observation station is configured.
const DefaultStationID = "94768" // Sydney Observatory Hill

// Sensitivity controls how strongly environmental factors deviate from 1.0.
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

const (
	lowSensitivityScale  = 0.7
	highSensitivityScale = 1.3
)

// Config selects the observation station, postal code, timezone, and
// sensitivity for a service.
type Config struct {
	StationID       string
	Postcode        string
	GeocodeDBPath   string
	Timezone        *time.Location
	TempSensitivity Sensitivity
	HumSensitivity  Sensitivity
}

// Service is the environmental data source the schedulers consume.
type Service struct {
	Observations *Observations
	Daylight     *Daylight

	tempSensitivity Sensitivity
	humSensitivity  Sensitivity
	logger          *zap.SugaredLogger
}

// Snapshot is the REST view of the current environmental state.
type Snapshot struct {
	StationID   string   `json:"station_id"`
	StationName string   `json:"station_name,omitempty"`
	Temperature *float64 `json:"temperature_c,omitempty"`
	Humidity    *float64 `json:"humidity_pct,omitempty"`
	LastUpdate  string   `json:"last_update,omitempty"`
	Trend       string   `json:"trend"`
	Postcode    string   `json:"postcode,omitempty"`
	PlaceName   string   `json:"place_name,omitempty"`
	Sunrise     string   `json:"sunrise,omitempty"`
	Sunset      string   `json:"sunset,omitempty"`
}

// NewService wires the observation and daylight services together. A station
// id of "auto" selects the station nearest the resolved postal code; an
// empty id falls back to the default station.
func NewService(cfg Config, logger *zap.SugaredLogger) (*Service, error) {
	loc := cfg.Timezone
	if loc == nil {
		loc = time.Local
	}

	var db *geocode.DB
	if cfg.GeocodeDBPath != "" {
		var err error
		db, err = geocode.Open(cfg.GeocodeDBPath)
		if err != nil {
			logger.Warnw("postcode database unavailable", "path", cfg.GeocodeDBPath, "error", err)
			db = nil
		}
	}

	daylight := NewDaylight(cfg.Postcode, db, loc, logger)
	if db != nil {
		db.Close()
	}

	stationID := cfg.StationID
	switch stationID {
	case "":
		stationID = DefaultStationID
	case "auto":
		if lat, lon, ok := daylight.Location(); ok {
			nearest, found := stations.FindNearest(lat, lon)
			if !found {
				return nil, fmt.Errorf("station directory is empty")
			}
			logger.Infow("selected nearest observation station",
				"station", nearest.ID, "name", nearest.Name, "distance_km", nearest.DistanceKM)
			stationID = nearest.ID
		} else {
			logger.Warnw("cannot auto-select station without a resolved postcode, using default",
				"default", DefaultStationID)
			stationID = DefaultStationID
		}
	}

	return &Service{
		Observations:    NewObservations(stationID, logger),
		Daylight:        daylight,
		tempSensitivity: cfg.TempSensitivity,
		humSensitivity:  cfg.HumSensitivity,
		logger:          logger.Named("environment"),
	}, nil
}

// TemperatureFactor maps a temperature to a wait-duration multiplier. Cold
// weather lengthens waits, hot weather shortens them. A nil temperature is
// neutral.
func (s *Service) TemperatureFactor(temp *float64) float64 {
	if temp == nil {
		return 1.0
	}
	var factor float64
	switch t := *temp; {
	case t < 15:
		factor = 1.15
	case t <= 25:
		factor = 1.0
	case t < 30:
		factor = 0.85
	default:
		factor = 0.70
	}
	return applySensitivity(factor, s.tempSensitivity)
}

// HumidityFactor maps relative humidity to a wait-duration multiplier. Dry
// air shortens waits, humid air lengthens them. A nil humidity is neutral.
func (s *Service) HumidityFactor(humidity *float64) float64 {
	if humidity == nil {
		return 1.0
	}
	var factor float64
	switch h := *humidity; {
	case h < 40:
		factor = 0.9
	case h <= 70:
		factor = 1.0
	default:
		factor = 1.1
	}
	return applySensitivity(factor, s.humSensitivity)
}

// applySensitivity rescales a factor's deviation from 1.0. Low sensitivity
// shrinks the deviation, high sensitivity grows it, medium leaves it alone.
func applySensitivity(factor float64, sens Sensitivity) float64 {
	switch sens {
	case SensitivityLow:
		return 1.0 + (factor-1.0)*lowSensitivityScale
	case SensitivityHigh:
		return 1.0 + (factor-1.0)*highSensitivityScale
	default:
		return factor
	}
}

// Snapshot assembles the current environmental state for the control surface.
func (s *Service) Snapshot() Snapshot {
	snap := Snapshot{
		StationID:   s.Observations.StationID(),
		StationName: s.Observations.StationName(),
		Temperature: s.Observations.LastTemperature(),
		Humidity:    s.Observations.LastHumidity(),
		Trend:       s.Observations.Trend(3),
		Postcode:    s.Daylight.postcode,
		PlaceName:   s.Daylight.PlaceName(),
	}
	if t := s.Observations.LastUpdate(); !t.IsZero() {
		snap.LastUpdate = t.Format(time.RFC3339)
	}
	if sunrise, sunset, ok := s.Daylight.SunriseSunset(); ok {
		snap.Sunrise = sunrise.String()
		snap.Sunset = sunset.String()
	}
	return snap
}

// SunriseSunset exposes today's daylight boundaries as optional values for
// period pinning.
func (s *Service) SunriseSunset() (sunrise, sunset *timeutil.TimeOfDay) {
	rise, set, ok := s.Daylight.SunriseSunset()
	if !ok {
		return nil, nil
	}
	return &rise, &set
}
