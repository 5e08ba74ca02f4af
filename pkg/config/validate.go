package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tmcfarlane/floodpilot/internal/timeutil"
)

// FieldError is one validation failure, addressed by pointer path.
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationError aggregates every field failure into a single error so the
// operator sees the full list at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		lines[i] = "  " + f.String()
	}
	return fmt.Sprintf("configuration invalid (%d errors):\n%s",
		len(e.Fields), strings.Join(lines, "\n"))
}

var validBrands = map[string]bool{"tapo": true, "shelly": true}
var validSystems = map[string]bool{"flood_drain": true, "nft": true}
var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validSensitivities = map[string]bool{"low": true, "medium": true, "high": true}

// Validate checks the loaded configuration and returns a *ValidationError
// listing every failing field, or nil when the configuration is usable.
func Validate(d *Data) error {
	var errs []FieldError
	add := func(path, format string, args ...interface{}) {
		errs = append(errs, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if len(d.Devices.Devices) == 0 {
		add("devices.devices", "at least one device is required")
	}
	seen := make(map[string]bool)
	for i, dev := range d.Devices.Devices {
		path := fmt.Sprintf("devices.devices[%d]", i)
		if dev.DeviceID == "" {
			add(path+".device_id", "required")
		} else if seen[dev.DeviceID] {
			add(path+".device_id", "duplicate device id %q", dev.DeviceID)
		} else {
			seen[dev.DeviceID] = true
		}
		if !validBrands[dev.Brand] {
			add(path+".brand", "unsupported brand %q", dev.Brand)
		}
		if dev.Address == "" {
			add(path+".address", "required")
		}
	}

	if !validSystems[d.GrowingSystem.Type] {
		add("growing_system.type", "must be one of flood_drain, nft; got %q", d.GrowingSystem.Type)
	}
	if d.GrowingSystem.PrimaryDeviceID == "" {
		add("growing_system.primary_device_id", "required")
	} else if len(d.Devices.Devices) > 0 && !seen[d.GrowingSystem.PrimaryDeviceID] {
		add("growing_system.primary_device_id", "no device with id %q", d.GrowingSystem.PrimaryDeviceID)
	}

	validateSchedule(d, add)

	if d.Logging.Level != "" && !validLevels[d.Logging.Level] {
		add("logging.level", "must be one of debug, info, warn, error; got %q", d.Logging.Level)
	}
	if d.Web != nil && (d.Web.Port < 0 || d.Web.Port > 65535) {
		add("web.port", "must be in [0, 65535]; got %d", d.Web.Port)
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validateSchedule(d *Data, add func(path, format string, args ...interface{})) {
	s := d.Schedule
	if s.FloodMinutes <= 0 {
		add("schedule.flood_minutes", "must be positive; got %g", s.FloodMinutes)
	}

	switch s.Type {
	case "interval":
		if s.DrainMinutes < 0 {
			add("schedule.drain_minutes", "must not be negative; got %g", s.DrainMinutes)
		}
		if s.IntervalMinutes <= 0 {
			add("schedule.interval_minutes", "must be positive; got %g", s.IntervalMinutes)
		}
		if s.ActiveHours != nil {
			if _, err := timeutil.Parse(s.ActiveHours.Start); err != nil {
				add("schedule.active_hours.start", "%v", err)
			}
			if _, err := timeutil.Parse(s.ActiveHours.End); err != nil {
				add("schedule.active_hours.end", "%v", err)
			}
		}
	case "time_based":
		adaptive := s.Adaptation != nil && s.Adaptation.Enabled &&
			s.Adaptation.Adaptive != nil && s.Adaptation.Adaptive.Enabled
		if len(s.Cycles) == 0 && !adaptive {
			add("schedule.cycles", "at least one cycle is required unless adaptation is enabled")
		}
		for i, c := range s.Cycles {
			path := fmt.Sprintf("schedule.cycles[%d]", i)
			if _, err := timeutil.Parse(c.OnTime); err != nil {
				add(path+".on_time", "%v", err)
			}
			if c.OffDurationMinutes < 0 {
				add(path+".off_duration_minutes", "must not be negative; got %g", c.OffDurationMinutes)
			}
		}
		validateAdaptation(s.Adaptation, add)
	default:
		add("schedule.type", "must be one of interval, time_based; got %q", s.Type)
	}
}

func validateAdaptation(a *AdaptationData, add func(path, format string, args ...interface{})) {
	if a == nil {
		return
	}
	if a.Location != nil && a.Location.Timezone != "" {
		if _, err := time.LoadLocation(a.Location.Timezone); err != nil {
			add("schedule.adaptation.location.timezone", "unknown timezone %q", a.Location.Timezone)
		}
	}
	if t := a.Temperature; t != nil {
		if t.UpdateIntervalMinutes < 0 {
			add("schedule.adaptation.temperature.update_interval_minutes",
				"must not be negative; got %d", t.UpdateIntervalMinutes)
		}
		if t.Sensitivity != "" && !validSensitivities[t.Sensitivity] {
			add("schedule.adaptation.temperature.sensitivity",
				"must be one of low, medium, high; got %q", t.Sensitivity)
		}
		if t.HumiditySensitivity != "" && !validSensitivities[t.HumiditySensitivity] {
			add("schedule.adaptation.temperature.humidity_sensitivity",
				"must be one of low, medium, high; got %q", t.HumiditySensitivity)
		}
	}
	if a.Adaptive != nil && a.Adaptive.Constraints != nil {
		c := a.Adaptive.Constraints
		path := "schedule.adaptation.adaptive.constraints"
		if c.MinWait < 0 || c.MaxWait <= 0 || c.MinWait >= c.MaxWait {
			add(path, "wait bounds must satisfy 0 <= min_wait < max_wait; got [%g, %g]", c.MinWait, c.MaxWait)
		}
		if c.MinFlood < 0 || c.MaxFlood <= 0 || c.MinFlood >= c.MaxFlood {
			add(path, "flood bounds must satisfy 0 <= min_flood < max_flood; got [%g, %g]", c.MinFlood, c.MaxFlood)
		}
	}
}
