package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/tmcfarlane/floodpilot/internal/actuators"
	"github.com/tmcfarlane/floodpilot/internal/devices"
	"github.com/tmcfarlane/floodpilot/internal/environment"
	"github.com/tmcfarlane/floodpilot/internal/schedule"
	"github.com/tmcfarlane/floodpilot/internal/scheduler"
	"github.com/tmcfarlane/floodpilot/internal/sensors"
	"github.com/tmcfarlane/floodpilot/internal/timeutil"
	"github.com/tmcfarlane/floodpilot/pkg/config"
)

// BuildEnvironment translates the adaptation block into an environmental
// service. A missing block yields a service with defaults, so status
// endpoints always have something to report.
func BuildEnvironment(cfg *config.Data, logger *zap.SugaredLogger) (*environment.Service, error) {
	envCfg := environment.Config{}

	if adapt := cfg.Schedule.Adaptation; adapt != nil {
		if loc := adapt.Location; loc != nil {
			envCfg.Postcode = loc.Postcode
			envCfg.GeocodeDBPath = loc.GeocodeDB
			if loc.Timezone != "" {
				tz, err := time.LoadLocation(loc.Timezone)
				if err != nil {
					return nil, err
				}
				envCfg.Timezone = tz
			}
		}
		if temp := adapt.Temperature; temp != nil {
			envCfg.StationID = temp.StationID
			envCfg.TempSensitivity = environment.Sensitivity(temp.Sensitivity)
			envCfg.HumSensitivity = environment.Sensitivity(temp.HumiditySensitivity)
		}
	}

	return environment.NewService(envCfg, logger)
}

// SchedulerConfig flattens the configuration union into the factory's view.
func SchedulerConfig(data *config.Data, primary devices.PowerSwitch,
	env *environment.Service, logger *zap.SugaredLogger) scheduler.Config {
	s := data.Schedule
	cfg := scheduler.Config{
		SystemType:    data.GrowingSystem.Type,
		ScheduleType:  s.Type,
		Device:        primary,
		Environment:   env,
		Logger:        logger,
		FloodDuration: minutes(s.FloodMinutes),
		DrainDuration: minutes(s.DrainMinutes),
		Interval:      minutes(s.IntervalMinutes),
	}

	if s.ActiveHours != nil {
		start, err1 := timeutil.Parse(s.ActiveHours.Start)
		end, err2 := timeutil.Parse(s.ActiveHours.End)
		if err1 == nil && err2 == nil {
			cfg.ActiveHours = &scheduler.ActiveHours{Start: start, End: end}
		}
	}

	for _, c := range s.Cycles {
		cfg.Cycles = append(cfg.Cycles, schedule.CycleSpec{
			OnTime:             c.OnTime,
			OffDurationMinutes: c.OffDurationMinutes,
		})
	}

	if adapt := s.Adaptation; adapt != nil {
		if ad := adapt.Adaptive; ad != nil {
			cfg.Adaptive = adapt.Enabled && ad.Enabled
			if bw := ad.BaseWaits; bw != nil {
				cfg.BaseWaits = map[schedule.Period]float64{
					schedule.Morning: bw.Morning,
					schedule.Day:     bw.Day,
					schedule.Evening: bw.Evening,
					schedule.Night:   bw.Night,
				}
			}
			if c := ad.Constraints; c != nil {
				cfg.Constraints = schedule.Constraints{
					MinWait:  c.MinWait,
					MaxWait:  c.MaxWait,
					MinFlood: c.MinFlood,
					MaxFlood: c.MaxFlood,
				}
			}
		}
		if temp := adapt.Temperature; temp != nil && temp.UpdateIntervalMinutes > 0 {
			cfg.UpdateInterval = time.Duration(temp.UpdateIntervalMinutes) * time.Minute
		}
	}

	return cfg
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func deviceSpecs(cfg *config.Data) []devices.Spec {
	specs := make([]devices.Spec, len(cfg.Devices.Devices))
	for i, d := range cfg.Devices.Devices {
		spec := devices.Spec{
			DeviceID: d.DeviceID,
			Name:     d.Name,
			Brand:    d.Brand,
			Model:    d.Model,
			Address:  d.Address,
		}
		if d.Auth != nil {
			spec.Username = d.Auth.Username
			spec.Password = d.Auth.Password
		}
		specs[i] = spec
	}
	return specs
}

func sensorSpecs(cfg *config.Data) []sensors.Spec {
	specs := make([]sensors.Spec, len(cfg.Sensors))
	for i, s := range cfg.Sensors {
		specs[i] = sensors.Spec{ID: s.ID, Type: s.Type}
	}
	return specs
}

func actuatorSpecs(cfg *config.Data) []actuators.Spec {
	specs := make([]actuators.Spec, len(cfg.Actuators))
	for i, s := range cfg.Actuators {
		specs[i] = actuators.Spec{ID: s.ID, Type: s.Type}
	}
	return specs
}
