package config

import (
	"strings"
	"testing"
)

// validData returns a minimal configuration that passes validation.
func validData() *Data {
	return &Data{
		Devices: DevicesData{Devices: []DeviceData{
			{DeviceID: "plug1", Brand: "tapo", Address: "192.168.1.50"},
		}},
		GrowingSystem: GrowingSystem{Type: "flood_drain", PrimaryDeviceID: "plug1"},
		Schedule: ScheduleData{
			Type:         "time_based",
			FloodMinutes: 2,
			Cycles:       []CycleData{{OnTime: "06:00", OffDurationMinutes: 30}},
		},
	}
}

func fieldPaths(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	paths := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		paths[i] = f.Path
	}
	return paths
}

func assertPath(t *testing.T, paths []string, want string) {
	t.Helper()
	for _, p := range paths {
		if p == want {
			return
		}
	}
	t.Errorf("no error at %s, got %v", want, paths)
}

func TestValidateAccepts(t *testing.T) {
	if err := Validate(validData()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateAggregatesEveryFailure(t *testing.T) {
	d := validData()
	d.Devices.Devices[0].Brand = "kasa"
	d.GrowingSystem.Type = "aeroponics"
	d.Schedule.FloodMinutes = 0
	d.Logging.Level = "verbose"

	paths := fieldPaths(t, Validate(d))
	if len(paths) != 4 {
		t.Errorf("error count = %d, want 4: %v", len(paths), paths)
	}
	assertPath(t, paths, "devices.devices[0].brand")
	assertPath(t, paths, "growing_system.type")
	assertPath(t, paths, "schedule.flood_minutes")
	assertPath(t, paths, "logging.level")
}

func TestValidateDeviceList(t *testing.T) {
	d := validData()
	d.Devices.Devices = nil
	d.GrowingSystem.PrimaryDeviceID = ""
	paths := fieldPaths(t, Validate(d))
	assertPath(t, paths, "devices.devices")
	assertPath(t, paths, "growing_system.primary_device_id")

	d = validData()
	d.Devices.Devices = append(d.Devices.Devices,
		DeviceData{DeviceID: "plug1", Brand: "shelly", Address: "192.168.1.60"})
	assertPath(t, fieldPaths(t, Validate(d)), "devices.devices[1].device_id")

	d = validData()
	d.GrowingSystem.PrimaryDeviceID = "plug9"
	assertPath(t, fieldPaths(t, Validate(d)), "growing_system.primary_device_id")
}

func TestValidateIntervalSchedule(t *testing.T) {
	d := validData()
	d.Schedule = ScheduleData{
		Type:            "interval",
		FloodMinutes:    3,
		DrainMinutes:    2,
		IntervalMinutes: 45,
		ActiveHours:     &ActiveHoursData{Start: "07:00", End: "21:00"},
	}
	if err := Validate(d); err != nil {
		t.Fatalf("interval config rejected: %v", err)
	}

	d.Schedule.IntervalMinutes = 0
	d.Schedule.ActiveHours.End = "25:00"
	paths := fieldPaths(t, Validate(d))
	assertPath(t, paths, "schedule.interval_minutes")
	assertPath(t, paths, "schedule.active_hours.end")
}

func TestValidateUnknownScheduleType(t *testing.T) {
	d := validData()
	d.Schedule.Type = "lunar"
	assertPath(t, fieldPaths(t, Validate(d)), "schedule.type")
}

func TestValidateTimeBasedCycles(t *testing.T) {
	d := validData()
	d.Schedule.Cycles = nil
	assertPath(t, fieldPaths(t, Validate(d)), "schedule.cycles")

	// Enabled adaptation lifts the cycle requirement.
	d.Schedule.Adaptation = &AdaptationData{
		Enabled:  true,
		Adaptive: &AdaptiveData{Enabled: true},
	}
	if err := Validate(d); err != nil {
		t.Fatalf("adaptive config without cycles rejected: %v", err)
	}

	// Adaptation present but generator disabled: cycles still required.
	d.Schedule.Adaptation.Adaptive.Enabled = false
	assertPath(t, fieldPaths(t, Validate(d)), "schedule.cycles")

	d = validData()
	d.Schedule.Cycles = []CycleData{{OnTime: "6pm", OffDurationMinutes: -1}}
	assertPath(t, fieldPaths(t, Validate(d)), "schedule.cycles[0].off_duration_minutes")
}

func TestValidateAdaptation(t *testing.T) {
	d := validData()
	d.Schedule.Adaptation = &AdaptationData{
		Enabled:     true,
		Location:    &LocationData{Timezone: "Mars/Olympus"},
		Temperature: &TemperatureData{Sensitivity: "extreme", UpdateIntervalMinutes: -5},
		Adaptive: &AdaptiveData{
			Enabled:     true,
			Constraints: &ConstraintsData{MinWait: 60, MaxWait: 30, MinFlood: 2, MaxFlood: 15},
		},
	}
	paths := fieldPaths(t, Validate(d))
	assertPath(t, paths, "schedule.adaptation.location.timezone")
	assertPath(t, paths, "schedule.adaptation.temperature.sensitivity")
	assertPath(t, paths, "schedule.adaptation.temperature.update_interval_minutes")
	assertPath(t, paths, "schedule.adaptation.adaptive.constraints")
}

func TestValidationErrorMessage(t *testing.T) {
	d := validData()
	d.Devices.Devices[0].Address = ""
	d.Web = &WebData{Enabled: true, Port: 70000}

	err := Validate(d)
	msg := err.Error()
	if !strings.Contains(msg, "2 errors") {
		t.Errorf("message does not report the count: %q", msg)
	}
	if !strings.Contains(msg, "devices.devices[0].address") || !strings.Contains(msg, "web.port") {
		t.Errorf("message does not list the failing paths: %q", msg)
	}
}
