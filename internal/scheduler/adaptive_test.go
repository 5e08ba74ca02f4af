package scheduler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/tmcfarlane/floodpilot/internal/environment"
	"github.com/tmcfarlane/floodpilot/internal/schedule"
	"github.com/tmcfarlane/floodpilot/internal/timeutil"
)

func newTestAdaptive(t *testing.T, env *environment.Service, device *fakeSwitch) *Adaptive {
	t.Helper()
	a, err := NewAdaptive(Config{
		Device:        device,
		Environment:   env,
		Logger:        testLogger(),
		Adaptive:      true,
		FloodDuration: 2 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewAdaptive: %v", err)
	}
	return a
}

func TestGenerateNeutralConditions(t *testing.T) {
	// 20°C and 50% humidity sit in the neutral bands: every factor is 1.0
	// and waits equal the period base waits.
	env := testEnv(t, 20, 50)
	a := newTestAdaptive(t, env, &fakeSwitch{})

	cycles := a.GeneratedCycles()
	if len(cycles) == 0 {
		t.Fatal("no cycles generated")
	}

	for i := 1; i < len(cycles); i++ {
		if cycles[i].On < cycles[i-1].On {
			t.Fatalf("cycles not sorted: %v after %v", cycles[i].On, cycles[i-1].On)
		}
	}

	byPeriod := make(map[schedule.Period][]schedule.Cycle)
	for _, c := range cycles {
		if c.OffDuration < 5 || c.OffDuration > 180 {
			t.Errorf("wait %g outside constraints at %v", c.OffDuration, c.On)
		}
		byPeriod[c.Period] = append(byPeriod[c.Period], c)
	}

	morning := byPeriod[schedule.Morning]
	if len(morning) == 0 {
		t.Fatal("no morning cycles")
	}
	if morning[0].On != timeutil.New(6, 0) {
		t.Errorf("first morning event = %v, want 06:00", morning[0].On)
	}
	for _, c := range morning {
		if c.OffDuration != 18 {
			t.Errorf("morning wait = %g at %v, want base 18", c.OffDuration, c.On)
		}
		if c.TempFactor != 1.0 || c.HumidityFactor != 1.0 {
			t.Errorf("factors = %g/%g at %v, want neutral", c.TempFactor, c.HumidityFactor, c.On)
		}
	}
	// Base 18 plus a 2-minute flood: morning events every 20 minutes.
	if len(morning) > 1 {
		if gap := morning[0].On.MinutesUntil(morning[1].On); gap != 20 {
			t.Errorf("morning spacing = %d minutes, want 20", gap)
		}
	}

	for _, c := range byPeriod[schedule.Night] {
		if c.OffDuration != 118 {
			t.Errorf("night wait = %g at %v, want base 118", c.OffDuration, c.On)
		}
	}

	if len(byPeriod[schedule.Day]) == 0 || len(byPeriod[schedule.Evening]) == 0 {
		t.Error("day or evening period empty")
	}
}

func TestGenerateHotWeatherShortensWaits(t *testing.T) {
	env := testEnv(t, 36, 50)
	a := newTestAdaptive(t, env, &fakeSwitch{})

	neutral := map[schedule.Period]float64{
		schedule.Morning: 18, schedule.Day: 28, schedule.Evening: 18, schedule.Night: 118,
	}
	for _, c := range a.GeneratedCycles() {
		if c.OffDuration >= neutral[c.Period] {
			t.Errorf("hot-weather wait %g at %v not below base %g",
				c.OffDuration, c.On, neutral[c.Period])
		}
	}
}

func TestGenerateColdWeatherLengthensWaits(t *testing.T) {
	// 8°C stays in the cold band at every hour after diurnal offsets.
	env := testEnv(t, 8, 50)
	a := newTestAdaptive(t, env, &fakeSwitch{})

	for _, c := range a.GeneratedCycles() {
		if c.TempFactor != 1.15 {
			t.Errorf("cold factor = %g at %v, want 1.15", c.TempFactor, c.On)
		}
	}
}

func TestGenerateWithoutObservations(t *testing.T) {
	// Unreachable endpoint: factors fall back to neutral.
	env, err := environment.NewService(environment.Config{StationID: "94768"}, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	env.Observations.SetBaseURL("http://127.0.0.1:1/obs")

	a := newTestAdaptive(t, env, &fakeSwitch{})
	cycles := a.GeneratedCycles()
	if len(cycles) == 0 {
		t.Fatal("generation must still produce a schedule without data")
	}
	for _, c := range cycles {
		if c.TempFactor != 1.0 || c.HumidityFactor != 1.0 {
			t.Errorf("factors = %g/%g at %v, want neutral without data",
				c.TempFactor, c.HumidityFactor, c.On)
		}
		if c.Temperature != nil {
			t.Errorf("temperature annotation = %v, want nil", *c.Temperature)
		}
	}
}

func TestDisabledModePlaceholder(t *testing.T) {
	env, err := environment.NewService(environment.Config{StationID: "94768"}, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	device := &fakeSwitch{}
	device.Connect()
	a, err := NewAdaptive(Config{
		Device:        device,
		Environment:   env,
		Logger:        testLogger(),
		Adaptive:      false,
		FloodDuration: 2 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewAdaptive: %v", err)
	}

	if got := a.GeneratedCycles(); len(got) != 0 {
		t.Errorf("disabled generator produced %d cycles", len(got))
	}
	inner := a.Cycles()
	if len(inner) != 1 || inner[0].On != timeutil.New(0, 0) || inner[0].OffDuration != 60 {
		t.Errorf("placeholder = %+v, want single 00:00/60", inner)
	}

	a.Start()
	if !a.Running() {
		t.Fatal("embedded scheduler should run in disabled mode")
	}
	if !a.Stop(time.Second) {
		t.Error("Stop did not join")
	}
}

func TestRefreshRegenerates(t *testing.T) {
	var mu sync.Mutex
	temp := 20.0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, `{"observations":{"data":[{"air_temp":%g,"rel_hum":50}]}}`, temp)
	}))
	defer server.Close()

	env, err := environment.NewService(environment.Config{StationID: "94768"}, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	env.Observations.SetBaseURL(server.URL + "/obs")

	a := newTestAdaptive(t, env, &fakeSwitch{})
	for _, c := range a.GeneratedCycles() {
		if c.TempFactor != 1.0 {
			t.Fatalf("expected neutral factors initially, got %g", c.TempFactor)
		}
	}

	mu.Lock()
	temp = 36
	mu.Unlock()

	if !a.refreshOnce() {
		t.Fatal("refreshOnce failed")
	}

	sawAdjusted := false
	for _, c := range a.GeneratedCycles() {
		if c.TempFactor != 1.0 {
			sawAdjusted = true
		}
	}
	if !sawAdjusted {
		t.Error("refresh did not pick up the new temperature")
	}
	if got := a.Cycles(); len(got) != len(a.GeneratedCycles()) {
		t.Errorf("embedded scheduler has %d cycles, generator %d", len(got), len(a.GeneratedCycles()))
	}
}

func TestAdaptiveStatus(t *testing.T) {
	a := newTestAdaptive(t, testEnv(t, 20, 50), &fakeSwitch{})
	status := a.Status()
	if status["type"] != "adaptive" {
		t.Errorf("type = %v", status["type"])
	}
	if status["adaptation_enabled"] != true {
		t.Errorf("adaptation_enabled = %v", status["adaptation_enabled"])
	}
	if status["generated_cycles"].(int) == 0 {
		t.Error("generated_cycles = 0")
	}
}
