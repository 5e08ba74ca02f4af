package restserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tmcfarlane/floodpilot/internal/devices"
	"github.com/tmcfarlane/floodpilot/internal/environment"
	"github.com/tmcfarlane/floodpilot/internal/schedule"
	"github.com/tmcfarlane/floodpilot/internal/scheduler"
	"github.com/tmcfarlane/floodpilot/internal/timeutil"
)

func testLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

// fakeScheduler implements the bare scheduler interface without cycle
// replacement.
type fakeScheduler struct {
	mu      sync.Mutex
	running bool
	starts  int
	stops   int
}

func (f *fakeScheduler) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = true
	f.starts++
}

func (f *fakeScheduler) Stop(timeout time.Duration) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	f.stops++
	return true
}

func (f *fakeScheduler) State() scheduler.State { return scheduler.StateIdle }

func (f *fakeScheduler) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakeScheduler) NextEventTime() *time.Time { return nil }

func (f *fakeScheduler) Status() map[string]interface{} {
	return map[string]interface{}{"type": "fake", "running": f.Running()}
}

// updatableScheduler adds the cycle list surface.
type updatableScheduler struct {
	fakeScheduler
	mu        sync.Mutex
	cycles    []schedule.Cycle
	updateErr error
}

func (u *updatableScheduler) UpdateCycles(specs []schedule.CycleSpec) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.updateErr != nil {
		return u.updateErr
	}
	cycles, _, err := schedule.ParseCycles(specs)
	if err != nil {
		return err
	}
	u.cycles = cycles
	return nil
}

func (u *updatableScheduler) Cycles() []schedule.Cycle {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]schedule.Cycle, len(u.cycles))
	copy(out, u.cycles)
	return out
}

// fakeSwitch is a minimal in-memory power switch.
type fakeSwitch struct {
	mu       sync.Mutex
	on       bool
	failNext bool
}

func (f *fakeSwitch) Info() devices.Info { return devices.Info{DeviceID: "plug1", Brand: "tapo"} }
func (f *fakeSwitch) Connect() error     { return nil }
func (f *fakeSwitch) IsConnected() bool  { return true }

func (f *fakeSwitch) TurnOn(verify bool) bool  { return f.set(true) }
func (f *fakeSwitch) TurnOff(verify bool) bool { return f.set(false) }

func (f *fakeSwitch) set(on bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return false
	}
	f.on = on
	return true
}

func (f *fakeSwitch) IsOn() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.on, nil
}

func (f *fakeSwitch) EnsureOff() bool { return f.TurnOff(true) }
func (f *fakeSwitch) Close() error    { return nil }

func testEnv(t *testing.T) *environment.Service {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"observations":{"data":[{"air_temp":21.5,"rel_hum":55}]}}`)
	}))
	t.Cleanup(server.Close)

	env, err := environment.NewService(environment.Config{StationID: "94768"}, testLogger())
	if err != nil {
		t.Fatalf("environment.NewService: %v", err)
	}
	env.Observations.SetBaseURL(server.URL + "/obs")
	env.Observations.Fetch()
	return env
}

// newTestServer stands up the full router, middleware included.
func newTestServer(t *testing.T, sched scheduler.Scheduler, device devices.PowerSwitch) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var wg sync.WaitGroup
	c := NewController(ctx, &wg, "127.0.0.1", 0, sched, device, testEnv(t), testLogger())
	server := httptest.NewServer(c.Server.Handler)
	t.Cleanup(server.Close)
	return server
}

func decodeBody(t *testing.T, resp *http.Response, into interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestGetStatus(t *testing.T) {
	server := newTestServer(t, &fakeScheduler{}, &fakeSwitch{})

	resp, err := http.Get(server.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["type"] != "fake" {
		t.Errorf("type = %v", body["type"])
	}
	if body["device_connected"] != true {
		t.Errorf("device_connected = %v", body["device_connected"])
	}
}

func TestGetEnvironment(t *testing.T) {
	server := newTestServer(t, &fakeScheduler{}, &fakeSwitch{})

	resp, err := http.Get(server.URL + "/api/environment")
	if err != nil {
		t.Fatalf("GET /environment: %v", err)
	}
	var snap environment.Snapshot
	decodeBody(t, resp, &snap)
	if snap.StationID != "94768" {
		t.Errorf("station = %q", snap.StationID)
	}
	if snap.Temperature == nil || *snap.Temperature != 21.5 {
		t.Errorf("temperature = %v", snap.Temperature)
	}
}

func TestScheduleRoundTrip(t *testing.T) {
	sched := &updatableScheduler{}
	sched.UpdateCycles([]schedule.CycleSpec{{OnTime: "06:00", OffDurationMinutes: 30}})
	server := newTestServer(t, sched, &fakeSwitch{})

	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/schedule",
		strings.NewReader(`{"cycles":[{"on_time":"07:30","off_duration_minutes":45}]}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /schedule: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/api/schedule")
	if err != nil {
		t.Fatalf("GET /schedule: %v", err)
	}
	var view struct {
		Cycles []struct {
			OnTime             string  `json:"on_time"`
			OffDurationMinutes float64 `json:"off_duration_minutes"`
		} `json:"cycles"`
	}
	decodeBody(t, resp, &view)
	if len(view.Cycles) != 1 {
		t.Fatalf("cycle count = %d", len(view.Cycles))
	}
	if view.Cycles[0].OnTime != "07:30" || view.Cycles[0].OffDurationMinutes != 45 {
		t.Errorf("cycle = %+v", view.Cycles[0])
	}

	got := sched.Cycles()
	if len(got) != 1 || got[0].On != timeutil.New(7, 30) {
		t.Errorf("scheduler cycles = %+v", got)
	}
}

func TestScheduleUnsupportedScheduler(t *testing.T) {
	server := newTestServer(t, &fakeScheduler{}, &fakeSwitch{})

	resp, err := http.Get(server.URL + "/api/schedule")
	if err != nil {
		t.Fatalf("GET /schedule: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET status = %d, want 404", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/schedule",
		strings.NewReader(`{"cycles":[]}`))
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /schedule: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("PUT status = %d, want 409", resp.StatusCode)
	}
}

func TestPutScheduleBadBody(t *testing.T) {
	sched := &updatableScheduler{}
	server := newTestServer(t, sched, &fakeSwitch{})

	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/schedule", strings.NewReader(`{`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /schedule: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	// A decodable body the scheduler rejects maps to 422.
	req, _ = http.NewRequest(http.MethodPut, server.URL+"/api/schedule",
		strings.NewReader(`{"cycles":[{"on_time":"99:99","off_duration_minutes":10}]}`))
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /schedule: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestSchedulerStartStop(t *testing.T) {
	sched := &fakeScheduler{}
	server := newTestServer(t, sched, &fakeSwitch{})

	resp, err := http.Post(server.URL+"/api/scheduler/start", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /scheduler/start: %v", err)
	}
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["running"] != true {
		t.Errorf("running = %v after start", body["running"])
	}

	resp, err = http.Post(server.URL+"/api/scheduler/stop", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /scheduler/stop: %v", err)
	}
	decodeBody(t, resp, &body)
	if body["running"] != false || body["stopped"] != true {
		t.Errorf("stop response = %v", body)
	}
	if sched.starts != 1 || sched.stops != 1 {
		t.Errorf("starts/stops = %d/%d", sched.starts, sched.stops)
	}
}

func TestDeviceEndpoints(t *testing.T) {
	device := &fakeSwitch{}
	server := newTestServer(t, &fakeScheduler{}, device)

	resp, err := http.Post(server.URL+"/api/device/on", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /device/on: %v", err)
	}
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["success"] != true || body["on"] != true {
		t.Errorf("on response = %v", body)
	}

	resp, err = http.Get(server.URL + "/api/device")
	if err != nil {
		t.Fatalf("GET /device: %v", err)
	}
	decodeBody(t, resp, &body)
	if body["on"] != true || body["connected"] != true {
		t.Errorf("device state = %v", body)
	}

	resp, err = http.Post(server.URL+"/api/device/off", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /device/off: %v", err)
	}
	decodeBody(t, resp, &body)
	if body["success"] != true {
		t.Errorf("off response = %v", body)
	}
	if on, _ := device.IsOn(); on {
		t.Error("device still on")
	}
}

func TestDeviceCommandFailure(t *testing.T) {
	device := &fakeSwitch{failNext: true}
	server := newTestServer(t, &fakeScheduler{}, device)

	resp, err := http.Post(server.URL+"/api/device/on", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /device/on: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}

func TestGetStations(t *testing.T) {
	server := newTestServer(t, &fakeScheduler{}, &fakeSwitch{})

	resp, err := http.Get(server.URL + "/api/stations?q=sydney")
	if err != nil {
		t.Fatalf("GET /stations: %v", err)
	}
	var body struct {
		Count    int `json:"count"`
		Stations []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"stations"`
	}
	decodeBody(t, resp, &body)
	if body.Count == 0 {
		t.Fatal("no stations matched sydney")
	}
	for _, s := range body.Stations {
		if !strings.Contains(strings.ToLower(s.Name), "sydney") {
			t.Errorf("station %s %q does not match the query", s.ID, s.Name)
		}
	}

	resp, err = http.Get(server.URL + "/api/stations")
	if err != nil {
		t.Fatalf("GET /stations: %v", err)
	}
	var all struct {
		Count int `json:"count"`
	}
	decodeBody(t, resp, &all)
	if all.Count <= body.Count {
		t.Errorf("full directory (%d) not larger than the filtered set (%d)", all.Count, body.Count)
	}
}
