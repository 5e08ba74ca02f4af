package restserver

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tmcfarlane/floodpilot/internal/devices"
	"github.com/tmcfarlane/floodpilot/internal/environment"
	"github.com/tmcfarlane/floodpilot/internal/schedule"
	"github.com/tmcfarlane/floodpilot/internal/scheduler"
	"github.com/tmcfarlane/floodpilot/internal/stations"
)

// cycleUpdater is satisfied by scheduler variants that accept live cycle
// replacement.
type cycleUpdater interface {
	UpdateCycles([]schedule.CycleSpec) error
	Cycles() []schedule.Cycle
}

// Handlers holds the endpoint implementations.
type Handlers struct {
	scheduler scheduler.Scheduler
	device    devices.PowerSwitch
	env       *environment.Service
	logger    *zap.SugaredLogger
}

// NewHandlers builds the handler set.
func NewHandlers(sched scheduler.Scheduler, device devices.PowerSwitch,
	env *environment.Service, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{scheduler: sched, device: device, env: env, logger: logger}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Errorw("failed to encode response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// GetStatus reports the scheduler's view plus device connectivity.
func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := h.scheduler.Status()
	status["device_connected"] = h.device.IsConnected()
	h.writeJSON(w, http.StatusOK, status)
}

// GetEnvironment reports the environmental snapshot.
func (h *Handlers) GetEnvironment(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.env.Snapshot())
}

type scheduleView struct {
	Cycles []cycleView `json:"cycles"`
}

type cycleView struct {
	OnTime             string   `json:"on_time"`
	OffDurationMinutes float64  `json:"off_duration_minutes"`
	Period             string   `json:"period,omitempty"`
	Temperature        *float64 `json:"temperature_c,omitempty"`
	Humidity           *float64 `json:"humidity_pct,omitempty"`
	TempFactor         float64  `json:"temp_factor,omitempty"`
	HumidityFactor     float64  `json:"humidity_factor,omitempty"`
}

// GetSchedule returns the active cycle list with generator annotations.
func (h *Handlers) GetSchedule(w http.ResponseWriter, r *http.Request) {
	updater, ok := h.scheduler.(cycleUpdater)
	if !ok {
		h.writeError(w, http.StatusNotFound, "active scheduler has no cycle list")
		return
	}
	view := scheduleView{Cycles: []cycleView{}}
	for _, c := range updater.Cycles() {
		view.Cycles = append(view.Cycles, cycleView{
			OnTime:             c.On.String(),
			OffDurationMinutes: c.OffDuration,
			Period:             string(c.Period),
			Temperature:        c.Temperature,
			Humidity:           c.Humidity,
			TempFactor:         c.TempFactor,
			HumidityFactor:     c.HumidityFactor,
		})
	}
	h.writeJSON(w, http.StatusOK, view)
}

// PutSchedule replaces the cycle list on schedulers that support it.
func (h *Handlers) PutSchedule(w http.ResponseWriter, r *http.Request) {
	updater, ok := h.scheduler.(cycleUpdater)
	if !ok {
		h.writeError(w, http.StatusConflict, "active scheduler does not accept cycle updates")
		return
	}

	var body struct {
		Cycles []schedule.CycleSpec `json:"cycles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := updater.UpdateCycles(body.Cycles); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"cycles": len(body.Cycles)})
}

// StartScheduler starts the scheduler worker.
func (h *Handlers) StartScheduler(w http.ResponseWriter, r *http.Request) {
	h.scheduler.Start()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"running": h.scheduler.Running()})
}

// StopScheduler stops the scheduler worker, leaving the device off.
func (h *Handlers) StopScheduler(w http.ResponseWriter, r *http.Request) {
	stopped := h.scheduler.Stop(30 * time.Second)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"running": h.scheduler.Running(),
		"stopped": stopped,
	})
}

// GetDevice reports the primary device's info and relay state.
func (h *Handlers) GetDevice(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"info":      h.device.Info(),
		"connected": h.device.IsConnected(),
	}
	if on, err := h.device.IsOn(); err == nil {
		body["on"] = on
	} else {
		body["state_error"] = err.Error()
	}
	h.writeJSON(w, http.StatusOK, body)
}

// DeviceOn turns the primary device on with verification.
func (h *Handlers) DeviceOn(w http.ResponseWriter, r *http.Request) {
	h.deviceCommand(w, true)
}

// DeviceOff turns the primary device off with verification.
func (h *Handlers) DeviceOff(w http.ResponseWriter, r *http.Request) {
	h.deviceCommand(w, false)
}

func (h *Handlers) deviceCommand(w http.ResponseWriter, on bool) {
	var ok bool
	if on {
		ok = h.device.TurnOn(true)
	} else {
		ok = h.device.TurnOff(true)
	}
	status := http.StatusOK
	if !ok {
		status = http.StatusBadGateway
	}
	h.writeJSON(w, status, map[string]bool{"success": ok, "on": on && ok})
}

// GetStations searches the observation station directory. Without a query
// it returns the full directory.
func (h *Handlers) GetStations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	var result []stations.Station
	if query == "" {
		result = stations.All()
	} else {
		result = stations.Search(query)
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(result),
		"stations": result,
	})
}
