package devices

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tmcfarlane/floodpilot/internal/devices/shelly"
	"github.com/tmcfarlane/floodpilot/internal/devices/tapo"
)

// Spec is the configuration form of one device.
type Spec struct {
	DeviceID string
	Name     string
	Brand    string
	Model    string
	Address  string
	Username string
	Password string
}

// Registry maps device ids to power-switch handles. Construction chooses the
// concrete driver from the device brand; lookups after construction are
// read-only.
type Registry struct {
	switches map[string]PowerSwitch
	logger   *zap.SugaredLogger
}

// NewRegistry builds handles for every configured device. Unknown brands are
// a configuration error.
func NewRegistry(specs []Spec, logger *zap.SugaredLogger) (*Registry, error) {
	r := &Registry{
		switches: make(map[string]PowerSwitch, len(specs)),
		logger:   logger.Named("devices"),
	}
	for _, spec := range specs {
		sw, err := buildSwitch(spec, logger)
		if err != nil {
			return nil, err
		}
		if _, exists := r.switches[spec.DeviceID]; exists {
			return nil, fmt.Errorf("duplicate device id %q", spec.DeviceID)
		}
		r.switches[spec.DeviceID] = sw
	}
	return r, nil
}

func buildSwitch(spec Spec, logger *zap.SugaredLogger) (PowerSwitch, error) {
	info := Info{
		DeviceID: spec.DeviceID,
		Name:     spec.Name,
		Brand:    spec.Brand,
		Model:    spec.Model,
		Address:  spec.Address,
	}
	var driver Driver
	switch spec.Brand {
	case "tapo":
		driver = tapo.New(spec.Address, spec.Username, spec.Password)
	case "shelly":
		driver = shelly.New(spec.Address)
	default:
		return nil, fmt.Errorf("unsupported device brand %q for device %s", spec.Brand, spec.DeviceID)
	}
	return NewSwitch(info, driver, logger), nil
}

// Get returns the handle for a device id.
func (r *Registry) Get(deviceID string) (PowerSwitch, bool) {
	sw, ok := r.switches[deviceID]
	return sw, ok
}

// All returns every handle, ordered by device id.
func (r *Registry) All() []PowerSwitch {
	ids := make([]string, 0, len(r.switches))
	for id := range r.switches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]PowerSwitch, len(ids))
	for i, id := range ids {
		out[i] = r.switches[id]
	}
	return out
}

// ConnectAll connects every device, returning the ids that failed.
func (r *Registry) ConnectAll() []string {
	var failed []string
	for _, sw := range r.All() {
		if err := sw.Connect(); err != nil {
			r.logger.Errorw("device connection failed",
				"device", sw.Info().DeviceID, "error", err)
			failed = append(failed, sw.Info().DeviceID)
		}
	}
	return failed
}

// CloseAll closes every handle, logging failures.
func (r *Registry) CloseAll() {
	for _, sw := range r.All() {
		if err := sw.Close(); err != nil {
			r.logger.Warnw("device close failed",
				"device", sw.Info().DeviceID, "error", err)
		}
	}
}
