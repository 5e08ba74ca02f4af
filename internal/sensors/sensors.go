// Package sensors reserves the sensor registry slot. No sensor drivers
// exist yet; configured entries are recorded so the control surface and
// supervisor wiring stay stable when drivers arrive.
package sensors

import (
	"fmt"

	"go.uber.org/zap"
)

// Sensor is the capability a driver will provide.
type Sensor interface {
	ID() string
	Type() string
	Read() (float64, error)
}

// Spec is the configuration form of one sensor.
type Spec struct {
	ID   string
	Type string
}

// Registry holds configured sensors.
type Registry struct {
	specs  []Spec
	logger *zap.SugaredLogger
}

// NewRegistry records the configured sensors. Unrecognised types are an
// error so a typo is caught at startup rather than ignored.
func NewRegistry(specs []Spec, logger *zap.SugaredLogger) (*Registry, error) {
	for _, s := range specs {
		if s.ID == "" {
			return nil, fmt.Errorf("sensor with empty id")
		}
		// No driver types are implemented yet.
		return nil, fmt.Errorf("unsupported sensor type %q for sensor %s", s.Type, s.ID)
	}
	return &Registry{specs: specs, logger: logger.Named("sensors")}, nil
}

// Count returns the number of configured sensors.
func (r *Registry) Count() int { return len(r.specs) }
