// Package actuators reserves the actuator registry slot, mirroring the
// sensors package. Dosing pumps and valves will land here.
package actuators

import (
	"fmt"

	"go.uber.org/zap"
)

// Actuator is the capability a driver will provide.
type Actuator interface {
	ID() string
	Type() string
	Set(value float64) error
}

// Spec is the configuration form of one actuator.
type Spec struct {
	ID   string
	Type string
}

// Registry holds configured actuators.
type Registry struct {
	specs  []Spec
	logger *zap.SugaredLogger
}

// NewRegistry records the configured actuators. Unrecognised types are an
// error so a typo is caught at startup rather than ignored.
func NewRegistry(specs []Spec, logger *zap.SugaredLogger) (*Registry, error) {
	for _, s := range specs {
		if s.ID == "" {
			return nil, fmt.Errorf("actuator with empty id")
		}
		// No driver types are implemented yet.
		return nil, fmt.Errorf("unsupported actuator type %q for actuator %s", s.Type, s.ID)
	}
	return &Registry{specs: specs, logger: logger.Named("actuators")}, nil
}

// Count returns the number of configured actuators.
func (r *Registry) Count() int { return len(r.specs) }
