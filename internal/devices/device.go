// Package devices maintains the registry of smart-plug handles and applies
// the retry and verification policy on top of brand-specific drivers.
package devices

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Info describes one configured device.
type Info struct {
	DeviceID string `json:"device_id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Model    string `json:"model,omitempty"`
	Address  string `json:"address"`
}

// PowerSwitch is the capability set every device handle provides. Control
// methods return a success flag rather than an error; failures are logged by
// the handle and must never panic.
type PowerSwitch interface {
	Info() Info
	Connect() error
	TurnOn(verify bool) bool
	TurnOff(verify bool) bool
	IsConnected() bool
	IsOn() (bool, error)
	EnsureOff() bool
	Close() error
}

// Driver is the minimal transport contract a brand implementation fulfils.
// The Switch wrapper layers retries and verification on top of it.
type Driver interface {
	Connect() error
	SetPower(on bool) error
	Power() (bool, error)
	Close() error
}

const (
	commandRetries = 3
	retryDelay     = 500 * time.Millisecond
)

// Switch wraps a Driver with the shared command policy: bounded retries,
// optional post-command verification, and success-flag semantics.
type Switch struct {
	info      Info
	driver    Driver
	logger    *zap.SugaredLogger
	connected bool

	retries int
	delay   time.Duration
}

// NewSwitch builds a handle around a brand driver.
func NewSwitch(info Info, driver Driver, logger *zap.SugaredLogger) *Switch {
	return &Switch{
		info:    info,
		driver:  driver,
		logger:  logger.Named("device").With("device", info.DeviceID),
		retries: commandRetries,
		delay:   retryDelay,
	}
}

// Info returns the device description.
func (s *Switch) Info() Info { return s.info }

// Connect establishes the driver transport. Control calls before a
// successful Connect fail.
func (s *Switch) Connect() error {
	if err := s.driver.Connect(); err != nil {
		return fmt.Errorf("failed to connect to device %s: %w", s.info.DeviceID, err)
	}
	s.connected = true
	s.logger.Infow("connected", "brand", s.info.Brand, "address", s.info.Address)
	return nil
}

// IsConnected reports whether Connect has succeeded.
func (s *Switch) IsConnected() bool { return s.connected }

// TurnOn energises the device. With verify set, each attempt re-queries
// device state and only a confirmed on counts as success.
func (s *Switch) TurnOn(verify bool) bool { return s.setPower(true, verify) }

// TurnOff de-energises the device, with the same retry and verify policy.
func (s *Switch) TurnOff(verify bool) bool { return s.setPower(false, verify) }

func (s *Switch) setPower(on bool, verify bool) bool {
	if !s.connected {
		s.logger.Errorw("command on unconnected device", "on", on)
		return false
	}

	for attempt := 1; attempt <= s.retries; attempt++ {
		err := s.driver.SetPower(on)
		if err != nil {
			s.logger.Warnw("power command failed",
				"on", on, "attempt", attempt, "error", err)
			time.Sleep(s.delay)
			continue
		}
		if !verify {
			return true
		}
		state, err := s.driver.Power()
		if err != nil {
			s.logger.Warnw("state verification failed",
				"on", on, "attempt", attempt, "error", err)
			time.Sleep(s.delay)
			continue
		}
		if state == on {
			return true
		}
		s.logger.Warnw("device state does not match command",
			"wanted", on, "got", state, "attempt", attempt)
		time.Sleep(s.delay)
	}

	s.logger.Errorw("power command exhausted retries", "on", on, "retries", s.retries)
	return false
}

// IsOn queries the current relay state.
func (s *Switch) IsOn() (bool, error) {
	if !s.connected {
		return false, fmt.Errorf("device %s is not connected", s.info.DeviceID)
	}
	return s.driver.Power()
}

// EnsureOff queries the device and issues a verified TurnOff only when it is
// on. A device already off, or an unanswerable query followed by a
// successful off command, both count as success.
func (s *Switch) EnsureOff() bool {
	on, err := s.IsOn()
	if err != nil {
		s.logger.Warnw("cannot query state, sending off anyway", "error", err)
		return s.TurnOff(true)
	}
	if !on {
		return true
	}
	return s.TurnOff(true)
}

// Close releases the driver transport.
func (s *Switch) Close() error {
	s.connected = false
	return s.driver.Close()
}
