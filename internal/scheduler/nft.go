package scheduler

import (
	"time"

	"go.uber.org/zap"

	"github.com/tmcfarlane/floodpilot/internal/devices"
)

// NFT is the continuous-flow variant: the pump runs whenever the scheduler
// does. There is no cycle plan; the worker holds the device on and re-checks
// it periodically.
type NFT struct {
	runner
	device  devices.PowerSwitch
	recheck time.Duration
}

// NewNFT builds the continuous-flow scheduler.
func NewNFT(device devices.PowerSwitch, logger *zap.SugaredLogger) *NFT {
	return &NFT{
		runner:  newRunner(logger.Named("scheduler").With("variant", "nft")),
		device:  device,
		recheck: 60 * time.Second,
	}
}

// Start launches the worker. A second call is a no-op with a warning.
func (s *NFT) Start() {
	if !s.begin() {
		return
	}
	s.logger.Info("starting continuous-flow scheduler")
	go s.run()
}

// Stop signals the worker, waits up to timeout, and turns the pump off.
func (s *NFT) Stop(timeout time.Duration) bool {
	joined := s.halt(timeout)
	if !s.device.EnsureOff() {
		s.logger.Error("could not confirm device off during stop")
	}
	return joined
}

func (s *NFT) run() {
	defer s.end()
	for {
		if s.stopped() {
			return
		}
		s.setState(StateFlood)
		on, err := s.device.IsOn()
		if err != nil || !on {
			if !s.device.TurnOn(true) {
				s.logger.Error("could not hold pump on, continuing")
			}
		}
		if !s.sleep(s.recheck) {
			return
		}
	}
}

// NextEventTime is nil; continuous flow has no discrete events.
func (s *NFT) NextEventTime() *time.Time { return nil }

// Status reports the worker's view for the control surface.
func (s *NFT) Status() map[string]interface{} {
	return map[string]interface{}{
		"type":    "nft",
		"state":   string(s.State()),
		"running": s.Running(),
	}
}
