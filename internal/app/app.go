// Package app is the supervisor: it wires a validated configuration to the
// registries and the scheduler, manages their lifecycles, and blocks until
// a termination signal.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tmcfarlane/floodpilot/internal/actuators"
	"github.com/tmcfarlane/floodpilot/internal/controllers/restserver"
	"github.com/tmcfarlane/floodpilot/internal/devices"
	"github.com/tmcfarlane/floodpilot/internal/scheduler"
	"github.com/tmcfarlane/floodpilot/internal/sensors"
	"github.com/tmcfarlane/floodpilot/pkg/config"
)

// ErrInterrupted is returned when shutdown was triggered by SIGINT, so the
// caller can exit with the conventional interrupt status.
var ErrInterrupted = errors.New("interrupted")

// stopTimeout bounds how long shutdown waits for the scheduler worker.
const stopTimeout = 30 * time.Second

// App supervises the configured system.
type App struct {
	cfg      *config.Data
	forceWeb bool
	logger   *zap.SugaredLogger
}

// New creates a supervisor for a loaded configuration. forceWeb enables the
// control surface regardless of the file setting.
func New(cfg *config.Data, forceWeb bool, logger *zap.SugaredLogger) *App {
	return &App{cfg: cfg, forceWeb: forceWeb, logger: logger}
}

// Run validates, wires, starts, and blocks until shutdown. The device is
// confirmed off (or ensure-off has been attempted) before Run returns.
func (a *App) Run(ctx context.Context) error {
	if err := config.Validate(a.cfg); err != nil {
		return err
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	env, err := BuildEnvironment(a.cfg, a.logger)
	if err != nil {
		return err
	}

	registry, err := devices.NewRegistry(deviceSpecs(a.cfg), a.logger)
	if err != nil {
		return fmt.Errorf("failed to build device registry: %w", err)
	}

	if _, err := sensors.NewRegistry(sensorSpecs(a.cfg), a.logger); err != nil {
		return fmt.Errorf("failed to build sensor registry: %w", err)
	}
	if _, err := actuators.NewRegistry(actuatorSpecs(a.cfg), a.logger); err != nil {
		return fmt.Errorf("failed to build actuator registry: %w", err)
	}

	primary, ok := registry.Get(a.cfg.GrowingSystem.PrimaryDeviceID)
	if !ok {
		return fmt.Errorf("primary device %q not in registry", a.cfg.GrowingSystem.PrimaryDeviceID)
	}
	if err := primary.Connect(); err != nil {
		return fmt.Errorf("cannot start without the primary device: %w", err)
	}
	defer registry.CloseAll()

	sched, err := scheduler.New(SchedulerConfig(a.cfg, primary, env, a.logger))
	if err != nil {
		return err
	}
	sched.Start()

	if web := a.webConfig(); web != nil {
		ctrl := restserver.NewController(ctx, &wg, web.Host, web.Port, sched, primary, env, a.logger)
		if err := ctrl.StartController(); err != nil {
			return fmt.Errorf("failed to start REST server: %w", err)
		}
	}

	a.logger.Info("application started successfully")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	var interrupted bool
	select {
	case sig := <-sigs:
		a.logger.Infow("shutdown signal received, initiating graceful shutdown", "signal", sig)
		interrupted = sig == syscall.SIGINT
	case <-ctx.Done():
		a.logger.Info("context cancelled, shutting down")
	}

	cancel()

	if !sched.Stop(stopTimeout) {
		// The worker is abandoned; force the safety path directly.
		a.logger.Warn("scheduler did not stop cleanly, ensuring device off")
		primary.EnsureOff()
	}

	a.logger.Info("waiting for all workers to terminate")
	wg.Wait()
	a.logger.Info("shutdown complete")

	if interrupted {
		return ErrInterrupted
	}
	return nil
}

func (a *App) webConfig() *config.WebData {
	if a.cfg.Web != nil && a.cfg.Web.Enabled {
		return a.cfg.Web
	}
	if a.forceWeb {
		web := config.WebData{Enabled: true}
		if a.cfg.Web != nil {
			web = *a.cfg.Web
			web.Enabled = true
		}
		if web.Port == 0 {
			web.Port = 8080
		}
		return &web
	}
	return nil
}
