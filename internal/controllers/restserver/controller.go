// Package restserver exposes the HTTP control surface: status, environment,
// schedule inspection and replacement, and direct device control.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tmcfarlane/floodpilot/internal/devices"
	"github.com/tmcfarlane/floodpilot/internal/environment"
	"github.com/tmcfarlane/floodpilot/internal/scheduler"
)

// Controller owns the HTTP server and its handler set.
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	Server   http.Server
	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewController builds the control surface around the running scheduler,
// the primary device handle, and the environmental service.
func NewController(ctx context.Context, wg *sync.WaitGroup, host string, port int,
	sched scheduler.Scheduler, device devices.PowerSwitch, env *environment.Service,
	logger *zap.SugaredLogger) *Controller {

	c := &Controller{
		ctx:    ctx,
		wg:     wg,
		logger: logger.Named("restserver"),
	}
	c.handlers = NewHandlers(sched, device, env, c.logger)

	c.Server = http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      c.setupRouter(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return c
}

// StartController starts the server and arranges shutdown on context
// cancellation.
func (c *Controller) StartController() error {
	c.logger.Infow("starting REST control surface", "addr", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			c.logger.Errorw("REST server error", "error", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Info("shutting down the REST server")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

func (c *Controller) setupRouter() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", c.handlers.GetStatus).Methods(http.MethodGet)
	api.HandleFunc("/environment", c.handlers.GetEnvironment).Methods(http.MethodGet)
	api.HandleFunc("/schedule", c.handlers.GetSchedule).Methods(http.MethodGet)
	api.HandleFunc("/schedule", c.handlers.PutSchedule).Methods(http.MethodPut)
	api.HandleFunc("/scheduler/start", c.handlers.StartScheduler).Methods(http.MethodPost)
	api.HandleFunc("/scheduler/stop", c.handlers.StopScheduler).Methods(http.MethodPost)
	api.HandleFunc("/device", c.handlers.GetDevice).Methods(http.MethodGet)
	api.HandleFunc("/device/on", c.handlers.DeviceOn).Methods(http.MethodPost)
	api.HandleFunc("/device/off", c.handlers.DeviceOff).Methods(http.MethodPost)
	api.HandleFunc("/stations", c.handlers.GetStations).Methods(http.MethodGet)

	router.Use(c.requestIDMiddleware)
	return gorillahandlers.CompressHandler(
		gorillahandlers.RecoveryHandler(
			gorillahandlers.RecoveryLogger(&recoveryLogger{c.logger}))(router))
}

// requestIDMiddleware tags each request so log lines from one request can
// be correlated.
func (c *Controller) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		c.logger.Debugw("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

type recoveryLogger struct {
	logger *zap.SugaredLogger
}

func (l *recoveryLogger) Println(v ...interface{}) {
	l.logger.Errorw("handler panic", "detail", fmt.Sprint(v...))
}
