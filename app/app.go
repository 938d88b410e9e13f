package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/grafana/dskit/modules"
	"github.com/grafana/dskit/services"
	"github.com/grafana/dskit/signals"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zachfi/radiolist/modules/generator"
	"github.com/zachfi/radiolist/pkg/azuracast"
	"github.com/zachfi/radiolist/pkg/health"
)

const metricsNamespace = "radiolist"

type App struct {
	cfg    Config
	logger slog.Logger

	registry *prometheus.Registry

	directory   *azuracast.Client
	coordinator *health.Coordinator
	generator   *generator.Generator

	ModuleManager *modules.Manager
	serviceMap    map[string]services.Service
}

// New creates and returns a new App.
func New(cfg Config, logger slog.Logger) (*App, error) {
	a := &App{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	if a.cfg.Target == "" {
		a.cfg.Target = All
	}

	if err := a.setupModuleManager(); err != nil {
		return nil, errors.Wrap(err, "failed to setup module manager")
	}

	return a, nil
}

// Run starts the target modules and blocks until they have all stopped. The
// error of the first failed module is returned.
func (a *App) Run() error {
	serviceMap, err := a.ModuleManager.InitModuleServices(a.cfg.Target)
	if err != nil {
		return fmt.Errorf("failed to init module services %w", err)
	}
	a.serviceMap = serviceMap

	servs := []services.Service(nil)
	for _, s := range serviceMap {
		servs = append(servs, s)
	}
	if len(servs) == 0 {
		return fmt.Errorf("target %q has nothing to run", a.cfg.Target)
	}

	sm, err := services.NewManager(servs...)
	if err != nil {
		return fmt.Errorf("failed to start service manager %w", err)
	}

	// Listen for events from this manager, and log them.
	healthy := func() { a.logger.Debug("started") }
	stopped := func() { a.logger.Debug("stopped") }
	serviceFailed := func(service services.Service) {
		// if any service fails, stop everything
		sm.StopAsync()

		for m, s := range serviceMap {
			if s == service {
				a.logger.Error("module failed", "module", m, "err", service.FailureCase())
				return
			}
		}

		a.logger.Error("module failed", "module", "unknown", "err", service.FailureCase())
	}
	sm.AddListener(services.NewManagerListener(healthy, stopped, serviceFailed))

	// Setup signal handler. If signal arrives, we stop the manager, which stops all the services.
	handler := signals.NewHandler(kitlog.NewLogfmtLogger(os.Stderr))
	go func() {
		handler.Loop()
		sm.StopAsync()
	}()
	defer handler.Stop()

	err = sm.StartAsync(context.Background())
	if err != nil {
		return fmt.Errorf("failed to start service manager %w", err)
	}

	if err := sm.AwaitStopped(context.Background()); err != nil {
		return err
	}

	if err := a.pushMetrics(); err != nil {
		a.logger.Warn("metrics were not pushed", "err", err)
	}

	for m, s := range serviceMap {
		if s.State() == services.Failed {
			return errors.Wrapf(s.FailureCase(), "module %s failed", m)
		}
	}

	return nil
}
