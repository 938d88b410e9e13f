package app

import (
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/grafana/dskit/modules"
	"github.com/grafana/dskit/services"
	"github.com/pkg/errors"

	"github.com/zachfi/radiolist/modules/generator"
	"github.com/zachfi/radiolist/pkg/azuracast"
	"github.com/zachfi/radiolist/pkg/health"
)

const (
	Directory string = "directory"
	Health    string = "health"

	Generator string = "generator"

	All string = "all"
)

func (a *App) setupModuleManager() error {
	mm := modules.NewManager(kitlog.NewLogfmtLogger(os.Stderr))
	mm.RegisterModule(Directory, a.initDirectory, modules.UserInvisibleModule)
	mm.RegisterModule(Health, a.initHealth, modules.UserInvisibleModule)

	mm.RegisterModule(Generator, a.initGenerator)

	mm.RegisterModule(All, nil)

	deps := map[string][]string{
		Generator: {Directory, Health},

		All: {Generator},
	}

	for mod, targets := range deps {
		if err := mm.AddDependency(mod, targets...); err != nil {
			return err
		}
	}

	a.ModuleManager = mm

	return nil
}

func (a *App) initDirectory() (services.Service, error) {
	a.directory = azuracast.New(a.cfg.Directory, nil, &a.logger)
	return nil, nil
}

func (a *App) initHealth() (services.Service, error) {
	cfg := a.cfg.Health
	if !cfg.Enabled {
		a.logger.Info("health checks disabled")
		return nil, nil
	}

	prober := health.NewHTTPProber(cfg, health.NewClient(cfg))
	c := health.NewCoordinator(cfg, prober, &a.logger, health.NewMetrics(a.registry))
	if cfg.Progress {
		c.OnProgress = health.LogProgress(&a.logger)
	}
	a.coordinator = c

	return nil, nil
}

func (a *App) initGenerator() (services.Service, error) {
	var checker generator.Checker
	if a.coordinator != nil {
		checker = a.coordinator
	}

	g, err := generator.New(a.cfg.Playlist, a.logger, a.directory, checker, a.registry)
	if err != nil {
		return nil, errors.Wrap(err, "unable to init "+Generator)
	}

	a.generator = g

	return g, nil
}
