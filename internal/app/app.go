package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lcalzada-xor/iwbind/internal/adapters/dbus"
	"github.com/lcalzada-xor/iwbind/internal/adapters/panel"
	webserver "github.com/lcalzada-xor/iwbind/internal/adapters/web/server"
	"github.com/lcalzada-xor/iwbind/internal/config"
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
	"github.com/lcalzada-xor/iwbind/internal/core/services/window"
	"github.com/lcalzada-xor/iwbind/internal/mock"
	"github.com/lcalzada-xor/iwbind/internal/telemetry"
)

// ErrStopped is returned by front end calls once the event loop has exited.
var ErrStopped = domain.ErrStopped

const dialTimeout = 10 * time.Second

// Application holds the core components of the application.
// It owns the event loop, the only goroutine that touches the window manager.
type Application struct {
	Config    *config.Config
	Manager   *window.Manager
	WebServer *webserver.Server

	// Source delivers bus notifications. It is the D-Bus client, or the
	// mock bus in mock mode.
	Source    ports.EventSource
	MockBus   *mock.Bus
	dbus      *dbus.Client
	simulator *mock.Simulator

	ops     chan func()
	signals chan os.Signal
	stopped chan struct{}
	loopCtx context.Context

	logger *slog.Logger
}

var _ ports.FrontEnd = (*Application)(nil)

// New creates a new Application instance and bootstraps its components.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &Application{
		Config:  cfg,
		ops:     make(chan func()),
		signals: make(chan os.Signal, 4),
		stopped: make(chan struct{}),
		loopCtx: context.Background(),
		logger:  logger,
	}

	if err := app.bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}
	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap(ctx context.Context) error {
	telemetry.InitMetrics()

	if err := app.initSource(ctx); err != nil {
		return err
	}

	opts := []window.Option{
		window.WithLogger(app.logger),
		window.WithIndicators(app.Config.Indicators),
		window.WithObserver(telemetry.MetricsObserver{}),
	}
	if app.Config.Addr != "" {
		app.WebServer = webserver.NewServer(app.Config.Addr, app, app.logger)
		opts = append(opts, window.WithObserver(app.WebServer.WSManager))
	}

	m, err := window.NewManager(panel.NewShell(), panel.Objects(), panel.Couples(), opts...)
	if err != nil {
		return err
	}
	app.Manager = m
	return nil
}

func (app *Application) initSource(ctx context.Context) error {
	if app.Config.Mock {
		bus := mock.NewBus()
		if err := mock.Seed(bus, app.Config.MockScenario); err != nil {
			return err
		}
		// The seeded tree is read by the first bulk populate.
		bus.Drain()

		app.MockBus = bus
		app.Source = bus
		if app.Config.ChurnInterval.Duration > 0 {
			app.simulator = mock.NewSimulator(bus, 0, app.logger)
		}
		app.logger.Info("Using simulated iwd", "scenario", app.Config.MockScenario)
		return nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	client, err := dbus.Dial(dialCtx, app.Config.BusAddress, app.logger)
	if err != nil {
		return err
	}
	app.dbus = client
	app.Source = client
	return nil
}

// Run starts the application components and runs the event loop until ctx
// is done or a component fails.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("Starting iwbind components")

	errChan := make(chan error, 2)

	if app.WebServer != nil {
		go func() {
			if err := app.WebServer.Run(ctx); err != nil {
				errChan <- fmt.Errorf("web server error: %w", err)
			}
		}()
	}

	if app.dbus != nil {
		go func() {
			if err := app.dbus.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- fmt.Errorf("bus client error: %w", err)
			}
		}()
	}

	if app.MockBus != nil {
		// A simulated iwd is always present.
		app.Manager.SetBus(ctx, app.MockBus)
		if app.simulator != nil {
			go app.simulator.Run(ctx, app.Config.ChurnInterval.Duration)
		}
	}

	if app.Config.OpenWindow {
		app.Manager.Open(ctx)
	}

	stopSignals := notifySignals(app.signals)
	defer stopSignals()

	app.logger.Info("iwbind ready", "connected", app.Manager.Connected(), "indicators", app.Manager.IndicatorsEnabled())
	err := app.loop(ctx, errChan)
	return errors.Join(err, app.cleanup())
}

// cleanup tears down the window so every destructor runs before exit.
func (app *Application) cleanup() error {
	app.Manager.Close()
	if app.MockBus != nil {
		app.MockBus.Close()
	}
	if app.dbus != nil {
		if err := app.dbus.Close(); err != nil {
			return fmt.Errorf("close bus: %w", err)
		}
	}
	app.logger.Info("iwbind stopped")
	return nil
}
