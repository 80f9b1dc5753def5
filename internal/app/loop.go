package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

func notifySignals(ch chan os.Signal) func() {
	signal.Notify(ch, syscall.SIGUSR1, syscall.SIGUSR2)
	return func() { signal.Stop(ch) }
}

// loop serializes bus notifications, UI signals and front end calls.
func (app *Application) loop(ctx context.Context, errChan <-chan error) error {
	app.loopCtx = ctx
	defer close(app.stopped)

	events := app.Source.Events()
	for {
		select {
		case <-ctx.Done():
			app.logger.Info("Termination signal received")
			return nil
		case err := <-errChan:
			return err
		case ev := <-events:
			app.handleBusEvent(ctx, ev)
		case sig := <-app.signals:
			app.handleSignal(ctx, sig)
		case fn := <-app.ops:
			fn()
		}
	}
}

func (app *Application) handleBusEvent(ctx context.Context, ev ports.BusEvent) {
	app.Manager.HandleEvent(ev)

	switch ev.Kind {
	case ports.ServiceAppeared:
		app.Manager.SetBus(ctx, app.Source)
	case ports.ServiceVanished:
		app.Manager.ClearBus()
	}
}

// handleSignal maps SIGUSR1 to opening a window and SIGUSR2 to closing it.
func (app *Application) handleSignal(ctx context.Context, sig os.Signal) {
	switch sig {
	case syscall.SIGUSR1:
		app.logger.Info("Opening window on signal", "signal", sig.String())
		app.Manager.Open(ctx)
	case syscall.SIGUSR2:
		app.logger.Info("Closing window on signal", "signal", sig.String())
		app.Manager.Close()
	}
}

// Do runs fn on the event loop and waits for it to finish.
func (app *Application) Do(fn func()) error {
	done := make(chan struct{})
	select {
	case app.ops <- func() { fn(); close(done) }:
	case <-app.stopped:
		return ErrStopped
	}
	<-done
	return nil
}
