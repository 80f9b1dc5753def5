package app

import (
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
)

// OpenWindow implements ports.FrontEnd.
func (app *Application) OpenWindow() (domain.WindowSnapshot, error) {
	var (
		snap domain.WindowSnapshot
		err  error
	)
	if derr := app.Do(func() {
		app.Manager.Open(app.loopCtx)
		snap, err = app.Manager.Snapshot()
	}); derr != nil {
		return domain.WindowSnapshot{}, derr
	}
	return snap, err
}

// CloseWindow implements ports.FrontEnd.
func (app *Application) CloseWindow() error {
	var err error
	if derr := app.Do(func() {
		if app.Manager.Window() == nil {
			err = domain.ErrNoWindow
			return
		}
		app.Manager.Close()
	}); derr != nil {
		return derr
	}
	return err
}

// Snapshot implements ports.FrontEnd.
func (app *Application) Snapshot() (domain.WindowSnapshot, error) {
	var (
		snap domain.WindowSnapshot
		err  error
	)
	if derr := app.Do(func() { snap, err = app.Manager.Snapshot() }); derr != nil {
		return domain.WindowSnapshot{}, derr
	}
	return snap, err
}

// RenderWindow implements ports.FrontEnd.
func (app *Application) RenderWindow() (string, error) {
	var (
		text string
		err  error
	)
	if derr := app.Do(func() { text, err = app.Manager.Render() }); derr != nil {
		return "", derr
	}
	return text, err
}

// Indicators implements ports.FrontEnd.
func (app *Application) Indicators() ([]domain.IndicatorStatus, error) {
	var list []domain.IndicatorStatus
	if err := app.Do(func() { list = app.Manager.Indicators().Refresh() }); err != nil {
		return nil, err
	}
	return list, nil
}
