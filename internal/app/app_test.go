package app

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/iwbind/internal/config"
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
	"github.com/lcalzada-xor/iwbind/internal/mock"
)

func mockConfig() *config.Config {
	cfg := config.Default()
	cfg.Mock = true
	cfg.Addr = ""
	cfg.ChurnInterval.Duration = 0
	return cfg
}

// start runs app until the test ends.
func start(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	app, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("application did not stop")
		}
	})
	return app
}

func TestApplication_WindowLifecycle(t *testing.T) {
	app := start(t, mockConfig())

	_, err := app.Snapshot()
	assert.ErrorIs(t, err, domain.ErrNoWindow)
	assert.ErrorIs(t, app.CloseWindow(), domain.ErrNoWindow)

	snap, err := app.OpenWindow()
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Empty(t, snap.Placeholder)
	assert.Len(t, snap.Objects[domain.DeviceType.String()], 1)
	assert.Len(t, snap.Objects[domain.StationType.String()], 1)

	text, err := app.RenderWindow()
	require.NoError(t, err)
	assert.Contains(t, text, "wlan0")

	require.NoError(t, app.CloseWindow())
	_, err = app.Snapshot()
	assert.ErrorIs(t, err, domain.ErrNoWindow)
}

func TestApplication_IndicatorsFollowBus(t *testing.T) {
	app := start(t, mockConfig())

	list, err := app.Indicators()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.IfaceStation, list[0].Interface)
	assert.Equal(t, "Connected", list[0].Tooltip)

	app.MockBus.RemoveInterface(mock.DevicePath, domain.IfaceStation)
	require.Eventually(t, func() bool {
		list, err := app.Indicators()
		return err == nil && len(list) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestApplication_LiveEventsReachOpenWindow(t *testing.T) {
	cfg := mockConfig()
	cfg.OpenWindow = true
	app := start(t, cfg)

	app.MockBus.RemoveInterface(mock.DevicePath, domain.IfaceWPS)
	app.MockBus.RemoveInterface(mock.DevicePath, domain.IfaceStation)
	app.MockBus.AddInterface(mock.DevicePath, domain.IfaceAccessPoint, map[string]any{"Started": true})

	require.Eventually(t, func() bool {
		snap, err := app.Snapshot()
		return err == nil &&
			len(snap.Objects[domain.AccessPointType.String()]) == 1 &&
			len(snap.Objects[domain.StationType.String()]) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestApplication_Signals(t *testing.T) {
	app := start(t, mockConfig())

	app.signals <- syscall.SIGUSR1
	require.Eventually(t, func() bool {
		_, err := app.Snapshot()
		return err == nil
	}, time.Second, 10*time.Millisecond)

	app.signals <- syscall.SIGUSR2
	require.Eventually(t, func() bool {
		_, err := app.Snapshot()
		return errors.Is(err, domain.ErrNoWindow)
	}, time.Second, 10*time.Millisecond)
}

func TestApplication_ServiceVanishAndReturn(t *testing.T) {
	cfg := mockConfig()
	cfg.OpenWindow = true
	app := start(t, cfg)

	require.NoError(t, app.Do(func() {
		app.handleBusEvent(context.Background(), ports.BusEvent{Kind: ports.ServiceVanished})
	}))
	snap, err := app.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, domain.ErrBusUnavailable.Error(), snap.Placeholder)
	list, err := app.Indicators()
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, app.Do(func() {
		app.handleBusEvent(context.Background(), ports.BusEvent{Kind: ports.ServiceAppeared})
	}))
	snap, err = app.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Placeholder)
	assert.Len(t, snap.Objects[domain.AdapterType.String()], 1)
	list, err = app.Indicators()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestApplication_StoppedLoop(t *testing.T) {
	app, err := New(context.Background(), mockConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, app.Run(ctx))

	_, err = app.OpenWindow()
	assert.ErrorIs(t, err, ErrStopped)
	list, err := app.Indicators()
	assert.ErrorIs(t, err, ErrStopped)
	assert.Nil(t, list)
}

func TestNew_RejectsUnknownScenario(t *testing.T) {
	cfg := mockConfig()
	cfg.MockScenario = "lab"
	_, err := New(context.Background(), cfg, nil)
	assert.Error(t, err)
}
