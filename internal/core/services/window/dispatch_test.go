package window

import (
	"context"
	"testing"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_UnknownInterfaceIgnored(t *testing.T) {
	r := &recorder{}
	m, _ := newTestManager(t, r, WithIndicators(true))
	m.SetBus(context.Background(), &fakeBus{})
	w := m.Open(context.Background())

	obj := newObject("/org/example", "org.freedesktop.DBus.Properties")
	m.HandleEvent(ports.BusEvent{Kind: ports.InterfaceAdded, Object: obj, Proxy: obj.proxies[0]})
	m.HandleEvent(ports.BusEvent{Kind: ports.InterfaceRemoved, Object: obj, Proxy: obj.proxies[0]})

	assert.Zero(t, w.Objects().Total())
	assert.Zero(t, r.totalConstructed())
	assert.Zero(t, r.totalDestroyed())
}

func TestDispatcher_RemoveUntrackedIsNoop(t *testing.T) {
	r := &recorder{}
	m, _ := newTestManager(t, r)
	obj := newObject("/net/connman/iwd/0/9", domain.IfaceStation)

	// No window at all.
	m.InterfaceRemoved(obj, obj.proxies[0])

	// A window that never saw the object.
	m.SetBus(context.Background(), &fakeBus{})
	m.Open(context.Background())
	m.InterfaceRemoved(obj, obj.proxies[0])

	assert.Zero(t, r.totalDestroyed())
}

func TestDispatcher_LiveAddWithoutWindowOnlyFeedsIndicators(t *testing.T) {
	r := &recorder{withIndicate: true}
	m, _ := newTestManager(t, r, WithIndicators(true))
	m.SetBus(context.Background(), &fakeBus{})

	obj := newObject("/net/connman/iwd/0/4", domain.IfaceDevice, domain.IfaceAccessPoint)
	m.HandleEvent(ports.BusEvent{Kind: ports.ObjectAdded, Object: obj})

	assert.Zero(t, r.totalConstructed())
	require.Equal(t, 1, m.Indicators().Len())
	assert.Equal(t, domain.IfaceAccessPoint, m.Indicators().Entries()[0].Proxy.InterfaceName())

	m.HandleEvent(ports.BusEvent{Kind: ports.ObjectRemoved, Object: obj})
	assert.Zero(t, m.Indicators().Len())
}

func TestDispatcher_LiveAddMirrorsIntoActiveWindow(t *testing.T) {
	r := &recorder{withIndicate: true}
	m, _ := newTestManager(t, r, WithIndicators(true))
	m.SetBus(context.Background(), &fakeBus{})
	w := m.Open(context.Background())

	obj := newObject("/net/connman/iwd/0/4", domain.IfaceStation)
	m.HandleEvent(ports.BusEvent{Kind: ports.InterfaceAdded, Object: obj, Proxy: obj.proxies[0]})

	assert.Equal(t, 1, w.Objects().Len(domain.StationType))
	assert.Equal(t, 1, m.Indicators().Len())

	m.HandleEvent(ports.BusEvent{Kind: ports.InterfaceRemoved, Object: obj, Proxy: obj.proxies[0]})
	assert.Zero(t, w.Objects().Len(domain.StationType))
	assert.Zero(t, m.Indicators().Len())
	assert.Equal(t, 1, r.destroyed[domain.StationType])
}

func TestDispatcher_IndicatorsDisabled(t *testing.T) {
	r := &recorder{withIndicate: true}
	m, _ := newTestManager(t, r)
	m.SetBus(context.Background(), sampleBus())

	obj := newObject("/net/connman/iwd/1/2", domain.IfaceAdHoc)
	m.HandleEvent(ports.BusEvent{Kind: ports.ObjectAdded, Object: obj})

	assert.False(t, m.IndicatorsEnabled())
	assert.Zero(t, m.Indicators().Len())
}

func TestDispatcher_BulkWithWindowSkipsIndicators(t *testing.T) {
	r := &recorder{withIndicate: true}
	m, _ := newTestManager(t, r, WithIndicators(true))
	m.SetBus(context.Background(), sampleBus())
	require.Equal(t, 1, m.Indicators().Len(), "bus appearance initializes indicators")

	m.Open(context.Background())
	assert.Equal(t, 1, m.Indicators().Len())
}

func TestDispatcher_StationBeforeDeviceStillBinds(t *testing.T) {
	r := &recorder{}
	m, _ := newTestManager(t, r)
	m.SetBus(context.Background(), &fakeBus{})
	w := m.Open(context.Background())

	obj := newObject("/net/connman/iwd/0/4", domain.IfaceStation, domain.IfaceDevice)
	station, device := obj.proxies[0], obj.proxies[1]

	m.InterfaceAdded(SourceBus, obj, station, nil)
	assert.Zero(t, r.binds)
	m.InterfaceAdded(SourceBus, obj, device, nil)
	assert.Equal(t, 1, r.binds)
	assert.Equal(t, "bind device station", r.log[len(r.log)-1])

	m.InterfaceRemoved(obj, station)
	assert.Equal(t, 1, r.unbinds)
	assert.Equal(t, 1, w.Couples().Len(domain.DeviceStation))

	m.InterfaceRemoved(obj, device)
	assert.Equal(t, 1, r.unbinds)
	assert.Zero(t, w.Couples().Len(domain.DeviceStation))
	assert.Equal(t, r.constructed, r.destroyed)
}

func TestDispatcher_ModeSwitchChurn(t *testing.T) {
	r := &recorder{}
	m, _ := newTestManager(t, r)
	m.SetBus(context.Background(), &fakeBus{})
	w := m.Open(context.Background())

	obj := newObject("/net/connman/iwd/0/4", domain.IfaceDevice, domain.IfaceStation)
	m.ObjectAdded(obj)

	for i := 0; i < 3; i++ {
		st := &fakeProxy{path: obj.path, iface: domain.IfaceStation}
		m.InterfaceRemoved(obj, st)
		m.InterfaceAdded(SourceBus, obj, st, nil)
	}

	assert.Equal(t, 4, r.binds)
	assert.Equal(t, 3, r.unbinds)
	assert.Equal(t, 1, w.Couples().Len(domain.DeviceStation))
	assert.Equal(t, 1, w.Objects().Len(domain.StationType))

	m.Close()
	assert.Equal(t, r.binds, r.unbinds)
	assert.Equal(t, r.constructed, r.destroyed)
}

func TestDispatcher_ServiceEventsIgnored(t *testing.T) {
	r := &recorder{}
	obs := &eventLog{}
	m, _ := newTestManager(t, r, WithObserver(obs))

	m.HandleEvent(ports.BusEvent{Kind: ports.ServiceVanished})

	assert.Equal(t, 1, obs.count(domain.EventBusEvent))
	assert.Equal(t, "service-vanished", obs.events[0].Detail)
}

func TestDispatcher_LiveAddOfTrackedObjectIsSkipped(t *testing.T) {
	r := &recorder{withIndicate: true}
	obj := newObject("/net/connman/iwd/0/4", domain.IfaceStation)
	m, _ := newTestManager(t, r, WithIndicators(true))
	m.SetBus(context.Background(), &fakeBus{objects: []ports.Object{obj}})
	w := m.Open(context.Background())

	// The bulk walk already saw the station; the queued add must not double it.
	m.HandleEvent(ports.BusEvent{Kind: ports.InterfaceAdded, Object: obj, Proxy: obj.proxies[0]})

	assert.Equal(t, 1, w.Objects().Len(domain.StationType))
	assert.Equal(t, 1, m.Indicators().Len())
	assert.Equal(t, 1, r.constructed[domain.StationType])
}
