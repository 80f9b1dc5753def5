package mock

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

func next(t *testing.T, b *Bus) ports.BusEvent {
	t.Helper()
	select {
	case ev := <-b.Events():
		return ev
	default:
		t.Fatal("expected a pending bus event")
		return ports.BusEvent{}
	}
}

func TestBus_AddInterfaceEmitsObjectThenInterface(t *testing.T) {
	b := NewBus()

	b.AddInterface(DevicePath, domain.IfaceDevice, map[string]any{"Name": "wlan0"})
	ev := next(t, b)
	assert.Equal(t, ports.ObjectAdded, ev.Kind)
	assert.Equal(t, DevicePath, ev.Object.Path())
	require.Len(t, ev.Object.Interfaces(), 1)

	b.AddInterface(DevicePath, domain.IfaceStation, nil)
	ev = next(t, b)
	assert.Equal(t, ports.InterfaceAdded, ev.Kind)
	require.NotNil(t, ev.Proxy)
	assert.Equal(t, domain.IfaceStation, ev.Proxy.InterfaceName())
	assert.Len(t, ev.Object.Interfaces(), 2)

	// Duplicate interfaces are ignored.
	b.AddInterface(DevicePath, domain.IfaceStation, nil)
	assert.Equal(t, 0, b.Drain())
}

func TestBus_RemoveInterface(t *testing.T) {
	b := NewBus()
	b.AddInterface(DevicePath, domain.IfaceDevice, nil)
	b.AddInterface(DevicePath, domain.IfaceStation, nil)
	b.Drain()

	b.RemoveInterface(DevicePath, domain.IfaceStation)
	ev := next(t, b)
	assert.Equal(t, ports.InterfaceRemoved, ev.Kind)
	assert.Equal(t, domain.IfaceStation, ev.Proxy.InterfaceName())
	assert.Nil(t, ev.Object.Interface(domain.IfaceStation))

	b.RemoveInterface(DevicePath, domain.IfaceDevice)
	ev = next(t, b)
	assert.Equal(t, ports.ObjectRemoved, ev.Kind)
	assert.NotNil(t, ev.Object.Interface(domain.IfaceDevice))
	assert.Empty(t, b.Objects())

	b.RemoveInterface(DevicePath, domain.IfaceDevice)
	assert.Equal(t, 0, b.Drain())
}

func TestBus_RemoveObjectCarriesAllInterfaces(t *testing.T) {
	b := NewBus()
	b.AddInterface(DevicePath, domain.IfaceDevice, nil)
	b.AddInterface(DevicePath, domain.IfaceAccessPoint, nil)
	b.Drain()

	b.RemoveObject(DevicePath)
	ev := next(t, b)
	assert.Equal(t, ports.ObjectRemoved, ev.Kind)
	assert.Len(t, ev.Object.Interfaces(), 2)
	assert.False(t, b.Has(DevicePath, domain.IfaceDevice))
}

func TestBus_SetPropertyIsLive(t *testing.T) {
	b := NewBus()
	b.AddInterface(DevicePath, domain.IfaceStation, map[string]any{"State": "connected"})
	ev := next(t, b)
	proxy := ev.Object.Interface(domain.IfaceStation)
	require.NotNil(t, proxy)

	assert.True(t, b.SetProperty(DevicePath, domain.IfaceStation, "State", "roaming"))
	v, ok := proxy.Property("State")
	assert.True(t, ok)
	assert.Equal(t, "roaming", v)

	assert.False(t, b.SetProperty(AdapterPath, domain.IfaceAdapter, "Powered", false))
	assert.Equal(t, 0, b.Drain())
}

func TestBus_ObjectsOrderedByPath(t *testing.T) {
	b := NewBus()
	b.AddInterface(DevicePath, domain.IfaceDevice, nil)
	b.AddInterface(AdapterPath, domain.IfaceAdapter, nil)

	objs := b.Objects()
	require.Len(t, objs, 2)
	assert.Equal(t, AdapterPath, objs[0].Path())
	assert.Equal(t, DevicePath, objs[1].Path())
}

func TestBus_CloseReleasesBlockedSender(t *testing.T) {
	b := NewBus()
	for i := 0; i < eventBuffer; i++ {
		b.AddInterface(domain.ObjectPath(fmt.Sprintf("/net/connman/iwd/0/%d", i)), domain.IfaceDevice, nil)
	}

	sent := make(chan struct{})
	go func() {
		b.AddInterface(DevicePath+"/extra", domain.IfaceDevice, nil)
		close(sent)
	}()

	select {
	case <-sent:
		t.Fatal("send on a full buffer returned before Close")
	case <-time.After(20 * time.Millisecond):
	}

	b.Close()
	b.Close()
	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("sender still blocked after Close")
	}

	assert.True(t, b.Has(DevicePath+"/extra", domain.IfaceDevice))
	assert.Equal(t, eventBuffer, b.Drain())

	b.RemoveObject(DevicePath + "/extra")
	assert.Zero(t, b.Drain())
}
