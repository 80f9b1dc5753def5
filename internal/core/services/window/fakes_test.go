package window

import (
	"fmt"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

var tableInterfaces = [domain.NumObjectTypes]string{
	domain.IfaceKnownNetwork,
	domain.IfaceAdapter,
	domain.IfaceDevice,
	domain.IfaceStation,
	domain.IfaceAccessPoint,
	domain.IfaceAdHoc,
	domain.IfaceWPS,
	domain.IfaceNetwork,
}

type fakeProxy struct {
	path  domain.ObjectPath
	iface string
}

func (p *fakeProxy) InterfaceName() string       { return p.iface }
func (p *fakeProxy) Path() domain.ObjectPath     { return p.path }
func (p *fakeProxy) Property(string) (any, bool) { return nil, false }

type fakeObject struct {
	path    domain.ObjectPath
	proxies []ports.Proxy
}

func newObject(path domain.ObjectPath, ifaces ...string) *fakeObject {
	o := &fakeObject{path: path}
	for _, name := range ifaces {
		o.proxies = append(o.proxies, &fakeProxy{path: path, iface: name})
	}
	return o
}

func (o *fakeObject) Path() domain.ObjectPath { return o.path }

func (o *fakeObject) Interfaces() []ports.Proxy {
	out := make([]ports.Proxy, len(o.proxies))
	copy(out, o.proxies)
	return out
}

func (o *fakeObject) Interface(name string) ports.Proxy {
	for _, p := range o.proxies {
		if p.InterfaceName() == name {
			return p
		}
	}
	return nil
}

type fakeBus struct {
	objects []ports.Object
}

func (b *fakeBus) Objects() []ports.Object {
	out := make([]ports.Object, len(b.objects))
	copy(out, b.objects)
	return out
}

type fakeSurface struct {
	id          string
	placeholder string
	chrome      int
	destroyed   bool
}

func (s *fakeSurface) Placeholder(msg string) { s.placeholder = msg }
func (s *fakeSurface) Destroy()               { s.destroyed = true }

func (s *fakeSurface) BuildChrome() {
	s.placeholder = ""
	s.chrome++
}

type fakeShell struct {
	surfaces []*fakeSurface
}

func (sh *fakeShell) NewSurface(id string) ports.Surface {
	s := &fakeSurface{id: id}
	sh.surfaces = append(sh.surfaces, s)
	return s
}

// handle is what the recording constructors return.
type handle struct {
	typ    domain.ObjectType
	path   domain.ObjectPath
	window string
}

// recorder builds a table whose callbacks append to log. Device and station
// panels couple through DeviceStation, keyed by the device's object path.
type recorder struct {
	log          []string
	constructed  [domain.NumObjectTypes]int
	destroyed    [domain.NumObjectTypes]int
	binds        int
	unbinds      int
	withIndicate bool
}

func (r *recorder) objects() [domain.NumObjectTypes]ports.ObjectMethods {
	var table [domain.NumObjectTypes]ports.ObjectMethods
	for i := range table {
		t := domain.ObjectType(i)
		table[i] = ports.ObjectMethods{
			Interface: tableInterfaces[i],
			New: func(w ports.Window, obj ports.Object, proxy ports.Proxy) ports.Handle {
				h := &handle{typ: t, path: obj.Path(), window: w.ID()}
				r.constructed[t]++
				r.log = append(r.log, fmt.Sprintf("new %s %s %s", w.ID(), t, obj.Path()))
				switch t {
				case domain.DeviceType:
					w.Register(domain.DeviceStation, domain.Side0, h, obj.Path())
				case domain.StationType:
					w.Register(domain.DeviceStation, domain.Side1, h, obj.Path())
				}
				return h
			},
			Remove: func(w ports.Window, h ports.Handle) {
				hh := h.(*handle)
				r.destroyed[t]++
				r.log = append(r.log, fmt.Sprintf("rm %s %s %s", w.ID(), t, hh.path))
				switch t {
				case domain.DeviceType:
					w.Unregister(domain.DeviceStation, domain.Side0, h)
				case domain.StationType:
					w.Unregister(domain.DeviceStation, domain.Side1, h)
				}
			},
		}
		if r.withIndicate && (t == domain.StationType || t == domain.AccessPointType || t == domain.AdHocType) {
			table[i].Indicator = func(p ports.Proxy) domain.IndicatorStatus {
				return domain.IndicatorStatus{Icon: t.String()}
			}
		}
	}
	return table
}

func (r *recorder) couples() [domain.NumCoupleTypes]ports.CoupleMethods {
	var table [domain.NumCoupleTypes]ports.CoupleMethods
	for i := range table {
		table[i] = ports.CoupleMethods{
			Bind: func(h0, h1 ports.Handle) {
				r.binds++
				r.log = append(r.log, fmt.Sprintf("bind %s %s", h0.(*handle).typ, h1.(*handle).typ))
			},
			Unbind: func(h0, h1 ports.Handle) {
				r.unbinds++
				r.log = append(r.log, fmt.Sprintf("unbind %s %s", h0.(*handle).typ, h1.(*handle).typ))
			},
		}
	}
	return table
}

func (r *recorder) totalConstructed() int {
	n := 0
	for _, c := range r.constructed {
		n += c
	}
	return n
}

func (r *recorder) totalDestroyed() int {
	n := 0
	for _, c := range r.destroyed {
		n += c
	}
	return n
}

type eventLog struct {
	events []domain.LifecycleEvent
}

func (l *eventLog) OnLifecycle(ev domain.LifecycleEvent) {
	l.events = append(l.events, ev)
}

func (l *eventLog) count(kind domain.EventKind) int {
	n := 0
	for _, ev := range l.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// sampleBus is one adapter with a station-mode device, a network and a
// known network: five objects exposing six interfaces.
func sampleBus() *fakeBus {
	return &fakeBus{objects: []ports.Object{
		newObject("/net/connman/iwd/0", domain.IfaceAdapter),
		newObject("/net/connman/iwd/0/4", domain.IfaceDevice, domain.IfaceStation),
		newObject("/net/connman/iwd/0/4/6c6162_psk", domain.IfaceNetwork),
		newObject("/net/connman/iwd/6c6162_psk", domain.IfaceKnownNetwork),
		newObject("/net/connman/iwd/agent", "org.freedesktop.DBus.Introspectable"),
	}}
}
