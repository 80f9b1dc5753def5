package mock

import (
	"sort"
	"sync"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// eventBuffer bounds how far the simulator can run ahead of the consumer.
const eventBuffer = 1024

// Bus is an in-memory iwd object tree implementing ports.EventSource.
// Mutations emit the same events a D-Bus object manager client would.
type Bus struct {
	mu      sync.RWMutex
	objects map[domain.ObjectPath][]*Proxy
	events  chan ports.BusEvent

	done      chan struct{}
	closeOnce sync.Once
}

var _ ports.EventSource = (*Bus)(nil)

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{
		objects: make(map[domain.ObjectPath][]*Proxy),
		events:  make(chan ports.BusEvent, eventBuffer),
		done:    make(chan struct{}),
	}
}

// Close stops event delivery. Mutations still apply to the tree, but their
// events are dropped, and a mutation blocked on a full buffer returns.
func (b *Bus) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

func (b *Bus) send(ev ports.BusEvent) {
	select {
	case <-b.done:
		return
	default:
	}
	select {
	case b.events <- ev:
	case <-b.done:
	}
}

// Proxy is a mock interface with a mutable property map.
type Proxy struct {
	bus   *Bus
	path  domain.ObjectPath
	iface string
	props map[string]any
}

func (p *Proxy) InterfaceName() string   { return p.iface }
func (p *Proxy) Path() domain.ObjectPath { return p.path }

// Property implements ports.Proxy.
func (p *Proxy) Property(name string) (any, bool) {
	p.bus.mu.RLock()
	defer p.bus.mu.RUnlock()
	v, ok := p.props[name]
	return v, ok
}

// Object is a snapshot of an object's interface set.
type Object struct {
	path    domain.ObjectPath
	proxies []*Proxy
}

func (o *Object) Path() domain.ObjectPath { return o.path }

// Interfaces implements ports.Object.
func (o *Object) Interfaces() []ports.Proxy {
	out := make([]ports.Proxy, len(o.proxies))
	for i, p := range o.proxies {
		out[i] = p
	}
	return out
}

// Interface implements ports.Object.
func (o *Object) Interface(name string) ports.Proxy {
	for _, p := range o.proxies {
		if p.iface == name {
			return p
		}
	}
	return nil
}

// Events implements ports.EventSource.
func (b *Bus) Events() <-chan ports.BusEvent {
	return b.events
}

// Objects implements ports.ObjectManager. Objects are ordered by path.
func (b *Bus) Objects() []ports.Object {
	b.mu.RLock()
	defer b.mu.RUnlock()

	paths := make([]string, 0, len(b.objects))
	for p := range b.objects {
		paths = append(paths, string(p))
	}
	sort.Strings(paths)

	out := make([]ports.Object, 0, len(paths))
	for _, p := range paths {
		out = append(out, b.snapshot(domain.ObjectPath(p)))
	}
	return out
}

// Has reports whether path currently exposes iface.
func (b *Bus) Has(path domain.ObjectPath, iface string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.find(path, iface) != nil
}

// AddInterface exposes iface on path. The first interface of a new path is
// announced as an object-added event. Adding an interface twice is ignored.
func (b *Bus) AddInterface(path domain.ObjectPath, iface string, props map[string]any) {
	b.mu.Lock()
	if b.find(path, iface) != nil {
		b.mu.Unlock()
		return
	}
	_, existed := b.objects[path]

	p := &Proxy{bus: b, path: path, iface: iface, props: make(map[string]any, len(props))}
	for k, v := range props {
		p.props[k] = v
	}
	b.objects[path] = append(b.objects[path], p)
	obj := b.snapshot(path)
	b.mu.Unlock()

	if existed {
		b.send(ports.BusEvent{Kind: ports.InterfaceAdded, Object: obj, Proxy: p})
		return
	}
	b.send(ports.BusEvent{Kind: ports.ObjectAdded, Object: obj})
}

// RemoveInterface withdraws iface from path. Removing the last interface is
// announced as an object-removed event carrying that interface.
func (b *Bus) RemoveInterface(path domain.ObjectPath, iface string) {
	b.mu.Lock()
	p := b.find(path, iface)
	if p == nil {
		b.mu.Unlock()
		return
	}

	rest := make([]*Proxy, 0, len(b.objects[path]))
	for _, q := range b.objects[path] {
		if q != p {
			rest = append(rest, q)
		}
	}

	if len(rest) == 0 {
		delete(b.objects, path)
		b.mu.Unlock()
		b.send(ports.BusEvent{Kind: ports.ObjectRemoved, Object: &Object{path: path, proxies: []*Proxy{p}}})
		return
	}

	b.objects[path] = rest
	obj := b.snapshot(path)
	b.mu.Unlock()
	b.send(ports.BusEvent{Kind: ports.InterfaceRemoved, Object: obj, Proxy: p})
}

// RemoveObject withdraws every interface of path at once.
func (b *Bus) RemoveObject(path domain.ObjectPath) {
	b.mu.Lock()
	proxies, ok := b.objects[path]
	if !ok {
		b.mu.Unlock()
		return
	}
	delete(b.objects, path)
	b.mu.Unlock()

	b.send(ports.BusEvent{Kind: ports.ObjectRemoved, Object: &Object{path: path, proxies: proxies}})
}

// SetProperty changes a property in place. Property changes are not
// lifecycle events, so nothing is emitted.
func (b *Bus) SetProperty(path domain.ObjectPath, iface, name string, value any) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.find(path, iface)
	if p == nil {
		return false
	}
	p.props[name] = value
	return true
}

// Drain discards every pending event and returns how many there were.
func (b *Bus) Drain() int {
	n := 0
	for {
		select {
		case <-b.events:
			n++
		default:
			return n
		}
	}
}

func (b *Bus) find(path domain.ObjectPath, iface string) *Proxy {
	for _, p := range b.objects[path] {
		if p.iface == iface {
			return p
		}
	}
	return nil
}

func (b *Bus) snapshot(path domain.ObjectPath) *Object {
	proxies := make([]*Proxy, len(b.objects[path]))
	copy(proxies, b.objects[path])
	return &Object{path: path, proxies: proxies}
}
