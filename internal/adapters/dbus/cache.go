package dbus

import (
	"sort"
	"sync"

	godbus "github.com/godbus/dbus/v5"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// D-Bus names the client listens to.
const (
	objectManagerIface = "org.freedesktop.DBus.ObjectManager"
	propertiesIface    = "org.freedesktop.DBus.Properties"
	busIface           = "org.freedesktop.DBus"

	signalInterfacesAdded   = objectManagerIface + ".InterfacesAdded"
	signalInterfacesRemoved = objectManagerIface + ".InterfacesRemoved"
	signalPropertiesChanged = propertiesIface + ".PropertiesChanged"
	signalNameOwnerChanged  = busIface + ".NameOwnerChanged"
)

type managedObjects = map[godbus.ObjectPath]map[string]map[string]godbus.Variant

// cache mirrors the iwd object tree. It is written by the signal goroutine
// and read by the binding loop through the proxies it hands out.
type cache struct {
	mu      sync.RWMutex
	objects map[domain.ObjectPath][]*proxy
}

func newCache() *cache {
	return &cache{objects: make(map[domain.ObjectPath][]*proxy)}
}

type proxy struct {
	c     *cache
	path  domain.ObjectPath
	iface string
	props map[string]any
}

func (p *proxy) InterfaceName() string   { return p.iface }
func (p *proxy) Path() domain.ObjectPath { return p.path }

func (p *proxy) Property(name string) (any, bool) {
	p.c.mu.RLock()
	defer p.c.mu.RUnlock()
	v, ok := p.props[name]
	return v, ok
}

type object struct {
	path    domain.ObjectPath
	proxies []*proxy
}

func (o *object) Path() domain.ObjectPath { return o.path }

func (o *object) Interfaces() []ports.Proxy {
	out := make([]ports.Proxy, len(o.proxies))
	for i, p := range o.proxies {
		out[i] = p
	}
	return out
}

func (o *object) Interface(name string) ports.Proxy {
	for _, p := range o.proxies {
		if p.iface == name {
			return p
		}
	}
	return nil
}

// load replaces the whole tree with a GetManagedObjects reply.
func (c *cache) load(managed managedObjects) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.objects = make(map[domain.ObjectPath][]*proxy, len(managed))
	for p, ifaces := range managed {
		path := domain.ObjectPath(p)
		for _, name := range sortedKeys(ifaces) {
			c.objects[path] = append(c.objects[path], c.newProxy(path, name, ifaces[name]))
		}
	}
	return len(c.objects)
}

func (c *cache) reset() {
	c.mu.Lock()
	c.objects = make(map[domain.ObjectPath][]*proxy)
	c.mu.Unlock()
}

func (c *cache) snapshot() []ports.Object {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := make([]string, 0, len(c.objects))
	for p := range c.objects {
		paths = append(paths, string(p))
	}
	sort.Strings(paths)

	out := make([]ports.Object, 0, len(paths))
	for _, p := range paths {
		out = append(out, c.object(domain.ObjectPath(p)))
	}
	return out
}

// apply folds one object manager or properties signal into the tree and
// returns the resulting lifecycle events. Interfaces already known are not
// announced again.
func (c *cache) apply(sig *godbus.Signal) []ports.BusEvent {
	switch sig.Name {
	case signalInterfacesAdded:
		var (
			path   godbus.ObjectPath
			ifaces map[string]map[string]godbus.Variant
		)
		if godbus.Store(sig.Body, &path, &ifaces) != nil {
			return nil
		}
		return c.interfacesAdded(domain.ObjectPath(path), ifaces)

	case signalInterfacesRemoved:
		var (
			path  godbus.ObjectPath
			names []string
		)
		if godbus.Store(sig.Body, &path, &names) != nil {
			return nil
		}
		return c.interfacesRemoved(domain.ObjectPath(path), names)

	case signalPropertiesChanged:
		var (
			iface       string
			changed     map[string]godbus.Variant
			invalidated []string
		)
		if godbus.Store(sig.Body, &iface, &changed, &invalidated) != nil {
			return nil
		}
		c.propertiesChanged(domain.ObjectPath(sig.Path), iface, changed, invalidated)
	}
	return nil
}

func (c *cache) interfacesAdded(path domain.ObjectPath, ifaces map[string]map[string]godbus.Variant) []ports.BusEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, existed := c.objects[path]
	var added []*proxy
	for _, name := range sortedKeys(ifaces) {
		if c.find(path, name) != nil {
			continue
		}
		p := c.newProxy(path, name, ifaces[name])
		c.objects[path] = append(c.objects[path], p)
		added = append(added, p)
	}

	if len(added) == 0 {
		return nil
	}
	if !existed {
		return []ports.BusEvent{{Kind: ports.ObjectAdded, Object: c.object(path)}}
	}

	obj := c.object(path)
	events := make([]ports.BusEvent, len(added))
	for i, p := range added {
		events[i] = ports.BusEvent{Kind: ports.InterfaceAdded, Object: obj, Proxy: p}
	}
	return events
}

func (c *cache) interfacesRemoved(path domain.ObjectPath, names []string) []ports.BusEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed []*proxy
	for _, name := range names {
		p := c.find(path, name)
		if p == nil {
			continue
		}
		removed = append(removed, p)
		c.objects[path] = without(c.objects[path], p)
	}

	if len(removed) == 0 {
		return nil
	}
	if len(c.objects[path]) == 0 {
		delete(c.objects, path)
		return []ports.BusEvent{{Kind: ports.ObjectRemoved, Object: &object{path: path, proxies: removed}}}
	}

	obj := c.object(path)
	events := make([]ports.BusEvent, len(removed))
	for i, p := range removed {
		events[i] = ports.BusEvent{Kind: ports.InterfaceRemoved, Object: obj, Proxy: p}
	}
	return events
}

func (c *cache) propertiesChanged(path domain.ObjectPath, iface string, changed map[string]godbus.Variant, invalidated []string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.find(path, iface)
	if p == nil {
		return false
	}
	for k, v := range changed {
		p.props[k] = normalize(v)
	}
	for _, k := range invalidated {
		delete(p.props, k)
	}
	return true
}

func (c *cache) newProxy(path domain.ObjectPath, iface string, props map[string]godbus.Variant) *proxy {
	p := &proxy{c: c, path: path, iface: iface, props: make(map[string]any, len(props))}
	for k, v := range props {
		p.props[k] = normalize(v)
	}
	return p
}

func (c *cache) find(path domain.ObjectPath, iface string) *proxy {
	for _, p := range c.objects[path] {
		if p.iface == iface {
			return p
		}
	}
	return nil
}

func (c *cache) object(path domain.ObjectPath) *object {
	proxies := make([]*proxy, len(c.objects[path]))
	copy(proxies, c.objects[path])
	return &object{path: path, proxies: proxies}
}

// normalize unwraps variants and converts object paths so panels never see
// godbus types.
func normalize(v any) any {
	switch x := v.(type) {
	case godbus.Variant:
		return normalize(x.Value())
	case godbus.ObjectPath:
		return domain.ObjectPath(x)
	case []godbus.ObjectPath:
		out := make([]domain.ObjectPath, len(x))
		for i, p := range x {
			out[i] = domain.ObjectPath(p)
		}
		return out
	}
	return v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func without(list []*proxy, p *proxy) []*proxy {
	out := list[:0:0]
	for _, q := range list {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}
