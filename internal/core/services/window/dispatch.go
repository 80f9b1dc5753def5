package window

import (
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// Source tells the dispatcher where an added interface came from.
type Source int

const (
	// SourceBulk is a walk over the bus snapshot, either for a window being
	// built or, with no window, to initialize the indicators.
	SourceBulk Source = iota
	// SourceBus is a live add notification from the bus layer.
	SourceBus
)

// Lookup resolves an interface name against the static table.
func (m *Manager) Lookup(iface string) (domain.ObjectType, bool) {
	t, ok := m.byName[iface]
	return t, ok
}

// HandleEvent routes one live bus notification. Service appearance events
// carry no objects and are handled by the caller through SetBus and ClearBus.
func (m *Manager) HandleEvent(ev ports.BusEvent) {
	m.emit(domain.LifecycleEvent{Kind: domain.EventBusEvent, Detail: ev.Kind.String()})

	switch ev.Kind {
	case ports.ObjectAdded:
		m.ObjectAdded(ev.Object)
	case ports.ObjectRemoved:
		m.ObjectRemoved(ev.Object)
	case ports.InterfaceAdded:
		m.InterfaceAdded(SourceBus, ev.Object, ev.Proxy, nil)
	case ports.InterfaceRemoved:
		m.InterfaceRemoved(ev.Object, ev.Proxy)
	default:
		m.logger.Debug("Ignoring bus event", "kind", ev.Kind.String())
	}
}

// ObjectAdded dispatches every interface of a newly announced object.
func (m *Manager) ObjectAdded(obj ports.Object) {
	for _, proxy := range obj.Interfaces() {
		m.InterfaceAdded(SourceBus, obj, proxy, nil)
	}
}

// ObjectRemoved dispatches the removal of every interface of obj.
func (m *Manager) ObjectRemoved(obj ports.Object) {
	for _, proxy := range obj.Interfaces() {
		m.InterfaceRemoved(obj, proxy)
	}
}

// InterfaceAdded builds the panel for proxy.
//
// With a target window the panel goes into that window only. Without one, a
// live event is mirrored into the active window if there is one, and in both
// cases an indicator is appended when the feed is enabled and the interface
// has an indicator hook. Unknown interfaces are ignored.
func (m *Manager) InterfaceAdded(src Source, obj ports.Object, proxy ports.Proxy, w *Window) {
	t, ok := m.Lookup(proxy.InterfaceName())
	if !ok {
		m.logger.Debug("Ignoring interface", "interface", proxy.InterfaceName(), "path", obj.Path())
		return
	}

	if w != nil {
		m.addObject(w, t, obj, proxy)
		return
	}

	if src == SourceBus && m.window != nil {
		m.addObject(m.window, t, obj, proxy)
	}

	if m.indicatorsEnabled && m.methods[t].Indicator != nil && !m.feed.Has(proxy) {
		m.feed.Append(proxy, m.methods[t].Indicator)
		m.emit(domain.LifecycleEvent{
			Kind:      domain.EventIndicatorAdded,
			Interface: proxy.InterfaceName(),
			Path:      obj.Path(),
		})
	}
}

// InterfaceRemoved destroys the active window's panel for (type, object) and
// drops the indicator subscribed to proxy. Either may legitimately be absent.
func (m *Manager) InterfaceRemoved(obj ports.Object, proxy ports.Proxy) {
	if t, ok := m.Lookup(proxy.InterfaceName()); ok && m.window != nil {
		m.removeObject(m.window, t, obj.Path())
	}

	if _, ok := m.feed.Remove(proxy); ok {
		m.emit(domain.LifecycleEvent{
			Kind:      domain.EventIndicatorRemoved,
			Interface: proxy.InterfaceName(),
			Path:      obj.Path(),
		})
	}
}

// addObject skips a (type, path) the window already tracks. A live add can
// race a bulk walk that already saw the same object.
func (m *Manager) addObject(w *Window, t domain.ObjectType, obj ports.Object, proxy ports.Proxy) {
	if _, ok := w.objects.Lookup(t, obj.Path()); ok {
		m.logger.Debug("Object already tracked", "window", w.id, "type", t.String(), "path", obj.Path())
		return
	}

	h := m.methods[t].New(w, obj, proxy)
	w.objects.Append(t, obj.Path(), h)

	m.logger.Debug("Object added", "window", w.id, "type", t.String(), "path", obj.Path())
	m.emit(domain.LifecycleEvent{
		Kind:      domain.EventObjectAdded,
		Window:    w.id,
		Interface: m.methods[t].Interface,
		Path:      obj.Path(),
	})
}

func (m *Manager) removeObject(w *Window, t domain.ObjectType, path domain.ObjectPath) {
	h, ok := w.objects.Lookup(t, path)
	if !ok {
		m.logger.Debug("Removal of untracked object", "window", w.id, "type", t.String(), "path", path)
		return
	}

	m.methods[t].Remove(w, h)
	w.objects.Remove(t, path)

	m.logger.Debug("Object removed", "window", w.id, "type", t.String(), "path", path)
	m.emit(domain.LifecycleEvent{
		Kind:      domain.EventObjectRemoved,
		Window:    w.id,
		Interface: m.methods[t].Interface,
		Path:      path,
	})
}
