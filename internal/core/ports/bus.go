package ports

import "github.com/lcalzada-xor/iwbind/internal/core/domain"

// Proxy is the local representation of one interface exposed by a remote object.
type Proxy interface {
	// InterfaceName is the dispatch key, e.g. net.connman.iwd.Station.
	InterfaceName() string
	Path() domain.ObjectPath
	// Property returns the cached value of a remote property.
	Property(name string) (any, bool)
}

// Object is a remote bus object and the interfaces it currently exposes.
type Object interface {
	Path() domain.ObjectPath
	Interfaces() []Proxy
	// Interface returns the proxy for name, or nil.
	Interface(name string) Proxy
}

// ObjectManager enumerates the objects currently known to the bus layer.
type ObjectManager interface {
	// Objects returns a snapshot; the slice is owned by the caller.
	Objects() []Object
}

// BusEventKind is the kind of change reported by the bus layer.
type BusEventKind int

const (
	ObjectAdded BusEventKind = iota
	ObjectRemoved
	InterfaceAdded
	InterfaceRemoved
	// ServiceAppeared and ServiceVanished report the daemon owning or
	// releasing its bus name. Object and Proxy are nil.
	ServiceAppeared
	ServiceVanished
)

func (k BusEventKind) String() string {
	switch k {
	case ObjectAdded:
		return "object-added"
	case ObjectRemoved:
		return "object-removed"
	case InterfaceAdded:
		return "interface-added"
	case InterfaceRemoved:
		return "interface-removed"
	case ServiceAppeared:
		return "service-appeared"
	case ServiceVanished:
		return "service-vanished"
	}
	return "unknown"
}

// BusEvent is a single notification from the bus layer. Proxy is nil for
// object-level events.
type BusEvent struct {
	Kind   BusEventKind
	Object Object
	Proxy  Proxy
}

// EventSource delivers bus events in causal order per object.
type EventSource interface {
	ObjectManager
	Events() <-chan BusEvent
}
