package domain

import "time"

// EventKind classifies lifecycle events emitted by the window manager.
type EventKind string

const (
	EventWindowOpened     EventKind = "window.opened"
	EventWindowClosed     EventKind = "window.closed"
	EventObjectAdded      EventKind = "object.added"
	EventObjectRemoved    EventKind = "object.removed"
	EventCoupleBound      EventKind = "couple.bound"
	EventCoupleUnbound    EventKind = "couple.unbound"
	EventIndicatorAdded   EventKind = "indicator.added"
	EventIndicatorRemoved EventKind = "indicator.removed"
	EventBusEvent         EventKind = "bus.event"
)

// LifecycleEvent is a single state change of the binding engine.
type LifecycleEvent struct {
	Kind      EventKind  `json:"kind"`
	Window    string     `json:"window,omitempty"`
	Interface string     `json:"interface,omitempty"`
	Couple    string     `json:"couple,omitempty"`
	Path      ObjectPath `json:"path,omitempty"`
	Detail    string     `json:"detail,omitempty"`
	At        time.Time  `json:"at"`
}
