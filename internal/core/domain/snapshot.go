package domain

import "time"

// ObjectRef names one registered (object, interface) pair.
type ObjectRef struct {
	Path      ObjectPath `json:"path"`
	Interface string     `json:"interface"`
}

// CoupleState describes one couple registry entry.
type CoupleState struct {
	Couple string     `json:"couple"`
	Path   ObjectPath `json:"path"`
	Sides  [2]bool    `json:"sides"`
	Bound  bool       `json:"bound"`
}

// WindowSnapshot is a read-only view of the active window.
type WindowSnapshot struct {
	ID          string                 `json:"id"`
	OpenedAt    time.Time              `json:"opened_at"`
	Placeholder string                 `json:"placeholder,omitempty"`
	Objects     map[string][]ObjectRef `json:"objects"`
	Couples     []CoupleState          `json:"couples"`
	View        any                    `json:"view,omitempty"`
}

// IndicatorStatus is what a status indicator displays for one interface.
type IndicatorStatus struct {
	Path      ObjectPath `json:"path"`
	Interface string     `json:"interface"`
	Icon      string     `json:"icon"`
	Tooltip   string     `json:"tooltip"`
}
