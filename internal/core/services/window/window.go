// Package window owns the main window lifecycle and routes bus events to the
// per-interface constructors and destructors.
package window

import (
	"time"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
	"github.com/lcalzada-xor/iwbind/internal/core/services/registry"
)

// Window is one instance of the main window: its surface and the registries
// of every panel and couple built on it.
type Window struct {
	id          string
	openedAt    time.Time
	placeholder string
	surface     ports.Surface
	objects     *registry.Objects
	couples     *registry.Couples
}

var _ ports.Window = (*Window)(nil)

// ID returns the window's unique id.
func (w *Window) ID() string { return w.id }

// OpenedAt returns when the window was created.
func (w *Window) OpenedAt() time.Time { return w.openedAt }

// Surface returns the live widget tree.
func (w *Window) Surface() ports.Surface { return w.surface }

// Placeholder returns the notice shown instead of panels, if any.
func (w *Window) Placeholder() string { return w.placeholder }

// Objects returns the window's object registry.
func (w *Window) Objects() *registry.Objects { return w.objects }

// Couples returns the window's couple registry.
func (w *Window) Couples() *registry.Couples { return w.couples }

// Register adds h as one side of the couple keyed by path.
func (w *Window) Register(ct domain.CoupleType, side domain.Side, h ports.Handle, path domain.ObjectPath) {
	w.couples.Register(ct, side, h, path)
}

// Unregister removes h from side of every couple of type ct.
func (w *Window) Unregister(ct domain.CoupleType, side domain.Side, h ports.Handle) {
	w.couples.Unregister(ct, side, h)
}
