// Package panel implements the headless per-interface panels: the
// constructors, destructors, couple callbacks and indicator hooks the window
// manager dispatches to, and the surface they are attached to.
package panel

import (
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

const title = "iwbind"

// Shell creates one Surface per window.
type Shell struct{}

// NewShell returns a Shell.
func NewShell() *Shell {
	return &Shell{}
}

// NewSurface implements ports.Shell.
func (sh *Shell) NewSurface(windowID string) ports.Surface {
	return &Surface{id: windowID}
}

// Surface is the widget tree of one window.
type Surface struct {
	id          string
	title       string
	placeholder string
	chrome      bool
	destroyed   bool

	adapters      []*Adapter
	knownNetworks []*KnownNetwork
	networks      []*Network
}

var (
	_ ports.Surface       = (*Surface)(nil)
	_ ports.SurfaceViewer = (*Surface)(nil)
)

// Placeholder implements ports.Surface.
func (s *Surface) Placeholder(msg string) {
	s.title = title
	s.placeholder = msg
	s.chrome = false
}

// BuildChrome implements ports.Surface.
func (s *Surface) BuildChrome() {
	s.title = title
	s.placeholder = ""
	s.chrome = true
}

// Destroy implements ports.Surface.
func (s *Surface) Destroy() {
	s.destroyed = true
	s.chrome = false
	s.adapters = nil
	s.knownNetworks = nil
	s.networks = nil
}

// Destroyed reports whether the window was closed.
func (s *Surface) Destroyed() bool { return s.destroyed }

func surfaceOf(w ports.Window) *Surface {
	s, _ := w.Surface().(*Surface)
	return s
}
