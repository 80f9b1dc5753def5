package ports

import "github.com/lcalzada-xor/iwbind/internal/core/domain"

// Handle is the opaque value a constructor returns. The registries compare
// handles with ==, so constructors must return comparable values (pointers).
type Handle any

// Surface is the live widget tree of a window.
type Surface interface {
	// Placeholder replaces the tree with a notice; used when iwd is absent.
	Placeholder(msg string)
	// BuildChrome constructs the base widgets panels are attached to.
	BuildChrome()
	Destroy()
}

// SurfaceViewer is implemented by surfaces that can describe their widgets.
type SurfaceViewer interface {
	View() any
	Render() string
}

// Shell creates surfaces for new windows.
type Shell interface {
	NewSurface(windowID string) Surface
}

// Window is what constructors and destructors see of the window they act on.
type Window interface {
	ID() string
	Surface() Surface
	// Register adds h as one side of the couple keyed by path.
	Register(couple domain.CoupleType, side domain.Side, h Handle, path domain.ObjectPath)
	// Unregister removes h from every couple entry of the given type and side.
	Unregister(couple domain.CoupleType, side domain.Side, h Handle)
}

// Constructor builds the panel for one interface of a remote object.
type Constructor func(w Window, obj Object, proxy Proxy) Handle

// Destructor releases everything the matching constructor acquired.
type Destructor func(w Window, h Handle)

// IndicatorSetter computes indicator state from a live proxy.
type IndicatorSetter func(proxy Proxy) domain.IndicatorStatus

// ObjectMethods describes one supported interface.
type ObjectMethods struct {
	Interface string
	New       Constructor
	Remove    Destructor
	Indicator IndicatorSetter
}

// CoupleMethods describes one relationship. Both callbacks only ever receive
// two non-nil handles, side 0 first.
type CoupleMethods struct {
	Bind   func(h0, h1 Handle)
	Unbind func(h0, h1 Handle)
}

// LifecycleObserver is notified synchronously of every engine state change.
type LifecycleObserver interface {
	OnLifecycle(ev domain.LifecycleEvent)
}

// FrontEnd is the thread-safe facade the outer surfaces (signals, HTTP) use.
type FrontEnd interface {
	OpenWindow() (domain.WindowSnapshot, error)
	CloseWindow() error
	Snapshot() (domain.WindowSnapshot, error)
	RenderWindow() (string, error)
	Indicators() ([]domain.IndicatorStatus, error)
}
