package window

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
	"github.com/lcalzada-xor/iwbind/internal/core/services/indicator"
	"github.com/lcalzada-xor/iwbind/internal/core/services/registry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Manager is the process-wide binding context: the static interface and
// couple tables, the bus snapshot source, the single active window and the
// indicator feed.
//
// Manager is not safe for concurrent use. Every method must be called from
// the one goroutine that serializes bus notifications and UI signals.
type Manager struct {
	methods [domain.NumObjectTypes]ports.ObjectMethods
	byName  map[string]domain.ObjectType
	couples [domain.NumCoupleTypes]ports.CoupleMethods

	shell  ports.Shell
	bus    ports.ObjectManager
	window *Window

	feed              *indicator.Feed
	indicatorsEnabled bool

	observers []ports.LifecycleObserver
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithIndicators enables the indicator feed.
func WithIndicators(enabled bool) Option {
	return func(m *Manager) { m.indicatorsEnabled = enabled }
}

// WithObserver adds a lifecycle observer.
func WithObserver(o ports.LifecycleObserver) Option {
	return func(m *Manager) { m.observers = append(m.observers, o) }
}

// WithTracer sets the tracer used for window build spans.
func WithTracer(t trace.Tracer) Option {
	return func(m *Manager) { m.tracer = t }
}

// NewManager validates the static tables and returns a manager with no bus
// and no window.
func NewManager(shell ports.Shell, objects [domain.NumObjectTypes]ports.ObjectMethods, couples [domain.NumCoupleTypes]ports.CoupleMethods, opts ...Option) (*Manager, error) {
	if shell == nil {
		return nil, fmt.Errorf("window manager: nil shell")
	}

	m := &Manager{
		methods: objects,
		byName:  make(map[string]domain.ObjectType, domain.NumObjectTypes),
		couples: couples,
		shell:   shell,
		feed:    indicator.NewFeed(),
		logger:  slog.Default(),
		tracer:  otel.Tracer("github.com/lcalzada-xor/iwbind/window"),
	}
	for _, opt := range opts {
		opt(m)
	}

	for i, om := range objects {
		t := domain.ObjectType(i)
		if om.Interface == "" || om.New == nil || om.Remove == nil {
			return nil, fmt.Errorf("window manager: incomplete methods for %s", t)
		}
		if prev, dup := m.byName[om.Interface]; dup {
			return nil, fmt.Errorf("window manager: interface %s registered for %s and %s", om.Interface, prev, t)
		}
		m.byName[om.Interface] = t
	}
	return m, nil
}

// Window returns the active window, or nil.
func (m *Manager) Window() *Window { return m.window }

// Indicators returns the indicator feed.
func (m *Manager) Indicators() *indicator.Feed { return m.feed }

// IndicatorsEnabled reports whether the indicator feed is on.
func (m *Manager) IndicatorsEnabled() bool { return m.indicatorsEnabled }

// Connected reports whether a bus snapshot source is set.
func (m *Manager) Connected() bool { return m.bus != nil }

// Open creates the window, closing the current one first. Without a bus the
// window shows a placeholder and tracks nothing.
func (m *Manager) Open(ctx context.Context) *Window {
	ctx, span := m.tracer.Start(ctx, "window.Open")
	defer span.End()

	if m.window != nil {
		m.Close()
	}

	w := &Window{
		id:       uuid.NewString(),
		openedAt: time.Now(),
		objects:  registry.NewObjects(),
		couples:  registry.NewCouples(m.couples),
	}
	w.couples.OnChange(func(ct domain.CoupleType, path domain.ObjectPath, bound bool) {
		kind := domain.EventCoupleUnbound
		if bound {
			kind = domain.EventCoupleBound
		}
		m.emit(domain.LifecycleEvent{Kind: kind, Window: w.id, Couple: ct.String(), Path: path})
	})
	w.surface = m.shell.NewSurface(w.id)
	m.window = w

	span.SetAttributes(attribute.String("window.id", w.id))
	m.logger.Info("Window opened", "window", w.id, "connected", m.bus != nil)
	m.emit(domain.LifecycleEvent{Kind: domain.EventWindowOpened, Window: w.id})

	m.build(ctx, w)
	return w
}

// Close tears down every panel of the active window and forgets it.
func (m *Manager) Close() {
	w := m.window
	if w == nil {
		return
	}

	n := m.teardown(w)
	w.surface.Destroy()
	m.window = nil

	m.logger.Info("Window closed", "window", w.id, "destroyed", n)
	m.emit(domain.LifecycleEvent{Kind: domain.EventWindowClosed, Window: w.id, Detail: fmt.Sprintf("%d objects", n)})
}

// SetBus records the bus once iwd is reachable, initializes the indicators
// and rebuilds the active window.
func (m *Manager) SetBus(ctx context.Context, bus ports.ObjectManager) {
	if m.bus != nil {
		m.ClearBus()
	}
	m.bus = bus

	if m.indicatorsEnabled {
		m.Populate(ctx, nil)
	}
	if w := m.window; w != nil {
		m.teardown(w)
		m.build(ctx, w)
	}
}

// ClearBus drops the bus after iwd went away. Indicators are removed and the
// window falls back to its placeholder.
func (m *Manager) ClearBus() {
	m.bus = nil

	for _, ind := range m.feed.Clear() {
		m.emit(domain.LifecycleEvent{
			Kind:      domain.EventIndicatorRemoved,
			Interface: ind.Proxy.InterfaceName(),
			Path:      ind.Proxy.Path(),
		})
	}
	if w := m.window; w != nil {
		m.teardown(w)
		m.build(context.Background(), w)
	}
}

// Snapshot describes the active window.
func (m *Manager) Snapshot() (domain.WindowSnapshot, error) {
	w := m.window
	if w == nil {
		return domain.WindowSnapshot{}, domain.ErrNoWindow
	}

	snap := domain.WindowSnapshot{
		ID:          w.id,
		OpenedAt:    w.openedAt,
		Placeholder: w.placeholder,
		Objects:     make(map[string][]domain.ObjectRef),
		Couples:     w.couples.States(),
	}
	for i := 0; i < domain.NumObjectTypes; i++ {
		t := domain.ObjectType(i)
		for _, e := range w.objects.Entries(t) {
			snap.Objects[t.String()] = append(snap.Objects[t.String()], domain.ObjectRef{
				Path:      e.Path,
				Interface: m.methods[t].Interface,
			})
		}
	}
	if v, ok := w.surface.(ports.SurfaceViewer); ok {
		snap.View = v.View()
	}
	return snap, nil
}

// Render returns the text rendering of the active window.
func (m *Manager) Render() (string, error) {
	w := m.window
	if w == nil {
		return "", domain.ErrNoWindow
	}
	if v, ok := w.surface.(ports.SurfaceViewer); ok {
		return v.Render(), nil
	}
	if w.placeholder != "" {
		return w.placeholder, nil
	}
	return "", nil
}

func (m *Manager) build(ctx context.Context, w *Window) {
	if m.bus == nil {
		w.placeholder = domain.ErrBusUnavailable.Error()
		w.surface.Placeholder(w.placeholder)
		return
	}

	w.placeholder = ""
	w.surface.BuildChrome()
	m.Populate(ctx, w)
}

// teardown runs the destructor of every entry, bucket by bucket in table
// order, and returns how many were destroyed.
func (m *Manager) teardown(w *Window) int {
	n := 0
	for i := 0; i < domain.NumObjectTypes; i++ {
		t := domain.ObjectType(i)
		for {
			e, ok := w.objects.Front(t)
			if !ok {
				break
			}
			m.methods[t].Remove(w, e.Handle)
			w.objects.PopFront(t)
			n++
			m.emit(domain.LifecycleEvent{
				Kind:      domain.EventObjectRemoved,
				Window:    w.id,
				Interface: m.methods[t].Interface,
				Path:      e.Path,
			})
		}
	}
	return n
}

func (m *Manager) emit(ev domain.LifecycleEvent) {
	if len(m.observers) == 0 {
		return
	}
	ev.At = time.Now()
	for _, o := range m.observers {
		o.OnLifecycle(ev)
	}
}
