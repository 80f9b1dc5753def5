package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

var (
	// ObjectsConstructed counts panels built, by interface
	ObjectsConstructed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iwbind",
			Name:      "objects_constructed_total",
			Help:      "Total number of panels constructed for bus interfaces",
		},
		[]string{"interface"},
	)

	// ObjectsDestroyed counts panels torn down, by interface
	ObjectsDestroyed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iwbind",
			Name:      "objects_destroyed_total",
			Help:      "Total number of panels destroyed",
		},
		[]string{"interface"},
	)

	// CouplesBound counts bind callbacks, by couple type
	CouplesBound = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iwbind",
			Name:      "couples_bound_total",
			Help:      "Total number of couple bind callbacks",
		},
		[]string{"couple"},
	)

	// CouplesUnbound counts unbind callbacks, by couple type
	CouplesUnbound = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iwbind",
			Name:      "couples_unbound_total",
			Help:      "Total number of couple unbind callbacks",
		},
		[]string{"couple"},
	)

	// BusEvents counts bus notifications handled, by kind
	BusEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iwbind",
			Name:      "bus_events_total",
			Help:      "Total number of bus notifications dispatched",
		},
		[]string{"kind"},
	)

	// WindowsOpened counts windows created
	WindowsOpened = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "iwbind",
			Name:      "windows_opened_total",
			Help:      "Total number of windows opened",
		},
	)

	// WindowOpen is 1 while a window exists
	WindowOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "iwbind",
			Name:      "window_open",
			Help:      "Whether a window is currently open",
		},
	)

	// Indicators tracks the size of the indicator feed
	Indicators = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "iwbind",
			Name:      "indicators",
			Help:      "Number of indicators in the feed",
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		for _, c := range collectors() {
			prometheus.DefaultRegisterer.Register(c)
		}
	})
}

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ObjectsConstructed,
		ObjectsDestroyed,
		CouplesBound,
		CouplesUnbound,
		BusEvents,
		WindowsOpened,
		WindowOpen,
		Indicators,
	}
}

// MetricsObserver turns lifecycle events into metric updates.
type MetricsObserver struct{}

var _ ports.LifecycleObserver = MetricsObserver{}

// OnLifecycle implements ports.LifecycleObserver.
func (MetricsObserver) OnLifecycle(ev domain.LifecycleEvent) {
	switch ev.Kind {
	case domain.EventObjectAdded:
		ObjectsConstructed.WithLabelValues(ev.Interface).Inc()
	case domain.EventObjectRemoved:
		ObjectsDestroyed.WithLabelValues(ev.Interface).Inc()
	case domain.EventCoupleBound:
		CouplesBound.WithLabelValues(ev.Couple).Inc()
	case domain.EventCoupleUnbound:
		CouplesUnbound.WithLabelValues(ev.Couple).Inc()
	case domain.EventBusEvent:
		BusEvents.WithLabelValues(ev.Detail).Inc()
	case domain.EventWindowOpened:
		WindowsOpened.Inc()
		WindowOpen.Set(1)
	case domain.EventWindowClosed:
		WindowOpen.Set(0)
	case domain.EventIndicatorAdded:
		Indicators.Inc()
	case domain.EventIndicatorRemoved:
		Indicators.Dec()
	}
}
