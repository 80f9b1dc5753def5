package window

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// Populate walks every object the bus currently knows and feeds each of its
// interfaces through InterfaceAdded as a bulk add targeted at w. A nil w
// initializes the indicators only. It returns the number of objects walked.
func (m *Manager) Populate(ctx context.Context, w *Window) int {
	_, span := m.tracer.Start(ctx, "window.Populate")
	defer span.End()

	if m.bus == nil {
		return 0
	}

	objects := m.bus.Objects()
	for _, obj := range objects {
		for _, proxy := range obj.Interfaces() {
			m.InterfaceAdded(SourceBulk, obj, proxy, w)
		}
	}

	span.SetAttributes(
		attribute.Int("bus.objects", len(objects)),
		attribute.Bool("window", w != nil),
	)
	return len(objects)
}
