package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
)

// Metrics holds the engine collectors on a private registry.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	undoDepth  prometheus.Gauge
}

// New creates the collectors and registers them with process metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bandroster",
			Name:      "operations_total",
			Help:      "Engine operations by name and outcome.",
		}, []string{"operation", "result"}),
		undoDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bandroster",
			Name:      "undo_depth",
			Help:      "Number of operations that can currently be undone.",
		}),
	}
	m.registry.MustRegister(
		m.operations,
		m.undoDepth,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveOperation counts one engine call under its outcome.
func (m *Metrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, Result(err)).Inc()
}

// SetUndoDepth publishes the current undo stack size.
func (m *Metrics) SetUndoDepth(n int) {
	if m == nil {
		return
	}
	m.undoDepth.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Result buckets an error into a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrUndoFailed):
		return "undo_failed"
	case errors.Is(err, apperrors.ErrEmptyStack):
		return "empty_stack"
	case errors.Is(err, apperrors.ErrValidationFailed):
		return "validation"
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return "not_found"
	case apperrors.Is(err, apperrors.ErrAlreadyAssigned,
		apperrors.ErrNotAssigned, apperrors.ErrDuplicateID,
		apperrors.ErrStudentAlreadyHoldsCategory, apperrors.ErrUniqueViolation):
		return "conflict"
	case errors.Is(err, apperrors.ErrSectionMismatch):
		return "section_mismatch"
	default:
		return "error"
	}
}
