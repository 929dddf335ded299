package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records cart and favorites activity for the ordering engine.
type EngineMetrics struct {
	cartMutations   *prometheus.CounterVec
	favoriteToggles *prometheus.CounterVec
	cartLineCount   prometheus.Gauge
	persistFailures *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	favoriteToggles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "favorite_toggles_total",
		Help: "Favorite toggles by outcome.",
	}, []string{"outcome"})
	cartLineCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_lines",
		Help: "Line count of the most recently mutated cart.",
	})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_persist_failures_total",
		Help: "Failed snapshot writes to the persistence store.",
	}, []string{"kind"})
	reg.MustRegister(cartMutations, favoriteToggles, cartLineCount, persistFailures)
	return &EngineMetrics{
		cartMutations:   cartMutations,
		favoriteToggles: favoriteToggles,
		cartLineCount:   cartLineCount,
		persistFailures: persistFailures,
	}
}

// IncCartMutation counts one cart mutation for the named operation.
func (m *EngineMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncFavoriteToggle counts one toggle; outcome is "added" or "removed".
func (m *EngineMetrics) IncFavoriteToggle(outcome string) {
	if m == nil || m.favoriteToggles == nil {
		return
	}
	m.favoriteToggles.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// SetCartLines records the line count after a mutation.
func (m *EngineMetrics) SetCartLines(count int) {
	if m == nil || m.cartLineCount == nil {
		return
	}
	m.cartLineCount.Set(float64(count))
}

// IncPersistFailure counts a failed snapshot write for the given kind.
func (m *EngineMetrics) IncPersistFailure(kind string) {
	if m == nil || m.persistFailures == nil {
		return
	}
	m.persistFailures.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
