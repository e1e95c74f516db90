package neighborhood

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the engine's optional Prometheus instrumentation. A nil
// *Metrics is safe to call every method on: every call site in the
// engine checks for nil once, rather than sprinkling registry-is-nil
// checks through the hot path.
type Metrics struct {
	affectedVertices prometheus.Counter
	vertexCoverSize  prometheus.Gauge
	counterArrayBytes *prometheus.GaugeVec
	addEdgesDuration prometheus.Histogram
	watcherFires     prometheus.Counter
}

// NewMetrics registers the engine's instrumentation against reg. A nil
// registry yields a nil *Metrics, disabling instrumentation entirely.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		affectedVertices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hyperanf_affected_vertices_total",
			Help: "Total number of vertices whose vertex cover membership changed across all AddEdges calls.",
		}),
		vertexCoverSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hyperanf_vertex_cover_size",
			Help: "Current number of vertices in the maintained 2-approximate vertex cover.",
		}),
		counterArrayBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hyperanf_counter_array_bytes",
			Help: "Memory footprint of the packed counter array at a given hop.",
		}, []string{"hop"}),
		addEdgesDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "hyperanf_addedges_duration_seconds",
			Help: "Wall-clock duration of AddEdges calls.",
		}),
		watcherFires: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hyperanf_watcher_fires_total",
			Help: "Total number of Top-Node Watcher callback invocations.",
		}),
	}
	reg.MustRegister(m.affectedVertices, m.vertexCoverSize, m.counterArrayBytes, m.addEdgesDuration, m.watcherFires)
	return m
}

func (m *Metrics) observeAffected(n int) {
	if m == nil {
		return
	}
	m.affectedVertices.Add(float64(n))
}

func (m *Metrics) setVertexCoverSize(n int) {
	if m == nil {
		return
	}
	m.vertexCoverSize.Set(float64(n))
}

func (m *Metrics) setCounterArrayBytes(hop int, bytes uint64) {
	if m == nil {
		return
	}
	m.counterArrayBytes.WithLabelValues(strconv.Itoa(hop)).Set(float64(bytes))
}

func (m *Metrics) observeAddEdgesDuration(seconds float64) {
	if m == nil {
		return
	}
	m.addEdgesDuration.Observe(seconds)
}

func (m *Metrics) incWatcherFires() {
	if m == nil {
		return
	}
	m.watcherFires.Inc()
}
