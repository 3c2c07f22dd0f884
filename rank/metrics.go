package rank

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rushteam/scorekit/core"
)

const (
	MetricDocumentsScored = "scorekit_documents_scored_total"
	MetricScoreErrors     = "scorekit_score_errors_total"
	MetricBatchDuration   = "scorekit_score_batch_duration_seconds"
)

// Metrics 是打分节点的 Prometheus 指标，按规则名打标签。
// 未注册也可以安全使用。
type Metrics struct {
	scored   *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		scored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricDocumentsScored,
				Help: "Total number of documents scored by rule",
			},
			[]string{"rule"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricScoreErrors,
				Help: "Total number of scoring failures by rule and error code",
			},
			[]string{"rule", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricBatchDuration,
				Help:    "Histogram of batch scoring duration in seconds by rule",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"rule"},
		),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.scored, m.errors, m.duration}
}

func (m *Metrics) addScored(rule string, n int) {
	if m == nil {
		return
	}
	m.scored.WithLabelValues(rule).Add(float64(n))
}

func (m *Metrics) incError(rule string, err error) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(rule, errorCode(err)).Inc()
}

func (m *Metrics) observe(rule string, seconds float64) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(rule).Observe(seconds)
}

func errorCode(err error) string {
	if de := core.GetDomainError(err); de != nil {
		return de.Code
	}
	return "UNKNOWN"
}
