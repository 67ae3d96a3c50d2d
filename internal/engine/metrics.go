package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what a replay did. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	// ActionsTotal counts executed operations by kind.
	ActionsTotal *prometheus.CounterVec

	// RejectionsTotal counts error records by operation kind.
	RejectionsTotal *prometheus.CounterVec

	// NotificationsTotal counts notifications appended by catalog events.
	NotificationsTotal *prometheus.CounterVec

	// RecommendationsTotal counts end-of-run recommendations by outcome
	// ("hit" or "none").
	RecommendationsTotal *prometheus.CounterVec

	// StructuralNoopsTotal counts operations skipped because their catalog
	// entry was missing.
	StructuralNoopsTotal *prometheus.CounterVec
}

// NewMetrics registers the replay counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ActionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamtv_actions_total",
				Help: "Total number of executed actions",
			},
			[]string{"kind"},
		),
		RejectionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamtv_rejections_total",
				Help: "Total number of actions answered with an error record",
			},
			[]string{"kind"},
		),
		NotificationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamtv_notifications_total",
				Help: "Total number of notifications delivered by catalog events",
			},
			[]string{"event"},
		),
		RecommendationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamtv_recommendations_total",
				Help: "Total number of premium recommendations",
			},
			[]string{"outcome"},
		),
		StructuralNoopsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamtv_structural_noops_total",
				Help: "Total number of actions skipped because their catalog entry was missing",
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) action(kind string) {
	if m != nil {
		m.ActionsTotal.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) rejection(kind string) {
	if m != nil {
		m.RejectionsTotal.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) notified(event string, n int) {
	if m != nil && n > 0 {
		m.NotificationsTotal.WithLabelValues(event).Add(float64(n))
	}
}

func (m *Metrics) recommendation(outcome string) {
	if m != nil {
		m.RecommendationsTotal.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) structuralNoop(kind string) {
	if m != nil {
		m.StructuralNoopsTotal.WithLabelValues(kind).Inc()
	}
}
