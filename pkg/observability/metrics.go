// Package observability exposes panel activity as Prometheus metrics.
// The collectors attach through lifecycle hooks, so the engine stays
// free of metrics code.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dwilhelm/optlist/pkg/domain"
)

// Metrics bundles the panel collectors.
type Metrics struct {
	toggles      *prometheus.CounterVec
	forces       *prometheus.CounterVec
	syncs        *prometheus.CounterVec
	syncSkipped  prometheus.Counter
	syncFailed   prometheus.Counter
	forcedPerTog prometheus.Histogram
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		toggles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "optlist",
			Name:      "toggles_total",
			Help:      "User toggles applied, by entry key.",
		}, []string{"key"}),
		forces: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "optlist",
			Name:      "link_firings_total",
			Help:      "Implication link firings, by link type.",
		}, []string{"link"}),
		syncs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "optlist",
			Name:      "sync_passes_total",
			Help:      "Load and commit passes.",
		}, []string{"direction"}),
		syncSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "optlist",
			Name:      "sync_skipped_entries_total",
			Help:      "Entries skipped at write-back because a policy locks them.",
		}),
		syncFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "optlist",
			Name:      "sync_failed_entries_total",
			Help:      "Entries whose write-back failed.",
		}),
		forcedPerTog: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "optlist",
			Name:      "forced_entries_per_toggle",
			Help:      "Link-forced entries per user toggle.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16},
		}),
	}
}

// Hooks returns lifecycle hooks that feed the collectors. Pass the
// result to the panel via WithLifecycleHooks, or merge it with the
// host's own hooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnToggle: func(ev *domain.ToggleEvent) {
			m.toggles.WithLabelValues(ev.Key).Inc()
			m.forcedPerTog.Observe(float64(ev.Forced))
		},
		OnForce: func(ev *domain.ForceEvent) {
			m.forces.WithLabelValues(ev.Link.String()).Inc()
		},
		OnSync: func(ev *domain.SyncEvent) {
			direction := "load"
			if ev.WriteBack {
				direction = "commit"
			}
			m.syncs.WithLabelValues(direction).Inc()
			m.syncSkipped.Add(float64(ev.Skipped))
			m.syncFailed.Add(float64(ev.Failed))
		},
	}
}

// Merge combines hook sets so metrics and host callbacks both fire.
func Merge(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	merged := domain.LifecycleHooks{}

	merged.OnToggle = func(ev *domain.ToggleEvent) {
		for _, h := range hooks {
			if h.OnToggle != nil {
				h.OnToggle(ev)
			}
		}
	}
	merged.OnForce = func(ev *domain.ForceEvent) {
		for _, h := range hooks {
			if h.OnForce != nil {
				h.OnForce(ev)
			}
		}
	}
	merged.OnSync = func(ev *domain.SyncEvent) {
		for _, h := range hooks {
			if h.OnSync != nil {
				h.OnSync(ev)
			}
		}
	}

	return merged
}
