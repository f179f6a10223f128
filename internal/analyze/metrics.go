package analyze

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobflag",
		Name:      "analyses_total",
		Help:      "Completed analyses by verdict source.",
	}, []string{"source"})

	remoteFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jobflag",
		Name:      "remote_fallbacks_total",
		Help:      "Remote classifier failures answered by the heuristic.",
	})

	degradedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jobflag",
		Name:      "degraded_verdicts_total",
		Help:      "Analyses that ended in the degraded verdict.",
	})

	flaggedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jobflag",
		Name:      "flagged_jobs_total",
		Help:      "Analyses with at least one red flag.",
	})
)
