package llm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	completionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "deep_research",
		Name:      "completion_requests_total",
		Help:      "Completion requests issued, by outcome.",
	}, []string{"outcome"})

	completionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "deep_research",
		Name:      "completion_duration_seconds",
		Help:      "Latency of completion requests.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	})

	degradedSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "deep_research",
		Name:      "degraded_steps_total",
		Help:      "Steps that substituted a placeholder for a failed completion, by stage.",
	}, []string{"stage"})
)

func observeCompletion(start time.Time, err error) {
	completionDuration.Observe(time.Since(start).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	completionRequests.WithLabelValues(outcome).Inc()
}

// RecordDegraded 记录一次降级，stage 如 outline / aspect / risk / chat
func RecordDegraded(stage string) {
	degradedSteps.WithLabelValues(stage).Inc()
}
