package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"hanactl/internal/agent"
)

var (
	AttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hanactl_request_attempts_total",
		Help: "Physical signed request attempts by outcome class.",
	}, []string{"outcome"})

	JobsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hanactl_jobs_fetched_total",
		Help: "Transfer jobs pulled from the agent service.",
	})

	JobsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hanactl_jobs_deleted_total",
		Help: "Transfer jobs deleted on the agent service.",
	})
)

// RequestObserver classifies per-attempt errors for the attempts counter.
// Wired into the retry controller's attempt hook.
func RequestObserver() func(err error) {
	return func(err error) {
		AttemptsTotal.WithLabelValues(outcomeLabel(err)).Inc()
	}
}

func outcomeLabel(err error) string {
	if err == nil {
		return "success"
	}
	var te *agent.TransportError
	if errors.As(err, &te) {
		return "transport"
	}
	var ae *agent.APIError
	if errors.As(err, &ae) {
		return "api"
	}
	return "config"
}
