package httpapi

import (
	"iptriage/triage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	verdictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iptriage",
			Name:      "verdicts_total",
			Help:      "Total scored requests by verdict status.",
		},
		[]string{"status"},
	)

	shortCircuitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "iptriage",
			Name:      "short_circuits_total",
			Help:      "Total requests resolved without consulting the classifier.",
		},
	)
)

func init() {
	prometheus.MustRegister(verdictsTotal, shortCircuitsTotal)
}

func observeVerdict(verdict triage.Verdict) {
	verdictsTotal.WithLabelValues(verdict.Decision.String()).Inc()
	if verdict.ShortCircuited {
		shortCircuitsTotal.Inc()
	}
}

func metricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
