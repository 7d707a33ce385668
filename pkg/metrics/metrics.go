package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AuthDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "foodshare", Name: "auth_denied_total", Help: "Number of requests rejected by the bearer-token guard, by reason."},
		[]string{"reason"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "foodshare", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "foodshare", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AuthDenied)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
