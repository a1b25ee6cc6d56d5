package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "auth", Name: "signups_total", Help: "Number of successful signups."},
	)
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "auth", Name: "logins_total", Help: "Number of login attempts by outcome."},
		[]string{"outcome"},
	)
	RefreshesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "auth", Name: "refreshes_total", Help: "Number of refresh attempts by outcome."},
		[]string{"outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(SignupsTotal)
	reg.MustRegister(LoginsTotal)
	reg.MustRegister(RefreshesTotal)
}
