package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "kalendarz", Name: "http_requests_total", Help: "HTTP requests by route, method and status."},
		[]string{"route", "method", "status"},
	)
	SignupsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "kalendarz", Name: "signups_accepted_total", Help: "Registrations successfully appended to the board."},
	)
	MutationsDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "kalendarz", Name: "mutations_denied_total", Help: "Board mutations refused, by failure class."},
		[]string{"reason"},
	)
	LoginFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "kalendarz", Name: "login_failures_total", Help: "Login attempts with a wrong site password."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(SignupsAccepted)
	reg.MustRegister(MutationsDenied)
	reg.MustRegister(LoginFailures)
}
