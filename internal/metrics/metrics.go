package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	BackendFetchesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_backend_fetches_total",
			Help: "Backend fetches by resource and outcome (ok, failed, cached).",
		},
		[]string{"resource", "outcome"},
	)
	BackendFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "site_backend_fetch_duration_seconds",
			Help:    "Duration of backend requests in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"resource"},
	)
	ContactSubmissionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_contact_submissions_total",
			Help: "Contact form submissions by outcome (sent, invalid, failed, limited).",
		},
		[]string{"outcome"},
	)
	ApplicationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "site_job_applications_total",
			Help: "Total number of received job applications.",
		},
	)
	RequestDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "site_http_request_duration_seconds",
			Help:       "Duration of handled HTTP requests by route.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"route", "method"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(BackendFetchesCounter)
		prometheus.MustRegister(BackendFetchDuration)
		prometheus.MustRegister(ContactSubmissionsCounter)
		prometheus.MustRegister(ApplicationsCounter)
		prometheus.MustRegister(RequestDuration)
	})
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
