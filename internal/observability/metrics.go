package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	intakeSubmissionsVec  *prometheus.CounterVec
	claimAttemptsVec      *prometheus.CounterVec
	loginAttemptsVec      *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intake_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		intakeSubmissionsVec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Public applicant submissions by outcome.",
		}, []string{"result"})

		claimAttemptsVec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_claim_attempts_total",
			Help: "Applicant claim attempts by outcome.",
		}, []string{"result"})

		loginAttemptsVec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_login_attempts_total",
			Help: "Staff login attempts by outcome.",
		}, []string{"result"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			intakeSubmissionsVec,
			claimAttemptsVec,
			loginAttemptsVec,
		)
	})
}

// APIRequests exposes the counter for served requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// IntakeSubmissions exposes the counter for public submissions.
func IntakeSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return intakeSubmissionsVec
}

// ClaimAttempts exposes the counter for claim attempts.
func ClaimAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return claimAttemptsVec
}

// LoginAttempts exposes the counter for login attempts.
func LoginAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return loginAttemptsVec
}
