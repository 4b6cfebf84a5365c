// Package metrics holds the Prometheus collectors of the CRM service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	ResultCreated  = "created"
	ResultReused   = "reused"
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultSuccess  = "success"
	ResultFailure  = "failure"
)

// Seat check stages.
const (
	StageCreate = "create"
	StageAccept = "accept"
)

type Metrics struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	invitations        *prometheus.CounterVec
	acceptances        *prometheus.CounterVec
	seatLimitRejection *prometheus.CounterVec
	purged             prometheus.Counter
	logins             *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crm_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		invitations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_invitations_created_total",
			Help: "Invitation create calls by result (created, reused, rejected)",
		}, []string{"result"}),

		acceptances: f.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_invitations_accepted_total",
			Help: "Invitation accept calls by result (accepted, rejected)",
		}, []string{"result"}),

		seatLimitRejection: f.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_seat_limit_rejections_total",
			Help: "Operations refused because the workspace was full, by stage",
		}, []string{"stage"}),

		purged: f.NewCounter(prometheus.CounterOpts{
			Name: "crm_invitations_purged_total",
			Help: "Stale invitations removed by housekeeping",
		}),

		logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
	}
}

// ObserveHTTPRequest records an HTTP request metric.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

func (m *Metrics) ObserveInvitation(result string) {
	if m == nil {
		return
	}
	m.invitations.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveAcceptance(result string) {
	if m == nil {
		return
	}
	m.acceptances.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSeatLimit(stage string) {
	if m == nil {
		return
	}
	m.seatLimitRejection.WithLabelValues(stage).Inc()
}

func (m *Metrics) ObservePurged(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.purged.Add(float64(n))
}

func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}
