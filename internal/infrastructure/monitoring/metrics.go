package monitoring

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	LoanTransitions    *prometheus.CounterVec
	Assessments        *prometheus.CounterVec
	AssessmentDuration *prometheus.HistogramVec
	NotificationsSent  *prometheus.CounterVec
	PaymentsRecorded   *prometheus.CounterVec
	OverdueLoans       prometheus.Gauge
	EventsPublished    *prometheus.CounterVec
	CreditorChanges    *prometheus.CounterVec
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "peer_lending_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		LoanTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peer_lending_loan_transitions_total",
				Help: "Total number of loan status transitions attempted.",
			},
			[]string{"action", "outcome"},
		),
		Assessments: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peer_lending_assessments_total",
				Help: "Total number of loan assessments produced.",
			},
			[]string{"source", "recommendation"},
		),
		AssessmentDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "peer_lending_assessment_duration_seconds",
				Help:    "Histogram of advisor call latencies.",
				Buckets: []float64{.001, .01, .1, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"source"},
		),
		NotificationsSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peer_lending_notifications_total",
				Help: "Total number of notifications delivered by type and status.",
			},
			[]string{"type", "status"},
		),
		PaymentsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peer_lending_payments_recorded_total",
				Help: "Total number of payments recorded by method and status.",
			},
			[]string{"method", "status"},
		),
		OverdueLoans: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "peer_lending_overdue_loans",
				Help: "Number of approved loans past their due date at the last check.",
			},
		),
		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peer_lending_events_published_total",
				Help: "Total number of domain events published to the broker.",
			},
			[]string{"routing_key", "status"},
		),
		CreditorChanges: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peer_lending_creditor_changes_total",
				Help: "Total number of creditor network changes by action and outcome.",
			},
			[]string{"action", "outcome"},
		),
	}
)

// PoolStatsFunc reports the current total, idle and in-use connection counts of a pool.
type PoolStatsFunc func() (total, idle, acquired int32)

// RegisterDBPool exposes connection pool gauges. Registering a second pool is a no-op.
func RegisterDBPool(stats PoolStatsFunc) {
	gauge := func(name, help string, pick func(total, idle, acquired int32) int32) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			return float64(pick(stats()))
		})
	}
	collectors := []prometheus.Collector{
		gauge("peer_lending_db_pool_connections", "Open connections in the database pool.",
			func(total, _, _ int32) int32 { return total }),
		gauge("peer_lending_db_pool_idle_connections", "Idle connections in the database pool.",
			func(_, idle, _ int32) int32 { return idle }),
		gauge("peer_lending_db_pool_acquired_connections", "Connections currently checked out of the database pool.",
			func(_, _, acquired int32) int32 { return acquired }),
	}
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				panic(err)
			}
		}
	}
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordLoanTransition(action, outcome string) {
	Business.LoanTransitions.WithLabelValues(action, outcome).Inc()
}

func RecordAssessment(source, recommendation string, duration time.Duration) {
	Business.Assessments.WithLabelValues(source, recommendation).Inc()
	Business.AssessmentDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func RecordNotification(notificationType, status string) {
	Business.NotificationsSent.WithLabelValues(notificationType, status).Inc()
}

func RecordPayment(method, status string) {
	Business.PaymentsRecorded.WithLabelValues(method, status).Inc()
}

func SetOverdueLoans(count int) {
	Business.OverdueLoans.Set(float64(count))
}

func RecordEventPublished(routingKey, status string) {
	Business.EventsPublished.WithLabelValues(routingKey, status).Inc()
}

func RecordCreditorChange(action, outcome string) {
	Business.CreditorChanges.WithLabelValues(action, outcome).Inc()
}
