package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	AccountsRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "accounts_registered_total",
		Help: "Total accounts registered",
	})

	PostsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "posts_created_total",
		Help: "Total book posts created",
	})

	CommentsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "comments_created_total",
		Help: "Total comments created",
	})

	PinsCleared = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "comment_pins_cleared_total",
		Help: "Pin flags cleared because the writer was not the post author",
	})

	Engagements = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engagements_total",
		Help: "Likes, saves and follows by outcome",
	}, []string{"kind", "outcome"})

	NotificationsEnqueued = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_enqueued_total",
		Help: "Notification tasks handed to the queue",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		RequestDuration,
		AccountsRegistered,
		PostsCreated,
		CommentsCreated,
		PinsCleared,
		Engagements,
		NotificationsEnqueued,
	)
}

// Engagement outcomes
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)
