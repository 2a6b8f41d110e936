package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CouriersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "couriertrack_couriers_created_total",
		Help: "Total number of couriers successfully created.",
	})

	CouriersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "couriertrack_couriers_deleted_total",
		Help: "Total number of couriers deleted together with their logs.",
	})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "couriertrack_status_transitions_total",
		Help: "Total number of committed courier status transitions.",
	},
		[]string{"old_status", "new_status"},
	)

	CommentsAddedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "couriertrack_comments_added_total",
		Help: "Total number of comments added, by author kind.",
	},
		[]string{"author"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "couriertrack_operation_errors_total",
		Help: "Total number of storage errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	EventPublishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "couriertrack_event_publish_failures_total",
		Help: "Total number of status events that could not be published.",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "couriertrack_http_requests_total",
		Help: "Total number of HTTP requests.",
	},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "couriertrack_http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "path", "status"},
	)
)
