package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auth_gateway_request_duration_seconds",
		Help:    "Duration of calls to the external auth service.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "status"})

	listingCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "post_listing_cache_lookups_total",
		Help: "Post listing cache lookups by result.",
	}, []string{"result"})
)
