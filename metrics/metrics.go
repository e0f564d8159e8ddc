// Package metrics exposes Prometheus counters for the stylist service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aura_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	ModelCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aura_model_calls_total",
			Help: "Remote model calls by provider and outcome",
		},
		[]string{"provider", "status"},
	)

	ModelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aura_model_call_duration_seconds",
			Help:    "Duration of remote model calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	RepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aura_replies_total",
			Help: "Classified model replies by kind",
		},
		[]string{"kind"},
	)

	OutfitSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aura_outfit_saves_total",
			Help: "Outfit save attempts by result",
		},
		[]string{"result"},
	)

	DroppedSuggestionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aura_outfit_dropped_suggestions_total",
			Help: "Outfit suggestions dropped because no closet item matched",
		},
	)

	RejectedSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aura_rejected_sends_total",
			Help: "Chat submissions rejected before any model call",
		},
		[]string{"reason"},
	)
)
