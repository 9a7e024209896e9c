package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	discoveryRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_discovery_requests_total",
			Help: "Total number of discovery feed requests",
		},
	)

	discoveryCardsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_discovery_cards_returned",
			Help:    "Number of cards returned per discovery page",
			Buckets: prometheus.LinearBuckets(0, 5, 11),
		},
	)

	likesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_likes_total",
			Help: "Total number of likes recorded",
		},
	)

	matchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_matches_total",
			Help: "Total number of mutual matches created",
		},
	)
)

func RecordDiscoveryPage(cards int) {
	discoveryRequestsTotal.Inc()
	discoveryCardsReturned.Observe(float64(cards))
}

func RecordLike() {
	likesTotal.Inc()
}

func RecordMatch() {
	matchesTotal.Inc()
}
