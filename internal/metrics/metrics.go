package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BoostsApplied counts boosts credited to the ledger by pack type
	BoostsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "race_boosts_applied_total",
			Help: "Total number of boosts applied",
		},
		[]string{"pack_type"},
	)

	// DuplicateOperations counts idempotent replays that were rejected
	DuplicateOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "race_duplicate_operations_total",
			Help: "Total number of duplicate operations rejected by idempotency guards",
		},
		[]string{"operation"},
	)

	// LeaderboardComputations counts leaderboard computations by timeframe
	LeaderboardComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "race_leaderboard_computations_total",
			Help: "Total number of leaderboard computations",
		},
		[]string{"timeframe"},
	)

	// WeeksResolved counts weeks resolved to a winner
	WeeksResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "race_weeks_resolved_total",
			Help: "Total number of competition weeks resolved",
		},
	)

	// PromotionsScheduled counts cross promotions booked by tier
	PromotionsScheduled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "race_promotions_scheduled_total",
			Help: "Total number of cross promotions scheduled",
		},
		[]string{"tier"},
	)

	// AnnouncementsProcessed counts announcement sweep outcomes
	AnnouncementsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "race_announcements_processed_total",
			Help: "Total number of social announcements processed",
		},
		[]string{"platform", "status"},
	)

	// DispatchDuration tracks external sender call time
	DispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "race_dispatch_duration_seconds",
			Help:    "External dispatch call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"platform"},
	)

	// ErrorsTotal counts errors by type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "race_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)
