// Package metrics provides a centralized Prometheus metrics registry for the
// betting engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "elo_better",
		Name:      "analyses_total",
		Help:      "Total number of game analyses performed",
	}, []string{"sport"})
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "elo_better",
		Name:      "recommendations_total",
		Help:      "Total number of analyses that cleared the betting gate",
	}, []string{"sport"})
	BetsPlacedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "elo_better",
		Name:      "bets_placed_total",
		Help:      "Total number of bets placed",
	}, []string{"sport"})
	BetsSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "elo_better",
		Name:      "bets_settled_total",
		Help:      "Total number of bets settled",
	}, []string{"sport", "result"})
	ResultsSyncedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "elo_better",
		Name:      "results_synced_total",
		Help:      "Total number of final game results applied to ratings",
	}, []string{"sport"})
)

// Gauge metrics
var (
	CurrentBankroll = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "elo_better",
		Name:      "current_bankroll",
		Help:      "Current bankroll in currency units",
	}, []string{"sport"})
	TrackedTeams = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "elo_better",
		Name:      "tracked_teams",
		Help:      "Number of teams with a rating in the store",
	}, []string{"sport"})
)

// Histogram metrics
var (
	ResultsSyncDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "elo_better",
		Name:      "results_sync_duration_seconds",
		Help:      "Duration of results sync runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(AnalysesTotal)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(BetsPlacedTotal)
		registry.MustRegister(BetsSettledTotal)
		registry.MustRegister(ResultsSyncedTotal)

		registry.MustRegister(CurrentBankroll)
		registry.MustRegister(TrackedTeams)

		registry.MustRegister(ResultsSyncDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAnalysis records a completed game analysis.
func RecordAnalysis(sport string, recommended bool) {
	AnalysesTotal.WithLabelValues(sport).Inc()
	if recommended {
		RecommendationsTotal.WithLabelValues(sport).Inc()
	}
}

// RecordBetPlaced records a bet placement event.
func RecordBetPlaced(sport string) {
	BetsPlacedTotal.WithLabelValues(sport).Inc()
}

// RecordBetSettled records a bet settlement event.
func RecordBetSettled(sport, result string) {
	BetsSettledTotal.WithLabelValues(sport, result).Inc()
}

// RecordResultSynced records a result applied to the ratings store.
func RecordResultSynced(sport string) {
	ResultsSyncedTotal.WithLabelValues(sport).Inc()
}

// UpdateBankroll updates the current bankroll gauge.
func UpdateBankroll(sport string, amount float64) {
	CurrentBankroll.WithLabelValues(sport).Set(amount)
}

// UpdateTrackedTeams updates the tracked teams gauge.
func UpdateTrackedTeams(sport string, count int) {
	TrackedTeams.WithLabelValues(sport).Set(float64(count))
}

// RecordSyncDuration records results sync duration.
func RecordSyncDuration(durationSeconds float64) {
	ResultsSyncDuration.Observe(durationSeconds)
}
