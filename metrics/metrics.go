// Package metrics exposes Prometheus instrumentation for the bidding
// engine. A Collector owns a private registry so tests can create
// independent collectors without global registration conflicts.
package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry           *prometheus.Registry
	evaluations        prometheus.Counter
	evaluationsNoBid   prometheus.Counter
	evaluationDuration prometheus.Histogram
	winsByBank         *prometheus.CounterVec
	counterOfferRaises prometheus.Counter
	offersSubmitted    prometheus.Counter
	logger             *slog.Logger
}

func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		evaluations: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "welcomebid_evaluations_total",
			Help: "Total number of bid evaluation rounds",
		}),
		evaluationsNoBid: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "welcomebid_evaluations_no_winner_total",
			Help: "Evaluation rounds that produced no eligible winning bid",
		}),
		evaluationDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "welcomebid_evaluation_duration_seconds",
			Help:    "Time taken to run one bid evaluation round",
			Buckets: prometheus.DefBuckets,
		}),
		winsByBank: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "welcomebid_wins_total",
			Help: "Winning bids grouped by bank",
		}, []string{"bank"}),
		counterOfferRaises: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "welcomebid_counter_offer_raises_total",
			Help: "Simulated competitor raises in response to user offers",
		}),
		offersSubmitted: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "welcomebid_offers_submitted_total",
			Help: "Offer acceptances submitted by customers",
		}),
		logger: logger,
	}
}

// RecordEvaluation observes one evaluation round. An empty winnerBank
// counts as a round with no winner.
func (c *Collector) RecordEvaluation(duration time.Duration, winnerBank string) {
	c.evaluations.Inc()
	c.evaluationDuration.Observe(duration.Seconds())
	if winnerBank == "" {
		c.evaluationsNoBid.Inc()
		return
	}
	c.winsByBank.WithLabelValues(winnerBank).Inc()
}

func (c *Collector) RecordCounterOfferRaises(raises int) {
	c.counterOfferRaises.Add(float64(raises))
}

func (c *Collector) RecordOfferSubmitted() {
	c.offersSubmitted.Inc()
}

// Handler serves the collector's registry in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
