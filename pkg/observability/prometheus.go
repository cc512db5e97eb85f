package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks exports search and scoring events as Prometheus metrics.
type PrometheusHooks struct {
	searches     *prometheus.CounterVec
	bestWidth    prometheus.Gauge
	bestScore    prometheus.Gauge
	currentScore prometheus.Gauge
	temperature  prometheus.Gauge
	improvements prometheus.Counter
	iterations   prometheus.Counter
	duration     prometheus.Histogram
	rescores     prometheus.Counter
	rescoreTime  prometheus.Histogram
	partitions   *prometheus.CounterVec
}

// NewPrometheusHooks registers the metrics with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rankwidth_searches_total",
			Help: "Number of searches started, by width parameter.",
		}, []string{"width"}),
		bestWidth: f.NewGauge(prometheus.GaugeOpts{
			Name: "rankwidth_best_width",
			Help: "Best width found by the running search.",
		}),
		bestScore: f.NewGauge(prometheus.GaugeOpts{
			Name: "rankwidth_best_score",
			Help: "Best score found by the running search.",
		}),
		currentScore: f.NewGauge(prometheus.GaugeOpts{
			Name: "rankwidth_current_score",
			Help: "Score of the current decomposition at the last cooling step.",
		}),
		temperature: f.NewGauge(prometheus.GaugeOpts{
			Name: "rankwidth_temperature",
			Help: "Current annealing temperature.",
		}),
		improvements: f.NewCounter(prometheus.CounterOpts{
			Name: "rankwidth_improvements_total",
			Help: "Number of new best scores.",
		}),
		iterations: f.NewCounter(prometheus.CounterOpts{
			Name: "rankwidth_iterations_total",
			Help: "Operator applications over all finished searches.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rankwidth_search_duration_seconds",
			Help:    "Wall time of finished searches.",
			Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
		}),
		rescores: f.NewCounter(prometheus.CounterOpts{
			Name: "rankwidth_rescores_total",
			Help: "Number of full re-scoring passes.",
		}),
		rescoreTime: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rankwidth_rescore_duration_seconds",
			Help:    "Wall time of full re-scoring passes.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		partitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rankwidth_partitions_total",
			Help: "Partitions seen by re-scoring, by outcome (skipped, hit, miss).",
		}, []string{"outcome"}),
	}
}

func (p *PrometheusHooks) OnSearchStart(_ context.Context, width string, _ int) {
	p.searches.WithLabelValues(width).Inc()
}

func (p *PrometheusHooks) OnBetterWidth(_ context.Context, width int, score int64) {
	p.bestWidth.Set(float64(width))
	p.bestScore.Set(float64(score))
}

func (p *PrometheusHooks) OnImprovement(_ context.Context, score int64) {
	p.improvements.Inc()
	p.bestScore.Set(float64(score))
}

func (p *PrometheusHooks) OnTemperature(_ context.Context, temperature float64, score int64) {
	p.temperature.Set(temperature)
	p.currentScore.Set(float64(score))
}

func (p *PrometheusHooks) OnSearchComplete(_ context.Context, bestWidth int, iterations int64, d time.Duration) {
	p.bestWidth.Set(float64(bestWidth))
	p.iterations.Add(float64(iterations))
	p.duration.Observe(d.Seconds())
}

func (p *PrometheusHooks) OnRescore(_ context.Context, skipped, hits, misses int, d time.Duration) {
	p.rescores.Inc()
	p.rescoreTime.Observe(d.Seconds())
	p.partitions.WithLabelValues("skipped").Add(float64(skipped))
	p.partitions.WithLabelValues("hit").Add(float64(hits))
	p.partitions.WithLabelValues("miss").Add(float64(misses))
}

var (
	_ SearchHooks  = (*PrometheusHooks)(nil)
	_ ScoringHooks = (*PrometheusHooks)(nil)
)
