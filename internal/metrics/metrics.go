package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/ChizhovVadim/nntune/internal/domain"
)

type Metrics struct {
	registry      *prometheus.Registry
	iterations    prometheus.Counter
	games         *prometheus.CounterVec
	fitness       prometheus.Gauge
	bestLoss      prometheus.Gauge
	matchDuration prometheus.Histogram
	checkpoints   prometheus.Counter
}

func New() *Metrics {
	var m = &Metrics{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nntune_iterations_total",
			Help: "Candidates evaluated and told to the optimizer.",
		}),
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nntune_games_total",
			Help: "Games played by the tuned engine, by result.",
		}, []string{"result"}),
		fitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nntune_fitness",
			Help: "Fitness of the last evaluated candidate.",
		}),
		bestLoss: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nntune_recommendation_loss",
			Help: "Estimated loss of the last checkpointed recommendation.",
		}),
		matchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nntune_match_duration_seconds",
			Help:    "Wall time of one match including the network patch.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		checkpoints: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nntune_checkpoints_total",
			Help: "Snapshots written.",
		}),
	}
	m.registry.MustRegister(m.iterations, m.games, m.fitness, m.bestLoss,
		m.matchDuration, m.checkpoints)
	return m
}

func (m *Metrics) ObserveEvaluation(outcome domain.MatchOutcome, fitness float64, duration time.Duration) {
	m.iterations.Inc()
	m.games.WithLabelValues("win").Add(float64(outcome.Wins))
	m.games.WithLabelValues("loss").Add(float64(outcome.Losses))
	m.games.WithLabelValues("draw").Add(float64(outcome.Draws))
	m.fitness.Set(fitness)
	m.matchDuration.Observe(duration.Seconds())
}

func (m *Metrics) ObserveCheckpoint(loss float64) {
	m.checkpoints.Inc()
	m.bestLoss.Set(loss)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	var mux = http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	var server = &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		var shutdownCtx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	log.Info().Str("addr", addr).Msg("serving metrics")
	var err = server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
