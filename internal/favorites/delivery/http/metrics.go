package http

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/starwars-blog/internal/favorites/domain"
	"github.com/tair/starwars-blog/pkg/logger"
)

// Metrics holds the favorites business metrics
type Metrics struct {
	added   *prometheus.CounterVec
	removed *prometheus.CounterVec
}

// NewMetrics creates the favorites metrics and registers them with reg.
// The total gauge is read from the store on every scrape.
func NewMetrics(reg prometheus.Registerer, repo domain.FavoritesRepository) *Metrics {
	m := &Metrics{
		added: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_favorites_added_total",
				Help: "Total number of favorites added",
			},
			[]string{"kind"},
		),
		removed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_favorites_removed_total",
				Help: "Total number of favorites removed",
			},
			[]string{"kind"},
		),
	}

	total := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "blog_favorites",
			Help: "Number of favorite entries stored across all users",
		},
		func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			count, err := repo.CountEntries(ctx)
			if err != nil {
				logger.Logger.Warn().Err(err).Msg("Failed to count favorites")
				return 0
			}
			return float64(count)
		},
	)

	reg.MustRegister(m.added, m.removed, total)
	return m
}

func (m *Metrics) favoriteAdded(kind string) {
	m.added.WithLabelValues(kind).Inc()
}

func (m *Metrics) favoriteRemoved(kind string) {
	m.removed.WithLabelValues(kind).Inc()
}
