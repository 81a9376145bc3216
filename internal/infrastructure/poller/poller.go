package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/perfhub/performance-system/internal/api/metrics"
	"github.com/perfhub/performance-system/internal/core/ports"
)

const defaultInterval = 30 * time.Second

// Poller refreshes the dashboard snapshot on a fixed interval. Ticks never
// overlap: a slow refresh simply delays the next one.
type Poller struct {
	stats    ports.StatsService
	interval time.Duration
	log      zerolog.Logger
}

// New creates a Poller. If interval <= 0, defaultInterval is used.
func New(stats ports.StatsService, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{stats: stats, interval: interval, log: log}
}

// Start runs the refresh loop until ctx is cancelled. It refreshes once
// immediately so the cache is warm before the first tick.
func (p *Poller) Start(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("snapshot poller stopped")
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if err := p.stats.Refresh(ctx); err != nil {
		metrics.SnapshotRefreshFailures.Inc()
		p.log.Error().Err(err).Msg("snapshot refresh failed")
	}
}
