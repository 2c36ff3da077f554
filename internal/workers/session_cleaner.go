// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/store"
)

// sessionCleaner periodically deletes expired session records. Expired
// tokens are already rejected at validation time, so the cleaner only
// reclaims storage; a missed tick never lets a stale token through.
type sessionCleaner struct {
	sessions store.SessionRepository
	interval time.Duration
	logger   *logger.Logger
}

func newSessionCleaner(sessions store.SessionRepository, interval time.Duration, logger *logger.Logger) *sessionCleaner {
	return &sessionCleaner{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

func (c *sessionCleaner) Run(ctx context.Context) {
	c.logger.Info().Dur("interval", c.interval).Msg("session cleaner started")

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("session cleaner stopped")
			return
		case now := <-ticker.C:
			c.purge(ctx, now)
		}
	}
}

func (c *sessionCleaner) purge(ctx context.Context, now time.Time) {
	purged, err := c.sessions.PurgeExpired(ctx, now)
	if err != nil {
		c.logger.Err(err).Msg("session purge failed")
		return
	}

	if purged > 0 {
		c.logger.Info().Int64("purged", purged).Msg("expired sessions removed")
	}
}
