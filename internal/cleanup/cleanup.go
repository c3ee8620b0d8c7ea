// Package cleanup runs the periodic sweeps over the two token tables.
// A failed sweep is logged and dropped; it never takes the process down
// and never blocks the next scheduled run.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/arslanca/portfolio/internal/repo"
)

const revokedRetention = 30 * 24 * time.Hour

type Sweeper struct {
	Repo *repo.GormRepo
	Log  *slog.Logger
}

// Start registers the three sweeps:
// hourly for expired denylist entries, nightly at 02:00 for expired
// refresh tokens, Sunday 03:00 for revoked refresh tokens past the
// 30-day retention window.
func (s *Sweeper) Start() (*cron.Cron, error) {
	c := cron.New()
	jobs := []struct {
		spec string
		run  func()
	}{
		{"0 * * * *", s.SweepExpiredRevoked},
		{"0 2 * * *", s.SweepExpiredRefresh},
		{"0 3 * * 0", s.SweepOldRevokedRefresh},
	}
	for _, j := range jobs {
		if _, err := c.AddFunc(j.spec, j.run); err != nil {
			return nil, err
		}
	}
	c.Start()
	return c, nil
}

func (s *Sweeper) SweepExpiredRevoked() {
	s.run("revoked_access_tokens", func(ctx context.Context) (int64, error) {
		return s.Repo.DeleteExpiredRevokedTokens(ctx, time.Now())
	})
}

func (s *Sweeper) SweepExpiredRefresh() {
	s.run("expired_refresh_tokens", func(ctx context.Context) (int64, error) {
		return s.Repo.DeleteExpiredRefreshTokens(ctx, time.Now())
	})
}

func (s *Sweeper) SweepOldRevokedRefresh() {
	s.run("old_revoked_refresh_tokens", func(ctx context.Context) (int64, error) {
		return s.Repo.DeleteOldRevokedRefreshTokens(ctx, time.Now().Add(-revokedRetention))
	})
}

func (s *Sweeper) run(name string, sweep func(context.Context) (int64, error)) {
	defer func() {
		if r := recover(); r != nil {
			s.Log.Error("cleanup_panic", "sweep", name, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := sweep(ctx)
	if err != nil {
		s.Log.Error("cleanup_failed", "sweep", name, "error", err)
		return
	}
	if deleted > 0 {
		s.Log.Info("cleanup_done", "sweep", name, "deleted", deleted)
	}
}
