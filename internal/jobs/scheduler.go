package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"diamonddesk/api/internal/config"
)

type sessionCounter interface {
	CountActiveSessions(ctx context.Context) (int64, error)
}

type calculationCounter interface {
	CountCalculationsSince(ctx context.Context, since time.Time) (int64, error)
}

// Scheduler periodically logs store usage: how many sessions are live and how
// many quotes were priced in the last day. Read-only; it never mutates rows.
type Scheduler struct {
	cron         *cron.Cron
	sessions     sessionCounter
	calculations calculationCounter
	cfg          config.JobsConfig
	log          zerolog.Logger
}

func NewScheduler(sessions sessionCounter, calculations calculationCounter, cfg config.JobsConfig, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithSeconds()),
		sessions:     sessions,
		calculations: calculations,
		cfg:          cfg,
		log:          log,
	}
}

func (s *Scheduler) Start() error {
	if !s.cfg.UsageReportEnabled {
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.UsageReportSchedule, s.reportUsage); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for any in-flight report to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) reportUsage() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	active, err := s.sessions.CountActiveSessions(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("count active sessions failed")
		return
	}

	calculated, err := s.calculations.CountCalculationsSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		s.log.Error().Err(err).Msg("count calculations failed")
		return
	}

	s.log.Info().
		Int64("active_sessions", active).
		Int64("calculations_24h", calculated).
		Msg("usage report")
}
