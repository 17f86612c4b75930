package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
)

// Scheduler triggers gather runs on a cron schedule. A tick that lands
// while a run is still in flight is a no-op because StartGather refuses
// concurrent runs.
type Scheduler struct {
	gather interfaces.GatherService
	cron   *cron.Cron
	logger arbor.ILogger
}

// NewScheduler creates a gather scheduler
func NewScheduler(gather interfaces.GatherService, logger arbor.ILogger) *Scheduler {
	return &Scheduler{
		gather: gather,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}
}

// Start begins scheduled gathering
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		// Default: every 12 hours
		schedule = "0 0 */12 * * *"
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.runGather()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", schedule).
		Msg("Gather scheduler started")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("Gather scheduler stopped")
}

func (s *Scheduler) runGather() {
	jobID, started, err := s.gather.StartGather(context.Background())
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled gather failed to start")
		return
	}
	if !started {
		s.logger.Info().Str("job_id", jobID).Msg("Scheduled gather skipped, run already in progress")
		return
	}
	s.logger.Info().Str("job_id", jobID).Msg("Scheduled gather started")
}
