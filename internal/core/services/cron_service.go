package services

import (
	"context"
	"fmt"
	"time"

	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronService runs the periodic maintenance jobs
type CronService struct {
	cron    *cron.Cron
	jobs    *JobService
	store   repositories.Store
	cfg     config.SchedulerConfig
	logger  *zap.Logger
	now     func() time.Time
	timeout time.Duration
}

// NewCronService creates a new cron service
func NewCronService(jobs *JobService, store repositories.Store, cfg config.SchedulerConfig, logger *zap.Logger) *CronService {
	return &CronService{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		jobs:    jobs,
		store:   store,
		cfg:     cfg,
		logger:  orNop(logger),
		now:     func() time.Time { return time.Now().UTC() },
		timeout: 5 * time.Minute,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.JobCompletionSpec, s.completeFinishedJobs); err != nil {
		return fmt.Errorf("schedule job completion %q: %w", s.cfg.JobCompletionSpec, err)
	}
	if _, err := s.cron.AddFunc(s.cfg.TokenCleanupSpec, s.cleanupRefreshTokens); err != nil {
		return fmt.Errorf("schedule token cleanup %q: %w", s.cfg.TokenCleanupSpec, err)
	}

	s.cron.Start()
	s.logger.Info("cron started",
		zap.String("job_completion", s.cfg.JobCompletionSpec),
		zap.String("token_cleanup", s.cfg.TokenCleanupSpec),
	)
	return nil
}

// Stop waits for running jobs and stops the scheduler
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("cron stopped")
}

func (s *CronService) completeFinishedJobs() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.jobs.CompleteFinished(ctx, s.now()); err != nil {
		s.logger.Error("job completion failed", zap.Error(err))
	}
}

func (s *CronService) cleanupRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.store.RefreshTokens().DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("refresh token cleanup failed", zap.Error(err))
		return
	}
	s.logger.Info("expired refresh tokens deleted", zap.Int64("count", n))
}
