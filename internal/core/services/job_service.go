package services

import (
	"context"
	"fmt"
	"time"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/core/domain"
	"eventhire/internal/pkg/pagination"

	"go.uber.org/zap"
)

// JobService handles published jobs
type JobService struct {
	store  repositories.Store
	logger *zap.Logger
}

// NewJobService creates a new job service
func NewJobService(store repositories.Store, logger *zap.Logger) *JobService {
	return &JobService{store: store, logger: orNop(logger)}
}

// JobListOutput represents a page of jobs
type JobListOutput struct {
	Jobs []*models.Job    `json:"jobs"`
	Meta *pagination.Meta `json:"meta"`
}

// ListOpen lists jobs seekers can still apply to, newest first
func (s *JobService) ListOpen(ctx context.Context, params *pagination.Params) (*JobListOutput, error) {
	jobs, total, err := s.store.Jobs().ListOpen(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list open jobs: %w", err)
	}
	return &JobListOutput{Jobs: jobs, Meta: pagination.GetMeta(params, total)}, nil
}

// GetByID gets a job by ID
func (s *JobService) GetByID(ctx context.Context, id string) (*models.Job, error) {
	return getJob(ctx, s.store, id)
}

// ListByCompany lists every job of a company, including closed ones
func (s *JobService) ListByCompany(ctx context.Context, companyID string) ([]*models.Job, error) {
	return s.store.Jobs().ListByCompany(ctx, companyID)
}

// Archive hides the job from seeker listings
func (s *JobService) Archive(ctx context.Context, id string) (*models.Job, error) {
	return s.setFlag(ctx, id, "archived")
}

// MarkCompleted closes the job once the event is over
func (s *JobService) MarkCompleted(ctx context.Context, id string) (*models.Job, error) {
	return s.setFlag(ctx, id, "completed")
}

func (s *JobService) setFlag(ctx context.Context, id, column string) (*models.Job, error) {
	if _, err := getJob(ctx, s.store, id); err != nil {
		return nil, err
	}
	if err := s.store.Jobs().Update(ctx, id, map[string]interface{}{column: true}); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	s.logger.Info("job updated", zap.String("job_id", id), zap.String("set", column))
	return getJob(ctx, s.store, id)
}

// CompleteFinished marks every job whose end date is before today as
// completed and returns how many changed
func (s *JobService) CompleteFinished(ctx context.Context, today time.Time) (int64, error) {
	n, err := s.store.Jobs().CompleteEndedBefore(ctx, today.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("complete finished jobs: %w", err)
	}
	if n > 0 {
		s.logger.Info("finished jobs completed", zap.Int64("count", n))
	}
	return n, nil
}

func getJob(ctx context.Context, store repositories.Store, id string) (*models.Job, error) {
	job, err := store.Jobs().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}
