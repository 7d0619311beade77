package services

import (
	"context"
	"errors"
	"fmt"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/core/domain"

	"go.uber.org/zap"
)

// ApplicationService admits seekers to jobs
type ApplicationService struct {
	store      repositories.Store
	moderation *ModerationService
	logger     *zap.Logger
}

// NewApplicationService creates a new application service
func NewApplicationService(store repositories.Store, moderation *ModerationService, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		store:      store,
		moderation: moderation,
		logger:     orNop(logger),
	}
}

// Apply creates the seeker's application after the admission checks:
// job open, seeker not banned, not applied before. The unique index on
// (job_id, seeker_id) settles concurrent duplicates.
func (s *ApplicationService) Apply(ctx context.Context, seekerID, jobID string) (*models.Application, error) {
	job, err := getJob(ctx, s.store, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOpen() {
		return nil, domain.ErrJobClosed
	}

	banned, until, err := s.moderation.IsBanned(ctx, seekerID)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, &domain.BannedError{Until: *until}
	}

	exists, err := s.store.Applications().Exists(ctx, jobID, seekerID)
	if err != nil {
		return nil, fmt.Errorf("check application: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyApplied
	}

	application := &models.Application{
		JobID:    jobID,
		SeekerID: seekerID,
		Status:   domain.ApplicationApplied,
	}
	if err := s.store.Applications().Create(ctx, application); err != nil {
		if errors.Is(err, domain.ErrAlreadyApplied) {
			return nil, err
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.logger.Info("application created",
		zap.String("job_id", jobID),
		zap.String("seeker_id", seekerID),
	)
	return application, nil
}

// ListMine lists the seeker's applications
func (s *ApplicationService) ListMine(ctx context.Context, seekerID string) ([]*models.Application, error) {
	return s.store.Applications().ListBySeeker(ctx, seekerID)
}

// ListForJob lists applications to a job. Companies only see their own jobs.
func (s *ApplicationService) ListForJob(ctx context.Context, actor domain.Actor, jobID string) ([]*models.Application, error) {
	job, err := getJob(ctx, s.store, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && job.CompanyID != actor.ProfileID {
		return nil, domain.ErrForbidden
	}
	return s.store.Applications().ListByJob(ctx, jobID)
}
