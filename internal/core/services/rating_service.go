package services

import (
	"context"
	"errors"
	"fmt"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/core/domain"
	"eventhire/internal/pkg/validate"

	"go.uber.org/zap"
)

// RatingService records companies' ratings of seekers
type RatingService struct {
	store  repositories.Store
	logger *zap.Logger
}

// NewRatingService creates a new rating service
func NewRatingService(store repositories.Store, logger *zap.Logger) *RatingService {
	return &RatingService{store: store, logger: orNop(logger)}
}

// RateInput represents a star rating for a seeker on a job
type RateInput struct {
	SeekerID string `json:"seekerId" validate:"required"`
	JobID    string `json:"jobId" validate:"required"`
	Stars    int    `json:"stars" validate:"gte=1,lte=5"`
	Comment  string `json:"comment" validate:"max=1000"`
}

// Rate stores one rating per (job, seeker, company)
func (s *RatingService) Rate(ctx context.Context, companyID string, input *RateInput) (*models.Rating, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if _, err := s.store.Seekers().GetByID(ctx, input.SeekerID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrSeekerNotFound
		}
		return nil, fmt.Errorf("get seeker: %w", err)
	}
	job, err := getJob(ctx, s.store, input.JobID)
	if err != nil {
		return nil, err
	}
	if job.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	exists, err := s.store.Ratings().Exists(ctx, input.JobID, input.SeekerID, companyID)
	if err != nil {
		return nil, fmt.Errorf("check rating: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyRated
	}

	rating := &models.Rating{
		SeekerID:  input.SeekerID,
		CompanyID: companyID,
		JobID:     input.JobID,
		Stars:     input.Stars,
		Comment:   input.Comment,
	}
	if err := s.store.Ratings().Create(ctx, rating); err != nil {
		if errors.Is(err, domain.ErrAlreadyRated) {
			return nil, domain.ErrAlreadyRated
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}

	s.logger.Info("seeker rated",
		zap.String("seeker_id", rating.SeekerID),
		zap.String("job_id", rating.JobID),
		zap.Int("stars", rating.Stars),
	)
	return rating, nil
}
