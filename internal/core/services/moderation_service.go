package services

import (
	"context"
	"fmt"
	"time"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/config"
	"eventhire/internal/core/domain"
	"eventhire/internal/pkg/validate"

	"go.uber.org/zap"
)

// ModerationService maintains red flags and the bans derived from them
type ModerationService struct {
	store     repositories.Store
	threshold int64
	banFor    time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewModerationService creates a new moderation service
func NewModerationService(store repositories.Store, cfg config.ModerationConfig, logger *zap.Logger) *ModerationService {
	return &ModerationService{
		store:     store,
		threshold: int64(cfg.RedFlagThreshold),
		banFor:    time.Duration(cfg.BanDays) * 24 * time.Hour,
		logger:    orNop(logger),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RedFlagInput represents a complaint against a seeker
type RedFlagInput struct {
	SeekerID string `json:"seekerId" validate:"required"`
	JobID    string `json:"jobId" validate:"required"`
	JobTitle string `json:"jobTitle"`
	Reason   string `json:"reason" validate:"required"`
}

// SeekerStats aggregates a seeker's moderation record
type SeekerStats struct {
	SeekerInfo   *models.SeekerProfile `json:"seekerInfo"`
	AvgRating    string                `json:"avgRating"`
	Ratings      []*models.Rating      `json:"ratings"`
	RedFlags     []*models.RedFlag     `json:"redFlags"`
	RedFlagCount int                   `json:"redFlagCount"`
	IsBanned     bool                  `json:"isBanned"`
	BannedUntil  *time.Time            `json:"bannedUntil"`
}

// RecordRedFlag stores the flag and, once the seeker has reached the
// threshold, bans them until now + ban period. Every flag past the
// threshold moves the ban end forward from the current moment.
// All writes happen in one transaction.
func (s *ModerationService) RecordRedFlag(ctx context.Context, actor domain.Actor, input *RedFlagInput) (*models.RedFlag, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if _, err := s.store.Seekers().GetByID(ctx, input.SeekerID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrSeekerNotFound
		}
		return nil, fmt.Errorf("get seeker: %w", err)
	}

	flag := &models.RedFlag{
		SeekerID:  input.SeekerID,
		JobID:     input.JobID,
		JobTitle:  input.JobTitle,
		Reason:    input.Reason,
		FlaggedBy: actor.UserID,
	}

	var bannedUntil *time.Time
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.RedFlags().Create(ctx, flag); err != nil {
			return fmt.Errorf("create red flag: %w", err)
		}

		count, err := tx.RedFlags().CountBySeeker(ctx, input.SeekerID)
		if err != nil {
			return fmt.Errorf("count red flags: %w", err)
		}
		if count < s.threshold {
			return nil
		}

		until := s.now().Add(s.banFor)
		if err := tx.Bans().Upsert(ctx, input.SeekerID, until); err != nil {
			return fmt.Errorf("upsert ban: %w", err)
		}
		bannedUntil = &until
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("red flag recorded",
		zap.String("seeker_id", flag.SeekerID),
		zap.String("job_id", flag.JobID),
		zap.String("flagged_by", flag.FlaggedBy),
	)
	if bannedUntil != nil {
		s.logger.Warn("seeker banned",
			zap.String("seeker_id", flag.SeekerID),
			zap.Time("banned_until", *bannedUntil),
		)
	}

	return flag, nil
}

// IsBanned reports whether the seeker has a ban ending after now.
// The ban end is returned whenever a ban row exists.
func (s *ModerationService) IsBanned(ctx context.Context, seekerID string) (bool, *time.Time, error) {
	ban, err := s.store.Bans().GetBySeeker(ctx, seekerID)
	if err != nil {
		return false, nil, fmt.Errorf("get ban: %w", err)
	}
	if ban == nil {
		return false, nil, nil
	}
	until := ban.BannedUntil
	return ban.IsActive(s.now()), &until, nil
}

// GetSeekerStats aggregates profile, ratings, red flags and ban state
func (s *ModerationService) GetSeekerStats(ctx context.Context, seekerID string) (*SeekerStats, error) {
	seeker, err := s.store.Seekers().GetByID(ctx, seekerID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrSeekerNotFound
		}
		return nil, fmt.Errorf("get seeker: %w", err)
	}

	ratings, err := s.store.Ratings().ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	flags, err := s.store.RedFlags().ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("list red flags: %w", err)
	}
	banned, until, err := s.IsBanned(ctx, seekerID)
	if err != nil {
		return nil, err
	}

	if ratings == nil {
		ratings = []*models.Rating{}
	}
	if flags == nil {
		flags = []*models.RedFlag{}
	}

	return &SeekerStats{
		SeekerInfo:   seeker,
		AvgRating:    AverageRating(ratings),
		Ratings:      ratings,
		RedFlags:     flags,
		RedFlagCount: len(flags),
		IsBanned:     banned,
		BannedUntil:  until,
	}, nil
}

// BannedSeeker is a currently active ban with the seeker's profile
type BannedSeeker struct {
	Seeker      *models.SeekerProfile `json:"seeker,omitempty"`
	SeekerID    string                `json:"seeker_id"`
	BannedUntil time.Time             `json:"banned_until"`
}

// ListBannedSeekers lists bans that are still in force
func (s *ModerationService) ListBannedSeekers(ctx context.Context) ([]*BannedSeeker, error) {
	bans, err := s.store.Bans().ListActive(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list bans: %w", err)
	}

	out := make([]*BannedSeeker, 0, len(bans))
	for _, ban := range bans {
		item := &BannedSeeker{SeekerID: ban.SeekerID, BannedUntil: ban.BannedUntil}
		// a missing profile still lists the ban
		seeker, err := s.store.Seekers().GetByID(ctx, ban.SeekerID)
		switch {
		case err == nil:
			item.Seeker = seeker
		case !repositories.IsNotFound(err):
			return nil, fmt.Errorf("get seeker %s: %w", ban.SeekerID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// AverageRating is the mean star value with one decimal, halves rounded
// up, or "0" when there are no ratings
func AverageRating(ratings []*models.Rating) string {
	if len(ratings) == 0 {
		return "0"
	}
	total := 0
	for _, r := range ratings {
		total += r.Stars
	}
	// tenths rounded half up, in integers
	n := len(ratings)
	tenths := (20*total + n) / (2 * n)
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}
