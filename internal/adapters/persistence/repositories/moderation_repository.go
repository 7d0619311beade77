package repositories

import (
	"context"
	"time"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ============================================================
// Ratings
// ============================================================

// ratingRepository implements RatingRepository interface
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create maps a (job_id, seeker_id, company_id) unique violation to domain.ErrAlreadyRated
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Create(rating).Error
	if isDuplicateKey(err) {
		return domain.ErrAlreadyRated
	}
	return err
}

func (r *ratingRepository) Exists(ctx context.Context, jobID, seekerID, companyID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("job_id = ? AND seeker_id = ? AND company_id = ?", jobID, seekerID, companyID).
		Count(&count).Error
	return count > 0, err
}

func (r *ratingRepository) ListBySeeker(ctx context.Context, seekerID string) ([]*models.Rating, error) {
	var ratings []*models.Rating
	err := r.db.WithContext(ctx).
		Where("seeker_id = ?", seekerID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// ============================================================
// Red Flags (insert-only)
// ============================================================

// redFlagRepository implements RedFlagRepository interface
type redFlagRepository struct {
	db *gorm.DB
}

// NewRedFlagRepository creates a new red flag repository
func NewRedFlagRepository(db *gorm.DB) RedFlagRepository {
	return &redFlagRepository{db: db}
}

func (r *redFlagRepository) Create(ctx context.Context, flag *models.RedFlag) error {
	return r.db.WithContext(ctx).Create(flag).Error
}

func (r *redFlagRepository) CountBySeeker(ctx context.Context, seekerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RedFlag{}).
		Where("seeker_id = ?", seekerID).
		Count(&count).Error
	return count, err
}

func (r *redFlagRepository) ListBySeeker(ctx context.Context, seekerID string) ([]*models.RedFlag, error) {
	var flags []*models.RedFlag
	err := r.db.WithContext(ctx).
		Where("seeker_id = ?", seekerID).
		Order("created_at DESC").
		Find(&flags).Error
	return flags, err
}

func (r *redFlagRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RedFlag{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

// ============================================================
// Bans
// ============================================================

// banRepository implements BanRepository interface
type banRepository struct {
	db *gorm.DB
}

// NewBanRepository creates a new ban repository
func NewBanRepository(db *gorm.DB) BanRepository {
	return &banRepository{db: db}
}

// Upsert inserts the ban or moves banned_until of the existing row.
// Relies on the unique index on seeker_id.
func (r *banRepository) Upsert(ctx context.Context, seekerID string, bannedUntil time.Time) error {
	ban := &models.Ban{
		SeekerID:    seekerID,
		BannedUntil: bannedUntil,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "seeker_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"banned_until", "updated_at"}),
		}).
		Create(ban).Error
}

func (r *banRepository) GetBySeeker(ctx context.Context, seekerID string) (*models.Ban, error) {
	var bans []*models.Ban
	err := r.db.WithContext(ctx).
		Where("seeker_id = ?", seekerID).
		Limit(1).
		Find(&bans).Error
	if err != nil {
		return nil, err
	}
	if len(bans) == 0 {
		return nil, nil
	}
	return bans[0], nil
}

func (r *banRepository) ListActive(ctx context.Context, now time.Time) ([]*models.Ban, error) {
	var bans []*models.Ban
	err := r.db.WithContext(ctx).
		Where("banned_until > ?", now).
		Order("banned_until DESC").
		Find(&bans).Error
	return bans, err
}

func (r *banRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Ban{}).
		Where("banned_until > ?", now).
		Count(&count).Error
	return count, err
}
