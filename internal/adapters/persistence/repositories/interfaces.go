package repositories

import (
	"context"
	"time"

	"eventhire/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id string) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SeekerRepository defines seeker profile repository interface
type SeekerRepository interface {
	Create(ctx context.Context, seeker *models.SeekerProfile) error
	GetByID(ctx context.Context, id string) (*models.SeekerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*models.SeekerProfile, error)
	Count(ctx context.Context) (int64, error)
}

// CompanyRepository defines company profile repository interface
type CompanyRepository interface {
	Create(ctx context.Context, company *models.CompanyProfile) error
	GetByID(ctx context.Context, id string) (*models.CompanyProfile, error)
	GetByUserID(ctx context.Context, userID string) (*models.CompanyProfile, error)
	Count(ctx context.Context) (int64, error)
}

// RatingRepository defines rating repository interface
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	Exists(ctx context.Context, jobID, seekerID, companyID string) (bool, error)
	ListBySeeker(ctx context.Context, seekerID string) ([]*models.Rating, error)
}

// RedFlagRepository defines red flag repository interface.
// Red flags are insert-only.
type RedFlagRepository interface {
	Create(ctx context.Context, flag *models.RedFlag) error
	CountBySeeker(ctx context.Context, seekerID string) (int64, error)
	ListBySeeker(ctx context.Context, seekerID string) ([]*models.RedFlag, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// BanRepository defines ban repository interface
type BanRepository interface {
	// Upsert sets banned_until for the seeker, inserting the row if absent
	Upsert(ctx context.Context, seekerID string, bannedUntil time.Time) error
	// GetBySeeker returns nil, nil when the seeker has no ban row
	GetBySeeker(ctx context.Context, seekerID string) (*models.Ban, error)
	ListActive(ctx context.Context, now time.Time) ([]*models.Ban, error)
	CountActive(ctx context.Context, now time.Time) (int64, error)
}

// JobRequestRepository defines job request repository interface
type JobRequestRepository interface {
	Create(ctx context.Context, request *models.JobRequest) error
	GetByID(ctx context.Context, id string) (*models.JobRequest, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	ListByCompany(ctx context.Context, companyID string) ([]*models.JobRequest, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.JobRequest, int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// JobRepository defines job repository interface
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	ListOpen(ctx context.Context, offset, limit int) ([]*models.Job, int64, error)
	ListByCompany(ctx context.Context, companyID string) ([]*models.Job, error)
	ListByRequest(ctx context.Context, requestID string) ([]*models.Job, error)
	CompleteEndedBefore(ctx context.Context, date string) (int64, error)
	CountOpen(ctx context.Context) (int64, error)
	CountCompleted(ctx context.Context) (int64, error)
}

// ApplicationRepository defines application repository interface
type ApplicationRepository interface {
	// Create maps a (job_id, seeker_id) unique violation to domain.ErrAlreadyApplied
	Create(ctx context.Context, application *models.Application) error
	Exists(ctx context.Context, jobID, seekerID string) (bool, error)
	ListBySeeker(ctx context.Context, seekerID string) ([]*models.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]*models.Application, error)
}

// Store groups every repository over one connection or transaction
type Store interface {
	Users() UserRepository
	RefreshTokens() RefreshTokenRepository
	Seekers() SeekerRepository
	Companies() CompanyRepository
	Ratings() RatingRepository
	RedFlags() RedFlagRepository
	Bans() BanRepository
	JobRequests() JobRequestRepository
	Jobs() JobRepository
	Applications() ApplicationRepository

	// Transaction runs fn against a Store bound to a single transaction.
	// A non-nil error from fn rolls every write back.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// Ping checks connectivity
	Ping(ctx context.Context) error
}
