package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// gormStore implements Store on top of a gorm handle (db or tx)
type gormStore struct {
	db *gorm.DB
}

// NewStore creates a new store
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository                 { return NewUserRepository(s.db) }
func (s *gormStore) RefreshTokens() RefreshTokenRepository { return NewRefreshTokenRepository(s.db) }
func (s *gormStore) Seekers() SeekerRepository             { return NewSeekerRepository(s.db) }
func (s *gormStore) Companies() CompanyRepository          { return NewCompanyRepository(s.db) }
func (s *gormStore) Ratings() RatingRepository             { return NewRatingRepository(s.db) }
func (s *gormStore) RedFlags() RedFlagRepository           { return NewRedFlagRepository(s.db) }
func (s *gormStore) Bans() BanRepository                   { return NewBanRepository(s.db) }
func (s *gormStore) JobRequests() JobRequestRepository     { return NewJobRequestRepository(s.db) }
func (s *gormStore) Jobs() JobRepository                   { return NewJobRepository(s.db) }
func (s *gormStore) Applications() ApplicationRepository   { return NewApplicationRepository(s.db) }

// Transaction runs fn inside a database transaction
func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// Ping checks the underlying connection
func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// IsNotFound reports whether err is gorm's record-not-found
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicateKey reports whether err is a unique constraint violation.
// Requires gorm.Config.TranslateError.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
