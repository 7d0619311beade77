package repositories

import (
	"context"

	"eventhire/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// seekerRepository implements SeekerRepository interface
type seekerRepository struct {
	db *gorm.DB
}

// NewSeekerRepository creates a new seeker profile repository
func NewSeekerRepository(db *gorm.DB) SeekerRepository {
	return &seekerRepository{db: db}
}

func (r *seekerRepository) Create(ctx context.Context, seeker *models.SeekerProfile) error {
	return r.db.WithContext(ctx).Create(seeker).Error
}

func (r *seekerRepository) GetByID(ctx context.Context, id string) (*models.SeekerProfile, error) {
	var seeker models.SeekerProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&seeker).Error; err != nil {
		return nil, err
	}
	return &seeker, nil
}

func (r *seekerRepository) GetByUserID(ctx context.Context, userID string) (*models.SeekerProfile, error) {
	var seeker models.SeekerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&seeker).Error; err != nil {
		return nil, err
	}
	return &seeker, nil
}

func (r *seekerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SeekerProfile{}).Count(&count).Error
	return count, err
}

// companyRepository implements CompanyRepository interface
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company profile repository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *models.CompanyProfile) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*models.CompanyProfile, error) {
	var company models.CompanyProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) GetByUserID(ctx context.Context, userID string) (*models.CompanyProfile, error) {
	var company models.CompanyProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CompanyProfile{}).Count(&count).Error
	return count, err
}
