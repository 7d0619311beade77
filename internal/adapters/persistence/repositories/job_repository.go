package repositories

import (
	"context"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Job Requests
// ============================================================

// jobRequestRepository implements JobRequestRepository interface
type jobRequestRepository struct {
	db *gorm.DB
}

// NewJobRequestRepository creates a new job request repository
func NewJobRequestRepository(db *gorm.DB) JobRequestRepository {
	return &jobRequestRepository{db: db}
}

func (r *jobRequestRepository) Create(ctx context.Context, request *models.JobRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *jobRequestRepository) GetByID(ctx context.Context, id string) (*models.JobRequest, error) {
	var request models.JobRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *jobRequestRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.JobRequest{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *jobRequestRepository) ListByCompany(ctx context.Context, companyID string) ([]*models.JobRequest, error) {
	var requests []*models.JobRequest
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// List lists requests, optionally filtered by status, with pagination
func (r *jobRequestRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.JobRequest, int64, error) {
	var requests []*models.JobRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.JobRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *jobRequestRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JobRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// ============================================================
// Jobs
// ============================================================

// jobRepository implements JobRepository interface
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ListOpen lists seeker-facing jobs (not archived, not completed)
func (r *jobRepository) ListOpen(ctx context.Context, offset, limit int) ([]*models.Job, int64, error) {
	var jobs []*models.Job
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("archived = ? AND completed = ?", false, false)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepository) ListByCompany(ctx context.Context, companyID string) ([]*models.Job, error) {
	var jobs []*models.Job
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListByRequest(ctx context.Context, requestID string) ([]*models.Job, error) {
	var jobs []*models.Job
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&jobs).Error
	return jobs, err
}

// CompleteEndedBefore marks jobs whose end_date (YYYY-MM-DD) is before date as completed
func (r *jobRepository) CompleteEndedBefore(ctx context.Context, date string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("completed = ? AND end_date <> '' AND end_date < ?", false, date).
		Update("completed", true)
	return result.RowsAffected, result.Error
}

func (r *jobRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("archived = ? AND completed = ?", false, false).
		Count(&count).Error
	return count, err
}

func (r *jobRepository) CountCompleted(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("completed = ?", true).
		Count(&count).Error
	return count, err
}

// ============================================================
// Applications
// ============================================================

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	err := r.db.WithContext(ctx).Create(application).Error
	if isDuplicateKey(err) {
		return domain.ErrAlreadyApplied
	}
	return err
}

func (r *applicationRepository) Exists(ctx context.Context, jobID, seekerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("job_id = ? AND seeker_id = ?", jobID, seekerID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepository) ListBySeeker(ctx context.Context, seekerID string) ([]*models.Application, error) {
	var applications []*models.Application
	err := r.db.WithContext(ctx).
		Where("seeker_id = ?", seekerID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string) ([]*models.Application, error) {
	var applications []*models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&applications).Error
	return applications, err
}
