package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignID fills an empty primary key with a new UUID
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// ============================================================
// Auth & Profile Tables
// ============================================================

// User represents users table
type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:150;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'SEEKER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// UserResponse DTO
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	ProfileID string    `json:"profile_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	UserID    string     `gorm:"size:36;index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	assignID(&rt.ID)
	return nil
}

func (rt *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(rt.ExpiresAt)
}

// SeekerProfile represents seeker_profiles table
type SeekerProfile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	FullName  string    `gorm:"size:150;not null" json:"full_name"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Email     string    `gorm:"size:150" json:"email"`
	City      string    `gorm:"size:100" json:"city"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SeekerProfile) TableName() string {
	return "seeker_profiles"
}

func (p *SeekerProfile) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// CompanyProfile represents company_profiles table
type CompanyProfile struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	CompanyName string    `gorm:"size:150;not null" json:"company_name"`
	Email       string    `gorm:"size:150" json:"email"`
	Phone       string    `gorm:"size:30" json:"phone"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CompanyProfile) TableName() string {
	return "company_profiles"
}

func (p *CompanyProfile) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// ============================================================
// Moderation Tables
// ============================================================

// Rating is a company's star rating of a seeker for one job
type Rating struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SeekerID  string    `gorm:"size:36;not null;uniqueIndex:idx_ratings_job_seeker_company" json:"seeker_id"`
	CompanyID string    `gorm:"size:36;not null;uniqueIndex:idx_ratings_job_seeker_company" json:"company_id"`
	JobID     string    `gorm:"size:36;not null;uniqueIndex:idx_ratings_job_seeker_company" json:"job_id"`
	Stars     int       `gorm:"not null" json:"stars"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// RedFlag is an immutable complaint against a seeker for a job
type RedFlag struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SeekerID  string    `gorm:"size:36;not null;index" json:"seeker_id"`
	JobID     string    `gorm:"size:36;not null" json:"job_id"`
	JobTitle  string    `gorm:"size:200" json:"job_title"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`
	FlaggedBy string    `gorm:"size:36" json:"flagged_by"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (RedFlag) TableName() string {
	return "red_flags"
}

func (f *RedFlag) BeforeCreate(tx *gorm.DB) error {
	assignID(&f.ID)
	return nil
}

// Ban holds at most one row per seeker; it lapses when BannedUntil passes
type Ban struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	SeekerID    string    `gorm:"size:36;not null;uniqueIndex" json:"seeker_id"`
	BannedUntil time.Time `gorm:"not null" json:"banned_until"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Ban) TableName() string {
	return "bans"
}

func (b *Ban) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

// IsActive reports whether the ban is still in force at now
func (b *Ban) IsActive(now time.Time) bool {
	return b.BannedUntil.After(now)
}

// ============================================================
// Job Tables
// ============================================================

// JobRequest is a company's proposal awaiting admin review
type JobRequest struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	CompanyID       string    `gorm:"size:36;not null;index" json:"company_id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	EventType       string    `gorm:"size:100" json:"event_type"`
	Location        string    `gorm:"size:255" json:"location"`
	StartDate       string    `gorm:"size:10" json:"start_date"`
	EndDate         string    `gorm:"size:10" json:"end_date"`
	StartTime       string    `gorm:"size:5" json:"start_time"`
	EndTime         string    `gorm:"size:5" json:"end_time"`
	HelpersNeeded   int       `gorm:"not null;default:1" json:"helpers_needed"`
	Payment         string    `gorm:"size:100" json:"payment"`
	Description     string    `gorm:"type:text" json:"description"`
	ContactPhone    string    `gorm:"size:30" json:"contact_phone"`
	Status          string    `gorm:"size:20;default:'pending';index" json:"status"`
	RejectionReason *string   `gorm:"type:text" json:"rejection_reason"`
	ApprovedJobID   *string   `gorm:"size:36" json:"approved_job_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (JobRequest) TableName() string {
	return "job_requests"
}

func (r *JobRequest) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// Job is a published opening derived from an approved JobRequest
type Job struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	RequestID     string    `gorm:"size:36;index" json:"request_id"`
	CompanyID     string    `gorm:"size:36;not null;index" json:"company_id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	EventType     string    `gorm:"size:100" json:"event_type"`
	Location      string    `gorm:"size:255" json:"location"`
	StartDate     string    `gorm:"size:10" json:"start_date"`
	EndDate       string    `gorm:"size:10;index" json:"end_date"`
	StartTime     string    `gorm:"size:5" json:"start_time"`
	EndTime       string    `gorm:"size:5" json:"end_time"`
	HelpersNeeded int       `gorm:"not null;default:1" json:"helpers_needed"`
	Payment       string    `gorm:"size:100" json:"payment"`
	Description   string    `gorm:"type:text" json:"description"`
	ContactPhone  string    `gorm:"size:30" json:"contact_phone"`
	PostedBy      string    `gorm:"size:36" json:"posted_by"`
	Completed     bool      `gorm:"default:false;index" json:"completed"`
	Archived      bool      `gorm:"default:false;index" json:"archived"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	assignID(&j.ID)
	return nil
}

// IsOpen reports whether seekers may still apply
func (j *Job) IsOpen() bool {
	return !j.Completed && !j.Archived
}

// Application is a seeker's application to a job; one per (job, seeker)
type Application struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	JobID     string    `gorm:"size:36;not null;uniqueIndex:idx_applications_job_seeker" json:"job_id"`
	SeekerID  string    `gorm:"size:36;not null;uniqueIndex:idx_applications_job_seeker;index" json:"seeker_id"`
	Status    string    `gorm:"size:20;default:'applied'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Application) TableName() string {
	return "applications"
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&SeekerProfile{},
		&CompanyProfile{},
		&Rating{},
		&RedFlag{},
		&Ban{},
		&JobRequest{},
		&Job{},
		&Application{},
	)
}
