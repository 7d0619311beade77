package services

import (
	"context"
	"fmt"
	"time"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/core/domain"
)

// recentFlagWindow is the lookback of the red flag counter
const recentFlagWindow = 30 * 24 * time.Hour

// DashboardService handles dashboard operations
type DashboardService struct {
	store repositories.Store
	now   func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store repositories.Store) *DashboardService {
	return &DashboardService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// Request Statistics
	PendingRequests  int64 `json:"pending_requests"`
	ApprovedRequests int64 `json:"approved_requests"`
	RejectedRequests int64 `json:"rejected_requests"`

	// Job Statistics
	OpenJobs      int64 `json:"open_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`

	// User Statistics
	TotalSeekers   int64 `json:"total_seekers"`
	TotalCompanies int64 `json:"total_companies"`

	// Moderation
	BannedSeekers  int64 `json:"banned_seekers"`
	RecentRedFlags int64 `json:"recent_red_flags"`

	// Newest pending requests
	RecentRequests []*models.JobRequest `json:"recent_requests"`
}

// GetAdminDashboard gets admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	now := s.now()
	data := &AdminDashboardData{}

	counters := []struct {
		name  string
		dst   *int64
		count func() (int64, error)
	}{
		{"pending requests", &data.PendingRequests, func() (int64, error) {
			return s.store.JobRequests().CountByStatus(ctx, string(domain.RequestPending))
		}},
		{"approved requests", &data.ApprovedRequests, func() (int64, error) {
			return s.store.JobRequests().CountByStatus(ctx, string(domain.RequestApproved))
		}},
		{"rejected requests", &data.RejectedRequests, func() (int64, error) {
			return s.store.JobRequests().CountByStatus(ctx, string(domain.RequestRejected))
		}},
		{"open jobs", &data.OpenJobs, func() (int64, error) { return s.store.Jobs().CountOpen(ctx) }},
		{"completed jobs", &data.CompletedJobs, func() (int64, error) { return s.store.Jobs().CountCompleted(ctx) }},
		{"seekers", &data.TotalSeekers, func() (int64, error) { return s.store.Seekers().Count(ctx) }},
		{"companies", &data.TotalCompanies, func() (int64, error) { return s.store.Companies().Count(ctx) }},
		{"banned seekers", &data.BannedSeekers, func() (int64, error) { return s.store.Bans().CountActive(ctx, now) }},
		{"recent red flags", &data.RecentRedFlags, func() (int64, error) {
			return s.store.RedFlags().CountSince(ctx, now.Add(-recentFlagWindow))
		}},
	}

	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		*c.dst = n
	}

	recent, _, err := s.store.JobRequests().List(ctx, string(domain.RequestPending), 0, 5)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	data.RecentRequests = recent

	return data, nil
}
