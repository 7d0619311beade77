package services

import (
	"context"
	"fmt"
	"strings"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/config"
	"eventhire/internal/core/domain"
	"eventhire/internal/pkg/pagination"
	"eventhire/internal/pkg/validate"

	"go.uber.org/zap"
)

// JobRequestService moves job requests through pending -> approved | rejected
type JobRequestService struct {
	store             repositories.Store
	notifier          Notifier
	allowRetransition bool
	logger            *zap.Logger
}

// NewJobRequestService creates a new job request service
func NewJobRequestService(store repositories.Store, notifier Notifier, cfg config.WorkflowConfig, logger *zap.Logger) *JobRequestService {
	return &JobRequestService{
		store:             store,
		notifier:          notifier,
		allowRetransition: cfg.AllowRetransition,
		logger:            orNop(logger),
	}
}

// SubmitJobRequestInput represents a company's job proposal
type SubmitJobRequestInput struct {
	Title         string `json:"title" validate:"required,max=200"`
	EventType     string `json:"event_type" validate:"required,max=100"`
	Location      string `json:"location" validate:"required,max=255"`
	StartDate     string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" validate:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime       string `json:"end_time" validate:"omitempty,datetime=15:04"`
	HelpersNeeded int    `json:"helpers_needed" validate:"gte=1"`
	Payment       string `json:"payment" validate:"required,max=100"`
	Description   string `json:"description"`
	ContactPhone  string `json:"contact_phone" validate:"required,max=30"`
}

// RequestSnapshot is the request data the reviewer saw when approving
type RequestSnapshot struct {
	CompanyID     string `json:"company_id"`
	Title         string `json:"title"`
	EventType     string `json:"event_type"`
	Location      string `json:"location"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	HelpersNeeded int    `json:"helpers_needed"`
	Payment       string `json:"payment"`
	Description   string `json:"description"`
	ContactPhone  string `json:"contact_phone"`
}

// ApproveInput carries the reviewer's final values for the new job
type ApproveInput struct {
	FinalTitle       string           `json:"finalTitle"`
	FinalPayment     string           `json:"finalPayment"`
	FinalDescription string           `json:"finalDescription"`
	PostedBy         string           `json:"postedBy"`
	RequestData      *RequestSnapshot `json:"requestData"`
}

// RejectInput carries the rejection reason
type RejectInput struct {
	RejectionReason string `json:"rejectionReason" validate:"required"`
}

// JobRequestListOutput represents a page of job requests
type JobRequestListOutput struct {
	Requests []*models.JobRequest `json:"requests"`
	Meta     *pagination.Meta     `json:"meta"`
}

// Submit creates a pending job request for the company
func (s *JobRequestService) Submit(ctx context.Context, companyID string, input *SubmitJobRequestInput) (*models.JobRequest, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if input.EndDate < input.StartDate {
		return nil, domain.NewValidationError("end_date", "end_date must not be before start_date")
	}

	if _, err := s.store.Companies().GetByID(ctx, companyID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}

	request := &models.JobRequest{
		CompanyID:     companyID,
		Title:         strings.TrimSpace(input.Title),
		EventType:     input.EventType,
		Location:      input.Location,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		HelpersNeeded: input.HelpersNeeded,
		Payment:       input.Payment,
		Description:   input.Description,
		ContactPhone:  input.ContactPhone,
		Status:        string(domain.RequestPending),
	}
	if err := s.store.JobRequests().Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create job request: %w", err)
	}

	s.logger.Info("job request submitted",
		zap.String("request_id", request.ID),
		zap.String("company_id", companyID),
	)
	return request, nil
}

// ListMine lists the company's own requests, newest first
func (s *JobRequestService) ListMine(ctx context.Context, companyID string) ([]*models.JobRequest, error) {
	return s.store.JobRequests().ListByCompany(ctx, companyID)
}

// List lists requests for review, optionally filtered by status
func (s *JobRequestService) List(ctx context.Context, status string, params *pagination.Params) (*JobRequestListOutput, error) {
	if status != "" {
		if _, ok := domain.ParseRequestStatus(status); !ok {
			return nil, domain.NewValidationError("status", "status must be one of: pending approved rejected")
		}
	}

	requests, total, err := s.store.JobRequests().List(ctx, status, params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list job requests: %w", err)
	}

	return &JobRequestListOutput{
		Requests: requests,
		Meta:     pagination.GetMeta(params, total),
	}, nil
}

// GetByID gets a job request by ID
func (s *JobRequestService) GetByID(ctx context.Context, id string) (*models.JobRequest, error) {
	return getJobRequest(ctx, s.store, id)
}

// Approve publishes a job from the request and marks the request approved.
// Both writes share one transaction.
func (s *JobRequestService) Approve(ctx context.Context, actor domain.Actor, requestID string, input *ApproveInput) (*models.Job, error) {
	var job *models.Job
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		request, err := getJobRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if err := s.checkTransition(request, domain.RequestApproved); err != nil {
			return err
		}

		job = buildJob(request, input, actor)
		if err := tx.Jobs().Create(ctx, job); err != nil {
			return fmt.Errorf("create job: %w", err)
		}

		return tx.JobRequests().Update(ctx, request.ID, map[string]interface{}{
			"status":          string(domain.RequestApproved),
			"approved_job_id": job.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("job request approved",
		zap.String("request_id", requestID),
		zap.String("job_id", job.ID),
		zap.String("approved_by", actor.UserID),
	)
	return job, nil
}

// Reject marks the request rejected with a reason, then emails the company.
// A failed notification is logged and never fails the rejection.
func (s *JobRequestService) Reject(ctx context.Context, requestID string, input *RejectInput) error {
	input.RejectionReason = strings.TrimSpace(input.RejectionReason)
	if err := validate.Struct(input); err != nil {
		return err
	}

	var request *models.JobRequest
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		request, err = getJobRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if err := s.checkTransition(request, domain.RequestRejected); err != nil {
			return err
		}

		return tx.JobRequests().Update(ctx, request.ID, map[string]interface{}{
			"status":           string(domain.RequestRejected),
			"rejection_reason": input.RejectionReason,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("job request rejected", zap.String("request_id", requestID))
	s.notifyRejected(ctx, request, input.RejectionReason)
	return nil
}

func (s *JobRequestService) checkTransition(request *models.JobRequest, to domain.RequestStatus) error {
	if s.allowRetransition {
		return nil
	}
	if !domain.CanTransition(domain.RequestStatus(request.Status), to) {
		return domain.ErrRequestAlreadyProcessed
	}
	return nil
}

func (s *JobRequestService) notifyRejected(ctx context.Context, request *models.JobRequest, reason string) {
	if s.notifier == nil {
		return
	}

	email, err := s.companyEmail(ctx, request.CompanyID)
	if err != nil {
		s.logger.Warn("rejection notice skipped: company lookup failed",
			zap.String("request_id", request.ID),
			zap.String("company_id", request.CompanyID),
			zap.Error(err),
		)
		return
	}

	result := s.notifier.NotifyJobRejected(ctx, email, request.Title, reason)
	if !result.Success {
		s.logger.Warn("rejection notice not delivered",
			zap.String("request_id", request.ID),
			zap.String("error", result.Error),
		)
	}
}

// companyEmail prefers the profile contact email over the login email
func (s *JobRequestService) companyEmail(ctx context.Context, companyID string) (string, error) {
	company, err := s.store.Companies().GetByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if company.Email != "" {
		return company.Email, nil
	}
	user, err := s.store.Users().GetByID(ctx, company.UserID)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

func getJobRequest(ctx context.Context, store repositories.Store, id string) (*models.JobRequest, error) {
	request, err := store.JobRequests().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrJobRequestNotFound
		}
		return nil, fmt.Errorf("get job request: %w", err)
	}
	return request, nil
}

// buildJob copies the snapshot (or the stored request when none was sent)
// and applies the reviewer's overrides. Empty overrides keep the snapshot
// value.
func buildJob(request *models.JobRequest, input *ApproveInput, actor domain.Actor) *models.Job {
	snap := input.RequestData
	if snap == nil {
		snap = snapshotOf(request)
	}

	job := &models.Job{
		RequestID:     request.ID,
		CompanyID:     firstNonEmpty(snap.CompanyID, request.CompanyID),
		Title:         firstNonEmpty(input.FinalTitle, snap.Title, request.Title),
		EventType:     snap.EventType,
		Location:      snap.Location,
		StartDate:     snap.StartDate,
		EndDate:       snap.EndDate,
		StartTime:     snap.StartTime,
		EndTime:       snap.EndTime,
		HelpersNeeded: snap.HelpersNeeded,
		Payment:       firstNonEmpty(input.FinalPayment, snap.Payment),
		Description:   firstNonEmpty(input.FinalDescription, snap.Description),
		ContactPhone:  snap.ContactPhone,
		PostedBy:      firstNonEmpty(input.PostedBy, actor.UserID),
		Completed:     false,
		Archived:      false,
	}
	if job.HelpersNeeded < 1 {
		job.HelpersNeeded = 1
	}
	return job
}

func snapshotOf(r *models.JobRequest) *RequestSnapshot {
	return &RequestSnapshot{
		CompanyID:     r.CompanyID,
		Title:         r.Title,
		EventType:     r.EventType,
		Location:      r.Location,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		HelpersNeeded: r.HelpersNeeded,
		Payment:       r.Payment,
		Description:   r.Description,
		ContactPhone:  r.ContactPhone,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
