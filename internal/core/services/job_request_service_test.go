package services

import (
	"context"
	"testing"

	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/config"
	"eventhire/internal/core/domain"
	"eventhire/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = domain.Actor{UserID: "admin-user", Role: domain.RoleAdmin}

func newWorkflow(store repositories.Store, notifier Notifier, allowRetransition bool) *JobRequestService {
	return NewJobRequestService(store, notifier, config.WorkflowConfig{AllowRetransition: allowRetransition}, nil)
}

func TestApproveCreatesJobFromSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := seedCompany(t, store, "acme", "hr@acme.test")
	r := seedRequest(t, store, c.ID, "Wedding Staff")
	s := newWorkflow(store, &fakeNotifier{}, false)

	job, err := s.Approve(ctx, admin, r.ID, &ApproveInput{
		FinalTitle:   "Wedding Servers",
		FinalPayment: "₹5000",
		RequestData: &RequestSnapshot{
			CompanyID:     c.ID,
			Title:         "Wedding Staff",
			EventType:     "Wedding",
			Location:      "Goa",
			StartDate:     "2025-05-01",
			EndDate:       "2025-05-02",
			HelpersNeeded: 6,
			Payment:       "₹3000",
			Description:   "Snapshot description",
			ContactPhone:  "9000000000",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, c.ID, job.CompanyID)
	assert.Equal(t, "₹5000", job.Payment)
	assert.Equal(t, "Wedding Servers", job.Title)
	assert.Equal(t, "Snapshot description", job.Description)
	assert.Equal(t, "Goa", job.Location)
	assert.Equal(t, 6, job.HelpersNeeded)
	assert.Equal(t, "admin-user", job.PostedBy)
	assert.False(t, job.Completed)

	stored, err := store.Jobs().GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.False(t, stored.Completed)
	assert.Equal(t, r.ID, stored.RequestID)

	updated, err := store.JobRequests().GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Status)
	require.NotNil(t, updated.ApprovedJobID)
	assert.Equal(t, job.ID, *updated.ApprovedJobID)
}

func TestApproveWithoutSnapshotUsesStoredRequest(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := seedCompany(t, store, "acme", "hr@acme.test")
	r := seedRequest(t, store, c.ID, "Expo Hosts")
	s := newWorkflow(store, nil, false)

	job, err := s.Approve(ctx, admin, r.ID, &ApproveInput{PostedBy: "ops"})
	require.NoError(t, err)

	assert.Equal(t, "Expo Hosts", job.Title)
	assert.Equal(t, "₹3000", job.Payment)
	assert.Equal(t, "Serving staff", job.Description)
	assert.Equal(t, c.ID, job.CompanyID)
	assert.Equal(t, "ops", job.PostedBy)
}

func TestApproveTwice(t *testing.T) {
	tests := []struct {
		name              string
		allowRetransition bool
		wantJobs          int
	}{
		{name: "rejected by default", allowRetransition: false, wantJobs: 1},
		{name: "re-runs when allowed", allowRetransition: true, wantJobs: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newTestStore(t)
			c := seedCompany(t, store, "acme", "hr@acme.test")
			r := seedRequest(t, store, c.ID, "Concert Crew")
			s := newWorkflow(store, nil, tt.allowRetransition)

			first, err := s.Approve(ctx, admin, r.ID, &ApproveInput{})
			require.NoError(t, err)

			second, err := s.Approve(ctx, admin, r.ID, &ApproveInput{})
			if tt.allowRetransition {
				require.NoError(t, err)
				assert.NotEqual(t, first.ID, second.ID)

				updated, err := store.JobRequests().GetByID(ctx, r.ID)
				require.NoError(t, err)
				assert.Equal(t, second.ID, *updated.ApprovedJobID)
			} else {
				assert.ErrorIs(t, err, domain.ErrRequestAlreadyProcessed)
			}

			jobs, err := store.Jobs().ListByRequest(ctx, r.ID)
			require.NoError(t, err)
			assert.Len(t, jobs, tt.wantJobs)
		})
	}
}

func TestApproveRollsBackJobWhenRequestUpdateFails(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := seedCompany(t, store, "acme", "hr@acme.test")
	r := seedRequest(t, store, c.ID, "Gala Staff")
	s := newWorkflow(failingRequestStore{store}, nil, false)

	_, err := s.Approve(ctx, admin, r.ID, &ApproveInput{})
	assert.ErrorIs(t, err, errStore)

	jobs, err := store.Jobs().ListByRequest(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, jobs)

	stored, err := store.JobRequests().GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", stored.Status)
}

func TestApproveUnknownRequest(t *testing.T) {
	s := newWorkflow(newTestStore(t), nil, false)

	_, err := s.Approve(context.Background(), admin, "missing", &ApproveInput{})
	assert.ErrorIs(t, err, domain.ErrJobRequestNotFound)
}

func TestRejectNotifiesCompany(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := seedCompany(t, store, "acme", "hr@acme.test")
	r := seedRequest(t, store, c.ID, "Festival Volunteers")
	notifier := &fakeNotifier{result: NotifyResult{Success: true}}
	s := newWorkflow(store, notifier, false)

	require.NoError(t, s.Reject(ctx, r.ID, &RejectInput{RejectionReason: "Budget too low"}))

	updated, err := store.JobRequests().GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", updated.Status)
	require.NotNil(t, updated.RejectionReason)
	assert.Equal(t, "Budget too low", *updated.RejectionReason)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, notifyCall{email: "hr@acme.test", title: "Festival Volunteers", reason: "Budget too low"}, notifier.calls[0])
}

func TestRejectFallsBackToLoginEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := seedCompany(t, store, "nomail", "")
	r := seedRequest(t, store, c.ID, "Stage Crew")
	notifier := &fakeNotifier{result: NotifyResult{Success: true}}

	require.NoError(t, newWorkflow(store, notifier, false).Reject(ctx, r.ID, &RejectInput{RejectionReason: "Dates unavailable"}))

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "nomail@company.test", notifier.calls[0].email)
}

func TestRejectSucceedsWhenNotificationFails(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := seedCompany(t, store, "acme", "hr@acme.test")
	r := seedRequest(t, store, c.ID, "Ushers")
	notifier := &fakeNotifier{result: NotifyResult{Success: false, Error: "smtp down"}}

	err := newWorkflow(store, notifier, false).Reject(ctx, r.ID, &RejectInput{RejectionReason: "Incomplete"})
	require.NoError(t, err)
	assert.Len(t, notifier.calls, 1)

	updated, err := store.JobRequests().GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", updated.Status)
}

func TestRejectSucceedsWhenCompanyMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	r := seedRequest(t, store, "ghost-company", "Ushers")
	notifier := &fakeNotifier{}

	require.NoError(t, newWorkflow(store, notifier, false).Reject(ctx, r.ID, &RejectInput{RejectionReason: "Spam"}))
	assert.Empty(t, notifier.calls)
}

func TestRejectErrors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := seedCompany(t, store, "acme", "hr@acme.test")
	r := seedRequest(t, store, c.ID, "Ushers")
	s := newWorkflow(store, nil, false)

	err := s.Reject(ctx, r.ID, &RejectInput{RejectionReason: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = s.Reject(ctx, "missing", &RejectInput{RejectionReason: "No"})
	assert.ErrorIs(t, err, domain.ErrJobRequestNotFound)

	_, err = s.Approve(ctx, admin, r.ID, &ApproveInput{})
	require.NoError(t, err)

	err = s.Reject(ctx, r.ID, &RejectInput{RejectionReason: "Changed mind"})
	assert.ErrorIs(t, err, domain.ErrRequestAlreadyProcessed)
}

func TestSubmitJobRequest(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := seedCompany(t, store, "acme", "hr@acme.test")
	s := newWorkflow(store, nil, false)

	valid := SubmitJobRequestInput{
		Title:         "Conference Hosts",
		EventType:     "Conference",
		Location:      "Bengaluru",
		StartDate:     "2025-06-10",
		EndDate:       "2025-06-11",
		StartTime:     "09:00",
		EndTime:       "18:00",
		HelpersNeeded: 10,
		Payment:       "₹2500/day",
		ContactPhone:  "9123456789",
	}

	request, err := s.Submit(ctx, c.ID, &valid)
	require.NoError(t, err)
	assert.Equal(t, "pending", request.Status)

	reversed := valid
	reversed.EndDate = "2025-06-01"
	_, err = s.Submit(ctx, c.ID, &reversed)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noHelpers := valid
	noHelpers.HelpersNeeded = 0
	_, err = s.Submit(ctx, c.ID, &noHelpers)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.Submit(ctx, "ghost", &valid)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	mine, err := s.ListMine(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	page, err := s.List(ctx, "pending", pagination.NewParams(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Meta.Total)

	_, err = s.List(ctx, "archived", pagination.NewParams(1, 10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
