package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/pkg/password"
	"eventhire/internal/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var errStore = errors.New("store unavailable")

func TestMain(m *testing.M) {
	password.SetCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) repositories.Store {
	t.Helper()
	return repositories.NewStore(testutil.NewDB(t))
}

func seedSeeker(t *testing.T, store repositories.Store, name string) *models.SeekerProfile {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: name + "@seeker.test", Password: "x", Role: "SEEKER", IsActive: true}
	require.NoError(t, store.Users().Create(ctx, user))

	seeker := &models.SeekerProfile{UserID: user.ID, FullName: name, Email: user.Email}
	require.NoError(t, store.Seekers().Create(ctx, seeker))
	return seeker
}

func seedCompany(t *testing.T, store repositories.Store, name, email string) *models.CompanyProfile {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: name + "@company.test", Password: "x", Role: "COMPANY", IsActive: true}
	require.NoError(t, store.Users().Create(ctx, user))

	company := &models.CompanyProfile{UserID: user.ID, CompanyName: name, Email: email}
	require.NoError(t, store.Companies().Create(ctx, company))
	return company
}

func seedRequest(t *testing.T, store repositories.Store, companyID, title string) *models.JobRequest {
	t.Helper()

	request := &models.JobRequest{
		CompanyID:     companyID,
		Title:         title,
		EventType:     "Wedding",
		Location:      "Pune",
		StartDate:     "2025-05-01",
		EndDate:       "2025-05-02",
		HelpersNeeded: 4,
		Payment:       "₹3000",
		Description:   "Serving staff",
		ContactPhone:  "9876543210",
		Status:        "pending",
	}
	require.NoError(t, store.JobRequests().Create(context.Background(), request))
	return request
}

func seedJob(t *testing.T, store repositories.Store, companyID string) *models.Job {
	t.Helper()

	job := &models.Job{CompanyID: companyID, Title: "Usher", EndDate: "2025-05-02"}
	require.NoError(t, store.Jobs().Create(context.Background(), job))
	return job
}

// fakeNotifier records rejection notices and returns a fixed result
type fakeNotifier struct {
	mu     sync.Mutex
	result NotifyResult
	calls  []notifyCall
}

type notifyCall struct {
	email, title, reason string
}

func (n *fakeNotifier) NotifyJobRejected(_ context.Context, email, title, reason string) NotifyResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{email: email, title: title, reason: reason})
	return n.result
}

// failingBanStore fails every ban upsert, inside and outside transactions
type failingBanStore struct {
	repositories.Store
}

func (s failingBanStore) Bans() repositories.BanRepository {
	return failingBans{s.Store.Bans()}
}

func (s failingBanStore) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.Store.Transaction(ctx, func(tx repositories.Store) error {
		return fn(failingBanStore{tx})
	})
}

type failingBans struct {
	repositories.BanRepository
}

func (failingBans) Upsert(context.Context, string, time.Time) error {
	return errStore
}

// failingRequestStore fails every job request update
type failingRequestStore struct {
	repositories.Store
}

func (s failingRequestStore) JobRequests() repositories.JobRequestRepository {
	return failingRequestUpdates{s.Store.JobRequests()}
}

func (s failingRequestStore) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.Store.Transaction(ctx, func(tx repositories.Store) error {
		return fn(failingRequestStore{tx})
	})
}

type failingRequestUpdates struct {
	repositories.JobRequestRepository
}

func (failingRequestUpdates) Update(context.Context, string, map[string]interface{}) error {
	return errStore
}

// failingSeekerStore fails every seeker profile lookup
type failingSeekerStore struct {
	repositories.Store
}

func (s failingSeekerStore) Seekers() repositories.SeekerRepository {
	return failingSeekers{s.Store.Seekers()}
}

type failingSeekers struct {
	repositories.SeekerRepository
}

func (failingSeekers) GetByID(context.Context, string) (*models.SeekerProfile, error) {
	return nil, errStore
}

// racingUserStore hides existing accounts from the email pre-check, so
// registration reaches the unique index as a concurrent sign-up would
type racingUserStore struct {
	repositories.Store
}

func (s racingUserStore) Users() repositories.UserRepository {
	return unseenUsers{s.Store.Users()}
}

func (s racingUserStore) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.Store.Transaction(ctx, func(tx repositories.Store) error {
		return fn(racingUserStore{tx})
	})
}

type unseenUsers struct {
	repositories.UserRepository
}

func (unseenUsers) ExistsByEmail(context.Context, string) (bool, error) {
	return false, nil
}
