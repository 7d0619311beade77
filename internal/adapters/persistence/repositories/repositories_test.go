package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/core/domain"
	"eventhire/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) repositories.Store {
	t.Helper()
	return repositories.NewStore(testutil.NewDB(t))
}

func createSeeker(t *testing.T, store repositories.Store, name string) *models.SeekerProfile {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: name + "@example.com", Password: "x", Role: "SEEKER", IsActive: true}
	require.NoError(t, store.Users().Create(ctx, user))

	seeker := &models.SeekerProfile{UserID: user.ID, FullName: name}
	require.NoError(t, store.Seekers().Create(ctx, seeker))
	return seeker
}

func TestBanUpsertKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	seeker := createSeeker(t, store, "ravi")

	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	require.NoError(t, store.Bans().Upsert(ctx, seeker.ID, first))
	require.NoError(t, store.Bans().Upsert(ctx, seeker.ID, second))

	ban, err := store.Bans().GetBySeeker(ctx, seeker.ID)
	require.NoError(t, err)
	require.NotNil(t, ban)
	assert.True(t, ban.BannedUntil.Equal(second))

	active, err := store.Bans().ListActive(ctx, first)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	count, err := store.Bans().CountActive(ctx, second.Add(time.Second))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBanGetBySeekerMissing(t *testing.T) {
	store := newStore(t)

	ban, err := store.Bans().GetBySeeker(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, ban)
}

func TestRedFlagCountAndList(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	seeker := createSeeker(t, store, "anita")
	other := createSeeker(t, store, "kiran")

	for _, reason := range []string{"late", "no-show"} {
		require.NoError(t, store.RedFlags().Create(ctx, &models.RedFlag{SeekerID: seeker.ID, JobID: "j1", Reason: reason}))
	}
	require.NoError(t, store.RedFlags().Create(ctx, &models.RedFlag{SeekerID: other.ID, JobID: "j1", Reason: "rude"}))

	count, err := store.RedFlags().CountBySeeker(ctx, seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	flags, err := store.RedFlags().ListBySeeker(ctx, seeker.ID)
	require.NoError(t, err)
	assert.Len(t, flags, 2)

	recent, err := store.RedFlags().CountSince(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), recent)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Users().Create(ctx, &models.User{Email: "same@example.com", Password: "x", Role: "SEEKER"}))
	err := store.Users().Create(ctx, &models.User{Email: "same@example.com", Password: "x", Role: "COMPANY"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestApplicationUniquePerJobAndSeeker(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Applications().Create(ctx, &models.Application{JobID: "j1", SeekerID: "s1", Status: "applied"}))
	assert.Error(t, store.Applications().Create(ctx, &models.Application{JobID: "j1", SeekerID: "s1", Status: "applied"}))

	exists, err := store.Applications().Exists(ctx, "j1", "s1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Applications().Exists(ctx, "j1", "s2")
	require.NoError(t, err)
	assert.False(t, exists)

	list, err := store.Applications().ListByJob(ctx, "j1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestJobListOpenAndComplete(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	jobs := []*models.Job{
		{CompanyID: "c1", Title: "Usher", EndDate: "2025-01-10"},
		{CompanyID: "c1", Title: "Cashier", EndDate: "2025-02-10"},
		{CompanyID: "c1", Title: "Old", EndDate: "2025-01-01", Archived: true},
	}
	for _, j := range jobs {
		require.NoError(t, store.Jobs().Create(ctx, j))
	}

	open, total, err := store.Jobs().ListOpen(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, open, 2)

	n, err := store.Jobs().CompleteEndedBefore(ctx, "2025-02-01")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, total, err = store.Jobs().ListOpen(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	completed, err := store.Jobs().CountCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), completed)
}

func TestJobRequestListByStatus(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, store.JobRequests().Create(ctx, &models.JobRequest{CompanyID: "c1", Title: title, Status: "pending"}))
	}
	req := &models.JobRequest{CompanyID: "c1", Title: "d", Status: "pending"}
	require.NoError(t, store.JobRequests().Create(ctx, req))
	require.NoError(t, store.JobRequests().Update(ctx, req.ID, map[string]interface{}{"status": "rejected"}))

	pending, total, err := store.JobRequests().List(ctx, "pending", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, pending, 2)

	rejected, err := store.JobRequests().CountByStatus(ctx, "rejected")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rejected)

	got, err := store.JobRequests().GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", got.Status)

	_, err = store.JobRequests().GetByID(ctx, "missing")
	assert.True(t, repositories.IsNotFound(err))
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	seeker := createSeeker(t, store, "meena")
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.RedFlags().Create(ctx, &models.RedFlag{SeekerID: seeker.ID, JobID: "j1", Reason: "late"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := store.RedFlags().CountBySeeker(ctx, seeker.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	now := time.Now().UTC()

	live := &models.RefreshToken{UserID: "u1", TokenHash: "live", ExpiresAt: now.Add(time.Hour)}
	stale := &models.RefreshToken{UserID: "u1", TokenHash: "stale", ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, store.RefreshTokens().Create(ctx, live))
	require.NoError(t, store.RefreshTokens().Create(ctx, stale))

	deleted, err := store.RefreshTokens().DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	require.NoError(t, store.RefreshTokens().RevokeAllByUserID(ctx, "u1"))
	_, err = store.RefreshTokens().GetByTokenHash(ctx, "live")
	assert.True(t, repositories.IsNotFound(err))
}
