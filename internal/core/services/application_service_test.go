package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventhire/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seeker := seedSeeker(t, store, "nia")
	job := seedJob(t, store, "c1")
	s := NewApplicationService(store, newModeration(store, time.Now().UTC()), nil)

	application, err := s.Apply(ctx, seeker.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "applied", application.Status)

	_, err = s.Apply(ctx, seeker.ID, job.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)
	assert.True(t, domain.IsConflict(err))

	mine, err := s.ListMine(ctx, seeker.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestApplyWhileBanned(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seeker := seedSeeker(t, store, "zed")
	job := seedJob(t, store, "c1")
	now := time.Now().UTC()
	until := time.Date(now.Year()+1, time.March, 4, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Bans().Upsert(ctx, seeker.ID, until))

	s := NewApplicationService(store, newModeration(store, now), nil)

	_, err := s.Apply(ctx, seeker.ID, job.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSeekerBanned)

	var banned *domain.BannedError
	require.True(t, errors.As(err, &banned))
	assert.True(t, banned.Until.Equal(until))
	assert.Contains(t, err.Error(), until.Format("2006-01-02"))

	exists, err := store.Applications().Exists(ctx, job.ID, seeker.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplyAfterBanLapsed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seeker := seedSeeker(t, store, "lia")
	job := seedJob(t, store, "c1")
	now := time.Now().UTC()
	require.NoError(t, store.Bans().Upsert(ctx, seeker.ID, now.Add(-time.Minute)))

	s := NewApplicationService(store, newModeration(store, now), nil)

	_, err := s.Apply(ctx, seeker.ID, job.ID)
	assert.NoError(t, err)
}

func TestApplyClosedJob(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seeker := seedSeeker(t, store, "max")
	job := seedJob(t, store, "c1")
	require.NoError(t, store.Jobs().Update(ctx, job.ID, map[string]interface{}{"archived": true}))

	s := NewApplicationService(store, newModeration(store, time.Now().UTC()), nil)

	_, err := s.Apply(ctx, seeker.ID, job.ID)
	assert.ErrorIs(t, err, domain.ErrJobClosed)

	_, err = s.Apply(ctx, seeker.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestListForJob(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seeker := seedSeeker(t, store, "eve")
	job := seedJob(t, store, "owner")
	s := NewApplicationService(store, newModeration(store, time.Now().UTC()), nil)

	_, err := s.Apply(ctx, seeker.ID, job.ID)
	require.NoError(t, err)

	owner := domain.Actor{UserID: "u1", Role: domain.RoleCompany, ProfileID: "owner"}
	list, err := s.ListForJob(ctx, owner, job.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = s.ListForJob(ctx, admin, job.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	other := domain.Actor{UserID: "u2", Role: domain.RoleCompany, ProfileID: "other"}
	_, err = s.ListForJob(ctx, other, job.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
