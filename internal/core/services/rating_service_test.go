package services

import (
	"context"
	"testing"

	"eventhire/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := seedCompany(t, store, "acme", "hr@acme.test")
	seeker := seedSeeker(t, store, "ana")
	job := seedJob(t, store, c.ID)
	s := NewRatingService(store, nil)

	rating, err := s.Rate(ctx, c.ID, &RateInput{SeekerID: seeker.ID, JobID: job.ID, Stars: 4, Comment: "punctual"})
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Stars)
	assert.Equal(t, c.ID, rating.CompanyID)

	_, err = s.Rate(ctx, c.ID, &RateInput{SeekerID: seeker.ID, JobID: job.ID, Stars: 5})
	assert.ErrorIs(t, err, domain.ErrAlreadyRated)
	assert.True(t, domain.IsConflict(err))
}

func TestRateErrors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := seedCompany(t, store, "acme", "hr@acme.test")
	seeker := seedSeeker(t, store, "ana")
	job := seedJob(t, store, c.ID)
	s := NewRatingService(store, nil)

	tests := []struct {
		name      string
		companyID string
		input     RateInput
		want      error
	}{
		{name: "stars out of range", companyID: c.ID, input: RateInput{SeekerID: seeker.ID, JobID: job.ID, Stars: 6}, want: domain.ErrInvalidInput},
		{name: "zero stars", companyID: c.ID, input: RateInput{SeekerID: seeker.ID, JobID: job.ID}, want: domain.ErrInvalidInput},
		{name: "unknown seeker", companyID: c.ID, input: RateInput{SeekerID: "nope", JobID: job.ID, Stars: 3}, want: domain.ErrSeekerNotFound},
		{name: "unknown job", companyID: c.ID, input: RateInput{SeekerID: seeker.ID, JobID: "nope", Stars: 3}, want: domain.ErrJobNotFound},
		{name: "someone else's job", companyID: "other", input: RateInput{SeekerID: seeker.ID, JobID: job.ID, Stars: 3}, want: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := s.Rate(ctx, tt.companyID, &input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
