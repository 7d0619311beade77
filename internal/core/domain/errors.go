package domain

import (
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Moderation errors
var (
	ErrSeekerNotFound = errors.New("seeker not found")
	ErrSeekerBanned   = errors.New("seeker is banned")
)

// Job request errors
var (
	ErrJobRequestNotFound      = errors.New("job request not found")
	ErrRequestAlreadyProcessed = errors.New("job request already processed")
	ErrCompanyNotFound         = errors.New("company not found")
)

// Job and application errors
var (
	ErrJobNotFound    = errors.New("job not found")
	ErrJobClosed      = errors.New("job is no longer accepting applications")
	ErrAlreadyApplied = errors.New("you have already applied for this job")
	ErrAlreadyRated   = errors.New("you have already rated this seeker for this job")
)

// ValidationError is a missing or malformed request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInvalidInput) match any validation error
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a validation error for field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// BannedError is returned when a currently banned seeker tries to apply
type BannedError struct {
	Until time.Time
}

func (e *BannedError) Error() string {
	return "you are banned until " + e.Until.Format("2006-01-02")
}

// Is makes errors.Is(err, ErrSeekerBanned) match
func (e *BannedError) Is(target error) bool {
	return target == ErrSeekerBanned
}

// IsConflict reports whether err is one of the duplicate-record errors
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAlreadyApplied) ||
		errors.Is(err, ErrAlreadyRated)
}
