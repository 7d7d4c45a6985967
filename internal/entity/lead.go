package entity

import (
	"context"
	"errors"
	"time"
)

// LeadSourceWaitlist tags every signup captured through the site form.
const LeadSourceWaitlist = "waitlist"

var (
	// ErrDuplicateEmail is returned by the stores when the leads uniqueness
	// constraint on email fires. Callers treat it as a successful signup.
	ErrDuplicateEmail = errors.New("email already on the waitlist")

	ErrNotFound = errors.New("record not found")
)

type Lead struct {
	ID          int64
	Email       string
	ProductID   *int64
	Source      string
	Referrer    *string
	UTMSource   *string
	UTMMedium   *string
	UTMCampaign *string
	CreatedAt   time.Time
}

type LeadRepositoryInterface interface {
	Upsert(ctx context.Context, lead *Lead) error
}
