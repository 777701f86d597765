// Package store defines persistence for the six pipeline collections.
//
// Every collection is keyed by an opaque identifier; joins across
// collections happen in the stage managers. The conditional primitives
// (IncrementApplicationCount, CloseJobIfOpen, the insert-if-absent
// creators) are the only places where concurrent callers are serialized.
package store

import (
	"context"
	"errors"
	"time"

	"hiring-pipeline/internal/models"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyExists   = errors.New("record already exists")
	ErrJobNotOpen      = errors.New("job is not open")
	ErrCapacityReached = errors.New("job capacity reached")
	ErrInterviewActive = errors.New("candidate already has an active interview")
)

type JobStore interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	// IncrementApplicationCount atomically bumps the counter only while the
	// job is OPEN and below maxCandidates. It returns ErrNotFound,
	// ErrJobNotOpen or ErrCapacityReached when the condition does not hold.
	IncrementApplicationCount(ctx context.Context, id string, now time.Time) (*models.Job, error)
	// CloseJobIfOpen reports whether this call performed the OPEN -> CLOSED
	// transition.
	CloseJobIfOpen(ctx context.Context, id string, now time.Time) (bool, error)
}

type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *models.Application) error
	GetApplication(ctx context.Context, id string) (*models.Application, error)
	UpdateApplication(ctx context.Context, app *models.Application) error
	ListApplicationsByJob(ctx context.Context, jobID string) ([]*models.Application, error)
	CountApplicationsByJob(ctx context.Context, jobID string) (int, error)
}

type ShortlistStore interface {
	// InsertShortlistedIfAbsent returns false when the application already
	// has a shortlist record; the existing record is left untouched.
	InsertShortlistedIfAbsent(ctx context.Context, c *models.ShortlistedCandidate) (bool, error)
	GetShortlisted(ctx context.Context, id string) (*models.ShortlistedCandidate, error)
	GetShortlistedByApplication(ctx context.Context, applicationID string) (*models.ShortlistedCandidate, error)
	UpdateShortlisted(ctx context.Context, c *models.ShortlistedCandidate) error
	// ListShortlistedByJob returns candidates ordered by rank.
	ListShortlistedByJob(ctx context.Context, jobID string) ([]*models.ShortlistedCandidate, error)
}

// InterviewFilter selects interviews; zero-valued fields match everything.
type InterviewFilter struct {
	CandidateID   string
	ApplicationID string
	Round         models.InterviewRound
	Decision      models.InterviewDecision
}

func (f InterviewFilter) Matches(iv *models.Interview) bool {
	if f.CandidateID != "" && iv.ShortlistedCandidateID != f.CandidateID {
		return false
	}
	if f.ApplicationID != "" && iv.ApplicationID != f.ApplicationID {
		return false
	}
	if f.Round != "" && iv.Round != f.Round {
		return false
	}
	if f.Decision != "" && iv.Decision != f.Decision {
		return false
	}
	return true
}

type InterviewStore interface {
	// CreateInterview returns ErrInterviewActive if iv is active and the
	// candidate already holds an active interview. Moving an interview to a
	// terminal status through UpdateInterview frees the candidate again.
	CreateInterview(ctx context.Context, iv *models.Interview) error
	GetInterview(ctx context.Context, id string) (*models.Interview, error)
	UpdateInterview(ctx context.Context, iv *models.Interview) error
	// ListInterviews returns matches ordered by creation time.
	ListInterviews(ctx context.Context, filter InterviewFilter) ([]*models.Interview, error)
}

type OfferStore interface {
	// CreateOffer returns ErrAlreadyExists if the application already has
	// an offer.
	CreateOffer(ctx context.Context, offer *models.OfferLetter) error
	GetOffer(ctx context.Context, id string) (*models.OfferLetter, error)
	GetOfferByApplication(ctx context.Context, applicationID string) (*models.OfferLetter, error)
	UpdateOffer(ctx context.Context, offer *models.OfferLetter) error
	// ListOffersByStatus returns every offer when no status is given.
	ListOffersByStatus(ctx context.Context, statuses ...models.OfferStatus) ([]*models.OfferLetter, error)
}

type OnboardingStore interface {
	// CreateOnboarding returns ErrAlreadyExists if the candidate or the
	// offer letter is already onboarding.
	CreateOnboarding(ctx context.Context, ob *models.Onboarding) error
	GetOnboarding(ctx context.Context, id string) (*models.Onboarding, error)
	GetOnboardingByOffer(ctx context.Context, offerLetterID string) (*models.Onboarding, error)
	GetOnboardingByCandidate(ctx context.Context, candidateID string) (*models.Onboarding, error)
	UpdateOnboarding(ctx context.Context, ob *models.Onboarding) error
	DeleteOnboarding(ctx context.Context, id string) error
}

// Store is the full persistence surface a pipeline needs.
type Store interface {
	JobStore
	ApplicationStore
	ShortlistStore
	InterviewStore
	OfferStore
	OnboardingStore
	Close() error
}

// IsNotFound is shorthand for errors.Is(err, ErrNotFound).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
