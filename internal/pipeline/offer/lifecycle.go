// Package offer manages offer letters from generation to the candidate's
// response.
package offer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hiring-pipeline/internal/common/config"
	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/common/metrics"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/pipeline/capacity"
	"hiring-pipeline/internal/store"
)

const stage = "offer"

const (
	defaultCurrency         = "INR"
	defaultWorkLocation     = "ONSITE"
	defaultPaidLeaves       = 24
	defaultProbationMonths  = 3
	defaultNoticeDays       = 30
	defaultValidityDays     = 15
	defaultEmploymentType   = models.EmploymentFullTime
	defaultAcceptanceMethod = models.AcceptancePortal
)

type Store interface {
	store.JobStore
	store.ApplicationStore
	store.ShortlistStore
	store.InterviewStore
	store.OfferStore
}

type Lifecycle struct {
	store    Store
	defaults config.OfferConfig
	logger   logger.Logger
	now      func() time.Time
}

type Option func(*Lifecycle)

func WithClock(now func() time.Time) Option {
	return func(l *Lifecycle) { l.now = now }
}

func NewLifecycle(s Store, cfg config.OfferConfig, log logger.Logger, opts ...Option) *Lifecycle {
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	if cfg.WorkLocation == "" {
		cfg.WorkLocation = defaultWorkLocation
	}
	if cfg.PaidLeaves == 0 {
		cfg.PaidLeaves = defaultPaidLeaves
	}
	if cfg.ProbationMonths == 0 {
		cfg.ProbationMonths = defaultProbationMonths
	}
	if cfg.NoticeDays == 0 {
		cfg.NoticeDays = defaultNoticeDays
	}
	if cfg.ValidityDays == 0 {
		cfg.ValidityDays = defaultValidityDays
	}
	if !models.EmploymentType(cfg.EmploymentType).IsValid() {
		cfg.EmploymentType = string(defaultEmploymentType)
	}
	if !models.AcceptanceMethod(cfg.AcceptanceMethod).IsValid() {
		cfg.AcceptanceMethod = string(defaultAcceptanceMethod)
	}
	l := &Lifecycle{
		store:    s,
		defaults: cfg,
		logger:   logger.ForComponent(log, "offer-lifecycle"),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Terms are the negotiable parts of an offer. Zero values take the
// configured defaults.
type Terms struct {
	JoiningDate      time.Time
	ExpiryDate       time.Time
	EmploymentType   models.EmploymentType
	WorkLocation     string
	OfficeLocation   string
	Department       string
	Compensation     models.Compensation
	Benefits         string
	PaidLeaves       int
	ProbationPeriod  int
	NoticePeriod     int
	ReportingManager string
	CandidateAddress string
	CompanyAddress   string
	GeneratedBy      string
	HRRemarks        string
}

type GenerateRequest struct {
	CandidateID   string
	ApplicationID string
	JobID         string
	InterviewID   string
	Terms         Terms
}

func (r GenerateRequest) validate() error {
	switch {
	case r.CandidateID == "":
		return apperrors.NewInvalidInputError("candidateId is required")
	case r.ApplicationID == "":
		return apperrors.NewInvalidInputError("applicationId is required")
	case r.JobID == "":
		return apperrors.NewInvalidInputError("jobId is required")
	case r.InterviewID == "":
		return apperrors.NewInvalidInputError("interviewId is required")
	case r.Terms.JoiningDate.IsZero():
		return apperrors.NewInvalidInputError("joiningDate is required")
	case r.Terms.EmploymentType != "" && !r.Terms.EmploymentType.IsValid():
		return apperrors.NewInvalidInputError("unknown employment type: " + string(r.Terms.EmploymentType))
	case r.Terms.Compensation.AnnualCTC < 0:
		return apperrors.NewInvalidInputError("annualCtc must not be negative")
	case r.Terms.PaidLeaves < 0 || r.Terms.ProbationPeriod < 0 || r.Terms.NoticePeriod < 0:
		return apperrors.NewInvalidInputError("leave, probation and notice periods must not be negative")
	}
	return nil
}

// Generate issues the single offer an application may receive. The
// qualifying interview must be the HR round with a SELECTED decision.
func (l *Lifecycle) Generate(ctx context.Context, req GenerateRequest) (*models.OfferLetter, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	iv, err := l.store.GetInterview(ctx, req.InterviewID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewInterviewNotFoundError(req.InterviewID)
		}
		return nil, apperrors.NewStoreError("get interview", err)
	}
	if err := eligible(iv, req); err != nil {
		return nil, err
	}

	if _, err := l.store.GetOfferByApplication(ctx, req.ApplicationID); err == nil {
		return nil, apperrors.NewOfferAlreadyExistsError(req.ApplicationID)
	} else if !store.IsNotFound(err) {
		return nil, apperrors.NewStoreError("get offer by application", err)
	}

	candidate, err := l.getCandidate(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	app, err := l.store.GetApplication(ctx, req.ApplicationID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewApplicationNotFoundError(req.ApplicationID)
		}
		return nil, apperrors.NewStoreError("get application", err)
	}
	job, err := l.store.GetJob(ctx, req.JobID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewJobNotFoundError(req.JobID)
		}
		return nil, apperrors.NewStoreError("get job", err)
	}

	offer := l.newOffer(req, candidate, app, job)
	if err := l.store.CreateOffer(ctx, offer); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, apperrors.NewOfferAlreadyExistsError(req.ApplicationID)
		}
		return nil, apperrors.NewStoreError("create offer", err)
	}
	metrics.RecordTransition(stage, string(offer.Status))

	l.updateCandidate(ctx, candidate.ID, func(c *models.ShortlistedCandidate) {
		c.Status = models.ShortlistStatusOfferExtended
		c.OfferLetterGenerated = true
		c.OfferLetterID = offer.ID
	})

	l.logger.Info("offer generated", map[string]interface{}{
		"offerId":       offer.ID,
		"offerNumber":   offer.OfferNumber,
		"applicationId": offer.ApplicationID,
	})
	return offer, nil
}

func eligible(iv *models.Interview, req GenerateRequest) error {
	if iv.Round != models.RoundHR {
		return apperrors.NewInterviewNotEligibleError(iv.ID, fmt.Sprintf("round: %s", iv.Round))
	}
	if iv.Decision != models.DecisionSelected {
		return apperrors.NewInterviewNotEligibleError(iv.ID, fmt.Sprintf("decision: %s", iv.Decision))
	}
	if iv.ApplicationID != req.ApplicationID {
		return apperrors.NewInterviewNotEligibleError(iv.ID, "interview belongs to application "+iv.ApplicationID)
	}
	if iv.ShortlistedCandidateID != req.CandidateID {
		return apperrors.NewInterviewNotEligibleError(iv.ID, "interview belongs to candidate "+iv.ShortlistedCandidateID)
	}
	return nil
}

func (l *Lifecycle) newOffer(req GenerateRequest, c *models.ShortlistedCandidate, app *models.Application, job *models.Job) *models.OfferLetter {
	now := l.now()
	t := req.Terms
	d := l.defaults

	offer := &models.OfferLetter{
		ID:               uuid.NewString(),
		CandidateID:      c.ID,
		ApplicationID:    app.ID,
		JobID:            job.ID,
		InterviewID:      req.InterviewID,
		CandidateName:    c.CandidateName,
		CandidateEmail:   c.CandidateEmail,
		CandidatePhone:   app.CandidatePhone,
		CandidateAddress: t.CandidateAddress,
		JobTitle:         job.Title,
		Department:       t.Department,
		Company:          job.Company,
		CompanyAddress:   t.CompanyAddress,
		OfferNumber:      offerNumber(now),
		OfferDate:        now,
		JoiningDate:      t.JoiningDate,
		ExpiryDate:       t.ExpiryDate,
		EmploymentType:   t.EmploymentType,
		WorkLocation:     firstNonEmpty(t.WorkLocation, d.WorkLocation),
		OfficeLocation:   firstNonEmpty(t.OfficeLocation, job.Location),
		Compensation:     t.Compensation,
		Benefits:         t.Benefits,
		PaidLeaves:       firstPositive(t.PaidLeaves, d.PaidLeaves),
		ProbationPeriod:  firstPositive(t.ProbationPeriod, d.ProbationMonths),
		NoticePeriod:     firstPositive(t.NoticePeriod, d.NoticeDays),
		ReportingManager: t.ReportingManager,
		Status:           models.OfferStatusGenerated,
		GeneratedAt:      now,
		GeneratedBy:      t.GeneratedBy,
		HRRemarks:        t.HRRemarks,
		UpdatedAt:        now,
	}
	if offer.EmploymentType == "" {
		offer.EmploymentType = models.EmploymentType(d.EmploymentType)
	}
	if offer.ExpiryDate.IsZero() {
		offer.ExpiryDate = now.AddDate(0, 0, d.ValidityDays)
	}
	if offer.Compensation.Currency == "" {
		offer.Compensation.Currency = d.Currency
	}
	return offer
}

// offerNumber is OL-<unix millis>-<random suffix>.
func offerNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("OL-%d-%s", now.UnixMilli(), suffix)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// Send moves a GENERATED offer to SENT.
func (l *Lifecycle) Send(ctx context.Context, offerID string) (*models.OfferLetter, error) {
	offer, err := l.transition(ctx, offerID, models.OfferStatusSent, func(o *models.OfferLetter, now time.Time) error {
		if o.Status != models.OfferStatusGenerated {
			return apperrors.NewInvalidStatusTransitionError("offer", string(o.Status), string(models.OfferStatusSent))
		}
		if o.IsExpiredAt(now) {
			return apperrors.NewOfferExpiredError(o.ID, o.ExpiryDate)
		}
		o.SentAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.updateCandidate(ctx, offer.CandidateID, func(c *models.ShortlistedCandidate) {
		c.Status = models.ShortlistStatusOfferLetterSent
	})
	return offer, nil
}

// Accept records the candidate's acceptance of a SENT offer before it
// expires. An empty method takes the configured default.
func (l *Lifecycle) Accept(ctx context.Context, offerID string, method models.AcceptanceMethod, notes string) (*models.OfferLetter, error) {
	if method == "" {
		method = models.AcceptanceMethod(l.defaults.AcceptanceMethod)
	}
	if !method.IsValid() {
		return nil, apperrors.NewInvalidInputError("unknown acceptance method: " + string(method))
	}

	offer, err := l.transition(ctx, offerID, models.OfferStatusAccepted, func(o *models.OfferLetter, now time.Time) error {
		if o.Status != models.OfferStatusSent {
			return apperrors.NewInvalidStatusTransitionError("offer", string(o.Status), string(models.OfferStatusAccepted))
		}
		if o.IsExpiredAt(now) {
			return apperrors.NewOfferExpiredError(o.ID, o.ExpiryDate)
		}
		o.IsAccepted = true
		o.AcceptanceMethod = method
		o.AcceptanceNotes = notes
		o.RespondedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.updateCandidate(ctx, offer.CandidateID, func(c *models.ShortlistedCandidate) {
		c.Status = models.ShortlistStatusOfferAccepted
	})
	if _, err := capacity.AdvanceApplication(ctx, l.store, offer.ApplicationID, models.ApplicationStatusAccepted, offer.UpdatedAt); err != nil {
		l.logger.Warn("application not accepted", map[string]interface{}{
			"offerId": offer.ID,
			"error":   err.Error(),
		})
	}
	return offer, nil
}

// Reject records the candidate declining a SENT offer.
func (l *Lifecycle) Reject(ctx context.Context, offerID, reason string) (*models.OfferLetter, error) {
	offer, err := l.transition(ctx, offerID, models.OfferStatusRejected, func(o *models.OfferLetter, now time.Time) error {
		if o.Status != models.OfferStatusSent {
			return apperrors.NewInvalidStatusTransitionError("offer", string(o.Status), string(models.OfferStatusRejected))
		}
		o.IsAccepted = false
		o.RejectionReason = reason
		o.RespondedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.updateCandidate(ctx, offer.CandidateID, func(c *models.ShortlistedCandidate) {
		c.Status = models.ShortlistStatusOfferRejected
	})
	return offer, nil
}

// Withdraw cancels an offer the candidate has not answered yet.
func (l *Lifecycle) Withdraw(ctx context.Context, offerID, reason string) (*models.OfferLetter, error) {
	return l.transition(ctx, offerID, models.OfferStatusWithdrawn, func(o *models.OfferLetter, _ time.Time) error {
		if !o.Status.IsOutstanding() {
			return apperrors.NewInvalidStatusTransitionError("offer", string(o.Status), string(models.OfferStatusWithdrawn))
		}
		if reason != "" {
			o.HRRemarks = reason
		}
		return nil
	})
}

// Download counts a view of the letter. Status is untouched.
func (l *Lifecycle) Download(ctx context.Context, offerID string) (*models.OfferLetter, error) {
	offer, err := l.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	offer.IsDownloaded = true
	offer.DownloadCount++
	offer.UpdatedAt = l.now()
	if err := l.store.UpdateOffer(ctx, offer); err != nil {
		return nil, apperrors.NewStoreError("update offer", err)
	}
	return offer, nil
}

// ExpireOverdue marks every outstanding offer past its expiry date as
// EXPIRED and returns them.
func (l *Lifecycle) ExpireOverdue(ctx context.Context) ([]*models.OfferLetter, error) {
	outstanding, err := l.store.ListOffersByStatus(ctx, models.OfferStatusGenerated, models.OfferStatusSent)
	if err != nil {
		return nil, apperrors.NewStoreError("list offers", err)
	}

	now := l.now()
	var expired []*models.OfferLetter
	for _, o := range outstanding {
		if !o.IsExpiredAt(now) {
			continue
		}
		o.Status = models.OfferStatusExpired
		o.UpdatedAt = now
		if err := l.store.UpdateOffer(ctx, o); err != nil {
			return expired, apperrors.NewStoreError("update offer", err)
		}
		metrics.RecordTransition(stage, string(o.Status))
		expired = append(expired, o)
	}
	if len(expired) > 0 {
		l.logger.Info("expired overdue offers", map[string]interface{}{"count": len(expired)})
	}
	return expired, nil
}

// ListEligibleCandidates returns candidates selected in the HR round who
// have no offer yet.
func (l *Lifecycle) ListEligibleCandidates(ctx context.Context) ([]*models.ShortlistedCandidate, error) {
	selected, err := l.store.ListInterviews(ctx, store.InterviewFilter{
		Round:    models.RoundHR,
		Decision: models.DecisionSelected,
	})
	if err != nil {
		return nil, apperrors.NewStoreError("list interviews", err)
	}

	seen := make(map[string]bool, len(selected))
	var out []*models.ShortlistedCandidate
	for _, iv := range selected {
		if seen[iv.ShortlistedCandidateID] {
			continue
		}
		seen[iv.ShortlistedCandidateID] = true

		c, err := l.store.GetShortlisted(ctx, iv.ShortlistedCandidateID)
		if err != nil {
			if store.IsNotFound(err) {
				continue
			}
			return nil, apperrors.NewStoreError("get shortlisted candidate", err)
		}
		if c.OfferLetterGenerated {
			continue
		}
		if _, err := l.store.GetOfferByApplication(ctx, c.ApplicationID); err == nil {
			continue
		} else if !store.IsNotFound(err) {
			return nil, apperrors.NewStoreError("get offer by application", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (l *Lifecycle) GetOffer(ctx context.Context, id string) (*models.OfferLetter, error) {
	offer, err := l.store.GetOffer(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewOfferNotFoundError(id)
		}
		return nil, apperrors.NewStoreError("get offer", err)
	}
	return offer, nil
}

func (l *Lifecycle) ListOffers(ctx context.Context, statuses ...models.OfferStatus) ([]*models.OfferLetter, error) {
	offers, err := l.store.ListOffersByStatus(ctx, statuses...)
	if err != nil {
		return nil, apperrors.NewStoreError("list offers", err)
	}
	return offers, nil
}

// transition loads the offer, lets check validate and mutate it, then
// stores it with the new status.
func (l *Lifecycle) transition(ctx context.Context, offerID string, to models.OfferStatus, check func(*models.OfferLetter, time.Time) error) (*models.OfferLetter, error) {
	offer, err := l.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	now := l.now()
	if err := check(offer, now); err != nil {
		return nil, err
	}

	from := offer.Status
	offer.Status = to
	offer.UpdatedAt = now
	if err := l.store.UpdateOffer(ctx, offer); err != nil {
		return nil, apperrors.NewStoreError("update offer", err)
	}
	metrics.RecordTransition(stage, string(to))
	l.logger.Info("offer status changed", map[string]interface{}{
		"offerId": offer.ID,
		"from":    string(from),
		"to":      string(to),
	})
	return offer, nil
}

func (l *Lifecycle) getCandidate(ctx context.Context, id string) (*models.ShortlistedCandidate, error) {
	c, err := l.store.GetShortlisted(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewCandidateNotFoundError(id)
		}
		return nil, apperrors.NewStoreError("get shortlisted candidate", err)
	}
	return c, nil
}

// updateCandidate applies a back-reference change to the shortlist record.
// The offer is already stored, so failures are logged rather than returned.
func (l *Lifecycle) updateCandidate(ctx context.Context, candidateID string, mutate func(*models.ShortlistedCandidate)) {
	c, err := l.store.GetShortlisted(ctx, candidateID)
	if err == nil {
		mutate(c)
		c.UpdatedAt = l.now()
		err = l.store.UpdateShortlisted(ctx, c)
	}
	if err != nil {
		l.logger.Warn("candidate back-reference not updated", map[string]interface{}{
			"candidateId": candidateID,
			"error":       err.Error(),
		})
		return
	}
	metrics.RecordTransition("shortlist", string(c.Status))
}
