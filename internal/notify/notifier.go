// Package notify sends interview notifications to candidates over SES
// email and SNS SMS.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	awsclient "hiring-pipeline/internal/common/aws"
	"hiring-pipeline/internal/common/config"
	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/common/metrics"
	"hiring-pipeline/internal/models"
)

// Notification types understood by the notifier.
const (
	TypeInvitation  = "MANUAL"
	TypeVoiceAI     = "VOICE_AI"
	TypeRescheduled = "RESCHEDULED"
	TypeCancelled   = "CANCELLED"
)

// Notifier delivers one notification about an interview. A returned error
// never means the interview itself is invalid.
type Notifier interface {
	SendInterviewNotification(ctx context.Context, iv *models.Interview, notificationType string) error
}

type Service struct {
	cfg     config.NotificationConfig
	ses     awsclient.SESAPI
	sns     awsclient.SNSAPI
	timeout time.Duration
	logger  logger.Logger
}

var _ Notifier = (*Service)(nil)

// NewService wires the notifier. Either client may be nil when the
// matching channel is disabled.
func NewService(cfg config.NotificationConfig, sesClient awsclient.SESAPI, snsClient awsclient.SNSAPI, timeout time.Duration, log logger.Logger) *Service {
	return &Service{
		cfg:     cfg,
		ses:     sesClient,
		sns:     snsClient,
		timeout: timeout,
		logger:  logger.ForComponent(log, "notifier"),
	}
}

func (s *Service) SendInterviewNotification(ctx context.Context, iv *models.Interview, notificationType string) error {
	if iv == nil {
		return apperrors.NewInvalidInputError("interview is required")
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := s.send(ctx, iv, notificationType)
	metrics.RecordCollaboratorCall("notification", err, time.Since(start))
	if err != nil {
		s.logger.Warn("interview notification failed", map[string]interface{}{
			"interviewId": iv.ID,
			"type":        notificationType,
			"error":       err.Error(),
		})
		return apperrors.NewNotificationFailedError(notificationType, err)
	}

	s.logger.Info("interview notification sent", map[string]interface{}{
		"interviewId": iv.ID,
		"type":        notificationType,
		"email":       iv.CandidateEmail,
	})
	return nil
}

func (s *Service) send(ctx context.Context, iv *models.Interview, notificationType string) error {
	var errs []error
	delivered := false

	if s.cfg.EmailEnabled && s.ses != nil {
		if iv.CandidateEmail == "" {
			errs = append(errs, errors.New("candidate email is empty"))
		} else {
			input := awsclient.EmailInput(s.cfg.FromEmail, iv.CandidateEmail, subject(iv, notificationType), emailBody(iv, notificationType))
			if _, err := s.ses.SendEmail(ctx, input); err != nil {
				errs = append(errs, fmt.Errorf("ses: %w", err))
			} else {
				delivered = true
			}
		}
	}

	if s.cfg.SMSEnabled && s.sns != nil && iv.CandidatePhone != "" {
		input := awsclient.SMSInput(iv.CandidatePhone, smsBody(iv, notificationType), s.cfg.SMSSenderID)
		if _, err := s.sns.Publish(ctx, input); err != nil {
			errs = append(errs, fmt.Errorf("sns: %w", err))
		} else {
			delivered = true
		}
	}

	if !delivered && len(errs) == 0 {
		return errors.New("no notification channel enabled")
	}
	return errors.Join(errs...)
}

func subject(iv *models.Interview, notificationType string) string {
	switch notificationType {
	case TypeVoiceAI:
		return fmt.Sprintf("AI Interview Invitation - %s at %s", iv.JobTitle, iv.Company)
	case TypeRescheduled:
		return fmt.Sprintf("Interview Rescheduled - %s at %s", iv.JobTitle, iv.Company)
	case TypeCancelled:
		return fmt.Sprintf("Interview Cancelled - %s at %s", iv.JobTitle, iv.Company)
	default:
		return fmt.Sprintf("Interview Invitation - %s at %s", iv.JobTitle, iv.Company)
	}
}

func emailBody(iv *models.Interview, notificationType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", iv.CandidateName)
	switch notificationType {
	case TypeCancelled:
		fmt.Fprintf(&b, "Your interview for %s has been cancelled.\n", iv.JobTitle)
		return b.String()
	case TypeRescheduled:
		fmt.Fprintf(&b, "Your interview for %s has been rescheduled.\n\n", iv.JobTitle)
	default:
		fmt.Fprintf(&b, "You have been shortlisted for an interview for %s at %s.\n\n", iv.JobTitle, iv.Company)
	}
	fmt.Fprintf(&b, "Round: %s\n", iv.Round)
	fmt.Fprintf(&b, "Date: %s\n", iv.ScheduledDate.Format("Monday, January 2, 2006"))
	if iv.ScheduledTime != "" {
		fmt.Fprintf(&b, "Time: %s\n", iv.ScheduledTime)
	}
	fmt.Fprintf(&b, "Mode: %s\n", iv.Mode)
	if iv.MeetingLink != "" {
		fmt.Fprintf(&b, "Meeting link: %s\n", iv.MeetingLink)
	}
	if iv.Venue != "" {
		fmt.Fprintf(&b, "Venue: %s\n", iv.Venue)
	}
	return b.String()
}

func smsBody(iv *models.Interview, notificationType string) string {
	when := iv.ScheduledDate.Format("2006-01-02")
	if iv.ScheduledTime != "" {
		when += " " + iv.ScheduledTime
	}
	switch notificationType {
	case TypeCancelled:
		return fmt.Sprintf("Your %s interview for %s on %s is cancelled.", iv.Round, iv.JobTitle, when)
	case TypeRescheduled:
		return fmt.Sprintf("Your %s interview for %s is rescheduled to %s.", iv.Round, iv.JobTitle, when)
	default:
		return fmt.Sprintf("Interview for %s: %s on %s. Check your email for details.", iv.JobTitle, iv.Round, when)
	}
}

// Noop accepts every notification. Used when no channel is configured.
type Noop struct{}

func (Noop) SendInterviewNotification(context.Context, *models.Interview, string) error { return nil }
