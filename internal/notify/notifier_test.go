package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-pipeline/internal/common/config"
	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/models"
)

type mockSES struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type mockSNS struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func testInterview() *models.Interview {
	return &models.Interview{
		ID:             "iv-1",
		CandidateName:  "Asha",
		CandidateEmail: "asha@example.com",
		CandidatePhone: "+15550100",
		JobTitle:       "Backend Engineer",
		Company:        "Acme",
		Round:          models.RoundOne,
		ScheduledDate:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ScheduledTime:  "10:00",
		Mode:           models.ModeOnline,
		MeetingLink:    "https://meet.example.com/abc",
	}
}

func testConfig() config.NotificationConfig {
	return config.NotificationConfig{
		EmailEnabled: true,
		FromEmail:    "hr@acme.example",
		SMSEnabled:   true,
		SMSSenderID:  "ACME",
	}
}

func TestSendInterviewNotification_EmailAndSMS(t *testing.T) {
	var sentTo, subject, smsPhone string
	sesMock := &mockSES{SendEmailFunc: func(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		sentTo = in.Destination.ToAddresses[0]
		subject = *in.Message.Subject.Data
		assert.Equal(t, "hr@acme.example", *in.Source)
		assert.Contains(t, *in.Message.Body.Text.Data, "https://meet.example.com/abc")
		return &ses.SendEmailOutput{}, nil
	}}
	snsMock := &mockSNS{PublishFunc: func(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
		smsPhone = *in.PhoneNumber
		assert.Equal(t, "ACME", *in.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue)
		return &sns.PublishOutput{}, nil
	}}

	svc := NewService(testConfig(), sesMock, snsMock, time.Second, logger.NewTestLogger(t))
	err := svc.SendInterviewNotification(context.Background(), testInterview(), TypeInvitation)

	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", sentTo)
	assert.Equal(t, "Interview Invitation - Backend Engineer at Acme", subject)
	assert.Equal(t, "+15550100", smsPhone)
}

func TestSendInterviewNotification_SkipsSMSWithoutPhone(t *testing.T) {
	sesMock := &mockSES{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return &ses.SendEmailOutput{}, nil
	}}
	snsMock := &mockSNS{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		t.Fatal("sms must not be sent without a phone number")
		return nil, nil
	}}

	iv := testInterview()
	iv.CandidatePhone = ""
	svc := NewService(testConfig(), sesMock, snsMock, time.Second, logger.NewTestLogger(t))

	assert.NoError(t, svc.SendInterviewNotification(context.Background(), iv, TypeRescheduled))
}

func TestSendInterviewNotification_EmailFailure(t *testing.T) {
	sesMock := &mockSES{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return nil, errors.New("throttled")
	}}
	cfg := testConfig()
	cfg.SMSEnabled = false

	svc := NewService(cfg, sesMock, nil, time.Second, logger.NewTestLogger(t))
	err := svc.SendInterviewNotification(context.Background(), testInterview(), TypeVoiceAI)

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotificationFailed, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "throttled")
}

func TestSendInterviewNotification_Timeout(t *testing.T) {
	sesMock := &mockSES{SendEmailFunc: func(ctx context.Context, _ *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	cfg := testConfig()
	cfg.SMSEnabled = false

	svc := NewService(cfg, sesMock, nil, 20*time.Millisecond, logger.NewTestLogger(t))
	err := svc.SendInterviewNotification(context.Background(), testInterview(), TypeInvitation)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSendInterviewNotification_NoChannel(t *testing.T) {
	svc := NewService(config.NotificationConfig{}, nil, nil, time.Second, logger.NewNoOpLogger())
	err := svc.SendInterviewNotification(context.Background(), testInterview(), TypeInvitation)
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.SendInterviewNotification(context.Background(), nil, TypeInvitation))
}
