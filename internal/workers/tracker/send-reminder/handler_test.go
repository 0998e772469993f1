package sendreminder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	commonerrors "internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/models"
	"internship-workers/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mocks
// ==========================

type MockReminders struct {
	mock.Mock
}

func (m *MockReminders) Get(ctx context.Context, id string) (*models.Reminder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reminder), args.Error(1)
}

func (m *MockReminders) MarkStatus(ctx context.Context, id string, status models.ReminderStatus, reason string) error {
	args := m.Called(ctx, id, status, reason)
	return args.Error(0)
}

type MockContacts struct {
	mock.Mock
}

func (m *MockContacts) GetContact(ctx context.Context, userID string) (*models.Contact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) SendEmail(ctx context.Context, to, subject, body string) (string, error) {
	args := m.Called(ctx, to, subject, body)
	return args.String(0), args.Error(1)
}

type MockSMS struct {
	mock.Mock
}

func (m *MockSMS) SendSMS(ctx context.Context, phone, message string) (string, error) {
	args := m.Called(ctx, phone, message)
	return args.String(0), args.Error(1)
}

type fixture struct {
	handler   *Handler
	reminders *MockReminders
	contacts  *MockContacts
	email     *MockEmail
	sms       *MockSMS
}

var fixedNow = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, cfg *Config) *fixture {
	f := &fixture{
		reminders: &MockReminders{},
		contacts:  &MockContacts{},
		email:     &MockEmail{},
		sms:       &MockSMS{},
	}
	f.handler = NewHandler(cfg, f.reminders, f.contacts, f.email, f.sms, logger.NewTestLogger(t))
	f.handler.now = func() time.Time { return fixedNow }
	return f
}

func defaultConfig() *Config {
	return &Config{Timeout: 5 * time.Second, EmailEnabled: true, SMSEnabled: true, RatePerSecond: 100, Burst: 5}
}

func pendingReminder(priority string) *models.Reminder {
	return &models.Reminder{
		ID:       "rem-1",
		UserID:   "user-1",
		Title:    "Submit Acme application",
		Message:  "Deadline is Friday",
		Priority: priority,
		Status:   models.ReminderStatusPending,
		DueAt:    time.Date(2026, 10, 23, 17, 0, 0, 0, time.UTC),
	}
}

func subscribedContact() *models.Contact {
	return &models.Contact{UserID: "user-1", Email: "ada@example.com", Phone: "+15550100", EmailNotifications: true}
}

// ==========================
// Tests
// ==========================

func TestHandler_Execute_SendsEmail(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.reminders.On("Get", mock.Anything, "rem-1").Return(pendingReminder("medium"), nil)
	f.contacts.On("GetContact", mock.Anything, "user-1").Return(subscribedContact(), nil)
	f.email.On("SendEmail", mock.Anything, "ada@example.com", "Reminder: Submit Acme application",
		mock.MatchedBy(func(body string) bool { return strings.Contains(body, "Deadline is Friday") })).
		Return("msg-1", nil)
	f.reminders.On("MarkStatus", mock.Anything, "rem-1", models.ReminderStatusSent, "").Return(nil)

	out, err := f.handler.Execute(context.Background(), &Input{ReminderID: "rem-1"})
	require.NoError(t, err)

	assert.Equal(t, "msg-1", out.NotificationID)
	assert.Equal(t, "sent", out.Status)
	require.NotNil(t, out.SentAt)
	assert.Equal(t, "2026-10-19T08:00:00Z", *out.SentAt)
	assert.False(t, out.SMSSent)
	f.sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Execute_HighPrioritySendsSMS(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.reminders.On("Get", mock.Anything, "rem-1").Return(pendingReminder("high"), nil)
	f.contacts.On("GetContact", mock.Anything, "user-1").Return(subscribedContact(), nil)
	f.email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("msg-1", nil)
	f.sms.On("SendSMS", mock.Anything, "+15550100", mock.Anything).Return("sms-1", nil)
	f.reminders.On("MarkStatus", mock.Anything, "rem-1", models.ReminderStatusSent, "").Return(nil)

	out, err := f.handler.Execute(context.Background(), &Input{ReminderID: "rem-1"})
	require.NoError(t, err)
	assert.True(t, out.SMSSent)
}

func TestHandler_Execute_SMSFailureDoesNotFailDelivery(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.reminders.On("Get", mock.Anything, "rem-1").Return(pendingReminder("high"), nil)
	f.contacts.On("GetContact", mock.Anything, "user-1").Return(subscribedContact(), nil)
	f.email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("msg-1", nil)
	f.sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("opted out"))
	f.reminders.On("MarkStatus", mock.Anything, "rem-1", models.ReminderStatusSent, "").Return(nil)

	out, err := f.handler.Execute(context.Background(), &Input{ReminderID: "rem-1"})
	require.NoError(t, err)
	assert.Equal(t, "sent", out.Status)
	assert.False(t, out.SMSSent)
}

func TestHandler_Execute_SMSDisabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.SMSEnabled = false
	f := newFixture(t, cfg)
	f.reminders.On("Get", mock.Anything, "rem-1").Return(pendingReminder("high"), nil)
	f.contacts.On("GetContact", mock.Anything, "user-1").Return(subscribedContact(), nil)
	f.email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("msg-1", nil)
	f.reminders.On("MarkStatus", mock.Anything, "rem-1", models.ReminderStatusSent, "").Return(nil)

	out, err := f.handler.Execute(context.Background(), &Input{ReminderID: "rem-1"})
	require.NoError(t, err)
	assert.False(t, out.SMSSent)
	f.sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Execute_SkipsUnsubscribedUser(t *testing.T) {
	f := newFixture(t, defaultConfig())
	contact := subscribedContact()
	contact.EmailNotifications = false
	f.reminders.On("Get", mock.Anything, "rem-1").Return(pendingReminder("high"), nil)
	f.contacts.On("GetContact", mock.Anything, "user-1").Return(contact, nil)
	f.reminders.On("MarkStatus", mock.Anything, "rem-1", models.ReminderStatusSkipped,
		"user has email notifications disabled").Return(nil)

	out, err := f.handler.Execute(context.Background(), &Input{ReminderID: "rem-1"})
	require.NoError(t, err)
	assert.Equal(t, "skipped", out.Status)
	assert.Empty(t, out.NotificationID)
	assert.Nil(t, out.SentAt)
	f.email.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Execute_EmailFailureMarksFailed(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.reminders.On("Get", mock.Anything, "rem-1").Return(pendingReminder("low"), nil)
	f.contacts.On("GetContact", mock.Anything, "user-1").Return(subscribedContact(), nil)
	f.email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("throttled"))
	f.reminders.On("MarkStatus", mock.Anything, "rem-1", models.ReminderStatusFailed, "throttled").Return(nil)

	_, err := f.handler.Execute(context.Background(), &Input{ReminderID: "rem-1"})
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeNotificationSendFailed, commonerrors.CodeOf(err))
	f.reminders.AssertExpectations(t)
}

func TestHandler_Execute_RetriesFailedReminder(t *testing.T) {
	f := newFixture(t, defaultConfig())
	r := pendingReminder("low")
	r.Status = models.ReminderStatusFailed
	f.reminders.On("Get", mock.Anything, "rem-1").Return(r, nil)
	f.contacts.On("GetContact", mock.Anything, "user-1").Return(subscribedContact(), nil)
	f.email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("msg-2", nil)
	f.reminders.On("MarkStatus", mock.Anything, "rem-1", models.ReminderStatusSent, "").Return(nil)

	out, err := f.handler.Execute(context.Background(), &Input{ReminderID: "rem-1"})
	require.NoError(t, err)
	assert.Equal(t, "msg-2", out.NotificationID)
}

func TestHandler_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		setup    func(f *fixture)
		wantCode commonerrors.ErrorCode
	}{
		{
			name:     "missing reminder id",
			input:    &Input{},
			setup:    func(f *fixture) {},
			wantCode: commonerrors.ErrCodeInvalidInput,
		},
		{
			name:  "unknown reminder",
			input: &Input{ReminderID: "rem-9"},
			setup: func(f *fixture) {
				f.reminders.On("Get", mock.Anything, "rem-9").Return(nil, store.ErrReminderNotFound)
			},
			wantCode: commonerrors.ErrCodeReminderNotFound,
		},
		{
			name:  "already sent",
			input: &Input{ReminderID: "rem-1"},
			setup: func(f *fixture) {
				r := pendingReminder("low")
				r.Status = models.ReminderStatusSent
				f.reminders.On("Get", mock.Anything, "rem-1").Return(r, nil)
			},
			wantCode: commonerrors.ErrCodeReminderNotPending,
		},
		{
			name:  "user missing",
			input: &Input{ReminderID: "rem-1"},
			setup: func(f *fixture) {
				f.reminders.On("Get", mock.Anything, "rem-1").Return(pendingReminder("low"), nil)
				f.contacts.On("GetContact", mock.Anything, "user-1").Return(nil, store.ErrProfileNotFound)
			},
			wantCode: commonerrors.ErrCodeProfileNotFound,
		},
		{
			name:  "reminder lookup fails",
			input: &Input{ReminderID: "rem-1"},
			setup: func(f *fixture) {
				f.reminders.On("Get", mock.Anything, "rem-1").Return(nil, errors.New("connection reset"))
			},
			wantCode: commonerrors.ErrCodeQueryExecutionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, defaultConfig())
			tt.setup(f)

			_, err := f.handler.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, commonerrors.CodeOf(err))
		})
	}
}

func TestEmailBody(t *testing.T) {
	body := emailBody(pendingReminder("high"))
	assert.Contains(t, body, "Submit Acme application")
	assert.Contains(t, body, "Deadline is Friday")
	assert.Contains(t, body, "Priority: high")
	assert.Contains(t, body, "Fri, 23 Oct 2026 17:00 UTC")
}
