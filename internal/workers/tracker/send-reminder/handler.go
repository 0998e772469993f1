// internal/workers/tracker/send-reminder/handler.go
package sendreminder

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"internship-workers/internal/common/camunda"
	"internship-workers/internal/common/errors"
	"internship-workers/internal/common/logger"
	"internship-workers/internal/common/metrics"
	"internship-workers/internal/models"
	"internship-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"golang.org/x/time/rate"
)

const (
	TaskType = "send-reminder"

	channelEmail = "email"
	channelSMS   = "sms"
)

type ReminderStore interface {
	Get(ctx context.Context, id string) (*models.Reminder, error)
	MarkStatus(ctx context.Context, id string, status models.ReminderStatus, reason string) error
}

type ContactSource interface {
	GetContact(ctx context.Context, userID string) (*models.Contact, error)
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config    *Config
	reminders ReminderStore
	contacts  ContactSource
	email     EmailSender
	sms       SMSSender
	limiter   *rate.Limiter
	runner    *camunda.JobRunner
	logger    logger.Logger
	now       func() time.Time
}

// NewHandler accepts a nil sms sender; SMS is then never attempted.
func NewHandler(config *Config, reminders ReminderStore, contacts ContactSource, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	limit := rate.Inf
	if config.RatePerSecond > 0 {
		limit = rate.Limit(config.RatePerSecond)
	}
	burst := config.Burst
	if burst < 1 {
		burst = 1
	}
	return &Handler{
		config:    config,
		reminders: reminders,
		contacts:  contacts,
		email:     email,
		sms:       sms,
		limiter:   rate.NewLimiter(limit, burst),
		runner:    camunda.NewJobRunner(TaskType, config.Timeout, log),
		logger:    log,
		now:       time.Now,
	}
}

func (h *Handler) Runner() *camunda.JobRunner {
	return h.runner
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := h.runner.Decode(job, &input); err != nil {
		h.runner.Fail(client, job, err)
		return
	}

	h.runner.Run(client, job, func(ctx context.Context) (interface{}, error) {
		return h.Execute(ctx, &input)
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ReminderID == "" {
		return nil, errors.NewInvalidInputError("reminderId is required")
	}

	reminder, err := h.reminders.Get(ctx, input.ReminderID)
	if err != nil {
		if stderrors.Is(err, store.ErrReminderNotFound) {
			return nil, errors.NewReminderNotFoundError(input.ReminderID)
		}
		return nil, errors.FromQueryError("reminder", err)
	}
	// failed reminders come back through job retries
	if reminder.Status != models.ReminderStatusPending && reminder.Status != models.ReminderStatusFailed {
		return nil, errors.NewReminderNotPendingError(reminder.ID, string(reminder.Status))
	}

	contact, err := h.contacts.GetContact(ctx, reminder.UserID)
	if err != nil {
		if stderrors.Is(err, store.ErrProfileNotFound) {
			return nil, errors.NewProfileNotFoundError(reminder.UserID)
		}
		return nil, errors.FromQueryError("user_contact", err)
	}

	if reason := h.skipReason(contact); reason != "" {
		if err := h.mark(ctx, reminder.ID, models.ReminderStatusSkipped, reason); err != nil {
			return nil, err
		}
		metrics.NotificationsSent.WithLabelValues(channelEmail, string(models.ReminderStatusSkipped)).Inc()
		h.logger.Info("reminder skipped", map[string]interface{}{
			"reminderId": reminder.ID,
			"reason":     reason,
		})
		return &Output{Status: string(models.ReminderStatusSkipped)}, nil
	}

	messageID, err := h.sendEmail(ctx, contact.Email, reminder)
	if err != nil {
		metrics.NotificationsSent.WithLabelValues(channelEmail, string(models.ReminderStatusFailed)).Inc()
		if markErr := h.mark(ctx, reminder.ID, models.ReminderStatusFailed, err.Error()); markErr != nil {
			h.logger.Error("failed to record delivery failure", map[string]interface{}{
				"reminderId": reminder.ID,
				"error":      markErr.Error(),
			})
		}
		return nil, errors.NewNotificationSendFailedError(channelEmail, err)
	}
	metrics.NotificationsSent.WithLabelValues(channelEmail, string(models.ReminderStatusSent)).Inc()

	smsSent := h.maybeSendSMS(ctx, contact, reminder)

	if err := h.mark(ctx, reminder.ID, models.ReminderStatusSent, ""); err != nil {
		return nil, err
	}
	sentAt := h.now().UTC().Format(time.RFC3339)

	h.logger.Info("reminder delivered", map[string]interface{}{
		"reminderId":     reminder.ID,
		"notificationId": messageID,
		"sms":            smsSent,
	})

	return &Output{
		NotificationID: messageID,
		Status:         string(models.ReminderStatusSent),
		SentAt:         &sentAt,
		SMSSent:        smsSent,
	}, nil
}

func (h *Handler) skipReason(c *models.Contact) string {
	switch {
	case !h.config.EmailEnabled || h.email == nil:
		return "email delivery disabled"
	case !c.EmailNotifications:
		return "user has email notifications disabled"
	case strings.TrimSpace(c.Email) == "":
		return "user has no email address"
	}
	return ""
}

func (h *Handler) sendEmail(ctx context.Context, to string, r *models.Reminder) (string, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return h.email.SendEmail(ctx, to, "Reminder: "+r.Title, emailBody(r))
}

// maybeSendSMS only reports; an SMS failure never fails a delivered email.
func (h *Handler) maybeSendSMS(ctx context.Context, c *models.Contact, r *models.Reminder) bool {
	if !h.config.SMSEnabled || h.sms == nil || c.Phone == "" || r.Priority != models.PriorityHigh {
		return false
	}
	if _, err := h.sms.SendSMS(ctx, c.Phone, smsBody(r)); err != nil {
		metrics.NotificationsSent.WithLabelValues(channelSMS, string(models.ReminderStatusFailed)).Inc()
		h.logger.Warn("sms delivery failed", map[string]interface{}{
			"reminderId": r.ID,
			"error":      err.Error(),
		})
		return false
	}
	metrics.NotificationsSent.WithLabelValues(channelSMS, string(models.ReminderStatusSent)).Inc()
	return true
}

func (h *Handler) mark(ctx context.Context, id string, status models.ReminderStatus, reason string) error {
	if err := h.reminders.MarkStatus(ctx, id, status, reason); err != nil {
		if stderrors.Is(err, store.ErrReminderNotFound) {
			return errors.NewReminderNotFoundError(id)
		}
		return errors.FromQueryError("reminder_status", err)
	}
	return nil
}

func emailBody(r *models.Reminder) string {
	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteString("\n\n")
	if r.Message != "" {
		b.WriteString(r.Message)
		b.WriteString("\n\n")
	}
	if r.Priority != "" {
		fmt.Fprintf(&b, "Priority: %s\n", r.Priority)
	}
	fmt.Fprintf(&b, "Scheduled for: %s\n", r.DueAt.UTC().Format("Mon, 02 Jan 2006 15:04 MST"))
	return b.String()
}

func smsBody(r *models.Reminder) string {
	return fmt.Sprintf("Reminder: %s (due %s)", r.Title, r.DueAt.UTC().Format("Jan 02 15:04 MST"))
}
