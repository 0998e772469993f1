// internal/store/reminders.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"internship-workers/internal/models"
)

type ReminderStore struct {
	db *sql.DB
}

func NewReminderStore(db *sql.DB) *ReminderStore {
	return &ReminderStore{db: db}
}

func (s *ReminderStore) Get(ctx context.Context, id string) (*models.Reminder, error) {
	r := models.Reminder{ID: id}
	var (
		applicationID sql.NullString
		status        string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, application_id, title, message, priority, status, due_at
		FROM reminders
		WHERE id = $1`, id,
	).Scan(&r.UserID, &applicationID, &r.Title, &r.Message, &r.Priority, &status, &r.DueAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("query reminder %s: %w", id, err)
	}
	r.ApplicationID = applicationID.String
	r.Status = models.ReminderStatus(status)
	return &r, nil
}

// MarkStatus records the delivery outcome. sent_at is stamped only for sent
// reminders; reason is stored for failures and skips.
func (s *ReminderStore) MarkStatus(ctx context.Context, id string, status models.ReminderStatus, reason string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reminders
		SET status = $2,
		    status_reason = $3,
		    sent_at = CASE WHEN $2 = 'sent' THEN NOW() ELSE sent_at END,
		    updated_at = NOW()
		WHERE id = $1`, id, string(status), nullString(reason))
	if err != nil {
		return fmt.Errorf("update reminder %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reminder %s: %w", id, err)
	}
	if n == 0 {
		return ErrReminderNotFound
	}
	return nil
}
