// internal/store/applications.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"internship-workers/internal/models"

	"github.com/lib/pq"
)

type ApplicationStore struct {
	db *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

func (s *ApplicationStore) Exists(ctx context.Context, userID, internshipID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1 AND internship_id = $2)`,
		userID, internshipID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check application: %w", err)
	}
	return exists, nil
}

// Create inserts app. A unique (user_id, internship_id) violation is
// reported as ErrDuplicateApplication.
func (s *ApplicationStore) Create(ctx context.Context, app *models.Application) error {
	var score sql.NullInt64
	if app.MatchScore != nil {
		score = sql.NullInt64{Int64: int64(*app.MatchScore), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (id, user_id, internship_id, status, notes, cover_letter, match_score, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		app.ID, app.UserID, app.InternshipID, string(app.Status),
		nullString(app.Notes), nullString(app.CoverLetter), score, app.AppliedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateApplication
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// ListByUser returns the user's applications, most recent first.
func (s *ApplicationStore) ListByUser(ctx context.Context, userID string) ([]models.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, internship_id, status, match_score, applied_at
		FROM applications
		WHERE user_id = $1
		ORDER BY applied_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		app := models.Application{UserID: userID}
		var (
			status string
			score  sql.NullInt64
		)
		if err := rows.Scan(&app.ID, &app.InternshipID, &status, &score, &app.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		app.Status = models.ApplicationStatus(status)
		if score.Valid {
			v := int(score.Int64)
			app.MatchScore = &v
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return out, nil
}

func (s *ApplicationStore) AppliedInternshipIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT internship_id FROM applications WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("query applied internships: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan applied internship: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
