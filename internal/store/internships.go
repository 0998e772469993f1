// internal/store/internships.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"internship-workers/internal/common/logger"
	"internship-workers/internal/matching"

	"github.com/lib/pq"
)

const StatusActive = "active"

const internshipColumns = `id, title, company, description, requirements, location, type, tags, status, application_deadline`

type InternshipStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewInternshipStore(db *sql.DB, log logger.Logger) *InternshipStore {
	return &InternshipStore{db: db, logger: log}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInternship(row rowScanner) (*matching.Internship, error) {
	var (
		in                 matching.Internship
		description, loc   sql.NullString
		workType           sql.NullString
		requirements, tags []byte
		deadline           pq.NullTime
	)
	if err := row.Scan(&in.ID, &in.Title, &in.Company, &description, &requirements,
		&loc, &workType, &tags, &in.Status, &deadline); err != nil {
		return nil, err
	}
	in.Description = description.String
	in.Location = loc.String
	in.Type = matching.WorkType(workType.String)
	if deadline.Valid {
		t := deadline.Time
		in.ApplicationDeadline = &t
	}

	var err error
	if in.Requirements, err = matching.DecodeList("requirements", requirements); err != nil {
		return nil, err
	}
	if in.Tags, err = matching.DecodeList("tags", tags); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *InternshipStore) GetInternship(ctx context.Context, id string) (*matching.Internship, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+internshipColumns+` FROM internships WHERE id = $1`, id)
	in, err := scanInternship(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInternshipNotFound
		}
		var invalid *matching.InvalidInputError
		if errors.As(err, &invalid) {
			return nil, err
		}
		return nil, fmt.Errorf("query internship %s: %w", id, err)
	}
	return in, nil
}

// GetInternships loads ids in one round trip. The result is aligned with ids;
// missing or undecodable rows leave a nil entry.
func (s *InternshipStore) GetInternships(ctx context.Context, ids []string) ([]*matching.Internship, error) {
	out := make([]*matching.Internship, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+internshipColumns+` FROM internships WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query internships: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*matching.Internship, len(ids))
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			s.skipRow("bulk", err)
			continue
		}
		byID[in.ID] = in
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate internships: %w", err)
	}

	for i, id := range ids {
		out[i] = byID[id]
	}
	return out, nil
}

// ListActive returns up to limit active internships, newest first, leaving
// out excludeIDs.
func (s *InternshipStore) ListActive(ctx context.Context, limit int, excludeIDs []string) ([]*matching.Internship, error) {
	if excludeIDs == nil {
		excludeIDs = []string{}
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+internshipColumns+` FROM internships
		WHERE status = $1 AND NOT (id = ANY($2))
		ORDER BY created_at DESC
		LIMIT $3`, StatusActive, pq.Array(excludeIDs), limit)
	if err != nil {
		return nil, fmt.Errorf("query active internships: %w", err)
	}
	defer rows.Close()

	var out []*matching.Internship
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			s.skipRow("active", err)
			continue
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active internships: %w", err)
	}
	return out, nil
}

// ListRequirements samples the requirement lists of active internships.
func (s *InternshipStore) ListRequirements(ctx context.Context, limit int) ([]*matching.Internship, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, requirements FROM internships WHERE status = $1 LIMIT $2`, StatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("query requirements: %w", err)
	}
	defer rows.Close()

	var out []*matching.Internship
	for rows.Next() {
		var (
			in  matching.Internship
			raw []byte
		)
		if err := rows.Scan(&in.ID, &raw); err != nil {
			return nil, fmt.Errorf("scan requirements: %w", err)
		}
		if in.Requirements, err = matching.DecodeList("requirements", raw); err != nil {
			s.skipRow("requirements", err)
			continue
		}
		out = append(out, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requirements: %w", err)
	}
	return out, nil
}

func (s *InternshipStore) skipRow(query string, err error) {
	s.logger.Warn("skipping internship row", map[string]interface{}{
		"query": query,
		"error": err.Error(),
	})
}
