// internal/store/profiles.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"internship-workers/internal/common/logger"
	"internship-workers/internal/matching"
	"internship-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const profileKeyPrefix = "user:profile:"

// ProfileStore reads matching profiles from Postgres through a Redis
// read-through cache. A nil Redis client disables caching.
type ProfileStore struct {
	db     *sql.DB
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewProfileStore(db *sql.DB, rdb *redis.Client, ttl time.Duration, log logger.Logger) *ProfileStore {
	return &ProfileStore{db: db, redis: rdb, ttl: ttl, logger: log}
}

func profileKey(userID string) string {
	return profileKeyPrefix + userID
}

func (s *ProfileStore) GetProfile(ctx context.Context, userID string) (*matching.UserProfile, error) {
	if p := s.cached(ctx, userID); p != nil {
		return p, nil
	}

	var skills, prefs, interests []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT skills, preferences, interests FROM users WHERE id = $1`, userID,
	).Scan(&skills, &prefs, &interests)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("query profile %s: %w", userID, err)
	}

	profile, err := decodeProfileRow(skills, prefs, interests)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, userID, profile)
	return profile, nil
}

func decodeProfileRow(skills, prefs, interests []byte) (*matching.UserProfile, error) {
	var (
		p   matching.UserProfile
		err error
	)
	if p.Skills, err = matching.DecodeList("skills", skills); err != nil {
		return nil, err
	}
	if p.Preferences, err = matching.DecodePreferences(prefs); err != nil {
		return nil, err
	}
	if p.Interests, err = matching.DecodeList("interests", interests); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileStore) cached(ctx context.Context, userID string) *matching.UserProfile {
	if s.redis == nil {
		return nil
	}
	val, err := s.redis.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("profile cache read failed", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
		return nil
	}
	p, err := matching.DecodeProfile(val)
	if err != nil {
		s.logger.Debug("discarding unreadable cached profile", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return nil
	}
	return p
}

func (s *ProfileStore) cache(ctx context.Context, userID string, p *matching.UserProfile) {
	if s.redis == nil || s.ttl <= 0 {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, profileKey(userID), data, s.ttl).Err(); err != nil {
		s.logger.Warn("profile cache write failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}

// ProfileUpdate replaces the matching fields of a user. Nil Preferences or
// Interests leave the stored value untouched.
type ProfileUpdate struct {
	Skills      []string
	Preferences *matching.Preferences
	Interests   []string
}

// UpdateProfile writes u to Postgres. It does not touch the cache; callers
// follow it with InvalidateProfile.
func (s *ProfileStore) UpdateProfile(ctx context.Context, userID string, u ProfileUpdate) error {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	var prefsJSON, interestsJSON []byte
	if u.Preferences != nil {
		if prefsJSON, err = json.Marshal(u.Preferences); err != nil {
			return err
		}
	}
	if u.Interests != nil {
		if interestsJSON, err = json.Marshal(u.Interests); err != nil {
			return err
		}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE users
		    SET skills = $2::jsonb,
		        preferences = COALESCE($3::jsonb, preferences),
		        interests = COALESCE($4::jsonb, interests),
		        updated_at = NOW()
		  WHERE id = $1`,
		userID, string(skillsJSON), nullJSON(prefsJSON), nullJSON(interestsJSON),
	)
	if err != nil {
		return fmt.Errorf("update profile %s: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile %s: %w", userID, err)
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// nullJSON passes JSON as text; pq would send a []byte as bytea.
func nullJSON(b []byte) sql.NullString {
	return sql.NullString{String: string(b), Valid: b != nil}
}

// InvalidateProfile drops the cached copy so the next read hits Postgres.
func (s *ProfileStore) InvalidateProfile(ctx context.Context, userID string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, profileKey(userID)).Err()
}

func (s *ProfileStore) GetContact(ctx context.Context, userID string) (*models.Contact, error) {
	c := models.Contact{UserID: userID}
	var phone sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT email, phone, email_notifications FROM users WHERE id = $1`, userID,
	).Scan(&c.Email, &phone, &c.EmailNotifications)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("query contact %s: %w", userID, err)
	}
	c.Phone = phone.String
	return &c, nil
}
