// Package lookup resolves the profile and internship a matching job refers
// to, preferring values passed inline in the job variables.
package lookup

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"internship-workers/internal/common/errors"
	"internship-workers/internal/matching"
	"internship-workers/internal/store"
)

type ProfileSource interface {
	GetProfile(ctx context.Context, userID string) (*matching.UserProfile, error)
}

type InternshipSource interface {
	GetInternship(ctx context.Context, id string) (*matching.Internship, error)
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// Profile returns the inline profile when one is given, otherwise the stored
// profile of userID.
func Profile(ctx context.Context, src ProfileSource, userID string, inline json.RawMessage) (*matching.UserProfile, error) {
	if present(inline) {
		p, err := matching.DecodeProfile(inline)
		if err != nil {
			return nil, errors.FromInvalidInput(err)
		}
		return p, nil
	}
	if userID == "" {
		return nil, errors.NewInvalidInputError("userId or userProfile is required")
	}

	p, err := src.GetProfile(ctx, userID)
	if err != nil {
		if stderrors.Is(err, store.ErrProfileNotFound) {
			return nil, errors.NewProfileNotFoundError(userID)
		}
		return nil, errors.FromQueryError("user_profile", err)
	}
	return p, nil
}

// Internship returns the inline internship when one is given, otherwise the
// stored internship id.
func Internship(ctx context.Context, src InternshipSource, id string, inline json.RawMessage) (*matching.Internship, error) {
	if present(inline) {
		in, err := matching.DecodeInternship(inline)
		if err != nil {
			return nil, errors.FromInvalidInput(err)
		}
		if in.ID == "" {
			in.ID = id
		}
		return in, nil
	}
	if id == "" {
		return nil, errors.NewInvalidInputError("internshipId or internship is required")
	}

	in, err := src.GetInternship(ctx, id)
	if err != nil {
		if stderrors.Is(err, store.ErrInternshipNotFound) {
			return nil, errors.NewInternshipNotFoundError(id)
		}
		return nil, errors.FromQueryError("internship", err)
	}
	return in, nil
}
