// internal/store/store.go
package store

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrInternshipNotFound   = errors.New("internship not found")
	ErrReminderNotFound     = errors.New("reminder not found")
	ErrDuplicateApplication = errors.New("application already exists")
)

const uniqueViolation = "23505"
