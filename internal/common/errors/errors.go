// internal/common/errors/errors.go
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"internship-workers/internal/matching"
)

type ErrorCode string

const (
	ErrCodeInvalidInput             ErrorCode = "INVALID_INPUT"
	ErrCodeSchemaValidationFailed   ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeBulkLimitExceeded        ErrorCode = "BULK_LIMIT_EXCEEDED"
	ErrCodeProfileNotFound          ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeSkillsRequired           ErrorCode = "SKILLS_REQUIRED"
	ErrCodeInternshipNotFound       ErrorCode = "INTERNSHIP_NOT_FOUND"
	ErrCodeInternshipNotActive      ErrorCode = "INTERNSHIP_NOT_ACTIVE"
	ErrCodeDuplicateApplication     ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeReminderNotFound         ErrorCode = "REMINDER_NOT_FOUND"
	ErrCodeReminderNotPending       ErrorCode = "REMINDER_NOT_PENDING"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeCacheUnavailable         ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout            ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound            ErrorCode = "INDEX_NOT_FOUND"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeInternal                 ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid input", details, false)
}

// FromInvalidInput converts a decode failure from the matching package. Any
// other error is returned unchanged.
func FromInvalidInput(err error) error {
	var invalid *matching.InvalidInputError
	if stderrors.As(err, &invalid) {
		e := NewInvalidInputError(invalid.Error())
		if invalid.Field != "" {
			e.Metadata = map[string]interface{}{"field": invalid.Field}
		}
		return e
	}
	return err
}

func NewSchemaValidationFailedError(taskType string, problems []string) *StandardError {
	e := newError(ErrCodeSchemaValidationFailed, "Job variables failed schema validation",
		strings.Join(problems, "; "), false)
	e.Metadata = map[string]interface{}{"taskType": taskType}
	return e
}

func NewBulkLimitExceededError(requested, limit int) *StandardError {
	return newError(ErrCodeBulkLimitExceeded, "Too many internships requested",
		fmt.Sprintf("requested: %d, limit: %d", requested, limit), false)
}

func NewProfileNotFoundError(userID string) *StandardError {
	return newError(ErrCodeProfileNotFound, "User profile not found", fmt.Sprintf("userId: %s", userID), false)
}

func NewSkillsRequiredError(userID string) *StandardError {
	return newError(ErrCodeSkillsRequired, "Please add skills to your profile to get recommendations",
		fmt.Sprintf("userId: %s", userID), false)
}

func NewInternshipNotFoundError(internshipID string) *StandardError {
	return newError(ErrCodeInternshipNotFound, "Internship not found", fmt.Sprintf("internshipId: %s", internshipID), false)
}

func NewInternshipNotActiveError(internshipID, status string) *StandardError {
	return newError(ErrCodeInternshipNotActive, "Internship is not accepting applications",
		fmt.Sprintf("internshipId: %s, status: %s", internshipID, status), false)
}

func NewDuplicateApplicationError(userID, internshipID string) *StandardError {
	return newError(ErrCodeDuplicateApplication, "Application already exists",
		fmt.Sprintf("userId: %s, internshipId: %s", userID, internshipID), false)
}

func NewReminderNotFoundError(reminderID string) *StandardError {
	return newError(ErrCodeReminderNotFound, "Reminder not found", fmt.Sprintf("reminderId: %s", reminderID), false)
}

func NewReminderNotPendingError(reminderID, status string) *StandardError {
	return newError(ErrCodeReminderNotPending, "Reminder is not pending",
		fmt.Sprintf("reminderId: %s, status: %s", reminderID, status), false)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

// FromQueryError classifies a storage failure: deadline overruns become
// QUERY_TIMEOUT, malformed rows INVALID_INPUT, anything else
// QUERY_EXECUTION_FAILED.
func FromQueryError(queryType string, err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewQueryTimeoutError(queryType)
	}
	var invalid *matching.InvalidInputError
	if stderrors.As(err, &invalid) {
		return FromInvalidInput(err).(*StandardError)
	}
	return NewQueryExecutionFailedError(queryType, err)
}

func NewQueryTimeoutError(queryType string) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout", fmt.Sprintf("queryType: %s", queryType), true)
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert operation failed", err.Error(), true)
}

func NewCacheUnavailableError(err error) *StandardError {
	return newError(ErrCodeCacheUnavailable, "Cache unavailable", err.Error(), true)
}

func NewSearchQueryFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Elasticsearch query error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

func NewSearchTimeoutError(queryType string) *StandardError {
	return newError(ErrCodeSearchTimeout, "Elasticsearch query timeout", fmt.Sprintf("queryType: %s", queryType), true)
}

func NewIndexNotFoundError(indexName string) *StandardError {
	return newError(ErrCodeIndexNotFound, "Elasticsearch index not found", fmt.Sprintf("indexName: %s", indexName), false)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:             "INVALID_INPUT",
	ErrCodeSchemaValidationFailed:   "INVALID_INPUT",
	ErrCodeBulkLimitExceeded:        "INVALID_INPUT",
	ErrCodeProfileNotFound:          "PROFILE_NOT_FOUND",
	ErrCodeSkillsRequired:           "SKILLS_REQUIRED",
	ErrCodeInternshipNotFound:       "INTERNSHIP_NOT_FOUND",
	ErrCodeInternshipNotActive:      "INTERNSHIP_NOT_ACTIVE",
	ErrCodeDuplicateApplication:     "DUPLICATE_APPLICATION",
	ErrCodeReminderNotFound:         "REMINDER_NOT_FOUND",
	ErrCodeReminderNotPending:       "REMINDER_NOT_PENDING",
	ErrCodeDatabaseConnectionFailed: "DATABASE_ERROR",
	ErrCodeQueryExecutionFailed:     "DATABASE_ERROR",
	ErrCodeQueryTimeout:             "DATABASE_ERROR",
	ErrCodeDatabaseInsertFailed:     "DATABASE_ERROR",
	ErrCodeCacheUnavailable:         "CACHE_ERROR",
	ErrCodeSearchQueryFailed:        "SEARCH_ERROR",
	ErrCodeSearchTimeout:            "SEARCH_ERROR",
	ErrCodeIndexNotFound:            "SEARCH_ERROR",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeCacheUnavailable,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationSendFailed:
		return 3

	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout:
		return 2

	default:
		// business errors
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// CodeOf returns the error code carried by err, or INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "LIMIT"):
		return "VALIDATION"
	case strings.Contains(codeStr, "PROFILE") || strings.Contains(codeStr, "SKILLS"):
		return "PROFILE"
	case strings.Contains(codeStr, "INTERNSHIP") || strings.Contains(codeStr, "APPLICATION"):
		return "CATALOG"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "REMINDER"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
