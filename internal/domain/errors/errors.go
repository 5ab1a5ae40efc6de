package errors

import (
	"net/http"

	"savvy/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing detail
	Details() string   // Extra context (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying extra details. The copy still matches
// the original with Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches on the business error code so copies made by WithDetails
// compare equal to the predefined error.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// IsUnauthorized reports whether err maps to a 401 response.
func IsUnauthorized(err error) bool {
	appErr, ok := errors.AsType[AppError](err)

	return ok && appErr.HTTPCode() == http.StatusUnauthorized
}

// Predefined error types
var (
	// Identity
	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"Not authenticated",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Could not validate credentials",
		"",
	)

	ErrInvalidTokenType = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN_TYPE",
		"Invalid token type",
		"",
	)

	ErrInvalidUser = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_USER",
		"Invalid user",
		"",
	)

	ErrIncorrectCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INCORRECT_CREDENTIALS",
		"Incorrect username or password",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Internal server error",
		"",
	)

	ErrTokenEncodeFailed = NewBaseError(
		http.StatusInternalServerError,
		"TOKEN_ENCODE_FAILED",
		"Internal server error",
		"",
	)

	// Users
	ErrEmailInUse = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_IN_USE",
		"Email already in use",
		"",
	)

	ErrUserUpdateDenied = NewBaseError(
		http.StatusUnauthorized,
		"USER_UPDATE_DENIED",
		"You cannot update this user",
		"",
	)

	ErrUserDeleteDenied = NewBaseError(
		http.StatusUnauthorized,
		"USER_DELETE_DENIED",
		"You cannot delete this user",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// Categories
	ErrMaxCategoriesReached = NewBaseError(
		http.StatusForbidden,
		"MAX_CATEGORIES_REACHED",
		"Max categories reached",
		"",
	)

	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"Category not found or invalid for this user",
		"",
	)

	// Records
	ErrRecordNotFound = NewBaseError(
		http.StatusNotFound,
		"RECORD_NOT_FOUND",
		"Record not found",
		"",
	)

	ErrRecordDeleteDenied = NewBaseError(
		http.StatusUnauthorized,
		"RECORD_DELETE_DENIED",
		"You cannot delete this record",
		"",
	)

	ErrInvalidAmount = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_AMOUNT",
		"Amount must be greater than zero",
		"",
	)

	ErrInvalidSort = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_SORT",
		"Unsupported sort field",
		"",
	)

	// Validation
	ErrValidationFailed = NewBaseError(
		http.StatusUnprocessableEntity,
		"VALIDATION_FAILED",
		"Validation failed",
		"",
	)

	// General
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

func (e *DatabaseExecuteError) Message() string {
	return "Internal server error"
}

func (e *DatabaseExecuteError) Details() string {
	return e.details
}
