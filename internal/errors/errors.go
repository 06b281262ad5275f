package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gin-gonic/gin"
)

// ErrorCategory defines the type of error for proper handling
type ErrorCategory string

const (
	CategoryValidation    ErrorCategory = "validation"
	CategoryIncomplete    ErrorCategory = "incomplete_input"
	CategoryOutOfRange    ErrorCategory = "out_of_range_answer"
	CategoryConfiguration ErrorCategory = "invalid_configuration"
	CategoryNotFound      ErrorCategory = "not_found"
	CategoryInternal      ErrorCategory = "internal"
)

// AppError wraps an errbuilder error with transport context.
type AppError struct {
	*errbuilder.ErrBuilder
	Category   ErrorCategory `json:"category"`
	HTTPStatus int           `json:"http_status"`
	Timestamp  time.Time     `json:"timestamp"`
	StackTrace string        `json:"stack_trace,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	codeStr := "INTERNAL_ERROR"
	switch e.Category {
	case CategoryValidation:
		codeStr = "VALIDATION_ERROR"
	case CategoryIncomplete:
		codeStr = "INCOMPLETE_INPUT"
	case CategoryOutOfRange:
		codeStr = "OUT_OF_RANGE_ANSWER"
	case CategoryConfiguration:
		codeStr = "INVALID_CONFIGURATION"
	case CategoryNotFound:
		codeStr = "NOT_FOUND"
	}
	return fmt.Sprintf("[%s] %s", codeStr, e.ErrBuilder.Msg)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

// NewAppError creates an AppError from errbuilder with additional context
func NewAppError(builder *errbuilder.ErrBuilder, category ErrorCategory, httpStatus int) *AppError {
	return &AppError{
		ErrBuilder: builder,
		Category:   category,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now(),
	}
}

// NewValidationError creates a generic request validation error.
func NewValidationError(message string, details ...interface{}) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)

	if len(details) > 0 {
		errorMap := errbuilder.ErrorMap{}
		errorMap.Set("validation_details", fmt.Errorf("%v", details[0]))
		builder = builder.WithDetails(errbuilder.NewErrDetails(errorMap))
	}

	return NewAppError(builder, CategoryValidation, http.StatusBadRequest)
}

// NewIncompleteInput reports missing answers for defined questions.
// A result is undefined until every answer of the axis is supplied, so
// this is never silently defaulted.
func NewIncompleteInput(axisID string, missing []string) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("axis", errors.New(axisID))
	errorMap.Set("missing_questions", fmt.Errorf("%v", missing))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("incomplete input: %d answer(s) missing for axis %q", len(missing), axisID)).
		WithDetails(errbuilder.NewErrDetails(errorMap))

	return NewAppError(builder, CategoryIncomplete, http.StatusBadRequest)
}

// NewOutOfRangeAnswer reports an answer outside the declared scale.
func NewOutOfRangeAnswer(questionID string, value, lo, hi float64) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("question", errors.New(questionID))
	errorMap.Set("value", fmt.Errorf("%v", value))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("answer %v for question %q outside range [%v, %v]", value, questionID, lo, hi)).
		WithDetails(errbuilder.NewErrDetails(errorMap))

	return NewAppError(builder, CategoryOutOfRange, http.StatusBadRequest)
}

// NewInvalidConfiguration reports a malformed questionnaire definition,
// detected at load time rather than scoring time.
func NewInvalidConfiguration(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryConfiguration, http.StatusInternalServerError)
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(message)

	return NewAppError(builder, CategoryNotFound, http.StatusNotFound)
}

// NewInternalError creates an internal server error.
func NewInternalError(message string, cause error) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("internal_details", errors.New(message))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("Internal server error").
		WithDetails(errbuilder.NewErrDetails(errorMap))

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	appErr := NewAppError(builder, CategoryInternal, http.StatusInternalServerError)

	if gin.Mode() == gin.DebugMode || gin.Mode() == gin.TestMode {
		appErr.StackTrace = captureStackTrace()
	}

	return appErr
}

// captureStackTrace captures a stack trace for debugging
func captureStackTrace() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// ErrorHandler is a Gin middleware that provides centralized error handling
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			appErr := ToAppError(err)
			LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
	}
}

// RecoveryHandler provides panic recovery with structured error responses
func RecoveryHandler() gin.HandlerFunc {
	return gin.RecoveryWithWriter(nil, func(c *gin.Context, err interface{}) {
		appErr := NewInternalError(
			fmt.Sprintf("Panic recovered: %v", err),
			fmt.Errorf("%v", err),
		)
		appErr.StackTrace = captureStackTrace()

		LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
	})
}

// ToAppError converts any error to an AppError
func ToAppError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if ebErr, ok := err.(*errbuilder.ErrBuilder); ok {
		return NewAppError(ebErr, CategoryInternal, http.StatusInternalServerError)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		builder := errbuilder.New().
			WithCode(errbuilder.CodeDeadlineExceeded).
			WithMsg("Request cancelled").
			WithCause(err)
		return NewAppError(builder, CategoryInternal, http.StatusGatewayTimeout)
	}

	return NewInternalError("An unexpected error occurred", err)
}

// LogError logs an error with appropriate level and context
func LogError(c *gin.Context, err *AppError) {
	logEntry := slog.With(
		"error_category", err.Category,
		"error_code", err.ErrBuilder.ErrCode(),
		"http_status", err.HTTPStatus,
		"ip", c.ClientIP(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	switch err.Category {
	case CategoryValidation, CategoryIncomplete, CategoryOutOfRange, CategoryNotFound:
		logEntry.Warn(err.ErrBuilder.Msg)
	case CategoryConfiguration:
		logEntry.Error(err.ErrBuilder.Msg, "cause", err.ErrBuilder.Unwrap())
	default:
		if cause := err.ErrBuilder.Unwrap(); cause != nil {
			logEntry.Error(err.ErrBuilder.Msg, "cause", cause)
		} else {
			logEntry.Error(err.ErrBuilder.Msg)
		}
	}

	if err.StackTrace != "" && (gin.Mode() == gin.DebugMode || gin.Mode() == gin.TestMode) {
		logEntry.Debug("stack_trace", "trace", err.StackTrace)
	}
}

// IsCategory reports whether err is an AppError of the given category.
func IsCategory(err error, category ErrorCategory) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Category == category
}

// WrapError wraps an error with additional context
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(message, args...), err)
}
