// Package dto holds the request and response shapes of the HTTP API and
// the mapping from domain errors to the error envelope.
package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
	"github.com/jsamuelsen/dedication-wall/internal/platform/logging"
)

// ErrorResponse is the envelope of every error response.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail is the body of the envelope. Details maps a request field to
// what is wrong with it.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Machine-readable error codes.
const (
	ErrorCodeNotFound    = "NOT_FOUND"
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeBadRequest  = "BAD_REQUEST"
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout     = "TIMEOUT"
	ErrorCodeInternal    = "INTERNAL_ERROR"
)

// Messages shown to people. They never carry internal detail.
const (
	MessageNotFound    = "Dedication not found"
	MessageValidation  = "Please fill in all required fields"
	MessageBadRequest  = "The request could not be read"
	MessageUnavailable = "The dedication wall is temporarily unavailable. Please try again."
	MessageTimeout     = "The request took too long. Please try again."
	MessageInternal    = "Something went wrong. Please try again."
	MessageNoRoute     = "Page not found"
)

// NewErrorResponse creates an envelope without details.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// NewErrorResponseWithDetails creates an envelope with per-field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}

// WithTraceID sets the trace ID and returns e.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode returns the status that goes with an error code.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeUnavailable, ErrorCodeTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps err to a status and envelope. Validation errors keep
// their field messages, which are written for people; everything else gets
// a fixed message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, validationResponse(err)

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, MessageNotFound)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, MessageUnavailable)

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, MessageInternal)
	}
}

func validationResponse(err error) *ErrorResponse {
	var fields domain.FieldErrors
	if errors.As(err, &fields) {
		details := make(map[string]string, len(fields))
		for k, v := range fields {
			details[k] = v
		}

		return NewErrorResponseWithDetails(ErrorCodeValidation, MessageValidation, details)
	}

	var single *domain.ValidationError
	if errors.As(err, &single) {
		resp := NewErrorResponse(ErrorCodeValidation, single.Message)
		if single.Field != "" {
			resp.Error.Details = map[string]string{single.Field: single.Message}
		}

		return resp
	}

	return NewErrorResponse(ErrorCodeValidation, MessageValidation)
}

// GetTraceID returns the trace ID of the request span, or "".
func GetTraceID(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return ""
	}

	if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}

// HandleError writes the envelope for err. Unavailable and unknown errors
// are logged with their full text, which the response never carries.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.WithTraceID(GetTraceID(c))

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			slog.Int("status", status),
			slog.Any("error", err),
			slog.String("trace_id", resp.TraceID),
		)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// HandleErrorCode writes an envelope for an adapter-level failure, such as a
// body that does not parse.
func HandleErrorCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}
