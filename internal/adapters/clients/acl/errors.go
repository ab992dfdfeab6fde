package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/clients"
	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

// maxErrorBody bounds how much of an error body is read.
const maxErrorBody = 64 << 10

// ErrorResponse is an error body from a downstream. It understands the
// wall's own envelope {"error":{"code","message","details"}}, a bare
// {"error":"text"} and Baserow's {"error":"CODE","detail":"text"}.
type ErrorResponse struct {
	Code    string
	Message string
	Details map[string]string
}

type errorEnvelope struct {
	Error   json.RawMessage `json:"error"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Detail  any             `json:"detail"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// ParseErrorResponse decodes an error body. Returns nil when the body is
// empty or carries nothing recognizable.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var env errorEnvelope
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&env); err != nil {
		return nil
	}

	out := &ErrorResponse{Code: env.Code, Message: env.Message}

	switch {
	case len(env.Error) == 0:
	case env.Error[0] == '"':
		var text string
		if err := json.Unmarshal(env.Error, &text); err == nil {
			if env.Detail != nil {
				out.Code = text
			} else {
				out.Message = text
			}
		}
	case env.Error[0] == '{':
		var nested errorDetail
		if err := json.Unmarshal(env.Error, &nested); err == nil {
			out.Code = nested.Code
			out.Message = nested.Message
			out.Details = nested.Details
		}
	}

	if detail, ok := env.Detail.(string); ok && out.Message == "" {
		out.Message = detail
	}

	if out.Code == "" && out.Message == "" && len(out.Details) == 0 {
		return nil
	}

	return out
}

// MapHTTPError turns a failed call into a domain error. clientErr takes
// precedence; otherwise resp must be a non-2xx response whose body is read
// but not closed. entityRef names the dedication for not-found errors.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, entityRef string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var errResp *ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	return mapStatusCode(resp.StatusCode, errResp, serviceName, operation, entityRef)
}

func mapClientError(err error, serviceName, operation string) error {
	var reason string

	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		reason = "circuit breaker open during " + operation
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		reason = "max retries exceeded during " + operation
	default:
		reason = fmt.Sprintf("%s failed: %v", operation, err)
	}

	return fmt.Errorf("%w: %w", domain.NewUnavailableError(serviceName, reason), err)
}

func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation, entityRef string) error {
	message := fmt.Sprintf("%s failed with status %d", operation, status)
	if errResp != nil && errResp.Message != "" {
		message = errResp.Message
	}

	switch {
	case status == http.StatusNotFound:
		return domain.NewNotFoundError(domain.EntityDedication, entityRef)

	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if errResp != nil && len(errResp.Details) > 0 {
			return domain.FieldErrors(errResp.Details)
		}

		return domain.NewValidationError("", message)

	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.NewUnavailableError(serviceName, "credentials rejected during "+operation)

	case status == http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")

	case status >= http.StatusInternalServerError:
		return domain.NewUnavailableError(serviceName, message)

	default:
		return domain.NewValidationError("", message)
	}
}
