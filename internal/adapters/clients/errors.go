// Package clients provides the instrumented HTTP client used for every
// outbound call: song metadata, the remote dedication API and Baserow.
package clients

import "errors"

// Transport-level failures. Adapters in acl translate these into domain errors.
var (
	// ErrCircuitOpen is returned without calling the downstream while the
	// breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last failure of a retried request.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")

	// ErrRequestFailed wraps the failure of a request that is sent only once.
	ErrRequestFailed = errors.New("request failed")
)
