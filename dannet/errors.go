package dannet

import (
	"fmt"

	"github.com/wordnet-dk/dannet-mcp/errors"
)

// Sentinel errors for the transport taxonomy. Callers match these with
// errors.Is; the concrete error carries the endpoint and attempt context.
var (
	// ErrNotFound is an upstream 404. Never retried.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited is an upstream 429 that survived the retry budget.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrRetriesExhausted is a transient network failure that survived the
	// retry budget.
	ErrRetriesExhausted = errors.New("max retries exceeded")

	// ErrNoData is a response with no usable payload where one entity was
	// expected.
	ErrNoData = errors.New("no data in response")
)

// StatusError is any other non-2xx upstream response, carrying the status
// code and body text for diagnosis.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.Code, e.Body)
}
