package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

var (
	// ErrUnauthorized means the provider rejected the configured API key.
	ErrUnauthorized = errors.New("provider rejected the API key")

	// ErrContentFiltered means the provider withheld the output. It is
	// reported inside *ErrInvalidResponse.
	ErrContentFiltered = errors.New("output withheld by provider content filter")
)

// ErrRateLimit is a 429 from the provider.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the call went through but the output cannot be
// used: it is not JSON, fails the schema, or was filtered. Content holds
// the output as received.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers network failures and 5xx answers.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// statusError maps an SDK error carrying an HTTP status to a typed error.
// hdr may be nil when the SDK does not expose response headers.
func statusError(status int, hdr http.Header, err error) error {
	switch status {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter(hdr), Err: err}
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(hdr http.Header) time.Duration {
	if hdr == nil {
		return 0
	}
	secs, err := strconv.Atoi(hdr.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// filtered wraps raw as an invalid response withheld by the provider.
func filtered(raw json.RawMessage) error {
	return &ErrInvalidResponse{Content: raw, Err: ErrContentFiltered}
}

// Error kinds reported by ErrorKind.
const (
	KindRateLimit       = "rate_limit"
	KindInvalidResponse = "invalid_response"
	KindUnavailable     = "unavailable"
	KindUnauthorized    = "unauthorized"
	KindCanceled        = "canceled"
	KindOther           = "other"
)

// ErrorKind classifies err for logs. It returns "" for a nil error.
func ErrorKind(err error) string {
	var (
		rl  *ErrRateLimit
		inv *ErrInvalidResponse
		un  *ErrProviderUnavailable
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rl):
		return KindRateLimit
	case errors.As(err, &inv):
		return KindInvalidResponse
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &un):
		return KindUnavailable
	default:
		return KindOther
	}
}
