package llm

import (
	"context"
	"errors"
	"log"
	"net"
	"strings"
	"time"
)

// DefaultRetryAttempts is the total attempt count for the Retrying wrapper.
const DefaultRetryAttempts = 3

type failureClass int

const (
	failureTimeout failureClass = iota
	failureRateLimit
	failureServer
	failureClient
)

// Retrying wraps a Provider with bounded retries for transient transport
// failures. Client errors (bad request, auth) are returned immediately.
type Retrying struct {
	inner    Provider
	attempts int
	sleep    func(time.Duration) // overridable in tests
}

// NewRetrying wraps inner with up to attempts total calls.
func NewRetrying(inner Provider, attempts int) *Retrying {
	if attempts < 1 {
		attempts = DefaultRetryAttempts
	}
	return &Retrying{inner: inner, attempts: attempts, sleep: time.Sleep}
}

// ModelName returns the wrapped provider's model name.
func (r *Retrying) ModelName() string { return r.inner.ModelName() }

// Complete calls the wrapped provider, retrying transient failures with
// increasing backoff.
func (r *Retrying) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		text, err := r.inner.Complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		class := classifyError(err)
		if class == failureClient {
			return "", err
		}
		if attempt < r.attempts {
			log.Printf("llm retry attempt=%d model=%s err=%q", attempt, r.inner.ModelName(), err)
			r.sleep(backoffDelay(attempt))
		}
	}
	return "", lastErr
}

// classifyError sorts a transport error into retryable and non-retryable
// classes based on context state and status-code text.
func classifyError(err error) failureClass {
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return failureTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return failureRateLimit
	case strings.Contains(msg, "status 5") || strings.Contains(msg, "500") ||
		strings.Contains(msg, "502") || strings.Contains(msg, "503"):
		return failureServer
	case strings.Contains(msg, "status 4") || strings.Contains(msg, "401") ||
		strings.Contains(msg, "403") || strings.Contains(msg, "400"):
		return failureClient
	default:
		return failureServer
	}
}

func backoffDelay(attempt int) time.Duration {
	switch attempt {
	case 1:
		return 1 * time.Second
	case 2:
		return 2 * time.Second
	default:
		return 4 * time.Second
	}
}
