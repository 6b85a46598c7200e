package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"time"

	"codeberg.org/renderjam/server/internal/logger"
)

// Policy controls retry behavior for a single outbound call.
// The delay before retrying attempt i (0-indexed) is
// InitialDelay * Multiplier^i.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
}

// policy used for all generation calls: 5 attempts, 1s initial delay, doubling
var DefaultPolicy = Policy{
	MaxAttempts:  5,
	InitialDelay: 1000 * time.Millisecond,
	Multiplier:   2,
}

// returns the backoff delay after the given 0-indexed attempt
func (p Policy) Delay(attempt int) time.Duration {
	return time.Duration(float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt)))
}

// Invoker executes a single outbound HTTP call under a retry policy.
// It has no knowledge of payload semantics: callers supply a request
// factory (a fresh request per attempt, bodies are single-use) and a
// destination for the decoded JSON response.
type Invoker struct {
	policy     Policy
	httpClient *http.Client

	// sleep is replaceable in tests to avoid real backoff waits
	sleep func(ctx context.Context, d time.Duration) error
}

func NewInvoker(policy Policy, httpClient *http.Client) *Invoker {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	return &Invoker{
		policy:     policy,
		httpClient: httpClient,
		sleep:      sleepContext,
	}
}

// Invoke performs the call, retrying on rate-limited and recoverable
// outcomes, and decodes the successful JSON body into out.
//
// Outcome classification per attempt:
//   - HTTP 429: rate limited, retryable
//   - other non-2xx: recoverable, message parsed from the error body
//   - transport or body-decode failure: recoverable
//   - 2xx with decodable body: success
//
// When the final attempt fails the terminal error depends on the last
// classified outcome: ErrRateLimitExhausted if we were still being
// rate-limited, otherwise a RetriesExhaustedError carrying the last
// failure message.
func (iv *Invoker) Invoke(ctx context.Context, build func() (*http.Request, error), out any) error {
	var lastRateLimited bool
	var lastMessage string

	for attempt := 0; attempt < iv.policy.MaxAttempts; attempt++ {
		rateLimited, message, err := iv.attempt(ctx, build, out)
		if err == nil {
			return nil
		}

		// request construction failures are not retryable
		var rec *recoverableError
		if !rateLimited && !asRecoverable(err, &rec) {
			return err
		}

		lastRateLimited = rateLimited
		lastMessage = message

		if attempt == iv.policy.MaxAttempts-1 {
			break
		}

		delay := iv.policy.Delay(attempt)

		logger.Warn("gemini request failed, retrying",
			"attempt", attempt+1,
			"max_attempts", iv.policy.MaxAttempts,
			"delay", delay,
			"rate_limited", rateLimited,
			"reason", message,
		)

		if err := iv.sleep(ctx, delay); err != nil {
			return err
		}
	}

	if lastRateLimited {
		return ErrRateLimitExhausted
	}

	return &RetriesExhaustedError{
		Attempts: iv.policy.MaxAttempts,
		Message:  lastMessage,
	}
}

// performs one attempt and classifies its outcome
func (iv *Invoker) attempt(ctx context.Context, build func() (*http.Request, error), out any) (rateLimited bool, message string, err error) {
	req, err := build()
	if err != nil {
		return false, "", fmt.Errorf("failed to build request: %w", err)
	}

	req = req.WithContext(ctx)

	resp, err := iv.httpClient.Do(req)
	if err != nil {
		return false, err.Error(), &recoverableError{message: err.Error()}
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusTooManyRequests {
		// no body parsing required, the status alone classifies the outcome
		_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return true, "rate limited", &recoverableError{message: "rate limited"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err.Error(), &recoverableError{message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := parseErrorBody(body, resp.StatusCode)
		return false, msg, &recoverableError{message: msg}
	}

	// decode into a fresh value: a failed attempt must not leave
	// partially populated fields behind for a later attempt
	fresh := reflect.New(reflect.TypeOf(out).Elem())

	if err := json.Unmarshal(body, fresh.Interface()); err != nil {
		// a malformed JSON body is retried exactly like a transport error
		msg := fmt.Sprintf("failed to decode response: %v", err)
		return false, msg, &recoverableError{message: msg}
	}

	reflect.ValueOf(out).Elem().Set(fresh.Elem())

	return false, "", nil
}

// extracts a human-readable message from a JSON error body,
// falling back to the HTTP status
func parseErrorBody(body []byte, status int) string {
	var envelope apiErrorEnvelope

	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}

	return fmt.Sprintf("request failed with status %d", status)
}

func asRecoverable(err error, target **recoverableError) bool {
	rec, ok := err.(*recoverableError)
	if !ok {
		return false
	}

	*target = rec

	return true
}

// context-aware sleep used between attempts
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
