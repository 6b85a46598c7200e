package gemini

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// roundTripFunc adapts a function to http.RoundTripper
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestInvoker(rt roundTripFunc) (*Invoker, *[]time.Duration) {
	iv := NewInvoker(DefaultPolicy, &http.Client{Transport: rt})

	delays := &[]time.Duration{}
	iv.sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}

	return iv, delays
}

func buildTestRequest() (*http.Request, error) {
	return http.NewRequest(http.MethodPost, "http://api.test/generate", strings.NewReader("{}"))
}

func TestInvokeRateLimitExhausted(t *testing.T) {
	attempts := 0
	iv, delays := newTestInvoker(func(req *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(http.StatusTooManyRequests, `{}`), nil
	})

	var out struct{}
	err := iv.Invoke(context.Background(), buildTestRequest, &out)

	if !errors.Is(err, ErrRateLimitExhausted) {
		t.Fatalf("expected ErrRateLimitExhausted, got %v", err)
	}

	if attempts != 5 {
		t.Errorf("expected 5 attempts, got %d", attempts)
	}

	want := []time.Duration{
		1000 * time.Millisecond,
		2000 * time.Millisecond,
		4000 * time.Millisecond,
		8000 * time.Millisecond,
	}

	if len(*delays) != len(want) {
		t.Fatalf("expected %d backoff delays, got %d", len(want), len(*delays))
	}

	for i, d := range *delays {
		if d != want[i] {
			t.Errorf("delay %d: expected %v, got %v", i, want[i], d)
		}
	}
}

func TestInvokeRetriesExhaustedCarriesLastMessage(t *testing.T) {
	iv, _ := newTestInvoker(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError,
			`{"error": {"code": 500, "message": "model overloaded", "status": "UNAVAILABLE"}}`), nil
	})

	var out struct{}
	err := iv.Invoke(context.Background(), buildTestRequest, &out)

	var exhausted *RetriesExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected RetriesExhaustedError, got %v", err)
	}

	if exhausted.Attempts != 5 {
		t.Errorf("expected 5 attempts, got %d", exhausted.Attempts)
	}

	if exhausted.Message != "model overloaded" {
		t.Errorf("expected upstream message to survive, got %q", exhausted.Message)
	}
}

func TestInvokeSucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	iv, delays := newTestInvoker(func(req *http.Request) (*http.Response, error) {
		attempts++
		if attempts < 3 {
			return jsonResponse(http.StatusServiceUnavailable, `{}`), nil
		}
		return jsonResponse(http.StatusOK, `{"value": "ok"}`), nil
	})

	var out struct {
		Value string `json:"value"`
	}
	if err := iv.Invoke(context.Background(), buildTestRequest, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Value != "ok" {
		t.Errorf("expected decoded body, got %+v", out)
	}

	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}

	if len(*delays) != 2 {
		t.Errorf("expected 2 backoff delays, got %d", len(*delays))
	}
}

func TestInvokeRetriesMalformedSuccessBody(t *testing.T) {
	attempts := 0
	iv, _ := newTestInvoker(func(req *http.Request) (*http.Response, error) {
		attempts++
		if attempts == 1 {
			return jsonResponse(http.StatusOK, `{"value": "truncated`), nil
		}
		return jsonResponse(http.StatusOK, `{"value": "ok"}`), nil
	})

	var out struct {
		Value string `json:"value"`
	}
	if err := iv.Invoke(context.Background(), buildTestRequest, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if attempts != 2 {
		t.Errorf("expected a retry after the undecodable body, got %d attempts", attempts)
	}
}

func TestInvokeFailedDecodeLeavesNoStaleFields(t *testing.T) {
	// the first body decodes its error field before the type mismatch on
	// value aborts the attempt; nothing from it may survive the retry
	attempts := 0
	iv, _ := newTestInvoker(func(req *http.Request) (*http.Response, error) {
		attempts++
		if attempts == 1 {
			return jsonResponse(http.StatusOK, `{"error": "quota exceeded", "value": 42}`), nil
		}
		return jsonResponse(http.StatusOK, `{"value": "ok"}`), nil
	})

	var out struct {
		Error string `json:"error"`
		Value string `json:"value"`
	}
	if err := iv.Invoke(context.Background(), buildTestRequest, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if attempts != 2 {
		t.Fatalf("expected a retry after the undecodable body, got %d attempts", attempts)
	}

	if out.Error != "" {
		t.Errorf("error field from the failed attempt leaked through: %q", out.Error)
	}

	if out.Value != "ok" {
		t.Errorf("expected the successful attempt's body, got %+v", out)
	}
}

func TestInvokeRetriesTransportErrors(t *testing.T) {
	attempts := 0
	iv, _ := newTestInvoker(func(req *http.Request) (*http.Response, error) {
		attempts++
		return nil, errors.New("connection refused")
	})

	var out struct{}
	err := iv.Invoke(context.Background(), buildTestRequest, &out)

	var exhausted *RetriesExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected RetriesExhaustedError, got %v", err)
	}

	if attempts != 5 {
		t.Errorf("expected 5 attempts, got %d", attempts)
	}
}

func TestInvokeBuildErrorIsTerminal(t *testing.T) {
	calls := 0
	iv, delays := newTestInvoker(func(req *http.Request) (*http.Response, error) {
		t.Fatal("transport should not be reached")
		return nil, nil
	})

	build := func() (*http.Request, error) {
		calls++
		return nil, errors.New("bad endpoint")
	}

	var out struct{}
	err := iv.Invoke(context.Background(), build, &out)

	if err == nil {
		t.Fatal("expected an error")
	}

	if calls != 1 {
		t.Errorf("expected a single build attempt, got %d", calls)
	}

	if len(*delays) != 0 {
		t.Errorf("expected no backoff, got %d delays", len(*delays))
	}
}

func TestInvokeStopsWhenContextCanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	iv := NewInvoker(DefaultPolicy, &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(http.StatusTooManyRequests, `{}`), nil
	})})

	iv.sleep = func(sctx context.Context, d time.Duration) error {
		cancel()
		return sleepContext(sctx, d)
	}

	var out struct{}
	err := iv.Invoke(ctx, buildTestRequest, &out)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if attempts != 1 {
		t.Errorf("expected no further attempts after cancellation, got %d", attempts)
	}
}

func TestPolicyDelayDoubles(t *testing.T) {
	policy := Policy{MaxAttempts: 5, InitialDelay: 1000 * time.Millisecond, Multiplier: 2}

	for attempt, want := range []time.Duration{
		1000 * time.Millisecond,
		2000 * time.Millisecond,
		4000 * time.Millisecond,
		8000 * time.Millisecond,
	} {
		if got := policy.Delay(attempt); got != want {
			t.Errorf("Delay(%d): expected %v, got %v", attempt, want, got)
		}
	}
}
