package gemini

import (
	"errors"
	"fmt"
)

// all retries were consumed while the API kept rate-limiting us
var ErrRateLimitExhausted = errors.New("rate limit exceeded, please wait a moment and try again")

// all retries were consumed on transient (non-rate-limit) failures;
// carries the last underlying failure message
type RetriesExhaustedError struct {
	Attempts int
	Message  string
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %s", e.Attempts, e.Message)
}

// the API returned a success status but the expected fields were missing,
// or the payload carried an explicit error message
type MalformedResponseError struct {
	Message string
}

func (e *MalformedResponseError) Error() string {
	return e.Message
}

// the image endpoint answered successfully but produced no prediction bytes
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return e.Message
}

// classified per-attempt outcome, internal to the invoker
type recoverableError struct {
	message string
}

func (e *recoverableError) Error() string {
	return e.message
}
