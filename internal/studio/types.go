package studio

import (
	"context"

	"codeberg.org/renderjam/server/internal/gemini"
)

// number of generation rounds in one refinement sequence
const TotalRefinementSteps = 10

// number of frame descriptions a video script must carry
const videoSceneCount = 3

// interface over the text-generation side of the gemini client
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, attachment *gemini.Attachment) (string, error)
	Model() string
}

// interface over the full gemini client, consumed by the service
type Generator interface {
	TextGenerator
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// StepContext carries the state of one refinement round. A fresh value
// is created per round; PriorOutput is overwritten, never merged.
type StepContext struct {
	StepIndex      int
	TotalSteps     int
	OriginalPrompt string
	PriorOutput    string // empty on step 0
	CodeMode       bool
}

// RoundEvent is emitted after each completed refinement round.
type RoundEvent struct {
	Step       int    `json:"step"`
	TotalSteps int    `json:"total_steps"`
	Output     string `json:"output"`
}

// UserInputError marks input rejected before any network call.
type UserInputError struct {
	Message string
}

func (e *UserInputError) Error() string {
	return e.Message
}
