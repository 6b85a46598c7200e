package studio

import (
	"context"
	"fmt"

	"codeberg.org/renderjam/server/internal/gemini"
	"codeberg.org/renderjam/server/internal/logger"
)

// Orchestrator drives a fixed-length sequence of text-generation calls,
// each feeding the previous round's output back as context. The loop
// always performs exactly TotalRefinementSteps calls: round 3's prompt
// tells the model it may stop early, but no code path exits the loop.
type Orchestrator struct {
	generator TextGenerator
}

func NewOrchestrator(generator TextGenerator) *Orchestrator {
	return &Orchestrator{generator: generator}
}

// Run executes the refinement sequence and returns only the final
// round's output.
func (o *Orchestrator) Run(ctx context.Context, prompt string, codeMode bool, attachment *gemini.Attachment) (string, error) {
	return o.RunWithProgress(ctx, prompt, codeMode, attachment, nil)
}

// RunWithProgress is Run with a per-round callback (may be nil). The
// attachment, if any, is supplied only on round 0. An error from any
// round aborts the remaining rounds; partial results are discarded.
func (o *Orchestrator) RunWithProgress(ctx context.Context, prompt string, codeMode bool, attachment *gemini.Attachment, progress func(RoundEvent)) (string, error) {
	var priorOutput string

	for step := 0; step < TotalRefinementSteps; step++ {
		sc := StepContext{
			StepIndex:      step,
			TotalSteps:     TotalRefinementSteps,
			OriginalPrompt: prompt,
			PriorOutput:    priorOutput,
			CodeMode:       codeMode,
		}

		var att *gemini.Attachment
		if step == 0 {
			att = attachment
		}

		output, err := o.generator.GenerateText(ctx, buildRoundPrompt(sc), att)
		if err != nil {
			return "", fmt.Errorf("refinement round %d failed: %w", step+1, err)
		}

		logger.Debug("refinement round completed",
			"step", step+1,
			"total_steps", TotalRefinementSteps,
			"output_length", len(output),
		)

		priorOutput = output

		if progress != nil {
			progress(RoundEvent{
				Step:       step + 1,
				TotalSteps: TotalRefinementSteps,
				Output:     output,
			})
		}
	}

	return priorOutput, nil
}
