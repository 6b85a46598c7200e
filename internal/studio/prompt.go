package studio

import (
	"fmt"
	"strings"
)

// appended to every round's prompt when code mode is enabled
const codeModeMandate = `You MUST include two fenced code blocks in your response:
1. The complete solution in the programming language the request implies.
2. A single self-contained browser-renderable HTML/JavaScript/CSS block that reproduces the same logic visually, even if no visualization was asked for.`

// rounds 1-2 and 4-8 share this escalation instruction
const escalationInstruction = `Evaluate your previous output below and continue improving and fixing it until the request is perfectly and completely satisfied. Never use negative or failure language; always present the work as progressing toward a final result.`

// round 3 frames itself as the target delivery, but the orchestrator
// never branches on it: all remaining rounds still execute
const targetDeliveryInstruction = `This round SHOULD produce the final, perfect answer. If the request is already perfectly satisfied, you may skip the remaining refinement steps and deliver the finished result now.`

// round 9 forces a direct, complete answer
const finalDeliveryInstruction = `Deliver the final, direct and complete answer now. Do not include meta-commentary about the refinement process. The request is already solved; present the delivered result.`

// assembles the prompt for one refinement round
func buildRoundPrompt(sc StepContext) string {
	if sc.StepIndex == 0 {
		if sc.CodeMode {
			return sc.OriginalPrompt + "\n\n" + codeModeMandate
		}

		return sc.OriginalPrompt
	}

	var builder strings.Builder

	switch {
	case sc.StepIndex == sc.TotalSteps-1:
		builder.WriteString(finalDeliveryInstruction)
	case sc.StepIndex == 3:
		builder.WriteString(targetDeliveryInstruction)
	case sc.StepIndex >= 4:
		builder.WriteString(fmt.Sprintf("Extended refinement step %d/%d. ", sc.StepIndex+1, sc.TotalSteps))
		builder.WriteString(escalationInstruction)
	default:
		builder.WriteString(escalationInstruction)
	}

	if sc.CodeMode {
		builder.WriteString("\n\n")
		builder.WriteString(codeModeMandate)
	}

	builder.WriteString("\n\nORIGINAL REQUEST:\n")
	builder.WriteString(sc.OriginalPrompt)
	builder.WriteString("\n\nPREVIOUS OUTPUT:\n")
	builder.WriteString(sc.PriorOutput)

	return builder.String()
}
