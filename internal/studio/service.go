package studio

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"codeberg.org/renderjam/server/internal/gemini"
)

var blankLineRegex = regexp.MustCompile(`\n\s*\n`)

// Service exposes the boundary operations of the generation core. One
// turn runs at a time per service instance, enforced by the gate.
type Service struct {
	generator    Generator
	orchestrator *Orchestrator
	gate         *Gate
}

func NewService(generator Generator) *Service {
	return &Service{
		generator:    generator,
		orchestrator: NewOrchestrator(generator),
		gate:         NewGate(),
	}
}

// returns the model identifier used for text generation
func (s *Service) Model() string {
	return s.generator.Model()
}

// SingleShot performs one text-generation call without refinement.
func (s *Service) SingleShot(ctx context.Context, prompt string, attachment *gemini.Attachment) (string, error) {
	if err := s.gate.Acquire(); err != nil {
		return "", err
	}
	defer s.gate.Release()

	return s.generator.GenerateText(ctx, prompt, attachment)
}

// Refine runs the full fixed-length refinement sequence.
func (s *Service) Refine(ctx context.Context, prompt string, codeMode bool, attachment *gemini.Attachment) (string, error) {
	return s.RefineWithProgress(ctx, prompt, codeMode, attachment, nil)
}

// RefineWithProgress is Refine with a per-round callback, used by the
// WebSocket surface to stream round events.
func (s *Service) RefineWithProgress(ctx context.Context, prompt string, codeMode bool, attachment *gemini.Attachment, progress func(RoundEvent)) (string, error) {
	if err := s.gate.Acquire(); err != nil {
		return "", err
	}
	defer s.gate.Release()

	return s.orchestrator.RunWithProgress(ctx, prompt, codeMode, attachment, progress)
}

// Image generates a single image and returns it as a data URI.
func (s *Service) Image(ctx context.Context, prompt string) (string, error) {
	if err := s.gate.Acquire(); err != nil {
		return "", err
	}
	defer s.gate.Release()

	return s.generator.GenerateImage(ctx, prompt)
}

// VideoBatch generates one image per scene of a three-scene script.
// The scenes are generated concurrently; if any one fails the whole
// batch fails and no partial frame set is returned. On success the
// frames come back in script order regardless of completion order.
func (s *Service) VideoBatch(ctx context.Context, script string) ([]string, error) {
	scenes, err := SplitScenes(script)
	if err != nil {
		return nil, err
	}

	if err := s.gate.Acquire(); err != nil {
		return nil, err
	}
	defer s.gate.Release()

	frames := make([]string, len(scenes))
	errs := make([]error, len(scenes))

	var wg sync.WaitGroup
	for i, scene := range scenes {
		wg.Add(1)

		go func(i int, scene string) {
			defer wg.Done()
			frames[i], errs[i] = s.generator.GenerateImage(ctx, scene)
		}(i, scene)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return frames, nil
}

// SplitScenes splits a video script into its blank-line-separated
// scene descriptions and rejects anything but exactly three non-empty
// scenes, before any network call is made.
func SplitScenes(script string) ([]string, error) {
	raw := blankLineRegex.Split(strings.TrimSpace(script), -1)

	scenes := make([]string, 0, len(raw))
	for _, scene := range raw {
		scene = strings.TrimSpace(scene)
		if scene != "" {
			scenes = append(scenes, scene)
		}
	}

	if len(scenes) != videoSceneCount {
		return nil, &UserInputError{
			Message: fmt.Sprintf("video mode requires exactly %d scene descriptions separated by blank lines, got %d", videoSceneCount, len(scenes)),
		}
	}

	return scenes, nil
}
