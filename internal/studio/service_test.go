package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSplitScenes(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		want    []string
		wantErr bool
	}{
		{
			name:   "three scenes",
			script: "a sunrise\n\na city street\n\na harbor at night",
			want:   []string{"a sunrise", "a city street", "a harbor at night"},
		},
		{
			name:   "whitespace-only separators collapse",
			script: "  a sunrise  \n   \n\ta city street\n\n\n\na harbor at night\n",
			want:   []string{"a sunrise", "a city street", "a harbor at night"},
		},
		{
			name:    "two scenes rejected",
			script:  "a sunrise\n\na city street",
			wantErr: true,
		},
		{
			name:    "four scenes rejected",
			script:  "one\n\ntwo\n\nthree\n\nfour",
			wantErr: true,
		},
		{
			name:    "empty script rejected",
			script:  "   \n\n ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenes, err := SplitScenes(tt.script)

			if tt.wantErr {
				var inputErr *UserInputError
				if !errors.As(err, &inputErr) {
					t.Fatalf("expected UserInputError, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(scenes) != len(tt.want) {
				t.Fatalf("expected %d scenes, got %d", len(tt.want), len(scenes))
			}

			for i, scene := range scenes {
				if scene != tt.want[i] {
					t.Errorf("scene %d: expected %q, got %q", i, tt.want[i], scene)
				}
			}
		})
	}
}

func TestVideoBatchRejectsBadScriptBeforeGenerating(t *testing.T) {
	gen := &fakeGenerator{
		imageFn: func(ctx context.Context, prompt string) (string, error) {
			t.Fatal("generator should not be reached for a rejected script")
			return "", nil
		},
	}

	svc := NewService(gen)

	_, err := svc.VideoBatch(context.Background(), "only one scene")

	var inputErr *UserInputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected UserInputError, got %v", err)
	}
}

func TestVideoBatchPreservesSceneOrder(t *testing.T) {
	// the first scene completes last; order must still follow the script
	gen := &fakeGenerator{
		imageFn: func(ctx context.Context, prompt string) (string, error) {
			if prompt == "one" {
				time.Sleep(20 * time.Millisecond)
			}
			return "frame:" + prompt, nil
		},
	}

	svc := NewService(gen)

	frames, err := svc.VideoBatch(context.Background(), "one\n\ntwo\n\nthree")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"frame:one", "frame:two", "frame:three"}
	for i, frame := range frames {
		if frame != want[i] {
			t.Errorf("frame %d: expected %q, got %q", i, want[i], frame)
		}
	}
}

func TestVideoBatchFailsWholeBatch(t *testing.T) {
	boom := errors.New("image backend down")

	gen := &fakeGenerator{
		imageFn: func(ctx context.Context, prompt string) (string, error) {
			if prompt == "two" {
				return "", boom
			}
			return "frame:" + prompt, nil
		},
	}

	svc := NewService(gen)

	frames, err := svc.VideoBatch(context.Background(), "one\n\ntwo\n\nthree")

	if !errors.Is(err, boom) {
		t.Fatalf("expected the scene error, got %v", err)
	}

	if frames != nil {
		t.Errorf("expected no partial frames, got %v", frames)
	}
}

func TestGateRejectsConcurrentTurns(t *testing.T) {
	gate := NewGate()

	if err := gate.Acquire(); err != nil {
		t.Fatalf("unexpected error on first acquire: %v", err)
	}

	if err := gate.Acquire(); !errors.Is(err, ErrTurnInFlight) {
		t.Fatalf("expected ErrTurnInFlight, got %v", err)
	}

	gate.Release()

	if err := gate.Acquire(); err != nil {
		t.Fatalf("expected the slot to free after release, got %v", err)
	}
}

func TestGateReleaseWhenIdleIsNoop(t *testing.T) {
	gate := NewGate()
	gate.Release()

	if err := gate.Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceSerializesTurns(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	gen := &fakeGenerator{
		outputs: func(call int) (string, error) {
			close(started)
			<-release
			return "done", nil
		},
	}

	svc := NewService(gen)

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		if _, err := svc.SingleShot(context.Background(), "slow turn", nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	<-started

	// a second submission while the first turn holds the slot
	if _, err := svc.Refine(context.Background(), "second turn", false, nil); !errors.Is(err, ErrTurnInFlight) {
		t.Errorf("expected ErrTurnInFlight, got %v", err)
	}

	close(release)
	wg.Wait()

	// the slot frees once the first turn completes
	if _, err := svc.Image(context.Background(), "after"); err != nil {
		t.Errorf("expected the gate to free, got %v", err)
	}
}

func TestServiceModelDelegates(t *testing.T) {
	svc := NewService(&fakeGenerator{})

	if got := svc.Model(); got != "fake-model" {
		t.Errorf("expected the generator's model, got %q", got)
	}
}

func TestSingleShotReturnsGeneratorOutput(t *testing.T) {
	gen := &fakeGenerator{
		outputs: func(call int) (string, error) {
			return fmt.Sprintf("answer %d", call), nil
		},
	}

	svc := NewService(gen)

	out, err := svc.SingleShot(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "answer 0" {
		t.Errorf("expected a single call's output, got %q", out)
	}

	if len(gen.prompts) != 1 {
		t.Errorf("expected exactly one generation call, got %d", len(gen.prompts))
	}

	if gen.prompts[0] != "hello" {
		t.Errorf("expected the prompt untouched, got %q", gen.prompts[0])
	}
}
