package typing

import (
	"context"
	"time"
)

// Clock schedules the next tick.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// RealClock waits on wall-clock time.
type RealClock struct{}

func (RealClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Target receives the text of every frame.
type Target interface {
	SetText(text string) error
}

// TargetFunc adapts a function to Target.
type TargetFunc func(text string) error

func (f TargetFunc) SetText(text string) error { return f(text) }

// Loop drives Step forever on a clock.
type Loop struct {
	phrases Phrases
	timings Timings
	clock   Clock
}

// NewLoop creates a loop over phrases. A nil clock means RealClock.
func NewLoop(phrases Phrases, timings Timings, clock Clock) (*Loop, error) {
	if err := phrases.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Loop{
		phrases: phrases,
		timings: timings,
		clock:   clock,
	}, nil
}

// Run renders the first frame immediately and every following frame after
// the previous frame's delay. A nil target makes Run return at once without
// scheduling anything. Run only stops when ctx is done or the target fails.
func (l *Loop) Run(ctx context.Context, target Target) error {
	if target == nil {
		return nil
	}

	var state State
	for {
		frame, next := Step(l.phrases, state, l.timings)
		if err := target.SetText(frame.Text); err != nil {
			return err
		}
		state = next

		select {
		case <-ctx.Done():
			return nil
		case <-l.clock.After(frame.Delay):
		}
	}
}

// Frames returns the first n frames of the effect without waiting.
func (l *Loop) Frames(n int) []Frame {
	frames := make([]Frame, 0, n)
	var state State
	for i := 0; i < n; i++ {
		var f Frame
		f, state = Step(l.phrases, state, l.timings)
		frames = append(frames, f)
	}
	return frames
}
