package typing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(frames []Frame) []string {
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = f.Text
	}
	return out
}

func TestStep_FullCycle(t *testing.T) {
	phrases := Phrases{"abc", "de"}
	timings := DefaultTimings()

	var frames []Frame
	state := State{}
	for i := 0; i < 8; i++ {
		var f Frame
		f, state = Step(phrases, state, timings)
		frames = append(frames, f)
	}

	assert.Equal(t, []string{"", "a", "ab", "abc", "abc", "abc", "ab", "a"}, texts(frames))
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		100 * time.Millisecond,
		100 * time.Millisecond,
		1500 * time.Millisecond,
		60 * time.Millisecond,
		60 * time.Millisecond,
		60 * time.Millisecond,
		60 * time.Millisecond,
	}, []time.Duration{
		frames[0].Delay, frames[1].Delay, frames[2].Delay, frames[3].Delay,
		frames[4].Delay, frames[5].Delay, frames[6].Delay, frames[7].Delay,
	})
	assert.Equal(t, State{PhraseIndex: 1, LetterIndex: 0, Deleting: false}, state)
}

func TestStep_WrapsToFirstPhrase(t *testing.T) {
	phrases := Phrases{"ab", "c"}
	state := State{PhraseIndex: 1, LetterIndex: 1, Deleting: true}

	f, next := Step(phrases, state, DefaultTimings())

	assert.Equal(t, "c", f.Text)
	assert.Equal(t, 60*time.Millisecond, f.Delay)
	assert.Equal(t, State{PhraseIndex: 0}, next)
}

func TestStep_InvariantsHoldOverManyCycles(t *testing.T) {
	phrases := Phrases{"Red Team Engineer", "x", "héllo wörld"}
	state := State{}
	for i := 0; i < 500; i++ {
		_, state = Step(phrases, state, DefaultTimings())
		n := len([]rune(phrases[state.PhraseIndex]))
		require.GreaterOrEqual(t, state.LetterIndex, 0)
		require.LessOrEqual(t, state.LetterIndex, n+1)
		require.Less(t, state.PhraseIndex, len(phrases))
	}
}

func TestStep_VisitsEveryLengthPerPhrase(t *testing.T) {
	phrases := Phrases{"one", "three", "ü"}
	loop, err := NewLoop(phrases, DefaultTimings(), nil)
	require.NoError(t, err)

	frames := loop.Frames(100)
	pos := 0
	for cycle := 0; cycle < 2; cycle++ {
		for _, p := range phrases {
			r := []rune(p)
			for n := 0; n <= len(r); n++ {
				require.Equal(t, string(r[:n]), frames[pos].Text, "typing %q", p)
				pos++
			}
			require.Equal(t, p, frames[pos].Text)
			pos++
			for n := len(r); n >= 1; n-- {
				require.Equal(t, string(r[:n]), frames[pos].Text, "deleting %q", p)
				pos++
			}
		}
	}
}

func TestPhrases_Validate(t *testing.T) {
	assert.ErrorIs(t, Phrases{}.Validate(), ErrNoPhrases)
	assert.NoError(t, DefaultPhrases.Validate())

	_, err := NewLoop(nil, DefaultTimings(), nil)
	assert.ErrorIs(t, err, ErrNoPhrases)
}

// stepClock fires every wait immediately and remembers what was asked for.
type stepClock struct {
	waits []time.Duration
}

func (c *stepClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

var errEnough = errors.New("enough frames")

func TestLoop_RunSchedulesEachFrameDelay(t *testing.T) {
	clock := &stepClock{}
	loop, err := NewLoop(Phrases{"hi"}, DefaultTimings(), clock)
	require.NoError(t, err)

	var got []string
	target := TargetFunc(func(text string) error {
		got = append(got, text)
		if len(got) == 7 {
			return errEnough
		}
		return nil
	})

	err = loop.Run(context.Background(), target)
	require.ErrorIs(t, err, errEnough)

	assert.Equal(t, []string{"", "h", "hi", "hi", "hi", "h", ""}, got)
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		100 * time.Millisecond,
		1500 * time.Millisecond,
		60 * time.Millisecond,
		60 * time.Millisecond,
		60 * time.Millisecond,
	}, clock.waits)
}

func TestLoop_NilTargetNeverSchedules(t *testing.T) {
	clock := &stepClock{}
	loop, err := NewLoop(DefaultPhrases, DefaultTimings(), clock)
	require.NoError(t, err)

	require.NoError(t, loop.Run(context.Background(), nil))
	assert.Empty(t, clock.waits)
}

type blockingClock struct{}

func (blockingClock) After(time.Duration) <-chan time.Time { return nil }

func TestLoop_StopsOnContextCancel(t *testing.T) {
	loop, err := NewLoop(DefaultPhrases, DefaultTimings(), blockingClock{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var frames int
	target := TargetFunc(func(string) error {
		frames++
		cancel()
		return nil
	})

	require.NoError(t, loop.Run(ctx, target))
	assert.Equal(t, 1, frames)
}
