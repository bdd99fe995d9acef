// Package typing implements the hero typewriter effect: a pure state machine
// that types and deletes a cycle of phrases, plus a loop that drives it on a clock.
package typing

import (
	"errors"
	"time"
)

// ErrNoPhrases is returned when a phrase list has nothing to type.
var ErrNoPhrases = errors.New("typing: phrase list is empty")

// DefaultPhrases are the subheadings cycled on the home page.
var DefaultPhrases = Phrases{
	"Red Team Engineer",
	"Security Consultant",
	"Startup Founder",
	"Continuous Learner",
}

// Phrases is the ordered list the effect cycles through.
type Phrases []string

// Validate reports ErrNoPhrases for an empty list.
func (p Phrases) Validate() error {
	if len(p) == 0 {
		return ErrNoPhrases
	}
	return nil
}

// Timings holds the pauses between ticks.
type Timings struct {
	Type  time.Duration
	Pause time.Duration
	Erase time.Duration
}

// DefaultTimings returns 100ms per typed letter, a 1.5s pause on the full
// phrase and 60ms per erased letter.
func DefaultTimings() Timings {
	return Timings{
		Type:  100 * time.Millisecond,
		Pause: 1500 * time.Millisecond,
		Erase: 60 * time.Millisecond,
	}
}

// State is the typing cursor.
type State struct {
	PhraseIndex int
	LetterIndex int
	Deleting    bool
}

// Frame is what one tick displays and how long to wait before the next one.
type Frame struct {
	Text  string
	Delay time.Duration
}

// Step runs one tick. The displayed text is truncated with the letter index as
// it was before the tick advances it. Step panics if phrases is empty; callers
// validate the list up front.
func Step(phrases Phrases, s State, t Timings) (Frame, State) {
	full := []rune(phrases[s.PhraseIndex%len(phrases)])

	text := truncate(full, s.LetterIndex)
	next := s
	if s.Deleting {
		next.LetterIndex--
	} else {
		next.LetterIndex++
	}

	if !s.Deleting && next.LetterIndex == len(full)+1 {
		next.Deleting = true
		return Frame{Text: text, Delay: t.Pause}, next
	}

	if s.Deleting {
		if next.LetterIndex <= 0 {
			next.LetterIndex = 0
			next.Deleting = false
			next.PhraseIndex = (s.PhraseIndex + 1) % len(phrases)
		}
		return Frame{Text: text, Delay: t.Erase}, next
	}

	return Frame{Text: text, Delay: t.Type}, next
}

func truncate(r []rune, n int) string {
	if n <= 0 {
		return ""
	}
	if n > len(r) {
		n = len(r)
	}
	return string(r[:n])
}
