package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/limbo/wellspring/pkg/entity"
)

// Window bounds the delivery range around "now". It is asymmetric on
// purpose: a wide lookback keeps a slow tick from dropping reminders, while
// the lookahead matches the tick period so nothing fires twice.
type Window struct {
	Lookback  time.Duration
	Lookahead time.Duration
}

func DefaultWindow() Window {
	return Window{
		Lookback:  2 * time.Minute,
		Lookahead: time.Minute,
	}
}

// Contains reports whether instant falls in (now - Lookback, now + Lookahead].
func (w Window) Contains(now, instant time.Time) bool {
	return instant.After(now.Add(-w.Lookback)) && !instant.After(now.Add(w.Lookahead))
}

// AbsoluteTrigger converts a reminder's local trigger time to the UTC
// instant it should fire at. A local clock O minutes ahead of UTC means the
// UTC instant is O minutes earlier. A nil offset means the trigger time was
// stored before offset tracking existed and is treated as already UTC;
// it must NOT be defaulted to zero and shifted.
func AbsoluteTrigger(trigger time.Time, offsetMinutes *int) time.Time {
	if offsetMinutes == nil {
		return trigger
	}
	return trigger.Add(-time.Duration(*offsetMinutes) * time.Minute)
}

type DueCandidatesProvider interface {
	FindDueCandidates(ctx context.Context) ([]*entity.DueCandidate, error)
}

// Selector narrows the store's coarse candidate set down to the reminders
// whose absolute trigger instant falls inside the delivery window.
type Selector struct {
	repo   DueCandidatesProvider
	window Window
}

func NewSelector(repo DueCandidatesProvider, window Window) *Selector {
	return &Selector{
		repo:   repo,
		window: window,
	}
}

// SelectDue is read-only: running it twice against an unmutated store with
// the same now returns the same set.
func (s *Selector) SelectDue(ctx context.Context, now time.Time) ([]*entity.DueCandidate, error) {
	candidates, err := s.repo.FindDueCandidates(ctx)
	if err != nil {
		return nil, errors.New("reminders repository error: " + err.Error())
	}
	due := make([]*entity.DueCandidate, 0, len(candidates))
	for _, c := range candidates {
		instant := AbsoluteTrigger(c.Reminder.TriggerTime, c.UTCOffsetMinutes)
		if s.window.Contains(now, instant) {
			due = append(due, c)
		}
	}
	return due, nil
}
