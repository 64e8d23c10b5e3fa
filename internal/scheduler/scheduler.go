package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/limbo/wellspring/internal/notify"
	"github.com/limbo/wellspring/pkg/entity"
)

var ErrAlreadyRunning = errors.New("scheduler is already running")

// TickStore is the slice of the reminders repository the scheduler needs:
// the coarse due query and the transactional commit of a tick's transitions.
type TickStore interface {
	DueCandidatesProvider
	SaveStates(ctx context.Context, reminders []*entity.Reminder) error
}

type Opts struct {
	// Interval between ticks. Defaults to one minute, which matches the
	// window lookahead so occurrences are not delivered twice.
	Interval time.Duration
	Window   Window
	Logger   *slog.Logger
}

// Scheduler is the periodic driver of reminder delivery. One instance is
// owned by the composition root; ticks never overlap because a single
// goroutine runs them off the ticker.
type Scheduler struct {
	store    TickStore
	selector *Selector
	sender   notify.Sender
	interval time.Duration
	logger   *slog.Logger

	running atomic.Bool
	stop    chan struct{}
	done    sync.WaitGroup
}

func New(store TickStore, sender notify.Sender, opts Opts) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	if opts.Window == (Window{}) {
		opts.Window = DefaultWindow()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Scheduler{
		store:    store,
		selector: NewSelector(store, opts.Window),
		sender:   sender,
		interval: opts.Interval,
		logger:   opts.Logger.With(slog.String("component", "scheduler")),
	}
}

// Start launches the periodic loop. It returns ErrAlreadyRunning if the
// scheduler was started before and not stopped.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	s.stop = make(chan struct{})
	s.done.Add(1)
	go s.run(ctx)
	s.logger.Info("scheduler started", slog.Duration("interval", s.interval))
	return nil
}

// Stop signals the loop to exit and blocks until the in-flight tick, if
// any, has finished. The tick's unit of work is committed or rolled back as
// a whole, never left half-applied.
func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.stop)
	s.done.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) Running() bool {
	return s.running.Load()
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.done.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one due-reminder check. The clock is read once at the start so
// the whole tick shares a single view of "due". No error thrown by a single
// reminder stops the others, and no error at all escapes to kill the loop.
func (s *Scheduler) tick(ctx context.Context) {
	now := time.Now().UTC()
	due, err := s.selector.SelectDue(ctx, now)
	if err != nil {
		s.logger.Error("checking reminders failed", slog.String("error", err.Error()))
		return
	}
	if len(due) == 0 {
		s.logger.Debug("no due reminders found")
		return
	}
	s.logger.Info("processing due reminders", slog.Int("count", len(due)))

	mutated := make([]*entity.Reminder, 0, len(due))
	for _, candidate := range due {
		s.process(ctx, candidate, now)
		mutated = append(mutated, &candidate.Reminder)
	}
	if err = s.store.SaveStates(ctx, mutated); err != nil {
		// Nothing was committed: the reminders are still pending in
		// storage and the next tick retries them.
		s.logger.Error("committing tick failed, transitions discarded", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("tick committed", slog.Int("count", len(mutated)))
}

// process decides the state transition for one due reminder:
//
//	no device token        -> cancelled
//	send failed            -> failed
//	send ok, one-time      -> completed
//	send ok, recurring     -> pending with advanced trigger time
func (s *Scheduler) process(ctx context.Context, candidate *entity.DueCandidate, now time.Time) {
	r := &candidate.Reminder
	defer func() {
		r.UpdatedAt = now
	}()
	if candidate.FCMToken == nil || *candidate.FCMToken == "" {
		s.logger.Warn("owner has no device token, cancelling reminder",
			slog.String("reminder_id", r.ID.String()),
			slog.String("user_id", r.UserID.String()),
		)
		r.Status = entity.StatusCancelled
		return
	}
	ok := s.sender.Send(ctx, *candidate.FCMToken, r.Title, r.Message, notify.ReminderData(r.ID.String(), r.Type))
	if !ok {
		s.logger.Error("delivering reminder failed",
			slog.String("reminder_id", r.ID.String()),
			slog.String("user_id", r.UserID.String()),
		)
		r.Status = entity.StatusFailed
		return
	}
	s.logger.Info("reminder delivered",
		slog.String("reminder_id", r.ID.String()),
		slog.String("user_id", r.UserID.String()),
	)
	if r.Recurring() {
		Advance(r, s.logger)
	} else {
		r.Status = entity.StatusCompleted
	}
}
