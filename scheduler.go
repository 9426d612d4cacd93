package ticker

import (
	"context"
	"log"
	"time"
)

// PollPeriod is how often Run checks for due work.
const PollPeriod = 100 * time.Millisecond

// Scheduler drives the two periodic activities of a board: the refresh cycle
// and the rotation tick.
//
// Both run in the single goroutine calling Poll, so a refresh cycle delays
// rotation ticks while it is running.
type Scheduler struct {
	board      *Board
	lastUpdate time.Time
	started    bool
	refresh    chan struct{}
}

// NewScheduler returns a scheduler for board. The first Poll starts a
// refresh cycle.
func NewScheduler(board *Board) *Scheduler {
	return &Scheduler{
		board:   board,
		refresh: make(chan struct{}, 1),
	}
}

// RequestRefresh asks for a refresh cycle on the next Poll. It never blocks.
func (s *Scheduler) RequestRefresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Poll runs whatever is due at now: a refresh cycle when the update interval
// has elapsed since the last one (or one was requested), then a rotation
// tick. It reports whether a refresh cycle ran.
func (s *Scheduler) Poll(ctx context.Context, now time.Time) bool {
	due := !s.started || now.Sub(s.lastUpdate) >= s.board.Settings().UpdateInterval
	select {
	case <-s.refresh:
		due = true
	default:
	}
	if due {
		s.started = true
		if err := s.board.RefreshAll(ctx); err != nil {
			log.Printf("refresh cycle: %v", err)
		}
		s.lastUpdate = now
	}
	s.board.Rotate(now)
	return due
}

// Run polls the board until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	t := time.NewTicker(PollPeriod)
	defer t.Stop()
	for {
		s.Poll(ctx, time.Now())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
