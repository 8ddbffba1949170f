package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by a scheduler that will produce no more frames
var ErrStopped = errors.New("scheduler stopped")

// DefaultTPS matches the host refresh rate the game was tuned for
const DefaultTPS = 60

// Scheduler paces frames. Wait blocks until the next frame is due.
type Scheduler interface {
	Wait(ctx context.Context) error
}

// TickerScheduler paces frames with a time.Ticker
type TickerScheduler struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// NewTickerScheduler creates a scheduler firing tps times per second
func NewTickerScheduler(tps int) *TickerScheduler {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return &TickerScheduler{
		ticker: time.NewTicker(time.Second / time.Duration(tps)),
		done:   make(chan struct{}),
	}
}

// Wait blocks until the next tick
func (s *TickerScheduler) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrStopped
	case <-s.ticker.C:
		return nil
	}
}

// Stop releases the ticker; later waits return ErrStopped
func (s *TickerScheduler) Stop() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
}

// ManualScheduler hands out a fixed number of frames without waiting.
// Tests use it to step the loop deterministically.
type ManualScheduler struct {
	remaining int
	waited    int
}

// NewManualScheduler creates a scheduler that allows n frames
func NewManualScheduler(n int) *ManualScheduler {
	return &ManualScheduler{remaining: n}
}

// Add grants n more frames
func (s *ManualScheduler) Add(n int) {
	s.remaining += n
}

// Waited returns the number of frames handed out
func (s *ManualScheduler) Waited() int {
	return s.waited
}

// Wait returns immediately while frames remain
func (s *ManualScheduler) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.remaining <= 0 {
		return ErrStopped
	}
	s.remaining--
	s.waited++
	return nil
}

// Limit wraps a scheduler so it stops after n frames
func Limit(s Scheduler, n int) Scheduler {
	return &limited{inner: s, left: n}
}

type limited struct {
	inner Scheduler
	left  int
}

func (l *limited) Wait(ctx context.Context) error {
	if l.left <= 0 {
		return ErrStopped
	}
	if err := l.inner.Wait(ctx); err != nil {
		return err
	}
	l.left--
	return nil
}
