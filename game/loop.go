package game

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopRunning is returned when Run is called on a loop that is already running.
var ErrLoopRunning = errors.New("game: loop already running")

// FrameSource is the host's "next frame" primitive.
type FrameSource interface {
	// NextFrame blocks until the host is ready for another frame and
	// returns its monotonic timestamp. ok is false once the host is closing.
	NextFrame(ctx context.Context) (now time.Duration, ok bool)
}

// FrameFunc runs one frame.
type FrameFunc func(now time.Duration)

// Loop drives frames from a FrameSource until stopped.
// Frames run to completion on the calling goroutine and never overlap.
type Loop struct {
	source FrameSource
	frame  FrameFunc

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
	frames   atomic.Int64
}

// NewLoop creates a loop calling frame for every frame the source yields.
func NewLoop(source FrameSource, frame FrameFunc) *Loop {
	return &Loop{
		source:   source,
		frame:    frame,
		stopChan: make(chan struct{}),
	}
}

// Run requests frames until the source closes, Stop is called or ctx is
// done. A stop requested while waiting for a frame withholds that frame.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	for {
		if l.stopped(ctx) {
			return ctx.Err()
		}
		now, ok := l.source.NextFrame(ctx)
		if !ok || l.stopped(ctx) {
			return ctx.Err()
		}
		l.frame(now)
		l.frames.Add(1)
	}
}

// Stop cancels the loop. The frame in flight, if any, completes; no
// further frame starts. Safe to call more than once and from any goroutine.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// Frames returns the number of frames run.
func (l *Loop) Frames() int64 {
	return l.frames.Load()
}

func (l *Loop) stopped(ctx context.Context) bool {
	select {
	case <-l.stopChan:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// TickerSource paces frames on wall time. Timestamps are measured from
// the source's creation.
type TickerSource struct {
	interval time.Duration
	start    time.Time
	ticker   *time.Ticker
}

// NewTickerSource creates a source yielding a frame every interval.
func NewTickerSource(interval time.Duration) *TickerSource {
	return &TickerSource{
		interval: interval,
		start:    time.Now(),
		ticker:   time.NewTicker(interval),
	}
}

// NextFrame waits for the next tick.
func (s *TickerSource) NextFrame(ctx context.Context) (time.Duration, bool) {
	select {
	case <-s.ticker.C:
		return time.Since(s.start), true
	case <-ctx.Done():
		return 0, false
	}
}

// Close stops the underlying ticker.
func (s *TickerSource) Close() {
	s.ticker.Stop()
}

// StepSource yields synthetic timestamps a fixed step apart without
// waiting. It closes after Limit frames; zero means no limit.
type StepSource struct {
	Step  time.Duration
	Limit int64

	now   time.Duration
	count int64
}

// NextFrame returns the next synthetic timestamp.
func (s *StepSource) NextFrame(ctx context.Context) (time.Duration, bool) {
	if ctx.Err() != nil {
		return 0, false
	}
	if s.Limit > 0 && s.count >= s.Limit {
		return 0, false
	}
	s.count++
	s.now += s.Step
	return s.now, true
}
