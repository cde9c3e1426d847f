package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLoopRunsUntilSourceCloses(t *testing.T) {
	var got []time.Duration
	l := NewLoop(&StepSource{Step: 10 * time.Millisecond, Limit: 5}, func(now time.Duration) {
		got = append(got, now)
	})

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 5 || l.Frames() != 5 {
		t.Fatalf("frames = %d, want 5", len(got))
	}
	for i, now := range got {
		if want := time.Duration(i+1) * 10 * time.Millisecond; now != want {
			t.Errorf("frame %d at %v, want %v", i, now, want)
		}
	}
}

func TestLoopStopWithholdsNextFrame(t *testing.T) {
	var l *Loop
	count := 0
	l = NewLoop(&StepSource{Step: time.Millisecond}, func(time.Duration) {
		count++
		if count == 3 {
			l.Stop()
		}
	})

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if count != 3 {
		t.Errorf("frames = %d, want 3: no frame may run after Stop", count)
	}
	l.Stop() // idempotent
}

// blockingSource hands out frames only when released.
type blockingSource struct {
	release chan struct{}
	now     time.Duration
}

func (s *blockingSource) NextFrame(ctx context.Context) (time.Duration, bool) {
	select {
	case <-s.release:
		s.now += time.Millisecond
		return s.now, true
	case <-ctx.Done():
		return 0, false
	}
}

func TestLoopStopDuringWaitDropsPendingFrame(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	var mu sync.Mutex
	count := 0
	l := NewLoop(src, func(time.Duration) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	done := make(chan error)
	go func() { done <- l.Run(context.Background()) }()

	src.release <- struct{}{}
	// Wait for the first frame to land
	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		n := count
		mu.Unlock()
		if n == 1 || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
	}

	l.Stop()

	// A frame may still arrive after the stop request, unless Run has
	// already noticed the stop before waiting
	var err error
	select {
	case src.release <- struct{}{}:
		err = <-done
	case err = <-done:
	}
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("frames = %d, want 1", count)
	}
}

func TestLoopContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	l := NewLoop(&StepSource{Step: time.Millisecond}, func(time.Duration) {
		count++
		if count == 2 {
			cancel()
		}
	})

	err := l.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if count != 2 {
		t.Errorf("frames = %d, want 2", count)
	}
}

func TestLoopRejectsConcurrentRun(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	l := NewLoop(src, func(time.Duration) {})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() { done <- l.Run(ctx) }()

	// Spin until the first Run has claimed the loop
	deadline := time.Now().Add(time.Second)
	for !l.running.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := l.Run(ctx); !errors.Is(err, ErrLoopRunning) {
		t.Errorf("second Run = %v, want ErrLoopRunning", err)
	}

	cancel()
	<-done
}

func TestLoopDrivesGame(t *testing.T) {
	g := newTestGame()
	g.Post(drawings("A", "B"), "")

	l := NewLoop(&StepSource{Step: 16 * time.Millisecond, Limit: 30}, g.Frame)
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.Count() != 2 || g.FrameCount() != 30 {
		t.Errorf("count %d frames %d, want 2 and 30", g.Count(), g.FrameCount())
	}
}

func TestTickerSourcePacesFrames(t *testing.T) {
	src := NewTickerSource(2 * time.Millisecond)
	defer src.Close()

	var stamps []time.Duration
	var l *Loop
	l = NewLoop(src, func(now time.Duration) {
		stamps = append(stamps, now)
		if len(stamps) == 3 {
			l.Stop()
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(stamps) != 3 {
		t.Fatalf("frames = %d, want 3", len(stamps))
	}
	for i := 1; i < len(stamps); i++ {
		if stamps[i] <= stamps[i-1] {
			t.Errorf("timestamps not increasing: %v", stamps)
		}
	}
}

func TestTickerSourceClosesOnCancel(t *testing.T) {
	src := NewTickerSource(time.Hour)
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := src.NextFrame(ctx); ok {
		t.Error("NextFrame on a cancelled context must report closed")
	}
}
