package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWorker_RunsTasks(t *testing.T) {
	w := New(zap.NewNop(), 8)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		w.Enqueue("incr", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	w.Close()

	if got := ran.Load(); got != 5 {
		t.Fatalf("ran %d tasks, want 5", got)
	}
}

func TestWorker_FailureDoesNotStopOthers(t *testing.T) {
	w := New(zap.NewNop(), 8)

	var ran atomic.Int32
	w.Enqueue("fail", func(ctx context.Context) error { return errors.New("boom") })
	w.Enqueue("panic", func(ctx context.Context) error { panic("boom") })
	w.Enqueue("ok", func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	w.Close()

	if ran.Load() != 1 {
		t.Fatal("task after failures did not run")
	}
}

func TestWorker_EnqueueAfterCloseIsNoop(t *testing.T) {
	w := New(zap.NewNop(), 8)
	w.Close()

	w.Enqueue("late", func(ctx context.Context) error {
		t.Error("late task must not run")
		return nil
	})
}

func TestWorker_FullBufferDropsWithoutBlocking(t *testing.T) {
	w := New(zap.NewNop(), 2)

	started := make(chan struct{})
	release := make(chan struct{})
	w.Enqueue("block", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	// The runner is parked on the blocked task, so these occupy the buffer.
	for i := 0; i < 2; i++ {
		w.Enqueue("fill", func(ctx context.Context) error { return nil })
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 2; i++ {
			w.Enqueue("overflow", func(ctx context.Context) error {
				t.Error("dropped task must not run")
				return nil
			})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full buffer")
	}

	if got := w.Dropped(); got != 2 {
		t.Fatalf("Dropped() = %d, want 2", got)
	}

	close(release)
	w.Close()
}
