package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// Worker runs deferred fire-and-forget units of work after a response has
// already been determined. Failures are logged and dropped, never surfaced
// to the request that scheduled them, and no ordering is guaranteed between
// tasks scheduled by concurrent requests.
type Worker struct {
	log       *zap.Logger
	ch        chan task
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func New(log *zap.Logger, bufferSize int) *Worker {
	if bufferSize <= 0 {
		bufferSize = 64
	}

	w := &Worker{
		log:  log,
		ch:   make(chan task, bufferSize),
		done: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w
}

func (w *Worker) run() {
	defer w.wg.Done()

	for {
		select {
		case t := <-w.ch:
			w.exec(t)
		case <-w.done:
			for {
				select {
				case t := <-w.ch:
					w.exec(t)
				default:
					return
				}
			}
		}
	}
}

func (w *Worker) exec(t task) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("deferred task panicked",
				zap.String("task", t.name),
				zap.Any("panic", r),
			)
		}
	}()

	// Deferred work is independent of the request lifecycle, so it runs
	// against a fresh context rather than the (possibly cancelled) request one.
	if err := t.fn(context.Background()); err != nil {
		w.log.Warn("deferred task failed",
			zap.String("task", t.name),
			zap.Error(err),
		)
	}
}

// Enqueue hands off fn without blocking the caller. When the buffer is full
// the task is dropped and counted; deferred writes are pure overwrites, so
// dropping one never corrupts state.
func (w *Worker) Enqueue(name string, fn func(ctx context.Context) error) {
	if w == nil || w.closed.Load() {
		return
	}

	select {
	case w.ch <- task{name: name, fn: fn}:
	case <-w.done:
	default:
		w.dropped.Add(1)
		w.log.Warn("deferred task dropped, buffer full", zap.String("task", name))
	}
}

// Dropped reports how many tasks were discarded because the buffer was full.
func (w *Worker) Dropped() uint64 {
	return w.dropped.Load()
}

// Close stops accepting work, drains what was already queued and waits for it.
func (w *Worker) Close() {
	if w == nil {
		return
	}
	w.closeOnce.Do(func() {
		w.closed.Store(true)
		close(w.done)
	})
	w.wg.Wait()
}
