package console

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Loop applies posted events one at a time on a single goroutine. Blocking
// collaborator calls run on their own goroutines through Go and post their
// completion back, so every state mutation of a console happens here.
type Loop struct {
	events   chan func()
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	inflight atomic.Int64
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		events:   make(chan func(), buffer),
		stopChan: make(chan struct{}),
	}
}

// Start runs the loop until Stop is called or ctx is done. The context is
// also handed to collaborator calls started through Go.
func (l *Loop) Start(ctx context.Context) {
	l.ctx, l.cancel = context.WithCancel(ctx)

	l.wg.Add(1)
	go l.run()
}

func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.cancel != nil {
			l.cancel()
		}
	})
	l.wg.Wait()
}

// Post enqueues fn. It reports false when the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}

	select {
	case l.events <- fn:
		return true
	case <-l.stopChan:
		zap.S().Named("console").Debug("loop stopped, dropping event")
		return false
	}
}

// Do posts fn and waits until it has run.
func (l *Loop) Do(fn func()) bool {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-l.stopChan:
		return false
	}
}

// Go runs call off the loop and posts done with its result back onto it.
// The call counts as in flight until done has run.
func Go[T any](l *Loop, call func(ctx context.Context) (T, error), done func(T, error)) {
	l.inflight.Add(1)
	go func() {
		v, err := call(l.ctx)
		if !l.Post(func() {
			defer l.inflight.Add(-1)
			done(v, err)
		}) {
			l.inflight.Add(-1)
		}
	}()
}

// Idle reports whether no call started through Go is awaiting completion.
func (l *Loop) Idle() bool {
	return l.inflight.Load() == 0
}

// Settle blocks until no call started through Go is in flight and every
// completion has been applied, including calls started by those completions.
func (l *Loop) Settle() {
	for {
		if !l.Do(func() {}) {
			return
		}
		if l.inflight.Load() == 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.stopChan:
			return
		case <-l.ctx.Done():
			return
		case fn := <-l.events:
			l.apply(fn)
		}
	}
}

func (l *Loop) apply(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Named("console").Errorw("event handler panicked", "panic", r)
		}
	}()
	fn()
}
