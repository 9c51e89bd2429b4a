// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/xmidt-org/parallel/concurrent"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/semaphore"
	"github.com/xmidt-org/parallel/xerrors"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

var (
	// ErrClosed is returned by Submit once the pool has been shut down.
	ErrClosed = errors.New("the worker pool has been shut down")

	// ErrNilTask is returned when Submit is passed a nil task.
	ErrNilTask = errors.New("a task is required")
)

// Pool is a bounded set of workers.  The zero value is not usable; create pools with New.
type Pool struct {
	workers  int
	logger   *zap.Logger
	measures *measures.Measures

	slots  semaphore.Interface
	ctx    context.Context
	cancel context.CancelFunc

	lock     sync.RWMutex
	closed   bool
	inFlight sync.WaitGroup
	active   atomic.Int32
}

// New creates a Pool.  Workers are goroutines started on demand, so an idle pool holds
// no goroutines.
func New(opts ...Option) *Pool {
	p := &Pool{
		workers:  runtime.NumCPU(),
		logger:   sallust.Default(),
		measures: measures.NewNop(),
	}

	for _, o := range opts {
		o(p)
	}

	p.slots = semaphore.Instrument(
		semaphore.New(p.workers),
		semaphore.WithFailures(p.measures.PoolRejected),
	)

	p.ctx, p.cancel = context.WithCancel(context.Background())
	return p
}

// Workers is the maximum number of tasks this pool runs at once.
func (p *Pool) Workers() int {
	return p.workers
}

// Active is the number of tasks currently running.
func (p *Pool) Active() int {
	return int(p.active.Load())
}

// Closed tests whether either form of shutdown has been requested.
func (p *Pool) Closed() bool {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.closed
}

// Submit waits for a free worker and then runs task on it.  The returned error is ErrClosed if
// the pool was shut down, or an *xerrors.InterruptedError if ctx ended before a worker was free.
// A nil return means the task has been started; its completion is not reported here.
func (p *Pool) Submit(ctx context.Context, task func(context.Context)) error {
	if task == nil {
		return ErrNilTask
	}

	return p.submit(ctx, func(taskCtx context.Context) interface{} {
		task(taskCtx)
		return nil
	})
}

// submit is Submit for tasks that recover their own panics.  A task returns the value it
// recovered, if any, so that the pool still reports the panic.
func (p *Pool) submit(ctx context.Context, task func(context.Context) interface{}) error {
	if err := ctx.Err(); err != nil {
		return xerrors.Interrupted("submit", err)
	}

	if err := p.slots.Acquire(ctx); err != nil {
		if errors.Is(err, semaphore.ErrClosed) {
			return ErrClosed
		}

		return xerrors.Interrupted("submit", err)
	}

	p.lock.RLock()
	if p.closed {
		p.lock.RUnlock()
		p.slots.Release()
		return ErrClosed
	}

	p.inFlight.Add(1)
	p.lock.RUnlock()

	// the task keeps the submitter's values, but is cancelled by either the submitter or the pool
	taskCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stopSubmitter := context.AfterFunc(ctx, cancel)
	stopPool := context.AfterFunc(p.ctx, cancel)

	go func() {
		defer p.inFlight.Done()
		defer p.slots.Release()
		defer cancel()
		defer stopPool()
		defer stopSubmitter()

		p.run(taskCtx, task)
	}()

	return nil
}

func (p *Pool) run(ctx context.Context, task func(context.Context) interface{}) {
	p.active.Add(1)
	p.measures.PoolActiveWorkers.Add(1.0)

	defer func() {
		p.active.Add(-1)
		p.measures.PoolActiveWorkers.Add(-1.0)

		if r := recover(); r != nil {
			p.panicked(r)
		}
	}()

	if r := task(ctx); r != nil {
		p.panicked(r)
		return
	}

	p.measures.PoolTasks.With(measures.OutcomeLabel, measures.SuccessOutcome).Add(1.0)
}

func (p *Pool) panicked(r interface{}) {
	p.logger.Error("task panicked", zap.Any("panic", r), zap.Stack("stack"))
	p.measures.PoolTasks.With(measures.OutcomeLabel, measures.PanicOutcome).Add(1.0)
}

// close marks the pool as shut down and wakes any blocked submitters.  It returns false if
// the pool was already closed.
func (p *Pool) close() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.closed {
		return false
	}

	p.closed = true
	p.slots.Close()
	return true
}

// Shutdown stops accepting tasks and waits for in-flight tasks to finish.  If ctx ends first,
// an *xerrors.InterruptedError is returned and the remaining tasks keep running.  Calling
// Shutdown more than once is allowed; each call waits.
func (p *Pool) Shutdown(ctx context.Context) error {
	if p.close() {
		p.logger.Debug("worker pool shutting down", zap.Int("active", p.Active()))
	}

	if err := concurrent.WaitContext(ctx, &p.inFlight); err != nil {
		p.logger.Warn("worker pool shutdown interrupted", zap.Int("active", p.Active()), zap.Error(err))
		return err
	}

	p.cancel()
	return nil
}

// ShutdownNow stops accepting tasks and cancels the context of every in-flight task.  It does
// not wait.  Tasks that ignore their context continue until they return.
func (p *Pool) ShutdownNow() {
	if p.close() {
		p.logger.Debug("worker pool shutting down now", zap.Int("active", p.Active()))
	}

	p.cancel()
}
