// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package debounce

import (
	"sync"
	"time"

	"github.com/xmidt-org/parallel/clock"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// DefaultQuiet is the quiet period used when a nonpositive one is supplied.
const DefaultQuiet = time.Second

// Interface is the behavior of a Debouncer.
type Interface interface {
	// Submit makes f the pending function and restarts the quiet period.
	Submit(f func())

	// Discharge runs the pending function, if any, immediately on the calling goroutine.
	Discharge()

	// Cancel drops the pending function, if any.
	Cancel()
}

// delayer is a single pending invocation.  Its goroutine exits when the timer fires or stop is closed.
type delayer struct {
	f     func()
	timer clock.Timer
	stop  chan struct{}
}

// Debouncer is the standard Interface implementation.
type Debouncer struct {
	quiet    time.Duration
	clock    clock.Interface
	logger   *zap.Logger
	measures *measures.Measures

	lock sync.Mutex
	d    *delayer
}

var _ Interface = (*Debouncer)(nil)

// New creates a Debouncer with the given quiet period.
func New(quiet time.Duration, opts ...Option) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}

	db := &Debouncer{
		quiet:    quiet,
		clock:    clock.System(),
		logger:   sallust.Default(),
		measures: measures.NewNop(),
	}

	for _, o := range opts {
		o(db)
	}

	return db
}

// Func wraps trigger so that bursts of calls result in one call to trigger, made once the
// calls have stopped for the quiet period.
func Func(trigger func(), quiet time.Duration, opts ...Option) func() {
	db := New(quiet, opts...)
	return func() {
		db.Submit(trigger)
	}
}

// Quiet is the quiet period of this Debouncer.
func (db *Debouncer) Quiet() time.Duration {
	return db.quiet
}

// Pending tests whether a function is waiting to run.
func (db *Debouncer) Pending() bool {
	db.lock.Lock()
	defer db.lock.Unlock()
	return db.d != nil
}

func (db *Debouncer) Submit(f func()) {
	db.measures.DebounceSubmitted.Add(1.0)
	d := &delayer{
		f:    f,
		stop: make(chan struct{}),
	}

	// the installed delayer always holds the newest timer
	db.lock.Lock()
	d.timer = db.clock.NewTimer(db.quiet)
	if db.d != nil {
		close(db.d.stop)
	}

	db.d = d
	db.lock.Unlock()

	go db.wait(d)
}

func (db *Debouncer) Discharge() {
	if d := db.take(nil); d != nil {
		close(d.stop)
		db.execute(d.f)
	}
}

func (db *Debouncer) Cancel() {
	if d := db.take(nil); d != nil {
		close(d.stop)
	}
}

// take atomically clears and returns the pending delayer.  If expected is not nil, the pending
// delayer is only taken if it is expected.  This lets a fired timer lose to a barging Submit,
// Discharge, or Cancel.
func (db *Debouncer) take(expected *delayer) *delayer {
	db.lock.Lock()
	defer db.lock.Unlock()

	d := db.d
	if d == nil || (expected != nil && d != expected) {
		return nil
	}

	db.d = nil
	return d
}

func (db *Debouncer) wait(d *delayer) {
	defer d.timer.Stop()

	select {
	case <-d.timer.C():
		if db.take(d) != nil {
			db.execute(d.f)
		}

	case <-d.stop:
	}
}

func (db *Debouncer) execute(f func()) {
	if f == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			db.logger.Error("debounced function panicked", zap.Any("panic", r))
		}
	}()

	db.measures.DebounceFired.Add(1.0)
	f()
}
