// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrClosed is returned when a semaphore has been closed
	ErrClosed = errors.New("the semaphore has been closed")
)

// Interface represents a closeable counting semaphore.  When any acquire method is successful,
// Release *must* be called to return the resource to the semaphore.
//
// Once closed, a semaphore cannot be reopened.  Goroutines blocked in Acquire receive ErrClosed,
// as do all subsequent acquisitions.
type Interface interface {
	// Acquire blocks until a resource is available, the context is canceled, or the semaphore
	// is closed.  If the context is canceled first, ctx.Err() is returned.
	Acquire(context.Context) error

	// TryAcquire attempts to acquire a resource, returning false immediately if none was available
	// or the semaphore is closed.
	TryAcquire() bool

	// Release relinquishes control of a resource.  Releasing without a corresponding acquire
	// blocks forever.  After Close, Release returns ErrClosed without touching the resource count.
	Release() error

	// Close closes this semaphore.  A second Close returns ErrClosed.
	Close() error

	// Closed returns a channel that is closed when this semaphore has been closed.
	// This channel has similar use cases to context.Done().
	Closed() <-chan struct{}

	// Len is the number of resources currently held.
	Len() int

	// Cap is the total number of resources.
	Cap() int
}

// New constructs a semaphore with the given count.  A nonpositive count will result in a panic.
func New(count int) Interface {
	if count < 1 {
		panic("The count must be positive")
	}

	return &semaphore{
		c:      make(chan struct{}, count),
		closed: make(chan struct{}),
	}
}

// Mutex is just syntactic sugar for New(1).  The returned object is a binary semaphore.
func Mutex() Interface {
	return New(1)
}

type semaphore struct {
	c chan struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

func (s *semaphore) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

func (s *semaphore) Acquire(ctx context.Context) error {
	if s.isClosed() {
		return ErrClosed
	}

	select {
	case s.c <- struct{}{}:
		// a close may have barged in while we were waiting
		if s.isClosed() {
			<-s.c
			return ErrClosed
		}

		return nil

	case <-ctx.Done():
		return ctx.Err()

	case <-s.closed:
		return ErrClosed
	}
}

func (s *semaphore) TryAcquire() bool {
	if s.isClosed() {
		return false
	}

	select {
	case s.c <- struct{}{}:
		if s.isClosed() {
			<-s.c
			return false
		}

		return true

	default:
		return false
	}
}

func (s *semaphore) Release() error {
	if s.isClosed() {
		return ErrClosed
	}

	<-s.c
	return nil
}

func (s *semaphore) Close() (err error) {
	err = ErrClosed
	s.closeOnce.Do(func() {
		close(s.closed)
		err = nil
	})

	return
}

func (s *semaphore) Closed() <-chan struct{} {
	return s.closed
}

func (s *semaphore) Len() int {
	return len(s.c)
}

func (s *semaphore) Cap() int {
	return cap(s.c)
}
