// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes how many times an operation is attempted and how long to wait between attempts.
// The delay before attempt i, for i >= 2, is Delay * Multiplier^(i-2), capped at MaxDelay.
type Policy struct {
	// Attempts is the maximum number of invocations, including the first.  Values below 1 mean 1.
	Attempts int `json:"attempts"`

	// Delay is the wait before the first retry.
	Delay time.Duration `json:"delay"`

	// Multiplier grows the delay after each failed retry.  Nonpositive values mean 1, a fixed delay.
	Multiplier float64 `json:"multiplier"`

	// MaxDelay caps the delay when positive.  Otherwise backoff is unbounded.
	MaxDelay time.Duration `json:"maxDelay"`
}

// DefaultPolicy is three attempts, one second apart.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:   3,
		Delay:      time.Second,
		Multiplier: 1.0,
	}
}

func (p Policy) attempts() int {
	if p.Attempts < 1 {
		return 1
	}

	return p.Attempts
}

func (p Policy) limit(d time.Duration) time.Duration {
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}

	return d
}

func (p Policy) multiplier() float64 {
	if p.Multiplier <= 0 {
		return 1.0
	}

	return p.Multiplier
}

func (p Policy) maxDelay() time.Duration {
	if p.MaxDelay > 0 {
		return p.MaxDelay
	}

	return time.Duration(math.MaxInt64)
}

// NewBackOff returns this policy's delay schedule.  The first NextBackOff is the delay before
// the second attempt.  The schedule never stops on its own and is not randomized; the number of
// attempts is enforced by the retry loop.
func (p Policy) NewBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.limit(p.Delay)
	b.Multiplier = p.multiplier()
	b.MaxInterval = p.maxDelay()
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Next computes the delay that follows the given one.
func (p Policy) Next(delay time.Duration) time.Duration {
	p.Delay = delay
	b := p.NewBackOff()
	b.NextBackOff()
	return b.NextBackOff()
}
