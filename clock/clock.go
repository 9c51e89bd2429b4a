// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Interface represents a clock with the same core functionality available as in the stdlib time package.
// Every timing decision in this module (retry delays, timeouts, debounce quiet periods, throttle intervals,
// and scheduled firings) goes through an Interface, so that tests can substitute a mock.
type Interface interface {
	Now() time.Time
	Since(time.Time) time.Duration
	Sleep(time.Duration)
	NewTicker(time.Duration) Ticker
	NewTimer(time.Duration) Timer
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (sc systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (sc systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

func (sc systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}

// OrSystem returns c, or System() if c is nil.  Option functions use this
// to make a nil clock mean "use the default".
func OrSystem(c Interface) Interface {
	if c == nil {
		return System()
	}

	return c
}
