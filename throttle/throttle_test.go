// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package throttle

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xmidt-org/parallel/clock/clocktest"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/measures/measurestest"
)

func testTriggerMockClock(t *testing.T) {
	var (
		assert = assert.New(t)
		c      = new(clocktest.Mock)
		m, r   = measurestest.New(t)
		epoch  = time.Now()
		calls  int
	)

	c.OnNow(epoch).Once()
	c.OnNow(epoch).Times(3)
	c.OnNow(epoch.Add(999 * time.Millisecond)).Once()
	c.OnNow(epoch.Add(time.Second)).Once()
	c.OnNow(epoch.Add(1500 * time.Millisecond)).Once()

	th := New(func() { calls++ }, time.Second, WithClock(c), WithMeasures(m), WithLogger(nil))
	assert.Equal(time.Second, th.Interval())

	// three instantaneous calls, one execution
	assert.True(th.Trigger())
	assert.False(th.Trigger())
	assert.False(th.Trigger())
	assert.Equal(1, calls)

	assert.False(th.Trigger(), "just short of the interval")
	assert.True(th.Trigger(), "exactly one interval later")
	assert.False(th.Trigger())
	assert.Equal(2, calls)

	assert.Equal(2.0, measurestest.Value(t, r, measures.ThrottleOutcomes, measures.OutcomeLabel, measures.AcceptedOutcome))
	assert.Equal(4.0, measurestest.Value(t, r, measures.ThrottleOutcomes, measures.OutcomeLabel, measures.DroppedOutcome))
	c.AssertExpectations(t)
}

func testTriggerWallClock(t *testing.T) {
	const interval = 30 * time.Millisecond

	var (
		assert = assert.New(t)
		calls  atomic.Int32
		f      = Func(func() { calls.Add(1) }, interval)
	)

	f()
	f()
	f()
	assert.Equal(int32(1), calls.Load())

	time.Sleep(interval)
	f()
	assert.Equal(int32(2), calls.Load())
}

func testTriggerConcurrent(t *testing.T) {
	var (
		assert = assert.New(t)
		calls  atomic.Int32
		th     = New(func() { calls.Add(1) }, time.Hour)

		start = make(chan struct{})
		wg    sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			th.Trigger()
		}()
	}

	close(start)
	wg.Wait()
	assert.Equal(int32(1), calls.Load())
}

func testTriggerNoInterval(t *testing.T) {
	var (
		assert = assert.New(t)
		calls  int
		th     = New(func() { calls++ }, 0)
	)

	for i := 0; i < 3; i++ {
		assert.True(th.Trigger())
	}

	assert.Equal(3, calls)
}

func TestThrottle(t *testing.T) {
	t.Run("MockClock", testTriggerMockClock)
	t.Run("WallClock", testTriggerWallClock)
	t.Run("Concurrent", testTriggerConcurrent)
	t.Run("NoInterval", testTriggerNoInterval)
}
