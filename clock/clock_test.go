// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		c       = System()
	)

	require.NotNil(c)

	start := c.Now()
	c.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(c.Since(start), 5*time.Millisecond)

	timer := c.NewTimer(time.Millisecond)
	select {
	case <-timer.C():
	case <-time.After(time.Second):
		assert.Fail("the timer did not fire")
	}

	assert.False(timer.Stop())

	ticker := c.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for i := 0; i < 2; i++ {
		select {
		case <-ticker.C():
		case <-time.After(time.Second):
			assert.Fail("the ticker did not tick")
		}
	}
}

func TestOrSystem(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(System(), OrSystem(nil))

	var c Interface = systemClock{}
	assert.Equal(c, OrSystem(c))
}

func TestWrapTicker(t *testing.T) {
	var (
		assert = assert.New(t)
		raw    = time.NewTicker(time.Hour)
		w      = WrapTicker(raw)
	)

	defer w.Stop()
	assert.Equal((<-chan time.Time)(raw.C), w.C())
}
