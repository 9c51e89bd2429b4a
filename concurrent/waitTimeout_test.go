// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xmidt-org/parallel/xerrors"
)

func TestWaitTimeout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var (
			assert    = assert.New(t)
			waitGroup = new(sync.WaitGroup)
		)

		waitGroup.Add(1)
		go waitGroup.Done()
		assert.True(WaitTimeout(waitGroup, time.Minute))
	})

	t.Run("Timeout", func(t *testing.T) {
		var (
			assert    = assert.New(t)
			waitGroup = new(sync.WaitGroup)
		)

		waitGroup.Add(1)
		defer waitGroup.Done()
		assert.False(WaitTimeout(waitGroup, time.Millisecond))
	})
}

func TestWaitContext(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var (
			assert    = assert.New(t)
			waitGroup = new(sync.WaitGroup)
		)

		waitGroup.Add(2)
		go waitGroup.Done()
		go waitGroup.Done()
		assert.NoError(WaitContext(context.Background(), waitGroup))
	})

	t.Run("Canceled", func(t *testing.T) {
		var (
			assert      = assert.New(t)
			waitGroup   = new(sync.WaitGroup)
			ctx, cancel = context.WithCancel(context.Background())
		)

		waitGroup.Add(1)
		defer waitGroup.Done()
		cancel()

		err := WaitContext(ctx, waitGroup)
		assert.ErrorIs(err, xerrors.ErrInterrupted)
		assert.ErrorIs(err, context.Canceled)

		var ie *xerrors.InterruptedError
		if assert.True(errors.As(err, &ie)) {
			assert.Equal("wait", ie.Op)
		}
	})
}
