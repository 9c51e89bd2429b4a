// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package fanout

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/measures/measurestest"
	"github.com/xmidt-org/parallel/workerpool"
	"github.com/xmidt-org/parallel/xerrors"
	"go.uber.org/multierr"
)

func double(_ context.Context, x int) (int, error) {
	return x * 2, nil
}

func testMapDouble(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	results, err := Map(context.Background(), []int{1, 2, 3, 4, 5}, double, WithWorkers(3))
	require.NoError(err)
	assert.Equal([]int{2, 4, 6, 8, 10}, results)
}

func testMapOrder(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		inputs = make([]int, 50)
		delays = make([]time.Duration, len(inputs))
	)

	for i := range inputs {
		inputs[i] = i
		delays[i] = time.Duration(rand.Intn(5)) * time.Millisecond // nolint:gosec
	}

	results, err := Map(context.Background(), inputs, func(_ context.Context, x int) (string, error) {
		time.Sleep(delays[x])
		return fmt.Sprintf("result-%d", x), nil
	}, WithWorkers(8))

	require.NoError(err)
	require.Len(results, len(inputs))
	for i, r := range results {
		assert.Equal(fmt.Sprintf("result-%d", i), r)
	}
}

func testMapEmpty(t *testing.T) {
	var (
		assert = assert.New(t)
		called atomic.Bool
	)

	results, err := Map(context.Background(), []int{}, func(context.Context, int) (int, error) {
		called.Store(true)
		return 0, nil
	})

	assert.NoError(err)
	assert.NotNil(results)
	assert.Empty(results)
	assert.False(called.Load())
}

func testMapFailAfterJoin(t *testing.T) {
	var (
		assert = assert.New(t)

		first  = errors.New("first")
		second = errors.New("second")
		ran    atomic.Int32
	)

	results, err := Map(context.Background(), []int{0, 1, 2, 3, 4}, func(_ context.Context, x int) (int, error) {
		ran.Add(1)
		switch x {
		case 1:
			return 0, first
		case 3:
			return 0, second
		default:
			return x, nil
		}
	}, WithWorkers(2))

	assert.Equal(int32(5), ran.Load(), "every unit runs even when some fail")
	assert.Equal([]int{0, 0, 2, 0, 4}, results)
	assert.ErrorIs(err, first)
	assert.ErrorIs(err, second)

	errs := multierr.Errors(err)
	if assert.Len(errs, 2) {
		var te *xerrors.TaskError
		assert.ErrorAs(errs[0], &te)
		assert.Equal(1, te.Index)
		assert.ErrorAs(errs[1], &te)
		assert.Equal(3, te.Index)
	}

	var lowest *xerrors.TaskError
	assert.ErrorAs(err, &lowest)
	assert.Equal(1, lowest.Index)
}

func testMapPanic(t *testing.T) {
	assert := assert.New(t)
	_, err := Map(context.Background(), []int{1, 2}, func(_ context.Context, x int) (int, error) {
		if x == 2 {
			panic("expected")
		}

		return x, nil
	})

	var pe *xerrors.PanicError
	assert.ErrorAs(err, &pe)
}

func testMapMaxDuration(t *testing.T) {
	var (
		assert = assert.New(t)

		release   = make(chan struct{})
		cancelled = make(chan struct{})
	)

	defer close(release)
	results, err := Map(context.Background(), []int{1, 2, 3}, func(ctx context.Context, x int) (int, error) {
		if x == 2 {
			context.AfterFunc(ctx, func() { close(cancelled) })
			<-release
			return -1, ctx.Err()
		}

		return x * 10, nil
	}, WithWorkers(3), WithMaxDuration(50*time.Millisecond))

	assert.Equal([]int{10, 0, 30}, results)

	var ae *xerrors.AbandonedError
	if assert.ErrorAs(err, &ae) {
		assert.Equal(1, ae.Pending)
		assert.Equal(3, ae.Total)
		assert.Equal(50*time.Millisecond, ae.Limit)
	}

	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		assert.Fail("abandoned work was not cancelled")
	}
}

func testMapSharedPool(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		pool    = workerpool.New(workerpool.WithWorkers(2))
	)

	defer pool.ShutdownNow()
	for round := 0; round < 3; round++ {
		results, err := Map(context.Background(), []int{1, 2, 3}, double, WithPool(pool))
		require.NoError(err)
		assert.Equal([]int{2, 4, 6}, results)
	}

	assert.False(pool.Closed())
}

func testMapSubmitInterrupted(t *testing.T) {
	var (
		assert      = assert.New(t)
		ctx, cancel = context.WithCancel(context.Background())
	)

	cancel()
	results, err := Map(ctx, []int{1, 2}, double)
	assert.Len(results, 2)
	assert.ErrorIs(err, xerrors.ErrInterrupted)
}

func testMapMeasures(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		m, r    = measurestest.New(t)
	)

	_, err := Map(context.Background(), []int{1, 2, 3}, double, WithMeasures(m), WithLogger(nil))
	require.NoError(err)
	assert.Equal(3.0, measurestest.Value(t, r, measures.TaskDuration))
	assert.Equal(3.0, measurestest.Value(t, r, measures.PoolTasks, measures.OutcomeLabel, measures.SuccessOutcome))
}

func TestMap(t *testing.T) {
	t.Run("Double", testMapDouble)
	t.Run("Order", testMapOrder)
	t.Run("Empty", testMapEmpty)
	t.Run("FailAfterJoin", testMapFailAfterJoin)
	t.Run("Panic", testMapPanic)
	t.Run("MaxDuration", testMapMaxDuration)
	t.Run("SharedPool", testMapSharedPool)
	t.Run("SubmitInterrupted", testMapSubmitInterrupted)
	t.Run("Measures", testMapMeasures)
}

func TestEach(t *testing.T) {
	var (
		assert   = assert.New(t)
		sum      atomic.Int64
		expected = errors.New("expected")
	)

	assert.NoError(Each(context.Background(), []int64{1, 2, 3}, func(_ context.Context, x int64) error {
		sum.Add(x)
		return nil
	}))

	assert.Equal(int64(6), sum.Load())

	err := Each(context.Background(), []int64{1}, func(context.Context, int64) error {
		return expected
	})

	assert.ErrorIs(err, expected)
}

func TestCompute(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	results, err := Compute(context.Background(), []func(context.Context) (string, error){
		func(context.Context) (string, error) { return "a", nil },
		func(context.Context) (string, error) { return "b", nil },
	}, WithWorkers(1))

	require.NoError(err)
	assert.Equal([]string{"a", "b"}, results)
}

func TestAwaitAll(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		// every op must be running at once for any of them to finish
		started = make(chan struct{}, 3)
		barrier = func(ctx context.Context) (int, error) {
			started <- struct{}{}
			for len(started) < cap(started) {
				time.Sleep(time.Millisecond)
			}

			return len(started), nil
		}
	)

	results, err := AwaitAll(context.Background(), barrier, barrier, barrier)
	require.NoError(err)
	assert.Equal([]int{3, 3, 3}, results)

	results, err = AwaitAll[int](context.Background())
	assert.NoError(err)
	assert.Empty(results)
}

func TestAwaitAllTimeout(t *testing.T) {
	var (
		assert   = assert.New(t)
		expected = errors.New("expected")
		release  = make(chan struct{})
	)

	defer close(release)
	settled := AwaitAllTimeout(context.Background(), 50*time.Millisecond,
		func(context.Context) (string, error) { return "fast", nil },
		func(context.Context) (string, error) {
			<-release
			return "slow", nil
		},
		func(context.Context) (string, error) { return "", expected },
	)

	if assert.Len(settled, 3) {
		assert.Equal(Settled[string]{Value: "fast", Done: true}, settled[0])
		assert.False(settled[1].Done)
		assert.Empty(settled[1].Value)
		assert.True(settled[2].Done)
		assert.ErrorIs(settled[2].Err, expected)
	}
}

func ExampleMap() {
	doubled, err := Map(context.Background(), []int{1, 2, 3, 4, 5}, func(_ context.Context, x int) (int, error) {
		return x * 2, nil
	}, WithWorkers(3))

	fmt.Println(doubled, err)
	// Output: [2 4 6 8 10] <nil>
}
