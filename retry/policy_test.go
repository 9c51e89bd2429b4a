// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy(t *testing.T) {
	assert := assert.New(t)
	p := DefaultPolicy()
	assert.Equal(3, p.attempts())
	assert.Equal(time.Second, p.NewBackOff().NextBackOff())
	assert.Equal(time.Second, p.Next(time.Second))
}

func TestPolicyAttempts(t *testing.T) {
	for _, record := range []struct {
		attempts int
		expected int
	}{
		{-1, 1},
		{0, 1},
		{1, 1},
		{7, 7},
	} {
		t.Run(strconv.Itoa(record.attempts), func(t *testing.T) {
			assert.Equal(t, record.expected, Policy{Attempts: record.attempts}.attempts())
		})
	}
}

func TestPolicyNext(t *testing.T) {
	testData := []struct {
		name     string
		policy   Policy
		delay    time.Duration
		expected time.Duration
	}{
		{"Fixed", Policy{Multiplier: 1.0}, time.Second, time.Second},
		{"ZeroMultiplier", Policy{}, time.Second, time.Second},
		{"Doubling", Policy{Multiplier: 2.0}, 10 * time.Millisecond, 20 * time.Millisecond},
		{"Fractional", Policy{Multiplier: 1.5}, 10 * time.Millisecond, 15 * time.Millisecond},
		{"Capped", Policy{Multiplier: 10.0, MaxDelay: time.Minute}, 30 * time.Second, time.Minute},
		{"Overflow", Policy{Multiplier: 10.0}, time.Duration(math.MaxInt64 / 2), time.Duration(math.MaxInt64)},
	}

	for _, record := range testData {
		t.Run(record.name, func(t *testing.T) {
			assert.Equal(t, record.expected, record.policy.Next(record.delay))
		})
	}
}

func TestPolicyNewBackOff(t *testing.T) {
	testData := []struct {
		name     string
		policy   Policy
		expected []time.Duration
	}{
		{"Fixed", Policy{Delay: time.Second, Multiplier: 1.0}, []time.Duration{time.Second, time.Second, time.Second}},
		{"Doubling", Policy{Delay: 10 * time.Millisecond, Multiplier: 2.0}, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond}},
		{"Capped", Policy{Delay: time.Second, Multiplier: 5.0, MaxDelay: 3 * time.Second}, []time.Duration{time.Second, 3 * time.Second, 3 * time.Second}},
		{"CappedFirst", Policy{Delay: time.Second, MaxDelay: time.Millisecond}, []time.Duration{time.Millisecond, time.Millisecond}},
		{"Zero", Policy{}, []time.Duration{0, 0}},
	}

	for _, record := range testData {
		t.Run(record.name, func(t *testing.T) {
			var (
				assert = assert.New(t)
				b      = record.policy.NewBackOff()
			)

			for i, expected := range record.expected {
				assert.Equal(expected, b.NextBackOff(), "delay %d", i)
			}
		})
	}
}
