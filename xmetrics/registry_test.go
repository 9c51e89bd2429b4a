// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModule() []Metric {
	return []Metric{
		{Name: "tasks", Type: CounterType, LabelNames: []string{"outcome"}},
		{Name: "active", Type: GaugeType},
		{Name: "latency", Type: HistogramType, Buckets: []float64{0.1, 1}},
	}
}

func testNewRegistryPreregistered(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	r, err := NewRegistry(&Options{DisableGoCollector: true, DisableProcessCollector: true}, testModule)
	require.NoError(err)
	require.NotNil(r)

	r.NewCounter("tasks").With("outcome", "success").Add(2)
	r.NewGauge("active").Set(3)
	r.NewHistogram("latency", 0).Observe(0.5)

	families, err := r.Gather()
	require.NoError(err)
	assert.Len(families, 3)

	count, err := testutil.GatherAndCount(r, "xmidt_parallel_tasks")
	require.NoError(err)
	assert.Equal(1, count)
}

func testNewRegistryAdHoc(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	r, err := NewRegistry(&Options{Namespace: "ns", Subsystem: "ss", DisableGoCollector: true, DisableProcessCollector: true})
	require.NoError(err)

	c := r.NewCounter("adhoc")
	c.Add(1)
	r.NewCounter("adhoc").Add(1)

	count, err := testutil.GatherAndCount(r, "ns_ss_adhoc")
	require.NoError(err)
	assert.Equal(1, count)

	assert.Panics(func() {
		r.NewGauge("adhoc")
	})
}

func testNewRegistryDuplicate(t *testing.T) {
	_, err := NewRegistry(nil, testModule, testModule)
	assert.Error(t, err)
}

func testNewRegistryUnsupported(t *testing.T) {
	_, err := NewRegistry(nil, func() []Metric {
		return []Metric{{Name: "bad", Type: "nosuch"}}
	})

	assert.Error(t, err)
}

func testNewRegistryDefaults(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	families, err := r.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families, "the default collectors should be registered")
}

func TestNewRegistry(t *testing.T) {
	t.Run("Preregistered", testNewRegistryPreregistered)
	t.Run("AdHoc", testNewRegistryAdHoc)
	t.Run("Duplicate", testNewRegistryDuplicate)
	t.Run("Unsupported", testNewRegistryUnsupported)
	t.Run("Defaults", testNewRegistryDefaults)
}

func TestNewCollector(t *testing.T) {
	_, err := NewCollector(Metric{Type: CounterType}, DefaultNamespace, DefaultSubsystem)
	assert.Error(t, err)
}
