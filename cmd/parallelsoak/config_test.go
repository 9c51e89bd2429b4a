// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSoakConfig(t *testing.T) {
	testData := []struct {
		name     string
		yaml     string
		expected SoakConfig
	}{
		{
			name:     "Defaults",
			yaml:     "",
			expected: SoakConfig{Address: defaultAddress, Units: defaultUnits, MaxLatency: defaultMaxLatency},
		},
		{
			name: "Custom",
			yaml: "soak:\n  address: \":8080\"\n  units: 3\n  failureRate: 0.25\n  maxLatency: 5ms\n",
			expected: SoakConfig{
				Address:     ":8080",
				Units:       3,
				FailureRate: 0.25,
				MaxLatency:  5 * time.Millisecond,
			},
		},
		{
			name:     "Clamped",
			yaml:     "soak:\n  failureRate: 7\n",
			expected: SoakConfig{Address: defaultAddress, Units: defaultUnits, FailureRate: 1, MaxLatency: defaultMaxLatency},
		},
	}

	for _, record := range testData {
		t.Run(record.name, func(t *testing.T) {
			var (
				assert  = assert.New(t)
				require = require.New(t)
				v       = viper.New()
			)

			v.SetConfigType("yaml")
			require.NoError(v.ReadConfig(strings.NewReader(record.yaml)))

			sc, err := newSoakConfig(v)
			require.NoError(err)
			assert.Equal(record.expected, sc)
		})
	}

	t.Run("Invalid", func(t *testing.T) {
		v := viper.New()
		v.Set("soak.maxLatency", "whenever")
		_, err := newSoakConfig(v)
		assert.Error(t, err)
	})

	t.Run("Negative", func(t *testing.T) {
		sc := SoakConfig{FailureRate: -1}
		sc.applyDefaults()
		assert.Zero(t, sc.FailureRate)
	})
}
