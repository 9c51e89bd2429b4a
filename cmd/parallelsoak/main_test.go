// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
)

func TestOptions(t *testing.T) {
	assert.NoError(t, fx.ValidateApp(options([]string{"--name", "parallelsoak-no-such-file"})))
}

func TestRunBadArguments(t *testing.T) {
	assert.Error(t, run([]string{"--nosuch"}))
}
