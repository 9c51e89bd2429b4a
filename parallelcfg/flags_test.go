// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parallelcfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConfiger struct {
	mock.Mock
}

func (m *mockConfiger) AddConfigPath(v string) {
	m.Called(v)
}

func (m *mockConfiger) SetConfigName(v string) {
	m.Called(v)
}

func (m *mockConfiger) SetConfigFile(v string) {
	m.Called(v)
}

func TestAddStandardConfigPaths(t *testing.T) {
	c := new(mockConfiger)
	c.On("AddConfigPath", "/etc/soak").Once()
	c.On("AddConfigPath", "$HOME/.soak").Once()
	c.On("AddConfigPath", ".").Once()

	AddStandardConfigPaths(c, "soak")
	c.AssertExpectations(t)
}

func testBindConfigFile(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		c       = new(mockConfiger)
		fs      = NewFlagSet("soak")
	)

	assert.False(BindConfig(c, fs, FileFlag, "nosuch"))
	require.NoError(fs.Parse([]string{"--file", "/etc/soak/custom.yaml"}))

	c.On("SetConfigFile", "/etc/soak/custom.yaml").Once()
	assert.True(BindConfig(c, fs, FileFlag, NameFlag))
	c.AssertExpectations(t)
}

func testBindConfigName(t *testing.T) {
	var (
		assert = assert.New(t)
		c      = new(mockConfiger)
		fs     = NewFlagSet("soak")
	)

	c.On("SetConfigName", "soak").Once()
	assert.True(BindConfig(c, fs, FileFlag, NameFlag))
	assert.False(BindConfigName(c, pflag.NewFlagSet("empty", pflag.ContinueOnError), NameFlag))
	c.AssertExpectations(t)
}

func TestBindConfig(t *testing.T) {
	t.Run("File", testBindConfigFile)
	t.Run("Name", testBindConfigName)
}

func testLoadFile(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		file    = filepath.Join(t.TempDir(), "soak.yaml")
	)

	require.NoError(os.WriteFile(file, []byte("workers: 6\ntimeout: 3s\nretry:\n  attempts: 4\n"), 0o600))

	v, o, err := Load("soak", []string{"-f", file})
	require.NoError(err)
	require.NotNil(v)
	assert.Equal(6, o.Workers)
	assert.Equal(3*time.Second, o.Timeout)
	assert.Equal(4, o.Retry.Attempts)
	assert.Equal(time.Second, o.Retry.Delay, "unset policy fields keep their defaults")
}

func testLoadWorkersFlag(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		file    = filepath.Join(t.TempDir(), "soak.yaml")
	)

	require.NoError(os.WriteFile(file, []byte("workers: 6\n"), 0o600))
	_, o, err := Load("soak", []string{"--file", file, "--workers", "9"})
	require.NoError(err)
	assert.Equal(9, o.Workers)
}

func testLoadOptionalFile(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	_, o, err := Load("soak", []string{"--name", "parallelcfg-no-such-file"})
	require.NoError(err)
	assert.Equal(Default(), o)
}

func testLoadMissingExplicitFile(t *testing.T) {
	_, _, err := Load("soak", []string{"--file", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func testLoadBadFlags(t *testing.T) {
	_, _, err := Load("soak", []string{"--nosuch"})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Run("File", testLoadFile)
	t.Run("WorkersFlag", testLoadWorkersFlag)
	t.Run("OptionalFile", testLoadOptionalFile)
	t.Run("MissingExplicitFile", testLoadMissingExplicitFile)
	t.Run("BadFlags", testLoadBadFlags)
}
