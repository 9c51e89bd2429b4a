// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parallelcfg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	FileFlag    = "file"
	NameFlag    = "name"
	WorkersFlag = "workers"
)

// Configer is the subset of Viper behavior dealing with configuration paths and locations
type Configer interface {
	AddConfigPath(string)
	SetConfigName(string)
	SetConfigFile(string)
}

// AddStandardConfigPaths adds the standard *nix-style configuration paths
func AddStandardConfigPaths(c Configer, applicationName string) {
	c.AddConfigPath(fmt.Sprintf("/etc/%s", applicationName))
	c.AddConfigPath(fmt.Sprintf("$HOME/.%s", applicationName))
	c.AddConfigPath(".")
}

// FlagLookup is the behavior expected of a pflag.FlagSet to lookup individual flags by longhand name.
type FlagLookup interface {
	Lookup(string) *pflag.Flag
}

// bindFlag passes the value of a nonempty flag to set.
func bindFlag(fl FlagLookup, flag string, set func(string)) bool {
	if f := fl.Lookup(flag); f != nil {
		if value := f.Value.String(); len(value) > 0 {
			set(value)
			return true
		}
	}

	return false
}

// BindConfigName sets the name of the file Viper searches for from a flag.  If the flag is
// missing or empty, c is not changed and this function returns false.
func BindConfigName(c Configer, fl FlagLookup, flag string) bool {
	return bindFlag(fl, flag, c.SetConfigName)
}

// BindConfigFile sets the fully-qualified path of Viper's configuration file from a flag.  If the
// flag is missing or empty, c is not changed and this function returns false.
func BindConfigFile(c Configer, fl FlagLookup, flag string) bool {
	return bindFlag(fl, flag, c.SetConfigFile)
}

// BindConfig attempts first to bind the configuration file via BindConfigFile.  Failing that, it
// attempts to bind the configuration name via BindConfigName.
func BindConfig(c Configer, fl FlagLookup, fileFlag, nameFlag string) bool {
	return BindConfigFile(c, fl, fileFlag) || BindConfigName(c, fl, nameFlag)
}

// NewFlagSet creates the standard command line for an application that uses this package.
func NewFlagSet(applicationName string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.StringP(FileFlag, "f", "", "the fully qualified path to the configuration file")
	fs.StringP(NameFlag, "n", applicationName, "the name of the configuration file, searched for in the standard locations")
	fs.IntP(WorkersFlag, "w", 0, "the number of workers, overriding the configuration file")
	return fs
}

// Load parses the command line, reads configuration from the file it names or from the standard
// locations, and overlays environment variables prefixed with the application name.  The
// configuration file is optional unless named explicitly with --file.
func Load(applicationName string, arguments []string) (*viper.Viper, *Options, error) {
	fs := NewFlagSet(applicationName)
	if err := fs.Parse(arguments); err != nil {
		return nil, nil, err
	}

	v := viper.New()
	AddStandardConfigPaths(v, applicationName)
	explicit := BindConfigFile(v, fs, FileFlag)
	if !explicit {
		BindConfigName(v, fs, NameFlag)
	}

	v.SetEnvPrefix(applicationName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if f := fs.Lookup(WorkersFlag); f.Changed {
		if err := v.BindPFlag(WorkersFlag, f); err != nil {
			return nil, nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, nil, err
		}
	}

	o, err := FromViper(v)
	if err != nil {
		return nil, nil, err
	}

	return v, o, nil
}
