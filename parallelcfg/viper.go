// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parallelcfg

import (
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	// ParallelKey is the Viper subkey under which these options are normally stored.
	// FromViper *does not* assume this key.
	ParallelKey = "parallel"
)

var durationType = reflect.TypeOf(time.Duration(0))

// durationHook converts strings and numbers into time.Durations.
func durationHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != durationType || from == durationType {
		return data, nil
	}

	return cast.ToDurationE(data)
}

// DecodeHook is the mapstructure hook used for every decode in this package.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationHook,
		mapstructure.StringToSliceHookFunc(","),
	)
}

// Decode produces Options from a raw map, such as one parsed from JSON.  Keys are matched to
// fields case insensitively.  Anything not in raw keeps its Default() value.
func Decode(raw map[string]interface{}) (*Options, error) {
	o := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       DecodeHook(),
		WeaklyTypedInput: true,
		Result:           o,
	})

	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	return o, nil
}

// Sub returns the standard child Viper, using ParallelKey, for this package.
// If passed nil, this function returns nil.
func Sub(v *viper.Viper) *viper.Viper {
	if v != nil {
		return v.Sub(ParallelKey)
	}

	return nil
}

// FromViper produces Options from a (possibly nil) Viper instance.
// Callers should use FromViper(Sub(v)) if the standard subkey is desired.
func FromViper(v *viper.Viper) (*Options, error) {
	o := Default()
	if v != nil {
		if err := v.Unmarshal(o, viper.DecodeHook(DecodeHook())); err != nil {
			return nil, err
		}
	}

	return o, nil
}
