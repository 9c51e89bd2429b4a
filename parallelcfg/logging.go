// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parallelcfg

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	StdoutFile = "stdout"
)

// LogOptions stores the configuration of a zap Logger.  Lumberjack is used for rolling files.
type LogOptions struct {
	// File is the system file path for the log file.  If unset or "stdout", this will log to os.Stdout.
	File string `json:"file"`

	// MaxSize is the lumberjack MaxSize
	MaxSize int `json:"maxsize"`

	// MaxAge is the lumberjack MaxAge
	MaxAge int `json:"maxage"`

	// MaxBackups is the lumberjack MaxBackups
	MaxBackups int `json:"maxbackups"`

	// JSON selects JSON output.  The default is console output.
	JSON bool `json:"json"`

	// Level is the minimum level to output: debug, info, warn, or error.  The empty string means info.
	Level string `json:"level"`
}

func (lo LogOptions) output() zapcore.WriteSyncer {
	if len(lo.File) > 0 && lo.File != StdoutFile {
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   lo.File,
			MaxSize:    lo.MaxSize,
			MaxAge:     lo.MaxAge,
			MaxBackups: lo.MaxBackups,
		})
	}

	return zapcore.Lock(os.Stdout)
}

func (lo LogOptions) encoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	if lo.JSON {
		return zapcore.NewJSONEncoder(ec)
	}

	return zapcore.NewConsoleEncoder(ec)
}

func (lo LogOptions) level() (zapcore.Level, error) {
	if len(lo.Level) == 0 {
		return zapcore.InfoLevel, nil
	}

	return zapcore.ParseLevel(strings.ToLower(lo.Level))
}

// NewLogger builds the logger these options describe.
func (lo LogOptions) NewLogger() (*zap.Logger, error) {
	level, err := lo.level()
	if err != nil {
		return nil, err
	}

	return zap.New(
		zapcore.NewCore(lo.encoder(), lo.output(), level),
		zap.AddCaller(),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	), nil
}
