// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"log/slog"
	"strings"

	"github.com/absmach/kvcache/pkg/errors"
)

// ErrInvalidLogLevel indicates an unrecognized log level.
var ErrInvalidLogLevel = errors.New("unrecognized log level")

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps debug, info, warn or error, in any letter case, to the
// slog level.
func ParseLevel(text string) (slog.Level, error) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		return 0, ErrInvalidLogLevel
	}

	return lvl, nil
}
