// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package logger builds the structured JSON logger used by the binaries.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/absmach/kvcache/pkg/errors"
)

// New returns a JSON slog logger writing to w at the given level.
func New(w io.Writer, levelText string) (*slog.Logger, error) {
	level, err := ParseLevel(levelText)
	if err != nil {
		return nil, errors.Wrap(err, errors.New(levelText))
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler), nil
}

// NewMock returns a logger that discards every record.
func NewMock() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ExitWithError exits the process with the code pointed to by code when
// it is non-zero. Use it deferred in main so other defers run first.
func ExitWithError(code *int) {
	if code != nil && *code != 0 {
		os.Exit(*code)
	}
}
