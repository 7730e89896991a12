// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging builds the slog loggers used by the routec command.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// HandlerType selects the output format of a logger.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

var (
	// ErrInvalidHandler indicates an unknown handler type.
	ErrInvalidHandler = errors.New("invalid log handler type")

	// ErrInvalidLevel indicates an unknown log level name.
	ErrInvalidLevel = errors.New("invalid log level")
)

// New returns a logger writing to w in the given format at or above level.
// Level names are those of slog: debug, info, warn and error.
func New(w io.Writer, handlerType HandlerType, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch handlerType {
	case JSONHandler:
		handler = slog.NewJSONHandler(w, opts)
	case TextHandler:
		handler = slog.NewTextHandler(w, opts)
	case ConsoleHandler:
		handler = newConsoleHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandler, handlerType)
	}

	return slog.New(handler), nil
}
