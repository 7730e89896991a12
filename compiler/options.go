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

package compiler

import (
	"log/slog"
	"time"
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used to report compilations.
// Successful compilations are logged at debug level, failures at warn level.
// A nil logger disables logging.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	c := compiler.New(compiler.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithObserver registers an observer notified after every compilation.
//
// Example:
//
//	c := compiler.New(compiler.WithObserver(compiler.ObserverFunc(func(e compiler.Event) {
//	    if e.Err != nil {
//	        failures.Add(1)
//	    }
//	})))
func WithObserver(observer Observer) Option {
	return func(c *Compiler) {
		c.observer = observer
	}
}

// Event describes one compilation.
type Event struct {
	Path      string        // Path pattern
	Host      string        // Host pattern, "" if none
	Variables int           // Number of distinct variables (0 on failure)
	Duration  time.Duration // Time spent compiling
	Err       error         // Compilation error, nil on success
}

// Observer receives compilation events.
// Implementations may record metrics or ignore events; they never affect
// the compilation result. OnCompile may be called concurrently.
type Observer interface {
	OnCompile(Event)
}

// ObserverFunc is a function adapter for Observer.
type ObserverFunc func(Event)

// OnCompile calls f(e).
func (f ObserverFunc) OnCompile(e Event) {
	f(e)
}
