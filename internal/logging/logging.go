/*
Copyright 2026 The varqe Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging configures the shared logr sink backed by zap.
// Verbosity follows the usual convention: V(0) for operational messages,
// V(DEBUG) for per-iteration detail, V(TRACE) for per-evaluation noise.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V(...) calls.
const (
	DEBUG = 1
	TRACE = 2
)

var (
	mu   sync.Mutex
	root = logr.Discard()
)

// Setup builds the process-wide logger. The level argument accepts
// "info", "debug", or "trace" (case-insensitive); anything else falls
// back to info.
func Setup(level string) logr.Logger {
	mu.Lock()
	defer mu.Unlock()

	zapLevel := zapcore.Level(0)
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.Level(-DEBUG)
	case "trace":
		zapLevel = zapcore.Level(-TRACE)
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(zapLevel),
	)
	root = zapr.NewLogger(zap.New(core))
	return root
}

// Logger returns the process-wide logger. Before Setup it discards
// everything, which keeps library code safe to call from tests.
func Logger() logr.Logger {
	mu.Lock()
	defer mu.Unlock()
	return root
}

// NewTestLogger installs a development-encoded logger at trace verbosity
// and returns it. Test suites call this once from their suite entry point.
func NewTestLogger() logr.Logger {
	mu.Lock()
	defer mu.Unlock()

	cfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(zapcore.Level(-TRACE)),
	)
	root = zapr.NewLogger(zap.New(core))
	return root
}
