// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package logging defines the logging contract used by the hub's long-lived
// components (the discovery task and the I/O loop, through hub.Config's
// Logger) and by the CLI. The registrar and the backend adapter do not log.
//
// Components never format or gate on verbosity themselves; they hold an L
// and call it unconditionally. It is the caller wiring the component
// (typically cmd/rawhidhub) that decides whether a given call site's
// messages reach the terminal, based on the -v<N> bitmask.
package logging

// L accepts logging data.
//
// L is generic enough that the standard library's log.Logger, a
// github.com/sirupsen/logrus.Logger, or a zap.SugaredLogger can all be
// adapted to satisfy it.
type L interface {
	// Error emits an error-level log.
	Error(args ...interface{})
	// Warn emits a warn-level log.
	Warn(args ...interface{})
	// Info emits an info-level log.
	Info(args ...interface{})
	// Debug emits a debug-level log.
	Debug(args ...interface{})

	// Errorf emits an error-level log.
	Errorf(fmt string, args ...interface{})
	// Warnf emits a warn-level log.
	Warnf(fmt string, args ...interface{})
	// Infof emits an info-level log.
	Infof(fmt string, args ...interface{})
	// Debugf emits a debug-level log.
	Debugf(fmt string, args ...interface{})
}

// Nop is an L instance that does nothing.
var Nop L = nopLogger{}

// Must ensures that a valid L is available. If l is not nil, it is returned
// unchanged; otherwise, Must returns Nop.
func Must(l L) L {
	if l != nil {
		return l
	}
	return Nop
}

type nopLogger struct{}

func (nopLogger) Error(args ...interface{}) {}
func (nopLogger) Warn(args ...interface{})  {}
func (nopLogger) Info(args ...interface{})  {}
func (nopLogger) Debug(args ...interface{}) {}

func (nopLogger) Errorf(fmt string, args ...interface{}) {}
func (nopLogger) Warnf(fmt string, args ...interface{})  {}
func (nopLogger) Infof(fmt string, args ...interface{})  {}
func (nopLogger) Debugf(fmt string, args ...interface{}) {}
