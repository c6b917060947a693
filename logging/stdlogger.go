// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package logging

import (
	"log"
	"os"
)

// Verbosity bits, per spec.md's -v<N> CLI surface.
const (
	VerboseEvents    = 1 << 0 // basic events
	VerboseStats     = 1 << 1 // periodic stats
	VerboseHubFrames = 1 << 2 // hub frames (registration/unregistration/status/shutdown)
	VerboseInterDev  = 1 << 3 // inter-device message frames
	VerboseDiscarded = 1 << 4 // discarded frames
)

// StdLogger adapts the standard library's log.Logger to L, gating Debug
// calls on a verbosity bitmask.
//
// Error/Warn/Info always print; Debug prints only when any bit in Mask is
// set. Call sites that want bit-specific gating should check the bit
// themselves before calling Debug/Debugf.
type StdLogger struct {
	Mask uint
	*log.Logger
}

// NewStdLogger returns a StdLogger writing to stderr with the given
// verbosity mask.
func NewStdLogger(mask uint) *StdLogger {
	return &StdLogger{
		Mask:   mask,
		Logger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (s *StdLogger) Error(args ...interface{})                 { s.Println(append([]interface{}{"ERROR:"}, args...)...) }
func (s *StdLogger) Warn(args ...interface{})                  { s.Println(append([]interface{}{"WARN:"}, args...)...) }
func (s *StdLogger) Info(args ...interface{})                  { s.Println(append([]interface{}{"INFO:"}, args...)...) }
func (s *StdLogger) Errorf(format string, args ...interface{}) { s.Printf("ERROR: "+format, args...) }
func (s *StdLogger) Warnf(format string, args ...interface{})  { s.Printf("WARN: "+format, args...) }
func (s *StdLogger) Infof(format string, args ...interface{})  { s.Printf("INFO: "+format, args...) }

func (s *StdLogger) Debug(args ...interface{}) {
	if s.Mask != 0 {
		s.Println(append([]interface{}{"DEBUG:"}, args...)...)
	}
}

func (s *StdLogger) Debugf(format string, args ...interface{}) {
	if s.Mask != 0 {
		s.Printf("DEBUG: "+format, args...)
	}
}
