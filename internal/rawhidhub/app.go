// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package rawhidhub wires the hub's core relay engine into a runnable
// process: flag parsing, signal-triggered shutdown, and periodic stats
// logging, per spec.md §6's explicit exclusion of those concerns from the
// CORE.
package rawhidhub

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/eynsai/raw-hid-hub/backend"
	"github.com/eynsai/raw-hid-hub/hub"
	"github.com/eynsai/raw-hid-hub/logging"
	"github.com/eynsai/raw-hid-hub/monitoring"
)

var verbosity = pflag.UintP("verbosity", "v", 0,
	"verbosity bitmask: 2=periodic stats; any nonzero value also prints debug lines (e.g. discarded frames); errors, warnings and events always print, and the other bits select nothing further")

// Main is the process entry point.
func Main() {
	pflag.Parse()

	logger := logging.NewStdLogger(*verbosity)

	be := backend.HidAPI{}

	if _, err := be.Enumerate(); err != nil {
		log.Fatalf("initializing HID backend: %s", errors.WithStack(err))
	}

	monitoring.Register(prometheus.DefaultRegisterer)

	cfg := hub.DefaultConfig()
	cfg.Logger = logger
	h := hub.New(cfg, be)

	ctx, cancel := context.WithCancel(context.Background())

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)

	var exitCode atomic.Int32
	go func() {
		sig := <-sigC
		logger.Infof("received signal %s; shutting down", sig)
		if n, ok := sig.(syscall.Signal); ok {
			exitCode.Store(int32(n))
		}
		cancel()
	}()

	go h.RunDiscovery(ctx)

	if *verbosity&logging.VerboseStats != 0 {
		go runStats(ctx, logger)
	}

	h.RunIO(ctx)

	os.Exit(int(exitCode.Load()))
}

// runStats periodically logs the registrar membership count. It reads
// monitoring's gauge rather than the hub's registrar directly: the registrar
// is touched only by the I/O loop (spec.md §5), and this runs on its own
// goroutine.
func runStats(ctx context.Context, logger logging.L) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Infof("devices registered: %d", monitoring.RegisteredDevices())
		}
	}
}
