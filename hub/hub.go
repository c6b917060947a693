// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package hub implements the relay engine: the device table, the
// discovery task, the I/O loop, and the per-device outgoing queues,
// threaded through one Hub value instead of the teacher's module-scope
// globals (spec.md §9's design note on encapsulating global mutable state).
package hub

import (
	"runtime"
	"sync"
	"time"

	"github.com/eynsai/raw-hid-hub/backend"
	"github.com/eynsai/raw-hid-hub/devicetable"
	"github.com/eynsai/raw-hid-hub/logging"
	"github.com/eynsai/raw-hid-hub/registrar"
	"github.com/eynsai/raw-hid-hub/queue"
)

// Config holds the Hub's tunable knobs, per spec.md §5's "smart sleep"
// configuration and §4.4's discovery period.
type Config struct {
	// DiscoveryPeriod is how often the discovery task reconciles the device
	// table against the backend's enumeration. Defaults to 1 second.
	DiscoveryPeriod time.Duration

	// SmartSleepEnabled gates latency-preserving adaptive sleep: the I/O
	// loop only sleeps once it's been SmartSleepThreshold since the last
	// successful device-to-device message. Defaults to true.
	SmartSleepEnabled bool

	// SmartSleepThreshold is how long the I/O loop waits, after the last
	// device-to-device message, before it starts sleeping between passes.
	// Defaults to 100ms.
	SmartSleepThreshold time.Duration

	// SmartSleepStep is how long each adaptive sleep lasts. Defaults to
	// roughly a 240Hz tick: 1ms on Windows, ~4.17ms elsewhere, mirroring the
	// platform timer resolution difference in the source implementation.
	SmartSleepStep time.Duration

	// PlainSleepEnabled, if SmartSleepEnabled is false, sleeps
	// SmartSleepStep every pass unconditionally. Defaults to false.
	PlainSleepEnabled bool

	// HandshakeStep is the poll interval the discovery task uses while
	// waiting for the I/O loop to complete a fresh pass during the removal
	// handshake (spec.md §4.1 step 3). Defaults to SmartSleepStep.
	HandshakeStep time.Duration

	// Logger, if not nil, receives events at the verbosity the caller
	// configured. If nil, the hub logs nothing.
	Logger logging.L
}

// DefaultConfig returns the Config spec.md describes as the steady-state
// defaults.
func DefaultConfig() Config {
	step := 4170 * time.Microsecond
	if runtime.GOOS == "windows" {
		step = time.Millisecond
	}
	return Config{
		DiscoveryPeriod:     time.Second,
		SmartSleepEnabled:   true,
		SmartSleepThreshold: 100 * time.Millisecond,
		SmartSleepStep:      step,
		HandshakeStep:       step,
	}
}

// Hub is the relay engine: one device table, one registrar, one set of
// outgoing queues, shared between the discovery task and the I/O loop.
type Hub struct {
	cfg     Config
	be      backend.Backend
	logger  logging.L
	table   devicetable.Table
	reg     *registrar.Registrar
	queues  queue.Queues

	// discoveryWG lets shutdown wait for RunDiscovery to actually return
	// before the I/O loop releases records (spec.md §4.5): RunDiscovery
	// registers itself on entry and signals on exit. If RunDiscovery was
	// never started, Wait returns immediately.
	discoveryWG sync.WaitGroup

	// lastMessageAt is touched only by the I/O loop.
	lastMessageAt time.Time
}

// New constructs a Hub. be is the backend the discovery task and I/O loop
// will use; it must already be ready for Enumerate/Open calls.
func New(cfg Config, be backend.Backend) *Hub {
	if cfg.DiscoveryPeriod <= 0 {
		cfg.DiscoveryPeriod = time.Second
	}
	if cfg.SmartSleepStep <= 0 {
		cfg.SmartSleepStep = DefaultConfig().SmartSleepStep
	}
	if cfg.HandshakeStep <= 0 {
		cfg.HandshakeStep = cfg.SmartSleepStep
	}

	return &Hub{
		cfg:    cfg,
		be:     be,
		logger: logging.Must(cfg.Logger),
		reg:    registrar.New(),
	}
}

// Table returns the hub's device table, for callers (tests, stats
// reporting) that need read-only visibility.
func (h *Hub) Table() *devicetable.Table { return &h.table }

// Registrar returns the hub's registrar, for read-only visibility.
func (h *Hub) Registrar() *registrar.Registrar { return h.reg }
