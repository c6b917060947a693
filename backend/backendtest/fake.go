// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package backendtest provides a fake backend.Backend for exercising the
// hub's discovery task and I/O loop without real HID hardware.
//
// The shape follows discovery/listener_test.go's mockListenerConnection in
// the teacher repo: a small struct wrapping channels that stands in for the
// real OS resource.
package backendtest

import (
	"io"
	"sort"
	"sync"

	"github.com/eynsai/raw-hid-hub/backend"
)

// Backend is a fake backend.Backend whose device set is controlled directly
// by the test via AddDevice/RemoveDevice.
type Backend struct {
	mu      sync.Mutex
	devices map[string]*Device
}

var _ backend.Backend = (*Backend)(nil)

// NewBackend returns an empty fake backend.
func NewBackend() *Backend {
	return &Backend{devices: make(map[string]*Device)}
}

// AddDevice registers a new enumerable device at path, with the given
// usage page/usage, and returns it so the test can push/pull frames.
func (b *Backend) AddDevice(path string, usagePage, usage uint16) *Device {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := &Device{
		info: backend.DeviceInfo{
			Path:      path,
			UsagePage: usagePage,
			Usage:     usage,
		},
		inboxC: make(chan []byte, 64),
	}
	b.devices[path] = d
	return d
}

// RemoveDevice removes path from future Enumerate results. Any Device
// previously returned for path remains open until explicitly Closed; this
// mirrors a real device physically disappearing while the backend still
// holds a stale handle until the hub notices via enumeration.
func (b *Backend) RemoveDevice(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.devices, path)
}

// Enumerate implements backend.Backend. Results are sorted by path, so a
// discovery pass appends new records in a stable order.
func (b *Backend) Enumerate() ([]backend.DeviceInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	infos := make([]backend.DeviceInfo, 0, len(b.devices))
	for _, d := range b.devices {
		infos = append(infos, d.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos, nil
}

// Open implements backend.Backend.
func (b *Backend) Open(path string) (backend.Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.devices[path]
	if !ok {
		return nil, io.ErrClosedPipe
	}
	return d, nil
}

// Close implements backend.Backend.
func (b *Backend) Close() error { return nil }

// Device is a fake backend.Device. Test code pushes inbound reports with
// Send and observes outbound reports via Sent.
type Device struct {
	info backend.DeviceInfo

	mu     sync.Mutex
	closed bool
	sent   [][]byte
	inboxC chan []byte
}

var _ backend.Device = (*Device)(nil)

// Send enqueues a report the hub will observe on its next non-blocking
// Read.
func (d *Device) Send(report []byte) {
	cp := make([]byte, len(report))
	copy(cp, report)
	d.inboxC <- cp
}

// Sent returns every report written to this device so far, in write order.
func (d *Device) Sent() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.sent))
	copy(out, d.sent)
	return out
}

// Read implements backend.Device. It never blocks: if no report is queued,
// it returns (0, nil).
func (d *Device) Read(buf []byte) (int, error) {
	select {
	case data := <-d.inboxC:
		return copy(buf, data), nil
	default:
		return 0, nil
	}
}

// Write implements backend.Device.
func (d *Device) Write(buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, io.ErrClosedPipe
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	d.sent = append(d.sent, cp)
	return len(buf), nil
}

// Close implements backend.Device.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
