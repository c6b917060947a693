// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package backend defines the contract the hub uses to talk to the
// underlying HID transport.
//
// Per spec.md §1, the hub's core relay engine must not depend on a specific
// HID backend library; only this contract appears in the core. The concrete
// implementation backed by github.com/karalabe/hid lives in
// backend/hidapi.go, and a fake for tests lives in backend/backendtest.
package backend

import "io"

// DeviceInfo describes one enumerated raw HID interface.
//
// The shape mirrors github.com/karalabe/hid's hid.DeviceInfo: a stable Path
// used as enumeration identity, plus the usage page/usage tuple the
// discovery task matches against the QMK constants.
type DeviceInfo struct {
	// Path is the backend-specific, stable path identifying this interface.
	// It is used as the Device Table's matching key across enumerations.
	Path string

	VendorID  uint16
	ProductID uint16

	// UsagePage and Usage identify the HID application collection. The
	// discovery task only opens interfaces matching frame.QMKUsagePage /
	// frame.QMKUsage.
	UsagePage uint16
	Usage     uint16
}

// Device is an open raw HID interface.
//
// Read must be non-blocking: the I/O loop calls it every pass and relies on
// it returning promptly (spec.md §5). Write may block briefly on the
// underlying syscall.
type Device interface {
	io.Closer

	// Read attempts to read one report into buf without blocking. It
	// returns (0, nil) if no report is currently available.
	Read(buf []byte) (int, error)

	// Write sends buf (including any backend-specific leading report-id
	// byte) to the device.
	Write(buf []byte) (int, error)
}

// Backend enumerates and opens raw HID interfaces.
type Backend interface {
	// Enumerate lists all currently-visible HID interfaces.
	Enumerate() ([]DeviceInfo, error)

	// Open opens the interface at path in non-blocking mode.
	Open(path string) (Device, error)

	// Close releases any backend-wide resources. It is called once, during
	// hub shutdown.
	Close() error
}
