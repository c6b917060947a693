// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package backend

import (
	"github.com/karalabe/hid"
	"github.com/pkg/errors"
)

// HidAPI is the production Backend, backed by github.com/karalabe/hid.
//
// HidAPI itself holds no resources beyond what each opened Device owns; its
// Close is a no-op provided for symmetry with Backend and to give the hub a
// single place to extend backend-wide teardown later.
type HidAPI struct{}

var _ Backend = HidAPI{}

// Enumerate lists every HID interface currently visible to the OS, regardless
// of vendor/product/usage — the discovery task is responsible for filtering
// to the QMK usage page/usage.
func (HidAPI) Enumerate() ([]DeviceInfo, error) {
	infos := hid.Enumerate(0, 0)

	out := make([]DeviceInfo, len(infos))
	for i, info := range infos {
		out[i] = DeviceInfo{
			Path:      info.Path,
			VendorID:  info.VendorID,
			ProductID: info.ProductID,
			UsagePage: info.UsagePage,
			Usage:     info.Usage,
		}
	}
	return out, nil
}

// Open opens the HID interface at path.
func (HidAPI) Open(path string) (Device, error) {
	infos := hid.Enumerate(0, 0)
	for _, info := range infos {
		if info.Path != path {
			continue
		}
		dev, err := info.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "opening HID path %q", path)
		}
		return dev, nil
	}
	return nil, errors.Errorf("no HID interface at path %q", path)
}

// Close is a no-op: github.com/karalabe/hid holds no backend-wide handle to
// release.
func (HidAPI) Close() error { return nil }
