// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package main

import (
	"github.com/eynsai/raw-hid-hub/internal/rawhidhub"
)

func main() {
	rawhidhub.Main()
}
