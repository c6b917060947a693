// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package hub

import "time"

// sleep implements spec.md §5's adaptive "smart sleep".
//
// spec.md §9 documents a corrected behavior here: the source compares
// last_message_time_ms - current_time_ms as an unsigned value, which
// underflows and makes the sleep fire on almost every pass. This
// implementation uses the signed comparison current - last >= threshold
// instead, so the gate only trips once the burst has genuinely gone quiet.
func (h *Hub) sleep() {
	switch {
	case h.cfg.SmartSleepEnabled:
		if time.Since(h.lastMessageAt) >= h.cfg.SmartSleepThreshold {
			time.Sleep(h.cfg.SmartSleepStep)
		}
	case h.cfg.PlainSleepEnabled:
		time.Sleep(h.cfg.SmartSleepStep)
	}
}
