// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package frame defines the wire format relayed between raw HID devices
// attached to the hub.
//
// Every frame is a fixed 32-byte report. Header layout:
//
//	byte 0: CommandID (0x27), or any other value for a frame the hub discards.
//	byte 1: for a hub-directed frame, Hub (0xFF); for a message, the
//	        destination (device→hub) or origin (hub→device) id.
//	byte 2: sub-command for hub-directed frames (0x00 unregister, 0x01
//	        register, recipient id for status, Unassigned for shutdown);
//	        payload for message frames.
//	bytes 3..31: payload.
//
// Only one frame kind is populated at a time; Classify inspects bytes 0-2
// and reports which.
package frame

// Size is the fixed length of every frame, per spec.md §3/§6.
const Size = 32

// Frame is one 32-byte HID report, in either direction.
type Frame [Size]byte

const (
	// CommandID marks a frame as hub protocol traffic. Any frame whose first
	// byte differs is discarded by the classifier.
	CommandID byte = 0x27

	// Hub is the reserved id meaning "the hub itself" when used as a frame's
	// source or destination.
	Hub byte = 0xFF

	// Unassigned is the reserved device_id value meaning "no id assigned".
	// It has the same numeric value as Hub; context disambiguates.
	Unassigned byte = 0xFF

	// MaxRegistered is the maximum number of devices that may simultaneously
	// hold an assigned id.
	MaxRegistered = 30

	// QMKUsagePage and QMKUsage identify the raw HID interface that QMK
	// keyboard firmware exposes for this protocol.
	QMKUsagePage uint16 = 0xFF60
	QMKUsage     uint16 = 0x61

	subRegister   byte = 0x01
	subUnregister byte = 0x00
)

// Kind classifies a frame per the decision table in spec.md §4.3.
type Kind int

const (
	// Discard is a frame the hub silently drops (wrong CommandID, or a
	// hub-directed frame with an unrecognized sub-command).
	Discard Kind = iota
	// Registration is a device→hub registration request.
	Registration
	// Unregistration is a device→hub unregistration request.
	Unregistration
	// Message is a device-addressed frame (device→hub or hub→device).
	Message
)

func (k Kind) String() string {
	switch k {
	case Registration:
		return "Registration"
	case Unregistration:
		return "Unregistration"
	case Message:
		return "Message"
	default:
		return "Discard"
	}
}

// Classify inspects f's header and reports its Kind. For Message, dest is
// the byte-1 destination/origin id carried by f.
func Classify(f Frame) (kind Kind, dest byte) {
	if f[0] != CommandID {
		return Discard, 0
	}

	if f[1] == Hub {
		switch f[2] {
		case subRegister:
			return Registration, 0
		case subUnregister:
			return Unregistration, 0
		default:
			return Discard, 0
		}
	}

	return Message, f[1]
}

// NewRegistration builds a device→hub registration frame.
func NewRegistration() Frame {
	var f Frame
	f[0] = CommandID
	f[1] = Hub
	f[2] = subRegister
	return f
}

// NewUnregistration builds a device→hub unregistration frame.
func NewUnregistration() Frame {
	var f Frame
	f[0] = CommandID
	f[1] = Hub
	f[2] = subUnregister
	return f
}

// NewMessage builds a frame addressed (device→hub) to dest, or carrying
// (hub→device) origin, with the given payload copied starting at byte 2.
func NewMessage(idByte byte, payload []byte) Frame {
	var f Frame
	f[0] = CommandID
	f[1] = idByte
	copy(f[2:], payload)
	return f
}

// NewShutdown builds the hub→device shutdown frame.
func NewShutdown() Frame {
	var f Frame
	f[0] = CommandID
	f[1] = Hub
	f[2] = Unassigned
	return f
}

// Rewrite returns a copy of f with byte 1 overwritten to newIDByte. The
// router uses this to turn a device→hub message's destination id into the
// hub→device message's origin id.
func Rewrite(f Frame, newIDByte byte) Frame {
	f[1] = newIDByte
	return f
}

// BuildStatus constructs a hub→device status frame for recipientID out of
// the full set of currently-assigned ids.
//
// Per spec.md §4.2: assigned copies verbatim into bytes 2..32 (padded with
// Unassigned beyond len(assigned)), then the byte holding recipientID is
// swapped with byte 2, so the recipient always finds its own id first.
// recipientID must be present in assigned; callers (registrar) guarantee
// this invariant.
func BuildStatus(recipientID byte, assigned []byte) Frame {
	var f Frame
	f[0] = CommandID
	f[1] = Hub

	for i := 2; i < Size; i++ {
		f[i] = Unassigned
	}
	copy(f[2:], assigned)

	for i := 3; i < 2+len(assigned); i++ {
		if f[i] == recipientID {
			f[i], f[2] = f[2], f[i]
			break
		}
	}

	return f
}
