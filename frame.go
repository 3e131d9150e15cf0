// go-canfd
// Copyright (c) 2026 The CANBridge Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-canfd.
//
// go-canfd is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-canfd is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-canfd; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package canfd

import (
	"github.com/canbridge/go-canfd/internal/frame"
)

// Payload size limits, re-exported for callers that size their own buffers.
const (
	// MaxDataLength is the maximum CAN FD payload size in bytes.
	MaxDataLength = frame.MaxDataLength
	// MaxClassicDataLength is the maximum classic CAN payload size in bytes.
	MaxClassicDataLength = frame.MaxClassicDataLength
)

// Identifier limits
const (
	// MaxStandardID is the largest 11-bit standard identifier.
	MaxStandardID = 0x7FF
	// MaxExtendedID is the largest 29-bit extended identifier.
	MaxExtendedID = 0x1FFFFFFF
)

// Frame represents a single CAN or CAN FD frame.
//
// Length is the actual payload byte count, not the wire DLC; transports
// convert between the two. Data beyond Length is unspecified.
type Frame struct {
	// ID is the arbitration/message identifier.
	ID uint32
	// Length is the number of payload bytes in Data.
	Length uint8
	// Data holds the frame payload.
	Data [MaxDataLength]byte
	// Extended marks a 29-bit identifier frame.
	Extended bool
	// Remote marks a remote-request frame (classic CAN only, no payload).
	Remote bool
	// FD marks a CAN FD frame.
	FD bool
	// BRS marks a CAN FD frame transmitted with bit-rate switching.
	BRS bool
}

// NewFrame creates a CAN FD data frame with the given identifier and payload.
// The payload length must be an encodable CAN FD size (0-8, 12, 16, 20, 24,
// 32, 48 or 64 bytes).
func NewFrame(id uint32, data []byte) (*Frame, error) {
	if !frame.IsValidLength(len(data)) {
		return nil, ErrInvalidLength
	}
	f := &Frame{
		ID:     id,
		Length: uint8(len(data)),
		FD:     true,
	}
	if id > MaxStandardID {
		if id > MaxExtendedID {
			return nil, ErrInvalidParameter
		}
		f.Extended = true
	}
	copy(f.Data[:], data)
	return f, nil
}

// NewClassicFrame creates a classic CAN data frame (payload up to 8 bytes).
func NewClassicFrame(id uint32, data []byte) (*Frame, error) {
	if len(data) > MaxClassicDataLength {
		return nil, ErrInvalidLength
	}
	f, err := NewFrame(id, data)
	if err != nil {
		return nil, err
	}
	f.FD = false
	return f, nil
}

// Payload returns the valid portion of the frame's data area.
func (f *Frame) Payload() []byte {
	length := int(f.Length)
	if length > MaxDataLength {
		length = MaxDataLength
	}
	return f.Data[:length]
}

// Validate checks that the frame is transmittable: the identifier fits its
// format and the length has a DLC encoding within the frame type's limit.
func (f *Frame) Validate() error {
	maxID := uint32(MaxStandardID)
	if f.Extended {
		maxID = MaxExtendedID
	}
	if f.ID > maxID {
		return ErrInvalidParameter
	}
	if !frame.IsValidLength(int(f.Length)) {
		return ErrInvalidLength
	}
	if !f.FD && int(f.Length) > MaxClassicDataLength {
		return ErrInvalidLength
	}
	if f.Remote && f.FD {
		// CAN FD has no remote frames
		return ErrInvalidParameter
	}
	return nil
}
