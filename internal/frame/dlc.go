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

// Package frame provides DLC conversion tables and payload validation shared
// by the CAN FD transports
package frame

// Frame size limits
const (
	// MaxDataLength is the maximum CAN FD payload size in bytes.
	MaxDataLength = 64
	// MaxClassicDataLength is the maximum classic CAN payload size in bytes.
	MaxClassicDataLength = 8
	// MaxDLC is the largest encodable data-length code.
	MaxDLC = 15
)

// dlcToLength maps a data-length code to the payload byte count it encodes.
// Codes 0-8 are shared with classic CAN; 9-15 are CAN FD only.
var dlcToLength = [MaxDLC + 1]int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 12, 16, 20, 24, 32, 48, 64,
}

// DLCToLength returns the payload byte count encoded by dlc.
// It returns -1 for codes outside the 4-bit DLC range.
func DLCToLength(dlc byte) int {
	if int(dlc) >= len(dlcToLength) {
		return -1
	}
	return dlcToLength[dlc]
}

// LengthToDLC returns the data-length code for a payload of length bytes.
// It returns -1 when the length has no DLC encoding (e.g. 9 or 65).
func LengthToDLC(length int) int {
	for dlc, l := range dlcToLength {
		if l == length {
			return dlc
		}
	}
	return -1
}

// IsValidLength reports whether length is an encodable CAN FD payload size.
func IsValidLength(length int) bool {
	return LengthToDLC(length) >= 0
}
