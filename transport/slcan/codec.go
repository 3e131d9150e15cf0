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

package slcan

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	canfd "github.com/canbridge/go-canfd"
	"github.com/canbridge/go-canfd/internal/frame"
)

// Frame type prefixes. Lowercase carries a standard identifier, uppercase
// an extended one.
const (
	prefixData     = 't' // classic data frame
	prefixRemote   = 'r' // remote-request frame
	prefixFD       = 'd' // CAN FD frame
	prefixFDBRS    = 'b' // CAN FD frame with bit-rate switching
	stdIDDigits    = 3
	extIDDigits    = 8
	dlcDigitOffset = 1
)

// EncodeFrame converts a frame into the ASCII SLCAN line, CR-terminated
func EncodeFrame(f *canfd.Frame) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	prefix := byte(prefixData)
	switch {
	case f.Remote:
		prefix = prefixRemote
	case f.FD && f.BRS:
		prefix = prefixFDBRS
	case f.FD:
		prefix = prefixFD
	}
	if f.Extended {
		prefix -= 'a' - 'A'
	}
	b.WriteByte(prefix)

	if f.Extended {
		fmt.Fprintf(&b, "%08X", f.ID&canfd.MaxExtendedID)
	} else {
		fmt.Fprintf(&b, "%03X", f.ID&canfd.MaxStandardID)
	}

	dlc := frame.LengthToDLC(int(f.Length))
	if dlc < 0 {
		return "", canfd.ErrInvalidLength
	}
	b.WriteString(strings.ToUpper(strconv.FormatInt(int64(dlc), 16)))

	if !f.Remote {
		b.WriteString(strings.ToUpper(hex.EncodeToString(f.Payload())))
	}
	b.WriteByte('\r')
	return b.String(), nil
}

// DecodeFrame parses one SLCAN line (without the CR terminator) into a
// frame. Status responses and unknown prefixes return an error.
func DecodeFrame(line string) (*canfd.Frame, error) {
	if line == "" {
		return nil, canfd.ErrFrameCorrupted
	}

	f := &canfd.Frame{}
	prefix := line[0]
	lower := prefix
	if prefix >= 'A' && prefix <= 'Z' {
		f.Extended = true
		lower = prefix + ('a' - 'A')
	}
	switch lower {
	case prefixData:
	case prefixRemote:
		f.Remote = true
	case prefixFD:
		f.FD = true
	case prefixFDBRS:
		f.FD = true
		f.BRS = true
	default:
		return nil, canfd.ErrFrameCorrupted
	}

	idDigits := stdIDDigits
	if f.Extended {
		idDigits = extIDDigits
	}
	if len(line) < 1+idDigits+dlcDigitOffset {
		return nil, canfd.ErrFrameCorrupted
	}

	id, err := strconv.ParseUint(line[1:1+idDigits], 16, 32)
	if err != nil {
		return nil, canfd.ErrFrameCorrupted
	}
	maxID := uint64(canfd.MaxStandardID)
	if f.Extended {
		maxID = canfd.MaxExtendedID
	}
	if id > maxID {
		return nil, canfd.ErrFrameCorrupted
	}
	f.ID = uint32(id)

	dlc, err := strconv.ParseUint(line[1+idDigits:2+idDigits], 16, 8)
	if err != nil {
		return nil, canfd.ErrFrameCorrupted
	}
	length := frame.DLCToLength(byte(dlc))
	if length < 0 {
		return nil, canfd.ErrFrameCorrupted
	}
	if !f.FD && length > frame.MaxClassicDataLength {
		return nil, canfd.ErrFrameCorrupted
	}
	f.Length = uint8(length)

	if f.Remote {
		if len(line) != 2+idDigits {
			return nil, canfd.ErrFrameCorrupted
		}
		return f, nil
	}

	payloadHex := line[2+idDigits:]
	if len(payloadHex) != length*2 {
		return nil, canfd.ErrFrameCorrupted
	}
	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		return nil, canfd.ErrFrameCorrupted
	}
	copy(f.Data[:], payload)
	return f, nil
}
