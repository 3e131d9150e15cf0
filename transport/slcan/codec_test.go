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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	canfd "github.com/canbridge/go-canfd"
)

func TestEncodeFrame(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		frame canfd.Frame
		want  string
	}{
		{
			name:  "classic standard data frame",
			frame: canfd.Frame{ID: 0x123, Length: 2, Data: [64]byte{0xAB, 0xCD}},
			want:  "t1232ABCD\r",
		},
		{
			name:  "classic extended data frame",
			frame: canfd.Frame{ID: 0x12345678, Length: 1, Extended: true, Data: [64]byte{0xFF}},
			want:  "T123456781FF\r",
		},
		{
			name:  "remote frame",
			frame: canfd.Frame{ID: 0x7FF, Length: 8, Remote: true},
			want:  "r7FF8\r",
		},
		{
			name:  "FD frame with 12 bytes",
			frame: canfd.Frame{ID: 1, Length: 12, FD: true, Data: [64]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
			want:  "d0019" + "0102030405060708090A0B0C" + "\r",
		},
		{
			name:  "FD frame with bit-rate switching",
			frame: canfd.Frame{ID: 2, Length: 2, FD: true, BRS: true, Data: [64]byte{0xDE, 0xAD}},
			want:  "b0022DEAD\r",
		},
		{
			name:  "extended FD frame",
			frame: canfd.Frame{ID: 0x1ABCDEF0, Length: 0, Extended: true, FD: true},
			want:  "D1ABCDEF00\r",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := EncodeFrame(&tt.frame)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeFrameRejectsInvalid(t *testing.T) {
	t.Parallel()

	_, err := EncodeFrame(&canfd.Frame{ID: 1, Length: 9, FD: true})
	require.ErrorIs(t, err, canfd.ErrInvalidLength)

	_, err = EncodeFrame(&canfd.Frame{ID: 0x800, Length: 1})
	require.ErrorIs(t, err, canfd.ErrInvalidParameter)
}

func TestDecodeFrame(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		line string
		want canfd.Frame
	}{
		{
			name: "classic standard data frame",
			line: "t1232ABCD",
			want: canfd.Frame{ID: 0x123, Length: 2, Data: [64]byte{0xAB, 0xCD}},
		},
		{
			name: "classic extended data frame",
			line: "T123456781FF",
			want: canfd.Frame{ID: 0x12345678, Length: 1, Extended: true, Data: [64]byte{0xFF}},
		},
		{
			name: "remote frame",
			line: "r7FF8",
			want: canfd.Frame{ID: 0x7FF, Length: 8, Remote: true},
		},
		{
			name: "FD frame dlc 9 decodes to 12 bytes",
			line: "d00190102030405060708090A0B0C",
			want: canfd.Frame{ID: 1, Length: 12, FD: true,
				Data: [64]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
		},
		{
			name: "FD frame with bit-rate switching",
			line: "b0022DEAD",
			want: canfd.Frame{ID: 2, Length: 2, FD: true, BRS: true, Data: [64]byte{0xDE, 0xAD}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeFrame(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestDecodeFrameRejectsMalformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		line string
	}{
		{name: "empty line", line: ""},
		{name: "unknown prefix", line: "x1231AB"},
		{name: "status response", line: "z"},
		{name: "truncated id", line: "t12"},
		{name: "non-hex id", line: "tXYZ1AB"},
		{name: "payload shorter than dlc", line: "t1232AB"},
		{name: "payload longer than dlc", line: "t1231ABCD"},
		{name: "FD dlc on classic frame", line: "t1239" + "0102030405060708090A0B0C"},
		{name: "remote frame with payload", line: "r1232ABCD"},
		{name: "non-hex payload", line: "t1231ZZ"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeFrame(tt.line)
			require.ErrorIs(t, err, canfd.ErrFrameCorrupted)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	frame, err := canfd.NewFrame(0x42, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)

	line, err := EncodeFrame(frame)
	require.NoError(t, err)
	require.Equal(t, byte('\r'), line[len(line)-1])

	decoded, err := DecodeFrame(line[:len(line)-1])
	require.NoError(t, err)
	assert.Equal(t, *frame, *decoded)
}
