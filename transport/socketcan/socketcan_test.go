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

//go:build linux

package socketcan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	canfd "github.com/canbridge/go-canfd"
)

func TestMarshalFrame(t *testing.T) {
	t.Parallel()

	t.Run("classic frame uses 16-byte layout", func(t *testing.T) {
		t.Parallel()
		f := &canfd.Frame{ID: 0x123, Length: 3, Data: [64]byte{0xAA, 0xBB, 0xCC}}
		buf, err := marshalFrame(f)
		require.NoError(t, err)
		require.Len(t, buf, classicFrameSize)
		assert.Equal(t, byte(0x23), buf[0])
		assert.Equal(t, byte(0x01), buf[1])
		assert.Equal(t, byte(3), buf[4])
		assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, buf[dataOffset:dataOffset+3])
	})

	t.Run("FD frame uses 72-byte layout", func(t *testing.T) {
		t.Parallel()
		f := &canfd.Frame{ID: 1, Length: 12, FD: true, BRS: true}
		buf, err := marshalFrame(f)
		require.NoError(t, err)
		require.Len(t, buf, fdFrameSize)
		assert.Equal(t, byte(12), buf[4])
		assert.Equal(t, byte(canfdBRSFlag), buf[5])
	})

	t.Run("extended and remote flags set in can_id", func(t *testing.T) {
		t.Parallel()
		f := &canfd.Frame{ID: 0x12345678, Length: 0, Extended: true, Remote: true}
		buf, err := marshalFrame(f)
		require.NoError(t, err)
		rawID := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
		assert.NotZero(t, rawID&unix.CAN_EFF_FLAG)
		assert.NotZero(t, rawID&unix.CAN_RTR_FLAG)
		assert.Equal(t, uint32(0x12345678), rawID&unix.CAN_EFF_MASK)
	})

	t.Run("unencodable length rejected", func(t *testing.T) {
		t.Parallel()
		f := &canfd.Frame{ID: 1, Length: 9, FD: true}
		_, err := marshalFrame(f)
		require.ErrorIs(t, err, canfd.ErrInvalidLength)
	})

	t.Run("FD length on classic frame rejected", func(t *testing.T) {
		t.Parallel()
		f := &canfd.Frame{ID: 1, Length: 12}
		_, err := marshalFrame(f)
		require.ErrorIs(t, err, canfd.ErrInvalidLength)
	})
}

func TestUnmarshalFrame(t *testing.T) {
	t.Parallel()

	t.Run("round trip classic frame", func(t *testing.T) {
		t.Parallel()
		orig := &canfd.Frame{ID: 0x456, Length: 8, Data: [64]byte{1, 2, 3, 4, 5, 6, 7, 8}}
		buf, err := marshalFrame(orig)
		require.NoError(t, err)

		got, ok := unmarshalFrame(buf)
		require.True(t, ok)
		assert.Equal(t, *orig, *got)
	})

	t.Run("round trip FD frame", func(t *testing.T) {
		t.Parallel()
		payload := make([]byte, 64)
		for i := range payload {
			payload[i] = byte(i)
		}
		orig, err := canfd.NewFrame(0x1FFFFFFF, payload)
		require.NoError(t, err)
		orig.Extended = true
		orig.BRS = true

		buf, err := marshalFrame(orig)
		require.NoError(t, err)

		got, ok := unmarshalFrame(buf)
		require.True(t, ok)
		assert.Equal(t, *orig, *got)
	})

	t.Run("truncated read dropped", func(t *testing.T) {
		t.Parallel()
		_, ok := unmarshalFrame(make([]byte, 10))
		assert.False(t, ok)
	})

	t.Run("invalid length dropped", func(t *testing.T) {
		t.Parallel()
		buf := make([]byte, fdFrameSize)
		buf[4] = 63 // no DLC encoding
		_, ok := unmarshalFrame(buf)
		assert.False(t, ok)
	})
}

func TestNewFailsForMissingInterface(t *testing.T) {
	t.Parallel()

	_, err := New("does-not-exist0")
	require.Error(t, err)
	assert.False(t, canfd.IsRetryable(err))
}

// A socketpair stands in for the CAN socket: message boundaries are
// preserved, so marshaled frames arrive as single reads.
func TestCloseStopsReadLoop(t *testing.T) {
	t.Parallel()

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_SEQPACKET, 0)
	require.NoError(t, err)
	defer func() { _ = unix.Close(fds[1]) }()

	tr := &Transport{fd: fds[0], ifName: "pair"}
	require.NoError(t, setRecvTimeout(fds[0]))

	received := make(chan *canfd.Frame, 1)
	tr.SetHandler(func(f *canfd.Frame) { received <- f })
	require.NoError(t, tr.Start())

	// Frames written to the peer end reach the handler
	frame, err := canfd.NewFrame(5, []byte{0xAB})
	require.NoError(t, err)
	buf, err := marshalFrame(frame)
	require.NoError(t, err)
	_, err = unix.Write(fds[1], buf)
	require.NoError(t, err)

	select {
	case got := <-received:
		assert.Equal(t, uint32(5), got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("frame was not dispatched")
	}

	// Close must return even with no more traffic: the read loop wakes on
	// its receive timeout and observes the closed flag
	done := make(chan error, 1)
	go func() { done <- tr.Close() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Close hung waiting for the read loop")
	}
}
