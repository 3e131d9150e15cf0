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

// Package socketcan provides a Linux SocketCAN transport with CAN FD support
package socketcan

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	canfd "github.com/canbridge/go-canfd"
	"github.com/canbridge/go-canfd/internal/frame"
	"golang.org/x/sys/unix"
)

// Kernel frame sizes on the wire
const (
	classicFrameSize = 16 // struct can_frame
	fdFrameSize      = 72 // struct canfd_frame
	dataOffset       = 8  // payload offset in both layouts
)

// canfdBRSFlag mirrors CANFD_BRS from linux/can.h, which x/sys/unix does not
// export.
const canfdBRSFlag = 0x01

// recvTimeout bounds how long the read loop blocks in the kernel so it can
// notice shutdown; closing the fd does not wake a thread parked in read(2).
const recvTimeout = 200 * time.Millisecond

// Transport implements the canfd.Transport interface on a raw AF_CAN socket
type Transport struct {
	mu      sync.Mutex
	handler canfd.FrameHandler
	wg      sync.WaitGroup
	ifName  string
	fd      int
	started bool
	closed  bool
}

// New opens a raw CAN socket bound to the named interface (e.g. "can0") and
// enables CAN FD frame I/O on it.
func New(ifName string) (*Transport, error) {
	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, unix.CAN_RAW)
	if err != nil {
		return nil, canfd.NewTransportError("open", ifName,
			fmt.Errorf("failed to create CAN socket: %w", err), canfd.ErrorTypePermanent)
	}

	ifr, err := unix.NewIfreq(ifName)
	if err != nil {
		_ = unix.Close(fd)
		return nil, canfd.NewTransportError("open", ifName, err, canfd.ErrorTypePermanent)
	}
	if err := unix.IoctlIfreq(fd, unix.SIOCGIFINDEX, ifr); err != nil {
		_ = unix.Close(fd)
		return nil, canfd.NewTransportError("open", ifName,
			fmt.Errorf("%w: %w", canfd.ErrDeviceNotFound, err), canfd.ErrorTypePermanent)
	}

	// Accept and emit 72-byte canfd_frame structures
	if err := unix.SetsockoptInt(fd, unix.SOL_CAN_RAW, unix.CAN_RAW_FD_FRAMES, 1); err != nil {
		_ = unix.Close(fd)
		return nil, canfd.NewTransportError("open", ifName,
			fmt.Errorf("failed to enable CAN FD frames: %w", err), canfd.ErrorTypePermanent)
	}

	addr := &unix.SockaddrCAN{Ifindex: int(ifr.Uint32())}
	if err := unix.Bind(fd, addr); err != nil {
		_ = unix.Close(fd)
		return nil, canfd.NewTransportError("open", ifName,
			fmt.Errorf("failed to bind to %s: %w", ifName, err), canfd.ErrorTypePermanent)
	}

	if err := setRecvTimeout(fd); err != nil {
		_ = unix.Close(fd)
		return nil, canfd.NewTransportError("open", ifName,
			fmt.Errorf("failed to set receive timeout: %w", err), canfd.ErrorTypePermanent)
	}

	return &Transport{
		fd:     fd,
		ifName: ifName,
	}, nil
}

// WriteFrame transmits a single frame on the bus
func (t *Transport) WriteFrame(f *canfd.Frame) error {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return canfd.NewTransportError("write", t.ifName, canfd.ErrTransportClosed, canfd.ErrorTypePermanent)
	}

	buf, err := marshalFrame(f)
	if err != nil {
		return err
	}

	n, err := unix.Write(t.fd, buf)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return canfd.NewTimeoutError("write", t.ifName)
		}
		return canfd.NewTransportError("write", t.ifName,
			fmt.Errorf("%w: %w", canfd.ErrTransportWrite, err), canfd.ErrorTypeTransient)
	}
	if n != len(buf) {
		return canfd.NewTransportError("write", t.ifName, canfd.ErrTransportWrite, canfd.ErrorTypeTransient)
	}
	return nil
}

// SetHandler registers the receive handler
func (t *Transport) SetHandler(handler canfd.FrameHandler) {
	t.mu.Lock()
	t.handler = handler
	t.mu.Unlock()
}

// Start launches the receive dispatch goroutine
func (t *Transport) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return canfd.NewTransportError("start", t.ifName, canfd.ErrTransportClosed, canfd.ErrorTypePermanent)
	}
	if t.started {
		return nil
	}
	t.started = true

	t.wg.Add(1)
	go t.readLoop()
	return nil
}

// readLoop reads kernel frames and dispatches them until the transport is
// closed. Reads that fail to decode are dropped.
func (t *Transport) readLoop() {
	defer t.wg.Done()

	buf := make([]byte, fdFrameSize)
	for {
		t.mu.Lock()
		closed := t.closed
		t.mu.Unlock()
		if closed {
			return
		}

		n, err := unix.Read(t.fd, buf)
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				// Receive timeout or signal; loop to re-check for shutdown
				continue
			}
			// Fatal socket error; stop dispatch
			return
		}

		f, ok := unmarshalFrame(buf[:n])
		if !ok {
			continue
		}

		t.mu.Lock()
		handler := t.handler
		t.mu.Unlock()
		if handler != nil {
			handler(f)
		}
	}
}

// Close stops reception and closes the socket
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	// The read loop re-checks the flag within recvTimeout; wait for it to
	// exit before the fd goes away so it never reads a stale descriptor
	t.wg.Wait()
	if err := unix.Close(t.fd); err != nil {
		return fmt.Errorf("failed to close CAN socket: %w", err)
	}
	return nil
}

// setRecvTimeout bounds blocking reads on fd so the read loop can observe
// the closed flag
func setRecvTimeout(fd int) error {
	tv := unix.NsecToTimeval(recvTimeout.Nanoseconds())
	return unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv)
}

// SetTimeout sets the socket send timeout
func (t *Transport) SetTimeout(timeout time.Duration) error {
	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	if err := unix.SetsockoptTimeval(t.fd, unix.SOL_SOCKET, unix.SO_SNDTIMEO, &tv); err != nil {
		return fmt.Errorf("failed to set send timeout: %w", err)
	}
	return nil
}

// IsConnected returns true until the transport is closed
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed
}

// Type returns TransportSocketCAN
func (*Transport) Type() canfd.TransportType {
	return canfd.TransportSocketCAN
}

// marshalFrame encodes a frame into the kernel can_frame/canfd_frame layout
func marshalFrame(f *canfd.Frame) ([]byte, error) {
	length := int(f.Length)
	if !frame.IsValidLength(length) {
		return nil, canfd.ErrInvalidLength
	}

	id := f.ID
	if f.Extended {
		id |= unix.CAN_EFF_FLAG
	}
	if f.Remote {
		id |= unix.CAN_RTR_FLAG
	}

	size := classicFrameSize
	if f.FD {
		size = fdFrameSize
	} else if length > frame.MaxClassicDataLength {
		return nil, canfd.ErrInvalidLength
	}

	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[0:4], id)
	buf[4] = f.Length
	if f.FD && f.BRS {
		buf[5] = canfdBRSFlag
	}
	copy(buf[dataOffset:], f.Data[:length])
	return buf, nil
}

// unmarshalFrame decodes a kernel frame. The second return value is false
// for truncated reads or lengths with no DLC encoding.
func unmarshalFrame(buf []byte) (*canfd.Frame, bool) {
	if len(buf) != classicFrameSize && len(buf) != fdFrameSize {
		return nil, false
	}

	rawID := binary.LittleEndian.Uint32(buf[0:4])
	length := int(buf[4])
	if !frame.IsValidLength(length) || dataOffset+length > len(buf) {
		return nil, false
	}

	f := &canfd.Frame{
		Length:   uint8(length),
		Extended: rawID&unix.CAN_EFF_FLAG != 0,
		Remote:   rawID&unix.CAN_RTR_FLAG != 0,
		FD:       len(buf) == fdFrameSize,
	}
	if f.Extended {
		f.ID = rawID & unix.CAN_EFF_MASK
	} else {
		f.ID = rawID & unix.CAN_SFF_MASK
	}
	if f.FD {
		f.Remote = false // CAN FD has no remote frames
		f.BRS = buf[5]&canfdBRSFlag != 0
	}
	copy(f.Data[:], buf[dataOffset:dataOffset+length])
	return f, true
}

// Ensure Transport implements canfd.Transport
var _ canfd.Transport = (*Transport)(nil)
