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

/*
Package canfd provides a pure Go library for sending and receiving CAN FD
frames through pluggable bus transports.

CAN FD (Controller Area Network Flexible Data-Rate) extends classic CAN with
payloads of up to 64 bytes and a faster data phase. The bit-level protocol,
arbitration and CRC are handled by the CAN controller hardware (or the kernel
driving it); this library concerns itself with framing, transport plumbing
and asynchronous receive dispatch.

Features:
  - Multiple transport support: SocketCAN (Linux), SLCAN over serial
  - Classic CAN and CAN FD frames, standard and extended identifiers
  - Asynchronous, non-blocking receive dispatch via registered handlers
  - Retry logic with configurable backoff for transient transport faults
  - Comprehensive error handling

Basic Usage:

	import (
	    "github.com/canbridge/go-canfd"
	    "github.com/canbridge/go-canfd/transport/socketcan"
	)

	// Open a SocketCAN transport
	transport, err := socketcan.New("can0")
	if err != nil {
	    log.Fatal(err)
	}

	// Create the device and register a receive handler
	device, err := canfd.New(transport)
	if err != nil {
	    log.Fatal(err)
	}
	defer device.Close()

	device.OnFrame(func(f *canfd.Frame) {
	    fmt.Printf("received id=%d len=%d\n", f.ID, f.Length)
	})
	if err := device.Init(); err != nil {
	    log.Fatal(err)
	}

	// Transmit a frame
	frame, err := canfd.NewFrame(1, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
	    log.Fatal(err)
	}
	if err := device.WriteFrame(frame); err != nil {
	    log.Fatal(err)
	}

Transport Selection:

The library supports multiple transport layers:

  - SocketCAN: Linux kernel CAN stack, works with native and USB adapters
  - SLCAN: serial-line CAN for CANable-style USB sticks on any platform

Error Handling:

All operations return meaningful errors that can be inspected:

	if errors.Is(err, canfd.ErrTransportTimeout) {
	    // Handle timeout
	}

Thread Safety:

Frame writes and handler registration are safe for concurrent use. Receive
handlers are invoked from the transport's dispatch goroutine and must not
block.
*/
package canfd
