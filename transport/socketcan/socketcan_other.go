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

//go:build !linux

// Package socketcan provides a Linux SocketCAN transport with CAN FD support
package socketcan

import (
	"time"

	canfd "github.com/canbridge/go-canfd"
)

// Transport is unavailable on this platform; SocketCAN is Linux only.
type Transport struct{}

// New always fails on non-Linux platforms
func New(ifName string) (*Transport, error) {
	return nil, canfd.NewTransportError("open", ifName,
		canfd.ErrUnsupportedPlatform, canfd.ErrorTypePermanent)
}

// WriteFrame is not supported on this platform
func (*Transport) WriteFrame(*canfd.Frame) error { return canfd.ErrUnsupportedPlatform }

// SetHandler is a no-op on this platform
func (*Transport) SetHandler(canfd.FrameHandler) {}

// Start is not supported on this platform
func (*Transport) Start() error { return canfd.ErrUnsupportedPlatform }

// Close is a no-op on this platform
func (*Transport) Close() error { return nil }

// SetTimeout is not supported on this platform
func (*Transport) SetTimeout(time.Duration) error { return canfd.ErrUnsupportedPlatform }

// IsConnected always returns false on this platform
func (*Transport) IsConnected() bool { return false }

// Type returns TransportSocketCAN
func (*Transport) Type() canfd.TransportType { return canfd.TransportSocketCAN }
