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
	"context"
	"fmt"
	"time"
)

// FrameHandler is invoked asynchronously for each received frame. Handlers
// run on the transport's dispatch goroutine and must not block; a handler
// that blocks stalls reception.
type FrameHandler func(*Frame)

// Transport defines the interface for communication with a CAN bus.
// This can be implemented by SocketCAN, SLCAN or mock backends.
type Transport interface {
	// WriteFrame transmits a single frame on the bus
	WriteFrame(f *Frame) error

	// SetHandler registers the receive handler. It may be called before or
	// after Start; a nil handler drops received frames.
	SetHandler(handler FrameHandler)

	// Start begins asynchronous receive dispatch
	Start() error

	// Close stops reception and closes the transport connection
	Close() error

	// SetTimeout sets the write timeout for the transport
	SetTimeout(timeout time.Duration) error

	// IsConnected returns true if the transport is connected
	IsConnected() bool

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportSocketCAN represents the Linux SocketCAN transport.
	TransportSocketCAN TransportType = "socketcan"
	// TransportSLCAN represents serial-line CAN transport.
	TransportSLCAN TransportType = "slcan"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)

// TransportWithRetry wraps a Transport with retry capabilities for writes
type TransportWithRetry struct {
	transport Transport
	config    *RetryConfig
}

// NewTransportWithRetry creates a new transport wrapper with retry logic
func NewTransportWithRetry(transport Transport, config *RetryConfig) *TransportWithRetry {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &TransportWithRetry{
		transport: transport,
		config:    config,
	}
}

// WriteFrame transmits a frame with retry on transient failures
func (t *TransportWithRetry) WriteFrame(f *Frame) error {
	return RetryWithConfig(context.Background(), t.config, func() error {
		if err := t.transport.WriteFrame(f); err != nil {
			// Wrap transport errors for better error handling
			return &TransportError{
				Op:        "WriteFrame",
				Err:       err,
				Type:      GetErrorType(err),
				Retryable: IsRetryable(err),
			}
		}
		return nil
	})
}

// SetHandler registers the receive handler on the underlying transport
func (t *TransportWithRetry) SetHandler(handler FrameHandler) {
	t.transport.SetHandler(handler)
}

// Start begins asynchronous receive dispatch on the underlying transport
func (t *TransportWithRetry) Start() error {
	if err := t.transport.Start(); err != nil {
		return fmt.Errorf("failed to start underlying transport: %w", err)
	}
	return nil
}

// Close closes the transport connection
func (t *TransportWithRetry) Close() error {
	if err := t.transport.Close(); err != nil {
		return fmt.Errorf("failed to close underlying transport: %w", err)
	}
	return nil
}

// SetTimeout sets the write timeout for the transport
func (t *TransportWithRetry) SetTimeout(timeout time.Duration) error {
	if err := t.transport.SetTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set timeout on underlying transport: %w", err)
	}
	return nil
}

// IsConnected returns true if the transport is connected
func (t *TransportWithRetry) IsConnected() bool {
	return t.transport.IsConnected()
}

// Type returns the transport type
func (t *TransportWithRetry) Type() TransportType {
	return t.transport.Type()
}

// SetRetryConfig updates the retry configuration
func (t *TransportWithRetry) SetRetryConfig(config *RetryConfig) {
	t.config = config
}
