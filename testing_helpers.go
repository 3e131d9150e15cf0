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
	"sync"
	"time"
)

// MockTransport is an in-memory transport for tests. It records transmitted
// frames and lets tests inject received frames into the registered handler.
type MockTransport struct {
	mu       sync.Mutex
	handler  FrameHandler
	written  []Frame
	writeErr error
	timeout  time.Duration
	started  bool
	closed   bool
}

// NewMockTransport creates a new mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		timeout: 5 * time.Second,
	}
}

// WriteFrame records the frame, or returns the scripted write error
func (m *MockTransport) WriteFrame(f *Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return NewTransportError("WriteFrame", "mock", ErrTransportClosed, ErrorTypePermanent)
	}
	if m.writeErr != nil {
		return m.writeErr
	}
	m.written = append(m.written, *f)
	return nil
}

// SetWriteError scripts an error for subsequent WriteFrame calls.
// A nil error restores normal recording.
func (m *MockTransport) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Written returns a copy of all frames transmitted so far
func (m *MockTransport) Written() []Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Frame, len(m.written))
	copy(out, m.written)
	return out
}

// Inject delivers a frame to the registered handler, simulating reception.
// Frames injected before Start or without a handler are dropped, matching
// real transport behavior.
func (m *MockTransport) Inject(f *Frame) {
	m.mu.Lock()
	handler := m.handler
	started := m.started && !m.closed
	m.mu.Unlock()

	if started && handler != nil {
		handler(f)
	}
}

// Started reports whether Start has been called. Tests use it to wait for
// receive dispatch before injecting frames.
func (m *MockTransport) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started && !m.closed
}

// SetHandler registers the receive handler
func (m *MockTransport) SetHandler(handler FrameHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
}

// Start begins receive dispatch
func (m *MockTransport) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return NewTransportError("Start", "mock", ErrTransportClosed, ErrorTypePermanent)
	}
	m.started = true
	return nil
}

// Close marks the transport as closed
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// SetTimeout stores the timeout
func (m *MockTransport) SetTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
	return nil
}

// IsConnected returns true until the transport is closed
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Type returns TransportMock
func (*MockTransport) Type() TransportType {
	return TransportMock
}

// Ensure MockTransport implements Transport
var _ Transport = (*MockTransport)(nil)
