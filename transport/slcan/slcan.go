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

// Package slcan provides a serial-line CAN (SLCAN) transport with the CAN FD
// frame extensions used by CANable-style adapters
package slcan

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	canfd "github.com/canbridge/go-canfd"
	"go.bug.st/serial"
)

const (
	defaultBaudRate = 115200
	// defaultBitrateCode selects 1 Mbit/s arbitration rate ('S8').
	defaultBitrateCode = 8
	readChunkSize      = 256
	readTimeout        = 200 * time.Millisecond
)

// Transport implements the canfd.Transport interface over an SLCAN serial
// adapter
type Transport struct {
	mu          sync.Mutex
	port        serial.Port
	handler     canfd.FrameHandler
	wg          sync.WaitGroup
	portName    string
	bitrateCode int
	started     bool
	closed      bool
}

// Option configures the SLCAN transport
type Option func(*Transport)

// WithBitrateCode sets the 'S<n>' bitrate index sent when the channel opens
// (0-8, where 8 selects 1 Mbit/s).
func WithBitrateCode(code int) Option {
	return func(t *Transport) {
		t.bitrateCode = code
	}
}

// New opens the serial port and prepares an SLCAN transport. The channel is
// opened on Start.
func New(portName string, opts ...Option) (*Transport, error) {
	mode := &serial.Mode{BaudRate: defaultBaudRate}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, canfd.NewTransportError("open", portName,
			fmt.Errorf("failed to open serial port: %w", err), canfd.ErrorTypePermanent)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()
		return nil, canfd.NewTransportError("open", portName,
			fmt.Errorf("failed to set read timeout: %w", err), canfd.ErrorTypePermanent)
	}

	t := &Transport{
		port:        port,
		portName:    portName,
		bitrateCode: defaultBitrateCode,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// command writes a single SLCAN control command
func (t *Transport) command(cmd string) error {
	if _, err := t.port.Write([]byte(cmd + "\r")); err != nil {
		return canfd.NewTransportError("command", t.portName,
			fmt.Errorf("%w: %w", canfd.ErrTransportWrite, err), canfd.ErrorTypeTransient)
	}
	return nil
}

// Start configures the adapter bitrate, opens the channel and launches the
// receive dispatch goroutine.
func (t *Transport) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return canfd.NewTransportError("start", t.portName, canfd.ErrTransportClosed, canfd.ErrorTypePermanent)
	}
	if t.started {
		return nil
	}

	// Close any previously open channel before reconfiguring
	if err := t.command("C"); err != nil {
		return err
	}
	if err := t.command(fmt.Sprintf("S%d", t.bitrateCode)); err != nil {
		return err
	}
	if err := t.command("O"); err != nil {
		return err
	}

	t.started = true
	t.wg.Add(1)
	go t.readLoop()
	return nil
}

// WriteFrame transmits a single frame on the bus
func (t *Transport) WriteFrame(f *canfd.Frame) error {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return canfd.NewTransportError("write", t.portName, canfd.ErrTransportClosed, canfd.ErrorTypePermanent)
	}

	line, err := EncodeFrame(f)
	if err != nil {
		return err
	}
	if _, err := t.port.Write([]byte(line)); err != nil {
		return canfd.NewTransportError("write", t.portName,
			fmt.Errorf("%w: %w", canfd.ErrTransportWrite, err), canfd.ErrorTypeTransient)
	}
	return nil
}

// SetHandler registers the receive handler
func (t *Transport) SetHandler(handler canfd.FrameHandler) {
	t.mu.Lock()
	t.handler = handler
	t.mu.Unlock()
}

// readLoop accumulates serial input, splits it on CR and dispatches decoded
// frames. Lines that fail to decode are dropped.
func (t *Transport) readLoop() {
	defer t.wg.Done()

	chunk := make([]byte, readChunkSize)
	var pending []byte
	for {
		t.mu.Lock()
		closed := t.closed
		t.mu.Unlock()
		if closed {
			return
		}

		n, err := t.port.Read(chunk)
		if err != nil {
			// Port closed or fatal error; stop dispatch
			return
		}
		if n == 0 {
			// Read timeout; loop to re-check for shutdown
			continue
		}

		pending = append(pending, chunk[:n]...)
		for {
			idx := bytes.IndexByte(pending, '\r')
			if idx < 0 {
				break
			}
			line := string(pending[:idx])
			pending = pending[idx+1:]

			f, err := DecodeFrame(line)
			if err != nil {
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
}

// Close closes the channel and the serial port
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	started := t.started
	t.mu.Unlock()

	if started {
		_ = t.command("C")
	}
	err := t.port.Close()
	t.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close serial port: %w", err)
	}
	return nil
}

// SetTimeout adjusts the serial read timeout
func (t *Transport) SetTimeout(timeout time.Duration) error {
	if err := t.port.SetReadTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set read timeout: %w", err)
	}
	return nil
}

// IsConnected returns true until the transport is closed
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed
}

// Type returns TransportSLCAN
func (*Transport) Type() canfd.TransportType {
	return canfd.TransportSLCAN
}

// Ensure Transport implements canfd.Transport
var _ canfd.Transport = (*Transport)(nil)
