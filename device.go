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
	"sync"
	"time"
)

// DeviceConfig contains configuration options for the Device
type DeviceConfig struct {
	// RetryConfig configures retry behavior for transport operations
	RetryConfig *RetryConfig
	// Timeout is the default timeout for write operations
	Timeout time.Duration
}

// DefaultDeviceConfig returns default device configuration
func DefaultDeviceConfig() *DeviceConfig {
	return &DeviceConfig{
		RetryConfig: DefaultRetryConfig(),
		Timeout:     1 * time.Second,
	}
}

// Device represents a CAN FD bus controller attached through a Transport.
//
// Thread Safety: WriteFrame and OnFrame are safe for concurrent use. The
// registered handler runs on the transport's dispatch goroutine and must
// not block.
type Device struct {
	transport Transport
	config    *DeviceConfig

	mu          sync.Mutex
	handler     FrameHandler
	initialized bool
}

// New creates a new device with the given transport
func New(transport Transport, opts ...Option) (*Device, error) {
	if transport == nil {
		return nil, ErrInvalidParameter
	}

	device := &Device{
		transport: transport,
		config:    DefaultDeviceConfig(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}

	return device, nil
}

// Transport returns the underlying transport
func (d *Device) Transport() Transport {
	return d.transport
}

// OnFrame registers the handler invoked for each received frame. It may be
// called before or after Init; the latest registration wins.
func (d *Device) OnFrame(handler FrameHandler) {
	d.mu.Lock()
	d.handler = handler
	d.mu.Unlock()
}

// dispatch forwards a received frame to the registered handler, if any
func (d *Device) dispatch(f *Frame) {
	d.mu.Lock()
	handler := d.handler
	d.mu.Unlock()

	if handler != nil {
		handler(f)
	}
}

// Init initializes the device and starts receive dispatch
func (d *Device) Init() error {
	return d.InitContext(context.Background())
}

// InitContext initializes the device and starts receive dispatch with
// context support. A failed attempt leaves the device uninitialized, so a
// later call tries the full sequence again.
func (d *Device) InitContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("init aborted: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initialized {
		return nil
	}

	if !d.transport.IsConnected() {
		return NewTransportError("init", "", ErrTransportClosed, ErrorTypePermanent)
	}

	d.transport.SetHandler(d.dispatch)
	if err := d.transport.Start(); err != nil {
		return fmt.Errorf("failed to start transport: %w", err)
	}
	d.initialized = true
	return nil
}

// WriteFrame transmits a single frame on the bus
func (d *Device) WriteFrame(f *Frame) error {
	return d.WriteFrameContext(context.Background(), f)
}

// WriteFrameContext transmits a single frame on the bus with context support
func (d *Device) WriteFrameContext(ctx context.Context, f *Frame) error {
	if f == nil {
		return ErrInvalidParameter
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid frame: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write aborted: %w", err)
	}

	if err := d.transport.WriteFrame(f); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// SetTimeout sets the default timeout for transport operations
func (d *Device) SetTimeout(timeout time.Duration) error {
	d.config.Timeout = timeout
	if err := d.transport.SetTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set timeout on transport: %w", err)
	}
	return nil
}

// retryConfig returns the device's retry configuration, installing the
// default when none is set
func (d *Device) retryConfig() *RetryConfig {
	if d.config.RetryConfig == nil {
		d.config.RetryConfig = DefaultRetryConfig()
	}
	return d.config.RetryConfig
}

// SetRetryConfig updates the retry configuration
func (d *Device) SetRetryConfig(config *RetryConfig) {
	d.config.RetryConfig = config
	if tr, ok := d.transport.(*TransportWithRetry); ok {
		tr.SetRetryConfig(config)
	}
}

// Close closes the device connection
func (d *Device) Close() error {
	if d.transport != nil {
		if err := d.transport.Close(); err != nil {
			return fmt.Errorf("failed to close transport: %w", err)
		}
	}
	return nil
}
