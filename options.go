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
	"fmt"
	"time"
)

// Option configures a Device at construction time. Options are applied in
// order by New; the first failing option aborts construction.
type Option func(*Device) error

// WithTimeout sets the transmit timeout pushed down to the bus transport
func WithTimeout(timeout time.Duration) Option {
	return func(d *Device) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout %v must be positive: %w", timeout, ErrInvalidParameter)
		}
		return d.SetTimeout(timeout)
	}
}

// WithRetryConfig replaces the write retry configuration wholesale. Use
// WithMaxRetries or WithRetryBackoff to adjust a single knob instead.
func WithRetryConfig(config *RetryConfig) Option {
	return func(d *Device) error {
		if config == nil {
			return fmt.Errorf("retry config must not be nil: %w", ErrInvalidParameter)
		}
		d.SetRetryConfig(config)
		return nil
	}
}

// WithMaxRetries bounds the total write attempts, including the first;
// the remaining retry settings keep their current values.
func WithMaxRetries(attempts int) Option {
	return func(d *Device) error {
		if attempts < 1 {
			return fmt.Errorf("attempt count %d must be at least 1: %w", attempts, ErrInvalidParameter)
		}
		config := d.retryConfig()
		config.MaxAttempts = attempts
		d.SetRetryConfig(config)
		return nil
	}
}

// WithRetryBackoff sets the delay before the first write retry; the
// remaining retry settings keep their current values.
func WithRetryBackoff(backoff time.Duration) Option {
	return func(d *Device) error {
		if backoff <= 0 {
			return fmt.Errorf("backoff %v must be positive: %w", backoff, ErrInvalidParameter)
		}
		config := d.retryConfig()
		config.InitialBackoff = backoff
		d.SetRetryConfig(config)
		return nil
	}
}
