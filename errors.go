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
	"errors"
	"fmt"
)

// Transport errors
var (
	// ErrTransportTimeout indicates a transport operation timed out.
	ErrTransportTimeout = errors.New("transport timeout")
	// ErrTransportRead indicates a transport read failure.
	ErrTransportRead = errors.New("transport read failed")
	// ErrTransportWrite indicates a transport write failure.
	ErrTransportWrite = errors.New("transport write failed")
	// ErrTransportClosed indicates an operation on a closed transport.
	ErrTransportClosed = errors.New("transport closed")
	// ErrCommunicationFailed indicates a general communication failure.
	ErrCommunicationFailed = errors.New("communication failed")
	// ErrFrameCorrupted indicates a received frame failed to decode.
	ErrFrameCorrupted = errors.New("frame corrupted")
	// ErrUnsupportedPlatform indicates the transport is not available on
	// this operating system.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// Device and frame errors
var (
	// ErrDeviceNotFound indicates the bus interface or port does not exist.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrDataTooLarge indicates a payload exceeds the maximum frame size.
	ErrDataTooLarge = errors.New("data too large")
	// ErrInvalidLength indicates a payload length with no DLC encoding.
	ErrInvalidLength = errors.New("invalid frame length")
	// ErrInvalidParameter indicates an invalid argument.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrRemoteFrame indicates a remote-request frame where a data frame
	// was required.
	ErrRemoteFrame = errors.New("remote frame")
)

// ErrorType classifies errors for retry decisions
type ErrorType int

const (
	// ErrorTypePermanent indicates an error that will not resolve by retrying.
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient indicates a temporary error worth retrying.
	ErrorTypeTransient
	// ErrorTypeTimeout indicates a timeout, retryable by default.
	ErrorTypeTimeout
)

// String returns a human-readable name for the error type
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeTransient:
		return "transient"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypePermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// TransportError wraps a transport-level failure with operation context and
// a retryability classification.
type TransportError struct {
	// Err is the underlying error.
	Err error
	// Op is the operation that failed (e.g. "open", "write").
	Op string
	// Port identifies the bus interface or serial port.
	Port string
	// Type classifies the failure.
	Type ErrorType
	// Retryable reports whether retrying the operation may succeed.
	Retryable bool
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError with the given classification.
// Transient and timeout errors are marked retryable.
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType == ErrorTypeTransient || errType == ErrorTypeTimeout,
	}
}

// NewTimeoutError creates a retryable timeout TransportError
func NewTimeoutError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportTimeout, ErrorTypeTimeout)
}

// NewFrameCorruptedError creates a retryable frame-corruption TransportError
func NewFrameCorruptedError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrFrameCorrupted, ErrorTypeTransient)
}

// NewDataTooLargeError creates a permanent oversized-payload TransportError
func NewDataTooLargeError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrDataTooLarge, ErrorTypePermanent)
}

// retryableSentinels are the bare errors considered retryable when not
// wrapped in a TransportError.
var retryableSentinels = []error{
	ErrTransportTimeout,
	ErrTransportRead,
	ErrTransportWrite,
	ErrCommunicationFailed,
	ErrFrameCorrupted,
}

// IsRetryable reports whether an operation that failed with err is worth
// retrying. A TransportError's explicit Retryable flag always wins.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}

	for _, sentinel := range retryableSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// GetErrorType returns the classification of err. Unknown errors are
// treated as permanent.
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}

	if errors.Is(err, ErrTransportTimeout) {
		return ErrorTypeTimeout
	}
	for _, sentinel := range retryableSentinels {
		if errors.Is(err, sentinel) {
			return ErrorTypeTransient
		}
	}
	return ErrorTypePermanent
}
