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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastRetryConfig keeps retry tests quick
func fastRetryConfig(attempts int) *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       attempts,
		InitialBackoff:    1 * time.Microsecond,
		MaxBackoff:        10 * time.Microsecond,
		BackoffMultiplier: 2.0,
		Jitter:            0,
		RetryTimeout:      100 * time.Millisecond,
	}
}

// flakyTransport fails WriteFrame a configured number of times, then
// delegates to the mock.
type flakyTransport struct {
	*MockTransport
	mu       sync.Mutex
	failures int
	err      error
	calls    int
}

func (f *flakyTransport) WriteFrame(frame *Frame) error {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	f.mu.Unlock()
	if fail {
		return f.err
	}
	return f.MockTransport.WriteFrame(frame)
}

func (f *flakyTransport) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNewTransportWithRetry(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()

	wrapper := NewTransportWithRetry(mock, nil)
	assert.Equal(t, DefaultRetryConfig(), wrapper.config)

	custom := fastRetryConfig(5)
	wrapper = NewTransportWithRetry(mock, custom)
	assert.Equal(t, custom, wrapper.config)
	assert.Equal(t, TransportMock, wrapper.Type())
}

func TestTransportWithRetry_WriteFrame(t *testing.T) {
	t.Parallel()

	frame, err := NewFrame(1, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)

	t.Run("success on first attempt", func(t *testing.T) {
		t.Parallel()
		mock := NewMockTransport()
		wrapper := NewTransportWithRetry(mock, fastRetryConfig(3))

		require.NoError(t, wrapper.WriteFrame(frame))
		assert.Len(t, mock.Written(), 1)
	})

	t.Run("transient failure retried until success", func(t *testing.T) {
		t.Parallel()
		flaky := &flakyTransport{
			MockTransport: NewMockTransport(),
			failures:      2,
			err:           NewTimeoutError("WriteFrame", "mock"),
		}
		wrapper := NewTransportWithRetry(flaky, fastRetryConfig(3))

		require.NoError(t, wrapper.WriteFrame(frame))
		assert.Equal(t, 3, flaky.callCount())
		assert.Len(t, flaky.Written(), 1)
	})

	t.Run("permanent failure not retried", func(t *testing.T) {
		t.Parallel()
		flaky := &flakyTransport{
			MockTransport: NewMockTransport(),
			failures:      10,
			err:           NewDataTooLargeError("WriteFrame", "mock"),
		}
		wrapper := NewTransportWithRetry(flaky, fastRetryConfig(3))

		err := wrapper.WriteFrame(frame)
		require.Error(t, err)
		require.ErrorIs(t, err, ErrDataTooLarge)
		assert.Equal(t, 1, flaky.callCount())
	})

	t.Run("retries exhausted", func(t *testing.T) {
		t.Parallel()
		flaky := &flakyTransport{
			MockTransport: NewMockTransport(),
			failures:      10,
			err:           NewTimeoutError("WriteFrame", "mock"),
		}
		wrapper := NewTransportWithRetry(flaky, fastRetryConfig(3))

		err := wrapper.WriteFrame(frame)
		require.Error(t, err)
		require.ErrorIs(t, err, ErrTransportTimeout)
		assert.Equal(t, 3, flaky.callCount())
	})
}

func TestTransportWithRetry_Forwarding(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	wrapper := NewTransportWithRetry(mock, fastRetryConfig(1))

	require.NoError(t, wrapper.Start())
	require.NoError(t, wrapper.SetTimeout(time.Second))
	assert.True(t, wrapper.IsConnected())

	var got *Frame
	wrapper.SetHandler(func(f *Frame) { got = f })
	frame, err := NewFrame(2, []byte{9})
	require.NoError(t, err)
	mock.Inject(frame)
	require.NotNil(t, got)
	assert.Equal(t, uint32(2), got.ID)

	require.NoError(t, wrapper.Close())
	assert.False(t, wrapper.IsConnected())
}
