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

package boardio

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// edgePollInterval bounds how long the watcher blocks in WaitForEdge so it
// can notice context cancellation.
const edgePollInterval = 500 * time.Millisecond

// Button watches a push-button pin for falling edges and turns each edge
// into a trigger signal. Edges arriving while a trigger is already pending
// are coalesced; there is no debouncing and no queuing of presses.
type Button struct {
	pin      gpio.PinIn
	triggers chan struct{}
}

// NewButton configures the named pin as a pulled-up input with falling-edge
// detection.
func NewButton(pinName string) (*Button, error) {
	pin, err := pinByName(pinName)
	if err != nil {
		return nil, err
	}
	return NewButtonFromPin(pin)
}

// NewButtonFromPin builds a Button on an already-resolved pin
func NewButtonFromPin(pin gpio.PinIn) (*Button, error) {
	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return nil, fmt.Errorf("failed to configure button pin %s: %w", pin.Name(), err)
	}
	return &Button{
		pin:      pin,
		triggers: make(chan struct{}, 1),
	}, nil
}

// Triggers returns the channel that carries one signal per observed press.
// The channel has capacity one; presses during a pending trigger are lost.
func (b *Button) Triggers() <-chan struct{} {
	return b.triggers
}

// Watch blocks, forwarding button edges to the trigger channel until ctx is
// cancelled. Run it on its own goroutine.
func (b *Button) Watch(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if !b.pin.WaitForEdge(edgePollInterval) {
			continue
		}
		select {
		case b.triggers <- struct{}{}:
		default:
			// Trigger already pending; coalesce the press
		}
	}
}
