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
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// LED drives an indicator output pin. It satisfies node.Indicator.
type LED struct {
	mu    sync.Mutex
	pin   gpio.PinOut
	level gpio.Level
}

// NewLED configures the named pin as an output driven low
func NewLED(pinName string) (*LED, error) {
	pin, err := pinByName(pinName)
	if err != nil {
		return nil, err
	}
	return NewLEDFromPin(pin)
}

// NewLEDFromPin builds an LED on an already-resolved pin
func NewLEDFromPin(pin gpio.PinOut) (*LED, error) {
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("failed to configure LED pin %s: %w", pin.Name(), err)
	}
	return &LED{pin: pin, level: gpio.Low}, nil
}

// Toggle inverts the LED state
func (l *LED) Toggle() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.level = !l.level
	if err := l.pin.Out(l.level); err != nil {
		return fmt.Errorf("failed to drive LED pin %s: %w", l.pin.Name(), err)
	}
	return nil
}

// Level returns the last driven level
func (l *LED) Level() gpio.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}
