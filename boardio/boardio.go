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

// Package boardio provides the demo's board-level inputs and outputs: a
// push-button trigger and an LED indicator driven through periph.io
package boardio

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var (
	initOnce sync.Once
	initErr  error

	hostInit = func() error {
		_, err := host.Init()
		return err
	}
)

// Init loads the periph.io host drivers. It is safe to call more than once;
// a failed load is remembered and reported by every later call.
func Init() error {
	initOnce.Do(func() {
		initErr = hostInit()
	})
	if initErr != nil {
		return fmt.Errorf("failed to initialize periph host: %w", initErr)
	}
	return nil
}

// pinByName resolves a GPIO pin from the periph registry
func pinByName(name string) (gpio.PinIO, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no GPIO pin named %q", name)
	}
	return pin, nil
}
