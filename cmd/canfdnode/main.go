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

// Command canfdnode runs the two-board CAN FD demo: each trigger (a GPIO
// button press, or Enter on stdin) transmits one fixed frame, and every
// received data frame is printed while an LED indicator toggles.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	canfd "github.com/canbridge/go-canfd"
	"github.com/canbridge/go-canfd/boardio"
	"github.com/canbridge/go-canfd/node"
	"github.com/canbridge/go-canfd/transport/slcan"
	"github.com/canbridge/go-canfd/transport/socketcan"
)

type config struct {
	nodeID    *int
	device    *string
	buttonPin *string
	ledPin    *string
	timeout   *time.Duration
	stdin     *bool
}

func parseFlags() *config {
	cfg := &config{
		nodeID: flag.Int("node", 1, "Node role: 1 or 2 (selects the message identifier)"),
		device: flag.String("device", "can0",
			"CAN interface name (e.g. can0) or serial port (e.g. /dev/ttyACM0, COM3)"),
		buttonPin: flag.String("button", "", "GPIO pin name for the push button (optional)"),
		ledPin:    flag.String("led", "", "GPIO pin name for the indicator LED (optional)"),
		timeout:   flag.Duration("timeout", 1*time.Second, "Transmit timeout"),
		stdin:     flag.Bool("stdin", false, "Treat Enter key presses on stdin as the trigger"),
	}
	flag.Parse()
	return cfg
}

// newTransport creates a transport from a device path. Serial-looking paths
// get SLCAN; everything else is treated as a SocketCAN interface name.
func newTransport(path string) (canfd.Transport, error) {
	if path == "" {
		return nil, errors.New("empty device path")
	}

	pathLower := strings.ToLower(path)
	if strings.Contains(pathLower, "tty") || strings.HasPrefix(pathLower, "com") {
		transport, err := slcan.New(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create SLCAN transport: %w", err)
		}
		return transport, nil
	}

	transport, err := socketcan.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create SocketCAN transport: %w", err)
	}
	return transport, nil
}

// setupIndicator builds the indicator output, or a no-op when no LED pin is
// configured.
func setupIndicator(ledPin string) (node.Indicator, error) {
	if ledPin == "" {
		return node.NopIndicator{}, nil
	}
	led, err := boardio.NewLED(ledPin)
	if err != nil {
		return nil, fmt.Errorf("failed to set up LED: %w", err)
	}
	return led, nil
}

// setupTriggers wires the configured trigger sources to the node
func setupTriggers(ctx context.Context, n *node.Node, cfg *config) error {
	if *cfg.buttonPin != "" {
		button, err := boardio.NewButton(*cfg.buttonPin)
		if err != nil {
			return fmt.Errorf("failed to set up button: %w", err)
		}
		go button.Watch(ctx)
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-button.Triggers():
					n.RequestSend()
				}
			}
		}()
	}

	if *cfg.stdin {
		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				n.RequestSend()
			}
		}()
	}

	if *cfg.buttonPin == "" && !*cfg.stdin {
		return errors.New("no trigger source: set -button or -stdin")
	}
	return nil
}

func run(cfg *config) error {
	var id uint32
	switch *cfg.nodeID {
	case 1:
		id = node.Node1ID
	case 2:
		id = node.Node2ID
	default:
		return fmt.Errorf("invalid -node value %d: must be 1 or 2", *cfg.nodeID)
	}

	transport, err := newTransport(*cfg.device)
	if err != nil {
		return err
	}

	device, err := canfd.New(transport, canfd.WithTimeout(*cfg.timeout))
	if err != nil {
		_ = transport.Close()
		return fmt.Errorf("failed to create device: %w", err)
	}
	defer func() { _ = device.Close() }()

	indicator, err := setupIndicator(*cfg.ledPin)
	if err != nil {
		return err
	}

	n, err := node.New(device, indicator, node.Config{
		NodeID: id,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("failed to create node: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := setupTriggers(ctx, n, cfg); err != nil {
		return err
	}

	if err := n.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func main() {
	cfg := parseFlags()
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "canfdnode: %v\n", err)
		os.Exit(1)
	}
}
