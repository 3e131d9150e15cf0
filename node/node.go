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

// Package node implements the two-board CAN FD demo node: a button-triggered
// transmitter paired with a receive reporter that toggles an indicator and
// prints every received data frame.
package node

import (
	"context"
	"fmt"
	"io"
	"os"

	canfd "github.com/canbridge/go-canfd"
)

// Message identifiers for the two paired demo nodes
const (
	// Node1ID is the message identifier used by the first board.
	Node1ID uint32 = 1
	// Node2ID is the message identifier used by the second board.
	Node2ID uint32 = 2
)

// DefaultPayload is the fixed payload transmitted on every button press.
var DefaultPayload = []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

// Indicator is a visible output toggled once per received data frame.
type Indicator interface {
	// Toggle inverts the indicator state
	Toggle() error
}

// NopIndicator is an Indicator that does nothing, for setups without an LED.
type NopIndicator struct{}

// Toggle implements Indicator
func (NopIndicator) Toggle() error { return nil }

// Config configures a demo node
type Config struct {
	// NodeID is the message identifier for transmitted frames (Node1ID or
	// Node2ID).
	NodeID uint32
	// Payload is the fixed transmit payload; defaults to DefaultPayload.
	Payload []byte
	// Output receives the node's console reporting; defaults to os.Stdout.
	Output io.Writer
}

// Node runs the demo: send requests are coalesced into at most one pending
// transmission, and every received data frame is reported on Output.
type Node struct {
	device    *canfd.Device
	indicator Indicator
	out       io.Writer
	id        uint32
	txFrame   *canfd.Frame

	// pending carries at most one outstanding send request; requests
	// arriving while one is pending are coalesced.
	pending chan struct{}
}

// New creates a demo node on the given device
func New(device *canfd.Device, indicator Indicator, cfg Config) (*Node, error) {
	if device == nil {
		return nil, canfd.ErrInvalidParameter
	}
	if cfg.NodeID != Node1ID && cfg.NodeID != Node2ID {
		return nil, fmt.Errorf("node id must be %d or %d: %w",
			Node1ID, Node2ID, canfd.ErrInvalidParameter)
	}
	if indicator == nil {
		indicator = NopIndicator{}
	}

	payload := cfg.Payload
	if payload == nil {
		payload = DefaultPayload
	}
	txFrame, err := canfd.NewFrame(cfg.NodeID, payload)
	if err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	return &Node{
		device:    device,
		indicator: indicator,
		out:       out,
		id:        cfg.NodeID,
		txFrame:   txFrame,
		pending:   make(chan struct{}, 1),
	}, nil
}

// RequestSend asks the node to transmit its frame. It never blocks: requests
// made while a transmission is already pending are silently coalesced into
// the one outstanding request.
func (n *Node) RequestSend() {
	select {
	case n.pending <- struct{}{}:
	default:
	}
}

// Run prints the startup banner, starts reception and serves send requests
// until ctx is cancelled. Initialization failures are returned before the
// serve loop starts.
func (n *Node) Run(ctx context.Context) error {
	n.printBanner()

	n.device.OnFrame(n.handleFrame)
	if err := n.device.InitContext(ctx); err != nil {
		return fmt.Errorf("failed to initialize device: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-n.pending:
			n.transmit()
		}
	}
}

// transmit sends the node's fixed frame and reports the outcome. Failures
// are not retried; the loop simply waits for the next request.
func (n *Node) transmit() {
	if err := n.device.WriteFrame(n.txFrame); err != nil {
		fmt.Fprintf(n.out, "Error sending CAN-FD Frame with message ID-%d: %v\n\n", n.id, err)
		return
	}
	fmt.Fprintf(n.out, "CAN-FD Frame sent with message ID-%d\n\n", n.id)
}

// handleFrame reports a received frame. It runs on the transport's dispatch
// goroutine, so it only toggles the indicator and writes to Output.
func (n *Node) handleFrame(f *canfd.Frame) {
	// Remote-request frames are ignored without comment
	if f.Remote {
		return
	}

	if err := n.indicator.Toggle(); err != nil {
		fmt.Fprintf(n.out, "Error toggling indicator: %v\n", err)
	}

	// Cap the copy at the largest supported payload; the transports never
	// produce more, but a handler must not trust Length blindly.
	length := int(f.Length)
	if length > canfd.MaxDataLength {
		length = canfd.MaxDataLength
	}
	var data [canfd.MaxDataLength]byte
	copy(data[:], f.Data[:length])

	fmt.Fprintf(n.out, "%d bytes received with message identifier %d\n\n", length, f.ID)
	fmt.Fprint(n.out, "Rx Data : ")
	for i := 0; i < length; i++ {
		fmt.Fprintf(n.out, " %d ", data[i])
	}
	fmt.Fprint(n.out, "\n\n")
}

// printBanner writes the startup banner and node announcement
func (n *Node) printBanner() {
	const rule = "==========================================================="
	fmt.Fprintf(n.out, "%s\n", rule)
	fmt.Fprintf(n.out, "Welcome to CAN-FD example\n")
	fmt.Fprintf(n.out, "%s\n\n", rule)
	fmt.Fprintf(n.out, "%s\n", rule)
	fmt.Fprintf(n.out, "CAN-FD Node-%d (message id)\n", n.id)
	fmt.Fprintf(n.out, "%s\n\n", rule)
}
