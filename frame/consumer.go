// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: frame/consumer.go
// Summary: Renderer-side goroutine draining a Mailbox, and the producer that feeds it.

package frame

import (
	"context"
	"log"

	"github.com/framegrace/texelterm/parser"
	"github.com/framegrace/texelterm/selection"
)

// Handler draws one frame. It runs on the consumer goroutine.
type Handler func(*Frame)

// Consumer runs a Handler for every frame it takes from a mailbox.
type Consumer struct {
	mb      *Mailbox
	handler Handler
	done    chan struct{}
}

// StartConsumer launches the consumer goroutine.
func StartConsumer(mb *Mailbox, h Handler) *Consumer {
	c := &Consumer{mb: mb, handler: h, done: make(chan struct{})}
	go c.run()
	return c
}

func (c *Consumer) run() {
	defer close(c.done)
	for {
		f, err := c.mb.Take(context.Background())
		if err != nil {
			return
		}
		c.draw(f)
	}
}

func (c *Consumer) draw(f *Frame) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Frame: handler panic on generation %d: %v", f.Generation, r)
		}
	}()
	c.handler(f)
}

// Stop closes the mailbox, lets the consumer draw the last pending frame
// and waits for the goroutine to exit.
func (c *Consumer) Stop() {
	c.mb.Close()
	<-c.done
}

// Done is closed when the consumer goroutine has exited.
func (c *Consumer) Done() <-chan struct{} { return c.done }

// Producer snapshots a VTerm into a mailbox, numbering frames with a
// monotonically increasing generation.
type Producer struct {
	mb          *Mailbox
	generation  uint64
	lastVersion uint64
	started     bool
}

// NewProducer creates a producer publishing into mb.
func NewProducer(mb *Mailbox) *Producer {
	return &Producer{mb: mb}
}

// Mailbox returns the mailbox frames are published to.
func (p *Producer) Mailbox() *Mailbox { return p.mb }

// Generation returns the generation of the last published frame.
func (p *Producer) Generation() uint64 { return p.generation }

// Dirty reports whether v changed since the last published frame.
func (p *Producer) Dirty(v *parser.VTerm) bool {
	return !p.started || v.Version() != p.lastVersion
}

// Publish snapshots v when it changed since the last frame, or always when
// force is set. Returns the published frame, or nil. Nothing is copied once
// the mailbox is closed.
func (p *Producer) Publish(v *parser.VTerm, sel *selection.Engine, force bool) *Frame {
	if p.mb.Closed() || (!force && !p.Dirty(v)) {
		return nil
	}
	p.generation++
	p.lastVersion = v.Version()
	p.started = true
	f := Snapshot(v, sel, p.generation)
	if !p.mb.Publish(f) {
		return nil
	}
	return f
}
