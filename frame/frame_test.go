// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package frame

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/framegrace/texelterm/parser"
	"github.com/framegrace/texelterm/selection"
)

func TestMailboxCoalesces(t *testing.T) {
	mb := NewMailbox()
	mb.Publish(&Frame{Generation: 5})
	mb.Publish(&Frame{Generation: 6})

	f, err := mb.Take(context.Background())
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if f.Generation != 6 {
		t.Fatalf("generation = %d, want 6", f.Generation)
	}
	if _, ok := mb.TryTake(); ok {
		t.Fatal("generation 5 must not be delivered after 6")
	}
	if mb.Replaced() != 1 {
		t.Errorf("replaced = %d, want 1", mb.Replaced())
	}
}

func TestMailboxRejectsOlderGenerations(t *testing.T) {
	mb := NewMailbox()
	mb.Publish(&Frame{Generation: 7})
	if mb.Publish(&Frame{Generation: 3}) {
		t.Fatal("older generation accepted")
	}
	f, _ := mb.TryTake()
	if f.Generation != 7 {
		t.Fatalf("generation = %d, want 7", f.Generation)
	}
}

func TestMailboxCloseDrainsPending(t *testing.T) {
	mb := NewMailbox()
	mb.Publish(&Frame{Generation: 1})
	mb.Close()
	if mb.Publish(&Frame{Generation: 2}) {
		t.Fatal("publish after close accepted")
	}
	f, err := mb.Take(context.Background())
	if err != nil || f.Generation != 1 {
		t.Fatalf("Take = %v, %v", f, err)
	}
	if _, err := mb.Take(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
}

func TestMailboxTakeHonorsContext(t *testing.T) {
	mb := NewMailbox()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := mb.Take(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
}

func TestConsumerSeesNonDecreasingGenerations(t *testing.T) {
	mb := NewMailbox()
	var mu sync.Mutex
	var seen []uint64
	c := StartConsumer(mb, func(f *Frame) {
		mu.Lock()
		seen = append(seen, f.Generation)
		mu.Unlock()
	})
	for gen := uint64(1); gen <= 500; gen++ {
		mb.Publish(&Frame{Generation: gen})
	}
	c.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) == 0 {
		t.Fatal("consumer drew nothing")
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] < seen[i-1] {
			t.Fatalf("generation went backwards: %v", seen)
		}
	}
	if seen[len(seen)-1] != 500 {
		t.Errorf("last generation = %d, want 500", seen[len(seen)-1])
	}
}

func TestConsumerSurvivesHandlerPanic(t *testing.T) {
	mb := NewMailbox()
	drawn := make(chan uint64, 2)
	c := StartConsumer(mb, func(f *Frame) {
		drawn <- f.Generation
		if f.Generation == 1 {
			panic("boom")
		}
	})
	mb.Publish(&Frame{Generation: 1})
	<-drawn
	mb.Publish(&Frame{Generation: 2})
	if g := <-drawn; g != 2 {
		t.Fatalf("generation = %d", g)
	}
	c.Stop()
}

func TestSnapshotIsIsolated(t *testing.T) {
	v := parser.NewVTerm(4, 2)
	p := parser.NewParser(v)
	p.Feed([]byte("ab"))

	prod := NewProducer(NewMailbox())
	f := prod.Publish(v, nil, false)
	if f == nil {
		t.Fatal("first publish skipped")
	}
	p.Feed([]byte("\rXY"))

	if got := f.RowText(0); got != "ab" {
		t.Errorf("snapshot row = %q, want %q", got, "ab")
	}
	if f.Cursor.Col != 2 {
		t.Errorf("cursor col = %d, want 2", f.Cursor.Col)
	}
}

func TestProducerSkipsUnchanged(t *testing.T) {
	v := parser.NewVTerm(4, 2)
	prod := NewProducer(NewMailbox())
	first := prod.Publish(v, nil, false)
	if first == nil || first.Generation != 1 {
		t.Fatalf("first = %+v", first)
	}
	if prod.Publish(v, nil, false) != nil {
		t.Fatal("unchanged terminal republished")
	}
	v.MarkDirty()
	if f := prod.Publish(v, nil, false); f == nil || f.Generation != 2 {
		t.Fatalf("dirty publish = %+v", f)
	}
	if f := prod.Publish(v, nil, true); f == nil || f.Generation != 3 {
		t.Fatalf("forced publish = %+v", f)
	}
}

func TestProducerStopsAfterMailboxClose(t *testing.T) {
	v := parser.NewVTerm(4, 2)
	mb := NewMailbox()
	prod := NewProducer(mb)
	prod.Publish(v, nil, true)
	mb.Close()
	if !mb.Closed() {
		t.Fatal("Closed = false after Close")
	}
	if f := prod.Publish(v, nil, true); f != nil {
		t.Fatalf("published %+v into a closed mailbox", f)
	}
	if prod.Generation() != 1 {
		t.Errorf("generation advanced to %d after close", prod.Generation())
	}
}

func TestSnapshotCarriesSelection(t *testing.T) {
	v := parser.NewVTerm(10, 2)
	parser.NewParser(v).Feed([]byte("hello"))
	sel := selection.NewEngine(v, selection.Geometry{CellWidth: 1, CellHeight: 1})
	sel.Start(0, 0, false)
	sel.Update(3, 0)

	f := Snapshot(v, sel, 1)
	if !f.HasSelection {
		t.Fatal("selection missing from frame")
	}
	if !f.Selected(0, 0) || !f.Selected(0, 2) || f.Selected(0, 3) {
		t.Errorf("selected region = %+v", f.Selection)
	}
}
