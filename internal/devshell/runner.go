// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Hosts a terminal session inside a local tcell screen.
// Usage: Used by cmd/texelterm; tests swap the screen with SetScreenFactory.
// Notes: The host is cell addressed, so sessions run with 1x1 pixel cells and no border.

package devshell

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelterm/frame"
	"github.com/framegrace/texelterm/session"
)

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// SessionOptions returns the session geometry matching a tcell screen,
// where one mouse unit is one cell.
func SessionOptions() []session.Option {
	return []session.Option{session.WithCellSize(1, 1), session.WithBorder(0)}
}

// Run draws s on a tcell screen and feeds it the screen's input until the
// child exits or ctx is cancelled. Both count as a clean exit. s must have
// been built with SessionOptions. Run closes s, joining its frame consumer,
// before it releases the screen.
func Run(ctx context.Context, s *session.Session, palette *Palette) error {
	if palette == nil {
		palette = DefaultPalette()
	}
	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse()
	defer screen.DisableMouse()
	screen.EnablePaste()
	screen.EnableFocus()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := &renderer{screen: screen, palette: palette}
	s.SetFrameHandler(r.draw)
	defer s.Close()

	width, height := screen.Size()
	s.Post(session.ResizeEvent{Width: width, Height: height})

	runErr := make(chan error, 1)
	go func() {
		runErr <- s.Run(ctx)
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	var (
		mouse   mouseTracker
		paste   []rune
		inPaste bool
	)
	for {
		select {
		case err := <-runErr:
			return exitError(err)
		default:
		}

		ev := screen.PollEvent()
		if ev == nil {
			cancel()
			return exitError(<-runErr)
		}
		switch tev := ev.(type) {
		case *tcell.EventInterrupt:
		case *tcell.EventResize:
			w, h := tev.Size()
			screen.Sync()
			s.Post(session.ResizeEvent{Width: w, Height: h})
		case *tcell.EventFocus:
			s.Post(session.FocusEvent{Focused: tev.Focused})
		case *tcell.EventPaste:
			if tev.Start() {
				inPaste = true
				paste = paste[:0]
			} else if tev.End() {
				inPaste = false
				if len(paste) > 0 {
					s.Post(session.PasteEvent{Text: string(paste)})
				}
				paste = paste[:0]
			}
		case *tcell.EventKey:
			if inPaste {
				switch tev.Key() {
				case tcell.KeyRune:
					paste = append(paste, tev.Rune())
				case tcell.KeyEnter, tcell.KeyCtrlJ:
					paste = append(paste, '\n')
				case tcell.KeyTab:
					paste = append(paste, '\t')
				}
				continue
			}
			if out, ok := keyEvent(tev); ok {
				s.Post(out)
			}
		case *tcell.EventMouse:
			for _, out := range mouse.events(tev) {
				s.Post(out)
			}
		}
	}
}

func exitError(err error) error {
	if err == nil || errors.Is(err, session.ErrSessionEnded) ||
		errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// renderer paints frames from the session's consumer goroutine.
type renderer struct {
	screen  tcell.Screen
	palette *Palette
	title   string
}

func (r *renderer) draw(f *frame.Frame) {
	sw, sh := r.screen.Size()
	r.screen.Fill(' ', tcell.StyleDefault.Background(r.palette.Background(f.ReverseVideo)))
	for row := 0; row < f.Rows && row < sh; row++ {
		for col := 0; col < f.Cols && col < sw; col++ {
			c := f.Cell(row, col)
			if c.Continuation {
				continue
			}
			ch := c.Rune
			if ch == 0 {
				ch = ' '
			}
			r.screen.SetContent(col, row, ch, nil, r.palette.Style(c, f.ReverseVideo, f.Selected(row, col)))
		}
	}

	if f.Cursor.Visible && f.Cursor.Row < sh && f.Cursor.Col < sw {
		r.screen.SetCursorStyle(tcell.CursorStyle(f.Cursor.Style))
		r.screen.ShowCursor(f.Cursor.Col, f.Cursor.Row)
	} else {
		r.screen.HideCursor()
	}
	if f.Title != r.title {
		r.title = f.Title
		r.screen.SetTitle(f.Title)
	}
	r.screen.Show()
}
