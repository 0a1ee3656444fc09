// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/session.go
// Summary: Session owns one terminal: VTerm, Parser, selection, codec and frame producer.
// Usage: Build with New and options, then call Run with the PTY; other goroutines talk to it with Post.
// Notes: Methods other than Post, SetFrameHandler and Close belong to the loop goroutine (or to the caller before Run).

package session

import (
	"bytes"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/framegrace/texelterm/clipboard"
	"github.com/framegrace/texelterm/frame"
	"github.com/framegrace/texelterm/parser"
	"github.com/framegrace/texelterm/protocol"
	"github.com/framegrace/texelterm/selection"
)

var (
	// ErrSessionEnded is returned by Run when the PTY reaches EOF or fails.
	ErrSessionEnded = errors.New("session: terminal session ended")
	// ErrNoPTY is returned by Run when no PTY was configured.
	ErrNoPTY = errors.New("session: no pty")
)

// maxHeldInput caps PTY output buffered while a selection drag is in progress.
const maxHeldInput = 1 << 20

// Session is one terminal instance.
type Session struct {
	vterm    *parser.VTerm
	parser   *parser.Parser
	sel      *selection.Engine
	clicks   *selection.ClickDetector
	codec    *protocol.Codec
	producer *frame.Producer

	cols, rows int
	geom       selection.Geometry
	scrollback int
	maxString  int
	altScroll  bool

	pty       io.ReadWriter
	out       io.Writer
	resizePTY func(cols, rows int) error

	clip             clipboard.Transport
	clipboardTimeout time.Duration
	multiClick       time.Duration
	syncTimeout      time.Duration
	now              func() time.Time

	oscHandler   func(command int, payload string)
	titleHandler func(string)
	bellHandler  func()

	handlerMu    sync.Mutex
	frameHandler frame.Handler
	consumer     *frame.Consumer

	scheduler *publishScheduler
	events    chan Event
	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once

	held     [][]byte
	heldSize int
}

// Option configures a Session.
type Option func(*Session)

// WithPTY sets the child's PTY. Output is read by Run; input and device
// replies are written to it.
func WithPTY(rw io.ReadWriter) Option {
	return func(s *Session) { s.pty = rw }
}

// WithPTYResizer sets the function that propagates grid size changes to the PTY.
func WithPTYResizer(fn func(cols, rows int) error) Option {
	return func(s *Session) { s.resizePTY = fn }
}

// WithSize sets the initial grid size in cells.
func WithSize(cols, rows int) Option {
	return func(s *Session) { s.cols, s.rows = cols, rows }
}

// WithCellSize sets the pixel size of one cell.
func WithCellSize(width, height int) Option {
	return func(s *Session) { s.geom.CellWidth, s.geom.CellHeight = width, height }
}

// WithBorder sets the pixel border around the grid.
func WithBorder(px int) Option {
	return func(s *Session) { s.geom.Border = px }
}

// WithScrollback sets the primary screen history size in lines.
func WithScrollback(lines int) Option {
	return func(s *Session) { s.scrollback = lines }
}

// WithMaxStringLength bounds OSC and DCS payloads.
func WithMaxStringLength(n int) Option {
	return func(s *Session) { s.maxString = n }
}

// WithAltScroll enables wheel-to-cursor-keys on the alternate screen by default.
func WithAltScroll(on bool) Option {
	return func(s *Session) { s.altScroll = on }
}

// WithClipboard sets the clipboard transport. The default is an in-memory clipboard.
func WithClipboard(t clipboard.Transport) Option {
	return func(s *Session) { s.clip = t }
}

// WithClipboardTimeout bounds clipboard requests.
func WithClipboardTimeout(d time.Duration) Option {
	return func(s *Session) { s.clipboardTimeout = d }
}

// WithMultiClickTimeout sets the double/triple click window.
func WithMultiClickTimeout(d time.Duration) Option {
	return func(s *Session) { s.multiClick = d }
}

// WithSyncTimeout bounds how long synchronized output defers a frame.
func WithSyncTimeout(d time.Duration) Option {
	return func(s *Session) { s.syncTimeout = d }
}

// WithFrameHandler sets the renderer callback. It runs on the consumer goroutine.
func WithFrameHandler(h frame.Handler) Option {
	return func(s *Session) { s.frameHandler = h }
}

// WithOSCHandler sets the callback receiving every OSC string.
func WithOSCHandler(h func(command int, payload string)) Option {
	return func(s *Session) { s.oscHandler = h }
}

// WithTitleHandler sets the window title callback.
func WithTitleHandler(h func(string)) Option {
	return func(s *Session) { s.titleHandler = h }
}

// WithBellHandler sets the bell callback.
func WithBellHandler(h func()) Option {
	return func(s *Session) { s.bellHandler = h }
}

// New creates a session. Without WithSize the grid is 80x24.
func New(opts ...Option) *Session {
	s := &Session{
		cols:             80,
		rows:             24,
		geom:             selection.Geometry{CellWidth: 1, CellHeight: 1},
		scrollback:       parser.DefaultScrollback,
		clipboardTimeout: clipboard.DefaultTimeout,
		multiClick:       selection.DefaultMultiClickTimeout,
		now:              time.Now,
		events:           make(chan Event, 256),
		done:             make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clip == nil {
		s.clip = clipboard.NewMemory()
	}
	s.out = io.Discard
	if s.pty != nil {
		s.out = s.pty
	}

	s.vterm = parser.NewVTerm(s.cols, s.rows,
		parser.WithScrollback(s.scrollback),
		parser.WithAltScroll(s.altScroll),
		parser.WithPtyWriter(s.send),
		parser.WithTitleChangeHandler(s.onTitle),
		parser.WithBellHandler(s.onBell),
		parser.WithScreenSwitchHandler(s.onScreenSwitch),
		parser.WithOSCHandler(s.onOSC),
	)
	s.cols, s.rows = s.vterm.Size()
	s.parser = parser.NewParser(s.vterm)
	if s.maxString > 0 {
		s.parser.SetMaxStringLength(s.maxString)
	}
	s.sel = selection.NewEngine(s.vterm, s.geom)
	s.clicks = selection.NewClickDetector(s.multiClick)
	s.codec = protocol.NewCodec(s.out)
	s.producer = frame.NewProducer(frame.NewMailbox())
	s.scheduler = newPublishScheduler(s.syncTimeout, func() {
		s.tryPost(syncFlushEvent{})
	})
	if s.frameHandler != nil {
		s.startConsumer()
	}
	return s
}

// VTerm exposes the grid and cursor model. Loop goroutine only.
func (s *Session) VTerm() *parser.VTerm { return s.vterm }

// Selection exposes the selection engine. Loop goroutine only.
func (s *Session) Selection() *selection.Engine { return s.sel }

// Frames returns the mailbox frames are published to.
func (s *Session) Frames() *frame.Mailbox { return s.producer.Mailbox() }

// Size returns the grid size in cells.
func (s *Session) Size() (cols, rows int) { return s.vterm.Size() }

// SetFrameHandler installs the renderer callback and starts the consumer
// goroutine on first use.
func (s *Session) SetFrameHandler(h frame.Handler) {
	s.handlerMu.Lock()
	s.frameHandler = h
	s.handlerMu.Unlock()
	s.startConsumer()
}

// SetOscHandler installs the OSC callback. Loop goroutine only.
func (s *Session) SetOscHandler(h func(command int, payload string)) {
	s.oscHandler = h
}

func (s *Session) startConsumer() {
	s.handlerMu.Lock()
	defer s.handlerMu.Unlock()
	if s.consumer != nil {
		return
	}
	s.consumer = frame.StartConsumer(s.producer.Mailbox(), s.drawFrame)
}

func (s *Session) drawFrame(f *frame.Frame) {
	s.handlerMu.Lock()
	h := s.frameHandler
	s.handlerMu.Unlock()
	if h != nil {
		h(f)
	}
}

// Feed parses a chunk of PTY output and publishes a frame if anything
// visible changed. While a selection drag is in progress the chunk is held
// back until the drag ends.
func (s *Session) Feed(data []byte) {
	if s.ingest(data) {
		s.publish(false)
	}
}

// ingest parses or holds data. Reports whether it was parsed.
func (s *Session) ingest(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if s.holding() && s.heldSize+len(data) <= maxHeldInput {
		s.held = append(s.held, bytes.Clone(data))
		s.heldSize += len(data)
		return false
	}
	s.flushHeld()
	s.parser.Feed(data)
	return true
}

func (s *Session) holding() bool {
	return s.sel.State() == selection.StateSelecting
}

func (s *Session) flushHeld() {
	if len(s.held) == 0 {
		return
	}
	held := s.held
	s.held, s.heldSize = nil, 0
	debugLog.Printf("Session: releasing %d held chunks", len(held))
	for _, chunk := range held {
		s.parser.Feed(chunk)
	}
}

// releaseHeld feeds held output once the drag has ended.
func (s *Session) releaseHeld() {
	if s.holding() || len(s.held) == 0 {
		return
	}
	s.flushHeld()
	s.publish(false)
}

// publish hands a frame to the mailbox. Under synchronized output the frame
// is deferred to the fallback timer unless forced.
func (s *Session) publish(force bool) {
	if !force && s.vterm.Modes().SyncOutput {
		if s.producer.Dirty(s.vterm) {
			s.scheduler.RequestPublish()
		}
		return
	}
	s.scheduler.NotifyRefresh()
	if f := s.producer.Publish(s.vterm, s.sel, force); f != nil {
		debugLog.Printf("Session: published generation %d", f.Generation)
	}
}

// Resize recomputes the grid from a drawable size in pixels. The selection
// is cleared when the grid changes.
func (s *Session) Resize(pixelWidth, pixelHeight int) {
	g := s.geom
	cols := max((pixelWidth-2*g.Border)/max(g.CellWidth, 1), 1)
	rows := max((pixelHeight-2*g.Border)/max(g.CellHeight, 1), 1)
	s.ResizeCells(cols, rows)
}

// ResizeCells resizes the grid to cols x rows cells.
func (s *Session) ResizeCells(cols, rows int) {
	if !s.vterm.Resize(cols, rows) {
		return
	}
	s.cols, s.rows = s.vterm.Size()
	s.sel.Clear()
	if s.resizePTY != nil {
		if err := s.resizePTY(s.cols, s.rows); err != nil {
			log.Printf("Session: pty resize to %dx%d failed: %v", s.cols, s.rows, err)
		}
	}
	s.releaseHeld()
	s.publish(false)
}

// send writes b to the PTY, retrying short writes.
func (s *Session) send(b []byte) {
	for len(b) > 0 {
		n, err := s.codec.WriteText(b)
		b = b[n:]
		if n == 0 {
			if err != nil {
				log.Printf("Session: pty write failed, dropped %d bytes: %v", len(b), err)
			}
			return
		}
	}
}

func (s *Session) onTitle(title string) {
	if s.titleHandler != nil {
		s.titleHandler(title)
	}
}

func (s *Session) onBell() {
	if s.bellHandler != nil {
		s.bellHandler()
	}
}

func (s *Session) onScreenSwitch(parser.ScreenID) {
	if s.sel.Clear() {
		debugLog.Printf("Session: selection cleared by screen switch")
	}
}

// Post queues an event for the loop. It may be called from any goroutine
// and returns false once the session has stopped.
func (s *Session) Post(ev Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) tryPost(ev Event) {
	select {
	case s.events <- ev:
	case <-s.done:
	default:
		debugLog.Printf("Session: event queue full, dropped %T", ev)
	}
}

func (s *Session) stop() {
	s.doneOnce.Do(func() { close(s.done) })
}

// Close stops the session, waits for the frame consumer to draw the last
// pending frame and exit, and closes the PTY if it is closable.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.stop()
		s.scheduler.NotifyRefresh()
		s.handlerMu.Lock()
		c := s.consumer
		s.handlerMu.Unlock()
		if c != nil {
			c.Stop()
		} else {
			s.producer.Mailbox().Close()
		}
		if closer, ok := s.pty.(io.Closer); ok {
			err = closer.Close()
		}
	})
	return err
}
