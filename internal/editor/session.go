// Package editor implements a rich text editing session over a markup
// document: formatting operations, undo and redo, debounced conversion back to
// storage form and the image upload flow.
package editor

import (
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/emrgen/thirdplace/internal/history"
	"github.com/emrgen/thirdplace/internal/markup"
)

const (
	// DefaultDebounce is the quiet period after an edit before it settles.
	DefaultDebounce = 300 * time.Millisecond
	// DefaultLinkText is used when a link is inserted without text or selection.
	DefaultLinkText = "Link text"
)

// State is the conversion state of a session.
type State int

const (
	StateIdle State = iota
	StateDirty
	StateConverting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDirty:
		return "dirty"
	case StateConverting:
		return "converting"
	default:
		return "unknown"
	}
}

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	// OnChange receives the storage form every time the session settles.
	OnChange     func(markdown string)
	Debounce     time.Duration
	MaxWords     int
	HistoryDepth int

	Uploader     Uploader
	Picker       MediaPicker
	Captions     CaptionPrompt
	UploadFolder string
	OnProgress   func(percent int)
}

// WordCountStatus is a soft limit report; exceeding Max never blocks editing.
type WordCountStatus struct {
	Count    int
	Max      int
	Exceeded bool
}

// Session owns the document being edited. All mutation goes through its
// methods; it is safe for use by one editor surface plus its debounce timer.
type Session struct {
	mu      sync.Mutex
	opts    Options
	doc     *markup.Document
	history *history.History
	sel     Selection
	typing  markup.Mark

	state  State
	gen    uint64
	timer  *time.Timer
	burst  bool
	closed bool
}

var errNoChange = errors.New("no change")

// New starts a session on the given storage form.
func New(markdown string, opts Options) *Session {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.UploadFolder == "" {
		opts.UploadFolder = "blog-images"
	}
	s := &Session{
		opts:    opts,
		doc:     markup.Parse(markdown),
		history: history.New(opts.HistoryDepth),
	}
	s.sel = Cursor(s.endPoint())
	return s
}

// apply runs a structural operation: snapshot, mutate, settle immediately.
func (s *Session) apply(record bool, op func() error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}

	before := markup.RenderMarkdown(s.doc)
	if err := op(); err != nil {
		s.mu.Unlock()
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	if record {
		s.history.Record(before)
	}

	md := s.settleLocked()
	s.mu.Unlock()
	s.emit(md)
	return nil
}

// typed runs a keystroke: one snapshot per typing burst, debounced settle.
func (s *Session) typed(op func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	before := markup.RenderMarkdown(s.doc)
	if err := op(); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	if !s.burst {
		s.history.Record(before)
		s.burst = true
	}
	s.touch()
	return nil
}

// touch marks the session dirty and restarts the debounce timer.
func (s *Session) touch() {
	s.gen++
	s.state = StateDirty
	if s.timer != nil {
		s.timer.Stop()
	}
	gen := s.gen
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		s.settle(gen)
	})
}

func (s *Session) settle(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.state != StateDirty {
		s.mu.Unlock()
		return
	}
	md := s.settleLocked()
	s.mu.Unlock()
	s.emit(md)
}

func (s *Session) settleLocked() string {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.state = StateConverting
	md := markup.RenderMarkdown(s.doc)
	s.state = StateIdle
	s.burst = false
	return md
}

func (s *Session) emit(md string) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(md)
	}
}

// SettleNow converts immediately, as on blur or an explicit save, and
// returns the storage form.
func (s *Session) SettleNow() string {
	s.mu.Lock()
	if s.closed {
		md := markup.RenderMarkdown(s.doc)
		s.mu.Unlock()
		return md
	}
	md := s.settleLocked()
	s.mu.Unlock()
	s.emit(md)
	return md
}

// Close stops pending conversions. Results arriving later are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.state = StateIdle
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Markdown returns the current storage form without settling.
func (s *Session) Markdown() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return markup.RenderMarkdown(s.doc)
}

// Display returns the current display form.
func (s *Session) Display() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return markup.RenderDisplay(s.doc)
}

// Document returns a copy of the current document.
func (s *Session) Document() *markup.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *Session) WordCount() WordCountStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(strings.Fields(s.doc.PlainText()))
	return WordCountStatus{
		Count:    n,
		Max:      s.opts.MaxWords,
		Exceeded: s.opts.MaxWords > 0 && n > s.opts.MaxWords,
	}
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Select sets the selection; the sticky typing style is reset.
func (s *Session) Select(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel = sel.normalized()
	s.sel = Selection{Start: s.clampPoint(sel.Start), End: s.clampPoint(sel.End)}
	s.typing = 0
}

// SetCursor collapses the selection at p.
func (s *Session) SetCursor(p Point) {
	s.Select(Cursor(p))
}

func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// TypingMarks returns the marks toggled for the next typed text.
func (s *Session) TypingMarks() markup.Mark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

// SetDisplay replaces the document with an edited display form.
func (s *Session) SetDisplay(display string) error {
	return s.apply(true, func() error {
		s.doc = markup.ParseDisplay(display)
		s.sel = Selection{Start: s.clampPoint(s.sel.Start), End: s.clampPoint(s.sel.End)}
		return nil
	})
}

func (s *Session) clampPoint(p Point) Point {
	if len(s.doc.Blocks) == 0 {
		return Point{}
	}
	p.Block = clamp(p.Block, 0, len(s.doc.Blocks)-1)
	b := s.doc.Blocks[p.Block]
	if b.Kind == markup.KindList {
		p.Item = clamp(p.Item, 0, len(b.Items)-1)
	} else {
		p.Item = 0
	}
	p.Offset = clamp(p.Offset, 0, textLen(b, p.Item))
	return p
}

func (s *Session) endPoint() Point {
	n := len(s.doc.Blocks)
	if n == 0 {
		return Point{}
	}
	b := s.doc.Blocks[n-1]
	p := Point{Block: n - 1}
	if b.Kind == markup.KindList && len(b.Items) > 0 {
		p.Item = len(b.Items) - 1
	}
	p.Offset = textLen(b, p.Item)
	return p
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
