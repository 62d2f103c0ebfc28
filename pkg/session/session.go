// Package session drives one input session: strokes accumulate into a code,
// candidates are resolved and ranked after every keystroke, a selection
// feeds the learned model and may be followed by next-character predictions.
//
// A Session is owned by a single caller and is not safe for concurrent use.
package session

import (
	"errors"

	"github.com/bastiangx/strokeserve/pkg/dictionary"
	"github.com/bastiangx/strokeserve/pkg/stroke"
	"github.com/bastiangx/strokeserve/pkg/suggest"
)

// ErrNoCandidate is returned by Select when the index does not name a
// candidate on the current page.
var ErrNoCandidate = errors.New("no candidate at index")

// State is the position of a session in its lifecycle.
type State int

const (
	// Idle has no code and no candidates.
	Idle State = iota
	// Accumulating has input but no candidate to show.
	Accumulating
	// Resolved shows a non-empty candidate list.
	Resolved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Accumulating:
		return "accumulating"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// Options holds the session constants.
type Options struct {
	PageSize         int
	MaxCodeLength    int
	EnablePrediction bool
	Chinese          bool
}

// DefaultOptions returns the stock session constants.
func DefaultOptions() Options {
	return Options{
		PageSize:         9,
		MaxCodeLength:    stroke.MaxCodeLength,
		EnablePrediction: true,
		Chinese:          true,
	}
}

// Selection reports the outcome of Select.
type Selection struct {
	Text string
	// Learned is true when the learned model changed.
	Learned bool
	// Predicted is true when a prediction set replaced the candidates.
	Predicted bool
}

// Session is the state of one input method session.
type Session struct {
	engine *suggest.Engine
	punct  dictionary.Punctuation
	menu   []string
	opts   Options

	raw        string
	code       string
	candidates []suggest.Candidate
	page       int
	cursor     int
	state      State
	inputErr   error
	predicting bool
	menuOpen   bool
	chinese    bool
}

// Option configures a Session.
type Option func(*Session)

// WithOptions sets the session constants.
func WithOptions(o Options) Option {
	return func(s *Session) { s.opts = o }
}

// WithPunctuation replaces the built-in punctuation table.
func WithPunctuation(p dictionary.Punctuation) Option {
	return func(s *Session) { s.punct = p }
}

// WithMenu replaces the built-in punctuation menu.
func WithMenu(menu []string) Option {
	return func(s *Session) { s.menu = menu }
}

// New creates an idle session over engine.
func New(engine *suggest.Engine, opts ...Option) *Session {
	s := &Session{
		engine: engine,
		punct:  dictionary.DefaultPunctuation(),
		menu:   dictionary.DefaultMenu(),
		opts:   DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.opts.PageSize <= 0 {
		s.opts.PageSize = DefaultOptions().PageSize
	}
	s.chinese = s.opts.Chinese
	return s
}

// Engine returns the engine the session resolves with.
func (s *Session) Engine() *suggest.Engine {
	return s.engine
}

// Resolve validates raw, filters it and returns the ranked candidates. It
// does not change the session. ErrOverlong and ErrNoUsableCodes come from
// the stroke package.
func (s *Session) Resolve(raw string) ([]suggest.Candidate, error) {
	if err := stroke.Check(raw, s.opts.MaxCodeLength); err != nil {
		return nil, err
	}
	code, err := stroke.FilterValid(raw)
	if err != nil {
		return nil, err
	}
	return s.engine.Suggest(code), nil
}

// Type appends one keystroke to the input and re-resolves. A prediction set
// or the punctuation menu is dismissed first.
func (s *Session) Type(r rune) {
	if s.predicting || s.menuOpen {
		s.reset()
	}
	s.raw += string(r)
	s.update()
}

// SetInput replaces the input and re-resolves.
func (s *Session) SetInput(raw string) {
	if s.predicting || s.menuOpen {
		s.reset()
	}
	s.raw = raw
	s.update()
}

// Backspace removes the last input character and re-resolves. With no
// input left it dismisses whatever is shown. It reports whether anything
// changed.
func (s *Session) Backspace() bool {
	if s.raw == "" {
		return s.Cancel()
	}
	runes := []rune(s.raw)
	s.raw = string(runes[:len(runes)-1])
	s.update()
	return true
}

// update re-derives code, candidates and the input error from raw.
func (s *Session) update() {
	s.page, s.cursor = 0, 0
	s.inputErr = nil
	s.predicting, s.menuOpen = false, false
	s.candidates = nil
	s.code = ""

	if s.raw == "" {
		s.state = Idle
		return
	}
	cands, err := s.Resolve(s.raw)
	if err != nil {
		s.inputErr = err
		s.state = Accumulating
		return
	}
	s.code, _ = stroke.FilterValid(s.raw)
	s.candidates = cands
	if len(cands) == 0 {
		s.state = Accumulating
		return
	}
	s.state = Resolved
}

// Select picks candidate index of the current page. Non-punctuation words
// are learned. With prediction enabled the candidates are replaced by the
// predictions for the word; an empty prediction set, punctuation or a menu
// selection end the session.
func (s *Session) Select(index int) (Selection, error) {
	page := s.PageCandidates()
	if s.state != Resolved || index < 0 || index >= len(page) {
		return Selection{}, ErrNoCandidate
	}
	text := page[index].Text
	sel := Selection{Text: text}

	if s.menuOpen {
		s.reset()
		return sel, nil
	}

	punct := dictionary.IsPunctuation(text)
	if !punct {
		sel.Learned = s.engine.Model().Learn(text)
	}

	s.reset()
	if !s.opts.EnablePrediction || punct {
		return sel, nil
	}
	preds := s.engine.Predict(text)
	if len(preds) == 0 {
		return sel, nil
	}
	s.candidates = preds
	s.predicting = true
	s.state = Resolved
	sel.Predicted = true
	return sel, nil
}

// SelectCursor selects the highlighted candidate.
func (s *Session) SelectCursor() (Selection, error) {
	return s.Select(s.cursor)
}

// MoveCursor moves the highlight within the current page, clamping at the
// edges. It reports whether the highlight moved.
func (s *Session) MoveCursor(delta int) bool {
	n := len(s.PageCandidates())
	if n == 0 {
		return false
	}
	next := min(max(s.cursor+delta, 0), n-1)
	if next == s.cursor {
		return false
	}
	s.cursor = next
	return true
}

// ChangePage moves one page forward (direction > 0) or back (direction < 0).
// It reports whether the page changed.
func (s *Session) ChangePage(direction int) bool {
	if len(s.candidates) == 0 || direction == 0 {
		return false
	}
	step := 1
	if direction < 0 {
		step = -1
	}
	next := s.page + step
	if next < 0 || next >= s.TotalPages() {
		return false
	}
	s.page = next
	s.cursor = 0
	return true
}

// Cancel clears input and candidates without learning. It reports whether
// the session was not already idle.
func (s *Session) Cancel() bool {
	if s.state == Idle && s.raw == "" {
		return false
	}
	s.reset()
	return true
}

func (s *Session) reset() {
	s.raw, s.code = "", ""
	s.candidates = nil
	s.page, s.cursor = 0, 0
	s.inputErr = nil
	s.predicting, s.menuOpen = false, false
	s.state = Idle
}

// Punctuation returns the text to emit for sym in the current mode. A
// prediction set or the menu is dismissed; pending stroke input is kept.
func (s *Session) Punctuation(sym string) string {
	if s.predicting || s.menuOpen {
		s.reset()
	}
	return s.punct.Variant(sym, s.chinese)
}

// OpenPunctMenu replaces the session contents with the punctuation menu.
// Selecting from it emits the symbol without learning.
func (s *Session) OpenPunctMenu() bool {
	if len(s.menu) == 0 {
		return false
	}
	s.reset()
	s.candidates = make([]suggest.Candidate, len(s.menu))
	for i, sym := range s.menu {
		s.candidates[i] = suggest.Candidate{
			Text:   sym,
			Code:   string(suggest.SourcePunct),
			Source: suggest.SourcePunct,
		}
	}
	s.menuOpen = true
	s.state = Resolved
	return true
}

// ToggleMode switches between Chinese and English mode, clearing the
// session. It returns true when the new mode is Chinese.
func (s *Session) ToggleMode() bool {
	s.chinese = !s.chinese
	s.reset()
	return s.chinese
}

// Chinese reports whether the session is in Chinese mode.
func (s *Session) Chinese() bool {
	return s.chinese
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Input returns the raw input.
func (s *Session) Input() string {
	return s.raw
}

// Code returns the filtered code of the input.
func (s *Session) Code() string {
	return s.code
}

// InputErr returns the recoverable input error, if any.
func (s *Session) InputErr() error {
	return s.inputErr
}

// Candidates returns the full ranked candidate list.
func (s *Session) Candidates() []suggest.Candidate {
	return s.candidates
}

// PageCandidates returns the candidates of the current page.
func (s *Session) PageCandidates() []suggest.Candidate {
	return suggest.Paginate(s.candidates, s.page, s.opts.PageSize)
}

// Page returns the current page, 0-based.
func (s *Session) Page() int {
	return s.page
}

// TotalPages returns the number of candidate pages.
func (s *Session) TotalPages() int {
	return suggest.TotalPages(len(s.candidates), s.opts.PageSize)
}

// Predicting reports whether the candidates are predictions.
func (s *Session) Predicting() bool {
	return s.predicting
}

// MenuOpen reports whether the candidates are the punctuation menu.
func (s *Session) MenuOpen() bool {
	return s.menuOpen
}
