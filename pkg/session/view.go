package session

import (
	"errors"

	"github.com/bastiangx/strokeserve/pkg/stroke"
	"github.com/bastiangx/strokeserve/pkg/suggest"
)

// View is a read-only snapshot of what a front end renders.
type View struct {
	State      State
	Input      string
	Code       string
	Hint       string
	InputErr   error
	Candidates []suggest.Candidate
	Cursor     int
	Page       int
	TotalPages int
	Total      int
	Predicting bool
	MenuOpen   bool
	Chinese    bool
}

// View returns the current page and status of the session.
func (s *Session) View() View {
	v := View{
		State:      s.state,
		Input:      s.raw,
		Code:       s.code,
		InputErr:   s.inputErr,
		Candidates: s.PageCandidates(),
		Cursor:     s.cursor,
		Page:       s.page,
		TotalPages: s.TotalPages(),
		Total:      len(s.candidates),
		Predicting: s.predicting,
		MenuOpen:   s.menuOpen,
		Chinese:    s.chinese,
	}
	switch {
	case errors.Is(s.inputErr, stroke.ErrOverlong):
		if filtered, err := stroke.FilterValid(s.raw); err == nil {
			v.Hint = stroke.Hint(filtered)
		}
	case s.code != "" && len(s.candidates) == 0:
		v.Hint = stroke.Hint(s.code)
	}
	return v
}
