package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/strokeserve/internal/utils"
	"github.com/bastiangx/strokeserve/pkg/session"
	"github.com/bastiangx/strokeserve/pkg/store"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for one input session.
type Server struct {
	session  *session.Session
	store    store.Store
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	debounce time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithIO replaces stdin and stdout.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(s *Server) {
		s.decoder = msgpack.NewDecoder(r)
		s.encoder = msgpack.NewEncoder(w)
	}
}

// WithSaveDebounce sets how long the server waits after the last learning
// selection before it saves.
func WithSaveDebounce(d time.Duration) Option {
	return func(s *Server) { s.debounce = d }
}

// NewServer creates a server over sess using stdin/stdout. st may be nil,
// in which case nothing is persisted.
func NewServer(sess *session.Session, st store.Store, opts ...Option) *Server {
	s := &Server{
		session:  sess,
		store:    st,
		decoder:  msgpack.NewDecoder(os.Stdin),
		encoder:  msgpack.NewEncoder(os.Stdout),
		debounce: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type decoded struct {
	req Request
	err error
}

// readRequests decodes requests until the reader fails or done closes.
func (s *Server) readRequests(out chan<- decoded, done <-chan struct{}) {
	for {
		var req Request
		err := s.decoder.Decode(&req)
		select {
		case out <- decoded{req: req, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

// Start processes requests until stdin closes or ctx is cancelled. A
// learning selection schedules a save once no further selection has
// learned for the debounce window. Learned words are saved before it
// returns.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("Starting server.")
	s.sendResponse(StatusResponse{Status: "ready"})

	requests := make(chan decoded)
	done := make(chan struct{})
	defer close(done)
	go s.readRequests(requests, done)

	flush := time.NewTimer(s.debounce)
	flush.Stop()
	defer flush.Stop()

	for {
		select {
		case <-ctx.Done():
			s.save(context.Background())
			return nil
		case <-flush.C:
			s.save(ctx)
		case d := <-requests:
			if d.err != nil {
				// ctx may already be cancelled on shutdown
				s.save(context.Background())
				if errors.Is(d.err, io.EOF) || ctx.Err() != nil {
					return nil
				}
				log.Errorf("Decoding request: %v", d.err)
				s.sendError("", "invalid msgpack request", 400)
				return d.err
			}
			if s.handleRequest(ctx, d.req) {
				flush.Reset(s.debounce)
			}
		}
	}
}

// handleRequest dispatches one request by action. It reports whether the
// request changed the learned model.
func (s *Server) handleRequest(ctx context.Context, req Request) bool {
	start := time.Now()
	var (
		output  string
		learned bool
	)

	switch req.Action {
	case "type":
		if req.Keys == "" {
			s.sendError(req.ID, "missing 'k' parameter", 400)
			return false
		}
		for _, r := range req.Keys {
			s.session.Type(r)
		}
	case "set":
		s.session.SetInput(req.Input)
	case "backspace":
		s.session.Backspace()
	case "select":
		var (
			sel session.Selection
			err error
		)
		if req.Index == nil {
			sel, err = s.session.SelectCursor()
		} else {
			sel, err = s.session.Select(*req.Index)
		}
		if err != nil {
			s.sendError(req.ID, err.Error(), 404)
			return false
		}
		output, learned = sel.Text, sel.Learned
	case "cursor":
		s.session.MoveCursor(req.Direction)
	case "page":
		s.session.ChangePage(req.Direction)
	case "cancel":
		s.session.Cancel()
	case "punct":
		if req.Keys == "" {
			s.sendError(req.ID, "missing 'k' parameter", 400)
			return false
		}
		output = s.session.Punctuation(req.Keys)
	case "menu":
		if !s.session.OpenPunctMenu() {
			s.sendError(req.ID, "punctuation menu is empty", 404)
			return false
		}
	case "mode":
		s.session.ToggleMode()
	case "view", "":
	case "stats":
		s.sendResponse(StatsResponse{ID: req.ID, Stats: s.session.Engine().Stats()})
		return false
	case "save":
		n, err := s.forceSave(ctx)
		if err != nil {
			s.sendError(req.ID, err.Error(), 500)
			return false
		}
		s.sendResponse(StatusResponse{ID: req.ID, Status: "saved", Count: n})
		return false
	case "health":
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
		return false
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
		return false
	}

	resp := s.buildResponse(req.ID)
	resp.Output = output
	resp.Learned = learned
	resp.TimeTaken = time.Since(start).Microseconds()
	s.sendResponse(resp)
	return learned
}

// buildResponse renders the session view.
func (s *Server) buildResponse(id string) Response {
	v := s.session.View()
	ranks := utils.CreateRankList(len(v.Candidates))
	suggestions := make([]Suggestion, len(v.Candidates))
	for i, c := range v.Candidates {
		suggestions[i] = Suggestion{Word: c.Text, Code: c.Code, Rank: ranks[i]}
	}
	resp := Response{
		ID:          id,
		State:       v.State.String(),
		Input:       v.Input,
		Code:        v.Code,
		Hint:        v.Hint,
		Suggestions: suggestions,
		Cursor:      v.Cursor,
		Page:        v.Page,
		TotalPages:  v.TotalPages,
		Count:       v.Total,
		Predicting:  v.Predicting,
		MenuOpen:    v.MenuOpen,
		Chinese:     v.Chinese,
	}
	if v.InputErr != nil {
		resp.InputError = v.InputErr.Error()
	}
	return resp
}

// save persists a dirty model, logging failures.
func (s *Server) save(ctx context.Context) {
	if s.store == nil || !s.session.Engine().Model().Dirty() {
		return
	}
	if _, err := s.forceSave(ctx); err != nil {
		log.Errorf("Saving learned words: %v", err)
	}
}

func (s *Server) forceSave(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, errors.New("no user store configured")
	}
	model := s.session.Engine().Model()
	n, err := s.store.Save(ctx, model)
	if err != nil {
		return 0, err
	}
	model.MarkClean()
	return n, nil
}

// sendResponse encodes the response onto the writer.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response.
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(Error{ID: id, Error: message, Code: code})
}
