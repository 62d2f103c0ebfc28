/*
Package server implements msgpack IPC for the stroke input engine.

The server reads msgpack requests from stdin and writes msgpack responses to
stdout. Each request names an action that drives a single input session; the
response carries the session view after the action.

# IPC

Every message holds an ID field and an action. Typing strokes:

	{"id": "r1", "a": "type", "k": "ui"}

The server responds with the ranked page:

	{"id": "r1", "st": "resolved", "in": "ui", "c": "ui", "s": [{"w": "十", "c": "ui", "r": 1}, ...], "p": 0, "tp": 1, "n": 4, "t": 85}

Selecting commits a word, learns it and may switch to predictions:

	{"id": "r2", "a": "select", "i": 0}
	{"id": "r2", "st": "resolved", "o": "十", "l": true, "pr": true, "s": [...], ...}

Actions: type, set, backspace, select, cursor, page, cancel, punct, menu,
mode, view, stats, save, health.

Errors carry the request ID and a numeric code:

	{"id": "r3", "e": "no candidate at index", "c": 404}

The learned model is saved once no selection has learned for the debounce
window, and once more when stdin closes or the server shuts down.
*/
package server

// Request drives one session action.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a"`
	// Keys are the strokes for "type" or the symbol for "punct".
	Keys string `msgpack:"k,omitempty"`
	// Input replaces the whole input for "set".
	Input string `msgpack:"c,omitempty"`
	// Index is the page position for "select"; the cursor when absent.
	Index *int `msgpack:"i,omitempty"`
	// Direction is the step for "page" and "cursor".
	Direction int `msgpack:"d,omitempty"`
}

// Suggestion is one candidate on the current page.
type Suggestion struct {
	Word string `msgpack:"w"`
	Code string `msgpack:"c"`
	Rank uint16 `msgpack:"r"`
}

// Response is the session view after an action.
type Response struct {
	ID          string       `msgpack:"id"`
	State       string       `msgpack:"st"`
	Input       string       `msgpack:"in,omitempty"`
	Code        string       `msgpack:"c,omitempty"`
	Hint        string       `msgpack:"h,omitempty"`
	InputError  string       `msgpack:"e,omitempty"`
	Suggestions []Suggestion `msgpack:"s"`
	Cursor      int          `msgpack:"cu"`
	Page        int          `msgpack:"p"`
	TotalPages  int          `msgpack:"tp"`
	Count       int          `msgpack:"n"`
	Output      string       `msgpack:"o,omitempty"`
	Learned     bool         `msgpack:"l,omitempty"`
	Predicting  bool         `msgpack:"pr,omitempty"`
	MenuOpen    bool         `msgpack:"m,omitempty"`
	Chinese     bool         `msgpack:"zh"`
	TimeTaken   int64        `msgpack:"t"`
}

// StatusResponse answers health and save requests.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Count  int    `msgpack:"n,omitempty"`
}

// StatsResponse reports engine counters.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// Error holds basic error information for a failed request.
type Error struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
