// Package cli is a line based front end for debugging the engine. Each line
// is either stroke input or a colon command.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/strokeserve/internal/utils"
	"github.com/bastiangx/strokeserve/pkg/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const defaultWidth = 80

var (
	wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	codeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// InputHandler reads lines from in and prints the session view to out.
type InputHandler struct {
	session   *session.Session
	in        io.Reader
	out       io.Writer
	showCodes bool
	color     bool
	width     int
	committed strings.Builder
}

// NewInputHandler creates a handler on stdin and stdout. Colors and the
// wrap width follow the terminal when stdout is one.
func NewInputHandler(sess *session.Session, showCodes bool) *InputHandler {
	h := &InputHandler{
		session:   sess,
		in:        os.Stdin,
		out:       os.Stdout,
		showCodes: showCodes,
		width:     defaultWidth,
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		h.color = true
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			h.width = w
		}
	}
	return h
}

// WithIO replaces stdin and stdout and disables colors.
func (h *InputHandler) WithIO(in io.Reader, out io.Writer) *InputHandler {
	h.in, h.out = in, out
	h.color = false
	return h
}

// Start runs the loop until EOF or :q.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "StrokeServe CLI [BETA]")
	fmt.Fprintln(h.out, "type strokes (u i o j k, * ? wildcards) and press Enter; :h for commands")

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !h.handleInput(line) {
			return nil
		}
	}
}

// handleInput runs one line and reports whether the loop should go on.
func (h *InputHandler) handleInput(line string) bool {
	if !strings.HasPrefix(line, ":") {
		start := time.Now()
		h.session.SetInput(line)
		log.Debugf("Took [ %v ] for input '%s'", time.Since(start), line)
		h.printView()
		return true
	}

	cmd := strings.TrimPrefix(line, ":")
	if n, err := strconv.Atoi(cmd); err == nil {
		sel, err := h.session.Select(n - 1)
		if err != nil {
			fmt.Fprintf(h.out, "cannot select %d: %v\n", n, err)
			return true
		}
		h.committed.WriteString(sel.Text)
		fmt.Fprintf(h.out, "committed %s (text: %s)\n", sel.Text, h.committed.String())
		h.printView()
		return true
	}

	switch cmd {
	case "q":
		return false
	case "n":
		h.session.ChangePage(1)
	case "p":
		h.session.ChangePage(-1)
	case "c":
		h.session.Cancel()
	case "m":
		h.session.OpenPunctMenu()
	case "z":
		if h.session.ToggleMode() {
			fmt.Fprintln(h.out, "mode: chinese")
		} else {
			fmt.Fprintln(h.out, "mode: english")
		}
	case "s":
		h.printStats()
		return true
	case "h":
		fmt.Fprintln(h.out, ":1-:9 select  :n :p page  :c cancel  :m punctuation  :z mode  :s stats  :q quit")
		return true
	default:
		if sym := strings.TrimPrefix(cmd, "."); sym != cmd && sym != "" {
			out := h.session.Punctuation(sym)
			h.committed.WriteString(out)
			fmt.Fprintf(h.out, "committed %s (text: %s)\n", out, h.committed.String())
			return true
		}
		fmt.Fprintf(h.out, "unknown command %q\n", line)
		return true
	}
	h.printView()
	return true
}

func (h *InputHandler) printView() {
	for _, l := range h.formatView(h.session.View()) {
		fmt.Fprintln(h.out, l)
	}
}

// formatView renders a view as lines wrapped to the handler width.
func (h *InputHandler) formatView(v session.View) []string {
	var lines []string
	if v.InputErr != nil {
		lines = append(lines, "error: "+v.InputErr.Error())
	}
	if v.Hint != "" {
		lines = append(lines, "hint: "+v.Hint)
	}
	if len(v.Candidates) == 0 {
		if v.InputErr == nil && v.Code != "" {
			lines = append(lines, fmt.Sprintf("No candidates for code '%s'", v.Code))
		}
		return lines
	}

	header := fmt.Sprintf("%s candidates, page %d/%d", utils.FormatWithCommas(v.Total), v.Page+1, v.TotalPages)
	if v.Predicting {
		header = "predictions, " + header
	}
	lines = append(lines, header)

	var (
		cur      strings.Builder
		curWidth int
	)
	for i, c := range v.Candidates {
		item := fmt.Sprintf("%d.%s", i+1, h.style(wordStyle, c.Text))
		w := runewidth.StringWidth(fmt.Sprintf("%d.", i+1)) + runewidth.StringWidth(c.Text)
		if h.showCodes {
			item += "(" + h.style(codeStyle, c.Code) + ")"
			w += runewidth.StringWidth(c.Code) + 2
		}
		if curWidth > 0 && curWidth+1+w > h.width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(item)
		curWidth += w
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func (h *InputHandler) style(s lipgloss.Style, text string) string {
	if !h.color {
		return text
	}
	return s.Render(text)
}

func (h *InputHandler) printStats() {
	stats := h.session.Engine().Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h.out, "%-16s %10s\n", k, utils.FormatWithCommas(stats[k]))
	}
}
