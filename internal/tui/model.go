// Package tui provides the Bubble Tea input method front end.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/bastiangx/strokeserve/pkg/session"
	"github.com/bastiangx/strokeserve/pkg/store"
	"github.com/bastiangx/strokeserve/pkg/stroke"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	textStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	inputStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	candidateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	codeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea input method UI.
type Model struct {
	session   *session.Session
	store     store.Store
	keys      keyMap
	help      help.Model
	showCodes bool

	committed []rune
	status    string
	width     int
	height    int
}

// NewModel constructs the UI over sess. st may be nil.
func NewModel(sess *session.Session, st store.Store, showCodes bool) *Model {
	return &Model{
		session:   sess,
		store:     st,
		keys:      defaultKeyMap(),
		help:      help.New(),
		showCodes: showCodes,
	}
}

// Text returns everything committed so far.
func (m *Model) Text() string {
	return string(m.committed)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	showing := len(m.session.Candidates()) > 0
	pending := m.session.Input() != ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.save()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Mode):
		if m.session.ToggleMode() {
			m.status = "中文"
		} else {
			m.status = "English"
		}
	case key.Matches(msg, m.keys.Menu):
		m.session.OpenPunctMenu()
	case key.Matches(msg, m.keys.Cancel):
		m.session.Cancel()
	case key.Matches(msg, m.keys.Back):
		if !m.session.Backspace() && len(m.committed) > 0 {
			m.committed = m.committed[:len(m.committed)-1]
		}
	case showing && key.Matches(msg, m.keys.Choose):
		m.choose(int(msg.Runes[0]-'1'), false)
	case showing && key.Matches(msg, m.keys.Commit):
		m.choose(0, true)
	case showing && key.Matches(msg, m.keys.Up):
		m.session.MoveCursor(-1)
	case showing && key.Matches(msg, m.keys.Down):
		m.session.MoveCursor(1)
	case showing && key.Matches(msg, m.keys.PrevPage):
		m.session.ChangePage(-1)
	case showing && key.Matches(msg, m.keys.NextPage):
		m.session.ChangePage(1)
	case msg.Type == tea.KeySpace:
		m.committed = append(m.committed, ' ')
	case msg.Type == tea.KeyEnter:
		m.committed = append(m.committed, '\n')
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			m.handleRune(r, pending)
			pending = m.session.Input() != ""
		}
	}
	return m, nil
}

// handleRune routes one printable rune. In Chinese mode strokes go to the
// session and the wildcard does too once input is pending.
func (m *Model) handleRune(r rune, pending bool) {
	switch {
	case m.session.Chinese() && stroke.IsStroke(r) && (r != stroke.Wildcard || pending):
		m.session.Type(r)
	case !m.session.Chinese() && !isSymbol(r):
		m.committed = append(m.committed, r)
	default:
		m.committed = append(m.committed, []rune(m.session.Punctuation(string(r)))...)
	}
}

func isSymbol(r rune) bool {
	return r < 0x80 && !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
}

func (m *Model) choose(index int, atCursor bool) {
	var (
		sel session.Selection
		err error
	)
	if atCursor {
		sel, err = m.session.SelectCursor()
	} else {
		sel, err = m.session.Select(index)
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	m.committed = append(m.committed, []rune(sel.Text)...)
}

func (m *Model) save() {
	if m.store == nil || !m.session.Engine().Model().Dirty() {
		return
	}
	model := m.session.Engine().Model()
	n, err := m.store.Save(context.Background(), model)
	if err != nil {
		log.Errorf("Saving learned words: %v", err)
		m.status = "save failed"
		return
	}
	model.MarkClean()
	m.status = fmt.Sprintf("saved %d words", n)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(textStyle.Render(string(m.committed)))
	if input := m.session.Input(); input != "" {
		b.WriteString(inputStyle.Render(input))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderCandidates())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderCandidates() string {
	v := m.session.View()
	var parts []string
	if v.InputErr != nil {
		parts = append(parts, errorStyle.Render(v.InputErr.Error()))
	}
	if v.Hint != "" {
		parts = append(parts, footerStyle.Render(v.Hint))
	}
	items := make([]string, 0, len(v.Candidates))
	for i, c := range v.Candidates {
		style := candidateStyle
		if i == v.Cursor {
			style = cursorStyle
		}
		item := style.Render(fmt.Sprintf("%d.%s", i+1, c.Text))
		if m.showCodes && !v.MenuOpen {
			item += codeStyle.Render(c.Code)
		}
		items = append(items, item)
	}
	if len(items) > 0 {
		parts = append(parts, strings.Join(items, " "))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderFooter() string {
	v := m.session.View()
	mode := "中"
	if !v.Chinese {
		mode = "英"
	}
	segments := []string{mode}
	if v.TotalPages > 1 {
		segments = append(segments, fmt.Sprintf("page %d/%d", v.Page+1, v.TotalPages))
	}
	if v.Predicting {
		segments = append(segments, "predictions")
	}
	if m.status != "" {
		segments = append(segments, m.status)
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}
