package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/bastiangx/strokeserve/pkg/dictionary"
	"github.com/bastiangx/strokeserve/pkg/learn"
	"github.com/bastiangx/strokeserve/pkg/session"
	"github.com/bastiangx/strokeserve/pkg/suggest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const tuiFixture = "一\tu\n十\tui\n土\tuiu\n干\tuiu\n中\tijiu\n"

type countingStore struct{ saves int }

func (c *countingStore) Load(context.Context, *learn.Model) (int, error) { return 0, nil }
func (c *countingStore) Save(_ context.Context, m *learn.Model) (int, error) {
	c.saves++
	return m.Len(), nil
}
func (c *countingStore) Close() error  { return nil }
func (c *countingStore) Path() string { return "" }

func newTestModel(t *testing.T, st *countingStore) *Model {
	t.Helper()
	dict, _, err := dictionary.Load(strings.NewReader(tuiFixture))
	if err != nil {
		t.Fatal(err)
	}
	opts := session.DefaultOptions()
	opts.EnablePrediction = false
	sess := session.New(suggest.NewEngine(dict, nil, nil, suggest.DefaultOptions()), session.WithOptions(opts))
	return NewModel(sess, st, true)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestTypeAndChoose(t *testing.T) {
	testCases := []struct {
		keys        []tea.Msg
		text        string
		description string
	}{
		{[]tea.Msg{runes("ui"), runes("2")}, "土", "digit chooses on page"},
		{[]tea.Msg{runes("ui"), tea.KeyMsg{Type: tea.KeySpace}}, "十", "space commits first"},
		{[]tea.Msg{runes("ui"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter}}, "土", "enter commits at cursor"},
		{[]tea.Msg{runes("u*u"), runes("1")}, "土", "wildcard once input is pending"},
		{[]tea.Msg{runes(",")}, "，", "punctuation in chinese mode"},
		{[]tea.Msg{tea.KeyMsg{Type: tea.KeyTab}, runes("hi,")}, "hi,", "english mode passes through"},
		{[]tea.Msg{runes("ui"), tea.KeyMsg{Type: tea.KeyEsc}, runes("u"), runes("1")}, "一", "escape cancels input"},
		{[]tea.Msg{runes("u"), runes("1"), tea.KeyMsg{Type: tea.KeyBackspace}}, "", "backspace deletes committed text"},
		{[]tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlP}, runes("1")}, dictionary.DefaultMenu()[0], "punctuation menu"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			m := newTestModel(t, nil)
			press(m, tc.keys...)
			if m.Text() != tc.text {
				t.Errorf("text = %q, want %q", m.Text(), tc.text)
			}
		})
	}
}

func TestQuitSaves(t *testing.T) {
	st := &countingStore{}
	m := newTestModel(t, st)
	press(m, runes("ui"), runes("1"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected quit message")
	}
	if st.saves != 1 {
		t.Errorf("saves = %d, want 1", st.saves)
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, tea.WindowSizeMsg{Width: 80, Height: 24}, runes("ui"))
	out := m.View()
	for _, want := range []string{"ui", "1.十", "2.土", "中"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}
