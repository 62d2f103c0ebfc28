package dictionary

import (
	"strings"
	"testing"
)

func TestVariant(t *testing.T) {
	p := DefaultPunctuation()

	testCases := []struct {
		sym         string
		chinese     bool
		expected    string
		description string
	}{
		{",", true, "，", "comma chinese"},
		{",", false, ",", "comma english"},
		{"[", true, "「", "bracket chinese"},
		{"[", false, "[", "bracket english takes last"},
		{"\"", false, "\"", "quote english takes last"},
		{"'", true, "、", "apostrophe chinese is enumeration comma"},
		{"'", false, "'", "apostrophe english"},
		{" ", true, " ", "space stays half width"},
		{"?", false, "?", "question english"},
		{"§", false, "§", "unknown english passes through"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := p.Variant(tc.sym, tc.chinese); got != tc.expected {
				t.Errorf("Variant(%q, %v) = %q, want %q", tc.sym, tc.chinese, got, tc.expected)
			}
		})
	}

	delete(p, "?")
	if got := p.Variant("?", true); got != "？" {
		t.Errorf("missing symbol should be widened, got %q", got)
	}
}

func TestIsPunctuation(t *testing.T) {
	testCases := []struct {
		word     string
		expected bool
	}{
		{"，", true},
		{"。」", true},
		{"...", true},
		{" ", true},
		{"", false},
		{"一", false},
		{"，一", false},
	}
	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			if got := IsPunctuation(tc.word); got != tc.expected {
				t.Errorf("IsPunctuation(%q) = %v, want %v", tc.word, got, tc.expected)
			}
		})
	}
}

func TestLoadMenu(t *testing.T) {
	menu, ok := LoadMenu(strings.NewReader("# menu\n★\n☆\n●\n○\n※\n"))
	if !ok || len(menu) != 5 || menu[0] != "★" {
		t.Errorf("unexpected menu %v (%v)", menu, ok)
	}

	menu, ok = LoadMenu(strings.NewReader("★\n☆\n"))
	if ok {
		t.Errorf("short menu should be rejected")
	}
	if len(menu) != len(DefaultMenu()) {
		t.Errorf("short menu should fall back to the built-in menu")
	}
}
