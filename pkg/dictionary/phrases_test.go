package dictionary

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildPhraseGraph(t *testing.T) {
	g := BuildPhraseGraph([]string{"電腦", "電話", "電腦系統", "腦系", "長", "一二三四五六七八九十壹"})

	if got := g.Next("電"); !reflect.DeepEqual(got, []string{"腦", "話"}) {
		t.Errorf("Next(電) = %v", got)
	}
	if got := g.Next("腦"); !reflect.DeepEqual(got, []string{"系"}) {
		t.Errorf("Next(腦) should be deduplicated, got %v", got)
	}
	if got := g.Next("系"); !reflect.DeepEqual(got, []string{"統"}) {
		t.Errorf("Next(系) = %v", got)
	}
	if got := g.Next("一"); got != nil {
		t.Errorf("phrases over 10 characters should be skipped, got %v", got)
	}
	if g.Edges() != 4 {
		t.Errorf("expected 4 edges, got %d", g.Edges())
	}
}

func TestLoadPhrases(t *testing.T) {
	input := "\uFEFF# comment\n; also comment\n  電腦  \r\n\n電話\n"
	g, err := LoadPhrases(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := g.Next("電"); !reflect.DeepEqual(got, []string{"腦", "話"}) {
		t.Errorf("Next(電) = %v", got)
	}
}

func TestNilGraph(t *testing.T) {
	var g *PhraseGraph
	if g.Next("x") != nil || g.Edges() != 0 {
		t.Errorf("nil graph should be empty")
	}
}
