package dictionary

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

const (
	minPhraseLen = 2
	maxPhraseLen = 10
)

// PhraseGraph links each character to the distinct characters that follow
// it in some phrase, in first-seen order.
type PhraseGraph struct {
	next  map[string][]string
	seen  map[string]map[string]struct{}
	edges int
}

// NewPhraseGraph returns an empty graph.
func NewPhraseGraph() *PhraseGraph {
	return &PhraseGraph{
		next: make(map[string][]string),
		seen: make(map[string]map[string]struct{}),
	}
}

// BuildPhraseGraph adds every adjacent character pair of every phrase whose
// length is between 2 and 10 characters.
func BuildPhraseGraph(phrases []string) *PhraseGraph {
	g := NewPhraseGraph()
	for _, p := range phrases {
		g.AddPhrase(p)
	}
	return g
}

// AddPhrase adds the edges of one phrase. Phrases outside the length range
// are ignored. It reports the number of new edges.
func (g *PhraseGraph) AddPhrase(phrase string) int {
	n := utf8.RuneCountInString(phrase)
	if n < minPhraseLen || n > maxPhraseLen {
		return 0
	}
	runes := []rune(phrase)
	added := 0
	for i := 0; i < len(runes)-1; i++ {
		if g.addEdge(string(runes[i]), string(runes[i+1])) {
			added++
		}
	}
	return added
}

func (g *PhraseGraph) addEdge(from, to string) bool {
	set, ok := g.seen[from]
	if !ok {
		set = make(map[string]struct{})
		g.seen[from] = set
	}
	if _, dup := set[to]; dup {
		return false
	}
	set[to] = struct{}{}
	g.next[from] = append(g.next[from], to)
	g.edges++
	return true
}

// Next returns the characters that follow c, in insertion order.
func (g *PhraseGraph) Next(c string) []string {
	if g == nil {
		return nil
	}
	return g.next[c]
}

// Edges returns the number of distinct edges.
func (g *PhraseGraph) Edges() int {
	if g == nil {
		return 0
	}
	return g.edges
}

// LoadPhrases reads one phrase per line; '#' and ';' start comments.
func LoadPhrases(r io.Reader) (*PhraseGraph, error) {
	lines, err := readLines(r, "#;")
	if err != nil {
		return nil, err
	}
	return BuildPhraseGraph(lines), nil
}

// LoadPhrasesFile loads the phrase graph from path. A missing file is not an
// error: prediction simply runs without phrases.
func LoadPhrasesFile(path string) *PhraseGraph {
	file, err := os.Open(path)
	if err != nil {
		log.Debugf("Phrase file %s unavailable: %v", path, err)
		return NewPhraseGraph()
	}
	defer file.Close()

	g, err := LoadPhrases(file)
	if err != nil {
		log.Warnf("Failed to read phrase file %s: %v", path, err)
		return NewPhraseGraph()
	}
	log.Debugf("Loaded phrase graph from %s: %d edges", path, g.Edges())
	return g
}
