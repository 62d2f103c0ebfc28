// Package suggest is the core, resolving stroke codes against the dictionary,
// ranking the matches with the learned model and predicting the next
// character after a selection.
package suggest

// Source tags where a candidate came from.
type Source string

const (
	SourceDict    Source = "dict"
	SourcePhrase  Source = "phrase"
	SourceContext Source = "context"
	SourceCooccur Source = "cooccur"
	SourceCommon  Source = "common"
	SourcePunct   Source = "punct"
)

// Candidate is one selectable word. Code is the dictionary key it matched,
// or for predictions the first code listing it, falling back to the source tag.
type Candidate struct {
	Text   string
	Code   string
	Source Source
}

// ISuggester defines the interface for stroke candidate engines
type ISuggester interface {
	// Resolve returns the unranked matches for a filtered code
	Resolve(code string) []Candidate

	// Rank orders candidates by score, keeping resolver order on ties
	Rank(candidates []Candidate) []Candidate

	// Predict returns next-character candidates after word was selected
	Predict(word string) []Candidate

	// Stats returns statistics about the loaded data
	Stats() map[string]int
}
