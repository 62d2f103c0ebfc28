package utils

// SuggestionFilter remembers words already emitted so later sources can skip
// them. Matching is exact; candidate text is not case folded.
type SuggestionFilter struct {
	seenWords map[string]struct{}
}

// NewSuggestionFilter creates a filter that already contains seed.
func NewSuggestionFilter(seed ...string) *SuggestionFilter {
	seenWords := make(map[string]struct{}, len(seed))
	for _, w := range seed {
		seenWords[w] = struct{}{}
	}
	return &SuggestionFilter{seenWords: seenWords}
}

// ShouldInclude reports whether word is new and records it.
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	if _, ok := f.seenWords[word]; ok {
		return false
	}
	f.seenWords[word] = struct{}{}
	return true
}

// Contains reports whether word was seen without recording it.
func (f *SuggestionFilter) Contains(word string) bool {
	_, ok := f.seenWords[word]
	return ok
}

// Len returns the number of distinct words seen.
func (f *SuggestionFilter) Len() int {
	return len(f.seenWords)
}
