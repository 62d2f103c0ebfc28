package suggest

import (
	"github.com/bastiangx/strokeserve/internal/utils"
	"github.com/bastiangx/strokeserve/pkg/dictionary"
)

// collectPrefix appends the words of every key strictly longer than code
// that starts with it, skipping words the filter has seen, until limit
// prefix-sourced words were added.
func collectPrefix(dict *dictionary.Dictionary, code string, limit int, filter *utils.SuggestionFilter, out []Candidate) []Candidate {
	if limit <= 0 {
		return out
	}
	added := 0
	for _, key := range dict.PrefixCodes(code) {
		for _, w := range dict.Words(key) {
			if !filter.ShouldInclude(w) {
				continue
			}
			out = append(out, Candidate{Text: w, Code: key, Source: SourceDict})
			added++
			if added >= limit {
				return out
			}
		}
	}
	return out
}
