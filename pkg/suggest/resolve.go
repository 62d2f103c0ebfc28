package suggest

import (
	"github.com/bastiangx/strokeserve/internal/utils"
	"github.com/bastiangx/strokeserve/pkg/stroke"
)

// Resolve returns the candidates for an already filtered, non-empty code in
// emission order. A code containing '*' is matched against every key.
// Otherwise the exact key comes first, then distinct words of longer keys
// sharing the prefix, and for long codes with no match at all the derived
// 3+3 wildcard pattern.
func (e *Engine) Resolve(code string) []Candidate {
	if code == "" {
		return nil
	}
	version := e.dict.Version()
	if e.cache != nil {
		if cands, ok := e.cache.Get(code, version); ok {
			return cands
		}
	}

	var cands []Candidate
	if stroke.HasWildcard(code) {
		cands = e.resolveWildcard(code, nil)
	} else {
		cands = e.resolveLiteral(code)
	}

	if e.cache != nil {
		e.cache.Put(code, version, cands)
	}
	return cands
}

func (e *Engine) resolveLiteral(code string) []Candidate {
	exact := e.dict.Words(code)
	cands := make([]Candidate, 0, len(exact))
	filter := utils.NewSuggestionFilter()
	for _, w := range exact {
		cands = append(cands, Candidate{Text: w, Code: code, Source: SourceDict})
		filter.ShouldInclude(w)
	}
	cands = collectPrefix(e.dict, code, e.opts.PrefixLimit, filter, cands)

	if len(cands) == 0 && len(code) > e.opts.ThreePlusThreeMin {
		cands = e.resolveWildcard(stroke.ThreePlusThree(code), cands)
	}
	return cands
}

// resolveWildcard appends every word of every key matching pattern, keys in
// ascending order.
func (e *Engine) resolveWildcard(pattern string, out []Candidate) []Candidate {
	for _, key := range e.dict.Codes() {
		if !stroke.WildcardMatch(pattern, key) {
			continue
		}
		for _, w := range e.dict.Words(key) {
			out = append(out, Candidate{Text: w, Code: key, Source: SourceDict})
		}
	}
	return out
}
