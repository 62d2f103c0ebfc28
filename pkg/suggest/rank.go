package suggest

import (
	"sort"
)

const (
	baseCodeLength = 10
	permanentBonus = 5.0
	contextBonus   = 3.0
)

// Score computes the ranking score of c:
//
//	(10 - len(code))*2 + frequency*timeWeight + 5 if permanent + 3 if c
//	followed the last selected word before
//
// Unknown words get only the code length term.
func (e *Engine) Score(c Candidate) float64 {
	score := float64(baseCodeLength-len(c.Code)) * 2
	if info, ok := e.model.Info(c.Text); ok {
		score += float64(info.Frequency) * e.model.Policy().TimeWeight(info.LastUsed, e.model.Now())
		if info.Permanent {
			score += permanentBonus
		}
	}
	if last := e.model.LastSelected(); last != "" && e.model.IsFollower(last, c.Text) {
		score += contextBonus
	}
	return score
}

// Rank returns candidates sorted by descending score. Equal scores keep
// their resolver order. The input slice is not modified.
func (e *Engine) Rank(candidates []Candidate) []Candidate {
	type scored struct {
		c     Candidate
		score float64
	}
	items := make([]scored, len(candidates))
	for i, c := range candidates {
		items[i] = scored{c: c, score: e.Score(c)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})
	ranked := make([]Candidate, len(items))
	for i, it := range items {
		ranked[i] = it.c
	}
	return ranked
}

// TotalPages returns ceil(n/size).
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns page p (0-based) of candidates, or nil when p is out of
// range.
func Paginate(candidates []Candidate, p, size int) []Candidate {
	if size <= 0 || p < 0 {
		return nil
	}
	start := p * size
	if start >= len(candidates) {
		return nil
	}
	end := min(start+size, len(candidates))
	return candidates[start:end]
}
