package suggest

import (
	"sort"
	"unicode/utf8"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

const (
	cooccurPairBonus = 5
	cooccurSpan      = 2
)

// Predict returns next-character candidates after word was selected. Phrase
// graph successors come first, then the learned followers of word, then
// characters that share a dictionary word with word's first character, and
// when fewer than the backfill threshold were found, the most frequent
// learned single characters. Each text appears once; the list is capped at
// the prediction limit.
func (e *Engine) Predict(word string) []Candidate {
	if word == "" {
		return nil
	}
	limit := e.opts.PredictionLimit
	set := linkedhashmap.New()
	add := func(text string, src Source) {
		if text == "" || set.Size() >= limit {
			return
		}
		if _, ok := set.Get(text); ok {
			return
		}
		set.Put(text, src)
	}

	if e.phrases.Edges() > 0 {
		for _, next := range e.phrases.Next(word) {
			add(next, SourcePhrase)
		}
	}
	for _, next := range e.model.Followers(word) {
		add(next, SourceContext)
	}
	for _, c := range e.cooccurring(word) {
		add(c, SourceCooccur)
	}
	if set.Size() < e.opts.PredictionBackfill {
		exclude := func(w string) bool {
			_, ok := set.Get(w)
			return ok
		}
		for _, w := range e.model.TopSingles(limit, exclude) {
			add(w, SourceCommon)
		}
	}

	out := make([]Candidate, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		text := it.Key().(string)
		src := it.Value().(Source)
		code, ok := e.dict.CodeOf(text)
		if !ok {
			code = string(src)
		}
		out = append(out, Candidate{Text: text, Code: code, Source: src})
	}
	return out
}

// cooccurring scores the characters next to word's first character inside
// multi-character dictionary words. A word starting with it contributes its
// following two characters, a word ending with it contributes its first two.
// Each occurrence scores twice the learned frequency of the containing word,
// or 1 if unknown, plus a bonus for two-character words. The best score per
// character wins; results are ordered by score, then by character.
func (e *Engine) cooccurring(word string) []string {
	first, _ := utf8.DecodeRuneInString(word)
	scores := make(map[string]int)

	e.dict.Each(func(_ string, w string) bool {
		runes := []rune(w)
		n := len(runes)
		if n < 2 {
			return true
		}
		startsWith := runes[0] == first
		endsWith := runes[n-1] == first
		if !startsWith && !endsWith {
			return true
		}
		score := 1
		if f := e.model.Frequency(w); f > 0 {
			score = f * 2
		}
		if n == 2 {
			score += cooccurPairBonus
		}
		keep := func(r rune) {
			c := string(r)
			if cur, ok := scores[c]; !ok || cur < score {
				scores[c] = score
			}
		}
		if startsWith {
			for i := 1; i < n && i <= cooccurSpan; i++ {
				keep(runes[i])
			}
		}
		if endsWith {
			for i := 0; i < n-1 && i < cooccurSpan; i++ {
				keep(runes[i])
			}
		}
		return true
	})

	chars := make([]string, 0, len(scores))
	for c := range scores {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool {
		if scores[chars[i]] != scores[chars[j]] {
			return scores[chars[i]] > scores[chars[j]]
		}
		return chars[i] < chars[j]
	})
	return chars
}
