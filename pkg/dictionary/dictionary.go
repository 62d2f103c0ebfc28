// Package dictionary holds the stroke code table, the punctuation tables and
// the phrase graph used for prediction.
//
// A Dictionary is built once from loaded text and is read-mostly afterwards.
// It is not safe for concurrent mutation.
package dictionary

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Dictionary maps stroke codes to the words registered under them.
// Words under one code keep their insertion order; duplicates coexist.
type Dictionary struct {
	entries map[string][]string
	codes   []string // sorted, mirrors the keys of entries
	trie    *patricia.Trie
	codeOf  map[string]string
	size    int
	version int
}

// New returns an empty dictionary.
func New() *Dictionary {
	return &Dictionary{
		entries: make(map[string][]string),
		trie:    patricia.NewTrie(),
		codeOf:  make(map[string]string),
	}
}

// Add registers word under code. New codes are inserted into the sorted
// index in place, so Add is meant for occasional corrections; bulk loads go
// through Load.
func (d *Dictionary) Add(word, code string) {
	if word == "" || code == "" {
		return
	}
	if _, ok := d.entries[code]; !ok {
		i := sort.SearchStrings(d.codes, code)
		d.codes = append(d.codes, "")
		copy(d.codes[i+1:], d.codes[i:])
		d.codes[i] = code
		d.trie.Insert(patricia.Prefix(code), struct{}{})
	}
	d.entries[code] = append(d.entries[code], word)
	if cur, ok := d.codeOf[word]; !ok || code < cur {
		d.codeOf[word] = code
	}
	d.size++
	d.version++
}

// add appends without maintaining the sorted index; reindex must follow.
func (d *Dictionary) add(word, code string) {
	if _, ok := d.entries[code]; !ok {
		d.trie.Insert(patricia.Prefix(code), struct{}{})
	}
	d.entries[code] = append(d.entries[code], word)
	d.size++
}

// reindex rebuilds the sorted code list and the word->code index.
func (d *Dictionary) reindex() {
	d.codes = make([]string, 0, len(d.entries))
	for code := range d.entries {
		d.codes = append(d.codes, code)
	}
	sort.Strings(d.codes)

	d.codeOf = make(map[string]string, d.size)
	for _, code := range d.codes {
		for _, w := range d.entries[code] {
			if _, ok := d.codeOf[w]; !ok {
				d.codeOf[w] = code
			}
		}
	}
}

// Words returns the words registered under code in insertion order.
// The returned slice must not be modified.
func (d *Dictionary) Words(code string) []string {
	return d.entries[code]
}

// Has reports whether code is a key of the dictionary.
func (d *Dictionary) Has(code string) bool {
	_, ok := d.entries[code]
	return ok
}

// Codes returns every code in ascending order.
func (d *Dictionary) Codes() []string {
	return d.codes
}

// PrefixCodes returns the codes strictly longer than prefix that start with
// it, in ascending order.
func (d *Dictionary) PrefixCodes(prefix string) []string {
	var codes []string
	err := d.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		if len(p) > len(prefix) {
			codes = append(codes, string(p))
		}
		return nil
	})
	if err != nil {
		return nil
	}
	sort.Strings(codes)
	return codes
}

// CodeOf returns the first code, in ascending order, that lists word.
func (d *Dictionary) CodeOf(word string) (string, bool) {
	code, ok := d.codeOf[word]
	return code, ok
}

// Each calls fn for every (code, word) pair, codes ascending and words in
// insertion order. Iteration stops when fn returns false.
func (d *Dictionary) Each(fn func(code, word string) bool) {
	for _, code := range d.codes {
		for _, w := range d.entries[code] {
			if !fn(code, w) {
				return
			}
		}
	}
}

// Version changes every time Add modifies the table.
func (d *Dictionary) Version() int {
	return d.version
}

// Len returns the number of (code, word) entries.
func (d *Dictionary) Len() int {
	return d.size
}

// Stats returns counters about the loaded table.
func (d *Dictionary) Stats() map[string]int {
	return map[string]int{
		"entries": d.size,
		"codes":   len(d.codes),
		"words":   len(d.codeOf),
	}
}
