// Package learn keeps per-word usage statistics: frequency, recency,
// promotion from temporary to permanent, and the followers of each selected
// word. It does no I/O; persistence is done by callers through the user
// dictionary format or the sqlite store.
package learn

import (
	"sort"
	"time"
	"unicode/utf8"

	"github.com/emirpasic/gods/queues/circularbuffer"
)

// WordInfo is the learned state of one word.
type WordInfo struct {
	Frequency int
	LastUsed  time.Time
	TempCount int
	Permanent bool
}

// Policy holds the tunable learning constants.
type Policy struct {
	PromotionThreshold int
	ContextCapacity    int
	// DecayDays are the upper age bounds, in days, of each weight bucket.
	DecayDays    []int
	DecayWeights []float64
	DecayFloor   float64
}

// DefaultPolicy returns the stock policy.
func DefaultPolicy() Policy {
	return Policy{
		PromotionThreshold: 3,
		ContextCapacity:    10,
		DecayDays:          []int{1, 7, 30, 90},
		DecayWeights:       []float64{1.0, 0.8, 0.6, 0.4},
		DecayFloor:         0.2,
	}
}

// TimeWeight maps the age of a last use to a decay factor.
func (p Policy) TimeWeight(lastUsed, now time.Time) float64 {
	days := now.Sub(lastUsed).Hours() / 24
	for i, limit := range p.DecayDays {
		if i >= len(p.DecayWeights) {
			break
		}
		if days <= float64(limit) {
			return p.DecayWeights[i]
		}
	}
	return p.DecayFloor
}

// Model is the learning state of one user. It is not safe for concurrent use.
type Model struct {
	policy       Policy
	words        map[string]*WordInfo
	followers    map[string]*circularbuffer.Queue
	lastSelected string
	dirty        bool
	now          func() time.Time
}

// Option configures a Model.
type Option func(*Model)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithPolicy sets the learning constants.
func WithPolicy(p Policy) Option {
	return func(m *Model) { m.policy = p }
}

// NewModel returns an empty model.
func NewModel(opts ...Option) *Model {
	m := &Model{
		policy:    DefaultPolicy(),
		words:     make(map[string]*WordInfo),
		followers: make(map[string]*circularbuffer.Queue),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.policy.ContextCapacity <= 0 {
		m.policy.ContextCapacity = 1
	}
	return m
}

// Policy returns the active learning constants.
func (m *Model) Policy() Policy {
	return m.policy
}

// Now returns the model clock.
func (m *Model) Now() time.Time {
	return m.now()
}

// Learn records a selection of word. Empty words are ignored; callers filter
// punctuation before calling. It reports whether the state changed.
func (m *Model) Learn(word string) bool {
	if word == "" {
		return false
	}
	now := m.now()

	info, ok := m.words[word]
	if !ok {
		m.words[word] = &WordInfo{Frequency: 1, LastUsed: now, TempCount: 1}
	} else {
		info.Frequency++
		info.LastUsed = now
		if !info.Permanent {
			info.TempCount++
			if info.TempCount >= m.policy.PromotionThreshold {
				info.Permanent = true
			}
		}
	}

	if m.lastSelected != "" && m.lastSelected != word {
		m.follow(m.lastSelected, word)
	}
	m.lastSelected = word
	m.dirty = true
	return true
}

// follow appends next to the followers of word; the oldest drops out once
// the buffer is full.
func (m *Model) follow(word, next string) {
	q, ok := m.followers[word]
	if !ok {
		q = circularbuffer.New(m.policy.ContextCapacity)
		m.followers[word] = q
	}
	q.Enqueue(next)
}

// Info returns the learned state of word.
func (m *Model) Info(word string) (WordInfo, bool) {
	info, ok := m.words[word]
	if !ok {
		return WordInfo{}, false
	}
	return *info, true
}

// Frequency returns the learned frequency of word, 0 when unknown.
func (m *Model) Frequency(word string) int {
	if info, ok := m.words[word]; ok {
		return info.Frequency
	}
	return 0
}

// Weighted returns frequency times the time weight of the last use.
func (m *Model) Weighted(word string) float64 {
	info, ok := m.words[word]
	if !ok {
		return 0
	}
	return float64(info.Frequency) * m.policy.TimeWeight(info.LastUsed, m.now())
}

// Followers returns the followers of word, oldest first.
func (m *Model) Followers(word string) []string {
	q, ok := m.followers[word]
	if !ok {
		return nil
	}
	values := q.Values()
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.(string))
	}
	return out
}

// IsFollower reports whether next is among the followers of word.
func (m *Model) IsFollower(word, next string) bool {
	q, ok := m.followers[word]
	if !ok {
		return false
	}
	for _, v := range q.Values() {
		if v.(string) == next {
			return true
		}
	}
	return false
}

// LastSelected returns the most recently learned word.
func (m *Model) LastSelected() string {
	return m.lastSelected
}

// Len returns the number of learned words.
func (m *Model) Len() int {
	return len(m.words)
}

// Dirty reports whether the model changed since the last MarkClean.
func (m *Model) Dirty() bool {
	return m.dirty
}

// MarkClean clears the dirty flag after a successful save.
func (m *Model) MarkClean() {
	m.dirty = false
}

// TopSingles returns up to n single-character learned words by descending
// frequency, ties by text. Words for which exclude returns true are skipped.
func (m *Model) TopSingles(n int, exclude func(string) bool) []string {
	var singles []string
	for w := range m.words {
		if utf8.RuneCountInString(w) != 1 {
			continue
		}
		if exclude != nil && exclude(w) {
			continue
		}
		singles = append(singles, w)
	}
	sort.Slice(singles, func(i, j int) bool {
		fi, fj := m.words[singles[i]].Frequency, m.words[singles[j]].Frequency
		if fi != fj {
			return fi > fj
		}
		return singles[i] < singles[j]
	})
	if n >= 0 && len(singles) > n {
		singles = singles[:n]
	}
	return singles
}

// Entry is one learned word in a Snapshot.
type Entry struct {
	Word string
	WordInfo
}

// Snapshot is a copy of the full model state.
type Snapshot struct {
	Words        []Entry
	Followers    map[string][]string
	LastSelected string
}

// Snapshot copies the model. Words are ordered by text.
func (m *Model) Snapshot() Snapshot {
	s := Snapshot{
		Words:        make([]Entry, 0, len(m.words)),
		Followers:    make(map[string][]string, len(m.followers)),
		LastSelected: m.lastSelected,
	}
	for w, info := range m.words {
		s.Words = append(s.Words, Entry{Word: w, WordInfo: *info})
	}
	sort.Slice(s.Words, func(i, j int) bool { return s.Words[i].Word < s.Words[j].Word })
	for w := range m.followers {
		s.Followers[w] = m.Followers(w)
	}
	return s
}

// Restore replaces the model state with s and clears the dirty flag.
func (m *Model) Restore(s Snapshot) {
	m.words = make(map[string]*WordInfo, len(s.Words))
	for _, e := range s.Words {
		info := e.WordInfo
		m.words[e.Word] = &info
	}
	m.followers = make(map[string]*circularbuffer.Queue, len(s.Followers))
	for w, list := range s.Followers {
		for _, next := range list {
			m.follow(w, next)
		}
	}
	m.lastSelected = s.LastSelected
	m.dirty = false
}
