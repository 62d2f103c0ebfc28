package learn

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// DefaultMaxUserEntries caps the number of words written by WriteUserDict.
const DefaultMaxUserEntries = 2000

const (
	statusPermanent = "permanent"
	statusTemp      = "temp"
)

var userDictHeader = []string{
	"# strokeserve user dictionary (punctuation filtered)",
	"# format: word<TAB><TAB>frequency<TAB>status",
	"# entries may be edited by hand",
}

// WriteUserDict writes the learned words of m ranked by frequency times time
// weight, keeping at most limit entries (DefaultMaxUserEntries when limit <= 0).
// Equal scores are ordered by word. It returns the number of entries written.
func WriteUserDict(w io.Writer, m *Model, limit int) (int, error) {
	if limit <= 0 {
		limit = DefaultMaxUserEntries
	}
	now := m.now()
	entries := m.Snapshot().Words
	sort.SliceStable(entries, func(i, j int) bool {
		si := float64(entries[i].Frequency) * m.policy.TimeWeight(entries[i].LastUsed, now)
		sj := float64(entries[j].Frequency) * m.policy.TimeWeight(entries[j].LastUsed, now)
		return si > sj
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	bw := bufio.NewWriter(w)
	for _, line := range userDictHeader {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return 0, err
		}
	}
	for _, e := range entries {
		status := statusTemp
		if e.Permanent {
			status = statusPermanent
		}
		if _, err := fmt.Fprintf(bw, "%s\t\t%d\t%s\n", e.Word, e.Frequency, status); err != nil {
			return 0, err
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write user dictionary: %w", err)
	}
	return len(entries), nil
}

// ReadUserDict replaces the learned words of m with the contents of r.
// LastUsed is set to the model clock, TempCount to max(threshold, frequency)
// and Permanent to frequency >= threshold, where threshold is the promotion
// threshold of the model policy. A missing or unparsable frequency counts
// as 1.
// Followers and the last selection are kept. It returns the number of words
// read.
func ReadUserDict(r io.Reader, m *Model) (int, error) {
	now := m.now()
	threshold := m.policy.PromotionThreshold
	words := make(map[string]*WordInfo)

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		line = strings.TrimRight(line, "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		freq := 1
		if len(parts) >= 3 {
			if n, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil && n > 0 {
				freq = n
			}
		}
		words[parts[0]] = &WordInfo{
			Frequency: freq,
			LastUsed:  now,
			TempCount: max(threshold, freq),
			Permanent: freq >= threshold,
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read user dictionary: %w", err)
	}

	m.words = words
	m.dirty = false
	return len(words), nil
}
