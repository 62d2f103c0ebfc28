package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"
)

const bom = "\uFEFF"

// maxLineSize bounds a single dictionary line.
const maxLineSize = 1 << 20

// Status describes how a dictionary came to be.
type Status struct {
	Path     string
	Entries  int
	Fallback bool
	Err      error
}

// String renders the status as a short message for the front end.
func (s Status) String() string {
	if s.Fallback {
		return fmt.Sprintf("dictionary unavailable (%v), using %d built-in strokes", s.Err, s.Entries)
	}
	return fmt.Sprintf("loaded %d entries from %s", s.Entries, s.Path)
}

// fallbackEntries is one word per basic stroke.
var fallbackEntries = [][2]string{
	{"一", "u"},
	{"丨", "i"},
	{"丿", "o"},
	{"丶", "j"},
	{"乙", "k"},
}

// Fallback returns the minimal built-in table used when no dictionary loads.
func Fallback() *Dictionary {
	d := New()
	for _, e := range fallbackEntries {
		d.add(e[0], e[1])
	}
	d.reindex()
	return d
}

// Load parses `word<TAB>code` lines. Blank lines and '#' comments are
// skipped, lines without a tab or with an empty side are dropped silently.
// Words are NFC-normalized. It returns the number of accepted entries.
func Load(r io.Reader) (*Dictionary, int, error) {
	d := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	count := 0
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, bom)
			first = false
		}
		line = strings.TrimRight(line, "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		word, code, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		word = norm.NFC.String(word)
		if word == "" || code == "" {
			continue
		}
		d.add(word, code)
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, count, fmt.Errorf("failed to read dictionary: %w", err)
	}
	d.reindex()
	return d, count, nil
}

// LoadFile loads the main dictionary from path. It never fails: a missing,
// unreadable or empty file yields the fallback table and a Status saying so.
func LoadFile(path string) (*Dictionary, Status) {
	file, err := os.Open(path)
	if err != nil {
		log.Warnf("Dictionary %s unavailable: %v. Using fallback table...", path, err)
		return fallbackWith(path, err)
	}
	defer file.Close()

	d, count, err := Load(file)
	if err != nil {
		log.Warnf("Dictionary %s unreadable: %v. Using fallback table...", path, err)
		return fallbackWith(path, err)
	}
	if count == 0 {
		err = fmt.Errorf("no entries in %s", path)
		log.Warnf("Dictionary %s is empty. Using fallback table...", path)
		return fallbackWith(path, err)
	}
	log.Debugf("Loaded dictionary %s: %d entries, %d codes", path, count, len(d.codes))
	return d, Status{Path: path, Entries: count}
}

func fallbackWith(path string, err error) (*Dictionary, Status) {
	d := Fallback()
	return d, Status{Path: path, Entries: d.Len(), Fallback: true, Err: err}
}

// readLines reads a UTF-8 text file of one item per line, stripping a BOM,
// carriage returns and surrounding spaces/tabs. Lines starting with one of
// the comment prefixes are skipped.
func readLines(r io.Reader, comments string) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, bom)
			first = false
		}
		line = strings.Trim(line, " \t\r")
		if line == "" || strings.ContainsRune(comments, rune(line[0])) {
			continue
		}
		lines = append(lines, norm.NFC.String(line))
	}
	return lines, scanner.Err()
}
