package dictionary

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/width"
)

// minMenuEntries is the smallest menu file accepted before falling back.
const minMenuEntries = 5

// Punctuation maps an ASCII symbol to its variants. The first variant is the
// Chinese (full-width) form.
type Punctuation map[string][]string

// DefaultPunctuation returns the built-in symbol table.
func DefaultPunctuation() Punctuation {
	return Punctuation{
		",":  {"，", ","},
		".":  {"。", "."},
		"?":  {"？", "?"},
		"!":  {"！", "!"},
		":":  {"：", ":"},
		";":  {"；", ";"},
		"(":  {"（", "("},
		")":  {"）", ")"},
		"[":  {"「", "「", "［", "["},
		"]":  {"」", "」", "］", "]"},
		"{":  {"『", "{"},
		"}":  {"』", "}"},
		" ":  {" "},
		"<":  {"《", "<"},
		">":  {"》", ">"},
		"/":  {"／", "/"},
		"'":  {"、", "'"},
		"-":  {"－", "-"},
		"_":  {"＿", "_"},
		"=":  {"＝", "="},
		"\\": {"＼", "\\"},
		"|":  {"｜", "|"},
		"~":  {"～", "~"},
		"`":  {"`", "`"},
		"^":  {"⌃", "^"},
		"&":  {"＆", "&"},
		"*":  {"＊", "*"},
		"+":  {"＋", "+"},
		"#":  {"＃", "#"},
		"@":  {"＠", "@"},
		"$":  {"＄", "$"},
		"%":  {"％", "%"},
		"\"": {"＂", "\""},
	}
}

// Variant picks the variant of sym to emit. Brackets, braces and the double
// quote take the last variant in English mode; everything else takes the
// second. Symbols missing from the table are widened in Chinese mode and
// passed through otherwise.
func (p Punctuation) Variant(sym string, chinese bool) string {
	switch sym {
	case " ":
		return " "
	case "'":
		if chinese {
			return "、"
		}
		return "'"
	}
	options := p[sym]
	if len(options) == 0 {
		if chinese {
			return width.Widen.String(sym)
		}
		return sym
	}
	if chinese {
		return options[0]
	}
	switch sym {
	case "\"", "[", "]", "{", "}":
		return options[len(options)-1]
	}
	if len(options) > 1 {
		return options[1]
	}
	return options[0]
}

// punctRunes lists every rune counted as punctuation when deciding whether a
// selected word should be learned.
const punctRunes = "，。？！：；（）「」『』《》〈〉【】：—…“”‘’｜＼－～＿￥％＃＄［］" +
	",.?!:;()[]{}\\'\"<>/-_@#$%^&*+=|`~" +
	"　"

// IsPunctuation reports whether word consists only of punctuation and
// whitespace. The empty string is not punctuation.
func IsPunctuation(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		switch r {
		case ' ', '\t', '\n', '\r', '　':
			continue
		}
		if !strings.ContainsRune(punctRunes, r) {
			return false
		}
	}
	return true
}

// DefaultMenu returns the built-in punctuation menu.
func DefaultMenu() []string {
	return []string{
		"※", "✓", "★", "☆", "●", "○",
		"，", "。", "？", "！", "：", "；",
		"（", "）", "「", "」", "『", "』", "《", "》",
		"〈", "〉",
		"　", "·", "－", "—", "……", "“", "”", "‘", "’",
		"｜", "＼", "／", "～", "＿", "￥", "％", "＃", "＠",
		"［", "］",
		"♠", "♥", "♣", "♦",
	}
}

// LoadMenu reads one menu symbol per line. Fewer than five symbols counts as
// a failed load and yields the built-in menu; the boolean reports whether the
// file contents were used.
func LoadMenu(r io.Reader) ([]string, bool) {
	lines, err := readLines(r, "#")
	if err != nil || len(lines) < minMenuEntries {
		return DefaultMenu(), false
	}
	return lines, true
}

// LoadMenuFile loads the punctuation menu from path or returns the built-in one.
func LoadMenuFile(path string) []string {
	file, err := os.Open(path)
	if err != nil {
		log.Debugf("Punctuation menu %s unavailable: %v. Using built-in menu", path, err)
		return DefaultMenu()
	}
	defer file.Close()

	menu, ok := LoadMenu(file)
	if !ok {
		log.Warnf("Punctuation menu %s has too few entries. Using built-in menu", path)
	}
	return menu
}
