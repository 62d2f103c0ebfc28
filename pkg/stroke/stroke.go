/*
Package stroke validates and normalizes stroke code input.

A stroke code is a sequence over the five basic strokes u, i, o, j, k plus
the wildcard '*'. Raw input from the key layer may carry anything; this
package decides whether the input is usable at all and strips it down to the
stroke alphabet.

	if err := stroke.Check(raw, stroke.MaxCodeLength); err != nil {
		// overlong or nothing usable, keep raw for the user to fix
	}
	code, _ := stroke.FilterValid(raw)
*/
package stroke

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Wildcard matches any run of zero or more strokes inside a code.
const Wildcard = '*'

// MaxCodeLength is the practical upper bound on raw input length.
const MaxCodeLength = 30

// Alphabet lists every rune a filtered code may contain.
const Alphabet = "uiojk*"

var (
	// ErrNoUsableCodes is returned when non-empty input has no stroke characters.
	ErrNoUsableCodes = errors.New("no usable stroke codes")
	// ErrOverlong is returned when raw input exceeds the maximum code length.
	ErrOverlong = errors.New("stroke input too long")
)

// IsStroke reports whether r belongs to the stroke alphabet.
func IsStroke(r rune) bool {
	switch r {
	case 'u', 'i', 'o', 'j', 'k', Wildcard:
		return true
	}
	return false
}

// IsWellFormedEnough gates further processing of raw input.
// It fails when raw is longer than MaxCodeLength runes or holds no stroke
// character at all. Passing does not mean raw is clean.
func IsWellFormedEnough(raw string) bool {
	return Check(raw, MaxCodeLength) == nil
}

// Check is IsWellFormedEnough with a configurable length bound that also
// tells the two failure modes apart.
func Check(raw string, maxLen int) error {
	if maxLen > 0 && utf8.RuneCountInString(raw) > maxLen {
		return ErrOverlong
	}
	if strings.IndexFunc(raw, IsStroke) < 0 {
		return ErrNoUsableCodes
	}
	return nil
}

// FilterValid drops every rune outside the stroke alphabet, keeping order.
func FilterValid(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if IsStroke(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 && raw != "" {
		return "", ErrNoUsableCodes
	}
	return b.String(), nil
}

// HasWildcard reports whether code contains the wildcard.
func HasWildcard(code string) bool {
	return strings.IndexRune(code, Wildcard) >= 0
}

// ThreePlusThree derives the "3+3" search pattern from a long code:
// the first three strokes, a wildcard, then the last three.
// Codes shorter than six keep whatever follows the first three.
func ThreePlusThree(code string) string {
	if len(code) <= 3 {
		return code + string(Wildcard)
	}
	head := code[:3]
	tail := code[3:]
	if len(code) >= 6 {
		tail = code[len(code)-3:]
	}
	return head + string(Wildcard) + tail
}

// Hint returns the short help text shown next to the input line.
func Hint(filtered string) string {
	switch n := len(filtered); {
	case n >= 7:
		return "suggest: " + ThreePlusThree(filtered)
	case n > 3:
		return "use * to search"
	}
	return ""
}
