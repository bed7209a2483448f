package manifest

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExtractNumber returns the run of decimal digits at the start of name. Any
// Unicode decimal digit counts, so fullwidth "０３_x" yields "０３". Leading
// zeros are kept so "03_main" yields "03".
func ExtractNumber(name string) (string, bool) {
	end := 0
	for end < len(name) {
		r, size := utf8.DecodeRuneInString(name[end:])
		if !unicode.IsDigit(r) {
			break
		}
		end += size
	}
	if end == 0 {
		return "", false
	}
	return name[:end], true
}

// asciiDigits rewrites a digit token into ASCII digits of the same value.
func asciiDigits(number string) string {
	var sb strings.Builder
	sb.Grow(len(number))
	for _, r := range number {
		sb.WriteByte('0' + byte(digitValue(r)))
	}
	return sb.String()
}

// digitValue returns the value of a Unicode decimal digit. Every Nd range
// starts at a zero and runs in blocks of ten.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	for _, rng := range unicode.Nd.R16 {
		if lo, hi := rune(rng.Lo), rune(rng.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10
		}
	}
	for _, rng := range unicode.Nd.R32 {
		if lo, hi := rune(rng.Lo), rune(rng.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10
		}
	}
	return 0
}

// Key orders siblings: numbered names first by numeric value, then the rest by name.
type Key struct {
	Unnumbered bool
	Number     string // ASCII digits with leading zeros stripped
	Name       string
}

// SortKey builds the ordering key for a file or directory name.
func SortKey(name string) Key {
	number, ok := ExtractNumber(name)
	if !ok {
		return Key{Unnumbered: true, Name: name}
	}
	return Key{Number: strings.TrimLeft(asciiDigits(number), "0"), Name: name}
}

// Compare returns -1, 0 or 1. Numbers are compared by magnitude without
// parsing, so arbitrarily long digit runs never overflow.
func (k Key) Compare(o Key) int {
	if k.Unnumbered != o.Unnumbered {
		if k.Unnumbered {
			return 1
		}
		return -1
	}
	if !k.Unnumbered {
		if len(k.Number) != len(o.Number) {
			if len(k.Number) < len(o.Number) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(k.Number, o.Number); c != 0 {
			return c
		}
	}
	return strings.Compare(k.Name, o.Name)
}

// Less reports whether name a sorts before name b.
func Less(a, b string) bool {
	return SortKey(a).Compare(SortKey(b)) < 0
}

// SortNames sorts names in sibling order.
func SortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return Less(names[i], names[j])
	})
}

// sortEntries sorts entries in sibling order by their original filename.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i].OriginalName, entries[j].OriginalName)
	})
}
