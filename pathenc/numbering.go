package pathenc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Mapping resolves a recognized prefix to either a numeric base offset
// (appendix-style numbering, e.g. appendix 2 → 902) or a type tag that is
// spliced into the path verbatim (e.g. "table" → "table.003").
// Exactly one of Offset and Tag is meaningful.
type Mapping struct {
	// Prefix is the literal prefix to match, case-insensitively.
	Prefix string `json:"prefix"`

	// Offset is the numeric base for this class, 0 if Tag is used instead.
	Offset int `json:"offset,omitempty"`

	// Tag is the path tag for this class, empty if Offset is used instead.
	Tag string `json:"tag,omitempty"`
}

// NumberingMap is the versioned prefix-resolution table for appendix, table,
// and figure headings. Entries are evaluated in order; the first prefix that
// matches wins, so ordering is part of the contract.
type NumberingMap struct {
	// Version identifies the revision of the table.
	Version string `json:"version"`

	// Entries are the ordered prefix mappings.
	Entries []Mapping `json:"entries"`
}

// DefaultNumberingMap returns the standard mapping: appendices numbered from
// base 900, tables and figures tagged by type.
func DefaultNumberingMap() NumberingMap {
	return NumberingMap{
		Version: "1",
		Entries: []Mapping{
			{Prefix: "附录", Offset: 900},
			{Prefix: "annex", Offset: 900},
			{Prefix: "appendix", Offset: 900},
			{Prefix: "表", Tag: "table"},
			{Prefix: "图", Tag: "figure"},
			{Prefix: "Fig", Tag: "figure"},
			{Prefix: "Table", Tag: "table"},
		},
	}
}

// compilePrefixPattern builds the heading-prefix pattern from the map's
// entries: the prefix alternation, minimal filler, then a dotted numeral or
// a single-letter ordinal. Longer prefixes are tried first so that entries
// sharing a stem do not shadow each other.
func (m NumberingMap) compilePrefixPattern() *regexp.Regexp {
	if len(m.Entries) == 0 {
		// A map with no entries recognizes no prefixed headings.
		return regexp.MustCompile(`^\x00`)
	}

	prefixes := make([]string, 0, len(m.Entries))
	for _, entry := range m.Entries {
		prefixes = append(prefixes, regexp.QuoteMeta(entry.Prefix))
	}
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	return regexp.MustCompile(`(?i)^(` + strings.Join(prefixes, "|") + `)[^\d]*?(\d+(?:\.\d+)*|[A-Za-z]\b)`)
}

// Resolve returns the first mapping whose prefix matches, case-insensitively.
func (m NumberingMap) Resolve(prefix string) (Mapping, bool) {
	lower := strings.ToLower(prefix)
	for _, entry := range m.Entries {
		if strings.Contains(lower, strings.ToLower(entry.Prefix)) {
			return entry, true
		}
	}
	return Mapping{}, false
}

var chineseDigits = map[rune]int{
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9,
	'十': 10, '百': 100, '千': 1000,
}

// chineseToArabic converts a Chinese numeral (一 through 九千九百九十九, or a
// plain digit string) to its Arabic value using place-value decomposition
// over 十/百/千. Unparseable input defaults to 1.
func chineseToArabic(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}

	result, pending := 0, 0
	for _, r := range s {
		val, ok := chineseDigits[r]
		if !ok {
			continue
		}
		if val >= 10 {
			// Place marker. A bare marker like 十 stands for 1x the place.
			if pending == 0 {
				pending = 1
			}
			result += pending * val
			pending = 0
		} else {
			pending = val
		}
	}
	result += pending

	if result == 0 {
		return 1
	}
	return result
}

// letterOrdinal converts an ASCII letter to its 1-based alphabet position.
func letterOrdinal(r rune) int {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 1
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 1
	default:
		return 1
	}
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
