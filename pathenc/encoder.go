package pathenc

import (
	"fmt"
	"regexp"
	"strings"
)

// AutoNumbering is the numbering value returned for headings detected only
// by their visual prominence. BuildPath turns it into an auto-block path.
const AutoNumbering = "heading"

// maxHeadingLength is the length above which text is never treated as any
// heading form.
const maxHeadingLength = 200

// shortHeadingLength bounds the font-size fallback: only short text can be
// promoted to a heading on size alone.
const shortHeadingLength = 80

// headingFontRatio is the font-size multiple over the page average that
// signals an unnumbered heading.
const headingFontRatio = 1.2

var (
	numericPrefixRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)[\.、\s]+`)
	chapterRe       = regexp.MustCompile(`^第([一二三四五六七八九十百千\d]+)(章|节|条|款|项)`)
	letterEnumRe    = regexp.MustCompile(`^[（(]?([a-zA-Z])[）)]\.?\s+`)
	chineseEnumRe   = regexp.MustCompile(`^[（(]([一二三四五六七八九十]+)[）)]`)
)

// chapterLevels maps Chinese structural markers to hierarchy depth.
var chapterLevels = map[string]int{
	"章": 1,
	"节": 2,
	"条": 3,
	"款": 4,
	"项": 5,
}

// Encoder assigns hierarchical paths to the nodes of a single document.
// It is a sequential state machine: create one per document, feed it nodes
// in reading order, and discard it at document end. It is not safe for
// concurrent use; process separate documents with separate encoders.
type Encoder struct {
	docID        string
	nodeCount    int
	blockCounter int
	stack        []string
	numbering    NumberingMap
	prefixedRe   *regexp.Regexp
}

// NewEncoder creates an encoder for one document using the default
// numbering map.
func NewEncoder(docID string) *Encoder {
	return NewEncoderWithMap(docID, DefaultNumberingMap())
}

// NewEncoderWithMap creates an encoder with a custom numbering map. The
// prefix-matching pattern is compiled from the map's entries, so adding an
// entry is all that is needed to recognize a new heading class.
func NewEncoderWithMap(docID string, m NumberingMap) *Encoder {
	return &Encoder{
		docID:      docID,
		numbering:  m,
		prefixedRe: m.compilePrefixPattern(),
	}
}

// DocID returns the document id this encoder was created for.
func (e *Encoder) DocID() string {
	return e.docID
}

// NodeCount returns the number of paths emitted so far. Every call to
// BuildPath or AddBlockPath increments it, so after a full document walk it
// is the document's node count.
func (e *Encoder) NodeCount() int {
	return e.nodeCount
}

// DetectHeadingLevel classifies text as a heading and extracts its numbering
// and hierarchy level. It returns ok=false if the text is not a heading.
// A detected heading with no explicit numbering returns AutoNumbering and
// level 0.
//
// Styles are tried in priority order:
//  1. numeric dotted prefix "1.2.3", level is dot count + 1
//  2. Chinese chapter markers 第X章/节/条/款/项
//  3. appendix/table/figure prefixes via the NumberingMap
//  4. parenthesized letter or Chinese-numeral enumerations, level 3
//  5. short text with font size ≥ 1.2× the page average
func (e *Encoder) DetectHeadingLevel(text string, fontSize, avgFontSize float64) (numbering string, level int, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" || len([]rune(text)) > maxHeadingLength {
		return "", 0, false
	}

	if m := numericPrefixRe.FindStringSubmatch(text); m != nil {
		numbering = m[1]
		return numbering, strings.Count(numbering, ".") + 1, true
	}

	if m := chapterRe.FindStringSubmatch(text); m != nil {
		num := chineseToArabic(m[1])
		level, found := chapterLevels[m[2]]
		if !found {
			level = 1
		}
		return fmt.Sprintf("%d", num), level, true
	}

	if m := e.prefixedRe.FindStringSubmatch(text); m != nil {
		if numbering, level, ok := e.resolvePrefixed(m[1], m[2]); ok {
			return numbering, level, true
		}
	}

	if m := letterEnumRe.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%d", letterOrdinal([]rune(m[1])[0])), 3, true
	}

	if m := chineseEnumRe.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%d", chineseToArabic(m[1])), 3, true
	}

	if len([]rune(text)) < shortHeadingLength && avgFontSize > 0 && fontSize >= avgFontSize*headingFontRatio {
		return AutoNumbering, 0, true
	}

	return "", 0, false
}

// resolvePrefixed applies the numbering map to an appendix/table/figure
// prefix. Appendix-class prefixes produce base+ordinal numbering at level 1;
// tag-class prefixes produce "tag.suffix" at level 2.
func (e *Encoder) resolvePrefixed(prefix, suffix string) (string, int, bool) {
	entry, found := e.numbering.Resolve(prefix)
	if !found {
		return "", 0, false
	}

	if entry.Tag != "" {
		return entry.Tag + "." + suffix, 2, true
	}

	var ordinal int
	switch {
	case isDigits(suffix):
		ordinal, _ = parseInt(suffix)
	case len([]rune(suffix)) == 1:
		ordinal = letterOrdinal([]rune(suffix)[0])
	default:
		// Multi-letter non-numeric suffix: not an appendix ordinal.
		return "", 0, false
	}
	return fmt.Sprintf("%d", entry.Offset+ordinal), 1, true
}

// BuildPath converts a detected numbering into a dotted path of zero-padded
// 3-digit segments and makes it the parent context for subsequent unlabeled
// blocks. Non-numeric components pass through literally. AutoNumbering or a
// zero level delegates to AddBlockPath.
func (e *Encoder) BuildPath(numbering string, level int) string {
	if numbering == AutoNumbering || level <= 0 {
		return e.AddBlockPath()
	}

	parts := strings.Split(numbering, ".")
	padded := make([]string, 0, len(parts))
	for _, part := range parts {
		if n, ok := parseInt(part); ok {
			padded = append(padded, fmt.Sprintf("%03d", n))
		} else {
			padded = append(padded, part)
		}
	}

	if level > len(padded) {
		level = len(padded)
	}
	e.stack = append(e.stack[:0], padded[:level]...)

	e.nodeCount++
	return strings.Join(padded, ".")
}

// AddBlockPath emits the next auto-block path under the current section
// prefix, or a root-level block path if no section is open.
func (e *Encoder) AddBlockPath() string {
	e.blockCounter++
	e.nodeCount++
	suffix := fmt.Sprintf("blk.%03d", e.blockCounter)
	if len(e.stack) == 0 {
		return suffix
	}
	return strings.Join(e.stack, ".") + "." + suffix
}

// ParentPath returns the parent of a path: auto-block paths resolve to their
// section prefix, numbered paths drop their last segment. The second return
// is false when the path has no parent.
func ParentPath(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	if i := strings.LastIndex(path, ".blk."); i >= 0 {
		path = path[:i]
		if path == "" {
			return "", false
		}
		return path, true
	}
	// A bare root-level block path has no parent.
	if strings.HasPrefix(path, "blk.") {
		return "", false
	}

	i := strings.LastIndex(path, ".")
	if i < 0 {
		return "", false
	}
	return path[:i], true
}

// ResetForNewSection truncates the numbering stack to the given level and
// restarts the section-local block counter. Call it whenever a new numbered
// heading is detected.
func (e *Encoder) ResetForNewSection(level int) {
	if level >= 0 && level <= len(e.stack) {
		e.stack = e.stack[:level]
	}
	e.blockCounter = 0
}

// parseInt parses a run of ASCII digits. Unlike strconv.Atoi it rejects
// signs and non-ASCII digits, matching path-segment syntax exactly.
func parseInt(s string) (int, bool) {
	if !isDigits(s) {
		return 0, false
	}
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n, true
}
