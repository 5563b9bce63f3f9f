package segment

import (
	"regexp"
	"strings"

	"github.com/tsawler/strata/model"
)

// Config holds the length bounds for segmentation, in characters.
type Config struct {
	// MinLength is the minimum segment length. Shorter sentences are merged
	// with their successors. Default: 15.
	MinLength int

	// MaxLength is the maximum segment length. Longer units are re-split at
	// sentence and secondary-punctuation boundaries. Default: 500.
	MaxLength int
}

// DefaultConfig returns the standard segmentation bounds.
func DefaultConfig() Config {
	return Config{
		MinLength: 15,
		MaxLength: 500,
	}
}

// sentenceEnders terminate a sentence. Newlines count because extracted
// block text frequently encodes layout breaks as newlines.
const sentenceEnders = "。！？；…\n"

// secondaryPunctuation marks acceptable force-split points inside an
// oversize sentence.
const secondaryPunctuation = "，,、；;：:"

// headingPatterns are the numbering styles that mark short text as a
// heading regardless of font size.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+(?:\.\d+)*[\.、\s]+`),
	regexp.MustCompile(`^第[一二三四五六七八九十百\d]+(章|节|条|款|项)`),
	regexp.MustCompile(`^[（(]?[一二三四五六七八九十]{1,3}[）)]`),
	regexp.MustCompile(`^[（(]?[a-zA-Z][）)]`),
	regexp.MustCompile(`(?i)^(附录|表|图|Table|Fig)`),
}

// shortHeadingLength bounds heading classification: longer text is body.
const shortHeadingLength = 80

// headingFontRatio is the font-size multiple over the page average that
// marks a short block as a heading.
const headingFontRatio = 1.2

// Segmenter splits text into sentence-bounded segments. It is stateless and
// safe for concurrent use.
type Segmenter struct {
	config Config
}

// New creates a segmenter with default bounds.
func New() *Segmenter {
	return &Segmenter{config: DefaultConfig()}
}

// NewWithConfig creates a segmenter with custom bounds. Non-positive values
// fall back to the defaults.
func NewWithConfig(cfg Config) *Segmenter {
	def := DefaultConfig()
	if cfg.MinLength <= 0 {
		cfg.MinLength = def.MinLength
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = def.MaxLength
	}
	return &Segmenter{config: cfg}
}

// SplitIntoSentences splits text on terminal punctuation, reattaching the
// delimiter run to the preceding sentence. Empty fragments are dropped.
func (s *Segmenter) SplitIntoSentences(text string) []string {
	if text == "" {
		return nil
	}

	var sentences []string
	var current []rune

	flush := func() {
		sentence := strings.TrimSpace(string(current))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		current = current[:0]
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current = append(current, runes[i])
		if !isSentenceEnder(runes[i]) {
			continue
		}
		// Absorb the rest of the delimiter run.
		for i+1 < len(runes) && isSentenceEnder(runes[i+1]) {
			i++
			current = append(current, runes[i])
		}
		flush()
	}
	flush()

	return sentences
}

// MergeShortSentences greedily appends sentences to a running buffer while
// it is shorter than MinLength. Every emitted unit except possibly the last
// has at least MinLength characters.
func (s *Segmenter) MergeShortSentences(sentences []string) []string {
	var merged []string
	var current string

	for _, sentence := range sentences {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		switch {
		case current == "":
			current = sentence
		case runeLen(current) < s.config.MinLength:
			current += sentence
		default:
			merged = append(merged, current)
			current = sentence
		}
	}
	if current != "" {
		merged = append(merged, current)
	}

	return merged
}

// SplitLongSegment re-splits text into segments not exceeding MaxLength,
// packing whole sentences greedily. A single sentence longer than MaxLength
// is force-split at the last secondary punctuation mark before the limit,
// or hard-cut at the limit when it contains none.
func (s *Segmenter) SplitLongSegment(text string) []string {
	if runeLen(text) <= s.config.MaxLength {
		return []string{text}
	}

	var segments []string
	var current string

	for _, sentence := range s.SplitIntoSentences(text) {
		if runeLen(current)+runeLen(sentence) <= s.config.MaxLength {
			current += sentence
			continue
		}
		if current != "" {
			segments = append(segments, current)
			current = ""
		}
		if runeLen(sentence) > s.config.MaxLength {
			parts := forceSplit(sentence, s.config.MaxLength)
			segments = append(segments, parts[:len(parts)-1]...)
			current = parts[len(parts)-1]
		} else {
			current = sentence
		}
	}
	if current != "" {
		segments = append(segments, current)
	}

	return segments
}

// forceSplit cuts an oversize sentence into pieces of at most maxLen
// characters, preferring the last secondary punctuation mark inside each
// window and hard-cutting when the window contains none.
func forceSplit(text string, maxLen int) []string {
	var parts []string

	runes := []rune(text)
	for len(runes) > maxLen {
		cut := maxLen
		for i := maxLen - 1; i > 0; i-- {
			if isSecondaryPunctuation(runes[i]) {
				cut = i + 1
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}

	if len(parts) == 0 {
		return []string{text}
	}
	return parts
}

// SegmentText runs the full pipeline: sentence split, short-sentence merge,
// long-segment split, then trims and drops empties. The output preserves
// input order.
func (s *Segmenter) SegmentText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := s.MergeShortSentences(s.SplitIntoSentences(text))

	var segments []string
	for _, sentence := range sentences {
		if runeLen(sentence) > s.config.MaxLength {
			segments = append(segments, s.SplitLongSegment(sentence)...)
		} else {
			segments = append(segments, sentence)
		}
	}

	out := segments[:0]
	for _, seg := range segments {
		if trimmed := strings.TrimSpace(seg); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IsHeading reports whether a block of text looks like a heading: short text
// that either matches a numbering pattern or is set noticeably larger than
// the page's average font size.
func (s *Segmenter) IsHeading(text string, fontSize, avgFontSize float64) bool {
	text = strings.TrimSpace(text)
	if text == "" || runeLen(text) >= shortHeadingLength {
		return false
	}

	for _, pattern := range headingPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}

	return avgFontSize > 0 && fontSize > avgFontSize*headingFontRatio
}

func isSentenceEnder(r rune) bool {
	return strings.ContainsRune(sentenceEnders, r)
}

func isSecondaryPunctuation(r rune) bool {
	return strings.ContainsRune(secondaryPunctuation, r)
}

func runeLen(s string) int {
	return len([]rune(s))
}

// Block is a positioned text block supplied by the upstream extractor.
type Block struct {
	// Text is the block's raw text.
	Text string

	// BBox is the block's position on the page.
	BBox model.BBox

	// FontSize is the dominant font size, 0 if unknown.
	FontSize float64

	// Confidence is the OCR confidence, 1.0 for native extraction.
	Confidence float64
}

// ProcessedBlock is a classified block: a heading carrying its full text as
// a single segment, or a paragraph carrying its sentence-level segments.
type ProcessedBlock struct {
	// Text is the original block text, trimmed.
	Text string

	// Segments are the sentence-bounded pieces. A heading has exactly one
	// segment equal to its text.
	Segments []string

	// ContentType is heading or paragraph.
	ContentType model.ContentType

	// BBox is carried through from the input block.
	BBox model.BBox

	// Confidence is carried through from the input block.
	Confidence float64

	// FontSize is carried through from the input block.
	FontSize float64
}

// ProcessBlocks classifies each non-empty block as heading or paragraph and
// segments paragraph text. Order and geometry are preserved; blocks with no
// usable text are skipped.
func (s *Segmenter) ProcessBlocks(blocks []Block, avgFontSize float64) []ProcessedBlock {
	processed := make([]ProcessedBlock, 0, len(blocks))

	for _, block := range blocks {
		text := strings.TrimSpace(block.Text)
		if text == "" {
			continue
		}

		if s.IsHeading(text, block.FontSize, avgFontSize) {
			processed = append(processed, ProcessedBlock{
				Text:        text,
				Segments:    []string{text},
				ContentType: model.ContentHeading,
				BBox:        block.BBox,
				Confidence:  block.Confidence,
				FontSize:    block.FontSize,
			})
			continue
		}

		segments := s.SegmentText(text)
		if len(segments) == 0 {
			continue
		}
		processed = append(processed, ProcessedBlock{
			Text:        text,
			Segments:    segments,
			ContentType: model.ContentParagraph,
			BBox:        block.BBox,
			Confidence:  block.Confidence,
			FontSize:    block.FontSize,
		})
	}

	return processed
}
