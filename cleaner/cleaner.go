package cleaner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/width"

	"github.com/tsawler/strata/model"
)

// Config holds the cleaning thresholds and rule tables.
type Config struct {
	// ConfidenceThreshold drops OCR nodes scoring below it. Default: 0.1.
	ConfidenceThreshold float64

	// ShortLineThreshold is the character count at or under which an
	// unterminated line reads as a heading. Default: 20.
	ShortLineThreshold int

	// HeightRatioThreshold is the bbox-height multiple over the document
	// average that signals a heading-sized line. Default: 1.3.
	HeightRatioThreshold float64

	// MinGapThreshold is the vertical gap, in page units, that forces a
	// chunk boundary. Default: 15.0.
	MinGapThreshold float64

	// Rules are the pattern tables. Zero value means DefaultRuleSet.
	Rules RuleSet

	// Logger, when set, receives every audit event as a structured debug
	// entry. The audit trail is collected on the Result either way.
	Logger logrus.FieldLogger
}

// DefaultConfig returns the standard thresholds and rule tables.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold:  0.1,
		ShortLineThreshold:   20,
		HeightRatioThreshold: 1.3,
		MinGapThreshold:      15.0,
		Rules:                DefaultRuleSet(),
	}
}

// Cleaner filters a document's node stream and merges it into chunks. A
// Cleaner is stateless across documents and safe to reuse sequentially;
// concurrent documents should use separate Clean calls (the scan itself is
// strictly sequential by design).
type Cleaner struct {
	config Config
	rules  *compiledRules
}

// New creates a cleaner with the default configuration.
func New() *Cleaner {
	c, err := NewWithConfig(DefaultConfig())
	if err != nil {
		// The default rule set always compiles.
		panic(err)
	}
	return c
}

// NewWithConfig creates a cleaner with custom thresholds and rules. It
// returns an error if a configured pattern does not compile.
func NewWithConfig(cfg Config) (*Cleaner, error) {
	if cfg.Rules.Version == "" && len(cfg.Rules.NumberingPatterns) == 0 {
		cfg.Rules = DefaultRuleSet()
	}
	rules, err := compileRules(cfg.Rules)
	if err != nil {
		return nil, err
	}
	return &Cleaner{config: cfg, rules: rules}, nil
}

// breakRule is one entry of the boundary-decision chain. Rules are evaluated
// in slice order and the first one that fires wins.
type breakRule struct {
	reason ReasonCode
	eval   func(c *Cleaner, open *openChunk, node model.Node, avgHeight float64) (detail string, fired bool)
}

var breakRules = []breakRule{
	{ReasonHeading, (*Cleaner).headingSignal},
	{ReasonListStart, (*Cleaner).listStartSignal},
	{ReasonLargeGap, (*Cleaner).largeGapSignal},
	{ReasonSentenceEnd, (*Cleaner).sentenceEndSignal},
}

// BreakRuleOrder exposes the fixed priority order of the boundary rules.
// The order is part of the cleaner's contract.
func BreakRuleOrder() []ReasonCode {
	order := make([]ReasonCode, len(breakRules))
	for i, r := range breakRules {
		order[i] = r.reason
	}
	return order
}

// openChunk is the accumulator for the chunk currently being built.
type openChunk struct {
	members []model.Node
	typ     model.ContentType
	last    model.Node
}

// Clean runs the full pass over one document's nodes: filter, sort into
// reading order, and merge into chunks. It never fails; malformed input
// degrades to plain paragraphs.
func (c *Cleaner) Clean(nodes []model.Node) *Result {
	audit := &auditLog{logger: c.config.Logger}

	survivors, dropped := c.filter(nodes, audit)

	sort.SliceStable(survivors, func(i, j int) bool {
		a, b := survivors[i], survivors[j]
		if a.SourcePage != b.SourcePage {
			return a.SourcePage < b.SourcePage
		}
		if a.BBox.Top != b.BBox.Top {
			return a.BBox.Top < b.BBox.Top
		}
		return a.BBox.Left < b.BBox.Left
	})

	avgHeight := averageHeight(survivors)

	var chunks []Chunk
	var open *openChunk

	finalize := func(reason ReasonCode, detail string, trigger model.Node) {
		if open == nil || len(open.members) == 0 {
			return
		}
		chunk := mergeNodes(open.members, c.rules)
		chunk.ID = len(chunks) + 1
		chunks = append(chunks, chunk)
		audit.record(AuditEvent{
			Kind:    EventBreak,
			Reason:  reason,
			Detail:  detail,
			Page:    trigger.SourcePage,
			Preview: preview(strings.TrimSpace(trigger.Content)),
			ChunkID: chunk.ID,
		})
		open = nil
	}

	for _, node := range survivors {
		if open != nil {
			if reason, detail, fired := c.shouldBreak(open, node, avgHeight); fired {
				finalize(reason, detail, node)
			}
		}
		if open == nil {
			open = &openChunk{typ: chunkType(node, c.rules)}
		}
		open.members = append(open.members, node)
		open.last = node
	}
	if open != nil && len(open.members) > 0 {
		finalize(ReasonEndOfDocument, "", open.last)
	}

	return &Result{
		Chunks: chunks,
		Stats:  buildStats(chunks, len(survivors), dropped),
		Audit:  audit.events,
	}
}

// filter applies the drop stage: page_raw_text duplicates, low-confidence
// OCR, footer/header noise, and empty content. Nodes pass through
// Sanitized() so later stages see safe defaults.
func (c *Cleaner) filter(nodes []model.Node, audit *auditLog) (survivors []model.Node, dropped int) {
	survivors = make([]model.Node, 0, len(nodes))

	for _, raw := range nodes {
		node := raw.Sanitized()
		text := strings.TrimSpace(node.Content)

		if node.ContentType == model.ContentPageRawText {
			audit.record(AuditEvent{
				Kind:    EventDrop,
				Reason:  ReasonPageRawText,
				Page:    node.SourcePage,
				Preview: preview(text),
			})
			continue
		}

		if node.Confidence < c.config.ConfidenceThreshold {
			dropped++
			audit.record(AuditEvent{
				Kind:    EventDrop,
				Reason:  ReasonLowConfidence,
				Detail:  fmt.Sprintf("confidence=%.3f", node.Confidence),
				Page:    node.SourcePage,
				Preview: preview(text),
			})
			continue
		}

		if pattern, ok := matchFirst(c.rules.footer, foldWidth(text)); ok {
			dropped++
			audit.record(AuditEvent{
				Kind:    EventDrop,
				Reason:  ReasonFooterNoise,
				Detail:  fmt.Sprintf("pattern=%s", pattern),
				Page:    node.SourcePage,
				Preview: preview(text),
			})
			continue
		}

		// Whitespace-only nodes are skipped silently.
		if text == "" {
			continue
		}

		survivors = append(survivors, node)
	}

	return survivors, dropped
}

// shouldBreak evaluates the boundary rules in fixed priority order.
func (c *Cleaner) shouldBreak(open *openChunk, node model.Node, avgHeight float64) (ReasonCode, string, bool) {
	for _, rule := range breakRules {
		if detail, fired := rule.eval(c, open, node, avgHeight); fired {
			return rule.reason, detail, true
		}
	}
	return "", "", false
}

// headingSignal fires when the node reads as a heading: upstream
// classification, a domain keyword, a numbering style, a short line with no
// sentence terminal, or a line noticeably taller than the document average.
func (c *Cleaner) headingSignal(_ *openChunk, node model.Node, avgHeight float64) (string, bool) {
	text := strings.TrimSpace(node.Content)
	if text == "" {
		return "", false
	}

	if node.IsHeading() {
		return "content_type=heading", true
	}

	if kw, ok := c.rules.hasHeadingKeyword(text); ok {
		return "keyword=" + kw, true
	}

	if pattern, ok := matchFirst(c.rules.numbering, foldWidth(text)); ok {
		return "numbering=" + pattern, true
	}

	if length := len([]rune(text)); length <= c.config.ShortLineThreshold {
		if !c.rules.endsWithTerminal(text) {
			return fmt.Sprintf("short_line(len=%d)", length), true
		}
	}

	if avgHeight > 0 {
		if ratio := node.BBox.Height() / avgHeight; ratio >= c.config.HeightRatioThreshold {
			return fmt.Sprintf("height_ratio(%.1f vs avg %.1f)", node.BBox.Height(), avgHeight), true
		}
	}

	return "", false
}

// listStartSignal fires when a list marker opens and the current chunk is
// not already a list.
func (c *Cleaner) listStartSignal(open *openChunk, node model.Node, _ float64) (string, bool) {
	text := strings.TrimSpace(node.Content)
	pattern, ok := matchFirst(c.rules.listPrefix, foldWidth(text))
	if !ok {
		return "", false
	}
	if open.typ == model.ContentListItem {
		return "", false
	}
	return "prefix=" + pattern, true
}

// largeGapSignal fires when the vertical gap to the previous node exceeds
// the configured threshold.
func (c *Cleaner) largeGapSignal(open *openChunk, node model.Node, _ float64) (string, bool) {
	if node.SourcePage != open.last.SourcePage {
		return "", false
	}
	gap := node.BBox.Top - open.last.BBox.Bottom
	if gap < c.config.MinGapThreshold {
		return "", false
	}
	return fmt.Sprintf("gap=%.1f", gap), true
}

// sentenceEndSignal fires when the previous node completed a sentence and
// the current one does not continue it.
func (c *Cleaner) sentenceEndSignal(open *openChunk, node model.Node, _ float64) (string, bool) {
	last := strings.TrimSpace(open.last.Content)
	if last == "" || !c.rules.endsWithTerminal(last) {
		return "", false
	}
	if c.rules.startsWithConnective(strings.TrimSpace(node.Content)) {
		return "", false
	}
	return "", true
}

// averageHeight computes the document-wide mean bounding-box height used as
// the heading baseline.
func averageHeight(nodes []model.Node) float64 {
	if len(nodes) == 0 {
		return model.DefaultBBoxHeight
	}
	var sum float64
	for _, n := range nodes {
		sum += n.BBox.Height()
	}
	return sum / float64(len(nodes))
}

// buildStats aggregates run statistics from the emitted chunks.
func buildStats(chunks []Chunk, totalNodes, dropped int) Stats {
	stats := Stats{
		TotalNodes:   totalNodes,
		DroppedNodes: dropped,
		TotalChunks:  len(chunks),
		ChunkTypes: map[model.ContentType]int{
			model.ContentHeading:   0,
			model.ContentParagraph: 0,
			model.ContentListItem:  0,
		},
	}

	var totalLength int
	for _, chunk := range chunks {
		stats.ChunkTypes[chunk.Type]++
		totalLength += chunk.Length()
	}
	if len(chunks) > 0 {
		stats.AvgChunkLength = float64(totalLength) / float64(len(chunks))
	}

	return stats
}

// foldWidth maps fullwidth ASCII variants to their narrow forms before
// pattern matching, so OCR output like "１.２" still matches the numbering
// tables. Stored content is never folded.
func foldWidth(s string) string {
	return width.Fold.String(s)
}
