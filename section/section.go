package section

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/strata/cleaner"
	"github.com/tsawler/strata/model"
)

// DefaultPreambleHeading is the heading text assigned to content that
// appears before the first heading in a document.
const DefaultPreambleHeading = "(document preamble)"

// Config controls section aggregation.
type Config struct {
	// PreambleHeading replaces the heading text for a leading section with
	// no heading chunk. Empty means DefaultPreambleHeading.
	PreambleHeading string

	// Logger receives a summary entry per aggregated document. Nil
	// disables logging.
	Logger logrus.FieldLogger
}

// PageRange is the inclusive first/last page span of a section.
type PageRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Section is a heading chunk together with the non-heading chunks that
// follow it, rendered into a single content string.
type Section struct {
	// Heading is the heading chunk's content, or the preamble placeholder.
	Heading string `json:"heading"`

	// Content is the rendered section text: the "## " heading line when a
	// heading chunk exists, then each content chunk, list items prefixed
	// "- ", separated by blank lines.
	Content string `json:"content"`

	// SourcePages is the sorted union of pages of all member chunks,
	// heading included.
	SourcePages []int `json:"source_pages"`

	// PageRange spans SourcePages. Zero for an empty page set.
	PageRange PageRange `json:"page_range"`

	// ChunkCount is the number of content chunks, heading excluded.
	ChunkCount int `json:"chunk_count"`

	// ChunkTypes counts content chunks per type.
	ChunkTypes map[model.ContentType]int `json:"chunk_types"`

	// HeadingChunkID is the id of the heading chunk, or 0 for a preamble
	// section. Chunk ids start at 1.
	HeadingChunkID int `json:"heading_chunk_id"`

	// ContentChunkIDs lists the ids of the content chunks in order.
	ContentChunkIDs []int `json:"content_chunk_ids"`
}

// Aggregator groups chunks into sections. The zero value is not usable;
// construct with New or NewWithConfig.
type Aggregator struct {
	preamble string
	logger   logrus.FieldLogger
}

// New returns an aggregator with the default preamble heading and no
// logging.
func New() *Aggregator {
	return NewWithConfig(Config{})
}

// NewWithConfig returns an aggregator using the supplied settings.
func NewWithConfig(cfg Config) *Aggregator {
	preamble := cfg.PreambleHeading
	if preamble == "" {
		preamble = DefaultPreambleHeading
	}
	return &Aggregator{preamble: preamble, logger: cfg.Logger}
}

// openSection accumulates chunks between two headings.
type openSection struct {
	heading *cleaner.Chunk
	content []cleaner.Chunk
}

// Aggregate scans chunks in order and returns the heading-delimited
// sections. Every chunk is assigned to exactly one section; a document with
// no headings yields a single preamble section.
func (a *Aggregator) Aggregate(chunks []cleaner.Chunk) []Section {
	var sections []Section
	var open *openSection

	for i := range chunks {
		chunk := chunks[i]
		if chunk.IsHeading() {
			if open != nil {
				sections = append(sections, a.finalize(open))
			}
			heading := chunk
			open = &openSection{heading: &heading}
			continue
		}
		if open == nil {
			open = &openSection{}
		}
		open.content = append(open.content, chunk)
	}
	if open != nil {
		sections = append(sections, a.finalize(open))
	}

	if a.logger != nil {
		a.logger.WithFields(logrus.Fields{
			"chunks":   len(chunks),
			"sections": len(sections),
		}).Info("sections aggregated")
	}
	return sections
}

func (a *Aggregator) finalize(open *openSection) Section {
	sec := Section{
		Heading:         a.preamble,
		ChunkCount:      len(open.content),
		ChunkTypes:      make(map[model.ContentType]int),
		ContentChunkIDs: make([]int, 0, len(open.content)),
	}

	var parts []string
	if open.heading != nil {
		sec.Heading = open.heading.Content
		sec.HeadingChunkID = open.heading.ID
		parts = append(parts, "## "+open.heading.Content)
	}

	pages := make(map[int]struct{})
	if open.heading != nil {
		for _, p := range open.heading.SourcePages {
			pages[p] = struct{}{}
		}
	}
	for _, chunk := range open.content {
		text := strings.TrimSpace(chunk.Content)
		if chunk.Type == model.ContentListItem {
			text = "- " + text
		}
		parts = append(parts, text)

		sec.ChunkTypes[chunk.Type]++
		sec.ContentChunkIDs = append(sec.ContentChunkIDs, chunk.ID)
		for _, p := range chunk.SourcePages {
			pages[p] = struct{}{}
		}
	}

	sec.Content = strings.Join(parts, "\n\n")
	sec.SourcePages = sortedPages(pages)
	if n := len(sec.SourcePages); n > 0 {
		sec.PageRange = PageRange{First: sec.SourcePages[0], Last: sec.SourcePages[n-1]}
	}
	return sec
}

func sortedPages(set map[int]struct{}) []int {
	pages := make([]int, 0, len(set))
	for p := range set {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}
