// Package strata reconstructs hierarchical document structure from the noisy
// page-level content produced by an upstream extraction or OCR pipeline. It
// assigns a stable hierarchical path to every content node, filters and
// merges the node stream into coherent chunks, and groups those chunks into
// heading-delimited sections.
//
// Basic usage:
//
//	p, err := strata.New()
//	if err != nil {
//	    // handle error
//	}
//	doc := p.Process(pages)
//	for _, sec := range doc.Sections {
//	    fmt.Println(sec.Heading)
//	}
//
// The lower-level packages pathenc, segment, cleaner, and section are also
// available for use on their own.
package strata

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/strata/cleaner"
	"github.com/tsawler/strata/model"
	"github.com/tsawler/strata/pathenc"
	"github.com/tsawler/strata/section"
	"github.com/tsawler/strata/segment"
)

// DefaultFontSize stands in for pages whose blocks carry no font
// information.
const DefaultFontSize = 12.0

// Config assembles the settings of every processing stage.
type Config struct {
	// DocID identifies the document in paths and exported records. Empty
	// means a random UUID.
	DocID string

	// Source is an optional origin reference (file path, URL) carried on
	// every node.
	Source string

	// Segmenter configures sentence segmentation.
	Segmenter segment.Config

	// Cleaner configures noise filtering and chunk merging.
	Cleaner cleaner.Config

	// Numbering overrides the prefix table used for heading detection.
	// Zero value means the default table.
	Numbering pathenc.NumberingMap

	// PreambleHeading overrides the heading text of a leading section with
	// no heading chunk.
	PreambleHeading string

	// Logger receives per-document processing summaries. Nil disables
	// logging.
	Logger logrus.FieldLogger
}

// DefaultConfig returns the standard settings for all stages.
func DefaultConfig() Config {
	return Config{
		Segmenter: segment.DefaultConfig(),
		Cleaner:   cleaner.DefaultConfig(),
		Numbering: pathenc.DefaultNumberingMap(),
	}
}

// Table is one extracted table, as rows of cell text.
type Table struct {
	Rows [][]string
	BBox model.BBox
}

// Page is the per-page input to Process: the raw page text backup, the
// layout blocks, and any extracted tables.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Width and Height are the page dimensions, used as the bounding box
	// of the raw-text backup node.
	Width  float64
	Height float64

	// RawText is the full page text, kept as a backup node for audit and
	// recovery. Empty means no backup node.
	RawText string

	// Blocks are the page's layout text blocks in reading order.
	Blocks []segment.Block

	// Tables are the page's extracted tables.
	Tables []Table
}

// EncodedNode is a content node with its hierarchical path assigned.
type EncodedNode struct {
	model.Node

	DocID      string `json:"doc_id"`
	Source     string `json:"source,omitempty"`
	Path       string `json:"path"`
	ParentPath string `json:"parent_path,omitempty"`
}

// DocumentStats summarizes one processed document.
type DocumentStats struct {
	Pages    int           `json:"pages"`
	Nodes    int           `json:"nodes"`
	Sections int           `json:"sections"`
	Cleaning cleaner.Stats `json:"cleaning"`
}

// Document is the full output of Process: the path-encoded node stream and
// the chunk/section view of the same content.
type Document struct {
	DocID    string            `json:"doc_id"`
	Nodes    []EncodedNode     `json:"nodes"`
	Chunks   []cleaner.Chunk   `json:"chunks"`
	Sections []section.Section `json:"sections"`
	Stats    DocumentStats     `json:"stats"`
	Audit    []cleaner.AuditEvent
}

// Processor runs the full reconstruction pipeline for one document at a
// time. It is safe to reuse across documents; path-encoder state is created
// per Process call.
type Processor struct {
	config     Config
	segmenter  *segment.Segmenter
	cleaner    *cleaner.Cleaner
	aggregator *section.Aggregator
}

// New creates a processor with default configuration.
func New() (*Processor, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a processor with custom configuration. It fails if
// the cleaner's rule set contains an invalid pattern.
func NewWithConfig(cfg Config) (*Processor, error) {
	if cfg.Cleaner.ConfidenceThreshold == 0 && cfg.Cleaner.ShortLineThreshold == 0 &&
		cfg.Cleaner.HeightRatioThreshold == 0 && cfg.Cleaner.MinGapThreshold == 0 {
		def := cleaner.DefaultConfig()
		cfg.Cleaner.ConfidenceThreshold = def.ConfidenceThreshold
		cfg.Cleaner.ShortLineThreshold = def.ShortLineThreshold
		cfg.Cleaner.HeightRatioThreshold = def.HeightRatioThreshold
		cfg.Cleaner.MinGapThreshold = def.MinGapThreshold
	}
	if cfg.Cleaner.Logger == nil {
		cfg.Cleaner.Logger = cfg.Logger
	}
	cl, err := cleaner.NewWithConfig(cfg.Cleaner)
	if err != nil {
		return nil, err
	}
	return &Processor{
		config:    cfg,
		segmenter: segment.NewWithConfig(cfg.Segmenter),
		cleaner:   cl,
		aggregator: section.NewWithConfig(section.Config{
			PreambleHeading: cfg.PreambleHeading,
			Logger:          cfg.Logger,
		}),
	}, nil
}

// Process runs the pipeline over one document's pages: path encoding per
// node, then cleaning into chunks, then section aggregation.
func (p *Processor) Process(pages []Page) *Document {
	docID := p.config.DocID
	if docID == "" {
		docID = uuid.NewString()
	}

	enc := pathenc.NewEncoderWithMap(docID, numberingOrDefault(p.config.Numbering))

	var nodes []EncodedNode
	for _, page := range pages {
		nodes = append(nodes, p.encodePage(enc, page)...)
	}

	modelNodes := make([]model.Node, len(nodes))
	for i, n := range nodes {
		modelNodes[i] = n.Node
	}

	result := p.cleaner.Clean(modelNodes)
	sections := p.aggregator.Aggregate(result.Chunks)

	doc := &Document{
		DocID:    docID,
		Nodes:    nodes,
		Chunks:   result.Chunks,
		Sections: sections,
		Stats: DocumentStats{
			Pages:    len(pages),
			Nodes:    len(nodes),
			Sections: len(sections),
			Cleaning: result.Stats,
		},
		Audit: result.Audit,
	}

	if p.config.Logger != nil {
		p.config.Logger.WithFields(logrus.Fields{
			"doc_id":   docID,
			"pages":    len(pages),
			"nodes":    len(nodes),
			"chunks":   len(result.Chunks),
			"sections": len(sections),
		}).Info("document processed")
	}
	return doc
}

// encodePage turns one page into path-encoded nodes: the raw-text backup,
// the tables, then the segmented blocks.
func (p *Processor) encodePage(enc *pathenc.Encoder, page Page) []EncodedNode {
	var nodes []EncodedNode

	if strings.TrimSpace(page.RawText) != "" {
		nodes = append(nodes, p.newNode(enc, enc.AddBlockPath(), model.Node{
			Content:     page.RawText,
			ContentType: model.ContentPageRawText,
			BBox:        model.NewBBox(0, 0, page.Width, page.Height),
			SourcePage:  page.Number,
			Confidence:  1.0,
		}))
	}

	for _, table := range page.Tables {
		content := FormatTable(table.Rows)
		if content == "" {
			continue
		}
		nodes = append(nodes, p.newNode(enc, enc.AddBlockPath(), model.Node{
			Content:     content,
			ContentType: model.ContentTable,
			BBox:        table.BBox,
			SourcePage:  page.Number,
			Confidence:  1.0,
		}))
	}

	avgFont := averageFontSize(page.Blocks)
	for _, block := range p.segmenter.ProcessBlocks(page.Blocks, avgFont) {
		if block.ContentType == model.ContentHeading {
			nodes = append(nodes, p.encodeHeading(enc, block, page.Number, avgFont))
			continue
		}
		for _, seg := range block.Segments {
			if strings.TrimSpace(seg) == "" {
				continue
			}
			nodes = append(nodes, p.newNode(enc, enc.AddBlockPath(), model.Node{
				Content:     seg,
				ContentType: model.ContentParagraph,
				BBox:        block.BBox,
				SourcePage:  page.Number,
				Confidence:  block.Confidence,
				FontSize:    block.FontSize,
			}))
		}
	}
	return nodes
}

// encodeHeading assigns a numbered path when the heading carries a
// recognizable numbering, resetting the section state below its level.
func (p *Processor) encodeHeading(enc *pathenc.Encoder, block segment.ProcessedBlock, pageNum int, avgFont float64) EncodedNode {
	text := block.Text
	if len(block.Segments) > 0 {
		text = block.Segments[0]
	}

	var path string
	if numbering, level, ok := enc.DetectHeadingLevel(text, block.FontSize, avgFont); ok {
		path = enc.BuildPath(numbering, level)
		if level > 0 {
			enc.ResetForNewSection(level)
		}
	} else {
		path = enc.AddBlockPath()
	}

	return p.newNode(enc, path, model.Node{
		Content:     text,
		ContentType: model.ContentHeading,
		BBox:        block.BBox,
		SourcePage:  pageNum,
		Confidence:  block.Confidence,
		FontSize:    block.FontSize,
	})
}

func (p *Processor) newNode(enc *pathenc.Encoder, path string, n model.Node) EncodedNode {
	parent, _ := pathenc.ParentPath(path)
	return EncodedNode{
		Node:       n,
		DocID:      enc.DocID(),
		Source:     p.config.Source,
		Path:       path,
		ParentPath: parent,
	}
}

// FormatTable renders table rows as pipe-separated lines.
func FormatTable(rows [][]string) string {
	var lines []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.TrimSpace(cell)
		}
		lines = append(lines, strings.Join(cells, " | "))
	}
	return strings.Join(lines, "\n")
}

// averageFontSize is the mean over blocks that carry a font size.
func averageFontSize(blocks []segment.Block) float64 {
	var sum float64
	var count int
	for _, b := range blocks {
		if b.FontSize > 0 {
			sum += b.FontSize
			count++
		}
	}
	if count == 0 {
		return DefaultFontSize
	}
	return sum / float64(count)
}

// versionRe matches a dotted version, optionally V-prefixed, in a filename.
var versionRe = regexp.MustCompile(`V?\d+\.\d+\.\d+`)

// DocIDFromSource derives a document id from a source filename: the base
// name joined with the detected version, spaces replaced with underscores.
// Files without a version get "v1.0.0".
func DocIDFromSource(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	version := "v1.0.0"
	if m := versionRe.FindString(filepath.Base(filename)); m != "" {
		version = strings.Replace(m, "V", "v", 1)
	}
	return strings.ReplaceAll(base+"_"+version, " ", "_")
}

// numberingOrDefault falls back to the standard prefix table when no
// entries were configured.
func numberingOrDefault(m pathenc.NumberingMap) pathenc.NumberingMap {
	if len(m.Entries) == 0 {
		return pathenc.DefaultNumberingMap()
	}
	return m
}
