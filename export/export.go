package export

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/tsawler/strata/cleaner"
	"github.com/tsawler/strata/section"
)

// Format defines the available export formats.
type Format int

const (
	// FormatJSON exports a single JSON document.
	FormatJSON Format = iota
	// FormatJSONL exports one JSON object per line.
	FormatJSONL
)

// String returns a human-readable representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format.
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatJSONL:
		return ".jsonl"
	default:
		return ".txt"
	}
}

// Config holds export options.
type Config struct {
	// Format selects the output format.
	Format Format

	// PrettyPrint indents JSON output. Ignored for JSONL.
	PrettyPrint bool

	// Now supplies timestamps for document headers. Nil means time.Now.
	Now func() time.Time
}

// DefaultConfig returns pretty-printed JSON output.
func DefaultConfig() Config {
	return Config{Format: FormatJSON, PrettyPrint: true}
}

// ChunksDocument is the durable artifact for a cleaned document's chunks.
type ChunksDocument struct {
	DocName   string          `json:"doc_name"`
	CleanedAt string          `json:"cleaned_at"`
	Stats     cleaner.Stats   `json:"stats"`
	Chunks    []cleaner.Chunk `json:"chunks"`
}

// SectionStats summarizes a sections document.
type SectionStats struct {
	TotalSections       int     `json:"total_sections"`
	TotalChunks         int     `json:"total_chunks"`
	AvgChunksPerSection float64 `json:"avg_chunks_per_section"`
}

// SectionsDocument is the durable artifact for a document's sections.
type SectionsDocument struct {
	DocName   string            `json:"doc_name"`
	CleanedAt string            `json:"cleaned_at"`
	Stats     SectionStats      `json:"stats"`
	Sections  []section.Section `json:"sections"`
}

// Exporter writes result documents in a configured format.
type Exporter struct {
	config Config
}

// New creates an exporter with default configuration.
func New() *Exporter {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an exporter with custom configuration.
func NewWithConfig(config Config) *Exporter {
	return &Exporter{config: config}
}

func (e *Exporter) now() time.Time {
	if e.config.Now != nil {
		return e.config.Now()
	}
	return time.Now()
}

// BuildChunksDocument assembles the chunks artifact for a cleaning result.
func (e *Exporter) BuildChunksDocument(docName string, result cleaner.Result) ChunksDocument {
	return ChunksDocument{
		DocName:   docName,
		CleanedAt: e.now().Format(time.RFC3339),
		Stats:     result.Stats,
		Chunks:    result.Chunks,
	}
}

// BuildSectionsDocument assembles the sections artifact. totalChunks is the
// chunk count of the underlying cleaning result.
func (e *Exporter) BuildSectionsDocument(docName string, sections []section.Section, totalChunks int) SectionsDocument {
	avg := 0.0
	if len(sections) > 0 {
		avg = float64(totalChunks) / float64(len(sections))
	}
	return SectionsDocument{
		DocName:   docName,
		CleanedAt: e.now().Format(time.RFC3339),
		Stats: SectionStats{
			TotalSections:       len(sections),
			TotalChunks:         totalChunks,
			AvgChunksPerSection: avg,
		},
		Sections: sections,
	}
}

// ExportChunks writes the chunks document. JSONL emits one chunk per line
// and omits the document header.
func (e *Exporter) ExportChunks(doc ChunksDocument, w io.Writer) error {
	if e.config.Format == FormatJSONL {
		records := make([]interface{}, len(doc.Chunks))
		for i := range doc.Chunks {
			records[i] = doc.Chunks[i]
		}
		return e.writeLines(records, w)
	}
	return e.writeDocument(doc, w)
}

// ExportSections writes the sections document. JSONL emits one section per
// line and omits the document header.
func (e *Exporter) ExportSections(doc SectionsDocument, w io.Writer) error {
	if e.config.Format == FormatJSONL {
		records := make([]interface{}, len(doc.Sections))
		for i := range doc.Sections {
			records[i] = doc.Sections[i]
		}
		return e.writeLines(records, w)
	}
	return e.writeDocument(doc, w)
}

// ExportAudit writes the cleaning audit trail, one event per line,
// regardless of the configured format.
func (e *Exporter) ExportAudit(events []cleaner.AuditEvent, w io.Writer) error {
	records := make([]interface{}, len(events))
	for i := range events {
		records[i] = events[i]
	}
	return e.writeLines(records, w)
}

// ExportChunksToFile writes the chunks document to a file.
func (e *Exporter) ExportChunksToFile(doc ChunksDocument, filename string) error {
	return e.toFile(filename, func(w io.Writer) error {
		return e.ExportChunks(doc, w)
	})
}

// ExportSectionsToFile writes the sections document to a file.
func (e *Exporter) ExportSectionsToFile(doc SectionsDocument, filename string) error {
	return e.toFile(filename, func(w io.Writer) error {
		return e.ExportSections(doc, w)
	})
}

// ExportChunksToString renders the chunks document to a string.
func (e *Exporter) ExportChunksToString(doc ChunksDocument) (string, error) {
	var buf bytes.Buffer
	if err := e.ExportChunks(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Exporter) toFile(filename string, write func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "closing export file")
}

func (e *Exporter) writeDocument(doc interface{}, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if e.config.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	return errors.Wrap(enc.Encode(doc), "encoding document")
}

func (e *Exporter) writeLines(records []interface{}, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return errors.Wrapf(err, "encoding record %d", i)
		}
	}
	return nil
}
