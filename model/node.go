package model

// ContentType classifies a node's role in the source document.
type ContentType string

const (
	// ContentHeading marks a node the upstream extractor classified as a heading.
	ContentHeading ContentType = "heading"
	// ContentParagraph marks ordinary body text.
	ContentParagraph ContentType = "paragraph"
	// ContentTable marks a flattened table rendering.
	ContentTable ContentType = "table"
	// ContentPageRawText marks the full-page text backup node emitted by the
	// extractor for audit purposes. It duplicates the page's other nodes.
	ContentPageRawText ContentType = "page_raw_text"
	// ContentListItem marks a list item.
	ContentListItem ContentType = "list_item"
)

// ConfidenceUnknown is the sentinel for a missing OCR confidence score.
// Sanitized replaces it with 1.0 (native extraction is trusted).
const ConfidenceUnknown = -1.0

// DefaultBBoxHeight is the nominal height assigned to nodes whose bounding
// box is missing or degenerate, keeping height-ratio heuristics defined.
const DefaultBBoxHeight = 10.0

// Node is the atomic extracted unit produced by an upstream parser or OCR
// engine. Nodes are immutable inputs; the reconstruction stages never modify
// them in place.
type Node struct {
	// Content is the extracted text.
	Content string `json:"content"`

	// ContentType is the upstream classification of this node.
	ContentType ContentType `json:"content_type"`

	// BBox is the node's position on the page.
	BBox BBox `json:"bbox"`

	// SourcePage is the 1-based page number the node came from.
	SourcePage int `json:"source_page"`

	// Confidence is the OCR confidence in [0, 1]. Natively extracted text
	// carries 1.0. ConfidenceUnknown (-1) means the score is missing.
	Confidence float64 `json:"ocr_confidence"`

	// FontSize is the dominant font size in points, 0 if unknown.
	FontSize float64 `json:"font_size,omitempty"`
}

// Sanitized returns a copy of the node with the recovery policy applied:
// a missing confidence becomes 1.0, an out-of-range confidence is clamped
// into [0, 1], and a degenerate bounding box is stretched to
// DefaultBBoxHeight so height-based heuristics stay meaningful.
func (n Node) Sanitized() Node {
	switch {
	case n.Confidence < 0:
		n.Confidence = 1.0
	case n.Confidence > 1:
		n.Confidence = 1.0
	}
	if n.BBox.Height() <= 0 {
		n.BBox.Bottom = n.BBox.Top + DefaultBBoxHeight
	}
	return n
}

// IsHeading reports whether the upstream extractor classified the node as a
// heading.
func (n Node) IsHeading() bool {
	return n.ContentType == ContentHeading
}
