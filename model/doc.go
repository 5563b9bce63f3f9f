// Package model provides the shared data model for document structure
// reconstruction.
//
// This package defines the types exchanged between the reconstruction stages
// and their upstream collaborators. An extraction or OCR pipeline produces
// ordered [Node] values per document; the pathenc, cleaner, and section
// packages consume them and never mutate them.
//
// # Nodes
//
// A [Node] is the atomic extracted unit: text content, a [ContentType]
// classification, a bounding box, the 1-based source page, an OCR confidence
// score, and an optional font size. Nodes arrive in page order and are
// re-sorted internally by (page, top, left) to establish reading order.
//
// # Geometry
//
// [BBox] is a bounding box in page coordinates with the origin at the
// top-left corner, so Top < Bottom for any non-degenerate box. It supports
// union and size calculations used by the merge heuristics.
//
// # Safe defaults
//
// Upstream data is frequently incomplete. [Node.Sanitized] applies the
// recovery policy: missing confidence becomes 1.0, out-of-range confidence
// is clamped, and a degenerate bounding box is given a nominal height so
// that height-based heuristics keep working. No node is ever rejected for
// malformed geometry.
package model
