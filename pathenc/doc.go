// Package pathenc assigns hierarchical dotted path identifiers to document
// nodes based on detected numbering style.
//
// An [Encoder] is a per-document state machine. As headings are detected it
// tracks the current numbering stack; content without explicit numbering
// receives an auto-block path under the innermost open section:
//
//	enc := pathenc.NewEncoder("doc-1")
//	numbering, level, ok := enc.DetectHeadingLevel("1.1 范围", 14, 12)
//	path := enc.BuildPath(numbering, level) // "001.001"
//	enc.ResetForNewSection(level)
//	body := enc.AddBlockPath() // "001.001.blk.001"
//
// Numbering styles are tried in priority order: numeric dotted prefixes,
// Chinese chapter markers (第X章 and friends, with Chinese numeral
// conversion), appendix/table/figure prefixes resolved through a
// [NumberingMap], parenthesized enumerations, and finally a font-size
// fallback for short unnumbered headings.
//
// Detection never fails: unparseable numerals default to 1 and malformed
// tokens pass through the path literally.
package pathenc
