// Package segment splits raw block text into length-bounded sentence-level
// segments and classifies blocks as headings or body text.
//
// The pipeline implemented by [Segmenter.SegmentText] is: split on terminal
// punctuation (East-Asian sentence enders and newlines), greedily merge
// fragments shorter than the minimum length, then re-split any unit that
// exceeds the maximum length, falling back to secondary punctuation and
// finally a hard cut for pathological run-on sentences.
//
// Lengths are measured in characters (runes), not bytes, because the inputs
// are predominantly CJK text.
//
// [Segmenter.ProcessBlocks] applies heading classification and segmentation
// to an ordered list of extracted blocks, preserving order and geometry.
package segment
