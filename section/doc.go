// Package section groups an ordered chunk sequence into heading-delimited
// sections. A heading chunk opens a section; every following non-heading
// chunk belongs to it until the next heading. Chunks appearing before the
// first heading collect into a placeholder-headed preamble section, so every
// chunk always lands in exactly one section.
//
// Rendering follows a light markdown convention: the heading line is
// prefixed "## ", list items "- ", and parts are separated by blank lines.
package section
