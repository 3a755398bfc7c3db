// Package buffer implements the document model behind the editing engine.
//
// Coordinates are 0-based (Row, Col) where Col counts grapheme clusters.
// Ranges are half-open: [Start, End). Offsets count grapheme clusters from
// the start of the document, with each line break counting as one.
package buffer
