// Package lang maps language mode identifiers to editor extension bundles.
//
// A bundle carries a chroma-backed syntax highlighter, the indentation unit
// of the language, a keyword completion source and, where one exists, a
// linter. Resolution is pure: the table is immutable and unknown modes
// resolve to the empty extension set.
package lang
