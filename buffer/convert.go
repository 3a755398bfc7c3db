package buffer

// Len returns the document length in offset units: grapheme clusters plus
// one per line break.
func (b *Buffer) Len() int {
	n := len(b.lines) - 1
	for _, line := range b.lines {
		n += len(line)
	}
	return n
}

// OffsetFromPos converts p, clamped into the document, to an offset.
func (b *Buffer) OffsetFromPos(p Pos) int {
	p = b.clampPos(p)
	off := p.Col
	for row := 0; row < p.Row; row++ {
		off += len(b.lines[row]) + 1
	}
	return off
}

// PosFromOffset converts off, clamped to [0, Len()], to a position.
func (b *Buffer) PosFromOffset(off int) Pos {
	if off <= 0 {
		return Pos{}
	}
	for row, line := range b.lines {
		if off <= len(line) {
			return Pos{Row: row, Col: off}
		}
		off -= len(line) + 1
	}
	last := len(b.lines) - 1
	return Pos{Row: last, Col: len(b.lines[last])}
}

// RangeFromOffsets converts a [from, to) offset pair to a normalized Range.
func (b *Buffer) RangeFromOffsets(from, to int) Range {
	return NormalizeRange(Range{Start: b.PosFromOffset(from), End: b.PosFromOffset(to)})
}
