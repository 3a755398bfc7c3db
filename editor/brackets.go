package editor

import "github.com/iw2rmb/codefield/buffer"

// bracketScanLimit bounds how many clusters a match search visits.
const bracketScanLimit = 20000

var bracketPairs = map[string]string{"(": ")", "[": "]", "{": "}"}

var closingBrackets = map[string]string{")": "(", "]": "[", "}": "{"}

// MatchingBracket returns the bracket next to the cursor and its partner.
// The cluster before the cursor is tried first.
func (v *View) MatchingBracket() (at, match buffer.Pos, ok bool) {
	cur := v.buf.Cursor()
	line := v.buf.Clusters(cur.Row)
	for _, col := range []int{cur.Col - 1, cur.Col} {
		if col < 0 || col >= len(line) {
			continue
		}
		p := buffer.Pos{Row: cur.Row, Col: col}
		if m, found := v.scanBracket(p, line[col]); found {
			return p, m, true
		}
	}
	return buffer.Pos{}, buffer.Pos{}, false
}

func (v *View) scanBracket(p buffer.Pos, open string) (buffer.Pos, bool) {
	if want, ok := bracketPairs[open]; ok {
		return v.scan(p, open, want, 1)
	}
	if want, ok := closingBrackets[open]; ok {
		return v.scan(p, open, want, -1)
	}
	return buffer.Pos{}, false
}

func (v *View) scan(p buffer.Pos, self, want string, dir int) (buffer.Pos, bool) {
	depth := 0
	row, col := p.Row, p.Col
	line := v.buf.Clusters(row)
	for steps := 0; steps < bracketScanLimit; steps++ {
		col += dir
		for col < 0 || col >= len(line) {
			row += dir
			if row < 0 || row >= v.buf.LineCount() {
				return buffer.Pos{}, false
			}
			line = v.buf.Clusters(row)
			if dir > 0 {
				col = 0
			} else {
				col = len(line) - 1
			}
			if len(line) > 0 {
				break
			}
		}
		if col < 0 || col >= len(line) {
			continue
		}
		switch line[col] {
		case self:
			depth++
		case want:
			if depth == 0 {
				return buffer.Pos{Row: row, Col: col}, true
			}
			depth--
		}
	}
	return buffer.Pos{}, false
}
