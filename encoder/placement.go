package encoder

// finderPattern is drawn at the three corners, 1 for dark modules.
var finderPattern = [7][7]uint8{
	{1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1},
}

// placeFunctionPatterns draws every pattern that does not depend on data or
// mask and reserves the format and version areas.
func (m *Matrix) placeFunctionPatterns() {
	for _, origin := range m.FinderOrigins() {
		m.placeFinder(origin.Row, origin.Col)
	}
	m.placeSeparators()
	m.placeTiming()
	for _, p := range alignmentPoints(m.version) {
		m.placeAlignment(p.Row, p.Col)
	}
	m.reserveFormat()
	if m.version >= 7 {
		m.reserveVersion()
	}
	// the dark module sits next to the bottom-left separator.
	m.set(m.side-8, 8, newValue(QRType_DARK, true))
}

func (m *Matrix) placeFinder(top, left int) {
	for r := 0; r < 7; r++ {
		for c := 0; c < 7; c++ {
			typ := QRType_FINDER
			if r >= 2 && r <= 4 && c >= 2 && c <= 4 {
				typ = QRType_FINDER_CENTER
			}
			m.set(top+r, left+c, newValue(typ, finderPattern[r][c] == 1))
		}
	}
}

func (m *Matrix) placeSeparators() {
	s := m.side
	for i := 0; i < 8; i++ {
		// top-left
		m.set(7, i, newValue(QRType_SPLITTER, false))
		m.set(i, 7, newValue(QRType_SPLITTER, false))
		// top-right
		m.set(7, s-1-i, newValue(QRType_SPLITTER, false))
		m.set(i, s-8, newValue(QRType_SPLITTER, false))
		// bottom-left
		m.set(s-8, i, newValue(QRType_SPLITTER, false))
		m.set(s-1-i, 7, newValue(QRType_SPLITTER, false))
	}
}

func (m *Matrix) placeTiming() {
	for i := 8; i < m.side-8; i++ {
		dark := i%2 == 0
		m.set(6, i, newValue(QRType_TIMING, dark))
		m.set(i, 6, newValue(QRType_TIMING, dark))
	}
}

// alignmentPoints returns the alignment centers of version that do not
// collide with a finder pattern.
func alignmentPoints(version int) []Point {
	centers := alignmentCenters[version]
	if len(centers) == 0 {
		return nil
	}
	last := centers[len(centers)-1]
	out := make([]Point, 0, len(centers)*len(centers))
	for _, r := range centers {
		for _, c := range centers {
			if (r == 6 && c == 6) || (r == 6 && c == last) || (r == last && c == 6) {
				continue
			}
			out = append(out, Point{Row: r, Col: c})
		}
	}
	return out
}

func (m *Matrix) placeAlignment(row, col int) {
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			ring := max(abs(dr), abs(dc))
			m.set(row+dr, col+dc, newValue(QRType_ALIGNMENT, ring != 1))
		}
	}
}

func (m *Matrix) reserveFormat() {
	s := m.side
	for i := 0; i <= 8; i++ {
		if i != 6 {
			m.set(8, i, newValue(QRType_FORMAT, false))
			m.set(i, 8, newValue(QRType_FORMAT, false))
		}
	}
	for i := 0; i < 8; i++ {
		m.set(8, s-1-i, newValue(QRType_FORMAT, false))
	}
	for i := 0; i < 7; i++ {
		m.set(s-1-i, 8, newValue(QRType_FORMAT, false))
	}
}

func (m *Matrix) reserveVersion() {
	s := m.side
	for i := 0; i < 18; i++ {
		a, b := s-11+i%3, i/3
		m.set(b, a, newValue(QRType_VERSION, false))
		m.set(a, b, newValue(QRType_VERSION, false))
	}
}

// placeData writes codewords in the two-column zig-zag starting at the
// bottom-right corner. Cells left over after the last codeword stay light
// and carry no codeword.
func (m *Matrix) placeData(codewords []byte) {
	s := m.side
	total := len(codewords) * 8
	bit := 0

	for right := s - 1; right >= 1; right -= 2 {
		if right == 6 {
			// the vertical timing pattern owns column 6
			right = 5
		}
		upward := (right+1)&2 == 0
		for vert := 0; vert < s; vert++ {
			row := vert
			if upward {
				row = s - 1 - vert
			}
			for j := 0; j < 2; j++ {
				col := right - j
				if m.at(row, col).Type() != QRType_INIT {
					continue
				}
				dark := false
				idx := m.index(row, col)
				if bit < total {
					dark = codewords[bit>>3]>>(7-uint(bit&7))&1 == 1
					m.codeword[idx] = int32(bit >> 3)
					bit++
				}
				m.cells[idx] = newValue(QRType_DATA, dark)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
