package encoder

// maskFunc reports whether the module at (row, col) flips under a mask.
type maskFunc func(row, col int) bool

var masks = [8]maskFunc{
	func(i, j int) bool { return (i+j)%2 == 0 },
	func(i, _ int) bool { return i%2 == 0 },
	func(_, j int) bool { return j%3 == 0 },
	func(i, j int) bool { return (i+j)%3 == 0 },
	func(i, j int) bool { return (i/2+j/3)%2 == 0 },
	func(i, j int) bool { return (i*j)%2+(i*j)%3 == 0 },
	func(i, j int) bool { return ((i*j)%2+(i*j)%3)%2 == 0 },
	func(i, j int) bool { return ((i+j)%2+(i*j)%3)%2 == 0 },
}

// applyMask returns a copy of m with mask id XORed onto data modules and the
// matching format information written.
func (m *Matrix) applyMask(id int) *Matrix {
	out := m.copy()
	fn := masks[id]
	for row := 0; row < out.side; row++ {
		for col := 0; col < out.side; col++ {
			v := out.at(row, col)
			if v.Type() != QRType_DATA {
				continue
			}
			out.set(row, col, v.xor(fn(row, col)))
		}
	}
	out.mask = id
	out.writeFormat()
	if out.version >= 7 {
		out.writeVersion()
	}
	return out
}

// selectMask evaluates every mask and keeps the one with the lowest
// penalty, the lower id winning ties.
func (m *Matrix) selectMask() *Matrix {
	var (
		best      *Matrix
		bestScore = -1
	)
	for id := range masks {
		candidate := m.applyMask(id)
		score := candidate.penalty()
		if bestScore < 0 || score < bestScore {
			best, bestScore = candidate, score
		}
	}
	return best
}

const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// penalty scores the matrix with the four evaluation rules.
func (m *Matrix) penalty() int {
	return m.penaltyRuns() + m.penaltyBlocks() + m.penaltyFinderLike() + m.penaltyBalance()
}

// penaltyRuns is rule 1: five or more same colored modules in a line.
func (m *Matrix) penaltyRuns() int {
	score := 0
	for i := 0; i < m.side; i++ {
		for _, horizontal := range []bool{true, false} {
			run := 0
			var last bool
			for j := 0; j < m.side; j++ {
				var dark bool
				if horizontal {
					dark = m.Dark(i, j)
				} else {
					dark = m.Dark(j, i)
				}
				if j > 0 && dark == last {
					run++
					continue
				}
				if run >= 5 {
					score += penaltyN1 + run - 5
				}
				run, last = 1, dark
			}
			if run >= 5 {
				score += penaltyN1 + run - 5
			}
		}
	}
	return score
}

// penaltyBlocks is rule 2: every 2x2 block of one color.
func (m *Matrix) penaltyBlocks() int {
	score := 0
	for r := 0; r < m.side-1; r++ {
		for c := 0; c < m.side-1; c++ {
			v := m.Dark(r, c)
			if v == m.Dark(r, c+1) && v == m.Dark(r+1, c) && v == m.Dark(r+1, c+1) {
				score += penaltyN2
			}
		}
	}
	return score
}

var finderLike = [2][11]bool{
	{true, false, true, true, true, false, true, false, false, false, false},
	{false, false, false, false, true, false, true, true, true, false, true},
}

// penaltyFinderLike is rule 3: 1:1:3:1:1 runs bordered by four light
// modules on either side.
func (m *Matrix) penaltyFinderLike() int {
	score := 0
	for i := 0; i < m.side; i++ {
		for j := 0; j+11 <= m.side; j++ {
			for _, pattern := range finderLike {
				row, col := true, true
				for k := 0; k < 11 && (row || col); k++ {
					if m.Dark(i, j+k) != pattern[k] {
						row = false
					}
					if m.Dark(j+k, i) != pattern[k] {
						col = false
					}
				}
				if row {
					score += penaltyN3
				}
				if col {
					score += penaltyN3
				}
			}
		}
	}
	return score
}

// penaltyBalance is rule 4: distance of the dark share from 50%, in 5% steps.
func (m *Matrix) penaltyBalance() int {
	dark := 0
	for _, v := range m.cells {
		if v.IsSet() {
			dark++
		}
	}
	total := m.side * m.side
	percent := dark * 100 / total
	prev := percent - percent%5
	next := prev + 5
	return min(abs(prev-50)/5, abs(next-50)/5) * penaltyN4
}

// formatWord returns the 15 bit BCH protected, masked format information.
func formatWord(level Level, mask int) uint32 {
	data := level.formatBits()<<3 | uint32(mask)
	rem := data
	for i := 0; i < 10; i++ {
		rem = (rem << 1) ^ ((rem >> 9) * 0x537)
	}
	return (data<<10 | rem&0x3FF) ^ 0x5412
}

// versionWord returns the 18 bit BCH protected version information.
func versionWord(version int) uint32 {
	rem := uint32(version)
	for i := 0; i < 12; i++ {
		rem = (rem << 1) ^ ((rem >> 11) * 0x1F25)
	}
	return uint32(version)<<12 | rem&0xFFF
}

func (m *Matrix) writeFormat() {
	bits := formatWord(m.level, m.mask)
	bit := func(i int) bool { return bits>>uint(i)&1 == 1 }
	s := m.side

	// copy around the top-left finder
	for i := 0; i <= 5; i++ {
		m.set(i, 8, newValue(QRType_FORMAT, bit(i)))
	}
	m.set(7, 8, newValue(QRType_FORMAT, bit(6)))
	m.set(8, 8, newValue(QRType_FORMAT, bit(7)))
	m.set(8, 7, newValue(QRType_FORMAT, bit(8)))
	for i := 9; i < 15; i++ {
		m.set(8, 14-i, newValue(QRType_FORMAT, bit(i)))
	}

	// split copy along the other two finders
	for i := 0; i < 8; i++ {
		m.set(8, s-1-i, newValue(QRType_FORMAT, bit(i)))
	}
	for i := 8; i < 15; i++ {
		m.set(s-15+i, 8, newValue(QRType_FORMAT, bit(i)))
	}
}

func (m *Matrix) writeVersion() {
	bits := versionWord(m.version)
	s := m.side
	for i := 0; i < 18; i++ {
		dark := bits>>uint(i)&1 == 1
		a, b := s-11+i%3, i/3
		m.set(b, a, newValue(QRType_VERSION, dark))
		m.set(a, b, newValue(QRType_VERSION, dark))
	}
}
