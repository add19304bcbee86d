package encoder

import (
	"strings"
)

// QRType marks what a module is used for during placement.
type QRType uint8

const (
	QRType_INIT QRType = iota
	QRType_DATA
	QRType_VERSION
	QRType_FORMAT
	QRType_FINDER
	QRType_FINDER_CENTER
	QRType_DARK
	QRType_SPLITTER
	QRType_TIMING
	QRType_ALIGNMENT
)

func (t QRType) String() string {
	switch t {
	case QRType_DATA:
		return "data"
	case QRType_VERSION:
		return "version"
	case QRType_FORMAT:
		return "format"
	case QRType_FINDER:
		return "finder"
	case QRType_FINDER_CENTER:
		return "finder-center"
	case QRType_DARK:
		return "dark"
	case QRType_SPLITTER:
		return "splitter"
	case QRType_TIMING:
		return "timing"
	case QRType_ALIGNMENT:
		return "alignment"
	}
	return "init"
}

// QRValue packs the module type and its dark bit.
type QRValue uint8

const qrValueSet QRValue = 1 << 7

func newValue(t QRType, dark bool) QRValue {
	v := QRValue(t)
	if dark {
		v |= qrValueSet
	}
	return v
}

// Type returns the placement type of the module.
func (v QRValue) Type() QRType { return QRType(v &^ qrValueSet) }

// IsSet reports whether the module is dark.
func (v QRValue) IsSet() bool { return v&qrValueSet != 0 }

func (v QRValue) xor(dark bool) QRValue {
	if dark {
		return v ^ qrValueSet
	}
	return v
}

// Zone classifies cells for styling.
type Zone uint8

const (
	ZoneBody Zone = iota
	ZoneCornerEye
	ZoneCornerEyeDot
	ZoneTiming
	ZoneAlignment
	// ZoneQuietMargin never occurs inside a Matrix. The renderer assigns it
	// to the margin ring around the symbol.
	ZoneQuietMargin
)

// Zones lists every zone in drawing order.
var Zones = []Zone{ZoneQuietMargin, ZoneBody, ZoneTiming, ZoneAlignment, ZoneCornerEye, ZoneCornerEyeDot}

func (z Zone) String() string {
	switch z {
	case ZoneBody:
		return "body"
	case ZoneCornerEye:
		return "corner-eye"
	case ZoneCornerEyeDot:
		return "corner-eye-dot"
	case ZoneTiming:
		return "timing"
	case ZoneAlignment:
		return "alignment"
	case ZoneQuietMargin:
		return "quiet-margin"
	}
	return "unknown"
}

// Zone maps a placement type onto its styling zone.
func (t QRType) Zone() Zone {
	switch t {
	case QRType_FINDER:
		return ZoneCornerEye
	case QRType_FINDER_CENTER:
		return ZoneCornerEyeDot
	case QRType_TIMING:
		return ZoneTiming
	case QRType_ALIGNMENT:
		return ZoneAlignment
	}
	return ZoneBody
}

// IterDirection is the order Iterate walks the matrix in.
type IterDirection uint8

const (
	IterDirection_ROW IterDirection = iota + 1
	IterDirection_COLUMN
)

// Point is a zero-based (row, col) cell address.
type Point struct {
	Row, Col int
}

// Rect is a module space rectangle, Max is exclusive.
type Rect struct {
	Min, Max Point
}

// Contains reports whether (row, col) lies inside r.
func (r Rect) Contains(row, col int) bool {
	return row >= r.Min.Row && row < r.Max.Row && col >= r.Min.Col && col < r.Max.Col
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Max.Row <= r.Min.Row || r.Max.Col <= r.Min.Col
}

// Side returns the width of a square rect.
func (r Rect) Side() int {
	return r.Max.Col - r.Min.Col
}

// Matrix is an encoded symbol. It is immutable once returned by Encode.
type Matrix struct {
	side    int
	version int
	level   Level
	mask    int

	cells []QRValue
	// codeword holds the interleaved codeword index carried by each data
	// module, -1 for function modules and remainder bits.
	codeword []int32
	spec     blockSpec
}

func newMatrix(version int, level Level) *Matrix {
	side := SideOf(version)
	m := &Matrix{
		side:     side,
		version:  version,
		level:    level,
		mask:     -1,
		cells:    make([]QRValue, side*side),
		codeword: make([]int32, side*side),
		spec:     lookupVersion(version).blocks[level],
	}
	for i := range m.codeword {
		m.codeword[i] = -1
	}
	return m
}

func (m *Matrix) index(row, col int) int {
	return row*m.side + col
}

func (m *Matrix) set(row, col int, v QRValue) {
	m.cells[m.index(row, col)] = v
}

func (m *Matrix) at(row, col int) QRValue {
	return m.cells[m.index(row, col)]
}

func (m *Matrix) copy() *Matrix {
	cp := *m
	cp.cells = make([]QRValue, len(m.cells))
	copy(cp.cells, m.cells)
	return &cp
}

// Side returns the number of modules per side.
func (m *Matrix) Side() int { return m.side }

// Width and Height mirror Side for callers that think in image terms.
func (m *Matrix) Width() int  { return m.side }
func (m *Matrix) Height() int { return m.side }

// Version returns the symbol version, 1..40.
func (m *Matrix) Version() int { return m.version }

// Level returns the error correction level the symbol was encoded at.
func (m *Matrix) Level() Level { return m.level }

// Mask returns the applied mask pattern id, 0..7.
func (m *Matrix) Mask() int { return m.mask }

// At returns the module value at (row, col).
func (m *Matrix) At(row, col int) QRValue { return m.at(row, col) }

// Dark reports whether the module at (row, col) is dark.
func (m *Matrix) Dark(row, col int) bool { return m.at(row, col).IsSet() }

// ZoneAt returns the styling zone of (row, col).
func (m *Matrix) ZoneAt(row, col int) Zone { return m.at(row, col).Type().Zone() }

// Reserved reports whether (row, col) belongs to a function pattern or to
// format or version information.
func (m *Matrix) Reserved(row, col int) bool {
	return m.at(row, col).Type() != QRType_DATA
}

// FinderOrigins returns the top-left cells of the three finder patterns:
// top-left, top-right and bottom-left.
func (m *Matrix) FinderOrigins() [3]Point {
	return [3]Point{{0, 0}, {0, m.side - 7}, {m.side - 7, 0}}
}

// AlignmentCenters returns every alignment pattern center of the symbol.
func (m *Matrix) AlignmentCenters() []Point {
	return alignmentPoints(m.version)
}

// Iterate visits every module in the given direction.
func (m *Matrix) Iterate(dir IterDirection, f func(row, col int, v QRValue)) {
	for i := 0; i < m.side; i++ {
		for j := 0; j < m.side; j++ {
			if dir == IterDirection_COLUMN {
				f(j, i, m.at(j, i))
				continue
			}
			f(i, j, m.at(i, j))
		}
	}
}

// Bitmap returns a row-major copy of the dark bits.
func (m *Matrix) Bitmap() [][]bool {
	out := make([][]bool, m.side)
	for r := range out {
		out[r] = make([]bool, m.side)
		for c := range out[r] {
			out[r][c] = m.Dark(r, c)
		}
	}
	return out
}

// CenterRect returns the centered square of n modules per side. n is
// adjusted to share the parity of the matrix side so the square centers
// exactly on the module grid.
func (m *Matrix) CenterRect(n int) Rect {
	if n <= 0 {
		return Rect{}
	}
	if n%2 != m.side%2 {
		n++
	}
	if n > m.side {
		n = m.side
	}
	lo := (m.side - n) / 2
	return Rect{Min: Point{lo, lo}, Max: Point{lo + n, lo + n}}
}

// BlockDamage counts, per RS block, the distinct codewords that have at
// least one module inside r.
func (m *Matrix) BlockDamage(r Rect) map[int]int {
	blockOf := interleaveOrigins(m.spec)
	seen := make(map[int32]struct{})
	out := make(map[int]int)
	for row := r.Min.Row; row < r.Max.Row; row++ {
		for col := r.Min.Col; col < r.Max.Col; col++ {
			if row < 0 || col < 0 || row >= m.side || col >= m.side {
				continue
			}
			cw := m.codeword[m.index(row, col)]
			if cw < 0 {
				continue
			}
			if _, ok := seen[cw]; ok {
				continue
			}
			seen[cw] = struct{}{}
			out[blockOf[cw]]++
		}
	}
	return out
}

// CorrectableErrors is the count of unknown-position codeword errors each
// block of the symbol can repair.
func (m *Matrix) CorrectableErrors() int {
	return correctable(m.version, m.level, m.spec)
}

// String renders the matrix as text, two characters per module, with a
// four module quiet zone.
func (m *Matrix) String() string {
	const quiet = 4
	var sb strings.Builder
	for r := -quiet; r < m.side+quiet; r++ {
		for c := -quiet; c < m.side+quiet; c++ {
			if r >= 0 && c >= 0 && r < m.side && c < m.side && m.Dark(r, c) {
				sb.WriteString("██")
				continue
			}
			sb.WriteString("  ")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
