package encoder

import (
	"math/bits"

	"github.com/pkg/errors"
)

// The reader below decodes a Matrix the way a scanner would once the grid is
// sampled. It shares only the standard tables with the encoder so the round
// trip tests catch placement, masking and interleaving mistakes.

var (
	testExp [512]byte
	testLog [256]byte
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		testExp[i] = byte(x)
		testLog[x] = byte(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= 0x11d
		}
	}
	for i := 255; i < 512; i++ {
		testExp[i] = testExp[i-255]
	}
}

func testMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return testExp[int(testLog[a])+int(testLog[b])]
}

// syndromesZero evaluates the received block at the generator roots.
func syndromesZero(block []byte, ec int) bool {
	for i := 0; i < ec; i++ {
		var y byte
		root := testExp[i]
		for _, c := range block {
			y = testMul(y, root) ^ c
		}
		if y != 0 {
			return false
		}
	}
	return true
}

func testIsFunction(version, row, col int) bool {
	side := 17 + 4*version
	switch {
	case row < 9 && col < 9, row < 9 && col >= side-8, row >= side-8 && col < 9:
		return true
	case row == 6 || col == 6:
		return true
	}
	if version >= 7 {
		if row < 6 && col >= side-11 && col < side-8 {
			return true
		}
		if col < 6 && row >= side-11 && row < side-8 {
			return true
		}
	}
	for _, p := range alignmentPoints(version) {
		if abs(row-p.Row) <= 2 && abs(col-p.Col) <= 2 {
			return true
		}
	}
	return false
}

func testMaskBit(mask, i, j int) bool {
	switch mask {
	case 0:
		return (i+j)%2 == 0
	case 1:
		return i%2 == 0
	case 2:
		return j%3 == 0
	case 3:
		return (i+j)%3 == 0
	case 4:
		return (i/2+j/3)%2 == 0
	case 5:
		return (i*j)%2+(i*j)%3 == 0
	case 6:
		return ((i*j)%2+(i*j)%3)%2 == 0
	default:
		return ((i+j)%2+(i*j)%3)%2 == 0
	}
}

type decoded struct {
	level   Level
	mask    int
	version int
	payload string
}

func readFormat(m *Matrix) (Level, int, error) {
	var word uint32
	pos := [][2]int{{0, 8}, {1, 8}, {2, 8}, {3, 8}, {4, 8}, {5, 8}, {7, 8}, {8, 8},
		{8, 7}, {8, 5}, {8, 4}, {8, 3}, {8, 2}, {8, 1}, {8, 0}}
	for i, p := range pos {
		if m.Dark(p[0], p[1]) {
			word |= 1 << uint(i)
		}
	}
	for _, lv := range []Level{ErrorCorrectionLow, ErrorCorrectionMedium, ErrorCorrectionQuart, ErrorCorrectionHighest} {
		for mask := 0; mask < 8; mask++ {
			if bits.OnesCount32(formatWord(lv, mask)^word) <= 3 {
				return lv, mask, nil
			}
		}
	}
	return 0, 0, errors.Errorf("unreadable format word %015b", word)
}

func readCodewords(m *Matrix, version, mask int) []byte {
	side := m.Side()
	var (
		out  []byte
		cur  byte
		nbit int
	)
	for right := side - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < side; vert++ {
			for j := 0; j < 2; j++ {
				col := right - j
				row := vert
				if (right+1)&2 == 0 {
					row = side - 1 - vert
				}
				if testIsFunction(version, row, col) {
					continue
				}
				dark := m.Dark(row, col) != testMaskBit(mask, row, col)
				cur <<= 1
				if dark {
					cur |= 1
				}
				nbit++
				if nbit == 8 {
					out = append(out, cur)
					cur, nbit = 0, 0
				}
			}
		}
	}
	return out
}

// decodeMatrix reads the byte mode payload back out of m.
func decodeMatrix(m *Matrix) (*decoded, error) {
	version := (m.Side() - 17) / 4
	level, mask, err := readFormat(m)
	if err != nil {
		return nil, err
	}

	spec := versions[version-1].blocks[level]
	raw := readCodewords(m, version, mask)
	total := spec.numDataCodewords() + spec.numECCodewords()
	if len(raw) < total {
		return nil, errors.Errorf("read %d codewords, want %d", len(raw), total)
	}
	raw = raw[:total]

	blocks := make([][]byte, spec.numBlocks())
	k := 0
	maxData := spec.dataGroup1
	if spec.group2 > 0 {
		maxData = spec.dataGroup2
	}
	for i := 0; i < maxData; i++ {
		for b := range blocks {
			if i < spec.dataLen(b) {
				blocks[b] = append(blocks[b], raw[k])
				k++
			}
		}
	}
	for i := 0; i < spec.ecPerBlock; i++ {
		for b := range blocks {
			blocks[b] = append(blocks[b], raw[k])
			k++
		}
	}

	var data []byte
	for b, block := range blocks {
		if !syndromesZero(block, spec.ecPerBlock) {
			return nil, errors.Errorf("block %d has non-zero syndromes", b)
		}
		data = append(data, block[:spec.dataLen(b)]...)
	}

	readBits := func(off, n int) int {
		v := 0
		for i := 0; i < n; i++ {
			v <<= 1
			if data[(off+i)/8]>>(7-uint((off+i)%8))&1 == 1 {
				v |= 1
			}
		}
		return v
	}
	if mode := readBits(0, 4); mode != 0b0100 {
		return nil, errors.Errorf("unexpected mode %04b", mode)
	}
	ccBits := 8
	if version >= 10 {
		ccBits = 16
	}
	n := readBits(4, ccBits)
	payload := make([]byte, n)
	for i := range payload {
		payload[i] = byte(readBits(4+ccBits+8*i, 8))
	}

	return &decoded{level: level, mask: mask, version: version, payload: string(payload)}, nil
}
