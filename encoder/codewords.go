package encoder

import (
	"github.com/yeqown/reedsolomon"
	"github.com/yeqown/reedsolomon/binary"
)

const (
	modeByte uint32 = 0b0100

	padCodeword0 byte = 0xEC
	padCodeword1 byte = 0x11
)

// dataCodewords builds the padded byte mode bit stream for payload and
// returns it as whole codewords.
func dataCodewords(payload []byte, version int, spec blockSpec) *binary.Binary {
	capacityBits := spec.numDataCodewords() * 8

	bin := binary.New()
	bin.AppendUint32(modeByte, 4)
	bin.AppendUint32(uint32(len(payload)), charCountBits(version))
	bin.AppendBytes(payload...)

	// terminator, at most four zero bits
	terminator := capacityBits - bin.Len()
	if terminator > 4 {
		terminator = 4
	}
	bin.AppendNumBools(terminator, false)

	if rem := bin.Len() % 8; rem != 0 {
		bin.AppendNumBools(8-rem, false)
	}

	for i := 0; bin.Len() < capacityBits; i++ {
		if i%2 == 0 {
			bin.AppendBytes(padCodeword0)
		} else {
			bin.AppendBytes(padCodeword1)
		}
	}

	return bin
}

// splitBlocks cuts the data codewords into the blocks of spec and appends
// each block's Reed-Solomon codewords.
func splitBlocks(data []byte, spec blockSpec) (dataBlocks, ecBlocks [][]byte) {
	dataBlocks = make([][]byte, 0, spec.numBlocks())
	ecBlocks = make([][]byte, 0, spec.numBlocks())

	offset := 0
	for i := 0; i < spec.numBlocks(); i++ {
		n := spec.dataLen(i)
		block := make([]byte, n)
		copy(block, data[offset:offset+n])
		offset += n

		bin := binary.New()
		bin.AppendBytes(block...)
		full := reedsolomon.Encode(bin, spec.ecPerBlock).Bytes()
		ec := make([]byte, spec.ecPerBlock)
		copy(ec, full[n:n+spec.ecPerBlock])

		dataBlocks = append(dataBlocks, block)
		ecBlocks = append(ecBlocks, ec)
	}

	return dataBlocks, ecBlocks
}

// interleave reads data codewords column-wise across blocks, then the EC
// codewords the same way.
func interleave(dataBlocks, ecBlocks [][]byte, spec blockSpec) []byte {
	out := make([]byte, 0, spec.numDataCodewords()+spec.numECCodewords())

	maxData := spec.dataGroup1
	if spec.group2 > 0 {
		maxData = spec.dataGroup2
	}
	for i := 0; i < maxData; i++ {
		for _, block := range dataBlocks {
			if i < len(block) {
				out = append(out, block[i])
			}
		}
	}
	for i := 0; i < spec.ecPerBlock; i++ {
		for _, block := range ecBlocks {
			out = append(out, block[i])
		}
	}

	return out
}

// interleaveOrigins maps each interleaved codeword index back to the block
// it came from.
func interleaveOrigins(spec blockSpec) []int {
	blocks := spec.numBlocks()
	out := make([]int, 0, spec.numDataCodewords()+spec.numECCodewords())

	maxData := spec.dataGroup1
	if spec.group2 > 0 {
		maxData = spec.dataGroup2
	}
	for i := 0; i < maxData; i++ {
		for b := 0; b < blocks; b++ {
			if i < spec.dataLen(b) {
				out = append(out, b)
			}
		}
	}
	for i := 0; i < spec.ecPerBlock; i++ {
		for b := 0; b < blocks; b++ {
			out = append(out, b)
		}
	}

	return out
}
