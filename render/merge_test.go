package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(rows ...string) func(row, col int) bool {
	return func(row, col int) bool { return rows[row][col] == '#' }
}

func Test_unionFind(t *testing.T) {
	uf := newUnionFind(6)
	uf.union(0, 1)
	uf.union(2, 3)
	uf.union(1, 3)

	assert.Equal(t, uf.find(0), uf.find(2))
	assert.NotEqual(t, uf.find(0), uf.find(4))
	assert.NotEqual(t, uf.find(4), uf.find(5))
	assert.Equal(t, int32(4), uf.size[uf.find(3)])
}

func Test_traceOutline_Single(t *testing.T) {
	rings := traceOutline(1, 1, grid("#"))
	require.Len(t, rings, 1)
	require.Len(t, rings[0], 4)
	for _, c := range rings[0] {
		assert.True(t, c.convex())
	}
	assert.Equal(t, vertex{0, 0}, rings[0][0].at)
	assert.True(t, rings[0][0].accent(), "top-left corner")
}

func Test_traceOutline_Hole(t *testing.T) {
	rings := traceOutline(3, 3, grid(
		"###",
		"#.#",
		"###",
	))
	require.Len(t, rings, 2)
	assert.Len(t, rings[0], 4)
	assert.Len(t, rings[1], 4)

	for _, c := range rings[1] {
		assert.False(t, c.convex(), "hole corners turn away from the filled side")
		row, col := c.notch()
		assert.Equal(t, [2]int{1, 1}, [2]int{row, col})
	}
}

func Test_traceOutline_DiagonalsStayApart(t *testing.T) {
	rings := traceOutline(2, 2, grid(
		"#.",
		".#",
	))
	require.Len(t, rings, 2)
	assert.Len(t, rings[0], 4)
	assert.Len(t, rings[1], 4)
}

func Test_traceOutline_LShape(t *testing.T) {
	rings := traceOutline(2, 2, grid(
		"#.",
		"##",
	))
	require.Len(t, rings, 1)
	require.Len(t, rings[0], 6)

	concave := 0
	for _, c := range rings[0] {
		if !c.convex() {
			concave++
			row, col := c.notch()
			assert.Equal(t, [2]int{0, 1}, [2]int{row, col})
		}
	}
	assert.Equal(t, 1, concave)
}

func Test_roundOutline(t *testing.T) {
	rings := traceOutline(1, 1, grid("#"))

	sharp := roundOutline(rings, Vec{2, 3}, func(outlineCorner) float64 { return 0 })
	assert.Equal(t, []Segment{
		MoveTo(Vec{2, 3}),
		LineTo(Vec{3, 3}),
		LineTo(Vec{3, 4}),
		LineTo(Vec{2, 4}),
		LineTo(Vec{2, 3}),
		Close(),
	}, sharp)

	round := roundOutline(rings, Vec{}, func(outlineCorner) float64 { return .5 })
	quads := 0
	for _, s := range round {
		if s.Op == OpQuadTo {
			quads++
		}
	}
	assert.Equal(t, 4, quads)
	assert.Equal(t, Vec{.5, 0}, round[0].P[0])
}

func Test_reverseRing(t *testing.T) {
	fwd := roundedRing(0, 0, 4, 4, [4]float64{1, 0, 1, 0})
	back := reverseRing(fwd)
	require.Equal(t, OpMoveTo, back[0].Op)
	assert.Equal(t, OpClose, back[len(back)-1].Op)
	assert.Len(t, back, len(fwd))

	// reversing twice restores every point
	twice := reverseRing(back)
	assert.Equal(t, fwd[0].P[0], twice[0].P[0])
	assert.True(t, covers(Path{Segments: back}, Vec{2, 2}))
	assert.False(t, covers(ring(color.RGBA{A: 0xff}, fwd, rectRing(1, 1, 2, 2)), Vec{2, 2}))
}
