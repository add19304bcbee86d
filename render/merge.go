package render

import (
	"math"
)

// unionFind groups arena indices (row*side+col) into connected components.
type unionFind struct {
	parent []int32
	size   []int32
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int32, n), size: make([]int32, n)}
	for i := range uf.parent {
		uf.parent[i] = int32(i)
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int32) int32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int32) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}

// direction of a boundary edge, clockwise from east. y grows downward.
type direction uint8

const (
	dirEast direction = iota
	dirSouth
	dirWest
	dirNorth
)

var directionVec = [4]Vec{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

func (d direction) right() direction { return (d + 1) % 4 }

type vertex struct{ x, y int }

type boundaryEdge struct {
	from, to vertex
	dir      direction
}

// outlineCorner is a turn of a traced ring.
type outlineCorner struct {
	at      vertex
	in, out direction
}

// convex reports whether the ring turns toward the filled side.
func (c outlineCorner) convex() bool { return c.out == c.in.right() }

// accent reports whether a convex corner is a top-left or bottom-right one.
func (c outlineCorner) accent() bool {
	return (c.in == dirNorth && c.out == dirEast) || (c.in == dirSouth && c.out == dirWest)
}

// notch returns the empty module a concave corner wraps around.
func (c outlineCorner) notch() (row, col int) {
	d := directionVec[c.out].sub(directionVec[c.in]).mul(.5)
	return int(math.Floor(float64(c.at.y) + d.Y)), int(math.Floor(float64(c.at.x) + d.X))
}

// cornerRadius picks the rounding of one traced corner; 0 keeps it sharp.
type cornerRadius func(c outlineCorner) float64

// traceOutline walks the boundary of the modules for which member is true
// and returns one closed ring per boundary. Filled areas sit on the right of
// the walking direction, so outer rings run clockwise and holes counter
// clockwise. Diagonally touching modules are kept apart.
func traceOutline(rows, cols int, member func(row, col int) bool) [][]outlineCorner {
	in := func(row, col int) bool {
		return row >= 0 && col >= 0 && row < rows && col < cols && member(row, col)
	}

	var edges []boundaryEdge
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if !in(row, col) {
				continue
			}
			if !in(row-1, col) {
				edges = append(edges, boundaryEdge{vertex{col, row}, vertex{col + 1, row}, dirEast})
			}
			if !in(row, col+1) {
				edges = append(edges, boundaryEdge{vertex{col + 1, row}, vertex{col + 1, row + 1}, dirSouth})
			}
			if !in(row+1, col) {
				edges = append(edges, boundaryEdge{vertex{col + 1, row + 1}, vertex{col, row + 1}, dirWest})
			}
			if !in(row, col-1) {
				edges = append(edges, boundaryEdge{vertex{col, row + 1}, vertex{col, row}, dirNorth})
			}
		}
	}

	outgoing := make(map[vertex][]int, len(edges))
	for i, e := range edges {
		outgoing[e.from] = append(outgoing[e.from], i)
	}

	used := make([]bool, len(edges))
	var rings [][]outlineCorner
	for start := range edges {
		if used[start] {
			continue
		}

		var walk []int
		for cur := start; ; {
			used[cur] = true
			walk = append(walk, cur)

			next := -1
			for _, cand := range outgoing[edges[cur].to] {
				if used[cand] && cand != start {
					continue
				}
				if next < 0 || edges[cand].dir == edges[cur].dir.right() {
					next = cand
				}
			}
			if next < 0 || next == start {
				break
			}
			cur = next
		}

		var corners []outlineCorner
		for i, idx := range walk {
			prev := edges[walk[(i+len(walk)-1)%len(walk)]]
			if e := edges[idx]; e.dir != prev.dir {
				corners = append(corners, outlineCorner{at: e.from, in: prev.dir, out: e.dir})
			}
		}
		if len(corners) > 0 {
			rings = append(rings, corners)
		}
	}
	return rings
}

// roundOutline turns traced rings into path segments placed at origin,
// replacing each corner by a quadratic curve of the chosen radius.
func roundOutline(rings [][]outlineCorner, origin Vec, radius cornerRadius) []Segment {
	var segs []Segment
	for _, corners := range rings {
		type turn struct{ at, in, out Vec }
		turns := make([]turn, len(corners))
		for i, c := range corners {
			v := origin.add(Vec{float64(c.at.x), float64(c.at.y)})
			r := math.Min(radius(c), .5)
			turns[i] = turn{
				at:  v,
				in:  v.sub(directionVec[c.in].mul(r)),
				out: v.add(directionVec[c.out].mul(r)),
			}
		}

		segs = append(segs, MoveTo(turns[0].out))
		for i := 1; i <= len(turns); i++ {
			t := turns[i%len(turns)]
			if t.in == t.at {
				segs = append(segs, LineTo(t.at))
				continue
			}
			segs = append(segs, LineTo(t.in), QuadTo(t.at, t.out))
		}
		segs = append(segs, Close())
	}
	return segs
}
