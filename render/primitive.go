package render

import (
	"image/color"
	"math"
)

// Vec is a point in module space.
type Vec struct {
	X, Y float64
}

func (v Vec) add(o Vec) Vec             { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) sub(o Vec) Vec             { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) mul(k float64) Vec         { return Vec{v.X * k, v.Y * k} }
func (v Vec) lerp(o Vec, t float64) Vec { return v.add(o.sub(v).mul(t)) }

// SegmentOp is the kind of a path segment.
type SegmentOp uint8

const (
	OpMoveTo SegmentOp = iota
	OpLineTo
	OpQuadTo
	OpCubicTo
	OpClose
)

// Segment is one path command. P holds, in order: the end point for MoveTo
// and LineTo; control and end point for QuadTo; two controls and the end
// point for CubicTo. Close uses none.
type Segment struct {
	Op SegmentOp
	P  [3]Vec
}

func MoveTo(p Vec) Segment          { return Segment{Op: OpMoveTo, P: [3]Vec{p}} }
func LineTo(p Vec) Segment          { return Segment{Op: OpLineTo, P: [3]Vec{p}} }
func QuadTo(c, p Vec) Segment       { return Segment{Op: OpQuadTo, P: [3]Vec{c, p}} }
func CubicTo(c1, c2, p Vec) Segment { return Segment{Op: OpCubicTo, P: [3]Vec{c1, c2, p}} }
func Close() Segment                { return Segment{Op: OpClose} }

// End returns the point the segment finishes on.
func (s Segment) End() Vec {
	switch s.Op {
	case OpQuadTo:
		return s.P[1]
	case OpCubicTo:
		return s.P[2]
	}
	return s.P[0]
}

// Primitive is a filled shape of a Scene. The set of primitives is closed:
// Rect, RoundRect, Circle and Path.
type Primitive interface {
	// Color is the fill color.
	Color() color.RGBA
	// Bounds is the bounding box in module space.
	Bounds() (x, y, w, h float64)

	primitive()
}

var (
	_ Primitive = Rect{}
	_ Primitive = RoundRect{}
	_ Primitive = Circle{}
	_ Primitive = Path{}
)

type Rect struct {
	X, Y, W, H float64
	Fill       color.RGBA
}

func (r Rect) Color() color.RGBA            { return r.Fill }
func (r Rect) Bounds() (x, y, w, h float64) { return r.X, r.Y, r.W, r.H }
func (Rect) primitive()                     {}

type RoundRect struct {
	X, Y, W, H, R float64
	Fill          color.RGBA
}

func (r RoundRect) Color() color.RGBA            { return r.Fill }
func (r RoundRect) Bounds() (x, y, w, h float64) { return r.X, r.Y, r.W, r.H }
func (RoundRect) primitive()                     {}

type Circle struct {
	CX, CY, R float64
	Fill      color.RGBA
}

func (c Circle) Color() color.RGBA { return c.Fill }
func (c Circle) Bounds() (x, y, w, h float64) {
	return c.CX - c.R, c.CY - c.R, 2 * c.R, 2 * c.R
}
func (Circle) primitive() {}

// Path is one or more closed rings filled with the nonzero rule. Holes are
// wound opposite to their outer ring.
type Path struct {
	Segments []Segment
	Fill     color.RGBA
}

func (p Path) Color() color.RGBA { return p.Fill }
func (p Path) Bounds() (x, y, w, h float64) {
	if len(p.Segments) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range p.Segments {
		n := 0
		switch s.Op {
		case OpMoveTo, OpLineTo:
			n = 1
		case OpQuadTo:
			n = 2
		case OpCubicTo:
			n = 3
		}
		for _, v := range s.P[:n] {
			minX, minY = math.Min(minX, v.X), math.Min(minY, v.Y)
			maxX, maxY = math.Max(maxX, v.X), math.Max(maxY, v.Y)
		}
	}
	return minX, minY, maxX - minX, maxY - minY
}
func (Path) primitive() {}

// kappa places cubic control points that approximate a quarter circle.
const kappa = 0.5522847498

// Outline converts any primitive into path segments, for serializers that
// only speak paths.
func Outline(p Primitive) []Segment {
	switch v := p.(type) {
	case Rect:
		return rectRing(v.X, v.Y, v.W, v.H)
	case RoundRect:
		r := math.Min(v.R, math.Min(v.W, v.H)/2)
		return roundedRing(v.X, v.Y, v.W, v.H, [4]float64{r, r, r, r})
	case Circle:
		return circleRing(v.CX, v.CY, v.R)
	case Path:
		return v.Segments
	}
	return nil
}

// rectRing is a clockwise rectangle.
func rectRing(x, y, w, h float64) []Segment {
	return []Segment{
		MoveTo(Vec{x, y}),
		LineTo(Vec{x + w, y}),
		LineTo(Vec{x + w, y + h}),
		LineTo(Vec{x, y + h}),
		Close(),
	}
}

// roundedRing is a clockwise rectangle whose corners, ordered top-left,
// top-right, bottom-right, bottom-left, are rounded by r.
func roundedRing(x, y, w, h float64, r [4]float64) []Segment {
	corners := [4]Vec{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	// direction of the side leaving each corner
	dirs := [4]Vec{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

	segs := make([]Segment, 0, 10)
	segs = append(segs, MoveTo(corners[0].add(dirs[0].mul(r[0]))))
	for i := 1; i <= 4; i++ {
		k := i % 4
		c, in, out := corners[k], dirs[i-1], dirs[k]
		if r[k] <= 0 {
			segs = append(segs, LineTo(c))
			continue
		}
		p0 := c.sub(in.mul(r[k]))
		p1 := c.add(out.mul(r[k]))
		segs = append(segs,
			LineTo(p0),
			CubicTo(p0.lerp(c, kappa), p1.lerp(c, kappa), p1),
		)
	}
	return append(segs, Close())
}

// circleRing is a clockwise circle made of four cubic arcs.
func circleRing(cx, cy, r float64) []Segment {
	k := r * kappa
	return []Segment{
		MoveTo(Vec{cx + r, cy}),
		CubicTo(Vec{cx + r, cy + k}, Vec{cx + k, cy + r}, Vec{cx, cy + r}),
		CubicTo(Vec{cx - k, cy + r}, Vec{cx - r, cy + k}, Vec{cx - r, cy}),
		CubicTo(Vec{cx - r, cy - k}, Vec{cx - k, cy - r}, Vec{cx, cy - r}),
		CubicTo(Vec{cx + k, cy - r}, Vec{cx + r, cy - k}, Vec{cx + r, cy}),
		Close(),
	}
}

// arcTo appends a clockwise arc around c from angle a0 to a1 (radians,
// a1 > a0), starting where the current point is.
func arcTo(segs []Segment, c Vec, r, a0, a1 float64) []Segment {
	n := int(math.Ceil((a1 - a0) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := (a1 - a0) / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	at := func(a float64) Vec { return Vec{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)} }
	tan := func(a float64) Vec { return Vec{-math.Sin(a), math.Cos(a)} }
	for i := 0; i < n; i++ {
		s, e := a0+float64(i)*step, a0+float64(i+1)*step
		p0, p3 := at(s), at(e)
		segs = append(segs, CubicTo(p0.add(tan(s).mul(k*r)), p3.sub(tan(e).mul(k*r)), p3))
	}
	return segs
}

// reverseRing returns the same closed ring wound the other way.
func reverseRing(segs []Segment) []Segment {
	if len(segs) == 0 {
		return nil
	}
	starts := make([]Vec, len(segs))
	var cur Vec
	for i, s := range segs {
		starts[i] = cur
		if s.Op != OpClose {
			cur = s.End()
		}
	}

	out := make([]Segment, 0, len(segs))
	out = append(out, MoveTo(cur))
	for i := len(segs) - 1; i >= 1; i-- {
		s := segs[i]
		switch s.Op {
		case OpLineTo:
			out = append(out, LineTo(starts[i]))
		case OpQuadTo:
			out = append(out, QuadTo(s.P[0], starts[i]))
		case OpCubicTo:
			out = append(out, CubicTo(s.P[1], s.P[0], starts[i]))
		}
	}
	return append(out, Close())
}

// ring joins an outer ring and any number of holes into one path.
func ring(fill color.RGBA, outer []Segment, holes ...[]Segment) Path {
	segs := append([]Segment(nil), outer...)
	for _, h := range holes {
		segs = append(segs, reverseRing(h)...)
	}
	return Path{Segments: segs, Fill: fill}
}
