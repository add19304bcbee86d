package render

import (
	"math"

	"github.com/Mictilt/qrdx/style"
)

var (
	_patternSquare       Pattern = square{}
	_patternCircle       Pattern = circle{radius: .4}
	_patternCircleLarge  Pattern = circle{radius: .5}
	_patternDiamond      Pattern = diamond{}
	_patternCircleMixed  Pattern = circleMixed{}
	_patternPacman       Pattern = pacman{}
	_patternRounded      Pattern = rounded{}
	_patternCleanSquare  Pattern = cleanSquare{}
	_patternDots         Pattern = circle{radius: .3}
	_patternClassy       Merger  = merged{convex: .5}
	_patternClassyRound  Merger  = merged{convex: .5, convexOther: .2}
	_patternExtraRounded Merger  = merged{convex: .5, convexOther: .5}
	_patternFluid        Merger  = merged{convex: .5, convexOther: .5, concave: .25}
)

// BodyPatternFor maps a body pattern name to its implementation.
func BodyPatternFor(p style.BodyPattern) Pattern {
	switch p {
	case style.BodySquare:
		return _patternSquare
	case style.BodyCircle:
		return _patternCircle
	case style.BodyCircleLarge:
		return _patternCircleLarge
	case style.BodyDiamond:
		return _patternDiamond
	case style.BodyCircleMixed:
		return _patternCircleMixed
	case style.BodyPacman:
		return _patternPacman
	case style.BodyRounded:
		return _patternRounded
	case style.BodyCleanSquare:
		return _patternCleanSquare
	case style.BodyDots:
		return _patternDots
	case style.BodyClassy:
		return _patternClassy
	case style.BodyClassyRounded:
		return _patternClassyRound
	case style.BodyExtraRounded:
		return _patternExtraRounded
	case style.BodyFluid:
		return _patternFluid
	}
	return _patternSquare
}

type square struct{}

func (square) Cells(ctx *CellContext) []Primitive {
	return []Primitive{Rect{X: ctx.X, Y: ctx.Y, W: 1, H: 1, Fill: ctx.Fill}}
}

// cleanSquare leaves a thin gap between modules.
type cleanSquare struct{}

func (cleanSquare) Cells(ctx *CellContext) []Primitive {
	const gap = .05
	return []Primitive{Rect{X: ctx.X + gap, Y: ctx.Y + gap, W: 1 - 2*gap, H: 1 - 2*gap, Fill: ctx.Fill}}
}

type circle struct {
	radius float64
}

func (c circle) Cells(ctx *CellContext) []Primitive {
	center := ctx.Center()
	return []Primitive{Circle{CX: center.X, CY: center.Y, R: c.radius, Fill: ctx.Fill}}
}

// circleMixed draws full circles inside runs and smaller ones for isolated
// modules.
type circleMixed struct{}

func (circleMixed) Cells(ctx *CellContext) []Primitive {
	r := .35
	if ctx.Neighbours()&(NTop|NBot|NLeft|NRight) != 0 {
		r = .5
	}
	center := ctx.Center()
	return []Primitive{Circle{CX: center.X, CY: center.Y, R: r, Fill: ctx.Fill}}
}

type diamond struct{}

func (diamond) Cells(ctx *CellContext) []Primitive {
	c := ctx.Center()
	return []Primitive{Path{
		Segments: []Segment{
			MoveTo(Vec{c.X, ctx.Y}),
			LineTo(Vec{ctx.X + 1, c.Y}),
			LineTo(Vec{c.X, ctx.Y + 1}),
			LineTo(Vec{ctx.X, c.Y}),
			Close(),
		},
		Fill: ctx.Fill,
	}}
}

// pacman opens its mouth toward the first free side, east first. The mouth
// starts off center so the middle of the module, where decoders sample,
// stays dark.
type pacman struct{}

func (pacman) Cells(ctx *CellContext) []Primitive {
	c := ctx.Center()
	sides := [4]struct {
		flag  uint16
		angle float64
	}{{NRight, 0}, {NBot, math.Pi / 2}, {NLeft, math.Pi}, {NTop, 3 * math.Pi / 2}}

	for _, side := range sides {
		if ctx.Has(side.flag) {
			continue
		}
		const (
			mouth = math.Pi / 5
			depth = .3
		)
		a0, a1 := side.angle+mouth, side.angle+2*math.Pi-mouth
		segs := []Segment{
			MoveTo(Vec{c.X + depth*math.Cos(side.angle), c.Y + depth*math.Sin(side.angle)}),
			LineTo(Vec{c.X + .5*math.Cos(a0), c.Y + .5*math.Sin(a0)}),
		}
		segs = arcTo(segs, c, .5, a0, a1)
		return []Primitive{Path{Segments: append(segs, Close()), Fill: ctx.Fill}}
	}
	return []Primitive{Circle{CX: c.X, CY: c.Y, R: .5, Fill: ctx.Fill}}
}

// rounded rounds every corner that has no orthogonal neighbour on either
// side.
type rounded struct{}

func (rounded) Cells(ctx *CellContext) []Primitive {
	free := func(a, b uint16) float64 {
		if ctx.Neighbours()&(a|b) == 0 {
			return .5
		}
		return 0
	}
	r := [4]float64{
		free(NTop, NLeft),
		free(NTop, NRight),
		free(NBot, NRight),
		free(NBot, NLeft),
	}
	if r == [4]float64{} {
		return []Primitive{Rect{X: ctx.X, Y: ctx.Y, W: 1, H: 1, Fill: ctx.Fill}}
	}
	return []Primitive{Path{Segments: roundedRing(ctx.X, ctx.Y, 1, 1, r), Fill: ctx.Fill}}
}

// merged draws connected modules as one outline. convex rounds the outer
// top-left and bottom-right corners, convexOther the remaining outer
// corners and concave the inner ones.
type merged struct {
	convex, convexOther, concave float64
}

func (m merged) radius(c outlineCorner) float64 {
	switch {
	case c.convex() && c.accent():
		return m.convex
	case c.convex():
		return m.convexOther
	}
	return m.concave
}

// Cells draws a module on its own, as an isolated group of one.
func (m merged) Cells(ctx *CellContext) []Primitive {
	rings := traceOutline(1, 1, func(int, int) bool { return true })
	return []Primitive{Path{Segments: roundOutline(rings, ctx.UpperLeft(), m.radius), Fill: ctx.Fill}}
}

func (m merged) Merge(ctx *ComponentContext) []Primitive {
	b := ctx.bounds
	rings := traceOutline(b.Max.Row-b.Min.Row, b.Max.Col-b.Min.Col, func(row, col int) bool {
		return ctx.Contains(row+b.Min.Row, col+b.Min.Col)
	})
	radius := func(c outlineCorner) float64 {
		if c.convex() {
			return m.radius(c)
		}
		// inner fillets reach into the empty module of the notch, which must
		// be a plain light body module
		row, col := c.notch()
		if !ctx.grid.plainLight(row+b.Min.Row, col+b.Min.Col) {
			return 0
		}
		return m.concave
	}
	origin := ctx.Origin.add(Vec{float64(b.Min.Col), float64(b.Min.Row)})
	return []Primitive{Path{Segments: roundOutline(rings, origin, radius), Fill: ctx.Fill}}
}
