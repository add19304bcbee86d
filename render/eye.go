package render

import (
	"math"

	"github.com/Mictilt/qrdx/style"
)

// EyePatternFor maps a corner eye pattern name to the composer drawing the
// 7x7 finder ring.
func EyePatternFor(p style.EyePattern) Composer {
	switch p {
	case style.EyeSquare:
		return ringSquare{}
	case style.EyeRounded:
		return ringRounded{outer: 2, inner: 1}
	case style.EyeCircle:
		return ringCircle{}
	case style.EyeGear:
		return ringGear{}
	case style.EyeDots:
		return ringDots{}
	case style.EyeClassy:
		return ringClassy{outer: 3, inner: 2}
	case style.EyeClassyRounded:
		return ringClassy{outer: 3, inner: 2, other: 1}
	case style.EyeExtraRounded:
		return ringRounded{outer: 3, inner: 2}
	case style.EyeFluid:
		return ringFluid{}
	}
	return ringSquare{}
}

// EyeDotPatternFor maps a corner eye dot pattern name to the composer
// drawing the 3x3 finder center.
func EyeDotPatternFor(p style.EyeDotPattern) Composer {
	switch p {
	case style.EyeDotSquare:
		return dotSquare{}
	case style.EyeDotRoundedSquare:
		return dotRounded{radius: .75}
	case style.EyeDotCircle:
		return dotCircle{}
	case style.EyeDotDiamond:
		return dotDiamond{}
	case style.EyeDotDots:
		return dotDots{}
	case style.EyeDotClassy:
		return dotClassy{accent: 1.2}
	case style.EyeDotClassyRounded:
		return dotClassy{accent: 1.5, other: .5}
	case style.EyeDotExtraRounded:
		return dotRounded{radius: 1.2}
	}
	return dotSquare{}
}

// ringHole is the 5x5 light area inside a finder ring.
func ringHole(ctx *EyeContext) (x, y, side float64) {
	return ctx.X + 1, ctx.Y + 1, ctx.Size - 2
}

type ringSquare struct{}

func (ringSquare) Composite(ctx *EyeContext) []Primitive {
	hx, hy, hs := ringHole(ctx)
	return []Primitive{ring(ctx.Fill,
		rectRing(ctx.X, ctx.Y, ctx.Size, ctx.Size),
		rectRing(hx, hy, hs, hs),
	)}
}

type ringRounded struct {
	outer, inner float64
}

func (r ringRounded) Composite(ctx *EyeContext) []Primitive {
	hx, hy, hs := ringHole(ctx)
	return []Primitive{ring(ctx.Fill,
		roundedRing(ctx.X, ctx.Y, ctx.Size, ctx.Size, [4]float64{r.outer, r.outer, r.outer, r.outer}),
		roundedRing(hx, hy, hs, hs, [4]float64{r.inner, r.inner, r.inner, r.inner}),
	)}
}

type ringCircle struct{}

func (ringCircle) Composite(ctx *EyeContext) []Primitive {
	c := ctx.Size / 2
	return []Primitive{ring(ctx.Fill,
		circleRing(ctx.X+c, ctx.Y+c, c),
		circleRing(ctx.X+c, ctx.Y+c, c-1),
	)}
}

// ringGear is an octagon with chamfered corners around a rounded hole.
type ringGear struct{}

func (ringGear) Composite(ctx *EyeContext) []Primitive {
	x, y, s := ctx.X, ctx.Y, ctx.Size
	const cut = 1.5
	outer := []Segment{
		MoveTo(Vec{x + cut, y}),
		LineTo(Vec{x + s - cut, y}),
		LineTo(Vec{x + s, y + cut}),
		LineTo(Vec{x + s, y + s - cut}),
		LineTo(Vec{x + s - cut, y + s}),
		LineTo(Vec{x + cut, y + s}),
		LineTo(Vec{x, y + s - cut}),
		LineTo(Vec{x, y + cut}),
		Close(),
	}
	hx, hy, hs := ringHole(ctx)
	return []Primitive{ring(ctx.Fill, outer, roundedRing(hx, hy, hs, hs, [4]float64{1, 1, 1, 1}))}
}

// ringDots draws one dot per ring module.
type ringDots struct{}

func (ringDots) Composite(ctx *EyeContext) []Primitive {
	n := int(ctx.Size)
	out := make([]Primitive, 0, 4*(n-1))
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if row != 0 && col != 0 && row != n-1 && col != n-1 {
				continue
			}
			out = append(out, Circle{
				CX:   ctx.X + float64(col) + .5,
				CY:   ctx.Y + float64(row) + .5,
				R:    .5,
				Fill: ctx.Fill,
			})
		}
	}
	return out
}

// ringClassy rounds the corners on the diagonal through the outer corner of
// the finder, mirroring the shape per corner.
type ringClassy struct {
	outer, inner, other float64
}

func (r ringClassy) Composite(ctx *EyeContext) []Primitive {
	pick := func(accent, other float64) [4]float64 {
		var out [4]float64
		for i, on := range ctx.Corner.accent() {
			out[i] = other
			if on {
				out[i] = accent
			}
		}
		return out
	}
	hx, hy, hs := ringHole(ctx)
	return []Primitive{ring(ctx.Fill,
		roundedRing(ctx.X, ctx.Y, ctx.Size, ctx.Size, pick(r.outer, r.other)),
		roundedRing(hx, hy, hs, hs, pick(r.inner, math.Max(r.other-1, 0))),
	)}
}

// ringFluid traces the ring modules the way fluid body modules are merged.
type ringFluid struct{}

func (ringFluid) Composite(ctx *EyeContext) []Primitive {
	n := int(ctx.Size)
	rings := traceOutline(n, n, func(row, col int) bool {
		return row == 0 || col == 0 || row == n-1 || col == n-1
	})
	radius := func(c outlineCorner) float64 {
		if c.convex() {
			return .5
		}
		return .25
	}
	return []Primitive{Path{Segments: roundOutline(rings, Vec{ctx.X, ctx.Y}, radius), Fill: ctx.Fill}}
}

type dotSquare struct{}

func (dotSquare) Composite(ctx *EyeContext) []Primitive {
	return []Primitive{Rect{X: ctx.X, Y: ctx.Y, W: ctx.Size, H: ctx.Size, Fill: ctx.Fill}}
}

type dotRounded struct {
	radius float64
}

func (d dotRounded) Composite(ctx *EyeContext) []Primitive {
	return []Primitive{RoundRect{X: ctx.X, Y: ctx.Y, W: ctx.Size, H: ctx.Size, R: d.radius, Fill: ctx.Fill}}
}

type dotCircle struct{}

func (dotCircle) Composite(ctx *EyeContext) []Primitive {
	r := ctx.Size / 2
	return []Primitive{Circle{CX: ctx.X + r, CY: ctx.Y + r, R: r, Fill: ctx.Fill}}
}

// dotDiamond cuts the corners of the center square. Every module center
// stays dark so the 1:1:3:1:1 finder ratio holds on rows, columns and
// diagonals.
type dotDiamond struct{}

func (dotDiamond) Composite(ctx *EyeContext) []Primitive {
	x, y, s := ctx.X, ctx.Y, ctx.Size
	cut := s / 4
	return []Primitive{Path{
		Segments: []Segment{
			MoveTo(Vec{x + cut, y}),
			LineTo(Vec{x + s - cut, y}),
			LineTo(Vec{x + s, y + cut}),
			LineTo(Vec{x + s, y + s - cut}),
			LineTo(Vec{x + s - cut, y + s}),
			LineTo(Vec{x + cut, y + s}),
			LineTo(Vec{x, y + s - cut}),
			LineTo(Vec{x, y + cut}),
			Close(),
		},
		Fill: ctx.Fill,
	}}
}

// dotDots draws touching dots over a square spanning their centers, so the
// center reads as one dark block with a beaded edge.
type dotDots struct{}

func (dotDots) Composite(ctx *EyeContext) []Primitive {
	n := int(ctx.Size)
	out := make([]Primitive, 0, n*n+1)
	out = append(out, Rect{X: ctx.X + .5, Y: ctx.Y + .5, W: ctx.Size - 1, H: ctx.Size - 1, Fill: ctx.Fill})
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			out = append(out, Circle{
				CX:   ctx.X + float64(col) + .5,
				CY:   ctx.Y + float64(row) + .5,
				R:    .45,
				Fill: ctx.Fill,
			})
		}
	}
	return out
}

type dotClassy struct {
	accent, other float64
}

func (d dotClassy) Composite(ctx *EyeContext) []Primitive {
	var r [4]float64
	for i, on := range ctx.Corner.accent() {
		r[i] = d.other
		if on {
			r[i] = d.accent
		}
	}
	return []Primitive{Path{Segments: roundedRing(ctx.X, ctx.Y, ctx.Size, ctx.Size, r), Fill: ctx.Fill}}
}
