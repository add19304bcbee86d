package standard

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/Mictilt/qrdx/encoder"
	"github.com/Mictilt/qrdx/render"
)

// GraphicsContext is the vector surface the raster, PDF and PostScript
// encoders draw scenes onto. Coordinates are output units with y pointing
// down, and fills use the nonzero winding rule.
type GraphicsContext interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(x1, y1, x2, y2, x, y float64)
	ClosePath()
	NewSubPath()
	DrawRectangle(x, y, w, h float64)
	DrawCircle(cx, cy, radius float64)
	SetColor(c color.Color)
	Fill()
}

// GGContextWrapper wraps gg.Context to implement GraphicsContext
type GGContextWrapper struct {
	*gg.Context
}

func (wrapper *GGContextWrapper) MoveTo(x, y float64) {
	wrapper.Context.MoveTo(x, y)
}

func (wrapper *GGContextWrapper) LineTo(x, y float64) {
	wrapper.Context.LineTo(x, y)
}

func (wrapper *GGContextWrapper) QuadraticTo(cx, cy, x, y float64) {
	wrapper.Context.QuadraticTo(cx, cy, x, y)
}

func (wrapper *GGContextWrapper) CubicTo(x1, y1, x2, y2, x, y float64) {
	wrapper.Context.CubicTo(x1, y1, x2, y2, x, y)
}

func (wrapper *GGContextWrapper) ClosePath() {
	wrapper.Context.ClosePath()
}

func (wrapper *GGContextWrapper) DrawCircle(cx, cy, radius float64) {
	wrapper.Context.DrawCircle(cx, cy, radius)
}

func (wrapper *GGContextWrapper) DrawRectangle(x, y, width, height float64) {
	wrapper.Context.DrawRectangle(x, y, width, height)
}

// SetColor takes the straight alpha colors of a scene.
func (wrapper *GGContextWrapper) SetColor(c color.Color) {
	if rgba, ok := c.(color.RGBA); ok {
		c = color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}
	}
	wrapper.Context.SetColor(c)
}

func (wrapper *GGContextWrapper) Fill() {
	wrapper.Context.SetFillRuleWinding()
	wrapper.Context.Fill()
}

func (wrapper *GGContextWrapper) NewSubPath() {
	wrapper.Context.NewSubPath()
}

// transform maps module space onto output units.
type transform struct {
	scale, dx, dy float64
	// snap rounds rectangle edges to whole units.
	snap bool
}

func fitTransform(scene *render.Scene, size Size) transform {
	scale, dx, dy := scene.Fit(size.Width, size.Height)
	return transform{scale: scale, dx: dx, dy: dy}
}

func (t transform) pt(v render.Vec) (float64, float64) {
	return t.dx + v.X*t.scale, t.dy + v.Y*t.scale
}

// box maps a module space box, snapped when t.snap is set.
func (t transform) box(x, y, w, h float64) (float64, float64, float64, float64) {
	x0, y0 := t.pt(render.Vec{X: x, Y: y})
	x1, y1 := t.pt(render.Vec{X: x + w, Y: y + h})
	if t.snap {
		x0, y0, x1, y1 = math.Round(x0), math.Round(y0), math.Round(x1), math.Round(y1)
	}
	return x0, y0, x1 - x0, y1 - y0
}

// drawPrimitive adds p to the current path of gc.
func drawPrimitive(gc GraphicsContext, p render.Primitive, t transform) {
	switch v := p.(type) {
	case render.Rect:
		gc.DrawRectangle(t.box(v.X, v.Y, v.W, v.H))
	case render.Circle:
		x, y := t.pt(render.Vec{X: v.CX, Y: v.CY})
		gc.DrawCircle(x, y, v.R*t.scale)
	default:
		drawSegments(gc, render.Outline(p), t)
	}
}

func drawSegments(gc GraphicsContext, segs []render.Segment, t transform) {
	for _, s := range segs {
		switch s.Op {
		case render.OpMoveTo:
			gc.MoveTo(t.pt(s.P[0]))
		case render.OpLineTo:
			gc.LineTo(t.pt(s.P[0]))
		case render.OpQuadTo:
			cx, cy := t.pt(s.P[0])
			x, y := t.pt(s.P[1])
			gc.QuadraticTo(cx, cy, x, y)
		case render.OpCubicTo:
			x1, y1 := t.pt(s.P[0])
			x2, y2 := t.pt(s.P[1])
			x, y := t.pt(s.P[2])
			gc.CubicTo(x1, y1, x2, y2, x, y)
		case render.OpClose:
			gc.ClosePath()
		}
	}
}

// shapeClass is a run of primitives drawn with one fill.
type shapeClass struct {
	name       string
	fill       color.RGBA
	crisp      bool
	primitives []render.Primitive
}

// shapeClasses lists what the vector surfaces draw, bottom to top. The
// quiet margin is left out since the background already covers it.
func shapeClasses(scene *render.Scene) []shapeClass {
	var classes []shapeClass
	for _, l := range scene.Layers {
		if l.Zone == encoder.ZoneQuietMargin || len(l.Primitives) == 0 {
			continue
		}
		classes = append(classes, shapeClass{
			name:       l.Zone.String(),
			fill:       l.Primitives[0].Color(),
			crisp:      l.Crisp,
			primitives: l.Primitives,
		})
	}
	if f := scene.Frame; f != nil && len(f.Primitives) > 0 {
		classes = append(classes, shapeClass{name: "frame", fill: f.Primitives[0].Color(), primitives: f.Primitives})
	}
	return classes
}

// paintShapes fills every shape class of scene. When eachFill is set every
// primitive is filled on its own, otherwise a class is one path and one
// fill, so abutting shapes leave no anti-aliasing seams.
func paintShapes(gc GraphicsContext, scene *render.Scene, t transform, eachFill bool) {
	for _, class := range shapeClasses(scene) {
		if class.fill.A == 0 {
			continue
		}
		gc.SetColor(class.fill)
		ct := t
		ct.snap = t.snap && class.crisp
		for _, p := range class.primitives {
			drawPrimitive(gc, p, ct)
			if eachFill {
				gc.Fill()
			}
		}
		if !eachFill {
			gc.Fill()
		}
	}
}

// circleCubics approximates a full circle by four clockwise cubic arcs, for
// surfaces without a native circle.
func circleCubics(gc GraphicsContext, cx, cy, r float64) {
	k := r * 4 / 3 * (math.Sqrt2 - 1)
	gc.MoveTo(cx+r, cy)
	gc.CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	gc.CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	gc.CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	gc.CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	gc.ClosePath()
}

// rectanglePath is the clockwise rectangle of surfaces without a native one.
func rectanglePath(gc GraphicsContext, x, y, w, h float64) {
	gc.MoveTo(x, y)
	gc.LineTo(x+w, y)
	gc.LineTo(x+w, y+h)
	gc.LineTo(x, y+h)
	gc.ClosePath()
}
