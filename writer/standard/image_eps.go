package standard

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/Mictilt/qrdx/render"
)

type epsEncoder struct {
	oo *outputImageOptions
}

// Encode writes Encapsulated PostScript in pixel units. Only shapes are
// drawn, the logo and the caption are left out.
func (e epsEncoder) Encode(w io.Writer, scene *render.Scene, size Size) error {
	oo := e.oo
	if oo == nil {
		oo = defaultOutputImageOptions()
	}
	bw := bufio.NewWriter(w)
	W, H := size.Width, size.Height

	fmt.Fprintf(bw, "%%!PS-Adobe-3.0 EPSF-3.0\n")
	fmt.Fprintf(bw, "%%%%BoundingBox: 0 0 %d %d\n", W, H)
	fmt.Fprintf(bw, "%%%%HiResBoundingBox: 0.000000 0.000000 %d.000000 %d.000000\n", W, H)
	fmt.Fprintf(bw, "%%%%Creator: QRDX\n")
	fmt.Fprintf(bw, "%%%%Title: QR Code\n")
	fmt.Fprintf(bw, "%%%%CreationDate: %s\n", oo.createdAt().UTC().Format(time.RFC3339))
	fmt.Fprintf(bw, "%%%%DocumentData: Clean7Bit\n")
	fmt.Fprintf(bw, "%%%%Origin: 0 0\n")
	fmt.Fprintf(bw, "%%%%LanguageLevel: 2\n")
	fmt.Fprintf(bw, "%%%%Pages: 1\n")
	fmt.Fprintf(bw, "%%%%Page: 1 1\n\n")

	// y grows downwards like every other surface
	fmt.Fprintf(bw, "0 %d translate\n1 -1 scale\n\n", H)

	gc := &epsContext{w: bw}
	if bg := scene.Background; bg.A > 0 {
		gc.SetColor(bg)
		fmt.Fprintf(bw, "0 0 %d %d rectfill\n\n", W, H)
	}
	paintShapes(gc, scene, fitTransform(scene, size), true)

	fmt.Fprintf(bw, "\nshowpage\n%%%%EOF\n")
	return bw.Flush()
}

// epsContext writes PostScript path operators. A color is only set when it
// differs from the current one.
type epsContext struct {
	w        *bufio.Writer
	open     bool
	hasColor bool
	color    color.RGBA
	x, y     float64
	sx, sy   float64
}

func (c *epsContext) begin() {
	if !c.open {
		c.w.WriteString("newpath\n")
		c.open = true
	}
}

func (c *epsContext) MoveTo(x, y float64) {
	c.begin()
	fmt.Fprintf(c.w, "%s %s moveto\n", num(x, 3), num(y, 3))
	c.x, c.y, c.sx, c.sy = x, y, x, y
}

func (c *epsContext) LineTo(x, y float64) {
	fmt.Fprintf(c.w, "%s %s lineto\n", num(x, 3), num(y, 3))
	c.x, c.y = x, y
}

func (c *epsContext) QuadraticTo(cx, cy, x, y float64) {
	x1, y1, x2, y2 := quadToCubic(c.x, c.y, cx, cy, x, y)
	c.CubicTo(x1, y1, x2, y2, x, y)
}

func (c *epsContext) CubicTo(x1, y1, x2, y2, x, y float64) {
	fmt.Fprintf(c.w, "%s %s %s %s %s %s curveto\n",
		num(x1, 3), num(y1, 3), num(x2, 3), num(y2, 3), num(x, 3), num(y, 3))
	c.x, c.y = x, y
}

func (c *epsContext) ClosePath() {
	c.w.WriteString("closepath\n")
	c.x, c.y = c.sx, c.sy
}

func (c *epsContext) NewSubPath() {}

func (c *epsContext) DrawRectangle(x, y, w, h float64) {
	rectanglePath(c, x, y, w, h)
}

func (c *epsContext) DrawCircle(cx, cy, radius float64) {
	circleCubics(c, cx, cy, radius)
}

func (c *epsContext) SetColor(col color.Color) {
	rgba := toRGBA(col)
	rgba.A = 0xff
	if c.hasColor && rgba == c.color {
		return
	}
	c.color, c.hasColor = rgba, true
	fmt.Fprintf(c.w, "%s %s %s setrgbcolor\n",
		num(float64(rgba.R)/0xff, 4), num(float64(rgba.G)/0xff, 4), num(float64(rgba.B)/0xff, 4))
}

func (c *epsContext) Fill() {
	if !c.open {
		return
	}
	c.w.WriteString("fill\n")
	c.open = false
}
