package standard

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	"github.com/pkg/errors"

	"github.com/Mictilt/qrdx/render"
	"github.com/Mictilt/qrdx/writer/standard/imgkit"
)

// SvgoEncoder writes scenes as SVG with svgo. The view box is in module
// units, width and height carry the pixel size.
type SvgoEncoder struct {
	oo *outputImageOptions
}

func (s SvgoEncoder) Encode(w io.Writer, scene *render.Scene, size Size) error {
	oo := s.oo
	if oo == nil {
		oo = defaultOutputImageOptions()
	}
	d := oo.svgDecimals

	// letterbox bands are part of the view box so the background covers them
	t := fitTransform(scene, size)
	minX, minY := clean(-t.dx/t.scale), clean(-t.dy/t.scale)
	vw, vh := float64(size.Width)/t.scale, float64(size.Height)/t.scale

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Decimals = d
	canvas.Startview(float64(size.Width), float64(size.Height), minX, minY, vw, vh)

	if bg := scene.Background; bg.A > 0 {
		canvas.Rect(minX, minY, vw, vh, fillAttrs(bg)...)
	}

	for _, class := range shapeClasses(scene) {
		if class.fill.A == 0 {
			continue
		}
		id := "zone-" + class.name
		if class.name == "frame" {
			id = "frame"
		}
		attrs := append([]string{fmt.Sprintf(`id="%s"`, id)}, fillAttrs(class.fill)...)
		if class.crisp {
			attrs = append(attrs, `shape-rendering="crispEdges"`)
		}

		canvas.Group(attrs...)
		for _, p := range class.primitives {
			s.drawPrimitive(canvas, p, d)
		}
		canvas.Gend()
	}

	if l := scene.Logo; l != nil {
		wpx, hpx := int(math.Round(l.W*t.scale)), int(math.Round(l.H*t.scale))
		href, err := logoDataURI(l, wpx, hpx)
		if err != nil {
			return err
		}
		// the image is laid out in output pixels inside the module space
		canvas.Gtransform(fmt.Sprintf("translate(%s %s) scale(%s)", num(l.X, d), num(l.Y, d), num(1/t.scale, 6)))
		canvas.Image(0, 0, wpx, hpx, href, `preserveAspectRatio="xMidYMid meet"`)
		canvas.Gend()
	}

	if c := scene.Caption; c != nil && strings.TrimSpace(c.Text) != "" && c.Color.A > 0 {
		attrs := []string{
			`text-anchor="middle"`,
			`dominant-baseline="central"`,
			`font-family="Helvetica, Arial, sans-serif"`,
			fmt.Sprintf(`font-size="%s"`, num(c.Size, d)),
		}
		canvas.Text(c.X, c.Y, c.Text, append(attrs, fillAttrs(c.Color)...)...)
	}
	canvas.End()

	_, err := w.Write(buf.Bytes())
	return err
}

func (s SvgoEncoder) drawPrimitive(canvas *svg.SVG, p render.Primitive, decimals int) {
	switch v := p.(type) {
	case render.Rect:
		canvas.Rect(v.X, v.Y, v.W, v.H)
	case render.RoundRect:
		r := math.Min(v.R, math.Min(v.W, v.H)/2)
		canvas.Roundrect(v.X, v.Y, v.W, v.H, r, r)
	case render.Circle:
		canvas.Circle(v.CX, v.CY, v.R)
	default:
		rec := newSVGPathRecorder(decimals)
		drawSegments(rec, render.Outline(p), transform{scale: 1})
		canvas.Path(rec.String())
	}
}

// fillAttrs spells c as fill attributes, with an opacity when translucent.
func fillAttrs(c color.RGBA) []string {
	attrs := []string{fmt.Sprintf(`fill="#%02x%02x%02x"`, c.R, c.G, c.B)}
	if c.A < 0xff {
		attrs = append(attrs, fmt.Sprintf(`fill-opacity="%s"`, num(float64(c.A)/0xff, 3)))
	}
	return attrs
}

// logoDataURI embeds SVG logos as they are and everything else as a PNG
// scaled to the pixels it covers.
func logoDataURI(l *render.Logo, w, h int) (string, error) {
	if l.MIME == imgkit.MIMESVG && len(l.Source) > 0 {
		return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(l.Source), nil
	}
	img, err := logoRaster(l, w, h)
	if err != nil {
		return "", err
	}
	data, err := imgkit.EncodePNG(img)
	if err != nil {
		return "", errors.Wrap(err, "logo")
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// clean drops float noise around zero, which would print as "-0.000".
func clean(v float64) float64 {
	if math.Abs(v) < 1e-9 {
		return 0
	}
	return v
}

// num formats v with at most decimals digits and no trailing zeros.
func num(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// svgPathRecorder is a GraphicsContext that records path data instead of
// drawing, so shapes reach SVG through the same calls as the other surfaces.
type svgPathRecorder struct {
	decimals int
	commands []string
}

func newSVGPathRecorder(decimals int) *svgPathRecorder {
	return &svgPathRecorder{decimals: decimals}
}

func (r *svgPathRecorder) add(op string, xy ...float64) {
	parts := make([]string, 0, len(xy)+1)
	parts = append(parts, op)
	for _, v := range xy {
		parts = append(parts, num(v, r.decimals))
	}
	r.commands = append(r.commands, strings.Join(parts, " "))
}

func (r *svgPathRecorder) MoveTo(x, y float64)                  { r.add("M", x, y) }
func (r *svgPathRecorder) LineTo(x, y float64)                  { r.add("L", x, y) }
func (r *svgPathRecorder) QuadraticTo(cx, cy, x, y float64)     { r.add("Q", cx, cy, x, y) }
func (r *svgPathRecorder) CubicTo(x1, y1, x2, y2, x, y float64) { r.add("C", x1, y1, x2, y2, x, y) }
func (r *svgPathRecorder) ClosePath()                           { r.add("Z") }
func (r *svgPathRecorder) NewSubPath()                          {}
func (r *svgPathRecorder) SetColor(color.Color)                 {}
func (r *svgPathRecorder) Fill()                                {}

func (r *svgPathRecorder) DrawRectangle(x, y, w, h float64) {
	rectanglePath(r, x, y, w, h)
}

func (r *svgPathRecorder) DrawCircle(cx, cy, radius float64) {
	r.add("M", cx+radius, cy)
	r.add("A", radius, radius, 0, 1, 1, cx-radius, cy)
	r.add("A", radius, radius, 0, 1, 1, cx+radius, cy)
	r.add("Z")
}

func (r *svgPathRecorder) String() string {
	return strings.Join(r.commands, " ")
}
