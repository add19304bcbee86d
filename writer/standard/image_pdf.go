package standard

import (
	"bytes"
	"image/color"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/Mictilt/qrdx/render"
	"github.com/Mictilt/qrdx/writer/standard/imgkit"
)

// mmPerPixel converts CSS pixels to millimetres at 96 DPI.
const mmPerPixel = 25.4 / 96

type pdfEncoder struct {
	oo *outputImageOptions
}

// Encode writes a single page PDF sized to the output at 96 DPI, with every
// shape drawn as a vector fill.
func (e pdfEncoder) Encode(w io.Writer, scene *render.Scene, size Size) error {
	oo := e.oo
	if oo == nil {
		oo = defaultOutputImageOptions()
	}
	pw, ph := float64(size.Width)*mmPerPixel, float64(size.Height)*mmPerPixel

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pw, Ht: ph},
	})
	pdf.SetCreator("QRDX", false)
	pdf.SetTitle("QR Code", false)
	pdf.SetCreationDate(oo.createdAt())
	pdf.SetModificationDate(oo.createdAt())
	pdf.SetCompression(oo.compress)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	gc := &pdfContext{pdf: pdf}
	if bg := scene.Background; bg.A > 0 {
		gc.SetColor(bg)
		pdf.Rect(0, 0, pw, ph, "F")
	}

	t := fitTransform(scene, size)
	t.scale, t.dx, t.dy = t.scale*mmPerPixel, t.dx*mmPerPixel, t.dy*mmPerPixel
	paintShapes(gc, scene, t, false)
	gc.SetColor(color.RGBA{A: 0xff})

	if l := scene.Logo; l != nil {
		x, y, lw, lh := t.box(l.X, l.Y, l.W, l.H)
		// twice the output pixels keeps the logo sharp when zoomed
		img, err := logoRaster(l, int(2*lw/mmPerPixel), int(2*lh/mmPerPixel))
		if err != nil {
			return err
		}
		data, err := imgkit.EncodePNG(img)
		if err != nil {
			return errors.Wrap(err, "logo")
		}
		opt := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("logo", opt, bytes.NewReader(data))
		pdf.ImageOptions("logo", x, y, lw, lh, false, opt, 0, "")
	}

	if c := scene.Caption; c != nil && strings.TrimSpace(c.Text) != "" && c.Color.A > 0 {
		sizeMM := c.Size * t.scale
		pdf.SetFont("Helvetica", "", sizeMM*72/25.4)
		pdf.SetTextColor(int(c.Color.R), int(c.Color.G), int(c.Color.B))
		text := pdf.UnicodeTranslatorFromDescriptor("")(c.Text)
		x, y := t.pt(render.Vec{X: c.X, Y: c.Y})
		pdf.Text(x-pdf.GetStringWidth(text)/2, y+.35*sizeMM, text)
	}

	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "pdf")
	}
	return pdf.Output(w)
}

// pdfContext draws onto an fpdf page. Quadratic segments are raised to
// cubics since the PDF "v" operator is not a true quadratic.
type pdfContext struct {
	pdf    *fpdf.Fpdf
	x, y   float64
	sx, sy float64
}

func (c *pdfContext) MoveTo(x, y float64) {
	c.pdf.MoveTo(x, y)
	c.x, c.y, c.sx, c.sy = x, y, x, y
}

func (c *pdfContext) LineTo(x, y float64) {
	c.pdf.LineTo(x, y)
	c.x, c.y = x, y
}

func (c *pdfContext) QuadraticTo(cx, cy, x, y float64) {
	x1, y1, x2, y2 := quadToCubic(c.x, c.y, cx, cy, x, y)
	c.CubicTo(x1, y1, x2, y2, x, y)
}

func (c *pdfContext) CubicTo(x1, y1, x2, y2, x, y float64) {
	c.pdf.CurveBezierCubicTo(x1, y1, x2, y2, x, y)
	c.x, c.y = x, y
}

func (c *pdfContext) ClosePath() {
	c.pdf.ClosePath()
	c.x, c.y = c.sx, c.sy
}

func (c *pdfContext) NewSubPath() {}

func (c *pdfContext) DrawRectangle(x, y, w, h float64) {
	rectanglePath(c, x, y, w, h)
}

func (c *pdfContext) DrawCircle(cx, cy, radius float64) {
	circleCubics(c, cx, cy, radius)
}

func (c *pdfContext) SetColor(col color.Color) {
	rgba := toRGBA(col)
	c.pdf.SetFillColor(int(rgba.R), int(rgba.G), int(rgba.B))
	c.pdf.SetAlpha(float64(rgba.A)/0xff, "Normal")
}

func (c *pdfContext) Fill() {
	c.pdf.DrawPath("f")
}

// quadToCubic returns the cubic control points of a quadratic segment.
func quadToCubic(x0, y0, cx, cy, x, y float64) (x1, y1, x2, y2 float64) {
	return x0 + 2.0/3*(cx-x0), y0 + 2.0/3*(cy-y0),
		x + 2.0/3*(cx-x), y + 2.0/3*(cy-y)
}

// toRGBA reads scene colors back as straight alpha RGBA.
func toRGBA(c color.Color) color.RGBA {
	switch v := c.(type) {
	case color.RGBA:
		return v
	case color.NRGBA:
		return color.RGBA{R: v.R, G: v.G, B: v.B, A: v.A}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}
