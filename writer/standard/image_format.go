package standard

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Mictilt/qrdx/render"
	"github.com/Mictilt/qrdx/writer/standard/imgkit"
)

// ImageEncoder is an interface which describes the rule how to encode a
// rendered scene into io.Writer at the given pixel size.
type ImageEncoder interface {
	Encode(w io.Writer, scene *render.Scene, size Size) error
}

// encoderFor returns the encoder of format, honouring custom encoders.
func encoderFor(format Format, oo *outputImageOptions) (ImageEncoder, error) {
	if enc, ok := oo.encoders[format]; ok {
		return enc, nil
	}
	switch format {
	case FormatPNG:
		return pngEncoder{oo: oo}, nil
	case FormatJPG:
		return jpegEncoder{oo: oo}, nil
	case FormatSVG:
		return SvgoEncoder{oo: oo}, nil
	case FormatPDF:
		return pdfEncoder{oo: oo}, nil
	case FormatEPS:
		return epsEncoder{oo: oo}, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "format %q", format)
}

// Serialize encodes scene as format at size. Nothing is returned on error.
func Serialize(scene *render.Scene, format Format, size Size, opts ...ImageOption) ([]byte, error) {
	f, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	if err = ValidateSize(size); err != nil {
		return nil, err
	}
	if scene == nil {
		return nil, errors.New("standard: nil scene")
	}

	oo := defaultOutputImageOptions()
	for _, opt := range opts {
		opt.apply(oo)
	}
	enc, err := encoderFor(f, oo)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = enc.Encode(&buf, scene, size); err != nil {
		return nil, errors.Wrapf(err, "encode %s", f)
	}
	return buf.Bytes(), nil
}

type pngEncoder struct {
	oo *outputImageOptions
}

func (e pngEncoder) Encode(w io.Writer, scene *render.Scene, size Size) error {
	img, err := rasterize(scene, size, e.oo)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

type jpegEncoder struct {
	oo *outputImageOptions
}

// Encode flattens onto the background, or white when it is transparent,
// since JPEG has no alpha.
func (e jpegEncoder) Encode(w io.Writer, scene *render.Scene, size Size) error {
	img, err := rasterize(scene, size, e.oo)
	if err != nil {
		return err
	}
	bg := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if b := scene.Background; b.A == 0xff {
		bg = color.NRGBA{R: b.R, G: b.G, B: b.B, A: 0xff}
	}
	return jpeg.Encode(w, imgkit.Flatten(img, bg), &jpeg.Options{Quality: e.oo.jpegQuality})
}

// rasterize draws scene into a size.Width x size.Height image.
func rasterize(scene *render.Scene, size Size, oo *outputImageOptions) (image.Image, error) {
	dc := gg.NewContext(size.Width, size.Height)
	gc := &GGContextWrapper{Context: dc}

	if bg := scene.Background; bg.A > 0 {
		gc.SetColor(bg)
		dc.Clear()
	}

	t := fitTransform(scene, size)
	t.snap = true
	paintShapes(gc, scene, t, false)

	if l := scene.Logo; l != nil {
		x, y, w, h := t.box(l.X, l.Y, l.W, l.H)
		img, err := logoRaster(l, int(w), int(h))
		if err != nil {
			return nil, err
		}
		dc.DrawImage(img, int(x), int(y))
	}

	if c := scene.Caption; c != nil && strings.TrimSpace(c.Text) != "" && c.Color.A > 0 {
		font, err := captionFace(oo)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: c.Size * t.scale}))
		gc.SetColor(c.Color)
		x, y := t.pt(render.Vec{X: c.X, Y: c.Y})
		dc.DrawStringAnchored(c.Text, x, y, .5, .5)
	}
	return dc.Image(), nil
}

// logoRaster returns the logo drawn at w x h pixels.
func logoRaster(l *render.Logo, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0)), nil
	}
	if l.MIME == imgkit.MIMESVG && len(l.Source) > 0 {
		img, err := imgkit.RasterizeSVG(l.Source, w, h)
		return img, errors.Wrap(err, "logo")
	}
	img := l.Image
	if img == nil {
		decoded, _, err := imgkit.Decode(l.Source)
		if err != nil {
			return nil, errors.Wrap(err, "logo")
		}
		if decoded == nil {
			return imgkit.RasterizeSVG(l.Source, w, h)
		}
		img = decoded
	}
	return imgkit.Fit(img, w, h), nil
}

var (
	goRegularOnce sync.Once
	goRegular     *truetype.Font
	goRegularErr  error
)

func captionFace(oo *outputImageOptions) (*truetype.Font, error) {
	if oo.captionFont != nil {
		return oo.captionFont, nil
	}
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = truetype.Parse(goregular.TTF)
	})
	return goRegular, errors.Wrap(goRegularErr, "caption font")
}
