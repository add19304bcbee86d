// Package imgkit decodes and prepares logo images for the encoders.
package imgkit

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const MIMESVG = "image/svg+xml"

// ErrEmptyImage is returned for empty sources and zero target sizes.
var ErrEmptyImage = errors.New("empty image")

// IsSVG sniffs an SVG document.
func IsSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimSpace(head)
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) || bytes.HasPrefix(head, []byte("<!--"))) && bytes.Contains(head, []byte("<svg"))
}

// Decode reads a PNG, JPEG, GIF, WebP or SVG image. SVG documents are only
// checked, the returned image is nil and they should be drawn with
// RasterizeSVG at the size they are needed.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	if IsSVG(data) {
		if _, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode); err != nil {
			return nil, "", errors.Wrap(err, "imgkit: parse svg")
		}
		return nil, MIMESVG, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(err, "imgkit: decode")
	}
	return img, "image/" + format, nil
}

// ReadDataURI returns the payload and media type of a data: URI.
func ReadDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", errors.Errorf("imgkit: not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", errors.Errorf("imgkit: data uri without payload")
	}

	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", errors.Wrap(err, "imgkit: data uri")
		}
		return data, mime, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", errors.Wrap(err, "imgkit: data uri")
	}
	return []byte(s), mime, nil
}

// Scale draws src into rect with scale, CatmullRom when nil.
func Scale(src image.Image, rect image.Rectangle, scale draw.Scaler) image.Image {
	if scale == nil {
		scale = draw.CatmullRom
	}

	dst := image.NewNRGBA(rect)
	scale.Scale(dst, rect, src, src.Bounds(), draw.Over, nil)
	return dst
}

// Fit scales src to fit inside w x h keeping its aspect ratio, centered on a
// transparent canvas.
func Fit(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	if b.Empty() || w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	}
	tw, th := contain(float64(b.Dx()), float64(b.Dy()), w, h)
	ox, oy := (w-tw)/2, (h-th)/2

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, image.Rect(ox, oy, ox+tw, oy+th), src, b, draw.Over, nil)
	return dst
}

func contain(sw, sh float64, w, h int) (int, int) {
	k := min(float64(w)/sw, float64(h)/sh)
	return max(int(sw*k+.5), 1), max(int(sh*k+.5), 1)
}

// RasterizeSVG draws an SVG document into w x h pixels, fitted and centered
// like Fit does.
func RasterizeSVG(src []byte, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(src), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(err, "imgkit: parse svg")
	}

	x, y, tw, th := 0.0, 0.0, float64(w), float64(h)
	if vw, vh := icon.ViewBox.W, icon.ViewBox.H; vw > 0 && vh > 0 {
		iw, ih := contain(vw, vh, w, h)
		x, y = float64(w-iw)/2, float64(h-ih)/2
		tw, th = float64(iw), float64(ih)
	}
	icon.SetTarget(x, y, tw, th)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return dst, nil
}

// Flatten composites src over an opaque bg, for formats without alpha.
func Flatten(src image.Image, bg color.Color) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(dst, b, src, b.Min, draw.Over)
	return dst
}

// EncodePNG returns img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "imgkit: encode png")
	}
	return buf.Bytes(), nil
}
