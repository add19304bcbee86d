package standard_test

import (
	"bytes"
	"encoding/xml"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mictilt/qrdx/encoder"
	"github.com/Mictilt/qrdx/render"
	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard"
)

var fixedDate = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func mustScene(t testing.TB, cfg style.Config, opts ...render.Option) *render.Scene {
	t.Helper()
	m, err := encoder.Encode("https://example.com", encoder.ErrorCorrectionQuart)
	require.NoError(t, err)
	scene, err := render.Render(m, style.Resolve(cfg), opts...)
	require.NoError(t, err)
	return scene
}

func wellFormed(t *testing.T, data []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func Test_ParseFormat(t *testing.T) {
	cases := map[string]standard.Format{
		"png":  standard.FormatPNG,
		"PNG":  standard.FormatPNG,
		"jpg":  standard.FormatJPG,
		"jpeg": standard.FormatJPG,
		"Svg":  standard.FormatSVG,
		"pdf":  standard.FormatPDF,
		" eps": standard.FormatEPS,
	}
	for in, want := range cases {
		got, err := standard.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := standard.ParseFormat("gif")
	assert.ErrorIs(t, err, standard.ErrUnsupportedFormat)
}

func Test_Format_MIMEType(t *testing.T) {
	assert.Equal(t, "image/png", standard.FormatPNG.MIMEType())
	assert.Equal(t, "image/jpeg", standard.FormatJPG.MIMEType())
	assert.Equal(t, "image/svg+xml", standard.FormatSVG.MIMEType())
	assert.Equal(t, "application/pdf", standard.FormatPDF.MIMEType())
	assert.Equal(t, "application/postscript", standard.FormatEPS.MIMEType())
	assert.Equal(t, "", standard.Format("gif").MIMEType())
	assert.Equal(t, "jpg", standard.Format("jpeg").Extension())
}

func Test_ValidateSize(t *testing.T) {
	cases := []struct {
		size standard.Size
		msg  string
	}{
		{standard.Square(49), "Size must be at least 50x50 pixels"},
		{standard.Square(5001), "Size must not exceed 5000x5000 pixels"},
		{standard.Size{Width: 300, Height: 301}, "Width and height must be equal for QR codes"},
		{standard.Size{Width: 40, Height: 6000}, "Size must be at least 50x50 pixels"},
		{standard.Square(50), ""},
		{standard.Square(199), ""},
		{standard.Square(200), ""},
		{standard.Square(5000), ""},
	}
	for _, tc := range cases {
		err := standard.ValidateSize(tc.size)
		if tc.msg == "" {
			assert.NoError(t, err, tc.size.String())
			continue
		}
		require.Error(t, err, tc.size.String())
		assert.Equal(t, tc.msg, err.Error())
		assert.ErrorIs(t, err, standard.ErrSizeOutOfBounds)
		assert.Equal(t, standard.ErrSizeOutOfBounds, pkgerrors.Cause(err))

		var se *standard.SizeError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, tc.size.Width, se.Width)
	}
}

func Test_PresetSize(t *testing.T) {
	s, ok := standard.PresetSize("large")
	require.True(t, ok)
	assert.Equal(t, standard.Square(800), s)

	_, ok = standard.PresetSize("huge")
	assert.False(t, ok)
	for _, p := range standard.Presets {
		assert.NoError(t, standard.ValidateSize(p.Size), p.Name)
	}
}

func Test_ParseSize(t *testing.T) {
	cases := map[string]standard.Size{
		"400":      standard.Square(400),
		" Medium ": standard.Square(400),
		"3xl":      standard.Square(2000),
		"300x200":  {Width: 300, Height: 200},
	}
	for in, want := range cases {
		got, err := standard.ParseSize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "big", "10xfoo"} {
		_, err := standard.ParseSize(in)
		assert.ErrorIs(t, err, standard.ErrSizeOutOfBounds, in)
	}
}

func Test_Serialize_Refuses(t *testing.T) {
	scene := mustScene(t, style.Config{})

	out, err := standard.Serialize(scene, "gif", standard.Square(400))
	assert.ErrorIs(t, err, standard.ErrUnsupportedFormat)
	assert.Nil(t, out)

	out, err = standard.Serialize(scene, standard.FormatPNG, standard.Size{Width: 400, Height: 200})
	assert.ErrorIs(t, err, standard.ErrSizeOutOfBounds)
	assert.Nil(t, out)

	_, err = standard.Serialize(nil, standard.FormatPNG, standard.Square(400))
	assert.Error(t, err)
}

func Test_Serialize_SVG(t *testing.T) {
	scene := mustScene(t, style.Config{})
	out, err := standard.Serialize(scene, standard.FormatSVG, standard.Square(400))
	require.NoError(t, err)
	wellFormed(t, out)

	doc := string(out)
	assert.Contains(t, doc, `width="400.000"`)
	assert.Contains(t, doc, `viewBox="0.000 0.000 29.000 29.000"`)
	assert.Contains(t, doc, `fill="#ffffff"`)
	for _, id := range []string{"zone-body", "zone-timing", "zone-alignment", "zone-corner-eye", "zone-corner-eye-dot"} {
		assert.Contains(t, doc, `id="`+id+`"`)
	}
	assert.NotContains(t, doc, "zone-quiet-margin")
	assert.Contains(t, doc, `shape-rendering="crispEdges"`)
	assert.NotContains(t, doc, "<image")
	assert.NotContains(t, doc, "<text")
}

func Test_Serialize_SVG_Patterns(t *testing.T) {
	scene := mustScene(t, style.Config{BodyPattern: "fluid", CornerEyePattern: "circle", CornerEyeDotPattern: "circle", BgColor: "transparent"})
	out, err := standard.Serialize(scene, standard.FormatSVG, standard.Square(256))
	require.NoError(t, err)
	wellFormed(t, out)

	doc := string(out)
	assert.Contains(t, doc, "<path")
	assert.Contains(t, doc, "<circle")
	assert.Contains(t, doc, " Q ")
	// transparent background gets no rect at all
	assert.NotContains(t, doc, `fill="#ffffff"`)
}

func Test_Serialize_SVG_LogoAndCaption(t *testing.T) {
	plan, err := encoder.PlanLogo("https://example.com", encoder.ErrorCorrectionQuart, encoder.LogoRequest{Fraction: .2})
	require.NoError(t, err)

	logo := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	st := style.Resolve(style.Config{ShowLogo: true, TemplateID: "caption", CustomText: "Scan <me>"})
	scene, err := render.Render(plan.Matrix, st, render.WithLogo(plan.Reserved, render.LogoImage{Image: logo}))
	require.NoError(t, err)

	out, err := standard.Serialize(scene, standard.FormatSVG, standard.Square(400))
	require.NoError(t, err)
	wellFormed(t, out)

	doc := string(out)
	assert.Contains(t, doc, "<image")
	assert.Contains(t, doc, "data:image/png;base64,")
	assert.Contains(t, doc, `id="frame"`)
	assert.Contains(t, doc, "Scan &lt;me&gt;")

	svgLogo := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"><rect width="1" height="1"/></svg>`)
	scene, err = render.Render(plan.Matrix, st, render.WithLogo(plan.Reserved, render.LogoImage{Source: svgLogo, MIME: "image/svg+xml"}))
	require.NoError(t, err)
	out, err = standard.Serialize(scene, standard.FormatSVG, standard.Square(400))
	require.NoError(t, err)
	assert.Contains(t, string(out), "data:image/svg+xml;base64,")
}

func Test_Serialize_PNG(t *testing.T) {
	scene := mustScene(t, style.Config{})
	out, err := standard.Serialize(scene, standard.FormatPNG, standard.Square(400))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 400), img.Bounds())

	scale, dx, dy := scene.Fit(400, 400)
	at := func(col, row float64) color.Color {
		return img.At(int(dx+(scene.Origin.X+col)*scale), int(dy+(scene.Origin.Y+row)*scale))
	}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black := color.NRGBA{A: 0xff}
	toNRGBA := func(c color.Color) color.NRGBA { return color.NRGBAModel.Convert(c).(color.NRGBA) }

	assert.Equal(t, white, toNRGBA(img.At(1, 1)), "quiet margin")
	assert.Equal(t, black, toNRGBA(at(.5, .5)), "finder ring")
	assert.Equal(t, white, toNRGBA(at(1.5, 1.5)), "finder gap")
	assert.Equal(t, black, toNRGBA(at(3.5, 3.5)), "finder dot")
}

func Test_Serialize_PNG_TransparentBackground(t *testing.T) {
	scene := mustScene(t, style.Config{BgColor: "transparent"})
	out, err := standard.Serialize(scene, standard.FormatPNG, standard.Square(100))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
}

func Test_Serialize_PNG_CaptionAndLogo(t *testing.T) {
	plan, err := encoder.PlanLogo("https://example.com", encoder.ErrorCorrectionQuart, encoder.LogoRequest{})
	require.NoError(t, err)
	red := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range red.Pix {
		if i%4 == 0 || i%4 == 3 {
			red.Pix[i] = 0xff
		}
	}
	st := style.Resolve(style.Config{ShowLogo: true, TemplateID: "badge"})
	scene, err := render.Render(plan.Matrix, st, render.WithLogo(plan.Reserved, render.LogoImage{Image: red}))
	require.NoError(t, err)

	out, err := standard.Serialize(scene, standard.FormatPNG, standard.Square(400))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	l := scene.Logo
	scale, dx, dy := scene.Fit(400, 400)
	c := color.NRGBAModel.Convert(img.At(int(dx+(l.X+l.W/2)*scale), int(dy+(l.Y+l.H/2)*scale))).(color.NRGBA)
	assert.Greater(t, c.R, uint8(0xf0))
	assert.Less(t, c.G, uint8(0x10))
}

func Test_Serialize_JPG(t *testing.T) {
	scene := mustScene(t, style.Config{BgColor: "transparent"})
	out, err := standard.Serialize(scene, standard.FormatJPG, standard.Square(200), standard.WithJPEGQuality(80))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())

	// transparent backgrounds are flattened onto white
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Greater(t, r, uint32(0xf000))
	assert.Greater(t, g, uint32(0xf000))
	assert.Greater(t, b, uint32(0xf000))
}

func Test_Serialize_PDF(t *testing.T) {
	scene := mustScene(t, style.Config{TemplateID: "caption", CornerEyePattern: "circle"})
	out, err := standard.Serialize(scene, standard.FormatPDF, standard.Square(400),
		standard.WithCreationDate(fixedDate), standard.WithPDFCompression(false))
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "%PDF-"))
	assert.Contains(t, doc, "/Creator (QRDX)")
	assert.Contains(t, doc, "/Title (QR Code)")
	assert.Contains(t, doc, "/Helvetica")
	assert.Contains(t, doc, "(Scan me) Tj")
	assert.Contains(t, doc, " c\n", "curves are cubic")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "%%EOF"))
}

func Test_Serialize_EPS(t *testing.T) {
	scene := mustScene(t, style.Config{})
	out, err := standard.Serialize(scene, standard.FormatEPS, standard.Square(400), standard.WithCreationDate(fixedDate))
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "%!PS-Adobe-3.0 EPSF-3.0\n"))
	assert.Contains(t, doc, "%%BoundingBox: 0 0 400 400\n")
	assert.Contains(t, doc, "%%HiResBoundingBox: 0.000000 0.000000 400.000000 400.000000\n")
	assert.Contains(t, doc, "%%Creator: QRDX\n")
	assert.Contains(t, doc, "%%Title: QR Code\n")
	assert.Contains(t, doc, "%%LanguageLevel: 2\n")
	assert.Contains(t, doc, "0 400 translate\n1 -1 scale\n")
	assert.Contains(t, doc, "1 1 1 setrgbcolor\n0 0 400 400 rectfill\n")
	assert.True(t, strings.HasSuffix(doc, "showpage\n%%EOF\n"))

	// background and foreground, nothing else
	assert.Equal(t, 2, strings.Count(doc, "setrgbcolor"))
	assert.Equal(t, strings.Count(doc, "newpath"), strings.Count(doc, "\nfill\n"))
	assert.Equal(t, scene.Count()-len(scene.Layer(encoder.ZoneQuietMargin).Primitives), strings.Count(doc, "newpath"))

	again, err := standard.Serialize(scene, standard.FormatEPS, standard.Square(400), standard.WithCreationDate(fixedDate))
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func Test_Serialize_EPS_Colors(t *testing.T) {
	scene := mustScene(t, style.Config{EyeColor: "#ff0000", CornerEyePattern: "circle", BodyPattern: "dots"})
	out, err := standard.Serialize(scene, standard.FormatEPS, standard.Square(400))
	require.NoError(t, err)

	doc := string(out)
	// white, black for body, timing and alignment, red eyes, black dots again
	assert.Equal(t, 4, strings.Count(doc, "setrgbcolor"))
	assert.Contains(t, doc, "1 0 0 setrgbcolor\n")
	assert.Contains(t, doc, "curveto")
	assert.NotContains(t, doc, "<image")
}

type stubEncoder struct{ called bool }

func (s *stubEncoder) Encode(w io.Writer, scene *render.Scene, size standard.Size) error {
	s.called = true
	_, err := w.Write([]byte("stub"))
	return err
}

func Test_Serialize_CustomEncoder(t *testing.T) {
	stub := &stubEncoder{}
	out, err := standard.Serialize(mustScene(t, style.Config{}), "jpeg", standard.Square(100),
		standard.WithCustomImageEncoder("JPEG", stub))
	require.NoError(t, err)
	assert.True(t, stub.called)
	assert.Equal(t, []byte("stub"), out)
}
