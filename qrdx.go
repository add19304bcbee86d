// Package qrdx exports styled QR codes. ExportArtifact runs the whole
// pipeline: it resolves the style, encodes the payload, lays out the scene
// and serializes it as svg, png, jpg, pdf or eps.
//
//	art, err := qrdx.ExportArtifact("https://example.com", style.Config{
//		FgColor:     "#1e3a8a",
//		BodyPattern: "dots",
//	}, standard.FormatPNG, standard.Square(400))
//	if err != nil {
//		return err
//	}
//	os.WriteFile(art.Filename, art.Data, 0o644)
package qrdx

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Mictilt/qrdx/encoder"
	"github.com/Mictilt/qrdx/render"
	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard"
)

// Artifact is a finished export.
type Artifact struct {
	Format   standard.Format
	Size     standard.Size
	MIMEType string
	Filename string
	Data     []byte

	Version int
	Level   encoder.Level
	Mask    int
	// LevelUpgraded is set when a logo forced a stronger level than the
	// style asked for.
	LevelUpgraded bool

	// Contrast is advisory, a low ratio never fails an export.
	Contrast style.Contrast
}

// DataURI returns the artifact inline. SVG is percent-encoded, everything
// else is base64.
func (a *Artifact) DataURI() string {
	if a.Format == standard.FormatSVG {
		return "data:image/svg+xml;charset=utf-8," + escapeComponent(string(a.Data))
	}
	return "data:" + a.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

// escapeComponent escapes like encodeURIComponent: letters, digits and
// -_.!~*'() stay, every other byte is percent-encoded.
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(s) * 3 / 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepInComponent(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&15])
	}
	return sb.String()
}

func keepInComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// MIMEType returns the media type of format, or "" if it is unknown.
func MIMEType(format standard.Format) string {
	f, err := standard.ParseFormat(string(format))
	if err != nil {
		return ""
	}
	return f.MIMEType()
}

// DefaultFilename is qr-code-{w}x{h}.{ext}.
func DefaultFilename(format standard.Format, size standard.Size) string {
	return fmt.Sprintf("qr-code-%s.%s", size, format.Extension())
}

func filenameFor(name string, format standard.Format, size standard.Size) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFilename(format, size)
	}
	if filepath.Ext(name) == "" {
		return name + "." + format.Extension()
	}
	return name
}

// ExportArtifact encodes payload with cfg and serializes it as format at
// size. On error no artifact is returned, the error wraps one of the
// package sentinels. Nothing is retried, the same inputs fail the same way.
func ExportArtifact(
	payload string, cfg style.Config, format standard.Format, size standard.Size, opts ...ExportOption,
) (*Artifact, error) {
	eo := defaultExportOptions()
	for _, opt := range opts {
		opt.apply(eo)
	}
	start := time.Now()

	f, err := standard.ParseFormat(string(format))
	if err != nil {
		return nil, errors.Wrap(err, "export")
	}
	if err = standard.ValidateSize(size); err != nil {
		return nil, errors.Wrap(err, "export")
	}

	st := eo.defaults.Resolve(cfg)
	scene, m, upgraded, err := eo.scene(payload, st)
	if err != nil {
		return nil, errors.Wrap(err, "export")
	}

	data, err := standard.Serialize(scene, f, size, eo.imageOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "export")
	}

	eo.logger.Debug("qr exported",
		zap.String("format", string(f)),
		zap.Stringer("size", size),
		zap.Int("version", m.Version()),
		zap.Stringer("level", m.Level()),
		zap.Int("mask", m.Mask()),
		zap.Bool("level_upgraded", upgraded),
		zap.Float64("contrast", st.Contrast.Ratio),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)),
	)

	return &Artifact{
		Format:        f,
		Size:          size,
		MIMEType:      f.MIMEType(),
		Filename:      filenameFor(eo.filename, f, size),
		Data:          data,
		Version:       m.Version(),
		Level:         m.Level(),
		Mask:          m.Mask(),
		LevelUpgraded: upgraded,
		Contrast:      st.Contrast,
	}, nil
}

// scene encodes payload and lays it out. With a logo the symbol comes from
// encoder.PlanLogo so the footprint is already absorbed by error correction.
func (o *exportOptions) scene(payload string, st style.Resolved) (*render.Scene, *encoder.Matrix, bool, error) {
	logo, err := o.loadLogo(st)
	if err != nil {
		return nil, nil, false, err
	}

	if logo == nil {
		m, err := encoder.Encode(payload, st.Level)
		if err != nil {
			return nil, nil, false, err
		}
		scene, err := render.Render(m, st)
		return scene, m, false, err
	}

	plan, err := encoder.PlanLogo(payload, st.Level, encoder.LogoRequest{
		Fraction: st.LogoSize,
		Policy:   o.logoPolicy,
	})
	if err != nil {
		return nil, nil, false, err
	}
	if plan.Upgraded {
		o.logger.Debug("error correction raised for logo",
			zap.Stringer("requested", plan.Requested),
			zap.Stringer("used", plan.Matrix.Level()),
			zap.Int("damaged", plan.Damaged),
		)
	}
	scene, err := render.Render(plan.Matrix, st, render.WithLogo(plan.Reserved, *logo))
	return scene, plan.Matrix, plan.Upgraded, err
}

// Preview returns the SVG markup of payload styled by cfg at the style's
// own size, for live previews.
func Preview(payload string, cfg style.Config, opts ...ExportOption) (string, error) {
	eo := defaultExportOptions()
	for _, opt := range opts {
		opt.apply(eo)
	}
	st := eo.defaults.Resolve(cfg)

	art, err := ExportArtifact(payload, cfg, standard.FormatSVG, standard.Square(st.Size), opts...)
	if err != nil {
		return "", err
	}
	return string(art.Data), nil
}
