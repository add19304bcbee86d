package qrdx

import (
	"image"

	"go.uber.org/zap"

	"github.com/Mictilt/qrdx/encoder"
	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard"
)

// LogoLoader turns a logo reference from style.Config.Logo into bytes.
type LogoLoader func(ref string) ([]byte, error)

type exportOptions struct {
	filename string

	logoImage  image.Image
	logoBytes  []byte
	logoLoader LogoLoader
	logoPolicy encoder.LogoPolicy

	defaults     style.Defaults
	logger       *zap.Logger
	imageOptions []standard.ImageOption
}

func defaultExportOptions() *exportOptions {
	return &exportOptions{
		logoLoader: DefaultLogoLoader,
		logoPolicy: encoder.LogoAutoUpgrade,
		defaults:   style.DefaultDefaults(),
		logger:     zap.NewNop(),
	}
}

// ExportOption customizes a single ExportArtifact call.
type ExportOption interface {
	apply(o *exportOptions)
}

// funcOption wraps a function that modifies exportOptions into an
// implementation of the ExportOption interface.
type funcOption struct {
	f func(o *exportOptions)
}

func (fo *funcOption) apply(o *exportOptions) {
	fo.f(o)
}

func newFuncOption(f func(o *exportOptions)) *funcOption {
	return &funcOption{
		f: f,
	}
}

// WithFilename names the artifact. The format extension is appended when
// name has none.
func WithFilename(name string) ExportOption {
	return newFuncOption(func(o *exportOptions) {
		o.filename = name
	})
}

// WithLogoImage shows img as the center logo, whatever cfg.Logo says.
func WithLogoImage(img image.Image) ExportOption {
	return newFuncOption(func(o *exportOptions) {
		if img == nil {
			return
		}
		o.logoImage = img
		o.logoBytes = nil
	})
}

// WithLogoBytes shows the encoded image in data as the center logo. PNG,
// JPEG, GIF, WebP and SVG are understood.
func WithLogoBytes(data []byte) ExportOption {
	return newFuncOption(func(o *exportOptions) {
		if len(data) == 0 {
			return
		}
		o.logoBytes = data
		o.logoImage = nil
	})
}

// WithLogoLoader replaces DefaultLogoLoader for cfg.Logo references.
func WithLogoLoader(loader LogoLoader) ExportOption {
	return newFuncOption(func(o *exportOptions) {
		if loader != nil {
			o.logoLoader = loader
		}
	})
}

// WithLogoPolicy decides whether a logo may raise the error correction
// level. The default is encoder.LogoAutoUpgrade.
func WithLogoPolicy(p encoder.LogoPolicy) ExportOption {
	return newFuncOption(func(o *exportOptions) {
		o.logoPolicy = p
	})
}

// WithLogger logs export decisions at debug level.
func WithLogger(l *zap.Logger) ExportOption {
	return newFuncOption(func(o *exportOptions) {
		if l != nil {
			o.logger = l
		}
	})
}

// WithDefaults resolves the style against d instead of style.DefaultDefaults.
func WithDefaults(d style.Defaults) ExportOption {
	return newFuncOption(func(o *exportOptions) {
		o.defaults = d
	})
}

// WithImageOptions passes opts on to the serializer.
func WithImageOptions(opts ...standard.ImageOption) ExportOption {
	return newFuncOption(func(o *exportOptions) {
		o.imageOptions = append(o.imageOptions, opts...)
	})
}
