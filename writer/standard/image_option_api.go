package standard

import (
	"time"

	"github.com/golang/freetype/truetype"
)

// ImageOption configures a Serialize call.
type ImageOption interface {
	apply(oo *outputImageOptions)
}

type outputImageOptions struct {
	// jpegQuality is the JPEG quality, 1..100.
	jpegQuality int
	// captionFont draws captions on raster output, Go Regular when nil.
	captionFont *truetype.Font
	// created stamps PDF and EPS documents, time.Now when zero.
	created time.Time
	// compress deflates PDF content streams.
	compress bool
	// svgDecimals is the precision of SVG coordinates in module units.
	svgDecimals int

	encoders map[Format]ImageEncoder
}

func defaultOutputImageOptions() *outputImageOptions {
	return &outputImageOptions{
		jpegQuality: 92,
		compress:    true,
		svgDecimals: 3,
	}
}

func (oo *outputImageOptions) createdAt() time.Time {
	if oo.created.IsZero() {
		return time.Now()
	}
	return oo.created
}

// funcOption wraps a function that modifies outputImageOptions into an
// implementation of the ImageOption interface.
type funcOption struct {
	f func(oo *outputImageOptions)
}

func (fo *funcOption) apply(oo *outputImageOptions) {
	fo.f(oo)
}

func newFuncOption(f func(oo *outputImageOptions)) *funcOption {
	return &funcOption{
		f: f,
	}
}

// WithJPEGQuality sets the JPEG quality, values outside 1..100 are ignored.
func WithJPEGQuality(quality int) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		if quality < 1 || quality > 100 {
			return
		}

		oo.jpegQuality = quality
	})
}

// WithCaptionFont draws raster captions with font instead of Go Regular.
func WithCaptionFont(font *truetype.Font) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		if font == nil {
			return
		}

		oo.captionFont = font
	})
}

// WithCreationDate fixes the creation date written into PDF and EPS
// documents, so output is reproducible.
func WithCreationDate(t time.Time) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.created = t
	})
}

// WithPDFCompression turns deflating of PDF content streams on or off.
func WithPDFCompression(compress bool) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.compress = compress
	})
}

// WithSVGDecimals sets how many decimals SVG coordinates keep, 1..6.
func WithSVGDecimals(n int) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		if n < 1 || n > 6 {
			return
		}

		oo.svgDecimals = n
	})
}

// WithCustomImageEncoder replaces the builtin encoder of format.
func WithCustomImageEncoder(format Format, encoder ImageEncoder) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		f, err := ParseFormat(string(format))
		if encoder == nil || err != nil {
			return
		}

		if oo.encoders == nil {
			oo.encoders = make(map[Format]ImageEncoder)
		}
		oo.encoders[f] = encoder
	})
}
