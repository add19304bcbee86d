package standard

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for format names no encoder handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format is an output file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
	FormatEPS Format = "eps"
)

// Formats lists every supported format.
var Formats = []Format{FormatPNG, FormatJPG, FormatSVG, FormatPDF, FormatEPS}

// ParseFormat accepts any case and "jpeg" as an alias of "jpg".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "jpeg":
		return FormatJPG, nil
	case FormatPNG, FormatJPG, FormatSVG, FormatPDF, FormatEPS:
		return f, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "format %q", s)
}

// MIMEType returns the media type of f, empty for unknown formats.
func (f Format) MIMEType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPG, "jpeg":
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatEPS:
		return "application/postscript"
	}
	return ""
}

// Extension returns the file extension of f without the dot.
func (f Format) Extension() string {
	if f == "jpeg" {
		return string(FormatJPG)
	}
	return string(f)
}
