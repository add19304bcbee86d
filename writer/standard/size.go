package standard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	MinSide = 50
	MaxSide = 5000
)

// ErrSizeOutOfBounds is returned for sizes that are not square or not
// within MinSide..MaxSide pixels.
var ErrSizeOutOfBounds = errors.New("size out of bounds")

// Size is an output size in pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Square returns a side x side size.
func Square(side int) Size { return Size{Width: side, Height: side} }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Presets are the named sizes offered for export.
var Presets = []struct {
	Name string
	Size Size
}{
	{"small", Square(200)},
	{"medium", Square(400)},
	{"large", Square(800)},
	{"xlarge", Square(1200)},
	{"2xl", Square(1600)},
	{"3xl", Square(2000)},
}

// PresetSize looks a preset up by name.
func PresetSize(name string) (Size, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p.Size, true
		}
	}
	return Size{}, false
}

// ParseSize reads a preset name, a side ("400") or "WxH". The result is
// not validated.
func ParseSize(s string) (Size, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if size, ok := PresetSize(s); ok {
		return size, nil
	}
	w, h, found := strings.Cut(s, "x")
	width, err := strconv.Atoi(w)
	if err != nil {
		return Size{}, errors.Wrapf(ErrSizeOutOfBounds, "size %q", s)
	}
	if !found {
		return Square(width), nil
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Size{}, errors.Wrapf(ErrSizeOutOfBounds, "size %q", s)
	}
	return Size{Width: width, Height: height}, nil
}

// SizeError describes why a size was refused.
type SizeError struct {
	Width, Height int
	Min, Max      int
}

func (e *SizeError) Error() string {
	switch {
	case e.Width < e.Min || e.Height < e.Min:
		return fmt.Sprintf("Size must be at least %dx%d pixels", e.Min, e.Min)
	case e.Width > e.Max || e.Height > e.Max:
		return fmt.Sprintf("Size must not exceed %dx%d pixels", e.Max, e.Max)
	}
	return "Width and height must be equal for QR codes"
}

func (e *SizeError) Cause() error  { return ErrSizeOutOfBounds }
func (e *SizeError) Unwrap() error { return ErrSizeOutOfBounds }

// ValidateSize checks s against the export limits. Bounds are checked
// before squareness so the message names the first rule broken.
func ValidateSize(s Size) error {
	if s.Width < MinSide || s.Height < MinSide ||
		s.Width > MaxSide || s.Height > MaxSide ||
		s.Width != s.Height {
		return &SizeError{Width: s.Width, Height: s.Height, Min: MinSide, Max: MaxSide}
	}
	return nil
}
