// Package style resolves partial QR style configurations into complete ones.
//
// Resolution never fails: every missing or unusable field falls back to the
// value held by a Defaults, and scannability problems are reported as data
// on the result instead of errors.
package style

import (
	"image/color"
	"strings"

	"github.com/Mictilt/qrdx/encoder"
)

const (
	// ScannabilityThreshold is the contrast ratio below which a style is
	// flagged as hard to scan.
	ScannabilityThreshold = 4.5

	ContrastWarningMessage = "Hard to scan. Use more contrast colors."

	MaxMargin = 20
)

// Config is a partial style as supplied by a caller. Zero values mean
// "unset", except Margin which is a pointer so that 0 stays expressible.
type Config struct {
	FgColor  string `yaml:"fgColor,omitempty" json:"fgColor,omitempty"`
	BgColor  string `yaml:"bgColor,omitempty" json:"bgColor,omitempty"`
	EyeColor string `yaml:"eyeColor,omitempty" json:"eyeColor,omitempty"`
	DotColor string `yaml:"dotColor,omitempty" json:"dotColor,omitempty"`

	BodyPattern         string `yaml:"bodyPattern,omitempty" json:"bodyPattern,omitempty"`
	CornerEyePattern    string `yaml:"cornerEyePattern,omitempty" json:"cornerEyePattern,omitempty"`
	CornerEyeDotPattern string `yaml:"cornerEyeDotPattern,omitempty" json:"cornerEyeDotPattern,omitempty"`

	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Margin *int   `yaml:"margin,omitempty" json:"margin,omitempty"`

	TemplateID string  `yaml:"templateId,omitempty" json:"templateId,omitempty"`
	CustomText string  `yaml:"customText,omitempty" json:"customText,omitempty"`
	TextColor  string  `yaml:"textColor,omitempty" json:"textColor,omitempty"`
	FontSize   float64 `yaml:"fontSize,omitempty" json:"fontSize,omitempty"`

	ShowLogo bool `yaml:"showLogo,omitempty" json:"showLogo,omitempty"`
	// Logo references the image: a data URI, a file path or a named logo.
	Logo string `yaml:"logo,omitempty" json:"logo,omitempty"`
	// LogoSize is the logo side as a share of the matrix side.
	LogoSize float64 `yaml:"logoSize,omitempty" json:"logoSize,omitempty"`

	Size int `yaml:"size,omitempty" json:"size,omitempty"`
}

// Merge returns c with every set field of top laid over it.
func (c Config) Merge(top Config) Config {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	out := c
	str(&out.FgColor, top.FgColor)
	str(&out.BgColor, top.BgColor)
	str(&out.EyeColor, top.EyeColor)
	str(&out.DotColor, top.DotColor)
	str(&out.BodyPattern, top.BodyPattern)
	str(&out.CornerEyePattern, top.CornerEyePattern)
	str(&out.CornerEyeDotPattern, top.CornerEyeDotPattern)
	str(&out.Level, top.Level)
	str(&out.TemplateID, top.TemplateID)
	str(&out.CustomText, top.CustomText)
	str(&out.TextColor, top.TextColor)
	str(&out.Logo, top.Logo)
	if top.Margin != nil {
		m := *top.Margin
		out.Margin = &m
	}
	if top.FontSize > 0 {
		out.FontSize = top.FontSize
	}
	if top.ShowLogo {
		out.ShowLogo = true
	}
	if top.LogoSize > 0 {
		out.LogoSize = top.LogoSize
	}
	if top.Size > 0 {
		out.Size = top.Size
	}
	return out
}

// ContrastLevel grades a contrast ratio against WCAG thresholds.
type ContrastLevel string

const (
	ContrastAAA     ContrastLevel = "AAA"
	ContrastAA      ContrastLevel = "AA"
	ContrastAALarge ContrastLevel = "AA Large"
	ContrastFail    ContrastLevel = "Fail"
)

// GradeContrast maps a ratio onto its level.
func GradeContrast(ratio float64) ContrastLevel {
	switch {
	case ratio >= 7:
		return ContrastAAA
	case ratio >= 4.5:
		return ContrastAA
	case ratio >= 3:
		return ContrastAALarge
	}
	return ContrastFail
}

// Contrast is the advisory scannability report of a resolved style.
type Contrast struct {
	Ratio   float64
	Level   ContrastLevel
	Warning bool
}

// Message returns the user facing warning, empty when there is none.
func (c Contrast) Message() string {
	if c.Warning {
		return ContrastWarningMessage
	}
	return ""
}

// Defaults is the immutable set of values Resolve falls back to.
type Defaults struct {
	FgColor             color.RGBA
	BgColor             color.RGBA
	BodyPattern         BodyPattern
	CornerEyePattern    EyePattern
	CornerEyeDotPattern EyeDotPattern
	Level               encoder.Level
	Margin              int
	Size                int
	LogoSize            float64
	CustomText          string
	FontSize            float64
}

// DefaultDefaults returns the stock defaults: black on white, square
// modules, level Q and a two module margin.
func DefaultDefaults() Defaults {
	return Defaults{
		FgColor:             color.RGBA{A: 0xff},
		BgColor:             color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		BodyPattern:         BodySquare,
		CornerEyePattern:    EyeSquare,
		CornerEyeDotPattern: EyeDotSquare,
		Level:               encoder.DefaultLevel,
		Margin:              2,
		Size:                400,
		LogoSize:            encoder.DefaultLogoFraction,
		CustomText:          "Scan me",
		FontSize:            1.6,
	}
}

// Resolved is a complete style. Every field holds a usable value.
type Resolved struct {
	FgColor   color.RGBA
	BgColor   color.RGBA
	EyeColor  color.RGBA
	DotColor  color.RGBA
	TextColor color.RGBA

	BodyPattern         BodyPattern
	CornerEyePattern    EyePattern
	CornerEyeDotPattern EyeDotPattern

	Level  encoder.Level
	Margin int

	Template   Template
	CustomText string
	// FontSize is the caption height in modules.
	FontSize float64

	ShowLogo bool
	Logo     string
	LogoSize float64

	Size int

	Contrast Contrast
}

// Resolve fills cfg with DefaultDefaults.
func Resolve(cfg Config) Resolved {
	return DefaultDefaults().Resolve(cfg)
}

// Resolve fills every unset or unusable field of cfg from d. cfg is not
// modified.
func (d Defaults) Resolve(cfg Config) Resolved {
	colorOr := func(s string, fallback color.RGBA) color.RGBA {
		if s == "" {
			return fallback
		}
		c, err := ParseColor(s)
		if err != nil {
			return fallback
		}
		return c
	}

	r := Resolved{
		FgColor: colorOr(cfg.FgColor, d.FgColor),
		BgColor: colorOr(cfg.BgColor, d.BgColor),
	}
	r.EyeColor = colorOr(cfg.EyeColor, r.FgColor)
	r.DotColor = colorOr(cfg.DotColor, r.FgColor)
	r.TextColor = colorOr(cfg.TextColor, r.FgColor)

	r.BodyPattern = d.BodyPattern
	if p, ok := ParseBodyPattern(cfg.BodyPattern); ok {
		r.BodyPattern = p
	}
	r.CornerEyePattern = d.CornerEyePattern
	if p, ok := ParseEyePattern(cfg.CornerEyePattern); ok {
		r.CornerEyePattern = p
	}
	r.CornerEyeDotPattern = d.CornerEyeDotPattern
	if p, ok := ParseEyeDotPattern(cfg.CornerEyeDotPattern); ok {
		r.CornerEyeDotPattern = p
	}

	r.Level = d.Level
	if lv, err := encoder.ParseLevel(cfg.Level); err == nil {
		r.Level = lv
	}

	r.Margin = d.Margin
	if cfg.Margin != nil {
		r.Margin = *cfg.Margin
	}
	r.Margin = clampInt(r.Margin, 0, MaxMargin)

	r.Template, _ = ParseTemplate(cfg.TemplateID)
	r.CustomText = strings.TrimSpace(cfg.CustomText)
	if r.CustomText == "" {
		r.CustomText = strings.TrimSpace(d.CustomText)
	}
	r.FontSize = d.FontSize
	if cfg.FontSize > 0 {
		r.FontSize = cfg.FontSize
	}

	r.Logo = strings.TrimSpace(cfg.Logo)
	r.ShowLogo = cfg.ShowLogo
	r.LogoSize = d.LogoSize
	if cfg.LogoSize > 0 {
		r.LogoSize = cfg.LogoSize
	}
	r.LogoSize = clampFloat(r.LogoSize, encoder.MinLogoFraction, encoder.MaxLogoFraction)

	r.Size = d.Size
	if cfg.Size > 0 {
		r.Size = cfg.Size
	}

	ratio := ContrastRatio(r.FgColor, r.BgColor)
	r.Contrast = Contrast{
		Ratio:   ratio,
		Level:   GradeContrast(ratio),
		Warning: ratio < ScannabilityThreshold,
	}

	return r
}

// Config turns r back into a fully populated Config. Resolving it again
// yields r.
func (r Resolved) Config() Config {
	margin := r.Margin
	return Config{
		FgColor:             HexColor(r.FgColor),
		BgColor:             HexColor(r.BgColor),
		EyeColor:            HexColor(r.EyeColor),
		DotColor:            HexColor(r.DotColor),
		BodyPattern:         string(r.BodyPattern),
		CornerEyePattern:    string(r.CornerEyePattern),
		CornerEyeDotPattern: string(r.CornerEyeDotPattern),
		Level:               r.Level.String(),
		Margin:              &margin,
		TemplateID:          string(r.Template),
		CustomText:          r.CustomText,
		TextColor:           HexColor(r.TextColor),
		FontSize:            r.FontSize,
		ShowLogo:            r.ShowLogo,
		Logo:                r.Logo,
		LogoSize:            r.LogoSize,
		Size:                r.Size,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
