package style

import (
	"strings"
)

// BodyPattern names the shape family of data modules.
type BodyPattern string

const (
	BodySquare        BodyPattern = "square"
	BodyCircle        BodyPattern = "circle"
	BodyCircleLarge   BodyPattern = "circle-large"
	BodyDiamond       BodyPattern = "diamond"
	BodyCircleMixed   BodyPattern = "circle-mixed"
	BodyPacman        BodyPattern = "pacman"
	BodyRounded       BodyPattern = "rounded"
	BodyCleanSquare   BodyPattern = "clean-square"
	BodyDots          BodyPattern = "dots"
	BodyClassy        BodyPattern = "classy"
	BodyClassyRounded BodyPattern = "classy-rounded"
	BodyExtraRounded  BodyPattern = "extra-rounded"
	BodyFluid         BodyPattern = "fluid"
)

// BodyPatterns lists every body pattern, the default first.
var BodyPatterns = []BodyPattern{
	BodySquare, BodyCircle, BodyCircleLarge, BodyDiamond, BodyCircleMixed, BodyPacman,
	BodyRounded, BodyCleanSquare, BodyDots, BodyClassy, BodyClassyRounded, BodyExtraRounded, BodyFluid,
}

// EyePattern names the shape of the 7x7 finder ring.
type EyePattern string

const (
	EyeSquare        EyePattern = "square"
	EyeRounded       EyePattern = "rounded"
	EyeCircle        EyePattern = "circle"
	EyeGear          EyePattern = "gear"
	EyeDots          EyePattern = "dots"
	EyeClassy        EyePattern = "classy"
	EyeClassyRounded EyePattern = "classy-rounded"
	EyeExtraRounded  EyePattern = "extra-rounded"
	EyeFluid         EyePattern = "fluid"
)

// EyePatterns lists every corner eye pattern, the default first.
var EyePatterns = []EyePattern{
	EyeSquare, EyeRounded, EyeCircle, EyeGear, EyeDots, EyeClassy, EyeClassyRounded, EyeExtraRounded, EyeFluid,
}

// EyeDotPattern names the shape of the 3x3 finder center.
type EyeDotPattern string

const (
	EyeDotSquare        EyeDotPattern = "square"
	EyeDotRoundedSquare EyeDotPattern = "rounded-square"
	EyeDotCircle        EyeDotPattern = "circle"
	EyeDotDiamond       EyeDotPattern = "diamond"
	EyeDotDots          EyeDotPattern = "dots"
	EyeDotClassy        EyeDotPattern = "classy"
	EyeDotClassyRounded EyeDotPattern = "classy-rounded"
	EyeDotExtraRounded  EyeDotPattern = "extra-rounded"
)

// EyeDotPatterns lists every corner eye dot pattern, the default first.
var EyeDotPatterns = []EyeDotPattern{
	EyeDotSquare, EyeDotRoundedSquare, EyeDotCircle, EyeDotDiamond, EyeDotDots,
	EyeDotClassy, EyeDotClassyRounded, EyeDotExtraRounded,
}

// Template is a decorative frame drawn around the symbol.
type Template string

const (
	TemplateNone         Template = ""
	TemplateFrame        Template = "frame"
	TemplateFrameRounded Template = "frame-rounded"
	TemplateCaption      Template = "caption"
	TemplateBadge        Template = "badge"
)

// Templates lists every known template id.
var Templates = []Template{TemplateFrame, TemplateFrameRounded, TemplateCaption, TemplateBadge}

// HasCaption reports whether the template draws a text band.
func (t Template) HasCaption() bool {
	return t == TemplateCaption || t == TemplateBadge
}

// normalizeName folds camelCase and snake_case spellings onto the
// kebab-case names, so "classyRounded" and "classy_rounded" both match.
func normalizeName(s string) string {
	s = strings.TrimSpace(s)
	var (
		sb   strings.Builder
		prev rune
	)
	for _, r := range s {
		switch {
		case r == '_' || r == ' ':
			sb.WriteByte('-')
		case r >= 'A' && r <= 'Z':
			if prev >= 'a' && prev <= 'z' {
				sb.WriteByte('-')
			}
			sb.WriteRune(r + ('a' - 'A'))
		default:
			sb.WriteRune(r)
		}
		prev = r
	}
	return sb.String()
}

// ParseBodyPattern reports whether s names a body pattern.
func ParseBodyPattern(s string) (BodyPattern, bool) {
	name := BodyPattern(normalizeName(s))
	for _, p := range BodyPatterns {
		if p == name {
			return p, true
		}
	}
	return "", false
}

// ParseEyePattern reports whether s names a corner eye pattern.
func ParseEyePattern(s string) (EyePattern, bool) {
	name := EyePattern(normalizeName(s))
	for _, p := range EyePatterns {
		if p == name {
			return p, true
		}
	}
	return "", false
}

// ParseEyeDotPattern reports whether s names a corner eye dot pattern.
func ParseEyeDotPattern(s string) (EyeDotPattern, bool) {
	name := EyeDotPattern(normalizeName(s))
	for _, p := range EyeDotPatterns {
		if p == name {
			return p, true
		}
	}
	return "", false
}

// ParseTemplate reports whether s names a template.
func ParseTemplate(s string) (Template, bool) {
	name := Template(normalizeName(s))
	for _, t := range Templates {
		if t == name {
			return t, true
		}
	}
	return TemplateNone, false
}
