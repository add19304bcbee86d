package style

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mictilt/qrdx/encoder"
)

func intPtr(v int) *int { return &v }

func Test_Resolve_Defaults(t *testing.T) {
	r := Resolve(Config{})

	assert.Equal(t, color.RGBA{A: 0xff}, r.FgColor)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, r.BgColor)
	assert.Equal(t, r.FgColor, r.EyeColor)
	assert.Equal(t, r.FgColor, r.DotColor)
	assert.Equal(t, BodySquare, r.BodyPattern)
	assert.Equal(t, EyeSquare, r.CornerEyePattern)
	assert.Equal(t, EyeDotSquare, r.CornerEyeDotPattern)
	assert.Equal(t, encoder.ErrorCorrectionQuart, r.Level)
	assert.Equal(t, 2, r.Margin)
	assert.Equal(t, TemplateNone, r.Template)
	assert.Equal(t, "Scan me", r.CustomText)
	assert.False(t, r.ShowLogo)
	assert.Equal(t, encoder.DefaultLogoFraction, r.LogoSize)
	assert.Equal(t, 400, r.Size)

	assert.InDelta(t, 21, r.Contrast.Ratio, 1e-9)
	assert.Equal(t, ContrastAAA, r.Contrast.Level)
	assert.False(t, r.Contrast.Warning)
	assert.Empty(t, r.Contrast.Message())
}

func Test_Resolve_EyeAndDotFollowForeground(t *testing.T) {
	r := Resolve(Config{FgColor: "#1a2b3c"})
	want := color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}
	assert.Equal(t, want, r.EyeColor)
	assert.Equal(t, want, r.DotColor)
	assert.Equal(t, want, r.TextColor)

	r = Resolve(Config{FgColor: "#1a2b3c", EyeColor: "#ff0000", DotColor: "#00ff00"})
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, r.EyeColor)
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, r.DotColor)
}

func Test_Resolve_InvalidFallsBack(t *testing.T) {
	r := Resolve(Config{
		FgColor:             "not-a-color",
		BodyPattern:         "hexagon",
		CornerEyePattern:    "star",
		CornerEyeDotPattern: "heart",
		Level:               "X",
		Margin:              intPtr(-4),
		TemplateID:          "poster",
		CustomText:          "   ",
		LogoSize:            0.9,
		Size:                -1,
	})

	assert.Equal(t, color.RGBA{A: 0xff}, r.FgColor)
	assert.Equal(t, BodySquare, r.BodyPattern)
	assert.Equal(t, EyeSquare, r.CornerEyePattern)
	assert.Equal(t, EyeDotSquare, r.CornerEyeDotPattern)
	assert.Equal(t, encoder.DefaultLevel, r.Level)
	assert.Equal(t, 0, r.Margin)
	assert.Equal(t, TemplateNone, r.Template)
	assert.Equal(t, "Scan me", r.CustomText)
	assert.Equal(t, encoder.MaxLogoFraction, r.LogoSize)
	assert.Equal(t, 400, r.Size)

	r = Resolve(Config{Margin: intPtr(100)})
	assert.Equal(t, MaxMargin, r.Margin)
}

func Test_Resolve_ZeroMarginKept(t *testing.T) {
	r := Resolve(Config{Margin: intPtr(0)})
	assert.Equal(t, 0, r.Margin)
}

func Test_Resolve_PatternAliases(t *testing.T) {
	r := Resolve(Config{
		BodyPattern:         "classyRounded",
		CornerEyePattern:    "extra_rounded",
		CornerEyeDotPattern: "Rounded-Square",
		TemplateID:          "frameRounded",
	})
	assert.Equal(t, BodyClassyRounded, r.BodyPattern)
	assert.Equal(t, EyeExtraRounded, r.CornerEyePattern)
	assert.Equal(t, EyeDotRoundedSquare, r.CornerEyeDotPattern)
	assert.Equal(t, TemplateFrameRounded, r.Template)
}

func Test_Resolve_Idempotent(t *testing.T) {
	configs := []Config{
		{},
		{FgColor: "#336699", BgColor: "#fafafa80", BodyPattern: "fluid", Level: "h", Margin: intPtr(7)},
		{FgColor: "#ccc", BgColor: "#ddd", TemplateID: "badge", CustomText: " hello ", FontSize: 2},
		{ShowLogo: true, Logo: " brand ", LogoSize: 0.05, Size: 1024, EyeColor: "transparent"},
		{Margin: intPtr(999), LogoSize: 3, Level: "nope", CornerEyePattern: "gear"},
	}

	for _, cfg := range configs {
		once := Resolve(cfg)
		twice := Resolve(once.Config())
		assert.Equal(t, once, twice, "config %+v", cfg)
	}
}

func Test_Resolve_DoesNotMutateInput(t *testing.T) {
	margin := 5
	cfg := Config{FgColor: "#123", Margin: &margin, BodyPattern: "classyRounded"}
	before := cfg

	r := Resolve(cfg)
	r.Margin = 9

	assert.Equal(t, before, cfg)
	assert.Equal(t, 5, margin)
	assert.Equal(t, "classyRounded", cfg.BodyPattern)
}

func Test_Resolve_ContrastWarning(t *testing.T) {
	r := Resolve(Config{FgColor: "#bbbbbb", BgColor: "#ffffff"})
	assert.True(t, r.Contrast.Warning)
	assert.Equal(t, ContrastWarningMessage, r.Contrast.Message())
	assert.Less(t, r.Contrast.Ratio, ScannabilityThreshold)

	// still a complete style
	assert.Equal(t, BodySquare, r.BodyPattern)
}

func Test_Defaults_Custom(t *testing.T) {
	d := DefaultDefaults()
	d.Level = encoder.ErrorCorrectionHighest
	d.BodyPattern = BodyDots
	d.Margin = 4

	r := d.Resolve(Config{})
	assert.Equal(t, encoder.ErrorCorrectionHighest, r.Level)
	assert.Equal(t, BodyDots, r.BodyPattern)
	assert.Equal(t, 4, r.Margin)

	// the stock defaults are unaffected
	assert.Equal(t, BodySquare, DefaultDefaults().BodyPattern)
}

func Test_Config_Merge(t *testing.T) {
	base := Config{FgColor: "#000", BodyPattern: "dots", Margin: intPtr(3), Size: 300}
	top := Config{FgColor: "#f00", Level: "H", ShowLogo: true}

	got := base.Merge(top)
	assert.Equal(t, "#f00", got.FgColor)
	assert.Equal(t, "dots", got.BodyPattern)
	assert.Equal(t, "H", got.Level)
	assert.True(t, got.ShowLogo)
	require.NotNil(t, got.Margin)
	assert.Equal(t, 3, *got.Margin)
	assert.Equal(t, 300, got.Size)

	got = base.Merge(Config{Margin: intPtr(0)})
	assert.Equal(t, 0, *got.Margin)
	assert.Equal(t, 3, *base.Margin)
}

func Test_GradeContrast(t *testing.T) {
	cases := map[float64]ContrastLevel{
		21:  ContrastAAA,
		7:   ContrastAAA,
		5:   ContrastAA,
		4.5: ContrastAA,
		3.2: ContrastAALarge,
		1.5: ContrastFail,
	}
	for ratio, want := range cases {
		assert.Equal(t, want, GradeContrast(ratio), "ratio=%v", ratio)
	}
}

func Test_ParsePatterns(t *testing.T) {
	for _, p := range BodyPatterns {
		got, ok := ParseBodyPattern(string(p))
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}
	for _, p := range EyePatterns {
		got, ok := ParseEyePattern(string(p))
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}
	for _, p := range EyeDotPatterns {
		got, ok := ParseEyeDotPattern(string(p))
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}

	_, ok := ParseBodyPattern("")
	assert.False(t, ok)
	_, ok = ParseEyePattern("CIRCLE")
	assert.True(t, ok)

	tpl, ok := ParseTemplate("")
	assert.False(t, ok)
	assert.Equal(t, TemplateNone, tpl)
	assert.True(t, TemplateBadge.HasCaption())
	assert.False(t, TemplateFrame.HasCaption())
}
