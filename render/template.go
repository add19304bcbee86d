package render

import (
	"github.com/Mictilt/qrdx/style"
)

const (
	// framePad is the room a frame takes on each side: one module of gap
	// outside the border and the one module thick border itself.
	framePad = 2
	// captionPad is the light space above and below the caption text.
	captionPad = .7
)

type layout struct {
	width, height float64
	origin        Vec
	frame         *Frame
	caption       *Caption
}

// layoutFor sizes the view box for the template of st. Templates only ever
// grow the view box around the quiet margin, never into it.
func layoutFor(side int, st style.Resolved) layout {
	mg := float64(st.Margin)
	inner := float64(side) + 2*mg
	band := st.FontSize + 2*captionPad

	lay := layout{width: inner, height: inner, origin: Vec{mg, mg}}
	switch st.Template {
	case style.TemplateFrame, style.TemplateFrameRounded, style.TemplateCaption:
		lay.width, lay.height = inner+2*framePad, inner+2*framePad
		lay.origin = Vec{mg + framePad, mg + framePad}
		if st.Template == style.TemplateCaption {
			lay.height += band
		}

		var outerR, innerR float64
		if st.Template == style.TemplateFrameRounded {
			outerR, innerR = 1.5, .5
		}
		w, h := lay.width, lay.height
		lay.frame = &Frame{
			Template: st.Template,
			Fill:     st.FgColor,
			Primitives: []Primitive{ring(st.FgColor,
				roundedRing(1, 1, w-2, h-2, [4]float64{outerR, outerR, outerR, outerR}),
				roundedRing(framePad, framePad, w-2*framePad, h-2*framePad, [4]float64{innerR, innerR, innerR, innerR}),
			)},
		}
		if st.Template == style.TemplateCaption {
			lay.caption = &Caption{
				Text:  st.CustomText,
				X:     w / 2,
				Y:     framePad + inner + band/2,
				Size:  st.FontSize,
				Color: st.TextColor,
			}
		}

	case style.TemplateBadge:
		lay.height = inner + band + 1
		lay.frame = &Frame{
			Template: st.Template,
			Fill:     st.FgColor,
			Primitives: []Primitive{RoundRect{
				X: mg, Y: inner, W: float64(side), H: band, R: band / 2, Fill: st.FgColor,
			}},
		}
		lay.caption = &Caption{
			Text:  st.CustomText,
			X:     inner / 2,
			Y:     inner + band/2,
			Size:  st.FontSize,
			Color: contrastOn(st.BgColor),
		}
	}
	return lay
}
