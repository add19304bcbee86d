// Package render turns an encoded matrix and a resolved style into a Scene:
// zone tagged vector primitives in module space that every serializer
// draws from.
package render

import (
	"image"
	"image/color"

	"github.com/pkg/errors"

	"github.com/Mictilt/qrdx/encoder"
	"github.com/Mictilt/qrdx/style"
)

var ErrNilMatrix = errors.New("render: nil matrix")

// Option configures a Render call.
type Option interface {
	apply(o *renderOptions)
}

type renderOptions struct {
	logo     *LogoImage
	reserved encoder.Rect
}

// funcOption wraps a function that modifies renderOptions into an
// implementation of the Option interface.
type funcOption struct {
	f func(o *renderOptions)
}

func (fo *funcOption) apply(o *renderOptions) {
	fo.f(o)
}

func newFuncOption(f func(o *renderOptions)) *funcOption {
	return &funcOption{f: f}
}

// LogoImage is a decoded logo. Source and MIME are kept for SVG logos.
type LogoImage struct {
	Image  image.Image
	Source []byte
	MIME   string
}

// WithLogo places img over the reserved footprint, usually the one chosen
// by encoder.PlanLogo. Body modules inside the footprint are dropped. The
// logo is drawn whatever st.ShowLogo says: the caller that planned the
// footprint has already decided to show it.
func WithLogo(reserved encoder.Rect, img LogoImage) Option {
	return newFuncOption(func(o *renderOptions) {
		if img.Image == nil && len(img.Source) == 0 {
			return
		}
		o.logo = &img
		o.reserved = reserved
	})
}

// bodyGrid is the set of modules the body pattern may draw: dark, in the
// body zone, not reserved for function patterns and not under the logo.
type bodyGrid struct {
	m      *encoder.Matrix
	side   int
	member []bool
	logo   encoder.Rect
	uf     *unionFind
}

func newBodyGrid(m *encoder.Matrix, logo encoder.Rect) *bodyGrid {
	g := &bodyGrid{m: m, side: m.Side(), logo: logo}
	g.member = make([]bool, g.side*g.side)
	m.Iterate(encoder.IterDirection_ROW, func(row, col int, v encoder.QRValue) {
		g.member[row*g.side+col] = v.IsSet() && g.plain(row, col)
	})
	return g
}

func (g *bodyGrid) index(row, col int) (int32, bool) {
	if row < 0 || col < 0 || row >= g.side || col >= g.side {
		return 0, false
	}
	return int32(row*g.side + col), true
}

// plain reports a body module free of function patterns and the logo.
func (g *bodyGrid) plain(row, col int) bool {
	return g.m.ZoneAt(row, col) == encoder.ZoneBody && !g.m.Reserved(row, col) && !g.logo.Contains(row, col)
}

func (g *bodyGrid) plainLight(row, col int) bool {
	idx, ok := g.index(row, col)
	return ok && !g.member[idx] && g.plain(row, col)
}

func (g *bodyGrid) has(row, col int) bool {
	idx, ok := g.index(row, col)
	return ok && g.member[idx]
}

func (g *bodyGrid) neighbours(row, col int) uint16 {
	var mask uint16
	for _, n := range neighbourOffsets {
		if g.has(row+n.row, col+n.col) {
			mask |= n.flag
		}
	}
	return mask
}

// components links 4-connected members and returns the roots in the order
// their first module appears, with each group's bounds.
func (g *bodyGrid) components() ([]int32, map[int32]encoder.Rect) {
	g.uf = newUnionFind(len(g.member))
	for idx, ok := range g.member {
		if !ok {
			continue
		}
		row, col := idx/g.side, idx%g.side
		if col+1 < g.side && g.member[idx+1] {
			g.uf.union(int32(idx), int32(idx+1))
		}
		if row+1 < g.side && g.member[idx+g.side] {
			g.uf.union(int32(idx), int32(idx+g.side))
		}
	}

	var roots []int32
	bounds := make(map[int32]encoder.Rect)
	for idx, ok := range g.member {
		if !ok {
			continue
		}
		row, col := idx/g.side, idx%g.side
		root := g.uf.find(int32(idx))
		b, seen := bounds[root]
		if !seen {
			roots = append(roots, root)
			b = encoder.Rect{Min: encoder.Point{Row: row, Col: col}, Max: encoder.Point{Row: row + 1, Col: col + 1}}
		}
		b.Min.Col = min(b.Min.Col, col)
		b.Max.Col = max(b.Max.Col, col+1)
		b.Max.Row = max(b.Max.Row, row+1)
		bounds[root] = b
	}
	return roots, bounds
}

// Render builds the scene of m drawn with st.
func Render(m *encoder.Matrix, st style.Resolved, opts ...Option) (*Scene, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	ro := &renderOptions{}
	for _, opt := range opts {
		opt.apply(ro)
	}

	side := m.Side()
	scene := &Scene{Side: side, Margin: st.Margin, Background: st.BgColor}
	lay := layoutFor(side, st)
	scene.Width, scene.Height, scene.Origin = lay.width, lay.height, lay.origin

	var logo encoder.Rect
	if ro.logo != nil && !ro.reserved.Empty() {
		logo = clipRect(ro.reserved, side)
		scene.Logo = placeLogo(logo, scene.Origin, ro.logo)
	}

	grid := newBodyGrid(m, logo)
	layers := map[encoder.Zone]*Layer{}
	for _, z := range encoder.Zones {
		layers[z] = &Layer{Zone: z, Fill: st.FgColor, Crisp: true}
	}
	layers[encoder.ZoneQuietMargin].Fill = st.BgColor
	layers[encoder.ZoneCornerEye].Fill = st.EyeColor
	layers[encoder.ZoneCornerEyeDot].Fill = st.DotColor

	if st.Margin > 0 {
		inner := float64(side)
		mg := float64(st.Margin)
		q := layers[encoder.ZoneQuietMargin]
		q.Crisp = false
		q.Primitives = append(q.Primitives, ring(st.BgColor,
			rectRing(scene.Origin.X-mg, scene.Origin.Y-mg, inner+2*mg, inner+2*mg),
			rectRing(scene.Origin.X, scene.Origin.Y, inner, inner),
		))
	}

	// function modules keep their square geometry
	m.Iterate(encoder.IterDirection_ROW, func(row, col int, v encoder.QRValue) {
		if !v.IsSet() {
			return
		}
		zone := v.Type().Zone()
		switch {
		case zone == encoder.ZoneTiming || zone == encoder.ZoneAlignment:
		case zone == encoder.ZoneBody && m.Reserved(row, col):
		default:
			return
		}
		l := layers[zone]
		l.Primitives = append(l.Primitives, Rect{
			X: scene.Origin.X + float64(col), Y: scene.Origin.Y + float64(row), W: 1, H: 1, Fill: st.FgColor,
		})
	})

	body := layers[encoder.ZoneBody]
	pattern := BodyPatternFor(st.BodyPattern)
	if st.BodyPattern != style.BodySquare {
		body.Crisp = false
	}
	if merger, ok := pattern.(Merger); ok {
		roots, bounds := grid.components()
		for _, root := range roots {
			body.Primitives = append(body.Primitives, merger.Merge(&ComponentContext{
				Origin: scene.Origin,
				Fill:   st.FgColor,
				grid:   grid,
				root:   root,
				bounds: bounds[root],
			})...)
		}
	} else {
		for idx, ok := range grid.member {
			if !ok {
				continue
			}
			row, col := idx/side, idx%side
			body.Primitives = append(body.Primitives, pattern.Cells(&CellContext{
				Row:        row,
				Col:        col,
				X:          scene.Origin.X + float64(col),
				Y:          scene.Origin.Y + float64(row),
				Fill:       st.FgColor,
				neighbours: grid.neighbours(row, col) | NSelf,
			})...)
		}
	}

	eyes, dots := EyePatternFor(st.CornerEyePattern), EyeDotPatternFor(st.CornerEyeDotPattern)
	layers[encoder.ZoneCornerEye].Crisp = st.CornerEyePattern == style.EyeSquare
	layers[encoder.ZoneCornerEyeDot].Crisp = st.CornerEyeDotPattern == style.EyeDotSquare
	for i, origin := range m.FinderOrigins() {
		x := scene.Origin.X + float64(origin.Col)
		y := scene.Origin.Y + float64(origin.Row)
		eye := layers[encoder.ZoneCornerEye]
		eye.Primitives = append(eye.Primitives, eyes.Composite(&EyeContext{
			Corner: Corner(i), X: x, Y: y, Size: 7, Fill: st.EyeColor,
		})...)
		dot := layers[encoder.ZoneCornerEyeDot]
		dot.Primitives = append(dot.Primitives, dots.Composite(&EyeContext{
			Corner: Corner(i), X: x + 2, Y: y + 2, Size: 3, Fill: st.DotColor,
		})...)
	}

	for _, z := range encoder.Zones {
		if l := layers[z]; len(l.Primitives) > 0 {
			scene.Layers = append(scene.Layers, *l)
		}
	}

	scene.Frame, scene.Caption = lay.frame, lay.caption
	return scene, nil
}

func clipRect(r encoder.Rect, side int) encoder.Rect {
	r.Min.Row, r.Min.Col = max(r.Min.Row, 0), max(r.Min.Col, 0)
	r.Max.Row, r.Max.Col = min(r.Max.Row, side), min(r.Max.Col, side)
	return r
}

// placeLogo centers the image inside the footprint with one module of
// light padding, or none when the footprint is too small for it.
func placeLogo(r encoder.Rect, origin Vec, img *LogoImage) *Logo {
	pad := 1.0
	if r.Side() <= 2 {
		pad = 0
	}
	w := float64(r.Max.Col-r.Min.Col) - 2*pad
	h := float64(r.Max.Row-r.Min.Row) - 2*pad
	return &Logo{
		Modules: r,
		X:       origin.X + float64(r.Min.Col) + pad,
		Y:       origin.Y + float64(r.Min.Row) + pad,
		W:       w,
		H:       h,
		Image:   img.Image,
		Source:  img.Source,
		MIME:    img.MIME,
	}
}

// contrastOn picks the text color drawn over fill: the background when it
// is opaque, white otherwise.
func contrastOn(bg color.RGBA) color.RGBA {
	if bg.A == 0xff {
		return bg
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}
