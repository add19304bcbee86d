package render

import (
	"image/color"

	"github.com/Mictilt/qrdx/encoder"
)

// Bit flags for the 8 surrounding cells in a 3x3 grid around a module.
// Layout:
// NTopLeft		NTop 	NTopRight
// NLeft  		NSelf	NRight
// NBotLeft 	NBot 	NBotRight
const (
	NTopLeft  uint16 = 1 << iota // top-left
	NTop                         // top
	NTopRight                    // top-right
	NLeft                        // left
	NSelf                        // center (self)
	NRight                       // right
	NBotLeft                     // bottom-left
	NBot                         // bottom
	NBotRight                    // bottom-right
)

// neighbourOffsets pairs each flag with its (row, col) offset.
var neighbourOffsets = [...]struct {
	flag     uint16
	row, col int
}{
	{NTopLeft, -1, -1}, {NTop, -1, 0}, {NTopRight, -1, 1},
	{NLeft, 0, -1}, {NSelf, 0, 0}, {NRight, 0, 1},
	{NBotLeft, 1, -1}, {NBot, 1, 0}, {NBotRight, 1, 1},
}

// CellContext is one dark body module handed to a Pattern.
type CellContext struct {
	Row, Col int
	// X, Y is the upper left corner in module space. A module is 1x1.
	X, Y float64
	Fill color.RGBA

	neighbours uint16
}

// UpperLeft returns the point which indicates the upper left position.
func (ctx *CellContext) UpperLeft() Vec {
	return Vec{ctx.X, ctx.Y}
}

// Center of the module.
func (ctx *CellContext) Center() Vec {
	return Vec{ctx.X + .5, ctx.Y + .5}
}

// Neighbours returns a bitmask of the dark body modules around this one.
// Function modules and modules under a logo never count.
func (ctx *CellContext) Neighbours() uint16 {
	return ctx.neighbours
}

// Has reports whether every flag in mask is set.
func (ctx *CellContext) Has(mask uint16) bool {
	return ctx.neighbours&mask == mask
}

// Pattern draws body modules.
type Pattern interface {
	// Cells returns the shapes of a single module.
	Cells(ctx *CellContext) []Primitive
}

// Merger is implemented by patterns that draw each 4-connected group of
// modules as one seamless path. Render calls Merge instead of Cells.
type Merger interface {
	Pattern
	Merge(ctx *ComponentContext) []Primitive
}

// ComponentContext is one 4-connected group of dark body modules.
type ComponentContext struct {
	// Origin is the position of matrix module (0, 0) in module space.
	Origin Vec
	Fill   color.RGBA

	grid   *bodyGrid
	root   int32
	bounds encoder.Rect
}

// Bounds returns the smallest module rect holding the group.
func (ctx *ComponentContext) Bounds() encoder.Rect {
	return ctx.bounds
}

// Contains reports whether the module at (row, col) belongs to the group.
func (ctx *ComponentContext) Contains(row, col int) bool {
	idx, ok := ctx.grid.index(row, col)
	return ok && ctx.grid.member[idx] && ctx.grid.uf.find(idx) == ctx.root
}

// Corner names the finder pattern an EyeContext is drawing.
type Corner uint8

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
)

func (c Corner) String() string {
	switch c {
	case CornerTopRight:
		return "top-right"
	case CornerBottomLeft:
		return "bottom-left"
	}
	return "top-left"
}

// accent returns, in top-left, top-right, bottom-right, bottom-left order,
// the corners on the diagonal through the outer corner of the finder.
func (c Corner) accent() [4]bool {
	if c == CornerTopLeft {
		return [4]bool{true, false, true, false}
	}
	return [4]bool{false, true, false, true}
}

// EyeContext is a finder ring (7x7 with a 5x5 hole) or a finder center (3x3).
type EyeContext struct {
	Corner Corner
	// X, Y is the upper left corner in module space.
	X, Y float64
	// Size is 7 for rings and 3 for centers.
	Size float64
	Fill color.RGBA
}

// Composer draws a finder ring or a finder center as one composite.
type Composer interface {
	Composite(ctx *EyeContext) []Primitive
}
