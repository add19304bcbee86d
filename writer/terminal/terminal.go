// Package terminal prints QR matrices to a terminal, either as text or
// full screen with termbox.
package terminal

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"

	"github.com/Mictilt/qrdx/encoder"
)

// ErrTooSmall is returned by Show when the terminal cannot fit the symbol.
var ErrTooSmall = errors.New("terminal too small")

// DefaultQuietZone is the light border, in modules, around printed symbols.
const DefaultQuietZone = 2

// Writer prints matrices. Compressed halves the height by packing two rows
// of modules into each line with half block glyphs.
type Writer struct {
	QuietZone  int
	Compressed bool
	// Invert swaps dark and light, for terminals with a dark background.
	Invert bool
}

func New() *Writer {
	return &Writer{QuietZone: DefaultQuietZone, Compressed: true}
}

// Text returns the matrix as lines of block glyphs.
func (w *Writer) Text(m *encoder.Matrix) string {
	if w.Compressed {
		return w.compressed(m)
	}
	var sb strings.Builder
	side := m.Side()
	for r := -w.QuietZone; r < side+w.QuietZone; r++ {
		for c := -w.QuietZone; c < side+w.QuietZone; c++ {
			if w.dark(m, r, c) {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (w *Writer) compressed(m *encoder.Matrix) string {
	var sb strings.Builder
	side := m.Side()
	for r := -w.QuietZone; r < side+w.QuietZone; r += 2 {
		for c := -w.QuietZone; c < side+w.QuietZone; c++ {
			top, bottom := w.dark(m, r, c), w.dark(m, r+1, c)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (w *Writer) dark(m *encoder.Matrix, r, c int) bool {
	return isDark(m, r, c) != w.Invert
}

// isDark treats modules outside the matrix as light.
func isDark(m *encoder.Matrix, r, c int) bool {
	side := m.Side()
	return r >= 0 && c >= 0 && r < side && c < side && m.Dark(r, c)
}

// Write prints Text(m) to out.
func (w *Writer) Write(out io.Writer, m *encoder.Matrix) error {
	_, err := io.WriteString(out, w.Text(m))
	return err
}

// Width returns the terminal columns Text(m) needs.
func (w *Writer) Width(m *encoder.Matrix) int {
	text := w.Text(m)
	line, _, _ := strings.Cut(text, "\n")
	return runewidth.StringWidth(line)
}

// Show draws m full screen with termbox and waits for a key press.
func (w *Writer) Show(m *encoder.Matrix) error {
	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "termbox")
	}
	defer termbox.Close()

	cols, rows := termbox.Size()
	side := m.Side() + 2*w.QuietZone
	if side*2 > cols || side > rows {
		return errors.Wrapf(ErrTooSmall, "need %dx%d, have %dx%d", side*2, side, cols, rows)
	}

	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return errors.Wrap(err, "termbox")
	}
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			bg := termbox.ColorWhite
			if isDark(m, r-w.QuietZone, c-w.QuietZone) {
				bg = termbox.ColorBlack
			}
			termbox.SetCell(c*2, r, ' ', termbox.ColorDefault, bg)
			termbox.SetCell(c*2+1, r, ' ', termbox.ColorDefault, bg)
		}
	}
	if err := termbox.Flush(); err != nil {
		return errors.Wrap(err, "termbox")
	}

	for {
		switch ev := termbox.PollEvent(); ev.Type {
		case termbox.EventKey:
			return nil
		case termbox.EventError:
			return errors.Wrap(ev.Err, "termbox")
		}
	}
}
