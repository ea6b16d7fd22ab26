package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/asheshgoplani/fandial/internal/dial"
)

// Canvas executes dial draw commands on a grid of terminal cells. Each cell
// holds two square-ish "pixels" drawn with the upper half block, so circles
// keep their shape despite tall terminal cells.
type Canvas struct {
	cols, rows int
	scale      float64 // layout units per pixel

	pixels []dial.Color // cols x rows*2
	text   []rune       // cols x rows, 0 = no text
}

// textCont marks the second cell of a double-width rune.
const textCont = rune(-1)

// NewCanvas creates a canvas of cols x rows cells where one pixel spans
// unitsPerPixel layout units.
func NewCanvas(cols, rows int, unitsPerPixel float64) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	if unitsPerPixel <= 0 {
		unitsPerPixel = 1
	}
	return &Canvas{
		cols:   cols,
		rows:   rows,
		scale:  unitsPerPixel,
		pixels: make([]dial.Color, cols*rows*2),
		text:   make([]rune, cols*rows),
	}
}

// Size returns the drawable area in layout units.
func (c *Canvas) Size() (width, height float64) {
	return float64(c.cols) * c.scale, float64(c.rows*2) * c.scale
}

// Execute paints the commands in order; later commands cover earlier ones.
func (c *Canvas) Execute(cmds []dial.DrawCommand) {
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case dial.Circle:
			c.fillCircle(cmd)
		case dial.Text:
			c.drawText(cmd)
		}
	}
}

// PixelAt returns the color of pixel (x, y), Unset when empty or out of range.
func (c *Canvas) PixelAt(x, y int) dial.Color {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return dial.Unset
	}
	return c.pixels[y*c.cols+x]
}

// TextRow returns the text overlay of one cell row with blanks elsewhere.
func (c *Canvas) TextRow(row int) string {
	if row < 0 || row >= c.rows {
		return ""
	}
	var b strings.Builder
	for col := 0; col < c.cols; col++ {
		switch r := c.text[row*c.cols+col]; r {
		case 0:
			b.WriteByte(' ')
		case textCont:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (c *Canvas) fillCircle(cmd dial.Circle) {
	h := c.rows * 2
	if c.cols == 0 || h == 0 || cmd.Radius < 0 {
		return
	}
	cx, cy := cmd.Center.X/c.scale, cmd.Center.Y/c.scale
	r := cmd.Radius / c.scale

	// A circle smaller than a pixel still shows as one pixel.
	if r < 0.5 {
		x, y := int(math.Floor(cx)), int(math.Floor(cy))
		if x >= 0 && y >= 0 && x < c.cols && y < h {
			c.pixels[y*c.cols+x] = cmd.Color
		}
		return
	}

	x0 := max(int(math.Floor(cx-r)), 0)
	x1 := min(int(math.Ceil(cx+r)), c.cols-1)
	y0 := max(int(math.Floor(cy-r)), 0)
	y1 := min(int(math.Ceil(cy+r)), h-1)
	r2 := r * r
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				c.pixels[y*c.cols+x] = cmd.Color
			}
		}
	}
}

func (c *Canvas) drawText(cmd dial.Text) {
	if c.cols == 0 || c.rows == 0 || cmd.Text == "" {
		return
	}
	// Labels beyond the top or bottom edge move onto the nearest row.
	row := int(math.Floor(cmd.Position.Y / (2 * c.scale)))
	row = max(min(row, c.rows-1), 0)
	width := runewidth.StringWidth(cmd.Text)
	anchor := cmd.Position.X / c.scale

	var start int
	switch cmd.Align {
	case dial.AlignLeft:
		start = int(math.Round(anchor))
	case dial.AlignRight:
		start = int(math.Round(anchor)) - width
	default:
		start = int(math.Round(anchor - float64(width)/2))
	}
	start = max(min(start, c.cols-width), 0)

	col := start
	for _, r := range cmd.Text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.cols {
			break
		}
		c.text[row*c.cols+col] = r
		if w == 2 {
			c.text[row*c.cols+col+1] = textCont
		}
		col += w
	}
}

type cellStyle struct {
	fg, bg lipgloss.Color
	label  bool
}

// Render returns the canvas as styled terminal lines.
func (c *Canvas) Render() string {
	lines := make([]string, c.rows)
	for row := 0; row < c.rows; row++ {
		var (
			b   strings.Builder
			run strings.Builder
			cur cellStyle
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(styleFor(cur).Render(run.String()))
			run.Reset()
		}
		for col := 0; col < c.cols; col++ {
			top := lipgloss.Color(c.pixels[(2*row)*c.cols+col])
			bottom := lipgloss.Color(c.pixels[(2*row+1)*c.cols+col])

			var st cellStyle
			var glyph string
			switch r := c.text[row*c.cols+col]; {
			case r == textCont:
				continue
			case r != 0:
				st = cellStyle{bg: top, label: true}
				glyph = string(r)
			case top == "" && bottom == "":
				glyph = " "
			case top == bottom:
				st = cellStyle{fg: top}
				glyph = "█"
			case top == "":
				st = cellStyle{fg: bottom}
				glyph = "▄"
			default:
				st = cellStyle{fg: top, bg: bottom}
				glyph = "▀"
			}
			if st != cur {
				flush()
				cur = st
			}
			run.WriteString(glyph)
		}
		flush()
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

func styleFor(st cellStyle) lipgloss.Style {
	if st.label {
		return labelStyleOn(st.bg)
	}
	s := lipgloss.NewStyle()
	if st.fg != "" {
		s = s.Foreground(st.fg)
	}
	if st.bg != "" {
		s = s.Background(st.bg)
	}
	return s
}
