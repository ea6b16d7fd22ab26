package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asheshgoplani/fandial/internal/config"
	"github.com/asheshgoplani/fandial/internal/dial"
	"github.com/asheshgoplani/fandial/internal/labels"
)

func TestCanvasSizeInUnits(t *testing.T) {
	c := NewCanvas(10, 5, 10)
	w, h := c.Size()
	assert.InDelta(t, 100, w, 1e-9)
	assert.InDelta(t, 100, h, 1e-9)

	empty := NewCanvas(-3, 2, 0)
	w, h = empty.Size()
	assert.Zero(t, w)
	assert.InDelta(t, 4, h, 1e-9)
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 5, 10)
	c.Execute([]dial.DrawCommand{
		dial.Circle{Center: dial.Point{X: 50, Y: 50}, Radius: 20, Color: "#ff0000"},
	})

	assert.Equal(t, dial.Color("#ff0000"), c.PixelAt(4, 4))
	assert.Equal(t, dial.Color("#ff0000"), c.PixelAt(5, 5))
	assert.Equal(t, dial.Color("#ff0000"), c.PixelAt(3, 5))
	assert.Equal(t, dial.Unset, c.PixelAt(0, 0))
	assert.Equal(t, dial.Unset, c.PixelAt(9, 9))
	assert.Equal(t, dial.Unset, c.PixelAt(-1, 4))
	assert.Equal(t, dial.Unset, c.PixelAt(4, 10))
}

func TestCanvasLaterCommandsCoverEarlier(t *testing.T) {
	c := NewCanvas(10, 5, 10)
	c.Execute([]dial.DrawCommand{
		dial.Circle{Center: dial.Point{X: 50, Y: 50}, Radius: 40, Color: "#ff0000"},
		dial.Circle{Center: dial.Point{X: 50, Y: 50}, Radius: 10, Color: "#000000"},
	})
	assert.Equal(t, dial.Color("#000000"), c.PixelAt(4, 4))
	assert.Equal(t, dial.Color("#ff0000"), c.PixelAt(2, 4))
}

func TestCanvasSubPixelCircleStillVisible(t *testing.T) {
	c := NewCanvas(10, 5, 10)
	c.Execute([]dial.DrawCommand{
		dial.Circle{Center: dial.Point{X: 15, Y: 15}, Radius: 1, Color: "#00ff00"},
	})
	assert.Equal(t, dial.Color("#00ff00"), c.PixelAt(1, 1))
}

func TestCanvasTextAlignment(t *testing.T) {
	tests := []struct {
		name string
		cmd  dial.Text
		row  int
		want string
	}{
		{"center", dial.Text{Position: dial.Point{X: 50, Y: 25}, Text: "Low"}, 1, "    Low   "},
		{"clamped left", dial.Text{Position: dial.Point{X: 0, Y: 5}, Text: "High"}, 0, "High      "},
		{"clamped right", dial.Text{Position: dial.Point{X: 100, Y: 85}, Text: "Off"}, 4, "       Off"},
		{"left", dial.Text{Position: dial.Point{X: 20, Y: 45}, Text: "ab", Align: dial.AlignLeft}, 2, "  ab      "},
		{"right", dial.Text{Position: dial.Point{X: 20, Y: 65}, Text: "ab", Align: dial.AlignRight}, 3, "ab        "},
		{"wide runes", dial.Text{Position: dial.Point{X: 50, Y: 45}, Text: "日本"}, 2, "   日本   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 5, 10)
			c.Execute([]dial.DrawCommand{tt.cmd})
			assert.Equal(t, tt.want, c.TextRow(tt.row))
		})
	}
}

func TestCanvasTextClampedToEdgeRows(t *testing.T) {
	c := NewCanvas(10, 5, 10)
	c.Execute([]dial.DrawCommand{
		dial.Text{Position: dial.Point{X: 50, Y: -5}, Text: "Low"},
		dial.Text{Position: dial.Point{X: 50, Y: 500}, Text: "High"},
	})
	assert.Equal(t, "    Low   ", c.TextRow(0))
	assert.Equal(t, "   High   ", c.TextRow(4))
}

func TestCanvasShortTerminalKeepsEveryLabel(t *testing.T) {
	catalog, err := labels.Load("en")
	require.NoError(t, err)
	dc, err := config.Default().DialConfig()
	require.NoError(t, err)

	for _, rows := range []int{6, 8, 10, 12} {
		w, err := dial.New(dc, catalog)
		require.NoError(t, err)
		c := NewCanvas(60, rows, config.DefaultUnitsPerPixel)
		w.SetSize(c.Size())
		c.Execute(w.Render())

		var text strings.Builder
		for row := range rows {
			text.WriteString(c.TextRow(row))
			text.WriteByte('\n')
		}
		for _, label := range []string{"Off", "Low", "Medium", "High"} {
			assert.Contains(t, text.String(), label, "rows=%d", rows)
		}
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(10, 5, 10)
	c.Execute([]dial.DrawCommand{
		dial.Circle{Center: dial.Point{X: 50, Y: 50}, Radius: 30, Color: "#ff0000"},
		dial.Text{Position: dial.Point{X: 50, Y: 5}, Text: "Off"},
	})
	out := c.Render()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Off")
	assert.Contains(t, lines[2], "█")
	assert.Equal(t, strings.Repeat(" ", 10), lines[4][:10])
}
