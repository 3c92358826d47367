package static

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
)

// RenderPNG rasterizes s at the window size.
func RenderPNG(s Scene, opts ...Option) ([]byte, error) {
	p := newPalette(opts)

	dc := gg.NewContext(s.Window.Width, s.Window.Height)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetLineWidth(1)
	dc.SetColor(parseHex(p.line, color.Black))
	for _, l := range s.Lines {
		dc.DrawLine(float64(l.X1), float64(l.Y1), float64(l.X2), float64(l.Y2))
		dc.Stroke()
	}

	nodeColor := parseHex(p.node, color.RGBA{59, 130, 246, 255})
	labelColor := parseHex(p.label, color.Black)
	for _, m := range s.Markers {
		dc.SetColor(nodeColor)
		dc.DrawCircle(float64(m.CX), float64(m.CY), MarkerSize/2)
		dc.Fill()

		dc.SetColor(labelColor)
		dc.DrawStringAnchored(m.Label, float64(m.LabelX), float64(m.LabelY), 0, 1)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// parseHex reads "#rgb" or "#rrggbb". Anything else yields fallback.
func parseHex(s string, fallback color.Color) color.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
