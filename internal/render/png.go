package render

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

var namedColors = map[string]color.RGBA{
	"orange": {R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	"blue":   {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"red":    {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"green":  {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"black":  {A: 0xff},
}

// PNGRenderer draws curves with gonum/plot.
type PNGRenderer struct {
	width, height vg.Length
}

func NewPNGRenderer(width, height vg.Length) *PNGRenderer {
	return &PNGRenderer{width: width, height: height}
}

func (r *PNGRenderer) Render(ctx context.Context, p Plot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := p.validate(); err != nil {
		return "", err
	}

	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = "Time, s"
	pl.Y.Label.Text = "Temperature, °C"
	pl.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(p.Time))
	for i := range p.Time {
		xys[i].X = p.Time[i]
		xys[i].Y = p.Temperature[i]
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return "", fmt.Errorf("build line for %q: %w", p.Title, err)
	}
	line.Color = parseColor(p.Color)
	line.Width = vg.Points(1.5)
	pl.Add(line)

	// floors only; upper bounds stay data-driven
	pl.X.Min = p.XFloor
	pl.Y.Min = p.YFloor
	if pl.X.Max < pl.X.Min {
		pl.X.Max = pl.X.Min + 1
	}
	if pl.Y.Max < pl.Y.Min {
		pl.Y.Max = pl.Y.Min + 1
	}

	path := p.Path + ".png"
	if err := ensureDir(path); err != nil {
		return "", err
	}
	if err := pl.Save(r.width, r.height, path); err != nil {
		return "", fmt.Errorf("save plot %q: %w", path, err)
	}
	return path, nil
}

func parseColor(s string) color.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
		}
	}
	return namedColors["black"]
}
