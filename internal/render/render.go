// Package render persists temperature curves as images or pages.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Plot is one curve plus its presentation. Axes start at XFloor and YFloor
// and are open-ended upwards.
type Plot struct {
	Time        []float64
	Temperature []float64
	Title       string
	Color       string // orange | blue | red | green | #rrggbb
	XFloor      float64
	YFloor      float64
	Path        string // without extension; each renderer adds its own
}

// Renderer writes a Plot somewhere. Failures are returned, never dropped.
type Renderer interface {
	Render(ctx context.Context, p Plot) (string, error)
}

var errLengthMismatch = errors.New("render: time and temperature lengths differ")

func (p Plot) validate() error {
	if len(p.Time) != len(p.Temperature) {
		return fmt.Errorf("%w: %d vs %d", errLengthMismatch, len(p.Time), len(p.Temperature))
	}
	if len(p.Time) == 0 {
		return errors.New("render: empty curve")
	}
	if strings.TrimSpace(p.Path) == "" {
		return errors.New("render: empty output path")
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %q: %w", dir, err)
	}
	return nil
}

// Multi renders through every renderer and joins the written paths with ",".
type Multi []Renderer

func (m Multi) Render(ctx context.Context, p Plot) (string, error) {
	paths := make([]string, 0, len(m))
	for _, r := range m {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err := r.Render(ctx, p)
		if err != nil {
			return "", err
		}
		if out != "" {
			paths = append(paths, out)
		}
	}
	return strings.Join(paths, ","), nil
}

// Nop accepts every plot and writes nothing.
type Nop struct{}

func (Nop) Render(ctx context.Context, p Plot) (string, error) {
	return "", ctx.Err()
}

// New builds a renderer for the given formats ("png", "html"). No formats
// yields Nop.
func New(formats []string) (Renderer, error) {
	var out Multi
	for _, f := range formats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "png":
			out = append(out, NewPNGRenderer(DefaultWidth, DefaultHeight))
		case "html":
			out = append(out, NewHTMLRenderer())
		case "", "none":
		default:
			return nil, fmt.Errorf("render: unknown format %q (want png or html)", f)
		}
	}
	if len(out) == 0 {
		return Nop{}, nil
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return out, nil
}
