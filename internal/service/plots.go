package service

import (
	"path/filepath"

	"motorheat/internal/render"
	"motorheat/internal/thermal"
)

type plotStyle struct {
	file  string
	title string
	color string
}

var plotStyles = map[thermal.Mode]plotStyle{
	thermal.ModeContinuousNominal: {"s1_nominal", "Continuous duty S1 at the standard 40 °C ambient", "orange"},
	thermal.ModeContinuousCooling: {"s1_cooling", "Continuous duty S1 with a 24 °C coolant", "blue"},
	thermal.ModeShortTime:         {"s2", "Short-time duty S2", "red"},
	thermal.ModePeriodic:          {"s3", "Periodic intermittent duty S3", "green"},
}

// plotFor lays out curve c under dir. Axes start at t=0 and at the ambient
// of the mode.
func plotFor(dir, runID string, c thermal.Curve, ambient float64) render.Plot {
	style := plotStyles[c.Mode]
	return render.Plot{
		Time:        c.Time,
		Temperature: c.Temperature,
		Title:       style.title,
		Color:       style.color,
		XFloor:      0,
		YFloor:      ambient,
		Path:        filepath.Join(dir, runID, style.file),
	}
}
