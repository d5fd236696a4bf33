package render

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTMLRenderer writes an interactive go-echarts page per curve.
type HTMLRenderer struct{}

func NewHTMLRenderer() *HTMLRenderer { return &HTMLRenderer{} }

func (r *HTMLRenderer) Render(ctx context.Context, p Plot) (path string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := p.validate(); err != nil {
		return "", err
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: p.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time, s", Min: p.XFloor}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Temperature, °C", Min: p.YFloor, Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", Start: 0, End: 100, XAxisIndex: []int{0}}),
	)

	xs := make([]string, len(p.Time))
	items := make([]opts.LineData, len(p.Temperature))
	for i := range p.Time {
		xs[i] = strconv.FormatFloat(p.Time[i], 'f', -1, 64)
		items[i] = opts.LineData{Value: p.Temperature[i]}
	}
	line.SetXAxis(xs).AddSeries(p.Title, items,
		charts.WithLineStyleOpts(opts.LineStyle{Color: p.Color}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	)

	path = p.Path + ".html"
	if err := ensureDir(path); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", path, cerr)
		}
	}()
	if err := line.Render(f); err != nil {
		return "", fmt.Errorf("render %q: %w", path, err)
	}
	return path, nil
}
