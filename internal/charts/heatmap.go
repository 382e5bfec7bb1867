package charts

import (
	"context"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	apperrors "retailcli/internal/errors"
	"retailcli/pkg/contracts/domain"
)

// correlationGrid exposes a correlation matrix as a heat map grid. Grid rows
// run bottom-up, so the first variable is drawn in the top row.
type correlationGrid struct {
	m domain.CorrelationMatrix
}

func (g correlationGrid) Dims() (c, r int) {
	n := g.m.Size()
	return n, n
}

func (g correlationGrid) Z(c, r int) float64 {
	return g.m.At(g.row(r), c)
}

func (g correlationGrid) X(c int) float64 {
	return float64(c)
}

func (g correlationGrid) Y(r int) float64 {
	return float64(r)
}

func (g correlationGrid) row(r int) int {
	return g.m.Size() - 1 - r
}

// CorrelationHeatmap draws the matrix on a diverging blue-red scale fixed to
// [-1, 1] and writes each coefficient in its cell. Undefined coefficients are
// drawn grey and annotated "NaN".
func (r *Renderer) CorrelationHeatmap(ctx context.Context, m domain.CorrelationMatrix, path string) error {
	if m.Size() == 0 {
		return apperrors.NewRenderError(CorrelationChart, fmt.Errorf("empty correlation matrix"))
	}

	p := newPlot("Sales Feature Correlation", "", "")

	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)

	grid := correlationGrid{m: m}
	heat := plotter.NewHeatMap(grid, colors.Palette(255))
	heat.Min = -1
	heat.Max = 1
	heat.NaN = color.Gray{Y: 200}
	p.Add(heat)

	n := m.Size()
	cells := make(plotter.XYs, 0, n*n)
	annotations := make([]string, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			cells = append(cells, plotter.XY{X: grid.X(col), Y: grid.Y(row)})
			annotations = append(annotations, fmt.Sprintf("%.2f", grid.Z(col, row)))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: cells, Labels: annotations})
	if err != nil {
		return apperrors.NewRenderError(CorrelationChart, err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	xTicks := make([]plot.Tick, n)
	yTicks := make([]plot.Tick, n)
	for i, label := range m.Labels {
		xTicks[i] = plot.Tick{Value: grid.X(i), Label: label}
		yTicks[i] = plot.Tick{Value: grid.Y(grid.row(i)), Label: label}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)

	size := r.options.HeatmapSize
	return r.save(ctx, p, CorrelationChart, size, size, path)
}
