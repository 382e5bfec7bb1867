package charts

import (
	"context"
	"image/color"
	"log/slog"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	apperrors "retailcli/internal/errors"
	"retailcli/pkg/contracts/domain"
)

// Chart names, used in logs and errors
const (
	MonthlySalesChart = "monthly sales trend"
	TopProductsChart  = "top products"
	TopCatsChart      = "top categories"
	CorrelationChart  = "correlation heatmap"
)

// salesAxis labels the y axis of every sales chart
const salesAxis = "Total Sales"

var (
	lineColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	barColor      = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	categoryColor = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// Options sets the rendered image sizes
type Options struct {
	Width       vg.Length
	Height      vg.Length
	HeatmapSize vg.Length
}

// DefaultOptions returns 10×4 inch charts and a 6 inch square heatmap
func DefaultOptions() Options {
	return Options{
		Width:       10 * vg.Inch,
		Height:      4 * vg.Inch,
		HeatmapSize: 6 * vg.Inch,
	}
}

// Renderer draws charts to PNG files
type Renderer struct {
	options Options
	logger  *slog.Logger
}

// NewRenderer creates a renderer
func NewRenderer(options Options, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{options: options, logger: logger.With("component", "charts")}
}

// MonthlySalesTrend draws monthly totals as a line with point markers.
// Series keys are month numbers.
func (r *Renderer) MonthlySalesTrend(ctx context.Context, monthly domain.Series, path string) error {
	p := newPlot("Monthly Sales Trend", "Month", salesAxis)

	points := make(plotter.XYs, 0, monthly.Len())
	ticks := make([]plot.Tick, 0, monthly.Len())
	for i, key := range monthly.Keys {
		month, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return apperrors.NewRenderError(MonthlySalesChart, err).WithContext("month", key)
		}
		points = append(points, plotter.XY{X: month, Y: monthly.Values[i]})
		ticks = append(ticks, plot.Tick{Value: month, Label: key})
	}

	if len(points) > 0 {
		line, scatter, err := plotter.NewLinePoints(points)
		if err != nil {
			return apperrors.NewRenderError(MonthlySalesChart, err)
		}
		line.Color = lineColor
		line.Width = vg.Points(2)
		scatter.GlyphStyle.Color = lineColor
		scatter.GlyphStyle.Radius = vg.Points(3)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(line, scatter)
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}
	p.Add(plotter.NewGrid())

	return r.save(ctx, p, MonthlySalesChart, r.options.Width, r.options.Height, path)
}

// TopProducts draws the top products ranking as a bar chart
func (r *Renderer) TopProducts(ctx context.Context, top domain.Series, path string) error {
	return r.bars(ctx, TopProductsChart, "Top Selling Products", salesAxis, top, barColor, path)
}

// TopCategories draws the category ranking as an orange bar chart
func (r *Renderer) TopCategories(ctx context.Context, top domain.Series, path string) error {
	return r.bars(ctx, TopCatsChart, "Top Categories", salesAxis, top, categoryColor, path)
}

func (r *Renderer) bars(ctx context.Context, chart, title, yLabel string, s domain.Series, c color.Color, path string) error {
	p, err := barPlot(title, yLabel, s, c)
	if err != nil {
		return apperrors.NewRenderError(chart, err)
	}
	return r.save(ctx, p, chart, r.options.Width, r.options.Height, path)
}

// barPlot lays out s as one bar per key. The y axis is labelled yLabel,
// never the series column name.
func barPlot(title, yLabel string, s domain.Series, c color.Color) (*plot.Plot, error) {
	p := newPlot(title, "", yLabel)

	if s.Len() > 0 {
		values := make(plotter.Values, s.Len())
		copy(values, s.Values)

		bars, err := plotter.NewBarChart(values, vg.Points(40))
		if err != nil {
			return nil, err
		}
		bars.Color = c
		bars.LineStyle.Width = vg.Length(0)

		p.Add(bars)
		p.NominalX(s.Keys...)
		p.X.Tick.Label.Rotation = math.Pi / 6
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
		p.Y.Min = math.Min(0, p.Y.Min)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

func (r *Renderer) save(ctx context.Context, p *plot.Plot, chart string, w, h vg.Length, path string) error {
	if err := p.Save(w, h, path); err != nil {
		return apperrors.NewRenderError(chart, err).WithContext("path", path)
	}
	r.logger.DebugContext(ctx, "Chart rendered",
		slog.String("chart", chart),
		slog.String("path", path))
	return nil
}
