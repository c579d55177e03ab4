// Package render draws dashboard figures as SVG or PNG images.
package render

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/wildfire/internal/domain/figure"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

const (
	defaultWidth  = 640
	defaultHeight = 480

	noDataCaption = "No data"
	barSpacing    = 8
	minBarWidth   = 6
)

var titleColor = drawing.ColorFromHex("503D36")

// Renderer turns figures into images of a fixed size.
type Renderer struct {
	width  int
	height int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the image size in pixels. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Size returns the configured image size.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// ContentType returns the MIME type for a format.
func ContentType(format string) (string, error) {
	switch format {
	case FormatSVG:
		return "image/svg+xml", nil
	case FormatPNG:
		return "image/png", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Render writes fig to w in the given format. Figures without data are drawn
// as a titled placeholder rather than failing.
func (r *Renderer) Render(w io.Writer, fig figure.Figure, format string) error {
	provider, err := providerFor(format)
	if err != nil {
		return err
	}
	if !drawable(fig) {
		return r.placeholder(w, provider, fig.Title)
	}

	switch fig.Kind {
	case figure.KindPie:
		err = r.pie(fig).Render(provider, w)
	case figure.KindBar:
		err = r.bar(fig).Render(provider, w)
	default:
		return fmt.Errorf("%w: %q", figure.ErrUnknownKind, fig.Kind)
	}
	if err != nil {
		return fmt.Errorf("%w: %s chart: %w", ErrRender, fig.Kind, err)
	}
	return nil
}

func providerFor(format string) (chart.RendererProvider, error) {
	switch format {
	case FormatSVG:
		return chart.SVG, nil
	case FormatPNG:
		return chart.PNG, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// A pie needs a positive total; a bar chart needs at least one bar.
func drawable(fig figure.Figure) bool {
	if fig.Empty() {
		return false
	}
	if fig.Kind != figure.KindPie {
		return true
	}
	total := 0.0
	for _, v := range fig.Values {
		if v > 0 {
			total += v
		}
	}
	return total > 0
}

func values(fig figure.Figure) []chart.Value {
	out := make([]chart.Value, 0, len(fig.Values))
	for i, v := range fig.Values {
		label := ""
		if i < len(fig.Labels) {
			label = fig.Labels[i]
		}
		out = append(out, chart.Value{Label: label, Value: v})
	}
	return out
}

func (r *Renderer) pie(fig figure.Figure) chart.PieChart {
	vals := values(fig)
	// Slices with a non-positive share cannot be drawn.
	kept := vals[:0]
	for _, v := range vals {
		if v.Value > 0 {
			kept = append(kept, v)
		}
	}
	return chart.PieChart{
		Title:      fig.Title,
		TitleStyle: chart.Style{FontColor: titleColor},
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Values:     kept,
	}
}

func (r *Renderer) bar(fig figure.Figure) chart.BarChart {
	bars := values(fig)
	maxY := 0.0
	for _, b := range bars {
		maxY = math.Max(maxY, b.Value)
	}
	if maxY <= 0 {
		maxY = 1
	}

	return chart.BarChart{
		Title:      fig.Title,
		TitleStyle: chart.Style{FontColor: titleColor},
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:   r.barWidth(len(bars)),
		BarSpacing: barSpacing,
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Name:  fig.ValueLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: niceMax(maxY)},
		},
		Bars: bars,
	}
}

// barWidth fits n bars into the plot area.
func (r *Renderer) barWidth(n int) int {
	if n <= 0 {
		return minBarWidth
	}
	usable := r.width - 120 - n*barSpacing
	w := usable / n
	if w < minBarWidth {
		return minBarWidth
	}
	return w
}

// niceMax rounds v up to 1, 2, 2.5 or 5 times a power of ten.
func niceMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, step := range []float64{1, 2, 2.5, 5, 10} {
		if m := step * exp; m >= v {
			return m
		}
	}
	return 10 * exp
}

func (r *Renderer) placeholder(w io.Writer, provider chart.RendererProvider, title string) error {
	rr, err := provider(r.width, r.height)
	if err != nil {
		return fmt.Errorf("%w: placeholder: %w", ErrRender, err)
	}

	rr.SetFillColor(drawing.ColorWhite)
	rr.SetStrokeColor(drawing.ColorWhite)
	rr.MoveTo(0, 0)
	rr.LineTo(r.width, 0)
	rr.LineTo(r.width, r.height)
	rr.LineTo(0, r.height)
	rr.Close()
	rr.FillStroke()

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("%w: font: %w", ErrRender, err)
	}
	rr.SetFont(font)

	if title != "" {
		rr.SetFontColor(titleColor)
		rr.SetFontSize(14)
		tb := rr.MeasureText(title)
		rr.Text(title, (r.width-tb.Width())/2, 40)
	}

	rr.SetFontColor(drawing.ColorBlack)
	rr.SetFontSize(12)
	cb := rr.MeasureText(noDataCaption)
	rr.Text(noDataCaption, (r.width-cb.Width())/2, r.height/2)

	if err := rr.Save(w); err != nil {
		return fmt.Errorf("%w: placeholder: %w", ErrRender, err)
	}
	return nil
}
