package plot

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/crowdpulse/pulsewatch/model"
)

const (
	pngWidth  = 960
	pngHeight = 420
)

var edgeColors = map[model.Color]drawing.Color{
	model.ColorBlue: chart.ColorBlue,
	model.ColorRed:  chart.ColorRed,
}

// colorRun 连续同色的边，覆盖 Points[Start..End]
type colorRun struct {
	Color model.Color
	Start int
	End   int
}

// colorRuns groups consecutive edges with the same color. Adjacent runs share
// their boundary point so the rendered line stays continuous.
func colorRuns(colors []model.Color) []colorRun {
	runs := make([]colorRun, 0)
	for i, color := range colors {
		if len(runs) > 0 && runs[len(runs)-1].Color == color {
			runs[len(runs)-1].End = i + 1
			continue
		}
		runs = append(runs, colorRun{Color: color, Start: i, End: i + 1})
	}
	return runs
}

func lineStyle(color drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: color,
		StrokeWidth: 2,
	}
}

func guideStyle(color drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor:     color,
		StrokeWidth:     1,
		StrokeDashArray: []float64{5, 4},
	}
}

func horizontal(name string, value, width float64, style chart.Style) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{0, width},
		YValues: []float64{value, value},
		Style:   style,
	}
}

// RenderPNG draws the artifact: one line per color run, the threshold and band
// guides, and the overlays aligned by label.
func RenderPNG(w io.Writer, artifact model.Artifact, overlays []IndicatorMetric) error {
	width := float64(len(artifact.Points) - 1)
	if width < 1 {
		width = 1
	}

	series := []chart.Series{
		horizontal("Threshold", artifact.Threshold, width, guideStyle(chart.ColorBlack)),
		horizontal("Lower", artifact.Lower(), width, guideStyle(chart.ColorAlternateGray)),
		horizontal("Upper", artifact.Upper(), width, guideStyle(chart.ColorAlternateGray)),
	}

	index := make(map[string]float64, len(artifact.Points))
	for i, point := range artifact.Points {
		if !point.Synthetic {
			index[point.Label] = float64(i)
		}
	}

	switch len(artifact.Points) {
	case 0:
	case 1:
		point := artifact.Points[0]
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{0},
			YValues: []float64{point.Value},
			Style: chart.Style{
				StrokeWidth: 0,
				DotWidth:    4,
				DotColor:    chart.ColorBlue,
			},
		})
	default:
		for _, run := range colorRuns(artifact.EdgeColors) {
			xs := make([]float64, 0, run.End-run.Start+1)
			ys := make([]float64, 0, run.End-run.Start+1)
			for i := run.Start; i <= run.End; i++ {
				xs = append(xs, float64(i))
				ys = append(ys, artifact.Points[i].Value)
			}
			series = append(series, chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style:   lineStyle(edgeColors[run.Color]),
			})
		}
	}

	for _, overlay := range overlays {
		xs := make([]float64, 0, len(overlay.Values))
		ys := make([]float64, 0, len(overlay.Values))
		for i, value := range overlay.Values {
			if i >= len(overlay.Labels) {
				break
			}
			if x, ok := index[overlay.Labels[i]]; ok {
				xs = append(xs, x)
				ys = append(ys, value)
			}
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    overlay.Name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(drawing.ColorFromHex(trimHash(overlay.Color))),
		})
	}

	graph := chart.Chart{
		Title:      artifact.Camera,
		Width:      pngWidth,
		Height:     pngHeight,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: width},
			ValueFormatter: func(v interface{}) string {
				i, ok := v.(float64)
				if !ok || int(i) < 0 || int(i) >= len(artifact.Points) {
					return ""
				}
				return artifact.Points[int(i)].Label
			},
		},
		YAxis: chart.YAxis{
			Name:  "engagement",
			Range: &chart.ContinuousRange{Min: model.MinThreshold, Max: model.MaxThreshold},
		},
		Series: series,
	}

	return graph.Render(chart.PNG, w)
}

func trimHash(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}
