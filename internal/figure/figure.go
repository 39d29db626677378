// Package figure converts charts and summaries into Plotly figures that a
// browser can render directly or that can be saved as standalone HTML.
package figure

import (
	"math"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/MetalBlueberry/go-plotly/offline"
	"github.com/iwvelando/cost-of-living/internal/chart"
	"github.com/iwvelando/cost-of-living/internal/summary"
	"github.com/iwvelando/cost-of-living/pkg/datetime"
)

const dashStyle = "dash"

// FromChart returns the line figure for c.
func FromChart(c *chart.Chart) *grob.Fig {
	fig := &grob.Fig{}
	fig.Layout = &grob.Layout{
		Title:      &grob.LayoutTitle{Text: c.Title},
		Showlegend: grob.True,
		Xaxis:      &grob.LayoutXaxis{Title: &grob.LayoutXaxisTitle{Text: c.XAxis.Title}},
		Yaxis:      &grob.LayoutYaxis{Title: &grob.LayoutYaxisTitle{Text: c.YAxis.Title}},
	}
	if c.YAxis.Range != nil {
		fig.Layout.Yaxis.Range = []float64{c.YAxis.Range[0], c.YAxis.Range[1]}
	}

	for _, s := range c.Series {
		x := make([]string, len(s.Dates))
		for i, d := range s.Dates {
			x[i] = datetime.FormatDate(d)
		}

		tr := &grob.Scatter{
			Type:      grob.TraceTypeScatter,
			Name:      s.Name,
			X:         x,
			Y:         nullable(s.Values),
			Hovertext: s.HoverText,
			Mode:      grob.ScatterModeLines,
		}
		if s.Dashed {
			tr.Line = &grob.ScatterLine{Dash: dashStyle}
		}
		fig.AddTraces(tr)
	}
	return fig
}

// FromSummary returns the three-bar figure for s.
func FromSummary(s summary.Summary) *grob.Fig {
	fig := &grob.Fig{}
	fig.Layout = &grob.Layout{
		Title:      &grob.LayoutTitle{Text: s.Title},
		Showlegend: grob.False,
		Yaxis:      &grob.LayoutYaxis{Title: &grob.LayoutYaxisTitle{Text: "Amount (USD)"}},
	}
	fig.AddTraces(&grob.Bar{
		Type: grob.TraceTypeBar,
		X:    s.Categories[:],
		Y:    nullable(s.Values[:]),
		Text: s.Text[:],
	})
	return fig
}

// WriteHTML saves fig as a standalone HTML page at path.
func WriteHTML(fig *grob.Fig, path string) {
	offline.ToHtml(fig, path)
}

// nullable replaces values JSON cannot carry with nil so Plotly draws a gap.
func nullable(values []float64) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[i] = v
	}
	return out
}
