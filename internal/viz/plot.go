package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/spinlab/internal/sim"
)

// PlotSeries renders one sampled observable of a run as an ASCII chart.
func PlotSeries(samples []sim.Sample, pick func(sim.Sample) float64, caption string) string {
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = pick(s)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// PlotCurve renders x-agnostic float data (sweep curves, spectra).
func PlotCurve(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}
