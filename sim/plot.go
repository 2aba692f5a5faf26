package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// New2DPlot creates a scatter plot of a simulated run from three data
// sources, each storing one 2D point per row:
//
//	truth:    idealised model values
//	measured: noisy measurement values
//	filtered: filter estimates
//
// It returns error if any matrix is nil or has fewer than 2 columns.
func New2DPlot(truth, measured, filtered *mat.Dense) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Simulation"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Legend = plot.NewLegend()
	p.Legend.Top = true

	series := []struct {
		name  string
		data  *mat.Dense
		style draw.GlyphStyle
	}{
		{
			name:  "truth",
			data:  truth,
			style: draw.GlyphStyle{Color: color.RGBA{R: 255, B: 128, A: 255}, Shape: draw.PyramidGlyph{}, Radius: vg.Points(3)},
		},
		{
			name:  "measurement",
			data:  measured,
			style: draw.GlyphStyle{Color: color.RGBA{G: 255, A: 128}, Shape: draw.RingGlyph{}, Radius: vg.Points(3)},
		},
		{
			name:  "filtered",
			data:  filtered,
			style: draw.GlyphStyle{Color: color.RGBA{R: 169, G: 169, B: 169, A: 255}, Shape: draw.CrossGlyph{}, Radius: vg.Points(3)},
		},
	}

	for _, s := range series {
		if s.data == nil {
			return nil, fmt.Errorf("invalid %s data supplied", s.name)
		}

		if _, cols := s.data.Dims(); cols < 2 {
			return nil, fmt.Errorf("invalid %s data dimensions", s.name)
		}

		scatter, err := plotter.NewScatter(makePoints(s.data))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s scatter: %v", s.name, err)
		}
		scatter.GlyphStyle = s.style

		p.Add(scatter)
		p.Legend.Add(s.name, scatter)
	}

	return p, nil
}

func makePoints(m *mat.Dense) plotter.XYs {
	rows, _ := m.Dims()
	pts := make(plotter.XYs, rows)
	for i := 0; i < rows; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}
