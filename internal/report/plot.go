/*
Copyright 2026 The varqe Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/varqe-dev/varqe/internal/history"
)

// SaveConvergencePlot writes a PNG of the raw energies and the running
// best against evaluation count. An optional exact energy is drawn as a
// horizontal reference line.
func SaveConvergencePlot(path, title string, evals []history.Evaluation, exact *float64) error {
	if len(evals) == 0 {
		return fmt.Errorf("nothing to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "evaluation"
	p.Y.Label.Text = "energy (Hartree)"

	raw := make(plotter.XYs, len(evals))
	best := make(plotter.XYs, len(evals))
	for i, ev := range evals {
		raw[i].X = float64(ev.Index)
		raw[i].Y = ev.Energy
		best[i].X = float64(ev.Index)
		best[i].Y = ev.Best
	}

	rawLine, err := plotter.NewLine(raw)
	if err != nil {
		return err
	}
	rawLine.Color = color.RGBA{R: 160, G: 160, B: 160, A: 255}

	bestLine, err := plotter.NewLine(best)
	if err != nil {
		return err
	}
	bestLine.Color = color.RGBA{B: 200, A: 255}
	bestLine.Width = vg.Points(1.5)

	p.Add(plotter.NewGrid(), rawLine, bestLine)
	p.Legend.Add("energy", rawLine)
	p.Legend.Add("best", bestLine)

	if exact != nil {
		ref := plotter.XYs{
			{X: float64(evals[0].Index), Y: *exact},
			{X: float64(evals[len(evals)-1].Index), Y: *exact},
		}
		refLine, err := plotter.NewLine(ref)
		if err != nil {
			return err
		}
		refLine.Color = color.RGBA{R: 200, A: 255}
		refLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(refLine)
		p.Legend.Add("exact", refLine)
	}

	return p.Save(7*vg.Inch, 4.5*vg.Inch, path)
}

// SaveScanPlot writes a PNG of energy against bond length, the
// dissociation curve a scan run produces.
func SaveScanPlot(path, title string, lengths, energies []float64) error {
	if len(lengths) == 0 || len(lengths) != len(energies) {
		return fmt.Errorf("mismatched scan data: %d lengths, %d energies", len(lengths), len(energies))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "bond length (Angstrom)"
	p.Y.Label.Text = "energy (Hartree)"

	pts := make(plotter.XYs, len(lengths))
	for i := range lengths {
		pts[i].X = lengths[i]
		pts[i].Y = energies[i]
	}

	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 200, A: 255}

	p.Add(plotter.NewGrid(), line, scatter)
	return p.Save(7*vg.Inch, 4.5*vg.Inch, path)
}
