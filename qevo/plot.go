package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"bitbucket.org/mrrlab/qevo/esolve"
)

// savePlot writes expectation-value trajectories to an image file.
// The format is deduced from the file extension.
func savePlot(res *esolve.Result, fn string) error {
	if len(res.Expect) == 0 {
		return fmt.Errorf("no observables to plot")
	}
	p := plot.New()
	p.X.Label.Text = "time"
	p.Y.Label.Text = "expectation value"

	args := make([]interface{}, 0, 2*len(res.Expect))
	for k, e := range res.Expect {
		pts := make(plotter.XYs, len(res.Times))
		for i, t := range res.Times {
			pts[i].X = t
			pts[i].Y = e.Re[i]
		}
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("op%d", k)
		}
		args = append(args, name, pts)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, fn)
}

// printGraphs draws one terminal graph per observable.
func printGraphs(res *esolve.Result) {
	if len(res.Expect) == 0 {
		log.Warning("No observables to draw")
		return
	}
	for k, e := range res.Expect {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("op%d", k)
		}
		fmt.Println(asciigraph.Plot(e.Re,
			asciigraph.Height(10),
			asciigraph.Width(72),
			asciigraph.Caption(fmt.Sprintf("<%s>(t)", name))))
		fmt.Println()
	}
}
