// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cpmech/gosl/chk"

	"github.com/StanfordCBCL/svZeroDPlus/sim"
)

// PlotVessel renders the inlet and outlet pressure waveforms of one
// vessel to a PNG file
func PlotVessel(res *sim.Results, vesselName, path string) (err error) {
	blk := res.Model.GetBlock(vesselName)
	if blk == nil {
		return chk.Err("cannot find vessel block %q", vesselName)
	}
	ids := blk.VarIDs()

	p := plot.New()
	p.Title.Text = vesselName
	p.X.Label.Text = "time"
	p.Y.Label.Text = "pressure"

	series := func(id int) plotter.XYs {
		xy := make(plotter.XYs, len(res.Times))
		for k, t := range res.Times {
			xy[k].X = t
			xy[k].Y = res.States[k].Y[id]
		}
		return xy
	}

	lin, err := plotter.NewLine(series(ids[0]))
	if err != nil {
		return chk.Err("cannot create plot line:\n%v", err)
	}
	lout, err := plotter.NewLine(series(ids[2]))
	if err != nil {
		return chk.Err("cannot create plot line:\n%v", err)
	}
	lout.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(lin, lout)
	p.Legend.Add("inlet", lin)
	p.Legend.Add("outlet", lout)

	err = p.Save(6*vg.Inch, 4*vg.Inch, path)
	if err != nil {
		return chk.Err("cannot save plot %q:\n%v", path, err)
	}
	return
}
