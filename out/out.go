// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements simulation result output: CSV (vessel-centric and
// variable-centric), JSON, an SQLite archive and waveform plots
package out

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/StanfordCBCL/svZeroDPlus/sim"
)

// Write writes the results to path, choosing the format from the suffix:
// .csv (vessel- or variable-centric per the configuration), .json or .db
func Write(path string, res *sim.Results) (err error) {
	switch {
	case strings.HasSuffix(path, ".csv"):
		var b []byte
		if res.Cfg.Params.OutputVarBased {
			b, err = VariableCSV(res)
		} else {
			b, err = VesselCSV(res)
		}
		if err != nil {
			return
		}
		return writeFile(path, b)
	case strings.HasSuffix(path, ".json"):
		b, err := JSONDoc(res)
		if err != nil {
			return err
		}
		return writeFile(path, b)
	case strings.HasSuffix(path, ".db"):
		return WriteDB(path, res)
	}
	return chk.Err("unsupported output file suffix in %q (want .csv, .json or .db)", path)
}

// writeFile writes b to path
func writeFile(path string, b []byte) (err error) {
	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return chk.Err("cannot write output file %q:\n%v", path, err)
	}
	return
}

// fnum formats a float for CSV output
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

// VesselCSV renders one row per vessel and time point with the inlet and
// outlet pressure and flow. With output_mean_only the time series
// collapse to one row of means per vessel (and the time column is
// dropped); with output_derivative the time derivatives are appended.
func VesselCSV(res *sim.Results) (b []byte, err error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	header := []string{"name", "time", "pressure_in", "flow_in", "pressure_out", "flow_out"}
	if res.Cfg.Params.OutputMeanOnly {
		header = append(header[:1], header[2:]...)
	}
	if res.Cfg.Params.OutputDerivative {
		header = append(header, "d_pressure_in", "d_flow_in", "d_pressure_out", "d_flow_out")
	}
	if err = w.Write(header); err != nil {
		return nil, chk.Err("cannot write csv:\n%v", err)
	}

	for _, v := range res.Cfg.Vessels {
		blk := res.Model.GetBlock(v.Name)
		if blk == nil {
			return nil, chk.Err("cannot find vessel block %q", v.Name)
		}
		ids := blk.VarIDs()[:4] // P_in Q_in P_out Q_out

		if res.Cfg.Params.OutputMeanOnly {
			row := []string{v.Name}
			for _, id := range ids {
				row = append(row, fnum(meanOf(res.States, id, false)))
			}
			if res.Cfg.Params.OutputDerivative {
				for _, id := range ids {
					row = append(row, fnum(meanOf(res.States, id, true)))
				}
			}
			if err = w.Write(row); err != nil {
				return nil, chk.Err("cannot write csv:\n%v", err)
			}
			continue
		}

		for k, t := range res.Times {
			row := []string{v.Name, fnum(t)}
			for _, id := range ids {
				row = append(row, fnum(res.States[k].Y[id]))
			}
			if res.Cfg.Params.OutputDerivative {
				for _, id := range ids {
					row = append(row, fnum(res.States[k].Ydot[id]))
				}
			}
			if err = w.Write(row); err != nil {
				return nil, chk.Err("cannot write csv:\n%v", err)
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// VariableCSV renders one row per DOF and time point
func VariableCSV(res *sim.Results) (b []byte, err error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	header := []string{"name", "time", "y"}
	if res.Cfg.Params.OutputMeanOnly {
		header = []string{"name", "y"}
	}
	if res.Cfg.Params.OutputDerivative {
		header = append(header, "ydot")
	}
	if err = w.Write(header); err != nil {
		return nil, chk.Err("cannot write csv:\n%v", err)
	}

	for id, name := range res.Model.Dof.Variables {
		if res.Cfg.Params.OutputMeanOnly {
			row := []string{name, fnum(meanOf(res.States, id, false))}
			if res.Cfg.Params.OutputDerivative {
				row = append(row, fnum(meanOf(res.States, id, true)))
			}
			if err = w.Write(row); err != nil {
				return nil, chk.Err("cannot write csv:\n%v", err)
			}
			continue
		}
		for k, t := range res.Times {
			row := []string{name, fnum(t), fnum(res.States[k].Y[id])}
			if res.Cfg.Params.OutputDerivative {
				row = append(row, fnum(res.States[k].Ydot[id]))
			}
			if err = w.Write(row); err != nil {
				return nil, chk.Err("cannot write csv:\n%v", err)
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// jsonDoc is the JSON output document
type jsonDoc struct {
	Time []float64            `json:"time"`
	Y    map[string][]float64 `json:"y"`
	Ydot map[string][]float64 `json:"ydot,omitempty"`
}

// JSONDoc renders the variable-based results as a JSON document
func JSONDoc(res *sim.Results) (b []byte, err error) {
	doc := jsonDoc{Time: res.Times, Y: make(map[string][]float64)}
	if res.Cfg.Params.OutputDerivative {
		doc.Ydot = make(map[string][]float64)
	}
	for id, name := range res.Model.Dof.Variables {
		ys := make([]float64, len(res.States))
		for k, s := range res.States {
			ys[k] = s.Y[id]
		}
		doc.Y[name] = ys
		if doc.Ydot != nil {
			yd := make([]float64, len(res.States))
			for k, s := range res.States {
				yd[k] = s.Ydot[id]
			}
			doc.Ydot[name] = yd
		}
	}
	b, err = json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return nil, chk.Err("cannot marshal results:\n%v", err)
	}
	return
}

// meanOf averages one variable over the recorded states
func meanOf(states []sim.State, id int, dot bool) (mean float64) {
	if len(states) == 0 {
		return
	}
	for _, s := range states {
		if dot {
			mean += s.Ydot[id]
		} else {
			mean += s.Y[id]
		}
	}
	return mean / float64(len(states))
}
