// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a JSON configuration file
package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// SimParams holds the simulation and output control parameters
type SimParams struct {
	NumCycles        int     `json:"number_of_cardiac_cycles"`              // number of cardiac cycles to simulate
	PtsPerCycle      int     `json:"number_of_time_pts_per_cardiac_cycle"`  // time points per cycle
	Coupled          bool    `json:"coupled_simulation"`                    // simulation is driven by an external solver
	NumTimePts       int     `json:"number_of_time_pts"`                    // total time points (coupled only)
	ExternalStepSize float64 `json:"external_step_size"`                    // external solver step size (coupled only)
	AbsTol           float64 `json:"absolute_tolerance"`                    // absolute tolerance for nonlinear iterations
	MaxNliter        int     `json:"maximum_nonlinear_iterations"`          // max nonlinear iterations
	SteadyInitial    bool    `json:"steady_initial"`                        // use steady solution as initial condition
	OutputInterval   int     `json:"output_interval"`                       // write every n-th time step
	OutputMeanOnly   bool    `json:"output_mean_only"`                      // collapse time series to means
	OutputVarBased   bool    `json:"output_variable_based"`                 // one column per DOF instead of per vessel
	OutputDerivative bool    `json:"output_derivative"`                     // also write time derivatives
	OutputAllCycles  bool    `json:"output_all_cycles"`                     // write all cycles, not only the last one
}

// VesselValues holds the element values of a vessel
type VesselValues struct {
	R        float64 `json:"R_poiseuille"`         // Poiseuille resistance
	C        float64 `json:"C"`                    // capacitance
	L        float64 `json:"L"`                    // inductance
	Stenosis float64 `json:"stenosis_coefficient"` // stenosis coefficient
}

// VesselBCs names the boundary conditions attached to a vessel
type VesselBCs struct {
	Inlet  string `json:"inlet"`
	Outlet string `json:"outlet"`
}

// Vessel holds one vessel segment
type Vessel struct {
	ID     int          `json:"vessel_id"`
	Name   string       `json:"vessel_name"`
	Type   string       `json:"zero_d_element_type"`
	Values VesselValues `json:"zero_d_element_values"`
	BCs    *VesselBCs   `json:"boundary_conditions"`
}

// JunctionValues holds type-specific junction values
type JunctionValues struct {

	// resistive and blood-vessel junctions
	R        []float64 `json:"R"`                    // resistances per port (per outlet for blood-vessel junctions)
	L        []float64 `json:"L"`                    // inductances per outlet
	Stenosis []float64 `json:"stenosis_coefficient"` // stenosis coefficients per outlet

	// tanh valves
	Rmax      float64 `json:"Rmax"`      // closed valve resistance
	Rmin      float64 `json:"Rmin"`      // open valve resistance
	Steepness float64 `json:"steepness"` // sigmoid steepness

	// elastance chambers
	Emax      float64 `json:"Emax"`      // maximum elastance
	Emin      float64 `json:"Emin"`      // minimum elastance
	Vrd       float64 `json:"Vrd"`       // diastolic rest volume
	Vrs       float64 `json:"Vrs"`       // systolic rest volume
	Tactive   float64 `json:"t_active"`  // activation onset within the cycle
	Ttwitch   float64 `json:"t_twitch"`  // twitch duration
	Impedance float64 `json:"Impedance"` // outflow impedance
}

// Junction holds one junction
type Junction struct {
	Name    string          `json:"junction_name"`
	Type    string          `json:"junction_type"`
	Inlets  []int           `json:"inlet_vessels"`
	Outlets []int           `json:"outlet_vessels"`
	Values  *JunctionValues `json:"junction_values"`
}

// BCValues holds the heterogeneous value set of a boundary condition:
// scalars, curves and flags, with an optional shared time axis "t"
type BCValues map[string]interface{}

// BC holds one boundary condition
type BC struct {
	Name   string   `json:"bc_name"`
	Type   string   `json:"bc_type"`
	Values BCValues `json:"bc_values"`
}

// ClosedLoopBlock holds one closed-loop block definition
type ClosedLoopBlock struct {
	Type               string             `json:"closed_loop_type"`
	CardiacCyclePeriod float64            `json:"cardiac_cycle_period"`
	Parameters         map[string]float64 `json:"parameters"`
	OutletBlocks       []string           `json:"outlet_blocks"`
}

// Simulation holds all input data
type Simulation struct {
	Params          SimParams          `json:"simulation_parameters"`
	Vessels         []*Vessel          `json:"vessels"`
	Junctions       []*Junction        `json:"junctions"`
	BCs             []*BC              `json:"boundary_conditions"`
	ClosedLoop      []*ClosedLoopBlock `json:"closed_loop_blocks"`
	ExternalBlocks  []json.RawMessage  `json:"external_solver_coupling_blocks"`
	InitialCond     map[string]float64 `json:"initial_condition"`
	InitialCondDot  map[string]float64 `json:"initial_condition_d"`
}

// SetDefault sets default values; to be called before unmarshalling
func (o *SimParams) SetDefault() {
	o.ExternalStepSize = 0.1
	o.AbsTol = 1e-8
	o.MaxNliter = 30
	o.SteadyInitial = true
	o.OutputInterval = 1
}

// Validate checks the required keys
func (o *Simulation) Validate() (err error) {
	if o.Params.Coupled {
		if o.Params.NumTimePts < 2 {
			return chk.Err("number_of_time_pts must be given (>= 2) for coupled simulations")
		}
	} else {
		if o.Params.NumCycles < 1 {
			return chk.Err("number_of_cardiac_cycles must be given (>= 1)")
		}
		if o.Params.PtsPerCycle < 2 {
			return chk.Err("number_of_time_pts_per_cardiac_cycle must be given (>= 2)")
		}
	}
	if o.Params.OutputInterval < 1 {
		return chk.Err("output_interval must be >= 1")
	}
	for _, v := range o.Vessels {
		if v.Type != "BloodVessel" {
			return chk.Err("unknown vessel type %q (vessel %q)", v.Type, v.Name)
		}
	}
	return
}

// NumTimeSteps returns the total number of simulated time points
func (o *SimParams) NumTimeSteps() int {
	if o.Coupled {
		return o.NumTimePts
	}
	return (o.PtsPerCycle-1)*o.NumCycles + 1
}

// ReadSim reads the simulation data from a JSON file
func ReadSim(path string) (o *Simulation, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", path, err)
	}
	return ReadSimBytes(b)
}

// ReadSimBytes reads the simulation data from a JSON byte slice
func ReadSimBytes(b []byte) (o *Simulation, err error) {
	o = new(Simulation)
	o.Params.SetDefault()
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation data:\n%v", err)
	}
	err = o.Validate()
	if err != nil {
		return nil, err
	}
	return
}

// accessors ///////////////////////////////////////////////////////////////////////////////////////

// Scalar returns a scalar value by key
func (o BCValues) Scalar(key string) (val float64, err error) {
	raw, ok := o[key]
	if !ok {
		return 0, chk.Err("missing boundary condition value %q", key)
	}
	val, ok = raw.(float64)
	if !ok {
		return 0, chk.Err("boundary condition value %q must be a number", key)
	}
	return
}

// Bool returns a boolean value by key; absent keys yield false
func (o BCValues) Bool(key string) bool {
	raw, ok := o[key]
	if !ok {
		return false
	}
	b, _ := raw.(bool)
	return b
}

// Curve returns a value by key that may be a scalar or an array. Scalars
// come back as a single-entry slice.
func (o BCValues) Curve(key string) (vals []float64, err error) {
	raw, ok := o[key]
	if !ok {
		return nil, chk.Err("missing boundary condition value %q", key)
	}
	switch x := raw.(type) {
	case float64:
		return []float64{x}, nil
	case []float64:
		return x, nil
	case []interface{}:
		vals = make([]float64, len(x))
		for i, xi := range x {
			v, ok := xi.(float64)
			if !ok {
				return nil, chk.Err("boundary condition value %q must contain numbers only", key)
			}
			vals[i] = v
		}
		return vals, nil
	}
	return nil, chk.Err("boundary condition value %q must be a number or an array", key)
}

// Times returns the shared time axis "t", or nil if absent
func (o BCValues) Times() (times []float64, err error) {
	if _, ok := o["t"]; !ok {
		return nil, nil
	}
	return o.Curve("t")
}
