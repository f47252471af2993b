// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/StanfordCBCL/svZeroDPlus/ele"
	"github.com/StanfordCBCL/svZeroDPlus/inp"
)

// connection is a directed block-to-block link; a node is created for each
type connection struct {
	from, to string
}

// Build translates the configuration into a finalized model and the
// initial state
func Build(cfg *inp.Simulation) (m *ele.Model, state State, err error) {

	m = ele.NewModel()
	var connections []connection

	if len(cfg.ExternalBlocks) > 0 {
		return nil, state, chk.Err("external solver coupling blocks are not supported")
	}

	// vessels
	vesselName := make(map[int]string)
	for _, v := range cfg.Vessels {
		vesselName[v.ID] = v.Name
		pids := []int{
			m.AddConstParam(v.Values.R),
			m.AddConstParam(v.Values.C),
			m.AddConstParam(v.Values.L),
			m.AddConstParam(v.Values.Stenosis),
		}
		if _, err = m.AddBlock(v.Type, pids, v.Name, false); err != nil {
			return nil, state, err
		}
		if v.BCs != nil {
			if v.BCs.Inlet != "" {
				connections = append(connections, connection{v.BCs.Inlet, v.Name})
			}
			if v.BCs.Outlet != "" {
				connections = append(connections, connection{v.Name, v.BCs.Outlet})
			}
		}
	}

	// boundary conditions
	var closedLoopBCs []string
	for _, bc := range cfg.BCs {
		if err = buildBC(m, bc, &closedLoopBCs); err != nil {
			return nil, state, err
		}
	}

	// junctions
	for _, j := range cfg.Junctions {
		if err = buildJunction(m, j); err != nil {
			return nil, state, err
		}
		for _, vid := range j.Inlets {
			name, ok := vesselName[vid]
			if !ok {
				return nil, state, chk.Err("junction %q references unknown inlet vessel %d", j.Name, vid)
			}
			connections = append(connections, connection{name, j.Name})
		}
		for _, vid := range j.Outlets {
			name, ok := vesselName[vid]
			if !ok {
				return nil, state, chk.Err("junction %q references unknown outlet vessel %d", j.Name, vid)
			}
			connections = append(connections, connection{j.Name, name})
		}
	}

	// closed-loop blocks
	heartPresent := false
	for _, cl := range cfg.ClosedLoop {
		if cl.Type != "ClosedLoopHeartAndPulmonary" {
			return nil, state, chk.Err("unknown closed loop type %q", cl.Type)
		}
		if heartPresent {
			return nil, state, chk.Err("only one ClosedLoopHeartAndPulmonary block can be included")
		}
		heartPresent = true
		if m.CardiacCyclePeriod > 0 && math.Abs(m.CardiacCyclePeriod-cl.CardiacCyclePeriod) > 1e-12 {
			return nil, state, chk.Err("inconsistent cardiac cycle period defined in ClosedLoopHeartAndPulmonary: %g != %g", cl.CardiacCyclePeriod, m.CardiacCyclePeriod)
		}
		m.CardiacCyclePeriod = cl.CardiacCyclePeriod
		pids := make([]int, len(ele.HeartParamNames))
		for i, pname := range ele.HeartParamNames {
			val, ok := cl.Parameters[pname]
			if !ok {
				return nil, state, chk.Err("ClosedLoopHeartAndPulmonary requires all 27 heart parameters; %q is missing", pname)
			}
			pids[i] = m.AddConstParam(val)
		}
		if _, err = m.AddBlock("ClosedLoopHeartAndPulmonary", pids, "CLH", false); err != nil {
			return nil, state, err
		}

		// junction collecting the venous return into the heart
		if _, err = m.AddBlock("NORMAL_JUNCTION", nil, "J_heart_inlet", false); err != nil {
			return nil, state, err
		}
		connections = append(connections, connection{"J_heart_inlet", "CLH"})
		for _, name := range closedLoopBCs {
			connections = append(connections, connection{name, "J_heart_inlet"})
		}

		// junction distributing the aortic outflow
		if _, err = m.AddBlock("NORMAL_JUNCTION", nil, "J_heart_outlet", false); err != nil {
			return nil, state, err
		}
		connections = append(connections, connection{"CLH", "J_heart_outlet"})
		for _, name := range cl.OutletBlocks {
			connections = append(connections, connection{"J_heart_outlet", name})
		}
	}

	// nodes
	for _, c := range connections {
		bfrom := m.GetBlock(c.from)
		bto := m.GetBlock(c.to)
		if bfrom == nil || bto == nil {
			return nil, state, chk.Err("cannot connect %q to %q: block not found", c.from, c.to)
		}
		m.AddNode([]ele.Block{bfrom}, []ele.Block{bto}, c.from+":"+c.to)
	}

	// degrees of freedom and model-dependent parameters
	if err = m.Finalize(); err != nil {
		return nil, state, err
	}

	// initial conditions
	state = NewState(m.Dof.Size())
	m.SetICs(state.Y, state.Ydot)
	if err = applyICs(m, cfg.InitialCond, state.Y); err != nil {
		return nil, state, err
	}
	if err = applyICs(m, cfg.InitialCondDot, state.Ydot); err != nil {
		return nil, state, err
	}
	return
}

// buildBC creates one boundary condition block
func buildBC(m *ele.Model, bc *inp.BC, closedLoopBCs *[]string) (err error) {
	v := bc.Values
	times, err := v.Times()
	if err != nil {
		return
	}

	// scalar adds a constant parameter by key
	scalar := func(key string) (id int) {
		if err != nil {
			return -1
		}
		var val float64
		val, err = v.Scalar(key)
		return m.AddConstParam(val)
	}

	// curve adds a possibly time-dependent parameter by key
	curve := func(key string) (id int) {
		if err != nil {
			return -1
		}
		var vals []float64
		vals, err = v.Curve(key)
		if err != nil {
			return -1
		}
		if len(vals) == 1 {
			return m.AddConstParam(vals[0])
		}
		id, err = m.AddParam(times, vals, true)
		return
	}

	var pids []int
	kind := bc.Type
	switch bc.Type {
	case "RCR":
		pids = []int{curve("Rp"), curve("C"), curve("Rd"), curve("Pd")}
	case "ClosedLoopRCR":
		pids = []int{scalar("Rp"), scalar("C"), scalar("Rd")}
	case "FLOW":
		pids = []int{curve("Q")}
	case "PRESSURE":
		pids = []int{curve("P")}
	case "RESISTANCE":
		pids = []int{curve("R"), curve("Pd")}
	case "CORONARY":
		pids = []int{scalar("Ra1"), scalar("Ra2"), scalar("Rv1"), scalar("Ca"), scalar("Cc"), curve("Pim"), curve("P_v")}
	case "ClosedLoopCoronary":
		pids = []int{scalar("Ra"), scalar("Ram"), scalar("Rv"), scalar("Ca"), scalar("Cim")}
		switch v["side"] {
		case "left":
			kind = "ClosedLoopCoronaryLeft"
		case "right":
			kind = "ClosedLoopCoronaryRight"
		default:
			return chk.Err("boundary condition %q: side must be \"left\" or \"right\"", bc.Name)
		}
		*closedLoopBCs = append(*closedLoopBCs, bc.Name)
	default:
		return chk.Err("unknown boundary condition type %q (block %q)", bc.Type, bc.Name)
	}
	if err != nil {
		return chk.Err("boundary condition %q:\n%v", bc.Name, err)
	}
	if _, err = m.AddBlock(kind, pids, bc.Name, false); err != nil {
		return
	}
	if bc.Type == "ClosedLoopRCR" && v.Bool("closed_loop_outlet") {
		m.GetBlock(bc.Name).(*ele.ClosedLoopRCRBC).ClosedLoopOutlet = true
		*closedLoopBCs = append(*closedLoopBCs, bc.Name)
	}
	return
}

// buildJunction creates one junction block
func buildJunction(m *ele.Model, j *inp.Junction) (err error) {
	var pids []int
	switch j.Type {
	case "NORMAL_JUNCTION", "internal_junction":
	case "resistive_junction":
		if j.Values == nil {
			return chk.Err("junction %q requires junction_values with R", j.Name)
		}
		np := len(j.Inlets) + len(j.Outlets)
		if len(j.Values.R) != np {
			return chk.Err("junction %q requires one resistance per port. %d != %d", j.Name, len(j.Values.R), np)
		}
		for _, r := range j.Values.R {
			pids = append(pids, m.AddConstParam(r))
		}
	case "BloodVesselJunction":
		if j.Values == nil {
			return chk.Err("junction %q requires junction_values", j.Name)
		}
		get := func(a []float64, i int) float64 {
			if i < len(a) {
				return a[i]
			}
			return 0
		}
		for i := range j.Outlets {
			pids = append(pids,
				m.AddConstParam(get(j.Values.R, i)),
				m.AddConstParam(get(j.Values.L, i)),
				m.AddConstParam(get(j.Values.Stenosis, i)))
		}
	case "ValveTanh":
		if j.Values == nil {
			return chk.Err("junction %q requires junction_values", j.Name)
		}
		pids = []int{
			m.AddConstParam(j.Values.Rmax),
			m.AddConstParam(j.Values.Rmin),
			m.AddConstParam(j.Values.Steepness),
		}
	case "ChamberElastance":
		if j.Values == nil {
			return chk.Err("junction %q requires junction_values", j.Name)
		}
		pids = []int{
			m.AddConstParam(j.Values.Emax),
			m.AddConstParam(j.Values.Emin),
			m.AddConstParam(j.Values.Vrd),
			m.AddConstParam(j.Values.Vrs),
			m.AddConstParam(j.Values.Tactive),
			m.AddConstParam(j.Values.Ttwitch),
			m.AddConstParam(j.Values.Impedance),
		}
	default:
		return chk.Err("unknown junction type %q (junction %q)", j.Type, j.Name)
	}
	_, err = m.AddBlock(j.Type, pids, j.Name, false)
	return
}

// applyICs copies prescribed initial values into vec. The special keys
// "pressure_all" and "flow_all" apply to every matching variable.
func applyICs(m *ele.Model, ics map[string]float64, vec []float64) (err error) {
	if len(ics) == 0 {
		return
	}
	if val, ok := ics["pressure_all"]; ok {
		for i, name := range m.Dof.Variables {
			if strings.HasPrefix(name, "pressure:") {
				vec[i] = val
			}
		}
	}
	if val, ok := ics["flow_all"]; ok {
		for i, name := range m.Dof.Variables {
			if strings.HasPrefix(name, "flow:") {
				vec[i] = val
			}
		}
	}
	for key, val := range ics {
		if key == "pressure_all" || key == "flow_all" {
			continue
		}
		found := false
		for i, name := range m.Dof.Variables {
			if name == key {
				vec[i] = val
				found = true
				break
			}
		}
		if !found {
			return chk.Err("initial condition references unknown variable %q", key)
		}
	}
	return
}
