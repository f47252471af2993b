// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/StanfordCBCL/svZeroDPlus/inp"
)

func verbose() {
	chk.Verbose = true
}

// varID returns the global id of a named variable
func varID(tst *testing.T, res *Results, name string) int {
	for i, n := range res.Model.Dof.Variables {
		if n == name {
			return i
		}
	}
	tst.Fatalf("cannot find variable %q", name)
	return -1
}

func Test_genalpha01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("genalpha01. generalized-alpha coefficients for rho=0.1")

	cfg, err := inp.ReadSimBytes([]byte(`{
		"simulation_parameters": {"number_of_cardiac_cycles": 1, "number_of_time_pts_per_cardiac_cycle": 2},
		"boundary_conditions": [
			{"bc_name": "IN", "bc_type": "FLOW", "bc_values": {"Q": 1.0}},
			{"bc_name": "OUT", "bc_type": "PRESSURE", "bc_values": {"P": 0.0}}
		],
		"vessels": [{
			"vessel_id": 0, "vessel_name": "V0", "zero_d_element_type": "BloodVessel",
			"zero_d_element_values": {"R_poiseuille": 100.0},
			"boundary_conditions": {"inlet": "IN", "outlet": "OUT"}
		}]
	}`))
	if err != nil {
		tst.Fatalf("ReadSimBytes failed:\n%v", err)
	}
	m, _, err := Build(cfg)
	if err != nil {
		tst.Fatalf("Build failed:\n%v", err)
	}
	integ := NewIntegrator(m, 0.01, 0.1, 1e-8, 30)
	defer integ.Clean()
	alphaM, alphaF, gamma := integ.Coeffs()
	chk.Float64(tst, "alpha_m", 1e-15, alphaM, 2.9/2.2)
	chk.Float64(tst, "alpha_f", 1e-15, alphaF, 1.0/1.1)
	chk.Float64(tst, "gamma", 1e-15, gamma, 0.5+2.9/2.2-1.0/1.1)
}

func Test_steady01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("steady01. single resistor: Q=1, R=100, Pd=0")

	cfg, err := inp.ReadSimBytes([]byte(`{
		"simulation_parameters": {
			"number_of_cardiac_cycles": 2,
			"number_of_time_pts_per_cardiac_cycle": 11,
			"output_all_cycles": true
		},
		"boundary_conditions": [
			{"bc_name": "INFLOW", "bc_type": "FLOW", "bc_values": {"Q": 1.0}},
			{"bc_name": "OUT", "bc_type": "PRESSURE", "bc_values": {"P": 0.0}}
		],
		"vessels": [{
			"vessel_id": 0, "vessel_name": "V0", "zero_d_element_type": "BloodVessel",
			"zero_d_element_values": {"R_poiseuille": 100.0},
			"boundary_conditions": {"inlet": "INFLOW", "outlet": "OUT"}
		}]
	}`))
	if err != nil {
		tst.Fatalf("ReadSimBytes failed:\n%v", err)
	}
	res, err := Run(cfg, chk.Verbose)
	if err != nil {
		tst.Fatalf("Run failed:\n%v", err)
	}

	last := res.States[len(res.States)-1]
	tol := 10 * cfg.Params.AbsTol
	chk.Float64(tst, "P_in", tol, last.Y[varID(tst, res, "pressure:INFLOW:V0")], 100)
	chk.Float64(tst, "P_out", tol, last.Y[varID(tst, res, "pressure:V0:OUT")], 0)
	chk.Float64(tst, "Q_in", tol, last.Y[varID(tst, res, "flow:INFLOW:V0")], 1)
	chk.Float64(tst, "Q_out", tol, last.Y[varID(tst, res, "flow:V0:OUT")], 1)

	// the derivative must vanish at steady state
	for i, yd := range last.Ydot {
		if math.Abs(yd) > 1e-6 {
			tst.Errorf("ydot[%d]=%g is not small at steady state", i, yd)
		}
	}
}

func Test_steady02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("steady02. junction mass conservation and flow split")

	cfg, err := inp.ReadSimBytes([]byte(`{
		"simulation_parameters": {
			"number_of_cardiac_cycles": 2,
			"number_of_time_pts_per_cardiac_cycle": 11,
			"output_all_cycles": true
		},
		"boundary_conditions": [
			{"bc_name": "INFLOW", "bc_type": "FLOW", "bc_values": {"Q": 2.0}},
			{"bc_name": "OUT1", "bc_type": "PRESSURE", "bc_values": {"P": 0.0}},
			{"bc_name": "OUT2", "bc_type": "PRESSURE", "bc_values": {"P": 0.0}}
		],
		"vessels": [
			{"vessel_id": 0, "vessel_name": "V0", "zero_d_element_type": "BloodVessel",
			 "zero_d_element_values": {"R_poiseuille": 50.0},
			 "boundary_conditions": {"inlet": "INFLOW"}},
			{"vessel_id": 1, "vessel_name": "V1", "zero_d_element_type": "BloodVessel",
			 "zero_d_element_values": {"R_poiseuille": 200.0},
			 "boundary_conditions": {"outlet": "OUT1"}},
			{"vessel_id": 2, "vessel_name": "V2", "zero_d_element_type": "BloodVessel",
			 "zero_d_element_values": {"R_poiseuille": 300.0},
			 "boundary_conditions": {"outlet": "OUT2"}}
		],
		"junctions": [{
			"junction_name": "J0", "junction_type": "NORMAL_JUNCTION",
			"inlet_vessels": [0], "outlet_vessels": [1, 2]
		}]
	}`))
	if err != nil {
		tst.Fatalf("ReadSimBytes failed:\n%v", err)
	}
	res, err := Run(cfg, chk.Verbose)
	if err != nil {
		tst.Fatalf("Run failed:\n%v", err)
	}

	last := res.States[len(res.States)-1]
	tol := 1e-6
	q1 := last.Y[varID(tst, res, "flow:V1:OUT1")]
	q2 := last.Y[varID(tst, res, "flow:V2:OUT2")]
	chk.Float64(tst, "Q_out1", tol, q1, 2.0*300.0/(200.0+300.0))
	chk.Float64(tst, "Q_out2", tol, q2, 2.0*200.0/(200.0+300.0))
	chk.Float64(tst, "mass balance", tol, q1+q2, 2.0)
}

func Test_steady03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("steady03. stenosis pressure drop: K=50, Q=2")

	cfg, err := inp.ReadSimBytes([]byte(`{
		"simulation_parameters": {
			"number_of_cardiac_cycles": 2,
			"number_of_time_pts_per_cardiac_cycle": 11,
			"output_all_cycles": true
		},
		"boundary_conditions": [
			{"bc_name": "INFLOW", "bc_type": "FLOW", "bc_values": {"Q": 2.0}},
			{"bc_name": "OUT", "bc_type": "PRESSURE", "bc_values": {"P": 0.0}}
		],
		"vessels": [{
			"vessel_id": 0, "vessel_name": "V0", "zero_d_element_type": "BloodVessel",
			"zero_d_element_values": {"R_poiseuille": 0.0, "stenosis_coefficient": 50.0},
			"boundary_conditions": {"inlet": "INFLOW", "outlet": "OUT"}
		}]
	}`))
	if err != nil {
		tst.Fatalf("ReadSimBytes failed:\n%v", err)
	}
	res, err := Run(cfg, chk.Verbose)
	if err != nil {
		tst.Fatalf("Run failed:\n%v", err)
	}

	last := res.States[len(res.States)-1]
	dp := last.Y[varID(tst, res, "pressure:INFLOW:V0")] - last.Y[varID(tst, res, "pressure:V0:OUT")]
	chk.Float64(tst, "dP", 1e-6, dp, 50.0*2.0*2.0)
}

func Test_newton01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton01. pathological valve fails to converge")

	cfg, err := inp.ReadSimBytes([]byte(`{
		"simulation_parameters": {
			"number_of_cardiac_cycles": 1,
			"number_of_time_pts_per_cardiac_cycle": 11,
			"steady_initial": false,
			"maximum_nonlinear_iterations": 5
		},
		"boundary_conditions": [
			{"bc_name": "INFLOW", "bc_type": "FLOW", "bc_values": {"Q": 1.0}},
			{"bc_name": "OUT", "bc_type": "PRESSURE", "bc_values": {"P": 0.0}}
		],
		"vessels": [
			{"vessel_id": 0, "vessel_name": "V0", "zero_d_element_type": "BloodVessel",
			 "zero_d_element_values": {"R_poiseuille": 1.0},
			 "boundary_conditions": {"inlet": "INFLOW"}},
			{"vessel_id": 1, "vessel_name": "V1", "zero_d_element_type": "BloodVessel",
			 "zero_d_element_values": {"R_poiseuille": 1.0},
			 "boundary_conditions": {"outlet": "OUT"}}
		],
		"junctions": [{
			"junction_name": "VLV", "junction_type": "ValveTanh",
			"inlet_vessels": [0], "outlet_vessels": [1],
			"junction_values": {"Rmax": 1e10, "Rmin": 1e-10, "steepness": 1e9}
		}]
	}`))
	if err != nil {
		tst.Fatalf("ReadSimBytes failed:\n%v", err)
	}
	_, err = Run(cfg, chk.Verbose)
	if err == nil {
		tst.Errorf("convergence failure expected")
	}
}

func Test_heart01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("heart01. closed-loop heart rejects steady initialization")

	cfg := heartConfig(tst, true)
	_, err := Run(cfg, chk.Verbose)
	if err == nil {
		tst.Errorf("error expected: steady_initial with ClosedLoopHeartAndPulmonary")
	}
}

// heartConfig builds a minimal closed-loop heart configuration
func heartConfig(tst *testing.T, steadyInitial bool) *inp.Simulation {
	params := make(map[string]float64)
	for _, name := range []string{
		"Tsa", "tpwave", "Erv_s", "Elv_s", "iml", "imr",
		"Lra_v", "Rra_v", "Lrv_a", "Rrv_a", "Lla_v", "Rla_v", "Llv_a", "Rlv_ao",
		"Vrv_u", "Vlv_u", "Rpd", "Cp", "Cpa",
		"Kxp_ra", "Kxv_ra", "Kxp_la", "Kxv_la",
		"Emax_ra", "Emax_la", "Vaso_ra", "Vaso_la",
	} {
		params[name] = 0.1
	}
	params["tpwave"] = 10.0
	cfg := &inp.Simulation{
		Params: inp.SimParams{
			NumCycles:      1,
			PtsPerCycle:    11,
			AbsTol:         1e-8,
			MaxNliter:      30,
			SteadyInitial:  steadyInitial,
			OutputInterval: 1,
		},
		Vessels: []*inp.Vessel{{
			ID: 0, Name: "V0", Type: "BloodVessel",
			Values: inp.VesselValues{R: 100},
			BCs:    &inp.VesselBCs{Outlet: "RCRBC"},
		}},
		BCs: []*inp.BC{{
			Name: "RCRBC", Type: "ClosedLoopRCR",
			Values: inp.BCValues{"Rp": 100.0, "C": 1e-4, "Rd": 1000.0, "closed_loop_outlet": true},
		}},
		ClosedLoop: []*inp.ClosedLoopBlock{{
			Type:               "ClosedLoopHeartAndPulmonary",
			CardiacCyclePeriod: 1.0,
			Parameters:         params,
			OutletBlocks:       []string{"V0"},
		}},
	}
	return cfg
}

func Test_heart02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("heart02. closed-loop heart model assembles square")

	cfg := heartConfig(tst, false)
	m, state, err := Build(cfg)
	if err != nil {
		tst.Fatalf("Build failed:\n%v", err)
	}
	chk.IntAssert(m.Dof.Size(), m.Dof.Neq())

	// heart initial conditions are prescribed
	heart := m.GetBlock("CLH")
	chk.Float64(tst, "RA volume IC", 1e-15, state.Y[heart.VarIDs()[4]], 38.43)
	chk.Float64(tst, "pulmonary pressure IC", 1e-15, state.Y[heart.VarIDs()[9]], 8.0)
}
