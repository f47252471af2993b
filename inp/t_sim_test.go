// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func verbose() {
	chk.Verbose = true
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. defaults and derivations")

	cfg, err := ReadSimBytes([]byte(`{
		"simulation_parameters": {
			"number_of_cardiac_cycles": 3,
			"number_of_time_pts_per_cardiac_cycle": 100
		},
		"vessels": [], "junctions": [], "boundary_conditions": []
	}`))
	if err != nil {
		tst.Fatalf("ReadSimBytes failed:\n%v", err)
	}
	chk.Float64(tst, "absolute tolerance", 1e-20, cfg.Params.AbsTol, 1e-8)
	chk.IntAssert(cfg.Params.MaxNliter, 30)
	chk.IntAssert(cfg.Params.OutputInterval, 1)
	chk.Float64(tst, "external step size", 1e-15, cfg.Params.ExternalStepSize, 0.1)
	if !cfg.Params.SteadyInitial {
		tst.Errorf("steady_initial must default to true")
	}
	if cfg.Params.OutputAllCycles {
		tst.Errorf("output_all_cycles must default to false")
	}
	chk.IntAssert(cfg.Params.NumTimeSteps(), (100-1)*3+1)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. validation errors")

	// missing number_of_cardiac_cycles
	_, err := ReadSimBytes([]byte(`{
		"simulation_parameters": {"number_of_time_pts_per_cardiac_cycle": 100}
	}`))
	if err == nil {
		tst.Errorf("error expected for missing number_of_cardiac_cycles")
	}

	// unknown vessel type
	_, err = ReadSimBytes([]byte(`{
		"simulation_parameters": {"number_of_cardiac_cycles": 1, "number_of_time_pts_per_cardiac_cycle": 10},
		"vessels": [{"vessel_id": 0, "vessel_name": "V0", "zero_d_element_type": "Magic"}]
	}`))
	if err == nil {
		tst.Errorf("error expected for unknown vessel type")
	}

	// coupled simulations need number_of_time_pts
	_, err = ReadSimBytes([]byte(`{
		"simulation_parameters": {"coupled_simulation": true}
	}`))
	if err == nil {
		tst.Errorf("error expected for missing number_of_time_pts")
	}
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03. coupled derivations and explicit overrides")

	cfg, err := ReadSimBytes([]byte(`{
		"simulation_parameters": {
			"coupled_simulation": true,
			"number_of_time_pts": 21,
			"external_step_size": 2.0,
			"absolute_tolerance": 1e-10,
			"maximum_nonlinear_iterations": 7,
			"steady_initial": false,
			"output_interval": 5
		}
	}`))
	if err != nil {
		tst.Fatalf("ReadSimBytes failed:\n%v", err)
	}
	chk.IntAssert(cfg.Params.NumTimeSteps(), 21)
	chk.Float64(tst, "absolute tolerance", 1e-25, cfg.Params.AbsTol, 1e-10)
	chk.IntAssert(cfg.Params.MaxNliter, 7)
	chk.IntAssert(cfg.Params.OutputInterval, 5)
	if cfg.Params.SteadyInitial {
		tst.Errorf("steady_initial=false must survive unmarshalling")
	}
}

func Test_sim04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim04. boundary condition value accessors")

	cfg, err := ReadSimBytes([]byte(`{
		"simulation_parameters": {"number_of_cardiac_cycles": 1, "number_of_time_pts_per_cardiac_cycle": 10},
		"boundary_conditions": [{
			"bc_name": "B", "bc_type": "RCR",
			"bc_values": {"t": [0.0, 0.5, 1.0], "Q": [1.0, 2.0, 3.0], "Rp": 100.0, "closed_loop_outlet": true}
		}]
	}`))
	if err != nil {
		tst.Fatalf("ReadSimBytes failed:\n%v", err)
	}
	v := cfg.BCs[0].Values

	rp, err := v.Scalar("Rp")
	if err != nil {
		tst.Errorf("Scalar failed:\n%v", err)
	}
	chk.Float64(tst, "Rp", 1e-15, rp, 100)

	q, err := v.Curve("Q")
	if err != nil {
		tst.Errorf("Curve failed:\n%v", err)
	}
	chk.Array(tst, "Q", 1e-15, q, []float64{1, 2, 3})

	rpc, err := v.Curve("Rp")
	if err != nil {
		tst.Errorf("Curve failed:\n%v", err)
	}
	chk.Array(tst, "Rp as curve", 1e-15, rpc, []float64{100})

	ts, err := v.Times()
	if err != nil {
		tst.Errorf("Times failed:\n%v", err)
	}
	chk.Array(tst, "t", 1e-15, ts, []float64{0, 0.5, 1})

	if !v.Bool("closed_loop_outlet") {
		tst.Errorf("Bool failed")
	}
	if v.Bool("not_there") {
		tst.Errorf("Bool must default to false")
	}

	if _, err = v.Scalar("nope"); err == nil {
		tst.Errorf("error expected for missing scalar")
	}
	if _, err = v.Curve("nope"); err == nil {
		tst.Errorf("error expected for missing curve")
	}
}
