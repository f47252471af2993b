// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/StanfordCBCL/svZeroDPlus/ele"
	"github.com/StanfordCBCL/svZeroDPlus/inp"
)

// Results holds the simulation output: the recorded times and states
// together with the model and configuration that produced them
type Results struct {
	Cfg    *inp.Simulation
	Model  *ele.Model
	Times  []float64
	States []State
}

// Run builds the model from the configuration and runs the simulation:
// optional steady initialization, then the main generalized-alpha loop
func Run(cfg *inp.Simulation, verbose bool) (res *Results, err error) {

	// build model
	m, state, err := Build(cfg)
	if err != nil {
		return nil, err
	}

	// check steady initialization compatibility
	if cfg.Params.SteadyInitial && m.HasBlockKind("ClosedLoopHeartAndPulmonary") {
		return nil, chk.Err("steady_initial is not compatible with the ClosedLoopHeartAndPulmonary block")
	}

	// time step size
	var dt float64
	numSteps := cfg.Params.NumTimeSteps()
	if cfg.Params.Coupled {
		dt = cfg.Params.ExternalStepSize / float64(numSteps-1)
	} else {
		dt = m.CardiacCyclePeriod / float64(cfg.Params.PtsPerCycle-1)
	}

	// steady initialization
	if cfg.Params.SteadyInitial {
		if verbose {
			io.Pf("computing steady initial condition\n")
		}
		state, err = SteadyInit(m, state, cfg.Params.AbsTol, cfg.Params.MaxNliter)
		if err != nil {
			return nil, err
		}
	}

	// main loop
	integ := NewIntegrator(m, dt, 0.1, cfg.Params.AbsTol, cfg.Params.MaxNliter)
	defer integ.Clean()
	res = &Results{Cfg: cfg, Model: m}

	startLastCycle := numSteps - cfg.Params.PtsPerCycle
	if cfg.Params.Coupled || cfg.Params.OutputAllCycles || startLastCycle < 0 {
		startLastCycle = 0
	}
	record := func(i int, t float64, s State) {
		if i < startLastCycle {
			return
		}
		if i > startLastCycle && (i-startLastCycle)%cfg.Params.OutputInterval != 0 && i != numSteps-1 {
			return
		}
		res.Times = append(res.Times, t-dt*float64(startLastCycle))
		res.States = append(res.States, s)
	}

	t := 0.0
	record(0, t, state)
	for i := 1; i < numSteps; i++ {
		state, err = integ.Step(state, t)
		if err != nil {
			return nil, err
		}
		t = dt * float64(i)
		if verbose {
			io.Pf("%30.15f\r", t)
		}
		record(i, t, state)
	}
	return
}
