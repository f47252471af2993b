// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/cpmech/gosl/chk"

	"github.com/StanfordCBCL/svZeroDPlus/ele"
)

// SteadyInit computes an initial state close to the asymptotic periodic
// solution by running a short pre-simulation with all time-dependent
// parameters frozen at their cycle means and capacitive behavior
// suppressed. The model is restored to unsteady mode afterwards.
func SteadyInit(m *ele.Model, state State, atol float64, maxIt int) (res State, err error) {
	if m.HasBlockKind("ClosedLoopHeartAndPulmonary") {
		return state, chk.Err("steady initial condition is not compatible with the ClosedLoopHeartAndPulmonary block")
	}
	dt := m.CardiacCyclePeriod / 10.0
	m.ToSteady()
	defer m.ToUnsteady()
	integ := NewIntegrator(m, dt, 0.1, atol, maxIt)
	defer integ.Clean()
	res = state
	for i := 0; i < 31; i++ {
		res, err = integ.Step(res, dt*float64(i))
		if err != nil {
			return res, chk.Err("steady initialization failed:\n%v", err)
		}
	}
	return
}
