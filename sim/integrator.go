// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sim implements the generalized-alpha time integration of the 0D
// model, the steady-state initializer and the simulation driver
package sim

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/StanfordCBCL/svZeroDPlus/ele"
)

// State carries the solution y and its time derivative dy/dt. Both evolve
// together; neither is derivable from the other because the system is a
// DAE, not a pure ODE.
type State struct {
	Y    []float64
	Ydot []float64
}

// NewState returns a zero state of size n
func NewState(n int) State {
	return State{Y: make([]float64, n), Ydot: make([]float64, n)}
}

// Clone returns a deep copy
func (o State) Clone() (c State) {
	c = NewState(len(o.Y))
	copy(c.Y, o.Y)
	copy(c.Ydot, o.Ydot)
	return
}

// Integrator performs generalized-alpha time steps with a Newton-Raphson
// inner loop (Jansen, Whiting & Hulbert 2000). For spectral radius rho:
//
//	αm = (3 - rho) / (2 + 2⋅rho)
//	αf = 1 / (1 + rho)
//	γ  = 1/2 + αm - αf
//
// Each step evaluates y at t+αf⋅Δt and dy/dt at t+αm⋅Δt, corrects both
// with Newton increments until max|r| < atol, and recovers the end-of-step
// state by dividing the intermediate increments by αf and αm.
type Integrator struct {

	// input
	model  *ele.Model
	Sys    *ele.System
	dt     float64
	atol   float64
	maxIt  int

	// generalized-alpha constants
	alphaM, alphaF, gamma float64
	eCoeff                float64 // αm / (αf⋅γ⋅Δt)

	// workspace
	yaf    []float64 // y at t + αf⋅Δt
	ydotam []float64 // dy/dt at t + αm⋅Δt
}

// NewIntegrator creates a new integrator for a finalized model. The
// system is allocated from the model's triplet counts and the constant
// block contributions are assembled once, here.
func NewIntegrator(m *ele.Model, dt, rho, atol float64, maxIt int) (o *Integrator) {
	o = &Integrator{model: m, dt: dt, atol: atol, maxIt: maxIt}
	o.alphaM = 0.5 * (3.0 - rho) / (1.0 + rho)
	o.alphaF = 1.0 / (1.0 + rho)
	o.gamma = 0.5 + o.alphaM - o.alphaF
	o.eCoeff = o.alphaM / (o.alphaF * o.gamma * dt)
	n := m.Dof.Size()
	o.Sys = ele.NewSystem(n, m.NumTriplets())
	o.yaf = make([]float64, n)
	o.ydotam = make([]float64, n)
	m.Params.Eval(0)
	m.UpdateConstant(o.Sys)
	return
}

// Coeffs returns the generalized-alpha constants αm, αf and γ
func (o *Integrator) Coeffs() (alphaM, alphaF, gamma float64) {
	return o.alphaM, o.alphaF, o.gamma
}

// Step advances the state from time t to t+Δt. Newton non-convergence and
// a singular Jacobian are fatal for the call.
func (o *Integrator) Step(state State, t float64) (newState State, err error) {

	n := len(state.Y)
	newState = NewState(n)

	// predictor
	for i := 0; i < n; i++ {
		newState.Y[i] = state.Y[i] + 0.5*o.dt*state.Ydot[i]
		newState.Ydot[i] = state.Ydot[i] * (o.gamma - 1.0) / o.gamma
	}

	// initiator
	for i := 0; i < n; i++ {
		o.yaf[i] = state.Y[i] + o.alphaF*(newState.Y[i]-state.Y[i])
		o.ydotam[i] = state.Ydot[i] + o.alphaM*(newState.Ydot[i]-state.Ydot[i])
	}

	// time update
	taf := t + o.alphaF*o.dt
	o.model.UpdateTime(o.Sys, taf)

	// Newton-Raphson iterations
	for it := 0; it < o.maxIt; it++ {
		o.model.UpdateSolution(o.Sys, o.yaf, o.ydotam)
		o.Sys.UpdateResidual(o.yaf, o.ydotam)
		if la.VecLargest(o.Sys.Residual, 1) < o.atol {
			break
		}
		if it == o.maxIt-1 {
			return newState, chk.Err("Newton iterations did not converge at t=%g: max|r|=%g after %d iterations", taf, la.VecLargest(o.Sys.Residual, 1), o.maxIt)
		}
		o.Sys.UpdateJacobian(o.eCoeff)
		if err = o.Sys.Solve(); err != nil {
			return newState, chk.Err("linear solve failed at t=%g (iteration %d):\n%v", taf, it, err)
		}
		for i := 0; i < n; i++ {
			o.yaf[i] += o.Sys.Dy[i]
			o.ydotam[i] += o.Sys.Dy[i] * o.eCoeff
		}
	}

	// corrector
	for i := 0; i < n; i++ {
		newState.Y[i] = state.Y[i] + (o.yaf[i]-state.Y[i])/o.alphaF
		newState.Ydot[i] = state.Ydot[i] + (o.ydotam[i]-state.Ydot[i])/o.alphaM
	}
	return
}

// Clean releases the linear solver memory
func (o *Integrator) Clean() {
	o.Sys.Clean()
}
