// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "math"

// ValveTanh models a diode-like valve as a nonlinear resistor whose
// resistance transitions smoothly between an open and a closed value
// (Pfaller et al. 2019). With y = [P_in Q_in P_out Q_out]:
//
//	P_in - P_out - [Rmin + (Rmax - Rmin)⋅σ]⋅Q_in = 0
//	Q_in - Q_out                                 = 0
//
// where σ = (1 + tanh(k⋅(P_out - P_in)))/2. The symmetric part
// -(Rmax+Rmin)/2 lives in F; the remainder and its gradients go into c
// and dC.
type ValveTanh struct {
	Base
}

// parameter order: Rmax, Rmin, steepness
const (
	vtRmax = iota
	vtRmin
	vtSteep
)

func init() {
	SetAllocator("ValveTanh", func(m *Model, paramIDs []int, name string) Block {
		return &ValveTanh{Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs registers two equations
func (o *ValveTanh) SetupDofs(d *DOFHandler) {
	o.setupDofs(d, 2, nil)
}

// NumTriplets returns the number of nonzero contributions
func (o *ValveTanh) NumTriplets() Triplets {
	return Triplets{F: 5, D: 3}
}

// UpdateConstant writes the linear entries
func (o *ValveTanh) UpdateConstant(s *System, v []float64) {
	rmax := v[o.ParamIDs[vtRmax]]
	rmin := v[o.ParamIDs[vtRmin]]
	s.F.Put(o.Geqn[0], o.Gvar[0], 1)
	s.F.Put(o.Geqn[0], o.Gvar[1], -(rmax+rmin)/2.0)
	s.F.Put(o.Geqn[0], o.Gvar[2], -1)
	s.F.Put(o.Geqn[1], o.Gvar[1], 1)
	s.F.Put(o.Geqn[1], o.Gvar[3], -1)
}

// UpdateTime is a no-op
func (o *ValveTanh) UpdateTime(s *System, v []float64, t float64) {
}

// UpdateSolution writes the sigmoidal part of the pressure drop and its
// gradients with respect to P_in, Q_in and P_out
func (o *ValveTanh) UpdateSolution(s *System, v []float64, y, ydot []float64) {
	dr := v[o.ParamIDs[vtRmax]] - v[o.ParamIDs[vtRmin]]
	k := v[o.ParamIDs[vtSteep]]
	q := y[o.Gvar[1]]
	th := math.Tanh(k * (y[o.Gvar[2]] - y[o.Gvar[0]]))
	s.C[o.Geqn[0]] = -0.5 * q * dr * th
	s.DC.Put(o.Geqn[0], o.Gvar[0], 0.5*k*q*dr*(1.0-th*th))
	s.DC.Put(o.Geqn[0], o.Gvar[1], -0.5*dr*th)
	s.DC.Put(o.Geqn[0], o.Gvar[2], -0.5*k*q*dr*(1.0-th*th))
}
