// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "math"

// ChamberElastance models a heart chamber as a time-varying elastance
// (Kerckhoffs et al. 2007). With y = [P_in Q_in P_out Q_out V_c]:
//
//	P_in - E(t)⋅(V_c - Vrest(t)) = 0
//	dV_c/dt - Q_in + Q_out       = 0
//	P_in - P_out - Imp⋅Q_out     = 0
//
// The elastance follows a double-cosine activation over the twitch window:
// act = (1 - cos(2π(t' - t_active)/t_twitch))/2 for t_active <= t' <
// t_active + t_twitch within the cardiac cycle, zero otherwise, with
// E = (Emax - Emin)⋅act + Emin and Vrest = (1 - act)⋅(Vrd - Vrs) + Vrs.
type ChamberElastance struct {
	Base
	elas  float64 // current elastance
	vrest float64 // current rest volume
}

// parameter order: Emax, Emin, Vrd, Vrs, t_active, t_twitch, Impedance
const (
	chEmax = iota
	chEmin
	chVrd
	chVrs
	chTactive
	chTtwitch
	chImp
)

func init() {
	SetAllocator("ChamberElastance", func(m *Model, paramIDs []int, name string) Block {
		return &ChamberElastance{Base: Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs registers three equations and the chamber volume
func (o *ChamberElastance) SetupDofs(d *DOFHandler) {
	o.setupDofs(d, 3, []string{"Vc"})
}

// NumTriplets returns the number of nonzero contributions
func (o *ChamberElastance) NumTriplets() Triplets {
	return Triplets{F: 8, E: 1}
}

// UpdateConstant writes the volume balance and the impedance row
func (o *ChamberElastance) UpdateConstant(s *System, v []float64) {
	s.F.Put(o.Geqn[0], o.Gvar[0], 1)
	s.E.Put(o.Geqn[1], o.Gvar[4], 1)
	s.F.Put(o.Geqn[1], o.Gvar[1], -1)
	s.F.Put(o.Geqn[1], o.Gvar[3], 1)
	s.F.Put(o.Geqn[2], o.Gvar[0], 1)
	s.F.Put(o.Geqn[2], o.Gvar[2], -1)
	s.F.Put(o.Geqn[2], o.Gvar[3], -v[o.ParamIDs[chImp]])
}

// UpdateTime evaluates the activation and writes the elastance row
func (o *ChamberElastance) UpdateTime(s *System, v []float64, t float64) {
	o.elastanceValues(v, t)
	s.F.Put(o.Geqn[0], o.Gvar[4], -o.elas)
	s.C[o.Geqn[0]] = o.elas * o.vrest
}

// UpdateSolution is a no-op
func (o *ChamberElastance) UpdateSolution(s *System, v []float64, y, ydot []float64) {
}

// elastanceValues computes the activation, elastance and rest volume at t
func (o *ChamberElastance) elastanceValues(v []float64, t float64) {
	T := o.Mdl.CardiacCyclePeriod
	tc := math.Mod(t, T)
	ta := v[o.ParamIDs[chTactive]]
	tw := v[o.ParamIDs[chTtwitch]]
	act := 0.0
	if tc >= ta && tc < ta+tw {
		act = 0.5 - 0.5*math.Cos(2.0*math.Pi*(tc-ta)/tw)
	}
	o.elas = (v[o.ParamIDs[chEmax]]-v[o.ParamIDs[chEmin]])*act + v[o.ParamIDs[chEmin]]
	o.vrest = (1.0-act)*(v[o.ParamIDs[chVrd]]-v[o.ParamIDs[chVrs]]) + v[o.ParamIDs[chVrs]]
}
