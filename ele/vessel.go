// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "math"

// BloodVessel models a resistor-capacitor-inductor vessel segment with an
// optional stenosis. With y = [P_in Q_in P_out Q_out (P_c)] the governing
// equations are
//
//	P_in - (R + K|Q_in|)⋅Q_in - L⋅dQ_out/dt - P_out = 0
//	Q_in - Q_out - C⋅dP_c/dt                        = 0
//	P_in - (R + K|Q_in|)⋅Q_in - P_c                 = 0   (only if C > 0)
//
// where K is the stenosis coefficient. The midpoint pressure P_c and its
// defining equation exist only for nonzero capacitance; zero inductance
// suppresses the corresponding E entry.
//
// In junction-segment mode (hidden child of a BloodVesselJunction) the
// vessel contributes a single pressure-drop equation written against the
// outlet flow,
//
//	P_in - (R + K|Q_out|)⋅Q_out - L⋅dQ_out/dt - P_out = 0
//
// and the owning junction supplies the mass balance.
type BloodVessel struct {
	Base
	segment bool // junction-segment mode
}

// parameter order: R, C, L, stenosis coefficient
const (
	bvR = iota
	bvC
	bvL
	bvK
)

func init() {
	SetAllocator("BloodVessel", func(m *Model, paramIDs []int, name string) Block {
		return &BloodVessel{Base: Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// hasCap tells whether the capacitance is active (nonzero and not a
// junction segment); the steady flag does not affect it
func (o *BloodVessel) hasCap(v []float64) bool {
	return !o.segment && v[o.ParamIDs[bvC]] != 0
}

// SetupDofs registers the equations and, for C > 0, the midpoint pressure
func (o *BloodVessel) SetupDofs(d *DOFHandler) {
	if o.segment {
		o.setupDofs(d, 1, nil)
		return
	}
	if o.Mdl.Params.All[o.ParamIDs[bvC]].Get(0) != 0 {
		o.setupDofs(d, 3, []string{"pressure_c"})
	} else {
		o.setupDofs(d, 2, nil)
	}
}

// NumTriplets returns the number of nonzero contributions
func (o *BloodVessel) NumTriplets() Triplets {
	if o.segment {
		return Triplets{F: 3, E: 1, D: 1}
	}
	return Triplets{F: 8, E: 2, D: 2}
}

// UpdateConstant writes the linear portions of F and E
func (o *BloodVessel) UpdateConstant(s *System, v []float64) {
	R := v[o.ParamIDs[bvR]]
	L := v[o.ParamIDs[bvL]]
	if o.segment {
		s.F.Put(o.Geqn[0], o.Gvar[0], 1)
		s.F.Put(o.Geqn[0], o.Gvar[2], -1)
		s.F.Put(o.Geqn[0], o.Gvar[3], -R)
		if L != 0 {
			s.E.Put(o.Geqn[0], o.Gvar[3], -L)
		}
		return
	}
	s.F.Put(o.Geqn[0], o.Gvar[0], 1)
	s.F.Put(o.Geqn[0], o.Gvar[1], -R)
	s.F.Put(o.Geqn[0], o.Gvar[2], -1)
	if L != 0 {
		s.E.Put(o.Geqn[0], o.Gvar[3], -L)
	}
	s.F.Put(o.Geqn[1], o.Gvar[1], 1)
	s.F.Put(o.Geqn[1], o.Gvar[3], -1)
	if o.hasCap(v) {
		s.E.Put(o.Geqn[1], o.Gvar[4], -v[o.ParamIDs[bvC]])
		s.F.Put(o.Geqn[2], o.Gvar[0], 1)
		s.F.Put(o.Geqn[2], o.Gvar[1], -R)
		s.F.Put(o.Geqn[2], o.Gvar[4], -1)
	}
}

// UpdateTime is a no-op: all vessel parameters are constant
func (o *BloodVessel) UpdateTime(s *System, v []float64, t float64) {
}

// UpdateSolution updates the stenosis terms, which are quadratic in the
// flow: the pressure-drop coefficient becomes -(R + K|Q|) and the extra
// Jacobian contribution -K|Q| goes into dC
func (o *BloodVessel) UpdateSolution(s *System, v []float64, y, ydot []float64) {
	K := v[o.ParamIDs[bvK]]
	if K == 0 {
		return
	}
	R := v[o.ParamIDs[bvR]]
	iq := 1 // index of flow driving the pressure drop
	if o.segment {
		iq = 3
	}
	fac1 := -K * math.Abs(y[o.Gvar[iq]])
	fac2 := fac1 - R
	s.F.Put(o.Geqn[0], o.Gvar[iq], fac2)
	s.DC.Put(o.Geqn[0], o.Gvar[iq], fac1)
	if o.hasCap(v) {
		s.F.Put(o.Geqn[2], o.Gvar[iq], fac2)
		s.DC.Put(o.Geqn[2], o.Gvar[iq], fac1)
	}
}
