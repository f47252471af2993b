// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// WindkesselBC models a three-element (RCR) Windkessel boundary condition
// with distal pressure. With y = [P Q P_c] the governing equations are
//
//	P - Rp(t)⋅Q - P_c                        = 0
//	Rd(t)⋅Q - P_c + Pd(t) - Rd(t)⋅C(t)⋅dP_c/dt = 0
//
// i.e. C⋅dP_c/dt + (P_c - Pd)/Rd = Q. In steady mode the capacitance is
// treated as zero so the internal pressure settles instantly.
type WindkesselBC struct {
	Base
}

// parameter order: Rp, C, Rd, Pd
const (
	wkRp = iota
	wkC
	wkRd
	wkPd
)

func init() {
	SetAllocator("RCR", func(m *Model, paramIDs []int, name string) Block {
		return &WindkesselBC{Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs registers two equations and the internal pressure
func (o *WindkesselBC) SetupDofs(d *DOFHandler) {
	o.setupDofs(d, 2, []string{"pressure_c"})
}

// NumTriplets returns the number of nonzero contributions
func (o *WindkesselBC) NumTriplets() Triplets {
	return Triplets{F: 5, E: 1}
}

// UpdateConstant writes the parameter-independent entries
func (o *WindkesselBC) UpdateConstant(s *System, v []float64) {
	s.F.Put(o.Geqn[0], o.Gvar[0], 1)
	s.F.Put(o.Geqn[0], o.Gvar[2], -1)
	s.F.Put(o.Geqn[1], o.Gvar[2], -1)
}

// UpdateTime writes the (possibly time-dependent) resistances, the distal
// pressure and the capacitive term; steady mode zeroes the capacitance
func (o *WindkesselBC) UpdateTime(s *System, v []float64, t float64) {
	capacitance := v[o.ParamIDs[wkC]]
	if o.Steady {
		capacitance = 0
	}
	s.E.Put(o.Geqn[1], o.Gvar[2], -v[o.ParamIDs[wkRd]]*capacitance)
	s.F.Put(o.Geqn[0], o.Gvar[1], -v[o.ParamIDs[wkRp]])
	s.F.Put(o.Geqn[1], o.Gvar[1], v[o.ParamIDs[wkRd]])
	s.C[o.Geqn[1]] = v[o.ParamIDs[wkPd]]
}

// UpdateSolution is a no-op
func (o *WindkesselBC) UpdateSolution(s *System, v []float64, y, ydot []float64) {
}
