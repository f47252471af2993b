// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Junction models a junction with arbitrary inlets and outlets. Across all
// inlets and outlets, mass is conserved and pressure is continuous:
//
//	Σ Q_in,i = Σ Q_out,j
//	P_i = P_j  for all i != j
//
// A junction is purely conservative: it only contributes to F.
type Junction struct {
	Base
	nin, nout int
}

func init() {
	SetAllocator("NORMAL_JUNCTION", newJunction)
	SetAllocator("internal_junction", newJunction)
}

func newJunction(m *Model, paramIDs []int, name string) Block {
	return &Junction{Base: Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
}

// SetupDofs registers nin+nout equations (no internal variables)
func (o *Junction) SetupDofs(d *DOFHandler) {
	o.nin = len(o.Inlets)
	o.nout = len(o.Outlets)
	o.setupDofs(d, o.nin+o.nout, nil)
}

// NumTriplets returns the number of nonzero contributions
func (o *Junction) NumTriplets() Triplets {
	return Triplets{F: 2*(o.nin+o.nout-1) + o.nin + o.nout}
}

// UpdateConstant writes the pressure-continuity and mass-conservation rows
func (o *Junction) UpdateConstant(s *System, v []float64) {
	for i := 0; i < o.nin+o.nout-1; i++ {
		s.F.Put(o.Geqn[i], o.Gvar[0], 1)
		s.F.Put(o.Geqn[i], o.Gvar[2*i+2], -1)
	}
	last := o.Geqn[o.nin+o.nout-1]
	for i := 1; i < 2*o.nin; i += 2 {
		s.F.Put(last, o.Gvar[i], 1)
	}
	for i := 2*o.nin + 1; i < 2*(o.nin+o.nout); i += 2 {
		s.F.Put(last, o.Gvar[i], -1)
	}
}

// UpdateTime is a no-op
func (o *Junction) UpdateTime(s *System, v []float64, t float64) {
}

// UpdateSolution is a no-op
func (o *Junction) UpdateSolution(s *System, v []float64, y, ydot []float64) {
}

// ResistiveJunction models a junction whose ports connect through linear
// resistors to a common internal pressure P_c:
//
//	P_i - R_i⋅Q_i - P_c = 0            for all inlets i
//	P_c - R_j⋅Q_j - P_j = 0            for all outlets j
//	Σ Q_in,i - Σ Q_out,j = 0
type ResistiveJunction struct {
	Base
	nin, nout int
}

func init() {
	SetAllocator("resistive_junction", func(m *Model, paramIDs []int, name string) Block {
		return &ResistiveJunction{Base: Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs registers nin+nout+1 equations and the internal pressure
func (o *ResistiveJunction) SetupDofs(d *DOFHandler) {
	o.nin = len(o.Inlets)
	o.nout = len(o.Outlets)
	o.setupDofs(d, o.nin+o.nout+1, []string{"pressure_c"})
}

// NumTriplets returns the number of nonzero contributions
func (o *ResistiveJunction) NumTriplets() Triplets {
	return Triplets{F: 4 * (o.nin + o.nout)}
}

// UpdateConstant writes the resistive port rows and the mass balance
func (o *ResistiveJunction) UpdateConstant(s *System, v []float64) {
	np := o.nin + o.nout
	pc := o.Gvar[2*np] // internal pressure
	for i := 0; i < o.nin; i++ {
		s.F.Put(o.Geqn[i], o.Gvar[2*i], 1)
		s.F.Put(o.Geqn[i], o.Gvar[2*i+1], -v[o.ParamIDs[i]])
		s.F.Put(o.Geqn[i], pc, -1)
	}
	for j := o.nin; j < np; j++ {
		s.F.Put(o.Geqn[j], pc, 1)
		s.F.Put(o.Geqn[j], o.Gvar[2*j+1], -v[o.ParamIDs[j]])
		s.F.Put(o.Geqn[j], o.Gvar[2*j], -1)
	}
	last := o.Geqn[np]
	for i := 1; i < 2*o.nin; i += 2 {
		s.F.Put(last, o.Gvar[i], 1)
	}
	for i := 2*o.nin + 1; i < 2*np; i += 2 {
		s.F.Put(last, o.Gvar[i], -1)
	}
}

// UpdateTime is a no-op
func (o *ResistiveJunction) UpdateTime(s *System, v []float64, t float64) {
}

// UpdateSolution is a no-op
func (o *ResistiveJunction) UpdateSolution(s *System, v []float64, y, ydot []float64) {
}
