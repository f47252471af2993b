// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// FlowReferenceBC applies a prescribed flow to a boundary:
//
//	Q = Q̂(t)
//
// With y = [P Q]: F = [0 1], c = [-Q̂(t)]
type FlowReferenceBC struct {
	Base
}

func init() {
	// parameter order: Q
	SetAllocator("FLOW", func(m *Model, paramIDs []int, name string) Block {
		return &FlowReferenceBC{Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs registers one equation
func (o *FlowReferenceBC) SetupDofs(d *DOFHandler) {
	o.setupDofs(d, 1, nil)
}

// NumTriplets returns the number of nonzero contributions
func (o *FlowReferenceBC) NumTriplets() Triplets {
	return Triplets{F: 1}
}

// UpdateConstant writes the flow coefficient
func (o *FlowReferenceBC) UpdateConstant(s *System, v []float64) {
	s.F.Put(o.Geqn[0], o.Gvar[1], 1)
}

// UpdateTime writes the prescribed flow
func (o *FlowReferenceBC) UpdateTime(s *System, v []float64, t float64) {
	s.C[o.Geqn[0]] = -v[o.ParamIDs[0]]
}

// UpdateSolution is a no-op
func (o *FlowReferenceBC) UpdateSolution(s *System, v []float64, y, ydot []float64) {
}

// PressureReferenceBC applies a prescribed pressure to a boundary:
//
//	P = P̂(t)
type PressureReferenceBC struct {
	Base
}

func init() {
	// parameter order: P
	SetAllocator("PRESSURE", func(m *Model, paramIDs []int, name string) Block {
		return &PressureReferenceBC{Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs registers one equation
func (o *PressureReferenceBC) SetupDofs(d *DOFHandler) {
	o.setupDofs(d, 1, nil)
}

// NumTriplets returns the number of nonzero contributions
func (o *PressureReferenceBC) NumTriplets() Triplets {
	return Triplets{F: 1}
}

// UpdateConstant writes the pressure coefficient
func (o *PressureReferenceBC) UpdateConstant(s *System, v []float64) {
	s.F.Put(o.Geqn[0], o.Gvar[0], 1)
}

// UpdateTime writes the prescribed pressure
func (o *PressureReferenceBC) UpdateTime(s *System, v []float64, t float64) {
	s.C[o.Geqn[0]] = -v[o.ParamIDs[0]]
}

// UpdateSolution is a no-op
func (o *PressureReferenceBC) UpdateSolution(s *System, v []float64, y, ydot []float64) {
}

// ResistanceBC applies a (possibly time-dependent) resistance against a
// prescribed distal pressure:
//
//	P - R(t)⋅Q - Pd(t) = 0
type ResistanceBC struct {
	Base
}

func init() {
	// parameter order: R, Pd
	SetAllocator("RESISTANCE", func(m *Model, paramIDs []int, name string) Block {
		return &ResistanceBC{Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs registers one equation
func (o *ResistanceBC) SetupDofs(d *DOFHandler) {
	o.setupDofs(d, 1, nil)
}

// NumTriplets returns the number of nonzero contributions
func (o *ResistanceBC) NumTriplets() Triplets {
	return Triplets{F: 2}
}

// UpdateConstant writes the pressure coefficient
func (o *ResistanceBC) UpdateConstant(s *System, v []float64) {
	s.F.Put(o.Geqn[0], o.Gvar[0], 1)
}

// UpdateTime writes the resistance and the distal pressure at time t
func (o *ResistanceBC) UpdateTime(s *System, v []float64, t float64) {
	s.F.Put(o.Geqn[0], o.Gvar[1], -v[o.ParamIDs[0]])
	s.C[o.Geqn[0]] = -v[o.ParamIDs[1]]
}

// UpdateSolution is a no-op
func (o *ResistanceBC) UpdateSolution(s *System, v []float64, y, ydot []float64) {
}
