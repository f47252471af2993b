// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/chk"

// ClosedLoopRCRBC is an RCR boundary condition whose distal node is
// exposed as a regular outlet so it can feed a closed-loop circuit
// (e.g. the venous return into the heart). With
// y = [P_in Q_in P_out Q_out P_c]:
//
//	P_in - Rp⋅Q_in - P_c       = 0
//	Q_in - Q_out - C⋅dP_c/dt   = 0
//	P_c - Rd⋅Q_out - P_out     = 0
//
// Steady mode treats the capacitance as zero.
type ClosedLoopRCRBC struct {
	Base
	ClosedLoopOutlet bool // outlet feeds the closed-loop heart inlet
}

// parameter order: Rp, C, Rd
const (
	clrRp = iota
	clrC
	clrRd
)

func init() {
	SetAllocator("ClosedLoopRCR", func(m *Model, paramIDs []int, name string) Block {
		return &ClosedLoopRCRBC{Base: Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs registers three equations and the internal pressure
func (o *ClosedLoopRCRBC) SetupDofs(d *DOFHandler) {
	o.setupDofs(d, 3, []string{"pressure_c"})
}

// NumTriplets returns the number of nonzero contributions
func (o *ClosedLoopRCRBC) NumTriplets() Triplets {
	return Triplets{F: 8, E: 1}
}

// UpdateConstant writes all entries (parameters are constant scalars)
func (o *ClosedLoopRCRBC) UpdateConstant(s *System, v []float64) {
	capacitance := v[o.ParamIDs[clrC]]
	if o.Steady {
		capacitance = 0
	}
	s.F.Put(o.Geqn[0], o.Gvar[0], 1)
	s.F.Put(o.Geqn[0], o.Gvar[1], -v[o.ParamIDs[clrRp]])
	s.F.Put(o.Geqn[0], o.Gvar[4], -1)
	s.E.Put(o.Geqn[1], o.Gvar[4], -capacitance)
	s.F.Put(o.Geqn[1], o.Gvar[1], 1)
	s.F.Put(o.Geqn[1], o.Gvar[3], -1)
	s.F.Put(o.Geqn[2], o.Gvar[4], 1)
	s.F.Put(o.Geqn[2], o.Gvar[3], -v[o.ParamIDs[clrRd]])
	s.F.Put(o.Geqn[2], o.Gvar[2], -1)
}

// UpdateTime is a no-op
func (o *ClosedLoopRCRBC) UpdateTime(s *System, v []float64, t float64) {
}

// UpdateSolution is a no-op
func (o *ClosedLoopRCRBC) UpdateSolution(s *System, v []float64, y, ydot []float64) {
}

// ClosedLoopCoronaryBC models a coronary boundary condition whose
// intramyocardial pressure is coupled to a heart chamber of the
// closed-loop heart block: Pim = im⋅P_chamber, with the left coronaries
// following the left ventricle and the right ones the right ventricle.
// With y = [P_in Q_in P_out Q_out V_im]:
//
//	Ca⋅dP_in/dt - Ca⋅Ra⋅dQ_in/dt + dV_im/dt - Q_in + Q_out            = 0
//	Ram⋅dV_im/dt + V_im/Cim - P_in + Ra⋅Q_in + Ram⋅Q_out + Pim        = 0
//	V_im/Cim - Rv⋅Q_out - P_out + Pim                                 = 0
//
// The chamber pressure DOF lies outside this block's footprint, so Pim is
// evaluated from the current solution and written into c; the cross-block
// gradient is not assembled.
type ClosedLoopCoronaryBC struct {
	Base
	Left bool // left (vs right) coronary side

	// resolved from the heart block at finalize time
	imScale    float64 // iml or imr
	chamberDof int     // global id of the ventricle pressure variable
}

// parameter order: Ra, Ram, Rv, Ca, Cim
const (
	clcRa = iota
	clcRam
	clcRv
	clcCa
	clcCim
)

func init() {
	SetAllocator("ClosedLoopCoronaryLeft", func(m *Model, paramIDs []int, name string) Block {
		return &ClosedLoopCoronaryBC{Base: Base{Bname: name, ParamIDs: paramIDs, Mdl: m}, Left: true}
	})
	SetAllocator("ClosedLoopCoronaryRight", func(m *Model, paramIDs []int, name string) Block {
		return &ClosedLoopCoronaryBC{Base: Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs registers three equations and the intramyocardial volume
func (o *ClosedLoopCoronaryBC) SetupDofs(d *DOFHandler) {
	o.setupDofs(d, 3, []string{"volume_im"})
}

// NumTriplets returns the number of nonzero contributions
func (o *ClosedLoopCoronaryBC) NumTriplets() Triplets {
	return Triplets{F: 9, E: 4}
}

// SetModelDependentParams resolves the intramyocardial pressure scaling
// and the coupled chamber pressure DOF from the heart block
func (o *ClosedLoopCoronaryBC) SetModelDependentParams(m *Model) (err error) {
	heart, ok := m.GetBlock("CLH").(*ClosedLoopHeartPulmonary)
	if !ok {
		return chk.Err("block %q requires a ClosedLoopHeartAndPulmonary block", o.Bname)
	}
	if o.Left {
		o.imScale = m.Params.All[heart.ParamIDs[hpIml]].Get(0)
		o.chamberDof = heart.Gvar[13] // left ventricle pressure
	} else {
		o.imScale = m.Params.All[heart.ParamIDs[hpImr]].Get(0)
		o.chamberDof = heart.Gvar[6] // right ventricle pressure
	}
	return
}

// UpdateConstant writes the E and F entries
func (o *ClosedLoopCoronaryBC) UpdateConstant(s *System, v []float64) {
	ra := v[o.ParamIDs[clcRa]]
	ram := v[o.ParamIDs[clcRam]]
	rv := v[o.ParamIDs[clcRv]]
	ca := v[o.ParamIDs[clcCa]]
	cim := v[o.ParamIDs[clcCim]]
	s.E.Put(o.Geqn[0], o.Gvar[0], ca)
	s.E.Put(o.Geqn[0], o.Gvar[1], -ca*ra)
	s.E.Put(o.Geqn[0], o.Gvar[4], 1)
	s.F.Put(o.Geqn[0], o.Gvar[1], -1)
	s.F.Put(o.Geqn[0], o.Gvar[3], 1)
	s.E.Put(o.Geqn[1], o.Gvar[4], ram)
	s.F.Put(o.Geqn[1], o.Gvar[4], 1.0/cim)
	s.F.Put(o.Geqn[1], o.Gvar[0], -1)
	s.F.Put(o.Geqn[1], o.Gvar[1], ra)
	s.F.Put(o.Geqn[1], o.Gvar[3], ram)
	s.F.Put(o.Geqn[2], o.Gvar[4], 1.0/cim)
	s.F.Put(o.Geqn[2], o.Gvar[3], -rv)
	s.F.Put(o.Geqn[2], o.Gvar[2], -1)
}

// UpdateTime is a no-op
func (o *ClosedLoopCoronaryBC) UpdateTime(s *System, v []float64, t float64) {
}

// UpdateSolution evaluates Pim from the coupled chamber pressure
func (o *ClosedLoopCoronaryBC) UpdateSolution(s *System, v []float64, y, ydot []float64) {
	pim := o.imScale * y[o.chamberDof]
	s.C[o.Geqn[1]] = pim
	s.C[o.Geqn[2]] = pim
}
