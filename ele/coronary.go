// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// OpenLoopCoronaryBC models an open-loop coronary boundary condition with
// a time-varying intramyocardial pressure Pim(t) acting on the
// intramyocardial capacitor (Kim et al., Annals of Biomedical Engineering
// 38, 2010). With y = [P Q V_im], where V_im is the volume stored in the
// intramyocardial capacitor, the condensed unsteady equations are
//
//	Cim⋅Rv⋅Q - V_im - Ca⋅Cim⋅Rv⋅dP/dt + Ra⋅Ca⋅Cim⋅Rv⋅dQ/dt - Cim⋅Rv⋅dV_im/dt + Cim⋅(Pv - Pim) = 0
//	Cim⋅Rv⋅P - Cim⋅Rv⋅Ra⋅Q - (Rv + Ram)⋅V_im - Cim⋅Rv⋅Ram⋅dV_im/dt + Ram⋅Cim⋅Pv - Cim⋅(Rv + Ram)⋅Pim = 0
//
// In steady mode the capacitors pass no current and the equations reduce
// to the resistive chain P - (Ra + Ram + Rv)⋅Q = Pv together with the
// definition of V_im.
type OpenLoopCoronaryBC struct {
	Base
}

// parameter order: Ra, Ram, Rv, Ca, Cim, Pim, Pv
const (
	corRa = iota
	corRam
	corRv
	corCa
	corCim
	corPim
	corPv
)

func init() {
	SetAllocator("CORONARY", func(m *Model, paramIDs []int, name string) Block {
		return &OpenLoopCoronaryBC{Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs registers two equations and the intramyocardial volume
func (o *OpenLoopCoronaryBC) SetupDofs(d *DOFHandler) {
	o.setupDofs(d, 2, []string{"volume_im"})
}

// NumTriplets returns the number of nonzero contributions
func (o *OpenLoopCoronaryBC) NumTriplets() Triplets {
	return Triplets{F: 5, E: 4}
}

// UpdateConstant writes the E and F entries; the steady branch swaps in
// the capacitor-free equations
func (o *OpenLoopCoronaryBC) UpdateConstant(s *System, v []float64) {
	ra := v[o.ParamIDs[corRa]]
	ram := v[o.ParamIDs[corRam]]
	rv := v[o.ParamIDs[corRv]]
	ca := v[o.ParamIDs[corCa]]
	cim := v[o.ParamIDs[corCim]]
	if o.Steady {
		// V_im - Cim⋅(P - (Ra+Ram)⋅Q - Pim) = 0
		s.F.Put(o.Geqn[0], o.Gvar[0], -cim)
		s.F.Put(o.Geqn[0], o.Gvar[1], cim*(ra+ram))
		s.F.Put(o.Geqn[0], o.Gvar[2], 1)
		// P - (Ra+Ram+Rv)⋅Q - Pv = 0
		s.F.Put(o.Geqn[1], o.Gvar[0], 1)
		s.F.Put(o.Geqn[1], o.Gvar[1], -(ra + ram + rv))
		return
	}
	s.E.Put(o.Geqn[0], o.Gvar[0], -ca*cim*rv)
	s.E.Put(o.Geqn[0], o.Gvar[1], ra*ca*cim*rv)
	s.E.Put(o.Geqn[0], o.Gvar[2], -cim*rv)
	s.F.Put(o.Geqn[0], o.Gvar[1], cim*rv)
	s.F.Put(o.Geqn[0], o.Gvar[2], -1)
	s.E.Put(o.Geqn[1], o.Gvar[2], -cim*rv*ram)
	s.F.Put(o.Geqn[1], o.Gvar[0], cim*rv)
	s.F.Put(o.Geqn[1], o.Gvar[1], -cim*rv*ra)
	s.F.Put(o.Geqn[1], o.Gvar[2], -(rv + ram))
}

// UpdateTime writes the intramyocardial and venous pressure terms
func (o *OpenLoopCoronaryBC) UpdateTime(s *System, v []float64, t float64) {
	ram := v[o.ParamIDs[corRam]]
	rv := v[o.ParamIDs[corRv]]
	cim := v[o.ParamIDs[corCim]]
	pim := v[o.ParamIDs[corPim]]
	pv := v[o.ParamIDs[corPv]]
	if o.Steady {
		s.C[o.Geqn[0]] = cim * pim
		s.C[o.Geqn[1]] = -pv
		return
	}
	s.C[o.Geqn[0]] = cim * (pv - pim)
	s.C[o.Geqn[1]] = ram*cim*pv - cim*(rv+ram)*pim
}

// UpdateSolution is a no-op
func (o *OpenLoopCoronaryBC) UpdateSolution(s *System, v []float64, y, ydot []float64) {
}
