// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// BloodVesselJunction models a junction whose outlets behave like blood
// vessel segments (resistance, inductance and stenosis). It internally
// instantiates one BloodVessel in junction-segment mode per outlet; the
// children live in the model's hidden block list but share this block's
// DOF space. The junction itself contributes only the mass balance
//
//	Q_in - Σ Q_out,j = 0
//
// while each hidden segment adds its pressure-drop row between the shared
// inlet node and its outlet node. Capacitance is not supported for
// junction segments.
type BloodVesselJunction struct {
	Base
	segments []*BloodVessel
}

func init() {
	// parameter order: R_j, L_j, stenosis_j per outlet (three ids each)
	SetAllocator("BloodVesselJunction", func(m *Model, paramIDs []int, name string) Block {
		return &BloodVesselJunction{Base: Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs creates the hidden per-outlet segments, registers their DOFs
// and the junction's own mass-balance equation
func (o *BloodVesselJunction) SetupDofs(d *DOFHandler) {
	o.setupDofs(d, 1, nil)
	for j, out := range o.Outlets {
		zero := o.Mdl.AddConstParam(0)
		seg := &BloodVessel{
			Base: Base{
				Bname: o.Bname + ":seg" + out.Name,
				ParamIDs: []int{
					o.ParamIDs[3*j], // R
					zero,            // C
					o.ParamIDs[3*j+1],
					o.ParamIDs[3*j+2],
				},
				Mdl: o.Mdl,
			},
			segment: true,
		}
		seg.AddInletNode(o.Inlets[0])
		seg.AddOutletNode(out)
		seg.SetupDofs(d)
		o.segments = append(o.segments, seg)
		o.Mdl.appendBlock(seg, "BloodVessel", true)
	}
}

// NumTriplets returns the junction's own contributions (the hidden
// segments report theirs through the model's hidden list)
func (o *BloodVesselJunction) NumTriplets() Triplets {
	return Triplets{F: len(o.Inlets) + len(o.Outlets)}
}

// UpdateConstant writes the mass-balance row
func (o *BloodVesselJunction) UpdateConstant(s *System, v []float64) {
	nin := len(o.Inlets)
	for i := 0; i < nin; i++ {
		s.F.Put(o.Geqn[0], o.Gvar[2*i+1], 1)
	}
	for j := range o.Outlets {
		s.F.Put(o.Geqn[0], o.Gvar[2*(nin+j)+1], -1)
	}
}

// UpdateTime is a no-op
func (o *BloodVesselJunction) UpdateTime(s *System, v []float64, t float64) {
}

// UpdateSolution is a no-op: the segments handle their stenosis terms
func (o *BloodVesselJunction) UpdateSolution(s *System, v []float64, y, ydot []float64) {
}
