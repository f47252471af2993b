// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// getEntry returns the value at (i,j) of a SpMat (zero if absent)
func getEntry(m *SpMat, i, j int) float64 {
	for _, e := range m.entries {
		if e.i == i && e.j == j {
			return e.val
		}
	}
	return 0
}

func Test_vessel01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vessel01. blood vessel contributions")

	m := NewModel()
	pv := []int{
		m.AddConstParam(100),  // R
		m.AddConstParam(1e-4), // C
		m.AddConstParam(1e-3), // L
		m.AddConstParam(0),    // stenosis
	}
	if _, err := m.AddBlock("BloodVessel", pv, "V1", false); err != nil {
		tst.Fatalf("AddBlock failed:\n%v", err)
	}
	q := m.AddConstParam(1)
	p0 := m.AddConstParam(0)
	m.AddBlock("FLOW", []int{q}, "IN", false)
	m.AddBlock("PRESSURE", []int{p0}, "OUT", false)
	m.AddNode([]Block{m.GetBlock("IN")}, []Block{m.GetBlock("V1")}, "IN:V1")
	m.AddNode([]Block{m.GetBlock("V1")}, []Block{m.GetBlock("OUT")}, "V1:OUT")
	if err := m.Finalize(); err != nil {
		tst.Fatalf("Finalize failed:\n%v", err)
	}

	s := NewSystem(m.Dof.Size(), m.NumTriplets())
	v1 := m.GetBlock("V1")
	v1.UpdateConstant(s, m.Params.Eval(0))

	gv := v1.VarIDs()
	ge := v1.EqnIDs()
	chk.Float64(tst, "F[0,P_in]", 1e-15, getEntry(s.F, ge[0], gv[0]), 1)
	chk.Float64(tst, "F[0,Q_in]", 1e-15, getEntry(s.F, ge[0], gv[1]), -100)
	chk.Float64(tst, "F[0,P_out]", 1e-15, getEntry(s.F, ge[0], gv[2]), -1)
	chk.Float64(tst, "E[0,Q_out]", 1e-15, getEntry(s.E, ge[0], gv[3]), -1e-3)
	chk.Float64(tst, "F[1,Q_in]", 1e-15, getEntry(s.F, ge[1], gv[1]), 1)
	chk.Float64(tst, "F[1,Q_out]", 1e-15, getEntry(s.F, ge[1], gv[3]), -1)
	chk.Float64(tst, "E[1,P_c]", 1e-15, getEntry(s.E, ge[1], gv[4]), -1e-4)
	chk.Float64(tst, "F[2,P_c]", 1e-15, getEntry(s.F, ge[2], gv[4]), -1)
}

func Test_vessel02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vessel02. stenosis terms")

	m := NewModel()
	pv := []int{
		m.AddConstParam(10), // R
		m.AddConstParam(0),  // C
		m.AddConstParam(0),  // L
		m.AddConstParam(50), // stenosis
	}
	m.AddBlock("BloodVessel", pv, "V1", false)
	q := m.AddConstParam(1)
	p0 := m.AddConstParam(0)
	m.AddBlock("FLOW", []int{q}, "IN", false)
	m.AddBlock("PRESSURE", []int{p0}, "OUT", false)
	m.AddNode([]Block{m.GetBlock("IN")}, []Block{m.GetBlock("V1")}, "IN:V1")
	m.AddNode([]Block{m.GetBlock("V1")}, []Block{m.GetBlock("OUT")}, "V1:OUT")
	if err := m.Finalize(); err != nil {
		tst.Fatalf("Finalize failed:\n%v", err)
	}

	s := NewSystem(m.Dof.Size(), m.NumTriplets())
	v1 := m.GetBlock("V1")
	v1.UpdateConstant(s, m.Params.Eval(0))

	y := make([]float64, m.Dof.Size())
	ydot := make([]float64, m.Dof.Size())
	y[v1.VarIDs()[1]] = -2.0 // Q_in
	v1.UpdateSolution(s, m.Params.Values, y, ydot)

	ge := v1.EqnIDs()
	gv := v1.VarIDs()
	chk.Float64(tst, "F[0,Q_in]", 1e-14, getEntry(s.F, ge[0], gv[1]), -10-50*2.0)
	chk.Float64(tst, "dC[0,Q_in]", 1e-14, getEntry(s.DC, ge[0], gv[1]), -50*2.0)
}

func Test_windkessel01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("windkessel01. RCR contributions and steady mode")

	m := NewModel()
	pids := []int{
		m.AddConstParam(100),  // Rp
		m.AddConstParam(1e-4), // C
		m.AddConstParam(1000), // Rd
		m.AddConstParam(5),    // Pd
	}
	m.AddBlock("RCR", pids, "BC", false)
	q := m.AddConstParam(1)
	m.AddBlock("FLOW", []int{q}, "IN", false)
	m.AddNode([]Block{m.GetBlock("IN")}, []Block{m.GetBlock("BC")}, "IN:BC")
	if err := m.Finalize(); err != nil {
		tst.Fatalf("Finalize failed:\n%v", err)
	}

	s := NewSystem(m.Dof.Size(), m.NumTriplets())
	bc := m.GetBlock("BC")
	v := m.Params.Eval(0)
	bc.UpdateConstant(s, v)
	bc.UpdateTime(s, v, 0)

	gv := bc.VarIDs()
	ge := bc.EqnIDs()
	chk.Float64(tst, "F[0,P]", 1e-15, getEntry(s.F, ge[0], gv[0]), 1)
	chk.Float64(tst, "F[0,Q]", 1e-15, getEntry(s.F, ge[0], gv[1]), -100)
	chk.Float64(tst, "F[0,P_c]", 1e-15, getEntry(s.F, ge[0], gv[2]), -1)
	chk.Float64(tst, "E[1,P_c]", 1e-15, getEntry(s.E, ge[1], gv[2]), -1000*1e-4)
	chk.Float64(tst, "F[1,Q]", 1e-15, getEntry(s.F, ge[1], gv[1]), 1000)
	chk.Float64(tst, "c[1]", 1e-15, s.C[ge[1]], 5)

	// steady mode removes the capacitive term
	bc.ToSteady()
	bc.UpdateTime(s, v, 0)
	chk.Float64(tst, "steady E[1,P_c]", 1e-15, getEntry(s.E, ge[1], gv[2]), 0)
	bc.ToUnsteady()
	bc.UpdateTime(s, v, 0)
	chk.Float64(tst, "unsteady E[1,P_c]", 1e-15, getEntry(s.E, ge[1], gv[2]), -1000*1e-4)
}

func Test_valve01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("valve01. tanh valve gradients vs finite differences")

	m := NewModel()
	pids := []int{
		m.AddConstParam(1e5),  // Rmax
		m.AddConstParam(1e-2), // Rmin
		m.AddConstParam(75),   // steepness
	}
	m.AddBlock("ValveTanh", pids, "VLV", false)
	q := m.AddConstParam(1)
	p0 := m.AddConstParam(0)
	m.AddBlock("FLOW", []int{q}, "IN", false)
	m.AddBlock("PRESSURE", []int{p0}, "OUT", false)
	m.AddNode([]Block{m.GetBlock("IN")}, []Block{m.GetBlock("VLV")}, "IN:VLV")
	m.AddNode([]Block{m.GetBlock("VLV")}, []Block{m.GetBlock("OUT")}, "VLV:OUT")
	if err := m.Finalize(); err != nil {
		tst.Fatalf("Finalize failed:\n%v", err)
	}

	vlv := m.GetBlock("VLV")
	gv := vlv.VarIDs()
	ge := vlv.EqnIDs()
	v := m.Params.Eval(0)

	// nonlinear part of the residual as a function of y
	cOf := func(y []float64) float64 {
		s := NewSystem(m.Dof.Size(), m.NumTriplets())
		vlv.UpdateSolution(s, v, y, make([]float64, len(y)))
		return s.C[ge[0]]
	}

	y := make([]float64, m.Dof.Size())
	y[gv[0]] = 0.02  // P_in
	y[gv[1]] = 1.5   // Q_in
	y[gv[2]] = 0.015 // P_out

	s := NewSystem(m.Dof.Size(), m.NumTriplets())
	vlv.UpdateSolution(s, v, y, make([]float64, len(y)))

	h := 1e-7
	for _, j := range []int{gv[0], gv[1], gv[2]} {
		yp := append([]float64{}, y...)
		ym := append([]float64{}, y...)
		yp[j] += h
		ym[j] -= h
		num := (cOf(yp) - cOf(ym)) / (2 * h)
		ana := getEntry(s.DC, ge[0], j)
		chk.AnaNum(tst, "dc/dy", 1e-4*math.Max(1, math.Abs(num)), ana, num, chk.Verbose)
	}
}
