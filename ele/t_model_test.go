// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// buildRCmodel creates: FLOW => vessel => RCR
func buildRCmodel(tst *testing.T, C float64) (m *Model) {
	m = NewModel()
	q := m.AddConstParam(1.0)
	inflow, err := m.AddBlock("FLOW", []int{q}, "INFLOW", false)
	if err != nil {
		tst.Fatalf("AddBlock failed:\n%v", err)
	}
	pv := []int{
		m.AddConstParam(100), // R
		m.AddConstParam(C),
		m.AddConstParam(0), // L
		m.AddConstParam(0), // stenosis
	}
	v1, err := m.AddBlock("BloodVessel", pv, "V1", false)
	if err != nil {
		tst.Fatalf("AddBlock failed:\n%v", err)
	}
	prcr := []int{
		m.AddConstParam(100),  // Rp
		m.AddConstParam(1e-4), // C
		m.AddConstParam(1000), // Rd
		m.AddConstParam(0),    // Pd
	}
	bc, err := m.AddBlock("RCR", prcr, "OUT", false)
	if err != nil {
		tst.Fatalf("AddBlock failed:\n%v", err)
	}
	_, _, _ = inflow, v1, bc
	m.AddNode([]Block{m.GetBlock("INFLOW")}, []Block{m.GetBlock("V1")}, "INFLOW:V1")
	m.AddNode([]Block{m.GetBlock("V1")}, []Block{m.GetBlock("OUT")}, "V1:OUT")
	err = m.Finalize()
	if err != nil {
		tst.Fatalf("Finalize failed:\n%v", err)
	}
	return
}

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01. DOF assembly")

	m := buildRCmodel(tst, 0)

	// 2 nodes x 2 dofs + 1 windkessel internal pressure
	chk.IntAssert(m.Dof.Size(), 5)
	chk.IntAssert(m.Dof.Neq(), 5)

	// vessel var ids reference the nodes: [P_in Q_in P_out Q_out]
	v1 := m.GetBlock("V1")
	chk.Ints(tst, "V1 var ids", v1.VarIDs(), []int{0, 1, 2, 3})
	chk.IntAssert(len(v1.EqnIDs()), 2)

	// all ids within [0, N)
	for _, b := range append(m.Blocks, m.Hidden...) {
		for _, id := range b.VarIDs() {
			if id < 0 || id >= m.Dof.Size() {
				tst.Errorf("block %q references out-of-range variable %d", b.Name(), id)
			}
		}
	}

	// variable names
	chk.Strings(tst, "variables", m.Dof.Variables, []string{
		"pressure:INFLOW:V1", "flow:INFLOW:V1",
		"pressure:V1:OUT", "flow:V1:OUT",
		"OUT:pressure_c",
	})
}

func Test_model02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model02. vessel with capacitance gains midpoint pressure")

	m := buildRCmodel(tst, 1e-4)
	chk.IntAssert(m.Dof.Size(), 6)
	chk.IntAssert(m.Dof.Neq(), 6)
	v1 := m.GetBlock("V1")
	chk.Ints(tst, "V1 var ids", v1.VarIDs(), []int{0, 1, 2, 3, 4})
	chk.IntAssert(len(v1.EqnIDs()), 3)
}

func Test_model03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model03. triplet counts bound actual nonzeros")

	m := buildRCmodel(tst, 1e-4)
	nt := m.NumTriplets()
	s := NewSystem(m.Dof.Size(), nt)
	m.Params.Eval(0)
	m.UpdateConstant(s)
	m.UpdateTime(s, 0.1)
	y := make([]float64, m.Dof.Size())
	ydot := make([]float64, m.Dof.Size())
	m.UpdateSolution(s, y, ydot)

	if s.F.Nnz() > nt.F {
		tst.Errorf("F has more nonzeros than declared: %d > %d", s.F.Nnz(), nt.F)
	}
	if s.E.Nnz() > nt.E {
		tst.Errorf("E has more nonzeros than declared: %d > %d", s.E.Nnz(), nt.E)
	}
	nd := s.DF.Nnz() + s.DE.Nnz() + s.DC.Nnz()
	if nd > nt.D {
		tst.Errorf("D has more nonzeros than declared: %d > %d", nd, nt.D)
	}
}

func Test_model04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model04. junctions are conservative (F only)")

	m := NewModel()
	var blocks []string
	for _, name := range []string{"A", "B", "C"} {
		pv := []int{m.AddConstParam(1), m.AddConstParam(0), m.AddConstParam(0), m.AddConstParam(0)}
		if _, err := m.AddBlock("BloodVessel", pv, name, false); err != nil {
			tst.Fatalf("AddBlock failed:\n%v", err)
		}
		blocks = append(blocks, name)
	}
	if _, err := m.AddBlock("NORMAL_JUNCTION", nil, "J1", false); err != nil {
		tst.Fatalf("AddBlock failed:\n%v", err)
	}
	q := m.AddConstParam(2)
	if _, err := m.AddBlock("FLOW", []int{q}, "IN", false); err != nil {
		tst.Fatalf("AddBlock failed:\n%v", err)
	}
	p0 := m.AddConstParam(0)
	for _, name := range []string{"OUTB", "OUTC"} {
		if _, err := m.AddBlock("PRESSURE", []int{p0}, name, false); err != nil {
			tst.Fatalf("AddBlock failed:\n%v", err)
		}
	}
	m.AddNode([]Block{m.GetBlock("IN")}, []Block{m.GetBlock("A")}, "IN:A")
	m.AddNode([]Block{m.GetBlock("A")}, []Block{m.GetBlock("J1")}, "A:J1")
	m.AddNode([]Block{m.GetBlock("J1")}, []Block{m.GetBlock("B")}, "J1:B")
	m.AddNode([]Block{m.GetBlock("J1")}, []Block{m.GetBlock("C")}, "J1:C")
	m.AddNode([]Block{m.GetBlock("B")}, []Block{m.GetBlock("OUTB")}, "B:OUTB")
	m.AddNode([]Block{m.GetBlock("C")}, []Block{m.GetBlock("OUTC")}, "C:OUTC")
	if err := m.Finalize(); err != nil {
		tst.Fatalf("Finalize failed:\n%v", err)
	}
	_ = blocks

	j := m.GetBlock("J1")
	nt := j.NumTriplets()
	chk.IntAssert(nt.E, 0)
	chk.IntAssert(nt.D, 0)

	// junction writes F only
	s := NewSystem(m.Dof.Size(), m.NumTriplets())
	j.UpdateConstant(s, m.Params.Eval(0))
	j.UpdateTime(s, m.Params.Values, 0)
	y := make([]float64, m.Dof.Size())
	j.UpdateSolution(s, m.Params.Values, y, y)
	chk.IntAssert(s.E.Nnz(), 0)
	chk.IntAssert(s.DF.Nnz()+s.DE.Nnz()+s.DC.Nnz(), 0)
	for _, eq := range j.EqnIDs() {
		chk.Float64(tst, "junction c row", 1e-17, s.C[eq], 0)
	}
}

func Test_model05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model05. model steady/unsteady round trip")

	m := buildRCmodel(tst, 1e-4)
	tq := []float64{0, 0.5, 1.0}
	vq := []float64{1, 3, 1}
	id, err := m.AddParam(tq, vq, true)
	if err != nil {
		tst.Fatalf("AddParam failed:\n%v", err)
	}

	before := append([]float64{}, m.Params.Eval(0.25)...)
	m.ToSteady()
	chk.Float64(tst, "frozen curve", 1e-15, m.Params.All[id].Get(0.25), (1.0+3.0+1.0)/3.0)
	m.ToUnsteady()
	after := m.Params.Eval(0.25)
	chk.Array(tst, "round trip", 1e-17, after, before)
}
