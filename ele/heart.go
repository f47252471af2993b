// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "math"

// ClosedLoopHeartPulmonary models the mechanics of the four heart
// chambers and the pulmonary circulation as a single macro block closing
// the loop between the venous return (inlet) and the aorta (outlet).
//
// The block owns 12 internal variables in addition to its inlet/outlet
// pairs; with the variable layout
//
//	[P_RA Q_in P_ao Q_ao V_RA Q_RA P_RV V_RV Q_RV P_pul P_LA V_LA Q_LA P_LV V_LV Q_LV]
//
// it contributes 14 equations: elastance-based pressure-volume relations
// for the four chambers, volume balances, inductive/resistive outflow
// relations gated by ideal valves, the pulmonary resistance-capacitance
// stage and the aortic capacitance. Atrial activation follows a shifted
// cosine window around the P-wave; the ventricular elastance is a
// 25-mode Fourier series scaled by Elv_s/Erv_s.
type ClosedLoopHeartPulmonary struct {
	Base

	// updated every time step
	aa       float64 // atrial activation function
	elv, erv float64 // left/right ventricle elastance

	// updated with the solution
	psiRa, psiLa   float64 // atrial pressure-volume relation offsets
	psiRaD, psiLaD float64 // their derivatives w.r.t. atrial volume
	valves         [16]float64
}

// parameter order (27 heart parameters)
const (
	hpTsa = iota
	hpTpwave
	hpErvS
	hpElvS
	hpIml
	hpImr
	hpLraV
	hpRraV
	hpLrvA
	hpRrvA
	hpLlaV
	hpRlaV
	hpLlvA
	hpRlvAo
	hpVrvU
	hpVlvU
	hpRpd
	hpCp
	hpCpa
	hpKxpRa
	hpKxvRa
	hpKxpLa
	hpKxvLa
	hpEmaxRa
	hpEmaxLa
	hpVasoRa
	hpVasoLa
)

// HeartParamNames lists the 27 heart parameter names in the order the
// block expects its parameter ids
var HeartParamNames = []string{
	"Tsa", "tpwave", "Erv_s", "Elv_s", "iml", "imr",
	"Lra_v", "Rra_v", "Lrv_a", "Rrv_a", "Lla_v", "Rla_v", "Llv_a", "Rlv_ao",
	"Vrv_u", "Vlv_u", "Rpd", "Cp", "Cpa",
	"Kxp_ra", "Kxv_ra", "Kxp_la", "Kxv_la",
	"Emax_ra", "Emax_la", "Vaso_ra", "Vaso_la",
}

// ventricular elastance Fourier modes (cos, sin coefficients)
var heartElastModes = [25][2]float64{
	{0.283748803, 0.000000000},
	{0.031830626, -0.374299825},
	{-0.209472400, -0.018127770},
	{0.020520047, 0.073971113},
	{0.008316883, -0.047249597},
	{-0.041677660, 0.003212163},
	{0.000867323, 0.019441411},
	{-0.001675379, -0.005565534},
	{-0.011252277, 0.003401432},
	{-0.000414677, 0.008376795},
	{0.000253749, -0.000071880},
	{-0.002584966, 0.001566861},
	{0.000584752, 0.003143555},
	{0.000028502, -0.000024787},
	{0.000022961, -0.000007476},
	{0.000018735, -0.000001281},
	{0.000015573, 0.000001781},
	{0.000013133, 0.000003494},
	{0.000011199, 0.000004507},
	{0.000009634, 0.000005117},
	{0.000008343, 0.000005481},
	{0.000007265, 0.000005687},
	{0.000006354, 0.000005789},
	{0.000005575, 0.000005821},
	{0.000004903, 0.000005805},
}

func init() {
	SetAllocator("ClosedLoopHeartAndPulmonary", func(m *Model, paramIDs []int, name string) Block {
		return &ClosedLoopHeartPulmonary{Base: Base{Bname: name, ParamIDs: paramIDs, Mdl: m}}
	})
}

// SetupDofs registers 14 equations and the 12 internal variables
func (o *ClosedLoopHeartPulmonary) SetupDofs(d *DOFHandler) {
	o.setupDofs(d, 14, []string{
		"V_RA", "Q_RA", "P_RV", "V_RV", "Q_RV", "P_pul",
		"P_LA", "V_LA", "Q_LA", "P_LV", "V_LV", "Q_LV",
	})
}

// NumTriplets returns the number of nonzero contributions
func (o *ClosedLoopHeartPulmonary) NumTriplets() Triplets {
	return Triplets{F: 33, E: 10, D: 2}
}

// SetICs prescribes physiological starting volumes and pulmonary pressure
func (o *ClosedLoopHeartPulmonary) SetICs(y, ydot []float64) {
	y[o.Gvar[4]] = 38.43  // RA volume
	y[o.Gvar[7]] = 96.07  // RV volume
	y[o.Gvar[11]] = 38.43 // LA volume
	y[o.Gvar[14]] = 96.07 // LV volume
	y[o.Gvar[9]] = 8.0    // pulmonary pressure
}

// UpdateConstant writes the capacitive and inductive E entries
func (o *ClosedLoopHeartPulmonary) UpdateConstant(s *System, v []float64) {
	s.E.Put(o.Geqn[1], o.Gvar[2], v[o.ParamIDs[hpCpa]])  // aortic pressure
	s.E.Put(o.Geqn[2], o.Gvar[4], 1)                     // RA volume
	s.E.Put(o.Geqn[3], o.Gvar[5], v[o.ParamIDs[hpLraV]]) // RA outflow
	s.E.Put(o.Geqn[5], o.Gvar[7], 1)                     // RV volume
	s.E.Put(o.Geqn[6], o.Gvar[8], v[o.ParamIDs[hpLrvA]]) // RV outflow
	s.E.Put(o.Geqn[7], o.Gvar[9], v[o.ParamIDs[hpCp]])   // pulmonary pressure
	s.E.Put(o.Geqn[9], o.Gvar[11], 1)                    // LA volume
	s.E.Put(o.Geqn[10], o.Gvar[12], v[o.ParamIDs[hpLlaV]])
	s.E.Put(o.Geqn[12], o.Gvar[14], 1) // LV volume
	s.E.Put(o.Geqn[13], o.Gvar[15], v[o.ParamIDs[hpLlvA]])
}

// UpdateTime evaluates the atrial activation and ventricular elastances
func (o *ClosedLoopHeartPulmonary) UpdateTime(s *System, v []float64, t float64) {
	T := o.Mdl.CardiacCyclePeriod
	tsa := T * v[o.ParamIDs[hpTsa]]
	tpw := T / v[o.ParamIDs[hpTpwave]]
	tc := math.Mod(t, T)

	o.aa = 0
	if tc <= tpw {
		o.aa = 0.5 * (1.0 - math.Cos(2.0*math.Pi*(tc-tpw+tsa)/tsa))
	} else if tc >= (T-tsa)+tpw && tc < T {
		o.aa = 0.5 * (1.0 - math.Cos(2.0*math.Pi*(tc-tpw-(T-tsa))/tsa))
	}

	ei := 0.0
	for i, m := range heartElastModes {
		w := 2.0 * math.Pi * float64(i) * tc / T
		ei += m[0]*math.Cos(w) - m[1]*math.Sin(w)
	}
	o.elv = ei * v[o.ParamIDs[hpElvS]]
	o.erv = ei * v[o.ParamIDs[hpErvS]]
}

// UpdateSolution writes the chamber equations; F and c depend on both
// time (activation, elastances) and solution (valve states, atrial
// pressure-volume offsets)
func (o *ClosedLoopHeartPulmonary) UpdateSolution(s *System, v []float64, y, ydot []float64) {
	o.psiRaLa(v, y)
	o.valvePositions(y)

	// right atrium pressure
	s.F.Put(o.Geqn[0], o.Gvar[0], 1)
	s.F.Put(o.Geqn[0], o.Gvar[4], -o.aa*v[o.ParamIDs[hpEmaxRa]])
	s.C[o.Geqn[0]] = o.aa*v[o.ParamIDs[hpEmaxRa]]*v[o.ParamIDs[hpVasoRa]] + o.psiRa*(o.aa-1.0)
	s.DC.Put(o.Geqn[0], o.Gvar[4], o.psiRaD*(o.aa-1.0))

	// aortic pressure
	s.F.Put(o.Geqn[1], o.Gvar[15], -o.valves[15])
	s.F.Put(o.Geqn[1], o.Gvar[3], 1)

	// right atrium volume
	s.F.Put(o.Geqn[2], o.Gvar[5], o.valves[5])
	s.F.Put(o.Geqn[2], o.Gvar[1], -1)

	// right atrium outflow
	s.F.Put(o.Geqn[3], o.Gvar[5], v[o.ParamIDs[hpRraV]]*o.valves[5])
	s.F.Put(o.Geqn[3], o.Gvar[0], -1)
	s.F.Put(o.Geqn[3], o.Gvar[6], 1)

	// right ventricle pressure
	s.F.Put(o.Geqn[4], o.Gvar[6], 1)
	s.F.Put(o.Geqn[4], o.Gvar[7], -o.erv)
	s.C[o.Geqn[4]] = o.erv * v[o.ParamIDs[hpVrvU]]

	// right ventricle volume
	s.F.Put(o.Geqn[5], o.Gvar[5], -o.valves[5])
	s.F.Put(o.Geqn[5], o.Gvar[8], o.valves[8])

	// right ventricle outflow
	s.F.Put(o.Geqn[6], o.Gvar[6], -1)
	s.F.Put(o.Geqn[6], o.Gvar[9], 1)
	s.F.Put(o.Geqn[6], o.Gvar[8], v[o.ParamIDs[hpRrvA]]*o.valves[8])

	// pulmonary pressure
	s.F.Put(o.Geqn[7], o.Gvar[8], -o.valves[8])
	s.F.Put(o.Geqn[7], o.Gvar[9], 1.0/v[o.ParamIDs[hpRpd]])
	s.F.Put(o.Geqn[7], o.Gvar[10], -1.0/v[o.ParamIDs[hpRpd]])

	// left atrium pressure
	s.F.Put(o.Geqn[8], o.Gvar[10], 1)
	s.F.Put(o.Geqn[8], o.Gvar[11], -o.aa*v[o.ParamIDs[hpEmaxLa]])
	s.C[o.Geqn[8]] = o.aa*v[o.ParamIDs[hpEmaxLa]]*v[o.ParamIDs[hpVasoLa]] + o.psiLa*(o.aa-1.0)
	s.DC.Put(o.Geqn[8], o.Gvar[11], o.psiLaD*(o.aa-1.0))

	// left atrium volume
	s.F.Put(o.Geqn[9], o.Gvar[8], -o.valves[8])
	s.F.Put(o.Geqn[9], o.Gvar[12], o.valves[12])

	// left atrium outflow
	s.F.Put(o.Geqn[10], o.Gvar[10], -1)
	s.F.Put(o.Geqn[10], o.Gvar[13], 1)
	s.F.Put(o.Geqn[10], o.Gvar[12], v[o.ParamIDs[hpRlaV]]*o.valves[12])

	// left ventricle pressure
	s.F.Put(o.Geqn[11], o.Gvar[13], 1)
	s.F.Put(o.Geqn[11], o.Gvar[14], -o.elv)
	s.C[o.Geqn[11]] = o.elv * v[o.ParamIDs[hpVlvU]]

	// left ventricle volume
	s.F.Put(o.Geqn[12], o.Gvar[12], -o.valves[12])
	s.F.Put(o.Geqn[12], o.Gvar[15], o.valves[15])

	// left ventricle outflow
	s.F.Put(o.Geqn[13], o.Gvar[13], -1)
	s.F.Put(o.Geqn[13], o.Gvar[2], 1)
	s.F.Put(o.Geqn[13], o.Gvar[15], v[o.ParamIDs[hpRlvAo]]*o.valves[15])
}

// psiRaLa evaluates the atrial pressure-volume offsets and derivatives
func (o *ClosedLoopHeartPulmonary) psiRaLa(v []float64, y []float64) {
	vra := y[o.Gvar[4]]
	vla := y[o.Gvar[11]]
	era := math.Exp((vra - v[o.ParamIDs[hpVasoRa]]) * v[o.ParamIDs[hpKxvRa]])
	ela := math.Exp((vla - v[o.ParamIDs[hpVasoLa]]) * v[o.ParamIDs[hpKxvLa]])
	o.psiRa = v[o.ParamIDs[hpKxpRa]] * (era - 1.0)
	o.psiLa = v[o.ParamIDs[hpKxpLa]] * (ela - 1.0)
	o.psiRaD = v[o.ParamIDs[hpKxpRa]] * era * v[o.ParamIDs[hpKxvRa]]
	o.psiLaD = v[o.ParamIDs[hpKxpLa]] * ela * v[o.ParamIDs[hpKxvLa]]
}

// valvePositions closes the ideal valves (and clamps the corresponding
// outflows) wherever the downstream pressure is at least the upstream one
// and the flow through the valve is not positive
func (o *ClosedLoopHeartPulmonary) valvePositions(y []float64) {
	for i := range o.valves {
		o.valves[i] = 1
	}
	// RA to RV
	if y[o.Gvar[0]] <= y[o.Gvar[6]] && y[o.Gvar[5]] <= 0 {
		o.valves[5] = 0
		y[o.Gvar[5]] = 0
	}
	// RV to pulmonary
	if y[o.Gvar[6]] <= y[o.Gvar[9]] && y[o.Gvar[8]] <= 0 {
		o.valves[8] = 0
		y[o.Gvar[8]] = 0
	}
	// LA to LV
	if y[o.Gvar[10]] <= y[o.Gvar[13]] && y[o.Gvar[12]] <= 0 {
		o.valves[12] = 0
		y[o.Gvar[12]] = 0
	}
	// LV to aorta
	if y[o.Gvar[13]] <= y[o.Gvar[2]] && y[o.Gvar[15]] <= 0 {
		o.valves[15] = 0
		y[o.Gvar[15]] = 0
	}
}
