// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/chk"

// Block defines what all 0D elements must implement. Blocks contribute
// rows to the global DAE system E⋅dy/dt + F⋅y + c = 0 through three update
// hooks: contributions that depend only on constant parameters go into
// UpdateConstant; time-dependent entries into UpdateTime; nonlinear,
// solution-dependent entries and their gradients (dE, dF, dC) into
// UpdateSolution.
type Block interface {

	// information and initialisation
	Name() string            // returns the block name
	SetupDofs(d *DOFHandler) // registers equations and internal variables
	VarIDs() []int           // global variable ids touched by this block
	EqnIDs() []int           // global equation (row) ids owned by this block
	NumTriplets() Triplets   // number of nonzero contributions to F, E and D
	AddInletNode(n *Node)    // connects an inlet node
	AddOutletNode(n *Node)   // connects an outlet node
	InletNodes() []*Node     // inlet nodes
	OutletNodes() []*Node    // outlet nodes

	// called by the model
	UpdateConstant(s *System, v []float64)
	UpdateTime(s *System, v []float64, t float64)
	UpdateSolution(s *System, v []float64, y, ydot []float64)

	// steady/unsteady mode
	ToSteady()
	ToUnsteady()
}

// ModelDependent is implemented by blocks whose parameters depend on other
// blocks and can only be resolved at the end of model construction;
// e.g. closed-loop coronary blocks reading heart chamber DOFs
type ModelDependent interface {
	SetModelDependentParams(m *Model) error
}

// WithICs is implemented by blocks that prescribe fixed initial conditions
// for (some of) their variables
type WithICs interface {
	SetICs(y, ydot []float64)
}

// Base implements the behavior common to all blocks
type Base struct {
	Bname    string  // name of block
	ParamIDs []int   // global ids of block parameters
	Inlets   []*Node // inlet nodes
	Outlets  []*Node // outlet nodes
	Gvar     []int   // global variable ids: [P_in Q_in ... P_out Q_out ... internal]
	Geqn     []int   // global equation ids
	Steady   bool    // steady mode: capacitive behavior suppressed
	Mdl      *Model  // back-reference to model (non-owning)
}

// Name returns the block name
func (o *Base) Name() string { return o.Bname }

// VarIDs returns the global variable ids touched by this block
func (o *Base) VarIDs() []int { return o.Gvar }

// EqnIDs returns the global equation ids owned by this block
func (o *Base) EqnIDs() []int { return o.Geqn }

// AddInletNode connects an inlet node
func (o *Base) AddInletNode(n *Node) { o.Inlets = append(o.Inlets, n) }

// AddOutletNode connects an outlet node
func (o *Base) AddOutletNode(n *Node) { o.Outlets = append(o.Outlets, n) }

// InletNodes returns the inlet nodes
func (o *Base) InletNodes() []*Node { return o.Inlets }

// OutletNodes returns the outlet nodes
func (o *Base) OutletNodes() []*Node { return o.Outlets }

// ToSteady switches the block to steady behavior
func (o *Base) ToSteady() { o.Steady = true }

// ToUnsteady restores unsteady behavior
func (o *Base) ToUnsteady() { o.Steady = false }

// setupDofs registers neq equations and the internal variables, and
// assembles the global variable ids as
//
//	[P_in1 Q_in1 ... P_out1 Q_out1 ... internal...]
//
// where the pressure/flow pairs come from the inlet and outlet nodes
func (o *Base) setupDofs(d *DOFHandler, neq int, internalVars []string) {
	o.Gvar = o.Gvar[:0]
	for _, n := range o.Inlets {
		o.Gvar = append(o.Gvar, n.PresDof, n.FlowDof)
	}
	for _, n := range o.Outlets {
		o.Gvar = append(o.Gvar, n.PresDof, n.FlowDof)
	}
	for _, name := range internalVars {
		o.Gvar = append(o.Gvar, d.RegisterVariable(o.Bname+":"+name))
	}
	o.Geqn = o.Geqn[:0]
	for i := 0; i < neq; i++ {
		o.Geqn = append(o.Geqn, d.RegisterEquation())
	}
}

// factory ////////////////////////////////////////////////////////////////////////////////////////

// Allocator creates a new block of a particular kind
type Allocator func(m *Model, paramIDs []int, name string) Block

// allocators holds all available block kinds; kind => allocator
var allocators = make(map[string]Allocator)

// SetAllocator registers a block allocator; to be called from init()
func SetAllocator(kind string, a Allocator) {
	if _, ok := allocators[kind]; ok {
		chk.Panic("allocator for block kind %q exists already", kind)
	}
	allocators[kind] = a
}

// NewBlock allocates a block by kind
func NewBlock(m *Model, kind string, paramIDs []int, name string) (b Block, err error) {
	a, ok := allocators[kind]
	if !ok {
		return nil, chk.Err("unknown block kind %q (block %q)", kind, name)
	}
	return a(m, paramIDs, name), nil
}
