// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Model represents a full 0D model: the blocks, the nodes connecting them,
// the parameter store and the degree-of-freedom handler. Blocks and
// parameters are append-only and stable-indexed; after Finalize the
// topology is frozen.
type Model struct {

	// essential
	Dof    DOFHandler // degree-of-freedom handler
	Params Params     // parameter store
	Blocks []Block    // blocks of the model
	Hidden []Block    // hidden blocks created by composite blocks
	Nodes  []*Node    // nodes of the model

	// derived
	CardiacCyclePeriod float64 // period of cardiac cycle; -1 until set

	// auxiliary maps
	nameToIdx map[string]int // block name => index into all blocks (visible then hidden)
	kinds     []string       // kind of each block, in registration order
	finalized bool
}

// NewModel returns a new empty model
func NewModel() (o *Model) {
	o = new(Model)
	o.CardiacCyclePeriod = -1
	o.nameToIdx = make(map[string]int)
	return
}

// AddConstParam adds a constant parameter and returns its global id
func (o *Model) AddConstParam(value float64) int {
	return o.Params.Append(NewConstParam(value))
}

// AddParam adds a (possibly time-dependent) parameter and returns its
// global id. All periodic parameters must share the same cycle period,
// which becomes the model's cardiac cycle period.
func (o *Model) AddParam(times, values []float64, periodic bool) (id int, err error) {
	p, err := NewParam(times, values, periodic)
	if err != nil {
		return -1, err
	}
	if !p.IsConstant && p.Periodic {
		if o.CardiacCyclePeriod < 0 {
			o.CardiacCyclePeriod = p.CyclePeriod
		} else if math.Abs(o.CardiacCyclePeriod-p.CyclePeriod) > 1e-12 {
			return -1, chk.Err("inconsistent cardiac cycle period: %g != %g", p.CyclePeriod, o.CardiacCyclePeriod)
		}
	}
	return o.Params.Append(p), nil
}

// AddBlock creates a block of the given kind and appends it to the model.
// Internal blocks (created by composite blocks) go into the hidden list.
// Returns the global block id.
func (o *Model) AddBlock(kind string, paramIDs []int, name string, internal bool) (id int, err error) {
	if o.finalized {
		return -1, chk.Err("cannot add block %q: model is finalized", name)
	}
	b, err := NewBlock(o, kind, paramIDs, name)
	if err != nil {
		return -1, err
	}
	return o.appendBlock(b, kind, internal), nil
}

// appendBlock registers an already-allocated block
func (o *Model) appendBlock(b Block, kind string, internal bool) (id int) {
	id = len(o.Blocks) + len(o.Hidden)
	if internal {
		o.Hidden = append(o.Hidden, b)
	} else {
		o.Blocks = append(o.Blocks, b)
	}
	o.nameToIdx[b.Name()] = id
	o.kinds = append(o.kinds, kind)
	return
}

// GetBlock returns a block by name, or nil if absent
func (o *Model) GetBlock(name string) Block {
	idx, ok := o.nameToIdx[name]
	if !ok {
		return nil
	}
	return o.blockByID(idx)
}

// blockByID returns a block by global id (visible blocks first, then hidden)
func (o *Model) blockByID(id int) Block {
	if id < len(o.Blocks) {
		return o.Blocks[id]
	}
	return o.Hidden[id-len(o.Blocks)]
}

// BlockKind returns the kind of a named block
func (o *Model) BlockKind(name string) (kind string, err error) {
	idx, ok := o.nameToIdx[name]
	if !ok {
		return "", chk.Err("cannot find block named %q", name)
	}
	return o.kinds[idx], nil
}

// HasBlockKind tells whether any block of the given kind is present
func (o *Model) HasBlockKind(kind string) bool {
	for _, k := range o.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// AddNode creates a node connecting inblocks to outblocks and returns its id
func (o *Model) AddNode(inblocks, outblocks []Block, name string) (id int) {
	id = len(o.Nodes)
	o.Nodes = append(o.Nodes, NewNode(inblocks, outblocks, name))
	return
}

// Finalize freezes the topology: registers node DOFs, block equations and
// internal variables, resolves model-dependent parameter bindings, and
// checks that the system is square. Composite blocks create their hidden
// children during their SetupDofs call.
func (o *Model) Finalize() (err error) {
	if o.finalized {
		return chk.Err("model is finalized already")
	}
	for _, n := range o.Nodes {
		n.SetupDofs(&o.Dof)
	}
	for _, b := range o.Blocks {
		b.SetupDofs(&o.Dof)
	}
	for _, b := range o.allBlocks() {
		if md, ok := b.(ModelDependent); ok {
			if err = md.SetModelDependentParams(o); err != nil {
				return
			}
		}
	}
	if o.CardiacCyclePeriod < 0 {
		o.CardiacCyclePeriod = 1.0
	}
	if o.Dof.Size() != o.Dof.Neq() {
		return chk.Err("system is not square: %d variables != %d equations", o.Dof.Size(), o.Dof.Neq())
	}
	o.finalized = true
	return
}

// allBlocks iterates visible blocks followed by hidden blocks
func (o *Model) allBlocks() (res []Block) {
	res = make([]Block, 0, len(o.Blocks)+len(o.Hidden))
	res = append(res, o.Blocks...)
	res = append(res, o.Hidden...)
	return
}

// NumTriplets sums the triplet counts of all blocks, including hidden ones
func (o *Model) NumTriplets() (nt Triplets) {
	for _, b := range o.allBlocks() {
		nt.Add(b.NumTriplets())
	}
	return
}

// UpdateConstant updates the constant contributions of all blocks
func (o *Model) UpdateConstant(s *System) {
	v := o.Params.Values
	for _, b := range o.allBlocks() {
		b.UpdateConstant(s, v)
	}
}

// UpdateTime re-evaluates the parameter table at time t and updates the
// time-dependent contributions of all blocks
func (o *Model) UpdateTime(s *System, t float64) {
	v := o.Params.Eval(t)
	for _, b := range o.allBlocks() {
		b.UpdateTime(s, v, t)
	}
}

// UpdateSolution updates the solution-dependent contributions of all blocks
func (o *Model) UpdateSolution(s *System, y, ydot []float64) {
	v := o.Params.Values
	for _, b := range o.allBlocks() {
		b.UpdateSolution(s, v, y, ydot)
	}
}

// SetICs applies block-prescribed initial conditions to (y, ydot)
func (o *Model) SetICs(y, ydot []float64) {
	for _, b := range o.allBlocks() {
		if w, ok := b.(WithICs); ok {
			w.SetICs(y, ydot)
		}
	}
}

// ToSteady converts parameters and blocks to steady behavior
func (o *Model) ToSteady() {
	o.Params.ToSteady()
	for _, b := range o.allBlocks() {
		b.ToSteady()
	}
}

// ToUnsteady restores unsteady behavior
func (o *Model) ToUnsteady() {
	o.Params.ToUnsteady()
	for _, b := range o.allBlocks() {
		b.ToUnsteady()
	}
}
