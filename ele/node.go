// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Node represents a physical connection point between two (or more) blocks.
// Each node owns exactly two degrees of freedom: one pressure and one flow.
type Node struct {
	Name    string // name of node; e.g. "V1:BC1_outlet"
	PresDof int    // global id of pressure variable
	FlowDof int    // global id of flow variable
}

// NewNode creates a new node connecting inblocks (upstream; this node is
// their outlet) to outblocks (downstream; this node is their inlet)
func NewNode(inblocks, outblocks []Block, name string) (o *Node) {
	o = &Node{Name: name, PresDof: -1, FlowDof: -1}
	for _, b := range inblocks {
		b.AddOutletNode(o)
	}
	for _, b := range outblocks {
		b.AddInletNode(o)
	}
	return
}

// SetupDofs registers the pressure and flow variables of this node
func (o *Node) SetupDofs(d *DOFHandler) {
	o.PresDof = d.RegisterVariable("pressure:" + o.Name)
	o.FlowDof = d.RegisterVariable("flow:" + o.Name)
}
