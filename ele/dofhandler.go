// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the 0D lumped-parameter elements (blocks), the
// degree-of-freedom handler, the model parameters and the sparse system
// that the blocks assemble their contributions into
package ele

// DOFHandler registers the scalar variables and equations of the global
// system and hands out contiguous ids starting from 0
type DOFHandler struct {
	Variables []string // names of solution variables; index == global variable id
	neq       int      // number of equations registered so far
}

// RegisterVariable registers one solution variable and returns its global id
func (o *DOFHandler) RegisterVariable(name string) (id int) {
	id = len(o.Variables)
	o.Variables = append(o.Variables, name)
	return
}

// RegisterEquation registers one equation (row) and returns its global id
func (o *DOFHandler) RegisterEquation() (id int) {
	id = o.neq
	o.neq++
	return
}

// Size returns the number of registered variables
func (o *DOFHandler) Size() int {
	return len(o.Variables)
}

// Neq returns the number of registered equations. The system is square, so
// Neq must equal Size after the model is finalized.
func (o *DOFHandler) Neq() int {
	return o.neq
}
