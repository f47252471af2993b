// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Triplets counts the nonzero contributions of a block (or of the whole
// model) to the sparse matrices: F, E and D = |dE| + |dF| + |dC|
type Triplets struct {
	F, E, D int
}

// Add accumulates triplet counts
func (o *Triplets) Add(t Triplets) {
	o.F += t.F
	o.E += t.E
	o.D += t.D
}

// entry is one (row, column, value) item of a SpMat
type entry struct {
	i, j int
	val  float64
}

// SpMat is a sparse matrix with overwrite-by-position semantics. Blocks
// write the same positions on every assembly pass, so the set of entries
// (and hence the sparsity pattern) is fixed once every block has touched
// its footprint.
type SpMat struct {
	n       int
	entries []entry
	pos     map[int]int  // i*n+j => index into entries
	tri     *la.Triplet  // scratch triplet for matrix conversion
	mat     *la.CCMatrix // cached compressed-column matrix
}

// NewSpMat creates an n x n sparse matrix with space for nnz entries
func NewSpMat(n, nnz int) (o *SpMat) {
	if nnz < 1 {
		nnz = 1
	}
	o = &SpMat{n: n, pos: make(map[int]int)}
	o.entries = make([]entry, 0, nnz)
	o.tri = new(la.Triplet)
	o.tri.Init(n, n, nnz)
	return
}

// Put sets the value at position (i,j), overwriting any previous value
func (o *SpMat) Put(i, j int, val float64) {
	key := i*o.n + j
	if idx, ok := o.pos[key]; ok {
		o.entries[idx].val = val
		return
	}
	o.pos[key] = len(o.entries)
	o.entries = append(o.entries, entry{i, j, val})
}

// Nnz returns the current number of nonzero positions
func (o *SpMat) Nnz() int {
	return len(o.entries)
}

// Matrix returns the compressed-column form of the current entries
func (o *SpMat) Matrix() *la.CCMatrix {
	if len(o.entries) > o.tri.Max() {
		o.tri.Init(o.n, o.n, len(o.entries))
		o.mat = nil
	}
	o.tri.Start()
	for _, e := range o.entries {
		o.tri.Put(e.i, e.j, e.val)
	}
	o.mat = o.tri.ToMatrix(o.mat)
	return o.mat
}

// System holds the global sparse DAE system
//
//	E⋅dy/dt + F⋅y + c = 0
//
// together with the solution-gradient matrices dE, dF, dC, the residual,
// the Newton increment and the sparse LU solver. All five matrices share a
// structural envelope that is fixed after the first full assembly pass;
// the LU solver performs its symbolic analysis once and only re-factorizes
// on subsequent solves.
type System struct {

	// matrices and vectors
	N        int       // dimension
	F        *SpMat    // coefficients of y
	E        *SpMat    // coefficients of dy/dt
	DF       *SpMat    // solution gradient of F⋅y
	DE       *SpMat    // solution gradient of E⋅dy/dt
	DC       *SpMat    // solution gradient of c
	C        []float64 // constant/source vector
	Residual []float64 // residual == -(E⋅dy/dt + F⋅y + c)
	Dy       []float64 // Newton increment

	// linear solver
	jac      *la.Triplet // Jacobian == F + dF + dC + (E + dE)⋅eCoeff
	lis      la.LinSol   // sparse LU solver
	initLSol bool        // linear solver needs initialisation before next Fact
}

// NewSystem creates a new system with dimension n, reserving capacity
// according to the aggregate block triplet counts
func NewSystem(n int, nt Triplets) (o *System) {
	o = &System{N: n}
	o.F = NewSpMat(n, nt.F)
	o.E = NewSpMat(n, nt.E)
	o.DF = NewSpMat(n, nt.D)
	o.DE = NewSpMat(n, nt.D)
	o.DC = NewSpMat(n, nt.D)
	o.C = make([]float64, n)
	o.Residual = make([]float64, n)
	o.Dy = make([]float64, n)
	o.jac = new(la.Triplet)
	o.jac.Init(n, n, nt.F+nt.E+3*nt.D+1)
	o.lis = la.GetSolver("umfpack")
	o.initLSol = true
	return
}

// UpdateResidual computes Residual = -(E⋅ydot + F⋅y + c)
func (o *System) UpdateResidual(y, ydot []float64) {
	la.VecFill(o.Residual, 0)
	la.SpMatVecMulAdd(o.Residual, -1, o.E.Matrix(), ydot) // r -= E⋅ydot
	la.SpMatVecMulAdd(o.Residual, -1, o.F.Matrix(), y)    // r -= F⋅y
	for i := 0; i < o.N; i++ {
		o.Residual[i] -= o.C[i]
	}
}

// UpdateJacobian computes the Jacobian = F + dF + dC + (E + dE)⋅eCoeff
// where eCoeff = αm / (αf⋅γ⋅Δt) is supplied by the integrator.
// Coincident entries are summed during factorisation; the put-order is
// deterministic so the assembled pattern never changes.
func (o *System) UpdateJacobian(eCoeff float64) {
	nnz := o.F.Nnz() + o.E.Nnz() + o.DF.Nnz() + o.DE.Nnz() + o.DC.Nnz()
	if nnz > o.jac.Max() {
		o.jac.Init(o.N, o.N, nnz)
		o.initLSol = true
	}
	o.jac.Start()
	for _, e := range o.F.entries {
		o.jac.Put(e.i, e.j, e.val)
	}
	for _, e := range o.DF.entries {
		o.jac.Put(e.i, e.j, e.val)
	}
	for _, e := range o.DC.entries {
		o.jac.Put(e.i, e.j, e.val)
	}
	for _, e := range o.E.entries {
		o.jac.Put(e.i, e.j, e.val*eCoeff)
	}
	for _, e := range o.DE.entries {
		o.jac.Put(e.i, e.j, e.val*eCoeff)
	}
}

// Solve performs the sparse LU solve Jacobian⋅Dy = Residual. The first
// call initialises the solver (symbolic analysis); subsequent calls only
// re-factorize.
func (o *System) Solve() (err error) {
	if o.initLSol {
		err = o.lis.InitR(o.jac, false, false, false)
		if err != nil {
			return chk.Err("cannot initialise linear solver:\n%v", err)
		}
		o.initLSol = false
	}
	err = o.lis.Fact()
	if err != nil {
		return chk.Err("factorisation failed (singular Jacobian?):\n%v", err)
	}
	err = o.lis.SolveR(o.Dy, o.Residual, false)
	if err != nil {
		return chk.Err("sparse solve failed:\n%v", err)
	}
	return
}

// Clean releases the linear solver memory
func (o *System) Clean() {
	if !o.initLSol {
		o.lis.Clean()
	}
}
