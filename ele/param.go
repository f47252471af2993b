// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Param holds one model parameter: either a constant scalar or a
// time-dependent piecewise-linear curve sampled at ascending times.
// Periodic curves repeat with CyclePeriod = Times[last] - Times[0];
// non-periodic curves clamp at their endpoints.
type Param struct {

	// input
	Times    []float64 // sample times (empty for constants)
	Values   []float64 // sample values (one entry for constants)
	Periodic bool      // curve repeats with the cardiac cycle

	// derived
	IsConstant  bool    // single value, no time dependency
	CyclePeriod float64 // Times[last] - Times[0] (0 for constants)

	// steady mode
	steady    bool    // curve currently replaced by its cycle mean
	steadyVal float64 // mean of Values over one cycle
}

// NewParam creates a new parameter. A single value with no times yields a
// constant. For curves, times must be strictly ascending and match values
// in length.
func NewParam(times, values []float64, periodic bool) (o *Param, err error) {
	o = &Param{Times: times, Values: values, Periodic: periodic}
	if len(values) == 0 {
		return nil, chk.Err("parameter requires at least one value")
	}
	if len(values) == 1 {
		o.IsConstant = true
		o.Times = nil
		return
	}
	if len(times) != len(values) {
		return nil, chk.Err("parameter times and values must have the same length. %d != %d", len(times), len(values))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, chk.Err("parameter times must be strictly ascending. times[%d]=%g >= times[%d]=%g", i-1, times[i-1], i, times[i])
		}
	}
	o.CyclePeriod = times[len(times)-1] - times[0]
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	o.steadyVal = mean / float64(len(values))
	return
}

// NewConstParam creates a constant parameter
func NewConstParam(value float64) *Param {
	return &Param{Values: []float64{value}, IsConstant: true}
}

// Get returns the parameter value at time t
func (o *Param) Get(t float64) float64 {
	if o.IsConstant {
		return o.Values[0]
	}
	if o.steady {
		return o.steadyVal
	}
	n := len(o.Times)
	if o.Periodic {
		t = o.Times[0] + math.Mod(t-o.Times[0], o.CyclePeriod)
		if t < o.Times[0] {
			t += o.CyclePeriod
		}
	} else {
		if t <= o.Times[0] {
			return o.Values[0]
		}
		if t >= o.Times[n-1] {
			return o.Values[n-1]
		}
	}
	for i := 1; i < n; i++ {
		if t <= o.Times[i] {
			w := (t - o.Times[i-1]) / (o.Times[i] - o.Times[i-1])
			return o.Values[i-1] + w*(o.Values[i]-o.Values[i-1])
		}
	}
	return o.Values[n-1]
}

// ToSteady replaces the curve by the mean of its values over one cycle
func (o *Param) ToSteady() {
	if !o.IsConstant {
		o.steady = true
	}
}

// ToUnsteady restores the original curve
func (o *Param) ToUnsteady() {
	o.steady = false
}

// Params is the contiguous parameter store owned by the model. Blocks hold
// integer ids into this store; Eval refreshes the flat Values slice that is
// handed to the block update methods.
type Params struct {
	All    []*Param  // all parameters; index == parameter id
	Values []float64 // [len(All)] current values (refreshed by Eval)
}

// Append adds a parameter and returns its id
func (o *Params) Append(p *Param) (id int) {
	id = len(o.All)
	o.All = append(o.All, p)
	o.Values = append(o.Values, p.Get(0))
	return
}

// Eval refreshes Values at time t and returns the slice
func (o *Params) Eval(t float64) []float64 {
	for i, p := range o.All {
		o.Values[i] = p.Get(t)
	}
	return o.Values
}

// ToSteady freezes all time-dependent parameters at their cycle means
func (o *Params) ToSteady() {
	for _, p := range o.All {
		p.ToSteady()
	}
}

// ToUnsteady restores all parameter curves
func (o *Params) ToUnsteady() {
	for _, p := range o.All {
		p.ToUnsteady()
	}
}
