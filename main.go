// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// zerodsolver simulates the hemodynamics of a vascular network using a
// zero-dimensional (0D) lumped-parameter model
package main

import (
	"os"

	"github.com/cpmech/gosl/io"

	"github.com/StanfordCBCL/svZeroDPlus/inp"
	"github.com/StanfordCBCL/svZeroDPlus/out"
	"github.com/StanfordCBCL/svZeroDPlus/sim"
)

func main() {

	if len(os.Args) != 3 {
		io.Pf("usage: zerodsolver <config.json> <output.{csv,json,db}>\n")
		os.Exit(1)
	}
	cfgPath := os.Args[1]
	outPath := os.Args[2]

	cfg, err := inp.ReadSim(cfgPath)
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}

	res, err := sim.Run(cfg, true)
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}

	err = out.Write(outPath, res)
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}
