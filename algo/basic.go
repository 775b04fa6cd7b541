// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package algo layers concrete iterative algorithms on top of the fem
// package's primitives, exactly the split spec §1's Non-goals call for:
// "concrete iterative algorithms layered above (basic, conjugate-gradient,
// etc.) — the core exposes the primitives they need." solver.h's solve()
// calls a virtual internalSolve() hook overridden by a scheme class not
// present in the retrieved reference source (only the base Solver is); this
// package supplies that hook's simplest concrete form, the basic
// fixed-point (Moulinec-Suquet) scheme spec §2's data-flow line describes:
// "Residual Assembler -> Error Reducer -> Convolution -> update u <- r".
package algo

import (
	"time"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gofans/fem"
	"github.com/cpmech/gofans/field"
)

// Basic runs the basic fixed-point iteration to convergence or until
// s.NIt iterations have elapsed, mirroring solver.h's solve()/internalSolve
// pairing for the simplest concrete scheme. It mutates s.Fields.U in place
// and leaves s.Iter and s.ErrAll holding the final iteration count and error
// history.
func Basic(s *fem.Solver) error {
	t0 := time.Now()
	for s.Iter = 0; s.Iter <= s.NIt; s.Iter++ {
		if err := s.AssembleResidual(field.Pad); err != nil {
			return err
		}
		errVal, err := s.ComputeError()
		if err != nil {
			return err
		}
		if errVal < s.Tol {
			break
		}
		if s.Iter == s.NIt {
			break
		}
		if err := s.Convolution(); err != nil {
			return err
		}
		updateU(s)
	}
	s.Mdl.UpdateInternalVariables()
	if s.Comm.Rank() == 0 {
		elapsed := time.Since(t0)
		io.Pf("# FFT Time per iteration ....... %v\n", s.FFTTime/time.Duration(s.Iter+1))
		io.Pf("# Total FFT Time ............... %v\n", s.FFTTime)
		io.Pf("# Total Time per iteration ..... %v\n", elapsed/time.Duration(s.Iter+1))
		io.Pf("# Total Time ................... %v\n", elapsed)
	}
	return nil
}

// updateU applies u <- u - r over every owned, non-ghost node, the
// fixed-point correction step the basic scheme performs after the
// Convolution stage has replaced r with the Green-operator-filtered
// residual.
func updateU(s *fem.Solver) {
	fs := s.Fields
	g, d, h := s.Grid, s.Decmp, s.Mdl.H()
	strideU := g.Nz * h
	strideRPad := (g.Nz + field.Pad) * h
	for row := 0; row < d.LocalN0*g.Ny; row++ {
		uBase := row * strideU
		rBase := row * strideRPad
		for k := 0; k < strideU; k++ {
			fs.U[uBase+k] -= fs.R[rBase+k]
		}
	}
}
