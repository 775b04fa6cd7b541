// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gofans/sweep"

// AssembleResidual is the Residual Assembler (spec §4.2), a direct
// translation of solver.h's compute_residual_basic: zero r, ghost-exchange
// u, sweep elements gathering corner DOFs relative to corner 0, call the
// material model's element residual, scatter into r with padded stride,
// fold the reverse ghost exchange back into slab 0.
//
// pad is 0 for diagnostic sweeps (homogenization) and field.Pad (2) when r
// shares storage with the in-place r2c FFT buffer (the iterative kernel).
func (s *Solver) AssembleResidual(pad int) error {
	fs := s.Fields
	g, d, h := s.Grid, s.Decmp, s.Mdl.H()

	fs.ZeroR()

	if err := s.Comm.SendRecvToPrev(fs.FirstSlabU(), fs.GhostSlabU()); err != nil {
		return newError(CollectiveError, "ghost exchange of u failed: %v", err)
	}

	ue := make([]float64, 8*h)
	sweep.Sweep(g, d.LocalN0, pad, func(idx, idxPad [8]int) {
		base := idx[0] * h
		for i := 0; i < 8; i++ {
			off := idx[i] * h
			for j := 0; j < h; j++ {
				ue[h*i+j] = fs.U[off+j] - fs.U[base+j]
			}
		}
		phase := s.Ms[idx[0]]
		re := s.Mdl.ElementResidual(ue, phase, idx[0])
		for i := 0; i < 8; i++ {
			off := idxPad[i] * h
			for j := 0; j < h; j++ {
				fs.R[off+j] += re[h*i+j]
			}
		}
	})

	if err := s.Comm.SendRecvToNext(fs.GhostSlabR(), fs.Halo); err != nil {
		return newError(CollectiveError, "ghost exchange of r failed: %v", err)
	}
	fs.FoldHaloIntoFirstSlabR()
	return nil
}
