// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algo

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofans/grid"
	"github.com/cpmech/gofans/mdl/diffusion"
	"github.com/cpmech/gofans/mpicomm"

	"github.com/cpmech/gofans/fem"
)

// newHomogeneousSolver builds a single-rank, single-phase diffusion Solver
// whose one phase matches the reference medium exactly, so the fixed-point
// iteration has nothing to correct: the residual is already zero at the
// macroscopic solution and the fluctuation field stays at zero.
func newHomogeneousSolver(nx, ny, nz int, k float64) (*fem.Solver, error) {
	g, err := grid.New(nx, ny, nz, 1, 1, 1)
	if err != nil {
		return nil, err
	}
	d, err := grid.NewStriped(g, 0, 1)
	if err != nil {
		return nil, err
	}
	m, err := diffusion.New(1, 1, 1, k, []float64{k})
	if err != nil {
		return nil, err
	}
	ms := make([]int, d.LocalN0*g.Ny*g.Nz)
	return fem.New(g, d, mpicomm.World(), m, ms, 50, 1e-8, "L2", "absolute", false)
}

func Test_basic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("basic01: homogeneous microstructure converges in the first iteration")

	s, err := newHomogeneousSolver(2, 2, 2, 3)
	if err != nil {
		tst.Errorf("newHomogeneousSolver failed: %v", err)
		return
	}
	s.SetGradient([]float64{0.2, 0, 0})
	if err := Basic(s); err != nil {
		tst.Errorf("Basic failed: %v", err)
		return
	}
	for _, v := range s.Fields.U {
		chk.Scalar(tst, "U[i] stays at zero", 1e-10, v, 0)
	}
	chk.IntAssert(s.Iter, 0)
}
