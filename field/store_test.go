// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofans/grid"
)

func Test_store01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("store01: buffer sizes")

	g, err := grid.New(4, 4, 4, 1, 1, 1)
	if err != nil {
		tst.Errorf("grid.New failed: %v", err)
		return
	}
	d, err := grid.NewStriped(g, 0, 1)
	if err != nil {
		tst.Errorf("NewStriped failed: %v", err)
		return
	}

	s, err := New(g, d, 3)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	chk.IntAssert(len(s.U), (d.LocalN0+1)*g.Ny*g.Nz*3)
	chk.IntAssert(len(s.Halo), g.Ny*(g.Nz+Pad)*3)
	if len(s.R) < (d.LocalN0+1)*g.Ny*(g.Nz+Pad)*3 {
		tst.Errorf("R too short: %d", len(s.R))
	}

	if _, err := New(g, d, 2); err == nil {
		tst.Errorf("expected error for unsupported H=2")
	}
}

func Test_store02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("store02: ghost/halo slices and fold")

	g, err := grid.New(2, 2, 2, 1, 1, 1)
	if err != nil {
		tst.Errorf("grid.New failed: %v", err)
		return
	}
	d, err := grid.NewStriped(g, 0, 1)
	if err != nil {
		tst.Errorf("NewStriped failed: %v", err)
		return
	}
	s, err := New(g, d, 1)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}

	for i := range s.U {
		s.U[i] = 1
	}
	first := s.FirstSlabU()
	chk.IntAssert(len(first), g.Ny*g.Nz)
	ghost := s.GhostSlabU()
	chk.IntAssert(len(ghost), g.Ny*g.Nz)

	s.ZeroR()
	total := (d.LocalN0 + 1) * g.Ny * (g.Nz + Pad)
	for i := 0; i < total; i++ {
		if s.R[i] != 0 {
			tst.Errorf("ZeroR left R[%d] = %v", i, s.R[i])
		}
	}

	for i := range s.Halo {
		s.Halo[i] = 2
	}
	s.FoldHaloIntoFirstSlabR()
	stepZ := (g.Nz + Pad) * 1
	for row := 0; row < g.Ny; row++ {
		base := row * stepZ
		for k := 0; k < g.Nz; k++ {
			chk.Scalar(tst, "R+=Halo", 1e-15, s.R[base+k], 2)
		}
	}
}
