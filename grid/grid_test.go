// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01")

	g, err := New(4, 6, 8, 0.1, 0.2, 0.3)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	chk.IntAssert(g.Nx, 4)
	chk.IntAssert(g.Ny, 6)
	chk.IntAssert(g.Nz, 8)
	chk.Scalar(tst, "Lx", 1e-15, g.Lx, 0.4)
	chk.Scalar(tst, "Ly", 1e-15, g.Ly, 1.2)
	chk.Scalar(tst, "Lz", 1e-15, g.Lz, 2.4)
	chk.IntAssert(g.NVoxels(), 4*6*8)
	chk.IntAssert(g.NzHat(), 5)
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02: invalid dimensions rejected")

	if _, err := New(0, 6, 8, 0.1, 0.2, 0.3); err == nil {
		tst.Errorf("expected error for zero Nx")
	}
	if _, err := New(3, 6, 8, 0.1, 0.2, 0.3); err == nil {
		tst.Errorf("expected error for odd Nx")
	}
	if _, err := New(4, 6, 8, -0.1, 0.2, 0.3); err == nil {
		tst.Errorf("expected error for non-positive spacing")
	}
}

func Test_grid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid03: striped decomposition partitions the axes exactly")

	g, err := New(8, 4, 6, 1, 1, 1)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	nranks := 3
	totalN0, totalN1 := 0, 0
	for rank := 0; rank < nranks; rank++ {
		d, err := NewStriped(g, rank, nranks)
		if err != nil {
			tst.Errorf("NewStriped failed: %v", err)
			return
		}
		totalN0 += d.LocalN0
		totalN1 += d.LocalN1
	}
	chk.IntAssert(totalN0, g.Nx)
	chk.IntAssert(totalN1, g.Ny)
}
