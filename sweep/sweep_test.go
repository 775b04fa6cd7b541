// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofans/grid"
)

func Test_sweep01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sweep01: visits every owned voxel exactly once")

	g, err := grid.New(2, 2, 4, 1, 1, 1)
	if err != nil {
		tst.Errorf("grid.New failed: %v", err)
		return
	}
	localN0 := 2
	count := 0
	seen := map[int]bool{}
	Sweep(g, localN0, 0, func(idx, idxPad [8]int) {
		count++
		if idx != idxPad {
			tst.Errorf("pad=0 should leave idx == idxPad, got %v vs %v", idx, idxPad)
		}
		if seen[idx[0]] {
			tst.Errorf("corner-0 index %d visited twice", idx[0])
		}
		seen[idx[0]] = true
	})
	chk.IntAssert(count, localN0*g.Ny*g.Nz)
}

func Test_sweep02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sweep02: periodic wrap at the Y and Z seams")

	g, err := grid.New(2, 2, 2, 1, 1, 1)
	if err != nil {
		tst.Errorf("grid.New failed: %v", err)
		return
	}
	var lastIdx, lastIdxPad [8]int
	var lastIx, lastIy, lastIz int
	SweepIndexed(g, 2, 2, func(ix, iy, iz int, idx, idxPad [8]int) {
		lastIx, lastIy, lastIz = ix, iy, iz
		lastIdx, lastIdxPad = idx, idxPad
	})
	chk.IntAssert(lastIx, 1)
	chk.IntAssert(lastIy, 1)
	chk.IntAssert(lastIz, 1)
	// corner 3 (a=1,b=1,c=0) at ix=1,iy=1 wraps iy back to 0; corner 7 additionally
	// wraps iz back to 0, landing at (ix+1, 0, 0) in the padded stride.
	strideZPad := g.Nz + 2
	want7 := strideZPad * (g.Ny*2 + 0)
	chk.IntAssert(lastIdxPad[7], want7)

	strideZ := g.Nz
	want7Unpadded := strideZ * (g.Ny*2 + 0)
	chk.IntAssert(lastIdx[7], want7Unpadded)
}

func Test_sweep03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sweep03: Offsets exposes the (a,b,c) corner convention")

	offs := Offsets()
	chk.IntAssert(len(offs), 8)
	chk.IntAssert(offs[0][0]+offs[0][1]+offs[0][2], 0)
	chk.IntAssert(offs[7][0]+offs[7][1]+offs[7][2], 3)
}
