// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofans/grid"
	"github.com/cpmech/gofans/mdl/diffusion"
)

func Test_green01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("green01: DC mode is zeroed and off-DC blocks are symmetric")

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
	m, err := diffusion.New(1, 1, 1, 3, []float64{3})
	if err != nil {
		tst.Errorf("diffusion.New failed: %v", err)
		return
	}
	go_, err := NewGreenOperator(g, d, m)
	if err != nil {
		tst.Errorf("NewGreenOperator failed: %v", err)
		return
	}

	nzHat := g.NzHat()
	dcInd := 0*g.Nx*nzHat + 0*nzHat + 0
	dc := go_.Block(dcInd)
	chk.Scalar(tst, "DC[0][0]", 1e-15, dc[0][0], 0)

	nonDC := 1
	blk := go_.Block(nonDC)
	for i := 0; i < m.H(); i++ {
		for j := 0; j < m.H(); j++ {
			chk.Scalar(tst, "symmetric block", 1e-12, blk[i][j], blk[j][i])
		}
	}
}

func Test_green02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("green02: invertSymmetric inverts a known 2x2 matrix")

	a := [][]float64{{4, 1}, {1, 3}}
	inv := [][]float64{{0, 0}, {0, 0}}
	if err := invertSymmetric(a, inv); err != nil {
		tst.Errorf("invertSymmetric failed: %v", err)
		return
	}
	det := 4*3 - 1*1
	want := [][]float64{{3 / float64(det), -1 / float64(det)}, {-1 / float64(det), 4 / float64(det)}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			chk.Scalar(tst, "inv[i][j]", 1e-12, inv[i][j], want[i][j])
		}
	}
}
