// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpicomm

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_mpicomm01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mpicomm01: degenerate single-rank communicator")

	c := World()
	chk.IntAssert(c.Rank(), 0)
	chk.IntAssert(c.Size(), 1)

	send := []float64{1, 2, 3}
	recv := make([]float64, 3)
	if err := c.SendRecvToPrev(send, recv); err != nil {
		tst.Errorf("SendRecvToPrev failed: %v", err)
	}
	chk.Array(tst, "recv == send (prev)", 1e-15, recv, send)

	recv2 := make([]float64, 3)
	if err := c.SendRecvToNext(send, recv2); err != nil {
		tst.Errorf("SendRecvToNext failed: %v", err)
	}
	chk.Array(tst, "recv == send (next)", 1e-15, recv2, send)
}

func Test_mpicomm02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mpicomm02: single-rank reductions are no-ops")

	c := World()
	buf := []float64{1, 2, 3}
	c.AllreduceSum(buf)
	chk.Array(tst, "buf unchanged", 1e-15, buf, []float64{1, 2, 3})

	n := 5
	c.AllreduceSumInt(&n)
	chk.IntAssert(n, 5)

	v := c.AllreduceMax(3.5)
	chk.Scalar(tst, "max", 1e-15, v, 3.5)

	c.Barrier()
}
