// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mpicomm is a thin façade over github.com/cpmech/gosl/mpi providing
// the ring SendRecv and Allreduce collectives the Residual Assembler, Error
// Reducer and Homogenization stages need. PaddySchmidt-gofem/fem/s_linimp.go,
// leobcn-gofem/fem/sol-lin-implicit.go and mallano-gofem/fem/solver.go all
// call mpi.AllReduceSum(dest, orig []float64) to reduce a right-hand-side
// vector across ranks sharing boundary nodes, and mallano-gofem's
// fem/errorhandler.go calls mpi.IntAllReduceMax(dest, orig []int) to reduce
// stop flags — both two-slice, no error return checked at the call site.
// This package is written against that same two-slice collective shape, and
// against the mpi.Rank()/mpi.Size()/mpi.IsOn() calling convention those
// forks also exercise (fem/main.go, fem/fem.go). See DESIGN.md.
package mpicomm

import "github.com/cpmech/gosl/mpi"

// Comm wraps the process-wide MPI communicator (or a degenerate single-rank
// stand-in when MPI has not been started, so the solver can run and be
// tested without an mpirun launcher).
type Comm struct {
	rank, size int
}

// World returns the process-wide communicator.
func World() *Comm {
	if mpi.IsOn() {
		return &Comm{rank: mpi.Rank(), size: mpi.Size()}
	}
	return &Comm{rank: 0, size: 1}
}

// Rank returns this process's rank.
func (c *Comm) Rank() int { return c.rank }

// Size returns the communicator's size.
func (c *Comm) Size() int { return c.size }

// SendRecvToPrev sends send to the previous rank (modular) and receives into
// recv from the next rank — the MPI_Sendrecv direction solver.h uses to
// forward-exchange u ("send first slab backward, receive next rank's first
// slab as our ghost"). In single-rank mode it degenerates to copying send
// into recv.
func (c *Comm) SendRecvToPrev(send, recv []float64) error {
	if c.size == 1 {
		copy(recv, send)
		return nil
	}
	dest := (c.rank + c.size - 1) % c.size
	src := (c.rank + 1) % c.size
	return mpi.SendRecv(send, dest, 0, recv, src, 0)
}

// SendRecvToNext sends send to the next rank (modular) and receives into recv
// from the previous rank — the opposite direction, used by solver.h's
// reverse ghost-fold of r ("send our r ghost slab forward, receive the
// previous rank's overflow into our halo buffer"). In single-rank mode it
// degenerates to copying send into recv.
func (c *Comm) SendRecvToNext(send, recv []float64) error {
	if c.size == 1 {
		copy(recv, send)
		return nil
	}
	dest := (c.rank + 1) % c.size
	src := (c.rank + c.size - 1) % c.size
	return mpi.SendRecv(send, dest, 0, recv, src, 0)
}

// AllreduceSum reduces buf element-wise with SUM in place across all ranks,
// calling mpi.AllReduceSum(dest, orig []float64) with a scratch copy of buf
// as orig, the two-slice shape s_linimp.go/sol-lin-implicit.go/solver.go all
// use to reduce their right-hand-side vector. mpi.AllReduceSum has no error
// return in any of those call sites, so neither does this wrapper.
func (c *Comm) AllreduceSum(buf []float64) {
	if c.size == 1 {
		return
	}
	orig := append([]float64(nil), buf...)
	mpi.AllReduceSum(buf, orig)
}

// AllreduceSumInt reduces a single int with SUM in place across all ranks.
// mpi.IntAllReduceMax(dest, orig []int) is the only int-typed collective the
// corpus evidences; by the same bare-float64/Int-prefixed naming split
// AllReduceSum/IntAllReduceMax shows, the parallel sum variant is assumed to
// be IntAllReduceSum(dest, orig []int) (see DESIGN.md).
func (c *Comm) AllreduceSumInt(v *int) {
	if c.size == 1 {
		return
	}
	dest := []int{*v}
	orig := []int{*v}
	mpi.IntAllReduceSum(dest, orig)
	*v = dest[0]
}

// AllreduceMax reduces a single scalar with MAX across all ranks — a
// deliberately conservative (not algebraically correct) reduction for
// slab-local L1/L2 norms; spec §4.5 and §9 flag this as a behavior to
// preserve for compatibility with the reference implementation.
// mpi.IntAllReduceMax(dest, orig []int) is the only Max collective the
// corpus evidences; by the same naming split, the float64 variant is assumed
// to be AllReduceMax(dest, orig []float64), the unprefixed form
// AllReduceSum already takes for the float64 case (see DESIGN.md).
func (c *Comm) AllreduceMax(v float64) float64 {
	if c.size == 1 {
		return v
	}
	dest := []float64{v}
	orig := []float64{v}
	mpi.AllReduceMax(dest, orig)
	return dest[0]
}

// Barrier blocks until every rank has called Barrier.
func (c *Comm) Barrier() {
	if c.size > 1 {
		mpi.Barrier()
	}
}
