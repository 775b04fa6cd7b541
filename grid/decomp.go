// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/cpmech/gosl/chk"

// Decomposition holds the 1-D slab decomposition along the first axis (pre
// forward-FFT) and along the second axis (post transposed-out forward FFT), as
// produced by the FFT library's local-size query. LocalN0Start and
// LocalN1Start are in voxels, not bytes.
type Decomposition struct {
	LocalN0      int // number of slabs this rank owns along x, pre-transform
	LocalN0Start int // x-index of the first owned slab
	LocalN1      int // number of slabs this rank owns along y, post transposed-out FFT
	LocalN1Start int // y-index (post-transpose) of the first owned slab
	AllocLocal   int // minimum real-valued buffer length the FFT library requires
}

// NewStriped computes a simple striped slab decomposition of a (nx,ny,nz) grid
// across nranks ranks, assigning rank `rank` its share of the x-axis (pre-FFT)
// and y-axis (post-transpose) slabs. Real distributed-memory FFT libraries
// (e.g. FFTW-MPI) expose this as a "local size" query against the library's
// own internal block assignment; this computes the equivalent even-split rule
// a single-axis FFTW-MPI slab decomposition uses when block size is left at
// FFTW_MPI_DEFAULT_BLOCK: ceil(n/nranks) per rank, last rank gets the
// remainder, with any surplus rank left empty.
func NewStriped(g *Grid, rank, nranks int) (*Decomposition, error) {
	if nranks <= 0 || rank < 0 || rank >= nranks {
		return nil, chk.Err("invalid rank/nranks: rank=%d nranks=%d", rank, nranks)
	}
	n0, s0, err := blockSplit(g.Nx, rank, nranks)
	if err != nil {
		return nil, err
	}
	n1, s1, err := blockSplit(g.Ny, rank, nranks)
	if err != nil {
		return nil, err
	}
	nzHat := g.NzHat()
	allocLocal := n0 * g.Ny * nzHat * 2
	if alt := n1 * g.Nx * nzHat * 2; alt > allocLocal {
		allocLocal = alt
	}
	return &Decomposition{
		LocalN0: n0, LocalN0Start: s0,
		LocalN1: n1, LocalN1Start: s1,
		AllocLocal: allocLocal,
	}, nil
}

// blockSplit divides n elements over nranks ranks using FFTW's default block
// rule: block = ceil(n/nranks), ranks take block elements in rank order until
// n runs out; the rank where it runs out gets the remainder and any later
// ranks get none.
func blockSplit(n, rank, nranks int) (count, start int, err error) {
	block := (n + nranks - 1) / nranks
	start = rank * block
	if start >= n {
		return 0, n, nil
	}
	count = block
	if start+count > n {
		count = n - start
	}
	return count, start, nil
}
