// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field owns the contiguous scalar buffers the solver mutates every
// iteration: the fluctuation field U, the residual/complex-shared field R, and
// the halo scratch buffer used while folding ghost contributions back in.
package field

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofans/grid"
)

// View is a strided 2-D window over a flat buffer: row = z*h (+ pad), column =
// x*ny+y. It lets real- and padded/complex-interpreted layouts share the same
// backing array without copying, mirroring the Eigen Map<..., OuterStride<>>
// views in the reference implementation.
type View struct {
	Data   []float64
	StepZ  int // elements between consecutive z (and DOF) entries, i.e. (Nz[+pad])*H
	Ny     int
	H      int // DOFs per node
	LocalN int // number of owned slabs (rows) addressable via this view, excluding ghost
}

// At returns the H-vector of DOF values at voxel (ix,iy,iz).
func (v *View) At(ix, iy, iz int) []float64 {
	base := (ix*v.Ny+iy)*v.StepZ + iz*v.H
	return v.Data[base : base+v.H]
}

// Store owns U (fluctuation field, with one ghost slab), R (residual, shared
// with the in-place r2c/c2r FFT buffer, Z-padded), and Halo (scratch buffer
// used only while folding the reverse ghost exchange of R back into slab 0).
type Store struct {
	Grid  *grid.Grid
	Decmp *grid.Decomposition
	H     int // DOFs per node: 1 for scalar (diffusion), 3 for mechanics

	U    []float64 // (LocalN0+1) * Ny * Nz * H
	R    []float64 // sized max(AllocLocal*2, (LocalN0+1)*Ny*(Nz+2)*H)
	Halo []float64 // Ny * (Nz+2) * H

	UView View
	RView View // padded by 2 floats per DOF-column group (r2c in-place layout)
}

// Pad is the Z-axis padding (in floats per DOF) R carries so the in-place
// real-to-complex FFT has room to grow each row by 2 reals.
const Pad = 2

// New allocates U, R and Halo for the given grid/decomposition/DOF count.
func New(g *grid.Grid, d *grid.Decomposition, h int) (*Store, error) {
	if h != 1 && h != 3 {
		return nil, chk.Err("field.New: unsupported DOF count H=%d (expected 1 or 3)", h)
	}
	n0 := d.LocalN0
	uLen := (n0 + 1) * g.Ny * g.Nz * h
	rLenPadded := (n0 + 1) * g.Ny * (g.Nz + Pad) * h
	rLen := d.AllocLocal * 2
	if rLenPadded > rLen {
		rLen = rLenPadded
	}
	s := &Store{
		Grid: g, Decmp: d, H: h,
		U:    make([]float64, uLen),
		R:    make([]float64, rLen),
		Halo: make([]float64, g.Ny*(g.Nz+Pad)*h),
	}
	s.UView = View{Data: s.U, StepZ: g.Nz * h, Ny: g.Ny, H: h, LocalN: n0}
	s.RView = View{Data: s.R, StepZ: (g.Nz + Pad) * h, Ny: g.Ny, H: h, LocalN: n0}
	return s, nil
}

// ZeroR zeros R including the ghost slab, as step 1 of the Residual Assembler.
func (s *Store) ZeroR() {
	n0 := s.Decmp.LocalN0
	total := (n0 + 1) * s.Grid.Ny * (s.Grid.Nz + Pad) * s.H
	for i := range s.R[:total] {
		s.R[i] = 0
	}
}

// GhostSlabU returns the ghost slab of U (index LocalN0), written to by the
// forward ghost exchange.
func (s *Store) GhostSlabU() []float64 {
	n0 := s.Decmp.LocalN0
	off := n0 * s.Grid.Ny * s.Grid.Nz * s.H
	return s.U[off : off+s.Grid.Ny*s.Grid.Nz*s.H]
}

// FirstSlabU returns the first owned slab of U (index 0), sent to the
// previous rank during the forward ghost exchange.
func (s *Store) FirstSlabU() []float64 {
	return s.U[:s.Grid.Ny*s.Grid.Nz*s.H]
}

// GhostSlabR returns the ghost slab of R (index LocalN0, Z-padded), which
// accumulates residual contributions belonging to the next rank and is sent
// during the reverse ghost exchange.
func (s *Store) GhostSlabR() []float64 {
	n0 := s.Decmp.LocalN0
	off := n0 * s.Grid.Ny * (s.Grid.Nz + Pad) * s.H
	return s.R[off : off+s.Grid.Ny*(s.Grid.Nz+Pad)*s.H]
}

// FoldHaloIntoFirstSlabR adds the received halo (reinterpreted with the
// padded outer stride) into R's first slab, step 5 of the Residual Assembler.
func (s *Store) FoldHaloIntoFirstSlabR() {
	stepZ := (s.Grid.Nz + Pad) * s.H
	for row := 0; row < s.Grid.Ny; row++ {
		base := row * stepZ
		for k := 0; k < s.Grid.Nz*s.H; k++ {
			s.R[base+k] += s.Halo[base+k]
		}
	}
}
