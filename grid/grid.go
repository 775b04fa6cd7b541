// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid owns the global voxel-grid dimensions, physical spacing, and the
// 1-D slab decomposition produced by the FFT library's "local size" query.
package grid

import "github.com/cpmech/gosl/chk"

// Grid holds the global dimensions and physical cell sizes of a periodic voxel
// micro-structure.
type Grid struct {
	Nx, Ny, Nz int     // number of voxels along each axis
	Dx, Dy, Dz float64 // physical size of one voxel
	Lx, Ly, Lz float64 // total physical length along each axis (Nx*Dx, ...)
}

// New validates dims and spacings and returns a Grid with Lx,Ly,Lz derived.
//
// Invariants enforced here (spec §3): all dimensions positive even integers; at
// least one of Nx, Nz even. Nz even is required so the r2c complex shape
// Nz/2+1 is unambiguous; Nx or Nz even is required by the FFT library's MPI
// transpose layout.
func New(nx, ny, nz int, dx, dy, dz float64) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, chk.Err("grid dimensions must be positive: got (%d,%d,%d)", nx, ny, nz)
	}
	if nx%2 != 0 || ny%2 != 0 || nz%2 != 0 {
		return nil, chk.Err("grid dimensions must be even: got (%d,%d,%d)", nx, ny, nz)
	}
	if nx%2 != 0 && nz%2 != 0 {
		return nil, chk.Err("at least one of Nx, Nz must be even: got Nx=%d Nz=%d", nx, nz)
	}
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return nil, chk.Err("voxel spacing must be positive: got (%v,%v,%v)", dx, dy, dz)
	}
	return &Grid{
		Nx: nx, Ny: ny, Nz: nz,
		Dx: dx, Dy: dy, Dz: dz,
		Lx: float64(nx) * dx, Ly: float64(ny) * dy, Lz: float64(nz) * dz,
	}, nil
}

// NVoxels returns the total number of voxels Nx*Ny*Nz.
func (g *Grid) NVoxels() int { return g.Nx * g.Ny * g.Nz }

// NzHat returns the r2c complex extent along Z, Nz/2+1.
func (g *Grid) NzHat() int { return g.Nz/2 + 1 }
