// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweep iterates all voxel elements owned by a rank and supplies each
// element's 8 corner indices, under both the real-data stride and the
// padded (r2c-compatible) stride, to a caller-supplied callback.
package sweep

import "github.com/cpmech/gofans/grid"

// cornerOffsets enumerates the 8 local corners of a voxel element in the
// (a,b,c) convention of spec §4.1: a varies fastest, then b, then c.
var cornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// Sweep iterates every owned voxel (ix,iy,iz) with 0<=ix<LocalN0, 0<=iy<Ny,
// 0<=iz<Nz and invokes yield with the 8 corner linear indices under stride Nz
// (idx, for gathering from non-padded buffers like U) and stride Nz+pad
// (idxPad, for scattering into padded buffers like R). iy wraps at Ny-1, iz
// wraps at Nz-1; the ix+1 corners may land in the ghost slab ix=LocalN0,
// which is valid once the ghost exchange has populated it.
func Sweep(g *grid.Grid, localN0, pad int, yield func(idx, idxPad [8]int)) {
	SweepIndexed(g, localN0, pad, func(ix, iy, iz int, idx, idxPad [8]int) {
		yield(idx, idxPad)
	})
}

// SweepIndexed is Sweep but also passes the owning voxel's own coordinates,
// for callers that must know the element's physical position, not just its
// flat corner indices.
func SweepIndexed(g *grid.Grid, localN0, pad int, yield func(ix, iy, iz int, idx, idxPad [8]int)) {
	ny, nz := g.Ny, g.Nz
	strideZ := nz
	strideZPad := nz + pad

	idxAt := func(ix, iy int) int {
		if iy >= ny {
			iy -= ny
		}
		return strideZ * (ny*ix + iy)
	}
	idxPadAt := func(ix, iy int) int {
		if iy >= ny {
			iy -= ny
		}
		return strideZPad * (ny*ix + iy)
	}

	for ix := 0; ix < localN0; ix++ {
		for iy := 0; iy < ny; iy++ {
			var idx, idxPad [8]int
			idx[0] = idxAt(ix, iy)
			idx[1] = idxAt(ix+1, iy)
			idx[2] = idxAt(ix, iy+1)
			idx[3] = idxAt(ix+1, iy+1)
			idx[4] = idx[0] + 1
			idx[5] = idx[1] + 1
			idx[6] = idx[2] + 1
			idx[7] = idx[3] + 1

			idxPad[0] = idxPadAt(ix, iy)
			idxPad[1] = idxPadAt(ix+1, iy)
			idxPad[2] = idxPadAt(ix, iy+1)
			idxPad[3] = idxPadAt(ix+1, iy+1)
			idxPad[4] = idxPad[0] + 1
			idxPad[5] = idxPad[1] + 1
			idxPad[6] = idxPad[2] + 1
			idxPad[7] = idxPad[3] + 1

			for iz := 0; iz < nz-1; iz++ {
				yield(ix, iy, iz, idx, idxPad)
				for k := 0; k < 8; k++ {
					idx[k]++
					idxPad[k]++
				}
			}

			// seam at iz == nz-1: the c=1 corners (4..7) wrap to iz=0
			idx[4] -= nz
			idx[5] -= nz
			idx[6] -= nz
			idx[7] -= nz
			idxPad[4] -= nz
			idxPad[5] -= nz
			idxPad[6] -= nz
			idxPad[7] -= nz

			yield(ix, iy, nz-1, idx, idxPad)
		}
	}
}

// Offsets exposes the (a,b,c) corner convention for callers that need it
// directly (fem/green.go keeps its own copy of the same table).
func Offsets() [8][3]int { return cornerOffsets }
