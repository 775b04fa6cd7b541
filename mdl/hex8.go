// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdl

// Hex8GaussPoints are the 8 standard 2x2x2 Gauss points for a trilinear hex
// element in natural coordinates, each with unit weight (weight 1 per point
// for the 2-point rule in each direction, since 1*1*1 = 1).
var Hex8GaussPoints = func() [8][3]float64 {
	a := 1.0 / 1.7320508075688772 // 1/sqrt(3)
	var pts [8][3]float64
	for k, off := range cornerSigns {
		pts[k] = [3]float64{off[0] * a, off[1] * a, off[2] * a}
	}
	return pts
}()

// cornerSigns gives the natural-coordinate sign of each corner in the (a,b,c)
// convention of spec §4.1 (a fastest, then b, then c), mapped to {-1,+1}.
var cornerSigns = [8][3]float64{
	{-1, -1, -1}, {+1, -1, -1}, {-1, +1, -1}, {+1, +1, -1},
	{-1, -1, +1}, {+1, -1, +1}, {-1, +1, +1}, {+1, +1, +1},
}

// Hex8ShapeAndGrad evaluates the 8 trilinear shape functions and their
// gradients (in physical coordinates) at natural point (xi,eta,zeta), for a
// rectangular voxel of size (dx,dy,dz). Returns S (8 values) and G (8x3
// physical gradients) plus the (constant, for a rectangular voxel) Jacobian
// determinant.
func Hex8ShapeAndGrad(xi, eta, zeta, dx, dy, dz float64) (S [8]float64, G [8][3]float64, detJ float64) {
	for k, c := range cornerSigns {
		sx, sy, sz := c[0], c[1], c[2]
		S[k] = 0.125 * (1 + sx*xi) * (1 + sy*eta) * (1 + sz*zeta)
		dNdXi := 0.125 * sx * (1 + sy*eta) * (1 + sz*zeta)
		dNdEta := 0.125 * (1 + sx*xi) * sy * (1 + sz*zeta)
		dNdZeta := 0.125 * (1 + sx*xi) * (1 + sy*eta) * sz
		// Jacobian is diagonal for an axis-aligned rectangular voxel:
		// d(x,y,z)/d(xi,eta,zeta) = diag(dx/2, dy/2, dz/2).
		G[k][0] = dNdXi / (dx / 2)
		G[k][1] = dNdEta / (dy / 2)
		G[k][2] = dNdZeta / (dz / 2)
	}
	detJ = (dx / 2) * (dy / 2) * (dz / 2)
	return
}
