// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

// Converters between the equivalent isotropic elastic constant pairs,
// carried over from the teacher's SmallElasticity.Init branching logic
// (E,nu <-> l,G <-> K,G <-> K,nu) so Model can accept (E,nu) material data
// while the Green operator and stiffness assembly work in (K,G).

// CalcKFromEnu returns the bulk modulus K given E and nu.
func CalcKFromEnu(E, nu float64) float64 {
	return E / (3.0 * (1.0 - 2.0*nu))
}

// CalcGFromEnu returns the shear modulus G given E and nu. NOTE: G == mu.
func CalcGFromEnu(E, nu float64) float64 {
	return E / (2.0 * (1.0 + nu))
}
