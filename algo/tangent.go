// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algo

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gofans/fem"
	"github.com/cpmech/gofans/mdl"
)

// HomogenizedTangent computes the homogenized tangent stiffness (spec §4.6),
// a direct translation of solver.h's get_homogenized_tangent: one probe
// solve per independent strain/gradient component, linear models using unit
// gradients directly, nonlinear models using a forward-difference
// perturbation of size pertParam around the current macroscale loading.
//
// The controller is disabled during probing so it cannot override the probe
// gradients (solver.h's disableMixedBC), the error type is switched to
// relative with a floor of 1e-6 on the tolerance (solver.h hardcodes both
// ahead of the probe loop), and if the material model implements
// mdl.Snapshotter its internal-variable history is saved before probing and
// restored afterward, resolving spec §4.6's Open Question about history
// contamination: solver.h's own TODO above this loop flags that a deep copy
// of the solver is needed to avoid mutating history, which Snapshot/Restore
// supplies without requiring a full solver clone.
func HomogenizedTangent(s *fem.Solver, pertParam float64) ([][]float64, error) {
	nStr := s.Mdl.NStr()
	tangent := la.MatAlloc(nStr, nStr)

	unperturbed, err := s.GetHomogenizedStress()
	if err != nil {
		return nil, err
	}

	g0 := append([]float64(nil), s.Mdl.MacroscaleLoading()...)
	isLinear := false
	if lm, ok := s.Mdl.(mdl.Linear); ok {
		isLinear = lm.IsLinear()
	}

	origErrType, origTol := s.ErrorType, s.Tol
	s.ErrorType = "relative"
	if s.Tol < 1e-6 {
		s.Tol = 1e-6
	}
	defer func() { s.ErrorType, s.Tol = origErrType, origTol }()

	s.DisableMixedBC()

	if snap, ok := s.Mdl.(mdl.Snapshotter); ok {
		saved := snap.Snapshot()
		defer snap.Restore(saved)
	}

	pertGradient := make([]float64, nStr)
	for i := 0; i < nStr; i++ {
		if isLinear {
			for k := range pertGradient {
				pertGradient[k] = 0
			}
			pertGradient[i] = 1.0
		} else {
			copy(pertGradient, g0)
			pertGradient[i] += pertParam
		}

		s.Mdl.SetGradient(pertGradient)
		if err := Basic(s); err != nil {
			return nil, err
		}
		perturbed, err := s.GetHomogenizedStress()
		if err != nil {
			return nil, err
		}

		for r := 0; r < nStr; r++ {
			if isLinear {
				tangent[r][i] = perturbed[r]
			} else {
				tangent[r][i] = (perturbed[r] - unperturbed[r]) / pertParam
			}
		}
	}

	for r := 0; r < nStr; r++ {
		for c := r + 1; c < nStr; c++ {
			avg := 0.5 * (tangent[r][c] + tangent[c][r])
			tangent[r][c] = avg
			tangent[c][r] = avg
		}
	}
	return tangent, nil
}
