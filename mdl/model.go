// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mdl defines what all material models must implement to plug into
// the solver, mirroring the shape of github.com/cpmech/gofem/ele.Element:
// a narrow collaborator interface, with optional capability interfaces for
// features not every model needs.
package mdl

// Matmodel defines what every material model must implement (spec §6
// "From Matmodel").
type Matmodel interface {
	// ComputeReferenceElementStiffness returns the 8H x 8H reference element
	// stiffness Ker0 used to build the Green operator.
	ComputeReferenceElementStiffness() [][]float64

	// ElementResidual returns the 8H-vector element residual for corner
	// relative-displacement vector ue (length 8H), the voxel's phase id, and
	// its flat voxel index.
	ElementResidual(ue []float64, phase, voxel int) []float64

	// GetStrainStress writes the n_str-length strain and stress at a voxel
	// given the (relative-to-corner-0) corner DOF vector ue, its phase id,
	// and its flat voxel index.
	GetStrainStress(strainOut, stressOut []float64, ue []float64, phase, voxel int)

	// SetGradient sets the macroscopic gradient (strain, in Mandel notation,
	// for mechanics; grad(T) for scalar diffusion).
	SetGradient(g []float64)

	// MacroscaleLoading returns the current macroscopic gradient.
	MacroscaleLoading() []float64

	// InitializeInternalVariables allocates storage for nVoxels voxels times
	// nGauss Gauss points (8, one per corner, for the trilinear element).
	InitializeInternalVariables(nVoxels, nGauss int)

	// UpdateInternalVariables commits the internal variables at the end of a
	// converged solve (called once per load step, not per iteration).
	UpdateInternalVariables()

	// NStr returns the number of independent stress/strain components (6 for
	// 3-D mechanics in Mandel notation, 3 for scalar-gradient problems).
	NStr() int

	// H returns the number of DOFs per node (1 scalar, 3 mechanics).
	H() int
}

// Linear is implemented by material models whose response is linear in the
// macroscopic gradient, letting the homogenized tangent be computed from one
// unit-gradient probe per NStr component instead of finite-difference
// perturbation (spec
// §4.6, mirroring solver.h's dynamic_cast<LinearModel<howmany>*>).
type Linear interface {
	IsLinear() bool
}

// Snapshotter is implemented by material models that can save and restore
// their internal-variable state, used by the tangent-probe loop to avoid
// history contamination (spec §4.6 Open Question, resolved per SPEC_FULL.md).
type Snapshotter interface {
	Snapshot() any
	Restore(snap any)
}
