// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diffusion implements a reference isotropic-conductivity material
// model for scalar (H=1) homogenization problems, mirroring the structure of
// github.com/cpmech/gofem/mdl/diffusion's M1 conductivity model: a handful of
// scalar parameters plus a Kcte-style tensor, but specialized to the
// trilinear voxel element this solver assembles over.
package diffusion

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gofans/mdl"
)

// Model is an isotropic conductivity material with one scalar conductivity
// per phase, plus a reference (comparison) conductivity used to build the
// Green operator. It implements mdl.Matmodel, mdl.Linear and
// mdl.Snapshotter.
type Model struct {
	Dx, Dy, Dz float64   // voxel dimensions
	PhaseK     []float64 // isotropic conductivity per phase
	RefK       float64   // reference medium conductivity

	grad []float64 // macroscopic gradient, length 3

	ke0    [][]float64         // cached reference 8x8 stiffness
	kePhs  map[int][][]float64 // cached per-phase 8x8 stiffness
}

// New builds a conductivity model. refK is the reference medium's
// conductivity; phaseK[p] is phase p's isotropic conductivity.
func New(dx, dy, dz, refK float64, phaseK []float64) (*Model, error) {
	if refK <= 0 {
		return nil, chk.Err("diffusion.New: reference conductivity must be positive, got %v", refK)
	}
	for p, k := range phaseK {
		if k <= 0 {
			return nil, chk.Err("diffusion.New: phase %d conductivity must be positive, got %v", p, k)
		}
	}
	return &Model{
		Dx: dx, Dy: dy, Dz: dz,
		PhaseK: phaseK, RefK: refK,
		grad:  make([]float64, 3),
		kePhs: make(map[int][][]float64),
	}, nil
}

// conductStiffness builds the 8x8 conduction element stiffness for isotropic
// conductivity k, integrating B^T*k*B over the 8 Gauss points — the same
// coef*G[m][i]*Kcte[i][j]*G[n][j] accumulation ele/diffusion/diffusion.go
// performs per integration point, specialized to isotropic Kcte = k*I.
func (o *Model) conductStiffness(k float64) [][]float64 {
	Ke := la.MatAlloc(8, 8)
	for _, gp := range mdl.Hex8GaussPoints {
		_, G, detJ := mdl.Hex8ShapeAndGrad(gp[0], gp[1], gp[2], o.Dx, o.Dy, o.Dz)
		coef := detJ // Gauss weight is 1 for each of the 8 points
		for m := 0; m < 8; m++ {
			for n := 0; n < 8; n++ {
				var sum float64
				for i := 0; i < 3; i++ {
					sum += G[m][i] * G[n][i]
				}
				Ke[m][n] += coef * k * sum
			}
		}
	}
	return Ke
}

// ComputeReferenceElementStiffness implements mdl.Matmodel.
func (o *Model) ComputeReferenceElementStiffness() [][]float64 {
	if o.ke0 == nil {
		o.ke0 = o.conductStiffness(o.RefK)
	}
	return o.ke0
}

// phaseStiffness returns (building and caching on first use) the element
// stiffness for a given phase's own conductivity.
func (o *Model) phaseStiffness(phase int) [][]float64 {
	if ke, ok := o.kePhs[phase]; ok {
		return ke
	}
	ke := o.conductStiffness(o.PhaseK[phase])
	o.kePhs[phase] = ke
	return ke
}

// macroForcing returns the 8-vector B^T*k*grad contribution integrated over
// the Gauss points for the given phase's conductivity and the current
// macroscopic gradient: the element residual of the macro-strain part of the
// total gradient, which ElementResidual must add to the fluctuation-only
// K*ue term for the fixed-point iteration to respond to loading at all.
func (o *Model) macroForcing(phase int) []float64 {
	k := o.PhaseK[phase]
	f := make([]float64, 8)
	for _, gp := range mdl.Hex8GaussPoints {
		_, G, detJ := mdl.Hex8ShapeAndGrad(gp[0], gp[1], gp[2], o.Dx, o.Dy, o.Dz)
		for m := 0; m < 8; m++ {
			var sum float64
			for i := 0; i < 3; i++ {
				sum += G[m][i] * o.grad[i]
			}
			f[m] += detJ * k * sum
		}
	}
	return f
}

// ElementResidual implements mdl.Matmodel: r_e = Ke_phase*ue + macroForcing,
// the divergence of C_phase:(macro_grad + grad(fluctuation)) integrated over
// the element, consistent with GetStrainStress's total-gradient convention.
func (o *Model) ElementResidual(ue []float64, phase, voxel int) []float64 {
	ke := o.phaseStiffness(phase)
	re := o.macroForcing(phase)
	for m := 0; m < 8; m++ {
		var sum float64
		for n := 0; n < 8; n++ {
			sum += ke[m][n] * ue[n]
		}
		re[m] += sum
	}
	return re
}

// GetStrainStress implements mdl.Matmodel: strain is the Gauss-point-averaged
// total gradient (macroscopic + fluctuation), stress is -k*grad (flux).
func (o *Model) GetStrainStress(strainOut, stressOut []float64, ue []float64, phase, voxel int) {
	k := o.PhaseK[phase]
	var gx, gy, gz float64
	for _, gp := range mdl.Hex8GaussPoints {
		_, G, _ := mdl.Hex8ShapeAndGrad(gp[0], gp[1], gp[2], o.Dx, o.Dy, o.Dz)
		for n := 0; n < 8; n++ {
			gx += G[n][0] * ue[n]
			gy += G[n][1] * ue[n]
			gz += G[n][2] * ue[n]
		}
	}
	n := float64(len(mdl.Hex8GaussPoints))
	gx, gy, gz = gx/n+o.grad[0], gy/n+o.grad[1], gz/n+o.grad[2]
	strainOut[0], strainOut[1], strainOut[2] = gx, gy, gz
	stressOut[0], stressOut[1], stressOut[2] = -k*gx, -k*gy, -k*gz
}

// SetGradient implements mdl.Matmodel.
func (o *Model) SetGradient(g []float64) { copy(o.grad, g) }

// MacroscaleLoading implements mdl.Matmodel.
func (o *Model) MacroscaleLoading() []float64 { return o.grad }

// InitializeInternalVariables implements mdl.Matmodel. The reference
// conductivity model is linear and carries no history, so this is a no-op —
// the hook exists because spec §3 requires every Matmodel to expose it.
func (o *Model) InitializeInternalVariables(nVoxels, nGauss int) {}

// UpdateInternalVariables implements mdl.Matmodel; no-op, see above.
func (o *Model) UpdateInternalVariables() {}

// NStr implements mdl.Matmodel: 3 independent gradient/flux components.
func (o *Model) NStr() int { return 3 }

// H implements mdl.Matmodel: 1 DOF per node for scalar conduction.
func (o *Model) H() int { return 1 }

// IsLinear implements mdl.Linear.
func (o *Model) IsLinear() bool { return true }

// Snapshot implements mdl.Snapshotter by copying the macroscopic gradient,
// the only mutable state this linear model carries.
func (o *Model) Snapshot() any {
	g := make([]float64, len(o.grad))
	copy(g, o.grad)
	return g
}

// Restore implements mdl.Snapshotter.
func (o *Model) Restore(snap any) {
	copy(o.grad, snap.([]float64))
}

// GetPrms mirrors mdl/solid's GetPrms convention for reporting model
// parameters via gosl/fun/dbf.
func (o *Model) GetPrms() dbf.Params {
	prms := dbf.Params{&dbf.P{N: "refK", V: o.RefK}}
	for _, k := range o.PhaseK {
		prms = append(prms, &dbf.P{N: "k", V: k})
	}
	return prms
}
