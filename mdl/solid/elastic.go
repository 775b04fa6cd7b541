// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solid implements a reference isotropic linear-elasticity material
// model for mechanics (H=3) homogenization problems, reusing the Mandel
// isotropic stiffness formula from github.com/cpmech/gofem/mdl/solid's
// SmallElasticity.CalcD (D = K*Im⊗Im + 2*G*Psd) specialized to the trilinear
// voxel element, and elasticity.go's (E,nu)->(K,G) converters.
package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/tsr"

	"github.com/cpmech/gofans/mdl"
)

const sqrt2 = 1.4142135623730951

// Model is isotropic linear elasticity with one (E,ν) pair per phase, plus a
// reference (comparison) medium used to build the Green operator.
// Implements mdl.Matmodel, mdl.Linear and mdl.Snapshotter.
type Model struct {
	Dx, Dy, Dz float64
	PhaseE     []float64 // Young's modulus per phase
	PhaseNu    []float64 // Poisson ratio per phase
	RefE       float64
	RefNu      float64

	grad []float64 // macroscopic strain, Mandel notation, length 6

	ke0   [][]float64
	kePhs map[int][][]float64
	dPhs  map[int][][]float64
}

// New builds an isotropic elasticity model.
func New(dx, dy, dz, refE, refNu float64, phaseE, phaseNu []float64) (*Model, error) {
	if len(phaseE) != len(phaseNu) {
		return nil, chk.Err("solid.New: phaseE and phaseNu must have the same length")
	}
	if refE <= 0 {
		return nil, chk.Err("solid.New: reference Young's modulus must be positive")
	}
	return &Model{
		Dx: dx, Dy: dy, Dz: dz,
		PhaseE: phaseE, PhaseNu: phaseNu,
		RefE: refE, RefNu: refNu,
		grad:  make([]float64, 6),
		kePhs: make(map[int][][]float64),
		dPhs:  make(map[int][][]float64),
	}, nil
}

// mandelD builds the 6x6 isotropic Mandel stiffness matrix for (E,nu),
// identical in form to mdl/solid/elasticity.go:SmallElasticity.CalcD's
// general (non plane-stress) branch.
func mandelD(E, nu float64) [][]float64 {
	K := CalcKFromEnu(E, nu)
	G := CalcGFromEnu(E, nu)
	D := la.MatAlloc(6, 6)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			D[i][j] = K*tsr.Im[i]*tsr.Im[j] + 2*G*tsr.Psd[i][j]
		}
	}
	return D
}

// mandelB builds the 6x24 Mandel strain-displacement matrix at a natural
// point, given the 8 physical shape-function gradients.
func mandelB(G [8][3]float64) [][]float64 {
	B := la.MatAlloc(6, 24)
	for n := 0; n < 8; n++ {
		dx, dy, dz := G[n][0], G[n][1], G[n][2]
		c := n * 3
		B[0][c+0] = dx
		B[1][c+1] = dy
		B[2][c+2] = dz
		B[3][c+0] = dy / sqrt2
		B[3][c+1] = dx / sqrt2
		B[4][c+0] = dz / sqrt2
		B[4][c+2] = dx / sqrt2
		B[5][c+1] = dz / sqrt2
		B[5][c+2] = dy / sqrt2
	}
	return B
}

// stiffness builds the 24x24 (8H x 8H, H=3) element stiffness B^T*D*B
// integrated over the 8 Gauss points, for isotropic (E,nu).
func (o *Model) stiffness(E, nu float64) [][]float64 {
	D := mandelD(E, nu)
	Ke := la.MatAlloc(24, 24)
	for _, gp := range mdl.Hex8GaussPoints {
		_, G, detJ := mdl.Hex8ShapeAndGrad(gp[0], gp[1], gp[2], o.Dx, o.Dy, o.Dz)
		B := mandelB(G)
		// DB = D*B  (6x24)
		DB := la.MatAlloc(6, 24)
		for i := 0; i < 6; i++ {
			for c := 0; c < 24; c++ {
				var sum float64
				for k := 0; k < 6; k++ {
					sum += D[i][k] * B[k][c]
				}
				DB[i][c] = sum
			}
		}
		for r := 0; r < 24; r++ {
			for c := 0; c < 24; c++ {
				var sum float64
				for k := 0; k < 6; k++ {
					sum += B[k][r] * DB[k][c]
				}
				Ke[r][c] += detJ * sum
			}
		}
	}
	return Ke
}

// ComputeReferenceElementStiffness implements mdl.Matmodel.
func (o *Model) ComputeReferenceElementStiffness() [][]float64 {
	if o.ke0 == nil {
		o.ke0 = o.stiffness(o.RefE, o.RefNu)
	}
	return o.ke0
}

func (o *Model) phaseStiffness(phase int) [][]float64 {
	if ke, ok := o.kePhs[phase]; ok {
		return ke
	}
	ke := o.stiffness(o.PhaseE[phase], o.PhaseNu[phase])
	o.kePhs[phase] = ke
	return ke
}

func (o *Model) phaseD(phase int) [][]float64 {
	if d, ok := o.dPhs[phase]; ok {
		return d
	}
	d := mandelD(o.PhaseE[phase], o.PhaseNu[phase])
	o.dPhs[phase] = d
	return d
}

// macroForcing returns the 24-vector B^T*D_phase*grad contribution
// integrated over the Gauss points for the current macroscopic Mandel
// strain: the element residual of the macro-strain part of the total
// strain, which ElementResidual must add to the fluctuation-only K*ue term
// for the fixed-point iteration to respond to loading at all.
func (o *Model) macroForcing(phase int) []float64 {
	D := o.phaseD(phase)
	f := make([]float64, 24)
	for _, gp := range mdl.Hex8GaussPoints {
		_, G, detJ := mdl.Hex8ShapeAndGrad(gp[0], gp[1], gp[2], o.Dx, o.Dy, o.Dz)
		B := mandelB(G)
		var Dg [6]float64
		for i := 0; i < 6; i++ {
			var sum float64
			for j := 0; j < 6; j++ {
				sum += D[i][j] * o.grad[j]
			}
			Dg[i] = sum
		}
		for c := 0; c < 24; c++ {
			var sum float64
			for k := 0; k < 6; k++ {
				sum += B[k][c] * Dg[k]
			}
			f[c] += detJ * sum
		}
	}
	return f
}

// ElementResidual implements mdl.Matmodel: r_e = Ke_phase*ue + macroForcing,
// the divergence of D_phase:(macro_strain + strain(fluctuation)) integrated
// over the element, consistent with GetStrainStress's total-strain
// convention.
func (o *Model) ElementResidual(ue []float64, phase, voxel int) []float64 {
	ke := o.phaseStiffness(phase)
	re := o.macroForcing(phase)
	for m := 0; m < 24; m++ {
		var sum float64
		for n := 0; n < 24; n++ {
			sum += ke[m][n] * ue[n]
		}
		re[m] += sum
	}
	return re
}

// GetStrainStress implements mdl.Matmodel: strain is the Gauss-point-averaged
// total Mandel strain (macroscopic + fluctuation), stress = D:strain.
func (o *Model) GetStrainStress(strainOut, stressOut []float64, ue []float64, phase, voxel int) {
	var avg [6]float64
	for _, gp := range mdl.Hex8GaussPoints {
		_, G, _ := mdl.Hex8ShapeAndGrad(gp[0], gp[1], gp[2], o.Dx, o.Dy, o.Dz)
		B := mandelB(G)
		for i := 0; i < 6; i++ {
			var sum float64
			for c := 0; c < 24; c++ {
				sum += B[i][c] * ue[c]
			}
			avg[i] += sum
		}
	}
	n := float64(len(mdl.Hex8GaussPoints))
	for i := 0; i < 6; i++ {
		strainOut[i] = avg[i]/n + o.grad[i]
	}
	D := o.phaseD(phase)
	for i := 0; i < 6; i++ {
		var sum float64
		for j := 0; j < 6; j++ {
			sum += D[i][j] * strainOut[j]
		}
		stressOut[i] = sum
	}
}

// SetGradient implements mdl.Matmodel.
func (o *Model) SetGradient(g []float64) { copy(o.grad, g) }

// MacroscaleLoading implements mdl.Matmodel.
func (o *Model) MacroscaleLoading() []float64 { return o.grad }

// InitializeInternalVariables implements mdl.Matmodel; no-op for this linear
// elastic reference model (no history to allocate).
func (o *Model) InitializeInternalVariables(nVoxels, nGauss int) {}

// UpdateInternalVariables implements mdl.Matmodel; no-op, see above.
func (o *Model) UpdateInternalVariables() {}

// NStr implements mdl.Matmodel: 6 independent Mandel stress/strain
// components in 3-D.
func (o *Model) NStr() int { return 6 }

// H implements mdl.Matmodel: 3 DOFs per node for mechanics.
func (o *Model) H() int { return 3 }

// IsLinear implements mdl.Linear.
func (o *Model) IsLinear() bool { return true }

// Snapshot implements mdl.Snapshotter.
func (o *Model) Snapshot() any {
	g := make([]float64, len(o.grad))
	copy(g, o.grad)
	return g
}

// Restore implements mdl.Snapshotter.
func (o *Model) Restore(snap any) { copy(o.grad, snap.([]float64)) }

// GetPrms mirrors mdl/solid/elasticity.go:SmallElasticity.GetPrms.
func (o *Model) GetPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "refE", V: o.RefE},
		&dbf.P{N: "refNu", V: o.RefNu},
	}
}
