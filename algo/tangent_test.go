// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"

	"github.com/cpmech/gofans/grid"
	"github.com/cpmech/gofans/mdl/solid"
	"github.com/cpmech/gofans/mpicomm"

	"github.com/cpmech/gofans/fem"
)

func Test_tangent01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangent01: homogeneous conductor's homogenized tangent is -k*I")

	s, err := newHomogeneousSolver(2, 2, 2, 4)
	if err != nil {
		tst.Errorf("newHomogeneousSolver failed: %v", err)
		return
	}
	tangent, err := HomogenizedTangent(s, 1e-6)
	if err != nil {
		tst.Errorf("HomogenizedTangent failed: %v", err)
		return
	}
	chk.IntAssert(len(tangent), 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = -4
			}
			chk.Scalar(tst, "tangent[i][j]", 1e-8, tangent[i][j], want)
		}
	}
}

func Test_tangent02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangent02: probing restores the solver's error settings and mixed-BC state")

	s, err := newHomogeneousSolver(2, 2, 2, 2)
	if err != nil {
		tst.Errorf("newHomogeneousSolver failed: %v", err)
		return
	}
	s.ErrorType = "absolute"
	s.Tol = 1e-3

	if _, err := HomogenizedTangent(s, 1e-6); err != nil {
		tst.Errorf("HomogenizedTangent failed: %v", err)
		return
	}
	chk.Strings(tst, "ErrorType restored", []string{s.ErrorType}, []string{"absolute"})
	chk.Scalar(tst, "Tol restored", 1e-15, s.Tol, 1e-3)
	if s.IsMixedBCActive() {
		tst.Errorf("expected no mixed-BC controller active after probing")
	}
}

func Test_tangent03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangent03: homogeneous elastic body's homogenized tangent equals D and is symmetric")

	g, err := grid.New(2, 2, 2, 1, 1, 1)
	if err != nil {
		tst.Errorf("grid.New failed: %v", err)
		return
	}
	d, err := grid.NewStriped(g, 0, 1)
	if err != nil {
		tst.Errorf("NewStriped failed: %v", err)
		return
	}
	m, err := solid.New(1, 1, 1, 10, 0.25, []float64{10}, []float64{0.25})
	if err != nil {
		tst.Errorf("solid.New failed: %v", err)
		return
	}
	ms := make([]int, d.LocalN0*g.Ny*g.Nz)
	s, err := fem.New(g, d, mpicomm.World(), m, ms, 50, 1e-10, "L2", "absolute", false)
	if err != nil {
		tst.Errorf("fem.New failed: %v", err)
		return
	}
	tangent, err := HomogenizedTangent(s, 1e-6)
	if err != nil {
		tst.Errorf("HomogenizedTangent failed: %v", err)
		return
	}
	chk.IntAssert(len(tangent), 6)

	// reference medium equals the single phase, so the homogenized tangent
	// must equal that phase's own Mandel stiffness exactly (no fluctuation
	// correction is ever needed, mirroring basic01's convergence argument).
	K := solid.CalcKFromEnu(10, 0.25)
	G := solid.CalcGFromEnu(10, 0.25)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			chk.Scalar(tst, "symmetric", 1e-8, tangent[i][j], tangent[j][i])
		}
	}
	// axial-axial entries: K + 4G/3 on the diagonal, K - 2G/3 off-diagonal.
	chk.Scalar(tst, "tangent[0][0]", 1e-6, tangent[0][0], K+4.0*G/3.0)
	chk.Scalar(tst, "tangent[0][1]", 1e-6, tangent[0][1], K-2.0*G/3.0)
	// shear block is decoupled and diagonal: 2G.
	chk.Scalar(tst, "tangent[3][3]", 1e-6, tangent[3][3], 2.0*G)
	// PSD diagonal: every normal-stiffness entry is positive for a stable material.
	for i := 0; i < 6; i++ {
		if tangent[i][i] <= 0 {
			tst.Errorf("tangent[%d][%d]=%v expected positive (PSD diagonal)", i, i, tangent[i][i])
		}
	}
}

// Test_tangent04 cross-checks HomogenizedTangent's hand-rolled forward
// difference against gosl/num.DerivFwd, the same derivfcn driver.go's
// CheckD verification branch uses to check an analytic D against a
// numerical one. It is kept to this one-off check rather than wired into
// HomogenizedTangent's own loop: DerivFwd's closure is scalar-in/scalar-out
// with no caller-controlled step, so reusing it per (row,column) probe would
// both drop the config-level tangent_pert_param step-size control and run
// the (possibly expensive, nonlinear, state-mutating) solve twice per pair
// instead of once per column. See DESIGN.md.
func Test_tangent04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangent04: num.DerivFwd agrees with the homogeneous conductor's analytic tangent")

	k := 5.0
	probe := func(x float64, args ...interface{}) float64 {
		s, err := newHomogeneousSolver(2, 2, 2, k)
		if err != nil {
			chk.Panic("newHomogeneousSolver failed: %v", err)
		}
		s.SetGradient([]float64{x, 0, 0})
		if err := Basic(s); err != nil {
			chk.Panic("Basic failed: %v", err)
		}
		stress, err := s.GetHomogenizedStress()
		if err != nil {
			chk.Panic("GetHomogenizedStress failed: %v", err)
		}
		return stress[0]
	}
	dnum := num.DerivFwd(probe, 0.2)
	// stress[0](x) = -k*x is exactly affine, so any finite-difference step
	// recovers the slope with no truncation error, regardless of h.
	chk.Scalar(tst, "d(stress[0])/d(grad[0])", 1e-8, dnum, -k)
}
