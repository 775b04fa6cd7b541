// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fem implements the distributed FFT-accelerated voxel homogenization
// solver kernel: residual assembly with ghost-cell exchange, the reference
// Green operator and frequency-domain convolution, error measurement, and
// homogenization post-processing. It is the Go translation of
// original_source/include/solver.h (mfkiwl/FANS), structured the way
// github.com/cpmech/gofem/fem structures its own Main/Domain/Solver trio:
// one struct owning configuration, state, and the operations that mutate it.
package fem

import (
	"time"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gofans/field"
	"github.com/cpmech/gofans/grid"
	"github.com/cpmech/gofans/mbc"
	"github.com/cpmech/gofans/mdl"
	"github.com/cpmech/gofans/mpicomm"
)

// Solver holds all data for one cell-problem solve: the grid and
// decomposition, the field buffers, the material model, the reference Green
// operator, and the per-instance timers spec §9 requires ("Global state"
// note: fft_time and iter live on the solver instance, not as package
// globals).
type Solver struct {
	Grid  *grid.Grid
	Decmp *grid.Decomposition
	Comm  *mpicomm.Comm
	Mdl   mdl.Matmodel
	Ms    []int // phase id per owned voxel, length LocalN0*Ny*Nz

	Fields *field.Store

	NIt          int
	Tol          float64
	ErrorMeasure string // "L1", "L2", "Linfinity"
	ErrorType    string // "absolute", "relative"

	Green *GreenOperator

	ErrAll []float64 // absolute error history indexed by iteration; at most n_it+1 entries

	FFTTime time.Duration
	Iter    int

	mbc       mbc.Controller
	mbcActive bool
	step      int

	showMsg bool
}

// New builds a Solver for the given grid, rank decomposition, material
// model, micro-structure, iteration controls and error parameters.
// InitializeInternalVariables is called on the material model here, mirroring
// solver.h's constructor member-initializer call
// "matmodel->initializeInternalVariables(local_n0*n_y*n_z, 8)".
func New(g *grid.Grid, d *grid.Decomposition, comm *mpicomm.Comm, m mdl.Matmodel, ms []int,
	nIt int, tol float64, errMeasure, errType string, showMsg bool) (*Solver, error) {

	if err := validateErrorParams(errMeasure, errType); err != nil {
		return nil, err
	}
	nVoxels := d.LocalN0 * g.Ny * g.Nz
	if len(ms) != nVoxels {
		return nil, newError(ConfigError, "len(ms)=%d does not match owned voxel count %d", len(ms), nVoxels)
	}

	fs, err := field.New(g, d, m.H())
	if err != nil {
		return nil, newError(AllocationError, "cannot allocate field buffers: %v", err)
	}
	m.InitializeInternalVariables(nVoxels, 8)

	s := &Solver{
		Grid: g, Decmp: d, Comm: comm, Mdl: m, Ms: ms,
		Fields: fs, NIt: nIt, Tol: tol,
		ErrorMeasure: errMeasure, ErrorType: errType,
		showMsg: showMsg,
	}

	s.logf("# Start creating Fundamental Solution(s)\n")
	t0 := time.Now()
	green, err := NewGreenOperator(g, d, m)
	if err != nil {
		return nil, err
	}
	s.Green = green
	s.logf("# Complete; Time for construction of Fundamental Solution(s): %v\n", time.Since(t0))
	return s, nil
}

func validateErrorParams(measure, etype string) error {
	switch measure {
	case "L1", "L2", "Linfinity":
	default:
		return newError(ConfigError, "unknown error measure %q", measure)
	}
	switch etype {
	case "absolute", "relative":
	default:
		return newError(ConfigError, "unknown error type %q", etype)
	}
	return nil
}

// SetGradient forwards to the material model and implements mbc.Host.
func (s *Solver) SetGradient(g []float64) { s.Mdl.SetGradient(g) }

// MacroscaleLoading forwards to the material model and implements mbc.Host.
func (s *Solver) MacroscaleLoading() []float64 { return s.Mdl.MacroscaleLoading() }

// Step implements mbc.Host.
func (s *Solver) Step() int { return s.step }

// SetStep sets the current load/time step index, used both by the Mixed-BC
// hook and by output dataset naming.
func (s *Solver) SetStep(step int) { s.step = step }

func (s *Solver) logf(format string, args ...any) {
	if s.showMsg && s.Comm.Rank() == 0 {
		io.Pf(format, args...)
	}
}
