// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package out defines the result-writer collaborator (spec §6 "To Reader
// (writer)"): typed datasets, named by the same path convention the
// reference implementation uses, handed to a pluggable Writer. No real HDF5
// binding exists in the retrieved corpus to ground one on, so this package
// provides the interface plus an in-memory reference implementation
// (MemWriter) that is enough to drive and test the homogenization pipeline
// end-to-end; a production build supplies its own Writer backed by a real
// HDF5 library.
package out

import "fmt"

// Writer receives named, typed datasets. Implementations decide how (or
// whether) to persist rank-global vs per-rank "slabbed" datasets; Write is
// called once per rank per dataset for slabbed quantities (microstructure,
// displacement, residual, strain, stress), and only by rank 0 for global
// reductions (stress_average, strain_average, absolute_error,
// homogenized_tangent).
type Writer interface {
	Write(path string, data []float64, dims []int) error
}

// ResultKind enumerates the dataset names spec §6 lists under
// resultsToWrite.
type ResultKind string

const (
	StressAverage           ResultKind = "stress_average"
	StrainAverage           ResultKind = "strain_average"
	PhaseStressAverage      ResultKind = "phase_stress_average"
	PhaseStrainAverage      ResultKind = "phase_strain_average"
	AbsoluteError           ResultKind = "absolute_error"
	Microstructure          ResultKind = "microstructure"
	DisplacementFluctuation ResultKind = "displacement_fluctuation"
	Displacement            ResultKind = "displacement"
	Residual                ResultKind = "residual"
	Strain                  ResultKind = "strain"
	Stress                  ResultKind = "stress"
	HomogenizedTangent      ResultKind = "homogenized_tangent"
)

// Selection is the set of result kinds requested by configuration
// (resultsToWrite).
type Selection map[ResultKind]bool

// Wants reports whether kind was requested.
func (s Selection) Wants(kind ResultKind) bool { return s[kind] }

// NewSelection builds a Selection from the resultsToWrite string list a
// Config decodes from JSON.
func NewSelection(names []string) Selection {
	sel := make(Selection, len(names))
	for _, n := range names {
		sel[ResultKind(n)] = true
	}
	return sel
}

// Path builds the dataset path
// "<dsname>_results/<prefix>/load<L>/time_step<T>/<quantity>", exactly the
// convention spec §6 and solver.h's writeData/writeSlab lambdas use.
func Path(dsname, prefix string, loadIdx, timeIdx int, quantity string) string {
	return fmt.Sprintf("%s_results/%s/load%d/time_step%d/%s", dsname, prefix, loadIdx, timeIdx, quantity)
}

// PhasePath builds a per-phase dataset name, e.g.
// "phase_stress_average_phase3".
func PhasePath(kind ResultKind, phase int) string {
	return fmt.Sprintf("%s_phase%d", kind, phase)
}

// MemWriter is a reference Writer that simply keeps every dataset it is
// given, keyed by path, for tests and for callers that don't need real
// persistence.
type MemWriter struct {
	Data map[string][]float64
	Dims map[string][]int
}

// NewMemWriter returns an empty MemWriter.
func NewMemWriter() *MemWriter {
	return &MemWriter{Data: map[string][]float64{}, Dims: map[string][]int{}}
}

// Write implements Writer.
func (w *MemWriter) Write(path string, data []float64, dims []int) error {
	cp := make([]float64, len(data))
	copy(cp, data)
	w.Data[path] = cp
	w.Dims[path] = dims
	return nil
}
