// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gofans/field"
	"github.com/cpmech/gofans/out"
	"github.com/cpmech/gofans/sweep"
)

// GetHomogenizedStress is the Homogenization stage's stress primitive (spec
// §4.6), a direct translation of solver.h's get_homogenized_stress:
// ghost-exchange u, sweep every owned element computing its strain/stress
// from the corner relative-displacement vector, sum, reduce across ranks,
// divide by the total voxel count.
func (s *Solver) GetHomogenizedStress() ([]float64, error) {
	fs := s.Fields
	g, d, h, nStr := s.Grid, s.Decmp, s.Mdl.H(), s.Mdl.NStr()

	if err := s.Comm.SendRecvToPrev(fs.FirstSlabU(), fs.GhostSlabU()); err != nil {
		return nil, newError(CollectiveError, "homogenized stress: ghost exchange of u failed: %v", err)
	}

	stressAgg := make([]float64, nStr)
	stressVoxel := make([]float64, nStr)
	strainVoxel := make([]float64, nStr)
	ue := make([]float64, 8*h)
	sweep.Sweep(g, d.LocalN0, 0, func(idx, _ [8]int) {
		for i := 0; i < 8; i++ {
			off := idx[i] * h
			base := idx[0] * h
			for j := 0; j < h; j++ {
				ue[h*i+j] = fs.U[off+j] - fs.U[base+j]
			}
		}
		phase := s.Ms[idx[0]]
		s.Mdl.GetStrainStress(strainVoxel, stressVoxel, ue, phase, idx[0])
		for k := 0; k < nStr; k++ {
			stressAgg[k] += stressVoxel[k]
		}
	})

	s.Comm.AllreduceSum(stressAgg)
	n := float64(g.NVoxels())
	for k := range stressAgg {
		stressAgg[k] /= n
	}
	return stressAgg, nil
}

// Postprocess is the full Homogenization report (spec §4.6), a direct
// translation of solver.h's postprocess: per-voxel strain/stress, global and
// per-phase averages, u_total = g0·x + ũ reconstruction, and conditional
// dataset emission through writer keyed by sel.
func (s *Solver) Postprocess(writer out.Writer, sel out.Selection, dsName, prefix string, nMat, loadIdx, timeIdx int) error {
	fs := s.Fields
	g, d, h, nStr := s.Grid, s.Decmp, s.Mdl.H(), s.Mdl.NStr()
	nVoxelsLocal := d.LocalN0 * g.Ny * g.Nz

	strain := make([]float64, nVoxelsLocal*nStr)
	stress := make([]float64, nVoxelsLocal*nStr)
	stressAvg := make([]float64, nStr)
	strainAvg := make([]float64, nStr)

	phaseStressAvg := make([][]float64, nMat)
	phaseStrainAvg := make([][]float64, nMat)
	phaseCounts := make([]int, nMat)
	for m := 0; m < nMat; m++ {
		phaseStressAvg[m] = make([]float64, nStr)
		phaseStrainAvg[m] = make([]float64, nStr)
	}

	if err := s.Comm.SendRecvToPrev(fs.FirstSlabU(), fs.GhostSlabU()); err != nil {
		return newError(CollectiveError, "postprocess: ghost exchange of u failed: %v", err)
	}

	ue := make([]float64, 8*h)
	sweep.Sweep(g, d.LocalN0, 0, func(idx, _ [8]int) {
		for i := 0; i < 8; i++ {
			off := idx[i] * h
			base := idx[0] * h
			for j := 0; j < h; j++ {
				ue[h*i+j] = fs.U[off+j] - fs.U[base+j]
			}
		}
		phase := s.Ms[idx[0]]
		sBase := idx[0] * nStr
		s.Mdl.GetStrainStress(strain[sBase:sBase+nStr], stress[sBase:sBase+nStr], ue, phase, idx[0])
		for k := 0; k < nStr; k++ {
			stressAvg[k] += stress[sBase+k]
			strainAvg[k] += strain[sBase+k]
			phaseStressAvg[phase][k] += stress[sBase+k]
			phaseStrainAvg[phase][k] += strain[sBase+k]
		}
		phaseCounts[phase]++
	})

	s.Comm.AllreduceSum(stressAvg)
	s.Comm.AllreduceSum(strainAvg)
	n := float64(g.NVoxels())
	for k := 0; k < nStr; k++ {
		stressAvg[k] /= n
		strainAvg[k] /= n
	}

	for m := 0; m < nMat; m++ {
		s.Comm.AllreduceSum(phaseStressAvg[m])
		s.Comm.AllreduceSum(phaseStrainAvg[m])
		s.Comm.AllreduceSumInt(&phaseCounts[m])
		if phaseCounts[m] > 0 {
			c := float64(phaseCounts[m])
			for k := 0; k < nStr; k++ {
				phaseStressAvg[m][k] /= c
				phaseStrainAvg[m][k] /= c
			}
		}
	}

	// u_total = g0·x + ũ, reconstructed node by node (not element by
	// element): spec §4.6, solver.h's single sweep using dx/dy/dz and
	// Lx2/Ly2/Lz2 centered coordinates.
	const rs2 = 0.7071067811865475 // 1/sqrt(2), undoes Mandel scaling of shear terms
	uTotal := make([]float64, nVoxelsLocal*h)
	lx2, ly2, lz2 := g.Lx/2, g.Ly/2, g.Lz/2
	n2 := 0
	for ix := 0; ix < d.LocalN0; ix++ {
		x := float64(d.LocalN0Start+ix)*g.Dx - lx2
		for iy := 0; iy < g.Ny; iy++ {
			y := float64(iy)*g.Dy - ly2
			for iz := 0; iz < g.Nz; iz++ {
				z := float64(iz)*g.Dz - lz2
				b := h * n2
				if h == 3 {
					g11, g22, g33 := strainAvg[0], strainAvg[1], strainAvg[2]
					g12, g13, g23 := strainAvg[3]*rs2, strainAvg[4]*rs2, strainAvg[5]*rs2
					ux := g11*x + g12*y + g13*z
					uy := g12*x + g22*y + g23*z
					uz := g13*x + g23*y + g33*z
					uTotal[b] = fs.U[b] + ux
					uTotal[b+1] = fs.U[b+1] + uy
					uTotal[b+2] = fs.U[b+2] + uz
				} else {
					g1, g2, g3 := strainAvg[0], strainAvg[1], strainAvg[2]
					uTotal[b] = fs.U[b] + (g1*x + g2*y + g3*z)
				}
				n2++
			}
		}
	}

	writeGlobal := func(kind out.ResultKind, quantity string, data []float64, dims []int) error {
		if s.Comm.Rank() != 0 || !sel.Wants(kind) {
			return nil
		}
		return writer.Write(out.Path(dsName, prefix, loadIdx, timeIdx, quantity), data, dims)
	}
	writeSlab := func(kind out.ResultKind, quantity string, data []float64, width int) error {
		if !sel.Wants(kind) {
			return nil
		}
		return writer.Write(out.Path(dsName, prefix, loadIdx, timeIdx, quantity), data, []int{len(data) / width, width})
	}

	if err := writeGlobal(out.StressAverage, "stress_average", stressAvg, []int{nStr}); err != nil {
		return newError(AllocationError, "postprocess: write stress_average failed: %v", err)
	}
	if err := writeGlobal(out.StrainAverage, "strain_average", strainAvg, []int{nStr}); err != nil {
		return newError(AllocationError, "postprocess: write strain_average failed: %v", err)
	}
	for m := 0; m < nMat; m++ {
		if err := writeGlobal(out.PhaseStressAverage, out.PhasePath(out.PhaseStressAverage, m), phaseStressAvg[m], []int{nStr}); err != nil {
			return newError(AllocationError, "postprocess: write phase_stress_average[%d] failed: %v", m, err)
		}
		if err := writeGlobal(out.PhaseStrainAverage, out.PhasePath(out.PhaseStrainAverage, m), phaseStrainAvg[m], []int{nStr}); err != nil {
			return newError(AllocationError, "postprocess: write phase_strain_average[%d] failed: %v", m, err)
		}
	}
	if err := writeGlobal(out.AbsoluteError, "absolute_error", s.ErrAll, []int{len(s.ErrAll)}); err != nil {
		return newError(AllocationError, "postprocess: write absolute_error failed: %v", err)
	}

	msFloat := make([]float64, len(s.Ms))
	for i, v := range s.Ms {
		msFloat[i] = float64(v)
	}
	if err := writeSlab(out.Microstructure, "microstructure", msFloat, 1); err != nil {
		return newError(AllocationError, "postprocess: write microstructure failed: %v", err)
	}
	if err := writeSlab(out.DisplacementFluctuation, "displacement_fluctuation", fs.U[:nVoxelsLocal*h], h); err != nil {
		return newError(AllocationError, "postprocess: write displacement_fluctuation failed: %v", err)
	}
	if err := writeSlab(out.Displacement, "displacement", uTotal, h); err != nil {
		return newError(AllocationError, "postprocess: write displacement failed: %v", err)
	}
	if sel.Wants(out.Residual) {
		strideRPad := (g.Nz + field.Pad) * h
		residual := make([]float64, nVoxelsLocal*h)
		for row := 0; row < d.LocalN0*g.Ny; row++ {
			srcBase := row * strideRPad
			dstBase := row * g.Nz * h
			copy(residual[dstBase:dstBase+g.Nz*h], fs.R[srcBase:srcBase+g.Nz*h])
		}
		if err := writeSlab(out.Residual, "residual", residual, h); err != nil {
			return newError(AllocationError, "postprocess: write residual failed: %v", err)
		}
	}
	if err := writeSlab(out.Strain, "strain", strain, nStr); err != nil {
		return newError(AllocationError, "postprocess: write strain failed: %v", err)
	}
	if err := writeSlab(out.Stress, "stress", stress, nStr); err != nil {
		return newError(AllocationError, "postprocess: write stress failed: %v", err)
	}
	return nil
}
