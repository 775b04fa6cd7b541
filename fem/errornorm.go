// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "math"

// ComputeError is the Error Reducer (spec §4.5): a local L1/L2/Linfinity norm
// of the owned (non-ghost, non-padding) portion of r, reduced across ranks
// with MAX — a deliberately conservative, not algebraically correct,
// reduction carried over from solver.h's compute_error. The absolute value
// is appended to s.ErrAll at index s.Iter; the returned value is absolute or
// relative to s.ErrAll[0] depending on s.ErrorType.
func (s *Solver) ComputeError() (float64, error) {
	fs := s.Fields
	g, d, h := s.Grid, s.Decmp, s.Mdl.H()
	strideZPad := (g.Nz + 2) * h // field.Pad == 2

	var local float64
	switch s.ErrorMeasure {
	case "L1":
		for row := 0; row < d.LocalN0*g.Ny; row++ {
			base := row * strideZPad
			for k := 0; k < g.Nz*h; k++ {
				local += math.Abs(fs.R[base+k])
			}
		}
	case "L2":
		var sumsq float64
		for row := 0; row < d.LocalN0*g.Ny; row++ {
			base := row * strideZPad
			for k := 0; k < g.Nz*h; k++ {
				v := fs.R[base+k]
				sumsq += v * v
			}
		}
		local = math.Sqrt(sumsq)
	case "Linfinity":
		for row := 0; row < d.LocalN0*g.Ny; row++ {
			base := row * strideZPad
			for k := 0; k < g.Nz*h; k++ {
				if v := math.Abs(fs.R[base+k]); v > local {
					local = v
				}
			}
		}
	default:
		return 0, newError(ConfigError, "unknown error measure %q", s.ErrorMeasure)
	}

	errGlobal := s.Comm.AllreduceMax(local)

	for len(s.ErrAll) <= s.Iter {
		s.ErrAll = append(s.ErrAll, 0)
	}
	s.ErrAll[s.Iter] = errGlobal

	if s.ErrorType == "absolute" {
		return errGlobal, nil
	}
	if s.Iter == 0 {
		return 100, nil
	}
	return errGlobal / s.ErrAll[0], nil
}
