// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

// PlotConvergence renders the absolute-error-versus-iteration history and
// saves it to dirout/fname, mirroring mdl/conduct/plotting.go's
// Plot(X, Y, args-string)/Gll/SaveD sequence, with the error axis
// log10-transformed since gosl/plt's gofem-vintage API in this fork has no
// log-scale helper to call directly.
func PlotConvergence(errAll []float64, tol float64, dirout, fname string) {
	it := make([]float64, len(errAll))
	logErr := make([]float64, len(errAll))
	for i, e := range errAll {
		it[i] = float64(i)
		if e > 0 {
			logErr[i] = math.Log10(e)
		} else {
			logErr[i] = math.Log10(1e-300)
		}
	}
	plt.Plot(it, logErr, "'b.-', clip_on=0, label='absolute error'")
	if tol > 0 {
		logTol := math.Log10(tol)
		plt.Plot([]float64{it[0], it[len(it)-1]}, []float64{logTol, logTol}, "'r--', clip_on=0, label='tolerance'")
	}
	plt.Gll("iteration", io.Sf("$\\log_{10}(\\mathrm{error})$"), "")
	plt.SaveD(dirout, fname)
}
