// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gofans/grid"
	"github.com/cpmech/gofans/mdl"
)

// GreenOperator is the reference preconditioner built once at construction
// time from the material model's reference-medium element stiffness
// (Compute_Reference_ElementStiffness in solver.h): the inverse of the
// cell-averaged reference stiffness, one H×H block per owned post-transpose
// frequency triple, packed two frequencies per H+1 columns (lower triangle of
// the even one, upper triangle of the odd one) to exploit H×H symmetry
// (solver.h's fundamentalSolution).
type GreenOperator struct {
	h       int
	localN1 int
	nx, nz  int // Nz here is the full axis length; columns run over Nz/2+1

	// table holds H rows by ((localN1*nx*(nz/2+1))/2)*(H+1) columns, stored
	// row-major as a flat slice: table[row*cols+col].
	table []float64
	cols  int
}

// NewGreenOperator builds the packed reference Green operator for the owned
// post-transpose frequency block. d must carry the post-transpose
// decomposition (LocalN1, LocalN1Start); Ker0 is obtained from
// m.ComputeReferenceElementStiffness().
func NewGreenOperator(g *grid.Grid, d *grid.Decomposition, m mdl.Matmodel) (*GreenOperator, error) {
	h := m.H()
	ker0 := m.ComputeReferenceElementStiffness()
	nzHat := g.NzHat()

	cols := (d.LocalN1 * g.Nx * nzHat) / 2 * (h + 1)
	go_ := &GreenOperator{
		h: h, localN1: d.LocalN1, nx: g.Nx, nz: g.Nz,
		table: make([]float64, h*cols),
		cols:  cols,
	}

	corners := offsetsAsFloat()
	block := la.MatAlloc(h, h)
	inv := la.MatAlloc(h, h)

	for iy := 0; iy < d.LocalN1; iy++ {
		globalIy := d.LocalN1Start + iy
		for ix := 0; ix < g.Nx; ix++ {
			for iz := 0; iz < nzHat; iz++ {
				if ix == 0 && globalIy == 0 && iz == 0 {
					continue // DC mode stays zero
				}
				AA := phaseOuterProduct(corners, ix, globalIy, iz, g.Nx, g.Ny, g.Nz)
				for i := 0; i < h; i++ {
					for j := i; j < h; j++ {
						var sum float64
						for p := 0; p < 8; p++ {
							for q := 0; q < 8; q++ {
								sum += ker0[8*i+p][8*j+q] * AA[p][q]
							}
						}
						block[i][j] = sum
						block[j][i] = sum
					}
				}
				if err := invertSymmetric(block, inv); err != nil {
					return nil, newError(AllocationError, "Green operator: singular reference block at frequency (%d,%d,%d): %v", ix, globalIy, iz, err)
				}

				ind := iy*g.Nx*nzHat + ix*nzHat + iz
				pairBase := (ind / 2) * (h + 1)
				if ind%2 == 0 {
					go_.storeLower(pairBase, inv)
				} else {
					go_.storeUpper(pairBase+1, inv)
				}
			}
		}
	}

	norm := float64(g.Nx * g.Ny * g.Nz)
	for i := range go_.table {
		go_.table[i] /= norm
	}
	return go_, nil
}

// storeLower writes inv's lower triangle (including diagonal) into the block
// of H columns starting at col, row-major.
func (o *GreenOperator) storeLower(col int, inv [][]float64) {
	for i := 0; i < o.h; i++ {
		for j := 0; j <= i; j++ {
			o.table[i*o.cols+col+j] = inv[i][j]
		}
	}
}

// storeUpper writes inv's upper triangle (including diagonal) into the block
// of H columns starting at col, row-major.
func (o *GreenOperator) storeUpper(col int, inv [][]float64) {
	for i := 0; i < o.h; i++ {
		for j := i; j < o.h; j++ {
			o.table[i*o.cols+col+j] = inv[i][j]
		}
	}
}

// Block returns the full symmetric H×H reference operator for frequency
// index ind (= iy*Nx*NzHat + ix*NzHat + iz, in owned post-transpose order),
// reconstructing the missing triangle from symmetry.
func (o *GreenOperator) Block(ind int) [][]float64 {
	pairBase := (ind / 2) * (o.h + 1)
	out := la.MatAlloc(o.h, o.h)
	if ind%2 == 0 {
		col := pairBase
		for i := 0; i < o.h; i++ {
			for j := 0; j <= i; j++ {
				v := o.table[i*o.cols+col+j]
				out[i][j] = v
				out[j][i] = v
			}
		}
	} else {
		col := pairBase + 1
		for i := 0; i < o.h; i++ {
			for j := i; j < o.h; j++ {
				v := o.table[i*o.cols+col+j]
				out[i][j] = v
				out[j][i] = v
			}
		}
	}
	return out
}

// offsetsAsFloat converts the 8 (a,b,c) corner offsets shared with sweep into
// float64 triples for the unit-circle phase products below.
func offsetsAsFloat() [8][3]float64 {
	var out [8][3]float64
	for k, o := range cornerABC {
		out[k] = [3]float64{float64(o[0]), float64(o[1]), float64(o[2])}
	}
	return out
}

// cornerABC mirrors sweep.Offsets()'s (a,b,c) convention; duplicated here
// (rather than imported) to avoid a dependency from fem on sweep's internal
// table, since Green-operator construction runs once at startup and has
// nothing else to do with element sweeping.
var cornerABC = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// phaseOuterProduct builds AA = Re(A)Re(A)^T + Im(A)Im(A)^T for the 8-vector
// of unit-circle phases A[k] = exp(2*pi*i*(a*ix/Nx + b*iy/Ny + c*iz/Nz)),
// exactly solver.h's etax/etay/etaz construction of A(0..7).
func phaseOuterProduct(corners [8][3]float64, ix, iy, iz, nx, ny, nz int) [8][8]float64 {
	var A [8]complex128
	for k, c := range corners {
		theta := 2 * math.Pi * (c[0]*float64(ix)/float64(nx) + c[1]*float64(iy)/float64(ny) + c[2]*float64(iz)/float64(nz))
		A[k] = cmplx.Exp(complex(0, theta))
	}
	var AA [8][8]float64
	for p := 0; p < 8; p++ {
		for q := 0; q < 8; q++ {
			AA[p][q] = real(A[p])*real(A[q]) + imag(A[p])*imag(A[q])
		}
	}
	return AA
}

// invertSymmetric inverts the small dense n×n matrix a into out via
// Gauss-Jordan elimination with partial pivoting. See DESIGN.md for why this
// is hand-rolled rather than routed through gosl/la (no confirmed
// la.MatInv call site in the retrieved corpus).
func invertSymmetric(a [][]float64, out [][]float64) error {
	n := len(a)
	aug := la.MatAlloc(n, 2*n)
	for i := 0; i < n; i++ {
		copy(aug[i][:n], a[i])
		aug[i][n+i] = 1
	}
	for col := 0; col < n; col++ {
		piv := col
		best := math.Abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug[r][col]); v > best {
				piv, best = r, v
			}
		}
		if best < 1e-300 {
			return errSingular
		}
		if piv != col {
			aug[col], aug[piv] = aug[piv], aug[col]
		}
		pivVal := aug[col][col]
		for c := 0; c < 2*n; c++ {
			aug[col][c] /= pivVal
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := aug[r][col]
			if f == 0 {
				continue
			}
			for c := 0; c < 2*n; c++ {
				aug[r][c] -= f * aug[col][c]
			}
		}
	}
	for i := 0; i < n; i++ {
		copy(out[i], aug[i][n:])
	}
	return nil
}

var errSingular = errors.New("reference block is singular")
