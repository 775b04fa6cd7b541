// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp implements the solver's input data, read from a JSON
// configuration file — the same encoding/json + struct-tag idiom
// github.com/cpmech/gofem/inp's Simulation/ReadSim uses, narrowed to what
// this solver needs (spec §6 "From Reader"). Full HDF5 micro-structure
// reading is out of scope for the core; Microstructure is populated either
// directly (tests, callers with the array already in memory) or by a
// caller-supplied MicrostructureReader collaborator.
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gofans/grid"
)

// FuncSpec names a gosl/fun function and its parameters, the same
// name+dbf.Params pair inp/func.go's FuncData decodes for load functions.
type FuncSpec struct {
	Type string     `json:"type"`
	Prms dbf.Params `json:"prms"`
}

// ErrorParams holds the error-measurement configuration (spec §4.5).
type ErrorParams struct {
	Measure string `json:"measure"` // "L1", "L2", or "Linfinity"
	Type    string `json:"type"`    // "absolute" or "relative"
}

// Config holds everything the Reader collaborator supplies per spec §6.
type Config struct {
	// grid
	Nx int     `json:"nx"`
	Ny int     `json:"ny"`
	Nz int     `json:"nz"`
	Dx float64 `json:"dx"`
	Dy float64 `json:"dy"`
	Dz float64 `json:"dz"`

	// decomposition inputs (normally derived, but overridable for tests)
	Rank, NRanks int `json:"-"`

	// iteration control
	NIt int     `json:"n_it"`
	Tol float64 `json:"tol"`

	Error ErrorParams `json:"error"`

	// material
	Material string    `json:"material"` // "solid" (H=3) or "diffusion" (H=1)
	NMat     int       `json:"n_mat"`
	RefE     float64   `json:"ref_E"`
	RefNu    float64   `json:"ref_nu"`
	PhaseE   []float64 `json:"phase_E"`
	PhaseNu  []float64 `json:"phase_nu"`
	RefK     float64   `json:"ref_k"`
	PhaseK   []float64 `json:"phase_k"`

	// loading
	MacroscaleLoading []float64 `json:"macroscale_loading"`

	// micro-structure, given inline since no HDF5 binding exists in the
	// corpus to ground a file-backed reader on; a caller with a real
	// MicrostructureReader collaborator may ignore this field entirely.
	Microstructure []int `json:"microstructure"`

	// MicrostructureFunc, when set, generates Microstructure analytically
	// instead of reading it literally: GenerateMicrostructure evaluates it
	// at each voxel centroid via fun.New(Type, Prms).F(0, x), the same
	// function-catalog idiom inp/func.go uses for load functions.
	MicrostructureFunc *FuncSpec `json:"microstructure_func"`

	// homogenized tangent
	ComputeTangent bool    `json:"compute_homogenized_tangent"`
	PertParam      float64 `json:"tangent_pert_param"`

	// output
	ResultsToWrite []string `json:"resultsToWrite"`
	DirOut         string   `json:"dirout"`
	ResultsPrefix  string   `json:"results_prefix"`
	MsDatasetName  string   `json:"ms_datasetname"`

	ShowMessages bool `json:"show_messages"`
}

// SetDefault mirrors inp/sim.go's SetDefault-before-Unmarshal idiom: fill in
// sane defaults, then let JSON fields override them.
func (c *Config) SetDefault() {
	c.Error.Measure = "L2"
	c.Error.Type = "absolute"
	c.NIt = 100
	c.Tol = 1e-6
	c.PertParam = 1e-6
	c.ShowMessages = true
}

// ReadConfig reads and decodes a JSON configuration file, mirroring
// inp/sim.go:ReadSim's read-then-default-then-unmarshal sequence.
func ReadConfig(path string) (*Config, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("ReadConfig: cannot read file %q: %v", path, err)
	}
	var c Config
	c.SetDefault()
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, chk.Err("ReadConfig: cannot unmarshal file %q: %v", path, err)
	}
	return &c, nil
}

// GenerateMicrostructure evaluates MicrostructureFunc at every voxel centroid
// owned by decomposition d and floors the result to a phase id. It is a
// supplementary convenience for analytic test/demo micro-structures (a
// laminate, a checkerboard, an inclusion) that do not warrant a literal
// Microstructure array in the config file; the reference implementation's
// own micro-structures are always read from a file.
func (c *Config) GenerateMicrostructure(g *grid.Grid, d *grid.Decomposition) ([]int, error) {
	if c.MicrostructureFunc == nil {
		return nil, chk.Err("GenerateMicrostructure: microstructure_func is not set")
	}
	fcn, err := fun.New(c.MicrostructureFunc.Type, c.MicrostructureFunc.Prms)
	if err != nil {
		return nil, chk.Err("GenerateMicrostructure: %v", err)
	}
	ms := make([]int, d.LocalN0*g.Ny*g.Nz)
	x := make([]float64, 3)
	for ix := 0; ix < d.LocalN0; ix++ {
		x[0] = (float64(d.LocalN0Start+ix) + 0.5) * g.Dx
		for iy := 0; iy < g.Ny; iy++ {
			x[1] = (float64(iy) + 0.5) * g.Dy
			for iz := 0; iz < g.Nz; iz++ {
				x[2] = (float64(iz) + 0.5) * g.Dz
				phase := int(fcn.F(0, x))
				if phase < 0 {
					phase = 0
				}
				ms[(ix*g.Ny+iy)*g.Nz+iz] = phase
			}
		}
	}
	return ms, nil
}

// MicrostructureReader is the out-of-scope HDF5 micro-structure collaborator
// (spec §1 "treated as external collaborators, only their interfaces
// appear"): it returns one phase id per owned voxel, in (ix,iy,iz) row-major
// order matching sweep.Sweep's indexing.
type MicrostructureReader interface {
	ReadMicrostructure(rank, nranks int) (ms []int, err error)
}
