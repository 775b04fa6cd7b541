// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gofans loads a JSON configuration, builds a fem.Solver, runs the
// basic fixed-point scheme to convergence, and reports the homogenized
// stress (and, if requested, tangent) from rank 0. It mirrors gofem's own
// root-level main.go's mpi.Start/recover/mpi.Stop envelope, with flag
// parsing replaced by github.com/urfave/cli, grounded on xtaci-kcptun's
// client/main.go cli.NewApp()/cli.Flag/Action structure.
package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/gofans/algo"
	"github.com/cpmech/gofans/fem"
	"github.com/cpmech/gofans/grid"
	"github.com/cpmech/gofans/inp"
	"github.com/cpmech/gofans/mdl"
	"github.com/cpmech/gofans/mdl/diffusion"
	"github.com/cpmech/gofans/mdl/solid"
	"github.com/cpmech/gofans/mpicomm"
	"github.com/cpmech/gofans/out"
)

// VERSION is injected by buildflags, matching kcptun's convention.
var VERSION = "SELFBUILD"

func main() {
	mpi.Start(false)
	exitCode := 0
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				io.PfRed("ERROR: %v\n", err)
			}
			exitCode = 1
		}
		mpi.Stop(false)
		os.Exit(exitCode)
	}()

	app := cli.NewApp()
	app.Name = "gofans"
	app.Usage = "FFT-accelerated voxel homogenization solver"
	app.Version = VERSION
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "config.json",
			Usage: "path to the JSON solver configuration",
		},
		cli.IntFlag{
			Name:  "load-idx",
			Value: 0,
			Usage: "load-step index, used only for result dataset naming",
		},
		cli.IntFlag{
			Name:  "time-idx",
			Value: 0,
			Usage: "time-step index, used only for result dataset naming",
		},
	}
	app.Action = func(c *cli.Context) error {
		return run(c.String("config"), c.Int("load-idx"), c.Int("time-idx"))
	}
	if err := app.Run(os.Args); err != nil {
		if mpi.Rank() == 0 {
			io.PfRed("ERROR: %v\n", err)
		}
		exitCode = 1
	}
}

func run(configPath string, loadIdx, timeIdx int) error {
	cfg, err := inp.ReadConfig(configPath)
	if err != nil {
		return err
	}

	g, err := grid.New(cfg.Nx, cfg.Ny, cfg.Nz, cfg.Dx, cfg.Dy, cfg.Dz)
	if err != nil {
		return err
	}
	rank, nranks := mpi.Rank(), mpi.Size()
	if !mpi.IsOn() {
		rank, nranks = 0, 1
	}
	d, err := grid.NewStriped(g, rank, nranks)
	if err != nil {
		return err
	}

	m, err := buildModel(cfg, g)
	if err != nil {
		return err
	}
	if len(cfg.MacroscaleLoading) > 0 {
		m.SetGradient(cfg.MacroscaleLoading)
	}

	var ms []int
	if cfg.MicrostructureFunc != nil {
		ms, err = cfg.GenerateMicrostructure(g, d)
		if err != nil {
			return err
		}
	} else {
		nVoxelsLocal := d.LocalN0 * g.Ny * g.Nz
		start := d.LocalN0Start * g.Ny * g.Nz
		if start+nVoxelsLocal > len(cfg.Microstructure) {
			return chk.Err("config microstructure array (len=%d) too short for rank %d's owned range [%d,%d)",
				len(cfg.Microstructure), rank, start, start+nVoxelsLocal)
		}
		ms = cfg.Microstructure[start : start+nVoxelsLocal]
	}

	comm := mpicomm.World()
	s, err := fem.New(g, d, comm, m, ms, cfg.NIt, cfg.Tol, cfg.Error.Measure, cfg.Error.Type, cfg.ShowMessages)
	if err != nil {
		return err
	}

	if err := algo.Basic(s); err != nil {
		return err
	}

	stress, err := s.GetHomogenizedStress()
	if err != nil {
		return err
	}
	if rank == 0 {
		io.Pf("# Homogenized stress: %v\n", stress)
	}

	writer := out.NewMemWriter()
	sel := out.NewSelection(cfg.ResultsToWrite)
	if err := s.Postprocess(writer, sel, cfg.MsDatasetName, cfg.ResultsPrefix, cfg.NMat, loadIdx, timeIdx); err != nil {
		return err
	}

	if sel.Wants(out.HomogenizedTangent) || cfg.ComputeTangent {
		tangent, err := algo.HomogenizedTangent(s, cfg.PertParam)
		if err != nil {
			return err
		}
		if rank == 0 {
			io.Pf("# Homogenized tangent:\n")
			for _, row := range tangent {
				io.Pf("%v\n", row)
			}
		}
		if rank == 0 && sel.Wants(out.HomogenizedTangent) {
			flat := make([]float64, 0, len(tangent)*len(tangent))
			for _, row := range tangent {
				flat = append(flat, row...)
			}
			path := out.Path(cfg.MsDatasetName, cfg.ResultsPrefix, loadIdx, timeIdx, "homogenized_tangent")
			if err := writer.Write(path, flat, []int{len(tangent), len(tangent)}); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildModel constructs the configured material model, mirroring
// solver.h's Matmodel<howmany>* selection at the call site (a compile-time
// template parameter there; a runtime string switch here since Go has no
// equivalent template instantiation and the model type is a configuration
// choice, not a build-time one).
func buildModel(cfg *inp.Config, g *grid.Grid) (mdl.Matmodel, error) {
	switch cfg.Material {
	case "", "solid":
		return solid.New(g.Dx, g.Dy, g.Dz, cfg.RefE, cfg.RefNu, cfg.PhaseE, cfg.PhaseNu)
	case "diffusion":
		return diffusion.New(g.Dx, g.Dy, g.Dz, cfg.RefK, cfg.PhaseK)
	default:
		return nil, chk.Err("unknown material model %q (expected \"solid\" or \"diffusion\")", cfg.Material)
	}
}
