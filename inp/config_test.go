// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/cpmech/gofans/grid"
)

func Test_config01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config01: SetDefault fills sane defaults")

	var c Config
	c.SetDefault()
	chk.Strings(tst, "error.measure", []string{c.Error.Measure}, []string{"L2"})
	chk.Strings(tst, "error.type", []string{c.Error.Type}, []string{"absolute"})
	chk.IntAssert(c.NIt, 100)
	chk.Scalar(tst, "tol", 1e-15, c.Tol, 1e-6)
	chk.Scalar(tst, "pertParam", 1e-15, c.PertParam, 1e-6)
	if !c.ShowMessages {
		tst.Errorf("ShowMessages should default to true")
	}
}

func Test_config02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config02: ReadConfig decodes JSON and keeps defaults for omitted fields")

	dir := tst.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
		"nx": 4, "ny": 4, "nz": 4,
		"dx": 1, "dy": 1, "dz": 1,
		"material": "diffusion",
		"ref_k": 1,
		"phase_k": [1, 2],
		"microstructure": [0, 1, 0, 1],
		"resultsToWrite": ["stress_average"]
	}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		tst.Errorf("WriteFile failed: %v", err)
		return
	}

	c, err := ReadConfig(path)
	if err != nil {
		tst.Errorf("ReadConfig failed: %v", err)
		return
	}
	chk.IntAssert(c.Nx, 4)
	chk.Strings(tst, "material", []string{c.Material}, []string{"diffusion"})
	chk.Ints(tst, "microstructure", c.Microstructure, []int{0, 1, 0, 1})
	// fields not present in the JSON keep SetDefault's values.
	chk.IntAssert(c.NIt, 100)
	chk.Strings(tst, "resultsToWrite", c.ResultsToWrite, []string{"stress_average"})
}

func Test_config03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config03: GenerateMicrostructure evaluates a constant function at every voxel")

	var c Config
	c.MicrostructureFunc = &FuncSpec{
		Type: "cte",
		Prms: dbf.Params{&dbf.P{N: "c", V: 1}},
	}
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
	ms, err := c.GenerateMicrostructure(g, d)
	if err != nil {
		tst.Errorf("GenerateMicrostructure failed: %v", err)
		return
	}
	chk.IntAssert(len(ms), d.LocalN0*g.Ny*g.Nz)
	for _, phase := range ms {
		chk.IntAssert(phase, 1)
	}

	var empty Config
	if _, err := empty.GenerateMicrostructure(g, d); err == nil {
		tst.Errorf("expected error when microstructure_func is unset")
	}
}
