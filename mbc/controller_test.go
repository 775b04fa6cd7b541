// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbc

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// scaleController is a minimal Controller used only to exercise the
// Host/Controller bridge: it scales whatever macroscopic loading the host
// carries by a fixed factor every Update.
type scaleController struct {
	factor float64
	active bool
	step   int
}

func (c *scaleController) Activate(host Host, step int) {
	c.active = true
	c.step = step
}

func (c *scaleController) Update(host Host) {
	g := host.MacroscaleLoading()
	for i := range g {
		g[i] *= c.factor
	}
	host.SetGradient(g)
}

func (c *scaleController) Deactivate() { c.active = false }

func (c *scaleController) IsActive() bool { return c.active }

// fakeHost is a minimal Host for testing the controller in isolation.
type fakeHost struct {
	grad []float64
	step int
}

func (h *fakeHost) SetGradient(g []float64)      { h.grad = g }
func (h *fakeHost) MacroscaleLoading() []float64 { return h.grad }
func (h *fakeHost) Step() int                    { return h.step }

func Test_mbc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mbc01: Controller drives Host through the capability interface")

	host := &fakeHost{grad: []float64{1, 2, 3}}
	ctrl := &scaleController{factor: 2}

	ctrl.Activate(host, 5)
	if !ctrl.IsActive() {
		tst.Errorf("expected controller to be active after Activate")
	}

	ctrl.Update(host)
	chk.Array(tst, "scaled gradient", 1e-15, host.MacroscaleLoading(), []float64{2, 4, 6})

	ctrl.Deactivate()
	if ctrl.IsActive() {
		tst.Errorf("expected controller to be inactive after Deactivate")
	}
}
