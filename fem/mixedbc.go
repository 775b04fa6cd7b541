// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gofans/mbc"

// EnableMixedBC attaches controller to this solver and activates it at the
// given step, mirroring solver.h's enableMixedBC.
func (s *Solver) EnableMixedBC(controller mbc.Controller, step int) {
	s.mbc = controller
	s.mbcActive = true
	controller.Activate(s, step)
}

// DisableMixedBC detaches the active controller, mirroring solver.h's
// disableMixedBC. Used before homogenized-tangent probes so the controller's
// load-path logic does not fight the unit/perturbation gradients being
// applied (spec §4.6).
func (s *Solver) DisableMixedBC() {
	if s.mbcActive && s.mbc != nil {
		s.mbc.Deactivate()
	}
	s.mbcActive = false
}

// IsMixedBCActive reports whether a controller currently drives this
// solver's macroscopic gradient.
func (s *Solver) IsMixedBCActive() bool {
	return s.mbcActive
}

// UpdateMixedBC asks the active controller to adjust the macroscopic
// gradient for the current step, mirroring solver.h's updateMixedBC. A no-op
// when no controller is active.
func (s *Solver) UpdateMixedBC() {
	if s.mbcActive && s.mbc != nil {
		s.mbc.Update(s)
	}
}
