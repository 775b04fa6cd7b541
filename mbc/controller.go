// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mbc defines the mixed boundary-condition controller's contract
// (spec §4.7, §9 "Cycle in graph of types"). The controller mutates the
// macroscopic gradient between solves; its internals are opaque to the core.
package mbc

// Host is the narrow capability interface the controller needs from the
// solver it is attached to. Modeling it this way — rather than the
// controller holding a concrete *fem.Solver — breaks the solver<->controller
// reference cycle spec.md §9 flags: the controller depends only on this
// interface, and fem.Solver implements it, instead of the two packages
// importing each other.
type Host interface {
	SetGradient(g []float64)
	MacroscaleLoading() []float64
	Step() int
}

// Controller is the mixed boundary-condition collaborator (spec §4.7): an
// external algorithm that, given the current step and host state, updates
// the macroscopic gradient driving the solve. Its concrete strategy (load
// control, displacement control, a path-following scheme, ...) is out of
// scope for this core; only the bridge is specified here.
type Controller interface {
	// Activate begins controlling host starting at the given step.
	Activate(host Host, step int)
	// Update adjusts host's macroscopic gradient for the current step.
	Update(host Host)
	// Deactivate stops controlling host.
	Deactivate()
	// IsActive reports whether the controller currently controls a host.
	IsActive() bool
}
