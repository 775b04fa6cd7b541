// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/chk"

// Kind classifies a SolverError (spec §7).
type Kind int

const (
	// ConfigError marks an unrecognized configuration string (e.g. an
	// unknown error measure or type). Not retried; the caller must fix the
	// configuration.
	ConfigError Kind = iota
	// AllocationError marks a fatal resource failure: a field buffer that
	// cannot be allocated, a singular reference block while building the
	// Green operator, or a dataset write the Writer rejects.
	AllocationError
	// CollectiveError marks an MPI collective failure. Fatal; every rank
	// either completes an iteration or the program terminates.
	CollectiveError
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case AllocationError:
		return "AllocationError"
	case CollectiveError:
		return "CollectiveError"
	default:
		return "UnknownError"
	}
}

// SolverError wraps a classified, fatal solver error built on
// github.com/cpmech/gosl/chk, the same error-construction idiom
// fem/main.go and inp/sim.go use throughout the teacher.
type SolverError struct {
	Kind Kind
	Err  error
}

func (e *SolverError) Error() string { return e.Kind.String() + ": " + e.Err.Error() }

func (e *SolverError) Unwrap() error { return e.Err }

// newError builds a SolverError with a chk.Err-formatted message.
func newError(kind Kind, format string, args ...any) *SolverError {
	return &SolverError{Kind: kind, Err: chk.Err(format, args...)}
}
