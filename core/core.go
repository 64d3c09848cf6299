// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package core implements the link functions ("cores") of
// psychometric functions. A core maps a stimulus intensity and a
// parameter vector to the latent scale that a sigmoid squashes into a
// probability.
//
// Cores read only prm[0] and prm[1]. They are handed the full
// parameter vector of a model, and the derivative with respect to any
// other parameter is 0.
package core // import "github.com/aclements/go-psignifit/core"

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotImplemented is returned when constructing a core for
	// an unsupported configuration.
	ErrNotImplemented = errors.New("not implemented")

	// ErrBadArgument reports an argument outside a core's domain.
	ErrBadArgument = errors.New("bad argument")
)

// A Core is a monotone link function with analytic derivatives and
// inverse.
type Core interface {
	// G returns the latent value at intensity x.
	G(x float64, prm []float64) float64

	// DG returns ∂G/∂prm[i].
	DG(x float64, prm []float64, i int) float64

	// DDG returns ∂²G/∂prm[i]∂prm[j]. DDG is symmetric in i and j.
	DDG(x float64, prm []float64, i, j int) float64

	// Inverse returns x such that G(x, prm) = y.
	Inverse(y float64, prm []float64) float64

	// DInverse returns ∂Inverse/∂prm[i].
	DInverse(y float64, prm []float64, i int) float64

	// Transform converts the intercept a and slope b of a linear
	// fit a+b·x on the latent scale into a parameter vector of
	// length nprm for this core. Parameters beyond the first two
	// are 0.
	Transform(nprm int, a, b float64) []float64
}

// logZero stands in for log(0) so that an intensity of 0 maps to a
// large finite latent value.
const logZero = -1e10

// safeLog returns log(x) for x > 0 and logZero for x == 0. It panics
// for negative x.
func safeLog(x float64) float64 {
	if x < 0 {
		panic(fmt.Errorf("%w: negative intensity %v", ErrBadArgument, x))
	}
	if x == 0 {
		return logZero
	}
	return math.Log(x)
}

// Linear is the core (x-a)/b, where a is the location and b the
// scale of the psychometric function.
type Linear struct{}

func (Linear) G(x float64, prm []float64) float64 {
	return (x - prm[0]) / prm[1]
}

func (Linear) DG(x float64, prm []float64, i int) float64 {
	switch i {
	case 0:
		return -1 / prm[1]
	case 1:
		return -(x - prm[0]) / (prm[1] * prm[1])
	}
	return 0
}

func (Linear) DDG(x float64, prm []float64, i, j int) float64 {
	b := prm[1]
	switch {
	case i == 1 && j == 1:
		return 2 * (x - prm[0]) / (b * b * b)
	case i == 0 && j == 1, i == 1 && j == 0:
		return 1 / (b * b)
	}
	return 0
}

func (Linear) Inverse(y float64, prm []float64) float64 {
	return y*prm[1] + prm[0]
}

func (Linear) DInverse(y float64, prm []float64, i int) float64 {
	switch i {
	case 0:
		return 1
	case 1:
		return y
	}
	return 0
}

func (Linear) Transform(nprm int, a, b float64) []float64 {
	out := make([]float64, nprm)
	out[1] = 1 / b
	out[0] = -a / b
	return out
}
