// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sigmoid implements the squashing functions that map the
// latent scale of a psychometric function to a probability.
package sigmoid // import "github.com/aclements/go-psignifit/sigmoid"

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrUnknown is returned by ByName for an unrecognized sigmoid name.
var ErrUnknown = errors.New("unknown sigmoid")

// A Sigmoid is a monotone function from the real line to (0, 1).
type Sigmoid interface {
	// F returns the value of the sigmoid at z.
	F(z float64) float64

	// DF returns the first derivative of F at z.
	DF(z float64) float64

	// DDF returns the second derivative of F at z.
	DDF(z float64) float64

	// Inverse returns z such that F(z) = p. The value of p must
	// be in (0, 1).
	Inverse(p float64) float64

	// Family returns the family code of this sigmoid.
	Family() Family
}

// Family identifies a sigmoid family. The codes are used by cores
// whose parameterization depends on the shape of the sigmoid.
type Family int

const (
	LogisticFamily Family = 1 + iota
	GaussFamily
	GumbelFamily
	CauchyFamily
)

func (f Family) String() string {
	switch f {
	case LogisticFamily:
		return "logistic"
	case GaussFamily:
		return "gauss"
	case GumbelFamily:
		return "gumbel"
	case CauchyFamily:
		return "cauchy"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ByName returns the sigmoid with the given name.
func ByName(name string) (Sigmoid, error) {
	switch name {
	case "logistic":
		return Logistic{}, nil
	case "gauss", "gaussian":
		return Gauss{}, nil
	case "gumbel", "gumbel_l":
		return Gumbel{}, nil
	case "cauchy":
		return Cauchy{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknown, name)
}

// Logistic is the logistic function 1/(1+exp(-z)).
type Logistic struct{}

func (Logistic) F(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func (s Logistic) DF(z float64) float64 {
	f := s.F(z)
	return f * (1 - f)
}

func (s Logistic) DDF(z float64) float64 {
	f := s.F(z)
	return f * (1 - f) * (1 - 2*f)
}

func (Logistic) Inverse(p float64) float64 {
	return math.Log(p / (1 - p))
}

func (Logistic) Family() Family { return LogisticFamily }

// Gauss is the cumulative distribution function of the standard
// normal distribution.
type Gauss struct{}

func (Gauss) F(z float64) float64 {
	return distuv.UnitNormal.CDF(z)
}

func (Gauss) DF(z float64) float64 {
	return distuv.UnitNormal.Prob(z)
}

func (Gauss) DDF(z float64) float64 {
	return -z * distuv.UnitNormal.Prob(z)
}

func (Gauss) Inverse(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

func (Gauss) Family() Family { return GaussFamily }

// Gumbel is the left-skewed Gumbel (complementary log-log) function
// 1-exp(-exp(z)). Combined with a logarithmic core it yields the
// Weibull psychometric function.
type Gumbel struct{}

func (Gumbel) F(z float64) float64 {
	return -math.Expm1(-math.Exp(z))
}

func (Gumbel) DF(z float64) float64 {
	ez := math.Exp(z)
	return ez * math.Exp(-ez)
}

func (s Gumbel) DDF(z float64) float64 {
	return s.DF(z) * (1 - math.Exp(z))
}

func (Gumbel) Inverse(p float64) float64 {
	return math.Log(-math.Log1p(-p))
}

func (Gumbel) Family() Family { return GumbelFamily }

// Cauchy is the cumulative distribution function of the standard
// Cauchy distribution.
type Cauchy struct{}

func (Cauchy) F(z float64) float64 {
	return math.Atan(z)/math.Pi + 0.5
}

func (Cauchy) DF(z float64) float64 {
	return 1 / (math.Pi * (1 + z*z))
}

func (Cauchy) DDF(z float64) float64 {
	d := 1 + z*z
	return -2 * z / (math.Pi * d * d)
}

func (Cauchy) Inverse(p float64) float64 {
	return math.Tan(math.Pi * (p - 0.5))
}

func (Cauchy) Family() Family { return CauchyFamily }
