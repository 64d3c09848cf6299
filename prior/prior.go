// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prior provides prior distributions over the parameters of
// a psychometric function.
package prior // import "github.com/aclements/go-psignifit/prior"

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrSyntax is returned by Parse for a malformed prior description.
var ErrSyntax = errors.New("invalid prior")

// A Prior is a (possibly improper) density over one parameter.
type Prior interface {
	// PDF returns the density at x.
	PDF(x float64) float64

	// DLogPDF returns the derivative of the log density at x.
	DLogPDF(x float64) float64
}

// Flat is the improper uniform prior over the whole real line.
type Flat struct{}

func (Flat) PDF(x float64) float64     { return 1 }
func (Flat) DLogPDF(x float64) float64 { return 0 }
func (Flat) String() string            { return "Flat" }

// Uniform is the uniform density on [Min, Max].
type Uniform struct {
	Min, Max float64
}

func (p Uniform) PDF(x float64) float64 {
	if x < p.Min || x > p.Max {
		return 0
	}
	return 1 / (p.Max - p.Min)
}

func (p Uniform) DLogPDF(x float64) float64 { return 0 }

func (p Uniform) String() string { return fmt.Sprintf("Uniform(%g,%g)", p.Min, p.Max) }

// Gauss is the normal density with mean Mu and standard deviation
// Sigma.
type Gauss struct {
	Mu, Sigma float64
}

func (p Gauss) PDF(x float64) float64 {
	return distuv.Normal{Mu: p.Mu, Sigma: p.Sigma}.Prob(x)
}

func (p Gauss) DLogPDF(x float64) float64 {
	return -(x - p.Mu) / (p.Sigma * p.Sigma)
}

func (p Gauss) String() string { return fmt.Sprintf("Gauss(%g,%g)", p.Mu, p.Sigma) }

// Beta is the beta density on [0, 1]. It is typically used for the
// lapse and guess rates.
type Beta struct {
	Alpha, Beta float64
}

func (p Beta) PDF(x float64) float64 {
	if x < 0 || x > 1 {
		return 0
	}
	return distuv.Beta{Alpha: p.Alpha, Beta: p.Beta}.Prob(x)
}

func (p Beta) DLogPDF(x float64) float64 {
	if x <= 0 || x >= 1 {
		return 0
	}
	return (p.Alpha-1)/x - (p.Beta-1)/(1-x)
}

func (p Beta) String() string { return fmt.Sprintf("Beta(%g,%g)", p.Alpha, p.Beta) }

// Gamma is the gamma density with shape K and scale Theta.
type Gamma struct {
	K, Theta float64
}

func (p Gamma) PDF(x float64) float64 {
	if x < 0 {
		return 0
	}
	return distuv.Gamma{Alpha: p.K, Beta: 1 / p.Theta}.Prob(x)
}

func (p Gamma) DLogPDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return (p.K-1)/x - 1/p.Theta
}

func (p Gamma) String() string { return fmt.Sprintf("Gamma(%g,%g)", p.K, p.Theta) }

// Parse parses a prior written as Name(arg,arg), for example
// "Gauss(0,5)", "Beta(2,20)", "Gamma(1,3)", or "Uniform(0,0.1)". The
// empty string and "Flat" denote the flat prior.
func Parse(s string) (Prior, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "flat") || strings.EqualFold(s, "unconstrained") {
		return Flat{}, nil
	}
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("%w %q", ErrSyntax, s)
	}
	name := s[:open]
	fields := strings.Split(s[open+1:len(s)-1], ",")
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w %q: want 2 arguments", ErrSyntax, s)
	}
	var args [2]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrSyntax, s, err)
		}
		args[i] = v
	}
	a, b := args[0], args[1]
	switch strings.ToLower(name) {
	case "gauss", "gaussian", "normal":
		if !(b > 0) {
			break
		}
		return Gauss{a, b}, nil
	case "beta":
		if !(a > 0 && b > 0) {
			break
		}
		return Beta{a, b}, nil
	case "gamma":
		if !(a > 0 && b > 0) {
			break
		}
		return Gamma{a, b}, nil
	case "uniform":
		if !(b > a) || math.IsInf(b-a, 0) {
			break
		}
		return Uniform{a, b}, nil
	default:
		return nil, fmt.Errorf("%w %q: unknown distribution %q", ErrSyntax, s, name)
	}
	return nil, fmt.Errorf("%w %q: parameters out of range", ErrSyntax, s)
}
