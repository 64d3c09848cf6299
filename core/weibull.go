// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"math"

	"github.com/aclements/go-psignifit/trials"
	"gonum.org/v1/gonum/stat"
)

var (
	twoOverLog2 = 2 / math.Ln2
	logLog2     = math.Log(math.Ln2)
)

// Weibull is the core
//
//	(2/ln 2)·m·s·(log(x) - log(m)) + log(log(2))
//
// Combined with the Gumbel sigmoid this is the Weibull psychometric
// function with threshold m (the midpoint) and slope s at the
// threshold.
type Weibull struct {
	// loglina and loglinb approximate log(x) ≈ loglina·x + loglinb
	// over the intensities the core was constructed from.
	loglina, loglinb float64
}

// NewWeibull returns a Weibull core whose starting value transform is
// calibrated to the intensities in d.
func NewWeibull(d *trials.Data) (Weibull, error) {
	if err := checkIntensities(d); err != nil {
		return Weibull{}, err
	}
	xs := d.Intensities()
	logxs := make([]float64, len(xs))
	for i, x := range xs {
		logxs[i] = safeLog(x)
	}
	intercept, slope := stat.LinearRegression(xs, logxs, nil, false)
	return Weibull{loglina: slope, loglinb: intercept}, nil
}

func (Weibull) G(x float64, prm []float64) float64 {
	m, s := prm[0], prm[1]
	return twoOverLog2*m*s*(safeLog(x)-math.Log(m)) + logLog2
}

func (Weibull) DG(x float64, prm []float64, i int) float64 {
	m, s := prm[0], prm[1]
	lx := safeLog(x)
	switch i {
	case 0:
		return twoOverLog2 * s * (lx - math.Log(m) - 1)
	case 1:
		return twoOverLog2 * m * (lx - math.Log(m))
	}
	return 0
}

func (Weibull) DDG(x float64, prm []float64, i, j int) float64 {
	m, s := prm[0], prm[1]
	lx := safeLog(x)
	switch {
	case i == 0 && j == 0:
		return -twoOverLog2 * s / m
	case i == 0 && j == 1, i == 1 && j == 0:
		return twoOverLog2 * (lx - math.Log(m) - 1)
	}
	return 0
}

func (Weibull) Inverse(y float64, prm []float64) float64 {
	m, s := prm[0], prm[1]
	return m * math.Exp((y-logLog2)/(twoOverLog2*m*s))
}

func (Weibull) DInverse(y float64, prm []float64, i int) float64 {
	m, s := prm[0], prm[1]
	u := (y - logLog2) / (twoOverLog2 * m * s)
	switch i {
	case 0:
		return math.Exp(u) * (1 - u)
	case 1:
		return -m * math.Exp(u) * u / s
	}
	return 0
}

// Transform maps a linear fit a+b·x through the logarithmic
// approximation of the core's data, so that G(x, Transform(n, a, b))
// equals a+b·x wherever log(x) ≈ loglina·x + loglinb holds exactly.
func (c Weibull) Transform(nprm int, a, b float64) []float64 {
	out := make([]float64, nprm)
	k := b / c.loglina
	out[0] = math.Exp((logLog2 - a + k*c.loglinb) / k)
	out[1] = k / (twoOverLog2 * out[0])
	return out
}
