// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psychometric

import (
	"math"

	"github.com/aclements/go-psignifit/trials"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// startLapse is the lapse (and free guess) rate of starting
	// values.
	startLapse = 0.02

	// startGrid is the number of grid points along each of the
	// location and scale axes of the starting value search.
	startGrid = 10
)

// seed returns the parameter vector for the linear latent predictor
// a+b·x with the asymptote parameters at their starting value.
func (m *Model) seed(a, b float64) []float64 {
	prm := m.core.Transform(m.NParams(), a, b)
	prm[2] = startLapse
	if m.freeGamma() {
		prm[3] = startLapse
	}
	return prm
}

// Start returns starting values for fitting m to d.
//
// The posterior of a psychometric function is far from convex, so
// Start combines two heuristics. It first fits a line to the logit of
// the rescaled proportions correct. It then searches a grid of
// locations and scales spanning the intensities of the informative
// blocks of d. Start returns whichever candidate has the lowest
// negative log posterior.
func (m *Model) Start(d *trials.Data) []float64 {
	x := d.Intensities()
	p := d.PCorrects()

	// Squeeze the proportions into (0, 1) and fit a line on the
	// logit scale.
	if minp := floats.Min(p); minp == 0 {
		floats.AddConst(0.0001, p)
	} else {
		floats.AddConst(-0.999*minp, p)
	}
	floats.Scale(1/(1.0001*floats.Max(p)), p)
	for i, pi := range p {
		p[i] = math.Log(pi / (1 - pi))
	}
	a0, b0 := stat.LinearRegression(x, p, nil, false)

	best := m.seed(a0, b0)
	bestPost := m.negLPostOrInf(best, d)
	m.log.V(1).Info("regression start", "a", a0, "b", b0, "params", best, "neglpost", bestPost)

	// Span the grid over the blocks that are off the asymptotes,
	// if there are enough of them.
	relevant := d.NonAsymptotic()
	if len(relevant) < 2 {
		relevant = make([]int, d.NBlocks())
		for i := range relevant {
			relevant[i] = i
		}
	}
	alphamin, alphamax := math.Inf(1), math.Inf(-1)
	pmin, pmax := 1.0, 0.0
	imin, imax := 0, 0
	for _, i := range relevant {
		alphamin = math.Min(alphamin, x[i])
		alphamax = math.Max(alphamax, x[i])
		pc := d.PCorrect(i)
		if pc > pmax {
			pmax, imax = pc, i
		}
		if pc < pmin {
			pmin, imin = pc, i
		}
	}
	betamax := x[imax] - x[imin]
	betamin := 0.01
	if x[imax] < x[imin] {
		betamin = -0.01
	}

	for i := 0; i < startGrid; i++ {
		beta := gridPoint(betamin, betamax, i)
		if beta == 0 {
			continue
		}
		for j := 0; j < startGrid; j++ {
			alpha := gridPoint(alphamin, alphamax, j)
			prm := m.seed(-alpha/beta, 1/beta)
			if post := m.negLPostOrInf(prm, d); post < bestPost {
				best, bestPost = prm, post
			}
		}
	}
	m.log.V(1).Info("grid start", "params", best, "neglpost", bestPost)
	return best
}

// negLPostOrInf is NegLPost, except that it is +Inf for non-finite
// parameters or posteriors, so such candidates never win a
// comparison.
func (m *Model) negLPostOrInf(prm []float64, d *trials.Data) float64 {
	if !finite(prm) {
		return math.Inf(1)
	}
	if l := m.NegLPost(prm, d); !math.IsNaN(l) {
		return l
	}
	return math.Inf(1)
}

// gridPoint returns the i'th of startGrid evenly spaced points from lo
// to hi inclusive.
func gridPoint(lo, hi float64, i int) float64 {
	return lo + float64(i)*(hi-lo)/(startGrid-1)
}
