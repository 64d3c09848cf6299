// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psychometric

import (
	"fmt"
	"math"

	"github.com/aclements/go-psignifit/trials"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// A Posterior is a model whose posterior can be maximized. Both
// *Model and *OutlierModel are Posteriors.
type Posterior interface {
	NParams() int
	NegLPost(prm []float64, d *trials.Data) float64
	Deviance(prm []float64, d *trials.Data) float64
	Start(d *trials.Data) []float64
}

var (
	_ Posterior = (*Model)(nil)
	_ Posterior = (*OutlierModel)(nil)
)

// An Estimate is a point estimate of the parameters of a model.
type Estimate struct {
	// Params is the estimated parameter vector.
	Params []float64

	// NegLPost is the negative log posterior at Params.
	NegLPost float64

	// Deviance is the deviance at Params.
	Deviance float64

	// Evaluations is the number of posterior evaluations the
	// optimizer performed.
	Evaluations int
}

// MAPEstimate returns the maximum a posteriori estimate of the
// parameters of m given d, starting the search at start. If start is
// nil, MAPEstimate uses m.Start(d). It is an error for start, or the
// optimum found, to have non-finite elements.
//
// The search uses the Nelder-Mead simplex method, which copes with
// the penalty cliffs of the posterior at the boundary of the valid
// parameter region.
func MAPEstimate(m Posterior, d *trials.Data, start []float64) (*Estimate, error) {
	if start == nil {
		start = m.Start(d)
	}
	if len(start) != m.NParams() {
		return nil, fmt.Errorf("%w: %d starting values for %d parameters", ErrBadArgument, len(start), m.NParams())
	}
	if !finite(start) {
		return nil, fmt.Errorf("%w: non-finite starting values %v", ErrBadArgument, start)
	}
	problem := optimize.Problem{
		Func: func(prm []float64) float64 { return m.NegLPost(prm, d) },
	}
	res, err := optimize.Minimize(problem, start, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("maximizing posterior: %w", err)
	}
	if !finite(res.X) || math.IsNaN(res.F) {
		return nil, fmt.Errorf("maximizing posterior: reached non-finite parameters %v", res.X)
	}
	return &Estimate{
		Params:      res.X,
		NegLPost:    res.F,
		Deviance:    m.Deviance(res.X, d),
		Evaluations: res.Stats.FuncEvaluations,
	}, nil
}

// finite reports whether every element of xs is finite.
func finite(xs []float64) bool {
	if floats.HasNaN(xs) {
		return false
	}
	for _, x := range xs {
		if math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
