// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package psychometric fits psychometric functions to binomial trial
// data.
//
// A psychometric function gives the probability of a correct response
// at stimulus intensity x as
//
//	p(x) = γ + (1 - γ - λ)·F(g(x; α, β))
//
// where g is a core (package core), F is a sigmoid (package sigmoid),
// γ is the guess rate and λ is the lapse rate. The parameter vector
// of a Model is ordered α, β, λ and, for yes/no tasks in which the
// guess rate is a free parameter, γ.
//
// All evaluation methods are read-only and may be called
// concurrently. SetPrior must not race with evaluation.
package psychometric // import "github.com/aclements/go-psignifit/psychometric"

import (
	"errors"
	"fmt"

	"github.com/aclements/go-psignifit/core"
	"github.com/aclements/go-psignifit/prior"
	"github.com/aclements/go-psignifit/sigmoid"
	"github.com/go-logr/logr"
)

var (
	// ErrBadArgument reports an invalid argument.
	ErrBadArgument = core.ErrBadArgument

	// ErrNotImplemented reports an unsupported operation.
	ErrNotImplemented = core.ErrNotImplemented

	// ErrSingular reports a numerically singular linear system.
	ErrSingular = errors.New("matrix is numerically singular")
)

// penalty replaces log terms that are undefined because a predicted
// probability left (0, 1). It keeps objectives finite and steep
// outside the valid parameter region.
const penalty = 1e10

// A Model is a psychometric function for a task with a fixed number
// of response alternatives.
type Model struct {
	nAFC          int
	gammaIsLambda bool
	core          core.Core
	sigmoid       sigmoid.Sigmoid
	priors        []prior.Prior
	log           logr.Logger
}

// An Option configures a Model.
type Option func(*Model)

// GammaIsLambda ties the guess rate of a yes/no task to the lapse
// rate, so that both asymptotes deviate from 0 and 1 by the same
// amount.
func GammaIsLambda() Option {
	return func(m *Model) { m.gammaIsLambda = true }
}

// WithLogger sets the logger used to trace starting value searches.
func WithLogger(l logr.Logger) Option {
	return func(m *Model) { m.log = l }
}

// New returns the psychometric model for an nAFC-alternative task
// with core c and sigmoid s. An nAFC of 1 denotes a yes/no task. All
// parameters start with a flat prior.
func New(nAFC int, c core.Core, s sigmoid.Sigmoid, opts ...Option) (*Model, error) {
	if nAFC < 1 {
		return nil, fmt.Errorf("%w: %d alternatives", ErrBadArgument, nAFC)
	}
	if c == nil || s == nil {
		return nil, fmt.Errorf("%w: missing core or sigmoid", ErrBadArgument)
	}
	m := &Model{nAFC: nAFC, core: c, sigmoid: s, log: logr.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	if m.gammaIsLambda && nAFC != 1 {
		return nil, fmt.Errorf("%w: guess rate can only be tied to lapse rate in yes/no tasks", ErrBadArgument)
	}
	m.priors = make([]prior.Prior, m.NParams())
	for i := range m.priors {
		m.priors[i] = prior.Flat{}
	}
	return m, nil
}

// NParams returns the number of free parameters.
func (m *Model) NParams() int {
	if m.freeGamma() {
		return 4
	}
	return 3
}

// NAlternatives returns the number of response alternatives.
func (m *Model) NAlternatives() int { return m.nAFC }

// GammaIsLambda reports whether the guess rate is tied to the lapse
// rate.
func (m *Model) GammaIsLambda() bool { return m.gammaIsLambda }

func (m *Model) Core() core.Core          { return m.core }
func (m *Model) Sigmoid() sigmoid.Sigmoid { return m.sigmoid }

// freeGamma reports whether the guess rate is a separate parameter.
func (m *Model) freeGamma() bool {
	return m.nAFC == 1 && !m.gammaIsLambda
}

// SetPrior sets the prior of parameter i. A nil prior is flat.
func (m *Model) SetPrior(i int, p prior.Prior) error {
	if i < 0 || i >= len(m.priors) {
		return fmt.Errorf("%w: trying to set a prior for nonexistent parameter %d of %d", ErrBadArgument, i, len(m.priors))
	}
	if p == nil {
		p = prior.Flat{}
	}
	m.priors[i] = p
	return nil
}

// Prior returns the prior of parameter i.
func (m *Model) Prior(i int) prior.Prior {
	return m.priors[i]
}

// guess returns the guess rate under prm.
func (m *Model) guess(prm []float64) float64 {
	switch {
	case m.nAFC > 1:
		return 1 / float64(m.nAFC)
	case m.gammaIsLambda:
		return prm[2]
	}
	return prm[3]
}

// Evaluate returns the probability of a correct response at
// intensity x. prm must have at least NParams elements. Evaluate does
// not constrain the guess and lapse rates to [0, 1].
func (m *Model) Evaluate(x float64, prm []float64) float64 {
	gamma := m.guess(prm)
	return gamma + (1-gamma-prm[2])*m.sigmoid.F(m.core.G(x, prm))
}

// Threshold returns the intensity at which the sigmoid reaches cut.
func (m *Model) Threshold(cut float64, prm []float64) float64 {
	return m.core.Inverse(m.sigmoid.Inverse(cut), prm)
}

// grad stores ∂p/∂prm[i] in dp[i] for each model parameter and
// returns p, the probability of a correct response at x.
func (m *Model) grad(x float64, prm, dp []float64) float64 {
	z := m.core.G(x, prm)
	f, df := m.sigmoid.F(z), m.sigmoid.DF(z)
	gamma := m.guess(prm)
	scale := 1 - gamma - prm[2]
	for i := 0; i < 2; i++ {
		dp[i] = scale * df * m.core.DG(x, prm, i)
	}
	if m.gammaIsLambda {
		dp[2] = 1 - 2*f
	} else {
		dp[2] = -f
	}
	if m.freeGamma() {
		dp[3] = 1 - f
	}
	return gamma + scale*f
}

// partial returns p, the probability of a correct response at x,
// and ∂p/∂prm[i]. i must be less than NParams.
func (m *Model) partial(x float64, prm []float64, i int) (p, dp float64) {
	z := m.core.G(x, prm)
	f := m.sigmoid.F(z)
	gamma := m.guess(prm)
	scale := 1 - gamma - prm[2]
	switch {
	case i < 2:
		dp = scale * m.sigmoid.DF(z) * m.core.DG(x, prm, i)
	case i == 2 && m.gammaIsLambda:
		dp = 1 - 2*f
	case i == 2:
		dp = -f
	default:
		dp = 1 - f
	}
	return gamma + scale*f, dp
}

// hess is like grad, but additionally stores ∂²p/∂prm[i]∂prm[j] in
// ddp[i*n+j], where n is NParams.
func (m *Model) hess(x float64, prm, dp, ddp []float64) float64 {
	n := m.NParams()
	z := m.core.G(x, prm)
	df, ddf := m.sigmoid.DF(z), m.sigmoid.DDF(z)
	scale := 1 - m.guess(prm) - prm[2]
	p := m.grad(x, prm, dp)

	// ∂scale/∂prm[k] for the asymptote parameters.
	dscale := [2]float64{-1, -1}
	if m.gammaIsLambda {
		dscale[0] = -2
	}

	for i := range ddp[:n*n] {
		ddp[i] = 0
	}
	for i := 0; i < 2; i++ {
		dgi := m.core.DG(x, prm, i)
		for j := 0; j < 2; j++ {
			ddp[i*n+j] = scale * (ddf*dgi*m.core.DG(x, prm, j) + df*m.core.DDG(x, prm, i, j))
		}
		for k := 2; k < n; k++ {
			v := dscale[k-2] * df * dgi
			ddp[i*n+k], ddp[k*n+i] = v, v
		}
	}
	return p
}
