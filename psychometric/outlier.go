// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psychometric

import (
	"fmt"
	"math"

	"github.com/aclements/go-psignifit/core"
	"github.com/aclements/go-psignifit/prior"
	"github.com/aclements/go-psignifit/sigmoid"
	"github.com/aclements/go-psignifit/trials"
	"gonum.org/v1/gonum/mat"
)

// An OutlierModel is a psychometric model in which one block is
// excluded from the psychometric function and instead has its own
// free probability of a correct response. Comparing the fit of an
// OutlierModel with the fit of its base model shows how strongly the
// fit depends on that block.
//
// The parameter vector of an OutlierModel is that of its base model
// followed by the outlier probability.
type OutlierModel struct {
	m    *Model
	jout int
}

// NewOutlier returns the outlier model that isolates block jout of d
// from the psychometric function of an nAFC-alternative task with
// core c and sigmoid s.
func NewOutlier(nAFC int, c core.Core, s sigmoid.Sigmoid, jout int, d *trials.Data, opts ...Option) (*OutlierModel, error) {
	if nAFC != d.NAlternatives() {
		return nil, fmt.Errorf("%w: model has %d alternatives, data has %d", ErrBadArgument, nAFC, d.NAlternatives())
	}
	if jout < 0 || jout >= d.NBlocks() {
		return nil, fmt.Errorf("%w: outlier block %d of %d", ErrBadArgument, jout, d.NBlocks())
	}
	m, err := New(nAFC, c, s, opts...)
	if err != nil {
		return nil, err
	}
	return &OutlierModel{m, jout}, nil
}

// Base returns the model of the non-outlier blocks. Priors set on the
// base model apply to the outlier model.
func (o *OutlierModel) Base() *Model { return o.m }

// Outlier returns the index of the outlier block.
func (o *OutlierModel) Outlier() int { return o.jout }

// NParams returns the number of free parameters, including the
// outlier probability.
func (o *OutlierModel) NParams() int { return o.m.NParams() + 1 }

func (o *OutlierModel) NAlternatives() int { return o.m.nAFC }

// Evaluate returns the probability of a correct response at x
// predicted by the psychometric function of o.
func (o *OutlierModel) Evaluate(x float64, prm []float64) float64 {
	return o.m.Evaluate(x, prm)
}

// SetPrior sets the prior of parameter i of the base model. The
// outlier probability has a uniform prior on [0, 1].
func (o *OutlierModel) SetPrior(i int, p prior.Prior) error {
	return o.m.SetPrior(i, p)
}

// p returns the outlier probability.
func (o *OutlierModel) p(prm []float64) float64 {
	return prm[o.m.NParams()]
}

func (o *OutlierModel) check(d *trials.Data) {
	if d.NAlternatives() != o.m.nAFC {
		panic(fmt.Errorf("%w: model has %d alternatives, data has %d", ErrBadArgument, o.m.nAFC, d.NAlternatives()))
	}
	if o.jout >= d.NBlocks() {
		panic(fmt.Errorf("%w: outlier block %d of %d", ErrBadArgument, o.jout, d.NBlocks()))
	}
}

// NegLLikeli returns the negative log likelihood of prm given d.
// NegLLikeli panics if d has a different number of alternatives than
// o or has no block at the outlier index.
func (o *OutlierModel) NegLLikeli(prm []float64, d *trials.Data) float64 {
	o.check(d)
	l := o.m.NegLLikeli(prm, d.Without(o.jout))

	b, p := d.Block(o.jout), o.p(prm)
	l -= b.LogNoverK()
	// Unlike blockNegLLikeli, empty counts never incur the
	// penalty: the outlier probability may sit exactly at an
	// observed proportion of 0 or 1.
	if k := float64(b.NCorrect); k > 0 {
		if p > 0 {
			l -= k * math.Log(p)
		} else {
			l += penalty
		}
	}
	if k := float64(b.NTrials - b.NCorrect); k > 0 {
		if p < 1 {
			l -= k * math.Log(1-p)
		} else {
			l += penalty
		}
	}
	return l
}

// Deviance returns the deviance of prm given d, using the outlier
// probability for the outlier block.
func (o *OutlierModel) Deviance(prm []float64, d *trials.Data) float64 {
	var D, bad float64
	for i := 0; i < d.NBlocks(); i++ {
		b := d.Block(i)
		p := o.p(prm)
		if i != o.jout {
			p = o.m.Evaluate(b.Intensity, prm)
		}
		t, ok := devianceTerm(b.NTrials, b.PCorrect(), p)
		if !ok {
			bad += penalty
			continue
		}
		D += t
	}
	return 2*D + bad
}

// NegLPost returns the negative log posterior density of prm given d.
// An outlier probability outside [0, 1] adds penalty.
func (o *OutlierModel) NegLPost(prm []float64, d *trials.Data) float64 {
	l := o.NegLLikeli(prm, d) + o.m.negLogPrior(prm)
	if p := o.p(prm); p < 0 || p > 1 {
		l += penalty
	}
	return l
}

// DNegLLikeli returns the gradient of NegLLikeli with respect to prm.
func (o *OutlierModel) DNegLLikeli(prm []float64, d *trials.Data) []float64 {
	o.check(d)
	g := o.m.DNegLLikeli(prm, d.Without(o.jout))
	b, p := d.Block(o.jout), o.p(prm)
	r, n := float64(b.NCorrect), float64(b.NTrials)
	return append(g, -(r/p - (n-r)/(1-p)))
}

// DNegLPost returns the gradient of NegLPost with respect to prm.
func (o *OutlierModel) DNegLPost(prm []float64, d *trials.Data) []float64 {
	g := o.DNegLLikeli(prm, d)
	for i, p := range o.m.priors {
		g[i] -= p.DLogPDF(prm[i])
	}
	return g
}

// DDNegLLikeli returns the expected Fisher information of prm given
// the design of d.
func (o *OutlierModel) DDNegLLikeli(prm []float64, d *trials.Data) *mat.SymDense {
	o.check(d)
	base := o.m.DDNegLLikeli(prm, d.Without(o.jout))
	n := o.NParams()
	I := mat.NewSymDense(n, nil)
	for i := 0; i < n-1; i++ {
		for j := i; j < n-1; j++ {
			I.SetSym(i, j, base.At(i, j))
		}
	}
	p := o.p(prm)
	I.SetSym(n-1, n-1, float64(d.NTrials(o.jout))/(p*(1-p)))
	return I
}

// Start returns starting values for fitting o to d: the starting
// values of the base model on the remaining blocks, followed by the
// observed proportion correct of the outlier block.
func (o *OutlierModel) Start(d *trials.Data) []float64 {
	return append(o.m.Start(d.Without(o.jout)), d.PCorrect(o.jout))
}
