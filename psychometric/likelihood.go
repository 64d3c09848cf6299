// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psychometric

import (
	"math"

	"github.com/aclements/go-psignifit/trials"
	"gonum.org/v1/gonum/mat"
)

// blockNegLLikeli returns the negative log likelihood of block b at
// predicted probability p. Log terms of probabilities outside (0, 1)
// are replaced by penalty.
func blockNegLLikeli(b trials.Block, p float64) float64 {
	l := -b.LogNoverK()
	if p > 0 {
		l -= float64(b.NCorrect) * math.Log(p)
	} else {
		l += penalty
	}
	if p < 1 {
		l -= float64(b.NTrials-b.NCorrect) * math.Log(1-p)
	} else {
		l += penalty
	}
	return l
}

// NegLLikeli returns the negative log likelihood of prm given d.
func (m *Model) NegLLikeli(prm []float64, d *trials.Data) float64 {
	var l float64
	for i := 0; i < d.NBlocks(); i++ {
		b := d.Block(i)
		l += blockNegLLikeli(b, m.Evaluate(b.Intensity, prm))
	}
	return l
}

// devianceTerm returns the deviance contribution of a block of n
// trials with observed proportion y and predicted probability p,
// before doubling. It returns false if p leaves the range in which
// the contribution is defined.
func devianceTerm(n int, y, p float64) (float64, bool) {
	var d float64
	if y > 0 {
		if p <= 0 {
			return 0, false
		}
		d += float64(n) * y * math.Log(y/p)
	}
	if y < 1 {
		if p >= 1 {
			return 0, false
		}
		d += float64(n) * (1 - y) * math.Log((1-y)/(1-p))
	}
	return d, true
}

// Deviance returns the deviance of prm given d, that is, twice the
// log likelihood ratio between the saturated model and prm. Each
// block whose predicted probability makes its contribution undefined
// adds penalty instead.
func (m *Model) Deviance(prm []float64, d *trials.Data) float64 {
	var D, bad float64
	for i := 0; i < d.NBlocks(); i++ {
		b := d.Block(i)
		t, ok := devianceTerm(b.NTrials, b.PCorrect(), m.Evaluate(b.Intensity, prm))
		if !ok {
			bad += penalty
			continue
		}
		D += t
	}
	return 2*D + bad
}

// DNegLLikeli returns the gradient of NegLLikeli with respect to prm.
func (m *Model) DNegLLikeli(prm []float64, d *trials.Data) []float64 {
	n := m.NParams()
	out := make([]float64, n)
	dp := make([]float64, n)
	for z := 0; z < d.NBlocks(); z++ {
		b := d.Block(z)
		p := m.grad(b.Intensity, prm, dp)
		r, nz := float64(b.NCorrect), float64(b.NTrials)
		fac1 := r/p - (nz-r)/(1-p)
		for i := range out {
			out[i] -= fac1 * dp[i]
		}
	}
	return out
}

// DDNegLLikeli returns the expected Fisher information of prm given
// the design of d: the Hessian of NegLLikeli with the observed
// correct counts replaced by the counts the model predicts.
func (m *Model) DDNegLLikeli(prm []float64, d *trials.Data) *mat.SymDense {
	n := m.NParams()
	h := make([]float64, n*n)
	dp := make([]float64, n)
	ddp := make([]float64, n*n)
	for z := 0; z < d.NBlocks(); z++ {
		b := d.Block(z)
		p := m.hess(b.Intensity, prm, dp, ddp)
		nz := float64(b.NTrials)
		rz := p * nz
		fac1 := rz/p - (nz-rz)/(1-p)
		fac2 := rz/(p*p) + (nz-rz)/((1-p)*(1-p))
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				h[i*n+j] += fac1*ddp[i*n+j] - fac2*dp[i]*dp[j]
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			h[i*n+j] = h[j*n+i]
		}
	}
	I := mat.NewSymDense(n, h)
	I.ScaleSym(-1, I)
	return I
}

// negLogPrior returns the negative log prior density of the first
// len(m.priors) elements of prm.
func (m *Model) negLogPrior(prm []float64) float64 {
	var l float64
	for i, p := range m.priors {
		if v := p.PDF(prm[i]); v > 0 {
			l -= math.Log(v)
		} else {
			l += penalty
		}
	}
	return l
}

// NegLPost returns the negative log posterior density (up to a
// constant) of prm given d.
func (m *Model) NegLPost(prm []float64, d *trials.Data) float64 {
	return m.NegLLikeli(prm, d) + m.negLogPrior(prm)
}

// DNegLPost returns the gradient of NegLPost with respect to prm.
func (m *Model) DNegLPost(prm []float64, d *trials.Data) []float64 {
	g := m.DNegLLikeli(prm, d)
	for i, p := range m.priors {
		g[i] -= p.DLogPDF(prm[i])
	}
	return g
}

// DLPosteri returns the derivative of the log posterior with respect
// to parameter i, or 0 if the model has no parameter i.
func (m *Model) DLPosteri(prm []float64, d *trials.Data, i int) float64 {
	if i < 0 || i >= m.NParams() {
		return 0
	}
	var l float64
	for z := 0; z < d.NBlocks(); z++ {
		b := d.Block(z)
		p, dp := m.partial(b.Intensity, prm, i)
		r, nz := float64(b.NCorrect), float64(b.NTrials)
		l += (r/p - (nz-r)/(1-p)) * dp
	}
	return l + m.priors[i].DLogPDF(prm[i])
}
