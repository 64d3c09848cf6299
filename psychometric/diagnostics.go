// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psychometric

import (
	"math"

	"github.com/aclements/go-psignifit/trials"
	"gonum.org/v1/gonum/stat"
)

// DevianceResiduals returns the signed deviance residual of each
// block of d under prm. The sign is positive where the observed
// proportion correct exceeds the prediction.
func (m *Model) DevianceResiduals(prm []float64, d *trials.Data) []float64 {
	out := make([]float64, d.NBlocks())
	for i := range out {
		b := d.Block(i)
		y := b.PCorrect()
		p := m.Evaluate(b.Intensity, prm)
		t, ok := devianceTerm(b.NTrials, y, p)
		if !ok {
			t = penalty / 2
		}
		out[i] = math.Sqrt(math.Max(0, 2*t))
		if y <= p {
			out[i] = -out[i]
		}
	}
	return out
}

// Rpd returns the correlation between the deviance residuals and the
// predicted probabilities of the blocks of d. A strong correlation
// indicates a systematic misfit of the shape of the psychometric
// function.
func (m *Model) Rpd(residuals, prm []float64, d *trials.Data) float64 {
	p := make([]float64, d.NBlocks())
	for i := range p {
		p[i] = m.Evaluate(d.Intensity(i), prm)
	}
	return stat.Correlation(residuals, p, nil)
}

// Rkd returns the correlation between the deviance residuals of the
// non-asymptotic blocks of d and their order. A strong correlation
// indicates that performance changed over the course of the
// experiment.
//
// The order is the rank of each block among the non-asymptotic blocks
// rather than its index in d. This matches the statistic reported by
// earlier versions of psignifit.
func (m *Model) Rkd(residuals []float64, d *trials.Data) float64 {
	idx := d.NonAsymptotic()
	r := make([]float64, len(idx))
	k := make([]float64, len(idx))
	for j, i := range idx {
		r[j] = residuals[i]
		k[j] = float64(j)
	}
	return stat.Correlation(r, k, nil)
}
