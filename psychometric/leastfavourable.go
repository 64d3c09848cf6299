// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psychometric

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-psignifit/trials"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// solve returns x such that a·x = b. It returns ErrSingular if a is
// singular or too ill-conditioned for the solution to be trusted.
func solve(a mat.Matrix, b []float64) ([]float64, error) {
	var x mat.VecDense
	if err := x.SolveVec(a, mat.NewVecDense(len(b), b)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w (condition number %g)", ErrSingular, float64(cond))
		}
		return nil, err
	}
	return x.RawVector().Data, nil
}

// LeastFavourable returns the projection of the score of prm given d
// onto the least favourable direction for the threshold at cut. The
// least favourable direction is the direction in parameter space,
// under the Fisher metric, along which the threshold is most
// sensitive to the nuisance parameters.
//
// Only threshold targets are supported; other targets return
// ErrNotImplemented. If the Fisher information is singular, or the
// score is undefined because a predicted probability is at 0 or 1,
// LeastFavourable returns 0.
func (m *Model) LeastFavourable(prm []float64, d *trials.Data, cut float64, threshold bool) (float64, error) {
	if !threshold {
		return 0, fmt.Errorf("%w: least favourable direction for non-threshold targets", ErrNotImplemented)
	}
	n := m.NParams()

	y := m.sigmoid.Inverse(cut)
	u := make([]float64, n)
	u[0] = m.core.DInverse(y, prm, 0)
	u[1] = m.core.DInverse(y, prm, 1)

	delta, err := solve(m.DDNegLLikeli(prm, d), u)
	if errors.Is(err, ErrSingular) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	norm := floats.Norm(delta, 2)
	if norm == 0 || math.IsInf(norm, 0) || math.IsNaN(norm) {
		return 0, nil
	}
	floats.Scale(1/norm, delta)

	var l float64
	dp := make([]float64, n)
	for z := 0; z < d.NBlocks(); z++ {
		b := d.Block(z)
		p := m.grad(b.Intensity, prm, dp)
		if !(p > 0 && p < 1) {
			return 0, nil
		}
		r, nz := float64(b.NCorrect), float64(b.NTrials)
		fac1 := r/p - (nz-r)/(1-p)
		l += fac1 * floats.Dot(delta, dp)
	}
	return l, nil
}
