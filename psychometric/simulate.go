// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psychometric

import (
	"fmt"

	"github.com/aclements/go-psignifit/trials"
	"gonum.org/v1/gonum/stat/distuv"
)

// Simulate runs an experiment on a simulated observer whose
// psychometric function is m with parameters prm. It presents ntrials
// trials at each intensity in levels and returns the observed counts.
func (m *Model) Simulate(prm []float64, levels []float64, ntrials int) (*trials.Data, error) {
	if ntrials < 0 {
		return nil, fmt.Errorf("%w: %d trials per block", ErrBadArgument, ntrials)
	}
	n := make([]int, len(levels))
	k := make([]int, len(levels))
	for i, x := range levels {
		p := m.Evaluate(x, prm)
		if !(p >= 0 && p <= 1) {
			return nil, fmt.Errorf("%w: probability %v at intensity %v", ErrBadArgument, p, x)
		}
		n[i] = ntrials
		k[i] = int(distuv.Binomial{N: float64(ntrials), P: p}.Rand())
	}
	return trials.New(levels, n, k, m.nAFC)
}
