// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"
	"math"

	"github.com/aclements/go-psignifit/trials"
	"gonum.org/v1/gonum/stat"
)

// Log is the core a·log(x)+b. Intensities must be non-negative; an
// intensity of 0 is mapped through a large negative stand-in for
// log(0).
type Log struct {
	// scale converts the slope of a linear fit on the intensity
	// scale into a slope on the log scale. It is the mean of
	// x/log(x) over the intensities other than 1 of the data the
	// core was constructed from.
	scale float64
}

// NewLog returns a logarithmic core whose starting value transform is
// calibrated to the intensities in d.
func NewLog(d *trials.Data) (Log, error) {
	if err := checkIntensities(d); err != nil {
		return Log{}, err
	}
	// x/log(x) has a pole at x = 1.
	var r []float64
	for i := 0; i < d.NBlocks(); i++ {
		x := d.Intensity(i)
		if v := x / math.Log(x); !math.IsInf(v, 0) && !math.IsNaN(v) {
			r = append(r, v)
		}
	}
	if len(r) == 0 {
		return Log{}, fmt.Errorf("%w: no intensity calibrates a logarithmic core", ErrBadArgument)
	}
	return Log{scale: stat.Mean(r, nil)}, nil
}

// checkIntensities verifies that d can calibrate a logarithmic core.
func checkIntensities(d *trials.Data) error {
	if d.NBlocks() < 2 {
		return fmt.Errorf("%w: need at least 2 blocks, have %d", ErrBadArgument, d.NBlocks())
	}
	for i := 0; i < d.NBlocks(); i++ {
		if x := d.Intensity(i); x < 0 {
			return fmt.Errorf("%w: block %d has negative intensity %v", ErrBadArgument, i, x)
		}
	}
	return nil
}

func (Log) G(x float64, prm []float64) float64 {
	return prm[0]*safeLog(x) + prm[1]
}

func (Log) DG(x float64, prm []float64, i int) float64 {
	switch i {
	case 0:
		return safeLog(x)
	case 1:
		return 1
	}
	return 0
}

func (Log) DDG(x float64, prm []float64, i, j int) float64 {
	// G is linear in both parameters.
	return 0
}

func (Log) Inverse(y float64, prm []float64) float64 {
	return math.Exp((y - prm[1]) / prm[0])
}

func (Log) DInverse(y float64, prm []float64, i int) float64 {
	a, b := prm[0], prm[1]
	switch i {
	case 0:
		return math.Exp((y-b)/a) * (b - y) / (a * a)
	case 1:
		return -math.Exp((y-b)/a) / a
	}
	return 0
}

func (c Log) Transform(nprm int, a, b float64) []float64 {
	out := make([]float64, nprm)
	out[0] = b * c.scale
	out[1] = a
	return out
}
