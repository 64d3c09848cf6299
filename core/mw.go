// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"
	"math"

	"github.com/aclements/go-psignifit/sigmoid"
	"gonum.org/v1/gonum/stat/distuv"
)

// MW is the midpoint-width core
//
//	zalpha·(x-m)/w + zshift
//
// where m is the intensity at which the sigmoid reaches its midpoint
// and w is the width of the interval over which the sigmoid rises
// from Alpha to 1-Alpha. zalpha and zshift depend on the sigmoid
// family and are derived by NewMW.
type MW struct {
	// Family is the sigmoid family this core is scaled for.
	Family sigmoid.Family

	// Alpha is the criterion defining the width.
	Alpha float64

	zalpha, zshift float64
}

// NewMW returns the midpoint-width core for sigmoid family fam and
// width criterion alpha in (0, 1).
func NewMW(fam sigmoid.Family, alpha float64) (MW, error) {
	if !(alpha > 0 && alpha < 1) {
		return MW{}, fmt.Errorf("%w: width criterion %v outside (0, 1)", ErrBadArgument, alpha)
	}
	c := MW{Family: fam, Alpha: alpha}
	switch fam {
	case sigmoid.LogisticFamily:
		c.zalpha = 2 * math.Log(1/alpha-1)
	case sigmoid.GaussFamily:
		c.zalpha = distuv.UnitNormal.Quantile(1-alpha) - distuv.UnitNormal.Quantile(alpha)
	case sigmoid.GumbelFamily:
		c.zalpha = math.Log(-math.Log(alpha)) - math.Log(-math.Log(1-alpha))
		c.zshift = math.Log(-math.Log(0.5))
	case sigmoid.CauchyFamily:
		c.zalpha = -2 * math.Tan(math.Pi*(alpha-0.5))
	default:
		return MW{}, fmt.Errorf("%w: midpoint-width core for sigmoid %v", ErrNotImplemented, fam)
	}
	if c.zalpha == 0 {
		return MW{}, fmt.Errorf("%w: width criterion %v spans no width", ErrBadArgument, alpha)
	}
	return c, nil
}

func (c MW) G(x float64, prm []float64) float64 {
	return c.zalpha*(x-prm[0])/prm[1] + c.zshift
}

func (c MW) DG(x float64, prm []float64, i int) float64 {
	switch i {
	case 0:
		return -c.zalpha / prm[1]
	case 1:
		return -c.zalpha * (x - prm[0]) / (prm[1] * prm[1])
	}
	return 0
}

func (c MW) DDG(x float64, prm []float64, i, j int) float64 {
	w := prm[1]
	switch {
	case i == 1 && j == 1:
		return 2 * c.zalpha * (x - prm[0]) / (w * w * w)
	case i == 0 && j == 1, i == 1 && j == 0:
		return c.zalpha / (w * w)
	}
	return 0
}

func (c MW) Inverse(y float64, prm []float64) float64 {
	return prm[0] + prm[1]*(y-c.zshift)/c.zalpha
}

func (c MW) DInverse(y float64, prm []float64, i int) float64 {
	switch i {
	case 0:
		return 1
	case 1:
		return (y - c.zshift) / c.zalpha
	}
	return 0
}

func (c MW) Transform(nprm int, a, b float64) []float64 {
	out := make([]float64, nprm)
	out[1] = c.zalpha / b
	out[0] = out[1] * (c.zshift - a) / c.zalpha
	return out
}
