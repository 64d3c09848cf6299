// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sigmoid

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 1e-6*math.Max(1, math.Abs(expect))
}

var all = []Sigmoid{Logistic{}, Gauss{}, Gumbel{}, Cauchy{}}

func TestDerivatives(t *testing.T) {
	for _, s := range all {
		for _, z := range []float64{-4, -1.5, -0.3, 0, 0.2, 1, 3} {
			df := fd.Derivative(s.F, z, &fd.Settings{Formula: fd.Central})
			if !aeq(df, s.DF(z)) {
				t.Errorf("%v.DF(%v): want %v, got %v", s.Family(), z, df, s.DF(z))
			}
			ddf := fd.Derivative(s.DF, z, &fd.Settings{Formula: fd.Central})
			if !aeq(ddf, s.DDF(z)) {
				t.Errorf("%v.DDF(%v): want %v, got %v", s.Family(), z, ddf, s.DDF(z))
			}
		}
	}
}

func TestInverse(t *testing.T) {
	for _, s := range all {
		for _, p := range []float64{0.01, 0.1, 0.25, 0.5, 0.8, 0.99} {
			if got := s.F(s.Inverse(p)); !aeq(p, got) {
				t.Errorf("%v: F(Inverse(%v)) = %v", s.Family(), p, got)
			}
		}
	}
}

func TestMidpoint(t *testing.T) {
	// The symmetric sigmoids cross 0.5 at 0.
	for _, s := range []Sigmoid{Logistic{}, Gauss{}, Cauchy{}} {
		if got := s.F(0); got != 0.5 {
			t.Errorf("%v.F(0) = %v, want 0.5", s.Family(), got)
		}
	}
	if got := (Gumbel{}).F(math.Log(math.Log(2))); !aeq(0.5, got) {
		t.Errorf("Gumbel.F(ln ln 2) = %v, want 0.5", got)
	}
}

func TestByName(t *testing.T) {
	for _, s := range all {
		got, err := ByName(s.Family().String())
		if err != nil {
			t.Fatal(err)
		}
		if got.Family() != s.Family() {
			t.Errorf("ByName(%q) returned %v", s.Family(), got.Family())
		}
	}
	if _, err := ByName("rayleigh"); !errors.Is(err, ErrUnknown) {
		t.Errorf("want ErrUnknown, got %v", err)
	}
}
