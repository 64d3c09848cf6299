// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prior

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 1e-5*math.Max(1, math.Abs(expect))
}

func TestDLogPDF(t *testing.T) {
	check := func(p Prior, x float64) {
		t.Helper()
		want := fd.Derivative(func(x float64) float64 {
			return math.Log(p.PDF(x))
		}, x, &fd.Settings{Formula: fd.Central})
		if got := p.DLogPDF(x); !aeq(want, got) {
			t.Errorf("%v.DLogPDF(%v) = %v, want %v", p, x, got, want)
		}
	}
	check(Gauss{4, 2}, 1)
	check(Gauss{4, 2}, 6.5)
	check(Beta{2, 50}, 0.02)
	check(Beta{1.5, 3}, 0.7)
	check(Gamma{2, 3}, 0.5)
	check(Gamma{1, 3}, 4)
	check(Uniform{0, 0.1}, 0.05)
	check(Flat{}, 100)
}

func TestSupport(t *testing.T) {
	for _, p := range []Prior{Beta{2, 20}, Uniform{0, 0.1}} {
		if p.PDF(-0.01) != 0 || p.PDF(1.01) != 0 {
			t.Errorf("%v has density outside its support", p)
		}
	}
	if (Gamma{2, 1}).PDF(-1) != 0 {
		t.Errorf("Gamma has density at -1")
	}
	if got := (Uniform{0, 0.1}).PDF(0.05); !aeq(10, got) {
		t.Errorf("Uniform(0,0.1).PDF(0.05) = %v", got)
	}
}

func TestParse(t *testing.T) {
	good := map[string]Prior{
		"":               Flat{},
		"Flat":           Flat{},
		"Gauss(4,4)":     Gauss{4, 4},
		" Beta(2, 50) ":  Beta{2, 50},
		"Gamma(1,3)":     Gamma{1, 3},
		"Uniform(0,0.1)": Uniform{0, 0.1},
	}
	for s, want := range good {
		got, err := Parse(s)
		if err != nil {
			t.Errorf("Parse(%q): %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q) = %v, want %v", s, got, want)
		}
	}
	for _, s := range []string{"Gauss", "Gauss(1)", "Gauss(1,x)", "Gauss(0,-1)", "Beta(0,1)", "Uniform(1,0)", "Weird(1,2)"} {
		if _, err := Parse(s); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q): want ErrSyntax, got %v", s, err)
		}
	}
}
