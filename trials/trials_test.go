// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trials

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	d, err := New([]float64{1, 2, 3}, []int{10, 10, 4}, []int{5, 10, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if d.NBlocks() != 3 || d.NAlternatives() != 2 {
		t.Fatalf("got %d blocks, %d alternatives", d.NBlocks(), d.NAlternatives())
	}
	if want := math.Log(252); math.Abs(d.LogNoverK(0)-want) > 1e-9 {
		t.Errorf("LogNoverK(0) = %v, want %v", d.LogNoverK(0), want)
	}
	if d.LogNoverK(1) != 0 || d.LogNoverK(2) != 0 {
		t.Errorf("want LogNoverK 0 at the extremes, got %v %v", d.LogNoverK(1), d.LogNoverK(2))
	}
	if diff := cmp.Diff([]float64{0.5, 1, 0}, d.PCorrects()); diff != "" {
		t.Errorf("PCorrects mismatch (-want +got):\n%s", diff)
	}

	bad := []struct {
		x    []float64
		n, k []int
		nAFC int
	}{
		{[]float64{1, 2}, []int{1}, []int{1}, 2},
		{[]float64{1}, []int{1}, []int{2}, 2},
		{[]float64{1}, []int{1}, []int{-1}, 2},
		{[]float64{1}, []int{1}, []int{1}, 0},
	}
	for _, b := range bad {
		if _, err := New(b.x, b.n, b.k, b.nAFC); !errors.Is(err, ErrInvalid) {
			t.Errorf("New(%v, %v, %v, %v): want ErrInvalid, got %v", b.x, b.n, b.k, b.nAFC, err)
		}
	}
}

func TestNonAsymptotic(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	n := []int{20, 20, 20, 20, 20}
	k := []int{2, 10, 14, 18, 20}

	d, _ := New(x, n, k, 2)
	if diff := cmp.Diff([]int{2, 3}, d.NonAsymptotic()); diff != "" {
		t.Errorf("2AFC mismatch (-want +got):\n%s", diff)
	}
	d, _ = New(x, n, k, 1)
	if diff := cmp.Diff([]int{0, 1, 2, 3}, d.NonAsymptotic()); diff != "" {
		t.Errorf("yes/no mismatch (-want +got):\n%s", diff)
	}
}

func TestWithout(t *testing.T) {
	d, _ := New([]float64{1, 2, 3}, []int{10, 20, 30}, []int{1, 2, 3}, 3)
	w := d.Without(1)
	if w.NBlocks() != 2 || w.NAlternatives() != 3 {
		t.Fatalf("got %d blocks, %d alternatives", w.NBlocks(), w.NAlternatives())
	}
	if diff := cmp.Diff([]float64{1, 3}, w.Intensities()); diff != "" {
		t.Errorf("intensities mismatch (-want +got):\n%s", diff)
	}
	if w.LogNoverK(1) != d.LogNoverK(2) {
		t.Errorf("cached coefficient not carried over")
	}
	if d.NBlocks() != 3 {
		t.Errorf("Without modified its receiver")
	}
}
