// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"testing"

	"github.com/aclements/go-psignifit/core"
	"github.com/aclements/go-psignifit/prior"
	"github.com/aclements/go-psignifit/sigmoid"
	"github.com/google/go-cmp/cmp"
)

const input = `# x n k
1 50 26
2 50 29
3 50 35
4 50 42
5 50 47
6 50 49
`

func TestReadInput(t *testing.T) {
	d, err := readInput(strings.NewReader(input), 2)
	if err != nil {
		t.Fatal(err)
	}
	if d.NBlocks() != 6 {
		t.Fatalf("want 6 blocks, got %d", d.NBlocks())
	}
	if diff := cmp.Diff([]float64{1, 2, 3, 4, 5, 6}, d.Intensities()); diff != "" {
		t.Errorf("intensities (-want +got):\n%s", diff)
	}
	if d.NCorrect(3) != 42 || d.NTrials(3) != 50 {
		t.Errorf("block 3: want 42/50, got %d/%d", d.NCorrect(3), d.NTrials(3))
	}

	for _, bad := range []string{"1 2\n", "x 10 5\n", "1 10 5.5\n", "1 10 11\n"} {
		if _, err := readInput(strings.NewReader(bad), 2); err == nil {
			t.Errorf("readInput(%q): want error", bad)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(strings.NewReader(`
nafc: 1
sigmoid: gumbel
core: mw0.1
gammaislambda: true
priors: ["Gauss(3,2)", "", "Beta(2,20)"]
`))
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		NAFC:          1,
		Sigmoid:       "gumbel",
		Core:          "mw0.1",
		GammaIsLambda: true,
		Priors:        []string{"Gauss(3,2)", "", "Beta(2,20)"},
		Cut:           0.5,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}

	cfg, err = loadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Errorf("empty config (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"nafc: two\n", "cores: ab\n", "cut: 1\n"} {
		if _, err := loadConfig(strings.NewReader(bad)); err == nil {
			t.Errorf("loadConfig(%q): want error", bad)
		}
	}
}

func TestNewCore(t *testing.T) {
	d, err := readInput(strings.NewReader(input), 2)
	if err != nil {
		t.Fatal(err)
	}
	check := func(name string, want interface{}) {
		t.Helper()
		c, err := newCore(name, sigmoid.Logistic{}, d)
		if err != nil {
			t.Errorf("newCore(%q): %v", name, err)
			return
		}
		if got, want := typeName(c), typeName(want); got != want {
			t.Errorf("newCore(%q): want %s, got %s", name, want, got)
		}
	}
	check("ab", core.Linear{})
	check("linear", core.Linear{})
	check("log", core.Log{})
	check("weibull", core.Weibull{})
	check("mw0.1", core.MW{})

	for _, bad := range []string{"mw", "mw0.7", "poly"} {
		if _, err := newCore(bad, sigmoid.Logistic{}, d); err == nil {
			t.Errorf("newCore(%q): want error", bad)
		}
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case core.Linear:
		return "Linear"
	case core.Log:
		return "Log"
	case core.Weibull:
		return "Weibull"
	case core.MW:
		return "MW"
	}
	return "unknown"
}

func TestModel(t *testing.T) {
	d, err := readInput(strings.NewReader(input), 2)
	if err != nil {
		t.Fatal(err)
	}

	cfg := defaultConfig()
	cfg.Priors = []string{"", "Gauss(1,3)", "Uniform(0,0.1)"}
	m, err := cfg.model(d)
	if err != nil {
		t.Fatal(err)
	}
	if m.NParams() != 3 {
		t.Errorf("want 3 parameters, got %d", m.NParams())
	}
	if diff := cmp.Diff(prior.Prior(prior.Flat{}), m.Prior(0)); diff != "" {
		t.Errorf("prior 0 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(prior.Prior(prior.Uniform{Min: 0, Max: 0.1}), m.Prior(2)); diff != "" {
		t.Errorf("prior 2 (-want +got):\n%s", diff)
	}

	o, err := cfg.outlierModel(d, 0)
	if err != nil {
		t.Fatal(err)
	}
	if o.NParams() != 4 {
		t.Errorf("outlier model: want 4 parameters, got %d", o.NParams())
	}

	bad := cfg
	bad.Priors = []string{"", "", "", "Flat"}
	if _, err := bad.model(d); err == nil {
		t.Error("too many priors: want error")
	}
	bad = cfg
	bad.Priors = []string{"Gauss(1"}
	if _, err := bad.model(d); err == nil {
		t.Error("malformed prior: want error")
	}
	bad = cfg
	bad.NAFC = 1
	if _, err := bad.model(d); err == nil {
		t.Error("alternatives mismatch: want error")
	}
}
