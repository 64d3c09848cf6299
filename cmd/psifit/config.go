// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aclements/go-psignifit/core"
	"github.com/aclements/go-psignifit/prior"
	"github.com/aclements/go-psignifit/psychometric"
	"github.com/aclements/go-psignifit/sigmoid"
	"github.com/aclements/go-psignifit/trials"
	"gopkg.in/yaml.v3"
)

// Config describes the psychometric model to fit.
type Config struct {
	// NAFC is the number of response alternatives. 1 is a yes/no
	// task.
	NAFC int `yaml:"nafc"`

	// Sigmoid names the sigmoid: logistic, gauss, gumbel, or
	// cauchy.
	Sigmoid string `yaml:"sigmoid"`

	// Core names the core: ab, mw<alpha> (for example mw0.1),
	// log, or weibull.
	Core string `yaml:"core"`

	// GammaIsLambda ties the guess rate of a yes/no task to the
	// lapse rate.
	GammaIsLambda bool `yaml:"gammaislambda"`

	// Priors lists a prior per parameter, for example
	// "Gauss(0,5)". Missing and empty entries are flat.
	Priors []string `yaml:"priors"`

	// Cut is the level of the sigmoid that defines the threshold.
	Cut float64 `yaml:"cut"`
}

func defaultConfig() Config {
	return Config{NAFC: 2, Sigmoid: "logistic", Core: "ab", Cut: 0.5}
}

// loadConfig reads a YAML model description from r. Fields missing
// from r keep their default values.
func loadConfig(r io.Reader) (Config, error) {
	cfg := defaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, fmt.Errorf("parsing model description: %w", err)
	}
	if !(cfg.Cut > 0 && cfg.Cut < 1) {
		return cfg, fmt.Errorf("cut %v outside (0, 1)", cfg.Cut)
	}
	return cfg, nil
}

// newCore returns the core named name for sigmoid s. Cores that
// calibrate their starting values use d.
func newCore(name string, s sigmoid.Sigmoid, d *trials.Data) (core.Core, error) {
	switch {
	case name == "ab" || name == "linear":
		return core.Linear{}, nil
	case name == "log" || name == "logarithmic":
		return core.NewLog(d)
	case name == "weibull":
		return core.NewWeibull(d)
	case strings.HasPrefix(name, "mw"):
		alpha, err := strconv.ParseFloat(name[2:], 64)
		if err != nil || !(alpha > 0 && alpha < 0.5) {
			return nil, fmt.Errorf("core %q: width criterion must be in (0, 0.5)", name)
		}
		return core.NewMW(s.Family(), alpha)
	}
	return nil, fmt.Errorf("unknown core %q", name)
}

// model returns the psychometric model described by cfg for data d.
func (cfg Config) model(d *trials.Data, opts ...psychometric.Option) (*psychometric.Model, error) {
	c, s, err := cfg.parts(d)
	if err != nil {
		return nil, err
	}
	if cfg.GammaIsLambda {
		opts = append(opts, psychometric.GammaIsLambda())
	}
	m, err := psychometric.New(cfg.NAFC, c, s, opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.setPriors(m.NParams(), m.SetPrior); err != nil {
		return nil, err
	}
	return m, nil
}

// outlierModel returns the model described by cfg with block jout of
// d isolated.
func (cfg Config) outlierModel(d *trials.Data, jout int) (*psychometric.OutlierModel, error) {
	c, s, err := cfg.parts(d)
	if err != nil {
		return nil, err
	}
	var opts []psychometric.Option
	if cfg.GammaIsLambda {
		opts = append(opts, psychometric.GammaIsLambda())
	}
	o, err := psychometric.NewOutlier(cfg.NAFC, c, s, jout, d, opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.setPriors(o.Base().NParams(), o.SetPrior); err != nil {
		return nil, err
	}
	return o, nil
}

func (cfg Config) parts(d *trials.Data) (core.Core, sigmoid.Sigmoid, error) {
	if cfg.NAFC != d.NAlternatives() {
		return nil, nil, fmt.Errorf("model has %d alternatives, data has %d", cfg.NAFC, d.NAlternatives())
	}
	s, err := sigmoid.ByName(cfg.Sigmoid)
	if err != nil {
		return nil, nil, err
	}
	c, err := newCore(cfg.Core, s, d)
	if err != nil {
		return nil, nil, err
	}
	return c, s, nil
}

func (cfg Config) setPriors(nprm int, set func(int, prior.Prior) error) error {
	if len(cfg.Priors) > nprm {
		return fmt.Errorf("%d priors for %d parameters", len(cfg.Priors), nprm)
	}
	for i, desc := range cfg.Priors {
		p, err := prior.Parse(desc)
		if err != nil {
			return fmt.Errorf("prior %d: %w", i, err)
		}
		if err := set(i, p); err != nil {
			return err
		}
	}
	return nil
}
