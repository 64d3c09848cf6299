// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// psifit reads psychophysical trial data from stdin and fits a
// psychometric function to it.
//
// Each input line holds a block of trials as three whitespace
// separated fields: stimulus intensity, number of trials, and number
// of correct responses. Blank lines and lines starting with # are
// ignored. The model is described by a YAML file given with --model;
// see Config for its fields.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-psignifit/psychometric"
	"github.com/aclements/go-psignifit/trials"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	modelFlag := flag.String("model", "", "read model description from `file`")
	nafcFlag := flag.Int("nafc", 0, "override the number of response alternatives")
	outliersFlag := flag.Bool("outliers", false, "report leave-one-out outlier diagnostics")
	verbose := flag.IntP("verbose", "v", 0, "log verbosity")
	flag.Parse()

	log := newLogger(*verbose)

	cfg := defaultConfig()
	if *modelFlag != "" {
		f, err := os.Open(*modelFlag)
		if err != nil {
			fatal(err)
		}
		cfg, err = loadConfig(f)
		f.Close()
		if err != nil {
			fatal(err)
		}
	}
	if *nafcFlag != 0 {
		cfg.NAFC = *nafcFlag
	}

	d, err := readInput(os.Stdin, cfg.NAFC)
	if err != nil {
		fatal(err)
	}
	m, err := cfg.model(d, psychometric.WithLogger(log))
	if err != nil {
		fatal(err)
	}

	est, err := psychometric.MAPEstimate(m, d, nil)
	if err != nil {
		fatal(err)
	}
	prm := est.Params
	res := m.DevianceResiduals(prm, d)

	fmt.Printf("params %s\n", formatFloats(prm))
	fmt.Printf("neglpost %.6g  deviance %.6g  rpd %.4f  rkd %.4f\n",
		est.NegLPost, est.Deviance, m.Rpd(res, prm, d), m.Rkd(res, d))
	fmt.Printf("threshold(%g) %.6g", cfg.Cut, m.Threshold(cfg.Cut, prm))
	if lf, err := m.LeastFavourable(prm, d, cfg.Cut, true); err != nil {
		log.Error(err, "computing least favourable direction")
	} else {
		fmt.Printf("  least favourable %.6g", lf)
	}
	fmt.Println()
	fmt.Println()

	fmt.Printf("%10s %6s %6s %8s %8s\n", "x", "n", "k", "p", "resid")
	for i := 0; i < d.NBlocks(); i++ {
		b := d.Block(i)
		fmt.Printf("%10.4g %6d %6d %8.4f %8.4f\n", b.Intensity, b.NTrials, b.NCorrect, m.Evaluate(b.Intensity, prm), res[i])
	}

	if *outliersFlag {
		fmt.Println()
		fmt.Printf("%10s %10s\n", "outlier", "Δdeviance")
		for j := 0; j < d.NBlocks(); j++ {
			o, err := cfg.outlierModel(d, j)
			if err != nil {
				fatal(err)
			}
			oest, err := psychometric.MAPEstimate(o, d, nil)
			if err != nil {
				log.Error(err, "fitting outlier model", "block", j)
				continue
			}
			fmt.Printf("%10d %10.4f\n", j, est.Deviance-oest.Deviance)
		}
	}
}

// newLogger returns a logger to stderr that reports messages up to
// the given logr verbosity.
func newLogger(verbosity int) logr.Logger {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	zl, err := zc.Build()
	if err != nil {
		fatal(err)
	}
	return zapr.NewLogger(zl)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "psifit:", err)
	os.Exit(1)
}

func formatFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatFloat(x, 'g', 6, 64)
	}
	return strings.Join(parts, " ")
}

// readInput parses blocks of trials from r.
func readInput(r io.Reader, nAFC int) (*trials.Data, error) {
	var x []float64
	var n, k []int
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		l := strings.TrimSpace(scanner.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		fields := strings.Fields(l)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want 3 fields, got %d", line, len(fields))
		}
		xi, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ni, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ki, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		x, n, k = append(x, xi), append(n, ni), append(k, ki)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return trials.New(x, n, k, nAFC)
}
