// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trials holds binomial trial data from psychophysical
// experiments.
package trials // import "github.com/aclements/go-psignifit/trials"

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned when trial data is inconsistent.
var ErrInvalid = errors.New("invalid trial data")

// A Block is one design point of an experiment: NTrials trials at
// stimulus intensity Intensity, NCorrect of which were answered
// correctly.
type Block struct {
	Intensity float64
	NTrials   int
	NCorrect  int

	// logNoverK is log(NTrials choose NCorrect).
	logNoverK float64
}

// PCorrect returns the observed proportion of correct responses.
func (b Block) PCorrect() float64 {
	return float64(b.NCorrect) / float64(b.NTrials)
}

// LogNoverK returns the logarithm of the binomial coefficient
// (NTrials choose NCorrect).
func (b Block) LogNoverK() float64 {
	return b.logNoverK
}

func logChoose(n, k int) float64 {
	ln, _ := math.Lgamma(float64(n + 1))
	lk, _ := math.Lgamma(float64(k + 1))
	lnk, _ := math.Lgamma(float64(n - k + 1))
	return ln - lk - lnk
}

// Data is an immutable set of blocks from an experiment with a fixed
// number of response alternatives.
type Data struct {
	blocks []Block
	nAFC   int
}

// New returns the data set with block intensities x, trial counts n,
// and correct counts k. nAFC is the number of response alternatives;
// 1 denotes a yes/no task.
func New(x []float64, n, k []int, nAFC int) (*Data, error) {
	if len(x) != len(n) || len(x) != len(k) {
		return nil, fmt.Errorf("%w: %d intensities, %d trial counts, %d correct counts", ErrInvalid, len(x), len(n), len(k))
	}
	if nAFC < 1 {
		return nil, fmt.Errorf("%w: %d alternatives", ErrInvalid, nAFC)
	}
	d := &Data{blocks: make([]Block, len(x)), nAFC: nAFC}
	for i := range x {
		if n[i] < 0 || k[i] < 0 || k[i] > n[i] {
			return nil, fmt.Errorf("%w: block %d has %d of %d correct", ErrInvalid, i, k[i], n[i])
		}
		d.blocks[i] = Block{x[i], n[i], k[i], logChoose(n[i], k[i])}
	}
	return d, nil
}

// FromBlocks returns the data set consisting of blocks.
func FromBlocks(blocks []Block, nAFC int) (*Data, error) {
	x := make([]float64, len(blocks))
	n := make([]int, len(blocks))
	k := make([]int, len(blocks))
	for i, b := range blocks {
		x[i], n[i], k[i] = b.Intensity, b.NTrials, b.NCorrect
	}
	return New(x, n, k, nAFC)
}

func (d *Data) NBlocks() int            { return len(d.blocks) }
func (d *Data) NAlternatives() int      { return d.nAFC }
func (d *Data) Block(i int) Block       { return d.blocks[i] }
func (d *Data) Intensity(i int) float64 { return d.blocks[i].Intensity }
func (d *Data) NTrials(i int) int       { return d.blocks[i].NTrials }
func (d *Data) NCorrect(i int) int      { return d.blocks[i].NCorrect }
func (d *Data) PCorrect(i int) float64  { return d.blocks[i].PCorrect() }
func (d *Data) LogNoverK(i int) float64 { return d.blocks[i].logNoverK }

// Intensities returns a fresh slice of all block intensities.
func (d *Data) Intensities() []float64 {
	xs := make([]float64, len(d.blocks))
	for i, b := range d.blocks {
		xs[i] = b.Intensity
	}
	return xs
}

// PCorrects returns a fresh slice of the observed proportion correct
// in each block.
func (d *Data) PCorrects() []float64 {
	ps := make([]float64, len(d.blocks))
	for i, b := range d.blocks {
		ps[i] = b.PCorrect()
	}
	return ps
}

// NonAsymptotic returns the indexes of the blocks whose proportion
// correct lies strictly between the guess rate and 1. For yes/no data
// the guess rate is taken to be 0.
func (d *Data) NonAsymptotic() []int {
	guess := 0.0
	if d.nAFC > 1 {
		guess = 1 / float64(d.nAFC)
	}
	var out []int
	for i, b := range d.blocks {
		if p := b.PCorrect(); p > guess && p < 1 {
			out = append(out, i)
		}
	}
	return out
}

// Without returns a copy of d with block j removed.
func (d *Data) Without(j int) *Data {
	out := &Data{blocks: make([]Block, 0, len(d.blocks)), nAFC: d.nAFC}
	for i, b := range d.blocks {
		if i != j {
			out.blocks = append(out.blocks, b)
		}
	}
	return out
}
