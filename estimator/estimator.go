// Package estimator implements the adaptive Rice-parameter estimator: for
// each neighbor-gap context, it tracks which Rice parameter from a fixed
// candidate set would have produced the shortest code so far, by
// accumulating exact code lengths rather than approximating from a running
// mean.
package estimator

import (
	"github.com/mewkiz/felics/rice"
	"github.com/mewkiz/pkg/errutil"
)

// Estimator holds, for every context in [0, maxContext], a running total of
// the code length each candidate k would have produced over every
// out-of-range residual seen in that context so far.
type Estimator struct {
	kCandidates  []uint8
	maxContext   uint32
	countScaling uint32 // 0 disables periodic halving.
	table        [][]uint32
}

// New constructs an Estimator for contexts in [0, maxContext], tracking the
// given candidate k values. countScaling == 0 disables periodic halving;
// otherwise a context's row is halved (integer division by 2, in place) the
// moment its smallest entry exceeds countScaling.
//
// Panics if kCandidates is empty.
func New(maxContext uint32, kCandidates []uint8, countScaling uint32) *Estimator {
	if len(kCandidates) == 0 {
		panic(errutil.Newf("estimator: kCandidates must not be empty"))
	}
	table := make([][]uint32, maxContext+1)
	for i := range table {
		table[i] = make([]uint32, len(kCandidates))
	}
	return &Estimator{
		kCandidates:  kCandidates,
		maxContext:   maxContext,
		countScaling: countScaling,
		table:        table,
	}
}

// GetK returns the candidate k with the smallest accumulated code length for
// ctx, breaking ties toward the lowest candidate index (the smallest k).
//
// Panics if ctx > maxContext: an out-of-range context is a programmer error.
func (e *Estimator) GetK(ctx uint32) uint8 {
	row := e.row(ctx)
	best := 0
	smallest := row[0]
	for i, v := range row[1:] {
		if v < smallest {
			smallest = v
			best = i + 1
		}
	}
	return e.kCandidates[best]
}

// Update records that residual was Rice-coded in context ctx: every
// candidate's accumulated code length is incremented by the exact length
// Rice(k_i).CodeLength(residual) would have used. If periodic count scaling
// is enabled and the row's minimum entry now exceeds the threshold, the
// entire row is halved in place (exactly once).
//
// Update must never be called for in-range (phase-in coded) residuals: only
// out-of-range (Rice-coded) residuals participate in parameter estimation.
//
// Panics if ctx > maxContext.
func (e *Estimator) Update(ctx uint32, residual uint32) {
	row := e.row(ctx)
	for i, k := range e.kCandidates {
		row[i] += rice.New(k).CodeLength(residual)
	}
	if e.countScaling == 0 {
		return
	}
	min := row[0]
	for _, v := range row[1:] {
		if v < min {
			min = v
		}
	}
	if min > e.countScaling {
		for i := range row {
			row[i] /= 2
		}
	}
}

func (e *Estimator) row(ctx uint32) []uint32 {
	if ctx > e.maxContext {
		panic(errutil.Newf("estimator: context out of range: %d > %d", ctx, e.maxContext))
	}
	return e.table[ctx]
}
