// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package grid

import (
	"github.com/james-bowman/sparse"
)

// PMF is a sparse, non-negative Nx x Ny matrix: either the zero matrix
// (Vacuous) or normalized so its entries sum to 1. It is the only
// representation of a Location's probability mass this module ever
// materializes — nothing here builds a dense Nx*Ny array.
type PMF struct {
	m  *sparse.CSR
	nx int
	ny int
}

// NewPMF wraps an already-built CSR matrix. Callers are responsible for
// ensuring it is either all-zero or already normalized.
func NewPMF(m *sparse.CSR) *PMF {
	r, c := m.Dims()
	return &PMF{m: m, nx: r, ny: c}
}

// Matrix exposes the underlying sparse matrix for read-only use (e.g.
// by the reader/writer in the location package).
func (p *PMF) Matrix() *sparse.CSR { return p.m }

func (p *PMF) Dims() (int, int) { return p.nx, p.ny }

// MaskMatrix builds the Nx x Ny 0/1 matrix of grid cells lying inside
// rect: 1 for cells whose (lon, lat) falls in the half-open rectangle,
// 0 elsewhere.
func MaskMatrix(g *Grid, rect Rect) *PMF {
	I, J := MaskIndices(rect, g.Longitudes, g.Latitudes)
	dok := sparse.NewDOK(g.Nx(), g.Ny())
	for i := I.Lo; i < I.Hi; i++ {
		for j := J.Lo; j < J.Hi; j++ {
			dok.Set(i, j, 1)
		}
	}
	return NewPMF(dok.ToCSR())
}

// Masked returns p restricted to rect: every entry outside the
// rectangle is dropped. Unlike MaskMatrix ⊙ p this never builds the
// intermediate 0/1 mask.
func (p *PMF) Masked(g *Grid, rect Rect) *PMF {
	I, J := MaskIndices(rect, g.Longitudes, g.Latitudes)
	dok := sparse.NewDOK(p.nx, p.ny)
	p.m.DoNonZero(func(i, j int, v float64) {
		if i >= I.Lo && i < I.Hi && j >= J.Lo && j < J.Hi {
			dok.Set(i, j, v)
		}
	})
	return NewPMF(dok.ToCSR())
}

// SparseHadamard computes the element-wise (Hadamard) product of two
// same-shaped sparse matrices.
func SparseHadamard(a, b *PMF) *PMF {
	dok := sparse.NewDOK(a.nx, a.ny)
	// iterate whichever operand has fewer stored entries
	small, big := a.m, b.m
	if b.m.NNZ() < a.m.NNZ() {
		small, big = b.m, a.m
	}
	small.DoNonZero(func(i, j int, v float64) {
		if w := big.At(i, j); w != 0 {
			dok.Set(i, j, v*w)
		}
	})
	return &PMF{m: dok.ToCSR(), nx: a.nx, ny: a.ny}
}

// Sum returns the sum of all entries.
func Sum(p *PMF) float64 {
	total := 0.0
	p.m.DoNonZero(func(_, _ int, v float64) { total += v })
	return total
}

// NormalizeInPlace divides every entry by the matrix's sum and returns
// that sum. The zero matrix normalizes to itself: callers learn vacuity
// from a returned sum of 0, per the convention mask/sum/normalize share
// across this module.
func NormalizeInPlace(p *PMF) float64 {
	total := Sum(p)
	if total == 0 {
		return 0
	}
	dok := sparse.NewDOK(p.nx, p.ny)
	p.m.DoNonZero(func(i, j int, v float64) {
		dok.Set(i, j, v/total)
	})
	p.m = dok.ToCSR()
	return total
}

// Vacuous reports whether p carries no probability mass at all.
func (p *PMF) Vacuous() bool {
	return p.m.NNZ() == 0
}

// NonZero calls f once for every nonzero entry (i = longitude index, j
// = latitude index, v = probability mass).
func (p *PMF) NonZero(f func(i, j int, v float64)) {
	p.m.DoNonZero(f)
}

// FromTriplets builds a normalized-or-zero PMF directly from a list of
// (i, j, value) triplets, as read from a Location file (§6).
func FromTriplets(nx, ny int, is, js []int, vs []float32) *PMF {
	dok := sparse.NewDOK(nx, ny)
	for k := range is {
		dok.Set(is[k], js[k], float64(vs[k]))
	}
	return NewPMF(dok.ToCSR())
}

// FromIndexedValues builds a PMF directly from parallel i, j, value
// slices that need not come from a dense scan — used by the ranging
// evaluator, which gathers one batch of (index, distance) pairs and
// evaluates them in a single vectorized call before scattering the
// results back into a sparse matrix.
func FromIndexedValues(nx, ny int, is, js []int, vs []float64) *PMF {
	dok := sparse.NewDOK(nx, ny)
	for k := range is {
		if vs[k] != 0 {
			dok.Set(is[k], js[k], vs[k])
		}
	}
	return NewPMF(dok.ToCSR())
}

// Empty returns the zero (vacuous) PMF over an Nx x Ny grid.
func Empty(g *Grid) *PMF {
	return NewPMF(sparse.NewDOK(g.Nx(), g.Ny()).ToCSR())
}

// MaskedByPredicate restricts p to cells lying in rect (a fast
// axis-aligned reject) and additionally satisfying keep — e.g. a
// polygon's precise point-membership test — without ever leaving the
// sparse representation. This lets a caller holding a polygonal bounds
// (rather than a plain rectangle) mask a PMF.
func (p *PMF) MaskedByPredicate(g *Grid, rect Rect, keep func(lon, lat float64) bool) *PMF {
	I, J := MaskIndices(rect, g.Longitudes, g.Latitudes)
	dok := sparse.NewDOK(p.nx, p.ny)
	p.m.DoNonZero(func(i, j int, v float64) {
		if i < I.Lo || i >= I.Hi || j < J.Lo || j >= J.Hi {
			return
		}
		if keep != nil && !keep(g.Longitudes[i], g.Latitudes[j]) {
			return
		}
		dok.Set(i, j, v)
	})
	return NewPMF(dok.ToCSR())
}
