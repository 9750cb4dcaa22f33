// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package calibration

import (
	"math"
	"sort"
)

// convexHullChains computes the 2-D convex hull of pts via Andrew's
// monotone chain and returns its lower and upper boundary as two
// polylines, each sorted ascending by x with duplicate-x vertices
// dropped (keeping the first occurrence), matching the "split the
// hull into an upper and lower polyline, drop duplicate-x vertices"
// step of the Quasi-Octant algorithm.
func convexHullChains(pts [][2]float64) (lower, upper [][2]float64) {
	ps := uniquePoints(pts)
	if len(ps) < 2 {
		return dedupeByX(ps), dedupeByX(ps)
	}

	lowerHull := make([][2]float64, 0, len(ps))
	for _, p := range ps {
		for len(lowerHull) >= 2 && cross2D(lowerHull[len(lowerHull)-2], lowerHull[len(lowerHull)-1], p) <= 0 {
			lowerHull = lowerHull[:len(lowerHull)-1]
		}
		lowerHull = append(lowerHull, p)
	}

	upperHull := make([][2]float64, 0, len(ps))
	for i := len(ps) - 1; i >= 0; i-- {
		p := ps[i]
		for len(upperHull) >= 2 && cross2D(upperHull[len(upperHull)-2], upperHull[len(upperHull)-1], p) <= 0 {
			upperHull = upperHull[:len(upperHull)-1]
		}
		upperHull = append(upperHull, p)
	}
	for i, j := 0, len(upperHull)-1; i < j; i, j = i+1, j-1 {
		upperHull[i], upperHull[j] = upperHull[j], upperHull[i]
	}

	return dedupeByX(lowerHull), dedupeByX(upperHull)
}

func cross2D(o, a, b [2]float64) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func uniquePoints(pts [][2]float64) [][2]float64 {
	ps := append([][2]float64(nil), pts...)
	sort.Slice(ps, func(i, j int) bool {
		if ps[i][0] != ps[j][0] {
			return ps[i][0] < ps[j][0]
		}
		return ps[i][1] < ps[j][1]
	})
	out := ps[:0]
	for i, p := range ps {
		if i == 0 || p != ps[i-1] {
			out = append(out, p)
		}
	}
	return out
}

func dedupeByX(pts [][2]float64) [][2]float64 {
	out := make([][2]float64, 0, len(pts))
	for i, p := range pts {
		if i == 0 || p[0] != pts[i-1][0] {
			out = append(out, p)
		}
	}
	return out
}

// percentile returns the p-th percentile (0-100) of xs using the same
// linear-interpolation-between-ranks method as numpy's default.
func percentile(xs []float64, p float64) float64 {
	ys := append([]float64(nil), xs...)
	sort.Float64s(ys)
	n := len(ys)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return ys[0]
	}
	idx := p / 100 * float64(n-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return ys[lo]
	}
	frac := idx - float64(lo)
	return ys[lo] + frac*(ys[hi]-ys[lo])
}
