// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package calibration

import (
	"math"
	"sort"

	"github.com/zackw/active-geolocator/geo/wgs84"
)

// nBestlineBins is the number of ~25km bins CBG sorts its observations
// into along the distance axis; 804 edges give 803 bins, chosen (per
// the original) for exact consistency with Spotter's 800-knot window.
const nBestlineBins = 803

// satelliteSentinelRTT is the empirical "slowest plausible" time, in
// milliseconds, to traverse DistanceLimit — used both as the LP's
// artificial constraint and as the fallback value for any bin with no
// higher-distance bin to inherit from.
const satelliteSentinelRTT = 237.16

// CBG is the "bestline" calibration of Gueye et al's Constraint-Based
// Geolocation: the line closest to, but below, every (distance, RTT)
// observation, with a non-negative intercept. Its inverse gives the
// max-distance curve; the min-distance curve is identically zero.
type CBG struct {
	ok       bool
	m, b     float64
	fallback *PhysicalLimitsOnly
}

// NewCBG fits a CBG calibration from parallel distance (meters) and
// RTT (milliseconds) vectors.
func NewCBG(distsM, rttsMs []float64) (*CBG, error) {
	if len(distsM) == 0 || len(distsM) != len(rttsMs) {
		return nil, badObservation("CBG requires matching non-empty distance/RTT vectors")
	}
	obs := discardInfeasible(distsM, rttsMs)
	kept := obs[:0:0]
	for _, o := range obs {
		if o.dist > 0 {
			kept = append(kept, o)
		}
	}
	if len(kept) == 0 {
		return nil, badObservation("not enough feasible observations")
	}

	dists, minrtts := binDistances(kept)
	c := &CBG{fallback: NewPhysicalLimitsOnly(Empirical)}
	m, b, ok := solveBestlineLP(dists, minrtts)
	c.ok, c.m, c.b = ok, m, b
	if !ok {
		warnNoConverge("CBG", "linear program found no bestline")
	}
	return c, nil
}

// binDistances sorts kept observations (already sorted ascending by
// distance) into nBestlineBins equal-width bins over their distance
// range, taking the minimum RTT in each bin. Empty bins inherit the
// next higher bin's value, cascading down to satelliteSentinelRTT if
// there is no higher bin at all.
func binDistances(obs []observation) (dists, minrtts []float64) {
	n := len(obs)
	lo, hi := obs[0].dist, obs[n-1].dist
	const nEdges = nBestlineBins + 1
	edges := make([]float64, nEdges)
	for i := range edges {
		edges[i] = lo + (hi-lo)*float64(i)/float64(nEdges-1)
	}

	binMin := make([]float64, nBestlineBins)
	for i := range binMin {
		binMin[i] = math.Inf(1)
	}
	for _, o := range obs {
		i := sort.SearchFloat64s(edges, o.dist) - 1
		if i < 0 {
			i = 0
		}
		if i >= nBestlineBins {
			i = nBestlineBins - 1
		}
		if o.rtt < binMin[i] {
			binMin[i] = o.rtt
		}
	}

	dists = make([]float64, nBestlineBins)
	minrtts = make([]float64, nBestlineBins)
	for i := nBestlineBins - 1; i >= 0; i-- {
		dists[i] = (edges[i] + edges[i+1]) / 2
		switch {
		case !math.IsInf(binMin[i], 1):
			minrtts[i] = binMin[i]
		case i < nBestlineBins-1:
			minrtts[i] = minrtts[i+1]
		default:
			minrtts[i] = satelliteSentinelRTT
		}
	}
	return dists, minrtts
}

// solveBestlineLP finds (m, b) minimizing sum(minrtts) - sum(dists)*m
// - N*b subject to m*x_i + b <= y_i for every (binned and artificial)
// constraint point, m >= 1/100000, 0 <= b <= min(y).
//
// This is a 2-variable LP (the third coefficient is a fixed dummy),
// so rather than a general simplex it is solved directly: for a fixed
// m the best b is min_i(y_i - m*x_i) capped at min(y), and m is
// infeasible wherever that value is negative. The best b is a concave
// function of m, so the objective (linear in m plus N times
// that concave function) is itself concave and a ternary search over
// m finds its maximum.
func solveBestlineLP(dists, minrtts []float64) (m, b float64, ok bool) {
	n := len(dists)
	if n == 0 {
		return 0, 0, false
	}
	cx := make([]float64, n+1)
	cy := make([]float64, n+1)
	copy(cx, dists)
	copy(cy, minrtts)
	cx[n] = wgs84.DistanceLimit
	cy[n] = satelliteSentinelRTT

	sumDists := 0.0
	for _, d := range dists {
		sumDists += d
	}
	N := float64(n)
	minCY := minFloat64(cy)

	bestB := func(mv float64) (float64, bool) {
		bound := minCY
		for i := range cx {
			if v := cy[i] - mv*cx[i]; v < bound {
				bound = v
			}
		}
		return bound, bound >= 0
	}
	objective := func(mv float64) float64 {
		bv, feasible := bestB(mv)
		if !feasible {
			return math.Inf(-1)
		}
		return sumDists*mv + N*bv
	}

	lo, hi := 1.0/100000, 1.0
	for i := 0; i < 200; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if objective(m1) < objective(m2) {
			lo = m1
		} else {
			hi = m2
		}
	}
	mStar := (lo + hi) / 2
	bStar, feasible := bestB(mStar)
	if !feasible {
		// the midpoint can round past the edge of the feasible range;
		// lo only ever moves to points that are feasible
		mStar = lo
		bStar, feasible = bestB(mStar)
	}
	if !feasible {
		return 0, 0, false
	}
	return mStar, bStar, true
}

func (c *CBG) DistanceRange(rtts []float64) (minM, maxM float64) {
	if len(rtts) == 0 {
		return 0, 0
	}
	if !c.ok {
		return c.fallback.DistanceRange(rtts)
	}
	minRTT := minFloat64(rtts)
	maxM = (minRTT - c.b) / c.m
	return clampRange(0, maxM)
}

func (c *CBG) Failed() bool { return !c.ok }
