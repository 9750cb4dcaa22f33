// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package calibration

import (
	"math"
	"sort"
)

// spotterKnots is the number of windowed-moment knots Spotter fits
// against, chosen (like CBG's bin count) to carve the planet's
// half-circumference into roughly 25km intervals.
const spotterKnots = 800

// Spotter fits mean and standard deviation of distance as increasing
// cubic functions of RTT, then treats a query RTT's plausible distance
// as Gaussian(mu(rtt), sigma(rtt)).
type Spotter struct {
	mu, sigma scaledCubic
	failed    bool
	fallback  *PhysicalLimitsOnly
}

// NewSpotter fits a Spotter calibration from parallel distance
// (meters) and RTT (milliseconds) vectors.
func NewSpotter(distsM, rttsMs []float64) (*Spotter, error) {
	if len(distsM) == 0 || len(distsM) != len(rttsMs) {
		return nil, badObservation("Spotter requires matching non-empty distance/RTT vectors")
	}
	obs := discardInfeasible(distsM, rttsMs)
	if len(obs) == 0 {
		return nil, badObservation("not enough feasible observations")
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].rtt < obs[j].rtt })

	rtts := make([]float64, len(obs))
	dists := make([]float64, len(obs))
	for i, o := range obs {
		rtts[i] = o.rtt
		dists[i] = o.dist
	}

	knots, mu, sigma := windowedMoments(rtts, dists, spotterKnots)
	fillNaNsByInterpolation(knots, mu)
	fillNaNsByInterpolation(knots, sigma)

	muFit, muOK := fitCubicConstrained(knots, mu)
	sigmaFit, sigmaOK := fitCubicConstrained(knots, sigma)
	s := &Spotter{mu: muFit, sigma: sigmaFit, failed: !muOK || !sigmaOK, fallback: NewPhysicalLimitsOnly(Empirical)}
	if s.failed {
		warnNoConverge("Spotter", "cubic fit over windowed moments did not produce a usable curve")
	}
	return s, nil
}

// windowedMoments computes, for nKnots knots evenly spaced (with a
// 2-knot margin on each side) over the range of xs, the mean and
// standard deviation of the corresponding ys falling within a 4-knot
// sliding window centered on each knot. Empty windows yield NaN.
func windowedMoments(xs, ys []float64, nKnots int) (knots, mu, sigma []float64) {
	n := len(xs)
	nEdges := nKnots + 4
	edges := make([]float64, nEdges)
	lo, hi := xs[0], xs[n-1]
	for i := range edges {
		edges[i] = lo + (hi-lo)*float64(i)/float64(nEdges-1)
	}
	knots = append([]float64(nil), edges[2:nEdges-2]...)
	mu = make([]float64, nKnots)
	sigma = make([]float64, nKnots)

	for i := 0; i < nKnots; i++ {
		winLo, winHi := edges[i], edges[i+4]
		var vals []float64
		for k := range xs {
			if xs[k] >= winLo && xs[k] <= winHi {
				vals = append(vals, ys[k])
			}
		}
		if len(vals) > 0 {
			m := mean(vals)
			mu[i] = m
			sigma[i] = stddev(vals, m)
		} else {
			mu[i] = math.NaN()
			sigma[i] = math.NaN()
		}
	}
	return knots, mu, sigma
}

// fillNaNsByInterpolation replaces NaN entries of vals with a linear
// interpolation between their nearest valid neighbors (by knots),
// flat-filling before the first and after the last valid entry.
func fillNaNsByInterpolation(knots, vals []float64) {
	n := len(vals)
	var valid []int
	for i, v := range vals {
		if !math.IsNaN(v) {
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		return
	}
	for i := 0; i < valid[0]; i++ {
		vals[i] = vals[valid[0]]
	}
	for i := valid[len(valid)-1] + 1; i < n; i++ {
		vals[i] = vals[valid[len(valid)-1]]
	}
	for j := 0; j < len(valid)-1; j++ {
		lo, hi := valid[j], valid[j+1]
		if hi-lo <= 1 {
			continue
		}
		x0, x1 := knots[lo], knots[hi]
		y0, y1 := vals[lo], vals[hi]
		for i := lo + 1; i < hi; i++ {
			t := (knots[i] - x0) / (x1 - x0)
			vals[i] = y0 + t*(y1-y0)
		}
	}
}

func mean(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

func stddev(xs []float64, m float64) float64 {
	s := 0.0
	for _, x := range xs {
		d := x - m
		s += d * d
	}
	return math.Sqrt(s / float64(len(xs)))
}

// DistanceRange uses the true 25th-percentile RTT as the
// representative value. The source this is ported from calls
// np.percentile(rtts, .25), which numpy interprets as the 0.25th
// percentile rather than the 25th — almost certainly a bug, per the
// spec's open question this is deliberately not reproduced here.
func (s *Spotter) DistanceRange(rtts []float64) (minM, maxM float64) {
	if len(rtts) == 0 {
		return 0, 0
	}
	if s.failed {
		return s.fallback.DistanceRange(rtts)
	}
	repRTT := percentile(rtts, 25)
	mu := s.mu.at(repRTT)
	s5 := s.sigma.at(repRTT) * 5
	return clampRange(mu-s5, mu+s5)
}

func (s *Spotter) Failed() bool { return s.failed }
