// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package calibration

// QuasiOctantOrientation picks which edge of the RTT/distance convex
// hull is read as the max-distance curve and which as the min. The
// source this algorithm is ported from swaps the two between variants
// without comment; this flag exists so callers can try both against
// held-out data rather than have one baked in (spec open question).
type QuasiOctantOrientation int

const (
	// UpperIsMax reads the hull's upper edge as the fastest-signal /
	// greatest-distance curve and the lower edge as the slowest /
	// shortest-distance curve. Default.
	UpperIsMax QuasiOctantOrientation = iota
	// LowerIsMax swaps the reading.
	LowerIsMax
)

// QuasiOctant calibrates by computing the convex hull of (RTT,
// distance) observations: the hull's upper edge bounds the fastest
// plausible signal, the lower edge the slowest. Both edges are cut at
// a percentile of the observed RTTs and continued beyond the cut with
// a fixed-slope extrapolation.
type QuasiOctant struct {
	orientation QuasiOctantOrientation
	maxCurve    polyline
	minCurve    polyline
}

// NewQuasiOctant fits the default-orientation Quasi-Octant calibration.
func NewQuasiOctant(distsM, rttsMs []float64) (*QuasiOctant, error) {
	return NewQuasiOctantOriented(distsM, rttsMs, UpperIsMax)
}

// NewQuasiOctantOriented fits Quasi-Octant with an explicit choice of
// which hull edge represents the max-distance curve.
func NewQuasiOctantOriented(distsM, rttsMs []float64, orientation QuasiOctantOrientation) (*QuasiOctant, error) {
	if len(distsM) == 0 || len(distsM) != len(rttsMs) {
		return nil, badObservation("Quasi-Octant requires matching non-empty distance/RTT vectors")
	}
	obs := discardInfeasible(distsM, rttsMs)
	if len(obs) == 0 {
		return nil, badObservation("not enough feasible observations")
	}

	// swap columns: x = rtt (time predicts distance), y = dist
	pts := make([][2]float64, len(obs))
	allRTT := make([]float64, len(obs))
	for i, o := range obs {
		pts[i] = [2]float64{o.rtt, o.dist}
		allRTT[i] = o.rtt
	}

	lower, upper := convexHullChains(pts)
	if len(lower) <= 1 || len(upper) <= 1 {
		return nil, badObservation("convex hull degenerate: fewer than two distinct x-coordinates on an edge")
	}

	upperPL := newPolyline(upper)
	lowerPL := newPolyline(lower)

	upperCutX := percentile(allRTT, 50)
	upperCutY := upperPL.at(upperCutX)
	lowerCutX := percentile(allRTT, 75)
	lowerCutY := lowerPL.at(lowerCutX)

	// extrapolation slopes/targets carried over verbatim from the
	// source algorithm: the upper (fastest) curve continues at the
	// empirical min-curve slope, the lower (slowest) at the physical
	// max-curve slope, both out to an RTT of 1000ms.
	upperAdjusted := cutAndExtrapolate(upper, upperCutX, upperCutY, 55*1000, 1000)
	lowerAdjusted := cutAndExtrapolate(lower, lowerCutX, lowerCutY, 100*1000, 1000)

	q := &QuasiOctant{orientation: orientation}
	maxPL := newPolyline(upperAdjusted)
	minPL := newPolyline(lowerAdjusted)
	if orientation == UpperIsMax {
		q.maxCurve, q.minCurve = maxPL, minPL
	} else {
		q.maxCurve, q.minCurve = minPL, maxPL
	}
	return q, nil
}

// cutAndExtrapolate keeps hull vertices left of cutX, appends the cut
// point itself, then one extrapolated point at x=extrapolateX
// continuing from the cut along the given slope.
func cutAndExtrapolate(chain [][2]float64, cutX, cutY, slope, extrapolateX float64) [][2]float64 {
	out := make([][2]float64, 0, len(chain)+2)
	for _, p := range chain {
		if p[0] < cutX {
			out = append(out, p)
		}
	}
	out = append(out, [2]float64{cutX, cutY})
	out = append(out, [2]float64{extrapolateX, cutY + slope*(extrapolateX-cutX)})
	return out
}

func (q *QuasiOctant) DistanceRange(rtts []float64) (minM, maxM float64) {
	if len(rtts) == 0 {
		return 0, 0
	}
	minRTT := minFloat64(rtts)
	return clampRange(q.minCurve.at(minRTT), q.maxCurve.at(minRTT))
}

// Failed is always false: Quasi-Octant's convex hull computation
// either succeeds outright or returns an error from the constructor,
// there is no separate non-convergent state.
func (q *QuasiOctant) Failed() bool { return false }
