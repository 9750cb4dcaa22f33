// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package calibration fits RTT-to-distance curves from landmark
// observations. A Calibration is immutable once built: it maps a
// vector of RTT samples to a plausible (min, max) distance band, and
// every variant clamps its answer to [0, DistanceLimit].
package calibration

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/zackw/active-geolocator/errs"
	"github.com/zackw/active-geolocator/geo/wgs84"
)

// Calibration is the capability every variant below implements: map a
// slice of RTT samples (milliseconds) to a plausible distance band
// (meters). Every variant except Spotter uses the minimum observed RTT;
// Spotter uses the 25th-percentile RTT.
type Calibration interface {
	// DistanceRange returns (min_m, max_m), 0 <= min <= max <= DistanceLimit.
	DistanceRange(rtts []float64) (minM, maxM float64)

	// Failed reports whether this calibration's fit did not converge.
	// A failed calibration still answers DistanceRange (by falling
	// back to PhysicalLimitsOnly("empirical")) so callers are never
	// handed an unusable object.
	Failed() bool
}

// observation is one (distance_m, rtt_ms) landmark sample.
type observation struct {
	dist float64
	rtt  float64
}

// discardInfeasible keeps only observations consistent with a maximum
// signal speed of 200,000 km/s and a minimum of 110,000 km/s after a
// fixed 55ms processing delay, then sorts by (dist, rtt).
func discardInfeasible(dists, rtts []float64) []observation {
	out := make([]observation, 0, len(dists))
	for i := range dists {
		d, r := dists[i], rtts[i]
		if r*100000 >= d && (r-55)*55000 <= d {
			out = append(out, observation{dist: d, rtt: r})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].dist != out[j].dist {
			return out[i].dist < out[j].dist
		}
		return out[i].rtt < out[j].rtt
	})
	return out
}

// line is a straight line max_m(rtt) = slope*rtt + intercept, clamped
// at 0, used both as a standalone physical-limit curve and as the
// extrapolation past a Quasi-Octant cut.
type line struct {
	slope     float64
	intercept float64
}

func (l line) at(rtt float64) float64 {
	v := l.slope*rtt + l.intercept
	if v < 0 {
		return 0
	}
	return v
}

// polyline is a piecewise-linear curve over ascending x (RTT), used
// for the Quasi-Octant hull edges and Spotter's moment curves. Beyond
// its last knot it continues along the final segment's slope (for
// Quasi-Octant this final segment is the extrapolated physical-limit
// line appended by the caller).
type polyline struct {
	x []float64
	y []float64
}

func newPolyline(pts [][2]float64) polyline {
	p := polyline{x: make([]float64, len(pts)), y: make([]float64, len(pts))}
	for i, pt := range pts {
		p.x[i] = pt[0]
		p.y[i] = pt[1]
	}
	return p
}

// at linearly interpolates p at v, clamping to the first/last segment
// outside its domain.
func (p polyline) at(v float64) float64 {
	n := len(p.x)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return p.y[0]
	}
	i := sort.SearchFloat64s(p.x, v)
	switch {
	case i <= 0:
		i = 1
	case i >= n:
		i = n - 1
	}
	x0, x1 := p.x[i-1], p.x[i]
	y0, y1 := p.y[i-1], p.y[i]
	if x1 == x0 {
		return y0
	}
	t := (v - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}

// clampRange clamps a (min, max) pair to [0, DistanceLimit], and
// repairs min > max by collapsing to the midpoint — this should only
// ever happen when a fit degenerates.
func clampRange(minM, maxM float64) (float64, float64) {
	clamp := func(v float64) float64 {
		if math.IsNaN(v) || v < 0 {
			return 0
		}
		if v > wgs84.DistanceLimit {
			return wgs84.DistanceLimit
		}
		return v
	}
	minM, maxM = clamp(minM), clamp(maxM)
	if minM > maxM {
		mid := (minM + maxM) / 2
		return mid, mid
	}
	return minM, maxM
}

func minFloat64(xs []float64) float64 {
	m := math.Inf(1)
	for _, x := range xs {
		if x < m {
			m = x
		}
	}
	return m
}

func warnNoConverge(who, reason string) {
	logrus.WithField("calibration", who).Warnf("optimizer did not converge: %s", reason)
}

// badObservation is a convenience constructor matching errs.BadObservation.
func badObservation(reason string) error {
	return &errs.BadObservation{Reason: reason}
}

// FitKind names which data-driven calibration NewWithFallback should
// attempt before falling back to PhysicalLimitsOnly.
type FitKind int

const (
	FitCBG FitKind = iota
	FitQuasiOctant
	FitSpotter
)

// NewWithFallback fits the named data-driven calibration and, if it
// fails to converge or the underlying fit returns an error (too few or
// too degenerate observations), falls back to
// NewPhysicalLimitsOnly(Empirical) instead — mirroring the probe
// pipeline's own behavior of never leaving a landmark without some
// usable distance band, data-driven or not. The returned bool reports
// whether the fallback was taken.
func NewWithFallback(kind FitKind, distsM, rttsMs []float64) (cal Calibration, usedFallback bool, err error) {
	var fit Calibration
	switch kind {
	case FitCBG:
		fit, err = NewCBG(distsM, rttsMs)
	case FitQuasiOctant:
		fit, err = NewQuasiOctant(distsM, rttsMs)
	case FitSpotter:
		fit, err = NewSpotter(distsM, rttsMs)
	default:
		return nil, false, badObservation("unknown calibration kind")
	}
	if err != nil || fit.Failed() {
		return NewPhysicalLimitsOnly(Empirical), true, nil
	}
	return fit, false, nil
}
