// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package ranging

import (
	"sort"

	"github.com/zackw/active-geolocator/calibration"
	"github.com/zackw/active-geolocator/geo/wgs84"
)

// skirtValues are the piecewise-linear function's values at the six
// sorted endpoints of MinMaxSoftSkirt: a plateau at the
// calibration-accepted band, falling off linearly to the hard physical
// limits on either side.
var skirtValues = [6]float64{0, 0.75, 1, 1, 0.75, 0}

// MinMaxSoftSkirt ranges by computing three (min, max) distance bands
// from the same RTTs — the supplied calibration, the empirical
// physical-limits line, and the absolute physical-limits line — then
// building a piecewise-linear "skirt" over their six sorted endpoints:
// a plateau of 1 where all three bands overlap, falling to 0.75 and
// then 0 at the outermost, least plausible limits.
type MinMaxSoftSkirt struct {
	knots [6]float64
	fuzz  float64
}

// NewMinMaxSoftSkirt builds the ranging function for one RTT
// observation. fuzzM is the grid's uncertainty radius: it widens
// DistanceBound (and so the bounding polygon an Observation derives
// from it) without itself contributing probability mass.
func NewMinMaxSoftSkirt(cal calibration.Calibration, rtts []float64, fuzzM float64) *MinMaxSoftSkirt {
	calMin, calMax := cal.DistanceRange(rtts)
	empMin, empMax := calibration.NewPhysicalLimitsOnly(calibration.Empirical).DistanceRange(rtts)
	physMin, physMax := calibration.NewPhysicalLimitsOnly(calibration.Physical).DistanceRange(rtts)

	knots := [6]float64{calMin, calMax, empMin, empMax, physMin, physMax}
	for i, v := range knots {
		knots[i] = clamp(v)
	}
	sort.Float64s(knots[:])

	return &MinMaxSoftSkirt{knots: knots, fuzz: fuzzM}
}

// DistanceBound is the outermost skirt knot plus the grid's fuzz
// radius, clamped to wgs84.DistanceLimit.
func (m *MinMaxSoftSkirt) DistanceBound() float64 {
	return clamp(m.knots[5] + m.fuzz)
}

// UnnormalizedPvals evaluates the soft-skirt piecewise-linear function
// at each distance.
func (m *MinMaxSoftSkirt) UnnormalizedPvals(distances []float64) []float64 {
	out := make([]float64, len(distances))
	for i, d := range distances {
		out[i] = m.at(d)
	}
	return out
}

func (m *MinMaxSoftSkirt) at(d float64) float64 {
	if d < m.knots[0] || d > m.knots[5] {
		return 0
	}
	for i := 1; i < len(m.knots); i++ {
		if d <= m.knots[i] {
			x0, x1 := m.knots[i-1], m.knots[i]
			y0, y1 := skirtValues[i-1], skirtValues[i]
			if x1 == x0 {
				return y1
			}
			t := (d - x0) / (x1 - x0)
			return y0 + t*(y1-y0)
		}
	}
	return 0
}

// clamp keeps a distance within [0, DistanceLimit], matching the
// clamping every calibration and ranging computation in this module
// applies before returning a distance to a caller.
func clamp(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > wgs84.DistanceLimit {
		return wgs84.DistanceLimit
	}
	return d
}
