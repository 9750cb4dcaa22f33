// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package calibration

// PhysicalLimitsMode selects which pair of hard-physics straight lines
// PhysicalLimitsOnly uses.
type PhysicalLimitsMode int

const (
	// Physical bounds the maximum plausible speed at 200,000 km/s
	// (about two thirds of light speed in vacuum); since RTT measures a
	// round trip, that is 100,000 m of distance per millisecond of RTT.
	Physical PhysicalLimitsMode = iota
	// Empirical additionally accounts for a fixed ~55ms processing
	// delay observed in real landmark RTTs.
	Empirical
)

// PhysicalLimitsOnly is the calibration used when no training data is
// available: two straight lines bounding distance purely from speed
// limits, no fitting involved, so it never fails to converge.
type PhysicalLimitsOnly struct {
	mode PhysicalLimitsMode
	max  line
	min  line
}

// NewPhysicalLimitsOnly builds the fixed physical-limit calibration
// for the given mode.
func NewPhysicalLimitsOnly(mode PhysicalLimitsMode) *PhysicalLimitsOnly {
	p := &PhysicalLimitsOnly{mode: mode}
	switch mode {
	case Physical:
		p.max = line{slope: 100000, intercept: 0}
		p.min = line{slope: 0, intercept: 0}
	default: // Empirical
		p.max = line{slope: 76500, intercept: 0}
		p.min = line{slope: 55000, intercept: -55 * 55000}
	}
	return p
}

func (p *PhysicalLimitsOnly) DistanceRange(rtts []float64) (minM, maxM float64) {
	if len(rtts) == 0 {
		return 0, 0
	}
	minRTT := minFloat64(rtts)
	return clampRange(p.min.at(minRTT), p.max.at(minRTT))
}

// Failed is always false: this calibration has nothing to converge.
func (p *PhysicalLimitsOnly) Failed() bool { return false }
