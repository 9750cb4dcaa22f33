// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package ranging

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zackw/active-geolocator/calibration"
)

func TestMinMaxSoftSkirtZeroBeyondBound(t *testing.T) {
	cal := calibration.NewPhysicalLimitsOnly(calibration.Empirical)
	fn := NewMinMaxSoftSkirt(cal, []float64{20}, 5000)

	bound := fn.DistanceBound()
	pvals := fn.UnnormalizedPvals([]float64{bound + 1, bound * 2})
	for _, p := range pvals {
		assert.Zero(t, p, "must be zero beyond DistanceBound")
	}
}

func TestMinMaxSoftSkirtPlateauInsideBand(t *testing.T) {
	cal := calibration.NewPhysicalLimitsOnly(calibration.Empirical)
	fn := NewMinMaxSoftSkirt(cal, []float64{20}, 0)

	// the calibration-provided band and the empirical physical band
	// coincide here, so the plateau should cover most of the range.
	pvals := fn.UnnormalizedPvals([]float64{1})
	assert.Greater(t, pvals[0], 0.0)
}

func TestMinMaxSoftSkirtFuzzWidensBound(t *testing.T) {
	cal := calibration.NewPhysicalLimitsOnly(calibration.Physical)
	bare := NewMinMaxSoftSkirt(cal, []float64{10}, 0)
	fuzzed := NewMinMaxSoftSkirt(cal, []float64{10}, 2000)

	assert.InDelta(t, bare.DistanceBound()+2000, fuzzed.DistanceBound(), 1e-6)
}
