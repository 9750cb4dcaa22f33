// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zackw/active-geolocator/grid"
)

// constantDiskFunction is a minimal ranging.Function for tests: equal
// mass at every distance inside its bound, zero beyond it.
type constantDiskFunction struct {
	bound float64
}

func (f constantDiskFunction) DistanceBound() float64 { return f.bound }

func (f constantDiskFunction) UnnormalizedPvals(distances []float64) []float64 {
	out := make([]float64, len(distances))
	for i, d := range distances {
		if d <= f.bound {
			out[i] = 1
		}
	}
	return out
}

func TestObservationBoundsContainReferencePoint(t *testing.T) {
	g := grid.New(50000, 5000, 80, -80, 180, -180)
	obs := NewObservation(g, 10, 20, constantDiskFunction{bound: 500000})

	b, err := obs.Bounds()
	require.NoError(t, err)
	assert.True(t, b.Contains(10, 20))
}

func TestObservationMaterializesWithinDiskOnly(t *testing.T) {
	g := grid.New(50000, 5000, 80, -80, 180, -180)
	obs := NewObservation(g, 10, 20, constantDiskFunction{bound: 300000})

	pmf, err := obs.PMF()
	require.NoError(t, err)
	assert.False(t, pmf.Vacuous())
	assert.InDelta(t, 1.0, grid.Sum(pmf), 1e-9)
}

func TestObservationHugeBoundCoversFullGrid(t *testing.T) {
	g := grid.New(200000, 5000, 80, -80, 180, -180)
	obs := NewObservation(g, 0, 0, constantDiskFunction{bound: 25000000})

	b, err := obs.Bounds()
	require.NoError(t, err)
	full := g.FullExtent()
	assert.Equal(t, full, b.Rect())
}

// TestObservationAntipodalInversionExcludesFarCap is spec §8 property 8,
// literally: a bound just past almostAntipodalRadiusM (19 975 000 m) but
// still well short of wgs84.DistanceLimit must take the antipodal
// "grid minus disk" path, excluding a small cap around the near-antipode
// of the reference point rather than covering the whole grid outright.
func TestObservationAntipodalInversionExcludesFarCap(t *testing.T) {
	g := grid.New(200000, 5000, 80, -80, 180, -180)
	obs := NewObservation(g, 0, 0, constantDiskFunction{bound: 19990000})

	b, err := obs.Bounds()
	require.NoError(t, err)

	assert.True(t, b.Contains(0, 0), "bounds must still contain the reference point")
	assert.False(t, b.Contains(180, 0), "bounds must exclude the cap around the antipode")

	full := g.FullExtent()
	assert.NotEqual(t, full, b.Rect(), "an almost-antipodal but sub-threshold radius must not fall back to the whole-grid shortcut")
}

// TestObservationAlmostAntipodalThresholdIsSpecConstant pins the exact
// cutover value spec §4.F step 1 names (19 975 000 m), distinct from
// wgs84.DistanceLimit (20 037 508 m): a bound just above the spec
// threshold but still below DistanceLimit must already take the
// whole-grid shortcut.
func TestObservationAlmostAntipodalThresholdIsSpecConstant(t *testing.T) {
	g := grid.New(200000, 5000, 80, -80, 180, -180)
	obs := NewObservation(g, 0, 0, constantDiskFunction{bound: almostAntipodalRadiusM + 1})

	b, err := obs.Bounds()
	require.NoError(t, err)
	full := g.FullExtent()
	assert.Equal(t, full, b.Rect())
}
