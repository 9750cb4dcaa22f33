// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package location

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zackw/active-geolocator/grid"
)

func TestCarveRegionRestrictsToPolygon(t *testing.T) {
	g := testGrid()
	baseline := uniformLocation(g)

	square := orb.Ring{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
	carved, err := CarveRegion(baseline, square, 0)
	require.NoError(t, err)

	vacuous, err := carved.Vacuous()
	require.NoError(t, err)
	assert.False(t, vacuous)

	pmf, err := carved.PMF()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, grid.Sum(pmf), 1e-9)

	pmf.NonZero(func(i, j int, v float64) {
		lon, lat := g.Longitudes[i], g.Latitudes[j]
		assert.True(t, lon >= -1 && lon <= 1, "lon %v outside carved region", lon)
		assert.True(t, lat >= -1 && lat <= 1, "lat %v outside carved region", lat)
	})
}

func TestCarveRegionsBatch(t *testing.T) {
	g := testGrid()
	baseline := uniformLocation(g)

	regions := []RegionSpec{
		{Name: "west", Polygon: orb.Ring{{-5, -5}, {-1, -5}, {-1, 5}, {-5, 5}, {-5, -5}}},
		{Name: "east", Polygon: orb.Ring{{1, -5}, {5, -5}, {5, 5}, {1, 5}, {1, -5}}},
	}

	out, err := CarveRegions(baseline, regions, 0)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Contains(t, out, "west")
	assert.Contains(t, out, "east")
}
