// Copyright 2011 The Avalon Project Authors. All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package wgs84

import (
	"math"
	"testing"
)

func TestGeocentricRoundTrip(t *testing.T) {
	cases := []struct{ lon, lat, h float64 }{
		{0, 0, 0},
		{-122.4, 37.8, 10},
		{139.7, 35.7, 0},
		{0, 90, 0},
		{0, -90, 100},
		{179.9, -12.3, 50},
	}
	for _, c := range cases {
		x, y, z := ToGeocentric(c.lon, c.lat, c.h)
		lon2, lat2, h2 := FromGeocentric(x, y, z)

		if c.lat != 90 && c.lat != -90 {
			if e := math.Abs(lon2 - c.lon); e > 1e-7 {
				t.Errorf("lon round trip: want %v got %v", c.lon, lon2)
			}
		}
		if e := math.Abs(lat2 - c.lat); e > 1e-7 {
			t.Errorf("lat round trip: want %v got %v", c.lat, lat2)
		}
		if e := math.Abs(h2 - c.h); e > 1e-6 {
			t.Errorf("height round trip: want %v got %v", c.h, h2)
		}
	}
}

// TestGeocentricEquatorRadius checks a known value: a point on the
// equator at the reference meridian and zero height lies exactly
// WGS84_a meters from the Earth's center.
func TestGeocentricEquatorRadius(t *testing.T) {
	x, y, z := ToGeocentric(0, 0, 0)
	r := math.Sqrt(x*x + y*y + z*z)
	if e := math.Abs(r - WGS84_a); e > 1e-6 {
		t.Errorf("equatorial radius: want %v got %v", WGS84_a, r)
	}
}
