// Copyright 2011 The Avalon Project Authors. All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package wgs84

import (
	"math"
	"testing"
)

// TestAzimuthalEquidistantBackProjectRadius checks that every vertex of
// the back-projected polygon lies radiusM from the center, which is the
// defining property of an azimuthal equidistant chart's circle.
func TestAzimuthalEquidistantBackProjectRadius(t *testing.T) {
	lon0, lat0 := -87.65, 41.85
	radiusM := 250_000.0
	poly := AzimuthalEquidistantBackProject(lon0, lat0, radiusM, 16)

	if len(poly) != 16 {
		t.Fatalf("want 16 vertices, got %d", len(poly))
	}
	for i, p := range poly {
		d := Distance(lon0, lat0, p[0], p[1])
		if e := math.Abs(d - radiusM); e > 1 {
			t.Errorf("vertex %d: distance %v want %v", i, d, radiusM)
		}
	}
}

func TestAzimuthalEquidistantBackProjectMinVertices(t *testing.T) {
	poly := AzimuthalEquidistantBackProject(0, 0, 1000, 1)
	if len(poly) != 3 {
		t.Errorf("want floor of 3 vertices, got %d", len(poly))
	}
}
