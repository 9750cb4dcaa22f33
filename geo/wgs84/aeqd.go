// Copyright 2011 The Avalon Project Authors. All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package wgs84

// AzimuthalEquidistantBackProject returns nVertices points, each given
// as [longitude, latitude] in decimal degrees, forming the polygon
// obtained by back-projecting a planar circle of radius radiusM from an
// azimuthal-equidistant chart centered at (lon0, lat0).
//
// Every point on an AEQD chart at distance radiusM from its origin maps,
// by construction of the projection, to the point reached by following
// the geodesic of length radiusM from (lon0, lat0) at the corresponding
// bearing — so the back-projected circle is obtained directly from this
// package's Forward function, with no projection math of its own
// required. The caller is responsible for repairing antimeridian
// crossings and antipodal degeneracies in the resulting polyline (see
// the location package's bounds computation).
func AzimuthalEquidistantBackProject(lon0, lat0, radiusM float64, nVertices int) [][2]float64 {
	if nVertices < 3 {
		nVertices = 3
	}
	out := make([][2]float64, nVertices)
	for i := 0; i < nVertices; i++ {
		azimuth := 360 * float64(i) / float64(nVertices)
		lon, lat := Destination(lon0, lat0, azimuth, radiusM)
		out[i] = [2]float64{lon, lat}
	}
	return out
}
