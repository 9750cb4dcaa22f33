// Copyright 2011 The Avalon Project Authors. All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package wgs84

import "math"

// DistanceLimit is half the equatorial circumference of the WGS84
// ellipsoid, in meters. No geodesic distance on Earth can exceed it.
const DistanceLimit = 20037508.0

const degree = math.Pi / 180

// Distance returns the geodesic distance in meters between two points
// given as (longitude, latitude) in decimal degrees.
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	s12, _, _ := Inverse(lat1*degree, lon1*degree, lat2*degree, lon2*degree)
	return s12
}

// DistanceAzimuth returns the geodesic distance in meters and the
// forward azimuth (degrees, clockwise from north) from point 1 to
// point 2, both given as (longitude, latitude) in decimal degrees.
func DistanceAzimuth(lon1, lat1, lon2, lat2 float64) (distM, azimuthDeg float64) {
	s12, azi1, _ := Inverse(lat1*degree, lon1*degree, lat2*degree, lon2*degree)
	return s12, azi1 / degree
}

// Destination returns the point reached by travelling distM meters from
// (lon, lat) along azimuthDeg (degrees clockwise from north). Longitude
// and latitude, in and out, are decimal degrees.
func Destination(lon, lat, azimuthDeg, distM float64) (lon2, lat2 float64) {
	lat2r, lon2r, _ := Forward(lat*degree, lon*degree, azimuthDeg*degree, distM)
	return lon2r / degree, lat2r / degree
}
