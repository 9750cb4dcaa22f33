// Copyright 2011 The Avalon Project Authors. All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package wgs84

import "math"

// eccentricity squared and second eccentricity squared, derived from
// the package's WGS84_a/WGS84_f the same way latlon-ellipsoidal-datum.go
// derives them from an arbitrary ellipsoid.
var (
	_geocentE2  = 2*WGS84_f - WGS84_f*WGS84_f
	_geocentEp2 = _geocentE2 / (1 - _geocentE2)
	_geocentB   = WGS84_a * (1 - WGS84_f)
)

// ToGeocentric converts a geodetic (longitude, latitude, height) point,
// in decimal degrees and meters, to geocentric (Earth-centered,
// Earth-fixed) Cartesian coordinates in meters.
func ToGeocentric(lonDeg, latDeg, hM float64) (x, y, z float64) {
	phi := latDeg * degree
	lambda := lonDeg * degree

	sinPhi, cosPhi := math.Sincos(phi)
	sinLambda, cosLambda := math.Sincos(lambda)

	// nu = radius of curvature in the prime vertical
	nu := WGS84_a / math.Sqrt(1-_geocentE2*sinPhi*sinPhi)

	x = (nu + hM) * cosPhi * cosLambda
	y = (nu + hM) * cosPhi * sinLambda
	z = (nu*(1-_geocentE2) + hM) * sinPhi
	return
}

// FromGeocentric converts geocentric Cartesian coordinates (meters) back
// to geodetic (longitude, latitude, height) in decimal degrees and
// meters, using Bowring's (1985) closed-form formulation.
func FromGeocentric(x, y, z float64) (lonDeg, latDeg, hM float64) {
	p := math.Hypot(x, y)
	r := math.Hypot(p, z)

	if p == 0 {
		// On the polar axis; longitude is undefined, pick 0.
		lat := math.Copysign(90, z)
		return 0, lat, r - _geocentB
	}

	tanBeta := (_geocentB * z) / (WGS84_a * p) * (1 + _geocentEp2*_geocentB/r)
	sinBeta := tanBeta / math.Sqrt(1+tanBeta*tanBeta)
	cosBeta := sinBeta / tanBeta

	var phi float64
	if !math.IsNaN(cosBeta) {
		phi = math.Atan2(
			z+_geocentEp2*_geocentB*sinBeta*sinBeta*sinBeta,
			p-_geocentE2*WGS84_a*cosBeta*cosBeta*cosBeta)
	}

	lambda := math.Atan2(y, x)

	sinPhi, cosPhi := math.Sincos(phi)
	nu := WGS84_a / math.Sqrt(1-_geocentE2*sinPhi*sinPhi)
	h := p*cosPhi + z*sinPhi - WGS84_a*WGS84_a/nu

	return lambda / degree, phi / degree, h
}
