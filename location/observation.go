// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package location

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/zackw/active-geolocator/errs"
	"github.com/zackw/active-geolocator/geo/wgs84"
	"github.com/zackw/active-geolocator/grid"
	"github.com/zackw/active-geolocator/ranging"
)

// NewObservation builds a Location from one RTT measurement against a
// landmark at (refLon, refLat): its bounds are the disk of radius
// fn.DistanceBound() around the landmark (antimeridian-repaired, and
// inverted to grid-minus-disk if the disk is so large it wraps past
// its own antipode), and its probability mass is fn evaluated at the
// geodesic distance from the landmark to every grid cell the disk
// covers — never the dense double loop the original implementation
// used.
func NewObservation(g *grid.Grid, refLon, refLat float64, fn ranging.Function) *Location {
	l := &Location{Grid: g}
	l.computeBounds = func() (Bounds, error) {
		return computeObservationBounds(g, refLon, refLat, fn)
	}
	l.materialize = func(within Bounds) (*grid.PMF, error) {
		var is, js []int
		var dists []float64
		rect := within.Rect()
		I, J := grid.MaskIndices(rect, g.Longitudes, g.Latitudes)
		for i := I.Lo; i < I.Hi; i++ {
			lon := g.Longitudes[i]
			for j := J.Lo; j < J.Hi; j++ {
				lat := g.Latitudes[j]
				if !within.Contains(lon, lat) {
					continue
				}
				is = append(is, i)
				js = append(js, j)
				dists = append(dists, wgs84.Distance(refLon, refLat, lon, lat))
			}
		}
		pvals := fn.UnnormalizedPvals(dists)
		pmf := grid.FromIndexedValues(g.Nx(), g.Ny(), is, js, pvals)
		grid.NormalizeInPlace(pmf)
		return pmf, nil
	}
	return l
}

// almostAntipodalRadiusM is the outer-radius threshold past which a
// back-projected disk is taken to cover the whole grid outright, rather
// than be back-projected and antimeridian-repaired: close enough to the
// antipode that the AEQD back-projection becomes numerically unreliable.
// Matches the original source's geometry module (DiskOnGlobe) exactly,
// not wgs84.DistanceLimit (half the equatorial circumference, ~62.5km
// further out), which is a different, larger bound.
const almostAntipodalRadiusM = 19975000

// computeObservationBounds follows DiskOnGlobe from the original
// source's geometry module: back-project a circle of radius r around
// the reference point using the azimuthal-equidistant projection
// centered there, repair any antimeridian crossing in its boundary,
// heal the resulting self-intersections, and invert to (full grid
// minus disk) if the disk does not contain its own center — which
// happens once r exceeds roughly half the planet's circumference.
func computeObservationBounds(g *grid.Grid, refLon, refLat float64, fn ranging.Function) (Bounds, error) {
	r := fn.DistanceBound()
	if r > almostAntipodalRadiusM {
		return rectBounds(g.FullExtent()), nil
	}

	pts := wgs84.AzimuthalEquidistantBackProject(refLon, refLat, r, 64)
	ring := make(orb.Ring, len(pts)+1)
	for i, p := range pts {
		ring[i] = orb.Point{p[0], p[1]}
	}
	ring[len(pts)] = ring[0]

	repaired := repairAntimeridian(ring)
	healedExt, healedHoles, err := healSelfIntersections(repaired, nil)
	if err != nil {
		return Bounds{}, &errs.DegenerateGeometry{Reason: "antimeridian repair healing failed: " + err.Error()}
	}

	origin := orb.Point{refLon, refLat}
	if ringsContain(healedExt, healedHoles, origin) {
		result := polygonBounds(healedExt, healedHoles)
		if !result.Contains(refLon, refLat) {
			return Bounds{}, &errs.DegenerateGeometry{Reason: "observation bounds do not contain the reference point"}
		}
		return result, nil
	}

	full := rectBounds(g.FullExtent())
	disk := polygonBounds(healedExt, healedHoles)
	inverted, err := differenceBounds(full, disk)
	if err != nil {
		return Bounds{}, &errs.DegenerateGeometry{Reason: "antipodal inversion failed: " + err.Error()}
	}
	if !inverted.Contains(refLon, refLat) {
		return Bounds{}, &errs.DegenerateGeometry{Reason: "observation bounds do not contain the reference point after antipodal inversion"}
	}
	return inverted, nil
}

// repairAntimeridian walks a ring's consecutive vertex pairs and, at
// any edge crossing more than 180 degrees of longitude in one step
// (the projected boundary having wrapped around the antimeridian),
// inserts four auxiliary vertices routing the edge out to the near
// pole and back in on the other side, so the resulting ring stays
// within [-180, 180] without an apparent jump across the whole globe.
func repairAntimeridian(ring orb.Ring) orb.Ring {
	out := make(orb.Ring, 0, len(ring)*2)
	for i := 0; i < len(ring); i++ {
		out = append(out, ring[i])
		if i == len(ring)-1 {
			break
		}
		p, q := ring[i], ring[i+1]
		if math.Abs(q[0]-p[0]) > 180 {
			pole := 90.0
			if p[1] < 0 {
				pole = -90.0
			}
			west, east := -180.0, 180.0
			if p[0] >= 0 {
				west, east = 180.0, -180.0
			}
			out = append(out,
				orb.Point{west, p[1]},
				orb.Point{west, pole},
				orb.Point{east, pole},
				orb.Point{east, q[1]},
			)
		}
	}
	return out
}
