// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package location

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/peterstace/simplefeatures/geom"
)

// RegionSpec names a named polygon (typically a country or continent
// boundary) to carve a baseline Map down to.
type RegionSpec struct {
	Name    string
	Polygon orb.Ring
}

// CarveRegion restricts baseline's probability mass to region buffered
// outward by fuzzDeg degrees (the region polygon's own coordinate
// units — chosen by the caller to reflect the same positional
// uncertainty the grid's FuzzM represents spatially), renormalized.
// Because the wired geometry library has no stroke-and-join buffer
// primitive, the buffer is approximated as the union of region's ring
// with a disk at every (densified) vertex — accurate for the gently
// curved coastline/border polygons this is carving against, and exact
// in the fuzzDeg == 0 case.
func CarveRegion(baseline *Location, region orb.Ring, fuzzDeg float64) (*Location, error) {
	buffered, err := bufferRing(region, fuzzDeg)
	if err != nil {
		return nil, err
	}
	bounds := polygonBounds(buffered, nil)
	pmf, err := baseline.ProbabilityWithin(bounds)
	if err != nil {
		return nil, err
	}
	return newMaterializedLocation(baseline.Grid, pmf, bounds), nil
}

// CarveRegions carves one Location per RegionSpec out of the same
// baseline, in declaration order. A region whose carved Location turns
// out vacuous (the polygon covers no probability mass at all) is
// still returned — callers that persist regions should check Vacuous
// themselves rather than have this silently drop results.
func CarveRegions(baseline *Location, regions []RegionSpec, fuzzDeg float64) (map[string]*Location, error) {
	out := make(map[string]*Location, len(regions))
	for _, r := range regions {
		loc, err := CarveRegion(baseline, r.Polygon, fuzzDeg)
		if err != nil {
			return nil, fmt.Errorf("carving region %q: %w", r.Name, err)
		}
		out[r.Name] = loc
	}
	return out, nil
}

func bufferRing(ring orb.Ring, radiusDeg float64) (orb.Ring, error) {
	if radiusDeg <= 0 {
		closed := ring
		if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
			closed = append(append(orb.Ring{}, ring...), ring[0])
		}
		return closed, nil
	}

	base := polygonBounds(ring, nil)
	acc, err := base.toGeometry()
	if err != nil {
		return nil, err
	}

	step := radiusDeg / 4
	if step <= 0 {
		step = radiusDeg
	}
	for _, p := range densify(ring, step) {
		disk := diskPolygon(p, radiusDeg, 16)
		diskGeom := polygonBounds(disk, nil)
		dg, err := diskGeom.toGeometry()
		if err != nil {
			return nil, err
		}
		acc, err = geom.Union(acc, dg)
		if err != nil {
			return nil, err
		}
	}

	out, err := boundsFromGeometry(acc)
	if err != nil {
		return nil, err
	}
	return out.poly.exterior, nil
}

// densify inserts extra points along each edge of ring so that no gap
// between consecutive sample points exceeds step, so the vertex-disk
// union buffer approximation below doesn't leave gaps along long,
// nearly-straight edges.
func densify(ring orb.Ring, step float64) []orb.Point {
	if step <= 0 || len(ring) < 2 {
		return append([]orb.Point(nil), ring...)
	}
	var out []orb.Point
	for i := 0; i < len(ring)-1; i++ {
		p, q := ring[i], ring[i+1]
		out = append(out, p)
		dx, dy := q[0]-p[0], q[1]-p[1]
		length := math.Sqrt(dx*dx + dy*dy)
		if length == 0 {
			continue
		}
		n := int(length / step)
		for k := 1; k < n; k++ {
			t := float64(k) / float64(n)
			out = append(out, orb.Point{p[0] + t*dx, p[1] + t*dy})
		}
	}
	return out
}

// diskPolygon returns an n-vertex regular polygon approximating a
// circle of radiusDeg centered at p, in plain lon/lat degrees — a
// planar approximation, fine at the small radii region buffering uses.
func diskPolygon(center orb.Point, radiusDeg float64, n int) orb.Ring {
	ring := make(orb.Ring, n+1)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = orb.Point{center[0] + radiusDeg*math.Cos(theta), center[1] + radiusDeg*math.Sin(theta)}
	}
	ring[n] = ring[0]
	return ring
}
