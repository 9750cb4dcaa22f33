// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package location

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/peterstace/simplefeatures/geom"
	"github.com/sirupsen/logrus"

	"github.com/zackw/active-geolocator/errs"
	"github.com/zackw/active-geolocator/grid"
)

// Bounds is the region of the globe a Location's probability mass is
// confined to: either exactly an axis-aligned rectangle (the common
// case — a Map's grid extent, or the result of intersecting two
// rectangular bounds) or a polygon with holes, used by an Observation's
// back-projected disk and by region carving. rect is always kept as a
// tight bounding box over poly, so cheap axis-aligned rejection never
// needs the polygon machinery.
type Bounds struct {
	rect grid.Rect
	poly *boundsPolygon
}

type boundsPolygon struct {
	exterior orb.Ring
	holes    []orb.Ring
}

// rectBounds returns bounds that are exactly the given rectangle.
func rectBounds(r grid.Rect) Bounds {
	return Bounds{rect: r}
}

// polygonBounds returns bounds described precisely by a polygon
// (exterior ring plus optional holes), with rect set to its bounding
// box for fast rejection.
func polygonBounds(exterior orb.Ring, holes []orb.Ring) Bounds {
	return Bounds{rect: bboxOfRing(exterior), poly: &boundsPolygon{exterior: exterior, holes: holes}}
}

// Rect returns the bounds' axis-aligned bounding box.
func (b Bounds) Rect() grid.Rect { return b.rect }

// Contains reports whether (lon, lat) lies within the bounds.
func (b Bounds) Contains(lon, lat float64) bool {
	if lon < b.rect.West || lon >= b.rect.East || lat < b.rect.South || lat >= b.rect.North {
		return false
	}
	if b.poly == nil {
		return true
	}
	return ringsContain(b.poly.exterior, b.poly.holes, orb.Point{lon, lat})
}

func ringsContain(exterior orb.Ring, holes []orb.Ring, p orb.Point) bool {
	if !planar.RingContains(exterior, p) {
		return false
	}
	for _, h := range holes {
		if planar.RingContains(h, p) {
			return false
		}
	}
	return true
}

// Intersect returns the overlap of two bounds. ok is false when they
// do not overlap at all — a routine outcome (e.g. two observations on
// opposite sides of the planet), not an error.
func (b Bounds) Intersect(o Bounds) (Bounds, bool, error) {
	rect, ok := b.rect.Intersect(o.rect)
	if !ok {
		return Bounds{}, false, nil
	}
	if b.poly == nil && o.poly == nil {
		return rectBounds(rect), true, nil
	}
	bg, err := b.toGeometry()
	if err != nil {
		return Bounds{}, false, err
	}
	og, err := o.toGeometry()
	if err != nil {
		return Bounds{}, false, err
	}
	ig, err := geom.Intersection(bg, og)
	if err != nil {
		return Bounds{}, false, err
	}
	if ig.IsEmpty() {
		return Bounds{}, false, nil
	}
	out, err := boundsFromGeometry(ig)
	if err != nil {
		return Bounds{}, false, err
	}
	return out, true, nil
}

func differenceBounds(a, b Bounds) (Bounds, error) {
	ag, err := a.toGeometry()
	if err != nil {
		return Bounds{}, err
	}
	bg, err := b.toGeometry()
	if err != nil {
		return Bounds{}, err
	}
	dg, err := geom.Difference(ag, bg)
	if err != nil {
		return Bounds{}, err
	}
	if dg.IsEmpty() {
		return Bounds{}, &errs.DegenerateGeometry{Reason: "difference of bounds is empty"}
	}
	return boundsFromGeometry(dg)
}

// healSelfIntersections repairs a ring that may self-intersect (as the
// antimeridian-repair walk in observation.go can produce) by
// self-unioning it, the textbook buffer(0) trick.
func healSelfIntersections(exterior orb.Ring, holes []orb.Ring) (orb.Ring, []orb.Ring, error) {
	b := polygonBounds(exterior, holes)
	g, err := b.toGeometry()
	if err != nil {
		return nil, nil, err
	}
	healed, err := geom.Union(g, g)
	if err != nil {
		return nil, nil, err
	}
	out, err := boundsFromGeometry(healed)
	if err != nil {
		return nil, nil, err
	}
	if out.poly == nil {
		return ringFromRect(out.rect), nil, nil
	}
	return out.poly.exterior, out.poly.holes, nil
}

func (b Bounds) toGeometry() (geom.Geometry, error) {
	exterior := ringFromRect(b.rect)
	var holes []orb.Ring
	if b.poly != nil {
		exterior = b.poly.exterior
		holes = b.poly.holes
	}
	rings := make([]geom.LineString, 0, 1+len(holes))
	extLS, err := ringToLineString(exterior)
	if err != nil {
		return geom.Geometry{}, err
	}
	rings = append(rings, extLS)
	for _, h := range holes {
		hLS, err := ringToLineString(h)
		if err != nil {
			return geom.Geometry{}, err
		}
		rings = append(rings, hLS)
	}
	poly, err := geom.NewPolygon(rings)
	if err != nil {
		return geom.Geometry{}, err
	}
	return poly.AsGeometry(), nil
}

func boundsFromGeometry(g geom.Geometry) (Bounds, error) {
	switch {
	case g.IsPolygon():
		return boundsFromPolygon(g.AsPolygon())
	case g.IsMultiPolygon():
		mp := g.AsMultiPolygon()
		n := mp.NumPolygons()
		if n == 0 {
			return Bounds{}, &errs.DegenerateGeometry{Reason: "geometry op produced an empty multipolygon"}
		}
		best := mp.PolygonN(0)
		bestRing, err := lineStringToRing(best.ExteriorRing())
		if err != nil {
			return Bounds{}, err
		}
		bestArea := ringArea(bestRing)
		for i := 1; i < n; i++ {
			p := mp.PolygonN(i)
			r, err := lineStringToRing(p.ExteriorRing())
			if err != nil {
				return Bounds{}, err
			}
			if a := ringArea(r); a > bestArea {
				best, bestArea = p, a
			}
		}
		if n > 1 {
			logrus.WithField("count", n).Warn("bounds operation produced multiple disjoint polygons; keeping only the largest")
		}
		return boundsFromPolygon(best)
	default:
		return Bounds{}, &errs.DegenerateGeometry{Reason: "geometry op did not produce a polygon"}
	}
}

func boundsFromPolygon(p geom.Polygon) (Bounds, error) {
	exterior, err := lineStringToRing(p.ExteriorRing())
	if err != nil {
		return Bounds{}, err
	}
	var holes []orb.Ring
	for i := 0; i < p.NumInteriorRings(); i++ {
		h, err := lineStringToRing(p.InteriorRingN(i))
		if err != nil {
			return Bounds{}, err
		}
		holes = append(holes, h)
	}
	return polygonBounds(exterior, holes), nil
}

func ringToLineString(ring orb.Ring) (geom.LineString, error) {
	coords := make([]float64, 0, 2*(len(ring)+1))
	for _, p := range ring {
		coords = append(coords, p[0], p[1])
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		coords = append(coords, ring[0][0], ring[0][1])
	}
	seq := geom.NewSequence(coords, geom.DimXY)
	return geom.NewLineString(seq)
}

func lineStringToRing(ls geom.LineString) (orb.Ring, error) {
	seq := ls.Coordinates()
	n := seq.Length()
	ring := make(orb.Ring, n)
	for i := 0; i < n; i++ {
		xy := seq.GetXY(i)
		ring[i] = orb.Point{xy.X, xy.Y}
	}
	return ring, nil
}

func ringFromRect(r grid.Rect) orb.Ring {
	return orb.Ring{
		{r.West, r.South},
		{r.East, r.South},
		{r.East, r.North},
		{r.West, r.North},
		{r.West, r.South},
	}
}

func bboxOfRing(ring orb.Ring) grid.Rect {
	west, south := math.Inf(1), math.Inf(1)
	east, north := math.Inf(-1), math.Inf(-1)
	for _, p := range ring {
		west = math.Min(west, p[0])
		east = math.Max(east, p[0])
		south = math.Min(south, p[1])
		north = math.Max(north, p[1])
	}
	return grid.Rect{West: west, South: south, East: east, North: north}
}

// ringArea is the shoelace-formula signed area, used only to pick the
// largest member of a multipolygon — an ordering, not a geodetic
// measurement, so planar degrees are fine here.
func ringArea(ring orb.Ring) float64 {
	area := 0.0
	for i := 0; i < len(ring)-1; i++ {
		area += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return math.Abs(area / 2)
}
