// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package grid defines the rectangular lon/lat grid that every Location
// in this module shares, and the sparse masking/probability operations
// over it. Grids are immutable once built and compared by value: two
// Locations may only be combined when their grids match exactly.
package grid

import "math"

// wgs84 equatorial radius and flattening, used to turn a resolution in
// meters into axis spacings in degrees.
const (
	wgs84A = 6378137.0
	wgs84F = 1.0 / 298.257223563
)

// Grid is the eight-scalar-plus-two-axis-vector description of a
// quantized lon/lat surface.
type Grid struct {
	ResolutionM float64
	FuzzM       float64
	North       float64
	South       float64
	East        float64
	West        float64
	LonSpacing  float64 // degrees
	LatSpacing  float64 // degrees

	Longitudes []float64 // ascending, length Nx
	Latitudes  []float64 // ascending, length Ny
}

// New builds a Grid covering [west, east] x [south, north] at the given
// resolution (meters) and fuzz radius (meters). Spacing in degrees is
// derived from the WGS84 ellipsoid: longitude spacing uses the local
// parallel's radius at the grid's mean latitude, latitude spacing uses
// the meridian radius of curvature.
func New(resolutionM, fuzzM, north, south, east, west float64) *Grid {
	meanLat := (north + south) / 2 * math.Pi / 180
	sinLat := math.Sin(meanLat)
	e2 := 2*wgs84F - wgs84F*wgs84F

	// radius of curvature in the meridian (north-south) and in the
	// prime vertical (used for the east-west parallel radius)
	m := wgs84A * (1 - e2) / math.Pow(1-e2*sinLat*sinLat, 1.5)
	n := wgs84A / math.Sqrt(1-e2*sinLat*sinLat)

	latSpacing := (resolutionM / m) * 180 / math.Pi
	lonSpacing := (resolutionM / (n * math.Cos(meanLat))) * 180 / math.Pi

	g := &Grid{
		ResolutionM: resolutionM,
		FuzzM:       fuzzM,
		North:       north,
		South:       south,
		East:        east,
		West:        west,
		LonSpacing:  lonSpacing,
		LatSpacing:  latSpacing,
	}
	g.Longitudes = axis(west, east, lonSpacing)
	g.Latitudes = axis(south, north, latSpacing)
	return g
}

// axis builds the ascending sample points of an axis from lo to hi at
// the given spacing. If hi-lo spans a full 360 degree wrap (the
// longitude axis circling the globe) the final, coincident-with-lo
// column is dropped.
func axis(lo, hi, spacing float64) []float64 {
	span := hi - lo
	n := int(math.Round(span/spacing)) + 1
	full := math.Abs(span-360) < 1e-9
	if full {
		n--
	}
	if n < 1 {
		n = 1
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*spacing
	}
	return out
}

// FromAxes builds a Grid directly from already-computed scalars and
// axis vectors, as read back from a Location file (§6), bypassing the
// curvature-derived spacing New recomputes from resolution and extent.
func FromAxes(resolutionM, fuzzM, north, south, east, west, lonSpacing, latSpacing float64, longitudes, latitudes []float64) *Grid {
	return &Grid{
		ResolutionM: resolutionM,
		FuzzM:       fuzzM,
		North:       north,
		South:       south,
		East:        east,
		West:        west,
		LonSpacing:  lonSpacing,
		LatSpacing:  latSpacing,
		Longitudes:  longitudes,
		Latitudes:   latitudes,
	}
}

// FromSpacing builds a Grid from its eight scalars alone, reconstructing
// the axis vectors with the same axis() stepping grid.New uses, but from
// an already-known lonSpacing/latSpacing rather than re-deriving it from
// resolutionM. A Location file (§6) stores lon_spacing/lat_spacing but
// not the axis vectors themselves; calling axis() again with the exact
// spacing that produced the original Grid reconstructs bit-identical
// Longitudes/Latitudes, so a reloaded Location's grid compares Equal to
// the Map/Observation it was built from.
func FromSpacing(resolutionM, fuzzM, north, south, east, west, lonSpacing, latSpacing float64) *Grid {
	return &Grid{
		ResolutionM: resolutionM,
		FuzzM:       fuzzM,
		North:       north,
		South:       south,
		East:        east,
		West:        west,
		LonSpacing:  lonSpacing,
		LatSpacing:  latSpacing,
		Longitudes:  axis(west, east, lonSpacing),
		Latitudes:   axis(south, north, latSpacing),
	}
}

// Nx is the number of longitude samples.
func (g *Grid) Nx() int { return len(g.Longitudes) }

// Ny is the number of latitude samples.
func (g *Grid) Ny() int { return len(g.Latitudes) }

// Equal reports whether two grids have identical scalars and identical
// axis vectors — the precondition for combining two Locations.
func (g *Grid) Equal(o *Grid) bool {
	if g == o {
		return true
	}
	if g == nil || o == nil {
		return false
	}
	if g.ResolutionM != o.ResolutionM ||
		g.FuzzM != o.FuzzM ||
		g.North != o.North ||
		g.South != o.South ||
		g.East != o.East ||
		g.West != o.West ||
		g.LonSpacing != o.LonSpacing ||
		g.LatSpacing != o.LatSpacing {
		return false
	}
	if len(g.Longitudes) != len(o.Longitudes) || len(g.Latitudes) != len(o.Latitudes) {
		return false
	}
	for i := range g.Longitudes {
		if g.Longitudes[i] != o.Longitudes[i] {
			return false
		}
	}
	for i := range g.Latitudes {
		if g.Latitudes[i] != o.Latitudes[i] {
			return false
		}
	}
	return true
}

// Rect is an axis-aligned lon/lat rectangle, west/south inclusive,
// east/north exclusive, matching the bisect semantics of mask_indices.
type Rect struct {
	West, South, East, North float64
}

// FullExtent returns the rectangle covering the whole grid.
func (g *Grid) FullExtent() Rect {
	return Rect{West: g.West, South: g.South, East: g.East, North: g.North}
}

// Intersect returns the axis-aligned intersection of two rectangles. ok
// is false if they do not overlap.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		West:  math.Max(r.West, o.West),
		South: math.Max(r.South, o.South),
		East:  math.Min(r.East, o.East),
		North: math.Min(r.North, o.North),
	}
	return out, out.West < out.East && out.South < out.North
}
