// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package location implements the probability-mass-over-a-grid object
// model: a Location is a PMF plus the grid it is defined over, built
// either from a baseline prior (Map), from a single RTT observation
// against a landmark (Observation), or from intersecting two existing
// Locations. Every expensive field — bounds, the materialized PMF,
// centroid and covariance — is computed lazily and cached once, never
// recomputed, per the state machine Fresh -> Bounded -> Materialized ->
// Full.
package location

import (
	"github.com/zackw/active-geolocator/errs"
	"github.com/zackw/active-geolocator/grid"
)

// Location is a probability mass function over a shared Grid, together
// with the lazily-computed bounds it is confined to.
type Location struct {
	Grid *grid.Grid

	haveBounds bool
	bounds     Bounds
	// computeBounds is nil for a Location whose bounds are already
	// known at construction (Map, an intersection result, a region, a
	// file load); only Observation defers bounds to first use.
	computeBounds func() (Bounds, error)

	haveP   bool
	pmf     *grid.PMF
	vacuous bool
	// materialize computes this Location's probability mass restricted
	// to within, which must already be a subset of its own bounds.
	materialize func(within Bounds) (*grid.PMF, error)

	haveCentroid             bool
	centroidLon, centroidLat float64
	covariance               [3][3]float64
}

// newMaterializedLocation builds a Location whose PMF is already known
// in full (a Map's baseline, an intersection's product, a carved
// region, a loaded file): masking further down to a narrower bounds is
// just re-reading that same PMF.
func newMaterializedLocation(g *grid.Grid, pmf *grid.PMF, bounds Bounds) *Location {
	l := &Location{Grid: g}
	l.bounds, l.haveBounds = bounds, true
	base := pmf
	l.materialize = func(within Bounds) (*grid.PMF, error) {
		out := base.MaskedByPredicate(g, within.Rect(), within.Contains)
		grid.NormalizeInPlace(out)
		return out, nil
	}
	return l
}

// vacuousLocation builds a Location carrying no probability mass at
// all, over the given bounds.
func vacuousLocation(g *grid.Grid, bounds Bounds) *Location {
	l := &Location{Grid: g}
	l.bounds, l.haveBounds = bounds, true
	zero := grid.Empty(g)
	l.pmf, l.haveP, l.vacuous = zero, true, true
	l.materialize = func(within Bounds) (*grid.PMF, error) { return grid.Empty(g), nil }
	return l
}

// Bounds returns the region this Location's probability mass is
// confined to, computing it on first use for an Observation.
func (l *Location) Bounds() (Bounds, error) {
	if l.haveBounds {
		return l.bounds, nil
	}
	b, err := l.computeBounds()
	if err != nil {
		return Bounds{}, err
	}
	l.bounds, l.haveBounds = b, true
	return l.bounds, nil
}

// PMF returns this Location's own probability mass function, over its
// own full bounds, computing and caching it on first use.
func (l *Location) PMF() (*grid.PMF, error) {
	if l.haveP {
		return l.pmf, nil
	}
	self, err := l.Bounds()
	if err != nil {
		return nil, err
	}
	p, err := l.materialize(self)
	if err != nil {
		return nil, err
	}
	l.pmf, l.haveP = p, true
	l.vacuous = p.Vacuous()
	return l.pmf, nil
}

// Vacuous reports whether this Location carries no probability mass.
func (l *Location) Vacuous() (bool, error) {
	if !l.haveP {
		if _, err := l.PMF(); err != nil {
			return false, err
		}
	}
	return l.vacuous, nil
}

// ProbabilityWithin computes (without caching) this Location's
// probability mass restricted to requested intersected with its own
// bounds: mask-and-renormalize for a Map or an already-materialized
// Location, or a ranging-function evaluation for an Observation. This
// is the hook Intersect uses to combine two Locations without either
// one ever materializing more of the grid than the other needs.
func (l *Location) ProbabilityWithin(requested Bounds) (*grid.PMF, error) {
	self, err := l.Bounds()
	if err != nil {
		return nil, err
	}
	within, ok, err := self.Intersect(requested)
	if err != nil {
		return nil, err
	}
	if !ok {
		return grid.Empty(l.Grid), nil
	}
	return l.materialize(within)
}

// Intersect combines two Locations sharing the same grid: their
// probability mass is multiplied cell-by-cell (Hadamard product) over
// the intersection of their bounds, then renormalized. Either input
// being vacuous in the shared region, or the product summing to zero,
// makes the result vacuous.
func Intersect(a, b *Location) (*Location, error) {
	if !a.Grid.Equal(b.Grid) {
		return nil, &errs.GridMismatch{Reason: "locations do not share identical grid parameters"}
	}
	ab, err := a.Bounds()
	if err != nil {
		return nil, err
	}
	bb, err := b.Bounds()
	if err != nil {
		return nil, err
	}
	shared, ok, err := ab.Intersect(bb)
	if err != nil {
		return nil, err
	}
	if !ok {
		return vacuousLocation(a.Grid, rectBounds(a.Grid.FullExtent())), nil
	}

	pa, err := a.materializeOwn(shared)
	if err != nil {
		return nil, err
	}
	pb, err := b.materializeOwn(shared)
	if err != nil {
		return nil, err
	}
	if pa.Vacuous() || pb.Vacuous() {
		return vacuousLocation(a.Grid, shared), nil
	}

	product := grid.SparseHadamard(pa, pb)
	sum := grid.NormalizeInPlace(product)
	if sum == 0 {
		return vacuousLocation(a.Grid, shared), nil
	}
	return newMaterializedLocation(a.Grid, product, shared), nil
}

// materializeOwn computes this Location's mass within a bounds that is
// already known to be a subset of its own (the caller has already
// intersected the two bounds), skipping the redundant self-intersect
// ProbabilityWithin would otherwise perform.
func (l *Location) materializeOwn(within Bounds) (*grid.PMF, error) {
	return l.materialize(within)
}

// Intersection is the method form of Intersect.
func (l *Location) Intersection(other *Location) (*Location, error) {
	return Intersect(l, other)
}
