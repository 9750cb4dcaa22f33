// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package location

import (
	"io"
	"math"

	"github.com/zackw/active-geolocator/errs"
	"github.com/zackw/active-geolocator/grid"
	"github.com/zackw/active-geolocator/internal/cdf"
)

// Save writes l to a Location file (§6): a "location" table whose
// global attributes mirror the eight grid scalars plus lon_count,
// lat_count, nnz, centroid and covariance, and one row per nonzero PMF
// entry. Bounds are not persisted — cheap to recompute for a Map or a
// reloaded Location, and not meaningful for an Observation once its
// mass has been intersected away.
func (l *Location) Save(rw cdf.ReaderWriterAt) error {
	pmf, err := l.PMF()
	if err != nil {
		return err
	}

	var centroidLon, centroidLat float64
	var cov [3][3]float64
	if pmf.Vacuous() {
		centroidLon, centroidLat = math.NaN(), math.NaN()
	} else {
		centroidLon, centroidLat, err = l.Centroid()
		if err != nil {
			return err
		}
		cov, err = l.Covariance()
		if err != nil {
			return err
		}
	}

	type row struct {
		gx, gy   int32
		lon, lat float64
		prob     float32
	}
	var rows []row
	pmf.NonZero(func(i, j int, v float64) {
		rows = append(rows, row{int32(i), int32(j), l.Grid.Longitudes[i], l.Grid.Latitudes[j], float32(v)})
	})
	n := len(rows)

	h := cdf.NewHeader([]string{"row"}, []int{0})
	h.AddAttribute("", "TITLE", "location")
	h.AddAttribute("", "resolution", l.Grid.ResolutionM)
	h.AddAttribute("", "fuzz", l.Grid.FuzzM)
	h.AddAttribute("", "north", l.Grid.North)
	h.AddAttribute("", "south", l.Grid.South)
	h.AddAttribute("", "east", l.Grid.East)
	h.AddAttribute("", "west", l.Grid.West)
	h.AddAttribute("", "lon_spacing", l.Grid.LonSpacing)
	h.AddAttribute("", "lat_spacing", l.Grid.LatSpacing)
	h.AddAttribute("", "lon_count", int32(l.Grid.Nx()))
	h.AddAttribute("", "lat_count", int32(l.Grid.Ny()))
	h.AddAttribute("", "nnz", int32(n))
	h.AddAttribute("", "centroid", []float64{centroidLon, centroidLat})
	h.AddAttribute("", "covariance", flattenCov(cov))

	h.AddVariable("grid_x", []string{"row"}, []int32(nil))
	h.AddVariable("grid_y", []string{"row"}, []int32(nil))
	h.AddVariable("longitude", []string{"row"}, []float64(nil))
	h.AddVariable("latitude", []string{"row"}, []float64(nil))
	h.AddVariable("prob_mass", []string{"row"}, []float32(nil))

	if err := h.Define(); err != nil {
		return err
	}

	f, err := cdf.Create(rw, h)
	if err != nil {
		return err
	}

	gx := make([]int32, n)
	gy := make([]int32, n)
	lons := make([]float64, n)
	lats := make([]float64, n)
	probs := make([]float32, n)
	for k, r := range rows {
		gx[k], gy[k], lons[k], lats[k], probs[k] = r.gx, r.gy, r.lon, r.lat, r.prob
	}

	writeVar := func(name string, data interface{}) error {
		w := f.Writer(name, nil, []int{n})
		if w == nil {
			return &errs.BadFile{Reason: "header defines no variable " + name}
		}
		_, err := w.Write(data)
		return err
	}
	if err := writeVar("grid_x", gx); err != nil {
		return err
	}
	if err := writeVar("grid_y", gy); err != nil {
		return err
	}
	if err := writeVar("longitude", lons); err != nil {
		return err
	}
	if err := writeVar("latitude", lats); err != nil {
		return err
	}
	return writeVar("prob_mass", probs)
}

// Load reads back a Location file written by Save.
func Load(rw cdf.ReaderWriterAt) (*Location, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, &errs.BadFile{Reason: err.Error()}
	}
	h := f.Header

	resolution, ok1 := getFloatAttr(h, "resolution")
	fuzz, ok2 := getFloatAttr(h, "fuzz")
	north, ok3 := getFloatAttr(h, "north")
	south, ok4 := getFloatAttr(h, "south")
	east, ok5 := getFloatAttr(h, "east")
	west, ok6 := getFloatAttr(h, "west")
	lonSpacing, ok7 := getFloatAttr(h, "lon_spacing")
	latSpacing, ok8 := getFloatAttr(h, "lat_spacing")
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8) {
		return nil, &errs.BadFile{Reason: "location file missing a required grid scalar attribute"}
	}
	lonCount, ok9 := getIntAttr(h, "lon_count")
	latCount, ok10 := getIntAttr(h, "lat_count")
	nnz, ok11 := getIntAttr(h, "nnz")
	if !(ok9 && ok10 && ok11) {
		return nil, &errs.BadFile{Reason: "location file missing lon_count/lat_count/nnz"}
	}

	g := grid.FromSpacing(resolution, fuzz, north, south, east, west, lonSpacing, latSpacing)
	if g.Nx() != lonCount || g.Ny() != latCount {
		return nil, &errs.BadFile{Reason: "lon_count/lat_count disagree with the axis rebuilt from lon_spacing/lat_spacing"}
	}

	is := make([]int32, nnz)
	js := make([]int32, nnz)
	probs := make([]float32, nnz)

	readVar := func(name string, dst interface{}) error {
		r := f.Reader(name, nil, []int{nnz})
		if r == nil {
			return &errs.BadFile{Reason: "missing variable " + name}
		}
		_, err := r.Read(dst)
		if err != nil && err != io.EOF {
			return &errs.BadFile{Reason: err.Error()}
		}
		return nil
	}
	if err := readVar("grid_x", is); err != nil {
		return nil, err
	}
	if err := readVar("grid_y", js); err != nil {
		return nil, err
	}
	if err := readVar("prob_mass", probs); err != nil {
		return nil, err
	}

	iis := make([]int, nnz)
	jjs := make([]int, nnz)
	for k := range is {
		iis[k] = int(is[k])
		jjs[k] = int(js[k])
	}

	pmf := grid.FromTriplets(g.Nx(), g.Ny(), iis, jjs, probs)
	grid.NormalizeInPlace(pmf)

	loc := newMaterializedLocation(g, pmf, rectBounds(g.FullExtent()))

	if cv, ok := getFloatSliceAttr(h, "centroid"); ok && len(cv) == 2 && !math.IsNaN(cv[0]) {
		if covFlat, ok := getFloatSliceAttr(h, "covariance"); ok && len(covFlat) == 9 {
			loc.centroidLon, loc.centroidLat = cv[0], cv[1]
			loc.covariance = unflattenCov(covFlat)
			loc.haveCentroid = true
		}
	}
	return loc, nil
}
