// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package location

import (
	"fmt"
	"io"

	"github.com/james-bowman/sparse"

	"github.com/zackw/active-geolocator/errs"
	"github.com/zackw/active-geolocator/grid"
	"github.com/zackw/active-geolocator/internal/cdf"
)

// NewMapFromFile reads a baseline map file (§6): a "baseline" dataset
// of shape Nlat x Nlon (or its transpose — both are accepted) giving
// the prior probability of hosting a landmark at each grid cell, plus
// the grid's eight scalars and its axis vectors as global attributes.
// The matrix is loaded sparse and renormalized to sum 1, matching the
// original Map.__init__'s "baseline /= baseline.sum()".
func NewMapFromFile(rw cdf.ReaderWriterAt, path string) (*Location, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, &errs.BadFile{Path: path, Reason: err.Error()}
	}
	return newMapFromCDF(f, path)
}

func newMapFromCDF(f *cdf.File, path string) (*Location, error) {
	h := f.Header
	g, err := gridFromAttributes(h, path)
	if err != nil {
		return nil, err
	}

	lengths := h.Lengths("baseline")
	if len(lengths) != 2 {
		return nil, &errs.BadFile{Path: path, Reason: "baseline dataset is not two-dimensional"}
	}
	lonMajor, err := baselineOrientation(lengths, g, path)
	if err != nil {
		return nil, err
	}

	r := f.Reader("baseline", nil, nil)
	if r == nil {
		return nil, &errs.BadFile{Path: path, Reason: "file has no baseline dataset"}
	}
	buf := make([]float32, lengths[0]*lengths[1])
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return nil, &errs.BadFile{Path: path, Reason: err.Error()}
	}
	if n != len(buf) {
		return nil, &errs.BadFile{Path: path, Reason: "short read of baseline dataset"}
	}

	nlon, nlat := g.Nx(), g.Ny()
	dok := sparse.NewDOK(nlon, nlat)
	if lonMajor {
		for i := 0; i < nlon; i++ {
			for j := 0; j < nlat; j++ {
				if v := buf[i*nlat+j]; v != 0 {
					dok.Set(i, j, float64(v))
				}
			}
		}
	} else {
		for j := 0; j < nlat; j++ {
			for i := 0; i < nlon; i++ {
				if v := buf[j*nlon+i]; v != 0 {
					dok.Set(i, j, float64(v))
				}
			}
		}
	}

	pmf := grid.NewPMF(dok.ToCSR())
	if sum := grid.NormalizeInPlace(pmf); sum == 0 {
		return nil, &errs.BadFile{Path: path, Reason: "baseline matrix is entirely zero"}
	}

	return newMaterializedLocation(g, pmf, rectBounds(g.FullExtent())), nil
}

func baselineOrientation(lengths []int, g *grid.Grid, path string) (lonMajor bool, err error) {
	nlon, nlat := g.Nx(), g.Ny()
	switch {
	case lengths[0] == nlat && lengths[1] == nlon:
		return false, nil
	case lengths[0] == nlon && lengths[1] == nlat:
		return true, nil
	default:
		return false, &errs.BadFile{Path: path, Reason: fmt.Sprintf(
			"baseline shape [%d,%d] matches neither [lat,lon]=[%d,%d] nor [lon,lat]=[%d,%d]",
			lengths[0], lengths[1], nlat, nlon, nlon, nlat)}
	}
}

func gridFromAttributes(h *cdf.Header, path string) (*grid.Grid, error) {
	resolution, ok1 := getFloatAttr(h, "resolution")
	fuzz, ok2 := getFloatAttr(h, "fuzz")
	north, ok3 := getFloatAttr(h, "north")
	south, ok4 := getFloatAttr(h, "south")
	east, ok5 := getFloatAttr(h, "east")
	west, ok6 := getFloatAttr(h, "west")
	lonSpacing, ok7 := getFloatAttr(h, "lon_spacing")
	latSpacing, ok8 := getFloatAttr(h, "lat_spacing")
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8) {
		return nil, &errs.BadFile{Path: path, Reason: "missing a required grid scalar attribute"}
	}

	longitudes, lok := getFloatSliceAttr(h, "longitudes")
	latitudes, tok := getFloatSliceAttr(h, "latitudes")
	if !lok || !tok {
		return nil, &errs.BadFile{Path: path, Reason: "missing longitudes/latitudes axis attributes"}
	}

	return grid.FromAxes(resolution, fuzz, north, south, east, west, lonSpacing, latSpacing, longitudes, latitudes), nil
}
