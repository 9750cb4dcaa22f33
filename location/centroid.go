// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package location

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/zackw/active-geolocator/errs"
	"github.com/zackw/active-geolocator/geo/wgs84"
)

// Centroid returns this Location's probability-weighted centroid,
// computed (and cached, along with Covariance) on first use by summing
// each nonzero cell's geocentric Cartesian coordinates weighted by its
// probability mass and inverting the mean back to lon/lat.
func (l *Location) Centroid() (lon, lat float64, err error) {
	if !l.haveCentroid {
		if err := l.computeCentroidAndCovariance(); err != nil {
			return 0, 0, err
		}
	}
	return l.centroidLon, l.centroidLat, nil
}

// Covariance returns the sample covariance, in geocentric Cartesian
// meters, of this Location's probability-weighted samples.
func (l *Location) Covariance() ([3][3]float64, error) {
	if !l.haveCentroid {
		if err := l.computeCentroidAndCovariance(); err != nil {
			return [3][3]float64{}, err
		}
	}
	return l.covariance, nil
}

func (l *Location) computeCentroidAndCovariance() error {
	pmf, err := l.PMF()
	if err != nil {
		return err
	}
	if pmf.Vacuous() {
		return &errs.DegenerateCentroid{Reason: "vacuous location has no centroid"}
	}

	type sample struct{ x, y, z, v float64 }
	var samples []sample
	var mx, my, mz float64
	pmf.NonZero(func(i, j int, v float64) {
		lon, lat := l.Grid.Longitudes[i], l.Grid.Latitudes[j]
		x, y, z := wgs84.ToGeocentric(lon, lat, 0)
		if !finite(x) || !finite(y) || !finite(z) {
			logrus.WithFields(logrus.Fields{"lon": lon, "lat": lat}).Warn("skipping non-finite geocentric sample in centroid computation")
			return
		}
		samples = append(samples, sample{x, y, z, v})
		mx += v * x
		my += v * y
		mz += v * z
	})
	if len(samples) == 0 {
		return &errs.DegenerateCentroid{Reason: "no finite geocentric samples"}
	}

	lon, lat, _ := wgs84.FromGeocentric(mx, my, mz)
	if !finite(lon) || !finite(lat) {
		return &errs.DegenerateCentroid{Reason: "geocentric mean inverted to a non-finite lon/lat"}
	}

	data := mat.NewDense(len(samples), 3, nil)
	for i, s := range samples {
		data.SetRow(i, []float64{s.x * s.v, s.y * s.v, s.z * s.v})
	}
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, data, nil)

	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = cov.At(i, j)
		}
	}

	l.centroidLon, l.centroidLat, l.covariance, l.haveCentroid = lon, lat, out, true
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
