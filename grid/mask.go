// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package grid

import "sort"

// IndexRange is a contiguous half-open range [Lo, Hi) of axis indices.
type IndexRange struct {
	Lo, Hi int
}

// Len is the number of indices the range covers.
func (r IndexRange) Len() int { return r.Hi - r.Lo }

// bisectLeft returns the leftmost index at which v could be inserted
// into the ascending slice xs while keeping it sorted: the first index
// i with xs[i] >= v. This is Python's bisect.bisect_left.
func bisectLeft(xs []float64, v float64) int {
	return sort.Search(len(xs), func(i int) bool { return xs[i] >= v })
}

// MaskIndices returns the column (longitude) and row (latitude) index
// ranges of grid points falling within rect: west/south inclusive,
// east/north exclusive, exactly as bisect_left on each sorted axis
// vector gives.
func MaskIndices(rect Rect, longitudes, latitudes []float64) (I, J IndexRange) {
	I = IndexRange{Lo: bisectLeft(longitudes, rect.West), Hi: bisectLeft(longitudes, rect.East)}
	J = IndexRange{Lo: bisectLeft(latitudes, rect.South), Hi: bisectLeft(latitudes, rect.North)}
	return
}
