// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package location

import "github.com/zackw/active-geolocator/internal/cdf"

func getFloatAttr(h *cdf.Header, name string) (float64, bool) {
	switch v := h.GetAttribute("", name).(type) {
	case float64:
		return v, true
	case []float64:
		if len(v) == 1 {
			return v[0], true
		}
	case float32:
		return float64(v), true
	case []float32:
		if len(v) == 1 {
			return float64(v[0]), true
		}
	}
	return 0, false
}

func getIntAttr(h *cdf.Header, name string) (int, bool) {
	switch v := h.GetAttribute("", name).(type) {
	case int32:
		return int(v), true
	case []int32:
		if len(v) == 1 {
			return int(v[0]), true
		}
	case int:
		return v, true
	}
	return 0, false
}

func getFloatSliceAttr(h *cdf.Header, name string) ([]float64, bool) {
	switch v := h.GetAttribute("", name).(type) {
	case []float64:
		return v, true
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, true
	}
	return nil, false
}

func flattenCov(cov [3][3]float64) []float64 {
	out := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out = append(out, cov[i][j])
		}
	}
	return out
}

func unflattenCov(flat []float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = flat[i*3+j]
		}
	}
	return out
}
