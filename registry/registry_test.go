// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutGetRoundTrip(t *testing.T) {
	r := New()
	r.Put(Entry{Name: "US", Path: "regions/US.loc", Kind: KindRegion})
	r.Put(Entry{Name: "US-CA", Path: "regions/US-CA.loc", Kind: KindRegion})

	e, ok := r.Get("US-CA")
	assert.True(t, ok)
	assert.Equal(t, "regions/US-CA.loc", e.Path)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestForEachVisitsEverything(t *testing.T) {
	r := New()
	names := []string{"alpha", "alphabet", "beta", "gamma"}
	for _, n := range names {
		r.Put(Entry{Name: n, Kind: KindCalibration})
	}

	seen := map[string]bool{}
	r.ForEach(func(e Entry) bool {
		seen[e.Name] = true
		return true
	})
	assert.Len(t, seen, len(names))
	assert.Equal(t, len(names), r.Len())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "region", KindRegion.String())
	assert.Equal(t, "calibration", KindCalibration.String())
}
