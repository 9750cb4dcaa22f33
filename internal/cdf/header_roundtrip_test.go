// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package cdf

import (
	"bytes"
	"testing"
)

// TestHeaderRoundTrip builds a header with one fixed and one record
// dimension, a global attribute and two variables, writes it and reads
// it back, and checks that every piece of metadata survives.
func TestHeaderRoundTrip(t *testing.T) {
	h := NewHeader([]string{"rec", "point"}, []int{0, 4})
	h.AddAttribute("", "title", "roundtrip")
	h.AddVariable("lon", []string{"point"}, []float64{})
	h.AddVariable("mass", []string{"rec", "point"}, []float32{})
	h.AddAttribute("mass", "units", "probability")
	if err := h.Define(); err != nil {
		t.Fatal(err)
	}
	if errs := h.Check(); errs != nil {
		t.Fatalf("Check on freshly defined header: %v", errs)
	}

	var buf bytes.Buffer
	if err := h.WriteHeader(&buf); err != nil {
		t.Fatal(err)
	}

	h2, err := ReadHeader(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := h2.Variables(), []string{"lon", "mass"}; !equalStrings(got, want) {
		t.Errorf("Variables: got %v want %v", got, want)
	}
	if got, want := h2.GetAttribute("", "title"), "roundtrip"; got != want {
		t.Errorf("global title: got %v want %v", got, want)
	}
	if got, want := h2.GetAttribute("mass", "units"), "probability"; got != want {
		t.Errorf("mass units: got %v want %v", got, want)
	}
	if got, want := h2.Lengths("lon"), []int{4}; !equalInts(got, want) {
		t.Errorf("lon lengths: got %v want %v", got, want)
	}
	if got, want := h2.Dimensions("mass"), []string{"rec", "point"}; !equalStrings(got, want) {
		t.Errorf("mass dims: got %v want %v", got, want)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
