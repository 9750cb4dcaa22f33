// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package registry indexes the region and calibration files a batch
// carving or calibration run produces, by name, so a later command
// (geolocate, dump-location) can find them without re-deriving a path
// convention. It is backed by container/trie's edge-compressed byte
// trie rather than a plain map: region names in practice share long
// common prefixes (ISO hierarchies, continent/country/subdivision
// naming), which is exactly what that trie was built to pack tightly.
package registry

import "github.com/zackw/active-geolocator/container/trie"

// Kind distinguishes what an Entry's file holds.
type Kind int

const (
	KindRegion Kind = iota
	KindCalibration
)

func (k Kind) String() string {
	switch k {
	case KindRegion:
		return "region"
	case KindCalibration:
		return "calibration"
	default:
		return "unknown"
	}
}

// Entry is one named, persisted artifact.
type Entry struct {
	Name string
	Path string
	Kind Kind
}

// Registry maps names to Entries.
type Registry struct {
	t trie.Trie
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Put inserts or replaces the entry for e.Name.
func (r *Registry) Put(e Entry) {
	r.t.Put(e.Name, e)
}

// Get retrieves the entry for name, if any.
func (r *Registry) Get(name string) (Entry, bool) {
	v := r.t.Get(name)
	if v == nil {
		return Entry{}, false
	}
	return v.(Entry), true
}

// ForEach visits every entry in sorted key order, stopping early if f
// returns false.
func (r *Registry) ForEach(f func(Entry) bool) {
	r.t.ForEach(func(_ string, v interface{}) bool {
		return f(v.(Entry))
	})
}

// Len reports the number of entries currently registered.
func (r *Registry) Len() int {
	n := 0
	r.ForEach(func(Entry) bool {
		n++
		return true
	})
	return n
}
