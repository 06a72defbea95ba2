// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package model

import "github.com/chidev/nestx/internal/jsonvalue"

// Set holds distinct Media values. Media cannot be a Go map key because Ext
// may carry maps or slices, so members are bucketed by Hash and resolved with
// Equal.
//
// A Set is not safe for concurrent use. Members are stored by value; mutating
// the argument after Add does not affect the set.
type Set struct {
	buckets map[uint64][]Media
	n       int
}

// NewSet returns a set holding the given members.
func NewSet(members ...Media) *Set {
	s := &Set{buckets: make(map[uint64][]Media)}
	for i := range members {
		s.Add(members[i])
	}
	return s
}

// Add inserts m and reports whether it was not already present.
func (s *Set) Add(m Media) bool {
	if s.buckets == nil {
		s.buckets = make(map[uint64][]Media)
	}
	stored := m
	stored.Ext = jsonvalue.Clone(m.Ext)
	h := stored.Hash()
	for i := range s.buckets[h] {
		if s.buckets[h][i].Equal(&stored) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], stored)
	s.n++
	return true
}

// Contains reports whether an Equal value is in the set.
func (s *Set) Contains(m Media) bool {
	h := m.Hash()
	for i := range s.buckets[h] {
		if s.buckets[h][i].Equal(&m) {
			return true
		}
	}
	return false
}

// Remove deletes the member Equal to m and reports whether one was found.
func (s *Set) Remove(m Media) bool {
	h := m.Hash()
	bucket := s.buckets[h]
	for i := range bucket {
		if bucket[i].Equal(&m) {
			bucket = append(bucket[:i], bucket[i+1:]...)
			if len(bucket) == 0 {
				delete(s.buckets, h)
			} else {
				s.buckets[h] = bucket
			}
			s.n--
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (s *Set) Len() int {
	return s.n
}

// Members returns a copy of the members in unspecified order.
func (s *Set) Members() []Media {
	out := make([]Media, 0, s.n)
	for _, bucket := range s.buckets {
		out = append(out, bucket...)
	}
	return out
}
