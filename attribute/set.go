// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package attribute

import (
	"errors"
	"iter"
	"slices"
	"strings"
)

var (
	// ErrSelfParent is returned when setting a set as its own parent.
	ErrSelfParent = errors.New("set cannot be its own parent")

	// ErrCycle is returned when setting a parent would create a cycle.
	ErrCycle = errors.New("parent chain cycle")

	// ErrNotSet is returned when querying an attribute which is not in the
	// set or any of its ancestors.
	ErrNotSet = errors.New("attribute not set")
)

// Mapping is an attribute together with an optional value.
type Mapping struct {
	Attribute *Attribute
	Value     Value
}

type entry struct {
	attr   *Attribute
	values []Value
}

// Set holds attributes and their values. Lookups which resolve inherited
// attributes also search the parent chain. A Set is not safe for concurrent
// modification.
type Set struct {
	parent  *Set
	entries []entry
}

// NewSet returns an empty set with the given parent, which may be nil.
func NewSet(parent *Set) *Set {
	return &Set{parent: parent}
}

// Parent returns the parent set or nil.
func (s *Set) Parent() *Set {
	return s.parent
}

// SetParent sets the parent set. p may be nil.
func (s *Set) SetParent(p *Set) error {
	if p == s {
		return ErrSelfParent
	}
	for a := p; a != nil; a = a.parent {
		if a == s {
			return ErrCycle
		}
	}
	s.parent = p
	return nil
}

func (s *Set) find(a *Attribute) int {
	for i := range s.entries {
		if s.entries[i].attr == a {
			return i
		}
	}
	return -1
}

// Add adds an attribute with a value. If v is nil the attribute is marked
// as present without adding a value.
func (s *Set) Add(a *Attribute, v Value) {
	i := s.find(a)
	if i < 0 {
		s.entries = append(s.entries, entry{attr: a})
		i = len(s.entries) - 1
	}
	if v != nil {
		s.entries[i].values = append(s.entries[i].values, v)
	}
}

// AddMapping adds the attribute and value of m.
func (s *Set) AddMapping(m Mapping) {
	s.Add(m.Attribute, m.Value)
}

// ContainsKey reports whether the attribute is present. If resolve is true
// the parent chain is searched too.
func (s *Set) ContainsKey(a *Attribute, resolve bool) bool {
	for c := s; c != nil; c = c.parent {
		if c.find(a) >= 0 {
			return true
		}
		if !resolve {
			break
		}
	}
	return false
}

// Contains reports whether the attribute is present with value v.
func (s *Set) Contains(a *Attribute, v Value, resolve bool) bool {
	for c := s; c != nil; c = c.parent {
		if i := c.find(a); i >= 0 && slices.Contains(c.entries[i].values, v) {
			return true
		}
		if !resolve {
			break
		}
	}
	return false
}

// Get returns the values of the attribute. Local values come first,
// followed by inherited values if resolve is true. The second return value
// reports whether the attribute is present at all.
func (s *Set) Get(a *Attribute, resolve bool) ([]Value, bool) {
	var values []Value
	found := false
	for c := s; c != nil; c = c.parent {
		if i := c.find(a); i >= 0 {
			found = true
			values = append(values, c.entries[i].values...)
		}
		if !resolve {
			break
		}
	}
	return values, found
}

// IsInherited reports whether the attribute is only present through the
// parent chain.
func (s *Set) IsInherited(a *Attribute) (bool, error) {
	if s.find(a) >= 0 {
		return false, nil
	}
	if s.parent != nil && s.parent.ContainsKey(a, true) {
		return true, nil
	}
	return false, ErrNotSet
}

// Keys returns each present attribute once, local attributes first.
func (s *Set) Keys(resolve bool) iter.Seq[*Attribute] {
	return func(yield func(*Attribute) bool) {
		seen := map[*Attribute]bool{}
		for c := s; c != nil; c = c.parent {
			for _, e := range c.entries {
				if seen[e.attr] {
					continue
				}
				seen[e.attr] = true
				if !yield(e.attr) {
					return
				}
			}
			if !resolve {
				return
			}
		}
	}
}

// IsEmpty reports whether the set has no local attributes.
func (s *Set) IsEmpty() bool {
	return len(s.entries) == 0
}

// String returns the local attributes in the form "NAME:v1,v2 NAME".
func (s *Set) String() string {
	var b strings.Builder
	for i, e := range s.entries {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.attr.Name)
		for j, v := range e.values {
			if j == 0 {
				b.WriteByte(':')
			} else {
				b.WriteByte(',')
			}
			b.WriteString(v.String())
		}
	}
	return b.String()
}
