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
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustValue(t *testing.T, class, id string) Value {
	t.Helper()
	v, err := NewValue(class, id)
	if err != nil {
		t.Fatalf("NewValue(%q, %q): %v", class, id, err)
	}
	return v
}

// valueStrings returns the string forms of vs.
func valueStrings(vs []Value) []string {
	var s []string
	for _, v := range vs {
		s = append(s, v.String())
	}
	return s
}

// names returns the names of attrs.
func names(attrs []*Attribute) []string {
	var s []string
	for _, a := range attrs {
		s = append(s, a.Name)
	}
	return s
}

func TestSet_Get(t *testing.T) {
	t.Parallel()

	general := NewSet(nil)
	general.Add(PartOfSpeech, mustValue(t, PartOfSpeechClass, "n"))
	general.Add(PartOfSpeech, mustValue(t, PartOfSpeechClass, "vs"))

	word := NewSet(general)
	word.Add(PartOfSpeech, mustValue(t, PartOfSpeechClass, "adj-na"))

	tests := []struct {
		name     string
		attr     *Attribute
		resolve  bool
		expected []string
		ok       bool
	}{
		{
			name:     "resolved",
			attr:     PartOfSpeech,
			resolve:  true,
			expected: []string{"adj-na", "n", "vs"},
			ok:       true,
		},
		{
			name:     "local",
			attr:     PartOfSpeech,
			expected: []string{"adj-na"},
			ok:       true,
		},
		{
			name:    "not set",
			attr:    Usage,
			resolve: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, ok := word.Get(test.attr, test.resolve)
			if ok != test.ok {
				t.Errorf("Get ok: want %v, got %v", test.ok, ok)
			}
			if diff := cmp.Diff(test.expected, valueStrings(got)); diff != "" {
				t.Errorf("Get (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSet_Add_nil(t *testing.T) {
	t.Parallel()

	s := NewSet(nil)
	s.Add(Example, nil)
	if !s.ContainsKey(Example, false) {
		t.Errorf("ContainsKey(Example): want true")
	}
	got, ok := s.Get(Example, false)
	if !ok || len(got) != 0 {
		t.Errorf("Get(Example): want no values and true, got %v, %v", got, ok)
	}

	s.Add(Priority, PriorityValue("P"))
	s.Add(Priority, nil)
	got, _ = s.Get(Priority, false)
	if diff := cmp.Diff([]string{"P"}, valueStrings(got)); diff != "" {
		t.Errorf("Get(Priority) (-want, +got):\n%s", diff)
	}
}

func TestSet_Contains(t *testing.T) {
	t.Parallel()

	hon := mustValue(t, UsageClass, "hon")
	hum := mustValue(t, UsageClass, "hum")

	parent := NewSet(nil)
	parent.Add(Usage, hon)
	s := NewSet(parent)

	got := []bool{
		s.Contains(Usage, hon, true),
		s.Contains(Usage, hon, false),
		s.Contains(Usage, hum, true),
		s.ContainsKey(Usage, true),
		s.ContainsKey(Usage, false),
	}
	if diff := cmp.Diff([]bool{true, false, false, true, false}, got); diff != "" {
		t.Errorf("Contains (-want, +got):\n%s", diff)
	}
}

func TestSet_SetParent(t *testing.T) {
	t.Parallel()

	a := NewSet(nil)
	b := NewSet(a)
	c := NewSet(b)

	if diff := cmp.Diff(ErrSelfParent, a.SetParent(a), cmpopts.EquateErrors()); diff != "" {
		t.Errorf("SetParent(self) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(ErrCycle, a.SetParent(c), cmpopts.EquateErrors()); diff != "" {
		t.Errorf("SetParent(child) (-want, +got):\n%s", diff)
	}
	if a.Parent() != nil {
		t.Errorf("Parent: want nil after failed SetParent")
	}

	d := NewSet(nil)
	if err := c.SetParent(d); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	if c.Parent() != d {
		t.Errorf("Parent: want %p, got %p", d, c.Parent())
	}
	if err := c.SetParent(nil); err != nil {
		t.Fatalf("SetParent(nil): %v", err)
	}
	if c.Parent() != nil {
		t.Errorf("Parent: want nil")
	}
}

func TestSet_IsInherited(t *testing.T) {
	t.Parallel()

	parent := NewSet(nil)
	parent.Add(Example, nil)
	s := NewSet(parent)
	s.Add(Priority, PriorityValue("P"))

	tests := []struct {
		name     string
		attr     *Attribute
		expected bool
		err      error
	}{
		{"inherited", Example, true, nil},
		{"local", Priority, false, nil},
		{"not set", Usage, false, ErrNotSet},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := s.IsInherited(test.attr)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("IsInherited err (-want, +got):\n%s", diff)
			}
			if got != test.expected {
				t.Errorf("IsInherited: want %v, got %v", test.expected, got)
			}
		})
	}
}

func TestSet_Keys(t *testing.T) {
	t.Parallel()

	parent := NewSet(nil)
	parent.Add(Usage, nil)
	parent.Add(Priority, nil)
	s := NewSet(parent)
	s.Add(Priority, nil)
	s.Add(Example, nil)

	if diff := cmp.Diff([]string{"PRIORITY", "EXAMPLE", "USAGE"}, names(slices.Collect(s.Keys(true)))); diff != "" {
		t.Errorf("Keys(true) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"PRIORITY", "EXAMPLE"}, names(slices.Collect(s.Keys(false)))); diff != "" {
		t.Errorf("Keys(false) (-want, +got):\n%s", diff)
	}
	if !NewSet(parent).IsEmpty() {
		t.Errorf("IsEmpty: want true for a set with only inherited keys")
	}
	if s.IsEmpty() {
		t.Errorf("IsEmpty: want false")
	}
}

func TestSet_String(t *testing.T) {
	t.Parallel()

	s := NewSet(nil)
	s.Add(PartOfSpeech, mustValue(t, PartOfSpeechClass, "n"))
	s.Add(PartOfSpeech, mustValue(t, PartOfSpeechClass, "vs"))
	s.Add(Example, nil)

	if diff := cmp.Diff("PART_OF_SPEECH:n,vs EXAMPLE", s.String()); diff != "" {
		t.Errorf("String (-want, +got):\n%s", diff)
	}
}

func TestNewValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		class    string
		id       string
		expected string
		err      error
	}{
		{
			name:     "category",
			class:    PartOfSpeechClass,
			id:       "adj-na",
			expected: "adj-na",
		},
		{
			name:     "qualified class",
			class:    "attribute." + PartOfSpeechClass,
			id:       "vs",
			expected: "vs",
		},
		{
			name:     "language",
			class:    GairaigoClass,
			id:       "de:Arbeit",
			expected: "de:Arbeit",
		},
		{
			name:  "unknown value",
			class: PartOfSpeechClass,
			id:    "nope",
			err:   ErrUnknownValue,
		},
		{
			name:  "unknown class",
			class: "Nope",
			id:    "x",
			err:   ErrUnknownValueClass,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			v, err := NewValue(test.class, test.id)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("NewValue err (-want, +got):\n%s", diff)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(test.expected, v.String()); diff != "" {
				t.Errorf("NewValue (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestNewValue_interned(t *testing.T) {
	t.Parallel()

	v := mustValue(t, PartOfSpeechClass, "adj-na")
	cv, ok := v.(*CategoryValue)
	if !ok {
		t.Fatalf("NewValue: want *CategoryValue, got %T", v)
	}
	if cv.Name() == "" {
		t.Errorf("Name: want a description")
	}
	if v2 := mustValue(t, "attribute."+PartOfSpeechClass, "adj-na"); v2 != v {
		t.Errorf("NewValue: category values are not interned")
	}

	lv := mustValue(t, GairaigoClass, "de:Arbeit")
	if diff := cmp.Diff(NewLanguageValue(GairaigoClass, "de", "Arbeit"), lv, cmp.AllowUnexported(LanguageValue{})); diff != "" {
		t.Errorf("NewValue (-want, +got):\n%s", diff)
	}
}

func TestLoadMapper(t *testing.T) {
	t.Parallel()

	m, err := LoadMapper(strings.NewReader(`# EDICT markers

n       PART_OF_SPEECH PartOfSpeech n
vs      Attributes.PART_OF_SPEECH attribute.PartOfSpeech vs  # suru verb
uK      USAGE Usage uK
eg      EXAMPLE
ex      EXAMPLE # comment
See~Also REFERENCE
`))
	if err != nil {
		t.Fatalf("LoadMapper: %v", err)
	}

	type mapping struct {
		Attribute string
		Value     string
	}

	tests := []struct {
		marker   string
		expected *mapping
	}{
		{"n", &mapping{"PART_OF_SPEECH", "n"}},
		{"vs", &mapping{"PART_OF_SPEECH", "vs"}},
		// Markers are case-insensitive.
		{"UK", &mapping{"USAGE", "uK"}},
		{"eg", &mapping{"EXAMPLE", ""}},
		{"ex", &mapping{"EXAMPLE", ""}},
		{"see also", &mapping{"REFERENCE", ""}},
		{"adj", nil},
	}

	for _, test := range tests {
		t.Run(test.marker, func(t *testing.T) {
			t.Parallel()

			var got *mapping
			if mm, ok := m.Lookup(test.marker); ok {
				got = &mapping{Attribute: mm.Attribute.Name}
				if mm.Value != nil {
					got.Value = mm.Value.String()
				}
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Lookup (-want, +got):\n%s", diff)
			}
		})
	}

	want := []string{"PART_OF_SPEECH", "USAGE", "EXAMPLE", "REFERENCE"}
	if diff := cmp.Diff(want, names(m.Attributes())); diff != "" {
		t.Errorf("Attributes (-want, +got):\n%s", diff)
	}
}

func TestLoadMapper_errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input string
		line  int
		err   error
	}{
		"invalid line": {
			input: "n\n",
			line:  1,
			err:   ErrInvalidLine,
		},
		"unknown attribute": {
			input: "# comment\nn NOPE\n",
			line:  2,
			err:   ErrUnknownAttribute,
		},
		"unknown value": {
			input: "n PART_OF_SPEECH PartOfSpeech nope\n",
			line:  1,
			err:   ErrUnknownValue,
		},
		"unknown value class": {
			input: "n PART_OF_SPEECH Nope n\n",
			line:  1,
			err:   ErrUnknownValueClass,
		},
		"class mismatch": {
			input: "\nn USAGE PartOfSpeech n\n",
			line:  2,
			err:   ErrValueClassMismatch,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, err := LoadMapper(strings.NewReader(tc.input))
			if m != nil {
				t.Errorf("LoadMapper: want nil mapper on error")
			}
			if diff := cmp.Diff(tc.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("LoadMapper err (-want, +got):\n%s", diff)
			}

			var perr *ConfigParseError
			if !errors.As(err, &perr) {
				t.Fatalf("LoadMapper: want *ConfigParseError, got %T", err)
			}
			if got, want := perr.Line, tc.line; got != want {
				t.Errorf("ConfigParseError.Line: want %d, got %d", want, got)
			}
		})
	}
}
