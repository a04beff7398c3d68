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
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const commentChar = '#'

var (
	// ErrInvalidLine indicates a mapping line with the wrong syntax.
	ErrInvalidLine = errors.New("invalid line")

	// ErrUnknownAttribute indicates an attribute name which is not defined.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrValueClassMismatch indicates a value which does not belong to the
	// value class of the attribute.
	ErrValueClassMismatch = errors.New("value class mismatch")
)

// marker ATTRIBUTE [ValueClass valueID] [# comment]
var lineRegex = regexp.MustCompile(`^(\S+)\s+(\S+)(?:\s+([^\s#]\S*)\s+(\S+))?(?:\s+#.*)?$`)

// ConfigParseError is returned when a mapping file cannot be parsed.
type ConfigParseError struct {
	// Line is the 1-based line number.
	Line int

	// Text is the text of the offending line.
	Text string

	Err error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// Mapper maps dictionary markers to attributes and values.
type Mapper struct {
	mappings map[string]Mapping
	attrs    []*Attribute
}

// LoadMapper reads a mapping file. Each non-empty line which doesn't start
// with '#' has the form
//
//	marker ATTRIBUTE [ValueClass valueID] [# comment]
//
// Markers are case-insensitive and a '~' in a marker stands for a space.
// The first invalid line aborts loading with a [*ConfigParseError].
func LoadMapper(r io.Reader) (*Mapper, error) {
	m := &Mapper{
		mappings: map[string]Mapping{},
	}

	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := s.Text()
		if strings.TrimSpace(line) == "" || line[0] == commentChar {
			continue
		}
		marker, mapping, err := ParseLine(line)
		if err != nil {
			return nil, &ConfigParseError{
				Line: n,
				Text: line,
				Err:  err,
			}
		}
		m.add(marker, mapping)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Mapper) add(marker string, mapping Mapping) {
	if !m.hasAttribute(mapping.Attribute) {
		m.attrs = append(m.attrs, mapping.Attribute)
	}
	m.mappings[marker] = mapping
}

func (m *Mapper) hasAttribute(a *Attribute) bool {
	for _, ma := range m.attrs {
		if ma == a {
			return true
		}
	}
	return false
}

// ParseLine parses a single mapping line and returns the normalized marker
// and its mapping.
func ParseLine(line string) (string, Mapping, error) {
	match := lineRegex.FindStringSubmatch(strings.TrimRight(line, " \t\r"))
	if match == nil {
		return "", Mapping{}, ErrInvalidLine
	}

	marker := strings.ReplaceAll(strings.ToLower(match[1]), "~", " ")

	a, ok := Lookup(match[2])
	if !ok {
		return "", Mapping{}, fmt.Errorf("%w: %q", ErrUnknownAttribute, match[2])
	}

	mapping := Mapping{Attribute: a}
	if match[3] != "" {
		v, err := NewValue(match[3], match[4])
		if err != nil {
			return "", Mapping{}, err
		}
		if v.Class() != a.ValueClass {
			return "", Mapping{}, fmt.Errorf("%w: %s values for %s", ErrValueClassMismatch, v.Class(), a.Name)
		}
		mapping.Value = v
	}

	return marker, mapping, nil
}

// Lookup returns the mapping for a marker. Markers are matched
// case-insensitively.
func (m *Mapper) Lookup(marker string) (Mapping, bool) {
	mapping, ok := m.mappings[strings.ToLower(marker)]
	return mapping, ok
}

// Attributes returns the attributes used by any mapping, in the order they
// first appear.
func (m *Mapper) Attributes() []*Attribute {
	return append([]*Attribute(nil), m.attrs...)
}
