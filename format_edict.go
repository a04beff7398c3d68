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

package edict

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-edict/attribute"
	"github.com/ianlewis/go-edict/internal/folding"
	"github.com/ianlewis/go-edict/record"
)

// priorityMarker marks common words. It is a translation of its own.
const priorityMarker = "(P)"

// priority is the value of the priority attribute of common words.
const priority = attribute.PriorityValue("P")

var (
	entryRegex   = regexp.MustCompile(`^(\S+)(?:\s\[(.+?)\])?\s/(.+)/$`)
	bracketRegex = regexp.MustCompile(`^\((.+?)\)\s`)
)

//go:embed edict.map
var edictMap string

// EDICT is the format of EDICT dictionaries. Attribute markers are mapped
// using the built-in mapping table.
var EDICT = func() Format {
	m, err := attribute.LoadMapper(strings.NewReader(edictMap))
	if err != nil {
		panic(fmt.Sprintf("edict.map: %v", err))
	}
	return NewEDICTFormat(m)
}()

type edictFormat struct {
	mapper *attribute.Mapper
	attrs  []*attribute.Attribute
}

// NewEDICTFormat returns the EDICT format using the attribute mapping m.
func NewEDICTFormat(m *attribute.Mapper) Format {
	attrs := m.Attributes()
	found := false
	for _, a := range attrs {
		if a == attribute.Priority {
			found = true
		}
	}
	if !found {
		attrs = append(attrs, attribute.Priority)
	}
	return &edictFormat{
		mapper: m,
		attrs:  attrs,
	}
}

func (*edictFormat) Name() string {
	return "EDICT"
}

func (*edictFormat) Structure() record.Structure {
	return record.EDICT
}

func (*edictFormat) Escapes(r rune) bool {
	return r == '\n' || r == '\r' || r == '/'
}

func (f *edictFormat) Attributes() []*attribute.Attribute {
	return append([]*attribute.Attribute(nil), f.attrs...)
}

// edictParser holds the state of parsing a single entry.
type edictParser struct {
	mapper *attribute.Mapper
	e      *Entry

	// sense is the current sense.
	sense *Sense

	// seenSense is true after the first sense marker. Attributes which can
	// apply to a translation are put into the sense after that.
	seenSense bool
}

// Parse parses an EDICT record.
//
// Markers in brackets at the start of a translation are either sense
// markers like "(1)" or comma separated attribute markers like "(n,vs)".
// Attribute markers before the first sense marker apply to the whole entry.
// Unknown markers are kept in the translation text.
func (f *edictFormat) Parse(text string, offset int) (*Entry, error) {
	m := entryRegex.FindStringSubmatch(text)
	if m == nil {
		return nil, &MalformedEntryError{
			Offset: offset,
			Text:   text,
			Err:    ErrInvalidEntry,
		}
	}

	general := attribute.NewSet(nil)
	e := &Entry{
		Offset:           offset,
		Word:             unescape(m[1]),
		Reading:          unescape(m[2]),
		General:          general,
		WordAttrs:        attribute.NewSet(general),
		TranslationAttrs: attribute.NewSet(general),
	}
	if e.Reading == "" {
		e.Reading = e.Word
	}

	p := &edictParser{
		mapper: f.mapper,
		e:      e,
	}
	p.newSense()

	ts := strings.Split(m[3], "/")
	if n := len(ts); n > 1 && ts[n-1] == "" {
		ts = ts[:n-1]
	}
	for _, t := range ts {
		p.translation(t)
	}

	return e, nil
}

func (p *edictParser) newSense() {
	p.sense = &Sense{
		Attrs: attribute.NewSet(p.e.TranslationAttrs),
	}
	p.e.Senses = append(p.e.Senses, p.sense)
}

func (p *edictParser) translation(t string) {
	if t == priorityMarker {
		p.e.General.Add(attribute.Priority, priority)
		return
	}

	var unknown []string
	for {
		m := bracketRegex.FindStringSubmatch(t)
		if m == nil {
			break
		}
		t = t[len(m[0]):]

		if isSenseMarker(m[1]) {
			if len(p.sense.Translations) > 0 {
				p.newSense()
			}
			p.seenSense = true
			continue
		}

		var u []string
		for _, marker := range strings.Split(m[1], ",") {
			if !p.attribute(marker) {
				u = append(u, marker)
			}
		}
		if len(u) > 0 {
			unknown = append(unknown, "("+strings.Join(u, ",")+") ")
		}
	}

	p.sense.Translations = append(p.sense.Translations, strings.Join(unknown, "")+unescape(t))
}

// unescape resolves the escape sequences in a single field.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	u, _, err := transform.String(folding.Unescaper{}, s)
	if err != nil {
		return s
	}
	return u
}

// attribute adds the attribute for marker to the matching attribute set. It
// returns false if the marker is unknown.
func (p *edictParser) attribute(marker string) bool {
	mapping, ok := p.mapper.Lookup(marker)
	if !ok {
		return false
	}

	a := mapping.Attribute
	switch {
	case a.AppliesTo(attribute.General) && (!p.seenSense || !a.AppliesTo(attribute.TranslationGroup)):
		p.e.General.AddMapping(mapping)
	case a.AppliesTo(attribute.WordGroup):
		p.e.WordAttrs.AddMapping(mapping)
	case a.AppliesTo(attribute.TranslationGroup):
		if p.seenSense {
			p.sense.Attrs.AddMapping(mapping)
		} else {
			p.e.TranslationAttrs.AddMapping(mapping)
		}
	}
	return true
}

func isSenseMarker(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
