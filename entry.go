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
	"strconv"
	"strings"

	"github.com/ianlewis/go-edict/attribute"
)

// Entry is a decoded dictionary entry.
//
// The attribute sets form a chain: the attributes of every sense inherit
// from TranslationAttrs, and TranslationAttrs and WordAttrs both inherit
// from General.
type Entry struct {
	// Offset is the offset of the record in the dictionary.
	Offset int

	// Word is the headword.
	Word string

	// Reading is the reading of the headword. It equals Word if the record
	// has no reading.
	Reading string

	// Senses are the groups of translations of the entry.
	Senses []*Sense

	// General holds attributes which apply to the whole entry.
	General *attribute.Set

	// WordAttrs holds attributes which apply to the word.
	WordAttrs *attribute.Set

	// TranslationAttrs holds attributes which apply to all senses.
	TranslationAttrs *attribute.Set
}

// Sense is a group of translations with the same meaning.
type Sense struct {
	Translations []string

	// Attrs holds the attributes of this sense.
	Attrs *attribute.Set
}

// String returns the entry in EDICT notation without attribute markers.
func (e *Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Word)
	if e.Reading != e.Word {
		b.WriteString(" [")
		b.WriteString(e.Reading)
		b.WriteByte(']')
	}
	b.WriteString(" /")
	for i, s := range e.Senses {
		if len(e.Senses) > 1 {
			b.WriteByte('(')
			b.WriteString(strconv.Itoa(i + 1))
			b.WriteString(") ")
		}
		for _, t := range s.Translations {
			b.WriteString(t)
			b.WriteByte('/')
		}
	}
	return b.String()
}
