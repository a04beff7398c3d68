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

// Package attribute implements linguistic metadata attached to dictionary
// entries.
//
// Attributes are stored in a [Set]. Sets form a chain through their parent
// set and lookups can optionally be resolved through the chain. A [Mapper]
// maps dictionary specific markers, like the "(n)" part of speech marker of
// EDICT, to attributes and values.
package attribute

import (
	"strings"
)

// Group is a part of a dictionary entry an attribute can apply to.
type Group int

const (
	// General attributes apply to the whole entry.
	General Group = iota

	// WordGroup attributes apply to the word of an entry.
	WordGroup

	// TranslationGroup attributes apply to the translations, or to a
	// single sense.
	TranslationGroup
)

// Attribute is a kind of metadata.
type Attribute struct {
	// Name is the identifier used for the attribute in mapping files.
	Name string

	// Description is a human readable description.
	Description string

	// ValueClass is the class of values of the attribute. Attributes with
	// an empty ValueClass never have a value.
	ValueClass string

	// AlwaysHasValue is true if every occurrence of the attribute has a
	// value.
	AlwaysHasValue bool

	groups []Group
}

// CanHaveValue reports whether the attribute can have values.
func (a *Attribute) CanHaveValue() bool {
	return a.ValueClass != ""
}

// AppliesTo reports whether the attribute can be used for the entry part g.
func (a *Attribute) AppliesTo(g Group) bool {
	for _, ag := range a.groups {
		if ag == g {
			return true
		}
	}
	return false
}

// String implements [fmt.Stringer].
func (a *Attribute) String() string {
	return a.Name
}

var (
	// PartOfSpeech is the part of speech of a word.
	PartOfSpeech = &Attribute{
		Name:           "PART_OF_SPEECH",
		Description:    "part of speech",
		ValueClass:     PartOfSpeechClass,
		AlwaysHasValue: true,
		groups:         []Group{General, WordGroup},
	}

	// Priority marks common words.
	Priority = &Attribute{
		Name:           "PRIORITY",
		Description:    "priority of a word",
		ValueClass:     PriorityClass,
		AlwaysHasValue: true,
		groups:         []Group{General, TranslationGroup},
	}

	// Example marks an example sentence.
	Example = &Attribute{
		Name:        "EXAMPLE",
		Description: "example",
		groups:      []Group{General},
	}

	// Abbreviation marks abbreviations, optionally with the abbreviated
	// word.
	Abbreviation = &Attribute{
		Name:        "ABBREVIATION",
		Description: "abbreviation",
		ValueClass:  AbbreviationClass,
		groups:      []Group{General, TranslationGroup},
	}

	// Reference refers to another entry.
	Reference = &Attribute{
		Name:           "REFERENCE",
		Description:    "see also",
		ValueClass:     ReferenceClass,
		AlwaysHasValue: true,
		groups:         []Group{General},
	}

	// Synonym refers to an entry with the same meaning.
	Synonym = &Attribute{
		Name:           "SYNONYM",
		Description:    "synonym",
		ValueClass:     ReferenceClass,
		AlwaysHasValue: true,
		groups:         []Group{General},
	}

	// Antonym refers to an entry with the opposite meaning.
	Antonym = &Attribute{
		Name:           "ANTONYM",
		Description:    "antonym",
		ValueClass:     ReferenceClass,
		AlwaysHasValue: true,
		groups:         []Group{General},
	}

	// Usage describes how a word is used, e.g. honorific or slang.
	Usage = &Attribute{
		Name:           "USAGE",
		Description:    "usage",
		ValueClass:     UsageClass,
		AlwaysHasValue: true,
		groups:         []Group{General, TranslationGroup},
	}

	// Category is the field of application of a word.
	Category = &Attribute{
		Name:           "CATEGORY",
		Description:    "category",
		ValueClass:     CategoryClass,
		AlwaysHasValue: true,
		groups:         []Group{General, TranslationGroup},
	}

	// Gairaigo marks loan words, optionally with the original word.
	Gairaigo = &Attribute{
		Name:        "GAIRAIGO",
		Description: "loan word",
		ValueClass:  GairaigoClass,
		groups:      []Group{General},
	}

	// Explanation is additional information about a translation.
	Explanation = &Attribute{
		Name:           "EXPLANATION",
		Description:    "explanation",
		ValueClass:     InformationClass,
		AlwaysHasValue: true,
		groups:         []Group{TranslationGroup},
	}
)

// All returns all predefined attributes.
func All() []*Attribute {
	return []*Attribute{
		PartOfSpeech,
		Priority,
		Example,
		Abbreviation,
		Reference,
		Synonym,
		Antonym,
		Usage,
		Category,
		Gairaigo,
		Explanation,
	}
}

// Lookup returns the predefined attribute with the given name. A qualifier
// before the last '.' is ignored, so "Attributes.USAGE" names [Usage].
func Lookup(name string) (*Attribute, bool) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	for _, a := range All() {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}
