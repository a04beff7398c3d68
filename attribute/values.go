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
	"fmt"
	"strings"
)

// Value classes used in mapping files.
const (
	PartOfSpeechClass = "PartOfSpeech"
	UsageClass        = "Usage"
	CategoryClass     = "Category"
	PriorityClass     = "Priority"
	AbbreviationClass = "Abbreviation"
	GairaigoClass     = "Gairaigo"
	InformationClass  = "Information"
	ReferenceClass    = "Reference"
)

var (
	// ErrUnknownValueClass indicates an unsupported value class.
	ErrUnknownValueClass = errors.New("unknown value class")

	// ErrUnknownValue indicates a value id which is not defined for a value
	// class.
	ErrUnknownValue = errors.New("unknown value")
)

// Value is the value of an attribute. Values are comparable with ==.
type Value interface {
	// Class returns the value class.
	Class() string

	String() string
}

// CategoryValue is a value from a fixed set of values, like a part of
// speech. Category values are interned, there is exactly one value for
// each class and id.
type CategoryValue struct {
	class string
	id    string
	name  string
}

// Class implements [Value].
func (v *CategoryValue) Class() string {
	return v.class
}

// ID returns the short identifier of the value, e.g. "adj-na".
func (v *CategoryValue) ID() string {
	return v.id
}

// Name returns the long name of the value.
func (v *CategoryValue) Name() string {
	return v.name
}

// String implements [fmt.Stringer].
func (v *CategoryValue) String() string {
	return v.id
}

// PriorityValue is the priority of a word.
type PriorityValue string

// Class implements [Value].
func (PriorityValue) Class() string {
	return PriorityClass
}

func (p PriorityValue) String() string {
	return string(p)
}

// LanguageValue is a word in a foreign language. It is used for
// abbreviations and loan words.
type LanguageValue struct {
	class string

	// Word is the original word, if known.
	Word string

	// Language is the language of the word, if known.
	Language string
}

// Class implements [Value].
func (v LanguageValue) Class() string {
	return v.class
}

func (v LanguageValue) String() string {
	switch {
	case v.Word == "":
		return v.Language
	case v.Language == "":
		return v.Word
	default:
		return v.Language + ":" + v.Word
	}
}

// InformationValue is free form text.
type InformationValue string

// Class implements [Value].
func (InformationValue) Class() string {
	return InformationClass
}

func (v InformationValue) String() string {
	return string(v)
}

// ReferenceValue refers to another entry by its word.
type ReferenceValue string

// Class implements [Value].
func (ReferenceValue) Class() string {
	return ReferenceClass
}

func (v ReferenceValue) String() string {
	return string(v)
}

var partsOfSpeech = map[string]string{
	"adj":     "adjective (keiyoushi)",
	"adj-i":   "adjective (keiyoushi)",
	"adj-na":  "adjectival noun or quasi-adjective (keiyodoshi)",
	"adj-no":  "noun which may take the genitive case particle 'no'",
	"adj-pn":  "pre-noun adjectival (rentaishi)",
	"adj-t":   "'taru' adjective",
	"adj-f":   "noun or verb acting prenominally",
	"adv":     "adverb (fukushi)",
	"adv-n":   "adverbial noun",
	"adv-to":  "adverb taking the 'to' particle",
	"aux":     "auxiliary",
	"aux-v":   "auxiliary verb",
	"aux-adj": "auxiliary adjective",
	"conj":    "conjunction",
	"ctr":     "counter",
	"exp":     "expression",
	"int":     "interjection (kandoushi)",
	"n":       "noun (common) (futsuumeishi)",
	"n-adv":   "adverbial noun (fukushitekimeishi)",
	"n-pref":  "noun, used as a prefix",
	"n-suf":   "noun, used as a suffix",
	"n-t":     "noun (temporal) (jisoumeishi)",
	"num":     "numeric",
	"pn":      "pronoun",
	"pref":    "prefix",
	"prt":     "particle",
	"suf":     "suffix",
	"v1":      "Ichidan verb",
	"v5":      "Godan verb",
	"v5aru":   "Godan verb - -aru special class",
	"v5b":     "Godan verb with 'bu' ending",
	"v5g":     "Godan verb with 'gu' ending",
	"v5k":     "Godan verb with 'ku' ending",
	"v5k-s":   "Godan verb - Iku/Yuku special class",
	"v5m":     "Godan verb with 'mu' ending",
	"v5n":     "Godan verb with 'nu' ending",
	"v5r":     "Godan verb with 'ru' ending",
	"v5r-i":   "Godan verb with 'ru' ending (irregular verb)",
	"v5s":     "Godan verb with 'su' ending",
	"v5t":     "Godan verb with 'tsu' ending",
	"v5u":     "Godan verb with 'u' ending",
	"v5u-s":   "Godan verb with 'u' ending (special class)",
	"v5uru":   "Godan verb - Uru old class verb",
	"v5z":     "Godan verb with 'zu' ending",
	"vi":      "intransitive verb",
	"vk":      "Kuru verb - special class",
	"vs":      "noun or participle which takes the aux. verb suru",
	"vs-i":    "suru verb - irregular",
	"vs-s":    "suru verb - special class",
	"vt":      "transitive verb",
	"vz":      "Ichidan verb - zuru verb",
}

var usages = map[string]string{
	"arch":   "archaism",
	"ateji":  "ateji (phonetic) reading",
	"chn":    "children's language",
	"col":    "colloquialism",
	"derog":  "derogatory",
	"fam":    "familiar language",
	"fem":    "female term or language",
	"gikun":  "gikun (meaning) reading",
	"hon":    "honorific or respectful (sonkeigo) language",
	"hum":    "humble (kenjougo) language",
	"id":     "idiomatic expression",
	"ik":     "word containing irregular kana usage",
	"io":     "irregular okurigana usage",
	"iK":     "word containing irregular kanji usage",
	"joc":    "jocular, humorous term",
	"m-sl":   "manga slang",
	"male":   "male term or language",
	"obs":    "obsolete term",
	"obsc":   "obscure term",
	"ok":     "out-dated or obsolete kana usage",
	"oK":     "word containing out-dated kanji",
	"on-mim": "onomatopoeic or mimetic word",
	"poet":   "poetical term",
	"pol":    "polite (teineigo) language",
	"rare":   "rare",
	"sens":   "sensitive",
	"sl":     "slang",
	"uk":     "word usually written using kana alone",
	"uK":     "word usually written using kanji alone",
	"vulg":   "vulgar expression or word",
	"X":      "rude or X-rated term",
}

var categories = map[string]string{
	"Buddh":   "Buddhist term",
	"MA":      "martial arts term",
	"biol":    "biology term",
	"bot":     "botany term",
	"chem":    "chemistry term",
	"comp":    "computer terminology",
	"econ":    "economics term",
	"food":    "food term",
	"geom":    "geometry term",
	"law":     "law term",
	"ling":    "linguistics terminology",
	"math":    "mathematics",
	"med":     "medicine term",
	"mil":     "military",
	"music":   "music term",
	"physics": "physics terminology",
	"sports":  "sports term",
	"sumo":    "sumo term",
	"zool":    "zoology term",
}

// interned holds the category values per class and id.
var interned = func() map[string]map[string]*CategoryValue {
	m := map[string]map[string]*CategoryValue{}
	for class, names := range map[string]map[string]string{
		PartOfSpeechClass: partsOfSpeech,
		UsageClass:        usages,
		CategoryClass:     categories,
	} {
		values := make(map[string]*CategoryValue, len(names))
		for id, name := range names {
			values[id] = &CategoryValue{class: class, id: id, name: name}
		}
		m[class] = values
	}
	return m
}()

// CategoryValueOf returns the category value with the given class and id.
func CategoryValueOf(class, id string) (*CategoryValue, bool) {
	v, ok := interned[class][id]
	return v, ok
}

// NewValue returns a value of the given class built from id. Category
// classes only accept predefined ids. Language values take an id of the
// form "language" or "language:word".
func NewValue(class, id string) (Value, error) {
	if i := strings.LastIndexByte(class, '.'); i >= 0 {
		class = class[i+1:]
	}

	switch class {
	case PartOfSpeechClass, UsageClass, CategoryClass:
		v, ok := CategoryValueOf(class, id)
		if !ok {
			return nil, fmt.Errorf("%w: %s %q", ErrUnknownValue, class, id)
		}
		return v, nil
	case PriorityClass:
		return PriorityValue(id), nil
	case AbbreviationClass, GairaigoClass:
		lang, word, _ := strings.Cut(id, ":")
		return LanguageValue{class: class, Language: lang, Word: word}, nil
	case InformationClass:
		return InformationValue(id), nil
	case ReferenceClass:
		return ReferenceValue(id), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownValueClass, class)
	}
}

// NewLanguageValue returns a value of class [AbbreviationClass] or
// [GairaigoClass].
func NewLanguageValue(class, language, word string) LanguageValue {
	return LanguageValue{class: class, Language: language, Word: word}
}
