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

package edict_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-edict"
	"github.com/ianlewis/go-edict/attribute"
)

type sense struct {
	Translations []string
	Attrs        string
}

type parsed struct {
	Word             string
	Reading          string
	Senses           []sense
	General          string
	WordAttrs        string
	TranslationAttrs string
}

func summarize(e *edict.Entry) parsed {
	p := parsed{
		Word:             e.Word,
		Reading:          e.Reading,
		General:          e.General.String(),
		WordAttrs:        e.WordAttrs.String(),
		TranslationAttrs: e.TranslationAttrs.String(),
	}
	for _, s := range e.Senses {
		p.Senses = append(p.Senses, sense{
			Translations: s.Translations,
			Attrs:        s.Attrs.String(),
		})
	}
	return p
}

func TestEDICT_Parse(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		text string
		want parsed
	}{
		"basic": {
			text: "日本 [にほん] /(n) Japan/(P)/",
			want: parsed{
				Word:    "日本",
				Reading: "にほん",
				Senses: []sense{
					{Translations: []string{"Japan"}},
				},
				General: "PART_OF_SPEECH:n PRIORITY:P",
			},
		},
		"no reading": {
			text: "カメラ /(n) camera/",
			want: parsed{
				Word:    "カメラ",
				Reading: "カメラ",
				Senses: []sense{
					{Translations: []string{"camera"}},
				},
				General: "PART_OF_SPEECH:n",
			},
		},
		"senses": {
			text: "本 [ほん] /(n) (1) book/volume/(2) (hon) main/(3) (col) this/",
			want: parsed{
				Word:    "本",
				Reading: "ほん",
				Senses: []sense{
					{Translations: []string{"book", "volume"}},
					{Translations: []string{"main"}, Attrs: "USAGE:hon"},
					{Translations: []string{"this"}, Attrs: "USAGE:col"},
				},
				General: "PART_OF_SPEECH:n",
			},
		},
		"usage before senses": {
			text: "御飯 [ごはん] /(n,pol) (1) cooked rice/(2) meal/",
			want: parsed{
				Word:    "御飯",
				Reading: "ごはん",
				Senses: []sense{
					{Translations: []string{"cooked rice"}},
					{Translations: []string{"meal"}},
				},
				General: "PART_OF_SPEECH:n USAGE:pol",
			},
		},
		"part of speech in sense": {
			text: "上 [うえ] /(1) (n) above/(2) (adj-no) upper/",
			want: parsed{
				Word:    "上",
				Reading: "うえ",
				Senses: []sense{
					{Translations: []string{"above"}},
					{Translations: []string{"upper"}},
				},
				General: "PART_OF_SPEECH:n,adj-no",
			},
		},
		"multi-digit sense": {
			text: "x /(1) a/(10) b/",
			want: parsed{
				Word:    "x",
				Reading: "x",
				Senses: []sense{
					{Translations: []string{"a"}},
					{Translations: []string{"b"}},
				},
			},
		},
		"unknown markers": {
			text: "語 [ご] /(n,foo,bar) (baz) word/",
			want: parsed{
				Word:    "語",
				Reading: "ご",
				Senses: []sense{
					{Translations: []string{"(foo,bar) (baz) word"}},
				},
				General: "PART_OF_SPEECH:n",
			},
		},
		"markers without text": {
			text: "語 [ご] /(n) /word/",
			want: parsed{
				Word:    "語",
				Reading: "ご",
				Senses: []sense{
					{Translations: []string{"", "word"}},
				},
				General: "PART_OF_SPEECH:n",
			},
		},
		"category": {
			text: "寄り切り [よりきり] /(n,sumo) frontal force out/",
			want: parsed{
				Word:    "寄り切り",
				Reading: "よりきり",
				Senses: []sense{
					{Translations: []string{"frontal force out"}},
				},
				General: "PART_OF_SPEECH:n CATEGORY:sumo",
			},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			e, err := edict.EDICT.Parse(tc.text, 42)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if e.Offset != 42 {
				t.Errorf("Offset: got %d, want 42", e.Offset)
			}
			if diff := cmp.Diff(tc.want, summarize(e)); diff != "" {
				t.Errorf("Parse (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestEDICT_Parse_inheritance(t *testing.T) {
	t.Parallel()

	e, err := edict.EDICT.Parse("本 [ほん] /(n) (1) (hon) book/", 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	s := e.Senses[0].Attrs
	if !s.ContainsKey(attribute.PartOfSpeech, true) {
		t.Errorf("sense does not inherit the part of speech")
	}
	if s.ContainsKey(attribute.PartOfSpeech, false) {
		t.Errorf("part of speech is local to the sense")
	}
	if !e.WordAttrs.ContainsKey(attribute.PartOfSpeech, true) {
		t.Errorf("word attributes do not inherit the part of speech")
	}
	inherited, err := s.IsInherited(attribute.Usage)
	if err != nil || inherited {
		t.Errorf("IsInherited(Usage): got %v, %v, want false, nil", inherited, err)
	}
	if _, err := e.TranslationAttrs.IsInherited(attribute.Usage); !errors.Is(err, attribute.ErrNotSet) {
		t.Errorf("IsInherited(Usage): got %v, want %v", err, attribute.ErrNotSet)
	}
}

func TestEDICT_Parse_invalid(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"",
		"本 [ほん]",
		"本 [ほん] book",
		"本 /book",
	} {
		_, err := edict.EDICT.Parse(text, 7)
		var merr *edict.MalformedEntryError
		if !errors.As(err, &merr) {
			t.Errorf("Parse(%q): got %v, want *MalformedEntryError", text, err)
			continue
		}
		if merr.Offset != 7 || !errors.Is(err, edict.ErrInvalidEntry) {
			t.Errorf("Parse(%q): got %v", text, err)
		}
	}
}

func TestEDICT_Attributes(t *testing.T) {
	t.Parallel()

	m, err := attribute.LoadMapper(strings.NewReader("n PART_OF_SPEECH PartOfSpeech n\n"))
	if err != nil {
		t.Fatalf("LoadMapper: %v", err)
	}
	f := edict.NewEDICTFormat(m)

	var names []string
	for _, a := range f.Attributes() {
		names = append(names, a.Name)
	}
	want := []string{attribute.PartOfSpeech.Name, attribute.Priority.Name}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Attributes (-want, +got):\n%s", diff)
	}

	// Markers missing from the mapping are kept in the text.
	e, err := f.Parse("語 [ご] /(n,vs) word/", 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff([][]string{{"(vs) word"}}, translations(e)); diff != "" {
		t.Errorf("translations (-want, +got):\n%s", diff)
	}
}

func TestEntry_String(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"日本 [にほん] /(n) Japan/":       "日本 [にほん] /Japan/",
		"カメラ /(n) camera/":           "カメラ /camera/",
		"本 [ほん] /(1) book/(2) main/": "本 [ほん] /(1) book/(2) main/",
	}

	for text, want := range testCases {
		e, err := edict.EDICT.Parse(text, 0)
		if err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		if got := e.String(); got != want {
			t.Errorf("String: got %q, want %q", got, want)
		}
	}
}
