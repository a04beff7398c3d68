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

package chars

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type read struct {
	Char Char
	Pos  int
}

func readAll(t *testing.T, h Handler, b []byte) []read {
	t.Helper()

	var got []read
	for pos := 0; ; {
		c, next, err := h.ReadCharacter(b, pos)
		if errors.Is(err, io.EOF) {
			return got
		}
		if err != nil {
			t.Fatalf("ReadCharacter(%d): %v", pos, err)
		}
		got = append(got, read{Char: c, Pos: next})
		pos = next
	}
}

func readAllBackwards(t *testing.T, h Handler, b []byte) []read {
	t.Helper()

	var got []read
	for pos := len(b); ; {
		c, prev, err := h.ReadPreviousCharacter(b, pos)
		if errors.Is(err, io.EOF) {
			return got
		}
		if err != nil {
			t.Fatalf("ReadPreviousCharacter(%d): %v", pos, err)
		}
		got = append(got, read{Char: c, Pos: prev})
		pos = prev
	}
}

func TestReadCharacter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   Handler
		input     []byte
		forward   []read
		backwards []read
	}{
		{
			name:    "utf-8 mixed",
			handler: UTF8,
			input:   []byte("aあ日"),
			forward: []read{
				{Char: 'a', Pos: 1},
				{Char: 'あ', Pos: 4},
				{Char: '日', Pos: 7},
			},
			backwards: []read{
				{Char: '日', Pos: 4},
				{Char: 'あ', Pos: 1},
				{Char: 'a', Pos: 0},
			},
		},
		{
			name:    "euc-jp mixed",
			handler: EUCJP,
			// a, hiragana a, half-width katakana a, three byte kanji, nichi
			input: []byte{'a', 0xa4, 0xa2, 0x8e, 0xb1, 0x8f, 0xb0, 0xa1, 0xc6, 0xfc},
			forward: []read{
				{Char: 'a', Pos: 1},
				{Char: 0xa4a2, Pos: 3},
				{Char: 0x8eb1, Pos: 5},
				{Char: 0x8fb0a1, Pos: 8},
				{Char: 0xc6fc, Pos: 10},
			},
			backwards: []read{
				{Char: 0xc6fc, Pos: 8},
				{Char: 0x8fb0a1, Pos: 5},
				{Char: 0x8eb1, Pos: 3},
				{Char: 0xa4a2, Pos: 1},
				{Char: 'a', Pos: 0},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.forward, readAll(t, test.handler, test.input)); diff != "" {
				t.Errorf("forward (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.backwards, readAllBackwards(t, test.handler, test.input)); diff != "" {
				t.Errorf("backwards (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestReadCharacter_malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler Handler
		input   []byte
	}{
		{
			name:    "utf-8 invalid byte",
			handler: UTF8,
			input:   []byte{0xff},
		},
		{
			name:    "utf-8 truncated",
			handler: UTF8,
			input:   []byte{0xe3, 0x81},
		},
		{
			name:    "euc-jp truncated",
			handler: EUCJP,
			input:   []byte{0xa4},
		},
		{
			name:    "euc-jp bad trail byte",
			handler: EUCJP,
			input:   []byte{0xa4, 0x41},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := test.handler.ReadCharacter(test.input, 0); !errors.Is(err, ErrMalformed) {
				t.Errorf("ReadCharacter: expected %v, got %v", ErrMalformed, err)
			}
			if err := Validate(test.handler, test.input); !errors.Is(err, ErrMalformed) {
				t.Errorf("Validate: expected %v, got %v", ErrMalformed, err)
			}
		})
	}
}

func TestClassOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		handler  Handler
		char     Char
		inWord   bool
		expected Class
	}{
		{"utf-8 kanji", UTF8, '日', false, Kanji},
		{"utf-8 hiragana", UTF8, 'あ', false, Hiragana},
		{"utf-8 katakana", UTF8, 'ア', false, Katakana},
		{"utf-8 prolonged mark", UTF8, 'ー', false, Katakana},
		{"utf-8 half-width katakana", UTF8, 'ｱ', false, Katakana},
		{"utf-8 letter", UTF8, 'x', false, RomanWord},
		{"utf-8 digit", UTF8, '7', false, RomanWord},
		{"utf-8 backslash", UTF8, '\\', false, RomanWord},
		{"utf-8 hyphen in word", UTF8, '-', true, RomanWord},
		{"utf-8 hyphen", UTF8, '-', false, Other},
		{"utf-8 space", UTF8, ' ', false, Other},
		{"utf-8 slash", UTF8, '/', false, Other},
		{"euc-jp kanji", EUCJP, 0xc6fc, false, Kanji},
		{"euc-jp three byte kanji", EUCJP, 0x8fb0a1, false, Kanji},
		{"euc-jp hiragana", EUCJP, 0xa4a2, false, Hiragana},
		{"euc-jp katakana", EUCJP, 0xa5a2, false, Katakana},
		{"euc-jp prolonged mark", EUCJP, 0xa1bc, false, Katakana},
		{"euc-jp half-width katakana", EUCJP, 0x8eb1, false, Katakana},
		{"euc-jp full-width letter", EUCJP, 0xa3c1, false, RomanWord},
		{"euc-jp full-width symbol", EUCJP, 0xa3a1, false, Other},
		{"euc-jp letter", EUCJP, 'x', false, RomanWord},
		{"euc-jp hyphen in word", EUCJP, '-', true, RomanWord},
		{"euc-jp hyphen", EUCJP, '-', false, Other},
		{"euc-jp punctuation", EUCJP, 0xa1a3, false, Other},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got, want := test.handler.ClassOf(test.char, test.inWord), test.expected; got != want {
				t.Errorf("ClassOf(%#x, %v): expected %v, got %v", test.char, test.inWord, want, got)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		handler  Handler
		a, b     []byte
		expected int
	}{
		{
			name:     "utf-8 equal",
			handler:  UTF8,
			a:        []byte("word"),
			b:        []byte("word"),
			expected: 0,
		},
		{
			name:     "utf-8 case folded",
			handler:  UTF8,
			a:        []byte("Word"),
			b:        []byte("wORD"),
			expected: 0,
		},
		{
			name:     "utf-8 katakana as hiragana",
			handler:  UTF8,
			a:        []byte("アイ"),
			b:        []byte("あい"),
			expected: 0,
		},
		{
			name:     "utf-8 prefix first",
			handler:  UTF8,
			a:        []byte("ab"),
			b:        []byte("abc"),
			expected: -1,
		},
		{
			name:     "utf-8 less",
			handler:  UTF8,
			a:        []byte("abc"),
			b:        []byte("abd"),
			expected: -1,
		},
		{
			name:     "utf-8 greater",
			handler:  UTF8,
			a:        []byte("b"),
			b:        []byte("abc"),
			expected: 1,
		},
		{
			name:     "euc-jp katakana as hiragana",
			handler:  EUCJP,
			a:        []byte{0xa5, 0xa2},
			b:        []byte{0xa4, 0xa2},
			expected: 0,
		},
		{
			name:     "euc-jp case folded",
			handler:  EUCJP,
			a:        []byte("ABC"),
			b:        []byte("abc"),
			expected: 0,
		},
		{
			name:     "euc-jp kanji after kana",
			handler:  EUCJP,
			a:        []byte{0xc6, 0xfc},
			b:        []byte{0xa4, 0xa2},
			expected: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got, want := Compare(test.handler, test.a, test.b), test.expected; got != want {
				t.Errorf("Compare(%q, %q): expected %d, got %d", test.a, test.b, want, got)
			}
		})
	}
}

func TestCanEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		handler  Handler
		r        rune
		expected bool
	}{
		{"utf-8 ascii", UTF8, 'a', true},
		{"utf-8 emoji", UTF8, '😀', true},
		{"utf-8 surrogate", UTF8, 0xd800, false},
		{"euc-jp ascii", EUCJP, 'a', true},
		{"euc-jp hiragana", EUCJP, 'あ', true},
		{"euc-jp emoji", EUCJP, '😀', false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got, want := test.handler.CanEncode(test.r), test.expected; got != want {
				t.Errorf("CanEncode(%q): expected %v, got %v", test.r, want, got)
			}
		})
	}
}

func TestForEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected Handler
		err      error
	}{
		{name: "UTF-8", expected: UTF8},
		{name: "utf8", expected: UTF8},
		{name: "EUC-JP", expected: EUCJP},
		{name: "euc_jp", expected: EUCJP},
		{name: "shift_jis", err: ErrUnsupportedEncoding},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			h, err := ForEncoding(test.name)
			if !errors.Is(err, test.err) {
				t.Fatalf("expected error %v, got %v", test.err, err)
			}
			if h != test.expected {
				t.Errorf("expected %v, got %v", test.expected, h)
			}
		})
	}
}
