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
	"io"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// UTF8 is the handler for UTF-8 encoded dictionaries.
var UTF8 Handler = utf8Handler{}

// katakanaOffset is the distance between a katakana and the corresponding
// hiragana code point.
const katakanaOffset = 0x60

type utf8Handler struct{}

func (utf8Handler) Name() string {
	return "UTF-8"
}

func (utf8Handler) ReadCharacter(b []byte, pos int) (Char, int, error) {
	if pos < 0 || pos >= len(b) {
		return 0, pos, io.EOF
	}
	if b[pos] < utf8.RuneSelf {
		return Char(b[pos]), pos + 1, nil
	}
	r, size := utf8.DecodeRune(b[pos:])
	if r == utf8.RuneError && size <= 1 {
		return 0, pos, ErrMalformed
	}
	return Char(r), pos + size, nil
}

func (utf8Handler) ReadPreviousCharacter(b []byte, pos int) (Char, int, error) {
	if pos <= 0 || pos > len(b) {
		return 0, pos, io.EOF
	}
	if b[pos-1] < utf8.RuneSelf {
		return Char(b[pos-1]), pos - 1, nil
	}
	r, size := utf8.DecodeLastRune(b[:pos])
	if r == utf8.RuneError && size <= 1 {
		return 0, pos, ErrMalformed
	}
	return Char(r), pos - size, nil
}

func (utf8Handler) ClassOf(c Char, inWord bool) Class {
	switch {
	case c >= 0x4e00 && c < 0xa000,
		c >= 0x3400 && c < 0x4dc0,
		c >= 0xf900 && c < 0xfb00:
		return Kanji
	case c >= 0x3040 && c < 0x30a0:
		return Hiragana
	case c >= 0x30a0 && c < 0x3100,
		c >= 0xff66 && c < 0xffa0:
		return Katakana
	case c == '-':
		if inWord {
			return RomanWord
		}
		return Other
	case c == '\\':
		// Possible start of an escape sequence.
		return RomanWord
	case unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)):
		return RomanWord
	default:
		return Other
	}
}

func (utf8Handler) SortKey(c Char) Char {
	switch {
	case c >= 0x30a1 && c <= 0x30f6:
		return c - katakanaOffset
	case c >= 'A' && c <= 'Z':
		return c | 0x20
	case c > 0x7f && c < 0x100:
		return Char(unicode.ToLower(rune(c)))
	default:
		return c
	}
}

func (utf8Handler) CanEncode(r rune) bool {
	return utf8.ValidRune(r)
}

func (utf8Handler) NewDecoder() transform.Transformer {
	return encoding.UTF8Validator
}

func (utf8Handler) NewEncoder() transform.Transformer {
	return encoding.UTF8Validator
}
