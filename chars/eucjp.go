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

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// EUCJP is the handler for EUC-JP encoded dictionaries.
var EUCJP Handler = eucjpHandler{}

const (
	// eucSS2 introduces a half-width katakana.
	eucSS2 = 0x8e
	// eucSS3 introduces a three byte JIS X 0212 character.
	eucSS3 = 0x8f

	eucHiragana      = 0xa4
	eucKatakana      = 0xa5
	eucRoman         = 0xa3
	eucProlongedMark = 0xa1bc
	eucFirstKanji    = 0xb0a1
	eucFirstKanji3   = 0x8fb0a1
)

type eucjpHandler struct{}

func (eucjpHandler) Name() string {
	return "EUC-JP"
}

// isTrail reports whether b is valid as the second or third byte of a
// multibyte character.
func isTrail(b byte) bool {
	return b >= 0xa1 && b != 0xff
}

func (eucjpHandler) ReadCharacter(b []byte, pos int) (Char, int, error) {
	if pos < 0 || pos >= len(b) {
		return 0, pos, io.EOF
	}
	c := b[pos]
	switch {
	case c < 0x80:
		return Char(c), pos + 1, nil
	case c == eucSS3:
		if pos+2 >= len(b) || !isTrail(b[pos+1]) || !isTrail(b[pos+2]) {
			return 0, pos, ErrMalformed
		}
		return Char(c)<<16 | Char(b[pos+1])<<8 | Char(b[pos+2]), pos + 3, nil
	case c == eucSS2 || isTrail(c):
		if pos+1 >= len(b) || !isTrail(b[pos+1]) {
			return 0, pos, ErrMalformed
		}
		return Char(c)<<8 | Char(b[pos+1]), pos + 2, nil
	default:
		return 0, pos, ErrMalformed
	}
}

func (eucjpHandler) ReadPreviousCharacter(b []byte, pos int) (Char, int, error) {
	if pos <= 0 || pos > len(b) {
		return 0, pos, io.EOF
	}
	last := b[pos-1]
	if last < 0x80 {
		return Char(last), pos - 1, nil
	}
	// The last byte of a multibyte character is always a trail byte, and
	// a lead byte is never used as a trail byte, so reading backwards is
	// unambiguous.
	if !isTrail(last) || pos < 2 {
		return 0, pos, ErrMalformed
	}
	prev := b[pos-2]
	switch {
	case pos >= 3 && b[pos-3] == eucSS3 && isTrail(prev):
		return Char(eucSS3)<<16 | Char(prev)<<8 | Char(last), pos - 3, nil
	case prev == eucSS2 || isTrail(prev):
		return Char(prev)<<8 | Char(last), pos - 2, nil
	default:
		return 0, pos, ErrMalformed
	}
}

func (eucjpHandler) ClassOf(c Char, inWord bool) Class {
	if c < 0x80 {
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '\\':
			return RomanWord
		case c == '-' && inWord:
			return RomanWord
		default:
			return Other
		}
	}

	if c > 0xffff {
		if c >= eucFirstKanji3 {
			return Kanji
		}
		return Other
	}

	lo := c & 0xff
	switch c >> 8 {
	case eucSS2:
		// Half-width katakana including the half-width prolonged mark.
		if lo >= 0xa6 && lo <= 0xdf {
			return Katakana
		}
		return Other
	case eucHiragana:
		return Hiragana
	case eucKatakana:
		return Katakana
	case eucRoman:
		if lo >= 0xb0 && lo <= 0xb9 || lo >= 0xc1 && lo <= 0xda || lo >= 0xe1 && lo <= 0xfa {
			return RomanWord
		}
		return Other
	}

	switch {
	case c == eucProlongedMark:
		return Katakana
	case c >= eucFirstKanji:
		return Kanji
	default:
		return Other
	}
}

func (eucjpHandler) SortKey(c Char) Char {
	switch {
	case c >= 'A' && c <= 'Z':
		return c | 0x20
	case c>>8 == eucKatakana && c&0xff <= 0xf6:
		return eucHiragana<<8 | c&0xff
	case c>>8 == eucRoman && c&0xff >= 0xc1 && c&0xff <= 0xda:
		// Full-width upper case to full-width lower case.
		return c + 0x20
	default:
		return c
	}
}

func (h eucjpHandler) CanEncode(r rune) bool {
	if r < 0x80 {
		return true
	}
	_, _, err := transform.String(h.NewEncoder(), string(r))
	return err == nil
}

func (eucjpHandler) NewDecoder() transform.Transformer {
	return japanese.EUCJP.NewDecoder()
}

func (eucjpHandler) NewEncoder() transform.Transformer {
	return japanese.EUCJP.NewEncoder()
}
