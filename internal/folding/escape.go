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

package folding

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// escapeLen is the length of a \uXXXX escape sequence.
const escapeLen = 6

// longEscapeLen is the length of a \UXXXXXXXX escape sequence.
const longEscapeLen = 10

// Escaper replaces runes for which Escape returns true with a \uXXXX escape
// sequence. Runes outside of the Basic Multilingual Plane use the
// \UXXXXXXXX form. A backslash is escaped only if it is followed by 'u' or
// 'U', so that other backslashes stay as they are in the text.
type Escaper struct {
	// Escape reports whether r must be escaped.
	Escape func(r rune) bool
}

// Transform implements [transform.Transformer.Transform].
func (e Escaper) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && size == 1 && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		escape := e.Escape != nil && e.Escape(c)
		if c == '\\' {
			if nSrc+1 >= len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			escape = escape || startsEscape(src[nSrc+1:])
		}
		if !escape {
			if nDst+size > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
			nSrc += size
			continue
		}

		var seq string
		if c > 0xffff {
			seq = fmt.Sprintf(`\U%08x`, c)
		} else {
			seq = fmt.Sprintf(`\u%04x`, c)
		}
		if nDst+len(seq) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], seq)
		nSrc += size
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (Escaper) Reset() {}

// Unescaper replaces \uXXXX and \UXXXXXXXX escape sequences with the rune
// they represent. Backslashes which do not start a valid escape sequence
// are copied unchanged.
type Unescaper struct{}

// Transform implements [transform.Transformer.Transform].
func (Unescaper) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		if src[nSrc] != '\\' {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = src[nSrc]
			nDst++
			nSrc++
			continue
		}

		n := 0
		if nSrc+1 < len(src) {
			switch src[nSrc+1] {
			case 'u':
				n = escapeLen
			case 'U':
				n = longEscapeLen
			}
		} else if !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if n > 0 && nSrc+n > len(src) && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}

		r, ok := rune(0), false
		if n > 0 && nSrc+n <= len(src) {
			r, ok = parseEscape(src[nSrc+2 : nSrc+n])
		}
		if !ok {
			// Not an escape sequence, copy the backslash.
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = '\\'
			nDst++
			nSrc++
			continue
		}

		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += n
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (Unescaper) Reset() {}

// startsEscape reports whether a backslash followed by b would be read as
// the start of an escape sequence.
func startsEscape(b []byte) bool {
	return len(b) > 0 && (b[0] == 'u' || b[0] == 'U')
}

func parseEscape(hex []byte) (rune, bool) {
	v, err := strconv.ParseUint(string(hex), 16, 32)
	if err != nil {
		return 0, false
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, false
	}
	return r, true
}
