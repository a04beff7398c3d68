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
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/transform"
)

var (
	// ErrMalformed indicates an invalid byte sequence for the encoding.
	ErrMalformed = errors.New("malformed character")

	// ErrUnsupportedEncoding indicates that no handler exists for an encoding.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// Char is a single character as read from the encoded bytes. For UTF-8 it
// is the Unicode code point. For EUC-JP it is the raw value of the one to
// three bytes which make up the character.
type Char int32

// Class is the class of a character with respect to term boundaries.
type Class int

const (
	// Other characters are never part of an index term.
	Other Class = iota

	// Kanji characters. Every kanji is indexed individually.
	Kanji

	// Hiragana characters. Maximal hiragana runs are indexed.
	Hiragana

	// Katakana characters. Maximal katakana runs are indexed.
	Katakana

	// RomanWord characters are letters and digits. Runs of at least three
	// characters are indexed.
	RomanWord
)

// String implements [fmt.Stringer].
func (c Class) String() string {
	switch c {
	case Other:
		return "other"
	case Kanji:
		return "kanji"
	case Hiragana:
		return "hiragana"
	case Katakana:
		return "katakana"
	case RomanWord:
		return "roman"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Handler reads characters of one text encoding.
//
// Positions are plain byte offsets into the slice passed to each method.
// Reading outside of the slice returns [io.EOF], an invalid byte sequence
// returns [ErrMalformed]. Handlers are stateless and safe for concurrent
// use.
type Handler interface {
	// Name returns the canonical name of the encoding.
	Name() string

	// ReadCharacter reads the character starting at pos and returns it
	// together with the position of the following character.
	ReadCharacter(b []byte, pos int) (Char, int, error)

	// ReadPreviousCharacter reads the character which ends right before pos
	// and returns it together with its start position.
	ReadPreviousCharacter(b []byte, pos int) (Char, int, error)

	// ClassOf returns the class of c. inWord is true if the preceding
	// character was part of a roman word, which lets a hyphen continue the
	// word.
	ClassOf(c Char, inWord bool) Class

	// SortKey returns the canonical ordering key of c.
	SortKey(c Char) Char

	// CanEncode reports whether r can be represented in the encoding.
	CanEncode(r rune) bool

	// NewDecoder returns a transformer from the encoding to UTF-8.
	NewDecoder() transform.Transformer

	// NewEncoder returns a transformer from UTF-8 to the encoding.
	NewEncoder() transform.Transformer
}

// ForEncoding returns the handler for the named encoding. Names are matched
// case-insensitively.
func ForEncoding(name string) (Handler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "euc-jp", "eucjp", "euc_jp":
		return EUCJP, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
}

// Validate checks that b consists of well-formed characters only.
func Validate(h Handler, b []byte) error {
	for pos := 0; pos < len(b); {
		_, next, err := h.ReadCharacter(b, pos)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: truncated character at %d", ErrMalformed, pos)
			}
			return err
		}
		pos = next
	}
	return nil
}

// Compare compares the characters of a and b by sort key. A slice which is
// a prefix of the other compares as smaller.
func Compare(h Handler, a, b []byte) int {
	var i, j int
	for i < len(a) && j < len(b) {
		ca, ni, errA := h.ReadCharacter(a, i)
		cb, nj, errB := h.ReadCharacter(b, j)
		if errA != nil || errB != nil {
			// Fall back to raw bytes so that the ordering stays total.
			ca, ni = Char(a[i]), i+1
			cb, nj = Char(b[j]), j+1
		}
		ka, kb := h.SortKey(ca), h.SortKey(cb)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		i, j = ni, nj
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	default:
		return 0
	}
}
