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

package record

import (
	"errors"
	"io"

	"github.com/ianlewis/go-edict/chars"
)

// IsWordBoundary reports whether the characters before and at pos belong to
// different character classes. The start and the end of the record are
// boundaries. Malformed characters are never boundaries.
func IsWordBoundary(h chars.Handler, rec []byte, pos int) bool {
	c1, _, err := h.ReadPreviousCharacter(rec, pos)
	if errors.Is(err, io.EOF) {
		return true
	}
	if err != nil {
		return false
	}

	c2, _, err := h.ReadCharacter(rec, pos)
	if errors.Is(err, io.EOF) {
		return true
	}
	if err != nil {
		return false
	}

	cc1 := h.ClassOf(c1, false)
	return cc1 != h.ClassOf(c2, cc1 == chars.RomanWord)
}

// IsWordStart reports whether the character at pos starts a word, either
// because it starts a field of kind f or because it follows a word boundary.
func IsWordStart(h chars.Handler, s Structure, rec []byte, pos int, f Field) bool {
	return s.IsFieldStart(rec, pos, f) || IsWordBoundary(h, rec, pos)
}

// IsWordEnd reports whether pos is right after the last character of a
// word.
func IsWordEnd(h chars.Handler, s Structure, rec []byte, pos int, f Field) bool {
	return s.IsFieldEnd(rec, pos, f) || IsWordBoundary(h, rec, pos)
}
