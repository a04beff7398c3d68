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

package idx

import (
	"github.com/ianlewis/go-edict/chars"
	"github.com/ianlewis/go-edict/record"
)

// Source is the dictionary data an index is built from and searched in.
type Source struct {
	// Data is the raw dictionary data.
	Data []byte

	// Handler reads characters from Data.
	Handler chars.Handler

	// Structure describes the records in Data.
	Structure record.Structure
}

// key returns the sort key of the character at pos and the position of the
// next character. ok is false at the end of the term data, which is either
// a record separator or the end of the dictionary.
func (s Source) key(pos int) (chars.Char, int, bool) {
	if pos < 0 || pos >= len(s.Data) || s.Structure.IsSeparator(s.Data[pos]) {
		return 0, pos, false
	}
	c, next, err := s.Handler.ReadCharacter(s.Data, pos)
	if err != nil {
		// Compare malformed data byte by byte.
		return chars.Char(s.Data[pos]), pos + 1, true
	}
	return s.Handler.SortKey(c), next, true
}

// Compare compares the terms at the dictionary positions a and b. Terms are
// compared character by character by their sort keys up to the end of the
// record.
func Compare(src Source, a, b int) int {
	if a == b {
		return 0
	}
	for {
		ka, na, okA := src.key(a)
		kb, nb, okB := src.key(b)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return 1
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		a, b = na, nb
	}
}

// CompareQuery compares the encoded query q with the term at the dictionary
// position pos. It returns zero if the term starts with q.
func CompareQuery(src Source, q []byte, pos int) int {
	for i := 0; i < len(q); {
		var kq chars.Char
		c, next, err := src.Handler.ReadCharacter(q, i)
		if err != nil {
			kq, next = chars.Char(q[i]), i+1
		} else {
			kq = src.Handler.SortKey(c)
		}

		kd, nd, ok := src.key(pos)
		switch {
		case !ok:
			return 1
		case kq < kd:
			return -1
		case kq > kd:
			return 1
		}
		i, pos = next, nd
	}
	return 0
}
