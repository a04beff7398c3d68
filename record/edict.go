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
	"bytes"

	"github.com/ianlewis/go-edict/chars"
)

// EDICT is the structure of EDICT records:
//
//	WORD [READING] /TRANSLATION/TRANSLATION/
//
// The reading is optional. Translation fields may start with sense markers
// like (1) and part of speech markers like (n).
var EDICT Structure = edictStructure{}

type edictStructure struct{}

func isNewline(b byte) bool {
	return b == '\n' || b == '\r'
}

func (edictStructure) IsSeparator(b byte) bool {
	return isNewline(b)
}

func (edictStructure) NextField(data []byte, pos int, c chars.Char, f Field) (Field, int) {
	switch {
	case f == Unknown:
		return Word, pos
	case f == Word && c == ' ':
		if pos < len(data) && data[pos] == '[' {
			return Reading, pos + 1
		}
		return Translation, pos
	case f == Reading && c == ']':
		if pos < len(data) && data[pos] == ' ' {
			pos++
		}
		return Translation, pos
	case c == '\n' || c == '\r':
		return Word, pos
	default:
		return f, pos
	}
}

func (edictStructure) FieldAt(rec []byte, pos int) Field {
	// The word ends at the first space. Brackets after it are only a
	// reading if they directly follow that space.
	sp := bytes.IndexByte(rec, ' ')
	if sp < 0 || pos <= sp {
		return Word
	}
	if sp+1 < len(rec) && rec[sp+1] == '[' {
		end := bytes.IndexByte(rec[sp+1:], ']')
		if end < 0 || pos <= sp+1+end {
			return Reading
		}
	}
	return Translation
}

func (edictStructure) IsFieldStart(rec []byte, pos int, f Field) bool {
	// at returns the byte at i, or false before the start of the record.
	at := func(i int) (byte, bool) {
		if i < 0 || i >= len(rec) {
			return 0, false
		}
		return rec[i], true
	}

	i := pos - 1
	b, ok := at(i)
	if !ok {
		return true
	}
	if f == Reading && b == '[' || f == Translation && b == '/' || isNewline(b) {
		return true
	}

	if f != Translation {
		return false
	}

	// Skip back over sense and part of speech markers at the start of the
	// translation, e.g. "/(n) (1) word".
	for b == ' ' {
		i--
		if b, ok = at(i); !ok {
			return true
		}
		if b != ')' {
			return false
		}
		for b != '/' && b != '(' {
			i--
			if b, ok = at(i); !ok {
				return true
			}
		}
		if b == '/' {
			return true
		}
		i--
		if b, ok = at(i); !ok {
			return true
		}
		if b == '/' {
			return true
		}
	}
	return false
}

func (edictStructure) IsFieldEnd(rec []byte, pos int, f Field) bool {
	if pos < 0 || pos >= len(rec) {
		return true
	}
	b := rec[pos]
	return f == Word && b == ' ' ||
		f == Reading && b == ']' ||
		f == Translation && b == '/' ||
		isNewline(b)
}
