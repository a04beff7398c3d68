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

// Package record locates dictionary records inside the raw dictionary bytes
// and classifies the fields of a record.
//
// A record is a single line of the dictionary file. Records have no length
// prefix. Their boundaries are found by scanning for separator bytes
// starting from an arbitrary offset, typically a position taken from the
// term index.
package record

import (
	"context"
	"fmt"

	"github.com/ianlewis/go-edict/chars"
)

// scanCheckInterval is the number of bytes scanned between checks for
// context cancellation.
const scanCheckInterval = 4096

// initialBufferSize is the initial capacity of a [Buffer].
const initialBufferSize = 8192

// Field is the kind of a record field.
type Field int

const (
	// Unknown is used before the first field of a record is reached.
	Unknown Field = iota

	// Word is the headword field.
	Word

	// Reading is the reading of the headword.
	Reading

	// Translation is a translation field.
	Translation
)

// String implements [fmt.Stringer].
func (f Field) String() string {
	switch f {
	case Unknown:
		return "unknown"
	case Word:
		return "word"
	case Reading:
		return "reading"
	case Translation:
		return "translation"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Structure describes the layout of records of one dictionary format.
//
// Positions passed to IsFieldStart, IsFieldEnd and FieldAt are offsets into
// a single record. Positions passed to NextField are offsets into the
// whole dictionary.
type Structure interface {
	// IsSeparator reports whether b separates two records.
	IsSeparator(b byte) bool

	// NextField is called while walking the dictionary with the character c
	// which was just read and the position right after it. It returns the
	// field the walk is in after c and the position to continue from, which
	// may skip over field delimiters. The first call is made with
	// field Unknown.
	NextField(data []byte, pos int, c chars.Char, f Field) (Field, int)

	// FieldAt returns the kind of the field containing pos.
	FieldAt(rec []byte, pos int) Field

	// IsFieldStart reports whether the character at pos is the first
	// character of a field of kind f.
	IsFieldStart(rec []byte, pos int, f Field) bool

	// IsFieldEnd reports whether pos is right after the last character of a
	// field of kind f.
	IsFieldEnd(rec []byte, pos int, f Field) bool
}

// Record is a copy of a single record.
type Record struct {
	// Start is the offset of the first byte of the record in the
	// dictionary.
	Start int

	// End is the offset right after the last byte of the record.
	End int

	// Bytes holds the record data. It is only valid until the next call to
	// [Buffer.Load].
	Bytes []byte

	// Match is the position inside Bytes that the record was loaded for.
	Match int
}

// FindStart returns the start offset of the record containing pos.
func FindStart(ctx context.Context, data []byte, pos int, s Structure) (int, error) {
	if pos > len(data) {
		pos = len(data)
	}
	for n := 0; pos > 0; n++ {
		if n%scanCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if s.IsSeparator(data[pos-1]) {
			break
		}
		pos--
	}
	return pos, nil
}

// FindEnd returns the end offset of the record containing pos. The end
// offset is the offset of the separator following the record or the length
// of data.
func FindEnd(ctx context.Context, data []byte, pos int, s Structure) (int, error) {
	if pos < 0 {
		pos = 0
	}
	for n := 0; pos < len(data); n++ {
		if n%scanCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if s.IsSeparator(data[pos]) {
			break
		}
		pos++
	}
	return pos, nil
}

// Buffer is a growable scratch buffer which records are copied into. A
// Buffer is not safe for concurrent use.
type Buffer struct {
	buf []byte
}

// Cap returns the current capacity of the buffer.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Load copies the record containing pos into the buffer.
func (b *Buffer) Load(ctx context.Context, data []byte, pos int, s Structure) (Record, error) {
	start, err := FindStart(ctx, data, pos, s)
	if err != nil {
		return Record{}, err
	}
	end, err := FindEnd(ctx, data, pos, s)
	if err != nil {
		return Record{}, err
	}

	n := end - start
	size := cap(b.buf)
	if size == 0 {
		size = initialBufferSize
	}
	for size < n {
		size *= 2
	}
	if size != cap(b.buf) {
		b.buf = make([]byte, size)
	}
	b.buf = b.buf[:n]
	copy(b.buf, data[start:end])

	return Record{
		Start: start,
		End:   end,
		Bytes: b.buf,
		Match: pos - start,
	}, nil
}
