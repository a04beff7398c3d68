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
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/ianlewis/go-edict/chars"
	"github.com/ianlewis/go-edict/internal/index"
	"github.com/ianlewis/go-edict/record"
)

// ErrTooLarge indicates that the dictionary is too large to be indexed.
var ErrTooLarge = errors.New("dictionary too large")

// minRomanTermLength is the minimum number of characters of an indexed
// roman word.
const minRomanTermLength = 3

// collectCheckInterval is the number of terms between checks for context
// cancellation.
const collectCheckInterval = 4096

func indexable(class chars.Class, length int) bool {
	switch class {
	case chars.Kanji, chars.Hiragana, chars.Katakana:
		return true
	case chars.RomanWord:
		return length >= minRomanTermLength
	default:
		return false
	}
}

func indexedField(f record.Field) bool {
	return f == record.Word || f == record.Reading || f == record.Translation
}

// Collect walks the dictionary once and returns the start positions of all
// indexable terms in file order. A malformed character in the dictionary
// aborts the walk with an error wrapping [chars.ErrMalformed].
func Collect(ctx context.Context, src Source) ([]uint32, error) {
	data, h, s := src.Data, src.Handler, src.Structure
	if int64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	read := func(pos int) (chars.Char, int, error) {
		c, next, err := h.ReadCharacter(data, pos)
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, pos, fmt.Errorf("reading character at %d: %w", pos, err)
		}
		//nolint:wrapcheck // io.EOF is returned unwrapped.
		return c, next, err
	}

	var (
		positions []uint32
		starts    []int
	)
	field, pos := s.NextField(data, 0, 0, record.Unknown)
	for n := 0; pos < len(data); n++ {
		if n%collectCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		// Find the first character of an indexable term.
		var (
			c         chars.Char
			class     chars.Class
			termStart int
			err       error
		)
		for {
			termStart = pos
			c, pos, err = read(pos)
			if errors.Is(err, io.EOF) {
				return positions, nil
			}
			if err != nil {
				return nil, err
			}
			class = h.ClassOf(c, false)
			field, pos = s.NextField(data, pos, c, field)
			if class != chars.Other {
				break
			}
		}
		termField := field
		inWord := class == chars.RomanWord
		starts = append(starts[:0], termStart)

		// Find the end of the term.
		var (
			termEnd   int
			nextClass = chars.Other
			eof       bool
		)
		length := 1
		for {
			termEnd = pos
			c, pos, err = read(pos)
			if errors.Is(err, io.EOF) {
				eof = true
				break
			}
			if err != nil {
				return nil, err
			}
			nextClass = h.ClassOf(c, inWord)
			if nextClass != class {
				break
			}
			length++
			// Every kanji is indexed separately.
			if class == chars.Kanji {
				starts = append(starts, termEnd)
			}
		}

		if indexable(class, length) && indexedField(termField) {
			for _, start := range starts {
				//nolint:gosec // data size is checked above.
				positions = append(positions, uint32(start))
			}
		}

		if eof {
			break
		}
		if nextClass != chars.Other {
			// The last character may start the next term.
			pos = termEnd
		} else {
			// The last character may be a field delimiter.
			field, pos = s.NextField(data, pos, c, field)
		}
	}

	return positions, nil
}

// Sort sorts term positions by the terms they point to. Positions of equal
// terms keep their relative order.
func Sort(src Source, positions []uint32) {
	index.Sort(positions, func(a, b uint32) int {
		return Compare(src, int(a), int(b))
	})
}

// Write atomically writes an index file with the given positions to path.
func Write(path string, positions []uint32, meta Meta) (err error) {
	if uint64(len(positions)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d terms", ErrTooLarge, len(positions))
	}

	table := make([]byte, 4*len(positions))
	for i, p := range positions {
		binary.LittleEndian.PutUint32(table[4*i:], p)
	}

	h := header{
		Version: Version,
		Flags:   meta.Flags,
		//nolint:gosec // count is checked above.
		Count: uint32(len(positions)),
		//nolint:gosec // sizes are never negative.
		Size:     uint64(meta.Size),
		ModTime:  meta.ModTime.UnixNano(),
		Checksum: crc32.ChecksumIEEE(table),
	}
	copy(h.Magic[:], Magic)

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating index file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	w := bufio.NewWriter(f)
	if err = binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("writing index header: %w", err)
	}
	if _, err = w.Write(table); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing index file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming index file: %w", err)
	}
	return nil
}

// Build collects, sorts and writes the index of the dictionary to path. It
// returns the number of index entries.
func Build(ctx context.Context, path string, src Source, meta Meta) (int, error) {
	positions, err := Collect(ctx, src)
	if err != nil {
		return 0, err
	}
	Sort(src, positions)
	if err := Write(path, positions, meta); err != nil {
		return 0, err
	}
	return len(positions), nil
}
