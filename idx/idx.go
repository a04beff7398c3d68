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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io/fs"
	"os"
	"time"

	"github.com/edsrzf/mmap-go"

	"github.com/ianlewis/go-edict/internal/index"
)

const (
	// Magic identifies index files.
	Magic = "JGIX"

	// Version is the version of the index file format.
	Version = 2

	// headerSize is the size of the encoded header.
	headerSize = 32
)

var (
	// ErrNotFound indicates that the index file does not exist.
	ErrNotFound = errors.New("index not found")

	// ErrStale indicates that the index was built for a different version
	// of the dictionary.
	ErrStale = errors.New("index is stale")

	// ErrCorrupt indicates that the index file is truncated or invalid.
	ErrCorrupt = errors.New("index is corrupt")
)

// Meta identifies the version of a dictionary file an index belongs to.
type Meta struct {
	// Size is the size of the dictionary in bytes.
	Size int64

	// ModTime is the modification time of the dictionary file.
	ModTime time.Time

	// Flags are format specific flags, e.g. the dictionary encoding.
	Flags uint16
}

type header struct {
	Magic    [4]byte
	Version  uint16
	Flags    uint16
	Count    uint32
	Size     uint64
	ModTime  int64
	Checksum uint32
}

// Index is a term index loaded from an index file.
type Index struct {
	m     mmap.MMap
	table []byte
	n     int
}

// Load maps the index file at path into memory. It returns an error
// wrapping [ErrNotFound] if the file does not exist, [ErrStale] if the file
// was built for a dictionary which doesn't match meta, and [ErrCorrupt] if
// the file is invalid.
func Load(path string, meta Meta) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening index: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	if fi.Size() < headerSize {
		return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping index: %w", err)
	}

	x, err := parse(m, meta)
	if err != nil {
		_ = m.Unmap()
		return nil, err
	}
	return x, nil
}

func parse(m mmap.MMap, meta Meta) (*Index, error) {
	var h header
	if err := binary.Read(bytes.NewReader(m[:headerSize]), binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if string(h.Magic[:]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, h.Magic[:])
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, h.Version)
	}

	//nolint:gosec // sizes are never negative.
	if h.Size != uint64(meta.Size) || h.ModTime != meta.ModTime.UnixNano() || h.Flags != meta.Flags {
		return nil, fmt.Errorf("%w: built for %d bytes at %v",
			ErrStale, h.Size, time.Unix(0, h.ModTime))
	}

	table := m[headerSize:]
	if uint64(len(table)) != 4*uint64(h.Count) {
		return nil, fmt.Errorf("%w: expected %d entries, found %d bytes", ErrCorrupt, h.Count, len(table))
	}
	if crc32.ChecksumIEEE(table) != h.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	return &Index{
		m:     m,
		table: table,
		n:     int(h.Count),
	}, nil
}

// Len returns the number of entries in the index.
func (x *Index) Len() int {
	return x.n
}

// At returns the dictionary position of the i-th entry in index order.
func (x *Index) At(i int) int {
	return int(binary.LittleEndian.Uint32(x.table[4*i:]))
}

// Range returns an iterator over the positions of all terms which start
// with the encoded query q, in index order.
func (x *Index) Range(src Source, q []byte) *Iterator {
	lo, hi := index.Range(x.n, func(i int) int {
		return CompareQuery(src, q, x.At(i))
	})
	return &Iterator{
		x:  x,
		i:  lo,
		hi: hi,
	}
}

// Close unmaps the index file. The index must not be used afterwards.
func (x *Index) Close() error {
	if x.m == nil {
		return nil
	}
	err := x.m.Unmap()
	x.m, x.table, x.n = nil, nil, 0
	if err != nil {
		return fmt.Errorf("unmapping index: %w", err)
	}
	return nil
}

// Iterator iterates over a range of index entries.
type Iterator struct {
	x  *Index
	i  int
	hi int
}

// Next returns the next dictionary position. It returns false when the
// range is exhausted.
func (it *Iterator) Next() (int, bool) {
	if it.i >= it.hi {
		return 0, false
	}
	pos := it.x.At(it.i)
	it.i++
	return pos, true
}

// Len returns the number of remaining positions.
func (it *Iterator) Len() int {
	return it.hi - it.i
}
