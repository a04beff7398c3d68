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

package edict

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/edsrzf/mmap-go"
	"github.com/ianlewis/go-dictzip"
	"github.com/rs/zerolog"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-edict/attribute"
	"github.com/ianlewis/go-edict/chars"
	"github.com/ianlewis/go-edict/idx"
	"github.com/ianlewis/go-edict/record"
)

// detectSize is the number of bytes read by [Detect].
const detectSize = 4096

// State is the lifecycle state of a [Dictionary].
type State int

const (
	// StateClosed is the state of a zero Dictionary.
	StateClosed State = iota

	// StateOpening is the state while the dictionary file is mapped.
	StateOpening

	// StateIndexMissing means that the dictionary is open but has no index.
	StateIndexMissing

	// StateBuildingIndex is the state during [Dictionary.BuildIndex].
	StateBuildingIndex

	// StateIndexed means that the dictionary can be searched.
	StateIndexed

	// StateDisposed is the state after [Dictionary.Close].
	StateDisposed
)

// String implements [fmt.Stringer].
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateIndexMissing:
		return "index missing"
	case StateBuildingIndex:
		return "building index"
	case StateIndexed:
		return "indexed"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Dictionary is an open dictionary file.
//
// Searches may run concurrently with each other. Opening, indexing and
// closing must not run concurrently with searches.
type Dictionary struct {
	path      string
	indexPath string
	handler   chars.Handler
	format    Format
	log       zerolog.Logger
	fold      bool

	// data is the dictionary content. It is mapped from the dictionary
	// file unless the file is compressed.
	data []byte
	m    mmap.MMap
	meta idx.Meta

	index *idx.Index
	state State
}

// OpenAll opens all dictionaries under a directory. Files are considered
// dictionaries if their name starts with "edict" or has the extension
// ".edict", optionally followed by ".dz". The encoding of each dictionary
// is detected using [Detect]. This function will return all successfully
// opened dictionaries along with any errors that occurred.
func OpenAll(path string, opts *Options) ([]*Dictionary, []error) {
	var dicts []*Dictionary
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if info.IsDir() || !isDictionaryName(info.Name()) {
			return nil
		}

		enc, err := Detect(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		d, err := Open(path, enc, opts)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		dicts = append(dicts, d)
		return nil
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return dicts, errs
}

func isDictionaryName(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".dz")
	if strings.HasSuffix(name, IndexExt) || strings.HasSuffix(name, ".tmp") {
		return false
	}
	return strings.HasPrefix(name, "edict") || filepath.Ext(name) == ".edict"
}

func isDictZip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".dz")
}

// Open opens the dictionary file at path. The file is read using the given
// encoding, which is one of "UTF-8" or "EUC-JP". Compressed dictionaries
// with the extension ".dz" are decompressed into memory, other files are
// mapped read-only. If opts is nil [DefaultOptions] are used.
//
// The returned dictionary has no index yet. Call [Dictionary.LoadIndex] and
// if needed [Dictionary.BuildIndex] before searching.
func Open(path, encoding string, opts *Options) (*Dictionary, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	h, err := chars.ForEncoding(encoding)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{
		path:      path,
		indexPath: opts.indexPath(path),
		handler:   h,
		format:    opts.format(),
		log:       opts.logger().With().Str("dictionary", path).Logger(),
		fold:      opts.FoldWhitespace,
		state:     StateOpening,
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrIO, path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrIO, path, err)
	}

	switch {
	case isDictZip(path):
		d.data, err = readDictZip(f)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %q: %w", ErrIO, path, err)
		}
	case fi.Size() > 0:
		// Empty files cannot be mapped.
		d.m, err = mmap.Map(f, mmap.RDONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: mapping %q: %w", ErrIO, path, err)
		}
		d.data = d.m
	}

	d.meta = idx.Meta{
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
		Flags:   encodingFlag(h),
	}
	d.state = StateIndexMissing

	d.log.Debug().
		Str("encoding", h.Name()).
		Int("size", len(d.data)).
		Msg("opened dictionary")

	return d, nil
}

func readDictZip(f *os.File) ([]byte, error) {
	z, err := dictzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer z.Close()
	return io.ReadAll(z)
}

// encodingFlag returns the index flags for dictionaries using h. Indexes
// are only valid for the encoding they were built with.
func encodingFlag(h chars.Handler) uint16 {
	switch h {
	case chars.UTF8:
		return 1
	case chars.EUCJP:
		return 2
	default:
		return 0
	}
}

// Detect guesses the encoding of the dictionary file at path by looking at
// the start of the file. It returns an error wrapping [ErrUnknownFormat] if
// the first record is not an EDICT record.
func Detect(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %q: %w", ErrIO, path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if isDictZip(path) {
		z, err := dictzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("%w: reading %q: %w", ErrIO, path, err)
		}
		defer z.Close()
		r = z
	}

	b := make([]byte, detectSize)
	n, err := io.ReadFull(r, b)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: reading %q: %w", ErrIO, path, err)
	}
	b = b[:n]

	// Only look at complete lines.
	if n == detectSize {
		if i := bytes.LastIndexAny(b, "\n\r"); i > 0 {
			b = b[:i]
		}
	}

	var h chars.Handler
	switch {
	case utf8.Valid(b):
		h = chars.UTF8
	case chars.Validate(chars.EUCJP, b) == nil:
		h = chars.EUCJP
	default:
		return "", fmt.Errorf("%w: %q: unknown encoding", ErrUnknownFormat, path)
	}

	line := b
	if i := bytes.IndexAny(line, "\n\r"); i >= 0 {
		line = line[:i]
	}
	text, _, err := transform.Bytes(h.NewDecoder(), line)
	if err != nil || !entryRegex.Match(text) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
	return h.Name(), nil
}

// Name returns the name of the dictionary, which is the base name of the
// dictionary file.
func (d *Dictionary) Name() string {
	return filepath.Base(d.path)
}

// Path returns the path of the dictionary file.
func (d *Dictionary) Path() string {
	return d.path
}

// IndexPath returns the path of the index file.
func (d *Dictionary) IndexPath() string {
	return d.indexPath
}

// Encoding returns the name of the dictionary encoding.
func (d *Dictionary) Encoding() string {
	return d.handler.Name()
}

// Format returns the format of the dictionary.
func (d *Dictionary) Format() Format {
	return d.format
}

// State returns the lifecycle state of the dictionary.
func (d *Dictionary) State() State {
	return d.state
}

// Size returns the size of the dictionary content in bytes.
func (d *Dictionary) Size() int {
	return len(d.data)
}

// IndexSize returns the number of index entries, or zero if the dictionary
// has no index.
func (d *Dictionary) IndexSize() int {
	if d.index == nil {
		return 0
	}
	return d.index.Len()
}

// SupportedSearchModes returns the search modes supported by the
// dictionary.
func (d *Dictionary) SupportedSearchModes() []SearchMode {
	return []SearchMode{Exact, Prefix, Suffix, Any}
}

// SupportedFields returns the fields which can be searched using mode.
func (d *Dictionary) SupportedFields(mode SearchMode) []record.Field {
	if !mode.valid() {
		return nil
	}
	return []record.Field{record.Word, record.Reading, record.Translation}
}

// SupportedAttributes returns the attributes entries of the dictionary can
// have.
func (d *Dictionary) SupportedAttributes() []*attribute.Attribute {
	return d.format.Attributes()
}

func (d *Dictionary) source() idx.Source {
	return idx.Source{
		Data:      d.data,
		Handler:   d.handler,
		Structure: d.format.Structure(),
	}
}

// LoadIndex loads the index file of the dictionary. It returns false if the
// index file doesn't exist, was built for a different version of the
// dictionary file, or is corrupt. Stale and corrupt index files are
// removed so that [Dictionary.BuildIndex] starts from scratch. An error is
// only returned for unexpected I/O failures.
func (d *Dictionary) LoadIndex() (bool, error) {
	if d.state == StateDisposed || d.state == StateClosed {
		return false, ErrClosed
	}

	x, err := idx.Load(d.indexPath, d.meta)
	switch {
	case err == nil:
	case errors.Is(err, idx.ErrNotFound):
		d.log.Debug().Str("index", d.indexPath).Msg("index not found")
		return false, nil
	case errors.Is(err, idx.ErrStale), errors.Is(err, idx.ErrCorrupt):
		d.log.Debug().Err(err).Str("index", d.indexPath).Msg("discarding index")
		if err := os.Remove(d.indexPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("%w: removing index: %w", ErrIO, err)
		}
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err := d.setIndex(x); err != nil {
		return false, err
	}
	d.log.Debug().
		Str("index", d.indexPath).
		Int("entries", x.Len()).
		Msg("loaded index")
	return true, nil
}

// BuildIndex builds the index of the dictionary, writes it to the index
// file and activates it. It returns the number of index entries. A
// malformed character in the dictionary aborts the build with an error
// wrapping [chars.ErrMalformed].
func (d *Dictionary) BuildIndex(ctx context.Context) (int, error) {
	if d.state == StateDisposed || d.state == StateClosed {
		return 0, ErrClosed
	}

	prev := d.state
	d.state = StateBuildingIndex
	start := time.Now()

	n, err := idx.Build(ctx, d.indexPath, d.source(), d.meta)
	if err != nil {
		d.state = prev
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return 0, fmt.Errorf("%w: building index: %w", ErrIO, err)
		}
		return 0, fmt.Errorf("building index: %w", err)
	}

	x, err := idx.Load(d.indexPath, d.meta)
	if err != nil {
		d.state = prev
		return 0, fmt.Errorf("%w: loading index: %w", ErrIO, err)
	}
	if err := d.setIndex(x); err != nil {
		return 0, err
	}

	d.log.Info().
		Str("index", d.indexPath).
		Int("entries", n).
		Dur("elapsed", time.Since(start)).
		Msg("built index")
	return n, nil
}

func (d *Dictionary) setIndex(x *idx.Index) error {
	if d.index != nil {
		if err := d.index.Close(); err != nil {
			_ = x.Close()
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	d.index = x
	d.state = StateIndexed
	return nil
}

// Close releases the dictionary data and the index. Calling Close more
// than once has no effect.
func (d *Dictionary) Close() error {
	if d.state == StateDisposed {
		return nil
	}
	d.state = StateDisposed

	var errs []error
	if d.index != nil {
		errs = append(errs, d.index.Close())
		d.index = nil
	}
	if d.m != nil {
		if err := d.m.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("%w: unmapping %q: %w", ErrIO, d.path, err))
		}
		d.m = nil
	}
	d.data = nil
	return errors.Join(errs...)
}
