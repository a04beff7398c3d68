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
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-edict/chars"
	"github.com/ianlewis/go-edict/idx"
	"github.com/ianlewis/go-edict/internal/folding"
	"github.com/ianlewis/go-edict/record"
)

// SearchMode selects where a search expression must match.
type SearchMode int

const (
	// Exact matches whole words or fields.
	Exact SearchMode = iota + 1

	// Prefix matches the start of words or fields.
	Prefix

	// Suffix matches the end of words or fields.
	Suffix

	// Any matches anywhere.
	Any
)

func (m SearchMode) valid() bool {
	return m >= Exact && m <= Any
}

// String implements [fmt.Stringer].
func (m SearchMode) String() string {
	switch m {
	case Exact:
		return "exact"
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	case Any:
		return "any"
	default:
		return fmt.Sprintf("SearchMode(%d)", int(m))
	}
}

// MatchMode selects the boundaries used by [Exact], [Prefix] and [Suffix]
// searches.
type MatchMode int

const (
	// MatchWord matches at word boundaries inside a field.
	MatchWord MatchMode = iota

	// MatchField only matches at field boundaries.
	MatchField
)

// FieldSelection selects the fields a search matches in.
type FieldSelection struct {
	Word        bool
	Reading     bool
	Translation bool

	Match MatchMode
}

// AllFields selects all fields with word matching.
var AllFields = FieldSelection{
	Word:        true,
	Reading:     true,
	Translation: true,
	Match:       MatchWord,
}

func (s FieldSelection) includes(f record.Field) bool {
	switch f {
	case record.Word:
		return s.Word
	case record.Reading:
		return s.Reading
	case record.Translation:
		return s.Translation
	default:
		return false
	}
}

// Search returns an iterator over the entries matching expression. The
// expression is encoded and escaped like the dictionary text, then looked
// up in the index. Entries are decoded lazily as the iterator advances.
// Each entry is returned at most once per search.
//
// The context is checked while the iterator advances. Search returns
// [ErrNoIndex] if no index has been loaded or built.
func (d *Dictionary) Search(ctx context.Context, expression string, mode SearchMode, fields FieldSelection) (*Iterator, error) {
	if !mode.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSearchMode, mode)
	}
	if d.state == StateDisposed || d.state == StateClosed {
		return nil, ErrClosed
	}
	if d.index == nil {
		return nil, ErrNoIndex
	}

	q, err := d.encode(expression)
	if err != nil {
		return nil, err
	}

	it := &Iterator{
		ctx:    ctx,
		d:      d,
		src:    d.source(),
		q:      q,
		mode:   mode,
		fields: fields,
		seen:   roaring.New(),
	}
	if len(q) == 0 {
		it.state = iterDone
		return it, nil
	}
	it.hits = d.index.Range(it.src, q)
	return it, nil
}

// encode converts a search expression into the dictionary encoding.
// Characters which the dictionary stores as escape sequences are escaped.
func (d *Dictionary) encode(expression string) ([]byte, error) {
	var ts []transform.Transformer
	if d.fold {
		ts = append(ts, &folding.WhitespaceFolder{})
	}
	ts = append(ts,
		folding.Escaper{Escape: d.escapes},
		d.handler.NewEncoder(),
	)

	q, _, err := transform.Bytes(transform.Chain(ts...), []byte(expression))
	if err != nil {
		return nil, fmt.Errorf("encoding search expression: %w", err)
	}
	return q, nil
}

func (d *Dictionary) escapes(r rune) bool {
	return d.format.Escapes(r) || !d.handler.CanEncode(r)
}

// decode decodes the record into an entry.
func (d *Dictionary) decode(rec record.Record) (*Entry, error) {
	if err := chars.Validate(d.handler, rec.Bytes); err != nil {
		return nil, &MalformedEntryError{
			Offset: rec.Start,
			Err:    err,
		}
	}

	text, _, err := transform.Bytes(d.handler.NewDecoder(), rec.Bytes)
	if err != nil {
		return nil, &MalformedEntryError{
			Offset: rec.Start,
			Err:    err,
		}
	}

	e, err := d.format.Parse(string(text), rec.Start)
	if err != nil {
		var merr *MalformedEntryError
		if errors.As(err, &merr) {
			return nil, err
		}
		return nil, &MalformedEntryError{
			Offset: rec.Start,
			Text:   string(text),
			Err:    err,
		}
	}
	return e, nil
}

type iterState int

const (
	// iterReady means that the next call to Next looks at the next index
	// hit.
	iterReady iterState = iota

	// iterFailed means that the search ended with an error.
	iterFailed

	// iterDone means that all index hits were consumed.
	iterDone
)

// Iterator iterates over search results. An Iterator is not safe for
// concurrent use, but several iterators over the same dictionary may be
// used concurrently.
type Iterator struct {
	ctx    context.Context //nolint:containedctx // The iterator is lazy.
	d      *Dictionary
	src    idx.Source
	q      []byte
	mode   SearchMode
	fields FieldSelection

	hits *idx.Iterator
	buf  record.Buffer

	// seen holds the start offsets of the records returned so far.
	seen *roaring.Bitmap

	state iterState
	err   error
}

// Next returns the next matching entry. It returns [Done] when there are no
// more entries.
//
// Errors are returned in the order the failing records are found. If the
// error is a [*MalformedEntryError], only that record is skipped and the
// following call to Next continues with the next record. Any other error
// ends the search and is returned by all following calls.
func (it *Iterator) Next() (*Entry, error) {
	switch it.state {
	case iterDone:
		return nil, Done
	case iterFailed:
		return nil, it.err
	}

	for {
		if err := it.ctx.Err(); err != nil {
			return nil, it.fail(err)
		}

		pos, ok := it.hits.Next()
		if !ok {
			it.state = iterDone
			return nil, Done
		}

		e, err := it.candidate(pos)
		if err != nil {
			var merr *MalformedEntryError
			if errors.As(err, &merr) {
				it.d.log.Debug().Err(err).Int("offset", merr.Offset).Msg("skipping malformed entry")
				return nil, err
			}
			return nil, it.fail(err)
		}
		if e != nil {
			return e, nil
		}
	}
}

func (it *Iterator) fail(err error) error {
	it.state = iterFailed
	it.err = err
	return err
}

// candidate checks the index hit at pos and decodes the record containing
// it. It returns a nil entry and a nil error for hits which don't match.
func (it *Iterator) candidate(pos int) (*Entry, error) {
	s := it.src.Structure
	h := it.src.Handler

	rec, err := it.buf.Load(it.ctx, it.src.Data, pos, s)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // Dictionaries larger than 4 GiB cannot be indexed.
	start := uint32(rec.Start)
	if it.seen.Contains(start) {
		return nil, nil
	}

	match := rec.Match
	field := s.FieldAt(rec.Bytes, match)
	if !it.fields.includes(field) {
		return nil, nil
	}

	if it.mode == Exact || it.mode == Prefix {
		if !it.isStart(h, s, rec.Bytes, match, field) {
			return nil, nil
		}
	}
	if it.mode == Exact || it.mode == Suffix {
		if end := match + len(it.q); end < len(rec.Bytes) && !it.isEnd(h, s, rec.Bytes, end, field) {
			return nil, nil
		}
	}

	// Malformed records are reported once.
	it.seen.Add(start)

	return it.d.decode(rec)
}

func (it *Iterator) isStart(h chars.Handler, s record.Structure, rec []byte, pos int, f record.Field) bool {
	if it.fields.Match == MatchField {
		return s.IsFieldStart(rec, pos, f)
	}
	return record.IsWordStart(h, s, rec, pos, f)
}

func (it *Iterator) isEnd(h chars.Handler, s record.Structure, rec []byte, pos int, f record.Field) bool {
	if it.fields.Match == MatchField {
		return s.IsFieldEnd(rec, pos, f)
	}
	return record.IsWordEnd(h, s, rec, pos, f)
}

// All returns a sequence of all remaining entries. A [*MalformedEntryError]
// is yielded with a nil entry and the sequence continues. Other errors are
// yielded once and end the sequence.
func (it *Iterator) All() iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		for {
			e, err := it.Next()
			if errors.Is(err, Done) {
				return
			}
			if !yield(e, err) {
				return
			}
			if err != nil && it.state == iterFailed {
				return
			}
		}
	}
}
