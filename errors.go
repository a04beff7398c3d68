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
	"errors"
	"fmt"

	"github.com/ianlewis/go-edict/chars"
)

var (
	// ErrIO indicates that reading or writing a dictionary or index file
	// failed. The dictionary remains usable.
	ErrIO = errors.New("i/o error")

	// ErrUnsupportedEncoding indicates an unknown dictionary encoding.
	ErrUnsupportedEncoding = chars.ErrUnsupportedEncoding

	// ErrUnsupportedSearchMode indicates an invalid search mode.
	ErrUnsupportedSearchMode = errors.New("unsupported search mode")

	// ErrNoIndex is returned when searching a dictionary without an index.
	ErrNoIndex = errors.New("dictionary has no index")

	// ErrClosed is returned when using a closed dictionary.
	ErrClosed = errors.New("dictionary is closed")

	// ErrUnknownFormat is returned by [Detect] for files which don't look
	// like EDICT dictionaries.
	ErrUnknownFormat = errors.New("unknown dictionary format")

	// ErrInvalidEntry indicates a record which doesn't follow the format of
	// the dictionary.
	ErrInvalidEntry = errors.New("invalid entry")

	// Done is returned by [Iterator.Next] when there are no more entries.
	Done = errors.New("no more entries") //nolint:revive,errname,staticcheck // Mirrors iterator.Done.
)

// MalformedEntryError is returned for a record which could not be decoded.
// Searches continue after a MalformedEntryError.
type MalformedEntryError struct {
	// Offset is the offset of the record in the dictionary.
	Offset int

	// Text is the decoded record text, if decoding got that far.
	Text string

	Err error
}

func (e *MalformedEntryError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("malformed entry at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("malformed entry at offset %d: %v: %q", e.Offset, e.Err, e.Text)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}
