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
	"github.com/ianlewis/go-edict/attribute"
	"github.com/ianlewis/go-edict/record"
)

// Format is a family of dictionaries which share a record structure and an
// entry syntax. Implementations must be safe for concurrent use.
type Format interface {
	// Name returns the name of the format.
	Name() string

	// Structure returns the record structure of the format.
	Structure() record.Structure

	// Escapes reports whether r must be written as an escape sequence in
	// dictionaries of this format, e.g. because it is a field delimiter.
	Escapes(r rune) bool

	// Parse parses the decoded text of the record at offset. Escape
	// sequences are resolved by Parse after the text is split into fields,
	// so escaped delimiters stay part of the field text.
	Parse(text string, offset int) (*Entry, error)

	// Attributes returns the attributes which parsed entries can have.
	Attributes() []*attribute.Attribute
}
