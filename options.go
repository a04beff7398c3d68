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
	"github.com/rs/zerolog"
)

// IndexExt is the extension of index files. Index files are stored next to
// the dictionary file by default.
const IndexExt = ".jgx"

// Options are options for opening dictionaries.
type Options struct {
	// Format is the dictionary format. Defaults to [EDICT].
	Format Format

	// Logger receives debug messages about index handling. Defaults to a
	// logger which discards all messages.
	Logger *zerolog.Logger

	// IndexPath is the path of the index file. Defaults to the dictionary
	// path with [IndexExt] appended.
	IndexPath string

	// FoldWhitespace trims search expressions and folds internal whitespace
	// into a single space.
	FoldWhitespace bool
}

// DefaultOptions are the default options for opening dictionaries.
var DefaultOptions = &Options{
	FoldWhitespace: true,
}

func (o *Options) format() Format {
	if o == nil || o.Format == nil {
		return EDICT
	}
	return o.Format
}

func (o *Options) logger() zerolog.Logger {
	if o == nil || o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

func (o *Options) indexPath(path string) string {
	if o == nil || o.IndexPath == "" {
		return path + IndexExt
	}
	return o.IndexPath
}
