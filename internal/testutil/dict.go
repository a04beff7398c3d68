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

// Package testutil implements helpers for writing test dictionaries.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"
	"golang.org/x/text/encoding/japanese"
)

// MakeDictOptions are options for writing test dictionaries.
type MakeDictOptions struct {
	// Name is the file name of the dictionary. Defaults to 'edict', with a
	// '.dz' extension if DictZip is true.
	Name string

	// EUCJP indicates that the dictionary should be encoded in EUC-JP
	// instead of UTF-8.
	EUCJP bool

	// DictZip indicates that the dictionary should be compressed with
	// DictZip.
	DictZip bool
}

// GetName returns the dictionary file name.
func (o *MakeDictOptions) GetName() string {
	if o != nil {
		if o.Name != "" {
			return o.Name
		}
		if o.DictZip {
			return "edict.dz"
		}
	}
	return "edict"
}

// MakeDict returns the contents of a dictionary with the given records.
// Every record is terminated by a newline.
func MakeDict(t *testing.T, records []string, eucjp bool) []byte {
	t.Helper()

	var b strings.Builder
	for _, r := range records {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	if !eucjp {
		return []byte(b.String())
	}

	d, err := japanese.EUCJP.NewEncoder().Bytes([]byte(b.String()))
	if err != nil {
		t.Fatalf("encoding dictionary: %v", err)
	}
	return d
}

// MakeTempDict writes a dictionary with the given records to a new
// temporary directory and returns the path of the dictionary file.
func MakeTempDict(t *testing.T, records []string, opts *MakeDictOptions) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), opts.GetName())
	WriteDict(t, path, MakeDict(t, records, opts != nil && opts.EUCJP), opts != nil && opts.DictZip)
	return path
}

// WriteDict writes the dictionary data d to path, replacing any existing
// file.
func WriteDict(t *testing.T, path string, d []byte, dz bool) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !dz {
		if _, err := f.Write(d); err != nil {
			t.Fatal(err)
		}
		return
	}

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(d); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
}
