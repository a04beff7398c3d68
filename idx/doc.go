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

// Package idx implements the term index of a dictionary file.
//
// The term index is a side-car file stored next to the dictionary. It holds
// the byte positions of all indexable terms in the dictionary, sorted by
// the content of the dictionary at each position. Terms are never stored in
// the index itself. They are compared directly against the dictionary bytes
// when the index is sorted and searched.
//
// Terms are extracted based on character classes:
//  1. Every kanji character is a term.
//  2. A maximal run of hiragana or of katakana characters is a term.
//  3. A maximal run of roman word characters is a term if it is at least
//     three characters long.
//
// The index file consists of a fixed size header followed by the position
// table. All integers are little endian.
//
//	magic      [4]byte "JGIX"
//	version    uint16
//	flags      uint16  dictionary encoding
//	count      uint32  number of positions
//	size       uint64  dictionary size in bytes
//	modtime    int64   dictionary modification time in unix nanoseconds
//	checksum   uint32  CRC-32 (IEEE) of the position table
//	positions  [count]uint32
package idx
