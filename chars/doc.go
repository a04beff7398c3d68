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

// Package chars reads and classifies encoded characters directly from
// dictionary bytes.
//
// A [Handler] is selected once per dictionary from its declared text
// encoding. It reads single characters forwards and backwards from a byte
// position, assigns each character a [Class] used to find index term and
// word boundaries, and maps characters to a canonical sort key so that
// comparisons fold case and treat katakana like hiragana.
package chars
