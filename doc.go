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

// Package edict implements a library for searching EDICT style Japanese
// dictionaries in pure Go.
//
// A dictionary is a flat text file with one entry per line:
//
//	WORD [READING] /TRANSLATION/TRANSLATION/
//
// Dictionaries are encoded in UTF-8 or EUC-JP and may be compressed using
// the dictzip format. Searches are answered using a term index which is
// stored next to the dictionary file and built on demand.
//
//	d, err := edict.Open("edict", "EUC-JP", nil)
//	if err != nil {
//		return err
//	}
//	defer d.Close()
//
//	if ok, err := d.LoadIndex(); err != nil {
//		return err
//	} else if !ok {
//		if _, err := d.BuildIndex(ctx); err != nil {
//			return err
//		}
//	}
//
//	it, err := d.Search(ctx, "日本", edict.Prefix, edict.AllFields)
//	if err != nil {
//		return err
//	}
//	for e, err := range it.All() {
//		...
//	}
//
// More info on the EDICT format can be found at this URL:
// https://www.edrdg.org/jmdict/edict_doc_old.html
package edict
