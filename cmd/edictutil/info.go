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

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "list dictionaries",
	ArgsUsage: "[DICTIONARY...]",
	Action: func(c *cli.Context) error {
		log, err := newLogger(c)
		if err != nil {
			return err
		}

		dicts, errs := openDictionaries(c, dictionaryPaths(c), &log)
		defer closeAll(dicts, &log)

		tbl := newTable(c.App.Writer, "Name", "Encoding", "Size", "Index", "Path")
		for _, d := range dicts {
			index := "-"
			ok, err := d.LoadIndex()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", d.Path(), err))
			}
			if ok {
				index = fmt.Sprint(d.IndexSize())
			}
			tbl.AddRow(d.Name(), d.Encoding(), d.Size(), index, d.Path())
		}
		tbl.Print()

		return reportErrors(errs, &log)
	},
}
