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

var indexCommand = &cli.Command{
	Name:      "index",
	Usage:     "build dictionary indexes",
	ArgsUsage: "[DICTIONARY...]",
	Description: "Builds the index of each dictionary unless an up to date index exists.\n" +
		"Without arguments all dictionaries in the data directories are indexed.",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "force",
			Usage:   "rebuild indexes which are up to date",
			Aliases: []string{"f"},
		},
	},
	Action: func(c *cli.Context) error {
		log, err := newLogger(c)
		if err != nil {
			return err
		}

		dicts, errs := openDictionaries(c, dictionaryPaths(c), &log)
		defer closeAll(dicts, &log)

		tbl := newTable(c.App.Writer, "Dictionary", "Entries", "Status")
		for _, d := range dicts {
			if !c.Bool("force") {
				ok, err := d.LoadIndex()
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", d.Path(), err))
					continue
				}
				if ok {
					tbl.AddRow(d.Name(), d.IndexSize(), "up to date")
					continue
				}
			}

			n, err := d.BuildIndex(c.Context)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", d.Path(), err))
				continue
			}
			tbl.AddRow(d.Name(), n, "built")
		}
		tbl.Print()

		return reportErrors(errs, &log)
	},
}
