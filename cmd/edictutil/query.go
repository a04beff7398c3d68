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
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-edict"
)

var searchModes = map[string]edict.SearchMode{
	"exact":  edict.Exact,
	"prefix": edict.Prefix,
	"suffix": edict.Suffix,
	"any":    edict.Any,
}

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "search dictionaries",
	ArgsUsage: "EXPRESSION",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "mode",
			Usage:   "match `MODE` (exact, prefix, suffix or any)",
			Aliases: []string{"m"},
			Value:   "exact",
		},
		&cli.StringSliceFlag{
			Name:  "field",
			Usage: "search in `FIELD` (word, reading or translation)",
			Value: cli.NewStringSlice("word", "reading", "translation"),
		},
		&cli.BoolFlag{
			Name:  "match-field",
			Usage: "match whole fields instead of words",
		},
		&cli.BoolFlag{
			Name:  "table",
			Usage: "print results as a table",
		},
		&cli.BoolFlag{
			Name:  "no-build",
			Usage: "skip dictionaries without an up to date index instead of indexing them",
		},
	},
	Action: func(c *cli.Context) error {
		log, err := newLogger(c)
		if err != nil {
			return err
		}

		if !c.Args().Present() {
			return fmt.Errorf("%w: missing expression", ErrFlagParse)
		}
		expression := strings.Join(c.Args().Slice(), " ")

		mode, ok := searchModes[strings.ToLower(c.String("mode"))]
		if !ok {
			return fmt.Errorf("%w: --mode: unknown mode %q", ErrFlagParse, c.String("mode"))
		}
		fields, err := fieldSelection(c)
		if err != nil {
			return err
		}

		dicts, errs := openDictionaries(c, c.StringSlice("data-dir"), &log)
		defer closeAll(dicts, &log)

		tbl := newTable(c.App.Writer, "Dictionary", "Word", "Reading", "Translation")
		for _, d := range dicts {
			if err := ensureIndex(c, d, &log); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", d.Path(), err))
				continue
			}
			if d.State() != edict.StateIndexed {
				continue
			}

			it, err := d.Search(c.Context, expression, mode, fields)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", d.Path(), err))
				continue
			}
			for e, err := range it.All() {
				var merr *edict.MalformedEntryError
				if errors.As(err, &merr) {
					log.Warn().Err(err).Str("dictionary", d.Name()).Send()
					continue
				}
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", d.Path(), err))
					break
				}

				if c.Bool("table") {
					tbl.AddRow(d.Name(), e.Word, e.Reading, translationText(e))
					continue
				}
				if _, err := fmt.Fprintln(c.App.Writer, e); err != nil {
					return fmt.Errorf("%w: writing output: %w", ErrEdictutil, err)
				}
			}
		}
		if c.Bool("table") {
			tbl.Print()
		}

		return reportErrors(errs, &log)
	},
}

// ensureIndex loads the index of d and builds it if needed.
func ensureIndex(c *cli.Context, d *edict.Dictionary, log *zerolog.Logger) error {
	ok, err := d.LoadIndex()
	if err != nil || ok {
		return err
	}
	if c.Bool("no-build") {
		log.Warn().Str("dictionary", d.Path()).Msg("skipping dictionary without index")
		return nil
	}
	log.Info().Str("dictionary", d.Path()).Msg("building index")
	_, err = d.BuildIndex(c.Context)
	return err
}

func fieldSelection(c *cli.Context) (edict.FieldSelection, error) {
	var fields edict.FieldSelection
	for _, f := range c.StringSlice("field") {
		switch strings.ToLower(f) {
		case "word":
			fields.Word = true
		case "reading":
			fields.Reading = true
		case "translation":
			fields.Translation = true
		default:
			return fields, fmt.Errorf("%w: --field: unknown field %q", ErrFlagParse, f)
		}
	}
	if c.Bool("match-field") {
		fields.Match = edict.MatchField
	}
	return fields, nil
}

func translationText(e *edict.Entry) string {
	var ts []string
	for _, s := range e.Senses {
		ts = append(ts, strings.Join(s.Translations, "; "))
	}
	return strings.Join(ts, " / ")
}
