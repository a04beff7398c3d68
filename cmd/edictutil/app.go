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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rodaine/table"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/width"

	"github.com/ianlewis/go-edict"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrEdictutil is a parent error for all command errors.
var ErrEdictutil = errors.New("edictutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrEdictutil)

// ErrOpen indicates that some dictionaries could not be opened.
var ErrOpen = fmt.Errorf("%w: opening dictionaries", ErrEdictutil)

var copyrightNames = []string{
	"2021 Google LLC",
	"2024 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// which is confusing next to our own subcommands.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// newLogger returns a logger writing to the app's error writer at the level
// given by the --log-level flag.
func newLogger(c *cli.Context) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(c.String("log-level"))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("%w: --log-level: %w", ErrFlagParse, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: c.App.ErrWriter}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

// openDictionaries opens the dictionaries at the given paths. Directories are
// searched for dictionaries. The encoding of files is taken from the
// --encoding flag, or detected if the flag is empty.
func openDictionaries(c *cli.Context, paths []string, log *zerolog.Logger) ([]*edict.Dictionary, []error) {
	opts := &edict.Options{
		Logger:         log,
		FoldWhitespace: true,
	}

	var dicts []*edict.Dictionary
	var errs []error
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}

		if fi.IsDir() {
			openDicts, openErrs := edict.OpenAll(path, opts)
			dicts = append(dicts, openDicts...)
			errs = append(errs, openErrs...)
			continue
		}

		enc := c.String("encoding")
		if enc == "" {
			enc, err = edict.Detect(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
		}
		d, err := edict.Open(path, enc, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		dicts = append(dicts, d)
	}

	return dicts, errs
}

// dictionaryPaths returns the command arguments, or the data directories if
// there are none.
func dictionaryPaths(c *cli.Context) []string {
	if c.Args().Present() {
		return c.Args().Slice()
	}
	return c.StringSlice("data-dir")
}

func closeAll(dicts []*edict.Dictionary, log *zerolog.Logger) {
	for _, d := range dicts {
		if err := d.Close(); err != nil {
			log.Error().Err(err).Str("dictionary", d.Path()).Msg("closing dictionary")
		}
	}
}

// reportErrors logs errors and returns ErrOpen if there were any.
func reportErrors(errs []error, log *zerolog.Logger) error {
	for _, err := range errs {
		log.Error().Err(err).Send()
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %d errors", ErrOpen, len(errs))
	}
	return nil
}

// newTable returns a table which writes to w and aligns Japanese text.
func newTable(w io.Writer, headers ...interface{}) table.Table {
	return table.New(headers...).
		WithWriter(w).
		WithWidthFunc(displayWidth)
}

// displayWidth returns the number of terminal columns of s. Wide and
// full-width characters take two columns.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func newEdictApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search EDICT dictionaries.",
		Description: strings.Join([]string{
			"EDICT utility written in Go.",
			"http://github.com/ianlewis/go-edict",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "include dictionaries in `DIR`",
				Aliases: []string{"d"},
				Value:   cli.NewStringSlice(dictLocations()...),
			},
			&cli.StringFlag{
				Name:    "encoding",
				Usage:   "read dictionary files using `ENCODING` (UTF-8 or EUC-JP), detected if empty",
				Aliases: []string{"e"},
				EnvVars: []string{"EDICT_ENCODING"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log messages at `LEVEL` and above",
				Value: zerolog.WarnLevel.String(),
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			indexCommand,
			infoCommand,
			queryCommand,
		},
	}
}
