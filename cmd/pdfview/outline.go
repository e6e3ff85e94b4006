// seehuhn.de/go/pdfview - support code for PDF viewers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pdfview/docsource"
	"seehuhn.de/go/pdfview/outline"
)

func runOutline(cfg config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("outline", flag.ContinueOnError)
	backend := fs.String("backend", cfg.Backend, "PDF reader (seehuhn or ledongthuc)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: outline [-backend name] file.pdf")
	}
	fname := fs.Arg(0)

	var nodes outline.Nodes
	switch *backend {
	case backendSeehuhn:
		r, err := pdf.Open(fname, nil)
		if err != nil {
			return err
		}
		defer r.Close()
		nodes, err = docsource.ReadOutline(r)
		if err != nil {
			return err
		}
	case backendLedongthuc:
		f, r, err := lpdf.Open(fname)
		if err != nil {
			return err
		}
		defer f.Close()
		nodes = docsource.SimpleOutline(r)
	default:
		return fmt.Errorf("unknown backend %q", *backend)
	}

	entries, err := outline.Flatten[int](nodes)
	if err != nil {
		return err
	}
	log.Debug("outline read", "file", fname, "backend", *backend, "entries", len(entries))

	return printOutline(os.Stdout, entries)
}

func printOutline(w io.Writer, entries []outline.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no document outline")
		return err
	}
	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = "(untitled)"
		}
		line := strings.Repeat("  ", e.Level) + title
		if e.Page >= 0 {
			line += fmt.Sprintf(" ... p.%d", e.Page+1)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
