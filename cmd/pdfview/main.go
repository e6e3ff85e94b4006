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

// Command pdfview inspects PDF files using the viewer support code.
//
// Usage:
//
//	pdfview [-v] outline [-backend name] file.pdf
//	pdfview [-v] highlight -page n -query text [-dpi x] file.pdf out.png
//	pdfview [-v] copy in.pdf out.pdf
//
// The environment variables PDFVIEW_BUFFER_SIZE, PDFVIEW_BACKEND and
// PDFVIEW_DPI change the defaults of the corresponding flags.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
)

type command struct {
	name  string
	usage string
	run   func(cfg config, log *slog.Logger, args []string) error
}

var commands = []command{
	{"outline", "print the document outline", runOutline},
	{"highlight", "mark all occurrences of a text on a page", runHighlight},
	{"copy", "copy a file through the buffered writer", runCopy},
}

func main() {
	verbose := flag.Bool("v", false, "enable debug output")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg := loadConfig()
	if err := cfg.validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	name := flag.Arg(0)
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		err := cmd.run(cfg, log, flag.Args()[1:])
		if err != nil {
			log.Error(name+" failed", "error", err)
			os.Exit(1)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "unknown command %q\n", name)
	usage()
	os.Exit(2)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [-v] command [arguments]\n\nCommands:\n", os.Args[0])
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-10s %s\n", cmd.name, cmd.usage)
	}
	fmt.Fprintln(out, "\nOptions:")
	flag.PrintDefaults()
}
