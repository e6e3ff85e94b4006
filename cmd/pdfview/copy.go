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
	"io"
	"log/slog"
	"os"

	"seehuhn.de/go/pdfview/bufwrite"
)

func runCopy(cfg config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("copy", flag.ContinueOnError)
	size := fs.Int("buffer", cfg.BufferSize, "write buffer size in bytes")
	chunk := fs.Int("chunk", 4096, "read size in bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 || *chunk <= 0 {
		return errors.New("usage: copy [-buffer n] [-chunk n] in.pdf out.pdf")
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	var n int64
	err = saveFile(fs.Arg(1), *size, func(w io.Writer) error {
		var err error
		n, err = copyChunks(w, in, *chunk)
		return err
	})
	if err != nil {
		return err
	}

	log.Info("copied", "bytes", n, "buffer", *size)
	return nil
}

// saveFile writes the output of fn to the named file through a write
// buffer of the given size.  If writing fails, the partial file is
// removed.
func saveFile(name string, size int, fn func(io.Writer) error) error {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	err = bufwrite.Save(out, size, fn)
	if err == nil {
		err = out.Close()
	} else {
		out.Close()
	}
	if err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

// copyChunks copies r to w, handing the data to w in pieces of at most
// chunk bytes.
func copyChunks(w io.Writer, r io.Reader, chunk int) (int64, error) {
	buf := make([]byte, chunk)
	var total int64
	for {
		k, err := r.Read(buf)
		if k > 0 {
			if _, wErr := w.Write(buf[:k]); wErr != nil {
				return total, wErr
			}
			total += int64(k)
		}
		if err == io.EOF {
			return total, nil
		} else if err != nil {
			return total, err
		}
	}
}
