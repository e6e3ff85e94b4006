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

// Package bufwrite implements the buffered writer used while a document is
// serialised to a file.
//
// A [Writer] collects small writes in a fixed-size buffer and passes them
// to the underlying sink in large blocks.  Short writes by the sink are
// retried transparently.  Any other error aborts the save operation: the
// data written so far must be discarded by the caller.
package bufwrite

import (
	"errors"
	"io"
	"strconv"
)

// DefaultSize is the buffer capacity used when a non-positive size is
// given to [New].
const DefaultSize = 64 * 1024

// maxEmptyWrites is the number of consecutive writes without progress,
// after which the sink is considered broken.
const maxEmptyWrites = 100

// ErrClosed is returned when a [Writer] is used after [Writer.Flush].
var ErrClosed = errors.New("bufwrite: writer already flushed")

// SinkError reports a failure of the underlying sink.
type SinkError struct {
	// Written is the number of bytes which were delivered to the sink
	// before the failure.
	Written int64

	Err error
}

func (err *SinkError) Error() string {
	return "bufwrite: sink failed after " + strconv.FormatInt(err.Written, 10) +
		" bytes: " + err.Err.Error()
}

func (err *SinkError) Unwrap() error {
	return err.Err
}

// Writer buffers output for one save operation.
//
// A Writer is not safe for concurrent use, and must not be shared between
// save operations.
type Writer struct {
	sink    io.Writer
	buf     []byte
	n       int   // number of buffered bytes
	written int64 // number of bytes delivered to the sink
	err     error
}

// New returns a Writer with a buffer of the given capacity.
func New(sink io.Writer, size int) *Writer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Writer{
		sink: sink,
		buf:  make([]byte, size),
	}
}

// Write implements the [io.Writer] interface.
//
// If p fits into the free space of the buffer, it is copied and no I/O
// takes place.  Otherwise the buffered data is written to the sink first.
// Chunks larger than the whole buffer are then written directly, all other
// chunks are copied into the now empty buffer.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}

	if len(p) <= len(w.buf)-w.n {
		w.n += copy(w.buf[w.n:], p)
		return len(p), nil
	}

	if err := w.flushBuffer(); err != nil {
		return 0, err
	}

	if len(p) > len(w.buf) {
		if err := w.writeAll(p); err != nil {
			return 0, err
		}
		return len(p), nil
	}

	w.n = copy(w.buf, p)
	return len(p), nil
}

// Flush writes all buffered data to the sink and ends the save operation.
// After Flush has been called, all writes fail with [ErrClosed].
func (w *Writer) Flush() error {
	if w.err != nil {
		if w.err == ErrClosed {
			return nil
		}
		return w.err
	}
	if err := w.flushBuffer(); err != nil {
		return err
	}
	w.err = ErrClosed
	w.buf = nil
	return nil
}

// Buffered returns the number of bytes held in the buffer.
func (w *Writer) Buffered() int {
	return w.n
}

// Available returns the number of bytes which can be written without
// causing I/O.
func (w *Writer) Available() int {
	return len(w.buf) - w.n
}

// Written returns the number of bytes delivered to the sink so far.
func (w *Writer) Written() int64 {
	return w.written
}

func (w *Writer) flushBuffer() error {
	if w.n == 0 {
		return nil
	}
	if err := w.writeAll(w.buf[:w.n]); err != nil {
		return err
	}
	w.n = 0
	return nil
}

// writeAll passes p to the sink, retrying after short writes.
// Errors are sticky.
func (w *Writer) writeAll(p []byte) error {
	empty := 0
	for len(p) > 0 {
		n, err := w.sink.Write(p)
		if n < 0 || n > len(p) {
			n = 0
			err = errors.New("invalid write count")
		}
		p = p[n:]
		w.written += int64(n)

		if err != nil && err != io.ErrShortWrite {
			w.err = &SinkError{Written: w.written, Err: err}
			return w.err
		}

		if n > 0 {
			empty = 0
			continue
		}
		empty++
		if empty >= maxEmptyWrites {
			w.err = &SinkError{Written: w.written, Err: io.ErrNoProgress}
			return w.err
		}
	}
	return nil
}

// Save runs one save operation.  The function fn writes the document to
// the given writer, which buffers the output with the given capacity.  The
// buffer is flushed after fn returns.
//
// If Save returns an error, the content of sink is incomplete and must be
// discarded.
func Save(sink io.Writer, size int, fn func(w io.Writer) error) error {
	w := New(sink, size)
	err := fn(w)
	if err != nil {
		return err
	}
	return w.Flush()
}
