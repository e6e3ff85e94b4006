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

package docsource

import (
	"fmt"
	"unicode/utf8"

	lpdf "github.com/ledongthuc/pdf"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfview/geometry"
	"seehuhn.de/go/pdfview/outline"
)

// Vertical glyph metrics, as fractions of the font size.  PDF text
// positioning only gives the baseline, so the glyph boxes are estimated.
const (
	tightAscent  = 0.7
	tightDescent = 0.2
	looseAscent  = 0.95
	looseDescent = 0.25

	// fallbackWidth is used for glyphs where the reader reports no width.
	fallbackWidth = 0.5
)

// SimpleOutline returns the outline of a document opened with
// github.com/ledongthuc/pdf.  This reader exposes titles only, so none of
// the items have a destination.
func SimpleOutline(r *lpdf.Reader) outline.Nodes {
	root := r.Outline()

	type todo struct {
		in  []lpdf.Outline
		out *[]*outline.Item
	}

	var items []*outline.Item
	stack := []todo{{in: root.Child, out: &items}}
	for len(stack) > 0 {
		k := len(stack) - 1
		t := stack[k]
		stack = stack[:k]

		*t.out = make([]*outline.Item, len(t.in))
		for i, o := range t.in {
			item := &outline.Item{Title: o.Title}
			(*t.out)[i] = item
			if len(o.Child) > 0 {
				stack = append(stack, todo{in: o.Child, out: &item.Children})
			}
		}
	}
	return outline.FromItems(items)
}

// ReadText extracts the characters of page pageNo (0-based) together with
// estimated glyph boxes.
func ReadText(r *lpdf.Reader, pageNo int) (glyphs geometry.Glyphs, err error) {
	if pageNo < 0 || pageNo >= r.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)",
			pageNo+1, r.NumPage())
	}
	page := r.Page(pageNo + 1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", pageNo+1)
	}

	// The reader panics on malformed content streams.
	defer func() {
		if p := recover(); p != nil {
			glyphs = nil
			err = fmt.Errorf("page %d: %v", pageNo+1, p)
		}
	}()

	content := page.Content()
	return glyphsFromText(content.Text), nil
}

// glyphsFromText converts the text runs of a page into glyphs.  Runs with
// more than one character are split into equal parts.
func glyphsFromText(runs []lpdf.Text) geometry.Glyphs {
	var res geometry.Glyphs
	for _, run := range runs {
		n := utf8.RuneCountInString(run.S)
		if n == 0 {
			continue
		}
		fs := run.FontSize
		w := run.W
		if w <= 0 {
			w = fallbackWidth * fs * float64(n)
		}
		step := w / float64(n)

		x := run.X
		for _, c := range run.S {
			res = append(res, geometry.Glyph{
				Text: c,
				Tight: rect.Rect{
					LLx: x, LLy: run.Y - tightDescent*fs,
					URx: x + step, URy: run.Y + tightAscent*fs,
				},
				Loose: rect.Rect{
					LLx: x, LLy: run.Y - looseDescent*fs,
					URx: x + step, URy: run.Y + looseAscent*fs,
				},
			})
			x += step
		}
	}
	return res
}
