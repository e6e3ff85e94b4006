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

package geometry

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// TextPage gives access to the character geometry of one page.
// All boxes are in page space.
type TextPage interface {
	// CountChars returns the number of characters on the page.
	CountChars() int

	// CharBox returns the tight bounding box of character i, i.e. the
	// box around its visible ink.
	CharBox(i int) (rect.Rect, bool)

	// LooseCharBox returns the box of character i including the line
	// height of the font.
	LooseCharBox(i int) (rect.Rect, bool)

	// Rects returns the rectangles covering the characters
	// start, ..., start+count-1.  Characters on the same line are merged
	// into one rectangle.
	Rects(start, count int) []rect.Rect
}

// Glyph is one character of a [Glyphs] text page.
// A zero box means that the box is not available.
type Glyph struct {
	Text  rune
	Tight rect.Rect
	Loose rect.Rect
}

// Glyphs is an in-memory text page.
type Glyphs []Glyph

var _ TextPage = Glyphs(nil)

// CountChars implements the [TextPage] interface.
func (g Glyphs) CountChars() int {
	return len(g)
}

// CharBox implements the [TextPage] interface.
func (g Glyphs) CharBox(i int) (rect.Rect, bool) {
	box := g[i].Tight
	return box, !box.IsZero()
}

// LooseCharBox implements the [TextPage] interface.
func (g Glyphs) LooseCharBox(i int) (rect.Rect, bool) {
	box := g[i].Loose
	return box, !box.IsZero()
}

// Rects implements the [TextPage] interface.
//
// Consecutive glyphs are joined into one rectangle while they overlap
// vertically by at least half the height of the smaller glyph and
// progress from left to right.  Glyphs without a tight box are skipped.
func (g Glyphs) Rects(start, count int) []rect.Rect {
	var res []rect.Rect
	var cur rect.Rect
	open := false
	for i := start; i < start+count; i++ {
		box := g[i].Tight
		if box.IsZero() {
			continue
		}
		if open && sameLine(cur, box) {
			cur.Extend(box)
			continue
		}
		if open {
			res = append(res, cur)
		}
		cur = box
		open = true
	}
	if open {
		res = append(res, cur)
	}
	return res
}

// CharAt returns the index of the first character whose loose box contains
// p.  If the character has no loose box, its tight box is used.
// The result is -1 if no character is found.
func (g Glyphs) CharAt(p vec.Vec2) int {
	for i := range g {
		box := g[i].Loose
		if box.IsZero() {
			box = g[i].Tight
		}
		if box.IsZero() {
			continue
		}
		if p.X >= box.LLx && p.X <= box.URx && p.Y >= box.LLy && p.Y <= box.URy {
			return i
		}
	}
	return -1
}

// String returns the text of the page.
func (g Glyphs) String() string {
	runes := make([]rune, len(g))
	for i := range g {
		runes[i] = g[i].Text
	}
	return string(runes)
}

func sameLine(cur, box rect.Rect) bool {
	// right-to-left progression starts a new rectangle
	if box.URx <= cur.LLx {
		return false
	}
	overlap := min(cur.URy, box.URy) - max(cur.LLy, box.LLy)
	minHeight := min(cur.Dy(), box.Dy())
	return overlap >= 0.5*minHeight
}
