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
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// DeviceRect is a rectangle in device pixels.
// Right >= Left and Bottom >= Top.
type DeviceRect struct {
	Left, Top, Right, Bottom float64
}

// Dx returns the width of the rectangle.
func (r DeviceRect) Dx() float64 {
	return r.Right - r.Left
}

// Dy returns the height of the rectangle.
func (r DeviceRect) Dy() float64 {
	return r.Bottom - r.Top
}

// normalize swaps coordinates where needed, so that Right >= Left and
// Bottom >= Top.
func (r DeviceRect) normalize() DeviceRect {
	if r.Right < r.Left {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Bottom < r.Top {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Page maps the text geometry of a page to device space.
//
// Character indices passed to the methods of Page must be valid for Text.
// Invalid indices are a programming error and cause a panic.
type Page struct {
	Text TextPage
	View Transform

	// OffsetX and OffsetY are added to all device coordinates, after the
	// page-to-device mapping.
	OffsetX, OffsetY int
}

// CharRect returns the device rectangle of character i, using either the
// tight or the loose box.  The second return value is false if the
// character has no such box.
//
// Only the top-left corner of the box is mapped to device space.  The
// size of the rectangle is obtained by mapping the page-space extent of
// the box as a displacement.
func (p *Page) CharRect(i int, loose bool) (DeviceRect, bool) {
	p.checkIndex(i)

	var box rect.Rect
	var ok bool
	if loose {
		box, ok = p.Text.LooseCharBox(i)
	} else {
		box, ok = p.Text.CharBox(i)
	}
	if !ok {
		return DeviceRect{}, false
	}

	x, y := p.View.PageToDevice(vec.Vec2{X: box.LLx, Y: box.URy})
	d := p.View.Delta(vec.Vec2{X: box.Dx(), Y: -box.Dy()})

	left := float64(x + p.OffsetX)
	top := float64(y + p.OffsetY)
	res := DeviceRect{
		Left:   left,
		Top:    top,
		Right:  left + math.Trunc(d.X),
		Bottom: top + math.Trunc(d.Y),
	}
	return res.normalize(), true
}

// MixedCharRect returns a device rectangle for character i which combines
// the tight and the loose box.  Vertically, the result covers only the
// intersection of the two boxes, since loose boxes include the line
// spacing.  Horizontally, it covers the union, since tight boxes can be
// too narrow for some scripts.  The second return value is false if either
// box is missing.
//
// The width is found by mapping both corners; the height by mapping the
// page-space height as a displacement.
func (p *Page) MixedCharRect(i int) (DeviceRect, bool) {
	p.checkIndex(i)

	tight, ok := p.Text.CharBox(i)
	if !ok {
		return DeviceRect{}, false
	}
	loose, ok := p.Text.LooseCharBox(i)
	if !ok {
		return DeviceRect{}, false
	}
	box := mixBoxes(tight, loose)

	x0, y0 := p.View.PageToDevice(vec.Vec2{X: box.LLx, Y: box.URy})
	x1, _ := p.View.PageToDevice(vec.Vec2{X: box.URx, Y: box.LLy})
	d := p.View.Delta(vec.Vec2{X: 0, Y: -box.Dy()})
	height := math.Trunc(d.Y)

	left := float64(x0 + p.OffsetX)
	top := float64(y0 + p.OffsetY)
	res := DeviceRect{
		Left:   left,
		Top:    top,
		Right:  left + float64(x1-x0),
		Bottom: top + height,
	}
	return res.normalize(), true
}

// mixBoxes returns the vertical intersection and horizontal union of a
// tight and a loose glyph box.  If the boxes do not overlap vertically,
// the vertical extent collapses to the edge of the tight box closest to
// the loose box.
func mixBoxes(tight, loose rect.Rect) rect.Rect {
	res := rect.Rect{
		LLx: min(tight.LLx, loose.LLx),
		URx: max(tight.URx, loose.URx),
		LLy: max(tight.LLy, loose.LLy),
		URy: min(tight.URy, loose.URy),
	}
	if res.LLy > res.URy {
		y := min(max(res.LLy, tight.LLy), tight.URy)
		res.LLy, res.URy = y, y
	}
	return res
}

// RangeRects returns the device rectangles covering the characters
// start, ..., start+count-1.  A negative count selects all characters from
// start to the end of the page.  Both corners of every rectangle are
// mapped to device space separately.
func (p *Page) RangeRects(start, count int) []DeviceRect {
	return p.AppendRangeRects(nil, start, count)
}

// AppendRangeRects is like [Page.RangeRects], but appends the rectangles
// to dst and returns the extended slice.
func (p *Page) AppendRangeRects(dst []DeviceRect, start, count int) []DeviceRect {
	count = p.checkRange(start, count)
	if count == 0 {
		return dst
	}

	for _, box := range p.Text.Rects(start, count) {
		x0, y0 := p.View.PageToDevice(vec.Vec2{X: box.LLx, Y: box.URy})
		x1, y1 := p.View.PageToDevice(vec.Vec2{X: box.URx, Y: box.LLy})
		r := DeviceRect{
			Left:   float64(x0 + p.OffsetX),
			Top:    float64(y0 + p.OffsetY),
			Right:  float64(x1 + p.OffsetX),
			Bottom: float64(y1 + p.OffsetY),
		}
		dst = append(dst, r.normalize())
	}
	return dst
}

// Origin returns the page-space top-left corner of the first rectangle
// covering the characters start, ..., start+count-1.  The second return
// value is false if the range has no rectangles.
func (p *Page) Origin(start, count int) (vec.Vec2, bool) {
	count = p.checkRange(start, count)
	if count == 0 {
		return vec.Vec2{}, false
	}
	rects := p.Text.Rects(start, count)
	if len(rects) == 0 {
		return vec.Vec2{}, false
	}
	return vec.Vec2{X: rects[0].LLx, Y: rects[0].URy}, true
}

// PackOrigin packs a point into a single 64-bit value, with the float32 bit
// pattern of X in the high half and that of Y in the low half.
func PackOrigin(p vec.Vec2) uint64 {
	x := math.Float32bits(float32(p.X))
	y := math.Float32bits(float32(p.Y))
	return uint64(x)<<32 | uint64(y)
}

// UnpackOrigin reverses [PackOrigin].
func UnpackOrigin(v uint64) vec.Vec2 {
	return vec.Vec2{
		X: float64(math.Float32frombits(uint32(v >> 32))),
		Y: float64(math.Float32frombits(uint32(v))),
	}
}

func (p *Page) checkIndex(i int) {
	n := p.Text.CountChars()
	if i < 0 || i >= n {
		panic(fmt.Sprintf("geometry: character index %d out of range [0:%d]", i, n))
	}
}

// checkRange validates a character range and returns the effective count.
func (p *Page) checkRange(start, count int) int {
	n := p.Text.CountChars()
	if start < 0 || start > n {
		panic(fmt.Sprintf("geometry: range start %d out of range [0:%d]", start, n))
	}
	if count < 0 {
		return n - start
	}
	if count > n-start {
		panic(fmt.Sprintf("geometry: range [%d:%d] exceeds %d characters", start, start+count, n))
	}
	return count
}
