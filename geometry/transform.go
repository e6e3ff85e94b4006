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

// Package geometry computes device-space highlight rectangles from the
// glyph and line geometry of a text page.
//
// Page space uses PDF conventions, with the y-axis pointing up.  Device
// space is measured in pixels of the render surface, with the y-axis
// pointing down.
package geometry

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Transform maps page space to device space.
type Transform interface {
	// PageToDevice maps a page-space point to integer device pixels.
	PageToDevice(p vec.Vec2) (x, y int)

	// Delta maps a page-space displacement to a device-space displacement.
	// This is the linear part of the transformation, without rounding.
	Delta(d vec.Vec2) vec.Vec2
}

// PageView describes where a page is drawn on the render surface.
// It implements the [Transform] interface.
type PageView struct {
	// Page is the visible region of the page, in page space.
	Page rect.Rect

	// StartX and StartY give the device position of the top-left corner of
	// the displayed page.
	StartX, StartY int

	// SizeX and SizeY give the size of the displayed page in device pixels.
	SizeX, SizeY int

	// Rotate is the number of clockwise quarter turns, 0 to 3.
	Rotate int
}

// Matrix returns the page-to-device transformation matrix.
func (v *PageView) Matrix() matrix.Matrix {
	w := v.Page.Dx()
	h := v.Page.Dy()
	sx := float64(v.SizeX)
	sy := float64(v.SizeY)
	x0 := float64(v.StartX)
	y0 := float64(v.StartY)

	var m matrix.Matrix
	switch v.Rotate & 3 {
	case 0:
		m = matrix.Matrix{sx / w, 0, 0, -sy / h, x0, y0 + sy}
	case 1:
		m = matrix.Matrix{0, sy / w, sx / h, 0, x0, y0}
	case 2:
		m = matrix.Matrix{-sx / w, 0, 0, sy / h, x0 + sx, y0}
	case 3:
		m = matrix.Matrix{0, -sy / w, -sx / h, 0, x0 + sx, y0 + sy}
	}
	return matrix.Translate(-v.Page.LLx, -v.Page.LLy).Mul(m)
}

// PageToDevice implements the [Transform] interface.
// Results are rounded to the nearest pixel.
func (v *PageView) PageToDevice(p vec.Vec2) (x, y int) {
	m := v.Matrix()
	dx := m[0]*p.X + m[2]*p.Y + m[4]
	dy := m[1]*p.X + m[3]*p.Y + m[5]
	return int(math.Round(dx)), int(math.Round(dy))
}

// Delta implements the [Transform] interface.
func (v *PageView) Delta(d vec.Vec2) vec.Vec2 {
	m := v.Matrix()
	return vec.Vec2{
		X: m[0]*d.X + m[2]*d.Y,
		Y: m[1]*d.X + m[3]*d.Y,
	}
}
