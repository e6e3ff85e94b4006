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

package overlay

import (
	"image/color"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfview/geometry"
	"seehuhn.de/go/pdfview/pixfmt"
)

// Default highlight colours.
var (
	SelectionColor = color.NRGBA{R: 0x00, G: 0x78, B: 0xd7, A: 0x60}
	SearchColor    = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0x80}
)

// Highlight blends col into dst, inside the union of the given rectangles.
// Rectangles are clipped to the image.
func (p *Painter) Highlight(dst *pixfmt.ARGB, rects []geometry.DeviceRect, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	p.Reset(rect.Rect{URx: float64(dst.Width), URy: float64(dst.Height)})

	srcA := float32(col.A) / 255
	srcR := float32(col.R)
	srcG := float32(col.G)
	srcB := float32(col.B)

	p.Coverage(rects, func(y, xMin int, coverage []float32) {
		row := dst.Pix[y*dst.Stride+xMin:]
		for i, c := range coverage {
			a := srcA * c
			if a <= 0 {
				continue
			}
			row[i] = over(row[i], srcR, srcG, srcB, a)
		}
	})
}

// over composites a straight-alpha source colour with opacity a onto the
// ARGB pixel d.
func over(d uint32, r, g, b, a float32) uint32 {
	dA := float32(d>>24) / 255
	outA := a + dA*(1-a)
	if outA <= 0 {
		return 0
	}
	w := dA * (1 - a)
	blend := func(src float32, dst uint8) uint32 {
		v := (src*a + float32(dst)*w) / outA
		return uint32(min(max(v+0.5, 0), 255))
	}
	return uint32(outA*255+0.5)<<24 |
		blend(r, uint8(d>>16))<<16 |
		blend(g, uint8(d>>8))<<8 |
		blend(b, uint8(d))
}
