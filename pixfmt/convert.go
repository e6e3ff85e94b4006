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

package pixfmt

import "fmt"

// ToARGB converts src into the canonical layout, writing the result to dst.
// Source formats without an alpha channel are converted to fully opaque
// pixels.  The two images must have the same size; their strides may differ.
//
// If the source format is not supported, a [*FormatError] is returned and
// dst must not be used.
func ToARGB(dst *ARGB, src Buffer) error {
	if src.Format.BytesPerPixel() == 0 {
		return &FormatError{Format: src.Format}
	}
	checkSize(dst.Width, dst.Height, src)
	checkRows(len(dst.Pix), dst.Stride, dst.Width, dst.Height)
	if src.Width == 0 || src.Height == 0 {
		return nil
	}

	rowBytes := src.Width * src.Format.BytesPerPixel()
	for y := range src.Height {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+rowBytes]
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+dst.Width]

		switch src.Format {
		case Gray8:
			for x := range dstRow {
				v := srcRow[x]
				dstRow[x] = packARGB(0xff, v, v, v)
			}
		case BGR24:
			for x := range dstRow {
				p := srcRow[3*x : 3*x+3]
				dstRow[x] = packARGB(0xff, p[2], p[1], p[0])
			}
		case RGB24:
			for x := range dstRow {
				p := srcRow[3*x : 3*x+3]
				dstRow[x] = packARGB(0xff, p[0], p[1], p[2])
			}
		case BGRA32:
			for x := range dstRow {
				p := srcRow[4*x : 4*x+4]
				dstRow[x] = packARGB(p[3], p[2], p[1], p[0])
			}
		case BGRX32:
			for x := range dstRow {
				p := srcRow[4*x : 4*x+4]
				dstRow[x] = packARGB(0xff, p[2], p[1], p[0])
			}
		}
	}
	return nil
}

// To565 packs the canonical image src into dst, keeping the top 5, 6 and 5
// bits of red, green and blue.  Alpha is ignored.  No rounding or
// dithering is applied.
func To565(dst *RGB565, src *ARGB) {
	if dst.Width != src.Width || dst.Height != src.Height {
		panic(fmt.Sprintf("pixfmt: size mismatch %dx%d vs. %dx%d",
			dst.Width, dst.Height, src.Width, src.Height))
	}
	checkRows(len(dst.Pix), dst.Stride, dst.Width, dst.Height)
	checkRows(len(src.Pix), src.Stride, src.Width, src.Height)
	if src.Width == 0 || src.Height == 0 {
		return
	}

	for y := range src.Height {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+src.Width]
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+dst.Width]
		for x, p := range srcRow {
			dstRow[x] = pack565(uint8(p>>16), uint8(p>>8), uint8(p))
		}
	}
}

func pack565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// Convert565 converts src to RGB565.  The data is first converted to the
// canonical layout, using a scratch image of the full size.
func Convert565(dst *RGB565, src Buffer) error {
	return Render565(dst, func(scratch *ARGB) error {
		return ToARGB(scratch, src)
	})
}

// Render565 fills dst via a renderer which can only produce canonical
// 32-bit images.  A scratch image of the size of dst is allocated, passed
// to render, and converted to RGB565 if render succeeds.
func Render565(dst *RGB565, render func(scratch *ARGB) error) error {
	scratch := NewARGB(dst.Width, dst.Height)
	err := render(scratch)
	if err != nil {
		return err
	}
	To565(dst, scratch)
	return nil
}

// checkSize panics if src does not describe an image of the given size
// which fits into its pixel slice.
func checkSize(width, height int, src Buffer) {
	if src.Width != width || src.Height != height {
		panic(fmt.Sprintf("pixfmt: size mismatch %dx%d vs. %dx%d",
			width, height, src.Width, src.Height))
	}
	checkRows(len(src.Pix), src.Stride, src.Width*src.Format.BytesPerPixel(), src.Height)
}

// checkRows panics if a buffer of length n cannot hold height rows of the
// given width with the given stride.
func checkRows(n, stride, width, height int) {
	if height == 0 || width == 0 {
		return
	}
	if stride < width || n < (height-1)*stride+width {
		panic(fmt.Sprintf("pixfmt: buffer of length %d too short for %d rows of %d (stride %d)",
			n, height, width, stride))
	}
}
