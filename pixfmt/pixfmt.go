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

// Package pixfmt converts decoded raster data into the canonical pixel
// layouts used by the viewer: 32-bit ARGB and packed 16-bit RGB565.
package pixfmt

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Format identifies the byte layout of a [Buffer].
type Format int

// These are the supported source formats.
const (
	Unknown Format = iota
	Gray8          // one byte of luminance
	BGR24          // blue, green, red
	BGRA32         // blue, green, red, alpha
	BGRX32         // blue, green, red, unused
	RGB24          // red, green, blue
)

// BytesPerPixel returns the size of one pixel, or 0 for unknown formats.
func (f Format) BytesPerPixel() int {
	switch f {
	case Gray8:
		return 1
	case BGR24, RGB24:
		return 3
	case BGRA32, BGRX32:
		return 4
	default:
		return 0
	}
}

func (f Format) String() string {
	switch f {
	case Gray8:
		return "Gray8"
	case BGR24:
		return "BGR24"
	case BGRA32:
		return "BGRA32"
	case BGRX32:
		return "BGRX32"
	case RGB24:
		return "RGB24"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ErrUnsupportedFormat is returned when a source buffer has a pixel format
// which cannot be converted.
var ErrUnsupportedFormat = errors.New("unsupported pixel format")

// FormatError reports an unsupported source format.
type FormatError struct {
	Format Format
}

func (err *FormatError) Error() string {
	return "unsupported pixel format " + err.Format.String()
}

func (err *FormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// Buffer is a read-only view of decoded pixel data.
// Row y starts at byte offset y*Stride of Pix.
type Buffer struct {
	Width, Height int
	Stride        int // bytes per row
	Format        Format
	Pix           []byte
}

// ARGB is an image in the canonical 32-bit layout.  Each pixel is one
// uint32 with alpha in the top byte, followed by red, green and blue.
// Colours are not premultiplied.
//
// ARGB implements the [image/draw.Image] interface.
type ARGB struct {
	Width, Height int
	Stride        int // pixels per row
	Pix           []uint32
}

// NewARGB allocates a new canonical image with Stride equal to Width.
func NewARGB(width, height int) *ARGB {
	return &ARGB{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    make([]uint32, width*height),
	}
}

// Fill sets all pixels to the given value.
func (img *ARGB) Fill(argb uint32) {
	for y := range img.Height {
		row := img.Pix[y*img.Stride : y*img.Stride+img.Width]
		for x := range row {
			row[x] = argb
		}
	}
}

// ColorModel implements the [image.Image] interface.
func (img *ARGB) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements the [image.Image] interface.
func (img *ARGB) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// At implements the [image.Image] interface.
func (img *ARGB) At(x, y int) color.Color {
	if !image.Pt(x, y).In(img.Bounds()) {
		return color.NRGBA{}
	}
	return unpackARGB(img.Pix[y*img.Stride+x])
}

// Set implements the [image/draw.Image] interface.
func (img *ARGB) Set(x, y int, c color.Color) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	img.Pix[y*img.Stride+x] = packARGB(n.A, n.R, n.G, n.B)
}

func packARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func unpackARGB(p uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(p >> 24),
		R: uint8(p >> 16),
		G: uint8(p >> 8),
		B: uint8(p),
	}
}

// RGB565 is an image in packed 16-bit format, with 5 bits of red in the
// top bits, 6 bits of green and 5 bits of blue.
type RGB565 struct {
	Width, Height int
	Stride        int // pixels per row
	Pix           []uint16
}

// NewRGB565 allocates a new 16-bit image with Stride equal to Width.
func NewRGB565(width, height int) *RGB565 {
	return &RGB565{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    make([]uint16, width*height),
	}
}

// ColorModel implements the [image.Image] interface.
func (img *RGB565) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements the [image.Image] interface.
func (img *RGB565) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// At implements the [image.Image] interface.
// The 5 and 6 bit channels are expanded to 8 bits by bit replication.
func (img *RGB565) At(x, y int) color.Color {
	if !image.Pt(x, y).In(img.Bounds()) {
		return color.RGBA{}
	}
	p := img.Pix[y*img.Stride+x]
	r := uint8(p>>11) & 0x1f
	g := uint8(p>>5) & 0x3f
	b := uint8(p) & 0x1f
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xff,
	}
}
