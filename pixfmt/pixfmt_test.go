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

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToARGB(t *testing.T) {
	const r, g, b, a = 0x12, 0x34, 0x56, 0x78

	cases := []struct {
		format Format
		pixel  []byte
		want   uint32
	}{
		{Gray8, []byte{0x9a}, 0xff9a9a9a},
		{BGR24, []byte{b, g, r}, 0xff123456},
		{RGB24, []byte{r, g, b}, 0xff123456},
		{BGRA32, []byte{b, g, r, a}, 0x78123456},
		{BGRX32, []byte{b, g, r, a}, 0xff123456},
		{BGRX32, []byte{b, g, r, 0x00}, 0xff123456},
	}
	for _, c := range cases {
		t.Run(c.format.String(), func(t *testing.T) {
			src := Buffer{Width: 1, Height: 1, Stride: len(c.pixel), Format: c.format, Pix: c.pixel}
			dst := NewARGB(1, 1)
			if err := ToARGB(dst, src); err != nil {
				t.Fatal(err)
			}
			if dst.Pix[0] != c.want {
				t.Errorf("got %08x, want %08x", dst.Pix[0], c.want)
			}
		})
	}
}

func TestToARGBStride(t *testing.T) {
	// 2x3 BGR image, source rows padded to 8 bytes
	src := Buffer{
		Width:  2,
		Height: 3,
		Stride: 8,
		Format: BGR24,
		Pix: []byte{
			1, 2, 3, 4, 5, 6, 0xee, 0xee,
			7, 8, 9, 10, 11, 12, 0xee, 0xee,
			13, 14, 15, 16, 17, 18,
		},
	}
	dst := &ARGB{Width: 2, Height: 3, Stride: 4, Pix: make([]uint32, 12)}
	for i := range dst.Pix {
		dst.Pix[i] = 0xdeadbeef
	}
	if err := ToARGB(dst, src); err != nil {
		t.Fatal(err)
	}

	want := []uint32{
		0xff030201, 0xff060504, 0xdeadbeef, 0xdeadbeef,
		0xff090807, 0xff0c0b0a, 0xdeadbeef, 0xdeadbeef,
		0xff0f0e0d, 0xff121110, 0xdeadbeef, 0xdeadbeef,
	}
	if d := cmp.Diff(want, dst.Pix); d != "" {
		t.Errorf("unexpected pixels (-want +got):\n%s", d)
	}
}

func TestToARGBUnsupported(t *testing.T) {
	src := Buffer{Width: 1, Height: 1, Stride: 4, Format: Unknown, Pix: make([]byte, 4)}
	err := ToARGB(NewARGB(1, 1), src)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	var fErr *FormatError
	if !errors.As(err, &fErr) || fErr.Format != Unknown {
		t.Errorf("unexpected error %#v", err)
	}
}

func TestToARGBSizeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	src := Buffer{Width: 2, Height: 2, Stride: 2, Format: Gray8, Pix: make([]byte, 3)}
	ToARGB(NewARGB(2, 2), src)
}

func TestEmptyImages(t *testing.T) {
	sizes := []struct{ w, h int }{{0, 2}, {3, 0}, {0, 0}}
	for _, size := range sizes {
		src := Buffer{Width: size.w, Height: size.h, Stride: 4, Format: BGRA32}
		dst := &ARGB{Width: size.w, Height: size.h, Stride: 4}
		if err := ToARGB(dst, src); err != nil {
			t.Errorf("%dx%d: %v", size.w, size.h, err)
		}
		To565(&RGB565{Width: size.w, Height: size.h, Stride: 4}, dst)
	}
}

// TestToARGBShortLastRow checks that the last row needs no stride padding.
func TestToARGBShortLastRow(t *testing.T) {
	src := Buffer{
		Width: 1, Height: 2, Stride: 8, Format: BGR24,
		Pix: []byte{1, 2, 3, 0, 0, 0, 0, 0, 4, 5, 6},
	}
	dst := NewARGB(1, 2)
	if err := ToARGB(dst, src); err != nil {
		t.Fatal(err)
	}
	want := []uint32{0xff030201, 0xff060504}
	if d := cmp.Diff(want, dst.Pix); d != "" {
		t.Errorf("unexpected pixels (-want +got):\n%s", d)
	}
}

func TestTo565(t *testing.T) {
	cases := []struct {
		argb    uint32
		r, g, b uint16
	}{
		{0xff_ff0000, 31, 0, 0},
		{0x00_00ff00, 0, 63, 0},
		{0x80_0000ff, 0, 0, 31},
		{0xff_070307, 0, 0, 0}, // truncation, no rounding
		{0xff_080408, 1, 1, 1},
		{0xff_ffffff, 31, 63, 31},
	}
	for _, c := range cases {
		src := NewARGB(1, 1)
		src.Pix[0] = c.argb
		dst := NewRGB565(1, 1)
		To565(dst, src)

		p := dst.Pix[0]
		r, g, b := p>>11, (p>>5)&0x3f, p&0x1f
		if r != c.r || g != c.g || b != c.b {
			t.Errorf("%08x: got (%d, %d, %d), want (%d, %d, %d)",
				c.argb, r, g, b, c.r, c.g, c.b)
		}
	}
}

func TestConvert565(t *testing.T) {
	src := Buffer{
		Width:  2,
		Height: 1,
		Stride: 8,
		Format: BGRX32,
		Pix:    []byte{0, 0, 255, 0x11, 0, 255, 0, 0x22},
	}
	dst := &RGB565{Width: 2, Height: 1, Stride: 3, Pix: make([]uint16, 3)}
	if err := Convert565(dst, src); err != nil {
		t.Fatal(err)
	}
	want := []uint16{31 << 11, 63 << 5, 0}
	if d := cmp.Diff(want, dst.Pix); d != "" {
		t.Errorf("unexpected pixels (-want +got):\n%s", d)
	}

	src.Format = Format(99)
	if err := Convert565(dst, src); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRender565Error(t *testing.T) {
	dst := NewRGB565(2, 2)
	dst.Pix[0] = 0x1234
	errRender := errors.New("render failed")
	err := Render565(dst, func(scratch *ARGB) error {
		if scratch.Width != 2 || scratch.Height != 2 {
			t.Errorf("scratch is %dx%d", scratch.Width, scratch.Height)
		}
		return errRender
	})
	if err != errRender {
		t.Errorf("got %v, want %v", err, errRender)
	}
	if dst.Pix[0] != 0x1234 {
		t.Error("dst was modified")
	}
}

func TestImageInterface(t *testing.T) {
	img := NewARGB(2, 2)
	img.Fill(0xff_102030)
	img.Set(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	if got := img.At(0, 0); got != (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Errorf("At(0, 0) = %v", got)
	}
	if img.Pix[3] != 0x04010203 {
		t.Errorf("Set stored %08x", img.Pix[3])
	}
	if got := img.At(5, 5); got != (color.NRGBA{}) {
		t.Errorf("At outside bounds = %v", got)
	}

	small := NewRGB565(1, 1)
	small.Pix[0] = 0xffff
	if got := small.At(0, 0); got != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("RGB565 At = %v", got)
	}
}
