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
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	lpdf "github.com/ledongthuc/pdf"
	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pdfview/docsource"
	"seehuhn.de/go/pdfview/geometry"
	"seehuhn.de/go/pdfview/overlay"
	"seehuhn.de/go/pdfview/pixfmt"
)

// glyphColor marks the tight boxes of all characters, as a stand-in for
// the rendered page content.
var glyphColor = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0x30}

func runHighlight(cfg config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("highlight", flag.ContinueOnError)
	pageNo := fs.Int("page", 1, "page number (1-based)")
	query := fs.String("query", "", "text to highlight")
	dpi := fs.Float64("dpi", cfg.DPI, "resolution of the output image")
	use565 := fs.Bool("rgb565", false, "reduce the output to RGB565")
	scale := fs.Float64("scale", 1, "scale the final image by this factor")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 || *query == "" {
		return errors.New("usage: highlight -page n -query text [-dpi x] file.pdf out.png")
	}
	inName, outName := fs.Arg(0), fs.Arg(1)

	doc, err := pdf.Open(inName, nil)
	if err != nil {
		return err
	}
	defer doc.Close()
	f, text, err := lpdf.Open(inName)
	if err != nil {
		return err
	}
	defer f.Close()

	page, err := docsource.ReadPage(doc, text, *pageNo-1)
	if err != nil {
		return err
	}

	box := page.MediaBox
	width := int(math.Round(box.Dx() * *dpi / 72))
	height := int(math.Round(box.Dy() * *dpi / 72))
	if page.Rotate%2 == 1 {
		width, height = height, width
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("page %d: empty page", *pageNo)
	}
	log.Debug("page loaded", "page", *pageNo, "chars", len(page.Glyphs),
		"width", width, "height", height, "rotate", page.Rotate)

	geom := &geometry.Page{
		Text: page.Glyphs,
		View: page.View(width, height),
	}
	matches := findAll(page.Glyphs.String(), *query)
	log.Info("search", "query", *query, "matches", len(matches))

	render := func(img *pixfmt.ARGB) error {
		if err := blankPage(img); err != nil {
			return err
		}

		p := overlay.NewPainter(rect.Rect{})
		var rects []geometry.DeviceRect
		for i := range page.Glyphs {
			if cr, ok := geom.CharRect(i, false); ok {
				rects = append(rects, cr)
			}
		}
		p.Highlight(img, rects, glyphColor)

		rects = rects[:0]
		for _, m := range matches {
			rects = geom.AppendRangeRects(rects, m.start, m.count)
			if origin, ok := geom.Origin(m.start, m.count); ok {
				log.Debug("match", "char", m.start, "x", origin.X, "y", origin.Y)
			}
		}
		p.Highlight(img, rects, overlay.SearchColor)
		return nil
	}

	var img image.Image
	if *use565 {
		dst := pixfmt.NewRGB565(width, height)
		if err := pixfmt.Render565(dst, render); err != nil {
			return err
		}
		img = dst
	} else {
		dst := pixfmt.NewARGB(width, height)
		if err := render(dst); err != nil {
			return err
		}
		img = dst
	}

	return saveFile(outName, cfg.BufferSize, func(w io.Writer) error {
		return png.Encode(w, toRGBA(img, *scale))
	})
}

// blankPage fills img with white, going through the pixel format
// normalizer in the same way as a page rendered by an engine would.
func blankPage(img *pixfmt.ARGB) error {
	src := pixfmt.Buffer{
		Width:  img.Width,
		Height: img.Height,
		Stride: img.Width,
		Format: pixfmt.Gray8,
		Pix:    make([]byte, img.Width*img.Height),
	}
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	return pixfmt.ToARGB(img, src)
}

// toRGBA converts img to an *image.RGBA, optionally scaling it.
func toRGBA(img image.Image, scale float64) *image.RGBA {
	b := img.Bounds()
	if scale <= 0 || scale == 1 {
		dst := image.NewRGBA(b)
		draw.Draw(dst, b, img, b.Min, draw.Src)
		return dst
	}
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

type match struct {
	start, count int
}

// findAll returns the character ranges of all non-overlapping
// occurrences of query in text.
func findAll(text, query string) []match {
	var res []match
	count := utf8.RuneCountInString(query)
	pos := 0     // byte offset
	charPos := 0 // character index of pos
	for {
		i := strings.Index(text[pos:], query)
		if i < 0 {
			break
		}
		charPos += utf8.RuneCountInString(text[pos : pos+i])
		res = append(res, match{start: charPos, count: count})
		pos += i + len(query)
		charPos += count
	}
	return res
}
