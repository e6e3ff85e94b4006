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
	lpdf "github.com/ledongthuc/pdf"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pdfview/geometry"
)

// Page holds the text and the page geometry of one page.
type Page struct {
	Glyphs   geometry.Glyphs
	MediaBox rect.Rect

	// Rotate is the number of quarter turns clockwise the page is
	// rotated for display.
	Rotate int
}

// ReadPage loads page pageNo (0-based).  The page geometry is read with
// seehuhn.de/go/pdf, the text with github.com/ledongthuc/pdf; both
// readers must refer to the same file.
func ReadPage(doc pdf.Getter, text *lpdf.Reader, pageNo int) (*Page, error) {
	mediaBox, rotate, err := PageGeometry(doc, pageNo)
	if err != nil {
		return nil, err
	}
	glyphs, err := ReadText(text, pageNo)
	if err != nil {
		return nil, err
	}
	return &Page{
		Glyphs:   glyphs,
		MediaBox: mediaBox,
		Rotate:   rotate,
	}, nil
}

// View returns the page-to-device transform for rendering the page into
// a sizeX*sizeY pixel area.
func (p *Page) View(sizeX, sizeY int) *geometry.PageView {
	return &geometry.PageView{
		Page:   p.MediaBox,
		SizeX:  sizeX,
		SizeY:  sizeY,
		Rotate: p.Rotate,
	}
}
