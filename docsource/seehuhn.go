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

// Package docsource connects PDF reading libraries to the engine-facing
// interfaces of this module.
package docsource

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/action"
	"seehuhn.de/go/pdf/destination"
	pdfoutline "seehuhn.de/go/pdf/outline"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/pdfview/outline"
)

// ReadOutline reads the document outline using seehuhn.de/go/pdf.
// The result is nil if the document has no outline.
func ReadOutline(r pdf.Getter) (outline.Nodes, error) {
	tree, err := pdfoutline.Read(r)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, nil
	}

	pageNumbers := make(map[pdf.Reference]int)
	pageNo := 0
	for ref := range pagetree.NewIterator(r).All() {
		pageNumbers[ref] = pageNo
		pageNo++
	}

	return outline.FromItems(convertItems(tree.Items, pageNumbers)), nil
}

// convertItems converts a seehuhn outline tree into an [outline.Item] tree.
func convertItems(items []*pdfoutline.Item, pageNumbers map[pdf.Reference]int) []*outline.Item {
	type todo struct {
		in  []*pdfoutline.Item
		out *[]*outline.Item
	}

	var res []*outline.Item
	stack := []todo{{in: items, out: &res}}
	for len(stack) > 0 {
		k := len(stack) - 1
		t := stack[k]
		stack = stack[:k]

		*t.out = make([]*outline.Item, len(t.in))
		for i, item := range t.in {
			conv := &outline.Item{
				Title: item.Title,
				Dest:  itemDest(item, pageNumbers),
			}
			(*t.out)[i] = conv
			if len(item.Children) > 0 {
				stack = append(stack, todo{in: item.Children, out: &conv.Children})
			}
		}
	}
	return res
}

// itemDest returns the target of an outline item, or nil if the target
// cannot be located in the document.
func itemDest(item *pdfoutline.Item, pageNumbers map[pdf.Reference]int) *outline.Dest {
	dest := item.Destination
	if dest == nil {
		if goTo, ok := item.Action.(*action.GoTo); ok {
			dest = goTo.Dest
		}
	}
	if dest == nil {
		return nil
	}

	res := outline.NoDest
	var page destination.Target
	switch d := dest.(type) {
	case *destination.XYZ:
		page = d.Page
		res.X = coord(d.Left)
		res.Y = coord(d.Top)
		if d.Zoom != 0 {
			res.Zoom = coord(d.Zoom)
		}
	case *destination.Fit:
		page = d.Page
	case *destination.FitH:
		page = d.Page
		res.Y = coord(d.Top)
	case *destination.FitV:
		page = d.Page
	case *destination.FitR:
		page = d.Page
		res.X = coord(d.Left)
		res.Y = coord(d.Top)
	case *destination.FitB:
		page = d.Page
	case *destination.FitBH:
		page = d.Page
		res.Y = coord(d.Top)
	case *destination.FitBV:
		page = d.Page
	default:
		// named destinations are not resolved
		return nil
	}

	switch p := page.(type) {
	case pdf.Reference:
		pageNo, ok := pageNumbers[p]
		if !ok {
			return nil
		}
		res.Page = pageNo
	case pdf.Integer:
		res.Page = int(p)
	default:
		return nil
	}
	return &res
}

// coord maps unset (NaN) coordinates to -1.
func coord(x float64) float64 {
	if math.IsNaN(x) {
		return -1
	}
	return x
}

// defaultMediaBox is US Letter, used when a page has no MediaBox.
var defaultMediaBox = rect.Rect{URx: 612, URy: 792}

// PageGeometry returns the media box of page pageNo (0-based) and the
// number of clockwise quarter turns for displaying the page.
// Inherited attributes are taken from the page tree.
func PageGeometry(r pdf.Getter, pageNo int) (mediaBox rect.Rect, rotate int, err error) {
	_, dict, err := pagetree.GetPage(r, pageNo)
	if err != nil {
		return rect.Rect{}, 0, fmt.Errorf("page %d: %w", pageNo+1, err)
	}

	mediaBox = defaultMediaBox
	box, err := pdf.GetRectangle(r, dict["MediaBox"])
	if err != nil {
		return rect.Rect{}, 0, fmt.Errorf("page %d: MediaBox: %w", pageNo+1, err)
	}
	if box != nil {
		b := rect.Rect{
			LLx: min(box.LLx, box.URx),
			LLy: min(box.LLy, box.URy),
			URx: max(box.LLx, box.URx),
			URy: max(box.LLy, box.URy),
		}
		if b.Dx() > 0 && b.Dy() > 0 {
			mediaBox = b
		}
	}

	obj, err := pdf.Resolve(r, dict["Rotate"])
	if err != nil {
		return rect.Rect{}, 0, fmt.Errorf("page %d: Rotate: %w", pageNo+1, err)
	}
	deg, _ := obj.(pdf.Integer)
	return mediaBox, quarterTurns(int64(deg)), nil
}

// quarterTurns converts a /Rotate value in degrees to quarter turns
// in the range 0, ..., 3.
func quarterTurns(deg int64) int {
	q := (deg / 90) % 4
	if q < 0 {
		q += 4
	}
	return int(q)
}
