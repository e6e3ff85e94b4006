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

// Package overlay paints selection and search highlights onto rendered
// page images.
package overlay

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfview/geometry"
)

// edge represents a line segment in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
}

// Painter converts highlight shapes to pixel coverage values, the fraction
// of each pixel's area covered by the union of the shapes, ranging from 0
// to 1.  Create one instance and reuse it for many highlights.  Internal
// buffers grow as needed but never shrink.
//
// A Painter is not safe for concurrent use.
type Painter struct {
	// Clip bounds output to this device-coordinate rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Internal buffers (reused across calls)
	cover     []float32 // cover change per pixel; reused as output
	area      []float32 // area within pixel
	edges     []edge    // edge list for the current shapes
	activeIdx []int     // indices of active edges

	// bounding box of all edges in device space
	edgeBBoxFirst bool
	edgeDevXMin   float64
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64
}

// NewPainter returns a Painter which clips its output to the given
// rectangle.
func NewPainter(clip rect.Rect) *Painter {
	return &Painter{Clip: clip}
}

// Reset changes the clip rectangle, keeping the internal buffers.
func (p *Painter) Reset(clip rect.Rect) {
	p.Clip = clip
	p.edges = p.edges[:0]
}

// Coverage computes the coverage of the union of the given rectangles.
// The emit callback receives coverage row by row; its slice argument is
// valid only during the call.
func (p *Painter) Coverage(rects []geometry.DeviceRect, emit func(y, xMin int, coverage []float32)) {
	p.startEdges()
	for _, r := range rects {
		if r.Right <= r.Left || r.Bottom <= r.Top {
			continue
		}
		p.addQuad([4]vec.Vec2{
			{X: r.Left, Y: r.Top},
			{X: r.Right, Y: r.Top},
			{X: r.Right, Y: r.Bottom},
			{X: r.Left, Y: r.Bottom},
		})
	}
	p.fill(emit)
}

// QuadCoverage is like [Painter.Coverage], but takes arbitrary convex
// quadrilaterals, for example page-space boxes mapped through a rotation.
// All quadrilaterals must have the same orientation.
func (p *Painter) QuadCoverage(quads [][4]vec.Vec2, emit func(y, xMin int, coverage []float32)) {
	p.startEdges()
	for _, q := range quads {
		p.addQuad(q)
	}
	p.fill(emit)
}

func (p *Painter) startEdges() {
	p.edges = p.edges[:0]
	p.edgeBBoxFirst = true
}

func (p *Painter) addQuad(q [4]vec.Vec2) {
	for i := range q {
		p.addEdge(q[i], q[(i+1)%4])
	}
}

// addEdge adds an edge given in device coordinates.
func (p *Painter) addEdge(p0, p1 vec.Vec2) {
	// Skip horizontal edges
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	p.edges = append(p.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	if p.edgeBBoxFirst {
		p.edgeDevXMin = min(p0.X, p1.X)
		p.edgeDevXMax = max(p0.X, p1.X)
		p.edgeDevYMin = min(p0.Y, p1.Y)
		p.edgeDevYMax = max(p0.Y, p1.Y)
		p.edgeBBoxFirst = false
	} else {
		p.edgeDevXMin = min(p.edgeDevXMin, p0.X, p1.X)
		p.edgeDevXMax = max(p.edgeDevXMax, p0.X, p1.X)
		p.edgeDevYMin = min(p.edgeDevYMin, p0.Y, p1.Y)
		p.edgeDevYMax = max(p.edgeDevYMax, p0.Y, p1.Y)
	}
}

// bounds returns the bounding box of all edges, clamped to the clip
// rectangle.
func (p *Painter) bounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(p.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(p.edgeDevXMin)), int(p.Clip.LLx))
	xMax = min(int(math.Floor(p.edgeDevXMax))+1, int(p.Clip.URx))
	yMin = max(int(math.Floor(p.edgeDevYMin)), int(p.Clip.LLy))
	yMax = min(int(math.Floor(p.edgeDevYMax))+1, int(p.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// Coverage accumulation model:
//
// For each pixel, we track two values:
//   cover: signed vertical extent of edges crossing this pixel column
//   area:  horizontal position weighting (how far right the crossing is)
//
// Final coverage is computed by integrateScanline:
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]   (carry forward for next pixel)

// accumulateEdge adds a single edge's contribution to the cover and area
// buffers, for scanline y.  The buffers are indexed by (x - bboxXMin).
func accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	// +1 for downward edges, -1 for upward
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xAtYTop := e.x0 + e.dxdy*(yTop-e.y0)
	xAtYBot := e.x0 + e.dxdy*(yBot-e.y0)
	xLeft, xRight := min(xAtYTop, xAtYBot), max(xAtYTop, xAtYBot)
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		accumulateSegment(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// The edge spans several pixel columns: split it at the column
	// boundaries.
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		yAtPixLeft := e.y0 + dydx*(float64(pix)-e.x0)
		yAtPixRight := e.y0 + dydx*(float64(pix+1)-e.x0)
		segYMin := max(min(yAtPixLeft, yAtPixRight), yTop)
		segYMax := min(max(yAtPixLeft, yAtPixRight), yBot)
		if segYMax <= segYMin {
			continue
		}
		accumulateSegment(e, segYMin, segYMax, sign, pix, cover, area, bboxXMin, bboxXMax)
	}
}

// accumulateSegment handles the part of an edge between yTop and yBot,
// which lies within pixel column pix.
func accumulateSegment(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)

	if pix < bboxXMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xMid := e.x0 + e.dxdy*(yMid-e.y0)
	xFrac := xMid - float64(pix)

	idx := pix - bboxXMin
	cover[idx] += coverVal
	area[idx] += coverVal * float32(1-xFrac)
}

// integrateScanline converts accumulated cover/area to final coverage
// values using the nonzero winding rule.  The cover slice is modified in
// place.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero portion of coverage and its starting
// offset.  Returns nil, 0 if coverage is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// fill rasterises the collected edges scanline by scanline, using an
// active edge list.
func (p *Painter) fill(emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := p.bounds()
	if !ok {
		return
	}
	width := xMax - xMin

	p.cover = slices.Grow(p.cover[:0], width)[:width]
	p.area = slices.Grow(p.area[:0], width)[:width]

	slices.SortFunc(p.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	p.activeIdx = p.activeIdx[:0]
	nextEdge := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		// Add edges that start above the end of this scanline
		for nextEdge < len(p.edges) && min(p.edges[nextEdge].y0, p.edges[nextEdge].y1) < yfNext {
			p.activeIdx = append(p.activeIdx, nextEdge)
			nextEdge++
		}
		if len(p.activeIdx) == 0 {
			continue
		}

		clear(p.cover)
		clear(p.area)

		touched := false
		for i := 0; i < len(p.activeIdx); {
			e := &p.edges[p.activeIdx[i]]

			// Remove edges which end above this scanline
			if max(e.y0, e.y1) <= yf {
				p.activeIdx[i] = p.activeIdx[len(p.activeIdx)-1]
				p.activeIdx = p.activeIdx[:len(p.activeIdx)-1]
				continue
			}

			accumulateEdge(e, y, p.cover, p.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrateScanline(p.cover, p.area)
		if trimmed, offset := trimZeros(p.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// horizontalEdgeThreshold is the minimum vertical extent for an edge to
// contribute to coverage.
const horizontalEdgeThreshold = 1e-10
