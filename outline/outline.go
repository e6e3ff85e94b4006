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

// Package outline flattens a document outline (the bookmark tree) into an
// ordered list of entries with parent back-references.
//
// The tree is only accessed through first-child and next-sibling
// navigation, so any engine which exposes its outline this way can be
// plugged in via the [Tree] interface.  [Nodes] is an in-memory
// implementation.
package outline

import (
	"errors"
	"strconv"
	"strings"
)

// Dest is the target of an outline item.
// Coordinates which are not specified by the document are set to -1.
type Dest struct {
	Page int // 0-based page index, -1 if unknown
	X, Y float64
	Zoom float64
}

// NoDest is the destination reported for items without a target.
var NoDest = Dest{Page: -1, X: -1, Y: -1, Zoom: -1}

// Entry is one item of a flattened outline.
type Entry struct {
	Title string

	// Page is the 0-based index of the target page, or -1.
	Page int

	// Level is the nesting depth; top-level items have level 0.
	Level int

	// Parent is the index of the parent entry in the same list,
	// or -1 for top-level items.
	Parent int

	// X, Y and Zoom describe the view on the target page.
	// Missing values are -1.
	X, Y, Zoom float64
}

// Tree gives navigation access to an outline.
// N is an opaque handle for an outline item.
type Tree[N comparable] interface {
	// First returns the first top-level item.
	First() (N, bool)

	// FirstChild returns the first child of n.
	FirstChild(n N) (N, bool)

	// NextSibling returns the item following n on the same level.
	NextSibling(n N) (N, bool)

	// Title returns the title of n.  The engine may report an empty title
	// as a string containing only a terminator.
	Title(n N) string

	// Dest returns the target of n, if any.
	Dest(n N) (Dest, bool)
}

// ErrMalformed indicates that the navigation primitives do not describe a
// tree.
var ErrMalformed = errors.New("malformed outline")

// MalformedError is returned by [Flatten] when an item is reached a second
// time.
type MalformedError struct {
	// Index is the number of entries emitted before the loop was detected.
	Index int
}

func (err *MalformedError) Error() string {
	return "malformed outline: loop after entry " + strconv.Itoa(err.Index)
}

func (err *MalformedError) Unwrap() error {
	return ErrMalformed
}

type frame[N comparable] struct {
	node   N
	level  int
	parent int
}

// Flatten lists all items of t in pre-order, depth first, keeping the
// order of siblings.  An empty outline gives an empty (nil) result.
//
// Every item is visited at most once; if the navigation primitives contain
// a loop, a [*MalformedError] is returned.
func Flatten[N comparable](t Tree[N]) ([]Entry, error) {
	root, ok := t.First()
	if !ok {
		return nil, nil
	}

	var res []Entry
	seen := make(map[N]struct{})
	stack := []frame[N]{{node: root, level: 0, parent: -1}}
	for len(stack) > 0 {
		k := len(stack) - 1
		f := stack[k]
		stack = stack[:k]

		if _, dup := seen[f.node]; dup {
			return nil, &MalformedError{Index: len(res)}
		}
		seen[f.node] = struct{}{}

		dest, ok := t.Dest(f.node)
		if !ok {
			dest = NoDest
		}
		res = append(res, Entry{
			Title:  cleanTitle(t.Title(f.node)),
			Page:   dest.Page,
			Level:  f.level,
			Parent: f.parent,
			X:      dest.X,
			Y:      dest.Y,
			Zoom:   dest.Zoom,
		})
		idx := len(res) - 1

		// The sibling goes on the stack first, so that the child is
		// popped next.
		if next, ok := t.NextSibling(f.node); ok {
			stack = append(stack, frame[N]{node: next, level: f.level, parent: f.parent})
		}
		if child, ok := t.FirstChild(f.node); ok {
			stack = append(stack, frame[N]{node: child, level: f.level + 1, parent: idx})
		}
	}
	return res, nil
}

func cleanTitle(s string) string {
	return strings.TrimRight(s, "\x00")
}

// Children returns the indices of the direct children of entry i.
// Use i = -1 to get the top-level entries.
func Children(entries []Entry, i int) []int {
	var res []int
	for j := i + 1; j < len(entries); j++ {
		if entries[j].Parent == i {
			res = append(res, j)
		}
	}
	return res
}
