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

package outline

// Item is a node of an outline given as an explicit tree.
type Item struct {
	Title    string
	Dest     *Dest // nil if the item has no target
	Children []*Item
}

// Node is one element of a [Nodes] outline.
// FirstChild and Next are indices into the same slice, or -1.
type Node struct {
	Title      string
	Dest       *Dest
	FirstChild int
	Next       int
}

// Nodes is an in-memory outline.  If the slice is non-empty, element 0
// is the first top-level item.
//
// Nodes implements the [Tree] interface, with node handles being indices
// into the slice.
type Nodes []Node

// FromItems converts an explicit tree into a [Nodes] outline.
// The items are laid out in pre-order.
func FromItems(items []*Item) Nodes {
	if len(items) == 0 {
		return nil
	}

	type todo struct {
		items []*Item
		prev  int // index of the previous sibling, or of the parent if first
		child bool
	}

	var res Nodes
	stack := []todo{{items: items, prev: -1}}
	for len(stack) > 0 {
		k := len(stack) - 1
		t := stack[k]
		stack = stack[:k]

		item := t.items[0]
		idx := len(res)
		res = append(res, Node{
			Title:      item.Title,
			Dest:       item.Dest,
			FirstChild: -1,
			Next:       -1,
		})
		if t.prev >= 0 {
			if t.child {
				res[t.prev].FirstChild = idx
			} else {
				res[t.prev].Next = idx
			}
		}

		if len(t.items) > 1 {
			stack = append(stack, todo{items: t.items[1:], prev: idx})
		}
		if len(item.Children) > 0 {
			stack = append(stack, todo{items: item.Children, prev: idx, child: true})
		}
	}
	return res
}

// First implements the [Tree] interface.
func (n Nodes) First() (int, bool) {
	return 0, len(n) > 0
}

// FirstChild implements the [Tree] interface.
func (n Nodes) FirstChild(i int) (int, bool) {
	return n.link(n[i].FirstChild)
}

// NextSibling implements the [Tree] interface.
func (n Nodes) NextSibling(i int) (int, bool) {
	return n.link(n[i].Next)
}

// Title implements the [Tree] interface.
func (n Nodes) Title(i int) string {
	return n[i].Title
}

// Dest implements the [Tree] interface.
func (n Nodes) Dest(i int) (Dest, bool) {
	if n[i].Dest == nil {
		return Dest{}, false
	}
	return *n[i].Dest, true
}

func (n Nodes) link(j int) (int, bool) {
	if j < 0 || j >= len(n) {
		return 0, false
	}
	return j, true
}
