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

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlattenExample(t *testing.T) {
	items := []*Item{
		{
			Title: "A",
			Dest:  &Dest{Page: 0, X: 10, Y: 700, Zoom: -1},
			Children: []*Item{
				{Title: "B"},
				{
					Title:    "C",
					Dest:     &Dest{Page: 3, X: -1, Y: 500, Zoom: 2},
					Children: []*Item{{Title: "D"}},
				},
			},
		},
	}

	got, err := Flatten(FromItems(items))
	if err != nil {
		t.Fatal(err)
	}

	want := []Entry{
		{Title: "A", Page: 0, Level: 0, Parent: -1, X: 10, Y: 700, Zoom: -1},
		{Title: "B", Page: -1, Level: 1, Parent: 0, X: -1, Y: -1, Zoom: -1},
		{Title: "C", Page: 3, Level: 1, Parent: 0, X: -1, Y: 500, Zoom: 2},
		{Title: "D", Page: -1, Level: 2, Parent: 2, X: -1, Y: -1, Zoom: -1},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
}

func TestFlattenEmpty(t *testing.T) {
	got, err := Flatten(Nodes(nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d entries", len(got))
	}
}

func TestFlattenTitle(t *testing.T) {
	nodes := Nodes{
		{Title: "\x00", FirstChild: -1, Next: 1},
		{Title: "", FirstChild: -1, Next: 2},
		{Title: "Intro\x00", FirstChild: -1, Next: -1},
	}
	got, err := Flatten(nodes)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"", "", "Intro"} {
		if got[i].Title != want {
			t.Errorf("%d: got title %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestFlattenLoop(t *testing.T) {
	cases := []struct {
		name  string
		nodes Nodes
	}{
		{"self sibling", Nodes{{Title: "A", FirstChild: -1, Next: 0}}},
		{"self child", Nodes{{Title: "A", FirstChild: 0, Next: -1}}},
		{"back edge", Nodes{
			{Title: "A", FirstChild: 1, Next: -1},
			{Title: "B", FirstChild: -1, Next: 2},
			{Title: "C", FirstChild: 0, Next: -1},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Flatten(c.nodes)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			var mErr *MalformedError
			if !errors.As(err, &mErr) {
				t.Fatalf("expected *MalformedError, got %T", err)
			}
		})
	}
}

func TestFlattenDeep(t *testing.T) {
	const depth = 100_000

	root := &Item{Title: "0"}
	cur := root
	for i := 1; i < depth; i++ {
		child := &Item{Title: strconv.Itoa(i)}
		cur.Children = []*Item{child}
		cur = child
	}

	got, err := Flatten(FromItems([]*Item{root}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != depth {
		t.Fatalf("got %d entries, want %d", len(got), depth)
	}
	last := got[depth-1]
	if last.Level != depth-1 || last.Parent != depth-2 {
		t.Errorf("last entry: level %d, parent %d", last.Level, last.Parent)
	}
}

// randomItems generates a random forest with n items in total.
func randomItems(rng *rand.Rand, n int) []*Item {
	var all []*Item
	var roots []*Item
	for i := range n {
		item := &Item{Title: strconv.Itoa(i)}
		if len(all) == 0 || rng.IntN(4) == 0 {
			roots = append(roots, item)
		} else {
			parent := all[rng.IntN(len(all))]
			parent.Children = append(parent.Children, item)
		}
		all = append(all, item)
	}
	return roots
}

// preorder lists the titles of a forest in pre-order, recursively.
func preorder(items []*Item, res []string) []string {
	for _, item := range items {
		res = append(res, item.Title)
		res = preorder(item.Children, res)
	}
	return res
}

func TestFlattenInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := range 50 {
		items := randomItems(rng, 1+rng.IntN(200))

		got, err := Flatten(FromItems(items))
		if err != nil {
			t.Fatal(err)
		}

		var titles []string
		for i, e := range got {
			titles = append(titles, e.Title)

			if e.Parent == -1 {
				if e.Level != 0 {
					t.Errorf("%d/%d: root entry has level %d", trial, i, e.Level)
				}
				continue
			}
			if e.Parent >= i {
				t.Errorf("%d/%d: parent index %d not before entry", trial, i, e.Parent)
				continue
			}
			if e.Level != got[e.Parent].Level+1 {
				t.Errorf("%d/%d: level %d, parent level %d",
					trial, i, e.Level, got[e.Parent].Level)
			}
		}

		if d := cmp.Diff(preorder(items, nil), titles); d != "" {
			t.Errorf("%d: order differs from pre-order traversal (-want +got):\n%s", trial, d)
		}
	}
}

func TestChildren(t *testing.T) {
	entries := []Entry{
		{Title: "A", Parent: -1},
		{Title: "B", Parent: 0, Level: 1},
		{Title: "C", Parent: 0, Level: 1},
		{Title: "D", Parent: 2, Level: 2},
		{Title: "E", Parent: -1},
	}
	if d := cmp.Diff([]int{0, 4}, Children(entries, -1)); d != "" {
		t.Errorf("top level (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int{1, 2}, Children(entries, 0)); d != "" {
		t.Errorf("children of A (-want +got):\n%s", d)
	}
	if got := Children(entries, 1); got != nil {
		t.Errorf("B has children %v", got)
	}
}
