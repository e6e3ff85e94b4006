package docsource

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	lpdf "github.com/ledongthuc/pdf"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/destination"
	pdfoutline "seehuhn.de/go/pdf/outline"

	"seehuhn.de/go/pdfview/outline"
)

func TestGlyphsFromText(t *testing.T) {
	runs := []lpdf.Text{
		{FontSize: 10, X: 100, Y: 700, W: 6, S: "A"},
		{FontSize: 10, X: 106, Y: 700, W: 10, S: "fi"},
		{FontSize: 10, X: 116, Y: 700, W: 0, S: "x"},
		{FontSize: 10, X: 120, Y: 700, W: 3, S: ""},
	}
	glyphs := glyphsFromText(runs)

	if got := glyphs.String(); got != "Afix" {
		t.Fatalf("text %q", got)
	}
	want := []rect.Rect{
		{LLx: 100, LLy: 698, URx: 106, URy: 707},
		{LLx: 106, LLy: 698, URx: 111, URy: 707},
		{LLx: 111, LLy: 698, URx: 116, URy: 707},
		{LLx: 116, LLy: 698, URx: 121, URy: 707},
	}
	for i, g := range glyphs {
		if d := cmp.Diff(want[i], g.Tight, cmp.Comparer(closeTo)); d != "" {
			t.Errorf("glyph %d (-want +got):\n%s", i, d)
		}
		if g.Loose.LLy >= g.Tight.LLy || g.Loose.URy <= g.Tight.URy {
			t.Errorf("glyph %d: loose box %v does not contain tight box %v", i, g.Loose, g.Tight)
		}
	}

	// the glyphs are on one line
	if rects := glyphs.Rects(0, len(glyphs)); len(rects) != 1 {
		t.Errorf("got %d line rectangles", len(rects))
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQuarterTurns(t *testing.T) {
	cases := []struct {
		deg  int64
		want int
	}{
		{0, 0}, {90, 1}, {180, 2}, {270, 3}, {360, 0}, {-90, 3}, {450, 1},
	}
	for _, c := range cases {
		if got := quarterTurns(c.deg); got != c.want {
			t.Errorf("quarterTurns(%d) = %d, want %d", c.deg, got, c.want)
		}
	}
}

// memDoc is a minimal in-memory PDF document.
type memDoc struct {
	meta *pdf.MetaInfo
	objs map[pdf.Reference]pdf.Native
}

func (d *memDoc) GetMeta() *pdf.MetaInfo { return d.meta }

func (d *memDoc) Get(ref pdf.Reference, _ bool) (pdf.Native, error) {
	return d.objs[ref], nil
}

func TestPageGeometry(t *testing.T) {
	root := pdf.NewReference(1, 0)
	p1 := pdf.NewReference(2, 0)
	p2 := pdf.NewReference(3, 0)
	p3 := pdf.NewReference(4, 0)
	doc := &memDoc{
		meta: &pdf.MetaInfo{
			Version: pdf.V1_7,
			Catalog: &pdf.Catalog{Pages: root},
		},
		objs: map[pdf.Reference]pdf.Native{
			root: pdf.Dict{
				"Type":     pdf.Name("Pages"),
				"Kids":     pdf.Array{p1, p2, p3},
				"Count":    pdf.Integer(3),
				"MediaBox": pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(200), pdf.Integer(100)},
				"Rotate":   pdf.Integer(90),
			},
			p1: pdf.Dict{"Type": pdf.Name("Page"), "Parent": root},
			p2: pdf.Dict{
				"Type":     pdf.Name("Page"),
				"Parent":   root,
				"MediaBox": pdf.Array{pdf.Integer(50), pdf.Integer(80), pdf.Integer(10), pdf.Integer(0)},
				"Rotate":   pdf.Integer(-180),
			},
			p3: pdf.Dict{
				"Type":     pdf.Name("Page"),
				"Parent":   root,
				"MediaBox": pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(0), pdf.Integer(0)},
				"Rotate":   pdf.Integer(0),
			},
		},
	}

	cases := []struct {
		page   int
		box    rect.Rect
		rotate int
	}{
		{0, rect.Rect{URx: 200, URy: 100}, 1},        // inherited
		{1, rect.Rect{LLx: 10, URx: 50, URy: 80}, 2}, // normalized
		{2, rect.Rect{URx: 612, URy: 792}, 0},        // empty box
	}
	for _, c := range cases {
		box, rotate, err := PageGeometry(doc, c.page)
		if err != nil {
			t.Errorf("page %d: %v", c.page, err)
			continue
		}
		if box != c.box || rotate != c.rotate {
			t.Errorf("page %d: got %v rotate %d, want %v rotate %d",
				c.page, box, rotate, c.box, c.rotate)
		}
	}

	if _, _, err := PageGeometry(doc, 3); err == nil {
		t.Error("page beyond the end accepted")
	}
}

func TestPageView(t *testing.T) {
	p := &Page{MediaBox: rect.Rect{URx: 200, URy: 100}}
	view := p.View(400, 200)
	x, y := view.PageToDevice(vec.Vec2{X: 200, Y: 100})
	if x != 400 || y != 0 {
		t.Errorf("top right corner maps to (%d, %d)", x, y)
	}
}

func TestItemDest(t *testing.T) {
	ref := pdf.NewReference(7, 0)
	pageNumbers := map[pdf.Reference]int{ref: 3}

	cases := []struct {
		name string
		item *pdfoutline.Item
		want *outline.Dest
	}{
		{
			name: "xyz",
			item: &pdfoutline.Item{Destination: &destination.XYZ{
				Page: ref, Left: 72, Top: 720, Zoom: 2,
			}},
			want: &outline.Dest{Page: 3, X: 72, Y: 720, Zoom: 2},
		},
		{
			name: "xyz unset",
			item: &pdfoutline.Item{Destination: &destination.XYZ{
				Page: ref, Left: math.NaN(), Top: 500, Zoom: 0,
			}},
			want: &outline.Dest{Page: 3, X: -1, Y: 500, Zoom: -1},
		},
		{
			name: "page number",
			item: &pdfoutline.Item{Destination: &destination.XYZ{
				Page: pdf.Integer(5), Left: math.NaN(), Top: math.NaN(), Zoom: math.NaN(),
			}},
			want: &outline.Dest{Page: 5, X: -1, Y: -1, Zoom: -1},
		},
		{
			name: "unknown page",
			item: &pdfoutline.Item{Destination: &destination.XYZ{
				Page: pdf.NewReference(8, 0),
			}},
			want: nil,
		},
		{
			name: "no target",
			item: &pdfoutline.Item{Title: "plain"},
			want: nil,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := itemDest(c.item, pageNumbers)
			if d := cmp.Diff(c.want, got); d != "" {
				t.Errorf("unexpected destination (-want +got):\n%s", d)
			}
		})
	}
}

func TestConvertItems(t *testing.T) {
	ref := pdf.NewReference(1, 0)
	pageNumbers := map[pdf.Reference]int{ref: 0}
	dest := &destination.XYZ{Page: ref, Left: math.NaN(), Top: math.NaN(), Zoom: math.NaN()}

	items := []*pdfoutline.Item{
		{Title: "A", Destination: dest, Children: []*pdfoutline.Item{
			{Title: "B"},
			{Title: "C", Children: []*pdfoutline.Item{{Title: "D"}}},
		}},
		{Title: "E"},
	}
	nodes := outline.FromItems(convertItems(items, pageNumbers))
	entries, err := outline.Flatten[int](nodes)
	if err != nil {
		t.Fatal(err)
	}

	type row struct {
		Title         string
		Level, Parent int
		Page          int
	}
	var got []row
	for _, e := range entries {
		got = append(got, row{e.Title, e.Level, e.Parent, e.Page})
	}
	want := []row{
		{"A", 0, -1, 0},
		{"B", 1, 0, -1},
		{"C", 1, 0, -1},
		{"D", 2, 2, -1},
		{"E", 0, -1, -1},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected entries (-want +got):\n%s", d)
	}
}
