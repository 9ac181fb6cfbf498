package main

import (
	"errors"
	"testing"
)

func countColor(p *Page, c uint8) int {
	n := 0
	for y := 0; y < SCREEN_HEIGHT; y++ {
		for x := 0; x < SCREEN_WIDTH; x++ {
			if p.Pixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestRasterizer_Rectangle(t *testing.T) {
	v := NewVideoPages(nil)
	r := NewPolygonRasterizer(v)
	if err := r.DrawShape(NewSegment("shape", testRect), 0, COLOR_FROM_SHAPE, DEFAULT_ZOOM, Point{100, 100}); err != nil {
		t.Fatal(err)
	}
	page := v.DrawPage()
	// Bounding box 95..105 x 95..104.
	for _, pt := range []Point{{95, 95}, {105, 95}, {95, 104}, {105, 104}, {100, 100}} {
		if c := page.Pixel(int(pt.X), int(pt.Y)); c != 5 {
			t.Fatalf("expected colour 5 at %v, got %d", pt, c)
		}
	}
	for _, pt := range []Point{{94, 100}, {106, 100}, {100, 94}, {100, 105}} {
		if c := page.Pixel(int(pt.X), int(pt.Y)); c != 0 {
			t.Fatalf("expected background at %v, got %d", pt, c)
		}
	}
	if n := countColor(page, 5); n != 11*10 {
		t.Fatalf("expected 110 pixels, got %d", n)
	}
}

func TestRasterizer_ClipsToPage(t *testing.T) {
	v := NewVideoPages(nil)
	r := NewPolygonRasterizer(v)
	if err := r.DrawShape(NewSegment("shape", testRect), 0, COLOR_FROM_SHAPE, DEFAULT_ZOOM, Point{-2, -2}); err != nil {
		t.Fatal(err)
	}
	if n := countColor(v.DrawPage(), 5); n != 4*3 {
		t.Fatalf("expected clipped 4x3 corner, got %d pixels", n)
	}

	v.DrawPage().Fill(0)
	if err := r.DrawShape(NewSegment("shape", testRect), 0, COLOR_FROM_SHAPE, DEFAULT_ZOOM, Point{400, 100}); err != nil {
		t.Fatal(err)
	}
	if n := countColor(v.DrawPage(), 5); n != 0 {
		t.Fatalf("expected off-screen shape to draw nothing, got %d", n)
	}
}

func TestRasterizer_SinglePixel(t *testing.T) {
	v := NewVideoPages(nil)
	r := NewPolygonRasterizer(v)
	dot := []byte{0xC3, 0, 1, 4, 0, 0, 0, 0, 0, 0, 0, 0}
	if err := r.DrawShape(NewSegment("shape", dot), 0, COLOR_FROM_SHAPE, DEFAULT_ZOOM, Point{7, 8}); err != nil {
		t.Fatal(err)
	}
	if n := countColor(v.DrawPage(), 3); n != 1 || v.DrawPage().Pixel(7, 8) != 3 {
		t.Fatalf("expected a single pixel at (7,8), got %d", n)
	}
}

func TestRasterizer_HorizontalLine(t *testing.T) {
	v := NewVideoPages(nil)
	r := NewPolygonRasterizer(v)
	line := []byte{0xC2, 20, 0, 2, 20, 0, 0, 0}
	if err := r.DrawShape(NewSegment("shape", line), 0, COLOR_FROM_SHAPE, DEFAULT_ZOOM, Point{50, 50}); err != nil {
		t.Fatal(err)
	}
	if n := countColor(v.DrawPage(), 2); n != 21 {
		t.Fatalf("expected a 21 pixel span, got %d", n)
	}
}

func TestRasterizer_BlendAndCopy(t *testing.T) {
	v := NewVideoPages(nil)
	r := NewPolygonRasterizer(v)
	v.DrawPage().Fill(3)
	poly := Polygon{BBW: 10, BBH: 10, Points: []Point{{10, 0}, {10, 10}, {0, 10}, {0, 0}}}

	r.FillPolygon(&poly, COLOR_BLEND, Point{50, 50})
	if c := v.DrawPage().Pixel(50, 50); c != 0xB {
		t.Fatalf("expected blended colour 0xB, got 0x%X", c)
	}

	v.Page(0).Fill(6)
	r.FillPolygon(&poly, COLOR_COPY_PAGE0, Point{150, 50})
	if c := v.DrawPage().Pixel(150, 50); c != 6 {
		t.Fatalf("expected colour copied from page 0, got %d", c)
	}
}

func TestRasterizer_Hierarchy(t *testing.T) {
	// Offset 0: hierarchy with two children. The first uses the shape's
	// own colour, the second overrides it with colour 9.
	data := []byte{
		SHAPE_HIERARCHY, 0, 0, 1,
		0x00, 0x08, 10, 10,
		0x80, 0x08, 60, 10, 9, 0,
	}
	data = append(data, 0, 0) // pad to offset 16
	data = append(data, testRect...)
	v := NewVideoPages(nil)
	r := NewPolygonRasterizer(v)
	if err := r.DrawShape(NewSegment("shape", data), 0, COLOR_FROM_SHAPE, DEFAULT_ZOOM, Point{100, 100}); err != nil {
		t.Fatal(err)
	}
	page := v.DrawPage()
	if c := page.Pixel(110, 110); c != 5 {
		t.Fatalf("expected first child in colour 5, got %d", c)
	}
	if c := page.Pixel(160, 110); c != 9 {
		t.Fatalf("expected second child in colour 9, got %d", c)
	}
}

func TestRasterizer_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"odd vertex count", []byte{0xC1, 4, 4, 3, 0, 0, 0, 0, 0, 0}, ErrBadVertexCount},
		{"fifty vertices", append([]byte{0xC1, 4, 4, MAX_POLY_POINTS}, make([]byte, MAX_POLY_POINTS*2)...), ErrBadVertexCount},
		{"too many vertices", []byte{0xC1, 4, 4, 60}, ErrBadVertexCount},
		{"truncated polygon", []byte{0xC1, 4, 4, 4, 0, 0}, ErrSegmentBounds},
		{"offset past end", nil, ErrSegmentBounds},
		{"self referencing hierarchy", []byte{SHAPE_HIERARCHY, 0, 0, 0, 0x00, 0x00, 0, 0}, ErrHierarchyDepth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVideoPages(nil)
			r := NewPolygonRasterizer(v)
			data := tt.data
			if data == nil {
				data = []byte{0}
			}
			off := 0
			if tt.data == nil {
				off = 4
			}
			err := r.DrawShape(NewSegment("shape", data), off, COLOR_FROM_SHAPE, DEFAULT_ZOOM, Point{50, 50})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRasterizer_UnknownShapeSkipped(t *testing.T) {
	v := NewVideoPages(nil)
	r := NewPolygonRasterizer(v)
	if err := r.DrawShape(NewSegment("shape", []byte{0x05}), 0, COLOR_FROM_SHAPE, DEFAULT_ZOOM, Point{0, 0}); err != nil {
		t.Fatalf("expected unknown shape type to be skipped, got %v", err)
	}
}
