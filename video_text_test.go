package main

import "testing"

type mapStrings map[uint16]string

func (m mapStrings) Lookup(id uint16) (string, bool) {
	s, ok := m[id]
	return s, ok
}

func litIn(p *Page, x0, y0, x1, y1 int, c uint8) int {
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if p.Pixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestTextRenderer_DrawString(t *testing.T) {
	var page Page
	r := NewTextRenderer(mapStrings{1: "A"})
	r.DrawString(&page, 0x1C, 2, 40, 1)
	if n := litIn(&page, 16, 40, 24, 53, 0xC); n == 0 {
		t.Fatal("expected glyph pixels in column 2 with colour masked to 0xC")
	}
	if n := countColor(&page, 0xC); n != litIn(&page, 16, 40, 24, 53, 0xC) {
		t.Fatal("expected glyph confined to its cell")
	}
}

func TestTextRenderer_Newline(t *testing.T) {
	var page Page
	r := NewTextRenderer(mapStrings{1: "I\nI"})
	r.DrawString(&page, 4, 1, 0, 1)
	if litIn(&page, 8, 0, 16, 13, 4) == 0 || litIn(&page, 8, 13, 16, 26, 4) == 0 {
		t.Fatal("expected second line under the first, starting at the same column")
	}
}

func TestTextRenderer_ClipsPastLastColumn(t *testing.T) {
	var page Page
	r := NewTextRenderer(mapStrings{1: "XX"})
	r.DrawString(&page, 4, TEXT_MAX_COLUMN, 0, 1)
	if n := countColor(&page, 4); n == 0 || litIn(&page, 312, 0, 320, 13, 4) != n {
		t.Fatal("expected only the glyph in the last column drawn")
	}
}

func TestTextRenderer_UnknownID(t *testing.T) {
	var page Page
	r := NewTextRenderer(mapStrings{})
	r.DrawString(&page, 4, 0, 0, 99)
	if countColor(&page, 4) != 0 {
		t.Fatal("expected nothing drawn")
	}
}
