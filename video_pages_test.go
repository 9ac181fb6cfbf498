package main

import "testing"

type recordingDisplay struct {
	palettes []Palette
	presents []*Page
}

func (d *recordingDisplay) SetPalette(p *Palette) { d.palettes = append(d.palettes, *p) }
func (d *recordingDisplay) Present(page *Page) { d.presents = append(d.presents, page) }

func TestPage_PackedPixels(t *testing.T) {
	var p Page
	p.SetPixel(0, 0, 0xA)
	p.SetPixel(1, 0, 0x5)
	if p.Data[0] != 0xA5 {
		t.Fatalf("expected even pixel in the high nibble (0xA5), got 0x%02X", p.Data[0])
	}
	p.SetPixel(1, 0, 0x3)
	if p.Pixel(0, 0) != 0xA || p.Pixel(1, 0) != 0x3 {
		t.Fatalf("expected neighbour untouched, got %X %X", p.Pixel(0, 0), p.Pixel(1, 0))
	}
	p.SetPixel(319, 199, 0xF)
	if p.Data[PAGE_SIZE-1] != 0x0F {
		t.Fatalf("expected last pixel in last byte, got 0x%02X", p.Data[PAGE_SIZE-1])
	}
}

func TestPage_FillAndRGBA(t *testing.T) {
	var p Page
	p.Fill(0x17)
	if p.Pixel(10, 10) != 7 {
		t.Fatalf("expected fill colour masked to 7, got %d", p.Pixel(10, 10))
	}
	pal := DefaultPalette()
	buf := make([]byte, SCREEN_WIDTH*SCREEN_HEIGHT*4)
	p.RGBA(&pal, buf)
	if buf[0] != 0x77 || buf[3] != 0xFF {
		t.Fatalf("expected grey 0x77 opaque, got % X", buf[:4])
	}
	img := p.Image(&pal)
	if img.ColorIndexAt(5, 5) != 7 {
		t.Fatalf("expected index 7, got %d", img.ColorIndexAt(5, 5))
	}
}

func TestVideoPages_ResetAliases(t *testing.T) {
	v := NewVideoPages(nil)
	if v.DrawPageIndex() != 2 || v.FrontPageIndex() != 2 || v.BackPageIndex() != 1 {
		t.Fatalf("expected draw=2 front=2 back=1, got %d %d %d", v.DrawPageIndex(), v.FrontPageIndex(), v.BackPageIndex())
	}
}

func TestVideoPages_ResolvePage(t *testing.T) {
	v := NewVideoPages(nil)
	tests := []struct {
		id   uint8
		want int
	}{
		{0, 0}, {3, 3}, {PAGE_ALIAS_FRONT, 2}, {PAGE_ALIAS_BACK, 1}, {0x40, 0},
	}
	for _, tt := range tests {
		if got := v.ResolvePage(tt.id); got != tt.want {
			t.Fatalf("ResolvePage(0x%02X): expected %d, got %d", tt.id, tt.want, got)
		}
	}
}

func TestVideoPages_UpdateDisplay(t *testing.T) {
	d := &recordingDisplay{}
	v := NewVideoPages(d)
	var hooked int
	v.SetPresentHook(func(*Page) { hooked++ })

	v.UpdateDisplay(PAGE_ALIAS_BACK)
	if v.FrontPageIndex() != 1 || v.BackPageIndex() != 2 {
		t.Fatalf("expected swap to front=1 back=2, got %d %d", v.FrontPageIndex(), v.BackPageIndex())
	}
	v.UpdateDisplay(PAGE_ALIAS_FRONT)
	if v.FrontPageIndex() != 1 {
		t.Fatalf("expected 0xFE to keep front page, got %d", v.FrontPageIndex())
	}
	v.UpdateDisplay(3)
	if v.FrontPageIndex() != 3 {
		t.Fatalf("expected explicit page to become front, got %d", v.FrontPageIndex())
	}
	if len(d.presents) != 3 || hooked != 3 {
		t.Fatalf("expected 3 presents, got %d (hook %d)", len(d.presents), hooked)
	}
	if d.presents[2] != v.Page(3) {
		t.Fatal("expected page 3 presented")
	}
}

func TestVideoPages_PaletteWaitsForPresent(t *testing.T) {
	d := &recordingDisplay{}
	v := NewVideoPages(d)
	var pal Palette
	pal[1].R = 0xFF
	v.RequestPalette(pal)
	if len(d.palettes) != 0 {
		t.Fatal("expected palette deferred")
	}
	v.UpdateDisplay(PAGE_ALIAS_FRONT)
	if len(d.palettes) != 1 || d.palettes[0][1].R != 0xFF {
		t.Fatalf("expected palette applied on present, got %v", d.palettes)
	}
	if v.CurrentPalette()[1].R != 0xFF {
		t.Fatal("expected current palette updated")
	}
	v.UpdateDisplay(PAGE_ALIAS_FRONT)
	if len(d.palettes) != 1 {
		t.Fatal("expected palette applied once")
	}
}

func TestVideoPages_CopyPage(t *testing.T) {
	v := NewVideoPages(nil)
	v.Page(0).SetPixel(4, 0, 9)
	v.Page(0).SetPixel(4, 199, 6)

	v.CopyPage(0, 3, 0)
	if v.Page(3).Pixel(4, 0) != 9 {
		t.Fatal("expected plain copy")
	}

	v.CopyPage(0x80, 1, 10)
	if v.Page(1).Pixel(4, 10) != 9 {
		t.Fatalf("expected row 0 scrolled to row 10, got %d", v.Page(1).Pixel(4, 10))
	}

	v.FillPage(2, 0)
	v.CopyPage(0xC0, 2, -199)
	if v.Page(2).Pixel(4, 0) != 6 {
		t.Fatalf("expected bit 6 ignored and last row scrolled to the top, got %d", v.Page(2).Pixel(4, 0))
	}

	v.FillPage(1, 0)
	v.CopyPage(0x80, 1, 200)
	if v.Page(1).Pixel(4, 0) != 0 {
		t.Fatal("expected out of range scroll to copy nothing")
	}
}

func TestVideoPages_CopyPageAliases(t *testing.T) {
	v := NewVideoPages(nil)
	v.Page(2).Fill(4)
	v.CopyPage(PAGE_ALIAS_FRONT, PAGE_ALIAS_BACK, 50)
	if v.Page(1).Pixel(0, 0) != 4 {
		t.Fatal("expected alias copy to ignore scrolling")
	}
}

func TestVideoPages_LoadPlanarBitmap(t *testing.T) {
	v := NewVideoPages(nil)
	src := make([]byte, BITMAP_PLANE_SIZE*4)
	// Pixel 0: planes 0 and 3 set -> colour 9. Pixel 1: plane 1 -> colour 2.
	src[0] = 0x80
	src[BITMAP_PLANE_SIZE*3] = 0x80
	src[BITMAP_PLANE_SIZE] = 0x40
	v.LoadPlanarBitmap(src)
	if got := v.Page(0).Pixel(0, 0); got != 9 {
		t.Fatalf("expected colour 9, got %d", got)
	}
	if got := v.Page(0).Pixel(1, 0); got != 2 {
		t.Fatalf("expected colour 2, got %d", got)
	}
	if got := v.Page(0).Pixel(2, 0); got != 0 {
		t.Fatalf("expected colour 0, got %d", got)
	}
}
