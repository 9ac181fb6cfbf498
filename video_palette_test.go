package main

import (
	"image/color"
	"testing"
)

func TestDecodePalette(t *testing.T) {
	data := make([]byte, PALETTE_SIZE)
	data[0], data[1] = 0x0F, 0x00 // red
	data[2], data[3] = 0x00, 0xF0 // green
	data[4], data[5] = 0xF0, 0x0F // blue, high nibble of the first byte ignored
	data[30], data[31] = 0x08, 0x4C
	p, err := DecodePalette(data)
	if err != nil {
		t.Fatal(err)
	}
	want := map[int]color.RGBA{
		0:  {0xFF, 0, 0, 0xFF},
		1:  {0, 0xFF, 0, 0xFF},
		2:  {0, 0, 0xFF, 0xFF},
		15: {0x88, 0x44, 0xCC, 0xFF},
	}
	for i, w := range want {
		if p[i] != w {
			t.Fatalf("colour %d: expected %v, got %v", i, w, p[i])
		}
	}
}

func TestDecodePalette_Short(t *testing.T) {
	if _, err := DecodePalette(make([]byte, 31)); err == nil {
		t.Fatal("expected error for a short record")
	}
}

func TestPalette_ColorModel(t *testing.T) {
	p := DefaultPalette()
	cm := p.ColorModel()
	if len(cm) != PALETTE_COLORS {
		t.Fatalf("expected %d colours, got %d", PALETTE_COLORS, len(cm))
	}
	if cm.Index(color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) != 15 {
		t.Fatal("expected white at index 15")
	}
}
