// video_palette.go - 16 colour palettes decoded from 12-bit resource records

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image/color"
)

const PALETTE_COLORS = 16

// Palette maps the 16 page colour indices to RGBA.
type Palette [PALETTE_COLORS]color.RGBA

// DecodePalette expands a 32 byte record of 12-bit colours. Each entry is
// two bytes: the low nibble of the first holds red, the second holds green
// and blue.
func DecodePalette(data []byte) (Palette, error) {
	var p Palette
	if len(data) < PALETTE_SIZE {
		return p, fmt.Errorf("palette record is %d bytes, need %d", len(data), PALETTE_SIZE)
	}
	for i := range p {
		c1, c2 := data[i*2], data[i*2+1]
		p[i] = color.RGBA{
			R: (c1 & 0x0F) * 0x11,
			G: (c2 >> 4) * 0x11,
			B: (c2 & 0x0F) * 0x11,
			A: 0xFF,
		}
	}
	return p, nil
}

// DefaultPalette is a grey ramp used until a script installs its own.
func DefaultPalette() Palette {
	var p Palette
	for i := range p {
		v := uint8(i) * 0x11
		p[i] = color.RGBA{R: v, G: v, B: v, A: 0xFF}
	}
	return p
}

// ColorModel returns the palette as an image/color palette.
func (p *Palette) ColorModel() color.Palette {
	cp := make(color.Palette, PALETTE_COLORS)
	for i, c := range p {
		cp[i] = c
	}
	return cp
}
