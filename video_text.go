// video_text.go - Bitmap font text rendering into video pages

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
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	TEXT_CELL_WIDTH = 8
	TEXT_MAX_COLUMN = SCREEN_WIDTH/TEXT_CELL_WIDTH - 1
)

// TextRenderer draws message table strings with a fixed width bitmap face.
type TextRenderer struct {
	face    font.Face
	strings StringTable
	ascent  int
	height  int
}

func NewTextRenderer(strings StringTable) *TextRenderer {
	face := basicfont.Face7x13
	m := face.Metrics()
	return &TextRenderer{
		face:    face,
		strings: strings,
		ascent:  m.Ascent.Ceil(),
		height:  m.Height.Ceil(),
	}
}

// DrawString renders message id at character column col and pixel row y.
// A newline returns to col on the next text line.
func (t *TextRenderer) DrawString(page *Page, color uint8, col, y uint8, id uint16) {
	if t.strings == nil {
		return
	}
	s, ok := t.strings.Lookup(id)
	if !ok {
		videoLog.Warningf("string id 0x%03X not found", id)
		return
	}
	videoLog.Debugf("drawString 0x%03X at (%d,%d): %q", id, col, y, s)

	x, row := int(col), int(y)
	for _, r := range s {
		if r == '\n' {
			x = int(col)
			row += t.height
			continue
		}
		if x <= TEXT_MAX_COLUMN {
			t.drawGlyph(page, r, x*TEXT_CELL_WIDTH, row, color)
		}
		x++
	}
}

func (t *TextRenderer) drawGlyph(page *Page, r rune, x, y int, color uint8) {
	dot := fixed.P(x, y+t.ascent)
	dr, mask, mp, _, ok := t.face.Glyph(dot, r)
	if !ok {
		return
	}
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		if py < 0 || py >= SCREEN_HEIGHT {
			continue
		}
		for px := dr.Min.X; px < dr.Max.X; px++ {
			if px < 0 || px >= SCREEN_WIDTH {
				continue
			}
			_, _, _, a := mask.At(mp.X+px-dr.Min.X, mp.Y+py-dr.Min.Y).RGBA()
			if a >= 0x8000 {
				page.SetPixel(px, py, color&0x0F)
			}
		}
	}
}
