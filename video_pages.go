// video_pages.go - Four 4bpp video pages with draw/front/back aliases

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

import "image"

const (
	SCREEN_WIDTH  = 320
	SCREEN_HEIGHT = 200
	PAGE_PITCH    = SCREEN_WIDTH / 2 // Two pixels per byte, even x in the high nibble
	PAGE_SIZE     = PAGE_PITCH * SCREEN_HEIGHT
	NUM_PAGES     = 4

	PAGE_ALIAS_FRONT = 0xFE
	PAGE_ALIAS_BACK  = 0xFF

	MAX_SCROLL = SCREEN_HEIGHT - 1

	// Planar bitmap layout
	BITMAP_PLANE_SIZE = 8000
	BITMAP_ROW_BYTES  = 40
)

// Page is a packed 320x200 4bpp framebuffer.
type Page struct {
	Data [PAGE_SIZE]byte
}

func (p *Page) Pixel(x, y int) uint8 {
	b := p.Data[y*PAGE_PITCH+x>>1]
	if x&1 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

func (p *Page) SetPixel(x, y int, c uint8) {
	i := y*PAGE_PITCH + x>>1
	if x&1 == 0 {
		p.Data[i] = p.Data[i]&0x0F | c<<4
	} else {
		p.Data[i] = p.Data[i]&0xF0 | c&0x0F
	}
}

func (p *Page) Fill(c uint8) {
	v := (c & 0x0F) * 0x11
	for i := range p.Data {
		p.Data[i] = v
	}
}

// Image renders the page through pal as a paletted image.
func (p *Page) Image(pal *Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, SCREEN_WIDTH, SCREEN_HEIGHT), pal.ColorModel())
	p.ExpandIndices(img.Pix)
	return img
}

// ExpandIndices writes one colour index per pixel into dst.
func (p *Page) ExpandIndices(dst []uint8) {
	for i, b := range p.Data {
		dst[i*2] = b >> 4
		dst[i*2+1] = b & 0x0F
	}
}

// RGBA converts the page through pal into dst, four bytes per pixel.
func (p *Page) RGBA(pal *Palette, dst []byte) {
	for i, b := range p.Data {
		hi, lo := pal[b>>4], pal[b&0x0F]
		o := i * 8
		dst[o], dst[o+1], dst[o+2], dst[o+3] = hi.R, hi.G, hi.B, 0xFF
		dst[o+4], dst[o+5], dst[o+6], dst[o+7] = lo.R, lo.G, lo.B, 0xFF
	}
}

// Display receives presented pages.
type Display interface {
	SetPalette(p *Palette)
	Present(page *Page)
}

// VideoPages owns the page set and the three page aliases.
type VideoPages struct {
	pages [NUM_PAGES]Page

	drawPage  int // Target of drawing operations
	frontPage int // Displayed page, alias 0xFE
	backPage  int // Alias 0xFF

	requestedPalette *Palette
	currentPalette   Palette

	display     Display
	presentHook func(page *Page)
}

func NewVideoPages(display Display) *VideoPages {
	v := &VideoPages{display: display, currentPalette: DefaultPalette()}
	v.Reset()
	return v
}

// Reset restores the power-on page aliases and clears every page.
func (v *VideoPages) Reset() {
	for i := range v.pages {
		v.pages[i].Fill(0)
	}
	v.frontPage = 2
	v.drawPage = 2
	v.backPage = 1
	v.requestedPalette = nil
}

// SetPresentHook registers fn to observe every presented page.
func (v *VideoPages) SetPresentHook(fn func(page *Page)) {
	v.presentHook = fn
}

// ResolvePage maps a page id or alias to a page index. Unknown ids fall
// back to page 0.
func (v *VideoPages) ResolvePage(id uint8) int {
	switch {
	case id <= 3:
		return int(id)
	case id == PAGE_ALIAS_FRONT:
		return v.frontPage
	case id == PAGE_ALIAS_BACK:
		return v.backPage
	}
	videoLog.Warningf("invalid page id 0x%02X, using page 0", id)
	return 0
}

func (v *VideoPages) Page(i int) *Page { return &v.pages[i] }
func (v *VideoPages) DrawPage() *Page { return &v.pages[v.drawPage] }
func (v *VideoPages) DrawPageIndex() int { return v.drawPage }
func (v *VideoPages) FrontPageIndex() int { return v.frontPage }
func (v *VideoPages) BackPageIndex() int { return v.backPage }
func (v *VideoPages) CurrentPalette() Palette { return v.currentPalette }

func (v *VideoPages) SelectDrawPage(id uint8) {
	v.drawPage = v.ResolvePage(id)
}

func (v *VideoPages) FillPage(id, color uint8) {
	v.pages[v.ResolvePage(id)].Fill(color)
}

// CopyPage copies src onto dst. A src id with bit 7 set (other than the
// aliases) selects page src&3 shifted vertically by vscroll rows.
func (v *VideoPages) CopyPage(src, dst uint8, vscroll int16) {
	if src == dst {
		return
	}
	if src < PAGE_ALIAS_FRONT {
		src &= 0xBF
		if src&0x80 != 0 {
			v.copyScrolled(src&3, dst, vscroll)
			return
		}
	}
	s, d := v.ResolvePage(src), v.ResolvePage(dst)
	if s != d {
		v.pages[d].Data = v.pages[s].Data
	}
}

func (v *VideoPages) copyScrolled(src, dst uint8, vscroll int16) {
	if vscroll < -MAX_SCROLL || vscroll > MAX_SCROLL {
		return
	}
	s := &v.pages[v.ResolvePage(src)]
	d := &v.pages[v.ResolvePage(dst)]
	h := SCREEN_HEIGHT
	so, do := 0, 0
	if vscroll < 0 {
		h += int(vscroll)
		so = -int(vscroll) * PAGE_PITCH
	} else {
		h -= int(vscroll)
		do = int(vscroll) * PAGE_PITCH
	}
	copy(d.Data[do:do+h*PAGE_PITCH], s.Data[so:so+h*PAGE_PITCH])
}

// RequestPalette queues p for the next present.
func (v *VideoPages) RequestPalette(p Palette) {
	v.requestedPalette = &p
}

// UpdateDisplay presents a page. 0xFE re-presents the front page, 0xFF
// swaps front and back, any other id becomes the front page.
func (v *VideoPages) UpdateDisplay(id uint8) {
	if id != PAGE_ALIAS_FRONT {
		if id == PAGE_ALIAS_BACK {
			v.frontPage, v.backPage = v.backPage, v.frontPage
		} else {
			v.frontPage = v.ResolvePage(id)
		}
	}
	if v.requestedPalette != nil {
		v.currentPalette = *v.requestedPalette
		v.requestedPalette = nil
		if v.display != nil {
			v.display.SetPalette(&v.currentPalette)
		}
	}
	page := &v.pages[v.frontPage]
	if v.display != nil {
		v.display.Present(page)
	}
	if v.presentHook != nil {
		v.presentHook(page)
	}
}

// LoadPlanarBitmap decodes a four plane 320x200 bitmap into page 0. Each
// row holds 40 bytes per plane; planes are stored 8000 bytes apart with
// plane 3 carrying the most significant colour bit.
func (v *VideoPages) LoadPlanarBitmap(src []byte) {
	if len(src) < BITMAP_PLANE_SIZE*4 {
		videoLog.Warningf("bitmap too short: %d bytes", len(src))
		return
	}
	dst := &v.pages[0]
	o := 0
	for y := 0; y < SCREEN_HEIGHT; y++ {
		for x := 0; x < BITMAP_ROW_BYTES; x++ {
			i := y*BITMAP_ROW_BYTES + x
			planes := [4]byte{
				src[i+BITMAP_PLANE_SIZE*3],
				src[i+BITMAP_PLANE_SIZE*2],
				src[i+BITMAP_PLANE_SIZE*1],
				src[i],
			}
			for k := 0; k < 4; k++ {
				var acc byte
				for b := 0; b < 8; b++ {
					acc <<= 1
					p := &planes[b&3]
					acc |= *p >> 7
					*p <<= 1
				}
				dst.Data[o] = acc
				o++
			}
		}
	}
}
