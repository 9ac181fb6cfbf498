// video_polygon.go - Scanline polygon rasterizer and shape hierarchy walker

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

import "fmt"

const (
	MAX_POLY_POINTS     = 50
	MAX_HIERARCHY_DEPTH = 32

	SHAPE_POLYGON   = 0xC0 // Type byte at or above this introduces a polygon
	SHAPE_HIERARCHY = 0x02

	COLOR_BLEND      = 0x10 // Set bit 3 of the existing pixel
	COLOR_COPY_PAGE0 = 0x11 // Take the pixel from page 0

	FIXED_SHIFT = 16
)

// Point is a screen position in pixels.
type Point struct {
	X, Y int16
}

// Polygon holds vertices relative to the top-left corner of its bounding
// box, already scaled by zoom.
type Polygon struct {
	BBW, BBH int
	Points   []Point
}

// stepTable[dy] is the 16.16 reciprocal used for edge slopes, 0x4000/dy
// pre-scaled by 4.
var stepTable = func() [0x400]int32 {
	var t [0x400]int32
	t[0] = 0x4000
	for i := 1; i < len(t); i++ {
		t[i] = 0x4000 / int32(i)
	}
	return t
}()

// PolygonRasterizer draws shapes into the current draw page.
type PolygonRasterizer struct {
	video  *VideoPages
	points [MAX_POLY_POINTS]Point
	stack  []shapeTask
}

type shapeTask struct {
	offset int
	color  uint8
	zoom   uint16
	pos    Point
	depth  int
}

func NewPolygonRasterizer(video *VideoPages) *PolygonRasterizer {
	return &PolygonRasterizer{video: video, stack: make([]shapeTask, 0, 64)}
}

func scale(v byte, zoom uint16) int {
	return int(v) * int(zoom) / 64
}

// DrawShape draws the shape at offset in seg centred on pos. Hierarchies
// are walked depth first through an explicit work list so malformed data
// cannot exhaust the goroutine stack.
func (r *PolygonRasterizer) DrawShape(seg Segment, offset int, color uint8, zoom uint16, pos Point) error {
	r.stack = append(r.stack[:0], shapeTask{offset: offset, color: color, zoom: zoom, pos: pos})
	for len(r.stack) > 0 {
		t := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]

		c := seg.Cursor(t.offset)
		kind := c.FetchByte()
		if err := c.Err(); err != nil {
			return err
		}

		if kind >= SHAPE_POLYGON {
			col := t.color
			if col&0x80 != 0 {
				col = kind & 0x3F
			}
			poly, err := r.readPolygon(&c, t.zoom)
			if err != nil {
				return err
			}
			r.FillPolygon(&poly, col, t.pos)
			continue
		}

		if kind&0x3F != SHAPE_HIERARCHY {
			videoLog.Warningf("unknown shape type 0x%02X at %s:0x%04X", kind, seg.Name(), t.offset)
			continue
		}
		if t.depth >= MAX_HIERARCHY_DEPTH {
			return fmt.Errorf("%w: %s:0x%04X", ErrHierarchyDepth, seg.Name(), t.offset)
		}
		if err := r.pushChildren(&c, t); err != nil {
			return err
		}
	}
	return nil
}

// pushChildren reads a hierarchy record and queues its children so they
// pop in data order.
func (r *PolygonRasterizer) pushChildren(c *Cursor, t shapeTask) error {
	ax := int(t.pos.X) - scale(c.FetchByte(), t.zoom)
	ay := int(t.pos.Y) - scale(c.FetchByte(), t.zoom)
	count := int(c.FetchByte()) + 1

	base := len(r.stack)
	for i := 0; i < count; i++ {
		off := c.FetchWord()
		px := ax + scale(c.FetchByte(), t.zoom)
		py := ay + scale(c.FetchByte(), t.zoom)
		color := uint8(COLOR_FROM_SHAPE)
		if off&0x8000 != 0 {
			color = c.FetchByte() & 0x7F
			c.Skip(1)
		}
		r.stack = append(r.stack, shapeTask{
			offset: int(off&0x7FFF) * 2,
			color:  color,
			zoom:   t.zoom,
			pos:    Point{X: int16(px), Y: int16(py)},
			depth:  t.depth + 1,
		})
	}
	if err := c.Err(); err != nil {
		r.stack = r.stack[:base]
		return err
	}
	children := r.stack[base:]
	for i, j := 0, len(children)-1; i < j; i, j = i+1, j-1 {
		children[i], children[j] = children[j], children[i]
	}
	return nil
}

func (r *PolygonRasterizer) readPolygon(c *Cursor, zoom uint16) (Polygon, error) {
	bbw := scale(c.FetchByte(), zoom)
	bbh := scale(c.FetchByte(), zoom)
	n := int(c.FetchByte())
	if err := c.Err(); err != nil {
		return Polygon{}, err
	}
	if n&1 != 0 || n >= MAX_POLY_POINTS {
		return Polygon{}, fmt.Errorf("%w: %d at offset 0x%04X", ErrBadVertexCount, n, c.Pos()-1)
	}
	for i := 0; i < n; i++ {
		x := scale(c.FetchByte(), zoom)
		y := scale(c.FetchByte(), zoom)
		r.points[i] = Point{X: int16(x), Y: int16(y)}
	}
	if err := c.Err(); err != nil {
		return Polygon{}, err
	}
	return Polygon{BBW: bbw, BBH: bbh, Points: r.points[:n]}, nil
}

// FillPolygon scan converts poly centred on pos into the draw page. The
// vertex list runs clockwise from the top: the right edge walks forward
// from the first point, the left edge backward from the last.
func (r *PolygonRasterizer) FillPolygon(poly *Polygon, color uint8, pos Point) {
	px, py := int(pos.X), int(pos.Y)
	pts := poly.Points
	n := len(pts)

	if poly.BBW == 0 && poly.BBH <= 1 && n > 0 {
		r.plot(px, py, color)
		return
	}

	x1, x2 := px-poly.BBW/2, px+poly.BBW/2
	y1, y2 := py-poly.BBH/2, py+poly.BBH/2
	if x1 >= SCREEN_WIDTH || x2 < 0 || y1 >= SCREEN_HEIGHT || y2 < 0 {
		return
	}

	switch n {
	case 0:
		return
	case 2:
		y := y1 + int(pts[0].Y)
		if y >= 0 && y < SCREEN_HEIGHT {
			r.span(y, x1+int(pts[0].X), x1+int(pts[1].X), color)
		}
		return
	}

	i, j := 0, n-1
	right := (x1 + int(pts[i].X)) << FIXED_SHIFT
	left := (x1 + int(pts[j].X)) << FIXED_SHIFT
	i++
	j--
	y := y1

	for remaining := n - 2; remaining > 0; remaining -= 2 {
		_, stepL := edgeStep(pts[j+1], pts[j])
		h, stepR := edgeStep(pts[i-1], pts[i])
		i++
		j--

		left = left&^0xFFFF | 0x7FFF
		right = right&^0xFFFF | 0x8000

		if h == 0 {
			left += stepL
			right += stepR
			continue
		}
		for ; h > 0; h-- {
			if y >= 0 {
				r.span(y, left>>FIXED_SHIFT, right>>FIXED_SHIFT, color)
			}
			left += stepL
			right += stepR
			y++
			if y >= SCREEN_HEIGHT {
				return
			}
		}
	}
}

// edgeStep returns the row count and 16.16 x increment from a to b.
func edgeStep(a, b Point) (int, int) {
	dy := int(b.Y) - int(a.Y)
	if dy < 0 {
		dy = 0
	}
	if dy >= len(stepTable) {
		dy = len(stepTable) - 1
	}
	dx := int(b.X) - int(a.X)
	return dy, dx * int(stepTable[dy]) * 4
}

// span fills row y between xa and xb inclusive, clipped to the page.
func (r *PolygonRasterizer) span(y, xa, xb int, color uint8) {
	if xa > xb {
		xa, xb = xb, xa
	}
	if xa >= SCREEN_WIDTH || xb < 0 {
		return
	}
	if xa < 0 {
		xa = 0
	}
	if xb >= SCREEN_WIDTH {
		xb = SCREEN_WIDTH - 1
	}
	page := r.video.DrawPage()
	switch {
	case color < COLOR_BLEND:
		for x := xa; x <= xb; x++ {
			page.SetPixel(x, y, color)
		}
	case color == COLOR_BLEND:
		for x := xa; x <= xb; x++ {
			page.SetPixel(x, y, page.Pixel(x, y)|0x08)
		}
	default:
		src := r.video.Page(0)
		for x := xa; x <= xb; x++ {
			page.SetPixel(x, y, src.Pixel(x, y))
		}
	}
}

func (r *PolygonRasterizer) plot(x, y int, color uint8) {
	if x < 0 || x >= SCREEN_WIDTH || y < 0 || y >= SCREEN_HEIGHT {
		return
	}
	r.span(y, x, x, color)
}
