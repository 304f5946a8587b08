package dashboard

import (
	"github.com/gdamore/tcell/v2"
)

// region is a rectangle of screen cells that a widget draws into.
type region struct {
	x, y, w, h int
}

// inner returns the region inside a one-cell border.
func (r region) inner() region {
	return region{x: r.x + 1, y: r.y + 1, w: r.w - 2, h: r.h - 2}
}

// splitV divides r into a top region of the given height and the remainder.
func (r region) splitV(top int) (region, region) {
	if top > r.h {
		top = r.h
	}
	return region{r.x, r.y, r.w, top}, region{r.x, r.y + top, r.w, r.h - top}
}

// splitH divides r into a left region of the given width and the remainder.
func (r region) splitH(left int) (region, region) {
	if left > r.w {
		left = r.w
	}
	return region{r.x, r.y, left, r.h}, region{r.x + left, r.y, r.w - left, r.h}
}

// drawText writes s starting at (x, y), clipped to maxW cells.
func drawText(screen tcell.Screen, x, y, maxW int, style tcell.Style, s string) {
	col := x
	for _, r := range s {
		if col-x >= maxW {
			return
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// drawBox draws a rounded border around r with the title embedded in the
// top edge.
func drawBox(screen tcell.Screen, r region, title string) {
	if r.w < 2 || r.h < 2 {
		return
	}
	right := r.x + r.w - 1
	bottom := r.y + r.h - 1

	for x := r.x + 1; x < right; x++ {
		screen.SetContent(x, r.y, tcell.RuneHLine, nil, styleBorder)
		screen.SetContent(x, bottom, tcell.RuneHLine, nil, styleBorder)
	}
	for y := r.y + 1; y < bottom; y++ {
		screen.SetContent(r.x, y, tcell.RuneVLine, nil, styleBorder)
		screen.SetContent(right, y, tcell.RuneVLine, nil, styleBorder)
	}
	screen.SetContent(r.x, r.y, tcell.RuneULCorner, nil, styleBorder)
	screen.SetContent(right, r.y, tcell.RuneURCorner, nil, styleBorder)
	screen.SetContent(r.x, bottom, tcell.RuneLLCorner, nil, styleBorder)
	screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, styleBorder)

	if title != "" && r.w > 4 {
		drawText(screen, r.x+2, r.y, r.w-4, styleTitle, " "+title+" ")
	}
}
