package ui

// rect is a screen area in cells.
type rect struct {
	x, y, w, h int
}

// inner is r without its one-cell border.
func (r rect) inner() rect {
	in := rect{x: r.x + 1, y: r.y + 1, w: r.w - 2, h: r.h - 2}
	if in.w < 0 {
		in.w = 0
	}
	if in.h < 0 {
		in.h = 0
	}
	return in
}

// splitH cuts r into a left part of pct percent and the remainder.
func (r rect) splitH(pct int) (left, right rect) {
	lw := r.w * pct / 100
	return rect{r.x, r.y, lw, r.h}, rect{r.x + lw, r.y, r.w - lw, r.h}
}

// splitV cuts r into a top part of pct percent and the remainder.
func (r rect) splitV(pct int) (top, bottom rect) {
	th := r.h * pct / 100
	return rect{r.x, r.y, r.w, th}, rect{r.x, r.y + th, r.w, r.h - th}
}

// centered returns a pctW x pctH area centered in r.
func (r rect) centered(pctW, pctH int) rect {
	w := r.w * pctW / 100
	h := r.h * pctH / 100
	return rect{x: r.x + (r.w-w)/2, y: r.y + (r.h-h)/2, w: w, h: h}
}
