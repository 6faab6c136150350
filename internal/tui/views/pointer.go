package views

// rect is a region of the view in cells, origin at the view's top-left.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// pointerScope listens for presses outside an open popup. It is opened when
// a popup appears and released when the popup goes away, so no press
// handling outlives the popup.
type pointerScope struct {
	active bool
	region rect
}

func (p *pointerScope) open(r rect) {
	p.active = true
	p.region = r
}

func (p *pointerScope) release() {
	p.active = false
	p.region = rect{}
}

// outside reports whether a press at x, y should dismiss the popup.
func (p pointerScope) outside(x, y int) bool {
	return p.active && !p.region.contains(x, y)
}
