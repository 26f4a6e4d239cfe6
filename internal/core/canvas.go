package core

import "math"

// Paint selects how filled shapes appear on a character screen: the glyph
// stands in for a fill pattern, the color for the fill color.
type Paint struct {
	Glyph rune
	Color Color
}

// Canvas is the drawing sink game renderers talk to. Coordinates are screen
// cells. Shapes that fall partly outside the canvas are clipped.
type Canvas interface {
	FillRect(r Rect, p Paint)
	FillOval(r Rect, p Paint)
	FillPolygon(xs, ys []float64, p Paint)
	StrokeText(x, y int, text string, c Color)
}

var _ Canvas = (*Screen)(nil)

// FillRect fills a rectangular area.
func (s *Screen) FillRect(r Rect, p Paint) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetCell(x, y, p.Glyph, p.Color)
		}
	}
}

// FillOval fills every cell whose center lies inside the ellipse inscribed
// in r.
func (s *Screen) FillOval(r Rect, p Paint) {
	if r.Empty() {
		return
	}

	rx := float64(r.W) / 2
	ry := float64(r.H) / 2
	cx := float64(r.X) + rx
	cy := float64(r.Y) + ry

	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				s.SetCell(x, y, p.Glyph, p.Color)
			}
		}
	}
}

// FillPolygon fills every cell whose center lies inside the polygon given by
// its vertex coordinates (even-odd rule). Mismatched or degenerate vertex
// lists draw nothing.
func (s *Screen) FillPolygon(xs, ys []float64, p Paint) {
	if len(xs) != len(ys) || len(xs) < 3 {
		return
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 1; i < len(xs); i++ {
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
	}

	for y := int(math.Floor(minY)); y < int(math.Ceil(maxY)); y++ {
		for x := int(math.Floor(minX)); x < int(math.Ceil(maxX)); x++ {
			if pointInPolygon(float64(x)+0.5, float64(y)+0.5, xs, ys) {
				s.SetCell(x, y, p.Glyph, p.Color)
			}
		}
	}
}

// StrokeText draws colored text starting at (x, y).
func (s *Screen) StrokeText(x, y int, text string, c Color) {
	s.DrawTextColor(x, y, text, c)
}

// pointInPolygon is the standard ray-casting test.
func pointInPolygon(px, py float64, xs, ys []float64) bool {
	inside := false
	j := len(xs) - 1
	for i := range xs {
		if (ys[i] > py) != (ys[j] > py) {
			cross := (xs[j]-xs[i])*(py-ys[i])/(ys[j]-ys[i]) + xs[i]
			if px < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
