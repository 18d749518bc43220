package common

// Vec2 is a point or offset in world space.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned box; X/Y is the top-left corner, Y grows downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.Width }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.Height }
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// AnchorBottom is the bottom-centre point of the box.
func (r Rect) AnchorBottom() Vec2 {
	return Vec2{X: r.CenterX(), Y: r.Bottom()}
}

func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// DistanceSq is the squared distance between the box centres.
func (r Rect) DistanceSq(other Rect) float64 {
	dx := r.CenterX() - other.CenterX()
	dy := r.CenterY() - other.CenterY()
	return dx*dx + dy*dy
}
