package component

// GravityScale scales world gravity for a dynamic physics body.
// 1.0 = normal gravity, 0.0 = no gravity.
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()

// Enabled reports whether gravity currently acts on the body.
func (g *GravityScale) Enabled() bool {
	return g != nil && g.Scale != 0
}
