package physics

// Material tags a body surface; contact behaviour lives on ContactMaterial
type Material struct {
	Name string
}

// ContactMaterial defines friction and restitution between two materials
type ContactMaterial struct {
	A, B        *Material
	Friction    float64
	Restitution float64
}

// NewContactMaterial pairs a and b
func NewContactMaterial(a, b *Material, friction, restitution float64) *ContactMaterial {
	return &ContactMaterial{A: a, B: b, Friction: friction, Restitution: restitution}
}

// matches reports whether the pair applies to a and b in either order
func (cm *ContactMaterial) matches(a, b *Material) bool {
	return (cm.A == a && cm.B == b) || (cm.A == b && cm.B == a)
}
