// Package world holds the spatial structures the simulation collides
// against: circular Bodies, a grid-bucketed World, and the union-find
// Island partition used to keep collision queries cheap as trails grow.
package world

import "github.com/rudransh61/Physix-go/pkg/vector"

// Kind tags what a Body represents, so collision handling can branch on it
// without type-asserting Data.
type Kind int

const (
	// KindAvatar is an avatar's own live collision circle.
	KindAvatar Kind = iota
	// KindTrail is a deposited, immobile trail segment.
	KindTrail
	// KindBonus is a pickup; overlapping one never causes death.
	KindBonus
)

// Body is a circular collision primitive: position, radius, and an opaque
// owner payload (the data an Avatar or BonusManager needs back from a hit).
type Body struct {
	ID       string
	Kind     Kind
	Position vector.Vector
	Radius   float64
	OwnerID  string // avatar id that owns/deposited this body
	Data     interface{}
}

// Overlaps reports whether two circles intersect: dx²+dy² ≤ (r1+r2)².
func (b Body) Overlaps(other Body) bool {
	dx := b.Position.X - other.Position.X
	dy := b.Position.Y - other.Position.Y
	sumRadius := b.Radius + other.Radius
	return dx*dx+dy*dy <= sumRadius*sumRadius
}

// BBox returns the axis-aligned bounding box [minX, minY, maxX, maxY].
func (b Body) BBox() (minX, minY, maxX, maxY float64) {
	return b.Position.X - b.Radius, b.Position.Y - b.Radius,
		b.Position.X + b.Radius, b.Position.Y + b.Radius
}
