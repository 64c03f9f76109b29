package systems

import "emberecs/internal/core/ecs"

// Transform holds an entity's position, rotation, and scale. Single category:
// an entity has at most one. Scene-graph hierarchy is a host concern layered
// on top, not part of this component.
type Transform struct {
	Position ecs.Vector2
	Rotation float64
	Scale    ecs.Vector2
}

// NewTransform returns a Transform at the origin with unit scale.
func NewTransform() Transform {
	return Transform{Scale: ecs.Vector2{X: 1, Y: 1}}
}

// Physics holds the velocity and acceleration MovementSystem integrates
// every Execute.
type Physics struct {
	Velocity     ecs.Vector2
	Acceleration ecs.Vector2
	MaxSpeed     float64 // <= 0 means unlimited
}

// Sprite holds the draw-order and visibility state RenderingSystem consults.
// Texture resolution happens at draw time, keyed by TextureID; this system
// layer only decides what is visible and in what order.
type Sprite struct {
	TextureID string
	ZOrder    int
	Visible   bool
}
