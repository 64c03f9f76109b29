package systems

import (
	"math"

	"emberecs/internal/core/ecs"
)

// MovementSystem integrates Physics into Transform for every entity holding
// both, then clamps position to an optional boundary.
type MovementSystem struct {
	*BaseSystem

	transform ecs.Kind[Transform]
	physics   ecs.Kind[Physics]

	maxSpeed  float64 // <= 0: no system-wide limit; per-entity Physics.MaxSpeed still applies
	boundary  *Rectangle
	deltaTime float64
}

// NewMovementSystem returns a MovementSystem bound to the given Transform and
// Physics kinds, registered by the host before world construction.
func NewMovementSystem(transform ecs.Kind[Transform], physics ecs.Kind[Physics]) *MovementSystem {
	return &MovementSystem{
		BaseSystem: NewBaseSystem("movement"),
		transform:  transform,
		physics:    physics,
		maxSpeed:   -1,
		deltaTime:  1,
	}
}

// Filter matches every entity holding both Transform and Physics, cached
// once at SystemsGroup.Init.
func (ms *MovementSystem) Filter(w *ecs.World) ecs.Filter {
	return w.NewFilter().AllOf(ms.transform.Index(), ms.physics.Index())
}

// Process integrates one entity's Physics into its Transform: velocity +=
// acceleration, speed-clamp, position += velocity. deltaTime defaults to 1
// frame-unit; a host with a real clock calls SetDeltaTime before
// Execute runs Process over the cached filter.
func (ms *MovementSystem) Process(e ecs.Entity) error {
	transform, err := ecs.Get(e, ms.transform)
	if err != nil {
		return err
	}
	physics, err := ecs.Get(e, ms.physics)
	if err != nil {
		return err
	}

	physics.Velocity = physics.Velocity.Add(physics.Acceleration.Scale(ms.deltaTime))
	ms.limitSpeed(&physics.Velocity, physics.MaxSpeed)
	transform.Position = transform.Position.Add(physics.Velocity.Scale(ms.deltaTime))
	ms.clampToBoundary(&transform.Position)

	ecs.Set(e, ms.physics, physics)
	ecs.Set(e, ms.transform, transform)
	return nil
}

// SetDeltaTime sets the per-Execute integration step; defaults to 1.
func (ms *MovementSystem) SetDeltaTime(dt float64) { ms.deltaTime = dt }

// SetMaxSpeed sets the system-wide speed ceiling; <= 0 disables it, leaving
// each entity's own Physics.MaxSpeed as the only limit.
func (ms *MovementSystem) SetMaxSpeed(maxSpeed float64) { ms.maxSpeed = maxSpeed }

// SetBoundary constrains integrated positions to the given rectangle.
func (ms *MovementSystem) SetBoundary(x, y, width, height float64) {
	ms.boundary = &Rectangle{X: x, Y: y, Width: width, Height: height}
}

func (ms *MovementSystem) limitSpeed(velocity *ecs.Vector2, perEntityMax float64) {
	limit := ms.maxSpeed
	if perEntityMax > 0 && (limit <= 0 || perEntityMax < limit) {
		limit = perEntityMax
	}
	if limit <= 0 {
		return
	}
	speed := math.Hypot(velocity.X, velocity.Y)
	if speed > limit {
		scale := limit / speed
		velocity.X *= scale
		velocity.Y *= scale
	}
}

func (ms *MovementSystem) clampToBoundary(position *ecs.Vector2) {
	if ms.boundary == nil {
		return
	}
	if position.X < ms.boundary.X {
		position.X = ms.boundary.X
	} else if position.X > ms.boundary.X+ms.boundary.Width {
		position.X = ms.boundary.X + ms.boundary.Width
	}
	if position.Y < ms.boundary.Y {
		position.Y = ms.boundary.Y
	} else if position.Y > ms.boundary.Y+ms.boundary.Height {
		position.Y = ms.boundary.Y + ms.boundary.Height
	}
}
