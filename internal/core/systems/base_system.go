// Package systems provides example ecs.System implementations, Movement and
// Rendering, that exercise the core through ordinary Get/Set calls
// and a cached Filter, the way any embedding host would.
package systems

import "emberecs/internal/core/ecs"

// BaseSystem provides the common Init/Teardown/Active bookkeeping every
// concrete system embeds. The core is single-threaded with no internal
// locking, so the enable/metrics bookkeeping is plain fields, not guarded
// state.
type BaseSystem struct {
	name           string
	enabled        bool
	executionCount int64
}

// NewBaseSystem returns an enabled BaseSystem identified by name.
func NewBaseSystem(name string) *BaseSystem {
	return &BaseSystem{name: name, enabled: true}
}

// Name identifies the system for diagnostics.
func (b *BaseSystem) Name() string { return b.name }

// Active reports whether the system should run this Execute pass.
func (b *BaseSystem) Active() bool { return b.enabled }

// SetActive toggles the system's runtime active flag.
func (b *BaseSystem) SetActive(enabled bool) { b.enabled = enabled }

// ExecutionCount returns how many times Execute has run.
func (b *BaseSystem) ExecutionCount() int64 { return b.executionCount }

// Init is a no-op by default; concrete systems override it when they need
// setup beyond caching a Filter (which SystemsGroup.Init does for them via
// the Filterer interface).
func (b *BaseSystem) Init(*ecs.World) error { return nil }

// Teardown is a no-op by default.
func (b *BaseSystem) Teardown() error { return nil }

// Execute bumps the run counter. Concrete systems call this after their own
// per-frame work so the embedded bookkeeping stays accurate.
func (b *BaseSystem) Execute(*ecs.World) error {
	b.executionCount++
	return nil
}

// Rectangle is a minimal axis-aligned bounding box, shared by Movement
// (boundary clamping) and Rendering (viewport culling).
type Rectangle struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies within the rectangle.
func (r Rectangle) Contains(p ecs.Vector2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}
