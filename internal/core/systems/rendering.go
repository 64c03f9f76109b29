package systems

import (
	"sort"

	"emberecs/internal/core/ecs"
)

// RenderingSystem collects every visible (Transform, Sprite) entity into a
// Z-ordered draw list each Execute: cull against the viewport, transform to
// screen space, sort by ZOrder. cmd/demo reads DrawList() from its ebiten
// Draw callback; this system never touches ebiten itself.
type RenderingSystem struct {
	*BaseSystem

	transform ecs.Kind[Transform]
	sprite    ecs.Kind[Sprite]

	viewport *Rectangle
	camera   Camera

	drawList       []Renderable
	freshThisFrame bool
}

// Camera is the rendering viewport's position, zoom, and rotation.
type Camera struct {
	Position ecs.Vector2
	Zoom     float64
	Rotation float64
}

// Renderable is one entity's resolved draw-time state, built fresh each
// Execute from its Transform and Sprite.
type Renderable struct {
	Entity ecs.EntityID
	Screen ecs.Vector2
	Sprite Sprite
}

// NewRenderingSystem returns a RenderingSystem bound to the given Transform
// and Sprite kinds, with an identity camera (no zoom, no rotation).
func NewRenderingSystem(transform ecs.Kind[Transform], sprite ecs.Kind[Sprite]) *RenderingSystem {
	return &RenderingSystem{
		BaseSystem: NewBaseSystem("rendering"),
		transform:  transform,
		sprite:     sprite,
		camera:     Camera{Zoom: 1},
	}
}

// Filter matches every entity holding both Transform and Sprite.
func (rs *RenderingSystem) Filter(w *ecs.World) ecs.Filter {
	return w.NewFilter().AllOf(rs.transform.Index(), rs.sprite.Index())
}

// Execute sorts the draw list built by this frame's Process pass (which
// SystemsGroup runs before Execute) and arms the next frame's Process calls
// to start from an empty list again. There is no separate "begin frame"
// hook, so the reset is deferred to the first Process call after this
// Execute rather than done here, since consumers (e.g. cmd/demo's Draw) read
// DrawList after Execute returns. A frame with no Process calls at all left
// nothing to arm the reset, so the stale list is dropped here instead.
func (rs *RenderingSystem) Execute(w *ecs.World) error {
	if !rs.freshThisFrame {
		rs.drawList = rs.drawList[:0]
	}
	rs.sortByZOrder(rs.drawList)
	rs.freshThisFrame = false
	return rs.BaseSystem.Execute(w)
}

// Process appends one entity to the pending draw list if its Sprite is
// visible and (when a viewport is set) on screen, skipping invisible or
// culled entities entirely. The first Process call of a frame clears
// whatever the previous frame's Execute left sorted.
func (rs *RenderingSystem) Process(e ecs.Entity) error {
	if !rs.freshThisFrame {
		rs.drawList = rs.drawList[:0]
		rs.freshThisFrame = true
	}
	sprite, err := ecs.Get(e, rs.sprite)
	if err != nil {
		return err
	}
	if !sprite.Visible {
		return nil
	}
	transform, err := ecs.Get(e, rs.transform)
	if err != nil {
		return err
	}
	if !rs.isInViewport(transform.Position) {
		return nil
	}
	rs.drawList = append(rs.drawList, Renderable{
		Entity: e.ID(),
		Screen: rs.transformToScreen(transform.Position),
		Sprite: sprite,
	})
	return nil
}

// DrawList returns the Z-ordered entities resolved by the last Execute. The
// slice is reused across frames; callers must not retain it past the next
// Execute call.
func (rs *RenderingSystem) DrawList() []Renderable { return rs.drawList }

// SetViewport sets the culling rectangle; entities outside it are skipped.
func (rs *RenderingSystem) SetViewport(x, y, width, height float64) {
	rs.viewport = &Rectangle{X: x, Y: y, Width: width, Height: height}
}

// SetCamera replaces the rendering camera.
func (rs *RenderingSystem) SetCamera(position ecs.Vector2, zoom, rotation float64) {
	rs.camera = Camera{Position: position, Zoom: zoom, Rotation: rotation}
}

func (rs *RenderingSystem) isInViewport(pos ecs.Vector2) bool {
	if rs.viewport == nil {
		return true
	}
	return rs.viewport.Contains(pos)
}

func (rs *RenderingSystem) sortByZOrder(entities []Renderable) {
	sort.Slice(entities, func(i, j int) bool {
		return entities[i].Sprite.ZOrder < entities[j].Sprite.ZOrder
	})
}

func (rs *RenderingSystem) transformToScreen(worldPos ecs.Vector2) ecs.Vector2 {
	return ecs.Vector2{
		X: (worldPos.X - rs.camera.Position.X) * rs.camera.Zoom,
		Y: (worldPos.Y - rs.camera.Position.Y) * rs.camera.Zoom,
	}
}
