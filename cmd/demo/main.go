// Command demo embeds the ecs core behind an ebiten.Game: it registers
// components, builds a World and a SystemsGroup, and drives both from
// ebiten's Update/Draw. It adds no ECS functionality of its own.
package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"emberecs/internal/core/ecs"
	"emberecs/internal/core/systems"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	numSprites   = 64
)

// game wires a World and a SystemsGroup into an ebiten.Game.
type game struct {
	world    *ecs.World
	group    *ecs.SystemsGroup
	rendersy *systems.RenderingSystem
}

func newGame() *game {
	registry := ecs.NewRegistry()
	transformKind, err := ecs.Register[systems.Transform](registry, ecs.CategorySingle, true)
	if err != nil {
		log.Fatal(err)
	}
	physicsKind, err := ecs.Register[systems.Physics](registry, ecs.CategorySingle, true)
	if err != nil {
		log.Fatal(err)
	}
	spriteKind, err := ecs.Register[systems.Sprite](registry, ecs.CategorySingle, true)
	if err != nil {
		log.Fatal(err)
	}

	world := ecs.NewWorld(registry, ecs.DefaultWorldConfig())

	movementSys := systems.NewMovementSystem(transformKind, physicsKind)
	movementSys.SetBoundary(0, 0, screenWidth, screenHeight)
	renderSys := systems.NewRenderingSystem(transformKind, spriteKind)

	group := ecs.NewSystemsGroup()
	group.Add(movementSys)
	group.Add(renderSys)
	if err := group.Init(world); err != nil {
		log.Fatal(err)
	}

	for i := 0; i < numSprites; i++ {
		e := world.NewEntity()
		if err := ecs.Add(e, transformKind, systems.Transform{
			Position: ecs.Vector2{X: rand.Float64() * screenWidth, Y: rand.Float64() * screenHeight},
			Scale:    ecs.Vector2{X: 1, Y: 1},
		}); err != nil {
			log.Fatal(err)
		}
		if err := ecs.Add(e, physicsKind, systems.Physics{
			Velocity: ecs.Vector2{X: rand.Float64()*120 - 60, Y: rand.Float64()*120 - 60},
			MaxSpeed: 150,
		}); err != nil {
			log.Fatal(err)
		}
		if err := ecs.Add(e, spriteKind, systems.Sprite{
			TextureID: "dot",
			ZOrder:    i % 4,
			Visible:   true,
		}); err != nil {
			log.Fatal(err)
		}
	}

	return &game{world: world, group: group, rendersy: renderSys}
}

// Update drives one frame: the whole of the core's per-frame work is this
// single SystemsGroup.Execute call.
func (g *game) Update() error {
	return g.group.Execute(g.world)
}

// Draw renders the RenderingSystem's resolved draw list as debug dots; a
// real host would blit sprites per TextureID instead.
func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})
	for _, r := range g.rendersy.DrawList() {
		ebitenutil.DebugPrintAt(screen, "o", int(r.Screen.X), int(r.Screen.Y))
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("entities drawn: %d", len(g.rendersy.DrawList())))
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	g := newGame()
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("emberecs demo")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
