package main

import (
	"log"
	"path"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/atlasmap/ecs/entity"
	"github.com/milk9111/atlasmap/ecs/system"
	"github.com/milk9111/atlasmap/scene"
)

// startup runs once when textures have loaded. It packs the atlas, fills
// the map and spawns the camera, the map, one sprite drawn from the atlas and
// the atlas image itself.
func (g *Game) startup() {
	sc, err := scene.Assemble(g.spec, g.server, g.handles, g.fsys)
	if err != nil {
		log.Fatalf("failed to assemble scene: %v", err)
	}
	log.Printf("%s tile index: %d", tileLabel(g.spec.TileTexture), sc.TileIndex)

	manifest, err := sc.Atlas.Manifest("atlas.png").Marshal()
	if err != nil {
		log.Fatalf("failed to encode atlas manifest: %v", err)
	}
	g.manifest = manifest

	texture := ebiten.NewImageFromImage(sc.Atlas.Texture)

	if _, err := entity.NewCamera(g.world, g.spec.Camera.Scale); err != nil {
		log.Fatalf("failed to spawn camera: %v", err)
	}
	if _, err := entity.NewTileMap(g.world, sc.Map, sc.Atlas, texture, g.spec.Map.Offset.X, g.spec.Map.Offset.Y); err != nil {
		log.Fatalf("failed to spawn map: %v", err)
	}
	sp := g.spec.SpritePreview
	if _, err := entity.NewAtlasSprite(g.world, sc.Atlas, texture, sc.TileIndex, sp.Translation.X, sp.Translation.Y, sp.Scale); err != nil {
		log.Fatalf("failed to spawn atlas sprite: %v", err)
	}
	ap := g.spec.AtlasPreview
	if _, err := entity.NewImageSprite(g.world, texture, ap.Translation.X, ap.Translation.Y); err != nil {
		log.Fatalf("failed to spawn atlas preview: %v", err)
	}

	g.world.AddSystem(system.NewCameraSystem())
	g.world.AddSystem(system.NewRenderSystem())

	g.info = newInfoPanel()
	g.info.SetLines(infoLines(g.spec, sc))
	g.ui = g.info.UI()
}

// tileLabel turns "textures/lime.png" into "Lime".
func tileLabel(p string) string {
	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if name == "" || name == "." || name == "/" {
		return "Tile"
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
