package entity

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/atlasmap/atlas"
	"github.com/milk9111/atlasmap/ecs"
	"github.com/milk9111/atlasmap/ecs/component"
	"github.com/milk9111/atlasmap/tilemap"
)

const (
	LayerTileMap = iota
	LayerAtlas
	LayerSprite
)

// NewTileMap spawns m with its top-left corner at (x, y).
func NewTileMap(w *ecs.World, m *tilemap.Map, ta *atlas.TextureAtlas, texture *ebiten.Image, x, y float64) (ecs.Entity, error) {
	if m == nil || ta == nil {
		return 0, errors.New("tilemap: map and atlas are required")
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("tilemap: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.TileMapComponent, &component.TileMap{Map: m, Atlas: ta, Texture: texture}); err != nil {
		return 0, fmt.Errorf("tilemap: add tile map: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent, &component.RenderLayer{Index: LayerTileMap}); err != nil {
		return 0, fmt.Errorf("tilemap: add render layer: %w", err)
	}
	return e, nil
}
