package entity

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/atlasmap/atlas"
	"github.com/milk9111/atlasmap/ecs"
	"github.com/milk9111/atlasmap/ecs/component"
)

// NewAtlasSprite spawns texture index of ta centred at (x, y).
func NewAtlasSprite(w *ecs.World, ta *atlas.TextureAtlas, texture *ebiten.Image, index int, x, y, scale float64) (ecs.Entity, error) {
	if _, ok := ta.Region(index); !ok {
		return 0, fmt.Errorf("sprite: atlas has no texture %d", index)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y, ScaleX: scale, ScaleY: scale}); err != nil {
		return 0, fmt.Errorf("sprite: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.AtlasSpriteComponent, &component.AtlasSprite{Atlas: ta, Texture: texture, Index: index}); err != nil {
		return 0, fmt.Errorf("sprite: add atlas sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent, &component.RenderLayer{Index: LayerSprite}); err != nil {
		return 0, fmt.Errorf("sprite: add render layer: %w", err)
	}
	return e, nil
}

// NewImageSprite spawns a whole image centred at (x, y).
func NewImageSprite(w *ecs.World, img *ebiten.Image, x, y float64) (ecs.Entity, error) {
	if img == nil {
		return 0, errors.New("sprite: image is nil")
	}
	b := img.Bounds()

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("sprite: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent, &component.Sprite{
		Image:   img,
		OriginX: float64(b.Dx()) / 2,
		OriginY: float64(b.Dy()) / 2,
	}); err != nil {
		return 0, fmt.Errorf("sprite: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent, &component.RenderLayer{Index: LayerAtlas}); err != nil {
		return 0, fmt.Errorf("sprite: add render layer: %w", err)
	}
	return e, nil
}
