package component

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/atlasmap/atlas"
)

// AtlasSprite draws one texture of a packed atlas, centred on the entity.
type AtlasSprite struct {
	Atlas   *atlas.TextureAtlas
	Texture *ebiten.Image
	Index   int
}

var AtlasSpriteComponent = NewComponent[AtlasSprite]()
