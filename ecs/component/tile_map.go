package component

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/atlasmap/atlas"
	"github.com/milk9111/atlasmap/tilemap"
)

// TileMap renders every layer of Map from the atlas texture. The entity's
// transform is the top-left corner of the map.
type TileMap struct {
	Map     *tilemap.Map
	Atlas   *atlas.TextureAtlas
	Texture *ebiten.Image
}

var TileMapComponent = NewComponent[TileMap]()
