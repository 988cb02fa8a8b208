package tilemap

// FillPolicy decides which tile goes in each cell of a layer.
type FillPolicy interface {
	TileAt(pos TilePos) (Tile, error)
}

// FillFunc adapts a function to FillPolicy.
type FillFunc func(pos TilePos) (Tile, error)

func (f FillFunc) TileAt(pos TilePos) (Tile, error) {
	return f(pos)
}

// Uniform fills every cell with the same texture.
func Uniform(textureIndex uint16) FillPolicy {
	return FillFunc(func(TilePos) (Tile, error) {
		return Tile{TextureIndex: textureIndex}, nil
	})
}

// TextureLookup resolves a texture name to its atlas index.
type TextureLookup func(name string) (int, bool)
