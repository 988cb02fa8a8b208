package tilemap

import "fmt"

// LayerBuilder fills a layer's tiles before it is frozen into a Layer.
type LayerBuilder struct {
	mapID    uint16
	layerID  uint16
	settings LayerSettings
	chunks   []*Chunk
	built    bool
}

// NewLayerBuilder allocates every chunk of the layer with zero tiles.
func NewLayerBuilder(settings LayerSettings, mapID, layerID uint16) (*LayerBuilder, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	chunks := make([]*Chunk, 0, int(settings.MapSize.X)*int(settings.MapSize.Y))
	for y := uint32(0); y < settings.MapSize.Y; y++ {
		for x := uint32(0); x < settings.MapSize.X; x++ {
			chunks = append(chunks, newChunk(ChunkPos{X: x, Y: y}, settings.ChunkSize))
		}
	}
	return &LayerBuilder{
		mapID:    mapID,
		layerID:  layerID,
		settings: settings,
		chunks:   chunks,
	}, nil
}

func (b *LayerBuilder) Settings() LayerSettings {
	return b.settings
}

// SetAll writes tile into every cell.
func (b *LayerBuilder) SetAll(tile Tile) {
	for _, c := range b.chunks {
		for i := range c.Tiles {
			c.Tiles[i] = tile
		}
	}
}

// SetTile writes a single cell.
func (b *LayerBuilder) SetTile(pos TilePos, tile Tile) error {
	c, x, y, ok := locate(b.settings, b.chunks, pos)
	if !ok {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, pos.X, pos.Y)
	}
	c.Tiles[int(y)*int(c.Size.X)+int(x)] = tile
	return nil
}

// GetTile reads a single cell.
func (b *LayerBuilder) GetTile(pos TilePos) (Tile, bool) {
	c, x, y, ok := locate(b.settings, b.chunks, pos)
	if !ok {
		return Tile{}, false
	}
	return c.Tile(x, y), true
}

// Fill asks policy for every cell of the layer.
func (b *LayerBuilder) Fill(policy FillPolicy) error {
	w, h := b.settings.GridSize()
	for y := uint32(0); y < h; y++ {
		for x := uint32(0); x < w; x++ {
			pos := TilePos{X: x, Y: y}
			tile, err := policy.TileAt(pos)
			if err != nil {
				return fmt.Errorf("tilemap: fill (%d,%d): %w", x, y, err)
			}
			if err := b.SetTile(pos, tile); err != nil {
				return err
			}
		}
	}
	return nil
}

// Build freezes the layer. Every tile must reference one of the
// textureCount textures of the atlas the layer is drawn with.
func (b *LayerBuilder) Build(textureCount int) (*Layer, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	for _, c := range b.chunks {
		for i, t := range c.Tiles {
			if int(t.TextureIndex) >= textureCount {
				origin := c.Origin()
				x := origin.X + uint32(i)%c.Size.X
				y := origin.Y + uint32(i)/c.Size.X
				return nil, fmt.Errorf("%w: tile (%d,%d) uses %d, atlas has %d textures", ErrInvalidTextureIndex, x, y, t.TextureIndex, textureCount)
			}
		}
	}
	b.built = true
	return &Layer{
		MapID:    b.mapID,
		LayerID:  b.layerID,
		Settings: b.settings,
		chunks:   b.chunks,
	}, nil
}
