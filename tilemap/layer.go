package tilemap

import (
	"errors"
	"fmt"
	"image"
	"iter"
)

var (
	ErrInvalidSize         = errors.New("tilemap: invalid size")
	ErrOutOfBounds         = errors.New("tilemap: tile position out of bounds")
	ErrInvalidTextureIndex = errors.New("tilemap: invalid texture index")
	ErrAlreadyBuilt        = errors.New("tilemap: layer already built")
)

// MapSize is the size of a layer in chunks.
type MapSize struct {
	X, Y uint32
}

// ChunkSize is the size of a chunk in tiles.
type ChunkSize struct {
	X, Y uint32
}

// TileSize is the size of a tile in pixels.
type TileSize struct {
	X, Y float64
}

// TextureSize is the pixel size of the texture tiles are sampled from.
type TextureSize struct {
	X, Y float64
}

// TilePos addresses a tile from the top-left corner of the layer.
type TilePos struct {
	X, Y uint32
}

// ChunkPos addresses a chunk from the top-left corner of the layer.
type ChunkPos struct {
	X, Y uint32
}

type LayerSettings struct {
	MapSize     MapSize
	ChunkSize   ChunkSize
	TileSize    TileSize
	TextureSize TextureSize
}

func NewLayerSettings(mapSize MapSize, chunkSize ChunkSize, tileSize TileSize, textureSize TextureSize) LayerSettings {
	return LayerSettings{
		MapSize:     mapSize,
		ChunkSize:   chunkSize,
		TileSize:    tileSize,
		TextureSize: textureSize,
	}
}

// Validate rejects zero sized maps, chunks or tiles.
func (s LayerSettings) Validate() error {
	switch {
	case s.MapSize.X == 0 || s.MapSize.Y == 0:
		return fmt.Errorf("%w: map size %dx%d", ErrInvalidSize, s.MapSize.X, s.MapSize.Y)
	case s.ChunkSize.X == 0 || s.ChunkSize.Y == 0:
		return fmt.Errorf("%w: chunk size %dx%d", ErrInvalidSize, s.ChunkSize.X, s.ChunkSize.Y)
	case s.TileSize.X <= 0 || s.TileSize.Y <= 0:
		return fmt.Errorf("%w: tile size %gx%g", ErrInvalidSize, s.TileSize.X, s.TileSize.Y)
	case s.TextureSize.X < 0 || s.TextureSize.Y < 0:
		return fmt.Errorf("%w: texture size %gx%g", ErrInvalidSize, s.TextureSize.X, s.TextureSize.Y)
	}
	return nil
}

// GridSize returns the layer size in tiles.
func (s LayerSettings) GridSize() (uint32, uint32) {
	return s.MapSize.X * s.ChunkSize.X, s.MapSize.Y * s.ChunkSize.Y
}

// PixelSize returns the layer size in pixels.
func (s LayerSettings) PixelSize() (float64, float64) {
	w, h := s.GridSize()
	return float64(w) * s.TileSize.X, float64(h) * s.TileSize.Y
}

// Tile is a single grid cell. The zero value is a visible tile showing
// texture 0.
type Tile struct {
	TextureIndex uint16
	FlipX        bool
	FlipY        bool
	Hidden       bool
}

// Chunk stores the tiles of one ChunkSize block in row-major order.
type Chunk struct {
	Pos   ChunkPos
	Size  ChunkSize
	Tiles []Tile
}

func newChunk(pos ChunkPos, size ChunkSize) *Chunk {
	return &Chunk{Pos: pos, Size: size, Tiles: make([]Tile, int(size.X)*int(size.Y))}
}

// Tile returns the tile at a chunk-local position.
func (c *Chunk) Tile(x, y uint32) Tile {
	return c.Tiles[int(y)*int(c.Size.X)+int(x)]
}

// Origin returns the position of the chunk's top-left tile in the layer.
func (c *Chunk) Origin() TilePos {
	return TilePos{X: c.Pos.X * c.Size.X, Y: c.Pos.Y * c.Size.Y}
}

// Layer is an immutable tile grid produced by a LayerBuilder.
type Layer struct {
	MapID    uint16
	LayerID  uint16
	Settings LayerSettings

	chunks []*Chunk
}

// Len returns the number of cells in the layer.
func (l *Layer) Len() int {
	w, h := l.Settings.GridSize()
	return int(w) * int(h)
}

// Chunks returns the chunks in row-major order.
func (l *Layer) Chunks() []*Chunk {
	return l.chunks
}

// Tile returns the tile at pos.
func (l *Layer) Tile(pos TilePos) (Tile, bool) {
	c, x, y, ok := locate(l.Settings, l.chunks, pos)
	if !ok {
		return Tile{}, false
	}
	return c.Tile(x, y), true
}

// Tiles iterates every cell of the layer in row-major order.
func (l *Layer) Tiles() iter.Seq2[TilePos, Tile] {
	return func(yield func(TilePos, Tile) bool) {
		w, h := l.Settings.GridSize()
		for y := uint32(0); y < h; y++ {
			for x := uint32(0); x < w; x++ {
				pos := TilePos{X: x, Y: y}
				t, _ := l.Tile(pos)
				if !yield(pos, t) {
					return
				}
			}
		}
	}
}

// TileOffset returns the pixel offset of a tile from the layer origin.
func (l *Layer) TileOffset(pos TilePos) (float64, float64) {
	return float64(pos.X) * l.Settings.TileSize.X, float64(pos.Y) * l.Settings.TileSize.Y
}

// PixelSize returns the layer size in pixels.
func (l *Layer) PixelSize() (float64, float64) {
	return l.Settings.PixelSize()
}

// TileRect returns the atlas source rectangle for the tile at pos. Hidden
// tiles report false.
func (l *Layer) TileRect(pos TilePos, regions []image.Rectangle) (image.Rectangle, bool) {
	t, ok := l.Tile(pos)
	if !ok || t.Hidden || int(t.TextureIndex) >= len(regions) {
		return image.Rectangle{}, false
	}
	return regions[t.TextureIndex], true
}

func locate(s LayerSettings, chunks []*Chunk, pos TilePos) (*Chunk, uint32, uint32, bool) {
	w, h := s.GridSize()
	if pos.X >= w || pos.Y >= h {
		return nil, 0, 0, false
	}
	cx, cy := pos.X/s.ChunkSize.X, pos.Y/s.ChunkSize.Y
	c := chunks[int(cy)*int(s.MapSize.X)+int(cx)]
	return c, pos.X % s.ChunkSize.X, pos.Y % s.ChunkSize.Y, true
}
