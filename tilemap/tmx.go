package tilemap

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/lafriks/go-tiled"
)

// TMXFill copies a tile layer of a Tiled map. Tiles are matched to atlas
// textures by the file name of their tileset image. Empty cells and cells
// outside the Tiled map get the fallback texture.
type TMXFill struct {
	width, height int
	cells         []*Tile
	fallback      uint16
}

// NewTMXFill loads mapPath from fsys. An empty layerName picks the first
// tile layer.
func NewTMXFill(fsys fs.FS, mapPath, layerName string, lookup TextureLookup, fallback uint16) (*TMXFill, error) {
	m, err := tiled.LoadFile(mapPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("tilemap: load tmx %s: %w", mapPath, err)
	}

	var layer *tiled.Layer
	for _, l := range m.Layers {
		if layerName == "" || l.Name == layerName {
			layer = l
			break
		}
	}
	if layer == nil {
		return nil, fmt.Errorf("tilemap: tmx %s has no layer %q", mapPath, layerName)
	}

	f := &TMXFill{
		width:    m.Width,
		height:   m.Height,
		cells:    make([]*Tile, m.Width*m.Height),
		fallback: fallback,
	}
	for i, lt := range layer.Tiles {
		if i >= len(f.cells) {
			break
		}
		if lt == nil || lt.Nil || lt.Tileset == nil {
			continue
		}
		name, ok := tilesetImage(lt.Tileset, lt.ID)
		if !ok {
			return nil, fmt.Errorf("tilemap: tmx %s tile %d of tileset %q has no image", mapPath, lt.ID, lt.Tileset.Name)
		}
		idx, ok := lookup(path.Base(name))
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrUnknownTexture, name, mapPath)
		}
		ti, err := narrowIndex(idx)
		if err != nil {
			return nil, fmt.Errorf("tilemap: tmx %s: %w", mapPath, err)
		}
		f.cells[i] = &Tile{
			TextureIndex: ti,
			FlipX:        lt.HorizontalFlip,
			FlipY:        lt.VerticalFlip,
		}
	}
	return f, nil
}

func tilesetImage(ts *tiled.Tileset, id uint32) (string, bool) {
	for _, t := range ts.Tiles {
		if t != nil && t.ID == id && t.Image != nil && t.Image.Source != "" {
			return t.Image.Source, true
		}
	}
	return "", false
}

func (f *TMXFill) TileAt(pos TilePos) (Tile, error) {
	x, y := int(pos.X), int(pos.Y)
	if x >= f.width || y >= f.height {
		return Tile{TextureIndex: f.fallback}, nil
	}
	if t := f.cells[y*f.width+x]; t != nil {
		return *t, nil
	}
	return Tile{TextureIndex: f.fallback}, nil
}
