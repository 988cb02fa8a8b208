package scene

import (
	"fmt"
	"io/fs"

	"github.com/milk9111/atlasmap/assets"
	"github.com/milk9111/atlasmap/atlas"
	"github.com/milk9111/atlasmap/loader"
	"github.com/milk9111/atlasmap/tilemap"
)

// Scene is the content built once all textures have loaded.
type Scene struct {
	Atlas     *atlas.TextureAtlas
	TileIndex int
	Map       *tilemap.Map
}

// BuildAtlas packs every loaded handle into one atlas.
func BuildAtlas(srv *loader.Server, handles []loader.Handle, spec AtlasSpec) (*atlas.TextureAtlas, error) {
	b := atlas.NewBuilder(
		atlas.WithInitialSize(spec.InitialSize, spec.InitialSize),
		atlas.WithMaxSize(spec.MaxSize, spec.MaxSize),
		atlas.WithPadding(spec.Padding),
	)
	for _, h := range handles {
		img, ok := srv.Image(h)
		if !ok {
			return nil, fmt.Errorf("scene: %s: %w", h, loader.ErrNotLoaded)
		}
		b.AddTexture(h, img)
	}
	ta, err := b.Finish()
	if err != nil {
		return nil, fmt.Errorf("scene: build atlas: %w", err)
	}
	return ta, nil
}

// Assemble builds the atlas from the loaded textures, resolves the tile
// texture and fills a single-layer map with the configured policy. fsys is
// the assets root that script and tmx paths are relative to.
func Assemble(spec *Spec, srv *loader.Server, handles []loader.Handle, fsys fs.FS) (*Scene, error) {
	ta, err := BuildAtlas(srv, handles, spec.Atlas)
	if err != nil {
		return nil, err
	}

	tileIndex, ok := ta.TextureIndex(srv.Handle(spec.TileTexture))
	if !ok {
		return nil, fmt.Errorf("scene: tile texture %s is not in the atlas", spec.TileTexture)
	}

	settings := tilemap.NewLayerSettings(
		tilemap.MapSize{X: spec.Map.Size.X, Y: spec.Map.Size.Y},
		tilemap.ChunkSize{X: spec.Map.ChunkSize.X, Y: spec.Map.ChunkSize.Y},
		tilemap.TileSize{X: spec.Map.TileSize.X, Y: spec.Map.TileSize.Y},
		tilemap.TextureSize{X: float64(ta.Size.X), Y: float64(ta.Size.Y)},
	)
	policy, err := fillPolicy(spec.Map.Fill, settings, ta, uint16(tileIndex), fsys)
	if err != nil {
		return nil, err
	}

	lb, err := tilemap.NewLayerBuilder(settings, spec.Map.ID, spec.Map.Layer)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if err := lb.Fill(policy); err != nil {
		return nil, fmt.Errorf("scene: fill map: %w", err)
	}
	layer, err := lb.Build(ta.Len())
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	m := tilemap.NewMap(spec.Map.ID)
	if err := m.AddLayer(layer); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &Scene{Atlas: ta, TileIndex: tileIndex, Map: m}, nil
}

func fillPolicy(fill FillSpec, settings tilemap.LayerSettings, ta *atlas.TextureAtlas, tileIndex uint16, fsys fs.FS) (tilemap.FillPolicy, error) {
	switch fill.Policy {
	case FillScript:
		src, err := fs.ReadFile(fsys, assets.CleanPath(fill.Script))
		if err != nil {
			return nil, fmt.Errorf("scene: read fill script: %w", err)
		}
		w, h := settings.GridSize()
		p, err := tilemap.NewScriptFill(src, w, h, ta.Names(), ta.TextureIndexByName, tileIndex)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		return p, nil
	case FillTMX:
		p, err := tilemap.NewTMXFill(fsys, assets.CleanPath(fill.TMX), fill.Layer, ta.TextureIndexByName, tileIndex)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		return p, nil
	default:
		return tilemap.Uniform(tileIndex), nil
	}
}
