package system

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/atlasmap/ecs"
	"github.com/milk9111/atlasmap/ecs/component"
	"github.com/milk9111/atlasmap/tilemap"
)

func TestDrawOrder(t *testing.T) {
	w := ecs.NewWorld()
	add := func(layer int, withLayer bool, kind string) ecs.Entity {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{}); err != nil {
			t.Fatal(err)
		}
		var err error
		switch kind {
		case "sprite":
			err = ecs.Add(w, e, component.SpriteComponent, &component.Sprite{})
		case "atlas":
			err = ecs.Add(w, e, component.AtlasSpriteComponent, &component.AtlasSprite{})
		case "map":
			err = ecs.Add(w, e, component.TileMapComponent, &component.TileMap{})
		}
		if err != nil {
			t.Fatal(err)
		}
		if withLayer {
			if err := ecs.Add(w, e, component.RenderLayerComponent, &component.RenderLayer{Index: layer}); err != nil {
				t.Fatal(err)
			}
		}
		return e
	}

	top := add(2, true, "sprite")
	mapEnt := add(-1, true, "map")
	plain := add(0, false, "atlas")
	mid := add(0, true, "sprite")
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.TransformComponent, &component.Transform{}); err != nil {
		t.Fatal(err)
	}

	got := drawOrder(w)
	want := []ecs.Entity{mapEnt, plain, mid, top}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestChunkDraws(t *testing.T) {
	regions := []image.Rectangle{
		image.Rect(0, 0, 16, 16),
		image.Rect(16, 0, 32, 16),
	}
	s := tilemap.NewLayerSettings(
		tilemap.MapSize{X: 2, Y: 2},
		tilemap.ChunkSize{X: 8, Y: 8},
		tilemap.TileSize{X: 16, Y: 16},
		tilemap.TextureSize{X: 32, Y: 16},
	)
	b, err := tilemap.NewLayerBuilder(s, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	b.SetAll(tilemap.Tile{TextureIndex: 1})
	if err := b.SetTile(tilemap.TilePos{X: 9, Y: 8}, tilemap.Tile{TextureIndex: 0, FlipX: true}); err != nil {
		t.Fatal(err)
	}
	if err := b.SetTile(tilemap.TilePos{X: 10, Y: 8}, tilemap.Tile{Hidden: true}); err != nil {
		t.Fatal(err)
	}
	layer, err := b.Build(len(regions))
	if err != nil {
		t.Fatal(err)
	}

	chunks := layer.Chunks()
	first := chunkDraws(layer, chunks[0], regions)
	if len(first) != 64 {
		t.Fatalf("expected 64 draws in first chunk, got %d", len(first))
	}
	for _, d := range first {
		if d.src != regions[1] {
			t.Fatalf("expected region 1 everywhere, got %v", d.src)
		}
	}

	last := chunkDraws(layer, chunks[3], regions)
	if len(last) != 63 {
		t.Fatalf("expected hidden tile skipped, got %d draws", len(last))
	}
	flipped := last[1]
	if flipped.x != 16 || flipped.y != 0 || !flipped.flipX || flipped.src != regions[0] || flipped.w != 16 || flipped.h != 16 {
		t.Fatalf("unexpected draw for flipped tile: %+v", flipped)
	}
}

func TestTileDrawGeoM(t *testing.T) {
	cases := []struct {
		name         string
		d            tileDraw
		wantX, wantY float64
	}{
		{"plain", tileDraw{src: image.Rect(0, 0, 16, 16), x: 32, y: 16, w: 16, h: 16}, 32, 16},
		{"flip_x", tileDraw{src: image.Rect(0, 0, 16, 16), x: 32, y: 16, w: 16, h: 16, flipX: true}, 48, 16},
		{"flip_y", tileDraw{src: image.Rect(0, 0, 16, 16), y: 16, w: 16, h: 16, flipY: true}, 0, 32},
		{"upscaled", tileDraw{src: image.Rect(0, 0, 16, 16), x: 64, w: 32, h: 32}, 64, 0},
		{"tall_region", tileDraw{src: image.Rect(16, 0, 32, 32), w: 16, h: 16, flipY: true}, 0, 16},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := c.d.geoM()
			x, y := g.Apply(0, 0)
			if x != c.wantX || y != c.wantY {
				t.Fatalf("expected source origin at (%g,%g), got (%g,%g)", c.wantX, c.wantY, x, y)
			}
			// the opposite source corner must land on the opposite cell corner
			fx, fy := g.Apply(float64(c.d.src.Dx()), float64(c.d.src.Dy()))
			wantX, wantY := c.d.x+c.d.w, c.d.y+c.d.h
			if c.d.flipX {
				wantX = c.d.x
			}
			if c.d.flipY {
				wantY = c.d.y
			}
			if fx != wantX || fy != wantY {
				t.Fatalf("expected far corner at (%g,%g), got (%g,%g)", wantX, wantY, fx, fy)
			}
		})
	}
}

func TestLocalGeoMCentresOrigin(t *testing.T) {
	g := localGeoM(&component.Transform{X: 150, ScaleX: 4, ScaleY: 4}, 8, 8)
	var view ebiten.GeoM
	g.Concat(view)
	x, y := g.Apply(8, 8)
	if x != 150 || y != 0 {
		t.Fatalf("expected pivot at (150,0), got (%g,%g)", x, y)
	}
	x, _ = g.Apply(0, 0)
	if x != 150-32 {
		t.Fatalf("expected scaled left edge at %g, got %g", 150.0-32, x)
	}
}
