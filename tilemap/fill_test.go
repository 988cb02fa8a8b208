package tilemap

import (
	"errors"
	"os"
	"testing"
)

var testTextures = []string{"grass.png", "lime.png", "water.png"}

func lookupTestTexture(name string) (int, bool) {
	for i, n := range testTextures {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func TestUniformPolicy(t *testing.T) {
	p := Uniform(4)
	for _, pos := range []TilePos{{0, 0}, {3, 9}, {100, 2}} {
		tile, err := p.TileAt(pos)
		if err != nil {
			t.Fatalf("TileAt: %v", err)
		}
		if tile != (Tile{TextureIndex: 4}) {
			t.Fatalf("expected uniform tile 4, got %+v", tile)
		}
	}
}

func TestScriptFill(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		check func(t *testing.T, pos TilePos, tile Tile)
	}{
		{
			name: "checker_by_name",
			src: `
tile := "lime.png"
if (x + y) % 2 == 1 {
	tile = "grass.png"
}
`,
			check: func(t *testing.T, pos TilePos, tile Tile) {
				want := uint16(1)
				if (pos.X+pos.Y)%2 == 1 {
					want = 0
				}
				if tile.TextureIndex != want {
					t.Fatalf("tile %v: expected %d, got %d", pos, want, tile.TextureIndex)
				}
			},
		},
		{
			name: "border_by_index_with_flags",
			src: `
tile := 1
flip_x := x == 0
hidden := false
if x == 0 || y == 0 || x == width - 1 || y == height - 1 {
	tile = len(textures) - 1
}
`,
			check: func(t *testing.T, pos TilePos, tile Tile) {
				border := pos.X == 0 || pos.Y == 0 || pos.X == 3 || pos.Y == 2
				want := uint16(1)
				if border {
					want = 2
				}
				if tile.TextureIndex != want {
					t.Fatalf("tile %v: expected %d, got %d", pos, want, tile.TextureIndex)
				}
				if tile.FlipX != (pos.X == 0) {
					t.Fatalf("tile %v: unexpected flip_x %v", pos, tile.FlipX)
				}
			},
		},
		{
			name: "no_tile_uses_fallback",
			src:  `unused := x * y`,
			check: func(t *testing.T, pos TilePos, tile Tile) {
				if tile.TextureIndex != 2 {
					t.Fatalf("tile %v: expected fallback 2, got %d", pos, tile.TextureIndex)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fill, err := NewScriptFill([]byte(c.src), 4, 3, testTextures, lookupTestTexture, 2)
			if err != nil {
				t.Fatalf("NewScriptFill: %v", err)
			}
			s := NewLayerSettings(MapSize{2, 1}, ChunkSize{2, 3}, TileSize{16, 16}, TextureSize{})
			b, err := NewLayerBuilder(s, 0, 0)
			if err != nil {
				t.Fatalf("NewLayerBuilder: %v", err)
			}
			if err := b.Fill(fill); err != nil {
				t.Fatalf("Fill: %v", err)
			}
			layer, err := b.Build(len(testTextures))
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			for pos, tile := range layer.Tiles() {
				c.check(t, pos, tile)
			}
		})
	}
}

func TestScriptFillErrors(t *testing.T) {
	cases := []struct {
		name       string
		src        string
		compileErr bool
		want       error
	}{
		{name: "syntax", src: `tile := `, compileErr: true},
		{name: "unknown_texture", src: `tile := "lava.png"`, want: ErrUnknownTexture},
		{name: "negative_index", src: `tile := -1`, want: ErrInvalidTextureIndex},
		{name: "bad_type", src: `tile := [1, 2]`},
		{name: "division_by_zero", src: `tile := 1 / (x - x)`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fill, err := NewScriptFill([]byte(c.src), 2, 2, testTextures, lookupTestTexture, 0)
			if c.compileErr {
				if err == nil {
					t.Fatal("expected compile error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewScriptFill: %v", err)
			}
			_, err = fill.TileAt(TilePos{0, 0})
			if err == nil {
				t.Fatal("expected TileAt error")
			}
			if c.want != nil && !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestTMXFill(t *testing.T) {
	fsys := os.DirFS("testdata")

	t.Run("first_layer", func(t *testing.T) {
		fill, err := NewTMXFill(fsys, "small.tmx", "", lookupTestTexture, 0)
		if err != nil {
			t.Fatalf("NewTMXFill: %v", err)
		}
		want := map[TilePos]Tile{
			{0, 0}: {TextureIndex: 1},
			{1, 0}: {TextureIndex: 2},
			{2, 0}: {TextureIndex: 0},
			{0, 1}: {TextureIndex: 2},
			{1, 1}: {TextureIndex: 1, FlipX: true},
			{2, 1}: {TextureIndex: 1},
			{5, 5}: {TextureIndex: 0},
		}
		for pos, w := range want {
			got, err := fill.TileAt(pos)
			if err != nil {
				t.Fatalf("TileAt %v: %v", pos, err)
			}
			if got != w {
				t.Fatalf("tile %v: expected %+v, got %+v", pos, w, got)
			}
		}
	})

	t.Run("named_layer", func(t *testing.T) {
		fill, err := NewTMXFill(fsys, "small.tmx", "decor", lookupTestTexture, 1)
		if err != nil {
			t.Fatalf("NewTMXFill: %v", err)
		}
		if got, _ := fill.TileAt(TilePos{0, 0}); got.TextureIndex != 2 {
			t.Fatalf("expected water at origin, got %+v", got)
		}
		if got, _ := fill.TileAt(TilePos{1, 0}); got.TextureIndex != 1 {
			t.Fatalf("expected fallback at (1,0), got %+v", got)
		}
	})

	t.Run("missing_layer", func(t *testing.T) {
		if _, err := NewTMXFill(fsys, "small.tmx", "nope", lookupTestTexture, 0); err == nil {
			t.Fatal("expected error for missing layer")
		}
	})

	t.Run("unknown_texture", func(t *testing.T) {
		lookup := func(name string) (int, bool) {
			if name == "lime.png" {
				return 0, true
			}
			return 0, false
		}
		if _, err := NewTMXFill(fsys, "small.tmx", "", lookup, 0); !errors.Is(err, ErrUnknownTexture) {
			t.Fatalf("expected ErrUnknownTexture, got %v", err)
		}
	})

	t.Run("index_out_of_range", func(t *testing.T) {
		lookup := func(string) (int, bool) { return 70000, true }
		if _, err := NewTMXFill(fsys, "small.tmx", "", lookup, 0); !errors.Is(err, ErrInvalidTextureIndex) {
			t.Fatalf("expected ErrInvalidTextureIndex, got %v", err)
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		if _, err := NewTMXFill(fsys, "absent.tmx", "", lookupTestTexture, 0); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestScriptFillLookupOutOfRange(t *testing.T) {
	lookup := func(string) (int, bool) { return 1 << 16, true }
	fill, err := NewScriptFill([]byte(`tile := "lime.png"`), 1, 1, testTextures, lookup, 0)
	if err != nil {
		t.Fatalf("NewScriptFill: %v", err)
	}
	if _, err := fill.TileAt(TilePos{0, 0}); !errors.Is(err, ErrInvalidTextureIndex) {
		t.Fatalf("expected ErrInvalidTextureIndex, got %v", err)
	}
}
