package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultScene(t *testing.T) {
	s := Default()
	if s.Window.Width != 1270 || s.Window.Height != 720 || s.Window.Title != "Map Example" {
		t.Fatalf("unexpected window %+v", s.Window)
	}
	if s.TexturesDir != "textures" || s.TileTexture != "textures/lime.png" {
		t.Fatalf("unexpected textures %q %q", s.TexturesDir, s.TileTexture)
	}
	if s.Map.Size != (UintVec{2, 2}) || s.Map.ChunkSize != (UintVec{8, 8}) || s.Map.TileSize != (Vec{16, 16}) {
		t.Fatalf("unexpected map %+v", s.Map)
	}
	if s.Map.Offset != (Vec{-128, -128}) {
		t.Fatalf("unexpected offset %+v", s.Map.Offset)
	}
	if s.SpritePreview.Translation != (Vec{150, 0}) || s.SpritePreview.Scale != 4 {
		t.Fatalf("unexpected sprite preview %+v", s.SpritePreview)
	}
	if s.AtlasPreview.Translation != (Vec{-300, 0}) {
		t.Fatalf("unexpected atlas preview %+v", s.AtlasPreview)
	}
	if s.Map.Fill.Policy != FillUniform {
		t.Fatalf("expected uniform fill, got %q", s.Map.Fill.Policy)
	}
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte("map:\n  offset: { x: 4, y: 5 }\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Window.Width != 1270 || s.Atlas.MaxSize != 2048 || s.Map.ChunkSize != (UintVec{8, 8}) {
		t.Fatalf("defaults not applied: %+v", s)
	}
	if s.Map.Offset != (Vec{4, 5}) {
		t.Fatalf("expected explicit offset kept, got %+v", s.Map.Offset)
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"negative_window", "window: { width: -1 }"},
		{"max_below_initial", "atlas: { initial_size: 512, max_size: 256 }"},
		{"negative_padding", "atlas: { padding: -2 }"},
		{"negative_tile", "map: { tile_size: { x: -16, y: 16 } }"},
		{"unknown_policy", "map: { fill: { policy: noise } }"},
		{"script_without_path", "map: { fill: { policy: script } }"},
		{"tmx_without_path", "map: { fill: { policy: tmx } }"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse([]byte(c.yaml)); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}

	if _, err := Parse([]byte("window: [")); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(override, []byte("window: { title: Custom }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("map: { fill: { policy: noise } }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name      string
		file      string
		wantTitle string
		wantErr   bool
	}{
		{"disk_override", override, "Custom", false},
		{"embedded_fallback", filepath.Join(dir, "missing.yaml"), "Map Example", false},
		{"invalid_file", broken, "", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := Load(c.file)
			if c.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if s.Window.Title != c.wantTitle {
				t.Fatalf("expected title %q, got %q", c.wantTitle, s.Window.Title)
			}
		})
	}
}
