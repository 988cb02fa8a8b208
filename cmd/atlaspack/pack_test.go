package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/atlasmap/atlas"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func readManifest(t *testing.T, dir string) atlas.Manifest {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, atlasManifestName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	m, err := atlas.ParseManifest(data)
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	return m
}

func TestPack(t *testing.T) {
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "lime.png"), 16, 16, color.RGBA{0x32, 0xcd, 0x32, 0xff})
	writePNG(t, filepath.Join(src, "tree.png"), 16, 32, color.RGBA{0x22, 0x8b, 0x22, 0xff})
	if err := os.WriteFile(filepath.Join(src, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name     string
		opts     func(out string) packOptions
		want     int
		wantSize image.Point
		wantErr  error
	}{
		{
			name:     "default",
			opts:     func(out string) packOptions { return packOptions{Dir: src, Out: out, MaxSize: 2048} },
			want:     2,
			wantSize: image.Pt(256, 256),
		},
		{
			name:    "too_small",
			opts:    func(out string) packOptions { return packOptions{Dir: src, Out: out, MaxSize: 16} },
			wantErr: atlas.ErrNotEnoughSpace,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out")
			err := pack(context.Background(), c.opts(out))
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("pack: %v", err)
			}

			m := readManifest(t, out)
			if len(m.Regions) != c.want {
				t.Fatalf("expected %d regions, got %d", c.want, len(m.Regions))
			}
			if m.Image != atlasImageName {
				t.Fatalf("expected image %q, got %q", atlasImageName, m.Image)
			}

			f, err := os.Open(filepath.Join(out, atlasImageName))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			cfg, err := png.DecodeConfig(f)
			if err != nil {
				t.Fatalf("decode atlas: %v", err)
			}
			if cfg.Width != c.wantSize.X || cfg.Height != c.wantSize.Y {
				t.Fatalf("expected %v atlas, got %dx%d", c.wantSize, cfg.Width, cfg.Height)
			}
		})
	}
}

func TestPackSkipsPreviousAtlasInSameDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "lime.png"), 16, 16, color.White)

	opts := packOptions{Dir: dir, Out: dir, MaxSize: 2048}
	for i := 0; i < 2; i++ {
		if err := pack(context.Background(), opts); err != nil {
			t.Fatalf("pack %d: %v", i, err)
		}
	}
	if m := readManifest(t, dir); len(m.Regions) != 1 {
		t.Fatalf("expected only lime.png packed, got %+v", m.Regions)
	}
}

func TestPackMissingDir(t *testing.T) {
	opts := packOptions{Dir: filepath.Join(t.TempDir(), "missing"), Out: t.TempDir(), MaxSize: 2048}
	if err := pack(context.Background(), opts); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestWatcherReportsImages(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "grass.png"), 4, 4, color.White)

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "grass.png" {
			t.Fatalf("expected grass.png event, got %s", name)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatcherReportsNestedImages(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "props", "trees")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	writePNG(t, filepath.Join(sub, "tree.png"), 4, 8, color.White)

	select {
	case name := <-w.Events:
		if name != filepath.Join(sub, "tree.png") {
			t.Fatalf("expected nested tree.png event, got %s", name)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for nested event")
	}
}
