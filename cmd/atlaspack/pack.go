package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/atlasmap/atlas"
	"github.com/milk9111/atlasmap/loader"
)

const (
	atlasImageName    = "atlas.png"
	atlasManifestName = "atlas.yaml"
)

type packOptions struct {
	Dir     string
	Out     string
	MaxSize int
	Padding int
}

// pack loads every image under opts.Dir, packs them and writes the atlas
// image and manifest to opts.Out. A fresh loader is used on every call so
// edited files are decoded again.
func pack(ctx context.Context, opts packOptions) error {
	srv := loader.NewServer(os.DirFS(opts.Dir))
	handles, err := srv.LoadFolder(".")
	if err != nil {
		return fmt.Errorf("atlaspack: %w", err)
	}
	if err := srv.Wait(ctx, handles); err != nil {
		return fmt.Errorf("atlaspack: %w", err)
	}

	sameDir := filepath.Clean(opts.Dir) == filepath.Clean(opts.Out)
	b := atlas.NewBuilder(atlas.WithMaxSize(opts.MaxSize, opts.MaxSize), atlas.WithPadding(opts.Padding))
	for _, h := range handles {
		// a previous atlas written next to its sources is not a source
		if sameDir && h.Path == atlasImageName {
			continue
		}
		img, _ := srv.Image(h)
		b.AddTexture(h, img)
	}
	ta, err := b.Finish()
	if err != nil {
		return fmt.Errorf("atlaspack: %w", err)
	}

	var png bytes.Buffer
	if err := ta.WritePNG(&png); err != nil {
		return fmt.Errorf("atlaspack: %w", err)
	}
	manifest, err := ta.Manifest(atlasImageName).Marshal()
	if err != nil {
		return fmt.Errorf("atlaspack: %w", err)
	}

	if err := os.MkdirAll(opts.Out, 0o755); err != nil {
		return fmt.Errorf("atlaspack: create %s: %w", opts.Out, err)
	}
	if err := os.WriteFile(filepath.Join(opts.Out, atlasImageName), png.Bytes(), 0o644); err != nil {
		return fmt.Errorf("atlaspack: write %s: %w", atlasImageName, err)
	}
	if err := os.WriteFile(filepath.Join(opts.Out, atlasManifestName), manifest, 0o644); err != nil {
		return fmt.Errorf("atlaspack: write %s: %w", atlasManifestName, err)
	}
	log.Printf("packed %d textures into %dx%d atlas in %s", ta.Len(), ta.Size.X, ta.Size.Y, opts.Out)
	return nil
}
