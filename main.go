package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/atlasmap/assets"
	"github.com/milk9111/atlasmap/scene"
)

func main() {
	spec, err := scene.Load(scene.DefaultFile)
	if err != nil {
		log.Fatalf("failed to load scene: %v", err)
	}

	ebiten.SetWindowSize(spec.Window.Width, spec.Window.Height)
	ebiten.SetWindowTitle(spec.Window.Title)

	game := NewGame(spec, assets.FS(spec.AssetsDir))
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
