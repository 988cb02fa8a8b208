package main

import (
	"io/fs"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/atlasmap/ecs"
	"github.com/milk9111/atlasmap/loader"
	"github.com/milk9111/atlasmap/scene"
)

type Game struct {
	spec *scene.Spec
	fsys fs.FS

	state   *stateMachine
	server  *loader.Server
	handles []loader.Handle

	world    *ecs.World
	ui       *ebitenui.UI
	info     *infoPanel
	manifest []byte
}

func NewGame(spec *scene.Spec, fsys fs.FS) *Game {
	return &Game{
		spec:   spec,
		fsys:   fsys,
		state:  newStateMachine(StateSetup),
		server: loader.NewServer(fsys),
		world:  ecs.NewWorld(),
	}
}

func (g *Game) Update() error {
	state, enter := g.state.step()
	switch state {
	case StateSetup:
		if enter {
			g.loadTextures()
		}
		g.checkTextures()
	case StateFinished:
		if enter {
			g.startup()
		}
		g.world.Update()
		if g.ui != nil {
			g.ui.Update()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.copyManifest()
		}
	}
	return nil
}

func (g *Game) loadTextures() {
	handles, err := g.server.LoadFolder(g.spec.TexturesDir)
	if err != nil {
		log.Fatalf("failed to load %s: %v", g.spec.TexturesDir, err)
	}
	g.handles = handles
	log.Printf("loading %d textures from %s", len(handles), g.spec.TexturesDir)
}

func (g *Game) checkTextures() {
	switch g.server.GroupLoadState(g.handles) {
	case loader.Loaded:
		g.state.Set(StateFinished)
	case loader.Failed:
		log.Fatalf("failed to load textures: %v", g.server.GroupErr(g.handles))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.spec.Window.Width, g.spec.Window.Height
}
