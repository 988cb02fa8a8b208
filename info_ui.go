package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"sync"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/atlasmap/scene"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// infoPanel is a small overlay in the top-left corner describing the atlas.
type infoPanel struct {
	text *widget.Text
	root *widget.Container
}

func newInfoPanel() *infoPanel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 180})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	text := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(text)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 10, Left: 10}),
		)),
	)
	root.AddChild(panel)

	return &infoPanel{text: text, root: root}
}

func (p *infoPanel) SetLines(lines []string) {
	p.text.Label = strings.Join(lines, "\n")
}

func (p *infoPanel) UI() *ebitenui.UI {
	return &ebitenui.UI{Container: p.root}
}

func infoLines(spec *scene.Spec, sc *scene.Scene) []string {
	layer, _ := sc.Map.Layer(spec.Map.Layer)
	lines := []string{
		fmt.Sprintf("%s tile index: %d", tileLabel(spec.TileTexture), sc.TileIndex),
		fmt.Sprintf("atlas: %dx%d, %d textures", sc.Atlas.Size.X, sc.Atlas.Size.Y, sc.Atlas.Len()),
	}
	if layer != nil {
		w, h := layer.Settings.GridSize()
		lines = append(lines, fmt.Sprintf("map: %dx%d tiles, fill %s", w, h, spec.Map.Fill.Policy))
	}
	lines = append(lines, "WASD/arrows pan, Z/X zoom, C copy manifest")
	return lines
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// copyManifest puts the atlas manifest YAML on the system clipboard. A
// clipboard that cannot be initialised is reported once and then ignored.
func (g *Game) copyManifest() {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
		if clipboardErr != nil {
			log.Printf("clipboard unavailable: %v", clipboardErr)
		}
	})
	if clipboardErr != nil || len(g.manifest) == 0 {
		return
	}
	clipboard.Write(clipboard.FmtText, g.manifest)
	log.Printf("copied atlas manifest (%d bytes)", len(g.manifest))
}
