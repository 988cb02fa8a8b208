package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite draws an image, or the Source part of it when UseSource is set.
// OriginX and OriginY are the pivot in source pixels.
type Sprite struct {
	Image     *ebiten.Image
	Source    image.Rectangle
	UseSource bool
	OriginX   float64
	OriginY   float64
}

var SpriteComponent = NewComponent[Sprite]()
