package system

import (
	"image"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/atlasmap/ecs"
	"github.com/milk9111/atlasmap/ecs/component"
	"github.com/milk9111/atlasmap/tilemap"
)

// RenderSystem draws sprites, atlas sprites and tile maps through the first
// camera, in render layer order with nearest filtering. Each tile map chunk
// is drawn once into a cached image.
type RenderSystem struct {
	camEntity ecs.Entity
	chunks    map[ecs.Entity][]chunkImage
}

type chunkImage struct {
	img  *ebiten.Image
	x, y float64
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{chunks: make(map[ecs.Entity][]chunkImage)}
}

// Update drops chunk caches of tile maps that no longer exist.
func (r *RenderSystem) Update(w *ecs.World) {
	for e, chunks := range r.chunks {
		if ecs.Has(w, e, component.TileMapComponent) {
			continue
		}
		for _, c := range chunks {
			c.img.Deallocate()
		}
		delete(r.chunks, e)
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	view := r.view(w, screen)

	for _, e := range drawOrder(w) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		if tm, ok := ecs.Get(w, e, component.TileMapComponent); ok {
			r.drawTileMap(screen, e, t, tm, view)
		}
		if s, ok := ecs.Get(w, e, component.AtlasSpriteComponent); ok {
			drawAtlasSprite(screen, t, s, view)
		}
		if s, ok := ecs.Get(w, e, component.SpriteComponent); ok {
			drawSprite(screen, t, s, view)
		}
	}
}

// view maps world coordinates to the screen: the camera position lands on
// the screen centre.
func (r *RenderSystem) view(w *ecs.World, screen *ebiten.Image) ebiten.GeoM {
	if !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	camX, camY, zoom := 0.0, 0.0, 1.0
	if t, ok := ecs.Get(w, r.camEntity, component.TransformComponent); ok {
		camX, camY = t.X, t.Y
	}
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent); ok && cam.Scale > 0 {
		zoom = 1 / cam.Scale
	}

	b := screen.Bounds()
	var g ebiten.GeoM
	g.Translate(-camX, -camY)
	g.Scale(zoom, zoom)
	g.Translate(float64(b.Dx())/2, float64(b.Dy())/2)
	return g
}

// drawOrder returns every drawable entity sorted by render layer, then id.
func drawOrder(w *ecs.World) []ecs.Entity {
	var entities []ecs.Entity
	for _, kind := range []component.AnyKind{
		component.TileMapComponent.Kind(),
		component.AtlasSpriteComponent.Kind(),
		component.SpriteComponent.Kind(),
	} {
		entities = append(entities, w.Query(component.TransformComponent.Kind(), kind)...)
	}
	slices.Sort(entities)
	entities = slices.Compact(entities)

	layer := func(e ecs.Entity) int {
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent); ok {
			return l.Index
		}
		return 0
	}
	slices.SortStableFunc(entities, func(a, b ecs.Entity) int {
		return layer(a) - layer(b)
	})
	return entities
}

func localGeoM(t *component.Transform, originX, originY float64) ebiten.GeoM {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	var g ebiten.GeoM
	g.Translate(-originX, -originY)
	g.Scale(sx, sy)
	g.Rotate(t.Rotation)
	g.Translate(t.X, t.Y)
	return g
}

func drawImage(screen, img *ebiten.Image, local, view ebiten.GeoM) {
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	op.GeoM = local
	op.GeoM.Concat(view)
	screen.DrawImage(img, op)
}

func drawSprite(screen *ebiten.Image, t *component.Transform, s *component.Sprite, view ebiten.GeoM) {
	if s.Image == nil {
		return
	}
	img := s.Image
	if s.UseSource {
		if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
			img = sub
		}
	}
	drawImage(screen, img, localGeoM(t, s.OriginX, s.OriginY), view)
}

func drawAtlasSprite(screen *ebiten.Image, t *component.Transform, s *component.AtlasSprite, view ebiten.GeoM) {
	if s.Atlas == nil || s.Texture == nil {
		return
	}
	src, ok := s.Atlas.Region(s.Index)
	if !ok {
		return
	}
	img, ok := s.Texture.SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}
	drawImage(screen, img, localGeoM(t, float64(src.Dx())/2, float64(src.Dy())/2), view)
}

func (r *RenderSystem) drawTileMap(screen *ebiten.Image, e ecs.Entity, t *component.Transform, tm *component.TileMap, view ebiten.GeoM) {
	if tm.Map == nil || tm.Atlas == nil || tm.Texture == nil {
		return
	}
	chunks, ok := r.chunks[e]
	if !ok {
		chunks = bakeChunks(tm)
		r.chunks[e] = chunks
	}
	for _, c := range chunks {
		local := localGeoM(t, 0, 0)
		var off ebiten.GeoM
		off.Translate(c.x, c.y)
		off.Concat(local)
		drawImage(screen, c.img, off, view)
	}
}

// bakeChunks renders every chunk of every layer into its own image, in layer
// order.
func bakeChunks(tm *component.TileMap) []chunkImage {
	var out []chunkImage
	for _, layer := range tm.Map.Layers() {
		for _, chunk := range layer.Chunks() {
			draws := chunkDraws(layer, chunk, tm.Atlas.Textures)
			w := int(chunk.Size.X) * int(layer.Settings.TileSize.X)
			h := int(chunk.Size.Y) * int(layer.Settings.TileSize.Y)
			img := ebiten.NewImage(w, h)
			for _, d := range draws {
				sub, ok := tm.Texture.SubImage(d.src).(*ebiten.Image)
				if !ok {
					continue
				}
				op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
				op.GeoM = d.geoM()
				img.DrawImage(sub, op)
			}
			ox, oy := layer.TileOffset(chunk.Origin())
			out = append(out, chunkImage{img: img, x: ox, y: oy})
		}
	}
	return out
}

// tileDraw places one atlas region inside a chunk image.
// The region is stretched to fill exactly one w x h cell.
type tileDraw struct {
	src          image.Rectangle
	x, y         float64
	w, h         float64
	flipX, flipY bool
}

func (d tileDraw) geoM() ebiten.GeoM {
	var g ebiten.GeoM
	sx, sy := d.w/float64(d.src.Dx()), d.h/float64(d.src.Dy())
	tx, ty := 0.0, 0.0
	if d.flipX {
		sx, tx = -sx, d.w
	}
	if d.flipY {
		sy, ty = -sy, d.h
	}
	g.Scale(sx, sy)
	g.Translate(tx+d.x, ty+d.y)
	return g
}

// chunkDraws lists the visible tiles of chunk with their offsets relative
// to the chunk's top-left corner.
func chunkDraws(layer *tilemap.Layer, chunk *tilemap.Chunk, regions []image.Rectangle) []tileDraw {
	origin := chunk.Origin()
	ox, oy := layer.TileOffset(origin)
	draws := make([]tileDraw, 0, int(chunk.Size.X*chunk.Size.Y))
	for y := uint32(0); y < chunk.Size.Y; y++ {
		for x := uint32(0); x < chunk.Size.X; x++ {
			pos := tilemap.TilePos{X: origin.X + x, Y: origin.Y + y}
			src, ok := layer.TileRect(pos, regions)
			if !ok {
				continue
			}
			tile := chunk.Tile(x, y)
			tx, ty := layer.TileOffset(pos)
			draws = append(draws, tileDraw{
				src:   src,
				x:     tx - ox,
				y:     ty - oy,
				w:     layer.Settings.TileSize.X,
				h:     layer.Settings.TileSize.Y,
				flipX: tile.FlipX,
				flipY: tile.FlipY,
			})
		}
	}
	return draws
}
