package atlas

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/milk9111/atlasmap/loader"
	"golang.org/x/image/draw"
)

var (
	ErrNotEnoughSpace = errors.New("atlas: not enough space")
	ErrInvalidTexture = errors.New("atlas: invalid texture")
	ErrNoTextures     = errors.New("atlas: no textures")
)

const (
	DefaultInitialSize = 256
	DefaultMaxSize     = 2048
)

type entry struct {
	handle loader.Handle
	img    image.Image
}

// Builder collects textures and packs them into a single atlas image.
type Builder struct {
	initial image.Point
	max     image.Point
	padding int

	entries []entry
	index   map[loader.HandleID]int
}

type Option func(*Builder)

// WithInitialSize sets the first atlas size tried.
func WithInitialSize(w, h int) Option {
	return func(b *Builder) {
		if w > 0 && h > 0 {
			b.initial = image.Pt(w, h)
		}
	}
}

// WithMaxSize caps the atlas size.
func WithMaxSize(w, h int) Option {
	return func(b *Builder) {
		if w > 0 && h > 0 {
			b.max = image.Pt(w, h)
		}
	}
}

// WithPadding leaves n transparent pixels between packed textures.
func WithPadding(n int) Option {
	return func(b *Builder) {
		if n >= 0 {
			b.padding = n
		}
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		initial: image.Pt(DefaultInitialSize, DefaultInitialSize),
		max:     image.Pt(DefaultMaxSize, DefaultMaxSize),
		index:   make(map[loader.HandleID]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.initial.X > b.max.X {
		b.initial.X = b.max.X
	}
	if b.initial.Y > b.max.Y {
		b.initial.Y = b.max.Y
	}
	return b
}

// AddTexture queues a texture. Adding the same handle twice replaces the
// earlier image so each handle ends up with exactly one region.
func (b *Builder) AddTexture(h loader.Handle, img image.Image) {
	if i, ok := b.index[h.ID]; ok {
		b.entries[i].img = img
		return
	}
	b.index[h.ID] = len(b.entries)
	b.entries = append(b.entries, entry{handle: h, img: img})
}

// Len returns the number of queued textures.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Finish packs every queued texture. Texture indices follow insertion order.
func (b *Builder) Finish() (*TextureAtlas, error) {
	if len(b.entries) == 0 {
		return nil, ErrNoTextures
	}

	sizes := make([]image.Point, len(b.entries))
	for i, e := range b.entries {
		if e.img == nil {
			return nil, fmt.Errorf("%w: %s is nil", ErrInvalidTexture, e.handle.Path)
		}
		sz := e.img.Bounds().Size()
		if sz.X <= 0 || sz.Y <= 0 {
			return nil, fmt.Errorf("%w: %s is empty", ErrInvalidTexture, e.handle.Path)
		}
		if sz.X > b.max.X || sz.Y > b.max.Y {
			return nil, fmt.Errorf("%w: %s (%dx%d) exceeds max size %dx%d", ErrNotEnoughSpace, e.handle.Path, sz.X, sz.Y, b.max.X, b.max.Y)
		}
		sizes[i] = sz
	}

	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, c := sizes[order[i]], sizes[order[j]]
		if a.Y != c.Y {
			return a.Y > c.Y
		}
		return a.X > c.X
	})

	size := b.initial
	for {
		if rects, ok := shelfPack(sizes, order, size, b.padding); ok {
			return b.compose(size, rects), nil
		}
		next, ok := grow(size, b.max)
		if !ok {
			return nil, fmt.Errorf("%w: %d textures do not fit in %dx%d", ErrNotEnoughSpace, len(sizes), b.max.X, b.max.Y)
		}
		size = next
	}
}

// shelfPack places textures left to right in rows, opening a new row when
// the current one is full. Rows are as tall as their tallest texture.
func shelfPack(sizes []image.Point, order []int, size image.Point, padding int) ([]image.Rectangle, bool) {
	rects := make([]image.Rectangle, len(sizes))
	x, y, rowH := 0, 0, 0
	for _, i := range order {
		sz := sizes[i]
		if sz.X > size.X {
			return nil, false
		}
		if x+sz.X > size.X {
			y += rowH + padding
			x, rowH = 0, 0
		}
		if y+sz.Y > size.Y {
			return nil, false
		}
		rects[i] = image.Rect(x, y, x+sz.X, y+sz.Y)
		x += sz.X + padding
		if sz.Y > rowH {
			rowH = sz.Y
		}
	}
	return rects, true
}

func grow(size, limit image.Point) (image.Point, bool) {
	switch {
	case size.X <= size.Y && size.X < limit.X:
		size.X = min(size.X*2, limit.X)
	case size.Y < limit.Y:
		size.Y = min(size.Y*2, limit.Y)
	case size.X < limit.X:
		size.X = min(size.X*2, limit.X)
	default:
		return size, false
	}
	return size, true
}

func (b *Builder) compose(size image.Point, rects []image.Rectangle) *TextureAtlas {
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	a := &TextureAtlas{
		Texture:  dst,
		Size:     size,
		Textures: rects,
		handles:  make([]loader.Handle, len(b.entries)),
		index:    make(map[loader.HandleID]int, len(b.entries)),
	}
	for i, e := range b.entries {
		draw.Copy(dst, rects[i].Min, e.img, e.img.Bounds(), draw.Src, nil)
		a.handles[i] = e.handle
		a.index[e.handle.ID] = i
	}
	return a
}
